// Package codegen produces the numeric codes handed to recipients.
package codegen

import (
	"crypto/rand"
	"math/big"
	"strconv"
)

// codeSpan covers the six-digit range [100000, 999999].
var codeSpan = big.NewInt(900000)

// Numeric draws uniformly distributed six-digit codes from crypto/rand.
type Numeric struct{}

func NewNumeric() *Numeric {
	return &Numeric{}
}

// Generate returns a fresh six-digit code.
func (*Numeric) Generate() (string, error) {
	n, err := rand.Int(rand.Reader, codeSpan)
	if err != nil {
		return "", err
	}

	return strconv.FormatInt(n.Int64()+100000, 10), nil
}
