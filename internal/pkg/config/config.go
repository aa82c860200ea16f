package config

import (
	"io"
	"time"
)

// TimeConfig defines helpers for retrieving duration configuration values.
type TimeConfig interface {
	// GetSecond retrieves the value for key interpreted as a number of seconds.
	GetSecond(key string) time.Duration

	// GetMinute retrieves the value for key interpreted as a number of minutes.
	GetMinute(key string) time.Duration

	// GetHour retrieves the value for key interpreted as a number of hours.
	GetHour(key string) time.Duration
}

// Config defines a set of methods for retrieving configuration values of
// various types. Implementations handle retrieval and type conversion,
// returning zero values for missing or unconvertible keys.
type Config interface {
	io.Closer
	TimeConfig

	// GetBool retrieves the value for key as a bool.
	GetBool(key string) bool

	// GetInt retrieves the value for key as an int.
	GetInt(key string) int

	// GetInt64 retrieves the value for key as an int64.
	GetInt64(key string) int64

	// GetUint16 retrieves the value for key as a uint16.
	GetUint16(key string) uint16

	// GetFloat64 retrieves the value for key as a float64.
	GetFloat64(key string) float64

	// GetString retrieves the value for key as a string.
	GetString(key string) string

	// GetBinary retrieves the value for key as a byte slice.
	// The configuration value is stored base64 encoded.
	GetBinary(key string) []byte

	// GetArray retrieves the value for key as a slice of strings.
	// The configuration value is stored as <element1>,<element2>,...
	GetArray(key string) []string

	// GetMap retrieves the value for key as a string map.
	// The configuration value is stored as <key1>:<value1>,<key2>:<value2>,...
	GetMap(key string) map[string]string
}
