package strcase

import "testing"

func TestToLowerSnake(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "", want: ""},
		{in: "TransactionID", want: "transaction_id"},
		{in: "recipient", want: "recipient"},
		{in: "AmountCents", want: "amount_cents"},
		{in: "HTTPServer", want: "http_server"},
		{in: "ExpiresAtUnix", want: "expires_at_unix"},
		{in: "userID", want: "user_id"},
	}

	for _, tc := range tests {
		if got := ToLowerSnake(tc.in); got != tc.want {
			t.Fatalf("ToLowerSnake(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
