package clock

import "time"

// Clocker abstracts the current time so expiry logic can be tested with a
// deterministic clock instead of time.Now.
type Clocker interface {
	Now() time.Time
}

// TimeClocker is the production clock backed by the system time.
type TimeClocker struct{}

// New returns a TimeClocker.
func New() *TimeClocker {
	return &TimeClocker{}
}

// Now returns the current system time.
func (*TimeClocker) Now() time.Time {
	return time.Now()
}
