// Package clock provides a tiny time abstraction.
//
// Code that checks deadlines should depend on the Clocker interface instead of
// calling time.Now() directly, so tests can substitute a fixed clock.
package clock
