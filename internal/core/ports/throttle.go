package ports

import "context"

// LoginThrottle limits repeated failed sign-ins per email address.
type LoginThrottle interface {
	// TooManyFailures reports whether the address is currently locked out.
	TooManyFailures(ctx context.Context, email string) (bool, error)
	// RecordFailure counts one failed attempt.
	RecordFailure(ctx context.Context, email string) error
	// Reset clears the failure counter after a successful sign-in.
	Reset(ctx context.Context, email string) error
}

// NopLoginThrottle never locks anyone out. Used in tests and demo mode.
type NopLoginThrottle struct{}

func (NopLoginThrottle) TooManyFailures(context.Context, string) (bool, error) { return false, nil }
func (NopLoginThrottle) RecordFailure(context.Context, string) error           { return nil }
func (NopLoginThrottle) Reset(context.Context, string) error                   { return nil }
