package totp

import "errors"

var (
	// ErrInvalidEncoding is returned when a secret contains a symbol outside the base32 alphabet.
	ErrInvalidEncoding = errors.New("invalid base32 encoding")
	// ErrInvalidDigits is returned when a code length outside 1..9 is requested.
	ErrInvalidDigits = errors.New("invalid number of digits")
	// ErrInvalidLength is returned when a secret of non-positive length is requested.
	ErrInvalidLength = errors.New("invalid secret length")
	// ErrMissingAccountName is returned when a provisioning URI has no account name.
	ErrMissingAccountName = errors.New("missing account name")
	// ErrMissingSecret is returned when a provisioning URI has no secret.
	ErrMissingSecret = errors.New("missing secret")
)
