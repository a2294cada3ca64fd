package authhandler

import (
	"errors"
	"fmt"
	"strings"
)

// CiphertextPolicy selects how ciphertexts are produced across requests.
type CiphertextPolicy string

const (
	// PolicyFresh encapsulates on every successful authentication.
	PolicyFresh CiphertextPolicy = "fresh"

	// PolicyStable encapsulates once and hands every client the same
	// ciphertext. All clients then share one secret.
	PolicyStable CiphertextPolicy = "stable"
)

var ErrUnknownPolicy = errors.New("unknown ciphertext policy")

// ParseCiphertextPolicy parses a policy name. The empty string means PolicyFresh.
func ParseCiphertextPolicy(s string) (CiphertextPolicy, error) {
	switch CiphertextPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", PolicyFresh:
		return PolicyFresh, nil
	case PolicyStable:
		return PolicyStable, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownPolicy, s)
	}
}

// Config holds the settings of the authentication handler.
type Config struct {
	// Secret is the base32 TOTP secret shared with the authenticator.
	Secret string

	// KeyExchange adds a key-encapsulation ciphertext to successful responses.
	KeyExchange bool

	// CiphertextPolicy applies when KeyExchange is set. Defaults to PolicyFresh.
	CiphertextPolicy CiphertextPolicy
}
