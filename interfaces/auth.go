package interfaces

import (
	"context"
	"time"
)

// CodeVerifier checks candidate one-time codes.
type CodeVerifier interface {
	// Verify reports whether candidate is valid for secret at time t.
	// An error means the secret itself could not be used.
	Verify(secret, candidate string, t time.Time) (bool, error)
}

// KeyMaterial provides the key material handed out after authentication.
type KeyMaterial interface {
	// PrivateKey returns the static private key.
	PrivateKey() ([]byte, error)

	// PublicKeyCiphertext encapsulates against the public key and returns the
	// ciphertext half of the result. Successive calls return different
	// ciphertexts.
	PublicKeyCiphertext(ctx context.Context) ([]byte, error)
}
