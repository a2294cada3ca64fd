package kms

import "errors"

var (
	// ErrNotLoaded is returned when key material is accessed before a successful Boot.
	ErrNotLoaded = errors.New("key material not loaded")

	// ErrAlreadyLoaded is returned by a second call to Boot.
	ErrAlreadyLoaded = errors.New("key material already loaded")

	// ErrEmptyKey is returned when a key source holds no bytes.
	ErrEmptyKey = errors.New("empty key material")

	// ErrInvalidPublicKey is returned when the public key is rejected by the KEM.
	ErrInvalidPublicKey = errors.New("invalid public key")

	// ErrInvalidPrivateKey is returned when the private key is rejected by the KEM.
	ErrInvalidPrivateKey = errors.New("invalid private key")

	// ErrInvalidCiphertext is returned when a ciphertext cannot be decapsulated.
	ErrInvalidCiphertext = errors.New("invalid ciphertext")
)
