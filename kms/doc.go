// Package kms holds the gateway's key material and the key-encapsulation
// primitive used to bootstrap client channels.
//
// # KeyStore
//
// KeyStore loads a long-lived key pair from two byte sources (see package
// storage) exactly once, during Boot. Until Boot succeeds every accessor
// fails with ErrNotLoaded. After Boot the pair never changes and can be read
// by any number of concurrent requests.
//
// PublicKeyCiphertext performs a fresh encapsulation on every call and
// returns only the ciphertext. The shared secret never leaves the process
// through the HTTP interface; the client recovers it by decapsulating the
// ciphertext with the private key it received.
//
// # ML-KEM-768
//
// MLKEM768 implements the encapsulation capability with crypto/mlkem.
// GenerateKeyPair creates a compatible pair for provisioning:
//
//	pub, priv, err := kms.GenerateKeyPair()
//	// pub:  1184-byte encapsulation key
//	// priv: 64-byte decapsulation key seed
//
// DeriveChannelKey turns the shared secret into a 32-byte symmetric key
// with HKDF-SHA256.
package kms
