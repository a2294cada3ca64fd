package kms

import (
	"crypto/mlkem"
	"crypto/sha256"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

// Encapsulator is the key-encapsulation capability the key store drives.
type Encapsulator interface {
	// Encapsulate derives a fresh shared secret for publicKey and returns it
	// together with the ciphertext a holder of the private key can decapsulate.
	Encapsulate(publicKey []byte) (ciphertext, sharedSecret []byte, err error)
}

// Decapsulator recovers the shared secret from a ciphertext.
type Decapsulator interface {
	Decapsulate(privateKey, ciphertext []byte) (sharedSecret []byte, err error)
}

// PublicKeyValidator is implemented by encapsulators that can check a public
// key before it is used.
type PublicKeyValidator interface {
	ValidatePublicKey(publicKey []byte) error
}

// EncapsulationResult is the outcome of one encapsulation.
type EncapsulationResult struct {
	Ciphertext   []byte
	SharedSecret []byte
}

// MLKEM768 implements Encapsulator and Decapsulator with ML-KEM-768 (FIPS 203).
// Public keys are 1184-byte encapsulation keys, private keys are 64-byte seeds.
type MLKEM768 struct{}

var (
	_ Encapsulator       = MLKEM768{}
	_ Decapsulator       = MLKEM768{}
	_ PublicKeyValidator = MLKEM768{}
)

func (MLKEM768) Encapsulate(publicKey []byte) ([]byte, []byte, error) {
	ek, err := mlkem.NewEncapsulationKey768(publicKey)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidPublicKey, err)
	}
	sharedSecret, ciphertext := ek.Encapsulate()
	return ciphertext, sharedSecret, nil
}

func (MLKEM768) Decapsulate(privateKey, ciphertext []byte) ([]byte, error) {
	dk, err := mlkem.NewDecapsulationKey768(privateKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPrivateKey, err)
	}
	sharedSecret, err := dk.Decapsulate(ciphertext)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCiphertext, err)
	}
	return sharedSecret, nil
}

func (MLKEM768) ValidatePublicKey(publicKey []byte) error {
	if _, err := mlkem.NewEncapsulationKey768(publicKey); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPublicKey, err)
	}
	return nil
}

// GenerateKeyPair creates a new ML-KEM-768 key pair. The private key is
// returned in seed form.
func GenerateKeyPair() (publicKey, privateKey []byte, err error) {
	dk, err := mlkem.GenerateKey768()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate ML-KEM-768 key: %w", err)
	}
	return dk.EncapsulationKey().Bytes(), dk.Bytes(), nil
}

// ChannelKeySize is the length of keys returned by DeriveChannelKey.
const ChannelKeySize = 32

// DeriveChannelKey expands a KEM shared secret into a symmetric channel key
// with HKDF-SHA256. Both ends of a bootstrap must use the same info.
func DeriveChannelKey(sharedSecret, info []byte) ([]byte, error) {
	if len(sharedSecret) == 0 {
		return nil, ErrEmptyKey
	}

	key := make([]byte, ChannelKeySize)
	if _, err := io.ReadFull(hkdf.New(sha256.New, sharedSecret, nil, info), key); err != nil {
		return nil, fmt.Errorf("failed to derive channel key: %w", err)
	}
	return key, nil
}
