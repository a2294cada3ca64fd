package kms

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/ruteri/sbc-auth-gateway/interfaces"
)

// KeyStore holds the gateway's long-lived key pair. The pair is loaded once
// by Boot and is read-only afterwards.
type KeyStore struct {
	publicSource  interfaces.ByteSource
	privateSource interfaces.ByteSource
	kem           Encapsulator
	log           *slog.Logger

	mu         sync.RWMutex
	loaded     bool
	publicKey  []byte
	privateKey []byte
}

var _ interfaces.KeyMaterial = (*KeyStore)(nil)

// NewKeyStore creates a key store reading the pair from the given sources.
// Nothing is read until Boot is called.
func NewKeyStore(publicSource, privateSource interfaces.ByteSource, kem Encapsulator, log *slog.Logger) *KeyStore {
	return &KeyStore{
		publicSource:  publicSource,
		privateSource: privateSource,
		kem:           kem,
		log:           log,
	}
}

// Boot loads both keys. It fails if either source is missing, unreadable or
// empty, or if the KEM rejects the public key. The store stays unloaded on
// failure and the caller must not serve traffic.
func (k *KeyStore) Boot(ctx context.Context) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.loaded {
		return ErrAlreadyLoaded
	}

	publicKey, err := k.load(ctx, "public", k.publicSource)
	if err != nil {
		return err
	}
	privateKey, err := k.load(ctx, "private", k.privateSource)
	if err != nil {
		return err
	}

	if v, ok := k.kem.(PublicKeyValidator); ok {
		if err := v.ValidatePublicKey(publicKey); err != nil {
			return fmt.Errorf("public key from %s: %w", k.publicSource.LocationURI(), err)
		}
	}

	k.publicKey = publicKey
	k.privateKey = privateKey
	k.loaded = true

	k.log.Info("Key material loaded",
		slog.String("public_key_source", k.publicSource.LocationURI()),
		slog.String("private_key_source", k.privateSource.LocationURI()),
		slog.Int("public_key_size", len(publicKey)),
		slog.Int("private_key_size", len(privateKey)))

	return nil
}

func (k *KeyStore) load(ctx context.Context, name string, src interfaces.ByteSource) ([]byte, error) {
	data, err := src.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s key from %s: %w", name, src.LocationURI(), err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%s key from %s: %w", name, src.LocationURI(), ErrEmptyKey)
	}
	return data, nil
}

// Loaded reports whether Boot has completed successfully.
func (k *KeyStore) Loaded() bool {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return k.loaded
}

// PrivateKey returns a copy of the private key.
func (k *KeyStore) PrivateKey() ([]byte, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()

	if !k.loaded {
		return nil, ErrNotLoaded
	}
	return bytes.Clone(k.privateKey), nil
}

// PublicKey returns a copy of the public key.
func (k *KeyStore) PublicKey() ([]byte, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()

	if !k.loaded {
		return nil, ErrNotLoaded
	}
	return bytes.Clone(k.publicKey), nil
}

// PublicKeyCiphertext encapsulates against the public key and returns only
// the ciphertext. Every call produces a new ciphertext.
func (k *KeyStore) PublicKeyCiphertext(ctx context.Context) ([]byte, error) {
	res, err := k.Encapsulate(ctx)
	if err != nil {
		return nil, err
	}
	return res.Ciphertext, nil
}

// Encapsulate runs one encapsulation against the public key. The work runs
// off the calling goroutine so a cancelled ctx returns immediately.
func (k *KeyStore) Encapsulate(ctx context.Context) (EncapsulationResult, error) {
	publicKey, err := k.PublicKey()
	if err != nil {
		return EncapsulationResult{}, err
	}

	type outcome struct {
		res EncapsulationResult
		err error
	}
	done := make(chan outcome, 1)

	start := time.Now()
	go func() {
		ciphertext, sharedSecret, err := k.kem.Encapsulate(publicKey)
		done <- outcome{
			res: EncapsulationResult{Ciphertext: ciphertext, SharedSecret: sharedSecret},
			err: err,
		}
	}()

	select {
	case <-ctx.Done():
		return EncapsulationResult{}, ctx.Err()
	case out := <-done:
		if out.err != nil {
			return EncapsulationResult{}, fmt.Errorf("encapsulation failed: %w", out.err)
		}
		k.log.Debug("Encapsulated against public key", slog.Duration("duration", time.Since(start)))
		return out.res, nil
	}
}
