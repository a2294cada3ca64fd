// Package interfaces defines the contracts between the components of the
// gateway, separating interface definitions from implementations.
//
// # Authentication
//
// CodeVerifier checks a one-time code against the shared secret. The totp
// package provides the implementation; handlers depend only on the interface.
//
// # Key Material
//
// KeyMaterial exposes the long-lived private key and drives key
// encapsulation against the public key. It is implemented by kms.KeyStore.
//
// # Byte Sources
//
// ByteSource is a location key material is loaded from at boot (local files,
// S3, Vault, IPFS). ByteSourceFactory creates sources from location strings.
//
// # Error Types
//
//   - ErrSourceNotFound: the location holds no content
//   - ErrBackendUnavailable: the backend behind a location is not reachable
//   - ErrInvalidLocationURI: a location string is malformed
package interfaces
