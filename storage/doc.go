// Package storage provides the byte sources key material is loaded from.
//
// A byte source is a single location: a local file, an S3 object, a Vault KV
// v2 secret or an IPFS path. Sources are created from location strings by
// ByteSourceFactory:
//
//	/etc/sbc/private.key                                  (bare path)
//	file:///etc/sbc/public.key.hex
//	s3://[ACCESS_KEY:SECRET_KEY@]bucket/keys/public.key?region=eu-west-1&endpoint=minio:9000
//	vault://vault.internal:8200/secret/sbc/private.hex?field=key&scheme=https
//	ipfs://127.0.0.1:5001/QmHash/public.key?timeout=30s
//
// Several locations separated by commas form a MultiSource which returns the
// content of the first location that can be read.
//
// # Encoding
//
// The last path element decides how fetched bytes are interpreted. Names
// ending in ".hex" hold hex-encoded text (surrounding whitespace and an
// optional 0x prefix are ignored), everything else holds raw binary. Both
// produce the same key bytes.
//
// # Credentials
//
// S3 credentials may be embedded in the URI; otherwise the AWS SDK default
// chain is used. Vault uses the token from VAULT_TOKEN. Credentials are never
// included in LocationURI.
package storage
