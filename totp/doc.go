// Package totp implements the RFC 6238 time-based one-time passwords used to
// authenticate clients of the gateway.
//
// Codes are six decimal digits derived with HMAC-SHA1 from a base32-encoded
// shared secret and a 30 second time step. All functions are pure: the secret
// and the time are always passed in explicitly, nothing is read from the
// environment or the wall clock.
//
// # Verification
//
// Verify accepts only the exact time step containing the given time. Verifier
// adds an optional window of Skew steps on either side for deployments that
// need to tolerate clock drift:
//
//	v := totp.Verifier{Skew: 1}
//	ok, err := v.Verify(secret, code, time.Now())
//
// Comparisons use crypto/subtle, so the time taken does not depend on where a
// candidate first differs from the expected code.
//
// # Provisioning
//
// GenerateSecret draws new secrets from crypto/rand and ProvisioningURI builds
// the otpauth:// URI consumed by authenticator apps.
package totp
