package totp

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha1"
	"crypto/subtle"
	"encoding/binary"
	"fmt"
	"net/url"
	"strconv"
	"time"
)

const (
	DefaultPeriod = 30 // seconds per time step
	DefaultDigits = 6

	// MaxSkew bounds the verification window on either side of the current step.
	MaxSkew = 10
)

var pow10 = [...]uint32{1, 10, 100, 1000, 10000, 100000, 1000000, 10000000, 100000000, 1000000000}

// Counter returns the time step containing t, floor(unix / DefaultPeriod).
func Counter(t time.Time) uint64 {
	unix := t.Unix()
	step := unix / DefaultPeriod
	if unix < 0 && unix%DefaultPeriod != 0 {
		step--
	}
	return uint64(step)
}

// HOTP computes an RFC 4226 code for key and counter using HMAC-SHA1 and
// dynamic truncation. digits must be between 1 and 9.
func HOTP(key []byte, counter uint64, digits int) (string, error) {
	if digits < 1 || digits >= len(pow10) {
		return "", fmt.Errorf("%w: %d", ErrInvalidDigits, digits)
	}

	var msg [8]byte
	binary.BigEndian.PutUint64(msg[:], counter)

	mac := hmac.New(sha1.New, key)
	mac.Write(msg[:])
	sum := mac.Sum(nil)

	offset := sum[len(sum)-1] & 0x0F
	code := binary.BigEndian.Uint32(sum[offset:offset+4]) & 0x7FFFFFFF
	code %= pow10[digits]

	return fmt.Sprintf("%0*d", digits, code), nil
}

// Generate returns the code for secret in the time step containing t.
// The secret is decoded on every call.
func Generate(secret string, t time.Time) (string, error) {
	key, err := DecodeBase32(secret)
	if err != nil {
		return "", err
	}
	return HOTP(key, Counter(t), DefaultDigits)
}

// Verify reports whether candidate is the code for secret in the time step
// containing t. Only that exact step is accepted.
//
// A malformed secret is reported as ErrInvalidEncoding rather than as a
// mismatch, since it points at configuration rather than at the caller.
func Verify(secret, candidate string, t time.Time) (bool, error) {
	generated, err := Generate(secret, t)
	if err != nil {
		return false, err
	}
	return equalCodes(generated, candidate), nil
}

// equalCodes compares in time independent of the position of the first
// differing byte. Inputs of different length never match.
func equalCodes(expected, candidate string) bool {
	return subtle.ConstantTimeCompare([]byte(expected), []byte(candidate)) == 1
}

// Verifier checks codes against a window of Skew steps on either side of the
// current one. The zero value accepts the current step only. Skew above
// MaxSkew is treated as MaxSkew.
type Verifier struct {
	Skew int
}

// Verify implements interfaces.CodeVerifier.
func (v Verifier) Verify(secret, candidate string, t time.Time) (bool, error) {
	if v.Skew <= 0 {
		return Verify(secret, candidate, t)
	}

	key, err := DecodeBase32(secret)
	if err != nil {
		return false, err
	}

	skew := min(v.Skew, MaxSkew)
	counter := Counter(t)
	match := 0
	for i := -skew; i <= skew; i++ {
		expected, err := HOTP(key, counter+uint64(int64(i)), DefaultDigits)
		if err != nil {
			return false, err
		}
		match |= subtle.ConstantTimeCompare([]byte(expected), []byte(candidate))
	}
	return match == 1, nil
}

// GenerateSecret returns a random base32 string of length symbols drawn from
// crypto/rand.
func GenerateSecret(length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("%w: %d", ErrInvalidLength, length)
	}

	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}

	// 256 is a multiple of 32, so masking keeps the distribution uniform.
	for i := range buf {
		buf[i] = Alphabet[buf[i]&0x1F]
	}
	return string(buf), nil
}

// URIParams describes an otpauth:// key URI.
type URIParams struct {
	Secret      string
	AccountName string
	Issuer      string
}

// ProvisioningURI builds the key URI understood by authenticator apps.
func ProvisioningURI(params URIParams) (string, error) {
	if params.Secret == "" {
		return "", ErrMissingSecret
	}
	if params.AccountName == "" {
		return "", ErrMissingAccountName
	}
	if _, err := DecodeBase32(params.Secret); err != nil {
		return "", err
	}

	label := params.AccountName
	if params.Issuer != "" {
		label = params.Issuer + ":" + params.AccountName
	}

	q := url.Values{}
	q.Set("secret", params.Secret)
	q.Set("algorithm", "SHA1")
	q.Set("digits", strconv.Itoa(DefaultDigits))
	q.Set("period", strconv.Itoa(DefaultPeriod))
	if params.Issuer != "" {
		q.Set("issuer", params.Issuer)
	}

	u := url.URL{
		Scheme:   "otpauth",
		Host:     "totp",
		Path:     "/" + label,
		RawQuery: q.Encode(),
	}
	return u.String(), nil
}
