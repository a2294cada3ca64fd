package authhandler

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/ruteri/sbc-auth-gateway/api"
	"github.com/ruteri/sbc-auth-gateway/router"
)

var (
	// ErrAuthenticationRejected is returned when the gateway answers 401.
	ErrAuthenticationRejected = errors.New("authentication rejected")

	// ErrBadRequest is returned when the gateway answers 400.
	ErrBadRequest = errors.New("request rejected")
)

// Keys is the decoded key material of an AuthResponse.
type Keys struct {
	PrivateKey []byte
	// CipherText is nil when the gateway runs without key exchange.
	CipherText []byte
}

// Authenticate sends code to the gateway at url (e.g. "http://localhost:4500")
// and returns the decoded key material.
func Authenticate(url, code string) (*Keys, error) {
	payload, err := json.Marshal(api.AuthRequest{Code: code})
	if err != nil {
		return nil, fmt.Errorf("could not encode request: %w", err)
	}

	req, err := http.NewRequest(
		http.MethodPost,
		strings.TrimSuffix(url, "/")+"/auth/recv",
		bytes.NewReader(payload),
	)
	if err != nil {
		return nil, fmt.Errorf("could not initialize request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("could not request keys: %w", err)
	}

	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("could not read auth response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp router.ErrorBody
		_ = json.Unmarshal(body, &errResp)

		switch resp.StatusCode {
		case http.StatusUnauthorized:
			return nil, fmt.Errorf("%w: %s", ErrAuthenticationRejected, errResp.Error)
		case http.StatusBadRequest:
			return nil, fmt.Errorf("%w: %s", ErrBadRequest, errResp.Error)
		default:
			return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, errResp.Error)
		}
	}

	var authResp api.AuthResponse
	if err := json.Unmarshal(body, &authResp); err != nil {
		return nil, fmt.Errorf("could not parse auth response: %w", err)
	}

	return DecodeKeys(&authResp)
}

// DecodeKeys decodes the hex fields of an AuthResponse.
func DecodeKeys(resp *api.AuthResponse) (*Keys, error) {
	privateKey, err := hex.DecodeString(resp.PrivateKey)
	if err != nil {
		return nil, fmt.Errorf("could not decode private key: %w", err)
	}

	keys := &Keys{PrivateKey: privateKey}
	if resp.CipherText != "" {
		keys.CipherText, err = hex.DecodeString(resp.CipherText)
		if err != nil {
			return nil, fmt.Errorf("could not decode ciphertext: %w", err)
		}
	}
	return keys, nil
}
