package authhandler

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/ruteri/sbc-auth-gateway/api"
	"github.com/ruteri/sbc-auth-gateway/interfaces"
	"github.com/ruteri/sbc-auth-gateway/metrics"
	"github.com/ruteri/sbc-auth-gateway/router"
)

// MaxBodySize is the largest accepted request body.
const MaxBodySize = 4 << 10

// Handler authenticates TOTP codes and hands out key material.
// It holds no per-request state; with PolicyStable it caches one ciphertext.
type Handler struct {
	verifier interfaces.CodeVerifier
	keys     interfaces.KeyMaterial
	cfg      Config
	now      func() time.Time
	log      *slog.Logger
	metrics  *metrics.Recorder

	mu               sync.Mutex
	stableCiphertext []byte
}

// NewHandler creates the handler.
//
// Parameters:
//   - verifier: checks codes against cfg.Secret
//   - keys: key material handed out on success, must be booted
//   - cfg: secret and key exchange settings
//   - log: structured logger
//   - recorder: metrics recorder, may be nil
func NewHandler(verifier interfaces.CodeVerifier, keys interfaces.KeyMaterial, cfg Config, log *slog.Logger, recorder *metrics.Recorder) *Handler {
	if cfg.CiphertextPolicy == "" {
		cfg.CiphertextPolicy = PolicyFresh
	}
	return &Handler{
		verifier: verifier,
		keys:     keys,
		cfg:      cfg,
		now:      time.Now,
		log:      log,
		metrics:  recorder,
	}
}

// WithClock replaces the time source used for verification.
func (h *Handler) WithClock(now func() time.Time) *Handler {
	h.now = now
	return h
}

// Actions returns the routes served by the handler:
//   - POST /auth/recv - exchange a TOTP code for key material
func (h *Handler) Actions() []router.Action {
	return []router.Action{
		{Method: http.MethodPost, Path: "/auth/recv", Handler: h.HandleReceive},
	}
}

// HandleReceive validates the body, verifies the code and issues the key
// material. Returned errors become 500 responses.
func (h *Handler) HandleReceive(r *http.Request) (any, error) {
	code, ok := readCode(r.Body)
	if !ok {
		h.metrics.ObserveAuth(metrics.OutcomeInvalidRequest)
		return router.Error(http.StatusBadRequest, api.MsgInvalidRequestBody), nil
	}

	valid, err := h.verifier.Verify(h.cfg.Secret, code, h.now())
	if err != nil {
		h.metrics.ObserveAuth(metrics.OutcomeError)
		return nil, fmt.Errorf("could not verify code: %w", err)
	}
	if !valid {
		h.log.Warn("Authentication failed", slog.String("remote_addr", r.RemoteAddr))
		h.metrics.ObserveAuth(metrics.OutcomeFailure)
		return router.Error(http.StatusUnauthorized, api.MsgAuthenticationFailure), nil
	}

	resp, err := h.issue(r)
	if err != nil {
		h.metrics.ObserveAuth(metrics.OutcomeError)
		return nil, err
	}

	h.log.Info("Authentication succeeded",
		slog.String("remote_addr", r.RemoteAddr),
		slog.Bool("key_exchange", resp.CipherText != ""))
	h.metrics.ObserveAuth(metrics.OutcomeSuccess)
	return router.OK(resp), nil
}

func (h *Handler) issue(r *http.Request) (*api.AuthResponse, error) {
	privateKey, err := h.keys.PrivateKey()
	if err != nil {
		return nil, fmt.Errorf("could not get private key: %w", err)
	}
	resp := &api.AuthResponse{PrivateKey: hex.EncodeToString(privateKey)}

	if !h.cfg.KeyExchange {
		return resp, nil
	}

	ciphertext, err := h.ciphertext(r)
	if err != nil {
		return nil, fmt.Errorf("could not encapsulate: %w", err)
	}
	resp.CipherText = hex.EncodeToString(ciphertext)
	return resp, nil
}

func (h *Handler) ciphertext(r *http.Request) ([]byte, error) {
	if h.cfg.CiphertextPolicy != PolicyStable {
		return h.encapsulate(r)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.stableCiphertext == nil {
		ciphertext, err := h.encapsulate(r)
		if err != nil {
			return nil, err
		}
		h.stableCiphertext = ciphertext
	}
	return h.stableCiphertext, nil
}

func (h *Handler) encapsulate(r *http.Request) ([]byte, error) {
	start := time.Now()
	ciphertext, err := h.keys.PublicKeyCiphertext(r.Context())
	if err != nil {
		return nil, err
	}
	h.metrics.ObserveEncapsulation(time.Since(start))
	return ciphertext, nil
}

// readCode accepts only a JSON object whose "code" member is a string.
func readCode(body io.Reader) (string, bool) {
	if body == nil {
		return "", false
	}
	data, err := io.ReadAll(io.LimitReader(body, MaxBodySize+1))
	if err != nil || len(data) > MaxBodySize {
		return "", false
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil || fields == nil {
		return "", false
	}

	raw, ok := fields["code"]
	if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return "", false
	}

	var code string
	if err := json.Unmarshal(raw, &code); err != nil {
		return "", false
	}
	return code, true
}
