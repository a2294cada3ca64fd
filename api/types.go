package api

// AuthRequest is the body of POST /auth/recv.
type AuthRequest struct {
	// Code is the 6-digit one-time code from the user's authenticator.
	Code string `json:"code"`
}

// AuthResponse is returned after a successful authentication. Both fields
// are lowercase hex.
type AuthResponse struct {
	// PrivateKey is the gateway's static private key.
	PrivateKey string `json:"privateKey"`

	// CipherText is a key-encapsulation ciphertext against the gateway's
	// public key. Present only when key exchange is enabled.
	CipherText string `json:"cipherText,omitempty"`
}

// MessageResponse is the body of GET /.
type MessageResponse struct {
	Message string `json:"message"`
}

// Error messages returned in {"error": ...} bodies.
const (
	MsgInvalidRequestBody    = "Invalid request body"
	MsgAuthenticationFailure = "Authentication failure"
)
