/*
Package api contains the HTTP surface of the gateway.

The subpackages hold the controllers registered with the router:

  - authhandler - POST /auth/recv, the TOTP-authenticated key handout
  - mainhandler - GET /, a static greeting

This package holds the request and response types shared by handlers and
clients, and the HTTP server configuration.

# Authentication Flow

 1. The client sends {"code": "123456"} to POST /auth/recv.
 2. The body must be a JSON object with a string code, otherwise the gateway
    answers 400 {"error":"Invalid request body"}.
 3. The code is checked against the configured TOTP secret for the current
    30-second step. A mismatch answers 401 {"error":"Authentication failure"}.
 4. On success the gateway answers 200 with the private key and, when key
    exchange is enabled, a fresh ML-KEM-768 ciphertext, both hex-encoded.

The client decapsulates the ciphertext with the private key and derives a
channel key from the shared secret (see kms.DeriveChannelKey).

# Security Model

The gateway does not terminate TLS. It must run behind a TLS-terminating
proxy or on a trusted network; set TrustProxy so request logs carry the
client address forwarded by the proxy.
*/
package api
