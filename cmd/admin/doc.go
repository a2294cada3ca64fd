// Command admin provisions the gateway and exercises it from the client side.
//
// Commands:
//
//	secret     - generate a TOTP secret, its otpauth:// URI and optionally a QR code
//	keygen     - generate an ML-KEM-768 key pair (raw or .hex files)
//	code       - print the current code for a secret
//	handshake  - authenticate, decapsulate the returned ciphertext and print the
//	             derived channel key
//
// Example:
//
//	admin secret --account ops@example.com --qr-file totp.png
//	admin keygen --public-key-file public.key.hex --private-key-file private.key.hex
//	admin handshake --gateway-url http://127.0.0.1:4500 --totp-secret $SBC_2FA_SECRET
package main
