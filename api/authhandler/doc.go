// Package authhandler implements POST /auth/recv, the endpoint that trades a
// valid TOTP code for the gateway's key material, and a client for it.
//
// Request:
//
//	POST /auth/recv
//	{"code": "123456"}
//
// Responses:
//
//	200 {"privateKey": "<hex>", "cipherText": "<hex>"}
//	400 {"error": "Invalid request body"}
//	401 {"error": "Authentication failure"}
//	500 {"error": "Internal server error"}
//
// cipherText is only present when key exchange is enabled. With the fresh
// ciphertext policy every successful request gets a new encapsulation; with
// the stable policy the first ciphertext is reused for the process lifetime.
package authhandler
