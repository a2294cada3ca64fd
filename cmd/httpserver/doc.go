// Command httpserver runs the TOTP-authenticated key-exchange gateway.
//
// At startup the gateway validates the TOTP secret, loads the ML-KEM-768 key
// pair from the configured locations and refuses to start if either key is
// missing. It then serves:
//
//	GET  /           {"message":"Hello, world!"}
//	POST /auth/recv  exchange a TOTP code for key material
//
// plus health, drain and optional pprof endpoints, and Prometheus metrics on
// a separate listener.
//
// Every setting can be given as a flag or through the environment; a .env
// file in the working directory is loaded first.
//
//	SBC_2FA_SECRET=JBSWY3DPEHPK3PXP \
//	SBC_PUBLIC_KEY=/etc/sbc/public.key.hex \
//	SBC_PRIVATE_KEY=vault://vault.internal:8200/secret/sbc/private.hex \
//	httpserver --totp-skew 1 --log-json
package main
