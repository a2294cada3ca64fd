package main

import (
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/ruteri/sbc-auth-gateway/api/authhandler"
	"github.com/ruteri/sbc-auth-gateway/kms"
	"github.com/ruteri/sbc-auth-gateway/storage"
	"github.com/ruteri/sbc-auth-gateway/totp"
	"github.com/skip2/go-qrcode"
	"github.com/urfave/cli/v2"
)

// DefaultChannelInfo is the HKDF info string used by the handshake command.
const DefaultChannelInfo = "sbc-gateway channel key v1"

var flagSecret = &cli.StringFlag{
	Name:    "totp-secret",
	EnvVars: []string{"SBC_2FA_SECRET"},
	Usage:   "base32 TOTP secret",
}

var flagGateway = &cli.StringFlag{
	Name:  "gateway-url",
	Value: "http://127.0.0.1:4500",
	Usage: "gateway base URL",
}

var flagPublicKeyFile = &cli.StringFlag{
	Name:  "public-key-file",
	Value: "public.key.hex",
	Usage: "output path of the public key (.hex suffix writes hex text)",
}

var flagPrivateKeyFile = &cli.StringFlag{
	Name:  "private-key-file",
	Value: "private.key.hex",
	Usage: "output path of the private key seed (.hex suffix writes hex text)",
}

func main() {
	app := &cli.App{
		Name:  "sbc-admin",
		Usage: "Provision and exercise the TOTP key-exchange gateway",
		Commands: []*cli.Command{
			{
				Name:  "secret",
				Usage: "generate a TOTP secret and its otpauth:// provisioning URI",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "length", Value: 32, Usage: "number of base32 characters"},
					&cli.StringFlag{Name: "issuer", Value: "SBC Gateway", Usage: "issuer shown in the authenticator"},
					&cli.StringFlag{Name: "account", Value: "gateway", Usage: "account name shown in the authenticator"},
					&cli.StringFlag{Name: "qr-file", Usage: "write the provisioning URI as a PNG QR code"},
				},
				Action: generateSecret,
			},
			{
				Name:  "keygen",
				Usage: "generate an ML-KEM-768 key pair",
				Flags: []cli.Flag{
					flagPublicKeyFile,
					flagPrivateKeyFile,
				},
				Action: generateKeys,
			},
			{
				Name:   "code",
				Usage:  "print the current TOTP code for a secret",
				Flags:  []cli.Flag{flagSecret},
				Action: printCode,
			},
			{
				Name:  "handshake",
				Usage: "authenticate against a gateway and derive the channel key",
				Flags: []cli.Flag{
					flagGateway,
					flagSecret,
					&cli.StringFlag{Name: "code", Usage: "TOTP code, computed from --totp-secret when empty"},
					&cli.StringFlag{Name: "info", Value: DefaultChannelInfo, Usage: "HKDF info for the channel key"},
				},
				Action: handshake,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func generateSecret(cCtx *cli.Context) error {
	secret, err := totp.GenerateSecret(cCtx.Int("length"))
	if err != nil {
		return err
	}

	uri, err := totp.ProvisioningURI(totp.URIParams{
		Secret:      secret,
		AccountName: cCtx.String("account"),
		Issuer:      cCtx.String("issuer"),
	})
	if err != nil {
		return err
	}

	fmt.Printf("SBC_2FA_SECRET=%s\n", secret)
	fmt.Println(uri)

	if qrFile := cCtx.String("qr-file"); qrFile != "" {
		if err := qrcode.WriteFile(uri, qrcode.Medium, 256, qrFile); err != nil {
			return fmt.Errorf("failed to write QR code: %w", err)
		}
		fmt.Printf("QR code written to %s\n", qrFile)
	}
	return nil
}

func generateKeys(cCtx *cli.Context) error {
	publicKey, privateKey, err := kms.GenerateKeyPair()
	if err != nil {
		return err
	}

	if err := writeKey(cCtx.String(flagPublicKeyFile.Name), publicKey, 0o644); err != nil {
		return err
	}
	return writeKey(cCtx.String(flagPrivateKeyFile.Name), privateKey, 0o600)
}

func writeKey(path string, key []byte, perm os.FileMode) error {
	data := key
	if storage.IsHexName(path) {
		data = []byte(hex.EncodeToString(key) + "\n")
	}
	if err := os.WriteFile(path, data, perm); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	fmt.Printf("Wrote %d-byte key to %s\n", len(key), path)
	return nil
}

func printCode(cCtx *cli.Context) error {
	secret := cCtx.String(flagSecret.Name)
	if secret == "" {
		return errors.New("--totp-secret is required")
	}

	code, err := totp.Generate(secret, time.Now())
	if err != nil {
		return err
	}
	fmt.Println(code)
	return nil
}

func handshake(cCtx *cli.Context) error {
	code := cCtx.String("code")
	if code == "" {
		secret := cCtx.String(flagSecret.Name)
		if secret == "" {
			return errors.New("either --code or --totp-secret is required")
		}
		var err error
		code, err = totp.Generate(secret, time.Now())
		if err != nil {
			return err
		}
	}

	keys, err := authhandler.Authenticate(cCtx.String(flagGateway.Name), code)
	if err != nil {
		return err
	}

	fmt.Printf("privateKey: %d bytes\n", len(keys.PrivateKey))
	if keys.CipherText == nil {
		fmt.Println("gateway runs without key exchange, no channel key derived")
		return nil
	}

	sharedSecret, err := kms.MLKEM768{}.Decapsulate(keys.PrivateKey, keys.CipherText)
	if err != nil {
		return err
	}
	channelKey, err := kms.DeriveChannelKey(sharedSecret, []byte(cCtx.String("info")))
	if err != nil {
		return err
	}

	fmt.Printf("cipherText: %d bytes\n", len(keys.CipherText))
	fmt.Printf("channelKey: %s\n", hex.EncodeToString(channelKey))
	return nil
}
