package main

import (
	"context"
	"fmt"
	"log"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/ruteri/sbc-auth-gateway/api/authhandler"
	"github.com/ruteri/sbc-auth-gateway/api/mainhandler"
	"github.com/ruteri/sbc-auth-gateway/cmd/flags"
	"github.com/ruteri/sbc-auth-gateway/common"
	"github.com/ruteri/sbc-auth-gateway/httpserver"
	"github.com/ruteri/sbc-auth-gateway/kms"
	"github.com/ruteri/sbc-auth-gateway/metrics"
	"github.com/ruteri/sbc-auth-gateway/router"
	"github.com/ruteri/sbc-auth-gateway/storage"
	"github.com/ruteri/sbc-auth-gateway/totp"
	"github.com/urfave/cli/v2"
)

const bootTimeout = 60 * time.Second

var serverFlags = []cli.Flag{
	flags.TotpSecretFlag,
	flags.PublicKeyFlag,
	flags.PrivateKeyFlag,
	flags.HostFlag,
	flags.PortFlag,
	flags.TrustProxyFlag,
	flags.TotpSkewFlag,
	flags.KeyExchangeFlag,
	flags.CiphertextPolicyFlag,
	flags.LogServiceFlagFn("sbc-gateway"),
}

func main() {
	app := &cli.App{
		Name:    "sbc-gateway",
		Usage:   "Hand out key material to clients presenting a valid TOTP code",
		Version: common.Version,
		Flags:   append(serverFlags, flags.CommonFlags...),
		Action:  runServer,
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func runServer(cCtx *cli.Context) error {
	logger := flags.SetupLogger(cCtx)

	secret := cCtx.String(flags.TotpSecretFlag.Name)
	if _, err := totp.DecodeBase32(secret); err != nil {
		return fmt.Errorf("invalid --%s: %w", flags.TotpSecretFlag.Name, err)
	}

	skew := cCtx.Int(flags.TotpSkewFlag.Name)
	if skew < 0 || skew > totp.MaxSkew {
		return fmt.Errorf("--%s must be between 0 and %d", flags.TotpSkewFlag.Name, totp.MaxSkew)
	}

	policy, err := authhandler.ParseCiphertextPolicy(cCtx.String(flags.CiphertextPolicyFlag.Name))
	if err != nil {
		return err
	}
	if policy == authhandler.PolicyStable {
		logger.Warn("Stable ciphertext policy enabled, all clients will share one encapsulated secret")
	}

	// Key material must be loaded before the listener is bound.
	sourceFactory := storage.NewByteSourceFactory(logger)
	publicSource, err := sourceFactory.ByteSourceFor(cCtx.String(flags.PublicKeyFlag.Name))
	if err != nil {
		return fmt.Errorf("invalid public key location: %w", err)
	}
	privateSource, err := sourceFactory.ByteSourceFor(cCtx.String(flags.PrivateKeyFlag.Name))
	if err != nil {
		return fmt.Errorf("invalid private key location: %w", err)
	}

	keyStore := kms.NewKeyStore(publicSource, privateSource, kms.MLKEM768{}, logger)
	bootCtx, cancel := context.WithTimeout(context.Background(), bootTimeout)
	err = keyStore.Boot(bootCtx)
	cancel()
	if err != nil {
		logger.Error("Failed to load key material", "err", err)
		return err
	}

	listenAddr := net.JoinHostPort(cCtx.String(flags.HostFlag.Name), strconv.Itoa(cCtx.Int(flags.PortFlag.Name)))
	cfg := flags.ConfigureServer(cCtx, logger, listenAddr)

	var metricsSrv *metrics.MetricsServer
	var recorder *metrics.Recorder
	if cfg.MetricsAddr != "" {
		metricsSrv, err = metrics.New(common.PackageName, cfg.MetricsAddr)
		if err != nil {
			return err
		}
		recorder = metricsSrv.Recorder()
	}

	authHandler := authhandler.NewHandler(
		totp.Verifier{Skew: skew},
		keyStore,
		authhandler.Config{
			Secret:           secret,
			KeyExchange:      cCtx.Bool(flags.KeyExchangeFlag.Name),
			CiphertextPolicy: policy,
		},
		logger,
		recorder,
	)

	registry, err := router.NewRegistry(mainhandler.NewHandler(), authHandler)
	if err != nil {
		return fmt.Errorf("failed to register routes: %w", err)
	}

	server, err := httpserver.New(cfg, router.NewDispatcher(registry, logger), metricsSrv)
	if err != nil {
		logger.Error("Failed to create server", "err", err)
		return err
	}

	if err := server.RunInBackground(); err != nil {
		logger.Error("Failed to start server", "err", err)
		return err
	}

	exit := make(chan os.Signal, 1)
	signal.Notify(exit, os.Interrupt, syscall.SIGTERM)
	<-exit
	logger.Info("Shutdown signal received")

	server.Shutdown()
	logger.Info("Server shutdown complete")
	return nil
}
