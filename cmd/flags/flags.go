package flags

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/ruteri/sbc-auth-gateway/api"
	"github.com/ruteri/sbc-auth-gateway/common"
	"github.com/urfave/cli/v2"
)

func SetupLogger(cCtx *cli.Context) (log *slog.Logger) {
	logJSON := cCtx.Bool(LogJsonFlag.Name)
	logDebug := cCtx.Bool(LogDebugFlag.Name)
	logUID := cCtx.Bool(LogUidFlag.Name)
	logService := cCtx.String("log-service")

	logger := common.SetupLogger(&common.LoggingOpts{
		Debug:   logDebug,
		JSON:    logJSON,
		Service: logService,
		Version: common.Version,
	})

	if logUID {
		id := uuid.Must(uuid.NewRandom())
		logger = logger.With("uid", id.String())
	}
	return logger
}

func ConfigureServer(cCtx *cli.Context, logger *slog.Logger, listenAddr string) *api.HTTPServerConfig {
	metricsAddr := cCtx.String(MetricsAddrFlag.Name)
	enablePprof := cCtx.Bool(PprofFlag.Name)
	drainDuration := time.Duration(cCtx.Int64(DrainSecondsFlag.Name)) * time.Second

	return &api.HTTPServerConfig{
		ListenAddr:               listenAddr,
		MetricsAddr:              metricsAddr,
		EnablePprof:              enablePprof,
		TrustProxy:               cCtx.Bool(TrustProxyFlag.Name),
		Log:                      logger,
		DrainDuration:            drainDuration,
		GracefulShutdownDuration: 30 * time.Second,
		ReadTimeout:              60 * time.Second,
		WriteTimeout:             30 * time.Second,
	}
}

var TotpSecretFlag = &cli.StringFlag{
	Name:     "totp-secret",
	EnvVars:  []string{"SBC_2FA_SECRET"},
	Required: true,
	Usage:    "base32 TOTP secret shared with the authenticator app",
}

var PublicKeyFlag = &cli.StringFlag{
	Name:     "public-key",
	EnvVars:  []string{"SBC_PUBLIC_KEY"},
	Required: true,
	Usage:    "location of the ML-KEM-768 public key (path, file://, s3://, vault://, ipfs://; .hex suffix for hex text)",
}

var PrivateKeyFlag = &cli.StringFlag{
	Name:     "private-key",
	EnvVars:  []string{"SBC_PRIVATE_KEY"},
	Required: true,
	Usage:    "location of the ML-KEM-768 private key seed (same formats as --public-key)",
}

var HostFlag = &cli.StringFlag{
	Name:    "host",
	EnvVars: []string{"SBC_SERVER_HOST"},
	Value:   "0.0.0.0",
	Usage:   "address to listen on",
}

var PortFlag = &cli.IntFlag{
	Name:    "port",
	EnvVars: []string{"SBC_SERVER_PORT"},
	Value:   4500,
	Usage:   "port to listen on",
}

var TrustProxyFlag = &cli.BoolFlag{
	Name:    "trust-proxy",
	EnvVars: []string{"SBC_SERVER_TRUST_PROXY"},
	Value:   false,
	Usage:   "take client addresses from X-Forwarded-For / X-Real-IP",
}

var TotpSkewFlag = &cli.IntFlag{
	Name:  "totp-skew",
	Value: 0,
	Usage: "number of 30s steps before and after the current one to accept (at most 10)",
}

var KeyExchangeFlag = &cli.BoolFlag{
	Name:  "key-exchange",
	Value: true,
	Usage: "include a key-encapsulation ciphertext in successful responses",
}

var CiphertextPolicyFlag = &cli.StringFlag{
	Name:  "ciphertext-policy",
	Value: "fresh",
	Usage: "'fresh' encapsulates per request, 'stable' reuses the first ciphertext",
}

var LogJsonFlag = &cli.BoolFlag{
	Name:  "log-json",
	Value: false,
	Usage: "log in JSON format",
}
var LogDebugFlag = &cli.BoolFlag{
	Name:  "log-debug",
	Value: false,
	Usage: "log debug messages",
}
var LogUidFlag = &cli.BoolFlag{
	Name:  "log-uid",
	Value: false,
	Usage: "generate a uuid and add to all log messages",
}

var LogServiceFlagFn = func(service string) *cli.StringFlag {
	return &cli.StringFlag{
		Name:  "log-service",
		Value: service,
		Usage: "add 'service' tag to logs",
	}
}

var PprofFlag = &cli.BoolFlag{
	Name:  "pprof",
	Value: false,
	Usage: "enable pprof debug endpoint",
}
var DrainSecondsFlag = &cli.Int64Flag{
	Name:  "drain-seconds",
	Value: 45,
	Usage: "seconds to wait for load balancers after marking the server not ready on shutdown",
}
var MetricsAddrFlag = &cli.StringFlag{
	Name:  "metrics-addr",
	Value: "127.0.0.1:8090",
	Usage: "address to listen on for Prometheus metrics, empty to disable",
}

var CommonFlags = []cli.Flag{
	LogJsonFlag,
	LogDebugFlag,
	LogUidFlag,
	PprofFlag,
	DrainSecondsFlag,
	MetricsAddrFlag,
}
