package config

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/dutch-auction/common"
	auctionconfig "github.com/gaze-network/dutch-auction/modules/auction/config"
	"github.com/gaze-network/dutch-auction/pkg/logger"
	"github.com/gaze-network/dutch-auction/pkg/logger/slogx"
	"github.com/gaze-network/dutch-auction/pkg/middleware/requestlogger"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var (
	isInit     bool
	mu         sync.Mutex
	config     = &Config{}
	defaultKVs = map[string]any{
		"logger.output":                  "text",
		"network":                        common.NetworkMainnet,
		"bitcoin_node.host":              "bitcoind:8332",
		"bitcoin_node.user":              "rpc",
		"bitcoin_node.pass":              "rpc",
		"bitcoin_node.disable_tls":       true,
		"http_server.port":               8080,
		"metrics.enabled":                true,
		"metrics.path":                   "/metrics",
		"auction.counterparty.url":       "https://api.counterparty.io:4000",
		"auction.counterparty.timeout":   10 * time.Second,
		"auction.zmq.enabled":            true,
		"auction.zmq.block_url":          "tcp://bitcoind:9333",
		"auction.zmq.tx_url":             "tcp://bitcoind:9332",
		"auction.zmq.receive_timeout":    time.Second,
		"auction.monitor.block_interval": 300 * time.Second,
		"auction.monitor.utxo_interval":  300 * time.Second,
		"auction.monitor.batch_size":     50,
	}
)

type Config struct {
	Logger      logger.Config        `mapstructure:"logger"`
	BitcoinNode BitcoinNodeClient    `mapstructure:"bitcoin_node"`
	Network     common.Network       `mapstructure:"network"`
	HTTPServer  HTTPServerConfig     `mapstructure:"http_server"`
	Metrics     MetricsConfig        `mapstructure:"metrics"`
	Auction     auctionconfig.Config `mapstructure:"auction"`
	APIOnly     bool                 `mapstructure:"api_only"`
}

type BitcoinNodeClient struct {
	Host       string `mapstructure:"host"`
	User       string `mapstructure:"user"`
	Pass       string `mapstructure:"pass"`
	DisableTLS bool   `mapstructure:"disable_tls"`
}

type HTTPServerConfig struct {
	Port   int                  `mapstructure:"port"`
	Logger requestlogger.Config `mapstructure:"logger"`
}

type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// Parse parse the configuration from environment variables
func Parse(configFile ...string) Config {
	mu.Lock()
	defer mu.Unlock()
	return parse(configFile...)
}

// Load returns the loaded configuration
func Load() Config {
	mu.Lock()
	defer mu.Unlock()
	if isInit {
		return *config
	}
	return parse()
}

// BindPFlag binds a specific key to a pflag (as used by cobra).
// Example (where serverCmd is a Cobra instance):
//
//	serverCmd.Flags().Int("port", 1138, "Port to run Application server on")
//	Viper.BindPFlag("port", serverCmd.Flags().Lookup("port"))
func BindPFlag(key string, flag *pflag.Flag) {
	if err := viper.BindPFlag(key, flag); err != nil {
		logger.Panic("Something went wrong, failed to bind flag for config", slog.String("package", "config"), slogx.Error(err))
	}
}

// SetDefault sets the default value for this key.
// SetDefault is case-insensitive for a key.
// Default only used when no value is provided by the user via flag, config or ENV.
func SetDefault(key string, value any) { viper.SetDefault(key, value) }

func parse(configFile ...string) Config {
	ctx := logger.WithContext(context.Background(), slog.String("package", "config"))

	if len(configFile) > 0 && configFile[0] != "" {
		viper.SetConfigFile(configFile[0])
	} else {
		viper.AddConfigPath("./")
		viper.SetConfigName("config")
	}

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for k, v := range defaultKVs {
		viper.SetDefault(k, v)
	}

	if err := viper.ReadInConfig(); err != nil {
		var errNotfound viper.ConfigFileNotFoundError
		if errors.As(err, &errNotfound) {
			logger.WarnContext(ctx, "Config file not found, use default config value", slogx.Error(err))
		} else {
			logger.PanicContext(ctx, "Invalid config file", slogx.Error(err))
		}
	}

	if err := viper.Unmarshal(&config); err != nil {
		logger.PanicContext(ctx, "Something went wrong, failed to unmarshal config", slogx.Error(err))
	}

	isInit = true
	return *config
}
