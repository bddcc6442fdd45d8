package config

import (
	"time"

	"github.com/gaze-network/dutch-auction/internal/postgres"
)

type Config struct {
	Postgres     postgres.Config    `mapstructure:"postgres"`
	APIKey       string             `mapstructure:"api_key"` // Required by POST /api/auctions (X-API-Key header)
	Counterparty CounterpartyConfig `mapstructure:"counterparty"`
	ZMQ          ZMQConfig          `mapstructure:"zmq"`
	Monitor      MonitorConfig      `mapstructure:"monitor"`
}

type CounterpartyConfig struct {
	URL     string        `mapstructure:"url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type ZMQConfig struct {
	Enabled        bool          `mapstructure:"enabled"`
	BlockURL       string        `mapstructure:"block_url"`       // rawblock topic
	TxURL          string        `mapstructure:"tx_url"`          // rawtx topic
	ReceiveTimeout time.Duration `mapstructure:"receive_timeout"` // bounds each receive so shutdown is observed promptly
}

type MonitorConfig struct {
	BlockInterval time.Duration `mapstructure:"block_interval"`
	UTXOInterval  time.Duration `mapstructure:"utxo_interval"`
	BatchSize     int           `mapstructure:"batch_size"` // gettxout calls per batch request
}
