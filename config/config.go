package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port        int
	DatabaseDSN string

	RPCURL  string
	ChainID int64

	ScanWindowBlocks uint64
	ScanMaxResults   int
	ScanRatePerSec   int
	ScanTimeout      time.Duration
}

func Load() *Config {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	viper.SetDefault("server.port", 8080)
	viper.SetDefault("database.dsn", "host=localhost user=postgres password=postgres dbname=ecorewards port=5432 sslmode=disable")
	viper.SetDefault("chain.rpc_url", "https://mainnet.infura.io/v3/YOUR_KEY")
	viper.SetDefault("chain.id", 1)
	viper.SetDefault("scan.window_blocks", 10)
	viper.SetDefault("scan.max_results", 20)
	viper.SetDefault("scan.rate_per_sec", 10)
	viper.SetDefault("scan.timeout", "30s")

	viper.SetEnvPrefix("ECOREWARDS")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		fmt.Println("No config file found, using defaults")
	}

	return &Config{
		Port:             viper.GetInt("server.port"),
		DatabaseDSN:      viper.GetString("database.dsn"),
		RPCURL:           viper.GetString("chain.rpc_url"),
		ChainID:          viper.GetInt64("chain.id"),
		ScanWindowBlocks: viper.GetUint64("scan.window_blocks"),
		ScanMaxResults:   viper.GetInt("scan.max_results"),
		ScanRatePerSec:   viper.GetInt("scan.rate_per_sec"),
		ScanTimeout:      viper.GetDuration("scan.timeout"),
	}
}
