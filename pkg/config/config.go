// Package config resolves the application configuration from, in
// ascending precedence: defaults, an optional yaml config file, CARNET_*
// environment variables, and command-line flags.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
	"gopkg.in/yaml.v3"

	"github.com/adigitale/carnet/pkg/models"
)

// Backend names accepted by the store selector.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

type Config struct {
	// DataDir holds the persisted state (JSON files or the SQLite db).
	DataDir string `mapstructure:"data_dir"`

	// Backend selects the storage implementation: "file" or "sqlite".
	Backend string `mapstructure:"backend"`

	// Language picks the locale for reminder messages: "fr" or "ar".
	Language string `mapstructure:"language"`
}

// Build loads configuration. An empty cfgFile falls back to ./config.yaml
// when present; a missing default file is not an error. flags may be nil.
func Build(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	_ = gotenv.Load() // optional .env, ignored when absent

	v := viper.New()
	v.SetDefault("data_dir", defaultDataDir())
	v.SetDefault("backend", BackendFile)
	v.SetDefault("language", "fr")

	v.SetEnvPrefix("CARNET")
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	if flags != nil {
		bind := map[string]string{
			"data_dir": "data-dir",
			"backend":  "backend",
			"language": "lang",
		}
		for key, name := range bind {
			if f := flags.Lookup(name); f != nil && f.Changed {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}
	if cfg.Backend != BackendFile && cfg.Backend != BackendSQLite {
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
	return &cfg, nil
}

// LoadMerchantFile parses a merchant configuration from a yaml file.
func LoadMerchantFile(path string) (models.MerchantConfig, error) {
	var cfg models.MerchantConfig

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read merchant file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse merchant yaml: %w", err)
	}
	if cfg.Name == "" {
		return cfg, fmt.Errorf("merchant file %s has no name", path)
	}
	return cfg, nil
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".carnet"
	}
	return filepath.Join(home, ".carnet")
}
