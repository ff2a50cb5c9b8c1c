// Package config reads the sweeper's run configuration from the environment.
package config

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"tron/sweeper/internal/constants"
	"tron/sweeper/internal/models"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ConfigError reports a missing or malformed setting. It is always fatal.
type ConfigError struct {
	Var    string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config %s: %s", e.Var, e.Reason)
}

// Config is built once at startup and never mutated afterwards.
type Config struct {
	MasterPrivateKey string
	SlaveAddress     string
	Network          string
	APIKey           string
	Endpoints        []models.Endpoint
	LogLevel         string
	JournalPath      string
	ConfirmDelay     time.Duration
}

type LookupFunc func(key string) (string, bool)

// Load reads an optional .env file from the working directory and then the
// process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, &ConfigError{Var: ".env", Reason: err.Error()}
	}
	return FromLookup(os.LookupEnv)
}

func FromLookup(lookup LookupFunc) (*Config, error) {
	get := func(key string) string {
		v, _ := lookup(key)
		return strings.TrimSpace(v)
	}

	cfg := &Config{
		MasterPrivateKey: get("MASTER_PRIVATE_KEY"),
		SlaveAddress:     get("SLAVE_ADDRESS"),
		Network:          get("NETWORK"),
		APIKey:           get("API_KEY"),
		LogLevel:         get("LOG_LEVEL"),
		JournalPath:      get("JOURNAL_PATH"),
		ConfirmDelay:     constants.DefaultConfirmDelay,
	}

	if cfg.MasterPrivateKey == "" {
		return nil, &ConfigError{Var: "MASTER_PRIVATE_KEY", Reason: "not set"}
	}
	if cfg.SlaveAddress == "" {
		return nil, &ConfigError{Var: "SLAVE_ADDRESS", Reason: "not set"}
	}
	if len(cfg.MasterPrivateKey) != constants.PrivateKeyHexLength {
		return nil, &ConfigError{
			Var:    "MASTER_PRIVATE_KEY",
			Reason: fmt.Sprintf("expected %d hex characters, got %d", constants.PrivateKeyHexLength, len(cfg.MasterPrivateKey)),
		}
	}
	if _, err := hex.DecodeString(cfg.MasterPrivateKey); err != nil {
		return nil, &ConfigError{Var: "MASTER_PRIVATE_KEY", Reason: "not a hex string"}
	}

	switch cfg.Network {
	case "":
		cfg.Network = constants.NetworkMainnet
	case constants.NetworkMainnet, constants.NetworkTestnet:
	default:
		return nil, &ConfigError{Var: "NETWORK", Reason: fmt.Sprintf("unknown network %q", cfg.Network)}
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = constants.DefaultLogLevel
	}

	if v := get("CONFIRM_DELAY"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d < 0 {
			return nil, &ConfigError{Var: "CONFIRM_DELAY", Reason: fmt.Sprintf("invalid duration %q", v)}
		}
		cfg.ConfirmDelay = d
	}

	if path := get("ENDPOINTS_FILE"); path != "" {
		eps, err := LoadEndpoints(path, cfg.APIKey)
		if err != nil {
			return nil, &ConfigError{Var: "ENDPOINTS_FILE", Reason: err.Error()}
		}
		cfg.Endpoints = eps
	} else {
		cfg.Endpoints = DefaultEndpoints(cfg.Network, cfg.APIKey)
	}

	return cfg, nil
}

// DefaultEndpoints returns the built-in node list for a network, in failover order
func DefaultEndpoints(network string, apiKey string) []models.Endpoint {
	if network == constants.NetworkTestnet {
		return models.NewEndpoints(constants.TestnetEndpoints, apiKey)
	}
	return models.NewEndpoints(constants.MainnetEndpoints, apiKey)
}

type endpointsFile struct {
	Endpoints []models.Endpoint `yaml:"endpoints"`
}

// LoadEndpoints reads an ordered endpoint list from YAML. Entries without an
// api_key inherit apiKey.
func LoadEndpoints(path string, apiKey string) ([]models.Endpoint, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open endpoints: %w", err)
	}
	defer file.Close()

	var f endpointsFile
	if err := yaml.NewDecoder(file).Decode(&f); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	if len(f.Endpoints) == 0 {
		return nil, fmt.Errorf("no endpoints in %s", path)
	}

	out := make([]models.Endpoint, 0, len(f.Endpoints))
	for i, ep := range f.Endpoints {
		if ep.URL == "" {
			return nil, fmt.Errorf("endpoint %d has no url", i)
		}
		ep.URL = strings.TrimRight(ep.URL, "/")
		if ep.APIKey == "" {
			ep.APIKey = apiKey
		}
		out = append(out, ep)
	}
	return out, nil
}
