package main

import (
	"os"

	"github.com/go-errors/errors"
	"gopkg.in/yaml.v3"

	"github.com/qfactor/qfactor"
	"github.com/qfactor/qfactor/big"
	"github.com/qfactor/qfactor/keygen"
)

// Config holds the parameters of every subcommand. Values from the config file
// replace the defaults, and flags given on the command line replace both.
type Config struct {
	Verbose bool                `yaml:"verbose"`
	Sieve   qfactor.SieveParams `yaml:"sieve"`
	Period  PeriodConfig        `yaml:"period"`
	Keygen  keygen.Params       `yaml:"keygen"`
}

// PeriodConfig configures period-based factoring.
type PeriodConfig struct {
	// Bases are tried in order.
	Bases []*big.Int `yaml:"bases"`
	// Bits is the register width of the phase samples; 0 means 2*ceil(log2 n).
	Bits uint `yaml:"bits"`
}

func DefaultConfig() *Config {
	return &Config{
		Sieve: qfactor.DefaultSieveParams(),
		Period: PeriodConfig{
			Bases: []*big.Int{big.NewInt(2), big.NewInt(7), big.NewInt(11), big.NewInt(13)},
		},
		Keygen: keygen.Params{
			Exponent:    keygen.DefaultExponent,
			MaxAttempts: keygen.DefaultMaxAttempts,
		},
	}
}

// LoadConfig reads a YAML config file on top of DefaultConfig.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapPrefix(err, "reading config", 0)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.WrapPrefix(err, "parsing config "+path, 0)
	}
	return cfg, nil
}
