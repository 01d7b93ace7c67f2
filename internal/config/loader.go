package config

import (
	"strings"

	"github.com/spf13/viper"

	"github.com/turtacn/chem2smiles/pkg/errors"
)

// envPrefix is the environment variable prefix for all settings.
const envPrefix = "CHEM2SMILES"

// newViper builds a pre-configured viper instance: YAML file type,
// CHEM2SMILES_ env prefix, automatic env binding, and a key replacer mapping
// "." → "_" so that "resolver.base_url" resolves to
// CHEM2SMILES_RESOLVER_BASE_URL.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	return v
}

// Load reads the YAML file at configPath, merges CHEM2SMILES_* environment
// overrides, applies defaults for unset fields, and validates the result.
func Load(configPath string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, errors.ErrCodeConfigUnreadable, "failed to read config file %q", configPath)
	}

	return unmarshalAndFinalize(v)
}

// LoadFromEnv builds a Config entirely from CHEM2SMILES_* environment
// variables with no config file required.
func LoadFromEnv() (*Config, error) {
	v := newViper()
	return unmarshalAndFinalize(v)
}

func unmarshalAndFinalize(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to unmarshal configuration")
	}

	ApplyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "configuration validation failed")
	}

	return cfg, nil
}
