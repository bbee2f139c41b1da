// Package config loads and validates the host configuration.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	Database   DatabaseConfig   `mapstructure:"database"`
	Dictionary DictionaryConfig `mapstructure:"dictionary"`
	HTTP       HTTPConfig       `mapstructure:"http"`
	Log        LogConfig        `mapstructure:"log"`
}

type DatabaseConfig struct {
	Path              string `mapstructure:"path" validate:"required"`
	BusyTimeoutMillis int    `mapstructure:"busy_timeout_millis" validate:"min=0"`
}

type DictionaryConfig struct {
	Path string `mapstructure:"path" validate:"required"`
}

// HTTPConfig configures the optional localhost bridge used during
// extension development. The stdio transport is always on.
type HTTPConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Address string `mapstructure:"address" validate:"required_if=Enabled true"`
}

type LogConfig struct {
	Level string `mapstructure:"level" validate:"omitempty,oneof=trace debug info warn error"`
	Path  string `mapstructure:"path"`
}

type ConfigLoader struct {
	viper      *viper.Viper
	validator  *validator.Validate
	translator ut.Translator
}

func NewConfigLoader(configFile string) (*ConfigLoader, error) {
	validate, trans, err := newValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to create new validator: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/wordbridge")
	}

	return &ConfigLoader{
		viper:      v,
		validator:  validate,
		translator: trans,
	}, nil
}

func (loader *ConfigLoader) Load() (*Config, error) {
	v := loader.viper

	v.SetDefault("database.path", filepath.Join("data", "wordbridge.db"))
	v.SetDefault("database.busy_timeout_millis", 5000)
	v.SetDefault("dictionary.path", filepath.Join("data", "dictionary.yml"))
	v.SetDefault("http.enabled", false)
	v.SetDefault("http.address", "127.0.0.1:8791")
	v.SetDefault("log.level", "info")

	// Allow the extension manifest to relocate the data files without a
	// config file.
	if err := v.BindEnv("database.path", "WORDBRIDGE_DATABASE_PATH"); err != nil {
		return nil, fmt.Errorf("failed to bind WORDBRIDGE_DATABASE_PATH environment variable: %w", err)
	}
	if err := v.BindEnv("dictionary.path", "WORDBRIDGE_DICTIONARY_PATH"); err != nil {
		return nil, fmt.Errorf("failed to bind WORDBRIDGE_DICTIONARY_PATH environment variable: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	if err := loader.validator.Struct(cfg); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		var errorMsgs []string
		for _, e := range validationErrors {
			errorMsgs = append(errorMsgs, e.Translate(loader.translator))
		}
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(errorMsgs, ", "))
	}

	return &cfg, nil
}
