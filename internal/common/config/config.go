package config

import (
	"fmt"
	"strings"

	"card-gateway/internal/najm"
)

// Config is the main application configuration struct. It is built once at
// startup and read-only afterwards; call logic never reaches for ambient
// configuration.
type Config struct {
	App     AppConfig     `mapstructure:"app"`
	Server  ServerConfig  `mapstructure:"server"`
	Logging LoggingConfig `mapstructure:"logging"`
	I2C     I2CConfig     `mapstructure:"i2c"`
	Najm    NajmConfig    `mapstructure:"najm"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Address string `mapstructure:"address"`
	Metrics bool   `mapstructure:"metrics"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// AcquirerConfig holds the static merchant identity for the card switch.
type AcquirerConfig struct {
	EnUserID string `mapstructure:"en_user_id"`
	EnPwd    string `mapstructure:"en_pwd"`
}

// I2CConfig holds settings for the generic card-switch backend.
type I2CConfig struct {
	Endpoint               string         `mapstructure:"endpoint"`
	Timeout                int            `mapstructure:"timeout"` // milliseconds
	LogPath                string         `mapstructure:"log_path"`
	Acquirer               AcquirerConfig `mapstructure:"acquirer"`
	AllowedStartingNumbers string         `mapstructure:"allowed_starting_numbers"`
	VirtualCardPrefix      string         `mapstructure:"virtual_card_prefix"`
}

// AllowedPrefixes splits the comma-separated allow-list of permitted
// card-bin prefixes.
func (c I2CConfig) AllowedPrefixes() []string {
	if c.AllowedStartingNumbers == "" {
		return nil
	}
	parts := strings.Split(c.AllowedStartingNumbers, ",")
	prefixes := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			prefixes = append(prefixes, trimmed)
		}
	}
	return prefixes
}

// NajmConfig holds settings for the national debit-network backend.
type NajmConfig struct {
	Endpoint string      `mapstructure:"endpoint"`
	Timeout  int         `mapstructure:"timeout"` // milliseconds
	LogPath  string      `mapstructure:"log_path"`
	Routing  najm.Config `mapstructure:"routing"`
}

func (c *Config) validate() error {
	if c.I2C.Endpoint == "" {
		return fmt.Errorf("i2c.endpoint is required")
	}
	if c.I2C.Acquirer.EnUserID == "" {
		return fmt.Errorf("i2c.acquirer.en_user_id is required")
	}
	if c.I2C.Acquirer.EnPwd == "" {
		return fmt.Errorf("i2c.acquirer.en_pwd is required")
	}
	if c.Najm.Endpoint == "" {
		return fmt.Errorf("najm.endpoint is required")
	}
	if err := c.Najm.Routing.Validate(); err != nil {
		return err
	}
	return nil
}
