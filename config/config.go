// Package config loads the bussinbank configuration from the environment,
// and from a .env file when there is one.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/Sam-oo1/bussinBank/backup"
	"github.com/Sam-oo1/bussinBank/logger"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config represents the application configuration.
type Config struct {
	LedgerPath   string    `env:"BUSSINBANK_LEDGER" envDefault:"bussinbank.json"`
	LogLevel     string    `env:"BUSSINBANK_LOG_LEVEL" envDefault:"info"`
	HTTPAddr     string    `env:"BUSSINBANK_HTTP_ADDR" envDefault:":8080"`
	ArchivePath  string    `env:"BUSSINBANK_ARCHIVE" envDefault:"bussinbank.archive.db"`
	BackupURI    string    `env:"BUSSINBANK_BACKUP_URI"`
	KafkaBrokers []string  `env:"BUSSINBANK_KAFKA_BROKERS" envSeparator:","`
	KafkaTopic   string    `env:"BUSSINBANK_KAFKA_TOPIC" envDefault:"bussinbank.transactions"`
	Model        string    `env:"BUSSINBANK_MODEL" envDefault:"gemini-2.5-pro"`
	TestingNow   time.Time `env:"BUSSINBANK_TESTING_NOW"` // RFC3339, freezes the clock
}

// Load loads configuration from environment variables.
// It loads the .env file from the current directory if available, or the
// given env file which must then exist.
func Load(envPath ...string) (*Config, error) {
	if len(envPath) > 0 && envPath[0] != "" {
		if err := godotenv.Load(envPath[0]); err != nil {
			return nil, fmt.Errorf("failed to load .env file: %w", err)
		}
	} else {
		_ = godotenv.Load()
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return &cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	var errs []error
	if c.LedgerPath == "" {
		errs = append(errs, errors.New("BUSSINBANK_LEDGER must not be empty"))
	}
	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if c.BackupURI != "" {
		if _, err := backup.ParseURI(c.BackupURI); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Clock returns the clock to use: the frozen TestingNow when set, time.Now otherwise.
func (c *Config) Clock() func() time.Time {
	if c.TestingNow.IsZero() {
		return time.Now
	}
	now := c.TestingNow
	return func() time.Time { return now }
}
