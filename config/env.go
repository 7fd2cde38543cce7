// Package config loads process configuration from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds defaults that command-line flags may override.
type Config struct {
	LogLevel      string   `env:"RASTOOL_LOG_LEVEL" envDefault:"info"`
	LogJSON       bool     `env:"RASTOOL_LOG_JSON" envDefault:"false"`
	TmpDir        string   `env:"RASTOOL_TMP_DIR"`
	CreateOptions []string `env:"RASTOOL_CREATE_OPTIONS" envSeparator:","`
	ClipFormat    string   `env:"RASTOOL_CLIP_FORMAT" envDefault:"ENVI"`
	WriteMeta     bool     `env:"RASTOOL_WRITE_META" envDefault:"true"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

func Load() (cfg Config, err error) {
	err = ParseEnv(&cfg)
	return
}
