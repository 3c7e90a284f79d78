// Copyright 2021 The ajax Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package config loads the settings of the ajax command.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by Load, so that
// timeout_ms is read from AJAX_TIMEOUT_MS.
const EnvPrefix = "AJAX"

// Config holds the command configuration loaded from defaults, an
// optional config file, a .env file, and environment variables.
type Config struct {
	TimeoutMS int64         `mapstructure:"timeout_ms"`
	Timeout   time.Duration `mapstructure:"-"`
	Transport string        `mapstructure:"transport"`
	HTTP2     bool          `mapstructure:"http2"`
	LogLevel  string        `mapstructure:"log_level"`
	Progress  bool          `mapstructure:"progress"`
}

// Load reads configuration. The .env file in the working directory is
// loaded first if present, without overriding variables that are
// already set; a .env file that exists but cannot be read or parsed is
// an error. If file is not empty it must name a readable config
// file in any format viper understands.
func Load(file string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()

	v.SetDefault("timeout_ms", 0)
	v.SetDefault("transport", "std")
	v.SetDefault("http2", true)
	v.SetDefault("log_level", "off")
	v.SetDefault("progress", false)

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", file, err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.TimeoutMS < 0 {
		return nil, errors.New("invalid timeout_ms (must be zero or positive milliseconds)")
	}
	cfg.Timeout = time.Duration(cfg.TimeoutMS) * time.Millisecond

	cfg.Transport = strings.ToLower(cfg.Transport)
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)

	return &cfg, nil
}
