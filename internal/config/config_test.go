// Copyright 2021 The ajax Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir moves the test into an empty directory so no stray .env file
// is picked up.
func chdir(t *testing.T) string {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		chdir(t)
		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, &Config{
			Transport: "std",
			HTTP2:     true,
			LogLevel:  "off",
		}, cfg)
	})
	t.Run("environment", func(t *testing.T) {
		chdir(t)
		t.Setenv("AJAX_TIMEOUT_MS", "1500")
		t.Setenv("AJAX_TRANSPORT", "Resty")
		t.Setenv("AJAX_HTTP2", "false")
		t.Setenv("AJAX_LOG_LEVEL", "DEBUG")
		t.Setenv("AJAX_PROGRESS", "true")
		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, int64(1500), cfg.TimeoutMS)
		assert.Equal(t, 1500*time.Millisecond, cfg.Timeout)
		assert.Equal(t, "resty", cfg.Transport)
		assert.False(t, cfg.HTTP2)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.True(t, cfg.Progress)
	})
	t.Run("config file", func(t *testing.T) {
		dir := chdir(t)
		file := filepath.Join(dir, "ajax.yaml")
		require.NoError(t, os.WriteFile(file, []byte("timeout_ms: 250\ntransport: resty\n"), 0o600))
		t.Setenv("AJAX_TRANSPORT", "std")
		cfg, err := Load(file)
		require.NoError(t, err)
		assert.Equal(t, 250*time.Millisecond, cfg.Timeout)
		assert.Equal(t, "std", cfg.Transport, "environment overrides file")
	})
	t.Run("dotenv", func(t *testing.T) {
		dir := chdir(t)
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("AJAX_LOG_LEVEL=error\n"), 0o600))
		t.Cleanup(func() { _ = os.Unsetenv("AJAX_LOG_LEVEL") })
		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, "error", cfg.LogLevel)
	})
	t.Run("malformed dotenv", func(t *testing.T) {
		dir := chdir(t)
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("AJAX-LOG-LEVEL=error\n"), 0o600))
		cfg, err := Load("")
		assert.Nil(t, cfg)
		assert.ErrorContains(t, err, "load .env")
	})
	t.Run("missing file", func(t *testing.T) {
		dir := chdir(t)
		cfg, err := Load(filepath.Join(dir, "nope.yaml"))
		assert.Nil(t, cfg)
		assert.Error(t, err)
	})
	t.Run("negative timeout", func(t *testing.T) {
		chdir(t)
		t.Setenv("AJAX_TIMEOUT_MS", "-1")
		cfg, err := Load("")
		assert.Nil(t, cfg)
		assert.EqualError(t, err, "invalid timeout_ms (must be zero or positive milliseconds)")
	})
}
