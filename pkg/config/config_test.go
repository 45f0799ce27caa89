package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrhapile/zip2ipa/pkg/classifier"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, DefaultConfig(), cfg)
	assert.Equal(t, classifier.DefaultMarkers, cfg.MarkerTable())
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := filepath.Join(dir, "custom.yaml")
	content := `
server:
  addr: ":9090"
  uploadDir: /tmp/zip2ipa
logging:
  level: debug
  format: json
conversion:
  allowedExtensions: [".zip", ".xcarchive.zip"]
markers:
  - token: Package.swift
    category: Swift Package
  - token: .xcodeproj
    category: Xcode Project Bundle
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, "/tmp/zip2ipa", cfg.Server.UploadDir)
	assert.Equal(t, int64(500<<20), cfg.Server.MaxUploadBytes)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, ".ipa", cfg.Conversion.Suffix)
	assert.Equal(t, []string{".zip", ".xcarchive.zip"}, cfg.Conversion.AllowedExtensions)

	table := cfg.MarkerTable()
	require.Equal(t, 2, table.Len())
	assert.Equal(t, "Package.swift", table.At(0).Token)
	assert.Equal(t, "Swift Package", table.At(0).Category)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("ZIP2IPA_SERVER_ADDR", ":7070")
	t.Setenv("ZIP2IPA_LOGGING_LEVEL", "warn")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.Server.Addr)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("ZIP2IPA_CONVERSION_SUFFIX=.app\n"), 0644))
	t.Cleanup(func() { os.Unsetenv("ZIP2IPA_CONVERSION_SUFFIX") })

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ".app", cfg.Conversion.Suffix)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	t.Chdir(t.TempDir())
	_, err := Load("does-not-exist.yaml")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cases := map[string]func(c *Config){
		"server.addr":                  func(c *Config) { c.Server.Addr = " " },
		"server.maxUploadBytes":        func(c *Config) { c.Server.MaxUploadBytes = 0 },
		"conversion.suffix":            func(c *Config) { c.Conversion.Suffix = "" },
		"conversion.allowedExtensions": func(c *Config) { c.Conversion.AllowedExtensions = nil },
		"markers[0].token":             func(c *Config) { c.Markers = append(c.Markers, c.MarkerTable().At(0)); c.Markers[0].Token = "" },
	}
	for field, mutate := range cases {
		t.Run(field, func(t *testing.T) {
			cfg := DefaultConfig()
			mutate(cfg)

			err := cfg.Validate()
			var cfgErr *ConfigError
			require.True(t, errors.As(err, &cfgErr))
			assert.Equal(t, field, cfgErr.Field)
		})
	}

	assert.NoError(t, DefaultConfig().Validate())
}
