package configutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

func TestReadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("host: example.com\nport: 9999\n"), 0600))

	cfg, err := ReadConfig[testConfig](path)
	require.NoError(t, err)
	require.Equal(t, testConfig{Host: "example.com", Port: 9999}, cfg)
}

func TestReadConfigLocalOverride(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yml"), []byte("host: example.com\nport: 9999\n"), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.local.yml"), []byte("host: localhost\n"), 0600))

	cfg, err := ReadConfig[testConfig](filepath.Join(dir, "config.yml"))
	require.NoError(t, err)
	require.Equal(t, "localhost", cfg.Host)
	require.Equal(t, 9999, cfg.Port)
}

func TestReadConfigOnlyLocal(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.local.yml"), []byte("host: localhost\n"), 0600))

	cfg, err := ReadConfig[testConfig](filepath.Join(dir, "config.yml"))
	require.NoError(t, err)
	require.Equal(t, "localhost", cfg.Host)
}

func TestReadConfigMissing(t *testing.T) {
	_, err := ReadConfig[testConfig](filepath.Join(t.TempDir(), "config.yml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
