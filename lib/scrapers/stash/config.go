package stash

import (
	"fmt"
	"os"
	"path/filepath"

	"stash-scrape/lib/util/configutil"
)

type fileConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	APIKey   string `yaml:"api_key"`
}

// Config is the subset of the server's own config file this client needs
// to reach it. The password itself is never consumed from disk, only
// whether one is set; the secret comes from the command line.
type Config struct {
	Host        string
	Port        int
	Username    string
	PasswordSet bool
	APIKey      string
	SSL         bool
}

// DefaultConfigPath points at the stock server install location.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".stash", "config.yml")
	}
	return filepath.Join(home, ".stash", "config.yml")
}

// ReadConfig loads and normalizes the server config. The server may be
// configured to listen on 0.0.0.0, which is a bind address rather than
// something dialable, so it maps to localhost. TLS is on only when the
// server's certificate pair sits next to the config file.
func ReadConfig(path string) (Config, error) {
	raw, err := configutil.ReadConfig[fileConfig](path)
	if err != nil {
		return Config{}, err
	}

	host := raw.Host
	if host == "" || host == "0.0.0.0" {
		host = "localhost"
	}
	port := raw.Port
	if port == 0 {
		port = 9999
	}

	dir := filepath.Dir(path)
	ssl := fileExists(filepath.Join(dir, "stash.crt")) &&
		fileExists(filepath.Join(dir, "stash.key"))

	return Config{
		Host:        host,
		Port:        port,
		Username:    raw.Username,
		PasswordSet: raw.Password != "",
		APIKey:      raw.APIKey,
		SSL:         ssl,
	}, nil
}

// URL is the http(s)://host:port root the session talks to.
func (c Config) URL() string {
	scheme := "http"
	if c.SSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s:%d", scheme, c.Host, c.Port)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
