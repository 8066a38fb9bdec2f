// Package config resolves runtime settings for the xpost CLI.
package config

import (
	"os"
	"path/filepath"
)

// DefaultDirName is the vault directory created under the user's home.
const DefaultDirName = ".xpost"

// EnvVaultDir overrides the vault directory when set.
const EnvVaultDir = "XPOST_VAULT_DIR"

// Config holds runtime settings for the xpost CLI.
//
// Fields:
//   - VaultDir: directory holding one encrypted vault file per username.
type Config struct {
	VaultDir string
}

// LoadDefaults populates c with sensible defaults. The vault directory
// defaults to ~/.xpost; if the home directory cannot be resolved, the
// relative .xpost is used and surfaces in any later filesystem error.
func (c *Config) LoadDefaults() {
	home, err := os.UserHomeDir()
	if err != nil {
		c.VaultDir = DefaultDirName
		return
	}
	c.VaultDir = filepath.Join(home, DefaultDirName)
}

// Load constructs a Config, applies defaults, then overlays values from JSON
// (if jsonPath is non-empty) and the environment. Later sources take
// precedence over earlier ones.
func Load(jsonPath string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJson(cfg, jsonPath); err != nil {
		return nil, err
	}
	parseEnv(cfg)
	return cfg, nil
}

func parseEnv(cfg *Config) {
	if dir := os.Getenv(EnvVaultDir); dir != "" {
		cfg.VaultDir = dir
	}
}
