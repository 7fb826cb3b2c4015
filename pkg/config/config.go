// Package config loads asnisum configuration from a JSON file with an
// environment variable overlay.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Slack   SlackConfig   `json:"slack"`
	Storage StorageConfig `json:"storage"`
	Catalog CatalogConfig `json:"catalog"`
	Admin   AdminConfig   `json:"admin"`
}

type SlackConfig struct {
	BotToken string `env:"ASNISUM_SLACK_BOT_TOKEN" json:"bot_token"`
	AppToken string `env:"ASNISUM_SLACK_APP_TOKEN" json:"app_token"`

	// Command is the slash command the bot answers to.
	Command string `env:"ASNISUM_SLACK_COMMAND" json:"command"`

	// SummaryChannel receives the cross-channel order summary at close.
	// Empty disables the summary notification.
	SummaryChannel string `env:"ASNISUM_SLACK_SUMMARY_CHANNEL" json:"summary_channel"`
}

type StorageConfig struct {
	// Path of the SQLite session database. Empty selects the in-memory
	// store (single instance only; sessions do not survive restarts).
	Path string `env:"ASNISUM_STORAGE_PATH" json:"path"`
}

type CatalogConfig struct {
	Path string `env:"ASNISUM_CATALOG_PATH" json:"path"`
}

type AdminConfig struct {
	Enabled  bool         `env:"ASNISUM_ADMIN_ENABLED"  json:"enabled"`
	Host     string       `env:"ASNISUM_ADMIN_HOST"     json:"host"`
	Port     int          `env:"ASNISUM_ADMIN_PORT"     json:"port"`
	Password string       `env:"ASNISUM_ADMIN_PASSWORD" json:"password"`
	GitHub   GitHubConfig `json:"github"`
}

// GitHubConfig configures optional catalog persistence to a GitHub
// repository via the contents API. Disabled when Token is empty.
type GitHubConfig struct {
	Token  string `env:"ASNISUM_GITHUB_TOKEN"  json:"token"`
	Owner  string `env:"ASNISUM_GITHUB_OWNER"  json:"owner"`
	Repo   string `env:"ASNISUM_GITHUB_REPO"   json:"repo"`
	Path   string `env:"ASNISUM_GITHUB_PATH"   json:"path"`
	Branch string `env:"ASNISUM_GITHUB_BRANCH" json:"branch"`
}

// DefaultConfig returns the configuration used when no config file
// exists.
func DefaultConfig() *Config {
	home, _ := os.UserHomeDir()
	return &Config{
		Slack: SlackConfig{
			Command: "/아즈니섬",
		},
		Storage: StorageConfig{
			Path: filepath.Join(home, ".asnisum", "sessions.db"),
		},
		Catalog: CatalogConfig{
			Path: filepath.Join(home, ".asnisum", "catalog.json"),
		},
		Admin: AdminConfig{
			Host: "127.0.0.1",
			Port: 8787,
			GitHub: GitHubConfig{
				Path:   "catalog.json",
				Branch: "main",
			},
		},
	}
}

// LoadConfig reads the config file at path (missing file yields
// defaults) and applies the ASNISUM_* environment overlay.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			if err := env.Parse(cfg); err != nil {
				return nil, err
			}
			return cfg, nil
		}
		return nil, err
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SaveConfig writes the config as indented JSON, creating parent
// directories as needed. Tokens land in the file, hence 0600.
func SaveConfig(path string, cfg *Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o600)
}

// Validate checks the fields the gateway cannot run without.
func (c *Config) Validate() error {
	if c.Slack.BotToken == "" {
		return fmt.Errorf("slack bot token is required (ASNISUM_SLACK_BOT_TOKEN)")
	}
	if c.Slack.AppToken == "" {
		return fmt.Errorf("slack app token is required (ASNISUM_SLACK_APP_TOKEN)")
	}
	if c.Slack.Command == "" {
		return fmt.Errorf("slack command is required")
	}
	return nil
}
