package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the complete service configuration
type Config struct {
	Server   ServerConfig   `json:"server" yaml:"server"`
	Journal  JournalConfig  `json:"journal" yaml:"journal"`
	Account  AccountConfig  `json:"account" yaml:"account"`
	Telegram TelegramConfig `json:"telegram,omitempty" yaml:"telegram,omitempty"`
}

// ServerConfig contains HTTP server and session parameters
type ServerConfig struct {
	Addr      string `json:"addr" yaml:"addr"`
	JWTSecret string `json:"jwt_secret" yaml:"jwt_secret"`
	TokenTTL  string `json:"token_ttl" yaml:"token_ttl"` // e.g. "24h", "30m"
}

// ParseTokenTTL converts the TTL string to a time.Duration
func (s ServerConfig) ParseTokenTTL() (time.Duration, error) {
	if s.TokenTTL == "" {
		return 24 * time.Hour, nil
	}
	return time.ParseDuration(s.TokenTTL)
}

// JournalConfig contains persistence parameters
type JournalConfig struct {
	DBPath string `json:"db_path" yaml:"db_path"`
}

// AccountConfig contains the seed parameters of the challenge account
type AccountConfig struct {
	StartBalance float64 `json:"start_balance" yaml:"start_balance"`
}

// TelegramConfig contains optional notification parameters; both fields
// empty disables notifications entirely
type TelegramConfig struct {
	Token  string `json:"token,omitempty" yaml:"token,omitempty"`
	ChatID int64  `json:"chat_id,omitempty" yaml:"chat_id,omitempty"`
}

// LoadFromFile loads configuration from a file (JSON or YAML based on content)
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves configuration to a file (JSON or YAML based on extension)
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	if c.Server.JWTSecret == "" {
		return fmt.Errorf("server.jwt_secret is required")
	}
	if _, err := c.Server.ParseTokenTTL(); err != nil {
		return fmt.Errorf("server.token_ttl: %w", err)
	}
	if c.Journal.DBPath == "" {
		return fmt.Errorf("journal.db_path is required")
	}
	if c.Account.StartBalance <= 0 {
		return fmt.Errorf("account.start_balance must be positive")
	}
	if (c.Telegram.Token == "") != (c.Telegram.ChatID == 0) {
		return fmt.Errorf("telegram.token and telegram.chat_id must be set together")
	}
	return nil
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:      ":8080",
			JWTSecret: "change-me-in-production",
			TokenTTL:  "24h",
		},
		Journal: JournalConfig{
			DBPath: "./challenge.db",
		},
		Account: AccountConfig{
			StartBalance: 2500,
		},
	}
}
