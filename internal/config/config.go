// Package config handles loading and managing envmail configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config represents the envmail configuration.
type Config struct {
	Mail MailConfig `toml:"mail"`

	// Computed paths (not from config file)
	HomeDir string `toml:"-"`
}

// MailConfig locates the Apple Mail data this tool reads.
type MailConfig struct {
	// Directory is the Apple Mail root (usually ~/Library/Mail).
	Directory string `toml:"directory"`

	// Version is the Mail version folder name (V10 on recent macOS;
	// older systems use V9, V8, V7).
	Version string `toml:"version"`

	// EnvelopeDB is the envelope database file name inside MailData.
	EnvelopeDB string `toml:"envelope_db"`

	// PrimaryAddress is the default address for sent-mail searches.
	PrimaryAddress string `toml:"primary_address"`
}

// DefaultHome returns the default envmail home directory.
// Respects the ENVMAIL_HOME environment variable.
func DefaultHome() string {
	if h := os.Getenv("ENVMAIL_HOME"); h != "" {
		return h
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".envmail"
	}
	return filepath.Join(home, ".envmail")
}

// Load reads the configuration from the specified file.
// If path is empty, uses the default location (~/.envmail/config.toml).
// The config file is optional; defaults match a stock macOS Mail install.
func Load(path string) (*Config, error) {
	homeDir := DefaultHome()

	if path == "" {
		path = filepath.Join(homeDir, "config.toml")
	}

	cfg := &Config{
		HomeDir: homeDir,
		Mail: MailConfig{
			Directory:      "~/Library/Mail",
			Version:        "V10",
			EnvelopeDB:     "Envelope Index",
			PrimaryAddress: "your.email@example.com",
		},
	}

	// Config file is optional - use defaults if not present
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg.Mail.Directory = expandPath(cfg.Mail.Directory)
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	cfg.Mail.Directory = expandPath(cfg.Mail.Directory)

	if cfg.Mail.Version == "" {
		return nil, fmt.Errorf("mail.version must not be empty")
	}
	if cfg.Mail.EnvelopeDB == "" {
		return nil, fmt.Errorf("mail.envelope_db must not be empty")
	}

	return cfg, nil
}

// VersionDir returns the Mail version directory (e.g. ~/Library/Mail/V10).
func (c *Config) VersionDir() string {
	return filepath.Join(c.Mail.Directory, c.Mail.Version)
}

// EnvelopePath returns the path to the envelope database.
func (c *Config) EnvelopePath() string {
	return filepath.Join(c.VersionDir(), "MailData", c.Mail.EnvelopeDB)
}

// MailDirExists reports whether the configured mail directory is present.
// A missing directory is a normal, reported condition rather than an error.
func (c *Config) MailDirExists() bool {
	info, err := os.Stat(c.Mail.Directory)
	return err == nil && info.IsDir()
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if path == "" {
		return path
	}
	if path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[1:])
	}
	return path
}
