package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	// Home dir without a config file: defaults apply.
	tmpDir := t.TempDir()
	t.Setenv("ENVMAIL_HOME", tmpDir)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.HomeDir != tmpDir {
		t.Errorf("HomeDir = %q, want %q", cfg.HomeDir, tmpDir)
	}
	if cfg.Mail.Version != "V10" {
		t.Errorf("Version = %q, want V10", cfg.Mail.Version)
	}
	if cfg.Mail.EnvelopeDB != "Envelope Index" {
		t.Errorf("EnvelopeDB = %q", cfg.Mail.EnvelopeDB)
	}
	if cfg.Mail.PrimaryAddress != "your.email@example.com" {
		t.Errorf("PrimaryAddress = %q", cfg.Mail.PrimaryAddress)
	}
	// The ~ default is expanded to an absolute path.
	if strings.HasPrefix(cfg.Mail.Directory, "~") {
		t.Errorf("Directory not expanded: %q", cfg.Mail.Directory)
	}
	if !strings.HasSuffix(cfg.Mail.Directory, filepath.Join("Library", "Mail")) {
		t.Errorf("Directory = %q", cfg.Mail.Directory)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.toml")
	content := `
[mail]
directory = "/custom/Mail"
version = "V9"
envelope_db = "Envelope Index"
primary_address = "me@example.com"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Mail.Directory != "/custom/Mail" {
		t.Errorf("Directory = %q", cfg.Mail.Directory)
	}
	if cfg.Mail.Version != "V9" {
		t.Errorf("Version = %q", cfg.Mail.Version)
	}
	if cfg.Mail.PrimaryAddress != "me@example.com" {
		t.Errorf("PrimaryAddress = %q", cfg.Mail.PrimaryAddress)
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.toml")
	content := `
[mail]
primary_address = "me@example.com"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Mail.Version != "V10" {
		t.Errorf("Version = %q, want default V10", cfg.Mail.Version)
	}
	if cfg.Mail.PrimaryAddress != "me@example.com" {
		t.Errorf("PrimaryAddress = %q", cfg.Mail.PrimaryAddress)
	}
}

func TestLoadRejectsEmptyVersion(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.toml")
	content := `
[mail]
version = ""
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("expected error for empty mail.version")
	}
}

func TestLoadBadTOML(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.toml")
	if err := os.WriteFile(path, []byte("not [valid toml"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestPaths(t *testing.T) {
	cfg := &Config{Mail: MailConfig{
		Directory:  "/home/u/Library/Mail",
		Version:    "V10",
		EnvelopeDB: "Envelope Index",
	}}

	if got := cfg.VersionDir(); got != "/home/u/Library/Mail/V10" {
		t.Errorf("VersionDir = %q", got)
	}
	want := filepath.Join("/home/u/Library/Mail/V10", "MailData", "Envelope Index")
	if got := cfg.EnvelopePath(); got != want {
		t.Errorf("EnvelopePath = %q, want %q", got, want)
	}
}

func TestMailDirExists(t *testing.T) {
	cfg := &Config{Mail: MailConfig{Directory: t.TempDir()}}
	if !cfg.MailDirExists() {
		t.Error("expected existing dir")
	}

	cfg.Mail.Directory = filepath.Join(cfg.Mail.Directory, "nope")
	if cfg.MailDirExists() {
		t.Error("expected missing dir")
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home dir")
	}

	if got := expandPath("~/Library/Mail"); got != filepath.Join(home, "Library", "Mail") {
		t.Errorf("expandPath = %q", got)
	}
	if got := expandPath("/abs/path"); got != "/abs/path" {
		t.Errorf("expandPath changed absolute path: %q", got)
	}
	if got := expandPath(""); got != "" {
		t.Errorf("expandPath(\"\") = %q", got)
	}
}
