package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultValidates(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Window.Title != "My Messenger" {
		t.Fatalf("title = %q", cfg.Window.Title)
	}
	if cfg.Server.URL != "https://my-messenger-9g2n.onrender.com" {
		t.Fatalf("server url = %q", cfg.Server.URL)
	}
	if cfg.Server.Frontend() != cfg.Server.URL {
		t.Fatalf("frontend should fall back to server url, got %q", cfg.Server.Frontend())
	}
}

func TestValidateRejects(t *testing.T) {
	cases := map[string]func(*Config){
		"blank title":     func(c *Config) { c.Window.Title = "  " },
		"zero width":      func(c *Config) { c.Window.Width = 0 },
		"no scheme":       func(c *Config) { c.Server.URL = "my-messenger.example" },
		"ftp scheme":      func(c *Config) { c.Server.URL = "ftp://example.com" },
		"missing host":    func(c *Config) { c.Server.URL = "https://" },
		"bad frontend":    func(c *Config) { c.Server.FrontendURL = "ws://example.com" },
		"probe timeout":   func(c *Config) { c.Server.ProbeTimeoutSec = 0 },
		"log buffer":      func(c *Config) { c.Debug.LogBuffer = -1 },
		"unknown level":   func(c *Config) { c.Debug.LogLevel = "verbose" },
		"negative min wh": func(c *Config) { c.Window.MinHeight = -5 },
		"padded url":      func(c *Config) { c.Server.URL = "https://chat.example.org " },
		"padded frontend": func(c *Config) { c.Server.FrontendURL = "\thttps://web.example.org" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := Default()
			mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestEnsureCreatesDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", FileName)

	cfg, created, err := Ensure(path)
	if err != nil {
		t.Fatal(err)
	}
	if !created {
		t.Fatal("expected config to be created")
	}
	if cfg != Default() {
		t.Fatalf("created config differs from default: %+v", cfg)
	}

	cfg2, created, err := Ensure(path)
	if err != nil {
		t.Fatal(err)
	}
	if created {
		t.Fatal("second Ensure should load, not create")
	}
	if cfg2 != cfg {
		t.Fatalf("reloaded config differs: %+v", cfg2)
	}
}

func TestLoadKeepsDefaultsAndStripsBOM(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	body := "\xEF\xBB\xBF" + `{"server":{"url":"https://chat.example.org"}}`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.URL != "https://chat.example.org" {
		t.Fatalf("server url = %q", cfg.Server.URL)
	}
	if cfg.Window.Title != "My Messenger" || cfg.Server.ProbeTimeoutSec != 5 {
		t.Fatalf("defaults not preserved: %+v", cfg)
	}
}

func TestLoadPartialSkipsValidation(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, []byte(`{"window":{"title":""}}`), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("Load should reject an empty title")
	}
	cfg, err := LoadPartial(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Window.Title != "" {
		t.Fatalf("title = %q, want empty", cfg.Window.Title)
	}
}

func TestSaveRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	cfg := Default()
	cfg.Server.URL = ""
	if err := Save(path, cfg); err == nil {
		t.Fatal("expected error")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("invalid config should not be written, stat err = %v", err)
	}
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	p, err := DefaultPath()
	if err != nil {
		t.Skipf("no user config dir: %v", err)
	}
	if !strings.HasSuffix(p, filepath.Join("my-messenger", FileName)) {
		t.Fatalf("path = %q", p)
	}
}
