package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/my-messenger/desktop/internal/util"
)

// FileName is the config file name inside the user config directory.
const FileName = "shell.json"

// defaultServerURL is the compile-time default for server.url. Override with
// -ldflags "-X github.com/my-messenger/desktop/internal/config.defaultServerURL=https://..."
var defaultServerURL = "https://my-messenger-9g2n.onrender.com"

type Config struct {
	Window Window `json:"window"`
	Server Server `json:"server"`
	Debug  Debug  `json:"debug"`
}

type Window struct {
	Title     string `json:"title"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	MinWidth  int    `json:"min_width"`
	MinHeight int    `json:"min_height"`
}

type Server struct {
	// Base URL handed to the web front-end through GetServerURL.
	URL string `json:"url"`

	// Origin loaded into the webview. Empty means URL, since the chat server
	// also serves its own front-end.
	FrontendURL string `json:"frontend_url"`

	// Dial the socket.io endpoint once at startup and log the outcome.
	ProbeOnStartup  bool `json:"probe_on_startup"`
	ProbeTimeoutSec int  `json:"probe_timeout_seconds"`
}

// Frontend returns the effective webview origin.
func (s Server) Frontend() string {
	if strings.TrimSpace(s.FrontendURL) != "" {
		return s.FrontendURL
	}
	return s.URL
}

type Debug struct {
	LogBuffer int    `json:"log_buffer"`
	LogLevel  string `json:"log_level"`
}

func Default() Config {
	return Config{
		Window: Window{
			Title:     "My Messenger",
			Width:     1200,
			Height:    800,
			MinWidth:  480,
			MinHeight: 600,
		},
		Server: Server{
			URL:             defaultServerURL,
			FrontendURL:     "",
			ProbeOnStartup:  true,
			ProbeTimeoutSec: 5,
		},
		Debug: Debug{
			LogBuffer: 500,
			LogLevel:  "info",
		},
	}
}

func (c *Config) Validate() error {
	// Window
	if strings.TrimSpace(c.Window.Title) == "" {
		return errors.New("window.title is required")
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return errors.New("window.width and window.height must be > 0")
	}
	if c.Window.MinWidth < 0 || c.Window.MinHeight < 0 {
		return errors.New("window.min_width and window.min_height must be >= 0")
	}

	// Server
	if err := ValidateServerURL(c.Server.URL); err != nil {
		return fmt.Errorf("server.url: %w", err)
	}
	if strings.TrimSpace(c.Server.FrontendURL) != "" {
		if err := ValidateServerURL(c.Server.FrontendURL); err != nil {
			return fmt.Errorf("server.frontend_url: %w", err)
		}
	}
	if c.Server.ProbeTimeoutSec < 1 || c.Server.ProbeTimeoutSec > 60 {
		return errors.New("server.probe_timeout_seconds must be 1..60")
	}

	// Debug
	if c.Debug.LogBuffer < 0 || c.Debug.LogBuffer > 10000 {
		return errors.New("debug.log_buffer must be 0..10000")
	}
	switch c.Debug.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("debug.log_level must be debug, info, warn or error (got %q)", c.Debug.LogLevel)
	}

	return nil
}

// ValidateServerURL accepts absolute http(s) URLs with a host. The value is
// used verbatim, so surrounding whitespace is an error rather than trimmed.
func ValidateServerURL(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return errors.New("is required")
	}
	if raw != strings.TrimSpace(raw) {
		return fmt.Errorf("%q has surrounding whitespace", raw)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid url: %v", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return errors.New("scheme must be http or https")
	}
	if u.Hostname() == "" {
		return errors.New("missing host")
	}
	return nil
}

// DefaultPath returns <user config dir>/my-messenger/shell.json.
func DefaultPath() (string, error) {
	return util.UserConfigPath(FileName)
}

func Load(path string) (Config, error) {
	cfg, err := LoadPartial(path)
	if err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadPartial reads a config file without validation. Fields missing from
// the file keep their defaults.
func LoadPartial(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()
	if err := json.Unmarshal(stripBOM(b), &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// stripBOM removes a UTF-8 byte order mark, which Windows editors like to add.
func stripBOM(b []byte) []byte {
	if len(b) >= 3 && b[0] == 0xEF && b[1] == 0xBB && b[2] == 0xBF {
		return b[3:]
	}
	return b
}

func Save(path string, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	return util.WriteJSONFile(path, cfg)
}

// Ensure loads config if it exists; otherwise creates a default config file.
// Returns (cfg, createdNew, err).
func Ensure(path string) (Config, bool, error) {
	if _, err := os.Stat(path); err == nil {
		cfg, err := Load(path)
		return cfg, false, err
	} else if !os.IsNotExist(err) {
		return Config{}, false, err
	}

	cfg := Default()
	if err := Save(path, cfg); err != nil {
		return Config{}, false, fmt.Errorf("create default config: %w", err)
	}
	return cfg, true, nil
}
