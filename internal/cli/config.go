package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	clientBulk "github.com/horilla-hris/hris-bulk-go/internal/client/bulk"
	"github.com/horilla-hris/hris-bulk-go/internal/pkg/i18n"
	"github.com/pelletier/go-toml/v2"
)

const (
	appDir         = "bulkctl"
	configFileName = "config.toml"

	envToken  = "BULKCTL_TOKEN"
	envServer = "BULKCTL_SERVER"
)

// Config is the bulkctl TOML file.
type Config struct {
	Server    string `toml:"server"`
	Token     string `toml:"token"`
	Language  string `toml:"language"`
	StateDir  string `toml:"state_dir"`
	ExportDir string `toml:"export_dir"`
	Timeout   string `toml:"timeout"`
	LogLevel  string `toml:"log_level"`
	LogFormat string `toml:"log_format"`
}

func defaultConfig() Config {
	stateDir := filepath.Join(".", "."+appDir)
	if dir, err := os.UserConfigDir(); err == nil {
		stateDir = filepath.Join(dir, appDir)
	}
	return Config{
		Server:    "http://localhost:8080",
		StateDir:  stateDir,
		ExportDir: ".",
		Timeout:   clientBulk.DefaultTimeout.String(),
		LogLevel:  "warn",
		LogFormat: "console",
	}
}

// DefaultConfigPath is where LoadConfig looks when no path is given.
func DefaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return configFileName
	}
	return filepath.Join(dir, appDir, configFileName)
}

// LoadConfig reads path over the defaults. A missing file is not an error.
// BULKCTL_TOKEN and BULKCTL_SERVER override the file.
func LoadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		path = DefaultConfigPath()
	}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return Config{}, fmt.Errorf("read config: %w", err)
	default:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	if v := os.Getenv(envToken); v != "" {
		cfg.Token = v
	}
	if v := os.Getenv(envServer); v != "" {
		cfg.Server = v
	}

	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.Server) == "" {
		return errors.New("server is required")
	}
	if _, err := c.TimeoutDuration(); err != nil {
		return err
	}
	if c.Language != "" {
		if _, ok := i18n.Normalize(c.Language); !ok {
			return fmt.Errorf("unsupported language %q", c.Language)
		}
	}
	return nil
}

func (c Config) TimeoutDuration() (time.Duration, error) {
	if c.Timeout == "" {
		return clientBulk.DefaultTimeout, nil
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout %q: %w", c.Timeout, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	return d, nil
}

// LanguageCode is the configured language, empty when the server should decide.
func (c Config) LanguageCode() i18n.Code {
	code, _ := i18n.Normalize(c.Language)
	return code
}
