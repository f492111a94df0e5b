package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env     string  `yaml:"env" env:"DOCVAULT_ENV" env-default:"prod"`
	API     API     `yaml:"api"`
	Session Session `yaml:"session"`
}

type API struct {
	BaseURL string        `yaml:"base_url" env:"DOCVAULT_API_URL" env-default:"http://localhost:8080"`
	Timeout time.Duration `yaml:"timeout" env:"DOCVAULT_API_TIMEOUT" env-default:"30s"`
}

type Session struct {
	Path string `yaml:"path" env:"DOCVAULT_SESSION_FILE"`
}

// HTTPServer configures the bundled mock backend.
type HTTPServer struct {
	Address     string        `yaml:"address" env:"MOCK_DMS_ADDRESS" env-default:"localhost:8080"`
	Timeout     time.Duration `yaml:"timeout" env:"MOCK_DMS_TIMEOUT" env-default:"4s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env:"MOCK_DMS_IDLE_TIMEOUT" env-default:"60s"`

	// FixedOTP, when non-empty, is accepted for every phone number instead
	// of a per-login random code. Deterministic logins for development.
	FixedOTP string `yaml:"fixed_otp" env:"MOCK_DMS_FIXED_OTP" env-default:"123456"`
}

// Load reads the optional YAML config file and applies environment
// overrides. A missing file is not an error; the defaults stand.
func Load() (*Config, error) {
	var cfg Config

	path := configPath()

	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("read env config: %w", err)
		}
	}

	if cfg.Session.Path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}

		cfg.Session.Path = filepath.Join(home, ".docvault", "session")
	}

	return &cfg, nil
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}

	return cfg
}

func LoadServer() (*HTTPServer, error) {
	var cfg HTTPServer

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read env config: %w", err)
	}

	return &cfg, nil
}

func MustLoadServer() *HTTPServer {
	cfg, err := LoadServer()
	if err != nil {
		panic(err)
	}

	return cfg
}

// configPath honors DOCVAULT_CONFIG and falls back to the conventional
// per-user location.
func configPath() string {
	if p := os.Getenv("DOCVAULT_CONFIG"); p != "" {
		return p
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return filepath.Join(home, ".config", "docvault", "config.yaml")
}
