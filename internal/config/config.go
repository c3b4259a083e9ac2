package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	Log      LogConfig      `yaml:"log"`
	Document DocumentConfig `yaml:"document"`
	Seed     SeedConfig     `yaml:"seed"`
}

type ServerConfig struct {
	Port int `yaml:"port"`
}

type DatabaseConfig struct {
	Path string `yaml:"path"`
}

type AuthConfig struct {
	SecretKey        string `yaml:"secret_key"`
	TokenExpireHours int    `yaml:"token_expire_hours"`
	CookieSecure     bool   `yaml:"cookie_secure"`
	// LoginRateLimit is the number of auth requests allowed per client IP
	// per minute.
	LoginRateLimit int `yaml:"login_rate_limit"`
}

type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, text
}

type DocumentConfig struct {
	Author string `yaml:"author"`
}

type SeedConfig struct {
	Enabled  bool   `yaml:"enabled"`
	File     string `yaml:"file"`
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
}

// DefaultSecretKey is only meant for local development.
const DefaultSecretKey = "dev-secret-change-me"

// Default returns the configuration used when no file is present.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads the YAML file at path (a missing file is not an error), fills
// defaults and then applies environment overrides.
func Load(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.applyDefaults()
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Database.Path == "" {
		c.Database.Path = "contratos.db"
	}
	if c.Auth.SecretKey == "" {
		c.Auth.SecretKey = DefaultSecretKey
	}
	if c.Auth.TokenExpireHours == 0 {
		c.Auth.TokenExpireHours = 24
	}
	if c.Auth.LoginRateLimit == 0 {
		c.Auth.LoginRateLimit = 20
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
	if c.Document.Author == "" {
		c.Document.Author = "contratos"
	}
	if c.Seed.File == "" {
		c.Seed.File = "testdata/contracts.json"
	}
	if c.Seed.Email == "" {
		c.Seed.Email = "demo@contratos.local"
	}
	if c.Seed.Password == "" {
		c.Seed.Password = "demo1234"
	}
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup("PORT"); ok && v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		c.Server.Port = port
	}
	if v, ok := lookup("DB_PATH"); ok && v != "" {
		c.Database.Path = v
	}
	if v, ok := lookup("SECRET_KEY"); ok && v != "" {
		c.Auth.SecretKey = v
	}
	if v, ok := lookup("LOG_LEVEL"); ok && v != "" {
		c.Log.Level = v
	}
	if v, ok := lookup("LOG_FORMAT"); ok && v != "" {
		c.Log.Format = v
	}
	if v, ok := lookup("SEED"); ok && v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid SEED %q: %w", v, err)
		}
		c.Seed.Enabled = enabled
	}
	return nil
}
