// Package config loads service settings from defaults, an optional YAML file,
// an optional .env file and PRODUCT_API_* environment variables, in that order
// of increasing priority.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"

	envPrefix      = "PRODUCT_API_"
	defaultEnvFile = ".env"
)

type Config struct {
	Service string `koanf:"service"`
	Env     string `koanf:"env"`

	HTTPServer struct {
		Port    int `koanf:"port"`
		Timeout struct {
			Read       time.Duration `koanf:"read"`
			Write      time.Duration `koanf:"write"`
			Idle       time.Duration `koanf:"idle"`
			ReadHeader time.Duration `koanf:"readheader"`
			Shutdown   time.Duration `koanf:"shutdown"`
		} `koanf:"timeout"`
	} `koanf:"server"`

	Log struct {
		Level string `koanf:"level"`
	} `koanf:"log"`

	Metrics struct {
		Enabled bool   `koanf:"enabled"`
		Token   string `koanf:"token"`
	} `koanf:"metrics"`

	RateLimit struct {
		Enabled  bool          `koanf:"enabled"`
		Requests int           `koanf:"requests"`
		Window   time.Duration `koanf:"window"`
	} `koanf:"ratelimit"`
}

func (c Config) Development() bool { return c.Env == EnvDevelopment }

func (c Config) Addr() string { return fmt.Sprintf(":%d", c.HTTPServer.Port) }

func (c Config) String() string {
	return fmt.Sprintf("service=%s env=%s server.port=%d server.timeout.read=%v server.timeout.write=%v "+
		"server.timeout.idle=%v server.timeout.readheader=%v server.timeout.shutdown=%v log.level=%s "+
		"metrics.enabled=%t metrics.token=%s ratelimit.enabled=%t ratelimit.requests=%d ratelimit.window=%v",
		c.Service, c.Env, c.HTTPServer.Port,
		c.HTTPServer.Timeout.Read, c.HTTPServer.Timeout.Write,
		c.HTTPServer.Timeout.Idle, c.HTTPServer.Timeout.ReadHeader, c.HTTPServer.Timeout.Shutdown,
		c.Log.Level, c.Metrics.Enabled, mask(c.Metrics.Token),
		c.RateLimit.Enabled, c.RateLimit.Requests, c.RateLimit.Window)
}

func mask(s string) string {
	if s == "" {
		return "<not configured>"
	}
	return "****"
}

func defaults() map[string]any {
	return map[string]any{
		"service":                   "product-api",
		"env":                       EnvProduction,
		"server.port":               3000,
		"server.timeout.read":       10 * time.Second,
		"server.timeout.write":      10 * time.Second,
		"server.timeout.idle":       60 * time.Second,
		"server.timeout.readheader": 5 * time.Second,
		"server.timeout.shutdown":   10 * time.Second,
		"log.level":                 "info",
		"metrics.enabled":           false,
		"ratelimit.enabled":         false,
		"ratelimit.requests":        100,
		"ratelimit.window":          time.Minute,
	}
}

// Load reads the configuration. Missing files are not an error; path may be
// empty to skip the YAML file.
func Load(path string) (*Config, error) {
	return load(path, defaultEnvFile)
}

func load(path, envFile string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("load %s: %w", path, err)
			}
		}
	}

	if envFile != "" {
		vals, err := godotenv.Read(envFile)
		switch {
		case err == nil:
			m := make(map[string]any, len(vals))
			for key, value := range vals {
				if strings.HasPrefix(key, envPrefix) {
					m[keyTransformer(key)] = value
				}
			}
			if err := k.Load(confmap.Provider(m, "."), nil); err != nil {
				return nil, fmt.Errorf("load %s: %w", envFile, err)
			}
		case !errors.Is(err, fs.ErrNotExist):
			log.Printf("WARN: error reading %s: %v", envFile, err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", keyTransformer), nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func validate(cfg Config) error {
	if cfg.HTTPServer.Port <= 0 || cfg.HTTPServer.Port > 65535 {
		return fmt.Errorf("invalid HTTP server port: %d", cfg.HTTPServer.Port)
	}
	if cfg.Env != EnvDevelopment && cfg.Env != EnvProduction {
		return fmt.Errorf("invalid env %q: want %q or %q", cfg.Env, EnvDevelopment, EnvProduction)
	}
	if cfg.HTTPServer.Timeout.Shutdown <= 0 {
		return fmt.Errorf("invalid HTTP server shutdown timeout: %v", cfg.HTTPServer.Timeout.Shutdown)
	}
	if cfg.RateLimit.Enabled && (cfg.RateLimit.Requests <= 0 || cfg.RateLimit.Window <= 0) {
		return fmt.Errorf("invalid rate limit: %d requests per %v", cfg.RateLimit.Requests, cfg.RateLimit.Window)
	}
	return nil
}

// keyTransformer maps PRODUCT_API_SERVER_PORT to server.port.
func keyTransformer(key string) string {
	key = strings.TrimPrefix(key, envPrefix)
	key = strings.ToLower(key)
	return strings.ReplaceAll(key, "_", ".")
}
