package config

import (
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

const (
	configPathEnv = "WIKICLI_CONFIG"

	defaultEndpointPattern = "https://%s.wikipedia.org/w/api.php"
	defaultUserAgent       = "wikicli/1.0 (https://github.com/wikicli)"
	defaultTimeoutSeconds  = 20
	defaultCacheTTLHours   = 24
)

// Config holds high-level settings required across the application.
type Config struct {
	Wikipedia WikipediaConfig `yaml:"wikipedia"`
	Cache     CacheConfig     `yaml:"cache"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// WikipediaConfig describes how to reach the MediaWiki action API.
type WikipediaConfig struct {
	// EndpointPattern is expanded with the language code, e.g.
	// "https://%s.wikipedia.org/w/api.php".
	EndpointPattern string `yaml:"endpointPattern"`
	UserAgent       string `yaml:"userAgent" env:"WIKICLI_USER_AGENT"`
	TimeoutSeconds  int    `yaml:"timeoutSeconds" env:"WIKICLI_TIMEOUT_SECONDS"`
}

// Timeout resolves the configured HTTP timeout.
func (w WikipediaConfig) Timeout() time.Duration {
	if w.TimeoutSeconds <= 0 {
		return defaultTimeoutSeconds * time.Second
	}
	return time.Duration(w.TimeoutSeconds) * time.Second
}

// CacheConfig controls the local article cache.
type CacheConfig struct {
	Path     string `yaml:"path" env:"WIKICLI_CACHE_PATH"`
	TTLHours int    `yaml:"ttlHours" env:"WIKICLI_CACHE_TTL_HOURS"`
	Disabled bool   `yaml:"disabled" env:"WIKICLI_CACHE_DISABLED"`
}

// TTL resolves the configured cache expiry.
func (c CacheConfig) TTL() time.Duration {
	if c.TTLHours <= 0 {
		return defaultCacheTTLHours * time.Hour
	}
	return time.Duration(c.TTLHours) * time.Hour
}

// LoggingConfig controls diagnostic output.
type LoggingConfig struct {
	Level string `yaml:"level" env:"WIKICLI_LOG_LEVEL"`
}

// Load reads YAML configuration (if present) and applies environment overrides.
func Load() Config {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	if err := env.Parse(&cfg); err != nil {
		log.Printf("config: cannot parse environment: %v", err)
	}

	return cfg
}

func mergeConfig(base, override Config) Config {
	if override.Wikipedia.EndpointPattern != "" {
		base.Wikipedia.EndpointPattern = override.Wikipedia.EndpointPattern
	}
	if override.Wikipedia.UserAgent != "" {
		base.Wikipedia.UserAgent = override.Wikipedia.UserAgent
	}
	if override.Wikipedia.TimeoutSeconds > 0 {
		base.Wikipedia.TimeoutSeconds = override.Wikipedia.TimeoutSeconds
	}

	if override.Cache.Path != "" {
		base.Cache.Path = override.Cache.Path
	}
	if override.Cache.TTLHours > 0 {
		base.Cache.TTLHours = override.Cache.TTLHours
	}
	if override.Cache.Disabled {
		base.Cache.Disabled = true
	}

	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}

	return base
}

func defaultConfig() Config {
	return Config{
		Wikipedia: WikipediaConfig{
			EndpointPattern: defaultEndpointPattern,
			UserAgent:       defaultUserAgent,
			TimeoutSeconds:  defaultTimeoutSeconds,
		},
		Cache: CacheConfig{
			Path:     defaultCachePath(),
			TTLHours: defaultCacheTTLHours,
		},
		Logging: LoggingConfig{Level: "warn"},
	}
}

func defaultCachePath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "wikicli", "articles.sqlite")
}
