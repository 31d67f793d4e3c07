package config

import (
	"os"
	"path/filepath"
	"time"
)

// Config is the client's runtime configuration, read from the environment.
type Config struct {
	APIBaseURL     string
	RequestTimeout time.Duration
	GuardTimeout   time.Duration
	StateDir       string
}

func Load() Config {
	return Config{
		APIBaseURL:     getenv("API_BASE_URL", "http://localhost:5000/api"),
		RequestTimeout: getdur("REQUEST_TIMEOUT", 30*time.Second),
		GuardTimeout:   getdur("GUARD_TIMEOUT", 5*time.Second),
		StateDir:       getenv("STATE_DIR", defaultStateDir()),
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getdur(k string, def time.Duration) time.Duration {
	if v := os.Getenv(k); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return def
}

func defaultStateDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return ".storefront"
	}
	return filepath.Join(base, "storefront")
}
