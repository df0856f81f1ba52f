package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// ServerConfig holds the HTTP server settings.
type ServerConfig struct {
	Addr            string        // listen address
	LogFormat       string        // "text" or "json"
	ShutdownTimeout time.Duration // graceful shutdown limit
}

// LoadServerConfig reads WEALTHPATH_* variables, after loading envFiles (or
// .env when none are given) into the environment. Missing env files are not
// an error; loaded reports whether any file was read.
func LoadServerConfig(envFiles ...string) (cfg ServerConfig, loaded bool) {
	if err := godotenv.Load(envFiles...); err == nil {
		loaded = true
	}

	timeout, err := time.ParseDuration(os.Getenv("WEALTHPATH_SHUTDOWN_TIMEOUT"))
	if err != nil || timeout <= 0 {
		timeout = 5 * time.Second
	}

	return ServerConfig{
		Addr:            getEnv("WEALTHPATH_ADDR", ":8080"),
		LogFormat:       getEnv("WEALTHPATH_LOG_FORMAT", "text"),
		ShutdownTimeout: timeout,
	}, loaded
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
