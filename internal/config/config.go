package config

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Env           string
	Port          string
	BotToken      string
	WebhookSecret string
	PublicURL     string // externally reachable base URL, no trailing slash
	DBDSN         string
	MediaDir      string
	LogFile       string
}

// ConfigError is fatal: the process must not accept traffic without these.
type ConfigError struct {
	Missing []string
}

func (e *ConfigError) Error() string {
	return "missing required configuration: " + strings.Join(e.Missing, ", ")
}

func Load() (Config, error) {
	_ = godotenv.Load() // .env is optional; real env wins

	cfg := Config{
		Env:           getEnv("APP_ENV", "development"),
		Port:          getEnv("PORT", "8080"),
		BotToken:      os.Getenv("BOT_TOKEN"),
		WebhookSecret: os.Getenv("WEBHOOK_SECRET"),
		PublicURL:     strings.TrimRight(os.Getenv("PUBLIC_URL"), "/"),
		DBDSN:         getEnv("DB_DSN", "shopgram.db"),
		MediaDir:      getEnv("MEDIA_DIR", "./media"),
		LogFile:       os.Getenv("LOG_FILE"),
	}

	var missing []string
	for _, req := range []struct{ key, val string }{
		{"BOT_TOKEN", cfg.BotToken},
		{"WEBHOOK_SECRET", cfg.WebhookSecret},
		{"PUBLIC_URL", cfg.PublicURL},
	} {
		if req.val == "" {
			missing = append(missing, req.key)
		}
	}
	if len(missing) > 0 {
		return Config{}, &ConfigError{Missing: missing}
	}

	// Never log the token or the webhook secret.
	log.Printf("[config] APP_ENV=%s PORT=%s DB_DSN=%s MEDIA_DIR=%s PUBLIC_URL=%s",
		cfg.Env, cfg.Port, cfg.DBDSN, cfg.MediaDir, cfg.PublicURL)
	return cfg, nil
}

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string { return fmt.Sprintf(":%s", c.Port) }
