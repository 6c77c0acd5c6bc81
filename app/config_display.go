package app

import (
	"log"
	"os"
	"sort"
	"strings"

	"productapi.app/config"
)

// ConfigDisplayer handles configuration and environment variable display
type ConfigDisplayer struct{}

// NewConfigDisplayer creates a new configuration displayer
func NewConfigDisplayer() *ConfigDisplayer {
	return &ConfigDisplayer{}
}

// PrintConfig prints all fields in the configuration
func (cd *ConfigDisplayer) PrintConfig(cfg *config.Config) {
	log.Println("==== APPLICATION CONFIGURATION ====")

	log.Printf("SERVER:\n")
	log.Printf("  Port: %d\n", cfg.Server.Port)

	log.Printf("\nREDCIRCLE API:\n")
	log.Printf("  API Key: %s\n", cd.maskString(cfg.RedCircle.APIKey))
	log.Printf("  Base URL: %s\n", cfg.RedCircle.BaseURL)
	log.Printf("  Timeout: %s\n", cfg.RedCircle.Timeout)

	log.Printf("\nCACHE:\n")
	log.Printf("  Type: %s\n", cfg.Cache.Type)
	if cfg.Cache.Type == "redis" {
		log.Printf("  Redis Addr: %s\n", cfg.Cache.RedisAddr)
		log.Printf("  Redis DB: %d\n", cfg.Cache.RedisDB)
	}
	log.Printf("  Product TTL: %s\n", cfg.Cache.ProductTTL)
	log.Printf("  Search TTL: %s\n", cfg.Cache.SearchTTL)
	log.Printf("  Stock TTL: %s\n", cfg.Cache.StockTTL)

	log.Printf("\nAPP ENV: %s\n", cfg.AppEnv)
	if cfg.RequestLogFile != "" {
		log.Printf("REQUEST LOG FILE: %s\n", cfg.RequestLogFile)
	}

	log.Println("===================================")
}

// PrintAllEnvVars prints all environment variables available to the application
func (cd *ConfigDisplayer) PrintAllEnvVars() {
	log.Println("==== ENVIRONMENT VARIABLES ====")

	envVars := os.Environ()
	sort.Strings(envVars)

	for _, env := range envVars {
		pair := strings.SplitN(env, "=", 2)
		if len(pair) != 2 {
			continue
		}

		key := pair[0]
		value := pair[1]

		if cd.isSensitive(key) {
			value = cd.maskString(value)
		}

		log.Printf("%s=%s\n", key, value)
	}

	log.Println("===============================")
}

func (cd *ConfigDisplayer) isSensitive(key string) bool {
	upperKey := strings.ToUpper(key)
	return strings.Contains(upperKey, "KEY") ||
		strings.Contains(upperKey, "PASSWORD") ||
		strings.Contains(upperKey, "SECRET") ||
		strings.Contains(upperKey, "TOKEN")
}

func (cd *ConfigDisplayer) maskString(s string) string {
	if s == "" {
		return "(not set)"
	}
	if len(s) <= 4 {
		return "****"
	}
	return s[:2] + strings.Repeat("*", len(s)-4) + s[len(s)-2:]
}
