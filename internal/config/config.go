// config.go
package config

import (
	"fmt"
	"os"
	"time"
)

type Config struct {
	DatabaseURL string
	JWTSecret   string
	// TokenTTL of zero means issued tokens carry no expiry claim,
	// matching the tokens issued by the existing client service.
	TokenTTL time.Duration
	Port     string
}

func Load() *Config {
	return &Config{
		DatabaseURL: databaseURL(),
		JWTSecret:   getEnv("JWT_SECRET_KEY", "test-secret-key"),
		TokenTTL:    getDuration("TOKEN_TTL", 0),
		Port:        getEnv("PORT", "8080"),
	}
}

// databaseURL prefers DATABASE_URL and otherwise composes a DSN from the
// same DBUSER/DBPASS/DBHOST/DBPORT/DBNAME variables the Django side uses.
func databaseURL() string {
	if url, ok := os.LookupEnv("DATABASE_URL"); ok {
		return url
	}
	user := getEnv("DBUSER", "postgres")
	pass := getEnv("DBPASS", os.Getenv("POSTGRESQL_PWD"))
	host := getEnv("DBHOST", "127.0.0.1")
	port := getEnv("DBPORT", "5432")
	name := getEnv("DBNAME", "zem")
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s", user, pass, host, port, name)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return d
}
