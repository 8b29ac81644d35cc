package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Dev-only fallback. Prod refuses to boot without an explicit JWT_SECRET.
const devJWTSecret = "breachwatch-dev-secret"

type Config struct {
	Env  string
	Port int

	DBURL string

	JWTSecret string
	TokenTTL  time.Duration

	BreachAPIURL  string
	BreachTimeout time.Duration

	CORSAllowedOrigins []string

	OTLPEndpoint string
}

func Load() (Config, error) {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	env := getEnv("APP_ENV", "dev")

	secret := getEnv("JWT_SECRET", "")

	if secret == "" {
		if env == "prod" {
			return Config{}, errors.New("JWT_SECRET must be set when APP_ENV=prod")
		}

		secret = devJWTSecret
	}

	return Config{
		Env:                env,
		Port:               getEnvInt("PORT", 8080),
		DBURL:              buildDBURL(),
		JWTSecret:          secret,
		TokenTTL:           getEnvDuration("TOKEN_TTL", 24*time.Hour),
		BreachAPIURL:       getEnv("BREACH_API_URL", "https://api.xposedornot.com/v1"),
		BreachTimeout:      getEnvDuration("BREACH_TIMEOUT", 5*time.Second),
		CORSAllowedOrigins: splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173")),
		OTLPEndpoint:       getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
	}, nil
}

// UsingDevSecret reports whether the token secret is the insecure fallback,
// so startup can log a loud warning.
func (c Config) UsingDevSecret() bool {
	return c.JWTSecret == devJWTSecret
}

func buildDBURL() string {
	if url := getEnv("DATABASE_URL", ""); url != "" {
		return url
	}

	host := getEnv("DB_HOST", "127.0.0.1")
	port := getEnv("DB_PORT", "5432")
	user := getEnv("DB_USER", "breachwatch")
	pass := getEnv("DB_PASSWORD", "breachwatch")
	name := getEnv("DB_NAME", "breachwatch")
	ssl := getEnv("DB_SSLMODE", "disable")

	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=" + ssl
}

func WithTimeout(duration time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), duration)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		num, err := strconv.Atoi(v)

		if err != nil {
			fmt.Println(err)
			return fallback
		}

		return num
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)

		if err != nil {
			fmt.Println(err)
			return fallback
		}

		return d
	}
	return fallback
}

func splitCSV(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))

	for _, p := range parts {
		p = strings.TrimSpace(p)

		if p != "" {
			out = append(out, p)
		}
	}

	return out
}
