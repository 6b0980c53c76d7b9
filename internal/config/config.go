package config

import (
	"os"
	"time"
)

// Config carries every externally supplied setting. It is built once in
// main and handed to the components that need it; nothing else reads the
// environment after startup.
type Config struct {
	Addr        string
	DatabaseURL string
	JWTSecret   string

	PaystackSecretKey  string
	KorapaySecretKey   string
	KorapayRedirectURL string
	GatewayTimeout     time.Duration

	EmailHost     string
	EmailPort     string
	EmailUsername string
	EmailPassword string
	EmailFrom     string
}

func Load() Config {
	return Config{
		Addr:        getenv("ADDR", ":8080"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		JWTSecret:   os.Getenv("JWT_SECRET"),

		PaystackSecretKey:  os.Getenv("PAYSTACK_SECRET_KEY"),
		KorapaySecretKey:   os.Getenv("KORAPAY_SECRET_KEY"),
		KorapayRedirectURL: getenv("KORAPAY_REDIRECT_URL", "http://localhost:5173/"),
		GatewayTimeout:     getenvDuration("GATEWAY_TIMEOUT", 15*time.Second),

		EmailHost:     os.Getenv("EMAIL_HOST"),
		EmailPort:     getenv("EMAIL_PORT", "587"),
		EmailUsername: os.Getenv("EMAIL_USERNAME"),
		EmailPassword: os.Getenv("EMAIL_PASSWORD"),
		EmailFrom:     getenv("EMAIL_FROM", "Sneaker Shop <no-reply@sneakhub.shop>"),
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
