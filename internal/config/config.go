package config

import "os"

type Config struct {
	DatabaseURL    string
	JWTSecret      string
	Port           string
	InviteLinkBase string
}

func Load() *Config {
	return &Config{
		DatabaseURL:    getEnv("DATABASE_URL", "habitspark.db"),
		JWTSecret:      getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
		Port:           getEnv("PORT", "8080"),
		InviteLinkBase: getEnv("INVITE_LINK_BASE", "https://habitspark.app"),
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
