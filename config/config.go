package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config holds every runtime setting. It is assembled once in main and passed
// by reference to the components that need it; nothing reads the environment
// after Load returns.
type Config struct {
	Port      string
	DBURL     string
	JWTSecret string

	CORSOrigin  string
	FrontendURL string

	SMTPFrom     string
	SMTPPassword string
	SMTPHost     string
	SMTPPort     string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using system environment variables.")
	}

	return &Config{
		Port:      getEnv("PORT", "8080"),
		DBURL:     mustEnv("DB_URL"),
		JWTSecret: mustEnv("JWT_SECRET"),

		CORSOrigin:  getEnv("CORS_ORIGIN", "http://localhost:5173"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:5173"),

		SMTPFrom:     getEnv("SMTP_FROM", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		SMTPHost:     getEnv("SMTP_HOST", ""),
		SMTPPort:     getEnv("SMTP_PORT", "587"),
	}
}

func mustEnv(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("Missing required environment variable: %s", key)
	}
	return v
}

func getEnv(key string, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
