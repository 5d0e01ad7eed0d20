package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Port        string
	Env         string
	LogLevel    string
	LogFormat   string
	CORSOrigins []string
	Database    DatabaseConfig
	Admin       AdminConfig
	Contact     ContactConfig
}

// DatabaseConfig holds the MySQL connection settings. Missing values are
// reported by the provisioner on first use, not at startup.
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
}

// AdminConfig is the single admin credential pair.
type AdminConfig struct {
	Email    string
	Password string
}

// ContactConfig lists the public contact channels shown by the site.
type ContactConfig struct {
	Email    string
	Phone    string
	WhatsApp string
	LinkedIn string
	GitHub   string
}

func Load() Config {
	cfg := Config{
		Port:        getEnv("PORT", "8080"),
		Env:         getEnv("ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "text"),
		CORSOrigins: splitList(getEnv("CORS_ORIGINS", "*")),
		Database: DatabaseConfig{
			Host:     os.Getenv("DB_HOST"),
			Port:     getEnvAsInt("DB_PORT", 3306),
			User:     os.Getenv("DB_USER"),
			Password: os.Getenv("DB_PASSWORD"),
			Name:     os.Getenv("DB_NAME"),
		},
		Admin: AdminConfig{
			Email:    os.Getenv("ADMIN_EMAIL"),
			Password: os.Getenv("ADMIN_PASSWORD"),
		},
		Contact: ContactConfig{
			Email:    os.Getenv("CONTACT_EMAIL"),
			Phone:    os.Getenv("CONTACT_PHONE"),
			WhatsApp: getEnv("WHATSAPP_NUMBER", os.Getenv("CONTACT_PHONE")),
			LinkedIn: os.Getenv("LINKEDIN_URL"),
			GitHub:   os.Getenv("GITHUB_URL"),
		},
	}

	return cfg
}

// IsProduction reports whether the process runs with ENV=production.
func (c Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("invalid integer in environment, using default", "key", key, "default", fallback)
		return fallback
	}
	return n
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
