package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"itrfiling/internal/taxengine"

	"github.com/joho/godotenv"
)

// Config holds everything read from the environment at startup.
type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	Port        string
	CORSOrigins []string

	ApplyRebate87A bool
	ApplySurcharge bool
	AgeBasedSlabs  bool
}

// Load reads configs/.env when present, then the process environment.
func Load() Config {
	if err := godotenv.Load("configs/.env"); err != nil {
		log.Println("No configs/.env file found or error loading it")
	}
	return FromEnv()
}

// FromEnv builds a Config from the current environment only.
func FromEnv() Config {
	return Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBName:     getEnv("DB_NAME", "postgres"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		Port:        getEnv("PORT", "8080"),
		CORSOrigins: splitList(getEnv("CORS_ORIGINS", "http://localhost:5173,http://127.0.0.1:5173")),

		ApplyRebate87A: getBool("TAX_APPLY_REBATE_87A", false),
		ApplySurcharge: getBool("TAX_APPLY_SURCHARGE", false),
		AgeBasedSlabs:  getBool("TAX_AGE_BASED_SLABS", false),
	}
}

// DSN is the postgres connection URL.
func (c Config) DSN() string {
	return "postgres://" + c.DBUser + ":" + c.DBPassword + "@" + c.DBHost + ":" + c.DBPort + "/" + c.DBName + "?sslmode=" + c.DBSSLMode
}

// EngineOptions maps the TAX_* switches onto the engine.
func (c Config) EngineOptions() taxengine.Options {
	return taxengine.Options{
		ApplyRebate87A: c.ApplyRebate87A,
		ApplySurcharge: c.ApplySurcharge,
		AgeBasedSlabs:  c.AgeBasedSlabs,
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Printf("Ignoring invalid %s=%q, using %v", key, v, fallback)
		return fallback
	}
	return b
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
