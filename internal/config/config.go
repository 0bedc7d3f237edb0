package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          string
	JWTSecret     string
	MongoURI      string
	DBName        string
	Environment   string
	SkipAuth      bool
	DashboardRoot string // Mount point for the protected page shell
	HRPostgresDSN string // External HR database (empleados sync); empty disables the sync job
	SessionDays   int    // Lifetime of the token/usuario cookies
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	} else {
		log.Println("Loaded .env file successfully")
	}

	return &Config{
		Port:          getEnv("PORT", "8080"),
		JWTSecret:     getEnv("JWT_SECRET", "secret"),
		MongoURI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
		DBName:        getEnv("DB_NAME", "go-crm-admin"),
		Environment:   getEnv("ENVIRONMENT", "development"),
		SkipAuth:      getEnv("SKIP_AUTH", "false") == "true",
		DashboardRoot: getEnv("DASHBOARD_ROOT", "/dashboard"),
		HRPostgresDSN: getEnv("HR_POSTGRES_DSN", ""),
		SessionDays:   7,
	}, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
