package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	MongoURI    string
	DBName      string
	Environment string
	AppId       string

	OpenAIKey  string
	RulesModel string
	ERPSystem  string
	BatchCron  string // cron spec for scheduled batch transforms, empty disables
	ERPDSN     string // Postgres DSN for the ERP connector, empty disables
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	} else {
		log.Println("Loaded .env file successfully")
	}

	return &Config{
		Port:        getEnv("PORT", "8080"),
		MongoURI:    getEnv("MONGO_URI", "mongodb://localhost:27017"),
		DBName:      getEnv("DB_NAME", "go-transformer"),
		Environment: getEnv("ENVIRONMENT", "development"),
		AppId:       getEnv("APP_ID", "go-transformer"),
		OpenAIKey:   getEnv("OPENAI_API_KEY", ""),
		RulesModel:  getEnv("RULES_AI_MODEL", "gpt-4.1-mini"),
		ERPSystem:   getEnv("ERP_SYSTEM", "Odoo"),
		BatchCron:   getEnv("BATCH_CRON", ""),
		ERPDSN:      getEnv("ERP_DSN", ""),
	}, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
