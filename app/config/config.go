package config

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

type Config struct {
	DB   *sql.DB
	SMTP SMTPConfig
	SMS  SMSConfig
	Push PushConfig
	Port string
	JWT  string
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SMSConfig points at the SMS gateway used for fee reminders.
type SMSConfig struct {
	GatewayURL string
	APIKey     string
	SenderID   string
}

// PushConfig points at the push gateway used for mobile alerts.
type PushConfig struct {
	GatewayURL string
	ServerKey  string
}

var AppConfig *Config

func InitDB() {
	// .env is optional; deployments set the environment directly
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	host := envOr("DB_HOST", "localhost")
	port := envIntOr("DB_PORT", 5432)
	user := envOr("DB_USER", "postgres")
	password := os.Getenv("DB_PASSWORD")
	dbname := envOr("DB_NAME", "hostel")
	sslmode := envOr("DB_SSLMODE", "disable")

	psqlInfo := fmt.Sprintf("host=%s port=%d user=%s dbname=%s sslmode=%s connect_timeout=60",
		host, port, user, dbname, sslmode)
	if password != "" {
		psqlInfo += " password=" + password
	}

	db, err := sql.Open("postgres", psqlInfo)
	if err != nil {
		log.Fatal("Failed to open database connection:", err)
	}

	// Set connection pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	log.Println("Testing database connection...")
	if err = db.Ping(); err != nil {
		log.Fatalf("Cannot establish database connection to %s:%d/%s: %v", host, port, dbname, err)
	}

	AppConfig = &Config{
		DB:   db,
		Port: envOr("PORT", "3000"),
		JWT:  envOr("JWT_SECRET", "hostel-admin-secret-key"),
		SMTP: SMTPConfig{
			Host:     envOr("SMTP_HOST", "smtp.gmail.com"),
			Port:     envIntOr("SMTP_PORT", 587),
			Username: os.Getenv("SMTP_USERNAME"),
			Password: os.Getenv("SMTP_PASSWORD"),
			From:     envOr("SMTP_FROM", os.Getenv("SMTP_USERNAME")),
		},
		SMS: SMSConfig{
			GatewayURL: os.Getenv("SMS_GATEWAY_URL"),
			APIKey:     os.Getenv("SMS_API_KEY"),
			SenderID:   envOr("SMS_SENDER_ID", "HOSTEL"),
		},
		Push: PushConfig{
			GatewayURL: os.Getenv("PUSH_GATEWAY_URL"),
			ServerKey:  os.Getenv("PUSH_SERVER_KEY"),
		},
	}
	log.Println("Database connected successfully")
}

func GetDB() *sql.DB {
	return AppConfig.DB
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		log.Printf("Invalid value for %s: %q, using %d", key, v, fallback)
	}
	return fallback
}
