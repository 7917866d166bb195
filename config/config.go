package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}
}

func GetEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// RazorpayKeys returns the publishable key id and the signing secret.
// Both empty means the gateway is not configured.
func RazorpayKeys() (keyID, secret string) {
	return os.Getenv("RAZORPAY_KEY_ID"), os.Getenv("RAZORPAY_KEY_SECRET")
}

type SMTPConfig struct {
	Host string
	Port string
	User string
	Pass string
	From string
}

func SMTP() SMTPConfig {
	return SMTPConfig{
		Host: os.Getenv("SMTP_HOST"),
		Port: GetEnv("SMTP_PORT", "587"),
		User: os.Getenv("SMTP_USER"),
		Pass: os.Getenv("SMTP_PASS"),
		From: GetEnv("SMTP_FROM", os.Getenv("SMTP_USER")),
	}
}

type SMSConfig struct {
	GatewayURL string
	APIKey     string
	Sender     string
}

func SMS() SMSConfig {
	return SMSConfig{
		GatewayURL: os.Getenv("SMS_GATEWAY_URL"),
		APIKey:     os.Getenv("SMS_API_KEY"),
		Sender:     GetEnv("SMS_SENDER", "STORE"),
	}
}
