package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	ServerPort string

	// WebhookSecret is the shared secret for payment-rail signature
	// verification. The webhook endpoint rejects everything when unset.
	WebhookSecret string

	// SimulationMode selects simulated adapters at wiring time. There is
	// no runtime fallback: either the whole process simulates, or none
	// of it does.
	SimulationMode bool

	// Platform deposit account returned as ON_RAMP payment instructions.
	DepositBankName      string
	DepositAccountNumber string
	DepositAccountName   string

	// CheckTimeout bounds balance/limit lookups; those fail closed.
	CheckTimeout time.Duration

	// TransferPollInterval drives UI-facing transfer status polling.
	TransferPollInterval time.Duration

	// KafkaBrokers/AuditTopic enable the Kafka audit publisher when set.
	KafkaBrokers []string
	AuditTopic   string
}

func Load() *Config {
	// .env is a development convenience; absence is not an error.
	_ = godotenv.Load()

	return &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "password"),
		DBName:     getEnv("DB_NAME", "sui_ramp"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		ServerPort: getEnv("SERVER_PORT", "8080"),

		WebhookSecret:  os.Getenv("WEBHOOK_SECRET"),
		SimulationMode: getEnvBool("SIMULATION_MODE", false),

		DepositBankName:      getEnv("DEPOSIT_BANK_NAME", ""),
		DepositAccountNumber: getEnv("DEPOSIT_ACCOUNT_NUMBER", ""),
		DepositAccountName:   getEnv("DEPOSIT_ACCOUNT_NAME", ""),

		CheckTimeout:         getEnvDuration("CHECK_TIMEOUT", 5*time.Second),
		TransferPollInterval: getEnvDuration("TRANSFER_POLL_INTERVAL", 10*time.Second),

		KafkaBrokers: splitList(os.Getenv("KAFKA_BROKERS")),
		AuditTopic:   getEnv("AUDIT_TOPIC", "swap-audit"),
	}
}

func (c *Config) GetDBConnectionString() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

func splitList(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
