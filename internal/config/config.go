package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

// DB stores database connection settings.
type DB struct {
	Host string
	Port string
	User string
	Pass string
	Name string
}

// DSN builds a pgx connection string.
func (d DB) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		d.User, d.Pass, d.Host, d.Port, d.Name)
}

// Kafka stores event channel settings.
type Kafka struct {
	Brokers      []string
	GroupID      string
	CreatedTopic string
	UpdatedTopic string
}

// Rental stores lifecycle engine settings.
type Rental struct {
	Timezone         string
	OperationTimeout time.Duration
	ClaimAttempts    int
	ClaimBackoffBase time.Duration
	ClaimBackoffMax  time.Duration
}

// Location resolves the reference timezone used for all date arithmetic.
func (r Rental) Location() (*time.Location, error) {
	return time.LoadLocation(r.Timezone)
}

// Config stores service settings.
type Config struct {
	Port   int
	DB     DB
	Kafka  Kafka
	Rental Rental
}

// Load reads configuration in order: .env (if present) → environment → flags.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: .env not loaded: %v", err)
	}

	cfg := &Config{
		Port:   DefaultPort(),
		DB:     DefaultDB(),
		Kafka:  DefaultKafka(),
		Rental: DefaultRental(),
	}

	if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.Port = p
		}
	}

	readEnv("DB_HOST", &cfg.DB.Host)
	readEnv("DB_PORT", &cfg.DB.Port)
	readEnv("DB_USER", &cfg.DB.User)
	readEnv("DB_PASS", &cfg.DB.Pass)
	readEnv("DB_NAME", &cfg.DB.Name)

	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		cfg.Kafka.Brokers = splitList(v)
	}
	readEnv("KAFKA_GROUP_ID", &cfg.Kafka.GroupID)
	readEnv("KAFKA_TOPIC_RENTAL_CREATED", &cfg.Kafka.CreatedTopic)
	readEnv("KAFKA_TOPIC_RENTAL_UPDATED", &cfg.Kafka.UpdatedTopic)

	readEnv("RENTAL_TIMEZONE", &cfg.Rental.Timezone)
	readDuration("RENTAL_OPERATION_TIMEOUT", &cfg.Rental.OperationTimeout)
	readInt("RENTAL_CLAIM_ATTEMPTS", &cfg.Rental.ClaimAttempts)
	readDuration("RENTAL_CLAIM_BACKOFF_BASE", &cfg.Rental.ClaimBackoffBase)
	readDuration("RENTAL_CLAIM_BACKOFF_MAX", &cfg.Rental.ClaimBackoffMax)

	pflag.IntVarP(&cfg.Port, "port", "p", cfg.Port, "port to listen on")
	pflag.CommandLine.ParseErrorsWhitelist.UnknownFlags = true
	if err := pflag.CommandLine.Parse(os.Args[1:]); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	if c.Rental.ClaimAttempts < 1 {
		return fmt.Errorf("invalid claim attempts: %d", c.Rental.ClaimAttempts)
	}
	if _, err := c.Rental.Location(); err != nil {
		return fmt.Errorf("invalid timezone %q: %w", c.Rental.Timezone, err)
	}
	return nil
}

func readEnv(name string, dst *string) {
	if v := os.Getenv(name); v != "" {
		*dst = v
	}
}

func readInt(name string, dst *int) {
	if v := os.Getenv(name); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func readDuration(name string, dst *time.Duration) {
	if v := os.Getenv(name); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			*dst = d
		}
	}
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
