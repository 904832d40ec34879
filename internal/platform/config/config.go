package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL    string
	Port           string
	IsProduction   bool
	LogLevel       string
	JWTSecret      string
	MigrationsPath string

	// Money display
	DefaultCurrency    string
	OfficialRate       bool
	RateTimeZone       string
	RateLocation       *time.Location // Calendar day of "today" for rate lookups
	DefaultLanguage    string
	CurrencyCookieName string
	BillsPageSize      int

	RateLimit       string
	FrontendBaseURL string

	// Document link store; empty URI disables it.
	MongoURI      string
	MongoDatabase string
	MongoTimeout  time.Duration

	// Status event stream; empty brokers disables it.
	KafkaBrokers     []string
	KafkaStatusTopic string
}

// MongoEnabled reports whether the document link store is configured.
func (c *Config) MongoEnabled() bool { return c.MongoURI != "" }

// KafkaEnabled reports whether status events are published.
func (c *Config) KafkaEnabled() bool { return len(c.KafkaBrokers) > 0 }

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	v.SetDefault("MIGRATIONS_PATH", "migrations")

	v.SetDefault("DEFAULT_CURRENCY", "RUB")
	v.SetDefault("OFFICIAL_RATE", false)
	v.SetDefault("RATE_TIMEZONE", "UTC")
	v.SetDefault("DEFAULT_LANGUAGE", "en")
	v.SetDefault("CURRENCY_COOKIE_NAME", "currency")
	v.SetDefault("BILLS_PAGE_SIZE", 20)

	v.SetDefault("RATE_LIMIT", "100-M")
	v.SetDefault("FRONTEND_BASE_URL", "http://localhost:3000")

	v.SetDefault("MONGO_URI", "")
	v.SetDefault("MONGO_DATABASE", "money")
	v.SetDefault("MONGO_TIMEOUT", 10*time.Second)

	v.SetDefault("KAFKA_BROKERS", "")
	v.SetDefault("KAFKA_STATUS_TOPIC", "money_status_events")
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		DatabaseURL:        v.GetString("PGSQL_URL"),
		Port:               v.GetString("PORT"),
		IsProduction:       v.GetBool("IS_PRODUCTION"),
		LogLevel:           v.GetString("LOG_LEVEL"),
		JWTSecret:          v.GetString("JWT_SECRET"),
		MigrationsPath:     v.GetString("MIGRATIONS_PATH"),
		DefaultCurrency:    strings.ToUpper(strings.TrimSpace(v.GetString("DEFAULT_CURRENCY"))),
		OfficialRate:       v.GetBool("OFFICIAL_RATE"),
		RateTimeZone:       strings.TrimSpace(v.GetString("RATE_TIMEZONE")),
		DefaultLanguage:    v.GetString("DEFAULT_LANGUAGE"),
		CurrencyCookieName: v.GetString("CURRENCY_COOKIE_NAME"),
		BillsPageSize:      v.GetInt("BILLS_PAGE_SIZE"),
		RateLimit:          v.GetString("RATE_LIMIT"),
		FrontendBaseURL:    v.GetString("FRONTEND_BASE_URL"),
		MongoURI:           v.GetString("MONGO_URI"),
		MongoDatabase:      v.GetString("MONGO_DATABASE"),
		MongoTimeout:       v.GetDuration("MONGO_TIMEOUT"),
		KafkaBrokers:       splitList(v.GetString("KAFKA_BROKERS")),
		KafkaStatusTopic:   v.GetString("KAFKA_STATUS_TOPIC"),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// validate collects every problem so that a bad deployment reports them all at once.
func (c *Config) validate() error {
	var validationErrors []string

	if c.DatabaseURL == "" {
		validationErrors = append(validationErrors, "PGSQL_URL is required")
	}
	if c.Port == "" {
		validationErrors = append(validationErrors, "PORT is required")
	}
	if c.JWTSecret == "" {
		validationErrors = append(validationErrors, "JWT_SECRET is required")
	}
	if _, err := currency.ParseISO(c.DefaultCurrency); err != nil {
		validationErrors = append(validationErrors, fmt.Sprintf("DEFAULT_CURRENCY %q is not an ISO 4217 code", c.DefaultCurrency))
	}
	if loc, err := time.LoadLocation(c.RateTimeZone); err != nil {
		validationErrors = append(validationErrors, fmt.Sprintf("RATE_TIMEZONE %q is not an IANA time zone", c.RateTimeZone))
	} else {
		c.RateLocation = loc
	}
	if _, err := language.Parse(c.DefaultLanguage); err != nil {
		validationErrors = append(validationErrors, fmt.Sprintf("DEFAULT_LANGUAGE %q is not a BCP 47 tag", c.DefaultLanguage))
	}
	if c.CurrencyCookieName == "" {
		validationErrors = append(validationErrors, "CURRENCY_COOKIE_NAME is required")
	}
	if c.BillsPageSize <= 0 {
		validationErrors = append(validationErrors, "BILLS_PAGE_SIZE must be greater than 0")
	}
	if c.MongoEnabled() {
		if c.MongoDatabase == "" {
			validationErrors = append(validationErrors, "MONGO_DATABASE is required when MONGO_URI is set")
		}
		if c.MongoTimeout <= 0 {
			validationErrors = append(validationErrors, "MONGO_TIMEOUT must be greater than 0")
		}
	}
	if c.KafkaEnabled() && c.KafkaStatusTopic == "" {
		validationErrors = append(validationErrors, "KAFKA_STATUS_TOPIC is required when KAFKA_BROKERS is set")
	}

	if len(validationErrors) > 0 {
		return errors.New(strings.Join(validationErrors, "; "))
	}
	return nil
}
