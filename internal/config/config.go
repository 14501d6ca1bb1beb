package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// HTTP server
	Port string

	// Parsing
	DefaultCurrency string

	// Classification: optional YAML keyword rule file; empty means the
	// built-in taxonomy table.
	ClassifierRulesFile string

	// Sessions
	SessionTTL time.Duration

	// AMQP event stream; empty URL disables publishing.
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string
}

func Load() *Config {
	return &Config{
		Port:                getEnv("PORT", "8082"),
		DefaultCurrency:     getEnv("DEFAULT_CURRENCY", "INR"),
		ClassifierRulesFile: getEnv("CLASSIFIER_RULES_FILE", ""),
		SessionTTL:          getEnvDuration("SESSION_TTL", 30*time.Minute),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "kharcha"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "expenses_processed"),
	}
}

// Validate checks the configuration and returns an error describing every
// invalid field at once.
func (c *Config) Validate() error {
	var problems []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		problems = append(problems, fmt.Sprintf("invalid port %q: must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	cur := strings.ToUpper(strings.TrimSpace(c.DefaultCurrency))
	if len(cur) != 3 {
		problems = append(problems, fmt.Sprintf("invalid default currency %q: want a 3-letter code", c.DefaultCurrency))
	} else {
		c.DefaultCurrency = cur
	}

	if c.SessionTTL < 0 {
		problems = append(problems, fmt.Sprintf("invalid session TTL %s: must not be negative", c.SessionTTL))
	}

	if c.AMQPURL != "" {
		if c.AMQPExchange == "" {
			problems = append(problems, "AMQP exchange must be set when AMQP_URL is configured")
		}
		if c.AMQPQueue == "" {
			problems = append(problems, "AMQP queue must be set when AMQP_URL is configured")
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration errors: %s", strings.Join(problems, "; "))
	}
	return nil
}

// EventsEnabled reports whether the processed-expense event stream is on.
func (c *Config) EventsEnabled() bool {
	return c.AMQPURL != ""
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
