package config

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the harness configuration
type Config struct {
	// Root of the API under test, e.g. http://localhost:5000/api
	BaseURL  string
	Email    string
	Password string
	// Per-call deadlines
	LoginTimeout time.Duration
	WriteTimeout time.Duration
	ReadTimeout  time.Duration
	// Seed for bill generation; 0 picks one from the clock
	Seed          int64
	StrictSeeding bool
	// Optional YAML seeding plan
	PlanFile string
	// Optional run report storage (postgres:// or sqlite://)
	ResultsDatabaseURL string
	// Optional Prometheus Pushgateway
	PushgatewayURL string
	LogLevel       string
}

// LoadConfig loads configuration from environment variables, after loading
// the nearest .env found walking up from the working directory.
func LoadConfig() (*Config, error) {
	currentDir, _ := os.Getwd()
	for currentDir != "/" && currentDir != "." {
		envPath := filepath.Join(currentDir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			if err := godotenv.Load(envPath); err != nil {
				return nil, fmt.Errorf("failed to load .env file: %v", err)
			}
			break
		}
		currentDir = filepath.Dir(currentDir)
	}
	return fromEnv()
}

// LoadConfigFrom loads the given env file instead of searching for one.
// Variables already set in the process environment win.
func LoadConfigFrom(envFile string) (*Config, error) {
	if err := godotenv.Load(envFile); err != nil {
		return nil, fmt.Errorf("failed to load env file %s: %v", envFile, err)
	}
	return fromEnv()
}

func fromEnv() (*Config, error) {
	config := defaults()

	vars := []struct {
		name     string
		envVar   string
		display  string
		required bool
	}{
		{"BaseURL", "FINSEC_BASE_URL", "Finsec Base URL", false},
		{"Email", "FINSEC_EMAIL", "Finsec Email", false},
		{"Password", "FINSEC_PASSWORD", "Finsec Password", false},
		{"LoginTimeout", "LOGIN_TIMEOUT", "Login Timeout", false},
		{"WriteTimeout", "WRITE_TIMEOUT", "Write Timeout", false},
		{"ReadTimeout", "READ_TIMEOUT", "Read Timeout", false},
		{"Seed", "SEED", "Seed", false},
		{"StrictSeeding", "STRICT_SEEDING", "Strict Seeding", false},
		{"PlanFile", "PLAN_FILE", "Plan File", false},
		{"ResultsDatabaseURL", "RESULTS_DATABASE_URL", "Results Database URL", false},
		{"PushgatewayURL", "PUSHGATEWAY_URL", "Pushgateway URL", false},
		{"LogLevel", "LOG_LEVEL", "Log Level", false},
	}

	for _, v := range vars {
		value := os.Getenv(v.envVar)
		if value == "" {
			if v.required {
				return nil, fmt.Errorf("missing required environment variable: %s", v.display)
			}
			continue
		}
		field := reflect.ValueOf(config).Elem().FieldByName(v.name)
		if err := setField(field, value); err != nil {
			return nil, fmt.Errorf("invalid %s (%s=%q): %w", v.display, v.envVar, value, err)
		}
	}

	if config.BaseURL == "" {
		return nil, fmt.Errorf("missing required environment variable: Finsec Base URL")
	}
	return config, nil
}

func defaults() *Config {
	return &Config{
		BaseURL:      DefaultBaseURL,
		Email:        DefaultEmail,
		Password:     DefaultPassword,
		LoginTimeout: 10 * time.Second,
		WriteTimeout: 5 * time.Second,
		ReadTimeout:  10 * time.Second,
		LogLevel:     "info",
	}
}

var durationType = reflect.TypeOf(time.Duration(0))

func setField(field reflect.Value, value string) error {
	if field.Type() == durationType {
		d, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		field.SetInt(int64(d))
		return nil
	}
	switch field.Kind() {
	case reflect.String:
		field.SetString(value)
	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return err
		}
		field.SetBool(b)
	case reflect.Int64:
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return err
		}
		field.SetInt(n)
	default:
		return fmt.Errorf("unsupported config field kind %s", field.Kind())
	}
	return nil
}
