package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"
)

// Config is the application configuration, loaded from an env-suffixed YAML
// file. Backend credentials come from the environment (see DatabaseURL).
type Config struct {
	// HolidayCalendarID is the public Google calendar the bulk generator
	// reads holiday dates from.
	HolidayCalendarID string `yaml:"holidayCalendarID" validate:"required"`
	// DefaultRRule seeds generateShifts when no rule is passed on the
	// command line, e.g. "FREQ=WEEKLY;BYDAY=FR,SA".
	DefaultRRule string `yaml:"defaultRRule,omitempty"`
	GmailUserID  string `yaml:"gmailUserID" validate:"required"`
	GmailSender  string `yaml:"gmailSender,omitempty" validate:"omitempty,email"`
	// AvatarBucket is the object-storage bucket avatar images land in.
	AvatarBucket string `yaml:"avatarBucket" validate:"required"`

	databaseURL string
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// LoadWithEnv loads and validates the configuration for an environment,
// looking for shiftdesk.<env>.yaml in the current directory then the home
// directory. A .env file, if present, is folded into the process environment
// first so DATABASE_URL can live outside the YAML.
func LoadWithEnv(env string) (*Config, error) {
	// Missing .env is fine; real deployments set the variables directly.
	godotenv.Load()

	path, err := findConfigFile(env)
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(path)
}

// LoadFromPath loads and validates the configuration from a specific path.
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	cfg.databaseURL = os.Getenv("DATABASE_URL")

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the struct constraints plus the recurrence-rule syntax.
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	if cfg.DefaultRRule != "" {
		if _, err := rrule.StrToRRule(cfg.DefaultRRule); err != nil {
			return fmt.Errorf("invalid defaultRRule: %w", err)
		}
	}

	return nil
}

// DatabaseURL returns the backend Postgres connection string, taken from the
// DATABASE_URL environment variable (optionally via .env).
func (c *Config) DatabaseURL() (string, error) {
	if c.databaseURL == "" {
		return "", fmt.Errorf("DATABASE_URL is not set")
	}
	return c.databaseURL, nil
}

func findConfigFile(env string) (string, error) {
	name := "shiftdesk.yaml"
	if env != "" {
		name = "shiftdesk." + env + ".yaml"
	}

	if _, err := os.Stat(name); err == nil {
		return name, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homePath := filepath.Join(homeDir, name)
	if _, err := os.Stat(homePath); err == nil {
		return homePath, nil
	}

	return "", fmt.Errorf("config file %s not found in current directory or home directory", name)
}
