package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/alexanderramin/lichhen/internal/domain"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// ErrInvalidConfig is returned when a loaded configuration is inconsistent.
var ErrInvalidConfig = errors.New("invalid configuration")

// BusinessHours describes the working day the advisor schedules into.
type BusinessHours struct {
	Open                  int `yaml:"open"`
	Close                 int `yaml:"close"`
	NextDayStart          int `yaml:"next_day_start"`
	LunchStart            int `yaml:"lunch_start"`
	LunchEnd              int `yaml:"lunch_end"`
	MaxRelocationAttempts int `yaml:"max_relocation_attempts"`
}

type ReminderConfig struct {
	LeadMinutes int    `yaml:"lead_minutes"`
	Schedule    string `yaml:"schedule"`
}

// UrgencyKeywords override a category's default priority.
type UrgencyKeywords struct {
	High []string `yaml:"high"`
	Low  []string `yaml:"low"`
}

// Config is the top-level application configuration.
type Config struct {
	Timezone   string                `yaml:"timezone"`
	DBPath     string                `yaml:"db_path"`
	LogLevel   string                `yaml:"log_level"`
	Business   BusinessHours         `yaml:"business_hours"`
	Reminder   ReminderConfig        `yaml:"reminder"`
	Urgency    UrgencyKeywords       `yaml:"urgency"`
	Categories []domain.TaskCategory `yaml:"categories"`
}

// Default returns the built-in configuration.
func Default() *Config {
	var cfg Config
	if err := yaml.Unmarshal(defaultsYAML, &cfg); err != nil {
		panic(fmt.Sprintf("embedded defaults: %v", err))
	}
	return &cfg
}

// Load builds the effective configuration: built-in defaults, then the YAML
// file at path (if any), then LICHHEN_* environment variables. A .env file in
// the working directory is loaded into the environment first.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	if path == "" {
		path = os.Getenv("LICHHEN_CONFIG")
	}
	if path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return nil, err
		}
	}
	cfg.applyEnv()

	if cfg.DBPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("finding home directory: %w", err)
		}
		cfg.DBPath = filepath.Join(home, ".lichhen", "lichhen.db")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("config file %s not found: %w", path, err)
		}
		return fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.DBPath = getEnvOrDefault("LICHHEN_DB", c.DBPath)
	c.Timezone = getEnvOrDefault("LICHHEN_TZ", c.Timezone)
	c.LogLevel = getEnvOrDefault("LICHHEN_LOG_LEVEL", c.LogLevel)
	c.Business.Open = getEnvAsIntOrDefault("LICHHEN_BUSINESS_OPEN", c.Business.Open)
	c.Business.Close = getEnvAsIntOrDefault("LICHHEN_BUSINESS_CLOSE", c.Business.Close)
	c.Business.LunchStart = getEnvAsIntOrDefault("LICHHEN_LUNCH_START", c.Business.LunchStart)
	c.Business.LunchEnd = getEnvAsIntOrDefault("LICHHEN_LUNCH_END", c.Business.LunchEnd)
	c.Reminder.LeadMinutes = getEnvAsIntOrDefault("LICHHEN_REMINDER_LEAD_MIN", c.Reminder.LeadMinutes)
	c.Reminder.Schedule = getEnvOrDefault("LICHHEN_REMINDER_SCHEDULE", c.Reminder.Schedule)
}

// Validate rejects hour ranges the scheduler cannot work with.
func (c *Config) Validate() error {
	b := c.Business
	if b.Open < 0 || b.Close > 24 || b.Open >= b.Close {
		return fmt.Errorf("%w: business hours %d-%d", ErrInvalidConfig, b.Open, b.Close)
	}
	if b.LunchStart >= b.LunchEnd || b.LunchStart < b.Open || b.LunchEnd > b.Close {
		return fmt.Errorf("%w: lunch break %d-%d outside business hours", ErrInvalidConfig, b.LunchStart, b.LunchEnd)
	}
	if b.NextDayStart < b.Open || b.NextDayStart >= b.Close {
		return fmt.Errorf("%w: next-day start %d", ErrInvalidConfig, b.NextDayStart)
	}
	if b.MaxRelocationAttempts <= 0 {
		return fmt.Errorf("%w: max_relocation_attempts must be positive", ErrInvalidConfig)
	}
	if c.Reminder.LeadMinutes <= 0 {
		return fmt.Errorf("%w: reminder lead must be positive", ErrInvalidConfig)
	}
	seen := make(map[string]bool, len(c.Categories))
	for _, cat := range c.Categories {
		if cat.Name == "" || len(cat.Keywords) == 0 {
			return fmt.Errorf("%w: category %q needs a name and keywords", ErrInvalidConfig, cat.Name)
		}
		if seen[cat.Name] {
			return fmt.Errorf("%w: duplicate category %q", ErrInvalidConfig, cat.Name)
		}
		seen[cat.Name] = true
		if cat.DurationMinutes <= 0 || cat.BestStartHour >= cat.BestEndHour {
			return fmt.Errorf("%w: category %q has invalid duration or best-time window", ErrInvalidConfig, cat.Name)
		}
		if _, ok := domain.ParsePriority(string(cat.Priority)); !ok {
			return fmt.Errorf("%w: category %q priority %q", ErrInvalidConfig, cat.Name, cat.Priority)
		}
	}
	return nil
}

// Location resolves the configured timezone. Hosts without tzdata fall back
// to a fixed UTC+7 zone.
func (c *Config) Location() *time.Location {
	if c.Timezone != "" {
		if loc, err := time.LoadLocation(c.Timezone); err == nil {
			return loc
		}
	}
	return time.FixedZone("ICT", 7*3600)
}
