package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"runadvisor/internal/models"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	maxForecastDays = 16

	defaultSafeThresholdC = 33.0
	defaultOutlookHours   = 24
	defaultForecastDays   = 3
	defaultRequestsPerSec = 5.0
	defaultBurst          = 5
	defaultTimeout        = 10 * time.Second
	defaultServerAddr     = ":8080"
)

var (
	instance *Config
	once     sync.Once
)

type AdvisorConfig struct {
	SafeThresholdC float64 `yaml:"safe_threshold_c"`
	OutlookHours   int     `yaml:"outlook_hours"`
	ForecastDays   int     `yaml:"forecast_days"`
	StrictPlan     bool    `yaml:"strict_plan"`
	AirQuality     bool    `yaml:"air_quality"`
}

type APIConfig struct {
	RequestsPerSecond float64       `yaml:"requests_per_second"`
	Burst             int           `yaml:"burst"`
	Timeout           time.Duration `yaml:"timeout"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Config is the advisor's file configuration. Connection settings for the
// publishing sinks come from the environment instead (see GetRedisConfig).
type Config struct {
	Advisor   AdvisorConfig     `yaml:"advisor"`
	API       APIConfig         `yaml:"api"`
	Server    ServerConfig      `yaml:"server"`
	Log       LogConfig         `yaml:"log"`
	Locations []models.Location `yaml:"locations"`
}

// Default returns a config with every default applied and no locations
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load reads the YAML config once; later calls return the same instance.
// A .env file in the working directory is loaded first if present.
func Load(configPath string) (*Config, error) {
	var err error
	once.Do(func() {
		LoadDotEnv()

		instance = &Config{}

		data, readErr := os.ReadFile(configPath)
		if readErr != nil {
			err = fmt.Errorf("failed to read config file %s: %w", configPath, readErr)
			return
		}

		if parseErr := yaml.Unmarshal(data, instance); parseErr != nil {
			err = fmt.Errorf("failed to parse config: %w", parseErr)
			return
		}

		instance.applyDefaults()

		if validateErr := instance.validate(); validateErr != nil {
			err = validateErr
			return
		}
	})

	return instance, err
}

// LoadOrDefault behaves like Load but falls back to Default when the file does not exist
func LoadOrDefault(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); errors.Is(err, os.ErrNotExist) {
		once.Do(func() {
			LoadDotEnv()
			instance = Default()
		})
		return instance, nil
	}
	return Load(configPath)
}

func Get() *Config {
	if instance == nil {
		panic("config not loaded - call config.Load() first")
	}
	return instance
}

// LoadDotEnv loads a .env file into the environment. A missing file is not an error.
func LoadDotEnv(paths ...string) {
	_ = godotenv.Load(paths...)
}

// FindLocation looks up a configured location by name, case-insensitively
func (c *Config) FindLocation(name string) (models.Location, bool) {
	for _, loc := range c.Locations {
		if strings.EqualFold(loc.Name, name) {
			return loc, true
		}
	}
	return models.Location{}, false
}

func (c *Config) applyDefaults() {
	if c.Advisor.SafeThresholdC == 0 {
		c.Advisor.SafeThresholdC = defaultSafeThresholdC
	}
	if c.Advisor.OutlookHours == 0 {
		c.Advisor.OutlookHours = defaultOutlookHours
	}
	if c.Advisor.ForecastDays == 0 {
		c.Advisor.ForecastDays = defaultForecastDays
	}
	if c.API.RequestsPerSecond == 0 {
		c.API.RequestsPerSecond = defaultRequestsPerSec
	}
	if c.API.Burst == 0 {
		c.API.Burst = defaultBurst
	}
	if c.API.Timeout == 0 {
		c.API.Timeout = defaultTimeout
	}
	if c.Server.Addr == "" {
		c.Server.Addr = defaultServerAddr
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

func (c *Config) validate() error {
	if c.Advisor.SafeThresholdC < 0 {
		return fmt.Errorf("advisor.safe_threshold_c must be positive, got %v", c.Advisor.SafeThresholdC)
	}
	if c.Advisor.OutlookHours < 0 {
		return fmt.Errorf("advisor.outlook_hours must be positive, got %d", c.Advisor.OutlookHours)
	}
	if c.Advisor.ForecastDays < 1 || c.Advisor.ForecastDays > maxForecastDays {
		return fmt.Errorf("advisor.forecast_days must be between 1 and %d, got %d", maxForecastDays, c.Advisor.ForecastDays)
	}
	if c.API.RequestsPerSecond < 0 || c.API.Burst < 0 {
		return fmt.Errorf("api rate limit cannot be negative")
	}

	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}

	seen := make(map[string]bool, len(c.Locations))
	for i, loc := range c.Locations {
		if loc.Name == "" {
			return fmt.Errorf("locations[%d]: name cannot be empty", i)
		}
		if loc.Latitude < -90 || loc.Latitude > 90 {
			return fmt.Errorf("locations[%d] %s: latitude out of range", i, loc.Name)
		}
		if loc.Longitude < -180 || loc.Longitude > 180 {
			return fmt.Errorf("locations[%d] %s: longitude out of range", i, loc.Name)
		}
		key := strings.ToLower(loc.Name)
		if seen[key] {
			return fmt.Errorf("locations: duplicate name %q", loc.Name)
		}
		seen[key] = true
	}
	return nil
}
