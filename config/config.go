package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"darksky-forecast/pkg/forecast"
)

const DefaultPath = "config/config.yaml"

const darkSkyProvider = "darksky"

type Config struct {
	AppName      string           `envconfig:"APP_NAME" yaml:"app_name"`
	AppVersion   string           `envconfig:"APP_VERSION" yaml:"app_version"`
	AppEnv       string           `envconfig:"APP_ENV" yaml:"app_env"`
	Port         string           `envconfig:"PORT" yaml:"port"`
	LogLevel     string           `envconfig:"LOG_LEVEL" yaml:"log_level"`
	SentryDSN    string           `envconfig:"SENTRY_DSN" yaml:"sentry_dsn"`
	ExposeAPIKey bool             `envconfig:"EXPOSE_API_KEY" yaml:"expose_api_key"`
	Forecast     ForecastDefaults `yaml:"forecast"`
	Providers    []ProviderConfig `yaml:"providers" ignored:"true"`
}

// ForecastDefaults are applied to every built request unless the caller overrides them.
type ForecastDefaults struct {
	Language string `envconfig:"LANGUAGE" yaml:"language"`
	Units    string `envconfig:"UNITS" yaml:"units"`
}

type ProviderConfig struct {
	Name        string `yaml:"name"`
	APIKey      string `yaml:"api_key,omitempty"`
	URLTemplate string `yaml:"url_template,omitempty"`
}

func defaults() Config {
	return Config{
		AppName:    "forecast-api",
		AppVersion: "1.0.0",
		AppEnv:     "development",
		Port:       "8080",
		LogLevel:   "info",
	}
}

// NewConfig reads the YAML file at CONFIG_PATH (or DefaultPath) and then
// applies environment overrides.
func NewConfig() (*Config, error) {
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = DefaultPath
	}

	return Load(path)
}

// Load reads the YAML file at path, if it exists, and applies environment
// overrides on top of it. FORECAST_LANGUAGE and FORECAST_UNITS set the
// request defaults.
func Load(path string) (*Config, error) {
	cnf := defaults()

	// Read from YAML file first
	if yamlData, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(yamlData, &cnf); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	// Override with environment variables. Fields without a default tag are
	// left alone when their variable is unset.
	if err := envconfig.Process("", &cnf); err != nil {
		return nil, fmt.Errorf("error environment variable parsing: %w", err)
	}

	cnf.applyDarkSkyEnv()

	if err := cnf.Validate(); err != nil {
		return nil, err
	}

	return &cnf, nil
}

// applyDarkSkyEnv lets DARKSKY_API_KEY and DARKSKY_URL_TEMPLATE override the
// provider named darksky, adding it when the file does not list one.
func (c *Config) applyDarkSkyEnv() {
	key := os.Getenv("DARKSKY_API_KEY")
	template := os.Getenv("DARKSKY_URL_TEMPLATE")
	if key == "" && template == "" {
		return
	}

	for i := range c.Providers {
		if c.Providers[i].Name != darkSkyProvider {
			continue
		}
		if key != "" {
			c.Providers[i].APIKey = key
		}
		if template != "" {
			c.Providers[i].URLTemplate = template
		}
		return
	}

	c.Providers = append(c.Providers, ProviderConfig{
		Name:        darkSkyProvider,
		APIKey:      key,
		URLTemplate: template,
	})
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.AppName) == "" {
		return fmt.Errorf("app name cannot be empty")
	}
	if strings.TrimSpace(c.Port) == "" {
		return fmt.Errorf("port cannot be empty")
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q", c.LogLevel)
	}

	if c.Forecast.Language != "" {
		if _, err := forecast.ParseLanguage(c.Forecast.Language); err != nil {
			return fmt.Errorf("invalid forecast defaults: %w", err)
		}
	}
	if c.Forecast.Units != "" {
		if _, err := forecast.ParseUnits(c.Forecast.Units); err != nil {
			return fmt.Errorf("invalid forecast defaults: %w", err)
		}
	}

	seen := make(map[string]bool, len(c.Providers))
	for i, p := range c.Providers {
		if strings.TrimSpace(p.Name) == "" {
			return fmt.Errorf("provider %d: name cannot be empty", i)
		}
		if seen[p.Name] {
			return fmt.Errorf("provider %s: configured twice", p.Name)
		}
		seen[p.Name] = true

		if strings.TrimSpace(p.APIKey) == "" {
			return fmt.Errorf("provider %s: api key cannot be empty", p.Name)
		}
	}

	return nil
}
