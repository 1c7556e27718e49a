package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// this is a pointer so that if someone attempts to use it before loading it will
// panic and force them to load it first.
// it is also private so that it cannot be modified after loading.
var _loaded *Config

// Config is the main configuration structure
type Config struct {
	Common Common `yaml:"common"`
}

type Common struct {
	Log      logConfig      `yaml:"log"`
	Http     httpConfig     `yaml:"http"`
	Postgres postgresConfig `yaml:"postgres"`
}

type logConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type httpConfig struct {
	Host           string `yaml:"host"`
	Port           int    `yaml:"port"`
	MaxRequestSize int64  `yaml:"max_request_size"`
}

type postgresConfig struct {
	User               string `yaml:"user"`
	Password           string `yaml:"password"`
	Host               string `yaml:"host"`
	Port               int    `yaml:"port"`
	Database           string `yaml:"database"`
	MaxOpenConnections int    `yaml:"max_open_connections"`
}

func (c postgresConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable",
		url.QueryEscape(c.User),
		url.QueryEscape(c.Password),
		c.Host,
		c.Port,
		url.QueryEscape(c.Database),
	)
}

// Enabled reports whether a Postgres backend is configured. When it is not,
// the server falls back to the in-memory store.
func (c postgresConfig) Enabled() bool {
	return c.Host != ""
}

var defaultConfig = Config{
	Common: Common{
		Log: logConfig{
			Level:  "info",
			Format: "console",
		},
		Http: httpConfig{
			Host:           "0.0.0.0",
			Port:           8080,
			MaxRequestSize: 1 << 20,
		},
		Postgres: postgresConfig{
			Port:               5432,
			MaxOpenConnections: 10,
		},
	},
}

// Load loads the configuration following proper precedence: defaults → config file → environment variables
func Load() {
	// Start with defaults
	_loaded = &defaultConfig

	configFile := os.Getenv("USERHUB_CONFIG_FILE")
	if configFile == "" {
		configFile = "userhub.yaml"
	}

	if err := LoadFromFile(configFile); err != nil {
		log.Printf("Failed to load config file %s: %v, using defaults", configFile, err)
	}

	// Apply environment variable overrides (highest priority)
	ApplyEnvOverrides()
}

func LoadDefault() {
	config := defaultConfig
	_loaded = &config
}

// LoadFromFile loads configuration from a YAML file
func LoadFromFile(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with defaults and merge YAML values over them
	cfg := defaultConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	_loaded = &cfg
	return nil
}

// there should be a getter for each top level field in the config struct.
// these getters will panic if the config has not been loaded.

func Logger() logConfig {
	if _loaded == nil {
		panic("config not loaded - call Load() first")
	}
	return _loaded.Common.Log
}

func Http() httpConfig {
	if _loaded == nil {
		panic("config not loaded - call Load() first")
	}
	return _loaded.Common.Http
}

func Postgres() postgresConfig {
	if _loaded == nil {
		panic("config not loaded - call Load() first")
	}
	return _loaded.Common.Postgres
}

// Get returns the full configuration
func Get() *Config {
	if _loaded == nil {
		panic("config not loaded - call Load() first")
	}
	return _loaded
}

func ApplyEnvOverrides() {
	if _loaded == nil {
		return
	}

	if logLevel := os.Getenv("USERHUB_LOG_LEVEL"); logLevel != "" {
		_loaded.Common.Log.Level = logLevel
	}
	if logFormat := os.Getenv("USERHUB_LOG_FORMAT"); logFormat != "" {
		_loaded.Common.Log.Format = logFormat
	}

	if dbHost := os.Getenv("USERHUB_DB_HOST"); dbHost != "" {
		_loaded.Common.Postgres.Host = dbHost
	}
	if dbPort := os.Getenv("USERHUB_DB_PORT"); dbPort != "" {
		if port, err := strconv.Atoi(dbPort); err == nil {
			_loaded.Common.Postgres.Port = port
		}
	}
	if dbUser := os.Getenv("USERHUB_DB_USER"); dbUser != "" {
		_loaded.Common.Postgres.User = dbUser
	}
	if dbPassword := os.Getenv("USERHUB_DB_PASSWORD"); dbPassword != "" {
		_loaded.Common.Postgres.Password = dbPassword
	}
	if dbName := os.Getenv("USERHUB_DB_NAME"); dbName != "" {
		_loaded.Common.Postgres.Database = dbName
	}

	if httpHost := os.Getenv("USERHUB_HTTP_HOST"); httpHost != "" {
		_loaded.Common.Http.Host = httpHost
	}
	if httpPort := os.Getenv("USERHUB_HTTP_PORT"); httpPort != "" {
		if port, err := strconv.Atoi(httpPort); err == nil {
			_loaded.Common.Http.Port = port
		}
	}
}
