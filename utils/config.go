package utils

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"
)

const (
	DriverSqlite   = "sqlite"
	DriverMysql    = "mysql"
	DriverPostgres = "postgres"
)

type DatabaseConfig struct {
	Driver          string        `yaml:"driver" validate:"oneof=sqlite mysql postgres"`
	DSN             string        `yaml:"dsn" validate:"required"`
	MaxOpenConns    int           `yaml:"max_open_conns" validate:"gte=0"`
	MaxIdleConns    int           `yaml:"max_idle_conns" validate:"gte=0"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" validate:"gte=0"`
	ConnectRetries  int           `yaml:"connect_retries" validate:"gte=0"`
}

// Config is the configuration of the service, read from YAML and overridden from the environment.
type Config struct {
	Server struct {
		Host            string        `yaml:"host"`
		Port            string        `yaml:"port" validate:"required,numeric"`
		Debug           bool          `yaml:"debug"`
		ReadTimeout     time.Duration `yaml:"read_timeout" validate:"gte=0"`
		WriteTimeout    time.Duration `yaml:"write_timeout" validate:"gte=0"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout" validate:"gte=0"`
	} `yaml:"server"`

	Database DatabaseConfig `yaml:"database"`

	Media struct {
		// Root directory, drawings and images are written to subdirectories of it.
		Root string `yaml:"root" validate:"required"`
	} `yaml:"media"`

	Share struct {
		BaseURL string `yaml:"base_url" validate:"required,url"`
	} `yaml:"share"`
}

// DefaultConfig returns a configuration that runs without any config file.
func DefaultConfig() *Config {
	config := &Config{}
	config.Server.Port = "8000"
	config.Server.ReadTimeout = 5 * time.Second
	config.Server.WriteTimeout = 10 * time.Second
	config.Server.ShutdownTimeout = 5 * time.Second
	config.Database.Driver = DriverSqlite
	config.Database.DSN = "annotator.sqlite"
	config.Database.MaxOpenConns = 10
	config.Database.MaxIdleConns = 5
	config.Database.ConnMaxLifetime = time.Hour
	config.Database.ConnectRetries = 5
	config.Media.Root = "media"
	config.Share.BaseURL = "https://myapp.com/share"
	return config
}

// Addr is the listen address of the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Server.Host, c.Server.Port)
}

// ValidateConfigPath makes sure the path is a readable regular file
func ValidateConfigPath(path string) error {
	s, err := os.Stat(path)
	if err != nil {
		return err
	}
	if s.IsDir() {
		return fmt.Errorf("'%s' is a directory, not a normal file", path)
	}
	return nil
}

// ParseFlags parses the command line flags. An empty config path means defaults only.
func ParseFlags() (string, bool, error) {
	var configPath string
	var debugMode bool

	flag.StringVar(&configPath, "config", "", "path to config file")
	flag.BoolVar(&debugMode, "debug", false, "enable debug mode")
	flag.Parse()

	if configPath == "" {
		return "", debugMode, nil
	}
	if err := ValidateConfigPath(configPath); err != nil {
		return "", false, err
	}
	return configPath, debugMode, nil
}

// NewConfig builds the configuration: defaults, then the YAML file at configPath (if any),
// then a .env file and ANNOTATOR_* environment variables. The result is validated.
func NewConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if configPath != "" {
		file, err := os.Open(configPath)
		if err != nil {
			return nil, err
		}
		defer file.Close()

		if err := yaml.NewDecoder(file).Decode(config); err != nil {
			return nil, fmt.Errorf("cannot decode config %s: %w", configPath, err)
		}
	}

	if err := godotenv.Load(); err == nil {
		log.Debug("Loaded environment from .env")
	}
	if err := applyEnv(config); err != nil {
		return nil, err
	}

	if err := validator.New().Struct(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return config, nil
}

func applyEnv(config *Config) error {
	fields := map[string]*string{
		"ANNOTATOR_HOST":       &config.Server.Host,
		"ANNOTATOR_PORT":       &config.Server.Port,
		"ANNOTATOR_DB_DRIVER":  &config.Database.Driver,
		"ANNOTATOR_DB_DSN":     &config.Database.DSN,
		"ANNOTATOR_MEDIA_ROOT": &config.Media.Root,
		"ANNOTATOR_SHARE_URL":  &config.Share.BaseURL,
	}
	for key, target := range fields {
		if value, ok := os.LookupEnv(key); ok {
			*target = value
		}
	}

	if value, ok := os.LookupEnv("ANNOTATOR_DEBUG"); ok {
		debug, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid ANNOTATOR_DEBUG: %w", err)
		}
		config.Server.Debug = debug
	}
	return nil
}
