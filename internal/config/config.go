package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/yigit/studentsync/internal/pkg/apperrors"
)

// Config structure represents the application configuration
type Config struct {
	Source struct {
		Path             string `yaml:"path" env:"ROSTER_SOURCE_PATH"`
		Sheet            string `yaml:"sheet" env:"ROSTER_SOURCE_SHEET"`
		NoHeaderMarker   string `yaml:"no_header_marker" env:"ROSTER_NO_HEADER_MARKER"`
		NameHeaderMarker string `yaml:"name_header_marker" env:"ROSTER_NAME_HEADER_MARKER"`
	} `yaml:"source"`

	Output struct {
		Path string `yaml:"path" env:"ROSTER_OUTPUT_PATH"`
	} `yaml:"output"`

	Credentials struct {
		EmailDomain string `yaml:"email_domain" env:"ROSTER_EMAIL_DOMAIN"`
	} `yaml:"credentials"`

	// Firebase describes the environment contract of the generated script.
	Firebase struct {
		EnvFile        string `yaml:"env_file" env:"FIREBASE_ENV_FILE"`
		ProjectIDEnv   string `yaml:"project_id_env"`
		ClientEmailEnv string `yaml:"client_email_env"`
		PrivateKeyEnv  string `yaml:"private_key_env"`
		Collection     string `yaml:"collection" env:"FIREBASE_USERS_COLLECTION"`
		Role           string `yaml:"role" env:"FIREBASE_STUDENT_ROLE"`
	} `yaml:"firebase"`

	Server struct {
		Port string `yaml:"port" env:"SERVER_PORT"`
		Mode string `yaml:"mode" env:"SERVER_MODE"`
	} `yaml:"server"`

	Database struct {
		Host            string `yaml:"host" env:"DB_HOST"`
		Port            string `yaml:"port" env:"DB_PORT"`
		User            string `yaml:"user" env:"DB_USER"`
		Password        string `yaml:"password" env:"DB_PASSWORD"`
		DBName          string `yaml:"dbname" env:"DB_NAME"`
		SSLMode         string `yaml:"sslmode" env:"DB_SSLMODE"`
		MaxIdleConns    int    `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS"`
		MaxOpenConns    int    `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
		ConnMaxLifetime string `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
	} `yaml:"database"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`
}

var (
	envNamePattern    = regexp.MustCompile(`^[A-Z_][A-Z0-9_]*$`)
	identifierPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
)

// LoadDotEnv loads the given .env files into the process environment.
// Missing files are skipped; variables already set are not overridden.
func LoadDotEnv(paths ...string) error {
	for _, path := range paths {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("failed to load env file %s: %w", path, err)
		}
	}
	return nil
}

// LoadConfig loads configuration from a file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			file, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}

			if err := yaml.Unmarshal(file, config); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	if err := loadFromEnv(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrInvalidConfig, err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	config.Source.Path = "DAFTAR SISWA KELAS 6 SDN TUGU 1.xlsx"
	config.Source.NoHeaderMarker = "NO"
	config.Source.NameHeaderMarker = "NAMA"

	config.Output.Path = "scripts/populate-students-from-excel.js"

	config.Credentials.EmailDomain = "students.pppl.id"

	config.Firebase.EnvFile = "../.env.local"
	config.Firebase.ProjectIDEnv = "FIREBASE_ADMIN_PROJECT_ID"
	config.Firebase.ClientEmailEnv = "FIREBASE_ADMIN_CLIENT_EMAIL"
	config.Firebase.PrivateKeyEnv = "FIREBASE_ADMIN_PRIVATE_KEY"
	config.Firebase.Collection = "users"
	config.Firebase.Role = "student"

	config.Server.Port = "8080"
	config.Server.Mode = "development"

	config.Database.Host = "localhost"
	config.Database.Port = "5432"
	config.Database.User = "postgres"
	config.Database.Password = "postgres"
	config.Database.DBName = "studentsync"
	config.Database.SSLMode = "disable"
	config.Database.MaxIdleConns = 1
	config.Database.MaxOpenConns = 5
	config.Database.ConnMaxLifetime = "1h"

	config.Logging.Level = "info"
	config.Logging.Format = "text"
}

// loadFromEnv overrides configuration with environment variables
func loadFromEnv(config *Config) error {
	return processStructFields(config)
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	if strings.TrimSpace(config.Source.Path) == "" {
		return fmt.Errorf("source path is required")
	}

	if strings.TrimSpace(config.Output.Path) == "" {
		return fmt.Errorf("output path is required")
	}

	domain := strings.TrimSpace(config.Credentials.EmailDomain)
	if domain == "" || strings.ContainsAny(domain, "@ \t") {
		return fmt.Errorf("email domain %q is invalid", config.Credentials.EmailDomain)
	}

	// These values are spliced into the generated script, keep them to safe
	// character sets.
	for _, name := range []string{config.Firebase.ProjectIDEnv, config.Firebase.ClientEmailEnv, config.Firebase.PrivateKeyEnv} {
		if !envNamePattern.MatchString(name) {
			return fmt.Errorf("environment variable name %q is invalid", name)
		}
	}
	if !identifierPattern.MatchString(config.Firebase.Collection) {
		return fmt.Errorf("collection %q is invalid", config.Firebase.Collection)
	}
	if !identifierPattern.MatchString(config.Firebase.Role) {
		return fmt.Errorf("role %q is invalid", config.Firebase.Role)
	}

	if _, err := time.ParseDuration(config.Database.ConnMaxLifetime); err != nil {
		return fmt.Errorf("invalid database connection max lifetime: %w", err)
	}

	return nil
}

// GetPostgresConnectionString returns postgres connection string
func (c *Config) GetPostgresConnectionString() string {
	sslMode := c.Database.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
		sslMode,
	)
}
