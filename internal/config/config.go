package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigPath is used when --config is not provided.
	DefaultConfigPath = "config.yml"

	defaultPort       = 3100
	defaultEnv        = "development"
	defaultDBHost     = "127.0.0.1"
	defaultDBPort     = 3306
	defaultDBUser     = "root"
	defaultDBPassword = "password"
	defaultDBName     = "pulsefit"
	defaultDBCharset  = "utf8mb4"
	defaultStaticDir  = "static"
)

// AppConfig holds runtime startup configuration loaded from YAML.
type AppConfig struct {
	Port              int            `yaml:"port"`
	Env               string         `yaml:"env"` // "development" | "production"
	DSN               string         `yaml:"dsn"`
	Database          DatabaseConfig `yaml:"database"`
	RedisURL          string         `yaml:"redis_url"`
	JWTSecret         string         `yaml:"jwt_secret"`
	StaticDir         string         `yaml:"static_dir"`
	AllowedOrigins    []string       `yaml:"allowed_origins"`
	BootstrapPassword string         `yaml:"bootstrap_password"`
}

// DatabaseConfig is the pieced-out alternative to a raw DSN.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	Charset  string `yaml:"charset"`
}

// Load reads the YAML config at path, applies environment overrides,
// and normalizes defaults. A missing file is not an error; env and
// defaults still apply.
func Load(path string) (*AppConfig, error) {
	cfg := &AppConfig{}

	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	applyEnv(cfg)
	normalize(cfg)
	return cfg, nil
}

func applyEnv(cfg *AppConfig) {
	if v := os.Getenv("PULSEFIT_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Port = n
		}
	}
	if v := os.Getenv("PULSEFIT_ENV"); v != "" {
		cfg.Env = v
	}
	if v := os.Getenv("PULSEFIT_DSN"); v != "" {
		cfg.DSN = v
	}
	if v := os.Getenv("PULSEFIT_REDIS_URL"); v != "" {
		cfg.RedisURL = v
	}
	if v := os.Getenv("PULSEFIT_JWT_SECRET"); v != "" {
		cfg.JWTSecret = v
	}
	if v := os.Getenv("PULSEFIT_STATIC_DIR"); v != "" {
		cfg.StaticDir = v
	}
	if v := os.Getenv("PULSEFIT_BOOTSTRAP_PASSWORD"); v != "" {
		cfg.BootstrapPassword = v
	}
}

func normalize(cfg *AppConfig) {
	if cfg.Port == 0 {
		cfg.Port = defaultPort
	}
	if cfg.Env == "" {
		cfg.Env = defaultEnv
	}
	if cfg.StaticDir == "" {
		cfg.StaticDir = defaultStaticDir
	}
	if cfg.DSN == "" {
		cfg.DSN = buildDSN(cfg.Database)
	}
}

func buildDSN(db DatabaseConfig) string {
	if db.Host == "" {
		db.Host = defaultDBHost
	}
	if db.Port == 0 {
		db.Port = defaultDBPort
	}
	if db.User == "" {
		db.User = defaultDBUser
	}
	if db.Password == "" {
		db.Password = defaultDBPassword
	}
	if db.Name == "" {
		db.Name = defaultDBName
	}
	if db.Charset == "" {
		db.Charset = defaultDBCharset
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=True&loc=Local",
		db.User, db.Password, db.Host, db.Port, db.Name, db.Charset)
}

// IsDev reports whether the app runs in development mode.
func (c *AppConfig) IsDev() bool {
	return strings.EqualFold(c.Env, "development") || strings.EqualFold(c.Env, "dev")
}
