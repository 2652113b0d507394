package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		Env      string `yaml:"env"`       // development, production
		BasePath string `yaml:"base_path"` // префикс REST API, например /api
		// PublicOrigin - origin, с которого браузер видит API; им дополняются пути /uploads/...
		PublicOrigin string `yaml:"public_origin"`
	} `yaml:"server"`

	Database struct {
		Driver string `yaml:"driver"` // postgres, mysql, sqlite
		DSN    string `yaml:"url"`
		// MaxOpenConns 0 = без ограничения
		MaxOpenConns int `yaml:"max_open_conns"`
	} `yaml:"database"`

	JWT struct {
		Secret string `yaml:"secret"`
		TTL    int    `yaml:"ttl"` // минуты
	} `yaml:"jwt"`

	// Первый администратор создается при старте, если его нет
	Admin struct {
		Email    string `yaml:"email"`
		Password string `yaml:"password"`
	} `yaml:"admin"`

	Storage struct {
		BasePath  string `yaml:"base_path"`  // корень загрузок на диске
		URLPrefix string `yaml:"url_prefix"` // /uploads
	} `yaml:"storage"`

	Upload struct {
		MaxSize      int64    `yaml:"max_size"`      // байты
		AllowedTypes []string `yaml:"allowed_types"` // MIME; пусто = любые
		DefaultType  string   `yaml:"default_type"`
		// sweep-uploads не трогает файлы моложе этого срока
		OrphanMinAge time.Duration `yaml:"orphan_min_age"`
	} `yaml:"upload"`

	Email struct {
		Enabled      bool   `yaml:"enabled"`
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUsername string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		FromEmail    string `yaml:"from_email"`
		NotifyTo     string `yaml:"notify_to"` // куда слать новые заявки
	} `yaml:"email"`

	CORS struct {
		AllowedOrigins []string `yaml:"allowed_origins"` // пусто = все
	} `yaml:"cors"`

	Log struct {
		File       string `yaml:"file"`
		MaxSizeMB  int    `yaml:"max_size_mb"`
		MaxBackups int    `yaml:"max_backups"`
		MaxAgeDays int    `yaml:"max_age_days"`
	} `yaml:"log"`

	Site struct {
		Enabled bool   `yaml:"enabled"`
		Title   string `yaml:"title"`
	} `yaml:"site"`
}

var AppConfig *Config

// Default возвращает конфигурацию для локальной разработки
func Default() *Config {
	var cfg Config
	cfg.Server.Host = "0.0.0.0"
	cfg.Server.Port = 4000
	cfg.Server.Env = "development"
	cfg.Server.BasePath = "/api"
	cfg.Server.PublicOrigin = "http://localhost:4000"

	cfg.Database.Driver = "postgres"
	cfg.JWT.TTL = 24 * 60

	cfg.Storage.BasePath = "./uploads"
	cfg.Storage.URLPrefix = "/uploads"

	cfg.Upload.MaxSize = 10 * 1024 * 1024 // 10MB
	cfg.Upload.DefaultType = "general"
	cfg.Upload.OrphanMinAge = 24 * time.Hour

	cfg.Email.SMTPPort = 587

	cfg.Log.MaxSizeMB = 50
	cfg.Log.MaxBackups = 5
	cfg.Log.MaxAgeDays = 30

	cfg.Site.Enabled = true
	cfg.Site.Title = "Irrigation Systems"
	return &cfg
}

// Load собирает конфиг: defaults -> yaml (если файл есть) -> .env -> переменные окружения
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	if path == "" {
		path = "config/config.yaml"
	}

	f, err := os.Open(path)
	switch {
	case err == nil:
		defer f.Close()
		if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file at %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
		log.Printf("config file %s not found, using defaults and environment", path)
	default:
		return nil, fmt.Errorf("failed to open config file at %s: %w", path, err)
	}

	// .env не обязателен
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("failed to load .env: %v", err)
	}

	applyEnv(cfg)
	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfig загружает конфиг в AppConfig или завершает процесс
func LoadConfig() {
	cfg, err := Load("")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	AppConfig = cfg
}

func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}

// Validate проверяет то, без чего сервер работать не должен
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		if c.Server.Env != "development" {
			return errors.New("jwt.secret (JWT_SECRET) is required outside development")
		}
		c.JWT.Secret = "dev-insecure-secret"
		log.Println("jwt.secret is not set, using development fallback secret")
	}
	if c.Upload.MaxSize <= 0 {
		return fmt.Errorf("upload.max_size must be positive, got %d", c.Upload.MaxSize)
	}
	if c.Upload.OrphanMinAge < 0 {
		return fmt.Errorf("upload.orphan_min_age must not be negative, got %s", c.Upload.OrphanMinAge)
	}
	switch c.Database.Driver {
	case "postgres", "mysql", "sqlite":
	default:
		return fmt.Errorf("unsupported database driver: %s", c.Database.Driver)
	}
	// страницы сайта занимают "/", "/products" и т.д.
	if c.Site.Enabled && c.Server.BasePath == "" {
		return errors.New("server.base_path must be set when site.enabled is true")
	}
	return nil
}

// IsDevelopment - удобный хелпер
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

func (c *Config) normalize() {
	c.Server.BasePath = "/" + strings.Trim(c.Server.BasePath, "/")
	if c.Server.BasePath == "/" {
		c.Server.BasePath = ""
	}
	c.Server.PublicOrigin = strings.TrimRight(c.Server.PublicOrigin, "/")
	c.Storage.URLPrefix = "/" + strings.Trim(c.Storage.URLPrefix, "/")
	c.Upload.DefaultType = strings.ToLower(strings.TrimSpace(c.Upload.DefaultType))
	if c.Upload.DefaultType == "" {
		c.Upload.DefaultType = "general"
	}
}

func applyEnv(cfg *Config) {
	setString(&cfg.Server.Env, "SERVER_ENV")
	setString(&cfg.Server.Host, "SERVER_HOST")
	setInt(&cfg.Server.Port, "SERVER_PORT")
	setString(&cfg.Server.BasePath, "SERVER_BASE_PATH")
	setString(&cfg.Server.PublicOrigin, "PUBLIC_ORIGIN")

	setString(&cfg.Database.Driver, "DATABASE_DRIVER")
	setString(&cfg.Database.DSN, "DATABASE_URL")

	setString(&cfg.JWT.Secret, "JWT_SECRET")
	setInt(&cfg.JWT.TTL, "JWT_TTL")

	setString(&cfg.Admin.Email, "ADMIN_EMAIL")
	setString(&cfg.Admin.Password, "ADMIN_PASSWORD")

	setString(&cfg.Storage.BasePath, "STORAGE_BASE_PATH")
	if v := os.Getenv("UPLOAD_MAX_SIZE"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Upload.MaxSize = n
		}
	}
	if v := os.Getenv("UPLOAD_ORPHAN_MIN_AGE"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Upload.OrphanMinAge = d
		}
	}

	setString(&cfg.Email.SMTPHost, "SMTP_HOST")
	setInt(&cfg.Email.SMTPPort, "SMTP_PORT")
	setString(&cfg.Email.SMTPUsername, "SMTP_USER")
	setString(&cfg.Email.SMTPPassword, "SMTP_PASSWORD")
	setString(&cfg.Email.FromEmail, "SMTP_FROM")
	setString(&cfg.Email.NotifyTo, "CONTACT_NOTIFY_TO")
	if cfg.Email.SMTPHost != "" && cfg.Email.NotifyTo != "" {
		cfg.Email.Enabled = true
	}

	setString(&cfg.Log.File, "LOG_FILE")
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}
