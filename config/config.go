package config

import (
	"fmt"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config содержит все конфигурационные параметры приложения.
type Config struct {
	Env    string `mapstructure:"APP_ENV" validate:"oneof=dev prod"`
	Server struct {
		Port      string `mapstructure:"SERVER_PORT" validate:"required,numeric"`
		RateLimit int    `mapstructure:"RATE_LIMIT" validate:"gte=0"`
	} `mapstructure:",squash"`
	Storage struct {
		Driver     string `mapstructure:"STORAGE_DRIVER" validate:"oneof=sqlite memory redis"`
		Key        string `mapstructure:"STORAGE_KEY" validate:"required"`
		QuotaBytes int    `mapstructure:"STORAGE_QUOTA_BYTES" validate:"gte=0"`
		SQLitePath string `mapstructure:"SQLITE_PATH" validate:"required_if=Driver sqlite"`
	} `mapstructure:",squash"`
	Redis struct {
		Host     string `mapstructure:"REDIS_HOST"`
		Port     string `mapstructure:"REDIS_PORT"`
		Password string `mapstructure:"REDIS_PASSWORD"`
		DB       int    `mapstructure:"REDIS_DB" validate:"gte=0"`
	} `mapstructure:",squash"`
	Content struct {
		File  string `mapstructure:"CONTENT_FILE"`
		Watch bool   `mapstructure:"CONTENT_WATCH"`
	} `mapstructure:",squash"`
}

// DSN returns the sqlite data source name for the storage file.
func (c *Config) DSN() string {
	return c.Storage.SQLitePath + "?_busy_timeout=5000"
}

// AppConfig - это глобальная переменная для хранения загруженной конфигурации,
// доступная для всего приложения.
var AppConfig *Config

// LoadConfig загружает конфигурацию из .env и переменных окружения.
// Эту функцию нужно вызвать один раз при старте приложения.
func LoadConfig() error {
	cfg, err := Load()
	if err != nil {
		return err
	}
	AppConfig = cfg
	log.Println("Configuration loaded successfully.")
	return nil
}

// Load reads the configuration without touching AppConfig.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)
	configureViper(v)
	if err := readConfiguration(v); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the loaded values against the struct tags.
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// Defaults returns a config populated with default values only.
// The defaults are fixed, so a decode failure is a programming error.
func Defaults() *Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		panic(fmt.Sprintf("config: invalid defaults: %v", err))
	}
	return &cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "dev")
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("RATE_LIMIT", 60)

	v.SetDefault("STORAGE_DRIVER", "sqlite")
	v.SetDefault("STORAGE_KEY", "thesisFeedback")
	// Примерно как квота localStorage в браузерах
	v.SetDefault("STORAGE_QUOTA_BYTES", 5*1024*1024)
	v.SetDefault("SQLITE_PATH", "playground.db")

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("CONTENT_FILE", "")
	v.SetDefault("CONTENT_WATCH", false)
}

func configureViper(v *viper.Viper) {
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
}

func readConfiguration(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("WARNING: .env file not found, using defaults and system env")
			return nil
		}
		return fmt.Errorf("config file error: %w", err)
	}
	log.Printf("Using config file: %s", v.ConfigFileUsed())
	return nil
}
