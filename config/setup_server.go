package config

import (
	"fmt"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
	"net/http"
	"os"
	"strings"
	"time"
)

type AppConfig struct {
	Server         ServerConfig   `yaml:"server"`
	DatabaseConfig DatabaseConfig `yaml:"databaseConfig"`
	RedisConfig    RedisConfig    `yaml:"redisConfig"`
	Storage        StorageConfig  `yaml:"storage"`
	JWT            JWTConfig      `yaml:"jwt"`
	Uploads        UploadsConfig  `yaml:"uploads"`
	TTL            TTL            `yaml:"TTL"`
}

var validate = validator.New()

func LoadConfig(path string) (*AppConfig, error) {
	file, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return ParseConfig(file)
}

// ParseConfig : разбирает YAML, подставляет значения по умолчанию и валидирует результат
func ParseConfig(data []byte) (*AppConfig, error) {
	cfg := defaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func defaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Addr:      ":8080",
			PublicURL: "http://localhost:8080",
		},
		Storage: StorageConfig{
			Type:      "local",
			Namespace: "uploads",
			Local:     LocalConfig{Root: "storage"},
		},
		JWT: JWTConfig{
			AccessTokenTTL:  "15m",
			RefreshTokenTTL: "720h",
		},
		Uploads: UploadsConfig{
			PublicIDLength:   10,
			MaxNameAttempts:  1000,
			LockTTLSeconds:   30,
			LockWaitSeconds:  10,
			MaxUploadSizeMiB: 32,
			MaxFileSizeKiB:   2048,
			AllowedExtensions: []string{
				"doc", "pdf", "docx", "zip", "jpeg", "jpg", "png",
			},
		},
		TTL: TTL{FileCache: 300},
	}
}

func Validate(cfg *AppConfig) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("невалидная конфигурация: %w", err)
	}

	switch cfg.Storage.Type {
	case "local":
		if cfg.Storage.Local.Root == "" {
			return fmt.Errorf("невалидная конфигурация: storage.local.root обязателен для type=local")
		}
	case "s3":
		if cfg.Storage.S3.Bucket == "" || cfg.Storage.S3.Region == "" {
			return fmt.Errorf("невалидная конфигурация: storage.s3.bucket и storage.s3.region обязательны для type=s3")
		}
	}

	for name, value := range map[string]string{
		"jwt.access_token_ttl":  cfg.JWT.AccessTokenTTL,
		"jwt.refresh_token_ttl": cfg.JWT.RefreshTokenTTL,
	} {
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("невалидная конфигурация: %s: %w", name, err)
		}
	}

	return nil
}

func (u UploadsConfig) LockTTL() time.Duration {
	return time.Duration(u.LockTTLSeconds) * time.Second
}

// IsAllowedExtension : сравнение без учёта регистра
func (u UploadsConfig) IsAllowedExtension(ext string) bool {
	for _, allowed := range u.AllowedExtensions {
		if strings.EqualFold(allowed, ext) {
			return true
		}
	}
	return false
}

func (u UploadsConfig) LockWait() time.Duration {
	return time.Duration(u.LockWaitSeconds) * time.Second
}

func SetupServer(serverAddress string) (*http.Server, *chi.Mux) {
	router := chi.NewRouter()
	server := &http.Server{
		Addr:    serverAddress,
		Handler: router,
	}

	return server, router
}

func SetupDatabase(dsn string) (*Database, error) {
	return NewDatabaseConnection("postgres", dsn)
}

func SetupRedis(cfg *RedisConfig) (*RedisClient, error) {
	return NewRedisClient(cfg)
}
