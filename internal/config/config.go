package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// Config is loaded once in main and handed to every constructor that needs a
// slice of it. Nothing in the codebase reads configuration through a global.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	JWT      JWTConfig      `yaml:"jwt"`
	S3       S3Config       `yaml:"s3"`
	SMTP     SMTPConfig     `yaml:"smtp"`
	Detector DetectorConfig `yaml:"detector"`
	Gemini   GeminiConfig   `yaml:"gemini"`
	Worker   WorkerConfig   `yaml:"worker"`
}

type ServerConfig struct {
	Host   string `yaml:"host"`
	Port   string `yaml:"port"`
	AppURL string `yaml:"app_url"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
}

type JWTConfig struct {
	Secret string `yaml:"secret"`
	Issuer string `yaml:"issuer"`
}

type S3Config struct {
	Bucket    string `yaml:"bucket"`
	Region    string `yaml:"region"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	// Endpoint is set for MinIO or localstack, empty for real AWS.
	Endpoint string `yaml:"endpoint"`
}

type SMTPConfig struct {
	Host         string `yaml:"host"`
	Port         int    `yaml:"port"`
	SenderName   string `yaml:"sender_name"`
	AuthEmail    string `yaml:"auth_email"`
	AuthPassword string `yaml:"auth_password"`
}

type DetectorConfig struct {
	ModelURL       string `yaml:"model_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

type GeminiConfig struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"`
}

type WorkerConfig struct {
	Workers   int `yaml:"workers"`
	QueueSize int `yaml:"queue_size"`
}

// Load reads the YAML file at path, then lets environment variables override
// the secrets so deployments can keep them out of the file.
func Load(path string) (*Config, error) {
	cfg := &Config{
		Server:   ServerConfig{Host: "0.0.0.0", Port: "8080"},
		JWT:      JWTConfig{Issuer: "PANTRYFIT"},
		Detector: DetectorConfig{TimeoutSeconds: 60},
		Worker:   WorkerConfig{Workers: 4, QueueSize: 64},
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(file, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	overrideFromEnv(&cfg.JWT.Secret, "JWT_SECRET")
	overrideFromEnv(&cfg.Database.Password, "DB_PASSWORD")
	overrideFromEnv(&cfg.S3.AccessKey, "AWS_ACCESS_KEY")
	overrideFromEnv(&cfg.S3.SecretKey, "AWS_SECRET_KEY")
	overrideFromEnv(&cfg.SMTP.AuthPassword, "SMTP_AUTH_PASSWORD")
	overrideFromEnv(&cfg.Gemini.APIKey, "GEMINI_API_KEY")
	overrideFromEnv(&cfg.Detector.ModelURL, "AI_MODEL_URL")

	if cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("jwt secret is not configured")
	}

	return cfg, nil
}

func overrideFromEnv(target *string, key string) {
	if v := os.Getenv(key); v != "" {
		*target = v
	}
}
