package config

import (
	"log"
	"os"
	"strconv"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Env  string `yaml:"env"`
	} `yaml:"server"`

	Database struct {
		// Driver: "postgres" или "mysql"
		Driver string `yaml:"driver"`
		DSN    string `yaml:"url"`
	} `yaml:"database"`

	Email struct {
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUsername string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		FromEmail    string `yaml:"from_email"`
		FromName     string `yaml:"from_name"`
	} `yaml:"email"`

	JWT struct {
		Secret string `yaml:"secret"`
		TTL    int    `yaml:"ttl"` // minutes
	} `yaml:"jwt"`

	Payment struct {
		MerchantLogin string `yaml:"merchant_login"`
		Password1     string `yaml:"password1"`
		Password2     string `yaml:"password2"`
		BaseURL       string `yaml:"base_url"`
	} `yaml:"payment"`

	Redis struct {
		Enabled bool   `yaml:"enabled"`
		Addr    string `yaml:"addr"`
		DB      int    `yaml:"db"`
		TTLSec  int    `yaml:"ttl_seconds"`
	} `yaml:"redis"`

	FirstAdminEmail    string `yaml:"first_admin_email"`
	FirstAdminPassword string `yaml:"first_admin_password"`
}

var AppConfig *Config

// LoadConfig загружает конфигурацию из config.yaml или, если задан
// DATABASE_URL, целиком из переменных окружения (режим тестов/CI).
func LoadConfig() {
	var cfg Config

	dbURL := os.Getenv("DATABASE_URL")

	if dbURL == "" {
		configPath := os.Getenv("CONFIG_PATH")
		if configPath == "" {
			configPath = "config/config.yaml"
		}

		f, err := os.Open(configPath)
		if err != nil {
			log.Fatalf("Failed to open config file at %s: %v", configPath, err)
		}
		defer f.Close()

		decoder := yaml.NewDecoder(f)
		if err := decoder.Decode(&cfg); err != nil {
			log.Fatalf("Failed to parse config file at %s: %v", configPath, err)
		}

		if cfg.Database.Driver == "" {
			cfg.Database.Driver = "postgres"
		}

		AppConfig = &cfg
		return
	}

	log.Println("Загрузка конфигурации из переменных окружения")

	cfg.Database.DSN = dbURL
	cfg.Database.Driver = envOr("DATABASE_DRIVER", "postgres")
	cfg.Server.Env = os.Getenv("SERVER_ENV")
	cfg.Server.Port, _ = strconv.Atoi(os.Getenv("SERVER_PORT"))
	cfg.JWT.Secret = os.Getenv("JWT_SECRET")
	cfg.JWT.TTL = 60

	cfg.Email.SMTPHost = envOr("SMTP_HOST", "localhost")
	cfg.Email.SMTPPort = 587
	cfg.Email.FromEmail = envOr("SMTP_FROM", "noreply@guzo.et")
	cfg.Email.FromName = "Guzo"

	cfg.Payment.MerchantLogin = os.Getenv("PAYMENT_MERCHANT_LOGIN")
	cfg.Payment.Password1 = os.Getenv("PAYMENT_PASSWORD1")
	cfg.Payment.Password2 = os.Getenv("PAYMENT_PASSWORD2")

	cfg.Redis.Enabled = os.Getenv("REDIS_ADDR") != ""
	cfg.Redis.Addr = os.Getenv("REDIS_ADDR")
	cfg.Redis.TTLSec = 300

	cfg.FirstAdminEmail = os.Getenv("FIRST_ADMIN_EMAIL")
	cfg.FirstAdminPassword = os.Getenv("FIRST_ADMIN_PASSWORD")

	AppConfig = &cfg
}

func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
