package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// OTP TTL profiles. The short profile is meant for lightweight mobile-only flows.
const (
	OTPProfileStandard = "standard"
	OTPProfileShort    = "short"

	defaultOTPTTL      = 10 * time.Minute
	shortOTPTTL        = 5 * time.Minute
	defaultOTPLength   = 6
	defaultTokenTTL    = 30 * 24 * time.Hour
	defaultBcryptCost  = 10
	defaultStoreDriver = "mysql"
)

type Config struct {
	Environment string
	LogLevel    string
	Server      ServerConfig
	Database    DatabaseConfig
	Mongo       MongoConfig
	Redis       RedisConfig
	Auth        AuthConfig
	OTP         OTPConfig
	Account     AccountConfig
	RabbitMQ    RabbitMQConfig
	SMTP        SMTPConfig
	Twilio      TwilioConfig
	Internal    InternalConfig
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type DatabaseConfig struct {
	// Driver selects the account store: mysql, mongo or memory.
	Driver          string
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type MongoConfig struct {
	URI      string
	Database string
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type AuthConfig struct {
	JWTSecret      string
	JWTExpiration  time.Duration
	SessionExpTime time.Duration
	BcryptCost     int
}

type OTPConfig struct {
	Profile string
	TTL     time.Duration
	Length  int
}

type AccountConfig struct {
	UserRequirePhone  bool
	AdminRequirePhone bool
}

type RabbitMQConfig struct {
	Enabled  bool
	Host     string
	Port     int
	User     string
	Password string
}

type SMTPConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

func (c SMTPConfig) Configured() bool {
	return c.Host != "" && c.Username != "" && c.Password != ""
}

type TwilioConfig struct {
	AccountSID string
	AuthToken  string
	From       string
	BaseURL    string
}

func (c TwilioConfig) Configured() bool {
	return c.AccountSID != "" && c.AuthToken != "" && c.From != ""
}

type InternalConfig struct {
	APIKey string
}

// Load reads configuration from a .env file (when present) and the process environment.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		Environment: getEnv("ENVIRONMENT", "production"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			ReadTimeout:  getDuration("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout: getDuration("SERVER_WRITE_TIMEOUT", 10*time.Second),
			IdleTimeout:  getDuration("SERVER_IDLE_TIMEOUT", 60*time.Second),
		},
		Database: DatabaseConfig{
			Driver:          strings.ToLower(getEnv("STORE_DRIVER", defaultStoreDriver)),
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getInt("DB_PORT", 3306),
			User:            getEnv("DB_USER", "root"),
			Password:        getEnv("DB_PASSWORD", ""),
			Name:            getEnv("DB_NAME", "identity"),
			MaxOpenConns:    getInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
		},
		Mongo: MongoConfig{
			URI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
			Database: getEnv("MONGO_DATABASE", "auth-app"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getInt("REDIS_DB", 0),
		},
		Auth: AuthConfig{
			JWTSecret:      getEnv("JWT_SECRET", "secretkey"),
			JWTExpiration:  getDuration("JWT_EXPIRATION", defaultTokenTTL),
			SessionExpTime: getDuration("SESSION_EXP_TIME", defaultTokenTTL),
			BcryptCost:     getInt("BCRYPT_COST", defaultBcryptCost),
		},
		OTP: OTPConfig{
			Profile: getEnv("OTP_PROFILE", OTPProfileStandard),
			Length:  getInt("OTP_LENGTH", defaultOTPLength),
		},
		Account: AccountConfig{
			UserRequirePhone:  getBool("USER_REQUIRE_PHONE", false),
			AdminRequirePhone: getBool("ADMIN_REQUIRE_PHONE", true),
		},
		RabbitMQ: RabbitMQConfig{
			Enabled:  getBool("RABBITMQ_ENABLED", false),
			Host:     getEnv("RABBITMQ_HOST", "localhost"),
			Port:     getInt("RABBITMQ_PORT", 5672),
			User:     getEnv("RABBITMQ_USER", "guest"),
			Password: getEnv("RABBITMQ_PASSWORD", "guest"),
		},
		SMTP: SMTPConfig{
			Host:     getEnv("SMTP_HOST", ""),
			Port:     getEnv("SMTP_PORT", "465"),
			Username: getEnv("EMAIL_USERNAME", ""),
			Password: getEnv("EMAIL_PASSWORD", ""),
			From:     getEnv("EMAIL_FROM", getEnv("EMAIL_USERNAME", "")),
		},
		Twilio: TwilioConfig{
			AccountSID: getEnv("TWILIO_ACCOUNT_SID", ""),
			AuthToken:  getEnv("TWILIO_AUTH_TOKEN", ""),
			From:       getEnv("TWILIO_PHONE_NUMBER", ""),
			BaseURL:    getEnv("TWILIO_BASE_URL", "https://api.twilio.com"),
		},
		Internal: InternalConfig{
			APIKey: getEnv("INTERNAL_API_KEY", ""),
		},
	}

	cfg.OTP.TTL = otpTTL(cfg.OTP.Profile)
	if minutes := getInt("OTP_TTL_MINUTES", 0); minutes > 0 {
		cfg.OTP.TTL = time.Duration(minutes) * time.Minute
	}

	return cfg
}

// IsDevelopment reports whether OTP codes may be echoed back in responses.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// GetDSN returns the MySQL data source name.
func (c *Config) GetDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&charset=utf8mb4&loc=UTC",
		c.Database.User, c.Database.Password, c.Database.Host, c.Database.Port, c.Database.Name)
}

func otpTTL(profile string) time.Duration {
	if strings.EqualFold(profile, OTPProfileShort) {
		return shortOTPTTL
	}
	return defaultOTPTTL
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return v
}

func getBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return v
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return v
}
