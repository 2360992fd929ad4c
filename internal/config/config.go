package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Storage   StorageConfig
	JWT       JWTConfig
	Cookie    CookieConfig
	Password  PasswordConfig
	Argon2    Argon2Config
	RateLimit RateLimitConfig
	Redis     RedisConfig
	CORS      CORSConfig
	Secure    SecureConfig
	Metrics   MetricsConfig
	Log       LogConfig
}

type ServerConfig struct {
	Port string
}

// StorageConfig selects the credential store. Driver is "mongo" or "memory".
type StorageConfig struct {
	Driver string
	URI    string
	Name   string
}

type JWTConfig struct {
	AccessSecret  string
	RefreshSecret string
	Issuer        string
	AccessExpiry  int64 // seconds
	RefreshExpiry int64 // seconds
}

type CookieConfig struct {
	Secure bool
	MaxAge int // seconds
}

type PasswordConfig struct {
	Hasher     string
	BcryptCost int
}

type Argon2Config struct {
	Memory      uint32
	Iterations  uint32
	Parallelism uint8
}

type RateLimitConfig struct {
	Login     string // "5-M"
	RatePerIP string // empty disables
}

type RedisConfig struct {
	URL string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type SecureConfig struct {
	IsDevelopment bool
}

type MetricsConfig struct {
	Enabled bool
}

type LogConfig struct {
	Level  string
	Format string
}

const (
	DriverMongo  = "mongo"
	DriverMemory = "memory"
)

var defaults = map[string]interface{}{
	"PORT":                   "3500",
	"STORAGE_DRIVER":         DriverMongo,
	"DATABASE_URI":           "mongodb://localhost:27017",
	"DATABASE_NAME":          "todo_api",
	"JWT_ISSUER":             "todo-api",
	"ACCESS_TOKEN_EXPIRY":    900,
	"REFRESH_TOKEN_EXPIRY":   86400,
	"REFRESH_COOKIE_MAX_AGE": 604800,
	"COOKIE_SECURE":          true,
	"PASSWORD_HASHER":        "bcrypt",
	"BCRYPT_COST":            10,
	"ARGON2_MEMORY":          64 * 1024,
	"ARGON2_ITERATIONS":      3,
	"ARGON2_PARALLELISM":     2,
	"LOGIN_RATE":             "5-M",
	"CORS_ALLOWED_ORIGINS":   "http://localhost:3000,http://localhost:5173",
	"METRICS_ENABLED":        true,
	"LOG_LEVEL":              "info",
	"LOG_FORMAT":             "console",
}

// Load reads configuration from command-line args, an optional .env file,
// the environment and an optional config file, in that order of precedence.
func Load(args []string) (*Config, error) {
	flags := pflag.NewFlagSet("todo-api", pflag.ContinueOnError)
	configFile := flags.String("config", "", "config file (any format viper reads)")
	envFile := flags.String("env-file", ".env", "dotenv file to load if present")
	flags.String("port", "", "HTTP listen port")
	if err := flags.Parse(args); err != nil {
		return nil, err
	}

	if err := godotenv.Load(*envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", *envFile, err)
	}

	v := viper.New()
	for k, d := range defaults {
		v.SetDefault(k, d)
	}
	v.AutomaticEnv()
	if flags.Changed("port") {
		if err := v.BindPFlag("PORT", flags.Lookup("port")); err != nil {
			return nil, err
		}
	}
	if p := *configFile; p != "" || v.GetString("CONFIG_FILE") != "" {
		if p == "" {
			p = v.GetString("CONFIG_FILE")
		}
		v.SetConfigFile(p)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", p, err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: v.GetString("PORT"),
		},
		Storage: StorageConfig{
			Driver: strings.ToLower(v.GetString("STORAGE_DRIVER")),
			URI:    v.GetString("DATABASE_URI"),
			Name:   v.GetString("DATABASE_NAME"),
		},
		JWT: JWTConfig{
			AccessSecret:  v.GetString("ACCESS_TOKEN_SECRET"),
			RefreshSecret: v.GetString("REFRESH_TOKEN_SECRET"),
			Issuer:        v.GetString("JWT_ISSUER"),
			AccessExpiry:  v.GetInt64("ACCESS_TOKEN_EXPIRY"),
			RefreshExpiry: v.GetInt64("REFRESH_TOKEN_EXPIRY"),
		},
		Cookie: CookieConfig{
			Secure: v.GetBool("COOKIE_SECURE"),
			MaxAge: v.GetInt("REFRESH_COOKIE_MAX_AGE"),
		},
		Password: PasswordConfig{
			Hasher:     v.GetString("PASSWORD_HASHER"),
			BcryptCost: v.GetInt("BCRYPT_COST"),
		},
		Argon2: Argon2Config{
			Memory:      v.GetUint32("ARGON2_MEMORY"),
			Iterations:  v.GetUint32("ARGON2_ITERATIONS"),
			Parallelism: uint8(v.GetUint("ARGON2_PARALLELISM")),
		},
		RateLimit: RateLimitConfig{
			Login:     v.GetString("LOGIN_RATE"),
			RatePerIP: v.GetString("RATE_LIMIT_PER_IP"),
		},
		Redis: RedisConfig{
			URL: v.GetString("REDIS_URL"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		},
		Secure: SecureConfig{
			IsDevelopment: v.GetBool("SECURE_DEVELOPMENT"),
		},
		Metrics: MetricsConfig{
			Enabled: v.GetBool("METRICS_ENABLED"),
		},
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: strings.ToLower(v.GetString("LOG_FORMAT")),
		},
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.JWT.AccessSecret == "" || c.JWT.RefreshSecret == "" {
		return fmt.Errorf("ACCESS_TOKEN_SECRET and REFRESH_TOKEN_SECRET are required")
	}
	if c.JWT.AccessSecret == c.JWT.RefreshSecret {
		return fmt.Errorf("ACCESS_TOKEN_SECRET and REFRESH_TOKEN_SECRET must differ")
	}
	if c.JWT.AccessExpiry <= 0 || c.JWT.RefreshExpiry <= 0 {
		return fmt.Errorf("token expiries must be positive")
	}
	switch c.Storage.Driver {
	case DriverMongo, DriverMemory:
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.Storage.Driver)
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
