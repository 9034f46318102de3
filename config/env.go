package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultAppPort         = "3000"
	defaultAppEnv          = "local"
	defaultDatabaseDriver  = "mongo"
	defaultMongoURI        = "mongodb://localhost:27017"
	defaultMongoDatabase   = "homeDecorationDB"
	defaultAuthDriver      = "firebase"
	defaultJWTSecret       = "change-me-in-production"
	defaultRedisAddr       = "localhost:6379"
	defaultClientDomain    = "http://localhost:5173"
	defaultCORSOrigins     = "http://localhost:5173,http://localhost:5174"
	defaultRateLimit       = "200"
	defaultRateDriver      = "memory"
	defaultCurrency        = "usd"
	defaultMaxBodyBytes    = "4194304"
	defaultTxLimit         = "100"
	defaultShutdownTimeout = "10s"
)

// Config holds the merged application settings. Build one with Load and pass
// it down; nothing in the application reads configuration from globals.
type Config struct {
	values map[string]string
}

// Load merges defaults, config/app.json, .env and the process environment,
// in that order of precedence (environment wins). Missing files are skipped.
func Load() (*Config, error) {
	return LoadFrom("config/app.json", ".env")
}

// LoadFrom is Load with explicit file locations.
func LoadFrom(configPath, envPath string) (*Config, error) {
	loaded := defaultValues()

	if err := mergeJSONConfig(configPath, loaded); err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
	}

	if err := mergeDotEnv(envPath, loaded); err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
	}

	for key := range loaded {
		if v, ok := os.LookupEnv(key); ok {
			loaded[key] = strings.TrimSpace(v)
		}
	}

	return &Config{values: loaded}, nil
}

// FromMap builds a Config from explicit values layered over the defaults.
func FromMap(values map[string]string) *Config {
	loaded := defaultValues()
	for k, v := range values {
		loaded[strings.ToUpper(k)] = v
	}
	return &Config{values: loaded}
}

func defaultValues() map[string]string {
	return map[string]string{
		"APP_ENV":              defaultAppEnv,
		"APP_PORT":             defaultAppPort,
		"DB_DRIVER":            defaultDatabaseDriver,
		"MONGODB_URI":          defaultMongoURI,
		"MONGODB_DATABASE":     defaultMongoDatabase,
		"AUTH_DRIVER":          defaultAuthDriver,
		"FIREBASE_SERVICE_KEY": "",
		"JWT_SECRET":           defaultJWTSecret,
		"STRIPE_SECRET_KEY":    "",
		"CLIENT_DOMAIN":        defaultClientDomain,
		"CORS_ORIGINS":         defaultCORSOrigins,
		"RATE_LIMIT":           defaultRateLimit,
		"RATE_LIMIT_DRIVER":    defaultRateDriver,
		"REDIS_ADDR":           defaultRedisAddr,
		"REDIS_PASSWORD":       "",
		"LOG_MONGO":            "false",
		"LOG_LEVEL":            "",
		"MAX_BODY_BYTES":       defaultMaxBodyBytes,
		"CHECKOUT_CURRENCY":    defaultCurrency,
		"TRANSACTIONS_LIMIT":   defaultTxLimit,
		"SHUTDOWN_TIMEOUT":     defaultShutdownTimeout,
	}
}

func (c *Config) AppEnv() string  { return c.get("APP_ENV", defaultAppEnv) }
func (c *Config) AppPort() string { return c.get("APP_PORT", defaultAppPort) }

// IsProduction reports whether APP_ENV names a production deployment.
func (c *Config) IsProduction() bool {
	switch strings.ToLower(c.AppEnv()) {
	case "production", "prod":
		return true
	}
	return false
}

func (c *Config) DatabaseDriver() string {
	driver := strings.ToLower(c.get("DB_DRIVER", defaultDatabaseDriver))
	switch driver {
	case "mongo", "memory":
		return driver
	default:
		return defaultDatabaseDriver
	}
}

func (c *Config) MongoURI() string      { return c.get("MONGODB_URI", defaultMongoURI) }
func (c *Config) MongoDatabase() string { return c.get("MONGODB_DATABASE", defaultMongoDatabase) }

func (c *Config) AuthDriver() string {
	driver := strings.ToLower(c.get("AUTH_DRIVER", defaultAuthDriver))
	switch driver {
	case "firebase", "jwt":
		return driver
	default:
		return defaultAuthDriver
	}
}

// FirebaseServiceKey is the base64-encoded service account JSON.
func (c *Config) FirebaseServiceKey() string { return c.get("FIREBASE_SERVICE_KEY", "") }
func (c *Config) JWTSecret() string          { return c.get("JWT_SECRET", defaultJWTSecret) }

// JWTSecretIsDefault reports whether JWT_SECRET is unset or still the
// shipped placeholder.
func (c *Config) JWTSecretIsDefault() bool {
	s := strings.TrimSpace(c.values["JWT_SECRET"])
	return s == "" || s == defaultJWTSecret
}
func (c *Config) StripeSecretKey() string    { return c.get("STRIPE_SECRET_KEY", "") }

func (c *Config) ClientDomain() string {
	return strings.TrimRight(c.get("CLIENT_DOMAIN", defaultClientDomain), "/")
}

func (c *Config) CORSOrigins() []string {
	return splitList(c.get("CORS_ORIGINS", defaultCORSOrigins))
}

// RateLimit is the number of requests one client may make per minute.
// Zero disables the limiter.
func (c *Config) RateLimit() int {
	return c.getInt("RATE_LIMIT", 200)
}

func (c *Config) RateLimitDriver() string {
	if strings.ToLower(c.get("RATE_LIMIT_DRIVER", defaultRateDriver)) == "redis" {
		return "redis"
	}
	return defaultRateDriver
}

func (c *Config) RedisAddr() string     { return c.get("REDIS_ADDR", defaultRedisAddr) }
func (c *Config) RedisPassword() string { return c.get("REDIS_PASSWORD", "") }

func (c *Config) LogToMongo() bool {
	v, err := strconv.ParseBool(c.get("LOG_MONGO", "false"))
	return err == nil && v
}

// LogLevel is debug, info, warn or error. Empty picks the default for APP_ENV.
func (c *Config) LogLevel() string { return strings.ToLower(c.get("LOG_LEVEL", "")) }

func (c *Config) MaxBodyBytes() int64 {
	n, err := strconv.ParseInt(c.get("MAX_BODY_BYTES", defaultMaxBodyBytes), 10, 64)
	if err != nil || n <= 0 {
		return 4 << 20
	}
	return n
}

func (c *Config) CheckoutCurrency() string {
	return strings.ToLower(c.get("CHECKOUT_CURRENCY", defaultCurrency))
}

func (c *Config) TransactionsLimit() int { return c.getInt("TRANSACTIONS_LIMIT", 100) }

func (c *Config) ShutdownTimeout() time.Duration {
	d, err := time.ParseDuration(c.get("SHUTDOWN_TIMEOUT", defaultShutdownTimeout))
	if err != nil || d <= 0 {
		return 10 * time.Second
	}
	return d
}

// Get reads any config key by name with an optional fallback.
func (c *Config) Get(key, fallback string) string {
	return c.get(strings.ToUpper(key), fallback)
}

func mergeJSONConfig(path string, out map[string]string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	var raw map[string]interface{}
	if err := json.NewDecoder(file).Decode(&raw); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}

	for key, val := range raw {
		var s string
		switch v := val.(type) {
		case string:
			s = v
		case float64:
			s = strconv.FormatFloat(v, 'f', -1, 64)
		case bool:
			s = strconv.FormatBool(v)
		default:
			continue
		}

		k := strings.ToUpper(strings.TrimSpace(key))
		if k == "" {
			continue
		}
		out[k] = strings.TrimSpace(s)
	}

	return nil
}

func mergeDotEnv(path string, out map[string]string) error {
	env, err := godotenv.Read(path)
	if err != nil {
		if _, statErr := os.Stat(path); os.IsNotExist(statErr) {
			return statErr
		}
		return fmt.Errorf("read %s: %w", path, err)
	}

	for key, value := range env {
		k := strings.ToUpper(strings.TrimSpace(key))
		if k == "" {
			continue
		}
		out[k] = strings.TrimSpace(value)
	}
	return nil
}

func (c *Config) get(key, fallback string) string {
	if value := strings.TrimSpace(c.values[key]); value != "" {
		return value
	}
	return fallback
}

func (c *Config) getInt(key string, fallback int) int {
	n, err := strconv.Atoi(c.get(key, ""))
	if err != nil || n < 0 {
		return fallback
	}
	return n
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
