package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	EnvPrefix = "CHECKLIST"
	EnvTest   = "test"

	DefaultCacheTTL = 5 * time.Second
)

type Config struct {
	Env string

	APIPort string

	DBDriver   string
	DBHost     string
	DBPort     int
	DBUser     string
	DBPassword string
	DBDatabase string
	DBSSLMode  string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	CacheTTL      time.Duration

	KafkaBroker  string
	KafkaTopic   string
	KafkaLogFile string

	CORSOrigins     []string
	ShutdownTimeout time.Duration
}

func defaults(v *viper.Viper) {
	v.SetDefault("api_port", "5000")
	v.SetDefault("db_driver", "postgres")
	v.SetDefault("db_port", 5432)
	v.SetDefault("db_sslmode", "disable")
	v.SetDefault("redis_db", 0)
	v.SetDefault("cache_ttl", DefaultCacheTTL)
	v.SetDefault("cors_origins", "*")
	v.SetDefault("shutdown_timeout", 5*time.Second)
}

// FileFor returns the env file read for the given environment: the test
// environment gets its own database settings.
func FileFor(dir, env string) string {
	if env == EnvTest {
		return filepath.Join(dir, "testconfig.env")
	}
	return filepath.Join(dir, "config.env")
}

// Load reads CHECKLIST_ENV, then the matching env file under dir (if it
// exists), then CHECKLIST_* environment variables, which win over the file.
func Load(dir string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	defaults(v)

	env := v.GetString("env")

	path := FileFor(dir, env)
	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		v.SetConfigType("env")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
	}

	cfg := &Config{
		Env:             env,
		APIPort:         v.GetString("api_port"),
		DBDriver:        v.GetString("db_driver"),
		DBHost:          v.GetString("db_host"),
		DBPort:          v.GetInt("db_port"),
		DBUser:          v.GetString("db_user"),
		DBPassword:      v.GetString("db_password"),
		DBDatabase:      v.GetString("db_database"),
		DBSSLMode:       v.GetString("db_sslmode"),
		RedisAddr:       v.GetString("redis_addr"),
		RedisPassword:   v.GetString("redis_password"),
		RedisDB:         v.GetInt("redis_db"),
		CacheTTL:        v.GetDuration("cache_ttl"),
		KafkaBroker:     v.GetString("kafka_broker"),
		KafkaTopic:      v.GetString("kafka_topic"),
		KafkaLogFile:    v.GetString("kafka_log_file"),
		CORSOrigins:     splitList(v.GetString("cors_origins")),
		ShutdownTimeout: v.GetDuration("shutdown_timeout"),
	}
	// The cache has no "no expiry" mode.
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = DefaultCacheTTL
	}
	return cfg, nil
}

// Validate checks the settings every process needs to reach the store.
func (c *Config) Validate() error {
	var missing []string
	for key, val := range map[string]string{
		"db_host":     c.DBHost,
		"db_user":     c.DBUser,
		"db_database": c.DBDatabase,
	} {
		if val == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		slices.Sort(missing)
		return fmt.Errorf("%s not configured", strings.Join(missing, ", "))
	}
	if c.DBPort <= 0 {
		return errors.New("db_port must be positive")
	}
	return nil
}

// DSN is a keyword/value connection string understood by both lib/pq and pgx.
func (c *Config) DSN() string {
	parts := []string{
		"host=" + quote(c.DBHost),
		fmt.Sprintf("port=%d", c.DBPort),
		"user=" + quote(c.DBUser),
		"dbname=" + quote(c.DBDatabase),
		"sslmode=" + quote(c.DBSSLMode),
	}
	if c.DBPassword != "" {
		parts = append(parts, "password="+quote(c.DBPassword))
	}
	return strings.Join(parts, " ")
}

func (c *Config) CacheEnabled() bool {
	return c.RedisAddr != ""
}

func (c *Config) EventsEnabled() bool {
	return c.KafkaBroker != "" && c.KafkaTopic != ""
}

func quote(s string) string {
	if s != "" && !strings.ContainsAny(s, ` '\`) {
		return s
	}
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `'`, `\'`)
	return "'" + s + "'"
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
