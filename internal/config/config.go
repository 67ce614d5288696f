package config

import (
	"errors"
	"fmt"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"strings"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	App       AppConfig       `mapstructure:"app"`
	HTTP      HTTPConfig      `mapstructure:"http"`
	Store     StoreConfig     `mapstructure:"store"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Kafka     KafkaConfig     `mapstructure:"kafka"`
	Inventory InventoryConfig `mapstructure:"inventory"`
	Profile   ProfileConfig   `mapstructure:"profile"`
}

type AppConfig struct {
	Env         string `mapstructure:"env"`
	ServiceName string `mapstructure:"service_name"`
}

type HTTPConfig struct {
	Addr string `mapstructure:"addr"`
}

type StoreConfig struct {
	Driver      string `mapstructure:"driver"`
	SQLitePath  string `mapstructure:"sqlite_path"`
	PostgresDSN string `mapstructure:"postgres_dsn"`
	MaxConns    int32  `mapstructure:"max_conns"`
}

// Redis is optional; an empty Addr disables caching, idempotency keys and
// event dedup.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Kafka is optional; no brokers means events are dropped.
type KafkaConfig struct {
	Brokers []string `mapstructure:"-"`
	Group   string   `mapstructure:"group"`
	Workers int      `mapstructure:"workers"`
}

type InventoryConfig struct {
	LowStockThreshold int `mapstructure:"low_stock_threshold"`
}

type ProfileConfig struct {
	Name  string `mapstructure:"name"`
	TaxID string `mapstructure:"tax_id"`
	Email string `mapstructure:"email"`
	Age   int    `mapstructure:"age"`
	City  string `mapstructure:"city"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.env", "development")
	v.SetDefault("app.service_name", "salon-api")
	v.SetDefault("http.addr", ":8081")
	v.SetDefault("store.driver", DriverSQLite)
	v.SetDefault("store.sqlite_path", "salon.db")
	v.SetDefault("store.postgres_dsn", "")
	v.SetDefault("store.max_conns", 8)
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("kafka.brokers", "")
	v.SetDefault("kafka.group", "salon-inventory")
	v.SetDefault("kafka.workers", 4)
	v.SetDefault("inventory.low_stock_threshold", 0)
	v.SetDefault("profile.name", "Studio Owner")
	v.SetDefault("profile.tax_id", "")
	v.SetDefault("profile.email", "contact@example.com")
	v.SetDefault("profile.age", 0)
	v.SetDefault("profile.city", "")
}

// Load reads .env, an optional YAML file and SALON_* environment variables,
// in increasing order of precedence. An empty file looks for salon.yaml in
// the working directory and $HOME/.salon.
func Load(file string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("salon")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.salon")
	}

	v.SetEnvPrefix("SALON")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.Kafka.Brokers = splitCSV(v.GetString("kafka.brokers"))

	return &cfg, cfg.validate()
}

func (c *Config) validate() error {
	switch c.Store.Driver {
	case DriverSQLite:
		if c.Store.SQLitePath == "" {
			return fmt.Errorf("store.sqlite_path is empty")
		}
	case DriverPostgres:
		if c.Store.PostgresDSN == "" {
			return fmt.Errorf("store.postgres_dsn is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unknown store driver %q", c.Store.Driver)
	}
	if c.HTTP.Addr == "" {
		return fmt.Errorf("http.addr is empty")
	}
	return nil
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
