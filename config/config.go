package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const configFileEnvName = "FITSTORE_CONFIG_FILE"

const (
	StorageLevelDB = "leveldb"
	StorageSQL     = "sql"
)

type retry struct {
	Attempts int           `mapstructure:"attempts"`
	Delay    time.Duration `mapstructure:"delay"`
}

type storage struct {
	Driver     string `mapstructure:"driver"`
	LevelDBDir string `mapstructure:"leveldb_dir"`
	SQLDSN     string `mapstructure:"sql_dsn"`
	CartKey    string `mapstructure:"cart_key"`
	LikedKey   string `mapstructure:"liked_key"`
	Retry      retry  `mapstructure:"retry"`
}

type checkout struct {
	FreeShippingThreshold int64 `mapstructure:"free_shipping_threshold"`
	ShippingFee           int64 `mapstructure:"shipping_fee"`
	TaxRateBasisPoints    int64 `mapstructure:"tax_rate_basis_points"`
	MaxLineQuantity       int   `mapstructure:"max_line_quantity"`
}

type broker struct {
	SeedBrokers        []string `mapstructure:"seed_brokers"`
	SchemaRegistryURLs []string `mapstructure:"schema_registry_urls"`
	NotificationsTopic string   `mapstructure:"notifications_topic"`
}

type Config struct {
	LogLevel       slog.Level    `mapstructure:"log_level"`
	HTTPServerAddr string        `mapstructure:"http_server_addr"`
	HandlerTimeout time.Duration `mapstructure:"handler_timeout"`
	SeedFile       string        `mapstructure:"seed_file"`
	Storage        storage       `mapstructure:"storage"`
	Checkout       checkout      `mapstructure:"checkout"`
	Broker         broker        `mapstructure:"broker"`
}

// NotificationsEnabled reports whether notifications are also
// published to the broker.
func (c Config) NotificationsEnabled() bool {
	return len(c.Broker.SeedBrokers) != 0 && c.Broker.NotificationsTopic != ""
}

func Load() Config {
	cfg, err := LoadFile(getConfigFilepath())
	if err != nil {
		die(err)
	}
	return cfg
}

// LoadFile reads the YAML config at path over the defaults.
func LoadFile(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, err
	}

	var cfg Config
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.TextUnmarshallerHookFunc(),
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
	if err := v.UnmarshalExact(&cfg, hook); err != nil {
		return Config{}, err
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", slog.LevelInfo.String())
	v.SetDefault("http_server_addr", ":8080")
	v.SetDefault("handler_timeout", 5*time.Second)
	v.SetDefault("seed_file", "")
	v.SetDefault("storage.driver", StorageLevelDB)
	v.SetDefault("storage.leveldb_dir", "data/localstorage")
	v.SetDefault("storage.sql_dsn", "")
	v.SetDefault("storage.cart_key", "cart")
	v.SetDefault("storage.liked_key", "liked")
	v.SetDefault("storage.retry.attempts", 3)
	v.SetDefault("storage.retry.delay", 50*time.Millisecond)
	v.SetDefault("checkout.free_shipping_threshold", 1000000)
	v.SetDefault("checkout.shipping_fee", 49900)
	v.SetDefault("checkout.tax_rate_basis_points", 800)
	v.SetDefault("checkout.max_line_quantity", 99)
	v.SetDefault("broker.seed_brokers", []string{})
	v.SetDefault("broker.schema_registry_urls", []string{})
	v.SetDefault("broker.notifications_topic", "")
}

func (c Config) validate() error {
	switch c.Storage.Driver {
	case StorageLevelDB:
		if c.Storage.LevelDBDir == "" {
			return fmt.Errorf("storage.leveldb_dir is required for %q driver", StorageLevelDB)
		}
	case StorageSQL:
		if c.Storage.SQLDSN == "" {
			return fmt.Errorf("storage.sql_dsn is required for %q driver", StorageSQL)
		}
	default:
		return fmt.Errorf("unknown storage.driver %q", c.Storage.Driver)
	}

	if c.NotificationsEnabled() && len(c.Broker.SchemaRegistryURLs) == 0 {
		return fmt.Errorf("broker.schema_registry_urls is required for notifications")
	}
	return nil
}

func getConfigFilepath() string {
	cmdLine := pflag.NewFlagSet(os.Args[0], pflag.ExitOnError)
	arg := cmdLine.String("config", "/config.yaml", "config file")
	_ = cmdLine.Parse(os.Args[1:])
	env, ok := os.LookupEnv(configFileEnvName)
	if ok {
		return env
	}
	return *arg
}

func die(err error) {
	fmt.Printf("failed to load config file: %v\n", err)
	os.Exit(2)
}

func (c Config) Print() {
	template := `
	General:
	LogLevel=%q
	HTTPServerAddr=%q
	HandlerTimeout=%q
	SeedFile=%q

	Storage:
	Driver=%q
	LevelDBDir=%q
	CartKey=%q
	LikedKey=%q
	RetryAttempts=%d
	RetryDelay=%q

	Checkout:
	FreeShippingThreshold=%d
	ShippingFee=%d
	TaxRateBasisPoints=%d
	MaxLineQuantity=%d

	BrokerConfig:
	SeedBrokers=%q
	SchemaRegistryURLs=%q
	NotificationsTopic=%q

`
	fmt.Println("Loaded config:")
	fmt.Printf(
		strings.TrimLeft(template, "\n"),
		c.LogLevel,
		c.HTTPServerAddr,
		c.HandlerTimeout,
		c.SeedFile,
		c.Storage.Driver,
		c.Storage.LevelDBDir,
		c.Storage.CartKey,
		c.Storage.LikedKey,
		c.Storage.Retry.Attempts,
		c.Storage.Retry.Delay,
		c.Checkout.FreeShippingThreshold,
		c.Checkout.ShippingFee,
		c.Checkout.TaxRateBasisPoints,
		c.Checkout.MaxLineQuantity,
		c.Broker.SeedBrokers,
		c.Broker.SchemaRegistryURLs,
		c.Broker.NotificationsTopic,
	)
}
