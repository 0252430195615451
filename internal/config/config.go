package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Storage Storage
	Network Network
	Log     Log
	Session Session
	Serve   Serve
}

// Storage selects where session progress is kept between runs.
type Storage struct {
	Backend     string
	Path        string
	RedisAddr   string `mapstructure:"redis_addr"`
	RedisPrefix string `mapstructure:"redis_prefix"`
}

// Network holds the staking network parameters shown to the user.
type Network struct {
	Name              string
	Ticker            string
	PricePerValidator string `mapstructure:"price_per_validator"`
	DepositContract   string `mapstructure:"deposit_contract"`
}

type Log struct {
	Path  string
	Level string
}

type Session struct {
	ID string
}

type Serve struct {
	Addr string
}

const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	home := os.Getenv("HOME")
	v.SetDefault("storage.backend", BackendSQLite)
	v.SetDefault("storage.path", filepath.Join(home, ".local", "share", "launchpad", "launchpad.db"))
	v.SetDefault("storage.redis_addr", "localhost:6379")
	v.SetDefault("storage.redis_prefix", "launchpad")
	v.SetDefault("network.name", "mainnet")
	v.SetDefault("network.ticker", "ETH")
	v.SetDefault("network.price_per_validator", "32")
	v.SetDefault("network.deposit_contract", "0x00000000219ab540356cBB839Cbe05303d7705Fa")
	v.SetDefault("log.path", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("session.id", "default")
	v.SetDefault("serve.addr", "127.0.0.1:8080")
}

// Load reads configuration from file and env into v. Env var overrides use
// prefix LAUNCHPAD_. An explicit path must exist; the default location is
// optional.
func Load(v *viper.Viper, path string) (Config, error) {
	SetDefaults(v)
	v.SetConfigType("toml")

	if path == "" {
		path = os.Getenv("LAUNCHPAD_CONFIG")
	}
	explicit := path != ""
	if explicit {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "launchpad"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("LAUNCHPAD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit || !errors.As(err, &notFound) {
			return Config{}, errors.Wrap(err, "read config")
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, errors.Wrap(err, "unmarshal config")
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c Config) Validate() error {
	switch c.Storage.Backend {
	case BackendMemory, BackendRedis:
	case BackendSQLite:
		if strings.TrimSpace(c.Storage.Path) == "" {
			return errors.New("storage.path is required for the sqlite backend")
		}
	default:
		return errors.Errorf("unknown storage backend %q", c.Storage.Backend)
	}
	if strings.TrimSpace(c.Session.ID) == "" {
		return errors.New("session.id must not be empty")
	}
	if strings.TrimSpace(c.Network.PricePerValidator) == "" {
		return errors.New("network.price_per_validator must not be empty")
	}
	return nil
}
