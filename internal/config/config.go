// Package config loads the service configuration from config.yml, a .env file
// and the process environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Network NetworkConfig `yaml:"network"`
	Fare    FareConfig    `yaml:"fare"`
	Store   StoreConfig   `yaml:"store"`
	Cache   CacheConfig   `yaml:"cache"`
	CORS    CORSConfig    `yaml:"cors"`
}

type ServerConfig struct {
	Port int `yaml:"port" validate:"gt=0,lte=65535"`
}

// NetworkConfig points at the network description. GTFSPath wins when both are set.
type NetworkConfig struct {
	Path     string `yaml:"path" validate:"required_without=GTFSPath"`
	GTFSPath string `yaml:"gtfs_path"`
}

type FareConfig struct {
	Base       float64 `yaml:"base" validate:"gte=0"`
	PerStation float64 `yaml:"per_station" validate:"gte=0"`
}

type StoreConfig struct {
	Driver  string      `yaml:"driver" validate:"oneof=memory csv mysql"`
	CSVPath string      `yaml:"csv_path" validate:"required_if=Driver csv"`
	MySQL   MySQLConfig `yaml:"mysql"`
}

type MySQLConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port" validate:"gte=0,lte=65535"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
}

type CacheConfig struct {
	Size int           `yaml:"size" validate:"gte=0"`
	TTL  time.Duration `yaml:"ttl" validate:"gte=0"`
}

type CORSConfig struct {
	AllowedOrigin string `yaml:"allowed_origin"`
}

// DefaultPaths are tried in order when Load is called without paths.
var DefaultPaths = []string{"config.yml", "./config/config.yml"}

func Default() Config {
	return Config{
		Server:  ServerConfig{Port: 8080},
		Network: NetworkConfig{Path: "data/network.yml"},
		Fare:    FareConfig{Base: 2.00, PerStation: 1.00},
		Store: StoreConfig{
			Driver:  "memory",
			CSVPath: "tickets.csv",
			MySQL: MySQLConfig{
				Host:     "localhost",
				Port:     3306,
				User:     "root",
				Database: "metro",
			},
		},
		Cache: CacheConfig{Size: 512, TTL: 10 * time.Minute},
		CORS:  CORSConfig{AllowedOrigin: "*"},
	}
}

// Load reads the first config file found in paths (DefaultPaths when empty) over
// the defaults, then applies environment overrides. A missing file is not an
// error. A .env file in the working directory is loaded into the environment first.
func Load(paths ...string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env: %w", err)
	}

	if len(paths) == 0 {
		paths = DefaultPaths
	}

	cfg := Default()
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config %s: %w", p, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config %s: %w", p, err)
		}
		break
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}

	if err := Validate(cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func Validate(cfg Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	setString("NETWORK_PATH", &cfg.Network.Path)
	setString("GTFS_PATH", &cfg.Network.GTFSPath)
	setString("STORE_DRIVER", &cfg.Store.Driver)
	setString("TICKETS_CSV", &cfg.Store.CSVPath)
	setString("DB_HOST", &cfg.Store.MySQL.Host)
	setString("DB_USER", &cfg.Store.MySQL.User)
	setString("DB_PASS", &cfg.Store.MySQL.Password)
	setString("DB_NAME", &cfg.Store.MySQL.Database)
	setString("CORS_ALLOWED_ORIGIN", &cfg.CORS.AllowedOrigin)

	if err := setInt("PORT", &cfg.Server.Port); err != nil {
		return err
	}
	return setInt("DB_PORT", &cfg.Store.MySQL.Port)
}

func setString(key string, dst *string) {
	if value := os.Getenv(key); value != "" {
		*dst = value
	}
}

func setInt(key string, dst *int) error {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	*dst = n
	return nil
}
