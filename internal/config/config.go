package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Data     DataConfig     `mapstructure:"data"`
	Database DatabaseConfig `mapstructure:"database"`
	Snapshot SnapshotConfig `mapstructure:"snapshot"`
	Server   ServerConfig   `mapstructure:"server"`
	UI       UIConfig       `mapstructure:"ui"`
	Log      LogConfig      `mapstructure:"log"`
}

// DataConfig points at the source CSV files and their column contract.
type DataConfig struct {
	SalesPath   string `mapstructure:"sales_path" validate:"required"`
	WeatherPath string `mapstructure:"weather_path"`
	FormatPath  string `mapstructure:"format_path"`
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string `mapstructure:"path" validate:"required"`
}

// SnapshotConfig controls where exports are written.
type SnapshotConfig struct {
	Dir string `mapstructure:"dir" validate:"required"`
}

// ServerConfig holds settings for `salesboard serve`.
type ServerConfig struct {
	Addr string `mapstructure:"addr" validate:"required"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	SkipLogin  bool   `mapstructure:"skip_login"`
	AmountUnit string `mapstructure:"amount_unit"`
}

// LogConfig holds slog settings.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"oneof=debug info warn error"`
	File  string `mapstructure:"file"`
}

// Dir is the per-user config directory.
func Dir() string {
	return filepath.Join(os.Getenv("HOME"), ".config", "salesboard")
}

func dataDir() string {
	return filepath.Join(os.Getenv("HOME"), ".local", "share", "salesboard")
}

// Load reads configuration from file and env. Env var overrides use prefix SALESBOARD_.
func Load() (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("data.sales_path", "data/sales.csv")
	v.SetDefault("data.weather_path", "data/weather.csv")
	v.SetDefault("data.format_path", filepath.Join(Dir(), "formats.toml"))
	v.SetDefault("database.path", filepath.Join(dataDir(), "salesboard.db"))
	v.SetDefault("snapshot.dir", filepath.Join(dataDir(), "snapshots"))
	v.SetDefault("server.addr", "127.0.0.1:8080")
	v.SetDefault("ui.skip_login", false)
	v.SetDefault("ui.amount_unit", "만원")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", filepath.Join(dataDir(), "salesboard.log"))

	v.SetConfigType("toml")

	cfgPath := os.Getenv("SALESBOARD_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(Dir())
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("SALESBOARD")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present; only a broken file is an error
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := Validate(c); err != nil {
		return Config{}, err
	}
	return c, nil
}

var validate = validator.New()

// Validate checks required settings.
func Validate(c Config) error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Save writes the provided config to disk, creating the config directory if needed.
func Save(cfg Config) error {
	path := os.Getenv("SALESBOARD_CONFIG")
	if path == "" {
		path = filepath.Join(Dir(), "config.toml")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("data.sales_path", cfg.Data.SalesPath)
	v.Set("data.weather_path", cfg.Data.WeatherPath)
	v.Set("data.format_path", cfg.Data.FormatPath)
	v.Set("database.path", cfg.Database.Path)
	v.Set("snapshot.dir", cfg.Snapshot.Dir)
	v.Set("server.addr", cfg.Server.Addr)
	v.Set("ui.skip_login", cfg.UI.SkipLogin)
	v.Set("ui.amount_unit", cfg.UI.AmountUnit)
	v.Set("log.level", cfg.Log.Level)
	v.Set("log.file", cfg.Log.File)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
