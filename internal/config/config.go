package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds all mywallet configuration.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Store      StoreConfig      `toml:"store"`
	Assistant  AssistantConfig  `toml:"assistant"`
	Auth       AuthConfig       `toml:"auth"`
	Appearance AppearanceConfig `toml:"appearance"`
	Log        LogConfig        `toml:"log"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	Currency string `toml:"currency" env:"MYWALLET_CURRENCY" validate:"required,alpha,len=3"`
	DataDir  string `toml:"data_dir,omitempty" env:"MYWALLET_DATA_DIR"`
}

// StoreConfig selects where wallet state is persisted.
type StoreConfig struct {
	Backend string `toml:"backend" env:"MYWALLET_STORE_BACKEND" validate:"oneof=sqlite bolt memory"`
	Path    string `toml:"path,omitempty" env:"MYWALLET_STORE_PATH"`
}

// AssistantConfig tunes the chat assistant.
type AssistantConfig struct {
	TypingDelayMS int     `toml:"typing_delay_ms" env:"MYWALLET_TYPING_DELAY_MS" validate:"gte=0,lte=60000"`
	HighBalance   float64 `toml:"high_balance" env:"MYWALLET_HIGH_BALANCE" validate:"gt=0"`
	SpendingRatio float64 `toml:"spending_ratio" env:"MYWALLET_SPENDING_RATIO" validate:"gt=0,lte=1"`
}

// AuthConfig holds login settings.
type AuthConfig struct {
	DemoAccount bool `toml:"demo_account" env:"MYWALLET_DEMO_ACCOUNT"`
	BcryptCost  int  `toml:"bcrypt_cost" env:"MYWALLET_BCRYPT_COST" validate:"gte=4,lte=31"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme" env:"MYWALLET_THEME"`
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level string `toml:"level" env:"MYWALLET_LOG_LEVEL" validate:"oneof=debug info warn error"`
	File  string `toml:"file,omitempty" env:"MYWALLET_LOG_FILE"`
}

var validate = validator.New()

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			Currency: "UGX",
		},
		Store: StoreConfig{
			Backend: "sqlite",
		},
		Assistant: AssistantConfig{
			TypingDelayMS: 1500,
			HighBalance:   20_000_000,
			SpendingRatio: 0.4,
		},
		Auth: AuthConfig{
			DemoAccount: true,
			BcryptCost:  10,
		},
		Appearance: AppearanceConfig{
			Theme: "my-wallet",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Dir returns the XDG-compliant config directory.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "mywallet")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "mywallet")
}

// Path returns the full path to the config file.
func Path() string {
	return filepath.Join(Dir(), "config.toml")
}

// DefaultDataDir returns the XDG-compliant data directory.
func DefaultDataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "mywallet")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "mywallet")
}

// LoadDotEnv loads variables from a .env file in the working directory.
// A missing file is not an error; variables already set are kept.
func LoadDotEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}
	return nil
}

// Load reads the config file, returning defaults if it doesn't exist.
// MYWALLET_* environment variables override file values.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(Path())
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return DefaultConfig(), fmt.Errorf("parsing config: %w", err)
		}
	case !os.IsNotExist(err):
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parsing env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks field constraints and reports every violation at once.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validating config: %w", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s: failed %q (value %v)", fe.Namespace(), fe.Tag(), fe.Value()))
	}
	return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(msgs, "\n- "))
}

// Save writes the config to disk.
func Save(cfg Config) error {
	if err := os.MkdirAll(Dir(), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(Path(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(Path())
	return err == nil
}

// DataDir returns the configured data directory or the XDG default.
func (c Config) DataDir() string {
	if c.General.DataDir != "" {
		return c.General.DataDir
	}
	return DefaultDataDir()
}

// StorePath returns the database path for the configured backend.
func (c Config) StorePath() string {
	if c.Store.Path != "" {
		return c.Store.Path
	}
	name := "wallet.db"
	if c.Store.Backend == "bolt" {
		name = "wallet.bolt"
	}
	return filepath.Join(c.DataDir(), name)
}

// TypingDelay returns the simulated assistant typing delay.
func (c Config) TypingDelay() time.Duration {
	return time.Duration(c.Assistant.TypingDelayMS) * time.Millisecond
}

// LogLevel maps the configured level name to a slog level.
func (c Config) LogLevel() slog.Level {
	switch strings.ToLower(c.Log.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
