package config

import (
	"flag"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"

	"github.com/lixenwraith/pincraft/input"
)

// Level names
const (
	LevelPinball = "pinball"
	LevelExplore = "explore"
)

const envPrefix = "PINCRAFT_"

// Config holds the runtime settings
type Config struct {
	Level          string
	Layout         input.KeyboardLayout
	AssetsPath     string // empty uses the embedded manifest
	Debug          bool
	Mute           bool
	FrameRate      int
	KeyHoldTimeout time.Duration
}

// Default returns the built-in settings
func Default() *Config {
	return &Config{
		Level:          LevelPinball,
		Layout:         input.LayoutQWERTY,
		FrameRate:      60,
		KeyHoldTimeout: input.DefaultKeyHoldTimeout,
	}
}

// Load reads .env when present, then PINCRAFT_* variables, then command-line args
func Load(args []string) (*Config, error) {
	// Missing .env is normal
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, errors.Wrap(err, "load .env")
	}

	cfg := Default()
	layoutName := getEnv("LAYOUT", cfg.Layout.String())
	cfg.Level = getEnv("LEVEL", cfg.Level)
	cfg.AssetsPath = getEnv("ASSETS", cfg.AssetsPath)
	cfg.Debug = getEnvBool("DEBUG", cfg.Debug)
	cfg.Mute = getEnvBool("MUTE", cfg.Mute)
	cfg.FrameRate = getEnvInt("FPS", cfg.FrameRate)
	cfg.KeyHoldTimeout = getEnvDuration("KEY_HOLD", cfg.KeyHoldTimeout)

	fs := flag.NewFlagSet("pincraft", flag.ContinueOnError)
	fs.StringVar(&cfg.Level, "level", cfg.Level, "Level to play: pinball, explore")
	fs.StringVar(&layoutName, "layout", layoutName, "Keyboard layout: qwerty, qwertz, azerty")
	fs.StringVar(&cfg.AssetsPath, "assets", cfg.AssetsPath, "Asset manifest (JSON or YAML), empty for built-in")
	fs.BoolVar(&cfg.Debug, "debug", cfg.Debug, "Write logs to the logs directory")
	fs.BoolVar(&cfg.Mute, "mute", cfg.Mute, "Disable audio")
	fs.IntVar(&cfg.FrameRate, "fps", cfg.FrameRate, "Frames per second")
	fs.DurationVar(&cfg.KeyHoldTimeout, "key-hold", cfg.KeyHoldTimeout, "Time without key repeat before a key counts as released")
	if err := fs.Parse(args); err != nil {
		return nil, errors.Wrap(err, "parse flags")
	}

	layout, err := input.ParseLayout(layoutName)
	if err != nil {
		return nil, err
	}
	cfg.Layout = layout

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges
func (c *Config) Validate() error {
	if c.Level != LevelPinball && c.Level != LevelExplore {
		return errors.Errorf("unknown level %q", c.Level)
	}
	if c.FrameRate < 10 || c.FrameRate > 240 {
		return errors.Errorf("frame rate %d out of range 10-240", c.FrameRate)
	}
	if c.KeyHoldTimeout <= 0 {
		return errors.Errorf("key hold timeout must be positive, got %v", c.KeyHoldTimeout)
	}
	return nil
}

// FrameInterval is the time between frames
func (c *Config) FrameInterval() time.Duration {
	return time.Second / time.Duration(c.FrameRate)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(envPrefix + key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(envPrefix + key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(envPrefix + key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(envPrefix + key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
