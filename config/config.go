package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envPrefix = "ANEWWORLD"

type Config struct {
	Window    WindowConfig    `mapstructure:"window"`
	Game      GameConfig      `mapstructure:"game"`
	Log       LogConfig       `mapstructure:"log"`
	Audio     AudioConfig     `mapstructure:"audio"`
	Dialogue  DialogueConfig  `mapstructure:"dialogue"`
	Collision CollisionConfig `mapstructure:"collision"`
}

type WindowConfig struct {
	Title  string  `mapstructure:"title"`
	Width  int     `mapstructure:"width"`
	Height int     `mapstructure:"height"`
	Zoom   float64 `mapstructure:"zoom"`
}

type GameConfig struct {
	TPS        int    `mapstructure:"tps"`
	Seed       int64  `mapstructure:"seed"`
	StartMap   string `mapstructure:"start_map"`
	ContentDir string `mapstructure:"content_dir"`
	PlayerName string `mapstructure:"player_name"`
	Debug      bool   `mapstructure:"debug"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	File   string `mapstructure:"file"`
}

type AudioConfig struct {
	MasterVolume float64 `mapstructure:"master_volume"`
}

type DialogueConfig struct {
	CharsPerSecond float64 `mapstructure:"chars_per_second"`
}

type CollisionConfig struct {
	// SlideFactor scales the blocked axis of velocity. 0 stops it dead.
	SlideFactor float64 `mapstructure:"slide_factor"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("window.title", "A New World")
	v.SetDefault("window.width", 1280)
	v.SetDefault("window.height", 720)
	v.SetDefault("window.zoom", 2.0)
	v.SetDefault("game.tps", 60)
	v.SetDefault("game.seed", 1)
	v.SetDefault("game.start_map", "village")
	v.SetDefault("game.content_dir", "")
	v.SetDefault("game.player_name", "Hero")
	v.SetDefault("game.debug", false)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file", "")
	v.SetDefault("audio.master_volume", 1.0)
	v.SetDefault("dialogue.chars_per_second", 40.0)
	v.SetDefault("collision.slide_factor", 0.0)
}

// Load reads .env, then the config file, then ANEWWORLD_* environment
// variables. An empty path looks for anewworld.yaml in the working directory
// and tolerates its absence; an explicit path must exist.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else {
		v.SetConfigName("anewworld")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("config: read anewworld.yaml: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	return &cfg, nil
}
