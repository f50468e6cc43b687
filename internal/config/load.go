package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. QUIZRUN_LOG_LEVEL.
const EnvPrefix = "QUIZRUN"

// Load reads an optional config file, applies environment overrides, normalizes
// and validates the result. An empty path uses defaults and environment only.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v, Default())
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if path != "" && v.InConfig("questions") && os.Getenv(EnvPrefix+"_QUESTIONS") == "" {
		cfg.Questions = resolveRelative(filepath.Dir(path), cfg.Questions)
	}
	Normalize(&cfg)
	if err := Validate(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// setDefaults registers every key so environment overrides apply to all of them.
func setDefaults(v *viper.Viper, cfg Config) {
	v.SetDefault("questions", cfg.Questions)
	v.SetDefault("shuffle_questions", cfg.ShuffleQuestions)
	v.SetDefault("matrix_shuffle", cfg.MatrixShuffle)
	v.SetDefault("reanswer", cfg.Reanswer)
	v.SetDefault("ui", cfg.UI)
	v.SetDefault("no_color", cfg.NoColor)
	v.SetDefault("seed", cfg.Seed)
	v.SetDefault("log.file", cfg.Log.File)
	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("log.max_size_mb", cfg.Log.MaxSizeMB)
	v.SetDefault("log.max_backups", cfg.Log.MaxBackups)
}

func resolveRelative(base, path string) string {
	path = strings.TrimSpace(path)
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}

// Normalize trims and lowercases enum fields.
func Normalize(cfg *Config) {
	cfg.Questions = strings.TrimSpace(cfg.Questions)
	cfg.MatrixShuffle = strings.ToLower(strings.TrimSpace(cfg.MatrixShuffle))
	cfg.Reanswer = strings.ToLower(strings.TrimSpace(cfg.Reanswer))
	cfg.UI = strings.ToLower(strings.TrimSpace(cfg.UI))
	cfg.Log.File = strings.TrimSpace(cfg.Log.File)
	cfg.Log.Level = strings.ToLower(strings.TrimSpace(cfg.Log.Level))
}
