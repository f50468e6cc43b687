// Package config loads the quizrun runner configuration.
package config

// Config is the runner configuration. Every field has a default, so the file is optional.
type Config struct {
	// Questions is the question document to run. Relative paths in a config
	// file resolve against the file's directory.
	Questions        string `mapstructure:"questions" yaml:"questions"`
	ShuffleQuestions bool   `mapstructure:"shuffle_questions" yaml:"shuffle_questions"`
	MatrixShuffle    string `mapstructure:"matrix_shuffle" yaml:"matrix_shuffle" validate:"oneof=per_render per_session none"`
	Reanswer         string `mapstructure:"reanswer" yaml:"reanswer" validate:"oneof=allow lock"`
	UI               string `mapstructure:"ui" yaml:"ui" validate:"oneof=auto live plain"`
	NoColor          bool   `mapstructure:"no_color" yaml:"no_color"`
	// Seed fixes every shuffle when non-zero.
	Seed uint64    `mapstructure:"seed" yaml:"seed"`
	Log  LogConfig `mapstructure:"log" yaml:"log"`
}

// LogConfig controls the debug log. Logging is off when File is empty.
type LogConfig struct {
	File       string `mapstructure:"file" yaml:"file"`
	Level      string `mapstructure:"level" yaml:"level" validate:"oneof=debug info warn error"`
	MaxSizeMB  int    `mapstructure:"max_size_mb" yaml:"max_size_mb" validate:"gte=1"`
	MaxBackups int    `mapstructure:"max_backups" yaml:"max_backups" validate:"gte=0"`
}

// Default returns the configuration used when no file or environment overrides exist.
func Default() Config {
	return Config{
		ShuffleQuestions: true,
		MatrixShuffle:    "per_render",
		Reanswer:         "allow",
		UI:               "auto",
		Log: LogConfig{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
	}
}
