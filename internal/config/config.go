// Package config loads the engine settings from defaults, an optional
// tictactoe.yaml and TICTACTOE_* environment variables, in rising priority.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"ctchen222/tictactoe-engine/internal/bot"
	"ctchen222/tictactoe-engine/internal/game"
	"ctchen222/tictactoe-engine/internal/validator"
)

const (
	envPrefix  = "TICTACTOE"
	configName = "tictactoe"
)

type Config struct {
	Difficulty   string `mapstructure:"difficulty" validate:"oneof=easy medium hard"`
	Depth        int    `mapstructure:"depth" validate:"min=0,max=9"`
	Workers      int    `mapstructure:"workers" validate:"min=1,max=64"`
	LogLevel     string `mapstructure:"log_level" validate:"oneof=debug info warn error"`
	OTLPEndpoint string `mapstructure:"otlp_endpoint" validate:"omitempty,hostname_port"`
	// TraceFile receives spans as JSON lines. Empty drops them unless an
	// OTLP endpoint is set.
	TraceFile string `mapstructure:"trace_file"`
	Color        bool   `mapstructure:"color"`
	HistoryFile  string `mapstructure:"history_file"`
	// HumanMark is X or O. Empty picks one at random.
	HumanMark string `mapstructure:"human_mark" validate:"omitempty,player_mark"`
}

var defaults = map[string]any{
	"difficulty":    bot.Hard,
	"depth":         0,
	"workers":       1,
	"log_level":     "warn",
	"otlp_endpoint": "",
	"trace_file":    "",
	"color":         true,
	"history_file":  "",
	"human_mark":    "",
}

// Load reads the configuration. The yaml file is looked up in configPaths,
// or in the working directory and $HOME/.tictactoe when none are given; a
// missing file is not an error.
func Load(configPaths ...string) (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigName(configName)
	v.SetConfigType("yaml")
	if len(configPaths) == 0 {
		configPaths = defaultPaths()
	}
	for _, p := range configPaths {
		v.AddConfigPath(p)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.Difficulty = strings.ToLower(cfg.Difficulty)
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	cfg.HumanMark = strings.ToUpper(cfg.HumanMark)

	if err := validator.GetValidator().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

func defaultPaths() []string {
	paths := []string{"."}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".tictactoe"))
	}
	return paths
}

// Seats returns the human's and the bot's marks.
func (c *Config) Seats() (human, computer game.PlayerMark) {
	human = game.PlayerMark(c.HumanMark)
	if !human.IsPlayer() {
		human = game.RandomlyChooseFirstPlayer()
	}
	return human, human.Opponent()
}
