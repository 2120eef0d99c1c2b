package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"

	"catan/internal/app"

	"github.com/caarlos0/env/v11"
)

// EnvPrefix namespaces runtime environment overrides.
const EnvPrefix = "CATAN_"

// GameConfig holds match parameters. Values come from an optional JSON
// file and are then overridden by runtime environment entries.
type GameConfig struct {
	MinPlayers         int `json:"min_players" env:"MIN_PLAYERS"`
	MaxPlayers         int `json:"max_players" env:"MAX_PLAYERS"`
	VictoryPointsToWin int `json:"victory_points_to_win" env:"VICTORY_POINTS"`
	// TickRate is the authoritative match loop frequency in ticks per second.
	TickRate          int     `json:"tick_rate" env:"TICK_RATE"`
	CommandsPerSecond float64 `json:"commands_per_second" env:"COMMANDS_PER_SECOND"`
	CommandBurst      int     `json:"command_burst" env:"COMMAND_BURST"`
	KeyLength         int     `json:"key_length" env:"KEY_LENGTH"`
}

var (
	cfg      *GameConfig
	loadOnce sync.Once
	loadErr  error
)

// Default returns the standard configuration.
func Default() GameConfig {
	return GameConfig{
		MinPlayers:         app.MinPlayersToStartGame,
		MaxPlayers:         app.MaxPlayersPerGame,
		VictoryPointsToWin: app.VictoryPointsToWin,
		TickRate:           10,
		CommandsPerSecond:  5,
		CommandBurst:       10,
		KeyLength:          app.DefaultKeyLength,
	}
}

// Parse builds a configuration from JSON data (may be empty) and the
// environment overlay, then validates it.
func Parse(data []byte, environment map[string]string) (GameConfig, error) {
	c := Default()
	if len(data) > 0 {
		if err := json.Unmarshal(data, &c); err != nil {
			return GameConfig{}, fmt.Errorf("failed to unmarshal game config: %w", err)
		}
	}
	if environment == nil {
		environment = map[string]string{}
	}
	if err := env.ParseWithOptions(&c, env.Options{Environment: environment, Prefix: EnvPrefix}); err != nil {
		return GameConfig{}, fmt.Errorf("failed to parse game config env: %w", err)
	}
	if err := c.Validate(); err != nil {
		return GameConfig{}, err
	}
	return c, nil
}

// Load reads path, if it exists, and applies Parse.
func Load(path string, environment map[string]string) (GameConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return GameConfig{}, fmt.Errorf("failed to read game config: %w", err)
	}
	return Parse(data, environment)
}

// LoadGameConfig loads the global game configuration once.
func LoadGameConfig(path string, environment map[string]string) error {
	loadOnce.Do(func() {
		c, err := Load(path, environment)
		if err != nil {
			loadErr = err
			return
		}
		cfg = &c
	})
	return loadErr
}

// GetGameConfig returns the global game configuration, or the defaults
// when none has been loaded.
func GetGameConfig() *GameConfig {
	if cfg == nil {
		c := Default()
		return &c
	}
	return cfg
}

// Validate rejects configurations no match could run under.
func (c GameConfig) Validate() error {
	switch {
	case c.MinPlayers < 2:
		return fmt.Errorf("min_players must be at least 2, got %d", c.MinPlayers)
	case c.MaxPlayers > app.MaxPlayersPerGame:
		return fmt.Errorf("max_players must be at most %d, got %d", app.MaxPlayersPerGame, c.MaxPlayers)
	case c.MinPlayers > c.MaxPlayers:
		return fmt.Errorf("min_players %d exceeds max_players %d", c.MinPlayers, c.MaxPlayers)
	case c.VictoryPointsToWin <= 0:
		return fmt.Errorf("victory_points_to_win must be positive, got %d", c.VictoryPointsToWin)
	case c.TickRate <= 0:
		return fmt.Errorf("tick_rate must be positive, got %d", c.TickRate)
	case c.CommandsPerSecond <= 0 || c.CommandBurst <= 0:
		return fmt.Errorf("command rate limit must be positive, got %v/s burst %d", c.CommandsPerSecond, c.CommandBurst)
	case c.KeyLength < 4 || c.KeyLength > 12:
		return fmt.Errorf("key_length must be within 4..12, got %d", c.KeyLength)
	}
	return nil
}

// Rules converts the configuration into the parameters app.Service enforces.
func (c GameConfig) Rules() app.Rules {
	return app.Rules{
		MinPlayers:         c.MinPlayers,
		MaxPlayers:         c.MaxPlayers,
		VictoryPointsToWin: c.VictoryPointsToWin,
	}
}
