package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	// DefaultPath is read when COMBINER_CONFIG is unset.
	DefaultPath = "config/game.toml"
	EnvVar      = "COMBINER_CONFIG"
)

type Config struct {
	Game       GameConfig       `toml:"game"`
	Simulation SimulationConfig `toml:"simulation"`
	Input      InputConfig      `toml:"input"`
	Data       DataConfig       `toml:"data"`
	Window     WindowConfig     `toml:"window"`
	Logging    LoggingConfig    `toml:"logging"`
}

type GameConfig struct {
	Name     string `toml:"name"`
	Language string `toml:"language"` // BCP-47 tag for the HUD
	Seed     int64  `toml:"seed"`     // 0 = seed from the clock
}

type SimulationConfig struct {
	TickRate         time.Duration `toml:"tick_rate"` // headless step
	StartingBalance  int64         `toml:"starting_balance"`
	SpawnGrace       time.Duration `toml:"spawn_grace"`
	DespawnDuration  time.Duration `toml:"despawn_duration"`
	CoinDamping      float64       `toml:"coin_damping"`       // velocity multiplier per tick
	ClickCoinSpeed   float64       `toml:"click_coin_speed"`   // world units per tick
	EjectSpeed       float64       `toml:"eject_speed"`        // world units per tick
	EjectSpeedJitter float64       `toml:"eject_speed_jitter"` // added uniformly in [0, jitter)
	EjectSpread      float64       `toml:"eject_spread"`       // radians, centred on the base angle
	HoverRadius      float64       `toml:"hover_radius"`       // world units
}

type InputConfig struct {
	ClickDuration time.Duration `toml:"click_duration"`
	ClickDistance float64       `toml:"click_distance"` // screen pixels
	InitialZoom   float64       `toml:"initial_zoom"`   // pixels per world unit
	MinZoom       float64       `toml:"min_zoom"`
	MaxZoom       float64       `toml:"max_zoom"`
	ZoomStep      float64       `toml:"zoom_step"` // fraction of the view per wheel notch
}

type DataConfig struct {
	CatalogPath string `toml:"catalog_path"` // "" = embedded catalog
	ScriptsDir  string `toml:"scripts_dir"`
}

type WindowConfig struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// FromEnv loads the file named by COMBINER_CONFIG, or DefaultPath. Only a
// missing file at the default path is tolerated; it yields the defaults.
func FromEnv() (*Config, error) {
	if p := os.Getenv(EnvVar); p != "" {
		return Load(p)
	}
	cfg, err := Load(DefaultPath)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Default returns the built-in configuration.
func Default() *Config {
	return defaults()
}

func (c *Config) validate() error {
	s, in := c.Simulation, c.Input
	switch {
	case s.TickRate <= 0:
		return errors.New("simulation.tick_rate must be positive")
	case s.StartingBalance < 0:
		return errors.New("simulation.starting_balance must not be negative")
	case s.SpawnGrace < 0 || s.DespawnDuration < 0:
		return errors.New("simulation timers must not be negative")
	case s.CoinDamping < 0 || s.CoinDamping > 1:
		return fmt.Errorf("simulation.coin_damping %v outside [0,1]", s.CoinDamping)
	case in.ClickDuration <= 0 || in.ClickDistance <= 0:
		return errors.New("input click thresholds must be positive")
	case in.MinZoom <= 0 || in.MaxZoom < in.MinZoom:
		return fmt.Errorf("input zoom limits [%v,%v] invalid", in.MinZoom, in.MaxZoom)
	case in.InitialZoom < in.MinZoom || in.InitialZoom > in.MaxZoom:
		return fmt.Errorf("input.initial_zoom %v outside [%v,%v]", in.InitialZoom, in.MinZoom, in.MaxZoom)
	}
	return nil
}

func defaults() *Config {
	return &Config{
		Game: GameConfig{
			Name:     "Combiner",
			Language: "en",
		},
		Simulation: SimulationConfig{
			TickRate:         16 * time.Millisecond,
			SpawnGrace:       200 * time.Millisecond,
			DespawnDuration:  100 * time.Millisecond,
			CoinDamping:      0.6,
			ClickCoinSpeed:   80,
			EjectSpeed:       80,
			EjectSpeedJitter: 30,
			EjectSpread:      math.Pi / 4,
			HoverRadius:      192,
		},
		Input: InputConfig{
			ClickDuration: 200 * time.Millisecond,
			ClickDistance: 10,
			InitialZoom:   0.25,
			MinZoom:       0.05,
			MaxZoom:       1.0,
			ZoomStep:      0.2,
		},
		Data: DataConfig{
			ScriptsDir: "scripts",
		},
		Window: WindowConfig{
			Width:  1280,
			Height: 720,
			Title:  "Combiner",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
