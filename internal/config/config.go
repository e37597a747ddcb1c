// Package config loads the game's tunables from YAML.
package config

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"os"
	"time"

	"stealth-shooter/internal/agent"
	"stealth-shooter/internal/generate"
	"stealth-shooter/internal/logger"

	"gopkg.in/yaml.v3"
)

// ErrInvalid is returned by Validate for unusable settings.
var ErrInvalid = errors.New("config: invalid")

// Config is the full set of game settings.
type Config struct {
	Level      LevelConfig      `yaml:"level"`
	Flashlight FlashlightConfig `yaml:"flashlight"`
	Player     PlayerConfig     `yaml:"player"`
	Pickups    PickupConfig     `yaml:"pickups"`
	Agent      agent.Tuning     `yaml:"agent"`

	// TickRate is simulation ticks per second in the interactive loop.
	TickRate int `yaml:"tick_rate"`

	// Seed for the level generator and simulation. 0 picks a time-based seed.
	Seed int64 `yaml:"seed"`

	Logging logger.Config `yaml:"logging"`
}

// LevelConfig sizes the generated grid.
type LevelConfig struct {
	Width    int     `yaml:"width"`
	Height   int     `yaml:"height"`
	MaxDepth int     `yaml:"max_depth"`
	CellSize float64 `yaml:"cell_size"`
}

// FlashlightConfig shapes the player's light cone.
type FlashlightConfig struct {
	// Angle is the full cone width in radians.
	Angle      float64 `yaml:"angle"`
	Range      float64 `yaml:"range"`
	Rays       int     `yaml:"rays"`
	Step       float64 `yaml:"step"`
	GlowRadius float64 `yaml:"glow_radius"`
}

// PlayerConfig holds the player's body and weapon.
type PlayerConfig struct {
	Speed        float64 `yaml:"speed"`
	Radius       float64 `yaml:"radius"`
	Health       float64 `yaml:"health"`
	Ammo         int     `yaml:"ammo"`
	BulletSpeed  float64 `yaml:"bullet_speed"`
	BulletDamage float64 `yaml:"bullet_damage"`
	// BulletHitRadius is how close a bullet must pass to an agent's center.
	BulletHitRadius float64 `yaml:"bullet_hit_radius"`
	// MuzzleOffset is how far ahead of the player a bullet spawns.
	MuzzleOffset float64 `yaml:"muzzle_offset"`
}

// PickupConfig controls pickup spawning and effects.
type PickupConfig struct {
	AmmoAmount   int     `yaml:"ammo_amount"`
	HealthAmount float64 `yaml:"health_amount"`
	SpawnChance  float64 `yaml:"spawn_chance"`
	DropChance   float64 `yaml:"drop_chance"`
	Radius       float64 `yaml:"radius"`
}

// DefaultConfig returns the stock game settings.
func DefaultConfig() *Config {
	return &Config{
		Level: LevelConfig{
			Width:    50,
			Height:   40,
			MaxDepth: 4,
			CellSize: 100,
		},
		Flashlight: FlashlightConfig{
			Angle:      math.Pi / 3,
			Range:      500,
			Rays:       80,
			Step:       4,
			GlowRadius: 100,
		},
		Player: PlayerConfig{
			Speed:           3,
			Radius:          12,
			Health:          100,
			Ammo:            30,
			BulletSpeed:     15,
			BulletDamage:    35,
			BulletHitRadius: 20,
			MuzzleOffset:    20,
		},
		Pickups: PickupConfig{
			AmmoAmount:   3,
			HealthAmount: 5,
			SpawnChance:  1,
			DropChance:   0.2,
			Radius:       12,
		},
		Agent:    agent.DefaultTuning(),
		TickRate: 60,
		Logging:  logger.DefaultConfig(),
	}
}

// Load reads the YAML file at path over the defaults. A missing file yields
// the defaults. Logging environment overrides are applied before validation.
func Load(path string) (*Config, error) {
	config := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, config); err != nil {
				return nil, fmt.Errorf("config: parse %s: %w", path, err)
			}
		}
	}

	config.Logging.ApplyEnv()

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks every section.
func (c *Config) Validate() error {
	l := c.Level
	if l.Width < 5 || l.Height < 5 {
		return fmt.Errorf("%w: level size %dx%d below 5", ErrInvalid, l.Width, l.Height)
	}
	if l.MaxDepth < 0 {
		return fmt.Errorf("%w: level max_depth %d is negative", ErrInvalid, l.MaxDepth)
	}
	if !(l.CellSize > 0) {
		return fmt.Errorf("%w: level cell_size must be positive", ErrInvalid)
	}

	f := c.Flashlight
	if !(f.Angle > 0) || f.Angle > 2*math.Pi {
		return fmt.Errorf("%w: flashlight angle %v outside (0,2π]", ErrInvalid, f.Angle)
	}
	if !(f.Range > 0) || !(f.Step > 0) || f.Rays <= 0 {
		return fmt.Errorf("%w: flashlight range, step and rays must be positive", ErrInvalid)
	}
	if f.GlowRadius < 0 {
		return fmt.Errorf("%w: flashlight glow_radius is negative", ErrInvalid)
	}

	p := c.Player
	if !(p.Speed > 0) || !(p.Health > 0) || !(p.BulletSpeed > 0) {
		return fmt.Errorf("%w: player speed, health and bullet_speed must be positive", ErrInvalid)
	}
	if p.Radius < 0 || p.Ammo < 0 || p.BulletDamage < 0 || p.BulletHitRadius < 0 || p.MuzzleOffset < 0 {
		return fmt.Errorf("%w: player settings must not be negative", ErrInvalid)
	}

	k := c.Pickups
	if k.SpawnChance < 0 || k.SpawnChance > 1 || k.DropChance < 0 || k.DropChance > 1 {
		return fmt.Errorf("%w: pickup chances must be within [0,1]", ErrInvalid)
	}
	if k.AmmoAmount < 0 || k.HealthAmount < 0 || k.Radius < 0 {
		return fmt.Errorf("%w: pickup settings must not be negative", ErrInvalid)
	}

	if err := c.Agent.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if c.TickRate <= 0 {
		return fmt.Errorf("%w: tick_rate must be positive", ErrInvalid)
	}
	return nil
}

// NewRand returns a random source seeded from Seed, or from the clock when
// Seed is 0.
func (c *Config) NewRand() *rand.Rand {
	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// Generator returns the level generator settings drawing from rng.
func (c *Config) Generator(rng *rand.Rand) *generate.Config {
	return &generate.Config{
		Width:        c.Level.Width,
		Height:       c.Level.Height,
		MaxDepth:     c.Level.MaxDepth,
		CellSize:     c.Level.CellSize,
		PickupChance: c.Pickups.SpawnChance,
		Rand:         rng,
	}
}
