package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the session tuning file. Every field has a working default;
// the file overrides, never defines.
type Config struct {
	Seed int64 `yaml:"seed"`

	Window   Window   `yaml:"window"`
	Player   Player   `yaml:"player"`
	World    World    `yaml:"world"`
	Sim      Sim      `yaml:"sim"`
	Quests   []Quest  `yaml:"quests"`
	Audio    Audio    `yaml:"audio"`
	Observer Observer `yaml:"observer"`
	Log      Log      `yaml:"log"`
}

type Window struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	TargetFPS int    `yaml:"target_fps"`
	Title     string `yaml:"title"`
}

type Player struct {
	MoveSpeed   float32 `yaml:"move_speed"`
	Sensitivity float32 `yaml:"sensitivity"`
	Reach       float32 `yaml:"reach"`
	EyeHeight   float32 `yaml:"eye_height"`
}

type World struct {
	PlatformRadius int `yaml:"platform_radius"` // terrain half-size in cells
	TreeCount      int `yaml:"tree_count"`
	CritterCount   int `yaml:"critter_count"`
}

type Sim struct {
	DayTicks        int `yaml:"day_ticks"`
	CropGrowTicks   int `yaml:"crop_grow_ticks"`
	CropRegrowTicks int `yaml:"crop_regrow_ticks"`
}

// Quest is one fetch quest in the homestead quest line. Item names are
// material names; the sim validates them when the line is built.
type Quest struct {
	Title  string `yaml:"title"`
	Item   string `yaml:"item"`
	Count  int    `yaml:"count"`
	Reward int    `yaml:"reward"`
}

type Audio struct {
	Enabled      bool    `yaml:"enabled"`
	MasterVolume float32 `yaml:"master_volume"`
}

type Observer struct {
	Enabled    bool   `yaml:"enabled"`
	Addr       string `yaml:"addr"`
	EveryTicks int    `yaml:"every_ticks"`
}

type Log struct {
	Enabled bool   `yaml:"enabled"`
	Dir     string `yaml:"dir"`
}

// Load reads the tuning file over the defaults. An empty path returns the
// defaults unchanged; a missing or malformed file is an error, not a
// silent fallback.
func Load(path string) (Config, error) {
	cfg := defaults()
	if strings.TrimSpace(path) == "" {
		cfg.normalize()
		return cfg, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	cfg.normalize()
	if err := cfg.validate(); err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

func defaults() Config {
	return Config{
		Seed: 1337,
		Window: Window{
			Width:     1280,
			Height:    720,
			TargetFPS: 60,
			Title:     "voxelstead",
		},
		Player: Player{
			MoveSpeed:   4.0,
			Sensitivity: 0.003,
			Reach:       6.0,
			EyeHeight:   1.5,
		},
		World: World{
			PlatformRadius: 14,
			TreeCount:      7,
			CritterCount:   4,
		},
		Sim: Sim{
			DayTicks:        14400,
			CropGrowTicks:   3600,
			CropRegrowTicks: 5400,
		},
		Quests: []Quest{
			{Title: "Clear the meadow", Item: "stone", Count: 5, Reward: 10},
			{Title: "Timber for the cabin", Item: "wood", Count: 8, Reward: 15},
			{Title: "A basket of produce", Item: "crop_grown", Count: 3, Reward: 25},
		},
		Audio: Audio{
			Enabled:      true,
			MasterVolume: 0.8,
		},
		Observer: Observer{
			Enabled:    false,
			Addr:       ":8642",
			EveryTicks: 6,
		},
		Log: Log{
			Enabled: true,
			Dir:     "logs",
		},
	}
}

func (c *Config) normalize() {
	c.Window.Width = clampInt(c.Window.Width, 320, 7680, 1280)
	c.Window.Height = clampInt(c.Window.Height, 240, 4320, 720)
	c.Window.TargetFPS = clampInt(c.Window.TargetFPS, 30, 240, 60)
	if strings.TrimSpace(c.Window.Title) == "" {
		c.Window.Title = "voxelstead"
	}

	c.Player.MoveSpeed = clampFloat(c.Player.MoveSpeed, 0.5, 20, 4.0)
	c.Player.Sensitivity = clampFloat(c.Player.Sensitivity, 0.0005, 0.02, 0.003)
	c.Player.Reach = clampFloat(c.Player.Reach, 1, 16, 6.0)
	c.Player.EyeHeight = clampFloat(c.Player.EyeHeight, 0.5, 3, 1.5)

	c.World.PlatformRadius = clampInt(c.World.PlatformRadius, 10, 40, 14)
	c.World.TreeCount = clampInt(c.World.TreeCount, 0, 64, 7)
	c.World.CritterCount = clampInt(c.World.CritterCount, 0, 32, 4)

	c.Sim.DayTicks = clampInt(c.Sim.DayTicks, 600, 864000, 14400)
	c.Sim.CropGrowTicks = clampInt(c.Sim.CropGrowTicks, 60, 864000, 3600)
	c.Sim.CropRegrowTicks = clampInt(c.Sim.CropRegrowTicks, 60, 864000, 5400)

	for i := range c.Quests {
		c.Quests[i].Count = clampInt(c.Quests[i].Count, 1, 999, 1)
		c.Quests[i].Reward = clampInt(c.Quests[i].Reward, 1, 9999, 1)
	}

	c.Audio.MasterVolume = clampFloat(c.Audio.MasterVolume, 0, 1, 0.8)

	c.Observer.EveryTicks = clampInt(c.Observer.EveryTicks, 1, 600, 6)
}

func (c Config) validate() error {
	if c.Observer.Enabled && strings.TrimSpace(c.Observer.Addr) == "" {
		return fmt.Errorf("observer.addr must not be empty when the observer is enabled")
	}
	if c.Log.Enabled && strings.TrimSpace(c.Log.Dir) == "" {
		return fmt.Errorf("log.dir must not be empty when logging is enabled")
	}
	for i, q := range c.Quests {
		if strings.TrimSpace(q.Title) == "" {
			return fmt.Errorf("quests[%d]: title must not be empty", i)
		}
		if strings.TrimSpace(q.Item) == "" {
			return fmt.Errorf("quests[%d] %q: item must not be empty", i, q.Title)
		}
	}
	return nil
}

func clampInt(v, min, max, def int) int {
	if v == 0 {
		return def
	}
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func clampFloat(v, min, max, def float32) float32 {
	if v == 0 {
		return def
	}
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
