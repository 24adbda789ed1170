package config

import (
	"errors"
	"fmt"
)

// Default returns the configuration used when game.yaml omits a field.
func Default() *GameConfig {
	return &GameConfig{
		Display: DisplayConfig{
			ScreenWidth:  320,
			ScreenHeight: 240,
			Scale:        2,
			Framerate:    60,
			Zoom:         1,
		},
		Physics: PhysicsSettings{
			Gravity:    500,
			Iterations: 10,
		},
		Player: PlayerConfig{
			Speed:        100,
			JumpSpeed:    200,
			Width:        16,
			Height:       20,
			DefaultSpawn: Point{X: 16, Y: 16},
		},
		Scoring: ScoringConfig{
			StartScore:  25,
			PickupValue: 10,
		},
		Pickup: PickupConfig{Width: 12, Height: 12, Sprite: "gem"},
		Enemy:  EnemyConfig{Width: 16, Height: 16, Sprite: "skull", PatrolDuration: 2},
		Layers: LayerNames{
			Background: []string{"background", "background2"},
			Platforms:  "platforms",
			Exit:       "exit",
			Foreground: []string{"foreground"},
			Objects:    "objects",
		},
	}
}

func applyDefaults(cfg *GameConfig) {
	for i := range cfg.Levels {
		if cfg.Levels[i].SpawnPolicy == "" {
			cfg.Levels[i].SpawnPolicy = SpawnRequire
		}
	}
}

// Validate checks the loaded configuration.
func (c *GameConfig) Validate() error {
	var errs []error

	if c.Display.ScreenWidth <= 0 || c.Display.ScreenHeight <= 0 {
		errs = append(errs, fmt.Errorf("display size must be positive, got %dx%d", c.Display.ScreenWidth, c.Display.ScreenHeight))
	}
	if c.Display.Framerate <= 0 {
		errs = append(errs, fmt.Errorf("framerate must be positive, got %d", c.Display.Framerate))
	}
	if c.Player.Width <= 0 || c.Player.Height <= 0 {
		errs = append(errs, errors.New("player size must be positive"))
	}
	if c.Pickup.Width <= 0 || c.Pickup.Height <= 0 {
		errs = append(errs, errors.New("pickup size must be positive"))
	}
	if c.Enemy.Width <= 0 || c.Enemy.Height <= 0 {
		errs = append(errs, errors.New("enemy size must be positive"))
	}
	if c.Layers.Platforms == "" || c.Layers.Exit == "" || c.Layers.Objects == "" {
		errs = append(errs, errors.New("platforms, exit and objects layer names are required"))
	}

	if len(c.Levels) == 0 {
		errs = append(errs, errors.New("at least one level is required"))
	}
	seen := make(map[string]bool, len(c.Levels))
	for i, lv := range c.Levels {
		if lv.Key == "" {
			errs = append(errs, fmt.Errorf("level %d: key is required", i))
		} else if seen[lv.Key] {
			errs = append(errs, fmt.Errorf("level %d: duplicate key %q", i, lv.Key))
		}
		seen[lv.Key] = true

		if lv.Map == "" {
			errs = append(errs, fmt.Errorf("level %q: map is required", lv.Key))
		}
		switch lv.SpawnPolicy {
		case SpawnRequire, SpawnFallback:
		default:
			errs = append(errs, fmt.Errorf("level %q: unknown spawn policy %q", lv.Key, lv.SpawnPolicy))
		}
	}

	return errors.Join(errs...)
}
