package config

// SpawnPolicy decides what happens when a map has no playerSpawner object.
type SpawnPolicy string

const (
	// SpawnRequire fails level initialization.
	SpawnRequire SpawnPolicy = "require"
	// SpawnFallback places the player at player.defaultSpawn.
	SpawnFallback SpawnPolicy = "fallback"
)

// GameConfig is the root config for game.yaml
type GameConfig struct {
	Display DisplayConfig   `yaml:"display"`
	Physics PhysicsSettings `yaml:"physics"`
	Player  PlayerConfig    `yaml:"player"`
	Scoring ScoringConfig   `yaml:"scoring"`
	Pickup  PickupConfig    `yaml:"pickup"`
	Enemy   EnemyConfig     `yaml:"enemy"`
	Layers  LayerNames      `yaml:"layers"`
	Levels  []LevelConfig   `yaml:"levels"`
}

type DisplayConfig struct {
	ScreenWidth  int     `yaml:"screenWidth"`
	ScreenHeight int     `yaml:"screenHeight"`
	Scale        int     `yaml:"scale"`
	Framerate    int     `yaml:"framerate"`
	Zoom         float64 `yaml:"zoom"`
}

type PhysicsSettings struct {
	Gravity    float64 `yaml:"gravity"`
	Iterations int     `yaml:"iterations"`
}

type PlayerConfig struct {
	Speed         float64 `yaml:"speed"`
	JumpSpeed     float64 `yaml:"jumpSpeed"`
	Width         float64 `yaml:"width"`
	Height        float64 `yaml:"height"`
	RequireGround bool    `yaml:"requireGround"` // jump only while standing on something
	DefaultSpawn  Point   `yaml:"defaultSpawn"`
}

type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type ScoringConfig struct {
	StartScore  int `yaml:"startScore"`
	PickupValue int `yaml:"pickupValue"`
}

type PickupConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Sprite string  `yaml:"sprite"`
}

type EnemyConfig struct {
	Width          float64 `yaml:"width"`
	Height         float64 `yaml:"height"`
	Sprite         string  `yaml:"sprite"`
	PatrolDuration float64 `yaml:"patrolDuration"` // seconds per leg
}

// LayerNames maps gameplay roles to Tiled layer names.
type LayerNames struct {
	Background []string `yaml:"background"`
	Platforms  string   `yaml:"platforms"`
	Exit       string   `yaml:"exit"`
	Foreground []string `yaml:"foreground"`
	Objects    string   `yaml:"objects"`
}

// LevelConfig describes one entry of the level sequence.
type LevelConfig struct {
	Key         string      `yaml:"key"`
	Map         string      `yaml:"map"`
	SpawnPolicy SpawnPolicy `yaml:"spawnPolicy"`
}

// Level returns the level with the given key.
func (c *GameConfig) Level(key string) (LevelConfig, bool) {
	for _, lv := range c.Levels {
		if lv.Key == key {
			return lv, true
		}
	}
	return LevelConfig{}, false
}

// NextLevel returns the level that follows key in the sequence.
func (c *GameConfig) NextLevel(key string) (LevelConfig, bool) {
	for i, lv := range c.Levels {
		if lv.Key == key && i+1 < len(c.Levels) {
			return c.Levels[i+1], true
		}
	}
	return LevelConfig{}, false
}
