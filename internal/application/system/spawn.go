package system

import (
	"fmt"

	"github.com/younwookim/gemrun/internal/domain/entity"
	"github.com/younwookim/gemrun/internal/infrastructure/config"
	"github.com/younwookim/gemrun/internal/infrastructure/tilemap"
)

// Object types recognised in the objects layer.
const (
	TypePlayerSpawner = "playerSpawner"
	TypePickup        = "pickup"
	TypeEnemySpawner  = "enemySpawner"
)

// MissingSpawnError is returned when a level has no playerSpawner and the
// spawn policy does not allow a fallback.
type MissingSpawnError struct {
	Level string
}

func (e *MissingSpawnError) Error() string {
	return fmt.Sprintf("level %q has no %s object", e.Level, TypePlayerSpawner)
}

// SpawnRules carries the defaults used while reading spawn objects.
type SpawnRules struct {
	Policy         config.SpawnPolicy
	DefaultSpawn   entity.Point
	PickupSprite   string
	PickupValue    int
	EnemySprite    string
	PatrolDuration float64
}

// NewSpawnRules builds SpawnRules from the game and level configuration.
func NewSpawnRules(cfg *config.GameConfig, level config.LevelConfig) SpawnRules {
	return SpawnRules{
		Policy:         level.SpawnPolicy,
		DefaultSpawn:   entity.Point{X: cfg.Player.DefaultSpawn.X, Y: cfg.Player.DefaultSpawn.Y},
		PickupSprite:   cfg.Pickup.Sprite,
		PickupValue:    cfg.Scoring.PickupValue,
		EnemySprite:    cfg.Enemy.Sprite,
		PatrolDuration: cfg.Enemy.PatrolDuration,
	}
}

// PickupSpawn is a gem to place.
type PickupSpawn struct {
	ObjectID int
	Pos      entity.Point // centre
	Sprite   string
	Value    int
}

// EnemySpawn is a skull and its patrol line.
type EnemySpawn struct {
	ObjectID int
	From, To entity.Point
	Duration float64
	Sprite   string
}

// SpawnPlan is everything a level creates from its objects layer.
type SpawnPlan struct {
	Player         entity.Point
	PlayerFallback bool // no spawner found, DefaultSpawn used
	Pickups        []PickupSpawn
	Enemies        []EnemySpawn

	// Warnings lists skipped properties and ignored extra spawners.
	Warnings []error
}

// PlanSpawns reads the objects layer of a level. A nil layer is treated as empty.
func PlanSpawns(level string, layer *tilemap.ObjectLayer, rules SpawnRules) (*SpawnPlan, error) {
	plan := &SpawnPlan{}
	foundPlayer := false

	var objects []tilemap.Object
	if layer != nil {
		objects = layer.Objects
	}

	for _, obj := range objects {
		switch obj.Type {
		case TypePlayerSpawner:
			if foundPlayer {
				plan.Warnings = append(plan.Warnings, fmt.Errorf("object %d: extra %s ignored", obj.ID, TypePlayerSpawner))
				continue
			}
			plan.Player = objectCentre(obj)
			foundPlayer = true

		case TypePickup:
			props := resolve(plan, obj)
			plan.Pickups = append(plan.Pickups, PickupSpawn{
				ObjectID: obj.ID,
				Pos:      objectCentre(obj),
				Sprite:   props.String("sprite", rules.PickupSprite),
				Value:    props.Int("value", rules.PickupValue),
			})

		case TypeEnemySpawner:
			props := resolve(plan, obj)
			r := obj.Rect()
			plan.Enemies = append(plan.Enemies, EnemySpawn{
				ObjectID: obj.ID,
				From:     r.BottomLeft(),
				To:       r.BottomRight(),
				Duration: props.Float("duration", rules.PatrolDuration),
				Sprite:   props.String("sprite", rules.EnemySprite),
			})
		}
	}

	if !foundPlayer {
		if rules.Policy != config.SpawnFallback {
			return nil, &MissingSpawnError{Level: level}
		}
		plan.Player = rules.DefaultSpawn
		plan.PlayerFallback = true
	}

	return plan, nil
}

func resolve(plan *SpawnPlan, obj tilemap.Object) entity.Properties {
	props, errs := entity.ResolveProperties(obj.Properties)
	for _, err := range errs {
		plan.Warnings = append(plan.Warnings, fmt.Errorf("object %d: %w", obj.ID, err))
	}
	return props
}

// objectCentre returns the centre of a rectangle object, or the point itself.
func objectCentre(obj tilemap.Object) entity.Point {
	return obj.Rect().Center()
}
