// Package level provides the gameplay scene shared by every level.
//
// One Level type runs any level; per-level differences come from its
// config.LevelConfig and from the Outcome that decides what follows.
package level

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/younwookim/gemrun/internal/application/scene"
	"github.com/younwookim/gemrun/internal/application/state"
	"github.com/younwookim/gemrun/internal/application/system"
	"github.com/younwookim/gemrun/internal/domain/entity"
	"github.com/younwookim/gemrun/internal/ecs"
	"github.com/younwookim/gemrun/internal/engine"
	"github.com/younwookim/gemrun/internal/infrastructure/config"
	"github.com/younwookim/gemrun/internal/infrastructure/logging"
	"github.com/younwookim/gemrun/internal/infrastructure/tilemap"
)

// Outcome decides which scene follows a level.
type Outcome interface {
	// ExitReached is called once when the player reaches an exit tile.
	ExitReached(level string, score int) (scene.Scene, error)
	// PlayerDefeated is called once when a skull touches the player.
	PlayerDefeated(level string, score int) (scene.Scene, error)
}

// Deps are the collaborators a level needs.
type Deps struct {
	Config     *config.GameConfig
	Maps       engine.MapSource
	NewPhysics func() engine.Physics
	Input      engine.Input
	Outcome    Outcome
	Logger     *log.Logger
}

// Level is the gameplay scene.
type Level struct {
	deps       Deps
	cfg        config.LevelConfig
	entryScore int
	score      int
	movement   entity.Movement
	log        *log.Logger

	state    *state.Machine
	tiles    *tilemap.Map
	world    *ecs.World
	phys     engine.Physics
	exit     *system.ExitDetector
	patrols  *system.PatrolSystem
	defeated bool

	frames    int
	collected int
	cam       camera
}

var _ scene.Scene = (*Level)(nil)

// New creates a level that starts with score. Nothing is loaded until OnEnter.
func New(cfg config.LevelConfig, score int, deps Deps) *Level {
	logger := deps.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	p := deps.Config.Player
	return &Level{
		deps:       deps,
		cfg:        cfg,
		entryScore: score,
		score:      score,
		movement: entity.Movement{
			Speed:         p.Speed,
			JumpSpeed:     p.JumpSpeed,
			RequireGround: p.RequireGround,
		},
		log:     logger.With("level", cfg.Key),
		state:   state.NewMachine(),
		patrols: system.NewPatrolSystem(),
	}
}

// Key returns the level key.
func (l *Level) Key() string {
	return l.cfg.Key
}

// Score returns the current score.
func (l *Level) Score() int {
	return l.score
}

// EntryScore returns the score the level started with.
func (l *Level) EntryScore() int {
	return l.entryScore
}

// State returns the level state.
func (l *Level) State() state.GameState {
	return l.state.Current()
}

// World exposes the entity store.
func (l *Level) World() *ecs.World {
	return l.world
}

// Collected returns how many gems were picked up.
func (l *Level) Collected() int {
	return l.collected
}

// OnEnter loads the map and creates the player, gems and skulls.
func (l *Level) OnEnter() error {
	if l.deps.Maps == nil || l.deps.NewPhysics == nil || l.deps.Input == nil || l.deps.Outcome == nil {
		return errors.New("level: incomplete dependencies")
	}

	m, err := l.deps.Maps.Load(l.cfg.Map)
	if err != nil {
		return fmt.Errorf("level %s: %w", l.cfg.Key, err)
	}

	names := l.deps.Config.Layers
	platforms, ok := m.TileLayer(names.Platforms)
	if !ok {
		return fmt.Errorf("level %s: map %s has no %q layer", l.cfg.Key, l.cfg.Map, names.Platforms)
	}
	exitLayer, ok := m.TileLayer(names.Exit)
	if !ok {
		return fmt.Errorf("level %s: map %s has no %q layer", l.cfg.Key, l.cfg.Map, names.Exit)
	}
	objects, _ := m.ObjectLayer(names.Objects)

	plan, err := system.PlanSpawns(l.cfg.Key, objects, system.NewSpawnRules(l.deps.Config, l.cfg))
	if err != nil {
		return err
	}
	for _, w := range plan.Warnings {
		l.log.Warn("spawn data skipped", "error", w)
	}
	if plan.PlayerFallback {
		l.log.Warn("no player spawner, using default spawn", "x", plan.Player.X, "y", plan.Player.Y)
	}

	l.tiles = m
	l.score = l.entryScore
	l.collected = 0
	l.defeated = false
	l.world = ecs.NewWorld()
	l.phys = l.deps.NewPhysics()
	l.phys.SetBounds(m.WidthInPixels(), m.HeightInPixels())
	l.phys.AddPlatforms(platforms)

	l.spawn(plan)

	l.phys.Collide(engine.GroupPlayer, engine.GroupPlatforms)
	l.phys.Collide(engine.GroupEnemies, engine.GroupPlatforms)
	l.phys.Collide(engine.GroupPlayer, engine.GroupBounds)
	l.phys.Collide(engine.GroupEnemies, engine.GroupBounds)
	l.phys.Overlap(engine.GroupPlayer, engine.GroupPickups, l.collect)
	l.phys.Overlap(engine.GroupPlayer, engine.GroupEnemies, l.touchEnemy)

	l.exit = system.NewExitDetector(exitLayer)
	if exitTiles(exitLayer) == 0 {
		l.log.Warn("exit layer has no exit tiles", "layer", names.Exit)
	}
	l.cam = newCamera(l.deps.Config.Display, m)

	if err := l.state.Transition(state.StatePlaying); err != nil {
		return err
	}

	l.log.Info("level started",
		"score", l.score,
		"gems", l.world.CountPickups(),
		"skulls", l.world.CountEnemies(),
	)
	return nil
}

func (l *Level) spawn(plan *system.SpawnPlan) {
	cfg := l.deps.Config

	size := ecs.Size{W: cfg.Player.Width, H: cfg.Player.Height}
	player := l.world.CreatePlayer(plan.Player, size)
	l.phys.AddBody(player, engine.GroupPlayer, engine.BodySpec{
		X: plan.Player.X, Y: plan.Player.Y, W: size.W, H: size.H,
	})

	gemSize := ecs.Size{W: cfg.Pickup.Width, H: cfg.Pickup.Height}
	for _, p := range plan.Pickups {
		id := l.world.CreatePickup(p.Pos, gemSize, p.Sprite, p.Value)
		l.phys.AddBody(id, engine.GroupPickups, engine.BodySpec{
			X: p.Pos.X, Y: p.Pos.Y, W: gemSize.W, H: gemSize.H,
			Static: true, Sensor: true,
		})
	}

	skullSize := ecs.Size{W: cfg.Enemy.Width, H: cfg.Enemy.Height}
	for _, e := range plan.Enemies {
		id := l.world.CreateEnemy(skullSize, e.Sprite, entity.NewPatrol(e.From, e.To, e.Duration))
		pos := l.world.Position[id]
		l.phys.AddBody(id, engine.GroupEnemies, engine.BodySpec{
			X: pos.X, Y: pos.Y, W: skullSize.W, H: skullSize.H,
		})
	}
}

// collect handles the player touching a gem.
func (l *Level) collect(_, gem ecs.EntityID) {
	pickup, ok := l.world.PickupData[gem]
	if !ok {
		return
	}
	l.score += pickup.Value
	l.collected++
	l.world.DestroyEntity(gem)
	l.phys.RemoveBody(gem)

	l.log.Debug("gem collected", "value", pickup.Value, "score", l.score)
}

// touchEnemy handles a skull touching the player.
func (l *Level) touchEnemy(_, _ ecs.EntityID) {
	l.defeated = true
}

// Update runs one frame: input, patrols, physics, then defeat and exit checks.
func (l *Level) Update(dt float64) (scene.Scene, error) {
	if l.state.Current().Terminal() || l.world == nil {
		return nil, nil
	}

	in := l.deps.Input.Poll()
	if in.Pause {
		l.togglePause()
	}
	if l.state.Is(state.StatePaused) {
		return nil, nil
	}

	l.frames++
	pid := l.world.PlayerID

	vx, vy := l.phys.Velocity(pid)
	motion := entity.ApplyInput(in.Controls(), entity.Motion{
		VX:          vx,
		VY:          vy,
		FacingRight: l.world.Facing[pid].Right,
	}, l.phys.Grounded(pid), l.movement)
	l.phys.SetVelocity(pid, motion.VX, motion.VY)
	l.world.Facing[pid] = ecs.Facing{Right: motion.FacingRight}

	l.patrols.Update(l.world, l.phys, dt)
	l.phys.Step(dt)
	l.syncPositions()

	if l.defeated {
		if err := l.state.Transition(state.StateGameOver); err != nil {
			return nil, err
		}
		l.log.Info("player defeated", "score", l.score, "frame", l.frames)
		return l.deps.Outcome.PlayerDefeated(l.cfg.Key, l.score)
	}

	pos := l.world.GetPlayerPosition()
	if l.exit.Check(pos.X, pos.Y) {
		if err := l.state.Transition(state.StateLevelClear); err != nil {
			return nil, err
		}
		l.log.Info("player reached exit", "score", l.score, "gems", l.collected, "frame", l.frames)
		return l.deps.Outcome.ExitReached(l.cfg.Key, l.score)
	}

	return nil, nil
}

func (l *Level) togglePause() {
	switch l.state.Current() {
	case state.StatePlaying:
		_ = l.state.Transition(state.StatePaused)
	case state.StatePaused:
		_ = l.state.Transition(state.StatePlaying)
	}
}

// syncPositions copies body positions and velocities into the world.
func (l *Level) syncPositions() {
	for id := range l.world.Velocity {
		x, y := l.phys.Position(id)
		vx, vy := l.phys.Velocity(id)
		l.world.Position[id] = ecs.Position{X: x, Y: y}
		l.world.Velocity[id] = ecs.Velocity{X: vx, Y: vy}
	}
}

// OnExit releases the physics world.
func (l *Level) OnExit() {
	if l.phys != nil {
		l.phys.Close()
	}
}

// Draw renders the level.
func (l *Level) Draw(screen *ebiten.Image) {
	if l.world == nil {
		return
	}
	l.draw(screen)
}
