package ecs

import (
	"sort"

	"github.com/younwookim/gemrun/internal/domain/entity"
)

// EntityID is a unique identifier for an entity (never recycled)
type EntityID uint64

// World holds all component maps and the next entity ID
type World struct {
	nextID EntityID

	// Components
	Position   map[EntityID]Position
	Velocity   map[EntityID]Velocity
	Size       map[EntityID]Size
	Facing     map[EntityID]Facing
	Sprite     map[EntityID]Sprite
	PickupData map[EntityID]Pickup
	PatrolData map[EntityID]Patrol

	// Tags
	IsPlayer map[EntityID]struct{}
	IsPickup map[EntityID]struct{}
	IsEnemy  map[EntityID]struct{}

	// Singleton references
	PlayerID EntityID
}

// NewWorld creates a new empty world
func NewWorld() *World {
	return &World{
		nextID:     1, // 0 is "nil"
		Position:   make(map[EntityID]Position),
		Velocity:   make(map[EntityID]Velocity),
		Size:       make(map[EntityID]Size),
		Facing:     make(map[EntityID]Facing),
		Sprite:     make(map[EntityID]Sprite),
		PickupData: make(map[EntityID]Pickup),
		PatrolData: make(map[EntityID]Patrol),
		IsPlayer:   make(map[EntityID]struct{}),
		IsPickup:   make(map[EntityID]struct{}),
		IsEnemy:    make(map[EntityID]struct{}),
	}
}

// NewEntity returns a new unique entity ID
func (w *World) NewEntity() EntityID {
	id := w.nextID
	w.nextID++
	return id
}

// DestroyEntity removes all components for an entity
func (w *World) DestroyEntity(id EntityID) {
	delete(w.Position, id)
	delete(w.Velocity, id)
	delete(w.Size, id)
	delete(w.Facing, id)
	delete(w.Sprite, id)
	delete(w.PickupData, id)
	delete(w.PatrolData, id)
	delete(w.IsPlayer, id)
	delete(w.IsPickup, id)
	delete(w.IsEnemy, id)
	if w.PlayerID == id {
		w.PlayerID = 0
	}
}

// Exists checks if an entity has Position component
func (w *World) Exists(id EntityID) bool {
	_, ok := w.Position[id]
	return ok
}

// CreatePlayer creates the player entity centred on pos.
// A world holds at most one player; a second call replaces the reference.
func (w *World) CreatePlayer(pos entity.Point, size Size) EntityID {
	id := w.NewEntity()

	w.Position[id] = Position{X: pos.X, Y: pos.Y}
	w.Velocity[id] = Velocity{}
	w.Size[id] = size
	w.Facing[id] = Facing{Right: true}
	w.Sprite[id] = Sprite{Name: "player"}
	w.IsPlayer[id] = struct{}{}

	w.PlayerID = id
	return id
}

// CreatePickup creates a static collectible centred on pos.
func (w *World) CreatePickup(pos entity.Point, size Size, sprite string, value int) EntityID {
	id := w.NewEntity()

	w.Position[id] = Position{X: pos.X, Y: pos.Y}
	w.Size[id] = size
	w.Sprite[id] = Sprite{Name: sprite}
	w.PickupData[id] = Pickup{Value: value}
	w.IsPickup[id] = struct{}{}

	return id
}

// CreateEnemy creates a patrolling enemy standing on the start of its path.
func (w *World) CreateEnemy(size Size, sprite string, path *entity.Patrol) EntityID {
	id := w.NewEntity()

	feet := path.Position()
	w.Position[id] = Position{X: feet.X, Y: feet.Y - size.H/2}
	w.Velocity[id] = Velocity{}
	w.Size[id] = size
	w.Facing[id] = Facing{Right: true}
	w.Sprite[id] = Sprite{Name: sprite}
	w.PatrolData[id] = Patrol{Path: path}
	w.IsEnemy[id] = struct{}{}

	return id
}

// GetPlayerPosition returns the player's position
func (w *World) GetPlayerPosition() Position {
	return w.Position[w.PlayerID]
}

// HasPlayer reports whether the player entity is alive.
func (w *World) HasPlayer() bool {
	_, ok := w.IsPlayer[w.PlayerID]
	return ok
}

// Pickups returns the collectible IDs in creation order.
func (w *World) Pickups() []EntityID {
	return sortedIDs(w.IsPickup)
}

// Enemies returns the enemy IDs in creation order.
func (w *World) Enemies() []EntityID {
	return sortedIDs(w.IsEnemy)
}

// CountPickups returns the number of collectibles still in play
func (w *World) CountPickups() int {
	return len(w.IsPickup)
}

// CountEnemies returns the number of enemies
func (w *World) CountEnemies() int {
	return len(w.IsEnemy)
}

func sortedIDs(set map[EntityID]struct{}) []EntityID {
	ids := make([]EntityID, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
