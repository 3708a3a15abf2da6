// Package sim describes the simulation state the renderer reads. Entities are
// owned by the simulation source; everything here is a read-only view.
package sim

import "github.com/yohamta/donburi/features/math"

// EntityID identifies an entity for its whole lifetime.
type EntityID uint

// Kind tags the capability set of an entity.
type Kind int

const (
	KindUnknown Kind = iota
	KindFighter
	KindPlatform
)

func (k Kind) String() string {
	switch k {
	case KindFighter:
		return "fighter"
	case KindPlatform:
		return "platform"
	default:
		return "unknown"
	}
}

// Entity is a snapshot of one simulation object. Position is in simulation
// units with the origin at the bottom-left of the space.
type Entity struct {
	ID       EntityID
	Kind     Kind
	Position math.Vec2
	Width    float64
	Height   float64

	// Fighter only
	Progress float64
	PlayerID int
	Lives    int
}

// World is the enumeration capability of the simulation.
type World interface {
	// Each calls fn for every live entity.
	Each(fn func(Entity))
	// LocalPlayer returns the fighter owned by the local player, if any.
	LocalPlayer() (Entity, bool)
}

// Listener receives entity lifecycle notifications.
type Listener interface {
	EntityAdded(e Entity)
	EntityRemoved(id EntityID)
}
