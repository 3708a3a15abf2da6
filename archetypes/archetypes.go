package archetypes

import (
	"github.com/automoto/brawler/components"
	"github.com/automoto/brawler/sim"
	"github.com/automoto/brawler/tags"
	"github.com/yohamta/donburi"
)

var (
	Fighter = newArchetype(
		tags.Fighter,
		components.Visual,
	)
	Platform = newArchetype(
		tags.Platform,
		components.Visual,
	)
)

// ForKind returns the archetype of visual nodes for kind.
func ForKind(kind sim.Kind) (*archetype, bool) {
	switch kind {
	case sim.KindFighter:
		return Fighter, true
	case sim.KindPlatform:
		return Platform, true
	}
	return nil, false
}

type archetype struct {
	components []donburi.IComponentType
}

func newArchetype(cs ...donburi.IComponentType) *archetype {
	return &archetype{
		components: cs,
	}
}

func (a *archetype) Spawn(w donburi.World, cs ...donburi.IComponentType) *donburi.Entry {
	return w.Entry(w.Create(append(a.components, cs...)...))
}
