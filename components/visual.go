package components

import (
	"github.com/automoto/brawler/gfx"
	"github.com/automoto/brawler/sim"
	"github.com/automoto/brawler/viewport"
	"github.com/yohamta/donburi"
)

// Drawable derives a node's visual state from its simulation entity. One
// implementation exists per entity kind and is chosen when the node is built.
type Drawable interface {
	ScreenTransform(e sim.Entity, vp viewport.State) (x, y float64)
	SelectVisualState(g gfx.Graphics, node *VisualData, e sim.Entity)
}

// VisualData is the visual node of one simulation entity.
type VisualData struct {
	ID        sim.EntityID
	Kind      sim.Kind
	Container gfx.Handle
	Sprite    gfx.Handle // animated or tiled child, may be zero
	Drawable  Drawable

	// Pixels per unit the sprite was last sized for; zero if never sized.
	FittedScale float64
}

var Visual = donburi.NewComponentType[VisualData]()
