package render

import (
	"math"

	"github.com/automoto/brawler/components"
	"github.com/automoto/brawler/gfx"
	"github.com/automoto/brawler/sim"
	"github.com/automoto/brawler/viewport"
)

// screenBox places every kind of node by its simulation box.
type screenBox struct{}

func (screenBox) ScreenTransform(e sim.Entity, vp viewport.State) (float64, float64) {
	return vp.ToScreen(e.Position.X, e.Position.Y, e.Height)
}

// fighterDrawable selects the animation frame from the fighter's progress.
type fighterDrawable struct {
	screenBox
	progressPerFrame float64
}

func (d fighterDrawable) SelectVisualState(g gfx.Graphics, node *components.VisualData, e sim.Entity) {
	if !node.Sprite.Valid() {
		return
	}
	g.SelectFrame(node.Sprite, FrameIndex(e.Progress, d.progressPerFrame))
}

// platformDrawable has no visual state beyond its position.
type platformDrawable struct {
	screenBox
}

func (platformDrawable) SelectVisualState(gfx.Graphics, *components.VisualData, sim.Entity) {}

// FrameIndex samples a monotonically increasing progress counter into
// discrete frames. Wrapping to the sequence length is left to the graphics
// implementation.
func FrameIndex(progress, perFrame float64) int {
	if perFrame <= 0 {
		return 0
	}
	return int(math.Floor(progress / perFrame))
}

var (
	_ components.Drawable = fighterDrawable{}
	_ components.Drawable = platformDrawable{}
)
