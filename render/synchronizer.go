package render

import (
	"time"

	"github.com/automoto/brawler/gfx"
	"github.com/automoto/brawler/sim"
	"github.com/automoto/brawler/viewport"
)

// Stats counts the work of the last draw pass.
type Stats struct {
	Ticks   uint64
	Drawn   int
	Skipped int // enumerated entities without a visual node
}

// Synchronizer copies simulation state onto visual nodes once per tick.
type Synchronizer struct {
	gfx       gfx.Graphics
	lifecycle *Lifecycle
	viewport  *viewport.Transform
	registry  *Registry

	stats Stats
}

func NewSynchronizer(g gfx.Graphics, lc *Lifecycle, vp *viewport.Transform, reg *Registry) *Synchronizer {
	return &Synchronizer{
		gfx:       g,
		lifecycle: lc,
		viewport:  vp,
		registry:  reg,
	}
}

// Draw positions every registered entity of world and renders the scene
// once. Entities without a node are skipped for this frame; add and removal
// notifications are not guaranteed to be ordered with the enumeration. Until
// the viewport is known only the render call happens.
func (s *Synchronizer) Draw(world sim.World, t, dt time.Duration) {
	if !s.lifecycle.Ready() {
		return
	}

	s.stats.Ticks++
	s.stats.Drawn, s.stats.Skipped = 0, 0

	if vp, ok := s.viewport.State(); ok && world != nil {
		world.Each(func(e sim.Entity) {
			node, ok := s.registry.Lookup(e.ID)
			if !ok {
				s.stats.Skipped++
				return
			}
			s.registry.Fit(node, e, vp)
			x, y := node.Drawable.ScreenTransform(e, vp)
			s.gfx.SetPosition(node.Container, x, y)
			node.Drawable.SelectVisualState(s.gfx, node, e)
			s.stats.Drawn++
		})
	}

	s.gfx.Render()
}

func (s *Synchronizer) Stats() Stats {
	return s.stats
}
