// Package render keeps the visual scene in sync with the simulation: one
// node per simulation entity, positioned through the viewport transform
// every tick.
package render

import (
	"fmt"
	"image"
	"log"
	"time"

	"github.com/automoto/brawler/assets"
	"github.com/automoto/brawler/config"
	"github.com/automoto/brawler/gfx"
	"github.com/automoto/brawler/sim"
	"github.com/automoto/brawler/viewport"
)

// TextureSource provides decoded assets by logical name.
type TextureSource interface {
	Texture(name string) (image.Image, bool)
	Atlas(name string) ([]image.Image, bool)
}

// Renderer wires the registry, synchronizer and status reflector to one
// graphics implementation and one viewport. It implements sim.Listener.
type Renderer struct {
	gfx       gfx.Graphics
	lifecycle *Lifecycle
	viewport  *viewport.Transform
	registry  *Registry
	sync      *Synchronizer
	status    *StatusReflector
	world     sim.World

	background gfx.Handle
}

func New(g gfx.Graphics, view StatusView) *Renderer {
	lc := &Lifecycle{}
	vp := viewport.NewTransform(g)
	reg := NewRegistry(g, lc, vp)
	return &Renderer{
		gfx:       g,
		lifecycle: lc,
		viewport:  vp,
		registry:  reg,
		sync:      NewSynchronizer(g, lc, vp, reg),
		status:    NewStatusReflector(view),
	}
}

// SetWorld sets the simulation enumerated on every Draw.
func (r *Renderer) SetWorld(w sim.World) {
	r.world = w
}

// OnReady registers fn to run once assets are uploaded.
func (r *Renderer) OnReady(fn func()) {
	r.lifecycle.OnReady(fn)
}

func (r *Renderer) Phase() Phase {
	return r.lifecycle.Phase()
}

// SetSpace sets the simulation dimensions. Resizes received earlier are
// applied now.
func (r *Renderer) SetSpace(simW, simH float64) {
	if _, ok := r.viewport.SetSpace(simW, simH); ok {
		r.fitBackground()
	}
}

// Resize handles a window size change. Visual nodes are left untouched; the
// next Draw refits them.
func (r *Renderer) Resize(windowW, windowH float64) {
	if _, ok := r.viewport.Resize(windowW, windowH); ok {
		r.fitBackground()
	}
}

// Viewport returns the current viewport state.
func (r *Renderer) Viewport() (viewport.State, bool) {
	return r.viewport.State()
}

// AssetsLoaded uploads the loaded assets and moves the renderer to Ready.
func (r *Renderer) AssetsLoaded(src TextureSource) error {
	switch r.lifecycle.Phase() {
	case PhaseLoading:
	case PhaseFailed:
		return fmt.Errorf("assets loaded after failure: %w", r.lifecycle.Err())
	default:
		return fmt.Errorf("assets loaded in phase %s", r.lifecycle.Phase())
	}

	bg, ok := src.Texture(config.Render.Background)
	if !ok {
		return r.failMissing(config.Render.Background)
	}
	platform, ok := src.Texture(config.Render.PlatformTexture)
	if !ok {
		return r.failMissing(config.Render.PlatformTexture)
	}
	frames, ok := src.Atlas(config.Render.FighterAtlas)
	if !ok || len(frames) == 0 {
		return r.failMissing(config.Render.FighterAtlas)
	}

	tex := Textures{
		Background: r.gfx.NewTexture(bg),
		Platform:   r.gfx.NewTexture(platform),
	}
	for _, f := range frames {
		tex.FighterFrames = append(tex.FighterFrames, r.gfx.NewTexture(f))
	}
	r.registry.SetTextures(tex)

	r.background = r.gfx.NewSprite(tex.Background)
	r.gfx.Attach(r.background)
	r.fitBackground()

	r.lifecycle.markReady()
	log.Printf("[renderer] ready with %d fighter frames", len(tex.FighterFrames))
	return nil
}

func (r *Renderer) failMissing(name string) error {
	err := fmt.Errorf("%w: %q", assets.ErrUnknownAsset, name)
	r.lifecycle.fail(err)
	return err
}

// AssetsFailed records a fatal load failure. The renderer stays inert.
func (r *Renderer) AssetsFailed(err error) {
	r.lifecycle.fail(err)
}

func (r *Renderer) fitBackground() {
	if !r.background.Valid() {
		return
	}
	vp, ok := r.viewport.State()
	if !ok {
		return
	}
	r.gfx.SetSize(r.background, vp.WidthPx, vp.HeightPx)
}

func (r *Renderer) EntityAdded(e sim.Entity) {
	r.registry.Add(e)
}

func (r *Renderer) EntityRemoved(id sim.EntityID) {
	r.registry.Remove(id)
}

// Draw runs one render tick: entity sync, the composite call, then the
// status reflection.
func (r *Renderer) Draw(t, dt time.Duration) {
	if !r.lifecycle.Ready() {
		return
	}
	r.sync.Draw(r.world, t, dt)
	r.status.Reflect(r.world)
}

func (r *Renderer) Registry() *Registry {
	return r.registry
}

func (r *Renderer) Stats() Stats {
	return r.sync.Stats()
}

// Close destroys every node and the background.
func (r *Renderer) Close() {
	r.registry.Close()
	if r.background.Valid() {
		r.gfx.Destroy(r.background)
		r.background = 0
	}
}

var _ sim.Listener = (*Renderer)(nil)
