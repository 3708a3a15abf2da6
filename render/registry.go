package render

import (
	"log"
	"slices"

	"github.com/automoto/brawler/archetypes"
	"github.com/automoto/brawler/components"
	"github.com/automoto/brawler/config"
	"github.com/automoto/brawler/gfx"
	"github.com/automoto/brawler/sim"
	"github.com/automoto/brawler/viewport"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/filter"
)

// Textures are the uploaded assets visual nodes are built from.
type Textures struct {
	Background    gfx.Handle
	Platform      gfx.Handle
	FighterFrames []gfx.Handle
}

// kindVisual builds and sizes the nodes of one entity kind.
type kindVisual struct {
	drawable components.Drawable
	build    func(r *Registry, node *components.VisualData)
	size     func(e sim.Entity, vp viewport.State) (w, h float64)
}

// Registry owns the visual node of every added simulation entity. Nodes live
// in a private donburi world indexed by entity ID.
type Registry struct {
	gfx       gfx.Graphics
	lifecycle *Lifecycle
	viewport  *viewport.Transform
	textures  Textures

	world donburi.World
	index map[sim.EntityID]donburi.Entity
	kinds map[sim.Kind]kindVisual
}

func NewRegistry(g gfx.Graphics, lc *Lifecycle, vp *viewport.Transform) *Registry {
	r := &Registry{
		gfx:       g,
		lifecycle: lc,
		viewport:  vp,
		world:     donburi.NewWorld(),
		index:     make(map[sim.EntityID]donburi.Entity),
	}
	r.kinds = map[sim.Kind]kindVisual{
		sim.KindFighter: {
			drawable: fighterDrawable{progressPerFrame: config.Render.ProgressPerFrame},
			build:    (*Registry).buildFighter,
			size:     fighterSize,
		},
		sim.KindPlatform: {
			drawable: platformDrawable{},
			build:    (*Registry).buildPlatform,
			size:     platformSize,
		},
	}
	return r
}

// SetTextures provides the uploaded assets. It is called once, before the
// lifecycle becomes Ready.
func (r *Registry) SetTextures(t Textures) {
	r.textures = t
}

// Add builds and attaches the visual node for e. It is a no-op before the
// renderer is ready, for unknown kinds, and for IDs that already have a node.
func (r *Registry) Add(e sim.Entity) {
	if !r.lifecycle.Ready() {
		log.Printf("[registry] entity %d added before assets were ready, ignored", e.ID)
		return
	}
	if _, ok := r.index[e.ID]; ok {
		log.Printf("[registry] entity %d added twice, ignored", e.ID)
		return
	}
	kv, ok := r.kinds[e.Kind]
	if !ok {
		log.Printf("[registry] entity %d has unsupported kind %s", e.ID, e.Kind)
		return
	}
	arch, ok := archetypes.ForKind(e.Kind)
	if !ok {
		return
	}

	node := components.VisualData{
		ID:        e.ID,
		Kind:      e.Kind,
		Container: r.gfx.NewContainer(),
		Drawable:  kv.drawable,
	}
	kv.build(r, &node)

	vp, _ := r.viewport.State()
	if node.Sprite.Valid() {
		w, h := kv.size(e, vp)
		r.gfx.SetSize(node.Sprite, w, h)
		node.FittedScale = vp.PixelsPerUnit
	}
	x, y := kv.drawable.ScreenTransform(e, vp)
	r.gfx.SetPosition(node.Container, x, y)
	r.gfx.Attach(node.Container)

	entry := arch.Spawn(r.world)
	components.Visual.SetValue(entry, node)
	r.index[e.ID] = entry.Entity()
}

func (r *Registry) buildFighter(node *components.VisualData) {
	if len(r.textures.FighterFrames) == 0 {
		return
	}
	node.Sprite = r.gfx.NewAnimated(r.textures.FighterFrames)
	r.gfx.SetAnchor(node.Sprite, config.Render.FighterAnchorX, config.Render.FighterAnchorY)
	r.gfx.AddChild(node.Container, node.Sprite)
}

func (r *Registry) buildPlatform(node *components.VisualData) {
	if !r.textures.Platform.Valid() {
		return
	}
	// Size is applied right after build.
	node.Sprite = r.gfx.NewTiledImage(r.textures.Platform, 0, 0)
	r.gfx.AddChild(node.Container, node.Sprite)
}

func fighterSize(e sim.Entity, vp viewport.State) (float64, float64) {
	w, h := vp.Size(e.Width, e.Height)
	return w * config.Render.FighterWidthScale, h
}

func platformSize(e sim.Entity, vp viewport.State) (float64, float64) {
	return vp.Size(e.Width, e.Height)
}

// Remove destroys the node of id. Unknown IDs are ignored.
func (r *Registry) Remove(id sim.EntityID) {
	entity, ok := r.index[id]
	if !ok {
		return
	}
	delete(r.index, id)
	if !r.world.Valid(entity) {
		return
	}
	entry := r.world.Entry(entity)
	node := components.Visual.Get(entry)
	if node.Sprite.Valid() {
		r.gfx.Destroy(node.Sprite)
	}
	r.gfx.Destroy(node.Container)
	r.world.Remove(entity)
}

// Lookup returns the node of id, if one exists.
func (r *Registry) Lookup(id sim.EntityID) (*components.VisualData, bool) {
	entity, ok := r.index[id]
	if !ok || !r.world.Valid(entity) {
		return nil, false
	}
	return components.Visual.Get(r.world.Entry(entity)), true
}

// Fit resizes the node of e for vp unless it is already sized for that scale.
func (r *Registry) Fit(node *components.VisualData, e sim.Entity, vp viewport.State) {
	if node.FittedScale == vp.PixelsPerUnit {
		return
	}
	kv, ok := r.kinds[node.Kind]
	if !ok || !node.Sprite.Valid() {
		return
	}
	w, h := kv.size(e, vp)
	r.gfx.SetSize(node.Sprite, w, h)
	node.FittedScale = vp.PixelsPerUnit
}

func (r *Registry) Len() int {
	return len(r.index)
}

// IDs returns the registered entity IDs in ascending order.
func (r *Registry) IDs() []sim.EntityID {
	ids := make([]sim.EntityID, 0, len(r.index))
	for id := range r.index {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Count returns how many nodes carry tag.
func (r *Registry) Count(tag donburi.IComponentType) int {
	return donburi.NewQuery(filter.Contains(tag)).Count(r.world)
}

// Close destroys every node.
func (r *Registry) Close() {
	for _, id := range r.IDs() {
		r.Remove(id)
	}
}
