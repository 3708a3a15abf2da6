// Package ebitengfx implements gfx.Graphics on top of ebiten images.
package ebitengfx

import (
	"image"
	"image/color"
	"math"
	"slices"

	"github.com/automoto/brawler/gfx"
	"github.com/hajimehoshi/ebiten/v2"
)

type nodeKind int

const (
	kindTexture nodeKind = iota
	kindContainer
	kindSprite
	kindTiled
	kindAnimated
)

type node struct {
	kind     nodeKind
	image    *ebiten.Image // texture pixels, or the pre-tiled cache
	texture  gfx.Handle
	frames   []gfx.Handle
	frame    int
	x, y     float64
	w, h     float64
	ax, ay   float64
	parent   gfx.Handle
	children []gfx.Handle
}

// Graphics is a retained scene drawn onto an offscreen surface sized to the
// viewport.
type Graphics struct {
	nodes   map[gfx.Handle]*node
	roots   []gfx.Handle
	next    gfx.Handle
	surface *ebiten.Image
	clear   color.Color
}

func New() *Graphics {
	return &Graphics{
		nodes: make(map[gfx.Handle]*node),
		clear: color.Black,
	}
}

var drawOp = &ebiten.DrawImageOptions{}

func (g *Graphics) create(n *node) gfx.Handle {
	g.next++
	g.nodes[g.next] = n
	return g.next
}

func (g *Graphics) NewTexture(img image.Image) gfx.Handle {
	var eimg *ebiten.Image
	if e, ok := img.(*ebiten.Image); ok {
		eimg = e
	} else {
		eimg = ebiten.NewImageFromImage(img)
	}
	b := eimg.Bounds()
	return g.create(&node{kind: kindTexture, image: eimg, w: float64(b.Dx()), h: float64(b.Dy())})
}

func (g *Graphics) NewContainer() gfx.Handle {
	return g.create(&node{kind: kindContainer})
}

func (g *Graphics) NewSprite(tex gfx.Handle) gfx.Handle {
	n := &node{kind: kindSprite, texture: tex}
	if t, ok := g.nodes[tex]; ok {
		n.w, n.h = t.w, t.h
	}
	return g.create(n)
}

func (g *Graphics) NewTiledImage(tex gfx.Handle, w, h float64) gfx.Handle {
	n := &node{kind: kindTiled, texture: tex, w: w, h: h}
	g.retile(n)
	return g.create(n)
}

func (g *Graphics) NewAnimated(frames []gfx.Handle) gfx.Handle {
	n := &node{kind: kindAnimated, frames: slices.Clone(frames)}
	if len(frames) > 0 {
		if t, ok := g.nodes[frames[0]]; ok {
			n.w, n.h = t.w, t.h
		}
	}
	return g.create(n)
}

// retile renders the repeated texture once so Render only blits it.
func (g *Graphics) retile(n *node) {
	if n.image != nil {
		n.image.Deallocate()
		n.image = nil
	}
	t, ok := g.nodes[n.texture]
	w, h := int(math.Ceil(n.w)), int(math.Ceil(n.h))
	if !ok || t.image == nil || w <= 0 || h <= 0 {
		return
	}
	tw, th := t.image.Bounds().Dx(), t.image.Bounds().Dy()
	if tw == 0 || th == 0 {
		return
	}
	n.image = ebiten.NewImage(w, h)
	for y := 0; y < h; y += th {
		for x := 0; x < w; x += tw {
			drawOp.GeoM.Reset()
			drawOp.ColorScale.Reset()
			drawOp.GeoM.Translate(float64(x), float64(y))
			n.image.DrawImage(t.image, drawOp)
		}
	}
}

func (g *Graphics) AddChild(parent, child gfx.Handle) {
	p, ok := g.nodes[parent]
	if !ok {
		return
	}
	c, ok := g.nodes[child]
	if !ok {
		return
	}
	g.detach(child, c)
	p.children = append(p.children, child)
	c.parent = parent
}

func (g *Graphics) Attach(h gfx.Handle) {
	n, ok := g.nodes[h]
	if !ok {
		return
	}
	g.detach(h, n)
	g.roots = append(g.roots, h)
}

func (g *Graphics) detach(h gfx.Handle, n *node) {
	if n.parent.Valid() {
		if p, ok := g.nodes[n.parent]; ok {
			p.children = slices.DeleteFunc(p.children, func(c gfx.Handle) bool { return c == h })
		}
		n.parent = 0
		return
	}
	g.roots = slices.DeleteFunc(g.roots, func(r gfx.Handle) bool { return r == h })
}

func (g *Graphics) SetPosition(h gfx.Handle, x, y float64) {
	if n, ok := g.nodes[h]; ok {
		n.x, n.y = x, y
	}
}

func (g *Graphics) SetSize(h gfx.Handle, w, hgt float64) {
	n, ok := g.nodes[h]
	if !ok {
		return
	}
	n.w, n.h = w, hgt
	if n.kind == kindTiled {
		g.retile(n)
	}
}

func (g *Graphics) SetAnchor(h gfx.Handle, ax, ay float64) {
	if n, ok := g.nodes[h]; ok {
		n.ax, n.ay = ax, ay
	}
}

func (g *Graphics) SelectFrame(h gfx.Handle, index int) {
	n, ok := g.nodes[h]
	if !ok || len(n.frames) == 0 {
		return
	}
	index %= len(n.frames)
	if index < 0 {
		index += len(n.frames)
	}
	n.frame = index
}

// Destroy releases node h and its subtree. Textures are shared and are only
// released when destroyed directly.
func (g *Graphics) Destroy(h gfx.Handle) {
	n, ok := g.nodes[h]
	if !ok {
		return
	}
	g.detach(h, n)
	g.release(h, n)
}

func (g *Graphics) release(h gfx.Handle, n *node) {
	for _, c := range n.children {
		if cn, ok := g.nodes[c]; ok {
			cn.parent = 0
			g.release(c, cn)
		}
	}
	if n.image != nil && n.kind != kindSprite && n.kind != kindAnimated {
		n.image.Deallocate()
	}
	delete(g.nodes, h)
}

func (g *Graphics) Resize(w, h int) {
	w, h = max(w, 1), max(h, 1)
	if g.surface != nil {
		b := g.surface.Bounds()
		if b.Dx() == w && b.Dy() == h {
			return
		}
		g.surface.Deallocate()
	}
	g.surface = ebiten.NewImage(w, h)
}

func (g *Graphics) Render() {
	if g.surface == nil {
		return
	}
	g.surface.Fill(g.clear)
	for _, r := range g.roots {
		g.draw(r, 0, 0)
	}
}

func (g *Graphics) draw(h gfx.Handle, ox, oy float64) {
	n, ok := g.nodes[h]
	if !ok {
		return
	}
	x, y := ox+n.x, oy+n.y

	var img *ebiten.Image
	switch n.kind {
	case kindSprite:
		if t, ok := g.nodes[n.texture]; ok {
			img = t.image
		}
	case kindTiled:
		img = n.image
	case kindAnimated:
		if len(n.frames) > 0 {
			if t, ok := g.nodes[n.frames[n.frame]]; ok {
				img = t.image
			}
		}
	}

	if img != nil {
		b := img.Bounds()
		drawOp.GeoM.Reset()
		drawOp.ColorScale.Reset()
		if b.Dx() > 0 && b.Dy() > 0 && n.kind != kindTiled {
			drawOp.GeoM.Scale(n.w/float64(b.Dx()), n.h/float64(b.Dy()))
		}
		drawOp.GeoM.Translate(x-n.ax*n.w, y-n.ay*n.h)
		g.surface.DrawImage(img, drawOp)
	}

	for _, c := range n.children {
		g.draw(c, x, y)
	}
}

// Present draws the composited surface onto screen at the top-left corner.
func (g *Graphics) Present(screen *ebiten.Image) {
	if g.surface == nil {
		return
	}
	drawOp.GeoM.Reset()
	drawOp.ColorScale.Reset()
	screen.DrawImage(g.surface, drawOp)
}

var _ gfx.Graphics = (*Graphics)(nil)
