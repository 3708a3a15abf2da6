// Package gfxtest provides a recording gfx.Graphics for tests.
package gfxtest

import (
	"image"

	"github.com/automoto/brawler/gfx"
)

// NodeKind identifies what constructor created a node.
type NodeKind int

const (
	Texture NodeKind = iota
	Container
	Sprite
	Tiled
	Animated
)

// Node is the recorded state of one handle.
type Node struct {
	Kind      NodeKind
	X, Y      float64
	W, H      float64
	AnchorX   float64
	AnchorY   float64
	Frame     int
	Frames    []gfx.Handle
	Texture   gfx.Handle
	Children  []gfx.Handle
	Parent    gfx.Handle
	Attached  bool
	Destroyed bool
}

// Recorder implements gfx.Graphics in memory.
type Recorder struct {
	Nodes   map[gfx.Handle]*Node
	Renders int
	Width   int
	Height  int
	Resizes int

	next gfx.Handle
}

func NewRecorder() *Recorder {
	return &Recorder{Nodes: make(map[gfx.Handle]*Node)}
}

func (r *Recorder) create(n *Node) gfx.Handle {
	r.next++
	r.Nodes[r.next] = n
	return r.next
}

func (r *Recorder) NewTexture(img image.Image) gfx.Handle {
	b := img.Bounds()
	return r.create(&Node{Kind: Texture, W: float64(b.Dx()), H: float64(b.Dy())})
}

func (r *Recorder) NewContainer() gfx.Handle {
	return r.create(&Node{Kind: Container})
}

func (r *Recorder) NewSprite(tex gfx.Handle) gfx.Handle {
	return r.create(&Node{Kind: Sprite, Texture: tex})
}

func (r *Recorder) NewTiledImage(tex gfx.Handle, w, h float64) gfx.Handle {
	return r.create(&Node{Kind: Tiled, Texture: tex, W: w, H: h})
}

func (r *Recorder) NewAnimated(frames []gfx.Handle) gfx.Handle {
	return r.create(&Node{Kind: Animated, Frames: append([]gfx.Handle(nil), frames...)})
}

func (r *Recorder) AddChild(parent, child gfx.Handle) {
	p, ok := r.Nodes[parent]
	if !ok {
		return
	}
	p.Children = append(p.Children, child)
	if c, ok := r.Nodes[child]; ok {
		c.Parent = parent
	}
}

func (r *Recorder) Attach(node gfx.Handle) {
	if n, ok := r.Nodes[node]; ok {
		n.Attached = true
	}
}

func (r *Recorder) SetPosition(node gfx.Handle, x, y float64) {
	if n, ok := r.Nodes[node]; ok {
		n.X, n.Y = x, y
	}
}

func (r *Recorder) SetSize(node gfx.Handle, w, h float64) {
	if n, ok := r.Nodes[node]; ok {
		n.W, n.H = w, h
	}
}

func (r *Recorder) SetAnchor(node gfx.Handle, ax, ay float64) {
	if n, ok := r.Nodes[node]; ok {
		n.AnchorX, n.AnchorY = ax, ay
	}
}

func (r *Recorder) SelectFrame(node gfx.Handle, index int) {
	if n, ok := r.Nodes[node]; ok {
		n.Frame = index
	}
}

func (r *Recorder) Destroy(node gfx.Handle) {
	n, ok := r.Nodes[node]
	if !ok || n.Destroyed {
		return
	}
	n.Destroyed = true
	n.Attached = false
	for _, c := range n.Children {
		r.Destroy(c)
	}
}

func (r *Recorder) Resize(w, h int) {
	r.Width, r.Height = w, h
	r.Resizes++
}

func (r *Recorder) Render() {
	r.Renders++
}

// Live returns the number of nodes of kind that are not destroyed.
func (r *Recorder) Live(kind NodeKind) int {
	n := 0
	for _, node := range r.Nodes {
		if node.Kind == kind && !node.Destroyed {
			n++
		}
	}
	return n
}

var _ gfx.Graphics = (*Recorder)(nil)
