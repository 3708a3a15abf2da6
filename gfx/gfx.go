// Package gfx defines the drawing capability the renderer depends on. Nodes
// and textures are opaque handles owned by the implementation.
package gfx

import "image"

// Handle refers to a node or texture. The zero Handle is never valid.
type Handle uint32

func (h Handle) Valid() bool {
	return h != 0
}

// Graphics builds and composites a retained scene.
type Graphics interface {
	// NewTexture uploads img and returns its texture handle.
	NewTexture(img image.Image) Handle

	// NewContainer returns an empty node that positions its children.
	NewContainer() Handle
	// NewSprite returns a node drawing tex stretched to its size.
	NewSprite(tex Handle) Handle
	// NewTiledImage returns a node repeating tex over widthPx x heightPx.
	NewTiledImage(tex Handle, widthPx, heightPx float64) Handle
	// NewAnimated returns a node showing one of frames at a time.
	NewAnimated(frames []Handle) Handle

	// AddChild attaches child below parent.
	AddChild(parent, child Handle)
	// Attach adds node to the root of the scene.
	Attach(node Handle)

	SetPosition(node Handle, x, y float64)
	SetSize(node Handle, widthPx, heightPx float64)
	// SetAnchor sets the node's origin as a fraction of its size.
	SetAnchor(node Handle, ax, ay float64)
	// SelectFrame shows frame index of an animated node. Out of range
	// indices are wrapped by the implementation.
	SelectFrame(node Handle, index int)

	// Destroy detaches node and releases it and its children.
	Destroy(node Handle)

	// Resize sets the size of the drawing surface.
	Resize(widthPx, heightPx int)
	// Render composites the whole scene onto the surface.
	Render()
}
