package assets

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"path"
	"strings"

	"github.com/automoto/brawler/config"
	"github.com/lafriks/go-tiled"
	"github.com/lafriks/go-tiled/render"
	_ "golang.org/x/image/webp"
)

type subImager interface {
	SubImage(r image.Rectangle) image.Image
}

// decodeFile reads an image from fsys. Tiled maps are rendered into a single
// image of their visible layers.
func decodeFile(fsys fs.FS, name string) (image.Image, error) {
	if strings.EqualFold(path.Ext(name), ".tmx") {
		return renderMap(fsys, name)
	}

	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return img, nil
}

func renderMap(fsys fs.FS, name string) (image.Image, error) {
	levelMap, err := tiled.LoadFile(name, tiled.WithFileSystem(fsys))
	if err != nil {
		return nil, fmt.Errorf("load map: %w", err)
	}
	renderer, err := render.NewRendererWithFileSystem(levelMap, fsys)
	if err != nil {
		return nil, fmt.Errorf("create map renderer: %w", err)
	}
	if err := renderer.RenderVisibleLayers(); err != nil {
		return nil, fmt.Errorf("render map: %w", err)
	}
	return renderer.Result, nil
}

// sliceAtlas cuts a horizontal strip into frames First..Last, in order.
func sliceAtlas(img image.Image, def config.AtlasDef) ([]image.Image, error) {
	si, ok := img.(subImager)
	if !ok {
		return nil, fmt.Errorf("atlas image %T cannot be sliced", img)
	}
	if def.FrameWidth <= 0 || def.FrameHeight <= 0 {
		return nil, fmt.Errorf("atlas frame size %dx%d", def.FrameWidth, def.FrameHeight)
	}
	step := def.Step
	if step <= 0 {
		step = 1
	}

	b := img.Bounds()
	var frames []image.Image
	for i := def.First; i <= def.Last; i += step {
		sx := b.Min.X + i*def.FrameWidth
		rect := image.Rect(sx, b.Min.Y, sx+def.FrameWidth, b.Min.Y+def.FrameHeight)
		if !rect.In(b) {
			return nil, fmt.Errorf("atlas frame %d %v outside image %v", i, rect, b)
		}
		frames = append(frames, si.SubImage(rect))
	}
	if len(frames) == 0 {
		return nil, fmt.Errorf("atlas has no frames (first %d, last %d)", def.First, def.Last)
	}
	return frames, nil
}
