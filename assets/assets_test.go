package assets

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"
	"testing/fstest"
	"time"

	"github.com/automoto/brawler/config"
)

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func solid(w, h int, c color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// strip builds a frames-wide strip where frame i has red channel i*10.
func strip(frameW, frameH, frames int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, frameW*frames, frameH))
	for i := 0; i < frames; i++ {
		for y := 0; y < frameH; y++ {
			for x := 0; x < frameW; x++ {
				img.Set(i*frameW+x, y, color.RGBA{R: uint8(i * 10), A: 255})
			}
		}
	}
	return img
}

func wait(t *testing.T, ch <-chan error) error {
	t.Helper()
	select {
	case err := <-ch:
		return err
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting for load")
	}
	return nil
}

func TestCatalog_LoadsTexturesAndAtlases(t *testing.T) {
	fsys := fstest.MapFS{
		"bg.png":    {Data: encodePNG(t, solid(8, 4, color.White))},
		"tile.png":  {Data: encodePNG(t, solid(2, 2, color.Black))},
		"melee.png": {Data: encodePNG(t, strip(4, 3, 5))},
	}
	cat := NewCatalog(fsys,
		map[string]string{"background": "bg.png", "platform": "tile.png", "meleeSheet": "melee.png"},
		map[string]config.AtlasDef{"meleeSheet": {FrameWidth: 4, FrameHeight: 3, First: 0, Last: 4, Step: 1}},
	)

	if err := wait(t, cat.Load(context.Background())); err != nil {
		t.Fatalf("load: %v", err)
	}

	bg, ok := cat.Texture("background")
	if !ok || bg.Bounds().Dx() != 8 || bg.Bounds().Dy() != 4 {
		t.Fatalf("background not loaded correctly: ok=%v", ok)
	}

	frames, ok := cat.Atlas("meleeSheet")
	if !ok {
		t.Fatalf("expected melee atlas")
	}
	if len(frames) != 5 {
		t.Fatalf("expected 5 frames, got %d", len(frames))
	}
	for i, f := range frames {
		b := f.Bounds()
		if b.Dx() != 4 || b.Dy() != 3 {
			t.Fatalf("frame %d: expected 4x3, got %v", i, b)
		}
		r, _, _, _ := f.At(b.Min.X, b.Min.Y).RGBA()
		if uint8(r>>8) != uint8(i*10) {
			t.Fatalf("frame %d out of order: red %d", i, r>>8)
		}
	}

	if _, ok := cat.Atlas("platform"); ok {
		t.Fatalf("plain texture should not have frames")
	}
}

func TestCatalog_StepAndRange(t *testing.T) {
	fsys := fstest.MapFS{"s.png": {Data: encodePNG(t, strip(2, 2, 8))}}
	cat := NewCatalog(fsys,
		map[string]string{"sheet": "s.png"},
		map[string]config.AtlasDef{"sheet": {FrameWidth: 2, FrameHeight: 2, First: 1, Last: 7, Step: 3}},
	)
	if err := wait(t, cat.Load(context.Background())); err != nil {
		t.Fatalf("load: %v", err)
	}
	frames, _ := cat.Atlas("sheet")
	want := []int{1, 4, 7}
	if len(frames) != len(want) {
		t.Fatalf("expected %d frames, got %d", len(want), len(frames))
	}
	for i, f := range frames {
		r, _, _, _ := f.At(f.Bounds().Min.X, f.Bounds().Min.Y).RGBA()
		if uint8(r>>8) != uint8(want[i]*10) {
			t.Fatalf("frame %d: expected sheet index %d, got red %d", i, want[i], r>>8)
		}
	}
}

func TestCatalog_MissingFileFails(t *testing.T) {
	fsys := fstest.MapFS{"bg.png": {Data: encodePNG(t, solid(1, 1, color.White))}}
	cat := NewCatalog(fsys, map[string]string{"background": "bg.png", "platform": "nope.png"}, nil)

	err := wait(t, cat.Load(context.Background()))
	if !errors.Is(err, ErrLoadFailed) {
		t.Fatalf("expected ErrLoadFailed, got %v", err)
	}
}

func TestCatalog_CorruptImageFails(t *testing.T) {
	fsys := fstest.MapFS{"bg.png": {Data: []byte("not a png")}}
	cat := NewCatalog(fsys, map[string]string{"background": "bg.png"}, nil)

	if err := wait(t, cat.Load(context.Background())); !errors.Is(err, ErrLoadFailed) {
		t.Fatalf("expected ErrLoadFailed, got %v", err)
	}
}

func TestCatalog_AtlasOutOfBoundsFails(t *testing.T) {
	fsys := fstest.MapFS{"s.png": {Data: encodePNG(t, strip(2, 2, 3))}}
	cat := NewCatalog(fsys,
		map[string]string{"sheet": "s.png"},
		map[string]config.AtlasDef{"sheet": {FrameWidth: 2, FrameHeight: 2, First: 0, Last: 5}},
	)
	if err := wait(t, cat.Load(context.Background())); !errors.Is(err, ErrLoadFailed) {
		t.Fatalf("expected ErrLoadFailed, got %v", err)
	}
}

func TestCatalog_AtlasWithoutPath(t *testing.T) {
	cat := NewCatalog(fstest.MapFS{}, nil, map[string]config.AtlasDef{"ghost": {FrameWidth: 1, FrameHeight: 1}})
	err := wait(t, cat.Load(context.Background()))
	if !errors.Is(err, ErrUnknownAsset) || !errors.Is(err, ErrLoadFailed) {
		t.Fatalf("expected ErrUnknownAsset wrapped in ErrLoadFailed, got %v", err)
	}
}

func TestCatalog_LoadIsOneShot(t *testing.T) {
	fsys := fstest.MapFS{"bg.png": {Data: encodePNG(t, solid(1, 1, color.White))}}
	cat := NewCatalog(fsys, map[string]string{"background": "bg.png"}, nil)

	first := cat.Load(context.Background())
	second := cat.Load(context.Background())
	if first != second {
		t.Fatalf("expected Load to return the same completion channel")
	}
	if err := wait(t, first); err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, open := <-second; open {
		t.Fatalf("expected completion channel to be closed after its value")
	}
}

func TestCatalog_Names(t *testing.T) {
	cat := NewCatalog(fstest.MapFS{}, map[string]string{"b": "b.png", "a": "a.png", "c": "c.png"}, nil)
	names := cat.Names()
	if len(names) != 3 || names[0] != "a" || names[1] != "b" || names[2] != "c" {
		t.Fatalf("expected sorted names, got %v", names)
	}
}

func TestDefaultTableHasAtlasPaths(t *testing.T) {
	for name := range config.Assets.Atlases {
		if _, ok := config.Assets.Paths[name]; !ok {
			t.Fatalf("atlas %q has no path", name)
		}
	}
	if _, ok := config.Assets.Atlases[config.Render.FighterAtlas]; !ok {
		t.Fatalf("fighter atlas %q missing", config.Render.FighterAtlas)
	}
}

const arenaTMX = `<?xml version="1.0" encoding="UTF-8"?>
<map version="1.10" orientation="orthogonal" renderorder="right-down" width="2" height="1" tilewidth="4" tileheight="4" infinite="0" nextlayerid="2" nextobjectid="1">
 <tileset firstgid="1" name="tiles" tilewidth="4" tileheight="4" tilecount="2" columns="2">
  <image source="tiles.png" width="8" height="4"/>
 </tileset>
 <layer id="1" name="ground" width="2" height="1">
  <data encoding="csv">
2,1
</data>
 </layer>
</map>
`

func TestCatalog_RendersTiledMap(t *testing.T) {
	tiles := image.NewRGBA(image.Rect(0, 0, 8, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 8; x++ {
			c := color.RGBA{R: 255, A: 255}
			if x >= 4 {
				c = color.RGBA{B: 255, A: 255}
			}
			tiles.Set(x, y, c)
		}
	}
	fsys := fstest.MapFS{
		"arena.tmx": {Data: []byte(arenaTMX)},
		"tiles.png": {Data: encodePNG(t, tiles)},
	}
	c := NewCatalog(fsys, map[string]string{"background": "arena.tmx"}, nil)
	if err := wait(t, c.Load(context.Background())); err != nil {
		t.Fatalf("load: %v", err)
	}

	img, ok := c.Texture("background")
	if !ok {
		t.Fatalf("background missing")
	}
	if b := img.Bounds(); b.Dx() != 8 || b.Dy() != 4 {
		t.Fatalf("expected 8x4 map image, got %v", b)
	}
	// Tile 2 (blue) is first in the layer.
	r, _, b, _ := img.At(1, 1).RGBA()
	if b>>8 < 200 || r>>8 > 50 {
		t.Fatalf("expected blue at left, got %v", img.At(1, 1))
	}
	r, _, b, _ = img.At(5, 1).RGBA()
	if r>>8 < 200 || b>>8 > 50 {
		t.Fatalf("expected red at right, got %v", img.At(5, 1))
	}
}
