package fonts

import (
	"fmt"
	"sync"

	"github.com/golang/freetype/truetype"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

type FontName string

const (
	Regular FontName = "regular"
	Bold    FontName = "bold"
	Title   FontName = "title"
	Small   FontName = "small"
)

func (f FontName) Get() font.Face {
	return getFont(f)
}

// Face wraps the font for ebiten's text/v2 and ebitenui.
func (f FontName) Face() text.Face {
	return text.NewGoXFace(getFont(f))
}

var (
	mu    sync.RWMutex
	fonts = map[FontName]font.Face{}
)

// LoadDefaults registers the Go fonts at the given sizes.
func LoadDefaults(title, normal, small float64) error {
	if err := LoadFontWithSize(Title, gobold.TTF, title); err != nil {
		return err
	}
	if err := LoadFontWithSize(Bold, gobold.TTF, normal); err != nil {
		return err
	}
	if err := LoadFontWithSize(Regular, goregular.TTF, normal); err != nil {
		return err
	}
	return LoadFontWithSize(Small, goregular.TTF, small)
}

func LoadFont(name FontName, ttf []byte) error {
	return LoadFontWithSize(name, ttf, 10)
}

func LoadFontWithSize(name FontName, ttf []byte, size float64) error {
	fontData, err := truetype.Parse(ttf)
	if err != nil {
		return fmt.Errorf("parse font %s: %w", name, err)
	}
	mu.Lock()
	fonts[name] = truetype.NewFace(fontData, &truetype.Options{Size: size})
	mu.Unlock()
	return nil
}

func getFont(name FontName) font.Face {
	mu.RLock()
	f, ok := fonts[name]
	mu.RUnlock()
	if !ok {
		panic(fmt.Sprintf("Font %s not found", name))
	}
	return f
}
