package assets

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io/fs"
	"log"
	"maps"
	"slices"
	"sync"

	"github.com/automoto/brawler/config"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrLoadFailed wraps the first error of a failed batch load.
	ErrLoadFailed = errors.New("asset load failed")
	// ErrUnknownAsset is returned for names missing from the catalog.
	ErrUnknownAsset = errors.New("unknown asset")
)

// Catalog resolves a static name to path table into decoded images. Atlas
// entries are additionally sliced into their frame sequence.
type Catalog struct {
	fsys    fs.FS
	paths   map[string]string
	atlases map[string]config.AtlasDef

	mu       sync.RWMutex
	textures map[string]image.Image
	frames   map[string][]image.Image
	once     sync.Once
	done     chan error
}

func NewCatalog(fsys fs.FS, paths map[string]string, atlases map[string]config.AtlasDef) *Catalog {
	return &Catalog{
		fsys:     fsys,
		paths:    maps.Clone(paths),
		atlases:  maps.Clone(atlases),
		textures: make(map[string]image.Image, len(paths)),
		frames:   make(map[string][]image.Image, len(atlases)),
	}
}

// Names returns the logical asset names in sorted order.
func (c *Catalog) Names() []string {
	return slices.Sorted(maps.Keys(c.paths))
}

// Load decodes every entry concurrently. The returned channel yields exactly
// one value, nil on success, and is then closed. Calling Load again returns
// the same channel.
func (c *Catalog) Load(ctx context.Context) <-chan error {
	c.once.Do(func() {
		c.done = make(chan error, 1)
		go func() {
			err := c.loadAll(ctx)
			if err != nil {
				err = fmt.Errorf("%w: %w", ErrLoadFailed, err)
			}
			c.done <- err
			close(c.done)
		}()
	})
	return c.done
}

func (c *Catalog) loadAll(ctx context.Context) error {
	for name := range c.atlases {
		if _, ok := c.paths[name]; !ok {
			return fmt.Errorf("atlas %q: %w", name, ErrUnknownAsset)
		}
	}

	g, ctx := errgroup.WithContext(ctx)
	for _, name := range c.Names() {
		path := c.paths[name]
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			img, err := decodeFile(c.fsys, path)
			if err != nil {
				return fmt.Errorf("%s (%s): %w", name, path, err)
			}

			var frames []image.Image
			if def, ok := c.atlases[name]; ok {
				frames, err = sliceAtlas(img, def)
				if err != nil {
					return fmt.Errorf("%s (%s): %w", name, path, err)
				}
			}

			c.mu.Lock()
			c.textures[name] = img
			if frames != nil {
				c.frames[name] = frames
			}
			c.mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	log.Printf("[assets] loaded %d assets (%d atlases)", len(c.paths), len(c.atlases))
	return nil
}

// Texture returns the decoded image for name.
func (c *Catalog) Texture(name string) (image.Image, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	img, ok := c.textures[name]
	return img, ok
}

// Atlas returns the ordered frames of an atlas entry.
func (c *Catalog) Atlas(name string) ([]image.Image, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	frames, ok := c.frames[name]
	return frames, ok
}
