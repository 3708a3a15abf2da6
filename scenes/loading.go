package scenes

import (
	"context"
	"image/color"
	"log"
	"os"
	"runtime"
	"sync"

	"github.com/automoto/brawler/assets"
	cfg "github.com/automoto/brawler/config"
	"github.com/automoto/brawler/fonts"
	"github.com/automoto/brawler/gfx/ebitengfx"
	"github.com/automoto/brawler/hud"
	"github.com/automoto/brawler/render"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// LoadingScene resolves every asset before the arena can draw. A load
// failure is fatal.
type LoadingScene struct {
	sceneChanger SceneChanger
	once         sync.Once

	catalog  *assets.Catalog
	done     <-chan error
	gfx      *ebitengfx.Graphics
	hud      *hud.HUD
	renderer *render.Renderer
}

func NewLoadingScene(sc SceneChanger) *LoadingScene {
	return &LoadingScene{sceneChanger: sc}
}

func (ls *LoadingScene) configure() {
	ls.gfx = ebitengfx.New()
	ls.hud = hud.New("")
	ls.renderer = render.New(ls.gfx, ls.hud)

	ls.catalog = assets.NewCatalog(os.DirFS(cfg.Assets.Root), cfg.Assets.Paths, cfg.Assets.Atlases)
	ls.done = ls.catalog.Load(context.Background())
	log.Printf("[loading] loading %d assets from %s", len(ls.catalog.Names()), cfg.Assets.Root)
}

func (ls *LoadingScene) Update() {
	ls.once.Do(ls.configure)

	select {
	case err := <-ls.done:
		if err != nil {
			ls.renderer.AssetsFailed(err)
			log.Fatalf("[loading] %v", err)
		}
		if err := ls.renderer.AssetsLoaded(ls.catalog); err != nil {
			log.Fatalf("[loading] %v", err)
		}
		ls.hud.SetEnvironment(hud.Classify(runtime.GOOS, touchCapable()))
		ls.sceneChanger.ChangeScene(NewArenaScene(ls.sceneChanger, ls.gfx, ls.renderer, ls.hud))
	default:
	}
}

// Resize is forwarded before the arena exists so the first frame is fitted.
func (ls *LoadingScene) Resize(width, height int) {
	ls.once.Do(ls.configure)
	ls.renderer.Resize(float64(width), float64(height))
}

func (ls *LoadingScene) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)

	face := fonts.Title.Face()
	op := &text.DrawOptions{}
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	op.GeoM.Translate(float64(w)/2, float64(h)/2)
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignCenter
	op.ColorScale.ScaleWithColor(cfg.White)
	text.Draw(screen, "Loading", face, op)
}
