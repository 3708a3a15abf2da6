package scenes

import (
	"fmt"
	"image/color"
	"log"
	"sync"
	"time"

	cfg "github.com/automoto/brawler/config"
	"github.com/automoto/brawler/fonts"
	"github.com/automoto/brawler/gfx/ebitengfx"
	"github.com/automoto/brawler/hud"
	"github.com/automoto/brawler/netsync"
	"github.com/automoto/brawler/network"
	"github.com/automoto/brawler/render"
	"github.com/automoto/brawler/shared/messages"
	"github.com/automoto/brawler/sim"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const reconnectDelay = 2 * time.Second

// ArenaScene mirrors the server's world and draws it every frame.
type ArenaScene struct {
	sceneChanger SceneChanger
	gfx          *ebitengfx.Graphics
	renderer     *render.Renderer
	hud          *hud.HUD
	mirror       *netsync.Mirror
	netClient    *network.Client
	once         sync.Once

	start       time.Time
	lastDraw    time.Time
	retryAt     time.Time
	inputSeen   bool
	keys        []ebiten.Key
	touches     []ebiten.TouchID
	debugBorder color.RGBA
}

func NewArenaScene(sc SceneChanger, g *ebitengfx.Graphics, r *render.Renderer, h *hud.HUD) *ArenaScene {
	return &ArenaScene{
		sceneChanger: sc,
		gfx:          g,
		renderer:     r,
		hud:          h,
		netClient:    network.NewClient(),
		debugBorder:  cfg.LightGreen,
	}
}

func (as *ArenaScene) configure() {
	as.mirror = netsync.NewMirror(as.renderer)
	as.renderer.SetWorld(as.mirror)
	as.start = time.Now()
	as.lastDraw = as.start

	as.netClient.Connect(cfg.Net.Address, cfg.Net.Version, cfg.Net.PlayerName)
}

func (as *ArenaScene) Update() {
	as.once.Do(as.configure)

	as.updateConnection()

	if s, ok := as.netClient.Joined(); ok {
		as.join(s)
	}

	if snap := as.netClient.LatestSnapshot(); snap != nil {
		as.mirror.Apply(netsync.Decode(*snap))
	}
	if tps := ebiten.TPS(); tps > 0 {
		as.mirror.Advance(time.Second / time.Duration(tps))
	}

	if !as.inputSeen && as.anyInput() {
		as.inputSeen = true
		as.hud.HideInstructions()
	}

	as.hud.Update()
}

func (as *ArenaScene) updateConnection() {
	state := as.netClient.State()
	if state != network.StateDisconnected && state != network.StateError {
		return
	}
	now := time.Now()
	if as.retryAt.IsZero() {
		log.Printf("[arena] connection %s: %v, retrying in %s", state, as.netClient.LastError(), reconnectDelay)
		as.retryAt = now.Add(reconnectDelay)
		return
	}
	if now.Before(as.retryAt) {
		return
	}
	as.retryAt = time.Time{}
	as.netClient.Disconnect()
	as.netClient.Connect(cfg.Net.Address, cfg.Net.Version, cfg.Net.PlayerName)
}

func (as *ArenaScene) join(s network.Session) {
	w, h := s.SpaceWidth, s.SpaceHeight
	if w <= 0 || h <= 0 {
		w, h = cfg.Space.Width, cfg.Space.Height
	}
	// A reconnect may land on a server with a different space.
	as.renderer.SetSpace(w, h)
	as.mirror.SetLocalPlayer(s.PlayerID)
	as.mirror.SetTickRate(s.TickRate)

	// Assets are loaded before the arena exists, so the renderer is ready.
	as.renderer.OnReady(func() {
		if err := as.netClient.SendMessage(messages.ClientReady{PlayerID: s.PlayerID}); err != nil {
			log.Printf("[arena] failed to send ready: %v", err)
		}
	})
}

func (as *ArenaScene) anyInput() bool {
	as.keys = inpututil.AppendJustPressedKeys(as.keys[:0])
	if len(as.keys) > 0 {
		return true
	}
	as.touches = inpututil.AppendJustPressedTouchIDs(as.touches[:0])
	if len(as.touches) > 0 {
		return true
	}
	return inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
}

func (as *ArenaScene) Resize(width, height int) {
	as.renderer.Resize(float64(width), float64(height))
}

func (as *ArenaScene) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)

	if as.mirror == nil {
		return
	}

	now := time.Now()
	as.renderer.Draw(now.Sub(as.start), now.Sub(as.lastDraw))
	as.lastDraw = now

	as.gfx.Present(screen)
	as.hud.Draw(screen)

	if cfg.Debug.ShowStats {
		as.drawDebug(screen)
	}
}

// drawDebug outlines entity boxes and prints the draw counters.
func (as *ArenaScene) drawDebug(screen *ebiten.Image) {
	vp, ok := as.renderer.Viewport()
	if !ok {
		return
	}
	as.mirror.Each(func(e sim.Entity) {
		x, y := vp.ToScreen(e.Position.X, e.Position.Y, e.Height)
		w, h := vp.Size(e.Width, e.Height)
		vector.StrokeRect(screen, float32(x), float32(y), float32(w), float32(h), 1, as.debugBorder, false)
	})

	stats := as.renderer.Stats()
	msg := fmt.Sprintf("tick %d  drawn %d  skipped %d  nodes %d  scale %.2f",
		stats.Ticks, stats.Drawn, stats.Skipped, as.renderer.Registry().Len(), vp.PixelsPerUnit)
	op := &text.DrawOptions{}
	op.GeoM.Translate(8, float64(screen.Bounds().Dy())-24)
	op.ColorScale.ScaleWithColor(as.debugBorder)
	text.Draw(screen, msg, fonts.Small.Face(), op)
}
