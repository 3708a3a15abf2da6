package main

import (
	"log"

	"github.com/automoto/brawler/config"
	"github.com/automoto/brawler/fonts"
	"github.com/automoto/brawler/scenes"
	"github.com/automoto/brawler/settings"
	"github.com/automoto/brawler/shared/protocol"
	"github.com/hajimehoshi/ebiten/v2"
)

type Scene interface {
	Update()
	Draw(screen *ebiten.Image)
}

type Game struct {
	width, height int
	scene         Scene
}

// ChangeScene switches to a new scene and hands it the current window size.
func (g *Game) ChangeScene(scene interface{}) {
	g.scene = scene.(Scene)
	if r, ok := g.scene.(scenes.Resizer); ok && g.width > 0 && g.height > 0 {
		r.Resize(g.width, g.height)
	}
}

func NewGame() *Game {
	if err := fonts.LoadDefaults(config.HUD.TitleSize, config.HUD.NormalSize, config.HUD.SmallSize); err != nil {
		log.Fatalf("Failed to load fonts: %v", err)
	}

	g := &Game{}
	g.scene = scenes.NewLoadingScene(g)
	return g
}

func (g *Game) Update() error {
	g.scene.Update()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
}

// Layout follows the window size so the viewport can refit on every change.
func (g *Game) Layout(width, height int) (int, int) {
	if width != g.width || height != g.height {
		g.width, g.height = width, height
		if r, ok := g.scene.(scenes.Resizer); ok {
			r.Resize(width, height)
		}
	}
	return width, height
}

func main() {
	// Register network components for client-side deserialization
	if err := protocol.RegisterComponents(); err != nil {
		log.Fatalf("Failed to register network components: %v", err)
	}

	ebiten.SetWindowTitle(config.C.Title)
	ebiten.SetWindowSize(config.C.Width, config.C.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	// Initialize persistence and load saved settings
	if err := settings.Init("brawler"); err != nil {
		log.Printf("Warning: Could not initialize persistence: %v", err)
	}
	saved, err := settings.Load()
	if err == nil && saved != nil {
		applySettings(saved)
	}

	if err := ebiten.RunGame(NewGame()); err != nil {
		log.Fatal(err)
	}

	w, h := ebiten.WindowSize()
	if err := settings.Save(&settings.SavedSettings{
		Fullscreen:   ebiten.IsFullscreen(),
		WindowWidth:  w,
		WindowHeight: h,
		PlayerName:   config.Net.PlayerName,
	}); err != nil {
		log.Printf("Warning: Could not save settings: %v", err)
	}
}

func applySettings(saved *settings.SavedSettings) {
	ebiten.SetFullscreen(saved.Fullscreen)
	if !saved.Fullscreen && saved.WindowWidth > 0 && saved.WindowHeight > 0 {
		ebiten.SetWindowSize(saved.WindowWidth, saved.WindowHeight)
	}
	// Environment wins over the saved name.
	if saved.PlayerName != "" && config.Net.PlayerName == config.DefaultPlayerName {
		config.Net.PlayerName = saved.PlayerName
	}
}
