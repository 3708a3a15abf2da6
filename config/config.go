package config

import (
	"errors"
	"image/color"
	"io/fs"
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config holds general window configuration
type Config struct {
	Width  int
	Height int
	Title  string
}

// SpaceConfig is the simulation space used until the server reports its own.
type SpaceConfig struct {
	Width  float64
	Height float64
}

// RenderConfig contains the tuning values of the entity renderer
type RenderConfig struct {
	// Fighter sprites are wider than their collision box so the weapon fits.
	FighterWidthScale float64
	FighterAnchorX    float64
	FighterAnchorY    float64

	// Progress ticks per animation frame
	ProgressPerFrame float64

	// Atlas used for fighter animation
	FighterAtlas    string
	PlatformTexture string
	Background      string
}

// NetConfig contains connection settings for the game server
type NetConfig struct {
	Address    string
	Version    string
	PlayerName string
}

// HUDConfig contains overlay text and colors
type HUDConfig struct {
	LivesColor        color.RGBA
	GameOverColor     color.RGBA
	InstructionsColor color.RGBA
	BannerFadeSeconds float32

	TitleSize  float64
	NormalSize float64
	SmallSize  float64

	Instructions map[string]string // keyed by environment class
	GameOverText string
}

// DebugConfig contains debug/testing options
type DebugConfig struct {
	ShowStats bool // Overlay entity and skip counters
}

// DefaultPlayerName is used when neither the environment nor saved settings
// name the player.
const DefaultPlayerName = "player"

// Global configuration instances
var C *Config
var Space SpaceConfig
var Render RenderConfig
var Net NetConfig
var HUD HUDConfig
var Debug DebugConfig

// Shared RGBA color constants
var (
	White        = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	BrightYellow = color.RGBA{R: 255, G: 255, B: 100, A: 255}
	LightRed     = color.RGBA{R: 255, G: 60, B: 60, A: 255}
	LightGreen   = color.RGBA{R: 100, G: 255, B: 100, A: 255}
)

func init() {
	loadEnvFile()

	C = &Config{
		Width:  1024,
		Height: 600,
		Title:  "Brawler",
	}

	Space = SpaceConfig{
		Width:  80,
		Height: 45,
	}

	Render = RenderConfig{
		FighterWidthScale: 1.6,
		FighterAnchorX:    0.2,
		FighterAnchorY:    0.0,
		ProgressPerFrame:  10,
		FighterAtlas:      "meleeSheet",
		PlatformTexture:   "platform",
		Background:        "background",
	}

	Net = NetConfig{
		Address:    envOr("BRAWLER_SERVER", "localhost:7373"),
		Version:    "0.1.0",
		PlayerName: envOr("BRAWLER_NAME", DefaultPlayerName),
	}

	HUD = HUDConfig{
		LivesColor:        White,
		GameOverColor:     LightRed,
		InstructionsColor: BrightYellow,
		BannerFadeSeconds: 0.6,
		TitleSize:         32,
		NormalSize:        16,
		SmallSize:         12,
		Instructions: map[string]string{
			"touch": "Tap left or right to move, tap above to jump",
			"mac":   "Arrows to move, Up to jump, Space to attack",
			"pc":    "Arrows to move, Up to jump, Space to attack",
			"":      "Arrows to move, Up to jump, Space to attack",
		},
		GameOverText: "GAME OVER",
	}

	Debug = DebugConfig{
		ShowStats: os.Getenv("BRAWLER_DEBUG") != "",
	}

	initAssets()
}

// loadEnvFile reads BRAWLER_* overrides from a .env file in the working
// directory. Variables already set in the environment win.
func loadEnvFile() {
	err := godotenv.Load()
	if err == nil {
		log.Println("[config] loaded .env")
		return
	}
	if !errors.Is(err, fs.ErrNotExist) {
		log.Printf("[config] ignoring .env: %v", err)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
