package hud

import (
	"image/color"

	"github.com/automoto/brawler/config"
	"github.com/automoto/brawler/fonts"
	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// HUD renders State with ebitenui. It satisfies render.StatusView.
type HUD struct {
	UI    *ebitenui.UI
	State *State

	livesText        *widget.Text
	instructionsText *widget.Text
	bannerText       *widget.Text

	titleFace  text.Face
	normalFace text.Face
	smallFace  text.Face
}

// New builds the overlay. Fonts must be loaded.
func New(env string) *HUD {
	h := &HUD{
		State:      NewState(config.HUD.Instructions, env),
		titleFace:  fonts.Title.Face(),
		normalFace: fonts.Bold.Face(),
		smallFace:  fonts.Small.Face(),
	}
	h.buildUI()
	h.sync()
	return h
}

func (h *HUD) buildUI() {
	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout(
			widget.AnchorLayoutOpts.Padding(widget.NewInsetsSimple(12)),
		)),
	)

	h.livesText = widget.NewText(
		widget.TextOpts.Text("", &h.normalFace, config.HUD.LivesColor),
		widget.TextOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionStart,
				VerticalPosition:   widget.AnchorLayoutPositionStart,
			}),
		),
	)
	root.AddChild(h.livesText)

	h.instructionsText = widget.NewText(
		widget.TextOpts.Text("", &h.smallFace, config.HUD.InstructionsColor),
		widget.TextOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionCenter,
				VerticalPosition:   widget.AnchorLayoutPositionEnd,
			}),
		),
	)
	root.AddChild(h.instructionsText)

	h.bannerText = widget.NewText(
		widget.TextOpts.Text("", &h.titleFace, config.HUD.GameOverColor),
		widget.TextOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionCenter,
				VerticalPosition:   widget.AnchorLayoutPositionCenter,
			}),
		),
	)
	root.AddChild(h.bannerText)

	h.UI = &ebitenui.UI{
		Container: root,
	}
}

func (h *HUD) SetLives(lives int) {
	h.State.SetLives(lives)
}

func (h *HUD) ShowGameOver() {
	h.State.ShowGameOver(config.HUD.BannerFadeSeconds)
}

// SetEnvironment switches the instructions to the given class.
func (h *HUD) SetEnvironment(env string) {
	h.State.SetEnvironment(config.HUD.Instructions, env)
}

func (h *HUD) HideInstructions() {
	h.State.HideInstructions()
}

// Update advances animations and the widget tree.
func (h *HUD) Update() {
	h.State.Update(float32(1.0 / float64(ebiten.TPS())))
	h.sync()
	h.UI.Update()
}

func (h *HUD) Draw(screen *ebiten.Image) {
	h.UI.Draw(screen)
}

// sync copies State into the widgets.
func (h *HUD) sync() {
	h.livesText.Label = h.State.LivesText

	h.instructionsText.Label = ""
	if h.State.InstructionsVisible {
		h.instructionsText.Label = h.State.Instructions
	}

	h.bannerText.Label = ""
	if h.State.GameOver {
		h.bannerText.Label = config.HUD.GameOverText
		c := config.HUD.GameOverColor
		h.bannerText.SetColor(color.RGBA{
			R: uint8(float32(c.R) * h.State.BannerAlpha),
			G: uint8(float32(c.G) * h.State.BannerAlpha),
			B: uint8(float32(c.B) * h.State.BannerAlpha),
			A: uint8(float32(c.A) * h.State.BannerAlpha),
		})
	}
}
