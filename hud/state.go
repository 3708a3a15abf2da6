// Package hud draws the text overlay: lives counter, control instructions
// and the game-over banner.
package hud

import (
	"fmt"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Environment classes used to pick the instructions text.
const (
	EnvTouch = "touch"
	EnvMac   = "mac"
	EnvPC    = "pc"
)

// Classify maps the running platform to an environment class. Touch wins
// over the operating system. Unknown systems get the empty class.
func Classify(goos string, touch bool) string {
	switch {
	case touch:
		return EnvTouch
	case goos == "darwin":
		return EnvMac
	case goos == "windows":
		return EnvPC
	}
	return ""
}

// State is the overlay content, independent of how it is drawn.
type State struct {
	LivesText           string
	Instructions        string
	InstructionsVisible bool
	GameOver            bool
	BannerAlpha         float32

	dismissed bool
	fade      *gween.Tween
}

// NewState returns a state showing instructions for the given class.
func NewState(instructions map[string]string, env string) *State {
	s := &State{}
	s.SetEnvironment(instructions, env)
	return s
}

// SetEnvironment picks the instructions for env, falling back to the
// empty class. Dismissed instructions stay hidden.
func (s *State) SetEnvironment(instructions map[string]string, env string) {
	text, ok := instructions[env]
	if !ok {
		text = instructions[""]
	}
	s.Instructions = text
	s.InstructionsVisible = text != "" && !s.dismissed
}

func (s *State) SetLives(lives int) {
	s.LivesText = fmt.Sprintf("Lives %d", lives)
}

// ShowGameOver reveals the banner, fading it in over fadeSeconds.
func (s *State) ShowGameOver(fadeSeconds float32) {
	if s.GameOver {
		return
	}
	s.GameOver = true
	if fadeSeconds <= 0 {
		s.BannerAlpha = 1
		return
	}
	s.fade = gween.New(0, 1, fadeSeconds, ease.OutQuad)
}

func (s *State) HideInstructions() {
	s.dismissed = true
	s.InstructionsVisible = false
}

// Update advances the banner fade by dt seconds.
func (s *State) Update(dt float32) {
	if s.fade == nil {
		return
	}
	alpha, done := s.fade.Update(dt)
	s.BannerAlpha = alpha
	if done {
		s.BannerAlpha = 1
		s.fade = nil
	}
}
