package render

import "github.com/automoto/brawler/sim"

// StatusView shows the local player's status.
type StatusView interface {
	SetLives(lives int)
	ShowGameOver()
}

// StatusReflector pushes lives changes of the local player to a StatusView
// and reveals the game-over banner once the player disappears.
type StatusReflector struct {
	view     StatusView
	lives    int
	observed bool
	gameOver bool
}

func NewStatusReflector(view StatusView) *StatusReflector {
	return &StatusReflector{view: view}
}

// Reflect compares the local player in world with the last observation.
func (s *StatusReflector) Reflect(world sim.World) {
	if world == nil || s.view == nil {
		return
	}
	player, ok := world.LocalPlayer()
	if !ok {
		if s.observed && !s.gameOver {
			s.gameOver = true
			s.view.ShowGameOver()
		}
		return
	}
	if s.observed && player.Lives == s.lives {
		return
	}
	s.lives = player.Lives
	s.observed = true
	s.view.SetLives(player.Lives)
}
