package scenes

import (
	"runtime"

	"github.com/hajimehoshi/ebiten/v2"
)

// SceneChanger allows scenes to trigger transitions
type SceneChanger interface {
	ChangeScene(scene interface{})
}

// Resizer is implemented by scenes that react to window size changes.
type Resizer interface {
	Resize(width, height int)
}

// touchCapable reports whether the platform is driven by touch input.
func touchCapable() bool {
	switch runtime.GOOS {
	case "android", "ios":
		return true
	}
	return len(ebiten.AppendTouchIDs(nil)) > 0
}
