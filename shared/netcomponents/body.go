package netcomponents

import "github.com/yohamta/donburi"

// NetBodyData is the simulation-space box of an entity. X, Y is the
// bottom-left corner; Y grows upwards.
type NetBodyData struct {
	X, Y float64
	W, H float64
}

var NetBody = donburi.NewComponentType[NetBodyData]()

// LerpNetBody interpolates the position between two bodies
func LerpNetBody(from, to NetBodyData, t float64) *NetBodyData {
	return &NetBodyData{
		X: from.X + (to.X-from.X)*t,
		Y: from.Y + (to.Y-from.Y)*t,
		W: to.W,
		H: to.H,
	}
}
