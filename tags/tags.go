package tags

import "github.com/yohamta/donburi"

var (
	Fighter  = donburi.NewTag().SetName("Fighter")
	Platform = donburi.NewTag().SetName("Platform")
)
