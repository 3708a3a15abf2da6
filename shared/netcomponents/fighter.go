package netcomponents

import "github.com/yohamta/donburi"

type NetFighterData struct {
	Progress float64 // Animation phase counter, increases monotonically
	PlayerID int     // Owning player, 0 for bots
	Lives    int
}

var NetFighter = donburi.NewComponentType[NetFighterData]()
