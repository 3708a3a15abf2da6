package config

// AtlasDef describes an animation atlas stored as a horizontal strip of
// equally sized frames.
type AtlasDef struct {
	FrameWidth  int
	FrameHeight int
	First       int
	Last        int
	Step        int
}

// AssetsConfig maps logical asset names to files below Root.
type AssetsConfig struct {
	Root    string
	Paths   map[string]string
	Atlases map[string]AtlasDef
}

var Assets AssetsConfig

func initAssets() {
	Assets = AssetsConfig{
		Root: envOr("BRAWLER_ASSETS", "assets/data"),
		Paths: map[string]string{
			"background": "deserttileset/png/BG.png",
			"fighter":    "adventure_girl/png/Idle (1).png",
			"platform":   "deserttileset/png/Tile/2.png",
			"jumpSheet":  "adventure_girl/png/Jump.png",
			"idleSheet":  "adventure_girl/png/Idle.png",
			"meleeSheet": "adventure_girl/png/Melee.png",
		},
		// Sheets are exported from the adventure_girl pack at 641x542 per frame.
		Atlases: map[string]AtlasDef{
			"jumpSheet":  {FrameWidth: 641, FrameHeight: 542, First: 0, Last: 9, Step: 1},
			"idleSheet":  {FrameWidth: 641, FrameHeight: 542, First: 0, Last: 9, Step: 1},
			"meleeSheet": {FrameWidth: 641, FrameHeight: 542, First: 0, Last: 6, Step: 1},
		},
	}
}
