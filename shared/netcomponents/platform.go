package netcomponents

import "github.com/yohamta/donburi"

// NetPlatformData marks static level geometry.
type NetPlatformData struct{}

var NetPlatform = donburi.NewComponentType[NetPlatformData]()
