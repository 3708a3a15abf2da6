package protocol

import (
	"github.com/automoto/brawler/shared/netcomponents"
	"github.com/leap-fish/necs/esync"
)

// Sync ID constants - ID 1 is reserved by necs for NetworkId
const (
	SyncIDNetBody     uint = 10
	SyncIDNetFighter  uint = 11
	SyncIDNetPlatform uint = 12
)

// Interpolation IDs (uint8 for WithInterpFn)
const (
	InterpIDNetBody uint8 = 10
)

// RegisterComponents registers all network components with necs for serialization.
// This must be called by both server and client before any network operations.
func RegisterComponents() error {
	if err := esync.RegisterComponent(
		SyncIDNetBody,
		netcomponents.NetBodyData{},
		netcomponents.NetBody,
		esync.WithInterpFn(InterpIDNetBody, netcomponents.LerpNetBody),
	); err != nil {
		return err
	}

	// Progress and lives change discretely
	if err := esync.RegisterComponent(
		SyncIDNetFighter,
		netcomponents.NetFighterData{},
		netcomponents.NetFighter,
	); err != nil {
		return err
	}

	if err := esync.RegisterComponent(
		SyncIDNetPlatform,
		netcomponents.NetPlatformData{},
		netcomponents.NetPlatform,
	); err != nil {
		return err
	}

	return nil
}
