// Package netsync mirrors server snapshots into a local donburi world and
// reports entity lifecycle changes to a sim.Listener.
package netsync

import (
	"time"

	"github.com/automoto/brawler/shared/netcomponents"
	"github.com/automoto/brawler/sim"
	"github.com/leap-fish/necs/esync"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/math"
	"github.com/yohamta/donburi/filter"
)

// EntityState is one decoded entity of a snapshot.
type EntityState struct {
	ID         esync.NetworkId
	Components []any
}

// Decode deserializes a raw snapshot. Components that fail to decode are
// dropped.
func Decode(snapshot esync.WorldSnapshot) []EntityState {
	states := make([]EntityState, 0, len(snapshot))
	for _, ent := range snapshot {
		st := EntityState{ID: ent.Id}
		for _, componentBytes := range ent.State {
			instance, err := esync.Mapper.Deserialize(componentBytes)
			if err != nil {
				continue
			}
			st.Components = append(st.Components, instance)
		}
		states = append(states, st)
	}
	return states
}

// bodyInterpData eases the displayed body from the previous snapshot
// towards the latest one.
type bodyInterpData struct {
	Prev, Target netcomponents.NetBodyData
	T            float64
}

var bodyInterp = donburi.NewComponentType[bodyInterpData]()

// Mirror holds the latest known state of every networked entity. It
// implements sim.World.
type Mirror struct {
	world       donburi.World
	listener    sim.Listener
	localPlayer int
	tickRate    int

	present   map[esync.NetworkId]bool
	announced map[esync.NetworkId]bool
	removed   []donburi.Entity
}

func NewMirror(listener sim.Listener) *Mirror {
	return &Mirror{
		world:     donburi.NewWorld(),
		listener:  listener,
		present:   make(map[esync.NetworkId]bool),
		announced: make(map[esync.NetworkId]bool),
	}
}

// SetLocalPlayer sets the player ID LocalPlayer looks for.
func (m *Mirror) SetLocalPlayer(playerID int) {
	m.localPlayer = playerID
}

// SetTickRate sets how many snapshots per second the server sends. Bodies of
// known entities are interpolated over one tick; zero snaps them.
func (m *Mirror) SetTickRate(rate int) {
	m.tickRate = rate
}

// Advance moves every interpolated body dt further towards its latest
// snapshot.
func (m *Mirror) Advance(dt time.Duration) {
	if m.tickRate <= 0 {
		return
	}
	step := dt.Seconds() * float64(m.tickRate)
	bodyInterpQuery.Each(m.world, func(entry *donburi.Entry) {
		in := bodyInterp.Get(entry)
		if in.T >= 1 {
			return
		}
		in.T = min(in.T+step, 1)
		netcomponents.NetBody.SetValue(entry, *netcomponents.LerpNetBody(in.Prev, in.Target, in.T))
	})
}

// Apply replaces the mirrored state with a full snapshot. An entity is
// announced once all of its components are applied and its kind is known;
// entities missing from the snapshot are removed and announced.
func (m *Mirror) Apply(states []EntityState) {
	clear(m.present)
	m.removed = m.removed[:0]

	for _, st := range states {
		m.present[st.ID] = true

		entity := esync.FindByNetworkId(m.world, st.ID)
		fresh := !m.world.Valid(entity)
		if fresh {
			entity = m.world.Create(componentTypesFromInstances(st.Components)...)
			entry := m.world.Entry(entity)
			entry.AddComponent(esync.NetworkIdComponent)
			esync.NetworkIdComponent.SetValue(entry, st.ID)
		}

		entry := m.world.Entry(entity)
		for _, data := range st.Components {
			if body, ok := data.(netcomponents.NetBodyData); ok && !fresh && m.interpolates(entry) {
				m.retarget(entry, body)
				continue
			}
			applyComponentToEntry(entry, data)
		}
	}

	esync.NetworkEntityQuery.Each(m.world, func(entry *donburi.Entry) {
		id := esync.GetNetworkId(entry)
		if id == nil || !m.present[*id] {
			m.removed = append(m.removed, entry.Entity())
		}
	})

	for _, entity := range m.removed {
		if id := esync.GetNetworkId(m.world.Entry(entity)); id != nil {
			if m.announced[*id] && m.listener != nil {
				m.listener.EntityRemoved(sim.EntityID(*id))
			}
			delete(m.announced, *id)
		}
		m.world.Remove(entity)
	}

	for _, st := range states {
		if m.announced[st.ID] {
			continue
		}
		entity := esync.FindByNetworkId(m.world, st.ID)
		if !m.world.Valid(entity) {
			continue
		}
		e, ok := toEntity(m.world.Entry(entity))
		if !ok {
			continue
		}
		m.announced[st.ID] = true
		if m.listener != nil {
			m.listener.EntityAdded(e)
		}
	}
}

func (m *Mirror) interpolates(entry *donburi.Entry) bool {
	return m.tickRate > 0 && entry.HasComponent(netcomponents.NetBody)
}

// retarget starts easing from the currently displayed body to target. Size
// changes apply at once.
func (m *Mirror) retarget(entry *donburi.Entry, target netcomponents.NetBodyData) {
	prev := *netcomponents.NetBody.Get(entry)
	if !entry.HasComponent(bodyInterp) {
		entry.AddComponent(bodyInterp)
	}
	bodyInterp.SetValue(entry, bodyInterpData{Prev: prev, Target: target})
	netcomponents.NetBody.SetValue(entry, *netcomponents.LerpNetBody(prev, target, 0))
}

// Each calls fn for every mirrored entity with a known kind.
func (m *Mirror) Each(fn func(sim.Entity)) {
	esync.NetworkEntityQuery.Each(m.world, func(entry *donburi.Entry) {
		if e, ok := toEntity(entry); ok {
			fn(e)
		}
	})
}

// LocalPlayer returns the fighter owned by the local player.
func (m *Mirror) LocalPlayer() (sim.Entity, bool) {
	var (
		found  sim.Entity
		exists bool
	)
	if m.localPlayer == 0 {
		return found, false
	}
	esync.NetworkEntityQuery.Each(m.world, func(entry *donburi.Entry) {
		if exists || !entry.HasComponent(netcomponents.NetFighter) {
			return
		}
		if netcomponents.NetFighter.Get(entry).PlayerID != m.localPlayer {
			return
		}
		found, exists = toEntity(entry)
	})
	return found, exists
}

// Len returns the number of mirrored entities.
func (m *Mirror) Len() int {
	return esync.NetworkEntityQuery.Count(m.world)
}

func toEntity(entry *donburi.Entry) (sim.Entity, bool) {
	id := esync.GetNetworkId(entry)
	if id == nil || !entry.HasComponent(netcomponents.NetBody) {
		return sim.Entity{}, false
	}
	body := netcomponents.NetBody.Get(entry)
	e := sim.Entity{
		ID:       sim.EntityID(*id),
		Position: math.Vec2{X: body.X, Y: body.Y},
		Width:    body.W,
		Height:   body.H,
	}
	switch {
	case entry.HasComponent(netcomponents.NetFighter):
		f := netcomponents.NetFighter.Get(entry)
		e.Kind = sim.KindFighter
		e.Progress = f.Progress
		e.PlayerID = f.PlayerID
		e.Lives = f.Lives
	case entry.HasComponent(netcomponents.NetPlatform):
		e.Kind = sim.KindPlatform
	default:
		return sim.Entity{}, false
	}
	return e, true
}

func componentTypesFromInstances(components []any) []donburi.IComponentType {
	var ctypes []donburi.IComponentType
	for _, data := range components {
		switch data.(type) {
		case netcomponents.NetBodyData:
			ctypes = append(ctypes, netcomponents.NetBody)
		case netcomponents.NetFighterData:
			ctypes = append(ctypes, netcomponents.NetFighter)
		case netcomponents.NetPlatformData:
			ctypes = append(ctypes, netcomponents.NetPlatform)
		}
	}
	return ctypes
}

func applyComponentToEntry(entry *donburi.Entry, data any) {
	switch v := data.(type) {
	case netcomponents.NetBodyData:
		if !entry.HasComponent(netcomponents.NetBody) {
			entry.AddComponent(netcomponents.NetBody)
		}
		netcomponents.NetBody.SetValue(entry, v)
	case netcomponents.NetFighterData:
		if !entry.HasComponent(netcomponents.NetFighter) {
			entry.AddComponent(netcomponents.NetFighter)
		}
		netcomponents.NetFighter.SetValue(entry, v)
	case netcomponents.NetPlatformData:
		if !entry.HasComponent(netcomponents.NetPlatform) {
			entry.AddComponent(netcomponents.NetPlatform)
		}
	}
}

var bodyInterpQuery = donburi.NewQuery(filter.Contains(bodyInterp, netcomponents.NetBody))

var _ sim.World = (*Mirror)(nil)
