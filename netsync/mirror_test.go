package netsync

import (
	"slices"
	"testing"
	"time"

	"github.com/automoto/brawler/shared/netcomponents"
	"github.com/automoto/brawler/sim"
	"github.com/leap-fish/necs/esync"
)

type event struct {
	added bool
	ent   sim.Entity
	id    sim.EntityID
}

type recordingListener struct {
	events []event
}

func (l *recordingListener) EntityAdded(e sim.Entity) {
	l.events = append(l.events, event{added: true, ent: e, id: e.ID})
}

func (l *recordingListener) EntityRemoved(id sim.EntityID) {
	l.events = append(l.events, event{id: id})
}

func fighterState(id esync.NetworkId, x, y, progress float64, player, lives int) EntityState {
	return EntityState{ID: id, Components: []any{
		netcomponents.NetBodyData{X: x, Y: y, W: 2, H: 4},
		netcomponents.NetFighterData{Progress: progress, PlayerID: player, Lives: lives},
	}}
}

func platformState(id esync.NetworkId, x, y, w, h float64) EntityState {
	return EntityState{ID: id, Components: []any{
		netcomponents.NetBodyData{X: x, Y: y, W: w, H: h},
		netcomponents.NetPlatformData{},
	}}
}

func collect(m *Mirror) map[sim.EntityID]sim.Entity {
	out := map[sim.EntityID]sim.Entity{}
	m.Each(func(e sim.Entity) { out[e.ID] = e })
	return out
}

func TestMirror_AnnouncesNewEntitiesWithState(t *testing.T) {
	l := &recordingListener{}
	m := NewMirror(l)

	m.Apply([]EntityState{
		fighterState(5, 1, 2, 30, 1, 3),
		platformState(6, 0, 0, 80, 2),
	})

	if len(l.events) != 2 {
		t.Fatalf("expected 2 add events, got %d", len(l.events))
	}
	f := l.events[0]
	if !f.added || f.ent.Kind != sim.KindFighter || f.ent.Position.X != 1 || f.ent.Position.Y != 2 {
		t.Fatalf("unexpected fighter event %+v", f)
	}
	if f.ent.Progress != 30 || f.ent.Lives != 3 || f.ent.Height != 4 {
		t.Fatalf("fighter components not applied before announce: %+v", f.ent)
	}
	p := l.events[1]
	if !p.added || p.ent.Kind != sim.KindPlatform || p.ent.Width != 80 {
		t.Fatalf("unexpected platform event %+v", p)
	}
	if m.Len() != 2 {
		t.Fatalf("expected 2 mirrored entities, got %d", m.Len())
	}
}

func TestMirror_UpdatesWithoutReannouncing(t *testing.T) {
	l := &recordingListener{}
	m := NewMirror(l)
	m.Apply([]EntityState{fighterState(5, 1, 2, 30, 1, 3)})
	m.Apply([]EntityState{fighterState(5, 4, 0, 45, 1, 2)})

	if len(l.events) != 1 {
		t.Fatalf("expected a single add event, got %d", len(l.events))
	}
	got := collect(m)[5]
	if got.Position.X != 4 || got.Progress != 45 || got.Lives != 2 {
		t.Fatalf("expected updated state, got %+v", got)
	}
}

func TestMirror_RemovesVanishedEntities(t *testing.T) {
	l := &recordingListener{}
	m := NewMirror(l)
	m.Apply([]EntityState{fighterState(5, 0, 0, 0, 1, 3), platformState(6, 0, 0, 10, 1)})
	m.Apply([]EntityState{platformState(6, 0, 0, 10, 1)})

	last := l.events[len(l.events)-1]
	if last.added || last.id != 5 {
		t.Fatalf("expected removal of 5, got %+v", last)
	}
	if _, ok := collect(m)[5]; ok {
		t.Fatalf("entity 5 still enumerated")
	}

	// A returning ID is a new entity.
	m.Apply([]EntityState{fighterState(5, 0, 0, 0, 1, 3), platformState(6, 0, 0, 10, 1)})
	last = l.events[len(l.events)-1]
	if !last.added || last.id != 5 {
		t.Fatalf("expected 5 to be announced again, got %+v", last)
	}
}

func TestMirror_DelaysAnnounceUntilKindKnown(t *testing.T) {
	l := &recordingListener{}
	m := NewMirror(l)
	m.Apply([]EntityState{{ID: 9, Components: []any{netcomponents.NetBodyData{W: 1, H: 1}}}})
	if len(l.events) != 0 {
		t.Fatalf("entity without kind must not be announced")
	}
	if len(collect(m)) != 0 {
		t.Fatalf("entity without kind must not be enumerated")
	}

	m.Apply([]EntityState{platformState(9, 0, 0, 1, 1)})
	if len(l.events) != 1 || !l.events[0].added {
		t.Fatalf("expected announce once kind arrives, got %+v", l.events)
	}

	// Never announced, so never removed.
	m.Apply([]EntityState{{ID: 10, Components: []any{netcomponents.NetBodyData{}}}})
	m.Apply(nil)
	var removed []sim.EntityID
	for _, e := range l.events {
		if !e.added {
			removed = append(removed, e.id)
		}
	}
	if !slices.Equal(removed, []sim.EntityID{9}) {
		t.Fatalf("expected only 9 removed, got %v", removed)
	}
}

func TestMirror_LocalPlayer(t *testing.T) {
	m := NewMirror(nil)
	m.Apply([]EntityState{
		fighterState(1, 0, 0, 0, 7, 3),
		fighterState(2, 0, 0, 0, 8, 1),
		platformState(3, 0, 0, 1, 1),
	})

	if _, ok := m.LocalPlayer(); ok {
		t.Fatalf("expected no local player before SetLocalPlayer")
	}
	m.SetLocalPlayer(8)
	p, ok := m.LocalPlayer()
	if !ok || p.ID != 2 || p.Lives != 1 {
		t.Fatalf("expected entity 2 as local player, got %+v (ok=%v)", p, ok)
	}

	m.Apply([]EntityState{fighterState(1, 0, 0, 0, 7, 3)})
	if _, ok := m.LocalPlayer(); ok {
		t.Fatalf("expected local player gone")
	}
}

func TestMirror_IgnoresUnknownComponents(t *testing.T) {
	l := &recordingListener{}
	m := NewMirror(l)
	st := platformState(4, 0, 0, 1, 1)
	st.Components = append(st.Components, "not a component", 42)
	m.Apply([]EntityState{st})
	if len(l.events) != 1 {
		t.Fatalf("expected platform announced despite unknown components")
	}
}

func TestMirror_InterpolatesBodiesBetweenSnapshots(t *testing.T) {
	m := NewMirror(nil)
	m.SetTickRate(10)

	m.Apply([]EntityState{platformState(7, 0, 0, 10, 2)})
	if got := collect(m)[7]; got.Position.X != 0 {
		t.Fatalf("expected new entity to snap to 0, got %v", got.Position.X)
	}

	m.Apply([]EntityState{platformState(7, 10, 4, 10, 6)})
	got := collect(m)[7]
	if got.Position.X != 0 || got.Position.Y != 0 {
		t.Fatalf("expected position to hold until advanced, got %+v", got.Position)
	}
	if got.Height != 6 {
		t.Fatalf("expected size change at once, got height %v", got.Height)
	}

	m.Advance(50 * time.Millisecond)
	if got := collect(m)[7]; got.Position.X != 5 || got.Position.Y != 2 {
		t.Fatalf("expected halfway at (5, 2), got %+v", got.Position)
	}

	m.Advance(100 * time.Millisecond)
	if got := collect(m)[7]; got.Position.X != 10 || got.Position.Y != 4 {
		t.Fatalf("expected clamp at target (10, 4), got %+v", got.Position)
	}
}

func TestMirror_RetargetsFromDisplayedPosition(t *testing.T) {
	m := NewMirror(nil)
	m.SetTickRate(10)
	m.Apply([]EntityState{platformState(7, 0, 0, 10, 2)})
	m.Apply([]EntityState{platformState(7, 10, 0, 10, 2)})
	m.Advance(50 * time.Millisecond)

	// A snapshot arriving mid-way eases on from where the body is drawn.
	m.Apply([]EntityState{platformState(7, 20, 0, 10, 2)})
	if got := collect(m)[7]; got.Position.X != 5 {
		t.Fatalf("expected to restart from 5, got %v", got.Position.X)
	}
	m.Advance(50 * time.Millisecond)
	if got := collect(m)[7]; got.Position.X != 12.5 {
		t.Fatalf("expected 12.5, got %v", got.Position.X)
	}
}

func TestMirror_ZeroTickRateSnaps(t *testing.T) {
	m := NewMirror(nil)
	m.Apply([]EntityState{platformState(7, 0, 0, 10, 2)})
	m.Apply([]EntityState{platformState(7, 10, 0, 10, 2)})
	m.Advance(time.Second)

	if got := collect(m)[7]; got.Position.X != 10 {
		t.Fatalf("expected snap to 10, got %v", got.Position.X)
	}
}
