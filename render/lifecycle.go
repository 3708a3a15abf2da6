package render

import "log"

// Phase is the readiness state of the renderer.
type Phase int

const (
	PhaseLoading Phase = iota
	PhaseReady
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseReady:
		return "ready"
	case PhaseFailed:
		return "failed"
	}
	return "unknown"
}

// Lifecycle moves from Loading to either Ready or Failed exactly once.
type Lifecycle struct {
	phase   Phase
	err     error
	onReady []func()
}

func (l *Lifecycle) Phase() Phase {
	return l.phase
}

func (l *Lifecycle) Ready() bool {
	return l.phase == PhaseReady
}

// Err returns the load error once Failed.
func (l *Lifecycle) Err() error {
	return l.err
}

// OnReady registers fn to run on the transition to Ready. If already Ready,
// fn runs immediately.
func (l *Lifecycle) OnReady(fn func()) {
	if l.phase == PhaseReady {
		fn()
		return
	}
	l.onReady = append(l.onReady, fn)
}

func (l *Lifecycle) markReady() bool {
	if l.phase != PhaseLoading {
		return false
	}
	l.phase = PhaseReady
	hooks := l.onReady
	l.onReady = nil
	for _, fn := range hooks {
		fn()
	}
	return true
}

func (l *Lifecycle) fail(err error) bool {
	if l.phase != PhaseLoading {
		return false
	}
	log.Printf("[renderer] asset load failed: %v", err)
	l.phase = PhaseFailed
	l.err = err
	l.onReady = nil
	return true
}
