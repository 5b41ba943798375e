package timing

import "wardmend/internal/domain/combat"

// Phase is the current position in the primary-action cycle. Exactly one
// phase is active at a time; transitions are driven only by observed
// elapsed-time inputs, never by module decisions.
type Phase int

const (
	PhaseReady Phase = iota
	PhaseRolling
	PhaseWeaveWindow
	PhaseCasting
	PhaseLocked
)

func (p Phase) String() string {
	switch p {
	case PhaseReady:
		return "READY"
	case PhaseRolling:
		return "ROLLING"
	case PhaseWeaveWindow:
		return "WEAVE_WINDOW"
	case PhaseCasting:
		return "CASTING"
	case PhaseLocked:
		return "LOCKED"
	default:
		return "UNKNOWN"
	}
}

type Config struct {
	// WeaveLock is the animation lock one secondary action costs.
	WeaveLock float64
	// Buffer is the safety margin kept at the end of the cycle so a weave
	// never delays the next primary action.
	Buffer float64
	// MaxWeaves caps secondary actions per cycle.
	MaxWeaves int
}

func DefaultConfig() Config {
	return Config{
		WeaveLock: 0.6,
		Buffer:    0.1,
		MaxWeaves: 2,
	}
}

// Machine tracks the primary-action cooldown cycle and animation lock.
// One instance per agent; it is fed one TimingSample per tick.
type Machine struct {
	cfg Config

	phase          Phase
	casting        bool
	cycleTotal     float64
	cycleRemaining float64
	lockRemaining  float64
	weavesUsed     int
}

func NewMachine(cfg Config) *Machine {
	if cfg.WeaveLock <= 0 {
		cfg.WeaveLock = DefaultConfig().WeaveLock
	}
	if cfg.MaxWeaves <= 0 {
		cfg.MaxWeaves = DefaultConfig().MaxWeaves
	}
	return &Machine{cfg: cfg, phase: PhaseReady}
}

// Observe folds one raw timing sample into the machine. An invalid sample
// (no timing data, e.g. out of combat) resets to Ready with zero
// remaining: callers must treat that as safe to act.
func (m *Machine) Observe(s combat.TimingSample) {
	if !s.Valid {
		m.casting = false
		m.cycleTotal = 0
		m.cycleRemaining = 0
		m.lockRemaining = 0
		m.weavesUsed = 0
		m.phase = PhaseReady
		return
	}

	remaining := s.CycleTotal - s.CycleElapsed
	if remaining < 0 {
		remaining = 0
	}
	// A jump upward in remaining time means a new primary action started
	// a fresh cycle; the weave budget resets with it.
	if remaining > m.cycleRemaining+1e-9 || remaining == 0 {
		m.weavesUsed = 0
	}

	m.casting = s.IsCasting
	m.cycleTotal = s.CycleTotal
	m.cycleRemaining = remaining
	m.lockRemaining = s.LockRemaining
	if m.lockRemaining < 0 {
		m.lockRemaining = 0
	}
	m.phase = m.derivePhase()
}

func (m *Machine) derivePhase() Phase {
	switch {
	case m.casting:
		return PhaseCasting
	case m.cycleRemaining <= 0:
		return PhaseReady
	case m.lockRemaining > m.cfg.Buffer:
		return PhaseLocked
	case m.weaveBudget() > m.weavesUsed:
		return PhaseWeaveWindow
	default:
		return PhaseRolling
	}
}

// weaveBudget is how many secondary actions still fit in this cycle
// without pushing the next primary action back.
func (m *Machine) weaveBudget() int {
	room := m.cycleRemaining - m.cfg.Buffer
	if room <= 0 {
		return 0
	}
	budget := int(room / m.cfg.WeaveLock)
	if budget > m.cfg.MaxWeaves {
		budget = m.cfg.MaxWeaves
	}
	return budget
}

func (m *Machine) Phase() Phase            { return m.phase }
func (m *Machine) CycleRemaining() float64 { return m.cycleRemaining }
func (m *Machine) LockRemaining() float64  { return m.lockRemaining }
func (m *Machine) WeavesUsed() int         { return m.weavesUsed }

func (m *Machine) CanIssuePrimary() bool {
	return m.phase == PhaseReady
}

func (m *Machine) CanIssueSecondary() bool {
	if m.casting {
		return false
	}
	if m.lockRemaining > m.cfg.Buffer {
		return false
	}
	return m.weavesUsed < m.weaveBudget()
}

// WouldClip reports whether issuing a secondary action with the given lock
// now would spill past the current cycle and delay the next primary
// action. Callers defer the action when true.
func (m *Machine) WouldClip(lock float64) bool {
	if m.cycleRemaining <= 0 {
		return false
	}
	return m.lockRemaining+lock > m.cycleRemaining
}

// NotePrimaryIssued records a successful primary action: the cycle
// restarts and the weave budget resets.
func (m *Machine) NotePrimaryIssued() {
	if m.cycleTotal > 0 {
		m.cycleRemaining = m.cycleTotal
	}
	m.weavesUsed = 0
	m.phase = m.derivePhase()
}

// NoteSecondaryIssued records a successful secondary action and its
// animation lock.
func (m *Machine) NoteSecondaryIssued(lock float64) {
	m.weavesUsed++
	if lock <= 0 {
		lock = m.cfg.WeaveLock
	}
	m.lockRemaining = lock
	m.phase = m.derivePhase()
}
