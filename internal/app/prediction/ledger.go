package prediction

import "wardmend/internal/domain/combat"

// DefaultExpiry bounds how long a pending heal that never lands keeps
// inflating predictions (target died, a competing heal overwrote it).
const DefaultExpiry = 5.0

type pendingHeal struct {
	amount       int
	baseline     int
	registeredAt float64
}

// Ledger tracks, per entity, outstanding heals that were issued but have
// not yet been observed in raw health. Predicted health is raw health
// plus unexpired pending heals, clamped to max health. One instance per
// agent; never shared between agents.
type Ledger struct {
	expiry  float64
	now     float64
	pending map[combat.EntityID][]pendingHeal
}

func NewLedger(expiry float64) *Ledger {
	if expiry <= 0 {
		expiry = DefaultExpiry
	}
	return &Ledger{
		expiry:  expiry,
		pending: map[combat.EntityID][]pendingHeal{},
	}
}

// Advance moves the ledger clock to the given encounter time. Called once
// per tick before reconciliation.
func (l *Ledger) Advance(now float64) {
	l.now = now
}

func (l *Ledger) PredictedHP(e combat.EntitySnapshot) int {
	hp := e.HP + l.PendingFor(e.ID)
	if hp > e.MaxHP {
		hp = e.MaxHP
	}
	if hp < 0 {
		hp = 0
	}
	return hp
}

func (l *Ledger) PredictedFraction(e combat.EntitySnapshot) float64 {
	if e.MaxHP <= 0 {
		return 0
	}
	return float64(l.PredictedHP(e)) / float64(e.MaxHP)
}

// PendingFor sums the unexpired pending heal magnitudes for one entity.
func (l *Ledger) PendingFor(id combat.EntityID) int {
	total := 0
	for _, p := range l.pending[id] {
		if l.now-p.registeredAt <= l.expiry {
			total += p.amount
		}
	}
	return total
}

// RegisterPendingHeal records an issued heal. rawHP is the target's raw
// health at registration; reconciliation uses it to detect the landing.
func (l *Ledger) RegisterPendingHeal(id combat.EntityID, rawHP, amount int) {
	if amount <= 0 {
		return
	}
	l.pending[id] = append(l.pending[id], pendingHeal{
		amount:       amount,
		baseline:     rawHP,
		registeredAt: l.now,
	})
}

// ClearPending drops every record for one entity. Used when an action
// fails after optimistic registration.
func (l *Ledger) ClearPending(id combat.EntityID) {
	delete(l.pending, id)
}

// Reconcile folds a fresh raw observation into the ledger: records whose
// predicted landing the raw value has reached are pruned (the heal
// landed), and records older than the expiry window are pruned regardless.
func (l *Ledger) Reconcile(e combat.EntitySnapshot) {
	records := l.pending[e.ID]
	if len(records) == 0 {
		return
	}
	if !e.Alive {
		delete(l.pending, e.ID)
		return
	}
	kept := records[:0]
	for _, p := range records {
		if l.now-p.registeredAt > l.expiry {
			continue
		}
		if e.HP >= p.baseline+p.amount || e.HP >= e.MaxHP {
			continue
		}
		kept = append(kept, p)
	}
	if len(kept) == 0 {
		delete(l.pending, e.ID)
		return
	}
	l.pending[e.ID] = kept
}
