package prediction

import (
	"testing"

	"wardmend/internal/domain/combat"
)

func entity(id string, hp, maxHP int) combat.EntitySnapshot {
	return combat.EntitySnapshot{ID: combat.EntityID(id), HP: hp, MaxHP: maxHP, Alive: true}
}

func TestPredictedHP_AddsPendingAndClampsToMax(t *testing.T) {
	l := NewLedger(5)
	target := entity("tank-1", 7500, 8000)

	l.RegisterPendingHeal(target.ID, target.HP, 1000)
	if got := l.PredictedHP(target); got != 8000 {
		t.Fatalf("expected predicted hp clamped to max 8000, got=%d", got)
	}
}

// After registering a heal that covers the target's whole deficit, the
// target must read as full until reconciliation proves otherwise, so a
// second heal is never committed to it in the same tick.
func TestPredictedHP_NoOverhealDoubleCommit(t *testing.T) {
	l := NewLedger(5)
	target := entity("dps-1", 7500, 8000)

	l.RegisterPendingHeal(target.ID, target.HP, 500)
	if got := l.PredictedHP(target); got != 8000 {
		t.Fatalf("expected full predicted hp, got=%d", got)
	}
	if frac := l.PredictedFraction(target); frac < 1 {
		t.Fatalf("expected predicted fraction 1.0, got=%v", frac)
	}
}

func TestReconcile_PrunesLandedHeal(t *testing.T) {
	l := NewLedger(5)
	target := entity("tank-1", 5000, 8000)
	l.RegisterPendingHeal(target.ID, target.HP, 1000)

	landed := entity("tank-1", 6100, 8000)
	l.Reconcile(landed)

	if got := l.PendingFor(target.ID); got != 0 {
		t.Fatalf("expected landed heal pruned, pending=%d", got)
	}
	if got := l.PredictedHP(landed); got != 6100 {
		t.Fatalf("expected predicted to equal raw after landing, got=%d", got)
	}
}

func TestReconcile_KeepsUnlandedHeal(t *testing.T) {
	l := NewLedger(5)
	target := entity("tank-1", 5000, 8000)
	l.RegisterPendingHeal(target.ID, target.HP, 1000)

	// Raw dropped further: the heal has not landed yet.
	hurt := entity("tank-1", 4600, 8000)
	l.Reconcile(hurt)

	if got := l.PredictedHP(hurt); got != 5600 {
		t.Fatalf("expected 4600+1000 predicted, got=%d", got)
	}
}

func TestReconcile_ExpiresStaleRecords(t *testing.T) {
	l := NewLedger(5)
	l.Advance(10)
	target := entity("dps-1", 4000, 8000)
	l.RegisterPendingHeal(target.ID, target.HP, 1000)

	l.Advance(15.5)
	l.Reconcile(target)

	if got := l.PredictedHP(target); got != 4000 {
		t.Fatalf("expected prediction reverted to raw after expiry, got=%d", got)
	}
}

func TestReconcile_DropsRecordsForDeadTarget(t *testing.T) {
	l := NewLedger(5)
	target := entity("dps-1", 2000, 8000)
	l.RegisterPendingHeal(target.ID, target.HP, 1000)

	dead := entity("dps-1", 0, 8000)
	dead.Alive = false
	l.Reconcile(dead)

	if got := l.PendingFor(target.ID); got != 0 {
		t.Fatalf("expected pending dropped on death, got=%d", got)
	}
}

func TestClearPending_RollsBackOptimisticRegistration(t *testing.T) {
	l := NewLedger(5)
	target := entity("tank-1", 5000, 8000)
	l.RegisterPendingHeal(target.ID, target.HP, 1000)

	l.ClearPending(target.ID)

	if got := l.PredictedHP(target); got != 5000 {
		t.Fatalf("expected raw value after rollback, got=%d", got)
	}
}

func TestRegisterPendingHeal_IgnoresNonPositiveAmount(t *testing.T) {
	l := NewLedger(5)
	target := entity("tank-1", 5000, 8000)
	l.RegisterPendingHeal(target.ID, target.HP, 0)

	if got := l.PendingFor(target.ID); got != 0 {
		t.Fatalf("expected no record for zero amount, got=%d", got)
	}
}
