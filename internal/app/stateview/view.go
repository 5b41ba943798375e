package stateview

import (
	"math"

	"wardmend/internal/app/prediction"
	"wardmend/internal/domain/combat"
)

// View is one entity enriched with everything triage scores on: predicted
// health from the pending-heal ledger and damage estimates from observed
// history. Views are rebuilt every tick and never cached.
type View struct {
	combat.EntitySnapshot

	PredictedHP       int
	PredictedFraction float64
	DamageRate        float64
	DamageAccel       float64
	// TimeToDeath is predicted HP divided by the damage rate, +Inf when
	// nothing is hitting the entity.
	TimeToDeath float64
}

func (v View) PredictedMissingHP() int {
	missing := v.MaxHP - v.PredictedHP
	if missing < 0 {
		return 0
	}
	return missing
}

// BuildViews assembles this tick's views. The ledger must already be
// advanced and reconciled for the same snapshot set.
func BuildViews(entities []combat.EntitySnapshot, ledger *prediction.Ledger, est *DamageEstimator) []View {
	views := make([]View, 0, len(entities))
	for _, e := range entities {
		v := View{
			EntitySnapshot:    e,
			PredictedHP:       ledger.PredictedHP(e),
			PredictedFraction: ledger.PredictedFraction(e),
			DamageRate:        est.Rate(e.ID),
			DamageAccel:       est.Acceleration(e.ID),
		}
		if v.DamageRate > 0 {
			v.TimeToDeath = float64(v.PredictedHP) / v.DamageRate
		} else {
			v.TimeToDeath = math.Inf(1)
		}
		views = append(views, v)
	}
	return views
}

// Split divides views into self, party, and enemies, preserving input
// order within each group.
func Split(views []View) (self View, party []View, enemies []View) {
	for _, v := range views {
		switch {
		case v.IsSelf:
			self = v
			party = append(party, v)
		case v.IsEnemy:
			enemies = append(enemies, v)
		default:
			party = append(party, v)
		}
	}
	return self, party, enemies
}
