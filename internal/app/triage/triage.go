// Package triage ranks candidate recipients of an action by urgency,
// role, and spatial clustering. Every function is a pure pass over this
// tick's views; nothing is cached across ticks.
package triage

import (
	"math"

	"wardmend/internal/app/stateview"
	"wardmend/internal/domain/combat"
)

// LowestHealth returns the alive ally with the smallest predicted-health
// fraction within maxRange of origin. Candidates whose predicted missing
// health is below minMissing are skipped so a heal is never committed to
// a target it would overheal. Empty and all-full-health sets yield no
// result.
func LowestHealth(views []stateview.View, origin combat.Position, maxRange float64, minMissing int) (stateview.View, bool) {
	rangeSq := maxRange * maxRange
	var best stateview.View
	found := false
	for _, v := range views {
		if !v.Alive || v.IsEnemy {
			continue
		}
		if origin.DistSq(v.Position) > rangeSq {
			continue
		}
		if v.PredictedFraction >= 1 {
			continue
		}
		if minMissing > 0 && v.PredictedMissingHP() < minMissing {
			continue
		}
		if !found || v.PredictedFraction < best.PredictedFraction {
			best = v
			found = true
		}
	}
	return best, found
}

// FindTank returns the first alive non-self ally tagged as a tank. When
// no role-tagged tank exists it falls back to whoever currently holds
// hostile aggression, which keeps roleless and NPC-filled parties working.
func FindTank(views []stateview.View) (stateview.View, bool) {
	for _, v := range views {
		if v.Alive && !v.IsSelf && !v.IsEnemy && v.Role == combat.RoleTank {
			return v, true
		}
	}
	for _, v := range views {
		if v.Alive && !v.IsSelf && !v.IsEnemy && v.HasAggro {
			return v, true
		}
	}
	return stateview.View{}, false
}

// MostEndangered scores every in-range, alive, injured ally with a
// weighted sum of normalized urgency factors and returns the maximum.
// Normalization denominators are gathered in the same pass over the
// input. Ties resolve to the lower predicted-health fraction, then to
// input order, so identical inputs always give identical answers.
func MostEndangered(views []stateview.View, origin combat.Position, maxRange float64, w combat.TriageWeights) (stateview.View, bool) {
	rangeSq := maxRange * maxRange
	candidates := make([]stateview.View, 0, len(views))
	maxRate := 0.0
	maxAccel := 0.0
	for _, v := range views {
		if !v.Alive || v.IsEnemy {
			continue
		}
		if origin.DistSq(v.Position) > rangeSq {
			continue
		}
		if v.PredictedFraction >= 1 {
			continue
		}
		if v.DamageRate > maxRate {
			maxRate = v.DamageRate
		}
		if v.DamageAccel > maxAccel {
			maxAccel = v.DamageAccel
		}
		candidates = append(candidates, v)
	}
	if len(candidates) == 0 {
		return stateview.View{}, false
	}

	var best stateview.View
	bestScore := math.Inf(-1)
	found := false
	for _, v := range candidates {
		score := scoreCandidate(v, w, maxRate, maxAccel)
		better := score > bestScore ||
			(score == bestScore && v.PredictedFraction < best.PredictedFraction)
		if !found || better {
			best = v
			bestScore = score
			found = true
		}
	}
	return best, true
}

func scoreCandidate(v stateview.View, w combat.TriageWeights, maxRate, maxAccel float64) float64 {
	score := w.MissingHealth * (1 - v.PredictedFraction)
	if maxRate > 0 {
		score += w.DamageRate * (v.DamageRate / maxRate)
	}
	if maxAccel > 0 && v.DamageAccel > 0 {
		score += w.Acceleration * (v.DamageAccel / maxAccel)
	}
	if v.Role == combat.RoleTank {
		score += w.TankBonus
	}
	if v.Role == combat.RoleHealer && !v.IsSelf {
		score += w.CoHealer
	}
	score += w.TimeToDeath * urgency(v.TimeToDeath)
	score -= w.Shield * v.ShieldFraction
	score -= w.Mitigation * v.MitigationFraction
	return score
}

// urgency maps time-to-death to (0,1]: 1 when death is imminent, falling
// toward 0 as the horizon recedes.
func urgency(timeToDeath float64) float64 {
	if math.IsInf(timeToDeath, 1) {
		return 0
	}
	if timeToDeath < 0 {
		timeToDeath = 0
	}
	return 1 / (1 + timeToDeath)
}

// BestClusterCenter treats every injured ally as a hypothetical effect
// center and returns the one covering the most injured allies within
// radius, with the covered count and member ids. The search stops early
// as soon as a center covers every injured ally, since no candidate can
// beat full coverage. No result is returned when fewer than minCount
// would be covered.
func BestClusterCenter(views []stateview.View, radius float64, minCount int) (stateview.View, int, []combat.EntityID, bool) {
	radiusSq := radius * radius
	injured := make([]stateview.View, 0, len(views))
	for _, v := range views {
		if v.Alive && !v.IsEnemy && v.PredictedFraction < 1 {
			injured = append(injured, v)
		}
	}
	if len(injured) == 0 {
		return stateview.View{}, 0, nil, false
	}

	var best stateview.View
	bestMembers := []combat.EntityID(nil)
	for _, center := range injured {
		members := make([]combat.EntityID, 0, len(injured))
		for _, v := range injured {
			if center.Position.DistSq(v.Position) <= radiusSq {
				members = append(members, v.ID)
			}
		}
		if len(members) > len(bestMembers) {
			best = center
			bestMembers = members
			if len(bestMembers) == len(injured) {
				break
			}
		}
	}
	if minCount > 0 && len(bestMembers) < minCount {
		return stateview.View{}, len(bestMembers), bestMembers, false
	}
	return best, len(bestMembers), bestMembers, true
}
