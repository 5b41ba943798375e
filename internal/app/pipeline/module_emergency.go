package pipeline

import (
	"wardmend/internal/app/triage"
	"wardmend/internal/domain/combat"
)

const ModuleEmergency = "emergency"

// emergencyCommit answers a single ally in immediate danger with the
// strongest single-target response. The endangered pick uses the full
// weighted triage score, not just current health, so a tank eating a
// ramping hit wins over a flat-health bystander.
func emergencyCommit(ctx *Context) (Proposal, bool) {
	if !ctx.Settings.ModuleEnabled(ModuleEmergency) {
		return Proposal{}, false
	}
	def, ok := ctx.resolveAction(ctx.Profile.EmergencyAction)
	if !ok {
		return Proposal{}, false
	}
	if !ctx.actionUsable(def) || !ctx.canIssue(def) {
		return Proposal{}, false
	}

	target, ok := triage.MostEndangered(ctx.Party, ctx.Self.Position, ctx.Profile.HealRange, ctx.Profile.Weights)
	if !ok {
		return Proposal{}, false
	}
	if target.PredictedFraction >= ctx.Settings.EmergencyHPThreshold {
		return Proposal{}, false
	}
	return Proposal{
		Action:      def.ID,
		Def:         def,
		TargetID:    target.ID,
		HealTargets: []combat.EntityID{target.ID},
	}, true
}

func emergencyModule() Module {
	return Module{Priority: PriorityEmergency, Name: ModuleEmergency, TryCommit: emergencyCommit}
}
