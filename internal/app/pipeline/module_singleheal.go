package pipeline

import (
	"wardmend/internal/app/triage"
	"wardmend/internal/domain/combat"
)

const ModuleSingleHeal = "single_heal"

// singleHealCommit tops up the lowest ally. The minimum-missing guard
// rides on predicted health, so a target already covered by an in-flight
// heal is skipped instead of double-committed.
func singleHealCommit(ctx *Context) (Proposal, bool) {
	if !ctx.Settings.ModuleEnabled(ModuleSingleHeal) {
		return Proposal{}, false
	}
	def, ok := ctx.resolveAction(ctx.Profile.SingleHealAction)
	if !ok {
		return Proposal{}, false
	}
	if !ctx.actionUsable(def) || !ctx.canIssue(def) {
		return Proposal{}, false
	}

	target, ok := triage.LowestHealth(ctx.Party, ctx.Self.Position, ctx.Profile.HealRange, def.Potency/2)
	if !ok || target.PredictedFraction >= ctx.Settings.SingleHealHPThreshold {
		return Proposal{}, false
	}
	return Proposal{
		Action:      def.ID,
		Def:         def,
		TargetID:    target.ID,
		HealTargets: []combat.EntityID{target.ID},
	}, true
}

func singleHealModule() Module {
	return Module{Priority: PrioritySingleHeal, Name: ModuleSingleHeal, TryCommit: singleHealCommit}
}
