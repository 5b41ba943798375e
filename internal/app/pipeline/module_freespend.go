package pipeline

import (
	"wardmend/internal/app/triage"
	"wardmend/internal/domain/combat"
)

const ModuleFreeSpend = "free_spend"

// freeSpendCommit converts banked gauge stacks into a zero-cost heal.
// It yields while a combo is mid-chain: the spend is free either way and
// breaking the chain is not.
func freeSpendCommit(ctx *Context) (Proposal, bool) {
	if !ctx.Settings.ModuleEnabled(ModuleFreeSpend) {
		return Proposal{}, false
	}
	if ctx.State.ComboInProgress() {
		return Proposal{}, false
	}
	if ctx.State.GaugeStacks < ctx.Profile.GaugeCost {
		return Proposal{}, false
	}
	def, ok := ctx.resolveAction(ctx.Profile.FreeSpendAction)
	if !ok {
		return Proposal{}, false
	}
	if ctx.State.Level < def.MinLevel || !ctx.State.CooldownReady(def, ctx.Now) {
		return Proposal{}, false
	}
	if !ctx.canIssue(def) {
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

func freeSpendModule() Module {
	return Module{Priority: PriorityFreeSpend, Name: ModuleFreeSpend, TryCommit: freeSpendCommit}
}
