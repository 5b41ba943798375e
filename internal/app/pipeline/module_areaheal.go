package pipeline

import "wardmend/internal/app/triage"

const ModuleAreaHeal = "area_heal"

// areaHealCommit heals a stacked group: the densest cluster of injured
// allies, provided enough of them are hurt to beat a single-target heal.
func areaHealCommit(ctx *Context) (Proposal, bool) {
	if !ctx.Settings.ModuleEnabled(ModuleAreaHeal) {
		return Proposal{}, false
	}
	def, ok := ctx.resolveAction(ctx.Profile.AreaHealAction)
	if !ok {
		return Proposal{}, false
	}
	if !ctx.actionUsable(def) || !ctx.canIssue(def) {
		return Proposal{}, false
	}

	minCount := ctx.Profile.MinClusterCount
	if minCount <= 0 {
		minCount = ctx.Settings.MinAreaTargets
	}
	radius := ctx.Profile.ClusterRadius
	if def.Radius > 0 {
		radius = def.Radius
	}
	center, _, members, ok := triage.BestClusterCenter(ctx.Party, radius, minCount)
	if !ok {
		return Proposal{}, false
	}
	if center.PredictedFraction >= ctx.Settings.AreaHealHPThreshold {
		return Proposal{}, false
	}
	if !ctx.inHealRange(center) {
		return Proposal{}, false
	}

	prop := Proposal{
		Action:      def.ID,
		Def:         def,
		TargetID:    center.ID,
		HealTargets: members,
	}
	if def.Ground {
		pos := center.Position
		prop.Ground = &pos
	}
	return prop, true
}

func areaHealModule() Module {
	return Module{Priority: PriorityAreaHeal, Name: ModuleAreaHeal, TryCommit: areaHealCommit}
}
