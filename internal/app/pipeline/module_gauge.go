package pipeline

const ModuleGauge = "gauge"

// gaugeCommit keeps the archetype's stack gauge charged. Placing the
// gauge is cheap (a weave) and everything in the free-spend band depends
// on it, so it sits just below resurrection.
func gaugeCommit(ctx *Context) (Proposal, bool) {
	if !ctx.Settings.ModuleEnabled(ModuleGauge) {
		return Proposal{}, false
	}
	if ctx.State.GaugeStacks > 0 {
		return Proposal{}, false
	}
	def, ok := ctx.resolveAction(ctx.Profile.GaugeAction)
	if !ok {
		return Proposal{}, false
	}
	if !ctx.actionUsable(def) || !ctx.canIssue(def) {
		return Proposal{}, false
	}
	if ctx.Profile.GaugeStatus != "" && ctx.Self.HasStatus(ctx.Profile.GaugeStatus) {
		return Proposal{}, false
	}
	return Proposal{
		Action:   def.ID,
		Def:      def,
		TargetID: ctx.Self.ID,
	}, true
}

func gaugeModule() Module {
	return Module{Priority: PriorityGauge, Name: ModuleGauge, TryCommit: gaugeCommit}
}
