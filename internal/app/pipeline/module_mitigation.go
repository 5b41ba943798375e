package pipeline

const ModuleMitigation = "mitigation"

// mitigationCommit throws the party-wide damage reducer when enough
// allies are taking sustained damage at once. Counting allies under fire
// is the expensive check, so it runs after the flag, binding, and timing
// gates.
func mitigationCommit(ctx *Context) (Proposal, bool) {
	if !ctx.Settings.ModuleEnabled(ModuleMitigation) {
		return Proposal{}, false
	}
	def, ok := ctx.resolveAction(ctx.Profile.MitigationAction)
	if !ok {
		return Proposal{}, false
	}
	if !ctx.actionUsable(def) || !ctx.canIssue(def) {
		return Proposal{}, false
	}

	underFire := 0
	for _, v := range ctx.Party {
		if v.Alive && v.DamageRate > 0 {
			underFire++
		}
	}
	if underFire < ctx.Settings.UnderFireMinAllies {
		return Proposal{}, false
	}
	return Proposal{
		Action:   def.ID,
		Def:      def,
		TargetID: ctx.Self.ID,
	}, true
}

func mitigationModule() Module {
	return Module{Priority: PriorityMitigation, Name: ModuleMitigation, TryCommit: mitigationCommit}
}
