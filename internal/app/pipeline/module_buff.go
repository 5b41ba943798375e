package pipeline

const ModuleBuff = "buff"

// buffCommit keeps the archetype's proactive buff running while enemies
// are up. Weaved, so it never costs a primary-action slot.
func buffCommit(ctx *Context) (Proposal, bool) {
	if !ctx.Settings.ModuleEnabled(ModuleBuff) {
		return Proposal{}, false
	}
	if len(ctx.Enemies) == 0 {
		return Proposal{}, false
	}
	def, ok := ctx.resolveAction(ctx.Profile.BuffAction)
	if !ok {
		return Proposal{}, false
	}
	if ctx.Profile.BuffStatus != "" && ctx.Self.HasStatus(ctx.Profile.BuffStatus) {
		return Proposal{}, false
	}
	if !ctx.actionUsable(def) || !ctx.canIssue(def) {
		return Proposal{}, false
	}
	return Proposal{
		Action:   def.ID,
		Def:      def,
		TargetID: ctx.Self.ID,
	}, true
}

func buffModule() Module {
	return Module{Priority: PriorityBuff, Name: ModuleBuff, TryCommit: buffCommit}
}
