package pipeline

const ModuleRaise = "raise"

// raiseCommit resurrects the first fallen ally that nobody is already
// raising. Runs before everything else: a dead ally contributes nothing
// and a duplicate raise wastes the most expensive resource in the kit.
func raiseCommit(ctx *Context) (Proposal, bool) {
	if !ctx.Settings.ModuleEnabled(ModuleRaise) {
		return Proposal{}, false
	}
	def, ok := ctx.resolveAction(ctx.Profile.RaiseAction)
	if !ok {
		return Proposal{}, false
	}
	if !ctx.actionUsable(def) || !ctx.canIssue(def) {
		return Proposal{}, false
	}

	for _, v := range ctx.Party {
		if v.Alive || v.IsSelf {
			continue
		}
		if ctx.Profile.RaisingStatus != "" && v.HasStatus(ctx.Profile.RaisingStatus) {
			continue
		}
		if !ctx.inHealRange(v) {
			continue
		}
		return Proposal{
			Action:   def.ID,
			Def:      def,
			TargetID: v.ID,
		}, true
	}
	return Proposal{}, false
}

func raiseModule() Module {
	return Module{Priority: PriorityRaise, Name: ModuleRaise, TryCommit: raiseCommit}
}
