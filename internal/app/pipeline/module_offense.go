package pipeline

import "wardmend/internal/app/stateview"

const ModuleOffense = "offense"

// offenseCommit fills otherwise-idle primary slots with the damage combo.
// The chain position lives in agent state, the only cross-tick memory the
// pipeline keeps; everything above this module already declined, so a
// committed step never displaces a heal.
func offenseCommit(ctx *Context) (Proposal, bool) {
	if !ctx.Settings.ModuleEnabled(ModuleOffense) {
		return Proposal{}, false
	}
	chain := ctx.Profile.ComboChain
	if len(chain) == 0 {
		return Proposal{}, false
	}
	step := ctx.State.ComboStep
	if step >= len(chain) {
		step = 0
	}
	def, ok := ctx.resolveAction(chain[step])
	if !ok {
		return Proposal{}, false
	}
	if ctx.State.Level < def.MinLevel || !ctx.canIssue(def) {
		return Proposal{}, false
	}
	if ctx.State.Mana < def.ManaCost+ctx.Settings.ManaReserve {
		return Proposal{}, false
	}

	target, ok := nearestEnemy(ctx.Enemies, ctx.Self, def.Range)
	if !ok {
		return Proposal{}, false
	}
	return Proposal{
		Action:   def.ID,
		Def:      def,
		TargetID: target.ID,
	}, true
}

func nearestEnemy(enemies []stateview.View, self stateview.View, maxRange float64) (stateview.View, bool) {
	rangeSq := maxRange * maxRange
	var best stateview.View
	bestSq := 0.0
	found := false
	for _, v := range enemies {
		if !v.Alive {
			continue
		}
		distSq := self.Position.DistSq(v.Position)
		if distSq > rangeSq {
			continue
		}
		if !found || distSq < bestSq {
			best = v
			bestSq = distSq
			found = true
		}
	}
	return best, found
}

func offenseModule() Module {
	return Module{Priority: PriorityOffense, Name: ModuleOffense, TryCommit: offenseCommit}
}
