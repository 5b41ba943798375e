package pipeline

import (
	"wardmend/internal/app/ports"
	"wardmend/internal/app/stateview"
	"wardmend/internal/app/timing"
	"wardmend/internal/domain/combat"
)

// Context is one tick's view of the world handed to every module. Modules
// read it; the only mutation any module performs happens after commit,
// through the orchestrator.
type Context struct {
	Now  float64
	Tick int64

	Timing  *timing.Machine
	Ledger  ledgerReader
	Self    stateview.View
	Party   []stateview.View
	Enemies []stateview.View

	State    *combat.AgentState
	Profile  combat.ArchetypeProfile
	Settings Settings

	Catalogue ports.ActionCatalogue
}

type ledgerReader interface {
	PredictedHP(e combat.EntitySnapshot) int
	PendingFor(id combat.EntityID) int
}

// resolveAction looks up a bound action. Bindings are validated at
// assembly, so a miss here only happens with a mis-wired test context.
func (c *Context) resolveAction(id combat.ActionID) (combat.ActionDef, bool) {
	if id == "" || c.Catalogue == nil {
		return combat.ActionDef{}, false
	}
	def, err := c.Catalogue.Resolve(id)
	if err != nil {
		return combat.ActionDef{}, false
	}
	return def, true
}

// canIssue checks the timing gate for the action's class: primaries need
// the Ready phase, secondaries need weave legality without clipping the
// next primary.
func (c *Context) canIssue(def combat.ActionDef) bool {
	if def.IsSecondary() {
		return c.Timing.CanIssueSecondary() && !c.Timing.WouldClip(def.Lock)
	}
	return c.Timing.CanIssuePrimary()
}

// actionUsable runs the cheap shared guards: level gate, cooldown gate,
// mana gate.
func (c *Context) actionUsable(def combat.ActionDef) bool {
	if c.State.Level < def.MinLevel {
		return false
	}
	if !c.State.CooldownReady(def, c.Now) {
		return false
	}
	return c.State.Mana >= def.ManaCost
}

// inHealRange reports whether the view is within the profile's heal range
// of the agent.
func (c *Context) inHealRange(v stateview.View) bool {
	r := c.Profile.HealRange
	return c.Self.Position.DistSq(v.Position) <= r*r
}
