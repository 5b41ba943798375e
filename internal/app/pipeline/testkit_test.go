package pipeline

import (
	"wardmend/internal/app/ports"
	"wardmend/internal/app/stateview"
	"wardmend/internal/app/timing"
	"wardmend/internal/domain/combat"
)

type stubCatalogue map[combat.ActionID]combat.ActionDef

func (c stubCatalogue) Resolve(id combat.ActionID) (combat.ActionDef, error) {
	def, ok := c[id]
	if !ok {
		return combat.ActionDef{}, ports.ErrUnknownAction
	}
	return def, nil
}

type stubLedger struct{}

func (stubLedger) PredictedHP(e combat.EntitySnapshot) int { return e.HP }
func (stubLedger) PendingFor(id combat.EntityID) int       { return 0 }

func testCatalogue() stubCatalogue {
	return stubCatalogue{
		"revive":    {ID: "revive", Name: "Revive", Class: combat.ActionClassPrimary, ManaCost: 2400, CastTime: 2.5, Range: 30, MinLevel: 12},
		"mend":      {ID: "mend", Name: "Mend", Class: combat.ActionClassPrimary, Potency: 450, ManaCost: 500, CastTime: 1.5, Range: 30, MinLevel: 2},
		"tidecall":  {ID: "tidecall", Name: "Tidecall", Class: combat.ActionClassPrimary, Ground: true, Potency: 400, ManaCost: 700, Range: 30, Radius: 8, MinLevel: 40},
		"lifebloom": {ID: "lifebloom", Name: "Lifebloom", Class: combat.ActionClassSecondary, Potency: 800, Lock: 0.6, Recast: 20, Range: 30, MinLevel: 50},
		"quickmend": {ID: "quickmend", Name: "Quickmend", Class: combat.ActionClassSecondary, Potency: 500, Lock: 0.6, Recast: 1, Range: 30, MinLevel: 35},
		"aegis":     {ID: "aegis", Name: "Aegis", Class: combat.ActionClassSecondary, Lock: 0.6, Recast: 30, MinLevel: 30},
		"veil":      {ID: "veil", Name: "Veil", Class: combat.ActionClassSecondary, Lock: 0.6, Recast: 60, MinLevel: 56},
		"focus":     {ID: "focus", Name: "Focus", Class: combat.ActionClassSecondary, Lock: 0.6, Recast: 60, MinLevel: 20},
		"stone":     {ID: "stone", Name: "Stone", Class: combat.ActionClassPrimary, ManaCost: 200, CastTime: 1.5, Range: 25, MinLevel: 1},
		"stone2":    {ID: "stone2", Name: "Stone II", Class: combat.ActionClassPrimary, ManaCost: 200, CastTime: 1.5, Range: 25, MinLevel: 18},
	}
}

func testProfile() combat.ArchetypeProfile {
	return combat.ArchetypeProfile{
		Name:            "warden",
		HealRange:       30,
		ClusterRadius:   8,
		MinClusterCount: 3,
		RaisingStatus:   "resurrecting",
		GaugeStatus:     "aegis_ready",
		BuffStatus:      "focused",
		Weights:         combat.DefaultTriageWeights(),

		RaiseAction:      "revive",
		GaugeAction:      "aegis",
		EmergencyAction:  "lifebloom",
		BuffAction:       "focus",
		MitigationAction: "veil",
		FreeSpendAction:  "quickmend",
		AreaHealAction:   "tidecall",
		SingleHealAction: "mend",
		ComboChain:       []combat.ActionID{"stone", "stone2"},

		GaugeGrant: 3,
		GaugeCost:  1,
	}
}

// readyTiming is a machine sitting at the cycle boundary: primaries legal,
// no weave room left.
func readyTiming() *timing.Machine {
	m := timing.NewMachine(timing.DefaultConfig())
	m.Observe(combat.TimingSample{Valid: true, CycleTotal: 2.5, CycleElapsed: 2.5})
	return m
}

// weaveTiming is a machine early in a rolling cycle: secondaries legal,
// primaries gated.
func weaveTiming() *timing.Machine {
	m := timing.NewMachine(timing.DefaultConfig())
	m.Observe(combat.TimingSample{Valid: true, CycleTotal: 2.5, CycleElapsed: 0.2})
	return m
}

func partyView(id string, frac float64, x, y float64) stateview.View {
	maxHP := 10000
	hp := int(frac * float64(maxHP))
	return stateview.View{
		EntitySnapshot: combat.EntitySnapshot{
			ID:       combat.EntityID(id),
			HP:       hp,
			MaxHP:    maxHP,
			Position: combat.Position{X: x, Y: y},
			Alive:    true,
		},
		PredictedHP:       hp,
		PredictedFraction: frac,
	}
}

func enemyView(id string, x, y float64) stateview.View {
	v := partyView(id, 1.0, x, y)
	v.IsEnemy = true
	return v
}

func newTestContext(machine *timing.Machine, party []stateview.View, enemies []stateview.View) *Context {
	self := partyView("healer-1", 1.0, 0, 0)
	self.IsSelf = true
	self.Role = combat.RoleHealer
	return &Context{
		Now:       30,
		Tick:      1,
		Timing:    machine,
		Ledger:    stubLedger{},
		Self:      self,
		Party:     append([]stateview.View{self}, party...),
		Enemies:   enemies,
		State:     combat.NewAgentState("agent", "warden", 90, 10000, 3),
		Profile:   testProfile(),
		Settings:  DefaultSettings(),
		Catalogue: testCatalogue(),
	}
}
