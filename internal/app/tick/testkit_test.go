package tick

import (
	"context"
	"errors"
	"testing"
	"time"

	"wardmend/internal/adapter/env/replay"
	"wardmend/internal/adapter/gateway/sim"
	"wardmend/internal/adapter/metrics/inmemory"
	"wardmend/internal/adapter/repo/memory"
	"wardmend/internal/app/pipeline"
	"wardmend/internal/app/ports"
	"wardmend/internal/app/prediction"
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

type failingEnv struct{}

func (failingEnv) ReadTick(context.Context) (ports.TickInput, error) {
	return ports.TickInput{}, errors.New("client gone")
}

func testCatalogue() stubCatalogue {
	return stubCatalogue{
		"revive":    {ID: "revive", Name: "Revive", Class: combat.ActionClassPrimary, ManaCost: 2400, Range: 30, MinLevel: 12},
		"mend":      {ID: "mend", Name: "Mend", Class: combat.ActionClassPrimary, Potency: 450, ManaCost: 500, Range: 30, MinLevel: 2},
		"tidecall":  {ID: "tidecall", Name: "Tidecall", Class: combat.ActionClassPrimary, Ground: true, Potency: 400, ManaCost: 700, Range: 30, Radius: 8, MinLevel: 40},
		"lifebloom": {ID: "lifebloom", Name: "Lifebloom", Class: combat.ActionClassSecondary, Potency: 800, Lock: 0.6, Recast: 20, Range: 30, MinLevel: 50},
		"quickmend": {ID: "quickmend", Name: "Quickmend", Class: combat.ActionClassSecondary, Potency: 500, Lock: 0.6, Recast: 1, Range: 30, MinLevel: 35},
		"aegis":     {ID: "aegis", Name: "Aegis", Class: combat.ActionClassSecondary, Lock: 0.6, Recast: 30, MinLevel: 30},
		"veil":      {ID: "veil", Name: "Veil", Class: combat.ActionClassSecondary, Lock: 0.6, Recast: 60, MinLevel: 56},
		"focus":     {ID: "focus", Name: "Focus", Class: combat.ActionClassSecondary, Lock: 0.6, Recast: 60, MinLevel: 20},
		"stone":     {ID: "stone", Name: "Stone", Class: combat.ActionClassPrimary, ManaCost: 200, Range: 25, MinLevel: 1},
		"stone2":    {ID: "stone2", Name: "Stone II", Class: combat.ActionClassPrimary, ManaCost: 200, Range: 25, MinLevel: 18},
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

type fixture struct {
	uc      *UseCase
	gateway *sim.Gateway
	repo    *memory.DecisionRepo
	metrics *inmemory.Recorder
}

func newFixture(t *testing.T, env ports.EnvironmentReader) *fixture {
	t.Helper()
	catalogue := testCatalogue()
	profile := testProfile()
	pipe, err := pipeline.ForProfile(profile, catalogue)
	if err != nil {
		t.Fatalf("assemble pipeline: %v", err)
	}

	f := &fixture{
		gateway: sim.New(),
		repo:    memory.NewDecisionRepo(),
		metrics: inmemory.NewRecorder(),
	}
	f.uc = &UseCase{
		Env:         env,
		Gateway:     f.gateway,
		Catalogue:   catalogue,
		Decisions:   f.repo,
		Metrics:     f.metrics,
		Pipeline:    pipe,
		Timing:      timing.NewMachine(timing.DefaultConfig()),
		Ledger:      prediction.NewLedger(prediction.DefaultExpiry),
		Estimator:   stateview.NewDamageEstimator(stateview.DefaultWindow),
		State:       combat.NewAgentState("agent", profile.Name, 90, 10000, 3),
		Profile:     profile,
		Settings:    pipeline.DefaultSettings(),
		EncounterID: "enc-test",
		Now:         func() time.Time { return time.Unix(1700000000, 0) },
	}
	return f
}

func replayFixture(t *testing.T, inputs ...ports.TickInput) *fixture {
	t.Helper()
	return newFixture(t, replay.FromTicks(inputs))
}

// readySample places the cycle at its boundary so primaries are legal.
func readySample() combat.TimingSample {
	return combat.TimingSample{Valid: true, Elapsed: 0.25, CycleTotal: 2.5, CycleElapsed: 2.5}
}

// rollingSample places the cycle early so only secondaries are legal.
func rollingSample() combat.TimingSample {
	return combat.TimingSample{Valid: true, Elapsed: 0.25, CycleTotal: 2.5, CycleElapsed: 0.2}
}

func selfEntity() combat.EntitySnapshot {
	return combat.EntitySnapshot{
		ID: "healer-1", HP: 10000, MaxHP: 10000,
		Role: combat.RoleHealer, Alive: true, IsSelf: true,
	}
}

func allyEntity(id string, hp, maxHP int, x, y float64) combat.EntitySnapshot {
	return combat.EntitySnapshot{
		ID: combat.EntityID(id), HP: hp, MaxHP: maxHP,
		Position: combat.Position{X: x, Y: y}, Alive: true,
	}
}

func enemyEntity(id string, x, y float64) combat.EntitySnapshot {
	return combat.EntitySnapshot{
		ID: combat.EntityID(id), HP: 500000, MaxHP: 500000,
		Position: combat.Position{X: x, Y: y}, Alive: true, IsEnemy: true,
	}
}
