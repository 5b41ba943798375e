package tick

import (
	"context"
	"errors"
	"time"

	"wardmend/internal/app/pipeline"
	"wardmend/internal/app/ports"
	"wardmend/internal/app/prediction"
	"wardmend/internal/app/stateview"
	"wardmend/internal/app/timing"
	"wardmend/internal/domain/combat"

	"go.uber.org/zap"
)

// UseCase evaluates one tick end to end: environment observation, timing
// and ledger updates, pipeline evaluation, execution, and decision
// logging. It always produces a Decision; environment gaps and gateway
// rejections are absorbed within the tick, never surfaced as errors. The
// only error it returns is ErrNoMoreTicks from a finite input.
type UseCase struct {
	Env       ports.EnvironmentReader
	Gateway   ports.ExecutionGateway
	Catalogue ports.ActionCatalogue
	Decisions ports.DecisionLogRepository
	Metrics   ports.TickMetrics

	Pipeline  *pipeline.Pipeline
	Timing    *timing.Machine
	Ledger    *prediction.Ledger
	Estimator *stateview.DamageEstimator

	State    *combat.AgentState
	Profile  combat.ArchetypeProfile
	Settings pipeline.Settings

	EncounterID string
	Log         *zap.Logger
	Now         func() time.Time

	tick  int64
	clock float64
}

// Clock returns the accumulated encounter time in seconds.
func (u *UseCase) Clock() float64 { return u.clock }

func (u *UseCase) Tick() int64 { return u.tick }

func (u *UseCase) ExecuteTick(ctx context.Context) (combat.Decision, error) {
	input, err := u.Env.ReadTick(ctx)
	if err != nil {
		if errors.Is(err, ports.ErrNoMoreTicks) {
			return combat.Decision{}, err
		}
		// Environment unavailable: proceed with conservative defaults,
		// no forced actions.
		u.logWarn("environment read failed", zap.Error(err))
		input = ports.TickInput{}
	}

	u.tick++
	if input.Sample.Elapsed > 0 {
		u.clock += input.Sample.Elapsed
	}

	u.Timing.Observe(input.Sample)
	u.Ledger.Advance(u.clock)
	for _, e := range input.Entities {
		u.Ledger.Reconcile(e)
	}
	u.Estimator.Observe(u.clock, input.Entities)

	decision := u.decide(ctx, input)
	u.record(ctx, decision)
	return decision, nil
}

func (u *UseCase) decide(ctx context.Context, input ports.TickInput) combat.Decision {
	if len(input.Entities) == 0 {
		u.recordNoAction(combat.ReasonNoEntities)
		return combat.Decision{Reason: combat.ReasonNoEntities}
	}

	views := stateview.BuildViews(input.Entities, u.Ledger, u.Estimator)
	self, party, enemies := stateview.Split(views)

	pctx := &pipeline.Context{
		Now:       u.clock,
		Tick:      u.tick,
		Timing:    u.Timing,
		Ledger:    u.Ledger,
		Self:      self,
		Party:     party,
		Enemies:   enemies,
		State:     u.State,
		Profile:   u.Profile,
		Settings:  u.Settings,
		Catalogue: u.Catalogue,
	}

	prop, moduleName, committed := u.Pipeline.Evaluate(pctx)
	if !committed {
		u.recordNoAction(combat.ReasonNoModuleCommitted)
		return combat.Decision{Reason: combat.ReasonNoModuleCommitted}
	}

	// Optimistic registration: triage in the same tick must already see
	// the heal in flight. Rolled back below if the gateway refuses.
	rawHP := rawHPByID(input.Entities)
	for _, id := range prop.HealTargets {
		u.Ledger.RegisterPendingHeal(id, rawHP[id], prop.Def.Potency)
	}

	ok, err := u.execute(ctx, prop)
	if err != nil || !ok {
		for _, id := range prop.HealTargets {
			u.Ledger.ClearPending(id)
		}
		if u.Metrics != nil {
			u.Metrics.RecordRejection(moduleName)
		}
		u.logWarn("gateway rejected action",
			zap.String("module", moduleName),
			zap.String("action", string(prop.Action)),
			zap.Error(err))
		return combat.Decision{
			Module: moduleName,
			Action: prop.Action,
			Reason: combat.ReasonGatewayRejected,
		}
	}

	u.applySuccess(prop)
	if u.Metrics != nil {
		u.Metrics.RecordCommit(moduleName)
	}
	return combat.Decision{
		Committed: true,
		Module:    moduleName,
		Action:    prop.Action,
		TargetID:  prop.TargetID,
		GroundPos: prop.Ground,
	}
}

func (u *UseCase) execute(ctx context.Context, prop pipeline.Proposal) (bool, error) {
	if prop.Ground != nil {
		return u.Gateway.ExecuteGround(ctx, prop.Action, *prop.Ground)
	}
	return u.Gateway.Execute(ctx, prop.Action, prop.TargetID)
}

// applySuccess folds a confirmed execution into agent and timing state:
// charge spent, mana deducted, weave or cycle accounted, gauge and combo
// bookkeeping per the archetype's bindings.
func (u *UseCase) applySuccess(prop pipeline.Proposal) {
	u.State.NoteUsed(prop.Def, u.clock)

	if prop.Def.IsSecondary() {
		u.Timing.NoteSecondaryIssued(prop.Def.Lock)
	} else {
		u.Timing.NotePrimaryIssued()
		if inChain(u.Profile.ComboChain, prop.Action) {
			u.State.AdvanceCombo(len(u.Profile.ComboChain))
		} else {
			u.State.ResetCombo()
		}
	}

	switch prop.Action {
	case u.Profile.GaugeAction:
		u.State.AddGauge(u.Profile.GaugeGrant)
	case u.Profile.FreeSpendAction:
		u.State.SpendGauge(u.Profile.GaugeCost)
	}
}

func (u *UseCase) record(ctx context.Context, decision combat.Decision) {
	if u.Decisions == nil {
		return
	}
	rec := combat.DecisionRecord{
		EncounterID: u.EncounterID,
		Tick:        u.tick,
		At:          u.wallNow(),
		Phase:       u.Timing.Phase().String(),
		Decision:    decision,
	}
	if err := u.Decisions.Append(ctx, rec); err != nil {
		u.logWarn("append decision record failed", zap.Error(err))
	}
}

func (u *UseCase) recordNoAction(reason string) {
	if u.Metrics != nil {
		u.Metrics.RecordNoAction(reason)
	}
}

func (u *UseCase) wallNow() time.Time {
	if u.Now != nil {
		return u.Now()
	}
	return time.Now()
}

func (u *UseCase) logWarn(msg string, fields ...zap.Field) {
	if u.Log != nil {
		u.Log.Warn(msg, fields...)
	}
}

func rawHPByID(entities []combat.EntitySnapshot) map[combat.EntityID]int {
	out := make(map[combat.EntityID]int, len(entities))
	for _, e := range entities {
		out[e.ID] = e.HP
	}
	return out
}

func inChain(chain []combat.ActionID, id combat.ActionID) bool {
	for _, c := range chain {
		if c == id {
			return true
		}
	}
	return false
}
