package main

import (
	"context"
	"errors"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"wardmend/internal/adapter/catalogue/staticfile"
	"wardmend/internal/adapter/env/replay"
	"wardmend/internal/adapter/gateway/sim"
	httpadapter "wardmend/internal/adapter/http"
	metricsinmem "wardmend/internal/adapter/metrics/inmemory"
	gormrepo "wardmend/internal/adapter/repo/gorm"
	memrepo "wardmend/internal/adapter/repo/memory"
	"wardmend/internal/app/pipeline"
	"wardmend/internal/app/ports"
	"wardmend/internal/app/prediction"
	"wardmend/internal/app/stateview"
	"wardmend/internal/app/tick"
	"wardmend/internal/app/timing"
	"wardmend/internal/domain/combat"

	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

func main() {
	logger := zap.Must(zap.NewProduction())
	defer func() { _ = logger.Sync() }()

	cataloguePath := strEnv("WARDMEND_CATALOGUE", "./config/catalogue.yaml")
	replayPath := strEnv("WARDMEND_REPLAY", "./config/encounters/training.yaml")
	archetypeName := strEnv("WARDMEND_ARCHETYPE", "warden")
	httpAddr := strEnv("WARDMEND_HTTP_ADDR", ":8080")
	tickInterval := time.Duration(intEnv("WARDMEND_TICK_MS", 250)) * time.Millisecond

	catalogue, profiles, settings, err := staticfile.Load(cataloguePath)
	if err != nil {
		logger.Fatal("load catalogue", zap.Error(err))
	}
	profile, ok := profiles[archetypeName]
	if !ok {
		logger.Fatal("unknown archetype", zap.String("archetype", archetypeName))
	}

	// Duplicate priorities or unregistered action bindings abort here,
	// never at tick time.
	pipe, err := pipeline.ForProfile(profile, catalogue)
	if err != nil {
		logger.Fatal("assemble pipeline", zap.Error(err))
	}

	env, err := replay.Open(replayPath)
	if err != nil {
		logger.Fatal("open replay fixture", zap.Error(err))
	}

	decisions := buildDecisionRepo(logger)
	gateway := sim.New()
	recorder := metricsinmem.NewRecorder()

	state := combat.NewAgentState(
		strEnv("WARDMEND_AGENT_ID", "wardmend-agent"),
		archetypeName,
		intEnv("WARDMEND_LEVEL", 90),
		intEnv("WARDMEND_MAX_MANA", 10000),
		intEnv("WARDMEND_MAX_GAUGE", 3),
	)
	machine := timing.NewMachine(timing.DefaultConfig())
	encounterID := uuid.NewString()

	uc := &tick.UseCase{
		Env:         env,
		Gateway:     gateway,
		Catalogue:   catalogue,
		Decisions:   decisions,
		Metrics:     recorder,
		Pipeline:    pipe,
		Timing:      machine,
		Ledger:      prediction.NewLedger(settings.PendingHealExpiry),
		Estimator:   stateview.NewDamageEstimator(stateview.DefaultWindow),
		State:       state,
		Profile:     profile,
		Settings:    settings,
		EncounterID: encounterID,
		Log:         logger,
		Now:         time.Now,
	}
	runner := &runner{uc: uc, machine: machine, state: state, encounterID: encounterID}

	h := httpadapter.Handler{
		Status:      runner,
		Decisions:   decisions,
		EncounterID: encounterID,
		KPI:         recorder,
	}
	s := server.Default(server.WithHostPorts(httpAddr))
	h.RegisterRoutes(s)
	go s.Spin()

	logger.Info("engine starting",
		zap.String("encounter_id", encounterID),
		zap.String("archetype", archetypeName),
		zap.String("replay", replayPath),
		zap.Int("ticks", env.Remaining()))

	ctx := context.Background()
	for {
		decision, err := runner.Step(ctx)
		if err != nil {
			if errors.Is(err, ports.ErrNoMoreTicks) {
				break
			}
			logger.Fatal("tick failed", zap.Error(err))
		}
		if decision.Committed {
			logger.Info("action committed",
				zap.Int64("tick", uc.Tick()),
				zap.String("module", decision.Module),
				zap.String("action", string(decision.Action)),
				zap.String("target", string(decision.TargetID)))
		}
		time.Sleep(tickInterval)
	}

	snap := recorder.Snapshot()
	logger.Info("replay finished",
		zap.Uint64("ticks", snap.TickTotal),
		zap.Uint64("commits", snap.Commits),
		zap.Uint64("rejections", snap.Rejections),
		zap.Uint64("no_action", snap.NoAction))
}

// runner serializes tick execution against HTTP status reads.
type runner struct {
	mu          sync.Mutex
	uc          *tick.UseCase
	machine     *timing.Machine
	state       *combat.AgentState
	encounterID string
}

func (r *runner) Step(ctx context.Context) (combat.Decision, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.uc.ExecuteTick(ctx)
}

func (r *runner) Status() httpadapter.EngineStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	return httpadapter.EngineStatus{
		EncounterID:    r.encounterID,
		Archetype:      r.state.Archetype,
		Tick:           r.uc.Tick(),
		Clock:          r.uc.Clock(),
		Phase:          r.machine.Phase().String(),
		CycleRemaining: r.machine.CycleRemaining(),
		LockRemaining:  r.machine.LockRemaining(),
		WeavesUsed:     r.machine.WeavesUsed(),
		Mana:           r.state.Mana,
		GaugeStacks:    r.state.GaugeStacks,
		ComboStep:      r.state.ComboStep,
	}
}

func buildDecisionRepo(logger *zap.Logger) ports.DecisionLogRepository {
	dsn := strings.TrimSpace(os.Getenv("WARDMEND_DB_DSN"))
	if dsn == "" {
		logger.Info("no WARDMEND_DB_DSN, using in-memory decision log")
		return memrepo.NewDecisionRepo()
	}
	db, err := gormrepo.OpenPostgres(dsn)
	if err != nil {
		logger.Fatal("open postgres", zap.Error(err))
	}
	repo := gormrepo.NewDecisionRepo(db)
	if err := repo.Migrate(); err != nil {
		logger.Fatal("migrate decision log", zap.Error(err))
	}
	return repo
}

func strEnv(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

func intEnv(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
