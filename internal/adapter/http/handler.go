// Package httpadapter exposes the running engine for operators: current
// timing/agent state, the recent decision log, and KPI counters. It is
// telemetry over the engine, not a control surface; nothing here can
// issue or alter actions.
package httpadapter

import (
	"context"
	"errors"
	"strconv"

	"wardmend/internal/app/ports"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

type EngineStatus struct {
	EncounterID    string  `json:"encounter_id"`
	Archetype      string  `json:"archetype"`
	Tick           int64   `json:"tick"`
	Clock          float64 `json:"clock"`
	Phase          string  `json:"phase"`
	CycleRemaining float64 `json:"cycle_remaining"`
	LockRemaining  float64 `json:"lock_remaining"`
	WeavesUsed     int     `json:"weaves_used"`
	Mana           int     `json:"mana"`
	GaugeStacks    int     `json:"gauge_stacks"`
	ComboStep      int     `json:"combo_step"`
}

type StatusProvider interface {
	Status() EngineStatus
}

type kpiSnapshotProvider interface {
	SnapshotAny() any
}

type Handler struct {
	Status      StatusProvider
	Decisions   ports.DecisionLogRepository
	EncounterID string
	KPI         kpiSnapshotProvider
}

func (h Handler) RegisterRoutes(s *server.Hertz) {
	ops := s.Group("/ops")
	ops.GET("/status", h.status)
	ops.GET("/decisions", h.decisions)
	ops.GET("/kpi", h.kpi)
}

func (h Handler) status(_ context.Context, ctx *app.RequestContext) {
	if h.Status == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "status provider not configured")
		return
	}
	ctx.JSON(consts.StatusOK, h.Status.Status())
}

func (h Handler) decisions(c context.Context, ctx *app.RequestContext) {
	if h.Decisions == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "decision log not configured")
		return
	}
	limit, _ := strconv.Atoi(string(ctx.Query("limit")))
	if limit <= 0 {
		limit = 50
	}
	encounterID := string(ctx.Query("encounter_id"))
	if encounterID == "" {
		encounterID = h.EncounterID
	}

	records, err := h.Decisions.ListRecent(c, encounterID, limit)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			writeErrorBody(ctx, consts.StatusNotFound, "not_found", "no decisions recorded")
			return
		}
		writeErrorBody(ctx, consts.StatusInternalServerError, "internal_error", "internal error")
		return
	}
	ctx.JSON(consts.StatusOK, map[string]any{
		"encounter_id": encounterID,
		"decisions":    records,
	})
}

func (h Handler) kpi(_ context.Context, ctx *app.RequestContext) {
	if h.KPI == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "kpi provider not configured")
		return
	}
	ctx.JSON(consts.StatusOK, h.KPI.SnapshotAny())
}

func writeErrorBody(ctx *app.RequestContext, status int, code, message string) {
	ctx.JSON(status, map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
