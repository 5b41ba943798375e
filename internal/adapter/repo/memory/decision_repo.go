// Package memory holds the in-process DecisionLogRepository used when no
// database is configured and by the orchestrator tests.
package memory

import (
	"context"
	"sync"

	"wardmend/internal/app/ports"
	"wardmend/internal/domain/combat"
)

type DecisionRepo struct {
	mu      sync.RWMutex
	records map[string][]combat.DecisionRecord
}

func NewDecisionRepo() *DecisionRepo {
	return &DecisionRepo{records: map[string][]combat.DecisionRecord{}}
}

func (r *DecisionRepo) Append(_ context.Context, record combat.DecisionRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records[record.EncounterID] = append(r.records[record.EncounterID], record)
	return nil
}

// ListRecent returns records newest first, capped at limit when positive.
func (r *DecisionRepo) ListRecent(_ context.Context, encounterID string, limit int) ([]combat.DecisionRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	all := r.records[encounterID]
	if len(all) == 0 {
		return nil, ports.ErrNotFound
	}
	if limit <= 0 || limit > len(all) {
		limit = len(all)
	}
	out := make([]combat.DecisionRecord, 0, limit)
	for i := len(all) - 1; i >= len(all)-limit; i-- {
		out = append(out, all[i])
	}
	return out, nil
}
