package ports

import (
	"context"

	"wardmend/internal/domain/combat"
)

type DecisionLogRepository interface {
	Append(ctx context.Context, record combat.DecisionRecord) error
	ListRecent(ctx context.Context, encounterID string, limit int) ([]combat.DecisionRecord, error)
}
