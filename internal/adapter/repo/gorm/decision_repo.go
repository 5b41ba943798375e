package gormrepo

import (
	"context"
	"encoding/json"

	"wardmend/internal/adapter/repo/gorm/model"
	"wardmend/internal/app/ports"
	"wardmend/internal/domain/combat"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DecisionRepo struct {
	db *gorm.DB
}

func NewDecisionRepo(db *gorm.DB) DecisionRepo {
	return DecisionRepo{db: db}
}

// Migrate creates the decision_records table when it does not exist.
func (r DecisionRepo) Migrate() error {
	return r.db.AutoMigrate(&model.DecisionRecord{})
}

func (r DecisionRepo) Append(ctx context.Context, record combat.DecisionRecord) error {
	b, _ := json.Marshal(record.Decision)
	row := model.DecisionRecord{
		EncounterID: record.EncounterID,
		Tick:        record.Tick,
		At:          record.At,
		Phase:       record.Phase,
		Payload:     b,
	}
	return r.db.WithContext(ctx).Create(&row).Error
}

func (r DecisionRepo) ListRecent(ctx context.Context, encounterID string, limit int) ([]combat.DecisionRecord, error) {
	rows := []model.DecisionRecord{}
	query := r.db.WithContext(ctx).
		Where(&model.DecisionRecord{EncounterID: encounterID}).
		Clauses(clause.OrderBy{
			Columns: []clause.OrderByColumn{{Column: clause.Column{Name: "at"}, Desc: true}},
		})
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ports.ErrNotFound
	}

	out := make([]combat.DecisionRecord, 0, len(rows))
	for _, row := range rows {
		var decision combat.Decision
		if len(row.Payload) > 0 {
			_ = json.Unmarshal(row.Payload, &decision)
		}
		out = append(out, combat.DecisionRecord{
			EncounterID: row.EncounterID,
			Tick:        row.Tick,
			At:          row.At,
			Phase:       row.Phase,
			Decision:    decision,
		})
	}
	return out, nil
}
