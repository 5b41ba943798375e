package model

import "time"

type DecisionRecord struct {
	ID          int64     `gorm:"primaryKey;autoIncrement"`
	EncounterID string    `gorm:"index:idx_decision_encounter_at;size:64;not null"`
	Tick        int64     `gorm:"not null"`
	At          time.Time `gorm:"index:idx_decision_encounter_at;not null"`
	Phase       string    `gorm:"size:16;not null"`
	Payload     []byte    `gorm:"type:jsonb"`
}

func (DecisionRecord) TableName() string {
	return "decision_records"
}
