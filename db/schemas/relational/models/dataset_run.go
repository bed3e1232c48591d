package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type DatasetRun struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Seed       int64          `gorm:"column:seed"`
	Size       int            `gorm:"column:size"`
	RecordSize int            `gorm:"column:record_size"`
	Manifest   datatypes.JSON `gorm:"type:jsonb;column:manifest"`
	CreatedAt  time.Time      `gorm:"column:created_at"`
}

func (DatasetRun) TableName() string {
	return "relgen_dataset_runs"
}
