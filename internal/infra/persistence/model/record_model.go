// Package model contains the GORM table mappings used by the Postgres adapters.
package model

import (
	"time"

	"gorm.io/datatypes"
)

// RecordModel mirrors the 'records' table. Every collection shares the table and
// a record's top-level fields live in one JSONB column.
type RecordModel struct {
	Collection string            `gorm:"type:varchar(64);primaryKey"`
	ID         string            `gorm:"type:varchar(128);primaryKey"`
	Fields     datatypes.JSONMap `gorm:"type:jsonb;not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName explicitly sets the table name for GORM.
func (RecordModel) TableName() string {
	return "records"
}
