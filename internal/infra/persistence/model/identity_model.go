package model

import (
	"time"

	"github.com/google/uuid"
)

// IdentityModel mirrors the 'identities' table used by the self-hosted identity provider.
type IdentityModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email        string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (IdentityModel) TableName() string {
	return "identities"
}

// SessionModel mirrors the 'identity_sessions' table. A session is open while EndedAt is nil.
type SessionModel struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	IdentityID uuid.UUID  `gorm:"type:uuid;not null;index"`
	CreatedAt  time.Time  `gorm:"not null"`
	EndedAt    *time.Time `gorm:"index"`
}

// TableName explicitly sets the table name for GORM.
func (SessionModel) TableName() string {
	return "identity_sessions"
}

// All lists every model for migrations and code generation.
func All() []any {
	return []any{
		RecordModel{},
		IdentityModel{},
		SessionModel{},
	}
}
