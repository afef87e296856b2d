package models

import (
	"time"

	"github.com/google/uuid"
)

type BaseModel struct {
	ID        string    `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	CreatedAt time.Time `gorm:"default:now()" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// NewID generates a primary key client-side, for inserts that need the
// ID before the row exists (bulk creates linking child rows).
func NewID() string {
	return uuid.New().String()
}
