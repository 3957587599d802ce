package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Studio is the tenant boundary. Every profile and member belongs to
// exactly one studio.
type Studio struct {
	ID        uuid.UUID `json:"id" gorm:"column:id;type:uuid;primaryKey"`
	Name      string    `json:"name" gorm:"column:name;not null"`
	OwnerID   uuid.UUID `json:"owner_id" gorm:"column:owner_id;type:uuid;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt time.Time `json:"updated_at" gorm:"column:updated_at"`
}

func (Studio) TableName() string { return "studios" }

func (s *Studio) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
