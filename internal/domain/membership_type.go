package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MembershipType struct {
	ID                uuid.UUID  `json:"id" gorm:"column:id;type:uuid;primaryKey"`
	StudioID          uuid.UUID  `json:"studio_id" gorm:"column:studio_id;type:uuid;index;not null"`
	Name              string     `json:"name" gorm:"column:name;not null"`
	PriceMonthlyCents *int64     `json:"price_monthly_cents,omitempty" gorm:"column:price_monthly_cents"`
	Color             *string    `json:"color,omitempty" gorm:"column:color"`
	Features          StringList `json:"features" gorm:"column:features;type:text"`
	CreatedAt         time.Time  `json:"created_at" gorm:"column:created_at"`
	UpdatedAt         time.Time  `json:"updated_at" gorm:"column:updated_at"`
}

func (MembershipType) TableName() string { return "membership_types" }

func (t *MembershipType) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
