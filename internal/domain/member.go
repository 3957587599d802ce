package domain

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MemberStatus string

const (
	StatusActive   MemberStatus = "active"
	StatusPending  MemberStatus = "pending"
	StatusInactive MemberStatus = "inactive"
	// StatusSuspended is accepted as input but no workflow produces it yet.
	StatusSuspended MemberStatus = "suspended"
)

type LoyaltyTier string

const (
	TierBronze   LoyaltyTier = "bronze"
	TierSilver   LoyaltyTier = "silver"
	TierGold     LoyaltyTier = "gold"
	TierPlatinum LoyaltyTier = "platinum"
)

// StringList is stored as a JSON array column.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	b, err := json.Marshal(l)
	return string(b), err
}

func (l *StringList) Scan(value interface{}) error {
	return scanJSON(value, l)
}

// Member holds the membership lifecycle for one person in one studio.
// It is distinct from the backing Profile, which holds personal data.
type Member struct {
	ID                uuid.UUID    `json:"id" gorm:"column:id;type:uuid;primaryKey"`
	ProfileID         uuid.UUID    `json:"profile_id" gorm:"column:profile_id;type:uuid;not null"`
	StudioID          uuid.UUID    `json:"studio_id" gorm:"column:studio_id;type:uuid;index;not null"`
	MembershipTypeID  *uuid.UUID   `json:"membership_type_id,omitempty" gorm:"column:membership_type_id;type:uuid"`
	MemberNumber      *string      `json:"member_number,omitempty" gorm:"column:member_number"`
	Status            MemberStatus `json:"status" gorm:"column:status;not null;default:pending"`
	ContractStartDate *time.Time   `json:"contract_start_date,omitempty" gorm:"column:contract_start_date"`
	ContractEndDate   *time.Time   `json:"contract_end_date,omitempty" gorm:"column:contract_end_date"`
	CreditsBalance    int          `json:"credits_balance" gorm:"column:credits_balance;default:0"`
	LoyaltyPoints     int          `json:"loyalty_points" gorm:"column:loyalty_points;default:0"`
	LoyaltyTier       *LoyaltyTier `json:"loyalty_tier,omitempty" gorm:"column:loyalty_tier"`
	Notes             *string      `json:"notes,omitempty" gorm:"column:notes"`
	Tags              StringList   `json:"tags" gorm:"column:tags;type:text"`
	CreatedAt         time.Time    `json:"created_at" gorm:"column:created_at"`
	UpdatedAt         time.Time    `json:"updated_at" gorm:"column:updated_at"`

	Profile        *Profile        `json:"profile,omitempty" gorm:"foreignKey:ProfileID"`
	MembershipType *MembershipType `json:"membership_type,omitempty" gorm:"foreignKey:MembershipTypeID"`
}

func (Member) TableName() string { return "members" }

func (m *Member) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
