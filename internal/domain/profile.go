package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Role string

const (
	RoleStudioAdmin Role = "studio_admin"
	RoleTrainer     Role = "trainer"
	RoleMember      Role = "member"
)

// Address is stored as a JSON column.
type Address struct {
	Street     string `json:"street,omitempty"`
	City       string `json:"city,omitempty"`
	PostalCode string `json:"postal_code,omitempty"`
	Country    string `json:"country,omitempty"`
}

func (a Address) Value() (driver.Value, error) {
	b, err := json.Marshal(a)
	return string(b), err
}

func (a *Address) Scan(value interface{}) error {
	return scanJSON(value, a)
}

// EmergencyContact is stored as a JSON column.
type EmergencyContact struct {
	Name         string `json:"name,omitempty"`
	Phone        string `json:"phone,omitempty"`
	Relationship string `json:"relationship,omitempty"`
}

func (e EmergencyContact) Value() (driver.Value, error) {
	b, err := json.Marshal(e)
	return string(b), err
}

func (e *EmergencyContact) Scan(value interface{}) error {
	return scanJSON(value, e)
}

// Profile links an identity to a studio, a role and personal data.
// Managed members have no login, so UserID is nullable; at most one
// profile exists per user id.
type Profile struct {
	ID               uuid.UUID         `json:"id" gorm:"column:id;type:uuid;primaryKey"`
	UserID           *uuid.UUID        `json:"user_id,omitempty" gorm:"column:user_id;type:uuid;uniqueIndex"`
	StudioID         uuid.UUID         `json:"studio_id" gorm:"column:studio_id;type:uuid;index;not null"`
	Role             Role              `json:"role" gorm:"column:role;not null"`
	FirstName        string            `json:"first_name" gorm:"column:first_name;not null"`
	LastName         string            `json:"last_name" gorm:"column:last_name;not null"`
	Phone            *string           `json:"phone,omitempty" gorm:"column:phone"`
	DateOfBirth      *time.Time        `json:"date_of_birth,omitempty" gorm:"column:date_of_birth"`
	Address          *Address          `json:"address,omitempty" gorm:"column:address;type:text"`
	EmergencyContact *EmergencyContact `json:"emergency_contact,omitempty" gorm:"column:emergency_contact;type:text"`
	HealthNotes      *string           `json:"health_notes,omitempty" gorm:"column:health_notes"`
	CreatedAt        time.Time         `json:"created_at" gorm:"column:created_at"`
	UpdatedAt        time.Time         `json:"updated_at" gorm:"column:updated_at"`
}

func (Profile) TableName() string { return "profiles" }

func (p *Profile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

func scanJSON(value interface{}, dest interface{}) error {
	if value == nil {
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, dest)
	case string:
		return json.Unmarshal([]byte(v), dest)
	default:
		return errors.New("unsupported json column type")
	}
}
