package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ClassSchedule is a weekly recurring class slot for one studio.
// Weekday follows time.Weekday (0 = Sunday).
type ClassSchedule struct {
	ID          uuid.UUID `json:"id" gorm:"column:id;type:uuid;primaryKey"`
	StudioID    uuid.UUID `json:"studio_id" gorm:"column:studio_id;type:uuid;index;not null"`
	Name        string    `json:"name" gorm:"column:name;not null"`
	TrainerName string    `json:"trainer_name" gorm:"column:trainer_name"`
	Weekday     int       `json:"weekday" gorm:"column:weekday;not null"`
	StartTime   string    `json:"start_time" gorm:"column:start_time;not null"`
	EndTime     string    `json:"end_time" gorm:"column:end_time;not null"`
	Capacity    int       `json:"capacity" gorm:"column:capacity;default:20"`
	Active      bool      `json:"active" gorm:"column:active;default:true"`
	CreatedAt   time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"column:updated_at"`
}

func (ClassSchedule) TableName() string { return "class_schedules" }

func (s *ClassSchedule) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
