package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PaymentStatus string

const (
	PaymentPaid     PaymentStatus = "paid"
	PaymentPending  PaymentStatus = "pending"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRefunded PaymentStatus = "refunded"
)

type PaymentMethod string

const (
	MethodCash   PaymentMethod = "cash"
	MethodCard   PaymentMethod = "card"
	MethodSEPA   PaymentMethod = "sepa"
	MethodPaypal PaymentMethod = "paypal"
)

type Payment struct {
	ID          uuid.UUID     `json:"id" gorm:"column:id;type:uuid;primaryKey"`
	StudioID    uuid.UUID     `json:"studio_id" gorm:"column:studio_id;type:uuid;index;not null"`
	MemberID    uuid.UUID     `json:"member_id" gorm:"column:member_id;type:uuid;index;not null"`
	AmountCents int64         `json:"amount_cents" gorm:"column:amount_cents;not null"`
	Currency    string        `json:"currency" gorm:"column:currency;not null;default:EUR"`
	Method      PaymentMethod `json:"method" gorm:"column:method;not null"`
	Status      PaymentStatus `json:"status" gorm:"column:status;not null;default:paid"`
	Description *string       `json:"description,omitempty" gorm:"column:description"`
	PaidAt      time.Time     `json:"paid_at" gorm:"column:paid_at"`
	CreatedAt   time.Time     `json:"created_at" gorm:"column:created_at"`
}

func (Payment) TableName() string { return "payments" }

func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
