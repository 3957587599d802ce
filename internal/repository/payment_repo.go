package repository

import (
	"context"
	"time"

	"fitcrm/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) Create(ctx context.Context, p *domain.Payment) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PaymentRepository) ListByStudio(ctx context.Context, studioID uuid.UUID, limit, offset int) ([]domain.Payment, error) {
	var payments []domain.Payment
	err := r.db.WithContext(ctx).
		Where("studio_id = ?", studioID).
		Order("paid_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&payments).Error
	return payments, err
}

func (r *PaymentRepository) ListByMember(ctx context.Context, studioID, memberID uuid.UUID) ([]domain.Payment, error) {
	var payments []domain.Payment
	err := r.db.WithContext(ctx).
		Where("studio_id = ? AND member_id = ?", studioID, memberID).
		Order("paid_at DESC").
		Find(&payments).Error
	return payments, err
}

// ListPaidSince feeds the revenue summary; aggregation happens in the
// service, matching how member stats are counted.
func (r *PaymentRepository) ListPaidSince(ctx context.Context, studioID uuid.UUID, since time.Time) ([]domain.Payment, error) {
	var payments []domain.Payment
	err := r.db.WithContext(ctx).
		Where("studio_id = ? AND status = ? AND paid_at >= ?", studioID, domain.PaymentPaid, since).
		Find(&payments).Error
	return payments, err
}
