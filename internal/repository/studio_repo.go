package repository

import (
	"context"

	"fitcrm/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StudioRepository struct {
	db *gorm.DB
}

func NewStudioRepository(db *gorm.DB) *StudioRepository {
	return &StudioRepository{db: db}
}

func (r *StudioRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Studio, error) {
	var s domain.Studio
	tx := r.db.WithContext(ctx).Where("id = ?", id).First(&s)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &s, nil
}
