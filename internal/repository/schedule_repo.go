package repository

import (
	"context"

	"fitcrm/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ScheduleRepository struct {
	db *gorm.DB
}

func NewScheduleRepository(db *gorm.DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

func (r *ScheduleRepository) Create(ctx context.Context, s *domain.ClassSchedule) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *ScheduleRepository) ListByStudio(ctx context.Context, studioID uuid.UUID, activeOnly bool) ([]domain.ClassSchedule, error) {
	q := r.db.WithContext(ctx).Where("studio_id = ?", studioID)
	if activeOnly {
		q = q.Where("active = ?", true)
	}

	var schedules []domain.ClassSchedule
	err := q.Order("weekday ASC, start_time ASC").Find(&schedules).Error
	return schedules, err
}

func (r *ScheduleRepository) CountActive(ctx context.Context, studioID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.ClassSchedule{}).
		Where("studio_id = ? AND active = ?", studioID, true).
		Count(&count).Error
	return count, err
}

// Deactivate is a soft cancel scoped to the studio in the write itself.
func (r *ScheduleRepository) Deactivate(ctx context.Context, id, studioID uuid.UUID) (int64, error) {
	tx := r.db.WithContext(ctx).
		Model(&domain.ClassSchedule{}).
		Where("id = ? AND studio_id = ?", id, studioID).
		Update("active", false)
	return tx.RowsAffected, tx.Error
}
