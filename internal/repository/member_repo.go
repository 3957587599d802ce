package repository

import (
	"context"
	"strings"

	"fitcrm/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MemberRepository is tenant-scoped by construction: every query and every
// write carries the studio id, so cross-tenant rows are unreachable at the
// store level, not just in application logic.
type MemberRepository struct {
	db *gorm.DB
}

func NewMemberRepository(db *gorm.DB) *MemberRepository {
	return &MemberRepository{db: db}
}

func (r *MemberRepository) ListByStudio(ctx context.Context, studioID uuid.UUID) ([]domain.Member, error) {
	var members []domain.Member
	err := r.db.WithContext(ctx).
		Where("studio_id = ?", studioID).
		Preload("Profile").
		Preload("MembershipType").
		Order("created_at DESC").
		Find(&members).Error
	return members, err
}

// GetByIDAndStudio filters by id and studio together. A member of another
// studio comes back as gorm.ErrRecordNotFound, indistinguishable from a
// missing row.
func (r *MemberRepository) GetByIDAndStudio(ctx context.Context, id, studioID uuid.UUID) (*domain.Member, error) {
	var m domain.Member
	tx := r.db.WithContext(ctx).
		Where("id = ? AND studio_id = ?", id, studioID).
		Preload("Profile").
		Preload("MembershipType").
		First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &m, nil
}

func (r *MemberRepository) StatusesByStudio(ctx context.Context, studioID uuid.UUID) ([]domain.MemberStatus, error) {
	var statuses []domain.MemberStatus
	err := r.db.WithContext(ctx).
		Model(&domain.Member{}).
		Where("studio_id = ?", studioID).
		Pluck("status", &statuses).Error
	return statuses, err
}

// SearchByName runs a case-insensitive partial match on the profile's
// first/last name, scoped to the studio.
func (r *MemberRepository) SearchByName(ctx context.Context, studioID uuid.UUID, query string, limit int) ([]domain.Member, error) {
	pattern := "%" + strings.ToLower(query) + "%"

	var members []domain.Member
	err := r.db.WithContext(ctx).
		Joins("JOIN profiles ON profiles.id = members.profile_id").
		Where("members.studio_id = ?", studioID).
		Where("LOWER(profiles.first_name) LIKE ? OR LOWER(profiles.last_name) LIKE ?", pattern, pattern).
		Preload("Profile").
		Preload("MembershipType").
		Limit(limit).
		Find(&members).Error
	return members, err
}

// CreateWithProfile inserts the profile and the member referencing it in
// one transaction, so a failed member insert leaves no orphaned profile.
func (r *MemberRepository) CreateWithProfile(ctx context.Context, profile *domain.Profile, member *domain.Member) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(profile).Error; err != nil {
			return err
		}
		member.ProfileID = profile.ID
		return tx.Create(member).Error
	})
}

// UpdateFields applies a partial update scoped to the studio and reports
// how many rows matched.
func (r *MemberRepository) UpdateFields(ctx context.Context, id, studioID uuid.UUID, fields map[string]interface{}) (int64, error) {
	if len(fields) == 0 {
		return 1, nil
	}
	tx := r.db.WithContext(ctx).
		Model(&domain.Member{}).
		Where("id = ? AND studio_id = ?", id, studioID).
		Updates(fields)
	return tx.RowsAffected, tx.Error
}

// SetStatus enforces tenancy in the write itself, avoiding a read-then-
// write race on ownership.
func (r *MemberRepository) SetStatus(ctx context.Context, id, studioID uuid.UUID, status domain.MemberStatus) (int64, error) {
	tx := r.db.WithContext(ctx).
		Model(&domain.Member{}).
		Where("id = ? AND studio_id = ?", id, studioID).
		Update("status", status)
	return tx.RowsAffected, tx.Error
}
