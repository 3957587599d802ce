package members

import (
	"context"

	"fitcrm/internal/domain"

	"github.com/google/uuid"
)

type MemberStore interface {
	ListByStudio(ctx context.Context, studioID uuid.UUID) ([]domain.Member, error)
	GetByIDAndStudio(ctx context.Context, id, studioID uuid.UUID) (*domain.Member, error)
	StatusesByStudio(ctx context.Context, studioID uuid.UUID) ([]domain.MemberStatus, error)
	SearchByName(ctx context.Context, studioID uuid.UUID, query string, limit int) ([]domain.Member, error)
	CreateWithProfile(ctx context.Context, profile *domain.Profile, member *domain.Member) error
	UpdateFields(ctx context.Context, id, studioID uuid.UUID, fields map[string]interface{}) (int64, error)
	SetStatus(ctx context.Context, id, studioID uuid.UUID, status domain.MemberStatus) (int64, error)
}

type ProfileStore interface {
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error
}

// ViewInvalidator is the stand-in for view revalidation: mutations announce
// which dashboard paths went stale for a studio.
type ViewInvalidator interface {
	Invalidate(studioID uuid.UUID, paths ...string)
}
