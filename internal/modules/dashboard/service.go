package dashboard

import (
	"context"
	"errors"
	"log"
	"time"

	"fitcrm/internal/domain"
	"fitcrm/internal/modules/members"
	"fitcrm/internal/session"

	"github.com/google/uuid"
)

type paymentReader interface {
	ListPaidSince(ctx context.Context, studioID uuid.UUID, since time.Time) ([]domain.Payment, error)
}

type scheduleReader interface {
	CountActive(ctx context.Context, studioID uuid.UUID) (int64, error)
}

type studioReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Studio, error)
}

// Service aggregates the dashboard's headline numbers for one studio.
type Service struct {
	members   *members.Service
	payments  paymentReader
	schedules scheduleReader
	studios   studioReader
}

func NewService(membersSvc *members.Service, payments paymentReader, schedules scheduleReader, studios studioReader) *Service {
	return &Service{
		members:   membersSvc,
		payments:  payments,
		schedules: schedules,
		studios:   studios,
	}
}

type Stats struct {
	StudioName        string               `json:"studio_name"`
	Members           *members.MemberStats `json:"members"`
	RevenueMonthCents int64                `json:"revenue_month_cents"`
	PaymentsMonth     int                  `json:"payments_month"`
	ActiveClassCount  int64                `json:"active_class_count"`
}

func (s *Service) Stats(ctx context.Context, sess *session.Session) (*Stats, error) {
	memberStats, err := s.members.Stats(ctx, sess)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	payments, err := s.payments.ListPaidSince(ctx, *sess.StudioID, monthStart)
	if err != nil {
		log.Printf("dashboard: revenue fetch failed for studio %s: %v", sess.StudioID, err)
		return nil, errors.New("failed to fetch dashboard stats")
	}

	var revenue int64
	for _, p := range payments {
		revenue += p.AmountCents
	}

	classes, err := s.schedules.CountActive(ctx, *sess.StudioID)
	if err != nil {
		log.Printf("dashboard: class count failed for studio %s: %v", sess.StudioID, err)
		return nil, errors.New("failed to fetch dashboard stats")
	}

	stats := &Stats{
		Members:           memberStats,
		RevenueMonthCents: revenue,
		PaymentsMonth:     len(payments),
		ActiveClassCount:  classes,
	}

	// The name is display sugar; a lookup failure does not sink the stats.
	if studio, err := s.studios.GetByID(ctx, *sess.StudioID); err == nil {
		stats.StudioName = studio.Name
	}

	return stats, nil
}
