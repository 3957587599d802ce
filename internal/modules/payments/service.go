package payments

import (
	"context"
	"errors"
	"log"
	"time"

	"fitcrm/internal/domain"
	"fitcrm/internal/modules/members"
	"fitcrm/internal/pkg/validator"
	"fitcrm/internal/session"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrPaymentMemberNotFound = errors.New("member not found or unauthorized")

type PaymentStore interface {
	Create(ctx context.Context, p *domain.Payment) error
	ListByStudio(ctx context.Context, studioID uuid.UUID, limit, offset int) ([]domain.Payment, error)
	ListByMember(ctx context.Context, studioID, memberID uuid.UUID) ([]domain.Payment, error)
}

type memberReader interface {
	GetByIDAndStudio(ctx context.Context, id, studioID uuid.UUID) (*domain.Member, error)
}

type viewInvalidator interface {
	Invalidate(studioID uuid.UUID, paths ...string)
}

type RecordPaymentRequest struct {
	MemberID    string  `json:"member_id" validate:"required,uuid"`
	AmountCents int64   `json:"amount_cents" validate:"required,min=1,max=100000000"`
	Currency    string  `json:"currency,omitempty" validate:"omitempty,len=3,alpha"`
	Method      string  `json:"method" validate:"required,oneof=cash card sepa paypal"`
	Status      string  `json:"status,omitempty" validate:"omitempty,oneof=paid pending failed refunded"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=500,safetext"`
	PaidAt      *string `json:"paid_at,omitempty" validate:"omitempty,ymddate"`
}

type Service struct {
	payments PaymentStore
	members  memberReader
	views    viewInvalidator
}

func NewService(payments PaymentStore, membersRepo memberReader, views viewInvalidator) *Service {
	return &Service{
		payments: payments,
		members:  membersRepo,
		views:    views,
	}
}

func (s *Service) List(ctx context.Context, sess *session.Session, limit, offset int) ([]domain.Payment, error) {
	if !sess.HasStudio() {
		return nil, members.ErrNoStudioAssigned
	}
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	rows, err := s.payments.ListByStudio(ctx, *sess.StudioID, limit, offset)
	if err != nil {
		log.Printf("payments: list failed for studio %s: %v", sess.StudioID, err)
		return nil, errors.New("failed to fetch payments")
	}
	return rows, nil
}

func (s *Service) ListForMember(ctx context.Context, sess *session.Session, memberID uuid.UUID) ([]domain.Payment, error) {
	if !sess.HasStudio() {
		return nil, members.ErrNoStudioAssigned
	}

	// Ownership first; a cross-tenant member id reads as not found.
	if _, err := s.members.GetByIDAndStudio(ctx, memberID, *sess.StudioID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentMemberNotFound
		}
		log.Printf("payments: member check failed for %s: %v", memberID, err)
		return nil, errors.New("failed to fetch payments")
	}

	rows, err := s.payments.ListByMember(ctx, *sess.StudioID, memberID)
	if err != nil {
		log.Printf("payments: member list failed for %s: %v", memberID, err)
		return nil, errors.New("failed to fetch payments")
	}
	return rows, nil
}

// Record validates and stores a payment against a member of the caller's
// studio.
func (s *Service) Record(ctx context.Context, sess *session.Session, req RecordPaymentRequest) members.ActionResult {
	if !sess.HasStudio() {
		return members.ActionResult{Success: false, Error: members.ErrNoStudioAssigned.Error()}
	}

	if fe := validator.FirstError(req); fe != nil {
		return members.ActionResult{Success: false, Error: fe.Error()}
	}

	memberID, err := uuid.Parse(req.MemberID)
	if err != nil {
		return members.ActionResult{Success: false, Error: "Invalid member ID"}
	}

	if _, err := s.members.GetByIDAndStudio(ctx, memberID, *sess.StudioID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return members.ActionResult{Success: false, Error: ErrPaymentMemberNotFound.Error()}
		}
		log.Printf("payments: member check failed for %s: %v", memberID, err)
		return members.ActionResult{Success: false, Error: "Failed to record payment - please contact support"}
	}

	payment := &domain.Payment{
		StudioID:    *sess.StudioID,
		MemberID:    memberID,
		AmountCents: req.AmountCents,
		Currency:    "EUR",
		Method:      domain.PaymentMethod(req.Method),
		Status:      domain.PaymentPaid,
		Description: req.Description,
		PaidAt:      time.Now(),
	}
	if req.Currency != "" {
		payment.Currency = req.Currency
	}
	if req.Status != "" {
		payment.Status = domain.PaymentStatus(req.Status)
	}
	if req.PaidAt != nil {
		if t, err := time.Parse("2006-01-02", *req.PaidAt); err == nil {
			payment.PaidAt = t
		}
	}

	if err := s.payments.Create(ctx, payment); err != nil {
		log.Printf("payments: record failed for studio %s: %v", sess.StudioID, err)
		return members.ActionResult{Success: false, Error: "Failed to record payment - please contact support"}
	}

	if s.views != nil {
		s.views.Invalidate(*sess.StudioID, "/dashboard/payments")
	}

	return members.ActionResult{Success: true, Data: map[string]string{"id": payment.ID.String()}}
}
