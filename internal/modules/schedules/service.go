package schedules

import (
	"context"
	"errors"
	"log"

	"fitcrm/internal/domain"
	"fitcrm/internal/modules/members"
	"fitcrm/internal/pkg/validator"
	"fitcrm/internal/session"

	"github.com/google/uuid"
)

var ErrScheduleNotFound = errors.New("class not found or unauthorized")

type ScheduleStore interface {
	Create(ctx context.Context, s *domain.ClassSchedule) error
	ListByStudio(ctx context.Context, studioID uuid.UUID, activeOnly bool) ([]domain.ClassSchedule, error)
	Deactivate(ctx context.Context, id, studioID uuid.UUID) (int64, error)
}

type viewInvalidator interface {
	Invalidate(studioID uuid.UUID, paths ...string)
}

type CreateScheduleRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=200,safetext"`
	TrainerName string `json:"trainer_name,omitempty" validate:"omitempty,max=100,safetext"`
	Weekday     int    `json:"weekday" validate:"min=0,max=6"`
	StartTime   string `json:"start_time" validate:"required,hhmm"`
	EndTime     string `json:"end_time" validate:"required,hhmm"`
	Capacity    int    `json:"capacity,omitempty" validate:"omitempty,min=1,max=500"`
}

type Service struct {
	schedules ScheduleStore
	views     viewInvalidator
}

func NewService(schedules ScheduleStore, views viewInvalidator) *Service {
	return &Service{schedules: schedules, views: views}
}

func (s *Service) List(ctx context.Context, sess *session.Session, activeOnly bool) ([]domain.ClassSchedule, error) {
	if !sess.HasStudio() {
		return nil, members.ErrNoStudioAssigned
	}

	rows, err := s.schedules.ListByStudio(ctx, *sess.StudioID, activeOnly)
	if err != nil {
		log.Printf("schedules: list failed for studio %s: %v", sess.StudioID, err)
		return nil, errors.New("failed to fetch class schedules")
	}
	return rows, nil
}

func (s *Service) Create(ctx context.Context, sess *session.Session, req CreateScheduleRequest) members.ActionResult {
	if !sess.HasStudio() {
		return members.ActionResult{Success: false, Error: members.ErrNoStudioAssigned.Error()}
	}

	if fe := validator.FirstError(req); fe != nil {
		return members.ActionResult{Success: false, Error: fe.Error()}
	}
	if req.EndTime <= req.StartTime {
		return members.ActionResult{Success: false, Error: "end_time: must be after start_time"}
	}

	schedule := &domain.ClassSchedule{
		StudioID:    *sess.StudioID,
		Name:        req.Name,
		TrainerName: req.TrainerName,
		Weekday:     req.Weekday,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Capacity:    20,
		Active:      true,
	}
	if req.Capacity > 0 {
		schedule.Capacity = req.Capacity
	}

	if err := s.schedules.Create(ctx, schedule); err != nil {
		log.Printf("schedules: create failed for studio %s: %v", sess.StudioID, err)
		return members.ActionResult{Success: false, Error: "Failed to create class - please contact support"}
	}

	if s.views != nil {
		s.views.Invalidate(*sess.StudioID, "/dashboard/classes")
	}

	return members.ActionResult{Success: true, Data: map[string]string{"id": schedule.ID.String()}}
}

// Cancel soft-deactivates a class; tenancy is enforced in the write.
func (s *Service) Cancel(ctx context.Context, sess *session.Session, id string) members.ActionResult {
	if !sess.HasStudio() {
		return members.ActionResult{Success: false, Error: members.ErrNoStudioAssigned.Error()}
	}

	scheduleID, err := uuid.Parse(id)
	if err != nil {
		return members.ActionResult{Success: false, Error: "Invalid class ID"}
	}

	rows, err := s.schedules.Deactivate(ctx, scheduleID, *sess.StudioID)
	if err != nil {
		log.Printf("schedules: cancel failed for %s: %v", scheduleID, err)
		return members.ActionResult{Success: false, Error: "Failed to cancel class - please contact support"}
	}
	if rows == 0 {
		return members.ActionResult{Success: false, Error: ErrScheduleNotFound.Error()}
	}

	if s.views != nil {
		s.views.Invalidate(*sess.StudioID, "/dashboard/classes")
	}

	return members.ActionResult{Success: true}
}
