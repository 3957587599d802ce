package schedules

import (
	"context"
	"testing"

	"fitcrm/internal/domain"
	"fitcrm/internal/session"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockScheduleStore struct {
	mock.Mock
}

func (m *MockScheduleStore) Create(ctx context.Context, s *domain.ClassSchedule) error {
	args := m.Called(ctx, s)
	if args.Error(0) == nil {
		s.ID = uuid.New()
	}
	return args.Error(0)
}

func (m *MockScheduleStore) ListByStudio(ctx context.Context, studioID uuid.UUID, activeOnly bool) ([]domain.ClassSchedule, error) {
	args := m.Called(ctx, studioID, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ClassSchedule), args.Error(1)
}

func (m *MockScheduleStore) Deactivate(ctx context.Context, id, studioID uuid.UUID) (int64, error) {
	args := m.Called(ctx, id, studioID)
	return args.Get(0).(int64), args.Error(1)
}

func adminSession(studioID uuid.UUID) *session.Session {
	return &session.Session{
		UserID:   uuid.New(),
		Email:    "admin@studio.test",
		Role:     domain.RoleStudioAdmin,
		StudioID: &studioID,
	}
}

func TestCreate_DefaultsCapacity(t *testing.T) {
	store := new(MockScheduleStore)
	studioID := uuid.New()

	store.On("Create", mock.Anything, mock.Anything).Return(nil)

	svc := NewService(store, nil)
	res := svc.Create(context.Background(), adminSession(studioID), CreateScheduleRequest{
		Name:      "Morning Yoga",
		Weekday:   1,
		StartTime: "08:00",
		EndTime:   "09:00",
	})

	assert.True(t, res.Success)
	created := store.Calls[0].Arguments.Get(1).(*domain.ClassSchedule)
	assert.Equal(t, 20, created.Capacity)
	assert.True(t, created.Active)
	assert.Equal(t, studioID, created.StudioID)
}

func TestCreate_EndBeforeStart(t *testing.T) {
	store := new(MockScheduleStore)
	svc := NewService(store, nil)

	res := svc.Create(context.Background(), adminSession(uuid.New()), CreateScheduleRequest{
		Name:      "Backwards",
		Weekday:   2,
		StartTime: "18:00",
		EndTime:   "17:00",
	})

	assert.False(t, res.Success)
	assert.Contains(t, res.Error, "end_time")
	store.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreate_RejectsBadTimeFormat(t *testing.T) {
	svc := NewService(new(MockScheduleStore), nil)

	res := svc.Create(context.Background(), adminSession(uuid.New()), CreateScheduleRequest{
		Name:      "Late",
		Weekday:   2,
		StartTime: "25:00",
		EndTime:   "26:00",
	})

	assert.False(t, res.Success)
	assert.Contains(t, res.Error, "start_time")
}

func TestCancel_ZeroRowsIsNotFound(t *testing.T) {
	store := new(MockScheduleStore)
	studioID := uuid.New()
	classID := uuid.New()

	store.On("Deactivate", mock.Anything, classID, studioID).Return(int64(0), nil)

	svc := NewService(store, nil)
	res := svc.Cancel(context.Background(), adminSession(studioID), classID.String())

	assert.False(t, res.Success)
	assert.Equal(t, ErrScheduleNotFound.Error(), res.Error)
}

func TestCancel_InvalidID(t *testing.T) {
	svc := NewService(new(MockScheduleStore), nil)

	res := svc.Cancel(context.Background(), adminSession(uuid.New()), "nope")

	assert.False(t, res.Success)
	assert.Equal(t, "Invalid class ID", res.Error)
}
