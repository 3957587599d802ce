package session

import (
	"context"
	"errors"
	"testing"

	"fitcrm/internal/domain"
	jwtsvc "fitcrm/internal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type MockTokenValidator struct {
	mock.Mock
}

func (m *MockTokenValidator) ValidateToken(tokenStr string) (*jwtsvc.Claims, error) {
	args := m.Called(tokenStr)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*jwtsvc.Claims), args.Error(1)
}

type MockProfileReader struct {
	mock.Mock
}

func (m *MockProfileReader) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

func TestVerifier_Verify_Success(t *testing.T) {
	tokens := new(MockTokenValidator)
	profiles := new(MockProfileReader)

	userID := uuid.New()
	studioID := uuid.New()

	tokens.On("ValidateToken", "good-token").Return(&jwtsvc.Claims{
		UserID: userID.String(),
		Email:  "admin@studio.test",
	}, nil)
	profiles.On("GetByUserID", mock.Anything, userID).Return(&domain.Profile{
		UserID:   &userID,
		StudioID: studioID,
		Role:     domain.RoleStudioAdmin,
	}, nil)

	v := NewVerifier(tokens, profiles)
	sess, err := v.Verify(context.Background(), "good-token")

	require.NoError(t, err)
	assert.Equal(t, userID, sess.UserID)
	assert.Equal(t, "admin@studio.test", sess.Email)
	assert.Equal(t, domain.RoleStudioAdmin, sess.Role)
	require.True(t, sess.HasStudio())
	assert.Equal(t, studioID, *sess.StudioID)
}

func TestVerifier_Verify_InvalidToken(t *testing.T) {
	tokens := new(MockTokenValidator)
	profiles := new(MockProfileReader)

	tokens.On("ValidateToken", "bad-token").Return(nil, errors.New("invalid token"))

	v := NewVerifier(tokens, profiles)
	_, err := v.Verify(context.Background(), "bad-token")

	assert.ErrorIs(t, err, ErrUnauthenticated)
	profiles.AssertNotCalled(t, "GetByUserID", mock.Anything, mock.Anything)
}

func TestVerifier_Verify_OrphanedIdentityFailsClosed(t *testing.T) {
	tokens := new(MockTokenValidator)
	profiles := new(MockProfileReader)

	userID := uuid.New()
	tokens.On("ValidateToken", "good-token").Return(&jwtsvc.Claims{
		UserID: userID.String(),
		Email:  "ghost@studio.test",
	}, nil)
	// A valid token whose user has no profile must not yield a session.
	profiles.On("GetByUserID", mock.Anything, userID).Return(nil, gorm.ErrRecordNotFound)

	v := NewVerifier(tokens, profiles)
	_, err := v.Verify(context.Background(), "good-token")

	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestVerifier_Verify_ProfileLookupError(t *testing.T) {
	tokens := new(MockTokenValidator)
	profiles := new(MockProfileReader)

	userID := uuid.New()
	tokens.On("ValidateToken", "good-token").Return(&jwtsvc.Claims{
		UserID: userID.String(),
	}, nil)
	profiles.On("GetByUserID", mock.Anything, userID).Return(nil, errors.New("db down"))

	v := NewVerifier(tokens, profiles)
	_, err := v.Verify(context.Background(), "good-token")

	assert.ErrorIs(t, err, ErrUnauthenticated)
}
