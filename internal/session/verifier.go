package session

import (
	"context"
	"errors"
	"log"

	"fitcrm/internal/domain"
	jwtsvc "fitcrm/internal/pkg/jwt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type tokenValidator interface {
	ValidateToken(tokenStr string) (*jwtsvc.Claims, error)
}

type ProfileReader interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Profile, error)
}

// Verifier resolves a bearer token into a Session. One token validation,
// one profile lookup; the middleware memoizes the result per request.
type Verifier struct {
	tokens   tokenValidator
	profiles ProfileReader
}

func NewVerifier(tokens tokenValidator, profiles ProfileReader) *Verifier {
	return &Verifier{tokens: tokens, profiles: profiles}
}

// Verify fails closed: any invalid token, and any valid token without a
// backing profile, collapses into ErrUnauthenticated. The orphaned-identity
// case is logged because it means registration broke its invariant.
func (v *Verifier) Verify(ctx context.Context, token string) (*Session, error) {
	claims, err := v.tokens.ValidateToken(token)
	if err != nil {
		return nil, ErrUnauthenticated
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, ErrUnauthenticated
	}

	profile, err := v.profiles.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("session: no profile for authenticated user %s", userID)
		} else {
			log.Printf("session: profile lookup failed for user %s: %v", userID, err)
		}
		return nil, ErrUnauthenticated
	}

	studioID := profile.StudioID
	return &Session{
		UserID:   userID,
		Email:    claims.Email,
		Role:     profile.Role,
		StudioID: &studioID,
	}, nil
}
