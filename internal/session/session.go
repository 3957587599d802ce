package session

import (
	"errors"

	"fitcrm/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrNoSession       = errors.New("no session in request context")
)

// contextKey is where the verified session lives for the lifetime of one
// request. Nothing stored under it survives the request.
const contextKey = "fitcrm_session"

// Session is the minimal identity DTO handed to data access code. It never
// contains the password hash or the raw user row.
type Session struct {
	UserID   uuid.UUID
	Email    string
	Role     domain.Role
	StudioID *uuid.UUID
}

// HasStudio reports whether the session is bound to a tenant.
func (s *Session) HasStudio() bool {
	return s != nil && s.StudioID != nil
}

// Store memoizes the verified session in the request context.
func Store(c *gin.Context, s *Session) {
	c.Set(contextKey, s)
}

// FromContext returns the memoized session, or nil when the request was not
// authenticated (optional-auth routes).
func FromContext(c *gin.Context) *Session {
	v, ok := c.Get(contextKey)
	if !ok {
		return nil
	}
	s, ok := v.(*Session)
	if !ok {
		return nil
	}
	return s
}

// MustFromContext returns the session or an error; route wiring guarantees
// it is present behind RequireAuth, so an error here is a programming bug.
func MustFromContext(c *gin.Context) (*Session, error) {
	s := FromContext(c)
	if s == nil {
		return nil, ErrNoSession
	}
	return s, nil
}
