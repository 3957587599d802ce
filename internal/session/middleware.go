package session

import (
	"net/http"
	"strings"

	"fitcrm/internal/domain"

	"github.com/gin-gonic/gin"
)

// Middleware wires the verifier into gin. The verified session is resolved
// at most once per request and stored in the request context; guards read
// the memoized copy and never re-hit the identity layer.
type Middleware struct {
	verifier      *Verifier
	cookieName    string
	loginPath     string
	dashboardPath string
}

func NewMiddleware(verifier *Verifier, cookieName, loginPath, dashboardPath string) *Middleware {
	return &Middleware{
		verifier:      verifier,
		cookieName:    cookieName,
		loginPath:     loginPath,
		dashboardPath: dashboardPath,
	}
}

func (m *Middleware) token(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	if cookie, err := c.Cookie(m.cookieName); err == nil {
		return cookie
	}
	return ""
}

// RequireAuth verifies the session and memoizes it; unauthenticated
// requests are sent to the login page.
func (m *Middleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := m.token(c)
		if token == "" {
			m.redirectLogin(c)
			return
		}

		sess, err := m.verifier.Verify(c.Request.Context(), token)
		if err != nil {
			m.redirectLogin(c)
			return
		}

		Store(c, sess)
		c.Next()
	}
}

// OptionalAuth resolves a session when one exists but never aborts.
func (m *Middleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := m.token(c); token != "" {
			if sess, err := m.verifier.Verify(c.Request.Context(), token); err == nil {
				Store(c, sess)
			}
		}
		c.Next()
	}
}

// RequireRole composes on RequireAuth. An authenticated caller with the
// wrong role lands on the dashboard with an error indicator, distinct from
// the unauthenticated redirect.
func (m *Middleware) RequireRole(allowed ...domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := FromContext(c)
		if sess == nil {
			m.redirectLogin(c)
			return
		}

		for _, role := range allowed {
			if sess.Role == role {
				c.Next()
				return
			}
		}

		c.Redirect(http.StatusSeeOther, m.dashboardPath+"?error=insufficient_permissions")
		c.Abort()
	}
}

// RequireStudioAccess compares the studio id in the route against the
// session's tenant. A mismatch is a cross-tenant access attempt.
func (m *Middleware) RequireStudioAccess(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := FromContext(c)
		if sess == nil {
			m.redirectLogin(c)
			return
		}

		if !sess.HasStudio() || sess.StudioID.String() != c.Param(param) {
			c.Redirect(http.StatusSeeOther, m.dashboardPath+"?error=unauthorized_studio_access")
			c.Abort()
			return
		}

		c.Next()
	}
}

func (m *Middleware) redirectLogin(c *gin.Context) {
	c.Redirect(http.StatusSeeOther, m.loginPath)
	c.Abort()
}
