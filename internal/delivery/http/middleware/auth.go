package middleware

import (
	"net/http"
	"net/url"

	"github.com/chaosdating/chaos-dating/internal/usecase/auth"
	"github.com/gin-gonic/gin"
)

// SessionCookie is the cookie carrying the signed session token.
const SessionCookie = "cd_session"

type AuthMiddleware struct {
	authUseCase *auth.AuthUseCase
}

func NewAuthMiddleware(authUseCase *auth.AuthUseCase) *AuthMiddleware {
	return &AuthMiddleware{authUseCase: authUseCase}
}

// RequireAuth redirects to the login page when no valid session cookie is
// present. The original path is passed along as ?next= so login can return
// the user where they were headed.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !m.identify(c) {
			next := url.QueryEscape(c.Request.URL.RequestURI())
			c.Redirect(http.StatusFound, "/login/?next="+next)
			c.Abort()
			return
		}
		c.Next()
	}
}

// OptionalAuth sets the identity when a valid session cookie is present
// and lets the request through either way.
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		m.identify(c)
		c.Next()
	}
}

func (m *AuthMiddleware) identify(c *gin.Context) bool {
	token, err := c.Cookie(SessionCookie)
	if err != nil || token == "" {
		return false
	}
	user, err := m.authUseCase.Authenticate(c.Request.Context(), token)
	if err != nil {
		return false
	}
	c.Set("user_id", user.ID)
	c.Set("username", user.Username)
	return true
}
