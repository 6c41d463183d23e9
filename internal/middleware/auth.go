package middleware

import (
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/session"

	"kwbrand/internal/models"
)

// Session keys shared with the auth handler.
const (
	SessionUserSub       = "user_sub"
	SessionUserEmail     = "user_email"
	SessionUserName      = "user_name"
	SessionRedirectAfter = "redirect_after_login"
)

// AuthMiddleware handles user authentication via sessions. When disabled
// every request passes through.
type AuthMiddleware struct {
	enabled bool
}

// NewAuthMiddleware creates a new auth middleware instance.
func NewAuthMiddleware(enabled bool) *AuthMiddleware {
	return &AuthMiddleware{enabled: enabled}
}

// RequireAuth ensures the user is authenticated, redirecting to /login if not.
func (m *AuthMiddleware) RequireAuth(c fiber.Ctx) error {
	if !m.enabled {
		return c.Next()
	}

	sess := session.FromContext(c)
	if sess == nil {
		return fiber.NewError(fiber.StatusInternalServerError, "session not available")
	}

	user := userFromSession(sess)
	if user == nil {
		if c.Method() == fiber.MethodGet {
			sess.Set(SessionRedirectAfter, c.OriginalURL())
		}
		return c.Redirect().To("/login")
	}

	c.Locals("user", user)
	return c.Next()
}

// OptionalAuth loads the user if authenticated, but doesn't require authentication.
func (m *AuthMiddleware) OptionalAuth(c fiber.Ctx) error {
	if sess := session.FromContext(c); sess != nil {
		if user := userFromSession(sess); user != nil {
			c.Locals("user", user)
		}
	}
	return c.Next()
}

// SignIn stores the user in the session.
func SignIn(sess *session.Middleware, user models.User) {
	sess.Set(SessionUserSub, user.Sub)
	sess.Set(SessionUserEmail, user.Email)
	sess.Set(SessionUserName, user.Name)
}

func userFromSession(sess *session.Middleware) *models.User {
	sub, _ := sess.Get(SessionUserSub).(string)
	if sub == "" {
		return nil
	}
	email, _ := sess.Get(SessionUserEmail).(string)
	name, _ := sess.Get(SessionUserName).(string)
	return &models.User{Sub: sub, Email: email, Name: name}
}

// CurrentUser returns the user set by the auth middleware, or nil.
func CurrentUser(c fiber.Ctx) *models.User {
	user, _ := c.Locals("user").(*models.User)
	return user
}
