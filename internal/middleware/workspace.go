package middleware

import (
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/session"

	"kwbrand/internal/workspace"
)

// SessionWorkspaceID is the session key holding the workspace ID.
const SessionWorkspaceID = "workspace_id"

const workspaceLocal = "workspace"

// WorkspaceMiddleware attaches the caller's workspace to the request,
// creating one on the first request of a session.
type WorkspaceMiddleware struct {
	store *workspace.Store
}

// NewWorkspaceMiddleware creates the middleware over store.
func NewWorkspaceMiddleware(store *workspace.Store) *WorkspaceMiddleware {
	return &WorkspaceMiddleware{store: store}
}

// Attach loads or creates the workspace and stores it in Locals.
func (m *WorkspaceMiddleware) Attach(c fiber.Ctx) error {
	sess := session.FromContext(c)
	if sess == nil {
		return fiber.NewError(fiber.StatusInternalServerError, "session not available")
	}

	id, _ := sess.Get(SessionWorkspaceID).(string)
	ws, created := m.store.GetOrCreate(id)
	if created {
		sess.Set(SessionWorkspaceID, ws.ID)
	}

	c.Locals(workspaceLocal, ws)
	return c.Next()
}

// Discard drops the session's workspace, used on logout.
func (m *WorkspaceMiddleware) Discard(c fiber.Ctx) {
	sess := session.FromContext(c)
	if sess == nil {
		return
	}
	if id, ok := sess.Get(SessionWorkspaceID).(string); ok {
		m.store.Delete(id)
		sess.Delete(SessionWorkspaceID)
	}
}

// Workspace returns the workspace attached by Attach, or nil.
func Workspace(c fiber.Ctx) *workspace.Workspace {
	ws, _ := c.Locals(workspaceLocal).(*workspace.Workspace)
	return ws
}
