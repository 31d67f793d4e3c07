package session

import (
	"context"
	"errors"
	"log"
	"time"
)

// Decision is a route guard's verdict.
type Decision string

const (
	Allow         Decision = "allow"
	RedirectLogin Decision = "login"
	RedirectHome  Decision = "home"
)

// DefaultGuardTimeout bounds how long a guard waits on the session check
// before deciding with whatever it has. Keeps a dead backend from pinning
// the client on a spinner forever.
const DefaultGuardTimeout = 5 * time.Second

// Guard gates routes on the session. The session check runs under a
// timeout-bound context; on expiry the loading state is abandoned and the
// guard decides on the current user, which for an unresolved session means
// the login redirect.
type Guard struct {
	sessions *Store
	timeout  time.Duration
}

// NewGuard creates a guard over a session store. A non-positive timeout
// falls back to the default.
func NewGuard(sessions *Store, timeout time.Duration) *Guard {
	if timeout <= 0 {
		timeout = DefaultGuardTimeout
	}
	return &Guard{sessions: sessions, timeout: timeout}
}

// RequireUser admits any signed-in user.
func (g *Guard) RequireUser(ctx context.Context) Decision {
	user := g.resolve(ctx)
	if user == nil {
		return RedirectLogin
	}
	return Allow
}

// RequireAdmin admits only admins. A signed-in non-admin goes home, an
// anonymous client goes to login.
func (g *Guard) RequireAdmin(ctx context.Context) Decision {
	user := g.resolve(ctx)
	switch {
	case user == nil:
		return RedirectLogin
	case !user.IsAdmin:
		return RedirectHome
	default:
		return Allow
	}
}

// resolve returns the session's user, refreshing it from the backend under
// the guard timeout when it has not been fetched yet.
func (g *Guard) resolve(ctx context.Context) *User {
	if user := g.sessions.Current(); user != nil {
		return user
	}
	if g.sessions.Token() == "" {
		return nil
	}

	checkCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	user, err := g.sessions.Refresh(checkCtx)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			log.Printf("[Guard] session check timed out after %s", g.timeout)
		}
		return nil
	}
	return user
}
