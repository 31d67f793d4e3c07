package session

import (
	"context"
	"log"

	"github.com/example/storefront-client/internal/gateway"
)

// User is the signed-in account as the session layer sees it. Presence of a
// user and its IsAdmin flag are all the route guards rely on.
type User struct {
	ID      string
	Name    string
	Email   string
	IsAdmin bool
}

// Accounts is the slice of the users gateway the session layer needs.
type Accounts interface {
	Login(ctx context.Context, email, password string) (*gateway.AuthResponse, error)
	Register(ctx context.Context, name, email, password string) (*gateway.AuthResponse, error)
	Profile(ctx context.Context) (*gateway.User, error)
}

// TokenStore persists the bearer token across sessions.
type TokenStore interface {
	Save(token string) error
	Load() (string, bool, error)
	Clear() error
}

// Store holds the session for one client: the current user, the bearer
// token, and the in-flight/error flags. The flags never persist — only the
// token does. Implements gateway.TokenSource.
type Store struct {
	accounts Accounts
	tokens   TokenStore

	user    *User
	token   string
	loading bool
	lastErr string
}

// NewStore creates a session store and restores any persisted token. The
// user itself is not restored; it is re-fetched on the first guarded route.
func NewStore(accounts Accounts, tokens TokenStore) *Store {
	s := &Store{accounts: accounts, tokens: tokens}
	if token, ok, err := tokens.Load(); err == nil && ok {
		if claims, err := ParseClaims(token); err != nil {
			// Stale or malformed token: drop it rather than carry it around.
			log.Printf("[Session] discarding persisted token: %v", err)
			_ = tokens.Clear()
		} else {
			s.token = token
			log.Printf("[Session] restored session for %s", claims.Email)
		}
	}
	return s
}

// Token returns the current bearer token, empty when anonymous.
func (s *Store) Token() string {
	return s.token
}

// Current returns the signed-in user, nil when anonymous or not yet fetched.
func (s *Store) Current() *User {
	return s.user
}

// Loading reports whether a session operation is in flight.
func (s *Store) Loading() bool {
	return s.loading
}

// LastError returns the message of the last failed session operation.
func (s *Store) LastError() string {
	return s.lastErr
}

// Login exchanges credentials for a session and persists the token.
func (s *Store) Login(ctx context.Context, email, password string) (*User, error) {
	return s.authenticate(func() (*gateway.AuthResponse, error) {
		return s.accounts.Login(ctx, email, password)
	})
}

// Register creates an account, signs it in, and persists the token.
func (s *Store) Register(ctx context.Context, name, email, password string) (*User, error) {
	return s.authenticate(func() (*gateway.AuthResponse, error) {
		return s.accounts.Register(ctx, name, email, password)
	})
}

func (s *Store) authenticate(call func() (*gateway.AuthResponse, error)) (*User, error) {
	s.loading = true
	s.lastErr = ""
	defer func() { s.loading = false }()

	resp, err := call()
	if err != nil {
		s.lastErr = errText(err)
		return nil, err
	}

	s.token = resp.Token
	s.user = fromGateway(resp.User)
	if err := s.tokens.Save(resp.Token); err != nil {
		// The session still works for this run; only persistence failed.
		log.Printf("[Session] failed to persist token: %v", err)
	}
	return s.user, nil
}

// Refresh re-fetches the profile for the held token.
func (s *Store) Refresh(ctx context.Context) (*User, error) {
	if s.token == "" {
		return nil, nil
	}

	s.loading = true
	s.lastErr = ""
	defer func() { s.loading = false }()

	u, err := s.accounts.Profile(ctx)
	if err != nil {
		s.lastErr = errText(err)
		return nil, err
	}
	s.user = fromGateway(*u)
	return s.user, nil
}

// Expire drops the session without a server round-trip. Wired to the
// gateway's 401 hook so any unauthorized response anywhere signs the
// client out.
func (s *Store) Expire() {
	if s.token != "" {
		log.Printf("[Session] expired, clearing token")
	}
	s.user = nil
	s.token = ""
	_ = s.tokens.Clear()
}

// Logout signs out locally.
func (s *Store) Logout() {
	s.Expire()
	s.lastErr = ""
}

func fromGateway(u gateway.User) *User {
	return &User{ID: u.ID, Name: u.Name, Email: u.Email, IsAdmin: u.IsAdmin}
}

func errText(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
