package session

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/storefront-client/internal/gateway"
)

// memTokens is an in-memory TokenStore.
type memTokens struct {
	token string
	ok    bool
}

func (m *memTokens) Save(token string) error     { m.token, m.ok = token, true; return nil }
func (m *memTokens) Load() (string, bool, error) { return m.token, m.ok, nil }
func (m *memTokens) Clear() error                { m.token, m.ok = "", false; return nil }

// mockAccounts is a hand-rolled Accounts double.
type mockAccounts struct {
	LoginResp    *gateway.AuthResponse
	LoginErr     error
	ProfileResp  *gateway.User
	ProfileErr   error
	ProfileDelay time.Duration
	ProfileCalls int
}

func (m *mockAccounts) Login(ctx context.Context, email, password string) (*gateway.AuthResponse, error) {
	if m.LoginErr != nil {
		return nil, m.LoginErr
	}
	return m.LoginResp, nil
}

func (m *mockAccounts) Register(ctx context.Context, name, email, password string) (*gateway.AuthResponse, error) {
	return m.Login(ctx, email, password)
}

func (m *mockAccounts) Profile(ctx context.Context) (*gateway.User, error) {
	m.ProfileCalls++
	if m.ProfileDelay > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(m.ProfileDelay):
		}
	}
	if m.ProfileErr != nil {
		return nil, m.ProfileErr
	}
	return m.ProfileResp, nil
}

func signedToken(t *testing.T, role string, expiresIn time.Duration) string {
	t.Helper()
	claims := Claims{
		UserID: "user-1",
		Email:  "user@example.com",
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Subject:   "user-1",
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

// ============================================
// Claims Tests
// ============================================

func TestParseClaims(t *testing.T) {
	claims, err := ParseClaims(signedToken(t, "admin", time.Hour))

	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "user@example.com", claims.Email)
	assert.True(t, claims.IsAdmin())
}

func TestParseClaims_Expired(t *testing.T) {
	_, err := ParseClaims(signedToken(t, "customer", -time.Minute))

	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestParseClaims_Garbage(t *testing.T) {
	_, err := ParseClaims("not-a-token")

	assert.ErrorIs(t, err, ErrInvalidToken)
}

// ============================================
// Store Tests
// ============================================

func TestStore_LoginPersistsToken(t *testing.T) {
	tokens := &memTokens{}
	accounts := &mockAccounts{LoginResp: &gateway.AuthResponse{
		User:  gateway.User{ID: "user-1", Name: "Jan", Email: "jan@example.com"},
		Token: signedToken(t, "customer", time.Hour),
	}}
	s := NewStore(accounts, tokens)

	user, err := s.Login(context.Background(), "jan@example.com", "pw")

	require.NoError(t, err)
	assert.Equal(t, "user-1", user.ID)
	assert.NotEmpty(t, s.Token())
	assert.True(t, tokens.ok, "token persisted")
	assert.False(t, s.Loading())
}

func TestStore_LoginFailureSurfacesMessage(t *testing.T) {
	accounts := &mockAccounts{LoginErr: &gateway.StatusError{Code: 401, Message: "invalid credentials"}}
	s := NewStore(accounts, &memTokens{})

	_, err := s.Login(context.Background(), "jan@example.com", "bad")

	require.Error(t, err)
	assert.Contains(t, s.LastError(), "invalid credentials")
	assert.Nil(t, s.Current())
}

func TestNewStore_RestoresPersistedToken(t *testing.T) {
	tokens := &memTokens{}
	require.NoError(t, tokens.Save(signedToken(t, "customer", time.Hour)))

	s := NewStore(&mockAccounts{}, tokens)

	assert.NotEmpty(t, s.Token())
	assert.Nil(t, s.Current(), "user is fetched lazily, not restored")
}

func TestNewStore_DiscardsExpiredToken(t *testing.T) {
	tokens := &memTokens{}
	require.NoError(t, tokens.Save(signedToken(t, "customer", -time.Minute)))

	s := NewStore(&mockAccounts{}, tokens)

	assert.Empty(t, s.Token())
	assert.False(t, tokens.ok, "stale token cleared from storage")
}

func TestStore_ExpireClearsEverything(t *testing.T) {
	tokens := &memTokens{}
	accounts := &mockAccounts{LoginResp: &gateway.AuthResponse{
		User:  gateway.User{ID: "user-1"},
		Token: signedToken(t, "customer", time.Hour),
	}}
	s := NewStore(accounts, tokens)
	_, err := s.Login(context.Background(), "a@b.c", "pw")
	require.NoError(t, err)

	s.Expire()

	assert.Nil(t, s.Current())
	assert.Empty(t, s.Token())
	assert.False(t, tokens.ok)
}

// ============================================
// Guard Tests
// ============================================

func TestGuard_AnonymousRedirectsToLogin(t *testing.T) {
	s := NewStore(&mockAccounts{}, &memTokens{})
	g := NewGuard(s, time.Second)

	assert.Equal(t, RedirectLogin, g.RequireUser(context.Background()))
	assert.Equal(t, RedirectLogin, g.RequireAdmin(context.Background()))
}

func TestGuard_TokenResolvesViaProfile(t *testing.T) {
	tokens := &memTokens{}
	require.NoError(t, tokens.Save(signedToken(t, "customer", time.Hour)))
	accounts := &mockAccounts{ProfileResp: &gateway.User{ID: "user-1", IsAdmin: false}}
	g := NewGuard(NewStore(accounts, tokens), time.Second)

	assert.Equal(t, Allow, g.RequireUser(context.Background()))
	assert.Equal(t, 1, accounts.ProfileCalls)

	// Second pass reuses the resolved user without another fetch.
	assert.Equal(t, Allow, g.RequireUser(context.Background()))
	assert.Equal(t, 1, accounts.ProfileCalls)
}

func TestGuard_AdminRoleEnforced(t *testing.T) {
	tokens := &memTokens{}
	require.NoError(t, tokens.Save(signedToken(t, "customer", time.Hour)))
	accounts := &mockAccounts{ProfileResp: &gateway.User{ID: "user-1", IsAdmin: false}}
	g := NewGuard(NewStore(accounts, tokens), time.Second)

	assert.Equal(t, RedirectHome, g.RequireAdmin(context.Background()))
}

func TestGuard_SlowSessionCheckTimesOut(t *testing.T) {
	tokens := &memTokens{}
	require.NoError(t, tokens.Save(signedToken(t, "customer", time.Hour)))
	accounts := &mockAccounts{
		ProfileResp:  &gateway.User{ID: "user-1"},
		ProfileDelay: time.Minute,
	}
	store := NewStore(accounts, tokens)
	g := NewGuard(store, 20*time.Millisecond)

	start := time.Now()
	decision := g.RequireUser(context.Background())

	assert.Equal(t, RedirectLogin, decision, "unresolved session falls back to login")
	assert.Less(t, time.Since(start), time.Second, "watchdog fires instead of hanging")
	assert.False(t, store.Loading(), "loading flag is cleared after the timeout")
}
