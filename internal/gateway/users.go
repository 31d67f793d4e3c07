package gateway

import (
	"context"
	"net/url"
)

// User is the account shape the backend returns. The core only relies on the
// user's presence and the IsAdmin flag for route gating.
type User struct {
	ID      string `json:"_id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"isAdmin"`
}

// AuthResponse is the login/register result: the account plus a bearer token.
type AuthResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// Users is the typed gateway for the users resource.
type Users struct {
	c *Client
}

// Login exchanges credentials for a session.
func (g *Users) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	body := map[string]string{"email": email, "password": password}
	var resp AuthResponse
	if err := g.c.post(ctx, "/users/login", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Register creates an account and signs it in.
func (g *Users) Register(ctx context.Context, name, email, password string) (*AuthResponse, error) {
	body := map[string]string{"name": name, "email": email, "password": password}
	var resp AuthResponse
	if err := g.c.post(ctx, "/users/register", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Profile fetches the signed-in user's account.
func (g *Users) Profile(ctx context.Context) (*User, error) {
	var u User
	if err := g.c.get(ctx, "/users/profile", nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// ProfileUpdate carries the editable profile fields.
type ProfileUpdate struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password,omitempty"`
}

// UpdateProfile updates the signed-in user's account.
func (g *Users) UpdateProfile(ctx context.Context, in ProfileUpdate) (*User, error) {
	var u User
	if err := g.c.put(ctx, "/users/profile", in, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// ForgotPassword requests a password reset mail.
func (g *Users) ForgotPassword(ctx context.Context, email string) error {
	body := map[string]string{"email": email}
	return g.c.post(ctx, "/users/forgot-password", body, nil)
}

// ResetPassword redeems a reset token.
func (g *Users) ResetPassword(ctx context.Context, token, password string) error {
	body := map[string]string{"token": token, "password": password}
	return g.c.post(ctx, "/users/reset-password", body, nil)
}

// Get fetches one user (admin).
func (g *Users) Get(ctx context.Context, id string) (*User, error) {
	var u User
	if err := g.c.get(ctx, "/users/"+url.PathEscape(id), nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// List fetches all users (admin).
func (g *Users) List(ctx context.Context) ([]User, error) {
	var users []User
	if err := g.c.get(ctx, "/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// UserUpdate carries the admin-editable account fields.
type UserUpdate struct {
	Name    string `json:"name,omitempty"`
	Email   string `json:"email,omitempty"`
	IsAdmin *bool  `json:"isAdmin,omitempty"`
}

// Update edits a user (admin).
func (g *Users) Update(ctx context.Context, id string, in UserUpdate) (*User, error) {
	var u User
	if err := g.c.put(ctx, "/users/"+url.PathEscape(id), in, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Delete removes a user (admin).
func (g *Users) Delete(ctx context.Context, id string) error {
	return g.c.delete(ctx, "/users/"+url.PathEscape(id), nil)
}
