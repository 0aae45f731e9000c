package authstate

import (
	"context"

	"github.com/internlink/internlink/internal/app/models"
	"github.com/internlink/internlink/internal/mockauth"
)

// MockProvider adapts the file-backed mock directory to the Provider
// interface. Used when no real backend is configured.
type MockProvider struct {
	store *mockauth.Store
}

// NewMockProvider creates a provider over the mock directory
func NewMockProvider(store *mockauth.Store) *MockProvider {
	return &MockProvider{store: store}
}

func identityFromMockUser(u *mockauth.User) *Identity {
	if u == nil {
		return nil
	}
	return &Identity{
		ID:    u.ID,
		Email: u.Email,
		Name:  u.Name,
		Role:  models.RoleType(u.Role),
	}
}

// Current returns the mock session's user, nil when signed out
func (p *MockProvider) Current(_ context.Context) (*Identity, error) {
	return identityFromMockUser(p.store.CurrentUser()), nil
}

// SignIn starts a mock session. Any password is accepted once the
// email exists.
func (p *MockProvider) SignIn(_ context.Context, email, password string) (*Identity, error) {
	user, err := p.store.SignIn(email, password)
	if err != nil {
		return nil, err
	}
	return identityFromMockUser(user), nil
}

// SignUp creates a mock account and signs it in
func (p *MockProvider) SignUp(_ context.Context, params SignUpParams) (*Identity, error) {
	user, err := p.store.SignUp(params.Email, params.Password, params.Name, string(params.Role))
	if err != nil {
		return nil, err
	}
	return identityFromMockUser(user), nil
}

// SignOut clears the mock session
func (p *MockProvider) SignOut(_ context.Context) error {
	p.store.SignOut()
	return nil
}

// UpdateProfile is a no-op: the mock directory keeps only the fields
// set at sign-up
func (p *MockProvider) UpdateProfile(_ context.Context, _ string) error {
	return nil
}

// RequestPasswordReset is a no-op: mock accounts have no passwords to reset
func (p *MockProvider) RequestPasswordReset(_ context.Context, _ string) error {
	return nil
}

// LoadProfile returns nil: mock accounts carry no role profile
func (p *MockProvider) LoadProfile(_ context.Context, _ *Identity) (any, error) {
	return nil, nil
}

// Watch registers fn for auth transitions. The underlying store also
// invokes it immediately with the current state.
func (p *MockProvider) Watch(fn func(*Identity)) func() {
	return p.store.OnAuthChange(func(u *mockauth.User) {
		fn(identityFromMockUser(u))
	})
}
