// Package authstate holds the process-wide authentication state: the
// current identity, a loading flag, and observers fired on every
// transition. The identity itself comes from a Provider, either the
// real database-backed implementation or the mock directory, chosen at
// composition time.
package authstate

import (
	"context"

	"github.com/internlink/internlink/internal/app/models"
)

// Identity is the signed-in account as the state container sees it,
// independent of which provider produced it. Mock identities carry
// uuid string IDs, real ones the formatted database ID.
type Identity struct {
	ID      string
	Email   string
	Name    string
	Role    models.RoleType
	Profile any // role-specific profile, loaded on signed-in transitions
}

// SignUpParams carries the fields needed to create an account
type SignUpParams struct {
	Email       string
	Password    string
	Name        string
	Role        models.RoleType
	CompanyName string // required for employer accounts on the real provider
}

// Provider is the identity backend behind the state container
type Provider interface {
	// Current returns the signed-in identity, nil when signed out
	Current(ctx context.Context) (*Identity, error)

	SignIn(ctx context.Context, email, password string) (*Identity, error)
	SignUp(ctx context.Context, params SignUpParams) (*Identity, error)
	SignOut(ctx context.Context) error
	UpdateProfile(ctx context.Context, name string) error
	RequestPasswordReset(ctx context.Context, email string) error

	// LoadProfile fetches the role-specific profile for an identity.
	// Providers without profiles return nil.
	LoadProfile(ctx context.Context, identity *Identity) (any, error)

	// Watch registers fn to run on every auth transition until the
	// returned function cancels it
	Watch(fn func(*Identity)) (cancel func())
}
