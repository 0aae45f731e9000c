package authstate

import (
	"context"
	"strconv"
	"sync"

	"github.com/internlink/internlink/internal/app/models"
	"github.com/internlink/internlink/internal/app/models/dto"
	"github.com/internlink/internlink/internal/app/services"
	"github.com/internlink/internlink/internal/pkg/apperrors"
)

// DBProvider is the real identity backend over the auth and profile
// services. It tracks the session it opened and fires its watchers on
// every transition it causes.
type DBProvider struct {
	auth     *services.AuthService
	profiles *services.ProfileService

	mu        sync.Mutex
	current   *Identity
	watchers  map[int64]func(*Identity)
	nextWatch int64
}

// NewDBProvider creates the database-backed provider
func NewDBProvider(auth *services.AuthService, profiles *services.ProfileService) *DBProvider {
	return &DBProvider{
		auth:     auth,
		profiles: profiles,
		watchers: make(map[int64]func(*Identity)),
	}
}

func identityFromUser(u *models.User) *Identity {
	if u == nil {
		return nil
	}
	return &Identity{
		ID:    strconv.FormatInt(u.ID, 10),
		Email: u.Email,
		Name:  u.Name,
		Role:  u.UserType,
	}
}

func (p *DBProvider) setCurrent(identity *Identity) {
	p.mu.Lock()
	p.current = identity
	watchers := make([]func(*Identity), 0, len(p.watchers))
	for _, w := range p.watchers {
		watchers = append(watchers, w)
	}
	p.mu.Unlock()

	for _, w := range watchers {
		w(identity)
	}
}

// Current returns the session this provider opened, nil when signed out
func (p *DBProvider) Current(_ context.Context) (*Identity, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current, nil
}

// SignIn authenticates against the database and opens a session
func (p *DBProvider) SignIn(ctx context.Context, email, password string) (*Identity, error) {
	user, _, err := p.auth.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}

	identity := identityFromUser(user)
	p.setCurrent(identity)
	return identity, nil
}

// SignUp registers an account and opens a session for it
func (p *DBProvider) SignUp(ctx context.Context, params SignUpParams) (*Identity, error) {
	user, err := p.auth.Register(ctx, &dto.RegisterRequest{
		Email:       params.Email,
		Password:    params.Password,
		Name:        params.Name,
		UserType:    params.Role,
		CompanyName: params.CompanyName,
	})
	if err != nil {
		return nil, err
	}

	identity := identityFromUser(user)
	p.setCurrent(identity)
	return identity, nil
}

// SignOut closes the session
func (p *DBProvider) SignOut(_ context.Context) error {
	p.setCurrent(nil)
	return nil
}

// UpdateProfile changes the signed-in account's display name
func (p *DBProvider) UpdateProfile(ctx context.Context, name string) error {
	p.mu.Lock()
	current := p.current
	p.mu.Unlock()
	if current == nil {
		return apperrors.ErrInvalidCredentials
	}

	userID, err := strconv.ParseInt(current.ID, 10, 64)
	if err != nil {
		return err
	}

	user, err := p.profiles.UpdateAccount(ctx, userID, name, nil)
	if err != nil {
		return err
	}

	p.setCurrent(identityFromUser(user))
	return nil
}

// RequestPasswordReset starts the reset flow for an email
func (p *DBProvider) RequestPasswordReset(ctx context.Context, email string) error {
	return p.auth.ForgotPassword(ctx, email)
}

// LoadProfile fetches the role-specific profile for an identity
func (p *DBProvider) LoadProfile(ctx context.Context, identity *Identity) (any, error) {
	if identity == nil {
		return nil, nil
	}

	userID, err := strconv.ParseInt(identity.ID, 10, 64)
	if err != nil {
		return nil, err
	}

	switch identity.Role {
	case models.RoleIntern:
		return p.profiles.GetInternProfile(ctx, userID)
	case models.RoleEmployer:
		return p.profiles.GetEmployerProfile(ctx, userID)
	default:
		return nil, nil
	}
}

// Watch registers fn for auth transitions until cancelled
func (p *DBProvider) Watch(fn func(*Identity)) func() {
	p.mu.Lock()
	p.nextWatch++
	id := p.nextWatch
	p.watchers[id] = fn
	p.mu.Unlock()

	return func() {
		p.mu.Lock()
		delete(p.watchers, id)
		p.mu.Unlock()
	}
}
