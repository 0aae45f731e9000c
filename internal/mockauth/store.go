// Package mockauth is the file-backed user directory used when no real
// backend is configured. It mimics a managed auth service closely enough
// for the rest of the service to run unchanged: accounts, a single
// current session, and auth-change observers.
package mockauth

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/internlink/internlink/internal/pkg/apperrors"
	"github.com/internlink/internlink/internal/pkg/logger"
)

// Storage keys. The directory and the session pointer are serialized to
// two separate files on every mutation.
const (
	usersFile   = "mock_users.json"
	sessionFile = "mock_current_user.json"
)

// User is one mock account. Passwords are accepted but never stored or
// verified; the directory only proves the email exists.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// Observer is invoked with the current user (nil when signed out)
type Observer func(current *User)

// Store holds the directory and the current session
type Store struct {
	mu        sync.Mutex
	dir       string
	users     []User
	current   *User
	observers map[int64]Observer
	nextObsID int64
}

// NewStore opens (or creates) the store rooted at dir
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	s := &Store{
		dir:       dir,
		users:     []User{},
		observers: make(map[int64]Observer),
	}

	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) load() error {
	usersData, err := os.ReadFile(filepath.Join(s.dir, usersFile))
	if err == nil {
		if err := json.Unmarshal(usersData, &s.users); err != nil {
			logger.Warn().Err(err).Msg("Mock user directory unreadable, starting empty")
			s.users = []User{}
		}
	} else if !os.IsNotExist(err) {
		return err
	}

	sessionData, err := os.ReadFile(filepath.Join(s.dir, sessionFile))
	if err == nil && len(sessionData) > 0 {
		var current User
		if err := json.Unmarshal(sessionData, &current); err == nil {
			s.current = &current
		}
	} else if err != nil && !os.IsNotExist(err) {
		return err
	}

	return nil
}

// persist writes both keys. Called with the lock held after every mutation.
func (s *Store) persist() {
	usersData, err := json.MarshalIndent(s.users, "", "  ")
	if err == nil {
		err = os.WriteFile(filepath.Join(s.dir, usersFile), usersData, 0o644)
	}
	if err != nil {
		logger.Error().Err(err).Msg("Failed to persist mock user directory")
	}

	sessionPath := filepath.Join(s.dir, sessionFile)
	if s.current == nil {
		if err := os.WriteFile(sessionPath, []byte("null"), 0o644); err != nil {
			logger.Error().Err(err).Msg("Failed to persist mock session")
		}
		return
	}
	sessionData, err := json.Marshal(s.current)
	if err == nil {
		err = os.WriteFile(sessionPath, sessionData, 0o644)
	}
	if err != nil {
		logger.Error().Err(err).Msg("Failed to persist mock session")
	}
}

// notify snapshots the observers and fires them outside the lock
func (s *Store) notify(current *User) {
	s.mu.Lock()
	observers := make([]Observer, 0, len(s.observers))
	for _, obs := range s.observers {
		observers = append(observers, obs)
	}
	s.mu.Unlock()

	for _, obs := range observers {
		obs(cloneUser(current))
	}
}

func cloneUser(u *User) *User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

// SignUp creates an account and signs it in. Email collision is
// case-sensitive: Admin@x and admin@x are distinct accounts.
func (s *Store) SignUp(email, password, name, role string) (*User, error) {
	_ = password // accepted, never stored

	s.mu.Lock()
	for _, u := range s.users {
		if u.Email == email {
			s.mu.Unlock()
			return nil, apperrors.ErrEmailAlreadyExists
		}
	}

	user := User{
		ID:        uuid.New().String(),
		Email:     email,
		Name:      name,
		Role:      strings.ToUpper(role),
		CreatedAt: time.Now(),
	}
	s.users = append(s.users, user)
	s.current = &user
	s.persist()
	s.mu.Unlock()

	logger.Info().Str("email", email).Str("role", user.Role).Msg("Mock sign-up")
	s.notify(&user)
	return cloneUser(&user), nil
}

// SignIn starts a session for an existing account. Any password is
// accepted once the email is found.
func (s *Store) SignIn(email, password string) (*User, error) {
	_ = password

	s.mu.Lock()
	var found *User
	for i := range s.users {
		if s.users[i].Email == email {
			found = &s.users[i]
			break
		}
	}
	if found == nil {
		s.mu.Unlock()
		return nil, apperrors.ErrInvalidCredentials
	}

	user := *found
	s.current = &user
	s.persist()
	s.mu.Unlock()

	logger.Info().Str("email", email).Msg("Mock sign-in")
	s.notify(&user)
	return cloneUser(&user), nil
}

// SignOut clears the session
func (s *Store) SignOut() {
	s.mu.Lock()
	s.current = nil
	s.persist()
	s.mu.Unlock()

	logger.Info().Msg("Mock sign-out")
	s.notify(nil)
}

// CurrentUser returns the signed-in user, nil when signed out
func (s *Store) CurrentUser() *User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneUser(s.current)
}

// OnAuthChange registers an observer. The observer is invoked immediately
// with the current state, then on every transition, until the returned
// function deregisters it.
func (s *Store) OnAuthChange(obs Observer) func() {
	s.mu.Lock()
	s.nextObsID++
	id := s.nextObsID
	s.observers[id] = obs
	current := cloneUser(s.current)
	s.mu.Unlock()

	obs(current)

	return func() {
		s.mu.Lock()
		delete(s.observers, id)
		s.mu.Unlock()
	}
}
