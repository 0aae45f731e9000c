package mockauth

import (
	"path/filepath"
	"testing"

	"github.com/internlink/internlink/internal/pkg/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	return store
}

func TestSignUpThenSignIn(t *testing.T) {
	store := newTestStore(t)

	user, err := store.SignUp("intern@example.com", "whatever", "Jordan Lee", "intern")
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "INTERN", user.Role)

	store.SignOut()
	require.Nil(t, store.CurrentUser())

	// Any password is accepted once the email exists
	signedIn, err := store.SignIn("intern@example.com", "a-different-password")
	require.NoError(t, err)
	assert.Equal(t, user.ID, signedIn.ID)
	require.NotNil(t, store.CurrentUser())
}

func TestSignUpDuplicateEmail(t *testing.T) {
	store := newTestStore(t)

	_, err := store.SignUp("intern@example.com", "pw", "Jordan Lee", "INTERN")
	require.NoError(t, err)

	_, err = store.SignUp("intern@example.com", "pw", "Someone Else", "INTERN")
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)

	// Collision check is case-sensitive
	_, err = store.SignUp("Intern@example.com", "pw", "Case Variant", "INTERN")
	assert.NoError(t, err)
}

func TestSignInUnknownEmail(t *testing.T) {
	store := newTestStore(t)

	_, err := store.SignIn("nobody@example.com", "pw")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	assert.Nil(t, store.CurrentUser())
}

func TestObserverInvokedImmediatelyAndOnTransitions(t *testing.T) {
	store := newTestStore(t)

	var states []*User
	unsubscribe := store.OnAuthChange(func(current *User) {
		states = append(states, current)
	})

	require.Len(t, states, 1)
	assert.Nil(t, states[0], "initial state is signed out")

	_, err := store.SignUp("intern@example.com", "pw", "Jordan Lee", "INTERN")
	require.NoError(t, err)
	require.Len(t, states, 2)
	require.NotNil(t, states[1])
	assert.Equal(t, "intern@example.com", states[1].Email)

	store.SignOut()
	require.Len(t, states, 3)
	assert.Nil(t, states[2])

	unsubscribe()
	_, err = store.SignIn("intern@example.com", "pw")
	require.NoError(t, err)
	assert.Len(t, states, 3, "no callbacks after deregistration")
}

func TestDirectoryAndSessionSurviveReopen(t *testing.T) {
	dir := t.TempDir()

	store, err := NewStore(dir)
	require.NoError(t, err)
	user, err := store.SignUp("intern@example.com", "pw", "Jordan Lee", "INTERN")
	require.NoError(t, err)

	reopened, err := NewStore(dir)
	require.NoError(t, err)

	current := reopened.CurrentUser()
	require.NotNil(t, current)
	assert.Equal(t, user.ID, current.ID)

	signedIn, err := reopened.SignIn("intern@example.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, user.ID, signedIn.ID)
}

func TestBothKeysWrittenOnMutation(t *testing.T) {
	dir := t.TempDir()

	store, err := NewStore(dir)
	require.NoError(t, err)
	_, err = store.SignUp("intern@example.com", "pw", "Jordan Lee", "INTERN")
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(dir, usersFile))
	assert.FileExists(t, filepath.Join(dir, sessionFile))
}
