package authstate

import (
	"context"
	"testing"
	"time"

	"github.com/internlink/internlink/internal/app/models"
	"github.com/internlink/internlink/internal/mockauth"
	"github.com/internlink/internlink/internal/pkg/apperrors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockContainer(t *testing.T) (*Container, *mockauth.Store) {
	t.Helper()

	store, err := mockauth.NewStore(t.TempDir())
	require.NoError(t, err)

	return New(NewMockProvider(store), zerolog.Nop()), store
}

func waitForState(t *testing.T, states <-chan State, match func(State) bool) State {
	t.Helper()

	deadline := time.After(2 * time.Second)
	for {
		select {
		case s := <-states:
			if match(s) {
				return s
			}
		case <-deadline:
			t.Fatal("timed out waiting for auth state")
		}
	}
}

func TestStartPublishesSignedOutState(t *testing.T) {
	c, _ := newMockContainer(t)

	require.Equal(t, State{Loading: true}, c.CurrentState())

	require.NoError(t, c.Start(context.Background()))
	defer c.Stop()

	state := c.CurrentState()
	assert.False(t, state.Loading)
	assert.False(t, state.SignedIn())
}

func TestSignUpTransitionReachesObservers(t *testing.T) {
	c, _ := newMockContainer(t)
	require.NoError(t, c.Start(context.Background()))
	defer c.Stop()

	states := make(chan State, 16)
	cancel := c.OnChange(func(s State) { states <- s })
	defer cancel()

	// Immediate invocation with the current (signed out) state
	first := waitForState(t, states, func(State) bool { return true })
	assert.False(t, first.SignedIn())

	_, err := c.SignUp(context.Background(), SignUpParams{
		Email:    "jordan@example.com",
		Password: "whatever1",
		Name:     "Jordan Lee",
		Role:     models.RoleIntern,
	})
	require.NoError(t, err)

	signedIn := waitForState(t, states, State.SignedIn)
	assert.Equal(t, "jordan@example.com", signedIn.User.Email)
	assert.Equal(t, models.RoleIntern, signedIn.User.Role)

	require.NoError(t, c.SignOut(context.Background()))
	waitForState(t, states, func(s State) bool { return !s.SignedIn() })
}

func TestSignInFailurePassesThrough(t *testing.T) {
	c, _ := newMockContainer(t)
	require.NoError(t, c.Start(context.Background()))
	defer c.Stop()

	_, err := c.SignIn(context.Background(), "nobody@example.com", "pw")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	// The failed attempt must not flip the state
	assert.False(t, c.CurrentState().SignedIn())
}

func TestStartRestoresPersistedSession(t *testing.T) {
	dir := t.TempDir()

	store, err := mockauth.NewStore(dir)
	require.NoError(t, err)
	_, err = store.SignUp("casey@example.com", "pw", "Casey", "EMPLOYER")
	require.NoError(t, err)

	// A fresh store over the same directory still has the session
	reopened, err := mockauth.NewStore(dir)
	require.NoError(t, err)

	c := New(NewMockProvider(reopened), zerolog.Nop())
	require.NoError(t, c.Start(context.Background()))
	defer c.Stop()

	state := c.CurrentState()
	require.True(t, state.SignedIn())
	assert.Equal(t, "casey@example.com", state.User.Email)
	assert.Equal(t, models.RoleEmployer, state.User.Role)
}

func TestOnChangeDeregistration(t *testing.T) {
	c, _ := newMockContainer(t)
	require.NoError(t, c.Start(context.Background()))
	defer c.Stop()

	states := make(chan State, 16)
	cancel := c.OnChange(func(s State) { states <- s })
	waitForState(t, states, func(State) bool { return true })
	cancel()

	_, err := c.SignUp(context.Background(), SignUpParams{
		Email:    "gone@example.com",
		Password: "pw",
		Name:     "Gone",
		Role:     models.RoleIntern,
	})
	require.NoError(t, err)

	select {
	case s := <-states:
		t.Fatalf("deregistered observer still invoked with %+v", s)
	case <-time.After(100 * time.Millisecond):
	}
}
