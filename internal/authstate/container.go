package authstate

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"
)

// State is the container's published view: the current identity and
// whether the initial fetch is still in flight
type State struct {
	User    *Identity
	Loading bool
}

// SignedIn reports whether an identity is present
func (s State) SignedIn() bool {
	return s.User != nil
}

// Container owns the process-wide auth state. A single goroutine applies
// transitions, so observers always see them in order. Start fetches the
// current identity and subscribes to the provider; Stop deregisters and
// drains the writer.
type Container struct {
	provider Provider
	logger   zerolog.Logger

	mu        sync.Mutex
	state     State
	observers map[int64]func(State)
	nextObsID int64
	started   bool

	updates chan *Identity
	done    chan struct{}
	cancel  func()
	wg      sync.WaitGroup
}

// New creates a stopped container over a provider
func New(provider Provider, logger zerolog.Logger) *Container {
	return &Container{
		provider:  provider,
		logger:    logger,
		state:     State{Loading: true},
		observers: make(map[int64]func(State)),
	}
}

// Start fetches the current identity, then subscribes to auth
// transitions. Safe to call once per Stop.
func (c *Container) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.started {
		c.mu.Unlock()
		return errors.New("auth state container already started")
	}
	c.started = true
	c.state = State{Loading: true}
	c.mu.Unlock()

	identity, err := c.provider.Current(ctx)
	if err != nil {
		// Start still completes signed out; the failure is surfaced in logs
		c.logger.Error().Err(err).Msg("Failed to fetch current identity")
		identity = nil
	}
	c.apply(ctx, identity)

	c.updates = make(chan *Identity, 8)
	c.done = make(chan struct{})
	c.cancel = c.provider.Watch(func(id *Identity) {
		select {
		case c.updates <- id:
		case <-c.done:
		}
	})

	c.wg.Add(1)
	go c.loop(ctx)

	return nil
}

// loop is the single writer applying transitions in arrival order
func (c *Container) loop(ctx context.Context) {
	defer c.wg.Done()
	for {
		select {
		case <-c.done:
			return
		case identity := <-c.updates:
			c.apply(ctx, identity)
		}
	}
}

// apply loads the role profile for signed-in transitions, publishes the
// new state and fires the observers
func (c *Container) apply(ctx context.Context, identity *Identity) {
	if identity != nil {
		profile, err := c.provider.LoadProfile(ctx, identity)
		if err != nil {
			c.logger.Error().Err(err).Str("userID", identity.ID).Msg("Failed to load role profile")
		} else {
			identity.Profile = profile
		}
	}

	state := State{User: identity, Loading: false}

	c.mu.Lock()
	c.state = state
	observers := make([]func(State), 0, len(c.observers))
	for _, obs := range c.observers {
		observers = append(observers, obs)
	}
	c.mu.Unlock()

	for _, obs := range observers {
		obs(state)
	}
}

// Stop deregisters from the provider and stops the writer goroutine
func (c *Container) Stop() {
	c.mu.Lock()
	if !c.started {
		c.mu.Unlock()
		return
	}
	c.started = false
	c.mu.Unlock()

	if c.cancel != nil {
		c.cancel()
	}
	close(c.done)
	c.wg.Wait()
}

// CurrentState returns the latest published state
func (c *Container) CurrentState() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// OnChange registers an observer, invokes it immediately with the
// current state, and returns its deregistration function
func (c *Container) OnChange(fn func(State)) func() {
	c.mu.Lock()
	c.nextObsID++
	id := c.nextObsID
	c.observers[id] = fn
	state := c.state
	c.mu.Unlock()

	fn(state)

	return func() {
		c.mu.Lock()
		delete(c.observers, id)
		c.mu.Unlock()
	}
}

// SignIn delegates to the provider. Failures pass through untouched.
func (c *Container) SignIn(ctx context.Context, email, password string) (*Identity, error) {
	return c.provider.SignIn(ctx, email, password)
}

// SignUp delegates to the provider
func (c *Container) SignUp(ctx context.Context, params SignUpParams) (*Identity, error) {
	return c.provider.SignUp(ctx, params)
}

// SignOut delegates to the provider
func (c *Container) SignOut(ctx context.Context) error {
	return c.provider.SignOut(ctx)
}

// UpdateProfile delegates to the provider
func (c *Container) UpdateProfile(ctx context.Context, name string) error {
	return c.provider.UpdateProfile(ctx, name)
}

// RequestPasswordReset delegates to the provider
func (c *Container) RequestPasswordReset(ctx context.Context, email string) error {
	return c.provider.RequestPasswordReset(ctx, email)
}
