package auth

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"prostage/internal/clients"
	"prostage/internal/models"
)

// State of the session controller.
type State int

const (
	// StateInitializing means the stored token has not been verified yet.
	// Consumers must not render protected content or redirect while here.
	StateInitializing State = iota
	// StateAnonymous means no valid session exists.
	StateAnonymous
	// StateAuthenticated means the most recent verification succeeded.
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateInitializing:
		return "initializing"
	case StateAnonymous:
		return "anonymous"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// Controller owns the session lifecycle: it revalidates the stored token on
// startup and keeps the current identity in step with the store. Identity is
// present exactly when the last verification against the token succeeded.
type Controller struct {
	api    *clients.AuthAPI
	store  clients.TokenStore
	logger *zap.Logger

	mu      sync.Mutex
	state   State
	user    *models.User
	loading bool
}

// New returns a controller in the initializing state.
func New(api *clients.AuthAPI, store clients.TokenStore, logger *zap.Logger) *Controller {
	return &Controller{
		api:    api,
		store:  store,
		logger: logger,
		state:  StateInitializing,
	}
}

// Init settles the startup state. With no stored token it goes straight to
// anonymous; otherwise the token is verified remotely. Any verification
// failure, network trouble included, resolves silently to anonymous with a
// cleared store — an expired token is expected steady state, not an error.
func (c *Controller) Init(ctx context.Context) {
	c.setLoading(true)
	defer c.setLoading(false)

	if _, ok := c.store.Token(); !ok {
		c.transition(StateAnonymous, nil)
		return
	}

	resp, err := c.api.VerifyToken(ctx)
	if err != nil || !resp.Valid {
		if err != nil {
			c.logger.Debug("session verification failed", zap.Error(err))
		}
		if clearErr := c.store.Clear(); clearErr != nil {
			c.logger.Warn("failed to clear stale session", zap.Error(clearErr))
		}
		c.transition(StateAnonymous, nil)
		return
	}

	user := resp.User
	if user == nil {
		// Some deployments return only {valid: true}; fall back to the
		// profile endpoint for the identity.
		user, err = c.api.Profile(ctx)
		if err != nil {
			c.logger.Debug("profile fetch after verify failed", zap.Error(err))
			if clearErr := c.store.Clear(); clearErr != nil {
				c.logger.Warn("failed to clear stale session", zap.Error(clearErr))
			}
			c.transition(StateAnonymous, nil)
			return
		}
	}
	c.transition(StateAuthenticated, user)
}

// Login authenticates and transitions to authenticated on success. On
// failure the current state is left untouched and the error surfaced.
func (c *Controller) Login(ctx context.Context, req models.LoginRequest) (*models.User, error) {
	c.setLoading(true)
	defer c.setLoading(false)

	resp, err := c.api.Login(ctx, req)
	if err != nil {
		return nil, err
	}
	user := resp.User
	c.transition(StateAuthenticated, &user)
	return &user, nil
}

// Register validates the password confirmation locally, then creates the
// account and opens a session, symmetric to Login.
func (c *Controller) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	if req.Password != req.PasswordConfirm {
		return nil, ErrPasswordMismatch
	}

	c.setLoading(true)
	defer c.setLoading(false)

	resp, err := c.api.Register(ctx, req)
	if err != nil {
		return nil, err
	}
	user := resp.User
	c.transition(StateAuthenticated, &user)
	return &user, nil
}

// Logout ends the session. The local state goes anonymous even when the
// remote call fails; it must never stay inconsistent with a cleared store.
func (c *Controller) Logout(ctx context.Context) error {
	err := c.api.Logout(ctx)
	c.transition(StateAnonymous, nil)
	return err
}

// UpdateProfile applies a partial identity update. On failure the current
// identity is left unchanged.
func (c *Controller) UpdateProfile(ctx context.Context, update models.ProfileUpdate) (*models.User, error) {
	user, err := c.api.UpdateProfile(ctx, update)
	if err != nil {
		return nil, err
	}
	c.transition(StateAuthenticated, user)
	return user, nil
}

// ChangePassword rotates the password; the store picks up the reissued token.
func (c *Controller) ChangePassword(ctx context.Context, oldPassword, newPassword, newPasswordConfirm string) error {
	if newPassword != newPasswordConfirm {
		return ErrPasswordMismatch
	}
	_, err := c.api.ChangePassword(ctx, oldPassword, newPassword, newPasswordConfirm)
	return err
}

// User returns the current identity, or nil when anonymous.
func (c *Controller) User() *models.User {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.user
}

// State returns the current lifecycle state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// IsAuthenticated reports whether a verified session is active.
func (c *Controller) IsAuthenticated() bool {
	return c.State() == StateAuthenticated
}

// IsLoading reports whether a session operation is still in flight.
func (c *Controller) IsLoading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

func (c *Controller) transition(state State, user *models.User) {
	c.mu.Lock()
	c.state = state
	c.user = user
	c.mu.Unlock()
}

func (c *Controller) setLoading(v bool) {
	c.mu.Lock()
	c.loading = v
	c.mu.Unlock()
}
