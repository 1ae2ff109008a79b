package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"prostage/internal/models"
)

// AuthAPI covers the auth resource. Login, Register and ChangePassword
// persist the returned token into the store as a side effect.
type AuthAPI struct {
	base   *BaseClient
	logger *zap.Logger
}

// NewAuthAPI returns client.
func NewAuthAPI(base *BaseClient, logger *zap.Logger) *AuthAPI {
	return &AuthAPI{base: base, logger: logger}
}

// Login exchanges credentials for a session token.
func (c *AuthAPI) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	body, err := c.base.do(ctx, http.MethodPost, "/auth/login/", nil, req, nil, "login failed")
	if err != nil {
		return nil, err
	}
	var resp models.AuthResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode login response: %w", err)
	}
	if resp.Token != "" {
		if err := c.base.tokens.Save(resp.Token); err != nil {
			return nil, fmt.Errorf("persist session token: %w", err)
		}
	}
	return &resp, nil
}

// Register creates an account and opens a session for it.
func (c *AuthAPI) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	body, err := c.base.do(ctx, http.MethodPost, "/auth/register/", nil, req, nil, "registration failed")
	if err != nil {
		return nil, err
	}
	var resp models.AuthResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode register response: %w", err)
	}
	if resp.Token != "" {
		if err := c.base.tokens.Save(resp.Token); err != nil {
			return nil, fmt.Errorf("persist session token: %w", err)
		}
	}
	return &resp, nil
}

// Logout closes the remote session and clears the store. The remote call is
// best-effort: the local session ends either way.
func (c *AuthAPI) Logout(ctx context.Context) error {
	if _, ok := c.base.tokens.Token(); ok {
		if _, err := c.base.do(ctx, http.MethodPost, "/auth/logout/", nil, nil, nil, "logout failed"); err != nil {
			c.logger.Warn("remote logout failed, clearing local session anyway", zap.Error(err))
		}
	}
	return c.base.tokens.Clear()
}

// Profile fetches the authenticated user.
func (c *AuthAPI) Profile(ctx context.Context) (*models.User, error) {
	if err := c.base.requireToken(); err != nil {
		return nil, err
	}
	body, err := c.base.do(ctx, http.MethodGet, "/auth/profile/", nil, nil, nil, "failed to fetch user profile")
	if err != nil {
		return nil, err
	}
	var user models.User
	if err := json.Unmarshal(body, &user); err != nil {
		return nil, fmt.Errorf("decode user profile: %w", err)
	}
	return &user, nil
}

// UpdateProfile applies a partial update and returns the refreshed user.
func (c *AuthAPI) UpdateProfile(ctx context.Context, update models.ProfileUpdate) (*models.User, error) {
	if err := c.base.requireToken(); err != nil {
		return nil, err
	}
	body, err := c.base.do(ctx, http.MethodPut, "/auth/profile/update/", nil, update, nil, "failed to update profile")
	if err != nil {
		return nil, err
	}
	var user models.User
	if err := json.Unmarshal(body, &user); err != nil {
		return nil, fmt.Errorf("decode updated profile: %w", err)
	}
	return &user, nil
}

// VerifyToken checks the stored token against the server. An invalid or
// rejected token is a steady-state outcome, not an error: the store is
// cleared and a not-valid result returned.
func (c *AuthAPI) VerifyToken(ctx context.Context) (*models.VerifyResponse, error) {
	if _, ok := c.base.tokens.Token(); !ok {
		return &models.VerifyResponse{Valid: false}, nil
	}
	body, err := c.base.do(ctx, http.MethodGet, "/auth/verify-token/", nil, nil, nil, "token verification failed")
	if err != nil {
		c.logger.Debug("token verification failed", zap.Error(err))
		if clearErr := c.base.tokens.Clear(); clearErr != nil {
			c.logger.Warn("failed to clear invalid session", zap.Error(clearErr))
		}
		return &models.VerifyResponse{Valid: false}, nil
	}
	var resp models.VerifyResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode verify response: %w", err)
	}
	return &resp, nil
}

// changePasswordRequest matches POST auth/change-password/.
type changePasswordRequest struct {
	OldPassword        string `json:"old_password"`
	NewPassword        string `json:"new_password"`
	NewPasswordConfirm string `json:"new_password_confirm"`
}

// ChangePasswordResponse is returned by the change-password endpoint.
type ChangePasswordResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

// ChangePassword rotates the password and stores the reissued token.
func (c *AuthAPI) ChangePassword(ctx context.Context, oldPassword, newPassword, newPasswordConfirm string) (*ChangePasswordResponse, error) {
	if err := c.base.requireToken(); err != nil {
		return nil, err
	}
	req := changePasswordRequest{
		OldPassword:        oldPassword,
		NewPassword:        newPassword,
		NewPasswordConfirm: newPasswordConfirm,
	}
	body, err := c.base.do(ctx, http.MethodPost, "/auth/change-password/", nil, req, nil, "failed to change password")
	if err != nil {
		return nil, err
	}
	var resp ChangePasswordResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode change password response: %w", err)
	}
	if resp.Token != "" {
		if err := c.base.tokens.Save(resp.Token); err != nil {
			return nil, fmt.Errorf("persist session token: %w", err)
		}
	}
	return &resp, nil
}
