package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"prostage/internal/auth"
	"prostage/internal/models"
)

// AuthCommands covers the session lifecycle: login, register, logout,
// whoami, profile update, change-password.
type AuthCommands struct {
	controller *auth.Controller
	out        io.Writer
}

// NewAuthCommands returns command handler.
func NewAuthCommands(controller *auth.Controller, out io.Writer) *AuthCommands {
	return &AuthCommands{controller: controller, out: out}
}

// Login handles `prostage login --email --password`.
func (c *AuthCommands) Login(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *email == "" || *password == "" {
		return fmt.Errorf("usage: login --email <email> --password <password>")
	}

	user, err := c.controller.Login(ctx, models.LoginRequest{Email: *email, Password: *password})
	if err != nil {
		return err
	}
	writeLine(c.out, "logged in as %s %s <%s>", user.FirstName, user.LastName, user.Email)
	return nil
}

// Register handles `prostage register`.
func (c *AuthCommands) Register(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("register", flag.ContinueOnError)
	email := fs.String("email", "", "account email")
	username := fs.String("username", "", "username")
	firstName := fs.String("first-name", "", "first name")
	lastName := fs.String("last-name", "", "last name")
	phone := fs.String("phone", "", "phone number")
	company := fs.String("company", "", "company name")
	password := fs.String("password", "", "password")
	passwordConfirm := fs.String("password-confirm", "", "password confirmation")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *email == "" || *username == "" || *password == "" {
		return fmt.Errorf("usage: register --email <email> --username <name> --password <pw> --password-confirm <pw> [--first-name --last-name --phone --company]")
	}

	user, err := c.controller.Register(ctx, models.RegisterRequest{
		Email:           *email,
		Username:        *username,
		FirstName:       *firstName,
		LastName:        *lastName,
		PhoneNumber:     *phone,
		CompanyName:     *company,
		Password:        *password,
		PasswordConfirm: *passwordConfirm,
	})
	if err != nil {
		return err
	}
	writeLine(c.out, "registered %s <%s>", user.Username, user.Email)
	return nil
}

// Logout handles `prostage logout`.
func (c *AuthCommands) Logout(ctx context.Context, args []string) error {
	if err := c.controller.Logout(ctx); err != nil {
		return err
	}
	writeLine(c.out, "logged out")
	return nil
}

// Whoami handles `prostage whoami`.
func (c *AuthCommands) Whoami(ctx context.Context, args []string) error {
	if !c.controller.IsAuthenticated() {
		writeLine(c.out, "anonymous")
		return nil
	}
	return writeJSON(c.out, c.controller.User())
}

// UpdateProfile handles `prostage update-profile`.
func (c *AuthCommands) UpdateProfile(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("update-profile", flag.ContinueOnError)
	firstName := fs.String("first-name", "", "first name")
	lastName := fs.String("last-name", "", "last name")
	phone := fs.String("phone", "", "phone number")
	company := fs.String("company", "", "company name")
	if err := fs.Parse(args); err != nil {
		return err
	}

	user, err := c.controller.UpdateProfile(ctx, models.ProfileUpdate{
		FirstName:   *firstName,
		LastName:    *lastName,
		PhoneNumber: *phone,
		CompanyName: *company,
	})
	if err != nil {
		return err
	}
	return writeJSON(c.out, user)
}

// ChangePassword handles `prostage change-password`.
func (c *AuthCommands) ChangePassword(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("change-password", flag.ContinueOnError)
	oldPassword := fs.String("old", "", "current password")
	newPassword := fs.String("new", "", "new password")
	confirm := fs.String("confirm", "", "new password confirmation")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *oldPassword == "" || *newPassword == "" {
		return fmt.Errorf("usage: change-password --old <pw> --new <pw> --confirm <pw>")
	}

	if err := c.controller.ChangePassword(ctx, *oldPassword, *newPassword, *confirm); err != nil {
		return err
	}
	writeLine(c.out, "password changed")
	return nil
}
