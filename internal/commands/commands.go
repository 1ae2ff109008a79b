package commands

import (
	"context"
	"fmt"
	"io"
)

// Handler executes one subcommand.
type Handler func(ctx context.Context, args []string) error

// Router dispatches CLI subcommands to their handlers.
type Router struct {
	routes map[string]Handler
	out    io.Writer
}

// RouterDeps lists the command groups the router serves.
type RouterDeps struct {
	Services *ServiceCommands
	Auth     *AuthCommands
	Bookings *BookingCommands
}

// NewRouter builds the command table.
func NewRouter(deps RouterDeps, out io.Writer) *Router {
	return &Router{
		out: out,
		routes: map[string]Handler{
			"services":        deps.Services.List,
			"featured":        deps.Services.Featured,
			"service":         deps.Services.Get,
			"categories":      deps.Services.Categories,
			"availability":    deps.Services.Availability,
			"login":           deps.Auth.Login,
			"register":        deps.Auth.Register,
			"logout":          deps.Auth.Logout,
			"whoami":          deps.Auth.Whoami,
			"update-profile":  deps.Auth.UpdateProfile,
			"change-password": deps.Auth.ChangePassword,
			"book":            deps.Bookings.Book,
			"bookings":        deps.Bookings.List,
			"my-bookings":     deps.Bookings.Mine,
			"booking":         deps.Bookings.Get,
			"set-status":      deps.Bookings.SetStatus,
			"stats":           deps.Bookings.Stats,
		},
	}
}

// Dispatch runs the named subcommand.
func (r *Router) Dispatch(ctx context.Context, args []string) error {
	if len(args) == 0 {
		r.usage()
		return fmt.Errorf("no command given")
	}
	handler, ok := r.routes[args[0]]
	if !ok {
		r.usage()
		return fmt.Errorf("unknown command %q", args[0])
	}
	return handler(ctx, args[1:])
}

func (r *Router) usage() {
	fmt.Fprintln(r.out, `usage: prostage <command> [flags]

catalog:
  services                 list all services
  featured                 list featured services
  service <id>             show one service
  categories               list service categories
  availability             check a date for a service

session:
  login                    authenticate and store the session token
  register                 create an account
  logout                   end the session
  whoami                   show the current identity
  update-profile           change profile fields
  change-password          rotate the password

bookings:
  book                     submit a booking request
  bookings                 list bookings
  my-bookings              list your bookings (requires login)
  booking <id>             show one booking
  set-status <id>          update a booking status (staff)
  stats                    dashboard summary (staff)`)
}
