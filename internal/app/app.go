package app

import (
	"context"
	"os"

	"go.uber.org/zap"

	"prostage/internal/auth"
	"prostage/internal/clients"
	"prostage/internal/commands"
	"prostage/internal/config"
	"prostage/internal/session"
)

// App wires the booking client dependencies.
type App struct {
	controller *auth.Controller
	router     *commands.Router
	logger     *zap.Logger
}

// New constructs the application graph.
func New(cfg *config.Config, logger *zap.Logger) (*App, error) {
	store := session.NewStore(cfg.SessionFile())
	httpClient := clients.NewDefaultHTTPClient(cfg.HTTPTimeout())
	base := clients.NewBaseClient(cfg.APIBase(), httpClient, store, logger)

	bookingAPI := clients.NewBookingAPI(base)
	authAPI := clients.NewAuthAPI(base, logger)
	controller := auth.New(authAPI, store, logger)

	out := os.Stdout
	router := commands.NewRouter(commands.RouterDeps{
		Services: commands.NewServiceCommands(bookingAPI, out),
		Auth:     commands.NewAuthCommands(controller, out),
		Bookings: commands.NewBookingCommands(bookingAPI, controller, logger, out),
	}, out)

	return &App{
		controller: controller,
		router:     router,
		logger:     logger,
	}, nil
}

// Run settles the session state, then dispatches the command.
func (a *App) Run(ctx context.Context, args []string) error {
	a.controller.Init(ctx)
	a.logger.Debug("session settled", zap.Stringer("state", a.controller.State()))
	return a.router.Dispatch(ctx, args)
}
