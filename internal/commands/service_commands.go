package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strconv"

	"prostage/internal/clients"
)

// ServiceCommands covers the catalog: services, featured, categories,
// availability.
type ServiceCommands struct {
	api *clients.BookingAPI
	out io.Writer
}

// NewServiceCommands returns command handler.
func NewServiceCommands(api *clients.BookingAPI, out io.Writer) *ServiceCommands {
	return &ServiceCommands{api: api, out: out}
}

// List handles `prostage services`.
func (c *ServiceCommands) List(ctx context.Context, args []string) error {
	services, err := c.api.ListServices(ctx)
	if err != nil {
		return err
	}
	return writeJSON(c.out, services)
}

// Featured handles `prostage featured`.
func (c *ServiceCommands) Featured(ctx context.Context, args []string) error {
	services, err := c.api.FeaturedServices(ctx)
	if err != nil {
		return err
	}
	return writeJSON(c.out, services)
}

// Get handles `prostage service <id>`.
func (c *ServiceCommands) Get(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: service <id>")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid service id %q", args[0])
	}
	service, err := c.api.GetService(ctx, id)
	if err != nil {
		return err
	}
	return writeJSON(c.out, service)
}

// Categories handles `prostage categories`.
func (c *ServiceCommands) Categories(ctx context.Context, args []string) error {
	categories, err := c.api.ListCategories(ctx)
	if err != nil {
		return err
	}
	return writeJSON(c.out, categories)
}

// Availability handles `prostage availability --date --service`.
func (c *ServiceCommands) Availability(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("availability", flag.ContinueOnError)
	date := fs.String("date", "", "date to check, YYYY-MM-DD")
	serviceID := fs.Int64("service", 0, "service id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *date == "" || *serviceID == 0 {
		return fmt.Errorf("usage: availability --date YYYY-MM-DD --service <id>")
	}
	availability, err := c.api.CheckAvailability(ctx, *date, *serviceID)
	if err != nil {
		return err
	}
	if availability.IsAvailable {
		writeLine(c.out, "available on %s", *date)
	} else {
		writeLine(c.out, "not available on %s (%d conflicting bookings)", *date, availability.ConflictingBookings)
	}
	return nil
}
