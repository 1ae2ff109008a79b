package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strconv"

	"go.uber.org/zap"

	"prostage/internal/auth"
	"prostage/internal/booking"
	"prostage/internal/clients"
)

// BookingCommands covers booking submission and retrieval.
type BookingCommands struct {
	api        *clients.BookingAPI
	controller *auth.Controller
	logger     *zap.Logger
	out        io.Writer
}

// NewBookingCommands returns command handler.
func NewBookingCommands(api *clients.BookingAPI, controller *auth.Controller, logger *zap.Logger, out io.Writer) *BookingCommands {
	return &BookingCommands{api: api, controller: controller, logger: logger, out: out}
}

// Book handles `prostage book`. Contact fields default from the
// authenticated identity when present.
func (c *BookingCommands) Book(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("book", flag.ContinueOnError)
	firstName := fs.String("first-name", "", "customer first name")
	lastName := fs.String("last-name", "", "customer last name")
	email := fs.String("email", "", "customer email")
	phone := fs.String("phone", "", "customer phone")
	address := fs.String("address", "", "customer address")
	serviceID := fs.Int64("service", 0, "service id")
	date := fs.String("date", "", "event date, YYYY-MM-DD")
	clock := fs.String("time", "", "event time, HH:MM")
	location := fs.String("location", "", "event venue or address")
	notes := fs.String("notes", "", "special requirements")
	if err := fs.Parse(args); err != nil {
		return err
	}

	composer := booking.NewComposer(c.api, c.logger)
	composer.Form = booking.Form{
		FirstName: *firstName,
		LastName:  *lastName,
		Email:     *email,
		Phone:     *phone,
		Address:   *address,
		ServiceID: *serviceID,
		Date:      *date,
		Time:      *clock,
		Location:  *location,
		Notes:     *notes,
	}
	composer.Prefill(c.controller.User())

	accepted, err := composer.Submit(ctx)
	if err != nil {
		return err
	}
	writeLine(c.out, "booking #%d submitted, status %s", accepted.ID, accepted.Status)
	return nil
}

// List handles `prostage bookings`.
func (c *BookingCommands) List(ctx context.Context, args []string) error {
	bookings, err := c.api.ListBookings(ctx)
	if err != nil {
		return err
	}
	return writeJSON(c.out, bookings)
}

// Mine handles `prostage my-bookings`.
func (c *BookingCommands) Mine(ctx context.Context, args []string) error {
	bookings, err := c.api.MyBookings(ctx)
	if err != nil {
		return err
	}
	return writeJSON(c.out, bookings)
}

// Get handles `prostage booking <id>`.
func (c *BookingCommands) Get(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: booking <id>")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid booking id %q", args[0])
	}
	record, err := c.api.GetBooking(ctx, id)
	if err != nil {
		return err
	}
	return writeJSON(c.out, record)
}

// SetStatus handles `prostage set-status <id> --status [--notes]`.
func (c *BookingCommands) SetStatus(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: set-status <id> --status <status> [--notes <notes>]")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid booking id %q", args[0])
	}
	fs := flag.NewFlagSet("set-status", flag.ContinueOnError)
	status := fs.String("status", "", "new status")
	notes := fs.String("notes", "", "status notes")
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}
	if *status == "" {
		return fmt.Errorf("usage: set-status <id> --status <status> [--notes <notes>]")
	}

	record, err := c.api.UpdateBookingStatus(ctx, id, *status, *notes)
	if err != nil {
		return err
	}
	writeLine(c.out, "booking #%d is now %s", record.ID, record.Status)
	return nil
}

// Stats handles `prostage stats`.
func (c *BookingCommands) Stats(ctx context.Context, args []string) error {
	stats, err := c.api.DashboardStats(ctx)
	if err != nil {
		return err
	}
	return writeJSON(c.out, stats)
}
