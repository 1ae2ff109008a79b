package booking

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"prostage/internal/clients"
	"prostage/internal/models"
)

// DefaultDuration is the assumed event length when the service does not
// dictate one. Sourcing it from the selected Service instead is an open
// question with the backend owners.
const DefaultDuration = 4 * time.Hour

// placeholderPrice stands in until server-side pricing lands.
const placeholderPrice = "500.00"

// Form holds the raw string inputs a booking is composed from.
type Form struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Address   string
	ServiceID int64
	Date      string // calendar date, YYYY-MM-DD
	Time      string // clock time, HH:MM
	Location  string
	Notes     string
}

// Composer validates a form, derives the booking payload and submits it.
// After a successful submission it is terminal until Reset.
type Composer struct {
	api    *clients.BookingAPI
	logger *zap.Logger

	Form      Form
	submitted bool
	result    *models.Booking
}

// NewComposer returns an editable composer.
func NewComposer(api *clients.BookingAPI, logger *zap.Logger) *Composer {
	return &Composer{api: api, logger: logger}
}

// Prefill copies contact fields from an authenticated identity into any
// fields the user has not filled in yet.
func (c *Composer) Prefill(user *models.User) {
	if user == nil {
		return
	}
	if c.Form.FirstName == "" {
		c.Form.FirstName = user.FirstName
	}
	if c.Form.LastName == "" {
		c.Form.LastName = user.LastName
	}
	if c.Form.Email == "" {
		c.Form.Email = user.Email
	}
	if c.Form.Phone == "" {
		c.Form.Phone = user.PhoneNumber
	}
}

// Build validates required fields and derives the payload: date and time
// combine into the start instant, the end instant follows after the default
// duration. No network is touched here.
func (c *Composer) Build() (*models.BookingCreate, error) {
	required := []struct {
		field string
		value string
	}{
		{"first name", c.Form.FirstName},
		{"last name", c.Form.LastName},
		{"email", c.Form.Email},
		{"phone", c.Form.Phone},
		{"date", c.Form.Date},
		{"time", c.Form.Time},
		{"location", c.Form.Location},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return nil, &ValidationError{Field: r.field}
		}
	}
	if c.Form.ServiceID <= 0 {
		return nil, &ValidationError{Field: "service"}
	}

	start, err := time.ParseInLocation("2006-01-02 15:04", c.Form.Date+" "+c.Form.Time, time.UTC)
	if err != nil {
		return nil, &ValidationError{Field: "date", Reason: "invalid date or time"}
	}
	end := start.Add(DefaultDuration)

	return &models.BookingCreate{
		CustomerFirstName: c.Form.FirstName,
		CustomerLastName:  c.Form.LastName,
		CustomerEmail:     c.Form.Email,
		CustomerPhone:     c.Form.Phone,
		CustomerAddress:   c.Form.Address,
		ServiceID:         c.Form.ServiceID,
		BookingDate:       start.Format(time.RFC3339),
		EndDate:           end.Format(time.RFC3339),
		TotalPrice:        placeholderPrice,
		Location:          c.Form.Location,
		Notes:             c.Form.Notes,
	}, nil
}

// Submit builds and sends the booking request. On success the composer goes
// terminal; on any failure it stays editable with the form intact.
func (c *Composer) Submit(ctx context.Context) (*models.Booking, error) {
	if c.submitted {
		return nil, ErrAlreadySubmitted
	}

	payload, err := c.Build()
	if err != nil {
		return nil, err
	}

	booking, err := c.api.CreateBooking(ctx, *payload)
	if err != nil {
		return nil, err
	}

	c.submitted = true
	c.result = booking
	c.logger.Info("booking submitted",
		zap.Int64("booking_id", booking.ID),
		zap.Int64("service_id", payload.ServiceID),
		zap.String("booking_date", payload.BookingDate),
	)
	return booking, nil
}

// Submitted reports whether the composer reached its terminal state.
func (c *Composer) Submitted() bool {
	return c.submitted
}

// Result returns the accepted booking after a successful submission.
func (c *Composer) Result() *models.Booking {
	return c.result
}

// Reset returns a submitted composer to the editable state with a blank form.
func (c *Composer) Reset() {
	c.Form = Form{}
	c.submitted = false
	c.result = nil
}
