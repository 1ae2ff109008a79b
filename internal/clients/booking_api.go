package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/go-querystring/query"
	"github.com/google/uuid"

	"prostage/internal/models"
)

// BookingAPI covers the services, categories and bookings resources.
type BookingAPI struct {
	base *BaseClient
}

// NewBookingAPI returns client.
func NewBookingAPI(base *BaseClient) *BookingAPI {
	return &BookingAPI{base: base}
}

// ListServices fetches the full service catalog.
func (c *BookingAPI) ListServices(ctx context.Context) ([]models.Service, error) {
	body, err := c.base.do(ctx, http.MethodGet, "/services/", nil, nil, nil, "failed to fetch services")
	if err != nil {
		return nil, err
	}
	var services []models.Service
	if err := decodeList(body, &services); err != nil {
		return nil, fmt.Errorf("decode services: %w", err)
	}
	return services, nil
}

// FeaturedServices fetches the highlighted subset.
func (c *BookingAPI) FeaturedServices(ctx context.Context) ([]models.Service, error) {
	body, err := c.base.do(ctx, http.MethodGet, "/services/featured/", nil, nil, nil, "failed to fetch featured services")
	if err != nil {
		return nil, err
	}
	var services []models.Service
	if err := decodeList(body, &services); err != nil {
		return nil, fmt.Errorf("decode featured services: %w", err)
	}
	return services, nil
}

// GetService fetches a single service by id.
func (c *BookingAPI) GetService(ctx context.Context, id int64) (*models.Service, error) {
	body, err := c.base.do(ctx, http.MethodGet, fmt.Sprintf("/services/%d/", id), nil, nil, nil, "failed to fetch service")
	if err != nil {
		return nil, err
	}
	var service models.Service
	if err := json.Unmarshal(body, &service); err != nil {
		return nil, fmt.Errorf("decode service: %w", err)
	}
	return &service, nil
}

// ListCategories fetches service categories.
func (c *BookingAPI) ListCategories(ctx context.Context) ([]models.Category, error) {
	body, err := c.base.do(ctx, http.MethodGet, "/categories/", nil, nil, nil, "failed to fetch categories")
	if err != nil {
		return nil, err
	}
	var categories []models.Category
	if err := decodeList(body, &categories); err != nil {
		return nil, fmt.Errorf("decode categories: %w", err)
	}
	return categories, nil
}

// CreateBooking submits a booking request. Each submission carries a fresh
// Idempotency-Key so a retried create cannot double-book.
func (c *BookingAPI) CreateBooking(ctx context.Context, payload models.BookingCreate) (*models.Booking, error) {
	headers := map[string]string{
		"Idempotency-Key": uuid.NewString(),
	}
	body, err := c.base.do(ctx, http.MethodPost, "/bookings/", nil, payload, headers, "failed to create booking")
	if err != nil {
		return nil, err
	}
	var booking models.Booking
	if err := json.Unmarshal(body, &booking); err != nil {
		return nil, fmt.Errorf("decode booking: %w", err)
	}
	return &booking, nil
}

// ListBookings fetches all bookings visible to the caller.
func (c *BookingAPI) ListBookings(ctx context.Context) ([]models.Booking, error) {
	body, err := c.base.do(ctx, http.MethodGet, "/bookings/", nil, nil, nil, "failed to fetch bookings")
	if err != nil {
		return nil, err
	}
	var bookings []models.Booking
	if err := decodeList(body, &bookings); err != nil {
		return nil, fmt.Errorf("decode bookings: %w", err)
	}
	return bookings, nil
}

// MyBookings fetches bookings belonging to the authenticated user.
func (c *BookingAPI) MyBookings(ctx context.Context) ([]models.Booking, error) {
	if err := c.base.requireToken(); err != nil {
		return nil, err
	}
	body, err := c.base.do(ctx, http.MethodGet, "/bookings/my_bookings/", nil, nil, nil, "failed to fetch user bookings")
	if err != nil {
		return nil, err
	}
	var bookings []models.Booking
	if err := decodeList(body, &bookings); err != nil {
		return nil, fmt.Errorf("decode user bookings: %w", err)
	}
	return bookings, nil
}

// GetBooking fetches a single booking by id.
func (c *BookingAPI) GetBooking(ctx context.Context, id int64) (*models.Booking, error) {
	body, err := c.base.do(ctx, http.MethodGet, fmt.Sprintf("/bookings/%d/", id), nil, nil, nil, "failed to fetch booking")
	if err != nil {
		return nil, err
	}
	var booking models.Booking
	if err := json.Unmarshal(body, &booking); err != nil {
		return nil, fmt.Errorf("decode booking: %w", err)
	}
	return &booking, nil
}

// UpdateBookingStatus transitions a booking to a new status.
func (c *BookingAPI) UpdateBookingStatus(ctx context.Context, id int64, status, notes string) (*models.Booking, error) {
	if err := c.base.requireToken(); err != nil {
		return nil, err
	}
	payload := map[string]string{"status": status}
	if notes != "" {
		payload["notes"] = notes
	}
	body, err := c.base.do(ctx, http.MethodPost, fmt.Sprintf("/bookings/%d/update_status/", id), nil, payload, nil, "failed to update booking status")
	if err != nil {
		return nil, err
	}
	var booking models.Booking
	if err := json.Unmarshal(body, &booking); err != nil {
		return nil, fmt.Errorf("decode booking: %w", err)
	}
	return &booking, nil
}

// DashboardStats fetches the staff dashboard summary.
func (c *BookingAPI) DashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	if err := c.base.requireToken(); err != nil {
		return nil, err
	}
	body, err := c.base.do(ctx, http.MethodGet, "/bookings/dashboard_stats/", nil, nil, nil, "failed to fetch dashboard stats")
	if err != nil {
		return nil, err
	}
	var stats models.DashboardStats
	if err := json.Unmarshal(body, &stats); err != nil {
		return nil, fmt.Errorf("decode dashboard stats: %w", err)
	}
	return &stats, nil
}

// availabilityParams encodes the availability query string.
type availabilityParams struct {
	Date      string `url:"date"`
	ServiceID int64  `url:"service_id"`
}

// CheckAvailability asks whether a service is free on a given date.
func (c *BookingAPI) CheckAvailability(ctx context.Context, date string, serviceID int64) (*models.Availability, error) {
	params, err := query.Values(availabilityParams{Date: date, ServiceID: serviceID})
	if err != nil {
		return nil, fmt.Errorf("encode availability params: %w", err)
	}
	body, err := c.base.do(ctx, http.MethodGet, "/bookings/availability/", params, nil, nil, "failed to check availability")
	if err != nil {
		return nil, err
	}
	var availability models.Availability
	if err := json.Unmarshal(body, &availability); err != nil {
		return nil, fmt.Errorf("decode availability: %w", err)
	}
	return &availability, nil
}
