package models

// Service describes a bookable production service.
type Service struct {
	ID            int64            `json:"id"`
	Name          string           `json:"name"`
	Description   string           `json:"description"`
	Price         string           `json:"price"`
	DurationHours int              `json:"duration_hours"`
	CategoryName  string           `json:"category_name"`
	CategoryType  string           `json:"category_type"`
	Features      []ServiceFeature `json:"features"`
}

// ServiceFeature is a single line item advertised for a service.
type ServiceFeature struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Category groups services by production type.
type Category struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Type        string `json:"category_type"`
	Description string `json:"description"`
}

// Customer is the server-side contact record embedded in bookings.
type Customer struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	FullName  string `json:"full_name"`
	CreatedAt string `json:"created_at"`
}

// BookingCreate is the client-assembled payload for POST bookings/.
type BookingCreate struct {
	CustomerFirstName string `json:"customer_first_name"`
	CustomerLastName  string `json:"customer_last_name"`
	CustomerEmail     string `json:"customer_email"`
	CustomerPhone     string `json:"customer_phone"`
	CustomerAddress   string `json:"customer_address,omitempty"`
	ServiceID         int64  `json:"service_id"`
	BookingDate       string `json:"booking_date"`
	EndDate           string `json:"end_date"`
	TotalPrice        string `json:"total_price"`
	Location          string `json:"location"`
	Notes             string `json:"notes,omitempty"`
}

// Booking is the server-accepted record, immutable here except via
// the explicit status update operation.
type Booking struct {
	ID            int64    `json:"id"`
	Customer      Customer `json:"customer"`
	Service       Service  `json:"service"`
	BookingDate   string   `json:"booking_date"`
	EndDate       string   `json:"end_date"`
	Status        string   `json:"status"`
	StatusDisplay string   `json:"status_display"`
	TotalPrice    string   `json:"total_price"`
	Notes         string   `json:"notes"`
	Location      string   `json:"location"`
	CreatedAt     string   `json:"created_at"`
	UpdatedAt     string   `json:"updated_at"`
}

// UserProfile carries secondary account settings.
type UserProfile struct {
	ID                     int64  `json:"id"`
	Bio                    string `json:"bio"`
	Avatar                 string `json:"avatar,omitempty"`
	PreferredContactMethod string `json:"preferred_contact_method"`
	NotificationsEnabled   bool   `json:"notifications_enabled"`
	CreatedAt              string `json:"created_at"`
	UpdatedAt              string `json:"updated_at"`
}

// User is the authenticated identity as known to the client.
type User struct {
	ID          int64       `json:"id"`
	Email       string      `json:"email"`
	Username    string      `json:"username"`
	FirstName   string      `json:"first_name"`
	LastName    string      `json:"last_name"`
	PhoneNumber string      `json:"phone_number"`
	CompanyName string      `json:"company_name"`
	IsVerified  bool        `json:"is_verified"`
	Profile     UserProfile `json:"profile"`
	CreatedAt   string      `json:"created_at"`
	UpdatedAt   string      `json:"updated_at"`
}

// AuthResponse is returned by login, register and change-password.
type AuthResponse struct {
	User    User   `json:"user"`
	Token   string `json:"token"`
	Message string `json:"message"`
}

// LoginRequest carries credentials for POST auth/login/.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest carries signup fields for POST auth/register/.
type RegisterRequest struct {
	Email           string `json:"email"`
	Username        string `json:"username"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	PhoneNumber     string `json:"phone_number,omitempty"`
	CompanyName     string `json:"company_name,omitempty"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"password_confirm"`
}

// ProfileUpdate carries the fields a user may change on their own record.
// Zero-valued fields are omitted so the server treats the update as partial.
type ProfileUpdate struct {
	FirstName   string `json:"first_name,omitempty"`
	LastName    string `json:"last_name,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty"`
	CompanyName string `json:"company_name,omitempty"`
}

// VerifyResponse is returned by GET auth/verify-token/.
type VerifyResponse struct {
	Valid bool  `json:"valid"`
	User  *User `json:"user,omitempty"`
}

// DashboardStats summarizes booking activity for staff users.
type DashboardStats struct {
	Stats struct {
		TotalBookings     int `json:"total_bookings"`
		PendingBookings   int `json:"pending_bookings"`
		ConfirmedBookings int `json:"confirmed_bookings"`
		CompletedBookings int `json:"completed_bookings"`
	} `json:"stats"`
	RecentBookings   []Booking `json:"recent_bookings"`
	UpcomingBookings []Booking `json:"upcoming_bookings"`
}

// Availability is returned by GET bookings/availability/.
type Availability struct {
	IsAvailable         bool `json:"is_available"`
	ConflictingBookings int  `json:"conflicting_bookings"`
}
