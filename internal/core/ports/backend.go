package ports

import (
	"context"

	"github.com/logisco/courierfront/internal/core/domain"
)

// PriceRequest is the body of POST /booking/calculate-price.
type PriceRequest struct {
	Weight            float64  `json:"weight"`
	Length            *float64 `json:"length"`
	Width             *float64 `json:"width"`
	Height            *float64 `json:"height"`
	DeliveryType      string   `json:"deliveryType"`
	PackageType       string   `json:"packageType"`
	PickupPincode     string   `json:"pickupPincode"`
	DeliveryPincode   string   `json:"deliveryPincode"`
	CODEnabled        bool     `json:"codEnabled"`
	CODAmount         *float64 `json:"codAmount"`
	InsuranceRequired bool     `json:"insuranceRequired"`
	DeclaredValue     *float64 `json:"declaredValue"`
}

// ServiceabilityRequest is the body of POST /booking/check-serviceability.
type ServiceabilityRequest struct {
	PickupPincode   string `json:"pickupPincode"`
	DeliveryPincode string `json:"deliveryPincode"`
}

// OTPRequest asks the backend to send a one-time code.
type OTPRequest struct {
	Phone    string `json:"phone"`
	FullName string `json:"fullName,omitempty"`
}

// OTPVerification submits the code the user received.
type OTPVerification struct {
	Phone    string `json:"phone"`
	OTP      string `json:"otp"`
	FullName string `json:"fullName,omitempty"`
}

// Credentials is the body of POST /auth/login.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Registration is the body of POST /auth/register.
type Registration struct {
	FullName    string `json:"fullName"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
	Password    string `json:"password"`
	Role        string `json:"role"`
}

// Identity is what the backend returns after a successful login or OTP check.
type Identity struct {
	Token    string `json:"token"`
	UserID   int64  `json:"userId"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// BookingBackend covers the pricing and booking endpoints.
type BookingBackend interface {
	CheckServiceability(ctx context.Context, req ServiceabilityRequest) (map[string]any, error)
	CalculatePrice(ctx context.Context, req PriceRequest) (domain.QuoteResult, error)
	CreateBooking(ctx context.Context, token string, payload map[string]any) (*domain.Confirmation, error)
}

// IdentityBackend covers the authentication endpoints.
type IdentityBackend interface {
	Login(ctx context.Context, creds Credentials) (*Identity, error)
	Register(ctx context.Context, reg Registration) error
	RequestOTP(ctx context.Context, req OTPRequest) error
	VerifyOTP(ctx context.Context, req OTPVerification) (*Identity, error)
}

// HistoryFetcher loads the status history of one shipment.
type HistoryFetcher interface {
	History(ctx context.Context, shipmentID int64) ([]domain.TrackingEvent, error)
}

// TrackingBackend covers shipment lookup endpoints.
type TrackingBackend interface {
	HistoryFetcher
	Track(ctx context.Context, trackingNumber string) (*domain.ShipmentRecord, error)
	UserShipments(ctx context.Context, token string, userID int64) ([]domain.ShipmentRecord, error)
}
