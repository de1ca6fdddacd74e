package service

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/logisco/courierfront/internal/core/domain"
	"github.com/logisco/courierfront/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Backend stubs
// ---------------------------------------------------------------------------

type stubBookingBackend struct {
	mu sync.Mutex

	serviceability    map[string]any
	serviceabilityErr error
	serviceabilityReq []ports.ServiceabilityRequest

	priceResult domain.QuoteResult
	priceErr    error
	priceReqs   []ports.PriceRequest

	createConf     *domain.Confirmation
	createErr      error
	createPayloads []map[string]any
	createTokens   []string
}

func (b *stubBookingBackend) CheckServiceability(_ context.Context, req ports.ServiceabilityRequest) (map[string]any, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.serviceabilityReq = append(b.serviceabilityReq, req)
	return b.serviceability, b.serviceabilityErr
}

func (b *stubBookingBackend) CalculatePrice(_ context.Context, req ports.PriceRequest) (domain.QuoteResult, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.priceReqs = append(b.priceReqs, req)
	return b.priceResult, b.priceErr
}

func (b *stubBookingBackend) CreateBooking(_ context.Context, token string, payload map[string]any) (*domain.Confirmation, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.createPayloads = append(b.createPayloads, payload)
	b.createTokens = append(b.createTokens, token)
	if b.createErr != nil {
		return nil, b.createErr
	}
	return b.createConf, nil
}

type stubIdentityBackend struct {
	identity  *ports.Identity
	loginErr  error
	verifyErr error
	otpErr    error
	regErr    error

	otpRequests   []ports.OTPRequest
	verifications []ports.OTPVerification
	registrations []ports.Registration
}

func (b *stubIdentityBackend) Login(_ context.Context, _ ports.Credentials) (*ports.Identity, error) {
	if b.loginErr != nil {
		return nil, b.loginErr
	}
	return b.identity, nil
}

func (b *stubIdentityBackend) Register(_ context.Context, reg ports.Registration) error {
	b.registrations = append(b.registrations, reg)
	return b.regErr
}

func (b *stubIdentityBackend) RequestOTP(_ context.Context, req ports.OTPRequest) error {
	b.otpRequests = append(b.otpRequests, req)
	return b.otpErr
}

func (b *stubIdentityBackend) VerifyOTP(_ context.Context, req ports.OTPVerification) (*ports.Identity, error) {
	b.verifications = append(b.verifications, req)
	if b.verifyErr != nil {
		return nil, b.verifyErr
	}
	return b.identity, nil
}

type stubTrackingBackend struct {
	mu sync.Mutex

	records    map[string]*domain.ShipmentRecord
	trackErr   error
	history    []domain.TrackingEvent
	historyErr error
	// historyFn, when set, replaces the canned history answer.
	historyFn    func(ctx context.Context, id int64) ([]domain.TrackingEvent, error)
	historyCalls atomic.Int32

	shipments    []domain.ShipmentRecord
	shipmentsErr error
}

func (b *stubTrackingBackend) Track(_ context.Context, tn string) (*domain.ShipmentRecord, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.trackErr != nil {
		return nil, b.trackErr
	}
	rec, ok := b.records[tn]
	if !ok {
		return nil, &domain.BackendError{Status: 404, Message: "Shipment not found"}
	}
	clone := *rec
	return &clone, nil
}

func (b *stubTrackingBackend) History(ctx context.Context, id int64) ([]domain.TrackingEvent, error) {
	b.historyCalls.Add(1)
	if b.historyFn != nil {
		return b.historyFn(ctx, id)
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]domain.TrackingEvent{}, b.history...), b.historyErr
}

func (b *stubTrackingBackend) UserShipments(_ context.Context, _ string, _ int64) ([]domain.ShipmentRecord, error) {
	return b.shipments, b.shipmentsErr
}

// ---------------------------------------------------------------------------
// Lookup stubs
// ---------------------------------------------------------------------------

type stubGeocoder struct {
	coords map[string]domain.Coordinates
	delay  func(address string) time.Duration
	calls  atomic.Int32
}

func (g *stubGeocoder) Geocode(ctx context.Context, address string) (domain.Coordinates, error) {
	g.calls.Add(1)
	if g.delay != nil {
		select {
		case <-ctx.Done():
			return domain.Coordinates{}, ctx.Err()
		case <-time.After(g.delay(address)):
		}
	}
	c, ok := g.coords[address]
	if !ok {
		return domain.Coordinates{}, domain.ErrAddressNotFound
	}
	return c, nil
}

type stubPincodes struct {
	infos map[string]domain.PincodeInfo
}

func (p *stubPincodes) Lookup(_ context.Context, pin string) (domain.PincodeInfo, error) {
	info, ok := p.infos[pin]
	if !ok {
		return domain.PincodeInfo{}, domain.ErrPincodeNotFound
	}
	return info, nil
}

// ---------------------------------------------------------------------------
// Session store
// ---------------------------------------------------------------------------

type memSessionStore struct {
	mu       sync.Mutex
	sessions map[string]domain.Session
}

func newMemSessionStore() *memSessionStore {
	return &memSessionStore{sessions: make(map[string]domain.Session)}
}

func (s *memSessionStore) Get(_ context.Context, id string) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return &sess, nil
}

func (s *memSessionStore) Save(_ context.Context, sess *domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID] = *sess
	return nil
}

func (s *memSessionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

type recordingCloser struct {
	closed []string
}

func (c *recordingCloser) Close(id string) { c.closed = append(c.closed, id) }

// ---------------------------------------------------------------------------
// Fixtures
// ---------------------------------------------------------------------------

func pickupForm() map[string]string {
	return map[string]string{
		"senderName":    "Asha Rao",
		"senderEmail":   "asha@example.com",
		"senderPhone":   "9876543210",
		"senderAddress": "12 MG Road",
		"senderCity":    "Bengaluru",
		"senderState":   "Karnataka",
		"senderPincode": "560001",
		"senderCountry": "India",
	}
}

func deliveryForm() map[string]string {
	return map[string]string{
		"receiverName":    "Vikram Shah",
		"receiverPhone":   "9123456780",
		"receiverAddress": "4 Marine Drive",
		"receiverCity":    "Mumbai",
		"receiverState":   "Maharashtra",
		"receiverPincode": "400001",
	}
}

func packageForm() map[string]string {
	return map[string]string{
		"packageType":  "PARCEL",
		"weight":       "2.5",
		"deliveryType": "EXPRESS",
		"codEnabled":   "on",
		"codAmount":    "500",
	}
}

func int64Ptr(v int64) *int64 { return &v }
func intPtr(v int) *int { return &v }
