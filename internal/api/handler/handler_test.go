package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/logisco/courierfront/internal/api/middleware"
	"github.com/logisco/courierfront/internal/core/domain"
	"github.com/logisco/courierfront/internal/core/ports"
	"github.com/logisco/courierfront/internal/core/service"
)

type stubAuthService struct {
	startFn    func(ctx context.Context) (string, *domain.Session, error)
	loginFn    func(ctx context.Context, username, password string) (string, *domain.Session, error)
	registerFn func(ctx context.Context, in ports.RegisterInput) error
	logoutFn   func(ctx context.Context, sessionID string) error
	resolveFn  func(ctx context.Context, sessionID string) (*domain.Session, error)
}

func (s *stubAuthService) StartGuest(ctx context.Context) (string, *domain.Session, error) {
	return s.startFn(ctx)
}

func (s *stubAuthService) Login(ctx context.Context, username, password string) (string, *domain.Session, error) {
	return s.loginFn(ctx, username, password)
}

func (s *stubAuthService) Register(ctx context.Context, in ports.RegisterInput) error {
	return s.registerFn(ctx, in)
}

func (s *stubAuthService) Logout(ctx context.Context, sessionID string) error {
	return s.logoutFn(ctx, sessionID)
}

func (s *stubAuthService) Resolve(ctx context.Context, sessionID string) (*domain.Session, error) {
	return s.resolveFn(ctx, sessionID)
}

type stubHistory struct{}

func (stubHistory) History(context.Context, int64) ([]domain.TrackingEvent, error) {
	return nil, nil
}

type stubGeocoder struct{}

func (stubGeocoder) Geocode(context.Context, string) (domain.Coordinates, error) {
	return domain.Coordinates{}, domain.ErrAddressNotFound
}

// singlePage serves one workspace to every session.
type singlePage struct {
	ws *service.Workspace
}

func (p singlePage) Get(string) *service.Workspace { return p.ws }

func newSinglePage(t *testing.T) singlePage {
	t.Helper()
	page := service.NewTrackingPage(stubHistory{}, stubGeocoder{}, service.TrackingConfig{PollInterval: time.Hour}, zerolog.Nop())
	t.Cleanup(page.Close)
	return singlePage{ws: &service.Workspace{
		Booking:  service.NewWizard(service.WizardDeps{Log: zerolog.Nop()}),
		Tracking: page,
	}}
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req
}

func TestAuthHandler_StartSession(t *testing.T) {
	e := newEcho()
	h := NewAuthHandler(&stubAuthService{
		startFn: func(context.Context) (string, *domain.Session, error) {
			return "tok", &domain.Session{ID: "s1", Role: domain.RoleGuest}, nil
		},
	})

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/v1/session", nil), rec)
	if err := h.StartSession(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"token":"tok"`) || !strings.Contains(rec.Body.String(), `"role":"guest"`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestAuthHandler_Login_RedirectsByRole(t *testing.T) {
	e := newEcho()
	h := NewAuthHandler(&stubAuthService{
		loginFn: func(_ context.Context, username, password string) (string, *domain.Session, error) {
			if username != "root" || password != "pw" {
				t.Fatalf("unexpected credentials %q/%q", username, password)
			}
			return "tok", &domain.Session{ID: "s1", Role: domain.RoleAdmin, Username: "root"}, nil
		},
	})

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/v1/auth/login", `{"username":"root","password":"pw"}`), rec)
	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !strings.Contains(rec.Body.String(), `"redirect":"/admin"`) {
		t.Fatalf("expected admin redirect, got %s", rec.Body.String())
	}
}

func TestAuthHandler_Login_ValidatesBody(t *testing.T) {
	e := newEcho()
	h := NewAuthHandler(&stubAuthService{
		loginFn: func(context.Context, string, string) (string, *domain.Session, error) {
			t.Fatalf("service must not be called")
			return "", nil, nil
		},
	})

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/v1/auth/login", `{"username":"root"}`), rec)
	err := h.Login(c)

	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if _, ok := ve.Fields["password"]; !ok {
		t.Fatalf("expected password field error keyed by json name, got %v", ve.Fields)
	}
}

func TestAuthHandler_Register_PassesForm(t *testing.T) {
	e := newEcho()
	var got ports.RegisterInput
	h := NewAuthHandler(&stubAuthService{
		registerFn: func(_ context.Context, in ports.RegisterInput) error {
			got = in
			return nil
		},
	})

	body := `{"fullName":"Asha Rao","username":"asha","email":"asha@example.com","phoneNumber":"9876543210","password":"secret1","confirmPassword":"secret1"}`
	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/v1/auth/register", body), rec)
	if err := h.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if got.Username != "asha" || got.ConfirmPassword != "secret1" || got.PhoneNumber != "9876543210" {
		t.Fatalf("unexpected input: %+v", got)
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	e := newEcho()
	var dropped string
	h := NewAuthHandler(&stubAuthService{
		logoutFn: func(_ context.Context, sid string) error {
			dropped = sid
			return nil
		},
	})

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/v1/auth/logout", nil), rec)
	c.Set(middleware.SessionIDKey, "s9")
	if err := h.Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if dropped != "s9" || rec.Code != http.StatusNoContent {
		t.Fatalf("expected s9 dropped with 204, got %q / %d", dropped, rec.Code)
	}
}

func TestAuthHandler_Logout_RequiresClaims(t *testing.T) {
	e := newEcho()
	h := NewAuthHandler(&stubAuthService{})

	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/v1/auth/logout", nil), httptest.NewRecorder())
	err := h.Logout(c)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}

func TestBookingHandler_AdvanceRejectsInvalidStep(t *testing.T) {
	e := newEcho()
	pages := newSinglePage(t)
	h := NewBookingHandler(&stubAuthService{}, pages, nil)

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/v1/booking/advance", `{"senderName":"Asha","senderPincode":"12"}`), rec)
	c.Set(middleware.SessionIDKey, "s1")

	err := h.Advance(c)
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if _, ok := ve.Fields["senderPincode"]; !ok {
		t.Fatalf("expected pincode error, got %v", ve.Fields)
	}
	if pages.ws.Booking.View().Step != int(domain.StepPickup) {
		t.Fatalf("failed validation must not move the wizard")
	}
}

func TestBookingHandler_AdvanceAndRetreat(t *testing.T) {
	e := newEcho()
	pages := newSinglePage(t)
	h := NewBookingHandler(&stubAuthService{}, pages, nil)

	body := `{"senderName":"Asha Rao","senderEmail":"asha@example.com","senderPhone":"9876543210",
		"senderAddress":"12 MG Road","senderCity":"Bengaluru","senderState":"Karnataka","senderPincode":"560001"}`
	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/v1/booking/advance", body), rec)
	c.Set(middleware.SessionIDKey, "s1")
	if err := h.Advance(c); err != nil {
		t.Fatalf("advance: %v", err)
	}
	if !strings.Contains(rec.Body.String(), `"step":2`) {
		t.Fatalf("expected step 2, got %s", rec.Body.String())
	}

	rec = httptest.NewRecorder()
	c = e.NewContext(httptest.NewRequest(http.MethodPost, "/v1/booking/retreat", nil), rec)
	c.Set(middleware.SessionIDKey, "s1")
	if err := h.Retreat(c); err != nil {
		t.Fatalf("retreat: %v", err)
	}
	if !strings.Contains(rec.Body.String(), `"step":1`) || !strings.Contains(rec.Body.String(), `"senderCity":"Bengaluru"`) {
		t.Fatalf("expected step 1 with draft kept, got %s", rec.Body.String())
	}
}

func TestBookingHandler_SelectRequiresIndex(t *testing.T) {
	e := newEcho()
	h := NewBookingHandler(&stubAuthService{}, newSinglePage(t), nil)

	c := e.NewContext(jsonRequest(http.MethodPost, "/v1/booking/select", `{}`), httptest.NewRecorder())
	c.Set(middleware.SessionIDKey, "s1")

	var ve *domain.ValidationError
	if err := h.Select(c); !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestBookingHandler_SelectOutsideQuoteStep(t *testing.T) {
	e := newEcho()
	h := NewBookingHandler(&stubAuthService{}, newSinglePage(t), nil)

	c := e.NewContext(jsonRequest(http.MethodPost, "/v1/booking/select", `{"index":0}`), httptest.NewRecorder())
	c.Set(middleware.SessionIDKey, "s1")

	if err := h.Select(c); !errors.Is(err, domain.ErrWrongStep) {
		t.Fatalf("expected ErrWrongStep, got %v", err)
	}
}

func TestBookingHandler_PincodeRejectsUnknownSide(t *testing.T) {
	e := newEcho()
	h := NewBookingHandler(&stubAuthService{}, newSinglePage(t), nil)

	c := e.NewContext(jsonRequest(http.MethodPost, "/v1/booking/pincode", `{"side":"north","pincode":"560001"}`), httptest.NewRecorder())
	c.Set(middleware.SessionIDKey, "s1")

	var ve *domain.ValidationError
	if err := h.Pincode(c); !errors.As(err, &ve) || ve.Fields["side"] == "" {
		t.Fatalf("expected side validation error, got %v", err)
	}
}

func TestDashboardHandler_PropagatesResolveError(t *testing.T) {
	e := newEcho()
	h := NewDashboardHandler(&stubAuthService{
		resolveFn: func(context.Context, string) (*domain.Session, error) {
			return nil, domain.ErrSessionNotFound
		},
	}, nil)

	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/v1/dashboard", nil), httptest.NewRecorder())
	c.Set(middleware.SessionIDKey, "gone")

	if err := h.Overview(c); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestTrackingHandler_SnapshotAndStop(t *testing.T) {
	e := newEcho()
	pages := newSinglePage(t)
	h := NewTrackingHandler(pages, service.NewTrackingService(nil, zerolog.Nop()))

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/v1/tracking", nil), rec)
	c.Set(middleware.SessionIDKey, "s1")
	if err := h.Snapshot(c); err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if !strings.Contains(rec.Body.String(), `"live":false`) {
		t.Fatalf("unexpected snapshot: %s", rec.Body.String())
	}

	rec = httptest.NewRecorder()
	c = e.NewContext(httptest.NewRequest(http.MethodDelete, "/v1/tracking", nil), rec)
	c.Set(middleware.SessionIDKey, "s1")
	if err := h.Stop(c); err != nil {
		t.Fatalf("stop: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
}

func TestTrackingHandler_LookupRequiresNumber(t *testing.T) {
	e := newEcho()
	h := NewTrackingHandler(newSinglePage(t), service.NewTrackingService(nil, zerolog.Nop()))

	c := e.NewContext(jsonRequest(http.MethodPost, "/v1/tracking", `{"trackingNumber":"  "}`), httptest.NewRecorder())
	c.Set(middleware.SessionIDKey, "s1")

	var ve *domain.ValidationError
	if err := h.Lookup(c); !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestFormValues(t *testing.T) {
	got := formValues(map[string]any{
		"weight":     2.5,
		"codEnabled": true,
		"fragile":    false,
		"senderName": "Asha",
		"nothing":    nil,
		"nested":     map[string]any{"a": 1},
	})

	want := map[string]string{
		"weight":     "2.5",
		"codEnabled": "true",
		"fragile":    "",
		"senderName": "Asha",
		"nothing":    "",
	}
	if len(got) != len(want) {
		t.Fatalf("unexpected values: %v", got)
	}
	for k, v := range want {
		if got[k] != v {
			t.Fatalf("%s: expected %q, got %q", k, v, got[k])
		}
	}
}
