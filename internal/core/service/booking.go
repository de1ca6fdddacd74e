package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/logisco/courierfront/internal/api/metrics"
	"github.com/logisco/courierfront/internal/core/domain"
	"github.com/logisco/courierfront/internal/core/ports"
)

const (
	AlertBookingFailed    = "Failed to create booking"
	AlertBookingTransport = "Error creating booking. Please try again."
)

// Verification is the outcome of a successful OTP check. When a booking
// submission was waiting on the check, Confirmation or SubmitError
// reports how the single automatic retry went.
type Verification struct {
	Token        string
	Session      *domain.Session
	Resubmitted  bool
	Confirmation *domain.Confirmation
	SubmitError  string
}

// BookingService submits the reviewed draft and runs the OTP gate that
// guards it.
type BookingService struct {
	backend ports.BookingBackend
	auth    *AuthService
	log     zerolog.Logger
}

func NewBookingService(backend ports.BookingBackend, auth *AuthService, log zerolog.Logger) *BookingService {
	return &BookingService{backend: backend, auth: auth, log: log}
}

// Submit sends the draft once the wizard reached review. Sessions without
// a verified identity are suspended with domain.ErrIdentityRequired.
func (s *BookingService) Submit(ctx context.Context, sess *domain.Session, w *Wizard) (*domain.Confirmation, error) {
	step, _, _ := w.submission()
	if step != domain.StepReview {
		return nil, fmt.Errorf("submit booking at %s: %w", step, domain.ErrWrongStep)
	}
	if !sess.Verified() {
		w.suspend()
		metrics.BookingSubmissionsTotal.WithLabelValues("identity_required").Inc()
		s.log.Debug().Str("session", sess.ID).Msg("booking suspended until identity is verified")
		return nil, domain.ErrIdentityRequired
	}
	return s.submit(ctx, sess, w)
}

// RequestOTP starts the identity challenge.
func (s *BookingService) RequestOTP(ctx context.Context, phone, fullName string) error {
	return s.auth.RequestOTP(ctx, phone, fullName)
}

// VerifyOTP completes the identity challenge and, if a submission was
// suspended, retries it exactly once. A failed retry does not fail the
// verification.
func (s *BookingService) VerifyOTP(ctx context.Context, sessionID string, w *Wizard, phone, otp, fullName string) (*Verification, error) {
	token, sess, err := s.auth.VerifyOTP(ctx, sessionID, phone, otp, fullName)
	if err != nil {
		return nil, err
	}

	out := &Verification{Token: token, Session: sess}
	if w == nil || !w.takePending() {
		return out, nil
	}
	if step, _, _ := w.submission(); step != domain.StepReview {
		return out, nil
	}

	out.Resubmitted = true
	conf, err := s.submit(ctx, sess, w)
	if err != nil {
		out.SubmitError = alertMessage(err, AlertBookingTransport)
		return out, nil
	}
	out.Confirmation = conf
	return out, nil
}

func (s *BookingService) submit(ctx context.Context, sess *domain.Session, w *Wizard) (*domain.Confirmation, error) {
	_, draft, quote := w.submission()
	payload := BuildBookingPayload(draft, quote, sess)

	conf, err := s.backend.CreateBooking(ctx, sess.BackendToken, payload)
	if err != nil {
		metrics.BookingSubmissionsTotal.WithLabelValues("failed").Inc()
		s.log.Warn().Err(err).Str("session", sess.ID).Msg("booking submission failed")

		var be *domain.BackendError
		if errors.As(err, &be) {
			return nil, backendAlert(err, AlertBookingFailed)
		}
		return nil, &domain.AlertError{Message: AlertBookingTransport, Err: err}
	}

	w.Reset()
	metrics.BookingSubmissionsTotal.WithLabelValues("created").Inc()
	s.log.Info().
		Str("session", sess.ID).
		Str("tracking", conf.TrackingNumber).
		Str("booking", conf.BookingID).
		Msg("booking created")
	return conf, nil
}

// BuildBookingPayload converts the draft into the create-booking body.
// Flags become booleans, numbers are parsed or null, empty text is null.
// courierPartnerId is present only when the selected quote carries one.
func BuildBookingPayload(d domain.BookingDraft, quote *domain.PriceQuote, sess *domain.Session) map[string]any {
	payload := make(map[string]any)
	for _, step := range []domain.Step{domain.StepPickup, domain.StepDelivery, domain.StepPackage} {
		for _, f := range domain.StepFields(step) {
			payload[f.Name] = convertField(d, f)
		}
	}
	if sess.Verified() {
		payload["userId"] = sess.UserID
	}
	if quote != nil && quote.CarrierID != nil {
		payload["courierPartnerId"] = *quote.CarrierID
	}
	return payload
}

func convertField(d domain.BookingDraft, f domain.Field) any {
	switch f.Kind {
	case domain.KindFlag:
		return d.Flag(f.Name)
	case domain.KindNumber:
		if v, ok := d.Number(f.Name); ok {
			return v
		}
		return nil
	case domain.KindDate:
		day, err := time.Parse("2006-01-02", d.Text(f.Name))
		if err != nil {
			return nil
		}
		return day.Format(domain.LocalDateTimeLayout)
	default:
		if v := d.Text(f.Name); v != "" {
			return v
		}
		return nil
	}
}

func alertMessage(err error, fallback string) string {
	var ae *domain.AlertError
	if errors.As(err, &ae) {
		return ae.Message
	}
	return fallback
}
