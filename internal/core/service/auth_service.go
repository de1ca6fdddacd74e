package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/logisco/courierfront/internal/core/domain"
	"github.com/logisco/courierfront/internal/core/ports"
)

const (
	MessageInvalidPhone = "Enter a valid 10-digit mobile number"
	MessageInvalidOTP   = "Enter the 6-digit OTP"
	AlertOTPRejected    = "Invalid or expired OTP"
	AlertOTPSendFailed  = "Failed to send OTP"
	AlertRegisterFailed = "Registration failed"
)

// SessionCloser releases the in-memory page state of a session.
type SessionCloser interface {
	Close(sessionID string)
}

// AuthService implements session issuance and proxies login, registration
// and OTP verification to the courier backend.
type AuthService struct {
	backend   ports.IdentityBackend
	store     ports.SessionStore
	pages     SessionCloser
	jwtSecret string
	tokenTTL  time.Duration
	log       zerolog.Logger
}

func NewAuthService(
	backend ports.IdentityBackend,
	store ports.SessionStore,
	pages SessionCloser,
	jwtSecret string,
	tokenTTL time.Duration,
	log zerolog.Logger,
) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		backend:   backend,
		store:     store,
		pages:     pages,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		log:       log,
	}
}

// StartGuest opens an anonymous session.
func (s *AuthService) StartGuest(ctx context.Context) (string, *domain.Session, error) {
	sess := &domain.Session{
		ID:        uuid.NewString(),
		Role:      domain.RoleGuest,
		CreatedAt: time.Now().UTC(),
	}
	return s.issue(ctx, sess)
}

func (s *AuthService) Login(ctx context.Context, username, password string) (string, *domain.Session, error) {
	if strings.TrimSpace(username) == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	id, err := s.backend.Login(ctx, ports.Credentials{Username: strings.TrimSpace(username), Password: password})
	if err != nil {
		var be *domain.BackendError
		if errors.As(err, &be) && be.Status < http.StatusInternalServerError {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("login: %w", err)
	}

	sess := &domain.Session{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
	}
	applyIdentity(sess, id)
	return s.issue(ctx, sess)
}

func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) error {
	if in.Password != in.ConfirmPassword {
		return domain.NewValidationError("confirmPassword", "Passwords do not match")
	}

	err := s.backend.Register(ctx, ports.Registration{
		FullName:    in.FullName,
		Username:    in.Username,
		Email:       in.Email,
		PhoneNumber: in.PhoneNumber,
		Password:    in.Password,
		Role:        domain.RoleUser,
	})
	if err != nil {
		return backendAlert(err, AlertRegisterFailed)
	}
	s.log.Info().Str("username", in.Username).Msg("user registered")
	return nil
}

// Logout drops the session and its page state.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	s.pages.Close(sessionID)
	if err := s.store.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

// Resolve loads the session behind a validated token.
func (s *AuthService) Resolve(ctx context.Context, sessionID string) (*domain.Session, error) {
	sess, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("resolve session: %w", err)
	}
	return sess, nil
}

// RequestOTP asks the backend to text a one-time code to phone.
func (s *AuthService) RequestOTP(ctx context.Context, phone, fullName string) error {
	phone = digitsOnly(phone)
	if len(phone) != 10 {
		return domain.NewValidationError("phone", MessageInvalidPhone)
	}
	if err := s.backend.RequestOTP(ctx, ports.OTPRequest{Phone: phone, FullName: strings.TrimSpace(fullName)}); err != nil {
		return backendAlert(err, AlertOTPSendFailed)
	}
	return nil
}

// VerifyOTP checks the code and upgrades the session in place, keeping
// its id so page state survives. A fresh token carrying the new role is
// returned.
func (s *AuthService) VerifyOTP(ctx context.Context, sessionID, phone, otp, fullName string) (string, *domain.Session, error) {
	phone = digitsOnly(phone)
	if len(phone) != 10 {
		return "", nil, domain.NewValidationError("phone", MessageInvalidPhone)
	}
	otp = digitsOnly(otp)
	if len(otp) != 6 {
		return "", nil, domain.NewValidationError("otp", MessageInvalidOTP)
	}

	sess, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return "", nil, fmt.Errorf("verify otp: %w", err)
	}

	id, err := s.backend.VerifyOTP(ctx, ports.OTPVerification{Phone: phone, OTP: otp, FullName: strings.TrimSpace(fullName)})
	if err != nil {
		return "", nil, backendAlert(err, AlertOTPRejected)
	}
	applyIdentity(sess, id)

	s.log.Info().Str("session", sess.ID).Int64("user_id", sess.UserID).Msg("session verified by otp")
	return s.issue(ctx, sess)
}

func (s *AuthService) issue(ctx context.Context, sess *domain.Session) (string, *domain.Session, error) {
	if err := s.store.Save(ctx, sess); err != nil {
		return "", nil, fmt.Errorf("save session: %w", err)
	}
	token, err := s.generateToken(sess)
	if err != nil {
		return "", nil, err
	}
	return token, sess, nil
}

func (s *AuthService) generateToken(sess *domain.Session) (string, error) {
	claims := jwt.MapClaims{
		"sid":  sess.ID,
		"role": sess.Role,
		"exp":  time.Now().Add(s.tokenTTL).Unix(),
	}
	if sess.Username != "" {
		claims["username"] = sess.Username
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

func applyIdentity(sess *domain.Session, id *ports.Identity) {
	sess.UserID = id.UserID
	sess.Username = id.Username
	sess.BackendToken = id.Token
	sess.Role = id.Role
	if sess.Role == "" {
		sess.Role = domain.RoleUser
	}
}

// backendAlert turns a backend rejection into a user-facing alert that
// repeats the server message when one was given.
func backendAlert(err error, fallback string) error {
	var be *domain.BackendError
	if errors.As(err, &be) {
		msg := be.Message
		if msg == "" {
			msg = fallback
		}
		return &domain.AlertError{Message: msg, Err: err}
	}
	return err
}
