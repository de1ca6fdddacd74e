// Package backend is the HTTP adapter for the courier backend API.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/logisco/courierfront/internal/api/metrics"
	"github.com/logisco/courierfront/internal/core/domain"
	"github.com/logisco/courierfront/internal/core/ports"
)

const maxResponseBytes = 1 << 20

// Client talks JSON to the courier backend. It implements
// ports.BookingBackend, ports.IdentityBackend and ports.TrackingBackend.
type Client struct {
	baseURL string
	http    *http.Client
	log     zerolog.Logger
}

var (
	_ ports.BookingBackend  = (*Client)(nil)
	_ ports.IdentityBackend = (*Client)(nil)
	_ ports.TrackingBackend = (*Client)(nil)
)

// NewClient returns a client for baseURL. A zero timeout leaves request
// lifetimes to the caller's context.
func NewClient(baseURL string, timeout time.Duration, log zerolog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

func (c *Client) CheckServiceability(ctx context.Context, req ports.ServiceabilityRequest) (map[string]any, error) {
	var out map[string]any
	if err := c.doJSON(ctx, http.MethodPost, "/booking/check-serviceability", "", req, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CalculatePrice(ctx context.Context, req ports.PriceRequest) (domain.QuoteResult, error) {
	body, err := c.do(ctx, http.MethodPost, "/booking/calculate-price", "", req)
	if err != nil {
		return domain.QuoteResult{}, err
	}
	return DecodeQuoteResult(body)
}

func (c *Client) CreateBooking(ctx context.Context, token string, payload map[string]any) (*domain.Confirmation, error) {
	var conf domain.Confirmation
	if err := c.doJSON(ctx, http.MethodPost, "/booking/create", token, payload, &conf); err != nil {
		return nil, err
	}
	return &conf, nil
}

func (c *Client) Login(ctx context.Context, creds ports.Credentials) (*ports.Identity, error) {
	var id ports.Identity
	if err := c.doJSON(ctx, http.MethodPost, "/auth/login", "", creds, &id); err != nil {
		return nil, err
	}
	return &id, nil
}

func (c *Client) Register(ctx context.Context, reg ports.Registration) error {
	_, err := c.do(ctx, http.MethodPost, "/auth/register", "", reg)
	return err
}

func (c *Client) RequestOTP(ctx context.Context, req ports.OTPRequest) error {
	_, err := c.do(ctx, http.MethodPost, "/auth/request-otp", "", req)
	return err
}

func (c *Client) VerifyOTP(ctx context.Context, req ports.OTPVerification) (*ports.Identity, error) {
	var id ports.Identity
	if err := c.doJSON(ctx, http.MethodPost, "/auth/verify-otp", "", req, &id); err != nil {
		return nil, err
	}
	return &id, nil
}

func (c *Client) Track(ctx context.Context, trackingNumber string) (*domain.ShipmentRecord, error) {
	var rec domain.ShipmentRecord
	if err := c.doJSON(ctx, http.MethodGet, "/track/"+url.PathEscape(trackingNumber), "", nil, &rec); err != nil {
		return nil, err
	}
	if rec.ID == 0 {
		return nil, &domain.BackendError{Status: http.StatusBadGateway, Message: "shipment record without id"}
	}
	return &rec, nil
}

func (c *Client) History(ctx context.Context, shipmentID int64) ([]domain.TrackingEvent, error) {
	var events []domain.TrackingEvent
	path := "/shipments/" + strconv.FormatInt(shipmentID, 10) + "/history"
	if err := c.doJSON(ctx, http.MethodGet, path, "", nil, &events); err != nil {
		return nil, err
	}
	return events, nil
}

func (c *Client) UserShipments(ctx context.Context, token string, userID int64) ([]domain.ShipmentRecord, error) {
	var records []domain.ShipmentRecord
	path := "/shipments/user/" + strconv.FormatInt(userID, 10)
	if err := c.doJSON(ctx, http.MethodGet, path, token, nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// Ping reports whether the backend answers HTTP at all. Any status
// counts as reachable; only transport failures are errors.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.baseURL+"/", nil)
	if err != nil {
		return fmt.Errorf("build ping: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("ping backend: %w", err)
	}
	_ = resp.Body.Close()
	return nil
}

func (c *Client) doJSON(ctx context.Context, method, path, token string, in, out any) error {
	body, err := c.do(ctx, method, path, token, in)
	if err != nil {
		return err
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%s %s: decode response: %w", method, path, err)
	}
	return nil
}

// do performs one request and returns the response body. Non-2xx answers
// become *domain.BackendError carrying the server's error text.
func (c *Client) do(ctx context.Context, method, path, token string, in any) ([]byte, error) {
	var reqBody io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("%s %s: encode request: %w", method, path, err)
		}
		reqBody = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		metrics.UpstreamRequestDuration.WithLabelValues("backend", "error").Observe(time.Since(start).Seconds())
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	metrics.UpstreamRequestDuration.WithLabelValues("backend", strconv.Itoa(resp.StatusCode)).Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, fmt.Errorf("%s %s: read response: %w", method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Debug().
			Str("method", method).
			Str("path", path).
			Int("status", resp.StatusCode).
			Msg("backend rejected request")
		return nil, &domain.BackendError{Status: resp.StatusCode, Message: serverMessage(body)}
	}
	return body, nil
}

// serverMessage extracts the backend's error text: "error" first, then
// "message".
func serverMessage(body []byte) string {
	var envelope struct {
		Error   any    `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return ""
	}
	if s, ok := envelope.Error.(string); ok && s != "" {
		return s
	}
	return envelope.Message
}
