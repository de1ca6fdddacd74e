package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/logisco/courierfront/internal/api/metrics"
	"github.com/logisco/courierfront/internal/core/domain"
	"github.com/logisco/courierfront/internal/core/ports"
)

const (
	AlertPriceFailed = "Error calculating price. Please try again."
	NoticeNoOptions  = "No courier options available for this route."

	defaultDeliveryType = "STANDARD"
	defaultPackageType  = "PARCEL"
)

// PricingService asks the backend for quotes on the current draft.
type PricingService struct {
	backend ports.BookingBackend
	log     zerolog.Logger
}

func NewPricingService(backend ports.BookingBackend, log zerolog.Logger) *PricingService {
	return &PricingService{backend: backend, log: log}
}

// Quote prices the draft. It returns domain.ErrQuoteSkipped without
// calling the backend when weight or either pincode is missing, and an
// AlertError on any backend failure.
func (s *PricingService) Quote(ctx context.Context, draft domain.BookingDraft) (domain.QuoteResult, error) {
	req, ok := BuildPriceRequest(draft)
	if !ok {
		s.log.Debug().Msg("price query skipped: weight or pincode missing")
		metrics.PriceQueriesTotal.WithLabelValues("skipped").Inc()
		return domain.QuoteResult{}, domain.ErrQuoteSkipped
	}

	res, err := s.backend.CalculatePrice(ctx, req)
	if err != nil {
		metrics.PriceQueriesTotal.WithLabelValues("error").Inc()
		s.log.Warn().Err(err).
			Str("pickup", req.PickupPincode).
			Str("delivery", req.DeliveryPincode).
			Msg("price query failed")
		return domain.QuoteResult{}, &domain.AlertError{
			Message: AlertPriceFailed,
			Err:     fmt.Errorf("calculate price: %w", err),
		}
	}

	metrics.PriceQueriesTotal.WithLabelValues(res.Kind.String()).Inc()
	s.log.Debug().
		Str("kind", res.Kind.String()).
		Int("quotes", len(res.Quotes)).
		Msg("price query answered")
	return res, nil
}

// BuildPriceRequest maps draft values onto the price query. ok is false
// when weight or either pincode is missing.
func BuildPriceRequest(draft domain.BookingDraft) (ports.PriceRequest, bool) {
	weight, hasWeight := draft.Number("weight")
	pickup := draft.Text("senderPincode")
	delivery := draft.Text("receiverPincode")
	if !hasWeight || weight <= 0 || pickup == "" || delivery == "" {
		return ports.PriceRequest{}, false
	}

	req := ports.PriceRequest{
		Weight:            weight,
		Length:            optionalNumber(draft, "length"),
		Width:             optionalNumber(draft, "width"),
		Height:            optionalNumber(draft, "height"),
		DeliveryType:      textOr(draft, "deliveryType", defaultDeliveryType),
		PackageType:       textOr(draft, "packageType", defaultPackageType),
		PickupPincode:     pickup,
		DeliveryPincode:   delivery,
		CODEnabled:        draft.Flag("codEnabled"),
		InsuranceRequired: draft.Flag("insuranceRequired"),
	}
	if req.CODEnabled {
		req.CODAmount = optionalNumber(draft, "codAmount")
	}
	if req.InsuranceRequired {
		req.DeclaredValue = optionalNumber(draft, "declaredValue")
	}
	return req, true
}

func optionalNumber(draft domain.BookingDraft, name string) *float64 {
	v, ok := draft.Number(name)
	if !ok {
		return nil
	}
	return &v
}

func textOr(draft domain.BookingDraft, name, fallback string) string {
	if v := draft.Text(name); v != "" {
		return v
	}
	return fallback
}
