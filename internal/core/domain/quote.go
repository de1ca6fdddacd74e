package domain

import (
	"errors"
	"fmt"
	"strconv"
)

var ErrQuoteSkipped = errors.New("price query skipped: weight or pincode missing")

// PriceQuote is one carrier's price for the current draft.
type PriceQuote struct {
	CarrierID       *int64  `json:"courierPartnerId,omitempty"`
	CarrierCode     string  `json:"courierPartnerCode,omitempty"`
	CarrierName     string  `json:"courierPartner"`
	BasePrice       float64 `json:"basePrice"`
	CODCharge       float64 `json:"codCharge"`
	FragileCharge   float64 `json:"fragileCharge"`
	InsuranceCharge float64 `json:"insuranceCharge"`
	FuelSurcharge   float64 `json:"fuelSurcharge"`
	ServiceTax      float64 `json:"serviceTax"`
	TotalPrice      float64 `json:"totalPrice"`
	EstimatedDays   *int    `json:"estimatedDays,omitempty"`
}

// QuoteKind tags the shape of a price response.
type QuoteKind int

const (
	QuoteSingle QuoteKind = iota + 1
	QuoteOptions
)

func (k QuoteKind) String() string {
	switch k {
	case QuoteSingle:
		return "single"
	case QuoteOptions:
		return "options"
	default:
		return "unknown"
	}
}

// QuoteResult is a price response decoded at the transport boundary.
// Single always carries exactly one quote.
type QuoteResult struct {
	Kind   QuoteKind
	Quotes []PriceQuote
}

// AutoSelect returns the quote to preselect, if the result leaves no
// choice to the user.
func (r QuoteResult) AutoSelect() (PriceQuote, bool) {
	if len(r.Quotes) != 1 {
		return PriceQuote{}, false
	}
	return r.Quotes[0], true
}

// RequiresChoice reports whether the user must pick among several options.
func (r QuoteResult) RequiresChoice() bool {
	return r.Kind == QuoteOptions && len(r.Quotes) > 1
}

// FormatINR renders an amount as rupees with two decimals.
func FormatINR(v float64) string {
	return fmt.Sprintf("₹%.2f", v)
}

// PriceSummary is the display form of a selected quote.
type PriceSummary struct {
	CarrierName     string `json:"carrier_name"`
	BasePrice       string `json:"base_price"`
	CODCharge       string `json:"cod_charge"`
	FragileCharge   string `json:"fragile_charge"`
	InsuranceCharge string `json:"insurance_charge"`
	FuelSurcharge   string `json:"fuel_surcharge"`
	ServiceTax      string `json:"service_tax"`
	TotalPrice      string `json:"total_price"`
	EstimatedDays   string `json:"estimated_days"`
}

// NewPriceSummary formats a quote for display.
func NewPriceSummary(q PriceQuote) PriceSummary {
	days := "N/A"
	if q.EstimatedDays != nil {
		days = strconv.Itoa(*q.EstimatedDays)
	}
	return PriceSummary{
		CarrierName:     q.CarrierName,
		BasePrice:       FormatINR(q.BasePrice),
		CODCharge:       FormatINR(q.CODCharge),
		FragileCharge:   FormatINR(q.FragileCharge),
		InsuranceCharge: FormatINR(q.InsuranceCharge),
		FuelSurcharge:   FormatINR(q.FuelSurcharge),
		ServiceTax:      FormatINR(q.ServiceTax),
		TotalPrice:      FormatINR(q.TotalPrice),
		EstimatedDays:   days,
	}
}
