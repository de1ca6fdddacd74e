package service

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/logisco/courierfront/internal/api/metrics"
	"github.com/logisco/courierfront/internal/core/domain"
	"github.com/logisco/courierfront/internal/core/ports"
)

// PincodeSide names which address a pincode lookup belongs to.
type PincodeSide string

const (
	SideOrigin      PincodeSide = "origin"
	SideDestination PincodeSide = "destination"
)

const MessageInvalidPincode = "Invalid pincode"

// QuoteOption is one selectable row of a multi-carrier quote list.
type QuoteOption struct {
	Index         int    `json:"index"`
	CarrierName   string `json:"carrier_name"`
	TotalPrice    string `json:"total_price"`
	EstimatedDays string `json:"estimated_days"`
	Selected      bool   `json:"selected"`
}

// ReviewLine is one labelled value on the review step.
type ReviewLine struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Review is the read-only summary shown before submission.
type Review struct {
	Pickup     []ReviewLine         `json:"pickup"`
	Delivery   []ReviewLine         `json:"delivery"`
	Package    []ReviewLine         `json:"package"`
	Quote      *domain.PriceSummary `json:"quote,omitempty"`
	FinalTotal string               `json:"final_total"`
}

// WizardView is the rendered state of a booking wizard.
type WizardView struct {
	Step              int                  `json:"step"`
	StepName          string               `json:"step_name"`
	TotalSteps        int                  `json:"total_steps"`
	Draft             domain.BookingDraft  `json:"draft"`
	Options           []QuoteOption        `json:"options,omitempty"`
	Summary           *domain.PriceSummary `json:"price_summary,omitempty"`
	Notice            string               `json:"notice,omitempty"`
	Alert             string               `json:"alert,omitempty"`
	Review            *Review              `json:"review,omitempty"`
	PendingSubmission bool                 `json:"pending_submission"`
}

// PincodeResult is the outcome of a pincode autofill lookup.
type PincodeResult struct {
	Side           PincodeSide    `json:"side"`
	Pincode        string         `json:"pincode"`
	Complete       bool           `json:"complete"`
	Valid          bool           `json:"valid"`
	City           string         `json:"city,omitempty"`
	State          string         `json:"state,omitempty"`
	Message        string         `json:"message,omitempty"`
	Serviceability map[string]any `json:"serviceability,omitempty"`
}

// WizardDeps are the collaborators shared by every wizard.
type WizardDeps struct {
	Pricing  *PricingService
	Pincodes ports.PincodeLookup
	Backend  ports.BookingBackend
	Log      zerolog.Logger
}

var sharedStepRules = sync.OnceValue(newStepRules)

// Wizard is the five-step booking state machine of one session.
// All methods are safe for concurrent use.
type Wizard struct {
	deps  WizardDeps
	rules *stepRules

	mu             sync.Mutex
	step           domain.Step
	draft          domain.BookingDraft
	quotes         []domain.PriceQuote
	choiceRequired bool
	selected       int
	notice         string
	alert          string
	pending        bool
}

func NewWizard(deps WizardDeps) *Wizard {
	return &Wizard{
		deps:     deps,
		rules:    sharedStepRules(),
		step:     domain.StepPickup,
		draft:    domain.BookingDraft{},
		selected: -1,
	}
}

// View renders the current state.
func (w *Wizard) View() WizardView {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.viewLocked()
}

// Advance validates the active step's inputs, merges them into the draft
// and moves forward. Leaving the package step triggers a price query
// whose failure is reported in the view's alert, not as an error.
func (w *Wizard) Advance(ctx context.Context, form map[string]string) (WizardView, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.alert = ""
	from := w.step
	if from == domain.StepReview {
		return w.viewLocked(), nil
	}

	values := w.rules.pick(from, form)
	if failures := w.rules.check(from, values); failures != nil {
		metrics.WizardTransitionsTotal.WithLabelValues(from.String(), "rejected").Inc()
		return w.viewLocked(), &domain.ValidationError{Fields: failures}
	}
	if from == domain.StepQuote && w.choiceRequired && w.selected < 0 {
		metrics.WizardTransitionsTotal.WithLabelValues(from.String(), "rejected").Inc()
		return w.viewLocked(), domain.NewValidationError("courier", "Please select a courier option")
	}

	maps.Copy(w.draft, values)
	if from == domain.StepPackage {
		w.requoteLocked(ctx)
	}
	w.step++

	metrics.WizardTransitionsTotal.WithLabelValues(from.String(), "advanced").Inc()
	w.deps.Log.Debug().Str("from", from.String()).Str("to", w.step.String()).Msg("wizard advanced")
	return w.viewLocked(), nil
}

// Retreat moves one step back without validation.
func (w *Wizard) Retreat() WizardView {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.alert = ""
	if w.step > domain.StepPickup {
		metrics.WizardTransitionsTotal.WithLabelValues(w.step.String(), "retreated").Inc()
		w.step--
	}
	return w.viewLocked()
}

// Reset returns to the first step and discards the draft and quotes.
func (w *Wizard) Reset() WizardView {
	w.mu.Lock()
	defer w.mu.Unlock()

	metrics.WizardTransitionsTotal.WithLabelValues(w.step.String(), "reset").Inc()
	w.resetLocked()
	return w.viewLocked()
}

// SelectQuote picks one option of a multi-carrier list.
func (w *Wizard) SelectQuote(index int) (WizardView, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.step != domain.StepQuote {
		return w.viewLocked(), fmt.Errorf("select quote at %s: %w", w.step, domain.ErrWrongStep)
	}
	if index < 0 || index >= len(w.quotes) {
		return w.viewLocked(), domain.NewValidationError("courier", "Unknown courier option")
	}
	w.selected = index
	return w.viewLocked(), nil
}

// LookupPincode resolves a partially typed pincode. Nothing is looked up
// until six digits are present; a failed lookup marks the result invalid
// instead of returning an error. The draft is never modified.
func (w *Wizard) LookupPincode(ctx context.Context, side PincodeSide, raw, counterpart string) PincodeResult {
	res := PincodeResult{Side: side, Pincode: digitsOnly(raw)}
	if len(res.Pincode) != 6 {
		return res
	}
	res.Complete = true

	info, err := w.deps.Pincodes.Lookup(ctx, res.Pincode)
	if err != nil {
		w.deps.Log.Debug().Err(err).Str("pincode", res.Pincode).Msg("pincode lookup failed")
		res.Message = MessageInvalidPincode
		return res
	}
	res.Valid = true
	res.City = info.City()
	res.State = info.State
	res.Message = fmt.Sprintf("%s - %s ✓", strings.ToUpper(info.City()), strings.ToUpper(info.State))

	other := digitsOnly(counterpart)
	if len(other) != 6 {
		other = w.storedPincode(side.opposite())
	}
	if len(other) != 6 {
		return res
	}

	req := ports.ServiceabilityRequest{PickupPincode: res.Pincode, DeliveryPincode: other}
	if side == SideDestination {
		req = ports.ServiceabilityRequest{PickupPincode: other, DeliveryPincode: res.Pincode}
	}
	verdict, err := w.deps.Backend.CheckServiceability(ctx, req)
	if err != nil {
		w.deps.Log.Warn().Err(err).
			Str("pickup", req.PickupPincode).
			Str("delivery", req.DeliveryPincode).
			Msg("serviceability check failed")
		return res
	}
	res.Serviceability = verdict
	return res
}

// submission returns what a booking submission needs.
func (w *Wizard) submission() (domain.Step, domain.BookingDraft, *domain.PriceQuote) {
	w.mu.Lock()
	defer w.mu.Unlock()

	var quote *domain.PriceQuote
	if w.selected >= 0 {
		q := w.quotes[w.selected]
		quote = &q
	}
	return w.step, w.draft.Clone(), quote
}

func (w *Wizard) suspend() {
	w.mu.Lock()
	w.pending = true
	w.mu.Unlock()
}

// takePending clears and returns the suspended-submission flag.
func (w *Wizard) takePending() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	p := w.pending
	w.pending = false
	return p
}

func (w *Wizard) requoteLocked(ctx context.Context) {
	w.quotes, w.selected, w.choiceRequired, w.notice = nil, -1, false, ""

	res, err := w.deps.Pricing.Quote(ctx, w.draft)
	switch {
	case errors.Is(err, domain.ErrQuoteSkipped):
		return
	case err != nil:
		w.alert = AlertPriceFailed
		var ae *domain.AlertError
		if errors.As(err, &ae) {
			w.alert = ae.Message
		}
		return
	}

	w.quotes = res.Quotes
	w.choiceRequired = res.RequiresChoice()
	if _, ok := res.AutoSelect(); ok {
		w.selected = 0
	}
	if res.Kind == domain.QuoteOptions && len(res.Quotes) == 0 {
		w.notice = NoticeNoOptions
	}
}

func (w *Wizard) resetLocked() {
	w.step = domain.StepPickup
	w.draft = domain.BookingDraft{}
	w.quotes = nil
	w.choiceRequired = false
	w.selected = -1
	w.notice = ""
	w.alert = ""
	w.pending = false
}

func (w *Wizard) storedPincode(side PincodeSide) string {
	w.mu.Lock()
	defer w.mu.Unlock()
	if side == SideOrigin {
		return digitsOnly(w.draft["senderPincode"])
	}
	return digitsOnly(w.draft["receiverPincode"])
}

func (w *Wizard) viewLocked() WizardView {
	v := WizardView{
		Step:              int(w.step),
		StepName:          w.step.String(),
		TotalSteps:        domain.TotalSteps,
		Draft:             w.draft.Clone(),
		Notice:            w.notice,
		Alert:             w.alert,
		PendingSubmission: w.pending,
	}
	if len(w.quotes) > 1 {
		v.Options = make([]QuoteOption, len(w.quotes))
		for i, q := range w.quotes {
			s := domain.NewPriceSummary(q)
			v.Options[i] = QuoteOption{
				Index:         i,
				CarrierName:   q.CarrierName,
				TotalPrice:    s.TotalPrice,
				EstimatedDays: s.EstimatedDays,
				Selected:      i == w.selected,
			}
		}
	}
	if w.selected >= 0 {
		s := domain.NewPriceSummary(w.quotes[w.selected])
		v.Summary = &s
	}
	if w.step == domain.StepReview {
		v.Review = buildReview(w.draft, v.Summary)
	}
	return v
}

func buildReview(d domain.BookingDraft, summary *domain.PriceSummary) *Review {
	r := &Review{
		Pickup: []ReviewLine{
			{Label: "Name", Value: d.Text("senderName")},
			{Label: "Phone", Value: d.Text("senderPhone")},
			{Label: "Email", Value: d.Text("senderEmail")},
			{Label: "Address", Value: joinAddress(d, "sender")},
		},
		Delivery: []ReviewLine{
			{Label: "Name", Value: d.Text("receiverName")},
			{Label: "Phone", Value: d.Text("receiverPhone")},
			{Label: "Address", Value: joinAddress(d, "receiver")},
		},
		Package: []ReviewLine{
			{Label: "Type", Value: d.Text("packageType")},
			{Label: "Weight", Value: d.Text("weight") + " kg"},
			{Label: "Delivery Type", Value: strings.ReplaceAll(d.Text("deliveryType"), "_", " ")},
		},
		Quote:      summary,
		FinalTotal: domain.FormatINR(0),
	}
	if date := d.Text("preferredPickupDate"); date != "" {
		r.Pickup = append(r.Pickup, ReviewLine{Label: "Pickup Date", Value: strings.TrimSpace(date + " " + d.Text("preferredPickupTimeSlot"))})
	}
	if desc := d.Text("packageDescription"); desc != "" {
		r.Package = append(r.Package, ReviewLine{Label: "Description", Value: desc})
	}
	if d.Flag("codEnabled") {
		amount, _ := d.Number("codAmount")
		r.Package = append(r.Package, ReviewLine{Label: "COD Amount", Value: domain.FormatINR(amount)})
	}
	if d.Flag("insuranceRequired") {
		value, _ := d.Number("declaredValue")
		r.Package = append(r.Package, ReviewLine{Label: "Declared Value", Value: domain.FormatINR(value)})
	}
	if summary != nil {
		r.FinalTotal = summary.TotalPrice
	}
	return r
}

func joinAddress(d domain.BookingDraft, prefix string) string {
	parts := make([]string, 0, 3)
	for _, k := range []string{"Address", "City", "State"} {
		if v := d.Text(prefix + k); v != "" {
			parts = append(parts, v)
		}
	}
	addr := strings.Join(parts, ", ")
	if pin := d.Text(prefix + "Pincode"); pin != "" {
		addr += " - " + pin
	}
	return addr
}

func (s PincodeSide) opposite() PincodeSide {
	if s == SideOrigin {
		return SideDestination
	}
	return SideOrigin
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
