package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/logisco/courierfront/internal/core/domain"
)

func newTestWizard(backend *stubBookingBackend, pincodes *stubPincodes) *Wizard {
	if pincodes == nil {
		pincodes = &stubPincodes{}
	}
	return NewWizard(WizardDeps{
		Pricing:  NewPricingService(backend, zerolog.Nop()),
		Pincodes: pincodes,
		Backend:  backend,
		Log:      zerolog.Nop(),
	})
}

// advanceTo drives a wizard to the given step with valid input.
func advanceTo(t *testing.T, w *Wizard, target domain.Step) WizardView {
	t.Helper()
	forms := map[domain.Step]map[string]string{
		domain.StepPickup:   pickupForm(),
		domain.StepDelivery: deliveryForm(),
		domain.StepPackage:  packageForm(),
		domain.StepQuote:    {},
	}
	view := w.View()
	for domain.Step(view.Step) < target {
		var err error
		view, err = w.Advance(context.Background(), forms[domain.Step(view.Step)])
		if err != nil {
			t.Fatalf("advance from step %d failed: %v", view.Step, err)
		}
	}
	return view
}

func TestWizard_Advance_RejectsMissingRequired(t *testing.T) {
	w := newTestWizard(&stubBookingBackend{}, nil)

	form := pickupForm()
	form["senderCity"] = "   "

	view, err := w.Advance(context.Background(), form)
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if _, ok := ve.Fields["senderCity"]; !ok {
		t.Fatalf("expected senderCity failure, got %v", ve.Fields)
	}
	if view.Step != int(domain.StepPickup) {
		t.Fatalf("expected to stay on step 1, got %d", view.Step)
	}
	if len(view.Draft) != 0 {
		t.Fatalf("draft must not change on failed advance: %v", view.Draft)
	}
}

func TestWizard_Advance_FormatRules(t *testing.T) {
	cases := []struct {
		name  string
		field string
		value string
	}{
		{"short pincode", "senderPincode", "56001"},
		{"alpha pincode", "senderPincode", "56000a"},
		{"bad email", "senderEmail", "not-an-email"},
		{"bad date", "preferredPickupDate", "tomorrow"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := newTestWizard(&stubBookingBackend{}, nil)
			form := pickupForm()
			form[tc.field] = tc.value

			_, err := w.Advance(context.Background(), form)
			var ve *domain.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if _, ok := ve.Fields[tc.field]; !ok {
				t.Fatalf("expected %s failure, got %v", tc.field, ve.Fields)
			}
		})
	}
}

func TestWizard_Advance_WeightMustBePositive(t *testing.T) {
	w := newTestWizard(&stubBookingBackend{}, nil)
	advanceTo(t, w, domain.StepPackage)

	for _, weight := range []string{"0", "-1", "heavy", "Inf", "Infinity", "-Inf", "NaN"} {
		form := packageForm()
		form["weight"] = weight
		if _, err := w.Advance(context.Background(), form); err == nil {
			t.Fatalf("expected weight %q to be rejected", weight)
		}
	}
	for _, length := range []string{"Inf", "NaN"} {
		form := packageForm()
		form["length"] = length
		if _, err := w.Advance(context.Background(), form); err == nil {
			t.Fatalf("expected length %q to be rejected", length)
		}
	}
	if got := w.View().Step; got != int(domain.StepPackage) {
		t.Fatalf("expected to stay on package step, got %d", got)
	}
}

func TestWizard_Advance_IgnoresForeignKeys(t *testing.T) {
	w := newTestWizard(&stubBookingBackend{}, nil)

	form := pickupForm()
	form["receiverName"] = "Intruder"
	form["weight"] = "99"

	view, err := w.Advance(context.Background(), form)
	if err != nil {
		t.Fatalf("advance failed: %v", err)
	}
	if _, ok := view.Draft["receiverName"]; ok {
		t.Fatalf("foreign key receiverName leaked into draft")
	}
	if _, ok := view.Draft["weight"]; ok {
		t.Fatalf("foreign key weight leaked into draft")
	}
	if view.Draft["senderName"] != "Asha Rao" {
		t.Fatalf("expected senderName merged, got %q", view.Draft["senderName"])
	}
}

func TestWizard_PackageStep_SingleQuoteAutoSelected(t *testing.T) {
	backend := &stubBookingBackend{
		priceResult: domain.QuoteResult{Kind: domain.QuoteSingle, Quotes: []domain.PriceQuote{
			{CarrierName: "BlueDart", BasePrice: 100, CODCharge: 25, ServiceTax: 22.5, TotalPrice: 147.5, EstimatedDays: intPtr(2)},
		}},
	}
	w := newTestWizard(backend, nil)

	view := advanceTo(t, w, domain.StepQuote)
	if view.Summary == nil {
		t.Fatalf("expected auto-selected summary")
	}
	if view.Summary.TotalPrice != "₹147.50" || view.Summary.EstimatedDays != "2" {
		t.Fatalf("unexpected summary: %+v", view.Summary)
	}
	if view.Summary.FragileCharge != "₹0.00" {
		t.Fatalf("missing charges must render as zero, got %q", view.Summary.FragileCharge)
	}
	if len(view.Options) != 0 {
		t.Fatalf("single quote must not render an option list")
	}

	req := backend.priceReqs[0]
	if req.Weight != 2.5 || req.PickupPincode != "560001" || req.DeliveryPincode != "400001" {
		t.Fatalf("unexpected price request: %+v", req)
	}
	if !req.CODEnabled || req.CODAmount == nil || *req.CODAmount != 500 {
		t.Fatalf("expected COD 500 in request: %+v", req)
	}
}

func TestWizard_PackageStep_OptionsRequireSelection(t *testing.T) {
	backend := &stubBookingBackend{
		priceResult: domain.QuoteResult{Kind: domain.QuoteOptions, Quotes: []domain.PriceQuote{
			{CarrierID: int64Ptr(1), CarrierName: "BlueDart", TotalPrice: 210},
			{CarrierID: int64Ptr(2), CarrierName: "Delhivery", TotalPrice: 180, EstimatedDays: intPtr(4)},
		}},
	}
	w := newTestWizard(backend, nil)

	view := advanceTo(t, w, domain.StepQuote)
	if view.Summary != nil {
		t.Fatalf("nothing may be preselected from a multi-option list")
	}
	if len(view.Options) != 2 {
		t.Fatalf("expected 2 options, got %d", len(view.Options))
	}

	if _, err := w.Advance(context.Background(), nil); err == nil {
		t.Fatalf("expected advance without selection to fail")
	}

	view, err := w.SelectQuote(1)
	if err != nil {
		t.Fatalf("select failed: %v", err)
	}
	if view.Summary == nil || view.Summary.CarrierName != "Delhivery" || view.Summary.TotalPrice != "₹180.00" {
		t.Fatalf("summary must reflect option 1, got %+v", view.Summary)
	}
	if !view.Options[1].Selected || view.Options[0].Selected {
		t.Fatalf("selection flags wrong: %+v", view.Options)
	}

	view, err = w.Advance(context.Background(), nil)
	if err != nil {
		t.Fatalf("advance after selection failed: %v", err)
	}
	if view.Step != int(domain.StepReview) || view.Review == nil {
		t.Fatalf("expected review step, got %+v", view)
	}
	if view.Review.FinalTotal != "₹180.00" {
		t.Fatalf("unexpected final total %q", view.Review.FinalTotal)
	}
}

func TestWizard_PackageStep_OptionsOfOneAutoSelected(t *testing.T) {
	backend := &stubBookingBackend{
		priceResult: domain.QuoteResult{Kind: domain.QuoteOptions, Quotes: []domain.PriceQuote{
			{CarrierName: "Ecom", TotalPrice: 99},
		}},
	}
	w := newTestWizard(backend, nil)

	view := advanceTo(t, w, domain.StepQuote)
	if view.Summary == nil || view.Summary.CarrierName != "Ecom" {
		t.Fatalf("expected the only option to be selected, got %+v", view.Summary)
	}
	if _, err := w.Advance(context.Background(), nil); err != nil {
		t.Fatalf("advance should not require a selection: %v", err)
	}
}

func TestWizard_PackageStep_EmptyOptionsNotice(t *testing.T) {
	backend := &stubBookingBackend{
		priceResult: domain.QuoteResult{Kind: domain.QuoteOptions},
	}
	w := newTestWizard(backend, nil)

	view := advanceTo(t, w, domain.StepQuote)
	if view.Notice != NoticeNoOptions {
		t.Fatalf("expected no-options notice, got %q", view.Notice)
	}
	if view.Summary != nil {
		t.Fatalf("expected no summary")
	}
}

func TestWizard_PackageStep_PriceFailureAlertsButAdvances(t *testing.T) {
	backend := &stubBookingBackend{priceErr: errors.New("connection refused")}
	w := newTestWizard(backend, nil)

	view := advanceTo(t, w, domain.StepQuote)
	if view.Step != int(domain.StepQuote) {
		t.Fatalf("step must advance despite price failure, got %d", view.Step)
	}
	if view.Alert != AlertPriceFailed {
		t.Fatalf("expected price alert, got %q", view.Alert)
	}
	if len(backend.priceReqs) != 1 {
		t.Fatalf("price query must not be retried, got %d calls", len(backend.priceReqs))
	}

	if got := w.View().Alert; got != "" {
		t.Fatalf("alert must be transient, still shown on next render: %q", got)
	}
}

func TestWizard_RetreatAndReset(t *testing.T) {
	backend := &stubBookingBackend{
		priceResult: domain.QuoteResult{Kind: domain.QuoteSingle, Quotes: []domain.PriceQuote{{CarrierName: "X", TotalPrice: 1}}},
	}
	w := newTestWizard(backend, nil)
	advanceTo(t, w, domain.StepQuote)

	view := w.Retreat()
	if view.Step != int(domain.StepPackage) {
		t.Fatalf("expected step 3 after retreat, got %d", view.Step)
	}
	if view.Draft["senderName"] == "" {
		t.Fatalf("retreat must keep the draft")
	}

	view = w.Reset()
	if view.Step != int(domain.StepPickup) || len(view.Draft) != 0 || view.Summary != nil {
		t.Fatalf("reset must clear everything, got %+v", view)
	}

	if view = w.Retreat(); view.Step != int(domain.StepPickup) {
		t.Fatalf("retreat from step 1 must be a no-op, got %d", view.Step)
	}
}

func TestWizard_SelectQuote_WrongStep(t *testing.T) {
	w := newTestWizard(&stubBookingBackend{}, nil)
	if _, err := w.SelectQuote(0); !errors.Is(err, domain.ErrWrongStep) {
		t.Fatalf("expected ErrWrongStep, got %v", err)
	}
}

func TestWizard_AdvanceAtReviewIsNoop(t *testing.T) {
	backend := &stubBookingBackend{
		priceResult: domain.QuoteResult{Kind: domain.QuoteSingle, Quotes: []domain.PriceQuote{{CarrierName: "X", TotalPrice: 1}}},
	}
	w := newTestWizard(backend, nil)
	advanceTo(t, w, domain.StepReview)

	view, err := w.Advance(context.Background(), pickupForm())
	if err != nil {
		t.Fatalf("advance at review returned error: %v", err)
	}
	if view.Step != int(domain.StepReview) {
		t.Fatalf("expected to stay on review, got %d", view.Step)
	}
	if len(backend.priceReqs) != 1 {
		t.Fatalf("no extra price query expected")
	}
}

func TestWizard_LookupPincode(t *testing.T) {
	backend := &stubBookingBackend{serviceability: map[string]any{"serviceable": true}}
	pincodes := &stubPincodes{infos: map[string]domain.PincodeInfo{
		"560001": {Pincode: "560001", Name: "Bangalore GPO", District: "Bengaluru", State: "Karnataka"},
	}}
	w := newTestWizard(backend, pincodes)

	t.Run("partial input waits", func(t *testing.T) {
		res := w.LookupPincode(context.Background(), SideOrigin, "56-00", "")
		if res.Complete || res.Pincode != "5600" {
			t.Fatalf("unexpected result for partial input: %+v", res)
		}
	})

	t.Run("unknown pincode marked invalid", func(t *testing.T) {
		res := w.LookupPincode(context.Background(), SideOrigin, "999999", "")
		if !res.Complete || res.Valid || res.Message != MessageInvalidPincode {
			t.Fatalf("expected invalid result, got %+v", res)
		}
	})

	t.Run("hit fills suggestion and checks serviceability", func(t *testing.T) {
		res := w.LookupPincode(context.Background(), SideDestination, "560 001", "400001")
		if !res.Valid || res.City != "Bengaluru" || res.State != "Karnataka" {
			t.Fatalf("unexpected result: %+v", res)
		}
		if res.Message != "BENGALURU - KARNATAKA ✓" {
			t.Fatalf("unexpected notice %q", res.Message)
		}
		if res.Serviceability["serviceable"] != true {
			t.Fatalf("expected serviceability verdict, got %v", res.Serviceability)
		}
		req := backend.serviceabilityReq[len(backend.serviceabilityReq)-1]
		if req.PickupPincode != "400001" || req.DeliveryPincode != "560001" {
			t.Fatalf("pincode order wrong: %+v", req)
		}
		if len(w.View().Draft) != 0 {
			t.Fatalf("lookup must not write the draft")
		}
	})

	t.Run("no counterpart skips serviceability", func(t *testing.T) {
		before := len(backend.serviceabilityReq)
		res := w.LookupPincode(context.Background(), SideOrigin, "560001", "")
		if !res.Valid || res.Serviceability != nil {
			t.Fatalf("unexpected result: %+v", res)
		}
		if len(backend.serviceabilityReq) != before {
			t.Fatalf("serviceability must not be checked without both pincodes")
		}
	})
}
