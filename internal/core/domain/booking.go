package domain

import (
	"maps"
	"strconv"
	"strings"
)

// Step is a position in the booking wizard.
type Step int

const (
	StepPickup Step = iota + 1
	StepDelivery
	StepPackage
	StepQuote
	StepReview
)

// TotalSteps is the number of wizard steps.
const TotalSteps = int(StepReview)

func (s Step) String() string {
	switch s {
	case StepPickup:
		return "pickup"
	case StepDelivery:
		return "delivery"
	case StepPackage:
		return "package"
	case StepQuote:
		return "quote"
	case StepReview:
		return "review"
	default:
		return "unknown"
	}
}

// FieldKind controls how a raw form value is converted for the backend.
type FieldKind int

const (
	KindText FieldKind = iota
	KindNumber
	KindFlag
	KindDate
)

// Field describes one wizard input. Rules holds validator tags.
type Field struct {
	Name  string
	Label string
	Kind  FieldKind
	Rules string
}

var stepFields = map[Step][]Field{
	StepPickup: {
		{Name: "senderName", Label: "Sender name", Rules: "required"},
		{Name: "senderEmail", Label: "Sender email", Rules: "required,email"},
		{Name: "senderPhone", Label: "Sender phone", Rules: "required"},
		{Name: "senderAddress", Label: "Pickup address", Rules: "required"},
		{Name: "senderCity", Label: "Pickup city", Rules: "required"},
		{Name: "senderState", Label: "Pickup state", Rules: "required"},
		{Name: "senderPincode", Label: "Pickup pincode", Rules: "required,pincode"},
		{Name: "senderCountry", Label: "Pickup country"},
		{Name: "preferredPickupDate", Label: "Preferred pickup date", Kind: KindDate, Rules: "omitempty,datetime=2006-01-02"},
		{Name: "preferredPickupTimeSlot", Label: "Preferred time slot"},
	},
	StepDelivery: {
		{Name: "receiverName", Label: "Receiver name", Rules: "required"},
		{Name: "receiverPhone", Label: "Receiver phone", Rules: "required"},
		{Name: "receiverEmail", Label: "Receiver email", Rules: "omitempty,email"},
		{Name: "receiverAddress", Label: "Delivery address", Rules: "required"},
		{Name: "receiverCity", Label: "Delivery city", Rules: "required"},
		{Name: "receiverState", Label: "Delivery state", Rules: "required"},
		{Name: "receiverPincode", Label: "Delivery pincode", Rules: "required,pincode"},
		{Name: "receiverCountry", Label: "Delivery country"},
	},
	StepPackage: {
		{Name: "packageType", Label: "Package type", Rules: "required,oneof=DOCUMENT PARCEL FRAGILE ELECTRONICS FOOD LIQUID HAZARDOUS OTHERS"},
		{Name: "weight", Label: "Weight", Kind: KindNumber, Rules: "required,positive"},
		{Name: "length", Label: "Length", Kind: KindNumber, Rules: "omitempty,nonnegative"},
		{Name: "width", Label: "Width", Kind: KindNumber, Rules: "omitempty,nonnegative"},
		{Name: "height", Label: "Height", Kind: KindNumber, Rules: "omitempty,nonnegative"},
		{Name: "numberOfPackages", Label: "Number of packages", Kind: KindNumber, Rules: "omitempty,positive"},
		{Name: "packageDescription", Label: "Package description"},
		{Name: "declaredValue", Label: "Declared value", Kind: KindNumber, Rules: "omitempty,nonnegative"},
		{Name: "insuranceRequired", Label: "Insurance", Kind: KindFlag},
		{Name: "codEnabled", Label: "Cash on delivery", Kind: KindFlag},
		{Name: "codAmount", Label: "COD amount", Kind: KindNumber, Rules: "omitempty,nonnegative"},
		{Name: "deliveryType", Label: "Delivery type", Rules: "required,oneof=STANDARD EXPRESS SAME_DAY OVERNIGHT"},
		{Name: "specialHandlingInstructions", Label: "Special handling"},
		{Name: "emailNotification", Label: "Email notification", Kind: KindFlag},
		{Name: "smsNotification", Label: "SMS notification", Kind: KindFlag},
		{Name: "whatsappNotification", Label: "WhatsApp notification", Kind: KindFlag},
	},
}

var fieldIndex = func() map[string]Field {
	idx := make(map[string]Field)
	for _, fields := range stepFields {
		for _, f := range fields {
			idx[f.Name] = f
		}
	}
	return idx
}()

// StepFields returns the inputs owned by a step. Steps without inputs
// return nil.
func StepFields(s Step) []Field {
	return stepFields[s]
}

// LookupField returns the definition of a draft field by name.
func LookupField(name string) (Field, bool) {
	f, ok := fieldIndex[name]
	return f, ok
}

// BookingDraft accumulates raw wizard input keyed by field name.
type BookingDraft map[string]string

// Clone returns an independent copy of the draft.
func (d BookingDraft) Clone() BookingDraft {
	return maps.Clone(d)
}

// Text returns the trimmed value of a field.
func (d BookingDraft) Text(name string) string {
	return strings.TrimSpace(d[name])
}

// Flag reports whether a checkbox-style field is set ("on" or "true").
func (d BookingDraft) Flag(name string) bool {
	return ParseFlag(d[name])
}

// Number parses a numeric field; ok is false when empty or malformed.
func (d BookingDraft) Number(name string) (float64, bool) {
	raw := d.Text(name)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// ParseFlag interprets checkbox and boolean form values.
func ParseFlag(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "on", "true", "1", "yes":
		return true
	}
	return false
}
