package service

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/logisco/courierfront/internal/core/domain"
)

var pincodePattern = regexp.MustCompile(`^[0-9]{6}$`)

// stepRules validates raw wizard input against the per-field tags
// declared in domain.StepFields.
type stepRules struct {
	v *validator.Validate
}

func newStepRules() *stepRules {
	v := validator.New()
	_ = v.RegisterValidation("pincode", func(fl validator.FieldLevel) bool {
		return pincodePattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("positive", func(fl validator.FieldLevel) bool {
		n, ok := finite(fl.Field().String())
		return ok && n > 0
	})
	_ = v.RegisterValidation("nonnegative", func(fl validator.FieldLevel) bool {
		n, ok := finite(fl.Field().String())
		return ok && n >= 0
	})
	return &stepRules{v: v}
}

// finite parses s as a float, refusing infinities and NaN.
func finite(s string) (float64, bool) {
	n, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(n, 0) || math.IsNaN(n) {
		return 0, false
	}
	return n, true
}

// pick extracts the active step's inputs from a submitted form. Keys
// outside the step are ignored; absent inputs become empty values.
func (r *stepRules) pick(step domain.Step, form map[string]string) map[string]string {
	fields := domain.StepFields(step)
	values := make(map[string]string, len(fields))
	for _, f := range fields {
		values[f.Name] = strings.TrimSpace(form[f.Name])
	}
	return values
}

// check returns one message per failing field, or nil.
func (r *stepRules) check(step domain.Step, values map[string]string) map[string]string {
	var failures map[string]string
	for _, f := range domain.StepFields(step) {
		if f.Rules == "" {
			continue
		}
		err := r.v.Var(values[f.Name], f.Rules)
		if err == nil {
			continue
		}
		if failures == nil {
			failures = make(map[string]string)
		}
		var ve validator.ValidationErrors
		if errors.As(err, &ve) && len(ve) > 0 {
			failures[f.Name] = ruleMessage(f, ve[0])
		} else {
			failures[f.Name] = f.Label + " is invalid"
		}
	}
	return failures
}

func ruleMessage(f domain.Field, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return f.Label + " is required"
	case "email":
		return "Please enter a valid email address"
	case "pincode":
		return "Pincode must be 6 digits"
	case "positive":
		return f.Label + " must be greater than 0"
	case "nonnegative":
		return f.Label + " must be a valid number"
	case "datetime":
		return f.Label + " must be a date (YYYY-MM-DD)"
	case "oneof":
		return f.Label + " must be one of: " + fe.Param()
	default:
		return f.Label + " is invalid"
	}
}
