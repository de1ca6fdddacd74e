package geo

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/logisco/courierfront/internal/core/domain"
	"github.com/logisco/courierfront/internal/core/ports"
)

// PostalPincode resolves Indian postal codes through the public
// postalpincode.in API.
type PostalPincode struct {
	baseURL string
	http    *http.Client
}

var _ ports.PincodeLookup = (*PostalPincode)(nil)

func NewPostalPincode(baseURL string, timeout time.Duration) *PostalPincode {
	return &PostalPincode{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

type pincodeAnswer struct {
	Status     string `json:"Status"`
	PostOffice []struct {
		Name     string `json:"Name"`
		District string `json:"District"`
		State    string `json:"State"`
	} `json:"PostOffice"`
}

// Lookup returns the first post office registered for pincode, or
// domain.ErrPincodeNotFound.
func (p *PostalPincode) Lookup(ctx context.Context, pincode string) (domain.PincodeInfo, error) {
	var answers []pincodeAnswer
	if err := getJSON(ctx, p.http, "pincode", p.baseURL+"/pincode/"+url.PathEscape(pincode), nil, &answers); err != nil {
		return domain.PincodeInfo{}, err
	}
	if len(answers) == 0 || answers[0].Status != "Success" || len(answers[0].PostOffice) == 0 {
		return domain.PincodeInfo{}, fmt.Errorf("pincode %s: %w", pincode, domain.ErrPincodeNotFound)
	}

	po := answers[0].PostOffice[0]
	return domain.PincodeInfo{
		Pincode:  pincode,
		Name:     po.Name,
		District: po.District,
		State:    po.State,
	}, nil
}
