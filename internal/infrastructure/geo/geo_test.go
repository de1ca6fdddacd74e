package geo

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"github.com/logisco/courierfront/internal/core/domain"
)

func TestNominatim_Geocode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("format") != "json" || q.Get("limit") != "1" {
			t.Errorf("unexpected query %s", r.URL.RawQuery)
		}
		if r.Header.Get("Accept-Language") != "en" || r.Header.Get("User-Agent") != "courierfront-test" {
			t.Errorf("missing headers: %v", r.Header)
		}
		switch q.Get("q") {
		case "Nowhere":
			_, _ = w.Write([]byte(`[]`))
			return
		case "Limbo":
			_, _ = w.Write([]byte(`[{"lat":"nan","lon":"inf","display_name":"Limbo"}]`))
			return
		}
		_, _ = w.Write([]byte(`[{"lat":"12.9716","lon":"77.5946","display_name":"Bengaluru"}]`))
	}))
	defer srv.Close()

	n := NewNominatim(srv.URL+"/", "courierfront-test", 0)

	c, err := n.Geocode(context.Background(), "12 MG Road, Bengaluru")
	if err != nil {
		t.Fatalf("geocode: %v", err)
	}
	if c.Lat != 12.9716 || c.Lon != 77.5946 {
		t.Fatalf("unexpected coordinates %+v", c)
	}

	if _, err := n.Geocode(context.Background(), "Nowhere"); !errors.Is(err, domain.ErrAddressNotFound) {
		t.Fatalf("expected ErrAddressNotFound, got %v", err)
	}
	if _, err := n.Geocode(context.Background(), "Limbo"); !errors.Is(err, domain.ErrAddressNotFound) {
		t.Fatalf("expected non-finite coordinates to be rejected, got %v", err)
	}
}

func TestPostalPincode_Lookup(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/pincode/560001":
			_, _ = w.Write([]byte(`[{"Message":"Number of pincode(s) found:1","Status":"Success","PostOffice":[{"Name":"Bangalore GPO","District":"Bangalore","State":"Karnataka"}]}]`))
		case "/pincode/000000":
			_, _ = w.Write([]byte(`[{"Message":"No records found","Status":"Error","PostOffice":null}]`))
		default:
			w.WriteHeader(http.StatusBadGateway)
		}
	}))
	defer srv.Close()

	p := NewPostalPincode(srv.URL, 0)

	info, err := p.Lookup(context.Background(), "560001")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if info.City() != "Bangalore" || info.State != "Karnataka" || info.Pincode != "560001" {
		t.Fatalf("unexpected info %+v", info)
	}

	if _, err := p.Lookup(context.Background(), "000000"); !errors.Is(err, domain.ErrPincodeNotFound) {
		t.Fatalf("expected ErrPincodeNotFound, got %v", err)
	}
	if _, err := p.Lookup(context.Background(), "111111"); err == nil {
		t.Fatalf("expected error on upstream failure")
	}
}

type mapCache struct {
	data   map[string][]byte
	getErr error
}

func (m *mapCache) Get(_ context.Context, ns, key string, dst any) (bool, error) {
	if m.getErr != nil {
		return false, m.getErr
	}
	raw, ok := m.data[ns+":"+key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dst)
}

func (m *mapCache) Set(_ context.Context, ns, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.data[ns+":"+key] = raw
	return nil
}

type countingGeocoder struct {
	calls int
	err   error
}

func (g *countingGeocoder) Geocode(_ context.Context, _ string) (domain.Coordinates, error) {
	g.calls++
	if g.err != nil {
		return domain.Coordinates{}, g.err
	}
	return domain.Coordinates{Lat: 1, Lon: 2}, nil
}

func TestCachedGeocoder(t *testing.T) {
	cache := &mapCache{data: map[string][]byte{}}
	next := &countingGeocoder{}
	g := NewCachedGeocoder(next, cache, zerolog.Nop())

	for _, addr := range []string{"Pune", " pune "} {
		c, err := g.Geocode(context.Background(), addr)
		if err != nil || c.Lat != 1 {
			t.Fatalf("geocode %q: %+v / %v", addr, c, err)
		}
	}
	if next.calls != 1 {
		t.Fatalf("expected one upstream call, got %d", next.calls)
	}

	next.err = domain.ErrAddressNotFound
	if _, err := g.Geocode(context.Background(), "Atlantis"); !errors.Is(err, domain.ErrAddressNotFound) {
		t.Fatalf("expected upstream error, got %v", err)
	}
	if _, ok := cache.data["geocode:atlantis"]; ok {
		t.Fatalf("failures must not be cached")
	}
}

func TestCachedGeocoder_CacheDownFallsThrough(t *testing.T) {
	next := &countingGeocoder{}
	g := NewCachedGeocoder(next, &mapCache{data: map[string][]byte{}, getErr: errors.New("redis down")}, zerolog.Nop())

	if _, err := g.Geocode(context.Background(), "Pune"); err != nil {
		t.Fatalf("cache failure must not fail the lookup: %v", err)
	}
	if next.calls != 1 {
		t.Fatalf("expected upstream call, got %d", next.calls)
	}
}

type fixedPincodes struct{ calls int }

func (f *fixedPincodes) Lookup(_ context.Context, pin string) (domain.PincodeInfo, error) {
	f.calls++
	return domain.PincodeInfo{Pincode: pin, District: "Pune", State: "Maharashtra"}, nil
}

func TestCachedPincodes(t *testing.T) {
	next := &fixedPincodes{}
	p := NewCachedPincodes(next, &mapCache{data: map[string][]byte{}}, zerolog.Nop())

	for range 3 {
		info, err := p.Lookup(context.Background(), "411001")
		if err != nil || info.District != "Pune" {
			t.Fatalf("lookup: %+v / %v", info, err)
		}
	}
	if next.calls != 1 {
		t.Fatalf("expected one upstream call, got %d", next.calls)
	}
}
