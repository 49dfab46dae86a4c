// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/netip"
	"net/url"
	"strings"
	"time"

	"github.com/danielhkuo/project51/identity"
	"github.com/danielhkuo/project51/metrics"
	"github.com/danielhkuo/project51/models"
)

const (
	HeaderCountry = "CF-IPCountry"
	HeaderCity    = "CF-IPCity"

	UnknownCity    = "Unknown Location"
	UnknownDisplay = "Unknown Origin"
)

// ErrUpstreamUnavailable is returned when the lookup service fails
var ErrUpstreamUnavailable = errors.New("geolocation upstream unavailable")

type Location struct {
	Country string
	City    string
}

// Unknown is the sentinel location
func Unknown() Location {
	return Location{Country: models.UnknownCountry, City: UnknownCity}
}

func (l Location) IsZero() bool {
	return l.Country == ""
}

// Display renders "City, CC", or UnknownDisplay for the sentinel country
func (l Location) Display() string {
	if l.Country == models.UnknownCountry {
		return UnknownDisplay
	}
	return l.City + ", " + l.Country
}

// Provider returns a zero Location when it has nothing to offer
type Provider interface {
	Locate(ctx context.Context, r *http.Request) (Location, error)
}

// HeaderProvider reads the geolocation headers set by the hosting edge
type HeaderProvider struct{}

func (HeaderProvider) Locate(ctx context.Context, r *http.Request) (Location, error) {
	country := strings.ToUpper(strings.TrimSpace(r.Header.Get(HeaderCountry)))
	// XX is unknown and T1 is Tor at the edge
	if country == "" || country == models.UnknownCountry || country == "T1" {
		return Location{}, nil
	}
	return Location{Country: country, City: strings.TrimSpace(r.Header.Get(HeaderCity))}, nil
}

// LookupProvider queries an ip-api.com compatible JSON endpoint
type LookupProvider struct {
	baseURL string
	client  *http.Client
}

func NewLookupProvider(baseURL string, timeout time.Duration) *LookupProvider {
	return &LookupProvider{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

type lookupResponse struct {
	Status      string `json:"status"`
	CountryCode string `json:"countryCode"`
	City        string `json:"city"`
}

func (p *LookupProvider) Locate(ctx context.Context, r *http.Request) (Location, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url(r), nil)
	if err != nil {
		return Location{}, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		// The request URL may carry the client address; keep it out of logs
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			err = urlErr.Err
		}
		return Location{}, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Location{}, fmt.Errorf("%w: status %d", ErrUpstreamUnavailable, resp.StatusCode)
	}

	var body lookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Location{}, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	if body.Status != "" && body.Status != "success" {
		return Location{}, nil
	}

	return Location{
		Country: strings.ToUpper(strings.TrimSpace(body.CountryCode)),
		City:    strings.TrimSpace(body.City),
	}, nil
}

// url appends the client address for public origins. For private and
// loopback origins the service resolves the server's own address instead.
func (p *LookupProvider) url(r *http.Request) string {
	addr, err := netip.ParseAddr(identity.ClientOrigin(r))
	if err != nil || !isPublic(addr) {
		return p.baseURL
	}
	return strings.TrimSuffix(p.baseURL, "/") + "/" + addr.String()
}

func isPublic(addr netip.Addr) bool {
	return addr.IsGlobalUnicast() && !addr.IsPrivate()
}

// Chain tries each provider in order
type Chain struct {
	providers []Provider
	labels    []string
}

// NewChain builds the header then lookup chain. An empty lookupURL
// disables the lookup step.
func NewChain(lookupURL string, timeout time.Duration) *Chain {
	c := &Chain{}
	c.add(metrics.GeoHeader, HeaderProvider{})
	if lookupURL != "" {
		c.add(metrics.GeoLookup, NewLookupProvider(lookupURL, timeout))
	}
	return c
}

func (c *Chain) add(label string, p Provider) {
	c.providers = append(c.providers, p)
	c.labels = append(c.labels, label)
}

// Locate never fails; it returns Unknown() when no provider answers
func (c *Chain) Locate(ctx context.Context, r *http.Request) Location {
	for i, p := range c.providers {
		loc, err := p.Locate(ctx, r)
		if err != nil {
			slog.Warn("location provider failed", "provider", c.labels[i], "error", err)
			continue
		}
		if loc.IsZero() {
			continue
		}
		if loc.City == "" {
			loc.City = UnknownCity
		}
		metrics.GeoFallback.WithLabelValues(c.labels[i]).Inc()
		return loc
	}

	metrics.GeoFallback.WithLabelValues(metrics.GeoUnknown).Inc()
	return Unknown()
}
