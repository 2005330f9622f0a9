package companies

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ErrUpstreamStatus is returned when the service answers with a non-2xx status.
var ErrUpstreamStatus = errors.New("unexpected upstream status")

// Company is one entry of the roster.
type Company struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	CountryCode string `json:"countryCode"`
}

type envelope struct {
	Data struct {
		Data struct {
			Companies []Company `json:"companies"`
		} `json:"data"`
	} `json:"data"`
}

// Lister returns the current company roster.
type Lister interface {
	ListCompanies(ctx context.Context) ([]Company, error)
}

// Client calls the upstream company service.
type Client struct {
	url  string
	http *http.Client
}

// NewClient creates a client for cfg.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		url:  strings.TrimSuffix(cfg.BaseURL, "/") + "/" + strings.TrimPrefix(cfg.CompaniesEndpoint, "/"),
		http: &http.Client{Timeout: timeout},
	}
}

// URL returns the resolved roster endpoint.
func (c *Client) URL() string { return c.url }

// ListCompanies fetches the roster. An absent companies list yields an empty slice.
func (c *Client) ListCompanies(ctx context.Context) ([]Company, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build companies request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch companies: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%w: %s", ErrUpstreamStatus, resp.Status)
	}

	var body envelope
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode companies: %w", err)
	}

	list := body.Data.Data.Companies
	if list == nil {
		list = []Company{}
	}
	return list, nil
}
