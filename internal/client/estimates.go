package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/heartmarshall/hvac-estimate/internal/domain"
	"github.com/heartmarshall/hvac-estimate/internal/form"
)

// Estimate is a stored estimate as returned by the API.
type Estimate struct {
	ID          int64     `json:"id"`
	UnitNumber  string    `json:"unitNumber"`
	ModelNumber string    `json:"modelNumber"`
	Location    string    `json:"location"`
	Issue       string    `json:"issue"`
	LaborCost   float64   `json:"laborCost"`
	PartsCost   float64   `json:"partsCost"`
	ServiceFee  float64   `json:"serviceFee"`
	TotalCost   float64   `json:"totalCost"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Page is one page of ListEstimates.
type Page struct {
	Data       []Estimate `json:"data"`
	Total      int        `json:"total"`
	Page       int        `json:"page"`
	TotalPages int        `json:"totalPages"`
}

// Stats are the aggregate figures from /api/stats.
type Stats struct {
	TotalEstimates  int     `json:"totalEstimates"`
	TotalRevenue    float64 `json:"totalRevenue"`
	AvgEstimate     float64 `json:"avgEstimate"`
	RecentEstimates int     `json:"recentEstimates"`
}

// Health is the body of /api/health.
type Health struct {
	Status      string    `json:"status"`
	Database    string    `json:"database"`
	Environment string    `json:"environment"`
	Timestamp   time.Time `json:"timestamp"`
	Stats       *Stats    `json:"stats"`
	Version     string    `json:"version"`
}

// draftPayload is the wire form of a draft. Costs are numbers when they
// parse and the raw text otherwise.
type draftPayload struct {
	UnitNumber  string  `json:"unitNumber"`
	ModelNumber string  `json:"modelNumber"`
	Location    string  `json:"location"`
	Issue       string  `json:"issue"`
	LaborCost   any     `json:"laborCost"`
	PartsCost   any     `json:"partsCost"`
	ServiceFee  any     `json:"serviceFee"`
	TotalCost   float64 `json:"totalCost"`
}

func newDraftPayload(d form.Draft) draftPayload {
	return draftPayload{
		UnitNumber:  d.UnitNumber,
		ModelNumber: d.ModelNumber,
		Location:    d.Location,
		Issue:       d.Issue,
		LaborCost:   costValue(d.LaborCost),
		PartsCost:   costValue(d.PartsCost),
		ServiceFee:  costValue(d.ServiceFee),
		TotalCost:   d.TotalCost,
	}
}

func costValue(raw string) any {
	a, err := domain.ParseAmount(raw)
	if err != nil || a.IsEmpty() {
		return raw
	}
	return a.Float()
}

// saveResult is the body of a successful save.
type saveResult struct {
	Success bool   `json:"success"`
	ID      int64  `json:"id"`
	Message string `json:"message"`
}

// SaveEstimate stores the draft and returns the new id. The server
// recomputes the total.
func (c *Client) SaveEstimate(ctx context.Context, d form.Draft) (int64, error) {
	var out saveResult
	if err := c.getJSON(ctx, "save estimate", http.MethodPost, "/api/estimate/save", nil, newDraftPayload(d), &out); err != nil {
		return 0, err
	}
	return out.ID, nil
}

// ListEstimates returns one page, newest first. Zero page or limit lets the
// server choose.
func (c *Client) ListEstimates(ctx context.Context, page, limit int) (*Page, error) {
	q := url.Values{}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	var out Page
	if err := c.getJSON(ctx, "list estimates", http.MethodGet, "/api/estimates", q, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetEstimate fetches one estimate. A missing id yields a 404 TransportError;
// see IsNotFound.
func (c *Client) GetEstimate(ctx context.Context, id int64) (*Estimate, error) {
	var out Estimate
	if err := c.getJSON(ctx, "get estimate", http.MethodGet, "/api/estimate/"+strconv.FormatInt(id, 10), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SearchEstimates runs a case-insensitive substring search.
func (c *Client) SearchEstimates(ctx context.Context, query string) ([]Estimate, error) {
	if strings.TrimSpace(query) == "" {
		return nil, &TransportError{Op: "search estimates", Message: "search query is required"}
	}
	var out []Estimate
	if err := c.getJSON(ctx, "search estimates", http.MethodGet, "/api/estimates/search", url.Values{"q": {query}}, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteEstimate removes an estimate.
func (c *Client) DeleteEstimate(ctx context.Context, id int64) error {
	var out struct {
		Success bool `json:"success"`
	}
	return c.getJSON(ctx, "delete estimate", http.MethodDelete, "/api/estimate/"+strconv.FormatInt(id, 10), nil, nil, &out)
}

// Stats fetches aggregate figures.
func (c *Client) Stats(ctx context.Context) (*Stats, error) {
	var out Stats
	if err := c.getJSON(ctx, "stats", http.MethodGet, "/api/stats", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Health fetches the server health report.
func (c *Client) Health(ctx context.Context) (*Health, error) {
	var out Health
	if err := c.getJSON(ctx, "health", http.MethodGet, "/api/health", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
