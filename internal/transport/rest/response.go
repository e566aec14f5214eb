package rest

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/heartmarshall/hvac-estimate/internal/domain"
	estimatesvc "github.com/heartmarshall/hvac-estimate/internal/service/estimate"
)

const msgInvalidBody = "Invalid request body"

const msgInternal = "Internal server error"

// writeJSON encodes v before touching the response, so a value that cannot
// be encoded becomes a 500 envelope instead of an empty body.
func writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		slog.Error("encode response", slog.Int("status", status), slog.String("error", err.Error()))
		status = http.StatusInternalServerError
		body, _ = json.Marshal(map[string]string{"error": msgInternal})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(append(body, '\n')) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func writeErrorDetails(w http.ResponseWriter, status int, message, details string) {
	writeJSON(w, status, map[string]string{"error": message, "details": details})
}

// decodeJSON reads a single JSON value from a size-limited body. An empty
// body is an error.
func decodeJSON(w http.ResponseWriter, r *http.Request, limit int64, dst any) error {
	body := http.MaxBytesReader(w, r.Body, limit)
	dec := json.NewDecoder(body)
	if err := dec.Decode(dst); err != nil {
		return err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return errors.New("unexpected data after JSON body")
	}
	return nil
}

// ---------------------------------------------------------------------------
// Request DTOs
// ---------------------------------------------------------------------------

// estimateRequest is the body of save and download. Costs accept numbers,
// numeric strings, "" or null.
type estimateRequest struct {
	UnitNumber  string        `json:"unitNumber"`
	ModelNumber string        `json:"modelNumber"`
	Location    string        `json:"location"`
	Issue       string        `json:"issue"`
	LaborCost   domain.Amount `json:"laborCost"`
	PartsCost   domain.Amount `json:"partsCost"`
	ServiceFee  domain.Amount `json:"serviceFee"`
	TotalCost   domain.Amount `json:"totalCost"`
}

func (req estimateRequest) saveInput() estimatesvc.SaveInput {
	return estimatesvc.SaveInput{
		UnitNumber:  req.UnitNumber,
		ModelNumber: req.ModelNumber,
		Location:    req.Location,
		Issue:       req.Issue,
		LaborCost:   req.LaborCost,
		PartsCost:   req.PartsCost,
		ServiceFee:  req.ServiceFee,
	}
}

func (req estimateRequest) downloadInput() estimatesvc.DownloadInput {
	return estimatesvc.DownloadInput{SaveInput: req.saveInput(), TotalCost: req.TotalCost}
}

// ---------------------------------------------------------------------------
// Response DTOs
// ---------------------------------------------------------------------------

type estimateResponse struct {
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

type pageResponse struct {
	Data       []estimateResponse `json:"data"`
	Total      int                `json:"total"`
	Page       int                `json:"page"`
	TotalPages int                `json:"totalPages"`
}

type statsResponse struct {
	TotalEstimates  int     `json:"totalEstimates"`
	TotalRevenue    float64 `json:"totalRevenue"`
	AvgEstimate     float64 `json:"avgEstimate"`
	RecentEstimates int     `json:"recentEstimates"`
}

type saveResponse struct {
	Success bool   `json:"success"`
	ID      int64  `json:"id"`
	Message string `json:"message"`
}

type deleteResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func toEstimateResponse(e domain.Estimate) estimateResponse {
	return estimateResponse{
		ID:          e.ID,
		UnitNumber:  e.UnitNumber,
		ModelNumber: e.ModelNumber,
		Location:    e.Location,
		Issue:       e.Issue,
		LaborCost:   e.LaborCost,
		PartsCost:   e.PartsCost,
		ServiceFee:  e.ServiceFee,
		TotalCost:   e.TotalCost,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

// toEstimateList never returns nil so the wire form is [] rather than null.
func toEstimateList(es []domain.Estimate) []estimateResponse {
	out := make([]estimateResponse, 0, len(es))
	for _, e := range es {
		out = append(out, toEstimateResponse(e))
	}
	return out
}

func toStatsResponse(s *domain.EstimateStats) statsResponse {
	return statsResponse{
		TotalEstimates:  s.TotalEstimates,
		TotalRevenue:    s.TotalRevenue,
		AvgEstimate:     s.AvgEstimate,
		RecentEstimates: s.RecentEstimates,
	}
}
