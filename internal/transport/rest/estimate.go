package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/heartmarshall/hvac-estimate/internal/docformat"
	"github.com/heartmarshall/hvac-estimate/internal/domain"
	estimatesvc "github.com/heartmarshall/hvac-estimate/internal/service/estimate"
)

// estimateService defines the operations EstimateHandler needs.
type estimateService interface {
	Save(ctx context.Context, input estimatesvc.SaveInput) (int64, error)
	Get(ctx context.Context, id int64) (*domain.Estimate, error)
	List(ctx context.Context, input estimatesvc.ListInput) (*domain.EstimatePage, error)
	Search(ctx context.Context, input estimatesvc.SearchInput) ([]domain.Estimate, error)
	Delete(ctx context.Context, id int64) error
	Stats(ctx context.Context) (*domain.EstimateStats, error)
	Download(ctx context.Context, format docformat.Format, input estimatesvc.DownloadInput) (*estimatesvc.Document, error)
}

const (
	msgNotFound      = "Estimate not found"
	msgMissingFields = "Missing required fields"
	msgQueryRequired = "Search query is required"
	msgInvalidFormat = "Invalid format. Use ?format=pdf or ?format=excel"
)

// EstimateHandler serves the estimate REST endpoints.
type EstimateHandler struct {
	svc          estimateService
	maxBodyBytes int64
	log          *slog.Logger
}

// NewEstimateHandler creates an EstimateHandler. Request bodies larger than
// maxBodyBytes are rejected.
func NewEstimateHandler(svc estimateService, maxBodyBytes int64, logger *slog.Logger) *EstimateHandler {
	return &EstimateHandler{
		svc:          svc,
		maxBodyBytes: maxBodyBytes,
		log:          logger.With("handler", "estimate"),
	}
}

// Save persists an estimate.
// POST /api/estimate/save
func (h *EstimateHandler) Save(w http.ResponseWriter, r *http.Request) {
	var req estimateRequest
	if !h.decode(w, r, &req) {
		return
	}

	id, err := h.svc.Save(r.Context(), req.saveInput())
	if err != nil {
		invalid := msgMissingFields
		if invalidTotal(err) {
			invalid = msgInvalidBody
		}
		h.handleError(w, r, err, invalid, "Failed to save estimate")
		return
	}

	writeJSON(w, http.StatusOK, saveResponse{Success: true, ID: id, Message: "Estimate saved successfully"})
}

// List returns a page of estimates.
// GET /api/estimates?page=1&limit=20
func (h *EstimateHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	// Unparsable values fall back to the service defaults.
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))

	result, err := h.svc.List(r.Context(), estimatesvc.ListInput{Page: page, Limit: limit})
	if err != nil {
		h.handleError(w, r, err, msgInvalidBody, "Failed to fetch estimates")
		return
	}

	writeJSON(w, http.StatusOK, pageResponse{
		Data:       toEstimateList(result.Data),
		Total:      result.Total,
		Page:       result.Page,
		TotalPages: result.TotalPages,
	})
}

// Get returns one estimate.
// GET /api/estimate/{id}
func (h *EstimateHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		writeError(w, http.StatusNotFound, msgNotFound)
		return
	}

	e, err := h.svc.Get(r.Context(), id)
	if err != nil {
		h.handleError(w, r, err, msgNotFound, "Failed to fetch estimate")
		return
	}

	writeJSON(w, http.StatusOK, toEstimateResponse(*e))
}

// Search matches estimates by free text.
// GET /api/estimates/search?q=...
func (h *EstimateHandler) Search(w http.ResponseWriter, r *http.Request) {
	found, err := h.svc.Search(r.Context(), estimatesvc.SearchInput{Query: r.URL.Query().Get("q")})
	if err != nil {
		h.handleError(w, r, err, msgQueryRequired, "Failed to search estimates")
		return
	}

	writeJSON(w, http.StatusOK, toEstimateList(found))
}

// Delete removes an estimate.
// DELETE /api/estimate/{id}
func (h *EstimateHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		writeError(w, http.StatusNotFound, msgNotFound)
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		h.handleError(w, r, err, msgNotFound, "Failed to delete estimate")
		return
	}

	writeJSON(w, http.StatusOK, deleteResponse{Success: true, Message: "Estimate deleted successfully"})
}

// Stats returns aggregate figures.
// GET /api/stats
func (h *EstimateHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.Stats(r.Context())
	if err != nil {
		h.handleError(w, r, err, msgInvalidBody, "Failed to fetch statistics")
		return
	}

	writeJSON(w, http.StatusOK, toStatsResponse(stats))
}

// Download renders an estimate as an attachment. The format is checked
// before anything is read or stored.
// POST /api/estimate/download?format=pdf|excel
func (h *EstimateHandler) Download(w http.ResponseWriter, r *http.Request) {
	format, err := docformat.Parse(r.URL.Query().Get("format"))
	if err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidFormat)
		return
	}

	var req estimateRequest
	if !h.decode(w, r, &req) {
		return
	}

	doc, err := h.svc.Download(r.Context(), format, req.downloadInput())
	if err != nil {
		var re *domain.RenderError
		if errors.As(err, &re) {
			writeErrorDetails(w, http.StatusInternalServerError,
				fmt.Sprintf("Failed to generate %s file", format.Label()), re.Err.Error())
			return
		}
		if errors.Is(err, docformat.ErrUnknownFormat) {
			writeError(w, http.StatusBadRequest, msgInvalidFormat)
			return
		}
		h.handleError(w, r, err, msgInvalidBody, fmt.Sprintf("Failed to generate %s file", format.Label()))
		return
	}

	w.Header().Set("Content-Type", doc.ContentType)
	w.Header().Set("Content-Disposition", "attachment; filename="+doc.Filename)
	w.Header().Set("Content-Length", strconv.Itoa(len(doc.Data)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(doc.Data); err != nil {
		h.log.WarnContext(r.Context(), "write document", slog.String("error", err.Error()))
	}
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func (h *EstimateHandler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := decodeJSON(w, r, h.maxBodyBytes, dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "Request body too large")
			return false
		}
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return false
	}
	return true
}

// handleError maps service errors to responses. invalid is the 400 message
// for validation failures; failed is the generic 500 message.
func (h *EstimateHandler) handleError(w http.ResponseWriter, r *http.Request, err error, invalid, failed string) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, invalid)
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, msgNotFound)
	case errors.Is(err, context.Canceled):
		// Client went away; nothing useful to send.
		h.log.DebugContext(r.Context(), "request canceled", slog.String("path", r.URL.Path))
	default:
		h.log.ErrorContext(r.Context(), failed, slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, failed)
	}
}

// invalidTotal reports whether err rejects the costs' total rather than a
// missing text field.
func invalidTotal(err error) bool {
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		return false
	}
	for _, fe := range ve.Errors {
		if fe.Field == estimatesvc.FieldTotalCost {
			return true
		}
	}
	return false
}

// parseID reads a positive {id} URL parameter.
func parseID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}
