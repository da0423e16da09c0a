package deals

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/mpocar/dealer-finder/pkg/models"
)

// Messages returned in the response body. Validation messages are produced
// by ParseCriteria; these cover the remaining outcomes.
const (
	msgNoResults     = "No deals found matching your criteria. Try adjusting your filters."
	msgInternalError = "An unexpected error occurred while processing your request"
)

// Response is the body of GET /api/v1/deals. Message is set on validation
// failure and on an empty result; deals is always present, possibly empty.
type Response struct {
	Deals   []models.Deal `json:"deals"`
	Message string        `json:"message,omitempty"`
}

// Handler serves the deal discovery API.
type Handler struct {
	engine *Engine
	logger *zap.Logger
}

// NewHandler creates a deals API handler.
func NewHandler(engine *Engine, logger *zap.Logger) *Handler {
	return &Handler{engine: engine, logger: logger}
}

// RegisterRoutes registers the deals routes on the mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/v1/deals", h.handleListDeals)
}

// handleListDeals filters and sorts the catalog per the query parameters.
//
//	@Summary		List deals
//	@Description	Returns deals filtered by search text, category, subcategory, price range, and geographic radius, ordered by the requested sort key (default: recommendation score).
//	@Tags			deals
//	@Produce		json
//	@Param			search query string false "Free-text search (applied when at least 3 characters)"
//	@Param			sortBy query string false "Sort key" Enums(recommended, price-low-high, price-high-low, discount-high-low, rating-high-low)
//	@Param			minPrice query number false "Minimum discount price"
//	@Param			maxPrice query number false "Maximum discount price"
//	@Param			categories query string false "Comma-separated category labels"
//	@Param			subcategories query string false "Comma-separated subcategory labels"
//	@Param			latitude query number false "User latitude, requires longitude"
//	@Param			longitude query number false "User longitude, requires latitude"
//	@Param			radius query number false "Search radius in miles (0-500, default 10)"
//	@Success		200 {object} Response
//	@Router			/deals [get]
func (h *Handler) handleListDeals(w http.ResponseWriter, r *http.Request) {
	// Caller errors and internal failures alike must come back as a
	// structured response; nothing propagates past this boundary.
	defer func() {
		if rec := recover(); rec != nil {
			h.logger.Error("panic while processing deals request", zap.Any("panic", rec))
			writeResponse(w, Response{Deals: []models.Deal{}, Message: msgInternalError})
		}
	}()

	criteria, verr := ParseCriteria(r.URL.Query())
	if verr != nil {
		writeResponse(w, Response{Deals: []models.Deal{}, Message: verr.Message})
		return
	}

	result, err := h.engine.Query(criteria)
	if err != nil {
		h.logger.Error("deals query failed", zap.Error(err))
		writeResponse(w, Response{Deals: []models.Deal{}, Message: msgInternalError})
		return
	}

	if len(result) == 0 {
		writeResponse(w, Response{Deals: []models.Deal{}, Message: msgNoResults})
		return
	}

	writeResponse(w, Response{Deals: result})
}

func writeResponse(w http.ResponseWriter, resp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(resp)
}
