package categories

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/mpocar/dealer-finder/internal/deals"
	"github.com/mpocar/dealer-finder/internal/server"
)

// ListResponse is the body of GET /api/v1/categories.
type ListResponse struct {
	Categories []Category `json:"categories"`
}

// Handler serves the category extraction API.
type Handler struct {
	source deals.Source
	logger *zap.Logger
}

// NewHandler creates a categories API handler over the same catalog source
// the deals engine uses.
func NewHandler(source deals.Source, logger *zap.Logger) *Handler {
	return &Handler{source: source, logger: logger}
}

// RegisterRoutes registers the categories routes on the mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/v1/categories", h.handleListCategories)
}

// handleListCategories returns all distinct categories with their subcategories.
//
//	@Summary		List categories
//	@Description	Returns the distinct categories and subcategories present in the catalog, alphabetically sorted, for building filter controls.
//	@Tags			categories
//	@Produce		json
//	@Success		200 {object} ListResponse
//	@Failure		500 {object} server.Problem
//	@Router			/categories [get]
func (h *Handler) handleListCategories(w http.ResponseWriter, r *http.Request) {
	catalog, err := h.source.Deals()
	if err != nil {
		h.logger.Error("failed to load catalog", zap.Error(err))
		server.InternalError(w, "failed to load catalog", r.URL.Path)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(ListResponse{Categories: Extract(catalog)})
}
