package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"pizzaria-pdv-services/pkg/response"
)

// MenuGet serves the composed catalog the front end renders: spreadsheet
// rows merged with the availability overlays.
func (h *Handler) MenuGet(w http.ResponseWriter, r *http.Request) {
	catalog, err := h.Menu.Catalog(r.Context())
	if err != nil {
		h.Logger.Error("menu fetch failed", zap.Error(err))
		response.Error(w, http.StatusServiceUnavailable, "UPSTREAM_UNAVAILABLE", "Menu is unavailable")
		return
	}
	// Availability toggles must reach the front end immediately.
	w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate")
	response.JSON(w, http.StatusOK, catalog)
}
