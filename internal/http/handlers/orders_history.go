package handlers

import (
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"pizzaria-pdv-services/internal/sheets"
	"pizzaria-pdv-services/pkg/response"
)

// OrdersHistory reads archived orders back from the closed-orders
// sheet, newest first. The sheet is the source of truth once an order
// is archived.
func (h *Handler) OrdersHistory(w http.ResponseWriter, r *http.Request) {
	if h.Sheets == nil || h.Config.SpreadsheetID == "" {
		response.Error(w, http.StatusServiceUnavailable, "UPSTREAM_UNAVAILABLE", "Archival sheet is not configured")
		return
	}

	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 500 {
			response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "limit must be between 1 and 500")
			return
		}
		limit = parsed
	}

	entries, err := sheets.ReadHistory(r.Context(), h.Sheets, h.Config.SpreadsheetID, h.Config.ClosedOrdersSheet, limit)
	if err != nil {
		h.Logger.Error("history read failed", zap.Error(err))
		response.Error(w, http.StatusServiceUnavailable, "UPSTREAM_UNAVAILABLE", "Could not read the archive sheet")
		return
	}

	response.JSON(w, http.StatusOK, map[string]any{"orders": entries, "count": len(entries)})
}
