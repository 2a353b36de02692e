package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"pizzaria-pdv-services/internal/sheets"
	"pizzaria-pdv-services/internal/store"
	"pizzaria-pdv-services/pkg/response"
)

// OrderArchive closes an order: the flattened row goes to the
// closed-orders sheet first, then the status flips to Archived. A
// failed append leaves the order untouched so a retry can finish the
// job.
func (h *Handler) OrderArchive(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	orderID := chi.URLParam(r, "orderId")
	if orderID == "" {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "orderId is required")
		return
	}

	o, err := h.Store.GetOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, store.ErrOrderNotFound) {
			response.Error(w, http.StatusNotFound, "NOT_FOUND", "Order not found")
			return
		}
		h.Logger.Error("order load failed", zap.String("orderId", orderID), zap.Error(err))
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Could not load order")
		return
	}

	if h.Sheets == nil || h.Config.SpreadsheetID == "" {
		response.Error(w, http.StatusServiceUnavailable, "UPSTREAM_UNAVAILABLE", "Archival sheet is not configured")
		return
	}

	row := sheets.ArchiveRow(o, h.location())
	if err := h.Sheets.AppendRow(ctx, h.Config.SpreadsheetID, h.Config.ClosedOrdersSheet, row); err != nil {
		h.Logger.Error("archive append failed", zap.String("orderId", orderID), zap.Error(err))
		response.Error(w, http.StatusServiceUnavailable, "UPSTREAM_UNAVAILABLE", "Could not write to the archive sheet")
		return
	}

	if err := h.Store.MarkArchived(ctx, orderID); err != nil {
		h.Logger.Error("archive status update failed", zap.String("orderId", orderID), zap.Error(err))
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Archived to sheet but status update failed")
		return
	}

	if h.Publisher != nil {
		if err := h.Publisher.PublishOrderArchived(ctx, o); err != nil {
			h.Logger.Warn("archive event publish failed", zap.String("orderId", orderID), zap.Error(err))
		}
	}

	h.Logger.Info("order archived", zap.String("orderId", orderID))
	response.JSON(w, http.StatusOK, map[string]any{"orderId": orderID, "status": "Archived"})
}
