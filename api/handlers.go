/*
handlers.go - HTTP API handlers for the tax ledger service

PURPOSE:
  Exposes the ledger core via REST. Handles HTTP request/response, JSON
  serialization, and delegates to the ledger service.

ENDPOINTS:
  POST  /transactions  Ingest a sale or tax payment event (202, no body)
  PATCH /sale          Amend a sale line item (202, no body)
  GET   /tax-position  Tax position as of a date ({date, taxPosition})
  GET   /health        Liveness check

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, unknown event types, unparseable dates
  - 500: Internal errors, logged with context and surfaced generically

  Validation detail goes back to the client so the request can be corrected;
  internal detail never does.

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/shopspring/decimal"
	"github.com/warp/tax-ledger/ledger"
)

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Service *ledger.Service
	Log     *slog.Logger
}

// NewHandler creates a new handler around the given service.
func NewHandler(service *ledger.Service, log *slog.Logger) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{Service: service, Log: log}
}

// =============================================================================
// INGESTION
// =============================================================================

// IngestTransaction records a transaction event.
// POST /transactions
func (h *Handler) IngestTransaction(w http.ResponseWriter, r *http.Request) {
	var req TransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid event format", err)
		return
	}
	if req.EventType == "" || req.Date == "" {
		writeError(w, http.StatusBadRequest, "Invalid event format", nil)
		return
	}

	switch ledger.EventType(req.EventType) {
	case ledger.EventSales:
		h.ingestSale(w, r, req)
	case ledger.EventTaxPayment:
		h.ingestTaxPayment(w, r, req)
	default:
		writeError(w, http.StatusBadRequest, "Unknown event type", ledger.ErrUnknownEventType)
	}
}

func (h *Handler) ingestSale(w http.ResponseWriter, r *http.Request, req TransactionRequest) {
	if req.InvoiceID == "" || len(req.Items) == 0 {
		writeError(w, http.StatusBadRequest, "Invalid sale event", nil)
		return
	}

	items := make([]ledger.Item, len(req.Items))
	for i, item := range req.Items {
		if item.ItemID == "" || item.Cost == nil || item.TaxRate == nil {
			writeError(w, http.StatusBadRequest, "Invalid sale item", nil)
			return
		}
		items[i] = ledger.Item{
			ItemID:  item.ItemID,
			Cost:    *item.Cost,
			TaxRate: decimal.NewFromFloat(*item.TaxRate),
		}
	}

	if err := h.Service.IngestSale(r.Context(), req.Date, req.InvoiceID, items); err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

func (h *Handler) ingestTaxPayment(w http.ResponseWriter, r *http.Request, req TransactionRequest) {
	if req.Amount == nil {
		writeError(w, http.StatusBadRequest, "Invalid tax payment event", nil)
		return
	}

	if err := h.Service.IngestTaxPayment(r.Context(), req.Date, *req.Amount); err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

// =============================================================================
// AMENDMENT
// =============================================================================

// AmendSale overwrites a sale line item and records an audit event.
// PATCH /sale
func (h *Handler) AmendSale(w http.ResponseWriter, r *http.Request) {
	var req AmendSaleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid amendment structure", err)
		return
	}

	var rate *decimal.Decimal
	if req.TaxRate != nil {
		d := decimal.NewFromFloat(*req.TaxRate)
		rate = &d
	}

	err := h.Service.Amend(r.Context(), ledger.Amendment{
		InvoiceID: req.InvoiceID,
		ItemID:    req.ItemID,
		Cost:      req.Cost,
		TaxRate:   rate,
		Date:      req.Date,
	})
	if err != nil {
		switch {
		case errors.Is(err, ledger.ErrInvalidDate):
			writeError(w, http.StatusBadRequest, "Invalid date format", err)
		case errors.Is(err, ledger.ErrMissingField):
			writeError(w, http.StatusBadRequest, "Invalid amendment structure", err)
		default:
			h.respondServiceError(w, r, err)
		}
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

// =============================================================================
// QUERIES
// =============================================================================

// TaxPosition returns the tax position as of the date query parameter.
// GET /tax-position?date=...
func (h *Handler) TaxPosition(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		writeError(w, http.StatusBadRequest, "Missing or invalid date parameter", nil)
		return
	}

	position, err := h.Service.TaxPositionAt(r.Context(), date)
	if err != nil {
		if errors.Is(err, ledger.ErrInvalidDate) {
			writeError(w, http.StatusBadRequest, "Invalid date format", err)
			return
		}
		h.respondServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, TaxPositionResponse{Date: date, TaxPosition: position})
}

// Health is the liveness check.
// GET /health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

// =============================================================================
// HELPERS
// =============================================================================

// respondServiceError maps service errors to responses. Client errors carry
// detail back; anything else is logged and surfaced generically.
func (h *Handler) respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	if ledger.IsClientError(err) {
		writeError(w, http.StatusBadRequest, "Invalid request", err)
		return
	}
	h.Log.ErrorContext(r.Context(), "request failed",
		"method", r.Method, "path", r.URL.Path, "error", err)
	writeError(w, http.StatusInternalServerError, "Internal Server Error", nil)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
