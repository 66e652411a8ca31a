package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/malondahq/malonda/internal/ledger"
	"github.com/malondahq/malonda/internal/types"
)

// Handler exposes the command engine and its read-only reports over HTTP.
// It owns no interpretation logic; envelopes pass through unchanged.
type Handler struct {
	svc     *ledger.Service
	apiKey  string
	version string
}

// NewHandler creates a Handler around the ledger service.
func NewHandler(svc *ledger.Service, apiKey, version string) *Handler {
	return &Handler{svc: svc, apiKey: apiKey, version: version}
}

// Health returns the health status.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.Inventory(r.Context())
	if err != nil {
		WriteProblem(w, r, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	writeJSON(w, types.HealthResponse{
		Status:        "healthy",
		Version:       h.version,
		InventorySize: int64(len(items)),
	})
}

// Command handles POST /api/v1/command. Interpreted outcomes, including
// corrective errors, are HTTP 200 with the envelope; only malformed
// transport input is a problem response.
func (h *Handler) Command(w http.ResponseWriter, r *http.Request) {
	var req types.CommandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteProblem(w, r, http.StatusBadRequest, "Invalid JSON: "+err.Error())
		return
	}

	env := h.svc.ProcessCommand(r.Context(), req.Command)
	writeJSON(w, env)
}

// Sales handles GET /api/v1/sales.
func (h *Handler) Sales(w http.ResponseWriter, r *http.Request) {
	sales, err := h.svc.RecentSales(r.Context())
	if err != nil {
		slog.Error("list sales failed", "error", err)
		WriteProblem(w, r, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	if sales == nil {
		sales = []types.SaleRecord{}
	}
	writeJSON(w, sales)
}

// Expenses handles GET /api/v1/expenses.
func (h *Handler) Expenses(w http.ResponseWriter, r *http.Request) {
	expenses, err := h.svc.RecentExpenses(r.Context())
	if err != nil {
		slog.Error("list expenses failed", "error", err)
		WriteProblem(w, r, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	if expenses == nil {
		expenses = []types.ExpenseRecord{}
	}
	writeJSON(w, expenses)
}

// Inventory handles GET /api/v1/inventory.
func (h *Handler) Inventory(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.Inventory(r.Context())
	if err != nil {
		slog.Error("list inventory failed", "error", err)
		WriteProblem(w, r, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	if items == nil {
		items = []types.InventoryItem{}
	}
	writeJSON(w, items)
}

// Summary handles GET /api/v1/summary?period=today|week|month|all.
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	period := types.SummaryPeriod(r.URL.Query().Get("period"))
	switch period {
	case types.PeriodToday, types.PeriodWeek, types.PeriodMonth, types.PeriodAll:
	case "":
		period = types.PeriodAll
	default:
		WriteProblem(w, r, http.StatusBadRequest, "period must be today, week, month, or all")
		return
	}

	sum, err := h.svc.Summary(r.Context(), period)
	if err != nil {
		slog.Error("summary failed", "error", err)
		WriteProblem(w, r, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	writeJSON(w, sum)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
