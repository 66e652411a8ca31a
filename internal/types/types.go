package types

import "time"

// ResponseKind classifies the envelope returned for a processed command.
type ResponseKind string

const (
	KindSuccess ResponseKind = "success"
	KindError   ResponseKind = "error"
	KindInfo    ResponseKind = "info"
)

// ResponseEnvelope is the sole contract the command engine surfaces to
// callers. The HTTP layer returns it unchanged.
type ResponseEnvelope struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Kind    ResponseKind `json:"kind"`
}

// SaleRecord is an append-only ledger entry for one completed sale.
// Amount is always Quantity times UnitPrice, in whole kwacha.
type SaleRecord struct {
	ID        string    `json:"id"`
	Item      string    `json:"item"`
	Quantity  int       `json:"quantity"`
	UnitPrice int       `json:"unit_price"`
	Amount    int       `json:"amount"`
	CreatedAt time.Time `json:"created_at"`
}

// ExpenseRecord is an append-only ledger entry for a purchase or expense.
type ExpenseRecord struct {
	ID        string    `json:"id"`
	Item      string    `json:"item"`
	Amount    int       `json:"amount"`
	CreatedAt time.Time `json:"created_at"`
}

// InventoryItem is the current on-hand quantity for one item name.
// Absence of a record means quantity zero.
type InventoryItem struct {
	Item     string `json:"item"`
	Quantity int    `json:"quantity"`
}

// SummaryPeriod selects the window a summary report covers.
type SummaryPeriod string

const (
	PeriodToday SummaryPeriod = "today"
	PeriodWeek  SummaryPeriod = "week"
	PeriodMonth SummaryPeriod = "month"
	PeriodAll   SummaryPeriod = "all"
)

// Summary aggregates ledger activity over a period.
type Summary struct {
	Period       SummaryPeriod `json:"period"`
	SalesTotal   int           `json:"sales_total"`
	SalesCount   int           `json:"sales_count"`
	ExpenseTotal int           `json:"expense_total"`
	ExpenseCount int           `json:"expense_count"`
	Profit       int           `json:"profit"`
}

// CommandRequest is the body of POST /api/v1/command.
type CommandRequest struct {
	Command string `json:"command"`
}

// HealthResponse is the health check payload.
type HealthResponse struct {
	Status        string `json:"status"`
	Version       string `json:"version"`
	InventorySize int64  `json:"inventory_size"`
}
