package store

import (
	"context"
	"time"

	"github.com/malondahq/malonda/internal/types"
)

// Store defines the ledger and inventory persistence contract the command
// engine depends on. Implementations must make RecordSale's availability
// check and its two writes one atomic unit, and serialize concurrent sales
// of the same item.
type Store interface {
	// RecordSale appends a sale and decrements inventory in one
	// transaction. Returns an *InsufficientStockError when fewer units are
	// on hand than requested.
	RecordSale(ctx context.Context, rec types.SaleRecord) (types.SaleRecord, error)

	// RecordExpense appends an expense record.
	RecordExpense(ctx context.Context, rec types.ExpenseRecord) (types.ExpenseRecord, error)

	// AddStock adds qty to the item's inventory, creating the record when
	// absent, and returns the new on-hand quantity.
	AddStock(ctx context.Context, item string, qty int) (int, error)

	// GetQuantity returns the on-hand quantity for an item; absent items
	// report zero.
	GetQuantity(ctx context.Context, item string) (int, error)

	// ListInventory returns all inventory records ordered by item name.
	ListInventory(ctx context.Context) ([]types.InventoryItem, error)

	// ListSales returns the most recent sales, newest first.
	ListSales(ctx context.Context, limit int) ([]types.SaleRecord, error)

	// ListExpenses returns the most recent expenses, newest first.
	ListExpenses(ctx context.Context, limit int) ([]types.ExpenseRecord, error)

	// Summarize totals sales and expenses recorded at or after since.
	// A zero since covers the whole ledger.
	Summarize(ctx context.Context, since time.Time) (types.Summary, error)

	Close() error
}
