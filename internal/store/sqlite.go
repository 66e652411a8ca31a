package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/malondahq/malonda/internal/types"
	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"
)

// SQLiteStore is the SQLite-backed ledger and inventory database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens the database at dbPath, enables WAL mode and
// pragmas, and runs migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := enablePragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable pragmas: %w", err)
	}

	if err := RunMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// enablePragmas sets SQLite pragmas for optimal performance and safety.
func enablePragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA foreign_keys=ON",
		"PRAGMA synchronous=NORMAL",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("execute %s: %w", pragma, err)
		}
	}

	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// RecordSale appends the sale and decrements inventory in one transaction.
// The decrement is a guarded UPDATE (quantity >= requested), so concurrent
// sales of the same item serialize on the write and can never oversell.
func (s *SQLiteStore) RecordSale(ctx context.Context, rec types.SaleRecord) (types.SaleRecord, error) {
	rec.ID = ulid.Make().String()
	rec.CreatedAt = time.Now().UTC()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return types.SaleRecord{}, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE inventory SET quantity = quantity - ?
		WHERE item = ? AND quantity >= ?
	`, rec.Quantity, rec.Item, rec.Quantity)
	if err != nil {
		return types.SaleRecord{}, fmt.Errorf("decrement inventory: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return types.SaleRecord{}, fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		var available int
		err := tx.QueryRowContext(ctx,
			"SELECT quantity FROM inventory WHERE item = ?", rec.Item).Scan(&available)
		if err != nil && err != sql.ErrNoRows {
			return types.SaleRecord{}, fmt.Errorf("read inventory: %w", err)
		}
		return types.SaleRecord{}, &InsufficientStockError{
			Item:      rec.Item,
			Available: available,
			Requested: rec.Quantity,
		}
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO sales (id, item, quantity, unit_price, amount, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, rec.ID, rec.Item, rec.Quantity, rec.UnitPrice, rec.Amount, rec.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return types.SaleRecord{}, fmt.Errorf("insert sale: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return types.SaleRecord{}, fmt.Errorf("commit transaction: %w", err)
	}

	return rec, nil
}

// RecordExpense appends an expense record.
func (s *SQLiteStore) RecordExpense(ctx context.Context, rec types.ExpenseRecord) (types.ExpenseRecord, error) {
	rec.ID = ulid.Make().String()
	rec.CreatedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO expenses (id, item, amount, created_at)
		VALUES (?, ?, ?, ?)
	`, rec.ID, rec.Item, rec.Amount, rec.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return types.ExpenseRecord{}, fmt.Errorf("insert expense: %w", err)
	}

	return rec, nil
}

// AddStock upserts the item's inventory, adding qty to the existing value,
// and returns the new on-hand quantity.
func (s *SQLiteStore) AddStock(ctx context.Context, item string, qty int) (int, error) {
	var newQty int
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO inventory (item, quantity) VALUES (?, ?)
		ON CONFLICT(item) DO UPDATE SET quantity = quantity + excluded.quantity
		RETURNING quantity
	`, item, qty).Scan(&newQty)
	if err != nil {
		return 0, fmt.Errorf("upsert inventory: %w", err)
	}

	return newQty, nil
}

// GetQuantity returns the on-hand quantity for an item, zero when absent.
func (s *SQLiteStore) GetQuantity(ctx context.Context, item string) (int, error) {
	var qty int
	err := s.db.QueryRowContext(ctx,
		"SELECT quantity FROM inventory WHERE item = ?", item).Scan(&qty)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read inventory: %w", err)
	}

	return qty, nil
}

// ListInventory returns all inventory records ordered by item name.
func (s *SQLiteStore) ListInventory(ctx context.Context) ([]types.InventoryItem, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT item, quantity FROM inventory ORDER BY item ASC")
	if err != nil {
		return nil, fmt.Errorf("query inventory: %w", err)
	}
	defer rows.Close()

	var items []types.InventoryItem
	for rows.Next() {
		var it types.InventoryItem
		if err := rows.Scan(&it.Item, &it.Quantity); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		items = append(items, it)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	return items, nil
}

// ListSales returns the most recent sales, newest first.
func (s *SQLiteStore) ListSales(ctx context.Context, limit int) ([]types.SaleRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, item, quantity, unit_price, amount, created_at
		FROM sales
		ORDER BY created_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query sales: %w", err)
	}
	defer rows.Close()

	var sales []types.SaleRecord
	for rows.Next() {
		var rec types.SaleRecord
		var createdAt string
		if err := rows.Scan(&rec.ID, &rec.Item, &rec.Quantity, &rec.UnitPrice, &rec.Amount, &createdAt); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
			rec.CreatedAt = t
		}
		sales = append(sales, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	return sales, nil
}

// ListExpenses returns the most recent expenses, newest first.
func (s *SQLiteStore) ListExpenses(ctx context.Context, limit int) ([]types.ExpenseRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, item, amount, created_at
		FROM expenses
		ORDER BY created_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query expenses: %w", err)
	}
	defer rows.Close()

	var expenses []types.ExpenseRecord
	for rows.Next() {
		var rec types.ExpenseRecord
		var createdAt string
		if err := rows.Scan(&rec.ID, &rec.Item, &rec.Amount, &createdAt); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
			rec.CreatedAt = t
		}
		expenses = append(expenses, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	return expenses, nil
}

// Summarize totals sales and expenses recorded at or after since. RFC 3339
// timestamps compare lexically, so a zero since covers everything.
func (s *SQLiteStore) Summarize(ctx context.Context, since time.Time) (types.Summary, error) {
	cutoff := since.UTC().Format(time.RFC3339)

	var sum types.Summary
	err := s.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(amount), 0), COUNT(*) FROM sales WHERE created_at >= ?
	`, cutoff).Scan(&sum.SalesTotal, &sum.SalesCount)
	if err != nil {
		return types.Summary{}, fmt.Errorf("sum sales: %w", err)
	}

	err = s.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(amount), 0), COUNT(*) FROM expenses WHERE created_at >= ?
	`, cutoff).Scan(&sum.ExpenseTotal, &sum.ExpenseCount)
	if err != nil {
		return types.Summary{}, fmt.Errorf("sum expenses: %w", err)
	}

	sum.Profit = sum.SalesTotal - sum.ExpenseTotal
	return sum, nil
}
