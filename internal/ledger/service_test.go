package ledger

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/malondahq/malonda/internal/store"
	"github.com/malondahq/malonda/internal/types"
)

func newTestService(t *testing.T) (*Service, *store.SQLiteStore) {
	t.Helper()
	db, err := store.NewSQLiteStore(filepath.Join(t.TempDir(), "malonda.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return NewService(db, 5*time.Second, 50), db
}

func TestProcessCommand_SaleHappyPath(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	if _, err := db.AddStock(ctx, "books", 5); err != nil {
		t.Fatal(err)
	}

	resp := svc.ProcessCommand(ctx, "sold 3 books at 500")

	if !resp.Success || resp.Kind != types.KindSuccess {
		t.Fatalf("envelope = %+v, want success", resp)
	}
	if !strings.Contains(resp.Message, "1500") {
		t.Errorf("message %q does not state the derived amount 1500", resp.Message)
	}

	qty, err := db.GetQuantity(ctx, "books")
	if err != nil {
		t.Fatal(err)
	}
	if qty != 2 {
		t.Errorf("inventory after sale = %d, want 2", qty)
	}
}

func TestProcessCommand_BilingualSaleBehavesLikeEnglish(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	if _, err := db.AddStock(ctx, "buku", 5); err != nil {
		t.Fatal(err)
	}

	resp := svc.ProcessCommand(ctx, "ndagulitsa 3 buku pa 500")

	if !resp.Success {
		t.Fatalf("envelope = %+v, want success", resp)
	}
	if !strings.Contains(resp.Message, "1500") {
		t.Errorf("message %q does not state amount 1500", resp.Message)
	}

	qty, err := db.GetQuantity(ctx, "buku")
	if err != nil {
		t.Fatal(err)
	}
	if qty != 2 {
		t.Errorf("inventory after bilingual sale = %d, want 2", qty)
	}
}

func TestProcessCommand_InsufficientStock(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	if _, err := db.AddStock(ctx, "books", 1); err != nil {
		t.Fatal(err)
	}

	resp := svc.ProcessCommand(ctx, "sold 3 books at 500")

	if resp.Success || resp.Kind != types.KindError {
		t.Fatalf("envelope = %+v, want error", resp)
	}
	if !strings.Contains(resp.Message, "1") || !strings.Contains(resp.Message, "3") {
		t.Errorf("message %q must cite available 1 and requested 3", resp.Message)
	}

	qty, err := db.GetQuantity(ctx, "books")
	if err != nil {
		t.Fatal(err)
	}
	if qty != 1 {
		t.Errorf("inventory changed on rejected sale: %d, want 1", qty)
	}
	sales, err := db.ListSales(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(sales) != 0 {
		t.Errorf("rejected sale left %d ledger records", len(sales))
	}
}

func TestProcessCommand_StockAddAccumulates(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	resp := svc.ProcessCommand(ctx, "add 10 books to stock")
	if !resp.Success {
		t.Fatalf("first add failed: %+v", resp)
	}

	resp = svc.ProcessCommand(ctx, "add 10 books to stock")
	if !resp.Success {
		t.Fatalf("second add failed: %+v", resp)
	}
	if !strings.Contains(resp.Message, "20") {
		t.Errorf("message %q does not state new total 20", resp.Message)
	}

	qty, err := db.GetQuantity(ctx, "books")
	if err != nil {
		t.Fatal(err)
	}
	if qty != 20 {
		t.Errorf("inventory = %d, want 20", qty)
	}
}

func TestProcessCommand_ExpenseAlwaysRecords(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	resp := svc.ProcessCommand(ctx, "bought sugar for 3000")

	if !resp.Success || resp.Kind != types.KindSuccess {
		t.Fatalf("envelope = %+v, want success", resp)
	}

	expenses, err := db.ListExpenses(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(expenses) != 1 || expenses[0].Amount != 3000 {
		t.Fatalf("expenses = %+v, want one record of 3000", expenses)
	}

	// No implicit inventory increment for "bought".
	qty, err := db.GetQuantity(ctx, "sugar")
	if err != nil {
		t.Fatal(err)
	}
	if qty != 0 {
		t.Errorf("bought command incremented inventory to %d, want 0", qty)
	}
}

func TestProcessCommand_EmptyInput(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	for _, raw := range []string{"", "   ", "\t"} {
		resp := svc.ProcessCommand(ctx, raw)
		if resp.Success || resp.Kind != types.KindError {
			t.Errorf("ProcessCommand(%q) = %+v, want input error", raw, resp)
		}
	}

	sales, err := db.ListSales(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(sales) != 0 {
		t.Errorf("empty input produced %d sale records", len(sales))
	}
}

func TestProcessCommand_ZeroValuesNeverRecord(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	if _, err := db.AddStock(ctx, "books", 10); err != nil {
		t.Fatal(err)
	}

	commands := []string{
		"sold 3 books at 0",
		"sold 0 books at 500",
		"bought sugar for 0",
		"add 0 books to stock",
	}

	for _, raw := range commands {
		resp := svc.ProcessCommand(ctx, raw)
		if resp.Success {
			t.Errorf("ProcessCommand(%q) succeeded, want corrective error", raw)
		}
	}

	sales, _ := db.ListSales(ctx, 10)
	expenses, _ := db.ListExpenses(ctx, 10)
	if len(sales) != 0 || len(expenses) != 0 {
		t.Errorf("zero-value commands recorded %d sales, %d expenses", len(sales), len(expenses))
	}
	qty, err := db.GetQuantity(ctx, "books")
	if err != nil {
		t.Fatal(err)
	}
	if qty != 10 {
		t.Errorf("inventory = %d, want untouched 10", qty)
	}
}

func TestProcessCommand_StockQuery(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	resp := svc.ProcessCommand(ctx, "stock")
	if !resp.Success || resp.Kind != types.KindInfo {
		t.Fatalf("envelope = %+v, want info", resp)
	}
	if resp.Message != "Your inventory is empty." {
		t.Errorf("message = %q, want empty-inventory text", resp.Message)
	}

	if _, err := db.AddStock(ctx, "books", 2); err != nil {
		t.Fatal(err)
	}
	if _, err := db.AddStock(ctx, "sugar", 5); err != nil {
		t.Fatal(err)
	}

	resp = svc.ProcessCommand(ctx, "katundu")
	if resp.Message != "Current stock: 2 books, 5 sugar" {
		t.Errorf("message = %q, want ordered stock listing", resp.Message)
	}
}

func TestProcessCommand_SummaryAndProfit(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	if _, err := db.AddStock(ctx, "books", 10); err != nil {
		t.Fatal(err)
	}
	if resp := svc.ProcessCommand(ctx, "sold 3 books at 500"); !resp.Success {
		t.Fatalf("seed sale failed: %+v", resp)
	}
	if resp := svc.ProcessCommand(ctx, "paid rent 1000"); !resp.Success {
		t.Fatalf("seed expense failed: %+v", resp)
	}

	resp := svc.ProcessCommand(ctx, "summary")
	if !resp.Success || resp.Kind != types.KindInfo {
		t.Fatalf("envelope = %+v, want info", resp)
	}
	for _, want := range []string{"1500", "1000", "500"} {
		if !strings.Contains(resp.Message, want) {
			t.Errorf("summary %q missing %q", resp.Message, want)
		}
	}

	resp = svc.ProcessCommand(ctx, "phindu lero")
	if !strings.Contains(resp.Message, "500") {
		t.Errorf("profit message %q missing profit 500", resp.Message)
	}
}

func TestProcessCommand_HelpAndUnrecognized(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	resp := svc.ProcessCommand(ctx, "thandizo")
	if !resp.Success || resp.Kind != types.KindInfo {
		t.Errorf("help envelope = %+v, want info", resp)
	}

	resp = svc.ProcessCommand(ctx, "good morning")
	if resp.Success || resp.Kind != types.KindError {
		t.Errorf("unrecognized envelope = %+v, want error", resp)
	}
	if !strings.Contains(resp.Message, "Gulitsa 3 buku pa 500") {
		t.Errorf("unrecognized message %q missing usage example", resp.Message)
	}
}

// failingStore simulates an unavailable store for the error path.
type failingStore struct {
	store.Store
}

var errDown = errors.New("database is locked")

func (f *failingStore) RecordSale(ctx context.Context, rec types.SaleRecord) (types.SaleRecord, error) {
	return types.SaleRecord{}, errDown
}

func (f *failingStore) RecordExpense(ctx context.Context, rec types.ExpenseRecord) (types.ExpenseRecord, error) {
	return types.ExpenseRecord{}, errDown
}

func TestProcessCommand_StoreFailure(t *testing.T) {
	svc := NewService(&failingStore{}, time.Second, 50)
	ctx := context.Background()

	resp := svc.ProcessCommand(ctx, "bought sugar for 3000")
	if resp.Success || resp.Kind != types.KindError {
		t.Fatalf("envelope = %+v, want generic store error", resp)
	}
	if strings.Contains(resp.Message, "locked") {
		t.Errorf("message %q leaks internal error detail", resp.Message)
	}
}
