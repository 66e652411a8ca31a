// Package ledger validates parsed commands against inventory state and
// applies the resulting ledger mutation. It is the only writer of business
// state; every request is a single-shot pipeline with no cross-request
// memory.
package ledger

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/malondahq/malonda/internal/command"
	"github.com/malondahq/malonda/internal/lang"
	"github.com/malondahq/malonda/internal/store"
	"github.com/malondahq/malonda/internal/types"
	"github.com/malondahq/malonda/internal/validation"
)

// Service interprets raw command text and applies it to the store.
type Service struct {
	store     store.Store
	timeout   time.Duration
	listLimit int
}

// NewService creates a Service. timeout bounds every store operation;
// listLimit caps the recent-record listings.
func NewService(s store.Store, timeout time.Duration, listLimit int) *Service {
	return &Service{store: s, timeout: timeout, listLimit: listLimit}
}

// ProcessCommand runs the full pipeline for one raw command: input
// validation, normalization, classification, extraction, then
// validation/application against the store. It never returns an error;
// every outcome is a ResponseEnvelope and failures never mutate state.
func (s *Service) ProcessCommand(ctx context.Context, raw string) types.ResponseEnvelope {
	if verr := validation.ValidateCommand(raw); verr != nil {
		return errorEnvelope(msgNoCommand)
	}

	normalized := lang.Normalize(raw)
	intent := command.Classify(normalized)

	fields, err := command.Extract(intent, normalized)
	if err != nil {
		slog.Debug("extraction failed", "intent", intent.String(), "error", err)
		return extractionEnvelope(intent, err)
	}

	switch intent {
	case command.IntentSale:
		return s.applySale(ctx, fields)
	case command.IntentPurchaseExpense:
		return s.applyExpense(ctx, fields)
	case command.IntentStockAdd:
		return s.applyStockAdd(ctx, fields)
	case command.IntentStockQuery:
		return s.applyStockQuery(ctx)
	case command.IntentSummary:
		return s.applySummary(ctx, fields)
	case command.IntentHelp:
		return infoEnvelope(msgHelp)
	default:
		return errorEnvelope(msgUnrecognized)
	}
}

// applySale appends the sale and decrements inventory. Both writes and the
// availability check are one store transaction, so a failure can never
// leave the ledger and inventory out of step.
func (s *Service) applySale(ctx context.Context, f command.Fields) types.ResponseEnvelope {
	ctx, cancel := s.bound(ctx)
	defer cancel()

	rec, err := s.store.RecordSale(ctx, types.SaleRecord{
		Item:      f.Item,
		Quantity:  f.Quantity,
		UnitPrice: f.UnitPrice,
		Amount:    f.Amount,
	})
	if err != nil {
		var insufficientErr *store.InsufficientStockError
		if errors.As(err, &insufficientErr) {
			return errorEnvelope(insufficientStockMessage(
				insufficientErr.Item, insufficientErr.Available, insufficientErr.Requested))
		}
		return s.storeFailure("record sale", err)
	}

	return successEnvelope(saleRecordedMessage(rec))
}

// applyExpense records the expense. "bought" never implies an inventory
// increment; stock changes happen only through explicit add commands.
func (s *Service) applyExpense(ctx context.Context, f command.Fields) types.ResponseEnvelope {
	ctx, cancel := s.bound(ctx)
	defer cancel()

	rec, err := s.store.RecordExpense(ctx, types.ExpenseRecord{Item: f.Item, Amount: f.Amount})
	if err != nil {
		return s.storeFailure("record expense", err)
	}

	return successEnvelope(expenseRecordedMessage(rec))
}

func (s *Service) applyStockAdd(ctx context.Context, f command.Fields) types.ResponseEnvelope {
	ctx, cancel := s.bound(ctx)
	defer cancel()

	total, err := s.store.AddStock(ctx, f.Item, f.Quantity)
	if err != nil {
		return s.storeFailure("add stock", err)
	}

	return successEnvelope(stockAddedMessage(f.Quantity, f.Item, total))
}

func (s *Service) applyStockQuery(ctx context.Context) types.ResponseEnvelope {
	ctx, cancel := s.bound(ctx)
	defer cancel()

	items, err := s.store.ListInventory(ctx)
	if err != nil {
		return s.storeFailure("list inventory", err)
	}

	if len(items) == 0 {
		return infoEnvelope(msgEmptyInventory)
	}
	return infoEnvelope(stockListMessage(items))
}

func (s *Service) applySummary(ctx context.Context, f command.Fields) types.ResponseEnvelope {
	ctx, cancel := s.bound(ctx)
	defer cancel()

	period := parsePeriod(f.Period)
	sum, err := s.store.Summarize(ctx, periodStart(period, time.Now().UTC()))
	if err != nil {
		return s.storeFailure("summarize", err)
	}
	sum.Period = period

	return infoEnvelope(summaryMessage(sum, f.ProfitOnly))
}

// --- read-only pass-throughs for the reporting layer ---

// RecentSales lists the most recent sale records.
func (s *Service) RecentSales(ctx context.Context) ([]types.SaleRecord, error) {
	ctx, cancel := s.bound(ctx)
	defer cancel()
	return s.store.ListSales(ctx, s.listLimit)
}

// RecentExpenses lists the most recent expense records.
func (s *Service) RecentExpenses(ctx context.Context) ([]types.ExpenseRecord, error) {
	ctx, cancel := s.bound(ctx)
	defer cancel()
	return s.store.ListExpenses(ctx, s.listLimit)
}

// Inventory lists all current inventory records ordered by item name.
func (s *Service) Inventory(ctx context.Context) ([]types.InventoryItem, error) {
	ctx, cancel := s.bound(ctx)
	defer cancel()
	return s.store.ListInventory(ctx)
}

// Summary aggregates ledger activity over the named period.
func (s *Service) Summary(ctx context.Context, period types.SummaryPeriod) (types.Summary, error) {
	ctx, cancel := s.bound(ctx)
	defer cancel()

	sum, err := s.store.Summarize(ctx, periodStart(period, time.Now().UTC()))
	if err != nil {
		return types.Summary{}, err
	}
	sum.Period = period
	return sum, nil
}

func (s *Service) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.timeout)
}

func (s *Service) storeFailure(op string, err error) types.ResponseEnvelope {
	slog.Error("store operation failed", "op", op, "error", err)
	return errorEnvelope(msgStoreFailure)
}

func parsePeriod(word string) types.SummaryPeriod {
	switch word {
	case "today":
		return types.PeriodToday
	case "week":
		return types.PeriodWeek
	case "month":
		return types.PeriodMonth
	default:
		return types.PeriodAll
	}
}

// periodStart returns the cutoff for a summary period. Today starts at UTC
// midnight; week and month are rolling 7- and 30-day windows.
func periodStart(period types.SummaryPeriod, now time.Time) time.Time {
	switch period {
	case types.PeriodToday:
		return now.Truncate(24 * time.Hour)
	case types.PeriodWeek:
		return now.AddDate(0, 0, -7)
	case types.PeriodMonth:
		return now.AddDate(0, 0, -30)
	default:
		return time.Time{}
	}
}

func extractionEnvelope(intent command.Intent, err error) types.ResponseEnvelope {
	switch {
	case errors.Is(err, command.ErrMissingPrice):
		return errorEnvelope(msgMissingPrice)
	case errors.Is(err, command.ErrMissingAmount):
		return errorEnvelope(msgMissingAmount)
	case errors.Is(err, command.ErrMissingQuantity):
		if intent == command.IntentStockAdd {
			return errorEnvelope(msgMissingAddQty)
		}
		return errorEnvelope(msgSaleFormat)
	default:
		if intent == command.IntentPurchaseExpense {
			return errorEnvelope(msgMissingAmount)
		}
		return errorEnvelope(msgSaleFormat)
	}
}

func successEnvelope(msg string) types.ResponseEnvelope {
	return types.ResponseEnvelope{Success: true, Message: msg, Kind: types.KindSuccess}
}

func errorEnvelope(msg string) types.ResponseEnvelope {
	return types.ResponseEnvelope{Success: false, Message: msg, Kind: types.KindError}
}

func infoEnvelope(msg string) types.ResponseEnvelope {
	return types.ResponseEnvelope{Success: true, Message: msg, Kind: types.KindInfo}
}
