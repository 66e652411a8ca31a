// Package command classifies normalized bookkeeping phrases into business
// intents and extracts their structured fields through ordered grammar
// shapes. Ambiguity policy is first-match-wins over an explicit shape table
// per intent, never ad hoc branching.
package command

import "strings"

// Intent is the classified business action a command represents.
type Intent int

const (
	IntentUnrecognized Intent = iota
	IntentSale
	IntentPurchaseExpense
	IntentStockAdd
	IntentStockQuery
	IntentSummary
	IntentHelp
)

// String returns the intent name for logging.
func (i Intent) String() string {
	switch i {
	case IntentSale:
		return "sale"
	case IntentPurchaseExpense:
		return "purchase_expense"
	case IntentStockAdd:
		return "stock_add"
	case IntentStockQuery:
		return "stock_query"
	case IntentSummary:
		return "summary"
	case IntentHelp:
		return "help"
	default:
		return "unrecognized"
	}
}

// Classify selects the intent for a normalized command. Decision order is
// fixed: sale vocabulary pre-empts the generic "stock" keyword that can
// co-occur in item names, and add-to-stock is checked before the broader
// stock query.
func Classify(normalized string) Intent {
	words := wordSet(normalized)

	switch {
	case words["sold"] || words["sale"]:
		return IntentSale
	case words["bought"] || words["paid"] || words["expense"]:
		return IntentPurchaseExpense
	case words["add"] && (words["stock"] || words["inventory"]):
		return IntentStockAdd
	case words["stock"] || words["inventory"]:
		return IntentStockQuery
	case words["profit"] || words["summary"]:
		return IntentSummary
	case words["help"]:
		return IntentHelp
	default:
		return IntentUnrecognized
	}
}

func wordSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range strings.Fields(s) {
		set[w] = true
	}
	return set
}
