package command

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
)

// Extraction errors. Each maps to a corrective response upstream; none of
// them ever results in a store mutation.
var (
	ErrNoMatch         = errors.New("no grammar shape matched")
	ErrMissingQuantity = errors.New("quantity missing or zero")
	ErrMissingPrice    = errors.New("unit price missing or zero")
	ErrMissingAmount   = errors.New("amount missing or zero")
)

// Fields holds the structured values extracted from a normalized command.
// Which members are populated depends on the intent.
type Fields struct {
	Quantity  int
	Item      string
	UnitPrice int
	Amount    int

	// Summary only.
	Period     string
	ProfitOnly bool
}

// shape is one fixed word-order pattern. Shapes are tried in table order
// and the first match wins; that ordering is the documented tie-break for
// ambiguous phrasing such as quantity-then-item vs item-then-quantity.
type shape struct {
	name string
	re   *regexp.Regexp
	bind func(m []string, text string) (Fields, error)
}

var saleShapes = []shape{
	{
		name: "qty-item-price",
		re:   regexp.MustCompile(`\bsold\s+(\d+)\s+([a-z][a-z\s]*?)\s+(?:at|for)\s+(\d+)\b`),
		bind: func(m []string, _ string) (Fields, error) {
			return bindSale(m[1], m[2], m[3])
		},
	},
	{
		name: "item-qty-price",
		re:   regexp.MustCompile(`\bsold\s+([a-z][a-z\s]*?)\s+(\d+)\s+(?:at|for)\s+(\d+)\b`),
		bind: func(m []string, _ string) (Fields, error) {
			return bindSale(m[2], m[1], m[3])
		},
	},
}

var purchaseShapes = []shape{
	{
		name: "item-keyword-amount",
		re:   regexp.MustCompile(`\b(?:bought|paid|expense)\s+([a-z][a-z\s]*?)\s+(?:for|at)\s+(\d+)\b`),
		bind: func(m []string, _ string) (Fields, error) {
			return bindExpense(m[1], m[2])
		},
	},
	{
		// Fallback: no keyword-adjacent amount; any bare number in the
		// text supplies it.
		name: "item-bare-amount",
		re:   regexp.MustCompile(`\b(?:bought|paid|expense)\s+([a-z][a-z\s]*)`),
		bind: func(m []string, text string) (Fields, error) {
			num := bareNumber.FindString(text)
			if num == "" {
				return Fields{}, ErrMissingAmount
			}
			return bindExpense(m[1], num)
		},
	},
}

var stockAddShapes = []shape{
	{
		name: "add-qty-item",
		re:   regexp.MustCompile(`\badd\s+(?:(\d+)\s+)?([a-z][a-z\s]*)`),
		bind: func(m []string, text string) (Fields, error) {
			qty := m[1]
			if qty == "" {
				qty = bareNumber.FindString(text)
			}
			n, err := strconv.Atoi(qty)
			if err != nil || n == 0 {
				return Fields{}, ErrMissingQuantity
			}
			item := trimStockWords(m[2])
			if item == "" {
				return Fields{}, ErrNoMatch
			}
			return Fields{Quantity: n, Item: item}, nil
		},
	},
}

var (
	bareNumber     = regexp.MustCompile(`\d+`)
	trailingStock  = regexp.MustCompile(`\s*\b(?:to|in)?\s*\b(?:stock|inventory)\b\s*$`)
	summaryPeriods = regexp.MustCompile(`\b(today|week|month)\b`)
)

// Extract pulls structured fields out of a normalized command for the given
// intent. Sale and purchase phrasings that match no shape return ErrNoMatch;
// zero quantities, prices, or amounts are treated as missing.
func Extract(intent Intent, normalized string) (Fields, error) {
	switch intent {
	case IntentSale:
		return applyShapes(saleShapes, normalized)
	case IntentPurchaseExpense:
		return applyShapes(purchaseShapes, normalized)
	case IntentStockAdd:
		return applyShapes(stockAddShapes, normalized)
	case IntentSummary:
		f := Fields{Period: summaryPeriods.FindString(normalized)}
		f.ProfitOnly = strings.Contains(" "+normalized+" ", " profit ")
		return f, nil
	default:
		// StockQuery, Help, and Unrecognized carry no fields.
		return Fields{}, nil
	}
}

func applyShapes(shapes []shape, text string) (Fields, error) {
	for _, sh := range shapes {
		m := sh.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		return sh.bind(m, text)
	}
	return Fields{}, ErrNoMatch
}

func bindSale(qty, item, price string) (Fields, error) {
	q, err := strconv.Atoi(qty)
	if err != nil || q == 0 {
		return Fields{}, ErrMissingQuantity
	}
	p, err := strconv.Atoi(price)
	if err != nil || p == 0 {
		return Fields{}, ErrMissingPrice
	}
	item = strings.TrimSpace(item)
	if item == "" {
		return Fields{}, ErrNoMatch
	}
	// Amount is always derived, never parsed independently.
	return Fields{Quantity: q, Item: item, UnitPrice: p, Amount: q * p}, nil
}

func bindExpense(item, amount string) (Fields, error) {
	a, err := strconv.Atoi(amount)
	if err != nil || a == 0 {
		return Fields{}, ErrMissingAmount
	}
	item = strings.TrimSpace(item)
	if item == "" {
		item = "expense"
	}
	return Fields{Item: item, Amount: a}, nil
}

// trimStockWords strips trailing "to stock" / "in inventory" tokens that the
// add-to-stock grammar captures as part of the item name.
func trimStockWords(item string) string {
	return strings.TrimSpace(trailingStock.ReplaceAllString(strings.TrimSpace(item), ""))
}
