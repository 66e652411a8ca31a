package store

import "fmt"

// InsufficientStockError reports a sale that requested more units than the
// inventory holds. The command layer turns it into a corrective response.
type InsufficientStockError struct {
	Item      string
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %q: available %d, requested %d",
		e.Item, e.Available, e.Requested)
}
