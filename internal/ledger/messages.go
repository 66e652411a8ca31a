package ledger

import (
	"fmt"
	"strings"

	"github.com/malondahq/malonda/internal/types"
)

// Response messages mirror the mixed Chichewa/English register operators
// actually hear; corrective messages always carry an example phrase.
const (
	msgNoCommand      = "No command received"
	msgSaleFormat     = "Could not understand sale format. Mwachitsanzo: 'sold 3 books at 500' kapena 'ndagulitsa 3 buku pa 500'"
	msgMissingPrice   = "Chonde ndiwuzeni mtengo. Mwachitsanzo: ndagulitsa 3 buku pa 500"
	msgMissingAmount  = "Please tell me the amount. Mwachitsanzo: gula shuga pa 3000"
	msgMissingAddQty  = "Please tell me how many to add. Mwachitsanzo: onjeza 10 buku ku katundu"
	msgEmptyInventory = "Your inventory is empty."
	msgStoreFailure   = "Pepani, something went wrong saving that. Please try again."
	msgUnrecognized   = "Sindinamve bwino. Yesani: 'Gulitsa 3 buku pa 500' kapena 'Sold 3 books at 500'"

	msgHelp = "You can say: 'sold 3 books at 500' / 'ndagulitsa 3 buku pa 500', " +
		"'bought sugar for 3000' / 'gula shuga pa 3000', " +
		"'add 10 books to stock' / 'onjeza 10 buku ku katundu', " +
		"'stock' / 'katundu', 'profit today' / 'phindu lero', 'summary' / 'chidule'."
)

func saleRecordedMessage(rec types.SaleRecord) string {
	return fmt.Sprintf("Zogulitsa zasungidwa: %d %s sold for %d total.",
		rec.Quantity, rec.Item, rec.Amount)
}

func insufficientStockMessage(item string, available, requested int) string {
	return fmt.Sprintf("Mulibe zinthu zokwanira: %d %s, koma mukufuna kugulitsa %d.",
		available, item, requested)
}

func expenseRecordedMessage(rec types.ExpenseRecord) string {
	return fmt.Sprintf("Expense recorded: %s for %d.", rec.Item, rec.Amount)
}

func stockAddedMessage(qty int, item string, total int) string {
	return fmt.Sprintf("Added %d %s to stock. Muli ndi %d total.", qty, item, total)
}

func stockListMessage(items []types.InventoryItem) string {
	parts := make([]string, len(items))
	for i, it := range items {
		parts[i] = fmt.Sprintf("%d %s", it.Quantity, it.Item)
	}
	return "Current stock: " + strings.Join(parts, ", ")
}

func summaryMessage(sum types.Summary, profitOnly bool) string {
	label := periodLabel(sum.Period)
	if profitOnly {
		return fmt.Sprintf("Phindu %s: %d.", label, sum.Profit)
	}
	return fmt.Sprintf("Chidule %s: sales %d (%d), expenses %d (%d), profit %d.",
		label, sum.SalesTotal, sum.SalesCount, sum.ExpenseTotal, sum.ExpenseCount, sum.Profit)
}

func periodLabel(p types.SummaryPeriod) string {
	switch p {
	case types.PeriodToday:
		return "lero"
	case types.PeriodWeek:
		return "sabata ino"
	case types.PeriodMonth:
		return "mwezi uno"
	default:
		return "zonse"
	}
}
