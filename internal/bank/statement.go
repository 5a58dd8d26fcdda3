package bank

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// NoMovementsLine 為無交易時的對帳單內容。
const NoMovementsLine = "No movements."

// Statement 產生對帳單：每筆交易一行（插入順序），最後一行為目前餘額。
// 純讀取，不變更任何狀態。
func (b *Bank) Statement(key AccountKey) ([]string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	a, ok := b.store.FindAccount(key.Branch, key.Number)
	if !ok {
		return nil, ErrNotFound
	}
	txs := b.store.TransactionsFor(a.Branch, a.Number)

	lines := make([]string, 0, len(txs)+1)
	if len(txs) == 0 {
		lines = append(lines, NoMovementsLine)
	}
	for _, t := range txs {
		lines = append(lines, fmt.Sprintf("%s: %s", t.Kind.Title(), money(t.Amount)))
	}
	lines = append(lines, "Balance: "+money(a.Balance))
	return lines, nil
}

func money(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}
