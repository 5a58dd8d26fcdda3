// internal/menu/output.go
//
// 本檔負責統一選單輸出格式：成功訊息、錯誤訊息與對帳單框線。
package menu

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	errNoClients  = errors.New("no clients registered")
	errNoAccounts = errors.New("no accounts registered")
)

const statementRule = "#####################"

// writeResult 依 err 是否為 nil 輸出成功訊息或錯誤訊息。
func (m *Menu) writeResult(msg string, err error) {
	if err != nil {
		m.writeErr(err)
		return
	}
	fmt.Fprintln(m.out, msg)
}

// writeErr 統一輸出錯誤訊息。
func (m *Menu) writeErr(err error) {
	fmt.Fprintf(m.out, "Error: %v\n", err)
}

func (m *Menu) writeStatement(lines []string) {
	fmt.Fprintln(m.out, statementRule)
	fmt.Fprintln(m.out, "####  STATEMENT  ####")
	fmt.Fprintln(m.out, statementRule)
	for _, l := range lines {
		fmt.Fprintln(m.out, l)
	}
	fmt.Fprintln(m.out, statementRule)
}

func formatMoney(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}
