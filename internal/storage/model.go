// internal/storage/model.go
//
// 定義「記錄儲存層 (record store)」的資料模型。
// 每一種實體（客戶、帳戶、分行、帳戶類型、交易）皆為具名、具型別欄位的結構，
// 不含任何商業規則；規則由 bank 套件負責。
package storage

import (
	"time"

	"github.com/shopspring/decimal"
)

// Kind 為交易種類。
type Kind string

const (
	KindDeposit    Kind = "deposit"
	KindWithdrawal Kind = "withdrawal"
)

// Title 回傳對帳單顯示用名稱（例如 "Deposit"）。
func (k Kind) Title() string {
	switch k {
	case KindDeposit:
		return "Deposit"
	case KindWithdrawal:
		return "Withdrawal"
	default:
		return string(k)
	}
}

// Client represents a registered bank client.
type Client struct {
	TaxID     string `json:"tax_id"`
	Name      string `json:"name"`
	BirthDate string `json:"birth_date"`
	Address   string `json:"address"`
}

// Account represents a bank account held at a branch.
type Account struct {
	Branch     string          `json:"branch"`
	Number     int             `json:"number"`
	Type       string          `json:"type"`
	OwnerTaxID string          `json:"owner_tax_id"`
	Balance    decimal.Decimal `json:"balance"`
}

// Key 回傳帳戶的 (分行, 帳號) 識別。
func (a Account) Key() AccountKey {
	return AccountKey{Branch: a.Branch, Number: a.Number}
}

// AccountKey 以分行代碼與帳號唯一識別一個帳戶。
type AccountKey struct {
	Branch string `json:"branch"`
	Number int    `json:"number"`
}

// Branch 為預先設定的分行；NextAccountNumber 只增不減。
type Branch struct {
	Code              string `json:"code"`
	NextAccountNumber int    `json:"next_account_number"`
}

// AccountType 為唯讀的帳戶類型設定。
//   - DailyWithdrawalLimit：提款次數上限（實際為帳戶終身累計次數，不會每日歸零）
//   - PerWithdrawalCeiling：單筆提款金額上限
type AccountType struct {
	DailyWithdrawalLimit int             `json:"daily_withdrawal_limit" validate:"gte=0"`
	PerWithdrawalCeiling decimal.Decimal `json:"per_withdrawal_ceiling" validate:"positive_decimal"`
}

// Transaction represents an immutable ledger movement.
// CreatedAt 僅供顯示，不參與任何規則判斷。
type Transaction struct {
	ID            string          `json:"id"`
	Branch        string          `json:"branch"`
	AccountNumber int             `json:"account_number"`
	Kind          Kind            `json:"kind"`
	Amount        decimal.Decimal `json:"amount"`
	CreatedAt     time.Time       `json:"created_at"`
}
