// Package bank 定義核心領域模型與業務規則。
// 本檔將 storage 的記錄型別曝露為 bank 的型別，讓上層只需依賴 bank。

package bank

import "banksim/internal/storage"

type (
	// Client is a registered client (alias of storage.Client).
	Client = storage.Client
	// Account is a bank account (alias of storage.Account).
	Account = storage.Account
	// AccountKey identifies an account by branch and number.
	AccountKey = storage.AccountKey
	// AccountType is the read-only withdrawal policy of an account.
	AccountType = storage.AccountType
	// Transaction is an immutable ledger movement.
	Transaction = storage.Transaction
)

// StandardAccountType 為目前唯一的帳戶類型名稱。
const StandardAccountType = "standard"
