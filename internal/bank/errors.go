// internal/bank/errors.go
//
// 本檔集中定義「領域錯誤（domain errors）」。
// 所有錯誤皆可恢復、僅影響單次操作；上層（menu）直接輸出 err.Error() 給使用者。
// 操作會以 fmt.Errorf("%w: ...") 包裝附加細節，呼叫端一律以 errors.Is 判斷種類。

package bank

import "errors"

var (
	// ErrDuplicateClient 代表已存在相同稅號的客戶。
	ErrDuplicateClient = errors.New("a client with this tax id is already registered")

	// ErrUnknownClient 代表稅號不屬於任何客戶。
	ErrUnknownClient = errors.New("the tax id does not belong to any client")

	// ErrUnknownBranch 代表分行未開設。
	ErrUnknownBranch = errors.New("branch does not exist")

	// ErrUnknownAccountType 代表帳戶類型不在設定表中。
	ErrUnknownAccountType = errors.New("account type does not exist")

	// ErrInvalidAmount 代表金額 <= 0。
	ErrInvalidAmount = errors.New("amount must be greater than 0.00")

	// ErrInsufficientFunds 代表餘額不足以提款。
	ErrInsufficientFunds = errors.New("insufficient balance for withdrawal")

	// ErrDailyLimitExceeded 代表提款次數已達帳戶類型上限。
	ErrDailyLimitExceeded = errors.New("withdrawal limit reached")

	// ErrCeilingExceeded 代表單筆提款超過帳戶類型上限。
	ErrCeilingExceeded = errors.New("withdrawal exceeds the per-withdrawal ceiling")

	// ErrNotFound 代表查無帳戶。
	ErrNotFound = errors.New("account not found")
)
