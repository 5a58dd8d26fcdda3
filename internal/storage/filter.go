// internal/storage/filter.go
//
// 泛型查詢工具：以一組述詞 (predicate) 過濾任意記錄集合。
// 所有查找（依稅號找客戶、依分行+帳號找帳戶、找帳戶交易）都建立在 Filter 之上。
package storage

// Predicate 判斷一筆記錄是否符合條件。
type Predicate[T any] func(T) bool

// Where 以欄位存取函式與期望值建立「完全相等」述詞。
func Where[T any, V comparable](field func(T) V, want V) Predicate[T] {
	return func(item T) bool {
		return field(item) == want
	}
}

// Filter 回傳所有符合「全部」述詞的記錄，保留原始順序。
// 未提供任何述詞時，視為全部符合（空集合的 AND 為真）。
// 不修改輸入切片。
func Filter[T any](items []T, preds ...Predicate[T]) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if matchAll(item, preds) {
			out = append(out, item)
		}
	}
	return out
}

// First 回傳第一筆符合的記錄；找不到時 ok 為 false。
func First[T any](items []T, preds ...Predicate[T]) (T, bool) {
	for _, item := range items {
		if matchAll(item, preds) {
			return item, true
		}
	}
	var zero T
	return zero, false
}

func matchAll[T any](item T, preds []Predicate[T]) bool {
	for _, p := range preds {
		if !p(item) {
			return false
		}
	}
	return true
}
