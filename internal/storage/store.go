// internal/storage/store.go
//
// Store 為全系統唯一的資料來源：依插入順序保存客戶、帳戶與交易，並持有分行表。
// 本層不做任何同步或規則檢查；呼叫端（bank.Bank）須在自己的臨界區內使用。
package storage

// FirstAccountNumber 為每個分行第一個帳號。
const FirstAccountNumber = 1

// Store 保存三個有序集合與分行表。
type Store struct {
	clients      []Client
	accounts     []*Account
	transactions []Transaction
	branches     map[string]*Branch
}

// New 建立空白 Store，並預先開設指定分行（帳號自 FirstAccountNumber 起算）。
func New(branchCodes ...string) *Store {
	s := &Store{branches: make(map[string]*Branch, len(branchCodes))}
	for _, code := range branchCodes {
		s.branches[code] = &Branch{Code: code, NextAccountNumber: FirstAccountNumber}
	}
	return s
}

// AddClient 追加客戶記錄。唯一性由呼叫端檢查。
func (s *Store) AddClient(c Client) {
	s.clients = append(s.clients, c)
}

// FindClient 依稅號回傳第一筆符合的客戶。
func (s *Store) FindClient(taxID string) (Client, bool) {
	return First(s.clients, Where(func(c Client) string { return c.TaxID }, taxID))
}

// Clients 回傳客戶集合的拷貝。
func (s *Store) Clients() []Client {
	out := make([]Client, len(s.clients))
	copy(out, s.clients)
	return out
}

// Branch 依代碼取得分行；回傳內部指標，僅供 bank 遞增帳號計數器。
func (s *Store) Branch(code string) (*Branch, bool) {
	b, ok := s.branches[code]
	return b, ok
}

// AddAccount 追加帳戶記錄。
func (s *Store) AddAccount(a *Account) {
	s.accounts = append(s.accounts, a)
}

// FindAccount 依 (分行, 帳號) 回傳第一筆符合的帳戶內部指標。
func (s *Store) FindAccount(branch string, number int) (*Account, bool) {
	return First(s.accounts,
		Where(func(a *Account) string { return a.Branch }, branch),
		Where(func(a *Account) int { return a.Number }, number),
	)
}

// Accounts 回傳所有帳戶的值拷貝（依開戶順序）。
func (s *Store) Accounts() []Account {
	out := make([]Account, 0, len(s.accounts))
	for _, a := range s.accounts {
		out = append(out, *a)
	}
	return out
}

// AddTransaction 追加交易記錄；交易一經寫入即不可變更。
func (s *Store) AddTransaction(t Transaction) {
	s.transactions = append(s.transactions, t)
}

// TransactionsFor 回傳指定帳戶的所有交易，保留插入順序。
func (s *Store) TransactionsFor(branch string, number int) []Transaction {
	return Filter(s.transactions,
		Where(func(t Transaction) string { return t.Branch }, branch),
		Where(func(t Transaction) int { return t.AccountNumber }, number),
	)
}
