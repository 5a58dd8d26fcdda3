// internal/bank/bank.go

// Package bank 定義核心商業邏輯：客戶註冊、開戶、存款、提款與對帳單。
// 採用單一互斥鎖 (sync.Mutex) 保障所有狀態變更「原子且序列化」。
// 金額一律使用 decimal.Decimal，避免浮點誤差。
package bank

import (
	"fmt"
	"maps"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"banksim/internal/storage"
)

// Bank 為聚合根 (Aggregate Root)：
// - mu：序列化所有讀寫。
// - store：唯一資料來源，由呼叫端建立後注入（無全域狀態）。
// - types：帳戶類型設定表（唯讀）。
type Bank struct {
	mu    sync.Mutex
	store *storage.Store
	types map[string]AccountType
	log   *zap.Logger
	now   func() time.Time
}

// New 建立銀行實例。logger 可為 nil。
func New(store *storage.Store, types map[string]AccountType, logger *zap.Logger) *Bank {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Bank{
		store: store,
		types: maps.Clone(types),
		log:   logger,
		now:   time.Now,
	}
}

// RegisterClient 註冊新客戶；稅號重複時回傳 ErrDuplicateClient。
func (b *Bank) RegisterClient(taxID, name, birthDate, address string) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.store.FindClient(taxID); ok {
		b.reject("register client", ErrDuplicateClient, zap.String("tax_id", taxID))
		return "", ErrDuplicateClient
	}

	b.store.AddClient(Client{TaxID: taxID, Name: name, BirthDate: birthDate, Address: address})
	b.log.Info("client registered", zap.String("tax_id", taxID))
	return "Client registered successfully.", nil
}

// OpenAccount 為既有客戶於指定分行開立帳戶。
// 檢核順序：客戶 → 分行 → 帳戶類型；任何失敗皆不改變分行計數器與帳戶集合。
func (b *Bank) OpenAccount(taxID, branchCode, accountType string) (AccountKey, string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	fields := []zap.Field{zap.String("tax_id", taxID), zap.String("branch", branchCode), zap.String("type", accountType)}

	if _, ok := b.store.FindClient(taxID); !ok {
		b.reject("open account", ErrUnknownClient, fields...)
		return AccountKey{}, "", ErrUnknownClient
	}
	branch, ok := b.store.Branch(branchCode)
	if !ok {
		err := fmt.Errorf("%w: %q", ErrUnknownBranch, branchCode)
		b.reject("open account", err, fields...)
		return AccountKey{}, "", err
	}
	if _, ok := b.types[accountType]; !ok {
		err := fmt.Errorf("%w: %q", ErrUnknownAccountType, accountType)
		b.reject("open account", err, fields...)
		return AccountKey{}, "", err
	}

	a := &Account{
		Branch:     branchCode,
		Number:     branch.NextAccountNumber,
		Type:       accountType,
		OwnerTaxID: taxID,
		Balance:    decimal.Zero,
	}
	b.store.AddAccount(a)
	branch.NextAccountNumber++

	b.log.Info("account opened", append(fields, zap.Int("account", a.Number))...)
	return a.Key(), fmt.Sprintf("Account %s/%d created successfully.", a.Branch, a.Number), nil
}

// Deposit 存款：金額需 > 0。
// 於臨界區內同時更新餘額與追加交易，確保兩者一致。
func (b *Bank) Deposit(key AccountKey, amount decimal.Decimal) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	fields := opFields(key, amount)

	if !amount.IsPositive() {
		b.reject("deposit", ErrInvalidAmount, fields...)
		return "", ErrInvalidAmount
	}
	a, ok := b.store.FindAccount(key.Branch, key.Number)
	if !ok {
		b.reject("deposit", ErrNotFound, fields...)
		return "", ErrNotFound
	}

	a.Balance = a.Balance.Add(amount)
	b.record(a, storage.KindDeposit, amount)

	b.log.Info("deposit completed", fields...)
	return "Deposit completed successfully.", nil
}

// Withdraw 提款。檢核順序固定如下，不可調換：
//  1. 餘額 < 金額 → ErrInsufficientFunds
//  2. 既有提款筆數 > 上限 → ErrDailyLimitExceeded（以 > 比較，故允許上限 + 1 次）
//  3. 金額 > 單筆上限 → ErrCeilingExceeded
//  4. 金額 <= 0 → ErrInvalidAmount
//
// 提款筆數為帳戶累計值，沒有任何日期歸零機制。
func (b *Bank) Withdraw(key AccountKey, amount decimal.Decimal) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	fields := opFields(key, amount)

	a, ok := b.store.FindAccount(key.Branch, key.Number)
	if !ok {
		b.reject("withdraw", ErrNotFound, fields...)
		return "", ErrNotFound
	}
	typ, ok := b.types[a.Type]
	if !ok {
		err := fmt.Errorf("%w: %q", ErrUnknownAccountType, a.Type)
		b.reject("withdraw", err, fields...)
		return "", err
	}

	var err error
	switch {
	case a.Balance.LessThan(amount):
		err = fmt.Errorf("%w: balance %s", ErrInsufficientFunds, money(a.Balance))
	case b.withdrawals(a) > typ.DailyWithdrawalLimit:
		err = fmt.Errorf("%w: at most %d withdrawals allowed, come back tomorrow", ErrDailyLimitExceeded, typ.DailyWithdrawalLimit)
	case amount.GreaterThan(typ.PerWithdrawalCeiling):
		err = fmt.Errorf("%w: your limit is %s", ErrCeilingExceeded, money(typ.PerWithdrawalCeiling))
	case !amount.IsPositive():
		err = ErrInvalidAmount
	}
	if err != nil {
		b.reject("withdraw", err, fields...)
		return "", err
	}

	a.Balance = a.Balance.Sub(amount)
	b.record(a, storage.KindWithdrawal, amount)

	b.log.Info("withdrawal completed", fields...)
	return "Withdrawal completed successfully.", nil
}

// Account 依 key 取得帳戶的目前快照；不存在回傳 ErrNotFound。
func (b *Bank) Account(key AccountKey) (Account, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	a, ok := b.store.FindAccount(key.Branch, key.Number)
	if !ok {
		return Account{}, ErrNotFound
	}
	return *a, nil
}

// Accounts 回傳所有帳戶的拷貝（依開戶順序）。
func (b *Bank) Accounts() []Account {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.store.Accounts()
}

// Clients 回傳所有客戶的拷貝（依註冊順序）。
func (b *Bank) Clients() []Client {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.store.Clients()
}

// Transactions 回傳指定帳戶的交易（插入順序）。
func (b *Bank) Transactions(key AccountKey) ([]Transaction, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.store.FindAccount(key.Branch, key.Number); !ok {
		return nil, ErrNotFound
	}
	return b.store.TransactionsFor(key.Branch, key.Number), nil
}

// WithdrawalCount 回傳提款上限規則所使用的累計提款筆數。
func (b *Bank) WithdrawalCount(key AccountKey) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	a, ok := b.store.FindAccount(key.Branch, key.Number)
	if !ok {
		return 0, ErrNotFound
	}
	return b.withdrawals(a), nil
}

// withdrawals 計算帳戶既有的提款交易筆數；呼叫端須持有 mu。
func (b *Bank) withdrawals(a *Account) int {
	txs := b.store.TransactionsFor(a.Branch, a.Number)
	return len(storage.Filter(txs, storage.Where(func(t Transaction) storage.Kind { return t.Kind }, storage.KindWithdrawal)))
}

// record 追加一筆交易；呼叫端須持有 mu。
func (b *Bank) record(a *Account, kind storage.Kind, amount decimal.Decimal) {
	b.store.AddTransaction(Transaction{
		ID:            uuid.New().String(),
		Branch:        a.Branch,
		AccountNumber: a.Number,
		Kind:          kind,
		Amount:        amount,
		CreatedAt:     b.now(),
	})
}

func (b *Bank) reject(op string, err error, fields ...zap.Field) {
	b.log.Warn(op+" rejected", append(fields, zap.Error(err))...)
}

func opFields(key AccountKey, amount decimal.Decimal) []zap.Field {
	return []zap.Field{
		zap.String("branch", key.Branch),
		zap.Int("account", key.Number),
		zap.String("amount", amount.StringFixed(2)),
	}
}
