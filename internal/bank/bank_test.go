// internal/bank/bank_test.go
//
// 本檔為 Bank 模組的單元測試。
// 覆蓋：客戶註冊、開戶、存提款、提款次數與單筆上限、對帳單、並行一致性。
// 所有測試皆為 in-memory 執行，不依賴外部服務。

package bank

import (
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"banksim/internal/storage"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func standardTypes() map[string]AccountType {
	return map[string]AccountType{
		StandardAccountType: {DailyWithdrawalLimit: 3, PerWithdrawalCeiling: dec("500.00")},
	}
}

func newBank(t *testing.T) *Bank {
	t.Helper()
	return New(storage.New("0001"), standardTypes(), nil)
}

// openWithBalance 為小工具：註冊客戶、開戶並存入初始金額。
func openWithBalance(t *testing.T, b *Bank, taxID string, balance string) AccountKey {
	t.Helper()
	if _, ok := b.store.FindClient(taxID); !ok {
		_, err := b.RegisterClient(taxID, "Client "+taxID, "1990-01-01", "Street 1")
		require.NoError(t, err)
	}
	key, _, err := b.OpenAccount(taxID, "0001", StandardAccountType)
	require.NoError(t, err)
	if balance != "0" {
		_, err = b.Deposit(key, dec(balance))
		require.NoError(t, err)
	}
	return key
}

func balance(t *testing.T, b *Bank, key AccountKey) decimal.Decimal {
	t.Helper()
	a, err := b.Account(key)
	require.NoError(t, err)
	return a.Balance
}

func TestRegisterClientDuplicate(t *testing.T) {
	b := newBank(t)

	msg, err := b.RegisterClient("12345678900", "Ana", "1990-01-01", "Rua A")
	require.NoError(t, err)
	assert.NotEmpty(t, msg)

	_, err = b.RegisterClient("12345678900", "Other", "2000-01-01", "Rua B")
	require.ErrorIs(t, err, ErrDuplicateClient)

	clients := b.Clients()
	require.Len(t, clients, 1)
	assert.Equal(t, "Ana", clients[0].Name)
}

// TestOpenAccountUnknownClient 未知客戶開戶失敗，且不變更分行計數器與帳戶集合。
func TestOpenAccountUnknownClient(t *testing.T) {
	b := newBank(t)

	_, _, err := b.OpenAccount("000", "0001", StandardAccountType)
	require.ErrorIs(t, err, ErrUnknownClient)

	assert.Empty(t, b.Accounts())
	br, _ := b.store.Branch("0001")
	assert.Equal(t, storage.FirstAccountNumber, br.NextAccountNumber)
}

func TestOpenAccountUnknownBranchAndType(t *testing.T) {
	b := newBank(t)
	_, err := b.RegisterClient("111", "Ana", "", "")
	require.NoError(t, err)

	_, _, err = b.OpenAccount("111", "9999", StandardAccountType)
	require.ErrorIs(t, err, ErrUnknownBranch)

	_, _, err = b.OpenAccount("111", "0001", "premium")
	require.ErrorIs(t, err, ErrUnknownAccountType)

	assert.Empty(t, b.Accounts())
	br, _ := b.store.Branch("0001")
	assert.Equal(t, storage.FirstAccountNumber, br.NextAccountNumber)
}

// TestOpenAccountSequentialNumbers 同分行帳號自 1 起嚴格遞增。
func TestOpenAccountSequentialNumbers(t *testing.T) {
	b := newBank(t)
	_, err := b.RegisterClient("111", "Ana", "", "")
	require.NoError(t, err)

	for want := 1; want <= 3; want++ {
		key, msg, err := b.OpenAccount("111", "0001", StandardAccountType)
		require.NoError(t, err)
		assert.Equal(t, want, key.Number)
		assert.Contains(t, msg, "created")
	}

	accts := b.Accounts()
	require.Len(t, accts, 3)
	for _, a := range accts {
		assert.True(t, a.Balance.IsZero())
		assert.Equal(t, "111", a.OwnerTaxID)
	}
}

func TestDepositAndStatement(t *testing.T) {
	b := newBank(t)
	key := openWithBalance(t, b, "111", "0")

	_, err := b.Deposit(key, dec("100.00"))
	require.NoError(t, err)

	lines, err := b.Statement(key)
	require.NoError(t, err)
	assert.Equal(t, []string{"Deposit: $100.00", "Balance: $100.00"}, lines)
}

func TestDepositInvalidAmount(t *testing.T) {
	b := newBank(t)
	key := openWithBalance(t, b, "111", "0")

	for _, amt := range []string{"0", "-5", "-0.01"} {
		_, err := b.Deposit(key, dec(amt))
		require.ErrorIs(t, err, ErrInvalidAmount, "amount=%s", amt)
	}
	txs, err := b.Transactions(key)
	require.NoError(t, err)
	assert.Empty(t, txs)
}

// TestWithdrawInvalidAmount 金額 <= 0 一律 ErrInvalidAmount，與餘額無關。
func TestWithdrawInvalidAmount(t *testing.T) {
	for _, bal := range []string{"0", "50", "1000"} {
		b := newBank(t)
		key := openWithBalance(t, b, "111", bal)

		for _, amt := range []string{"0", "-1", "-600"} {
			_, err := b.Withdraw(key, dec(amt))
			require.ErrorIs(t, err, ErrInvalidAmount, "balance=%s amount=%s", bal, amt)
		}
		assert.True(t, balance(t, b, key).Equal(dec(bal)))
	}
}

func TestWithdrawInsufficientFunds(t *testing.T) {
	b := newBank(t)
	key := openWithBalance(t, b, "111", "50")

	_, err := b.Withdraw(key, dec("50.01"))
	require.ErrorIs(t, err, ErrInsufficientFunds)
	assert.True(t, balance(t, b, key).Equal(dec("50")))
}

// TestWithdrawCeilingExceeded 超過單筆上限即失敗，即使餘額足夠。
func TestWithdrawCeilingExceeded(t *testing.T) {
	b := newBank(t)
	key := openWithBalance(t, b, "111", "1000")

	_, err := b.Withdraw(key, dec("600.00"))
	require.ErrorIs(t, err, ErrCeilingExceeded)

	_, err = b.Withdraw(key, dec("500.00"))
	require.NoError(t, err)
	assert.True(t, balance(t, b, key).Equal(dec("500")))
}

// TestWithdrawLimitAllowsLimitPlusOne 提款次數以「既有筆數 > 上限」判斷，
// 因此上限 3 時允許第 4 筆，第 5 筆才被拒絕。此邊界為刻意保留的行為。
func TestWithdrawLimitAllowsLimitPlusOne(t *testing.T) {
	b := newBank(t)
	key := openWithBalance(t, b, "111", "500.00")

	for i := 1; i <= 4; i++ {
		_, err := b.Withdraw(key, dec("100.00"))
		require.NoError(t, err, "withdrawal #%d", i)
		if i == 3 {
			assert.True(t, balance(t, b, key).Equal(dec("200.00")))
		}
	}
	assert.True(t, balance(t, b, key).Equal(dec("100.00")))

	_, err := b.Withdraw(key, dec("50.00"))
	require.ErrorIs(t, err, ErrDailyLimitExceeded)

	n, err := b.WithdrawalCount(key)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
}

// TestWithdrawLimitNeverResets 提款次數為帳戶累計值，存款不會重設計數。
func TestWithdrawLimitNeverResets(t *testing.T) {
	b := newBank(t)
	key := openWithBalance(t, b, "111", "1000")

	for i := 0; i < 4; i++ {
		_, err := b.Withdraw(key, dec("10"))
		require.NoError(t, err)
	}
	_, err := b.Deposit(key, dec("10"))
	require.NoError(t, err)

	_, err = b.Withdraw(key, dec("10"))
	require.ErrorIs(t, err, ErrDailyLimitExceeded)
}

// TestWithdrawValidationOrder 驗證檢核順序：餘額 → 次數 → 單筆上限 → 金額。
func TestWithdrawValidationOrder(t *testing.T) {
	b := newBank(t)
	key := openWithBalance(t, b, "111", "100")

	// 餘額不足且超過單筆上限時，先回報餘額不足
	_, err := b.Withdraw(key, dec("700"))
	require.ErrorIs(t, err, ErrInsufficientFunds)

	for i := 0; i < 4; i++ {
		_, err := b.Withdraw(key, dec("1"))
		require.NoError(t, err)
	}
	// 次數已滿時，非正金額回報次數上限而非金額錯誤
	_, err = b.Withdraw(key, dec("0"))
	require.ErrorIs(t, err, ErrDailyLimitExceeded)
}

// TestWithdrawLimitIsPerAccount 各帳戶的提款次數獨立計算。
func TestWithdrawLimitIsPerAccount(t *testing.T) {
	b := newBank(t)
	k1 := openWithBalance(t, b, "111", "100")
	k2 := openWithBalance(t, b, "111", "100")

	for i := 0; i < 4; i++ {
		_, err := b.Withdraw(k1, dec("1"))
		require.NoError(t, err)
	}
	_, err := b.Withdraw(k2, dec("1"))
	require.NoError(t, err)
}

func TestStatementNoMovements(t *testing.T) {
	b := newBank(t)
	key := openWithBalance(t, b, "111", "0")

	lines, err := b.Statement(key)
	require.NoError(t, err)
	assert.Equal(t, []string{NoMovementsLine, "Balance: $0.00"}, lines)
}

func TestStatementOrder(t *testing.T) {
	b := newBank(t)
	key := openWithBalance(t, b, "111", "0")

	_, _ = b.Deposit(key, dec("200"))
	_, _ = b.Withdraw(key, dec("50.5"))
	_, _ = b.Deposit(key, dec("0.25"))

	lines, err := b.Statement(key)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Deposit: $200.00",
		"Withdrawal: $50.50",
		"Deposit: $0.25",
		"Balance: $149.75",
	}, lines)
}

func TestUnknownAccount(t *testing.T) {
	b := newBank(t)
	missing := AccountKey{Branch: "0001", Number: 42}

	_, err := b.Deposit(missing, dec("1"))
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = b.Withdraw(missing, dec("1"))
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = b.Statement(missing)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = b.Account(missing)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = b.Transactions(missing)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = b.WithdrawalCount(missing)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTransactionsCarryIDs(t *testing.T) {
	b := newBank(t)
	key := openWithBalance(t, b, "111", "10")
	_, _ = b.Withdraw(key, dec("5"))

	txs, err := b.Transactions(key)
	require.NoError(t, err)
	require.Len(t, txs, 2)
	assert.NotEmpty(t, txs[0].ID)
	assert.NotEqual(t, txs[0].ID, txs[1].ID)
	assert.Equal(t, storage.KindDeposit, txs[0].Kind)
	assert.Equal(t, storage.KindWithdrawal, txs[1].Kind)
	assert.False(t, txs[1].CreatedAt.IsZero())
}

// TestRejectedOperationsAreLogged 被拒絕的操作以 Warn 等級記錄。
func TestRejectedOperationsAreLogged(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	b := New(storage.New("0001"), standardTypes(), zap.New(core))

	_, err := b.RegisterClient("111", "Ana", "", "")
	require.NoError(t, err)
	_, err = b.RegisterClient("111", "Ana", "", "")
	require.Error(t, err)

	warns := logs.FilterLevelExact(zapcore.WarnLevel).All()
	require.Len(t, warns, 1)
	assert.Equal(t, "register client rejected", warns[0].Message)
	assert.Equal(t, "111", warns[0].ContextMap()["tax_id"])
	assert.Equal(t, 1, logs.FilterMessage("client registered").Len())
}

// TestConcurrentDepositsRaceSafety 並行存款後餘額與交易筆數一致。
func TestConcurrentDepositsRaceSafety(t *testing.T) {
	b := newBank(t)
	key := openWithBalance(t, b, "111", "0")

	const workers = 100
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			if _, err := b.Deposit(key, dec("1.10")); err != nil {
				t.Errorf("deposit err: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.True(t, balance(t, b, key).Equal(dec("110.00")))
	txs, _ := b.Transactions(key)
	assert.Len(t, txs, workers)
}

// TestConcurrentWithdrawalsHonorLimit 並行提款仍只允許上限 + 1 筆成功。
func TestConcurrentWithdrawalsHonorLimit(t *testing.T) {
	b := newBank(t)
	key := openWithBalance(t, b, "111", "500")

	var (
		wg sync.WaitGroup
		mu sync.Mutex
		ok int
	)
	wg.Add(20)
	for i := 0; i < 20; i++ {
		go func() {
			defer wg.Done()
			if _, err := b.Withdraw(key, dec("1")); err == nil {
				mu.Lock()
				ok++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 4, ok)
	assert.True(t, balance(t, b, key).Equal(dec("496")))
}
