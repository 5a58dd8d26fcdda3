// internal/menu/menu.go
//
// Package menu
// ─────────────────────────────────────────────
// 提供文字選單介面，作為 bank 模組的表現層 (Presentation Layer)。
// 每個 handler 僅負責：
//  1. 讀取並驗證使用者輸入（格式錯誤時重新提示）
//  2. 呼叫 bank 層執行商業邏輯
//  3. 輸出結果訊息或錯誤訊息
//
// 本層不做任何業務判斷；餘額、上限等規則完全由 bank 決定。
package menu

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"banksim/internal/bank"
)

// Options 為開戶時使用的預設分行與帳戶類型。
type Options struct {
	Branch      string
	AccountType string
}

// Menu 為選單核心結構：
// - bank：注入商業邏輯層。
// - in/out：輸入與輸出來源，測試時可替換為字串。
type Menu struct {
	bank     *bank.Bank
	opts     Options
	in       *lineScanner
	out      io.Writer
	log      *zap.Logger
	validate *validator.Validate
	commands []command
}

// maxLineSize 為單行輸入（含換行）的上限；超過時該行被丟棄並重新提示。
const maxLineSize = 1 << 20

// New 建立選單。logger 可為 nil。
func New(b *bank.Bank, in io.Reader, out io.Writer, opts Options, logger *zap.Logger) *Menu {
	if logger == nil {
		logger = zap.NewNop()
	}
	m := &Menu{
		bank:     b,
		opts:     opts,
		in:       newLineScanner(in),
		out:      out,
		log:      logger,
		validate: validator.New(),
	}
	m.commands = m.routes()
	return m
}

// Run 執行選單迴圈，直到使用者選擇離開、輸入結束或 ctx 被取消。
// 輸入結束 (EOF) 視為正常離開。
func (m *Menu) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		m.printMenu()

		code, err := m.readLine("Enter the operation code: ")
		if err != nil {
			return ignoreEOF(err)
		}
		code = strings.ToUpper(strings.TrimSpace(code))
		fmt.Fprintln(m.out)

		if code == quitCode {
			fmt.Fprintln(m.out, "Leaving the banking system.")
			return nil
		}
		cmd, ok := m.lookup(code)
		if !ok {
			fmt.Fprintln(m.out, "Invalid operation, try again.")
			continue
		}

		m.log.Debug("command selected", zap.String("code", code))
		if err := cmd.run(); err != nil {
			return ignoreEOF(err)
		}
	}
}

// registerClient 處理 [U]：逐欄讀取客戶資料並註冊。
func (m *Menu) registerClient() error {
	fmt.Fprintln(m.out, "## REGISTER CLIENT ##")

	taxID, err := m.readValid("Tax ID (digits only): ", "required,numeric")
	if err != nil {
		return err
	}
	name, err := m.readValid("Name: ", "required")
	if err != nil {
		return err
	}
	birthDate, err := m.readLine("Birth date: ")
	if err != nil {
		return err
	}
	address, err := m.readLine("Address: ")
	if err != nil {
		return err
	}

	msg, opErr := m.bank.RegisterClient(taxID, strings.TrimSpace(name), strings.TrimSpace(birthDate), strings.TrimSpace(address))
	m.writeResult(msg, opErr)
	return nil
}

// openAccount 處理 [C]：選擇客戶後於預設分行開立預設類型帳戶。
func (m *Menu) openAccount() error {
	fmt.Fprintln(m.out, "## CREATE ACCOUNT ##")

	clients := m.bank.Clients()
	if len(clients) == 0 {
		m.writeErr(errNoClients)
		return nil
	}

	fmt.Fprintln(m.out, "Link the new account to a client, choose one from the list")
	for i, c := range clients {
		fmt.Fprintf(m.out, "[%d]: %s\n", i+1, c.Name)
	}
	i, err := m.readIndex("Select client: ", len(clients))
	if err != nil {
		return err
	}

	_, msg, opErr := m.bank.OpenAccount(clients[i].TaxID, m.opts.Branch, m.opts.AccountType)
	m.writeResult(msg, opErr)
	return nil
}

// deposit 處理 [D]。
func (m *Menu) deposit() error {
	fmt.Fprintln(m.out, "## DEPOSIT ##")

	acct, ok, err := m.selectAccount()
	if err != nil || !ok {
		return err
	}
	amount, err := m.readAmount("deposit")
	if err != nil {
		return err
	}

	msg, opErr := m.bank.Deposit(acct.Key(), amount)
	m.writeResult(msg, opErr)
	return nil
}

// withdraw 處理 [S]。
func (m *Menu) withdraw() error {
	fmt.Fprintln(m.out, "## WITHDRAW ##")

	acct, ok, err := m.selectAccount()
	if err != nil || !ok {
		return err
	}
	n, err := m.bank.WithdrawalCount(acct.Key())
	if err != nil {
		m.writeErr(err)
		return nil
	}
	fmt.Fprintf(m.out, "Balance: %s | Withdrawals made: %d\n", formatMoney(acct.Balance), n)

	amount, err := m.readAmount("withdrawal")
	if err != nil {
		return err
	}

	msg, opErr := m.bank.Withdraw(acct.Key(), amount)
	m.writeResult(msg, opErr)
	return nil
}

// statement 處理 [E]。
func (m *Menu) statement() error {
	fmt.Fprintln(m.out, "## STATEMENT ##")

	acct, ok, err := m.selectAccount()
	if err != nil || !ok {
		return err
	}
	lines, opErr := m.bank.Statement(acct.Key())
	if opErr != nil {
		m.writeErr(opErr)
		return nil
	}
	m.writeStatement(lines)
	return nil
}

// selectAccount 列出帳戶並讀取選擇；無客戶或無帳戶時輸出訊息並回傳 ok=false。
func (m *Menu) selectAccount() (bank.Account, bool, error) {
	if len(m.bank.Clients()) == 0 {
		m.writeErr(errNoClients)
		return bank.Account{}, false, nil
	}
	accounts := m.bank.Accounts()
	if len(accounts) == 0 {
		m.writeErr(errNoAccounts)
		return bank.Account{}, false, nil
	}

	fmt.Fprintln(m.out, "Select the account")
	for i, a := range accounts {
		fmt.Fprintf(m.out, "[%d]: %s/%d\n", i+1, a.Branch, a.Number)
	}
	i, err := m.readIndex("Select account: ", len(accounts))
	if err != nil {
		return bank.Account{}, false, err
	}
	return accounts[i], true, nil
}

// readLine 輸出提示並讀取一行；輸入結束時回傳 io.EOF。
// 過長的行不中斷選單，回傳空字串交由呼叫端驗證（通常會重新提示）。
func (m *Menu) readLine(prompt string) (string, error) {
	fmt.Fprint(m.out, prompt)
	if !m.in.Scan() {
		if err := m.in.Err(); err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		return "", io.EOF
	}
	if m.in.tooLong {
		m.in.tooLong = false
		m.log.Warn("input line too long, discarded", zap.Int("limit", maxLineSize))
		fmt.Fprintln(m.out, "Input too long.")
		return "", nil
	}
	return m.in.Text(), nil
}

// readValid 重複提示直到輸入通過 validator 規則。
func (m *Menu) readValid(prompt, tag string) (string, error) {
	for {
		line, err := m.readLine(prompt)
		if err != nil {
			return "", err
		}
		line = strings.TrimSpace(line)
		if err := m.validate.Var(line, tag); err != nil {
			fmt.Fprintln(m.out, "Invalid value, try again.")
			continue
		}
		return line, nil
	}
}

// readIndex 讀取 1..n 的選項，回傳 0 起算的索引。
func (m *Menu) readIndex(prompt string, n int) (int, error) {
	for {
		line, err := m.readLine(prompt)
		if err != nil {
			return 0, err
		}
		i, convErr := strconv.Atoi(strings.TrimSpace(line))
		if convErr != nil || i <= 0 || i > n {
			fmt.Fprintln(m.out, "Invalid.")
			continue
		}
		return i - 1, nil
	}
}

// readAmount 重複提示直到輸入為大於 0 的金額（接受逗號作為小數點）。
func (m *Menu) readAmount(what string) (decimal.Decimal, error) {
	for {
		line, err := m.readLine("Amount: $ ")
		if err != nil {
			return decimal.Zero, err
		}
		amount, parseErr := decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(line), ",", "."))
		if parseErr != nil || !amount.IsPositive() {
			fmt.Fprintf(m.out, "The %s amount must be greater than $0.00\n", what)
			continue
		}
		return amount, nil
	}
}

// lineScanner 一次讀取一行；超過 maxLineSize 的行整行丟棄並標記 tooLong，
// 不會像 bufio.ScanLines 那樣以 bufio.ErrTooLong 結束讀取。
type lineScanner struct {
	*bufio.Scanner
	tooLong    bool
	discarding bool
}

func newLineScanner(in io.Reader) *lineScanner {
	ls := &lineScanner{Scanner: bufio.NewScanner(in)}
	ls.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	ls.Split(ls.split)
	return ls
}

func (ls *lineScanner) split(data []byte, atEOF bool) (int, []byte, error) {
	if ls.discarding {
		if i := bytes.IndexByte(data, '\n'); i >= 0 {
			ls.discarding, ls.tooLong = false, true
			return i + 1, []byte{}, nil
		}
		if atEOF {
			ls.discarding, ls.tooLong = false, true
			return len(data), []byte{}, nil
		}
		return len(data), nil, nil
	}

	advance, token, err := bufio.ScanLines(data, atEOF)
	if advance == 0 && token == nil && err == nil && len(data) >= maxLineSize {
		// 緩衝區已滿仍無換行
		ls.discarding = true
		return len(data), nil, nil
	}
	return advance, token, err
}

func ignoreEOF(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
