// internal/menu/commands.go
//
// 本檔負責選單代碼與 handler 的對應。
// 與 menu.go 分離：menu.go 定義「如何處理操作」，本檔定義「代碼如何被導向」。
package menu

import "fmt"

const quitCode = "Q"

type command struct {
	code        string
	description string
	run         func() error
}

// routes 建立選單代碼表；順序即顯示順序。
func (m *Menu) routes() []command {
	return []command{
		{code: "U", description: "Register client", run: m.registerClient},
		{code: "C", description: "Create account", run: m.openAccount},
		{code: "D", description: "Deposit", run: m.deposit},
		{code: "S", description: "Withdraw", run: m.withdraw},
		{code: "E", description: "Statement", run: m.statement},
	}
}

func (m *Menu) lookup(code string) (command, bool) {
	for _, c := range m.commands {
		if c.code == code {
			return c, true
		}
	}
	return command{}, false
}

func (m *Menu) printMenu() {
	fmt.Fprintln(m.out)
	fmt.Fprintln(m.out, "################")
	fmt.Fprintln(m.out, "## OPERATIONS ##")
	for _, c := range m.commands {
		fmt.Fprintf(m.out, "[%s] %s\n", c.code, c.description)
	}
	fmt.Fprintf(m.out, "[%s] Quit\n", quitCode)
}
