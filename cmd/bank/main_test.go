// cmd/bank/main_test.go
//
// 以字串輸入執行整個行程流程，驗證結束碼。
package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunQuitReturnsZero(t *testing.T) {
	t.Setenv("BANK_ENV", "test")
	t.Setenv("BANK_LOG_LEVEL", "error")

	var out bytes.Buffer
	code := run(strings.NewReader("U\n111\nAna\n\n\nQ\n"), &out)

	assert.Equal(t, 0, code)
	assert.Contains(t, out.String(), "Client registered successfully.")
	assert.Contains(t, out.String(), "Leaving the banking system.")
}

func TestRunConfigErrorReturnsOne(t *testing.T) {
	t.Setenv("BANK_LOG_LEVEL", "loud")

	var out bytes.Buffer
	assert.Equal(t, 1, run(strings.NewReader("Q\n"), &out))
	assert.Empty(t, out.String())
}

// TestRunInputErrorReturnsOne 讀取失敗時結束碼為 1（logger 於 run 返回前 flush）。
func TestRunInputErrorReturnsOne(t *testing.T) {
	t.Setenv("BANK_LOG_LEVEL", "error")

	var out bytes.Buffer
	assert.Equal(t, 1, run(failingReader{}, &out))
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, assert.AnError }
