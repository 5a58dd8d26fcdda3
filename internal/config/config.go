// internal/config/config.go
//
// 啟動時載入的靜態設定：分行表、帳戶類型表、執行環境與日誌等級。
// 以 Default() 的內建值為基礎，再由環境變數覆寫，最後統一 Validate()。
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"banksim/internal/storage"
)

// 環境變數名稱。
const (
	EnvEnvironment = "BANK_ENV"
	EnvLogLevel    = "BANK_LOG_LEVEL"
	EnvBranches    = "BANK_BRANCHES"
)

// ErrInvalidConfig 代表設定未通過驗證。
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds the application configuration.
type Config struct {
	Environment        string                         `validate:"required,oneof=development test staging production"`
	LogLevel           string                         `validate:"required,oneof=debug info warn error"`
	Branches           []string                       `validate:"required,min=1,dive,required,numeric"`
	DefaultBranch      string                         `validate:"required"`
	AccountTypes       map[string]storage.AccountType `validate:"required,min=1,dive,keys,required,endkeys,required"`
	DefaultAccountType string                         `validate:"required"`
}

// Default 回傳內建設定：分行 "0001"，帳戶類型 standard（提款 3 次、單筆 500.00）。
func Default() *Config {
	return &Config{
		Environment:   "development",
		LogLevel:      "info",
		Branches:      []string{"0001"},
		DefaultBranch: "0001",
		AccountTypes: map[string]storage.AccountType{
			"standard": {
				DailyWithdrawalLimit: 3,
				PerWithdrawalCeiling: decimal.RequireFromString("500.00"),
			},
		},
		DefaultAccountType: "standard",
	}
}

// Load loads configuration from defaults and environment variables.
func Load() (*Config, error) {
	cfg := Default()

	if v := os.Getenv(EnvEnvironment); v != "" {
		cfg.Environment = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	if v := os.Getenv(EnvBranches); v != "" {
		cfg.Branches = splitList(v)
		if len(cfg.Branches) > 0 {
			cfg.DefaultBranch = cfg.Branches[0]
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	vld, err := getValidator()
	if err != nil {
		return err
	}
	if err := vld.Struct(c); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if !slices.Contains(c.Branches, c.DefaultBranch) {
		return fmt.Errorf("%w: default branch %q is not provisioned", ErrInvalidConfig, c.DefaultBranch)
	}
	if _, ok := c.AccountTypes[c.DefaultAccountType]; !ok {
		return fmt.Errorf("%w: default account type %q is not configured", ErrInvalidConfig, c.DefaultAccountType)
	}
	return nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" && !slices.Contains(out, p) {
			out = append(out, p)
		}
	}
	return out
}
