// cmd/bank/main.go

// 本程式為單一行程的銀行帳務模擬器，提供文字選單進行註冊、開戶、存提款與對帳單。
// 此檔案負責初始化模組（config, logging, storage, bank, menu），並啟動選單迴圈。
// 所有狀態皆在記憶體中，結束即消失。

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"banksim/internal/bank"
	"banksim/internal/config"
	"banksim/internal/logging"
	"banksim/internal/menu"
	"banksim/internal/storage"
)

func main() {
	os.Exit(run(os.Stdin, os.Stdout))
}

// run 回傳行程結束碼；所有 defer（含 logger.Sync）在 os.Exit 之前執行。
func run(in io.Reader, out io.Writer) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	logger, err := logging.New(cfg.Environment, cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer func() { _ = logger.Sync() }()

	// 建立記錄儲存層（預先開設設定中的分行）並注入銀行核心
	store := storage.New(cfg.Branches...)
	b := bank.New(store, cfg.AccountTypes, logger.Named("bank"))

	m := menu.New(b, in, out, menu.Options{
		Branch:      cfg.DefaultBranch,
		AccountType: cfg.DefaultAccountType,
	}, logger.Named("menu"))

	// SIGINT/SIGTERM 取消 ctx；選單在兩次輸入之間檢查 ctx。
	// 若選單正阻塞於讀取輸入，則由背景 goroutine 直接結束行程。
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	finished := make(chan struct{})
	defer close(finished)
	go func() {
		select {
		case <-ctx.Done():
			logger.Info("banking system interrupted")
			_ = logger.Sync()
			os.Exit(0)
		case <-finished:
		}
	}()

	logger.Info("banking system started", zap.Strings("branches", cfg.Branches))
	if err := m.Run(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Info("banking system interrupted")
			return 0
		}
		logger.Error("menu stopped", zap.Error(err))
		return 1
	}
	return 0
}
