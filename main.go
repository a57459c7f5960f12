/*
 * @Description:
 * @Author: 安知鱼
 * @Date: 2025-06-28 00:21:55
 * @LastEditTime: 2026-09-20 11:30:16
 * @LastEditors: 安知鱼
 */
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/anzhiyu-c/mysite/cmd/server"
	"github.com/anzhiyu-c/mysite/internal/pkg/logger"
	"github.com/anzhiyu-c/mysite/pkg/config"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", config.DefaultPath, "配置文件路径")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, cleanup, err := server.NewApp(ctx, configPath)
	if err != nil {
		logger.Log.WithError(err).Fatal("应用初始化失败")
	}
	defer cleanup()

	app.PrintBanner()

	if err := app.Run(ctx); err != nil {
		logger.Log.WithError(err).Error("应用运行失败")
		cleanup()
		os.Exit(1)
	}
}
