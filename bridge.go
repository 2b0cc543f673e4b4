package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/zeromicro/go-zero/core/logx"

	"capsule-bridge/internal/cli"
	"capsule-bridge/internal/config"
	"capsule-bridge/internal/mcpserver"
	"capsule-bridge/internal/svc"
)

var configFile = flag.String("f", "etc/bridge.yaml", "the config file")

func main() {
	flag.Parse()

	cfg := config.MustLoad(*configFile)
	// stdout carries the MCP stream, so logs go to stderr.
	logx.Must(cli.SetupLogging(cfg, os.Stderr))
	cli.LogConfigSummary(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sc := svc.MustNewServiceContext(*cfg)
	server, err := mcpserver.New(sc)
	logx.Must(err)

	logx.Infof("Starting MCP server %s on stdio...", cfg.Name)
	if err := server.Serve(ctx); err != nil {
		logx.Errorf("server stopped: %v", err)
		logx.Close()
		os.Exit(1)
	}
	logx.Info("server stopped")
	logx.Close()
}
