package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/0muji4/symbolnav/internal/app"
	"github.com/0muji4/symbolnav/internal/config"
	"github.com/0muji4/symbolnav/internal/server"
	"github.com/0muji4/symbolnav/internal/workspace"
)

func main() {
	configPath := flag.String("config", os.Getenv("SYMNAV_CONFIG"), "path to the YAML config file")
	root := flag.String("root", ".", "project root passed to the language server")
	flag.Parse()

	// --- 設定の読み込み ---
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	// stdout は MCP プロトコル専用なので、ログとターミナル出力は stderr に流します
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	// --- DI: Adapter 層の組み立て ---
	a, err := app.New(cfg, *root, app.IO{
		Terminal: os.Stderr,
		Scratch:  io.Discard,
		Notify:   io.Discard,
	}, logger)
	if err != nil {
		log.Fatal(err)
	}
	defer a.Close()

	reader, err := workspace.NewFSReader(*root)
	if err != nil {
		log.Fatal(err)
	}
	s := server.New(server.NewToolHandler(a.Dispatcher, reader))

	// --- Framework: MCP stdio サーバーの起動 ---
	fmt.Fprintln(os.Stderr, "symbolnav MCP server starting...")
	if err := mcpserver.ServeStdio(s); err != nil {
		logger.Error("server error", "err", err)
		a.Close()
		os.Exit(1)
	}
}
