package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/0muji4/symbolnav/internal/editor"
)

func main() {
	if len(os.Args) < 3 {
		fmt.Fprintln(os.Stderr, "Usage: symnav-client <tool> <file:line[:col]> [new]")
		os.Exit(1)
	}

	tool := os.Args[1]
	path, pos, err := editor.ParseLocation(os.Args[2])
	if err != nil {
		log.Fatal(err)
	}

	serverBin := os.Getenv("SYMNAV_MCP_BIN")
	if serverBin == "" {
		serverBin = "symnav-mcp"
	}

	// --- MCP クライアントの起動（サーバープロセスを spawn） ---
	c, err := client.NewStdioMCPClient(
		serverBin,
		os.Environ(),
	)
	if err != nil {
		log.Fatalf("failed to create MCP client: %v", err)
	}
	defer c.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	// --- Initialize ハンドシェイク ---
	initReq := mcp.InitializeRequest{}
	initReq.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	initReq.Params.ClientInfo = mcp.Implementation{
		Name:    "symbolnav-client",
		Version: "0.1.0",
	}

	initResult, err := c.Initialize(ctx, initReq)
	if err != nil {
		log.Fatalf("failed to initialize: %v", err)
	}
	fmt.Fprintf(os.Stderr, "Connected to: %s %s\n", initResult.ServerInfo.Name, initResult.ServerInfo.Version)

	// --- ツールの呼び出し ---
	toolReq := mcp.CallToolRequest{}
	toolReq.Params.Name = tool
	args := map[string]any{
		"file_path": path,
		"line":      pos.Line,
		"character": pos.Character,
	}
	if len(os.Args) >= 4 && strings.EqualFold(os.Args[3], "new") {
		args["new_terminal"] = true
	}
	toolReq.Params.Arguments = args

	result, err := c.CallTool(ctx, toolReq)
	if err != nil {
		log.Fatalf("tool call failed: %v", err)
	}

	for _, content := range result.Content {
		if tc, ok := content.(mcp.TextContent); ok {
			if result.IsError {
				fmt.Fprintln(os.Stderr, tc.Text)
			} else {
				fmt.Println(tc.Text)
			}
		}
	}
	if result.IsError {
		os.Exit(1)
	}
}
