package server

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/0muji4/symbolnav/internal/command"
	"github.com/0muji4/symbolnav/internal/editor"
	"github.com/0muji4/symbolnav/internal/outline"
	"github.com/0muji4/symbolnav/internal/workspace"
)

// ToolHandler は MCP リクエストを Dispatcher のアクションに変換する Adapter です。
type ToolHandler struct {
	dispatcher *command.Dispatcher
	reader     workspace.FileReader
}

// NewToolHandler は ToolHandler を生成します。
func NewToolHandler(dispatcher *command.Dispatcher, reader workspace.FileReader) *ToolHandler {
	return &ToolHandler{
		dispatcher: dispatcher,
		reader:     reader,
	}
}

// Handle returns the MCP handler that runs action.
func (h *ToolHandler) Handle(action command.Action) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return h.run(action, req), nil
	}
}

// RunTest handles run_nearest_test, which picks a fresh terminal when
// new_terminal is set.
func (h *ToolHandler) RunTest(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	action := command.RunTest
	if req.GetBool("new_terminal", false) {
		action = command.RunTestNewTerminal
	}
	return h.run(action, req), nil
}

func (h *ToolHandler) run(action command.Action, req mcp.CallToolRequest) *mcp.CallToolResult {
	ed, errResult := h.open(req)
	if errResult != nil {
		return errResult
	}

	res, err := h.dispatcher.Run(action, ed)
	if err != nil {
		return mcp.NewToolResultError(command.UserMessage(action, err))
	}
	return mcp.NewToolResultText(resultText(action, res))
}

// open はリクエストの file_path / line / character からエディタ状態を組み立てます。
func (h *ToolHandler) open(req mcp.CallToolRequest) (editor.Context, *mcp.CallToolResult) {
	rawPath, err := req.RequireString("file_path")
	if err != nil {
		return nil, mcp.NewToolResultError("file_path is required")
	}
	// 相対パスを絶対パスに解決
	path, err := filepath.Abs(rawPath)
	if err != nil {
		return nil, mcp.NewToolResultError(fmt.Sprintf("invalid file_path: %v", err))
	}
	line, err := req.RequireInt("line")
	if err != nil || line < 0 {
		return nil, mcp.NewToolResultError("line is required and must be >= 0")
	}
	char, err := req.RequireInt("character")
	if err != nil || char < 0 {
		return nil, mcp.NewToolResultError("character is required and must be >= 0")
	}

	ed, err := editor.Open(h.reader, path, outline.Position{Line: line, Character: char})
	if err != nil {
		return nil, mcp.NewToolResultError(err.Error())
	}
	return ed, nil
}

func resultText(action command.Action, res *command.Result) string {
	switch action {
	case command.RunTest, command.RunTestNewTerminal:
		return "Sent to terminal: " + res.Output
	case command.ShowSignature:
		return res.Message
	}
	if res.Message == "" {
		return res.Output
	}
	return res.Message + "\n\n" + res.Output
}
