package server

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/0muji4/symbolnav/internal/command"
)

// Version is reported to MCP clients.
const Version = "0.1.0"

// New は MCP サーバーを生成し、ツールを登録して返します。
// ビジネスロジックは handler に委譲し、ここではプロトコル変換のみ行います。
func New(handler *ToolHandler) *server.MCPServer {
	s := server.NewMCPServer(
		"symbolnav",
		Version,
		server.WithToolCapabilities(false),
	)

	s.AddTool(cursorTool("run_nearest_test",
		"Runs the test function or method enclosing the cursor in the shared test terminal.",
		mcp.WithBoolean("new_terminal",
			mcp.Description("Start a new terminal instead of reusing the existing one."),
		),
	), handler.RunTest)

	s.AddTool(cursorTool("copy_test_command",
		"Copies the command that runs the test enclosing the cursor to the clipboard and returns it.",
	), handler.Handle(command.CopyTestCommand))

	s.AddTool(cursorTool("copy_parent_function",
		"Copies the source of the function or method enclosing the cursor to the clipboard and returns it.",
	), handler.Handle(command.CopyFunction))

	s.AddTool(cursorTool("copy_parent_class",
		"Copies the source of the class enclosing the cursor to the clipboard and returns it.",
	), handler.Handle(command.CopyClass))

	s.AddTool(cursorTool("show_signature",
		"Returns the signature of the function, method or class enclosing the cursor.",
	), handler.Handle(command.ShowSignature))

	s.AddTool(cursorTool("debug_symbols",
		"Returns the full symbol outline of the file, marking the symbols that contain the cursor.",
	), handler.Handle(command.DebugSymbols))

	return s
}

// cursorTool declares a tool taking the file and cursor position arguments
// shared by every action.
func cursorTool(name, description string, extra ...mcp.ToolOption) mcp.Tool {
	opts := []mcp.ToolOption{
		mcp.WithDescription(description),
		mcp.WithString("file_path",
			mcp.Required(),
			mcp.Description("Path of the source file (absolute, or relative to the server's root)."),
		),
		mcp.WithNumber("line",
			mcp.Required(),
			mcp.Description("Zero-based cursor line."),
		),
		mcp.WithNumber("character",
			mcp.Required(),
			mcp.Description("Zero-based cursor column in UTF-16 code units."),
		),
	}
	return mcp.NewTool(name, append(opts, extra...)...)
}
