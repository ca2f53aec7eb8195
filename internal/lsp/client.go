package lsp

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/0muji4/symbolnav/internal/outline"
)

var _ OutlineProvider = (*Client)(nil)

// Client は言語サーバープロセスを管理する構造体です
type Client struct {
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	stdout *bufio.Reader
	mutex  sync.Mutex
	idSeq  int

	// docMu holds a document open for one whole didOpen/documentSymbol/didClose
	// sequence. mutex only guards single messages on the connection.
	docMu sync.Mutex
}

// NewClient は言語サーバーを起動し、Initialize まで完了させてクライアントを返します。
// argv is the server command line, e.g. []string{"pylsp"}.
func NewClient(rootPath string, argv []string) (*Client, error) {
	if len(argv) == 0 {
		return nil, errors.New("language server command is empty")
	}
	absRoot, err := filepath.Abs(rootPath)
	if err != nil {
		return nil, err
	}

	if _, err := exec.LookPath(argv[0]); err != nil {
		return nil, fmt.Errorf("%s not found: %w", argv[0], err)
	}

	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Dir = absRoot
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, err
	}
	stdoutPipe, err := cmd.StdoutPipe()
	if err != nil {
		return nil, err
	}

	// 標準エラー出力もキャプチャしておくとデバッグ時に役立ちます
	cmd.Stderr = os.Stderr

	if err := cmd.Start(); err != nil {
		return nil, err
	}

	client := NewClientWithPipes(stdin, stdoutPipe)
	client.cmd = cmd

	if err := client.initialize(absRoot); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

// NewClientWithPipes wraps an already running server connection.
// The caller is responsible for the initialize handshake.
func NewClientWithPipes(w io.WriteCloser, r io.Reader) *Client {
	return &Client{
		stdin:  w,
		stdout: bufio.NewReader(r),
	}
}

func (c *Client) initialize(absRoot string) error {
	// RootURI を正しく設定することが重要です
	initParams := InitializeParams{
		ProcessID: os.Getpid(),
		RootURI:   fileURI(absRoot),
		Capabilities: ClientCapabilities{
			TextDocument: TextDocumentClientCapabilities{
				DocumentSymbol: DocumentSymbolClientCapabilities{HierarchicalDocumentSymbolSupport: true},
			},
		},
	}

	if _, err := c.sendRequest("initialize", initParams); err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}

	return c.sendNotification("initialized", struct{}{})
}

func (c *Client) Close() error {
	_ = c.stdin.Close()
	if c.cmd != nil && c.cmd.Process != nil {
		return c.cmd.Process.Kill()
	}
	return nil
}

// DocumentSymbols opens the file on the server and returns its outline.
// Calls are serialized so that only one copy of a document is open at a time.
func (c *Client) DocumentSymbols(filePath string) (nodes []outline.Node, err error) {
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return nil, err
	}
	text, err := os.ReadFile(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", absPath, err)
	}
	uri := fileURI(absPath)

	c.docMu.Lock()
	defer c.docMu.Unlock()

	err = c.sendNotification("textDocument/didOpen", DidOpenTextDocumentParams{
		TextDocument: TextDocumentItem{
			URI:        uri,
			LanguageID: languageID(absPath),
			Version:    1,
			Text:       string(text),
		},
	})
	if err != nil {
		return nil, err
	}
	defer func() {
		closeErr := c.sendNotification("textDocument/didClose", DidCloseTextDocumentParams{
			TextDocument: TextDocumentIdentifier{URI: uri},
		})
		if closeErr != nil && err == nil {
			nodes, err = nil, fmt.Errorf("failed to close %s: %w", uri, closeErr)
		}
	}()

	resp, err := c.sendRequest("textDocument/documentSymbol", DocumentSymbolParams{
		TextDocument: TextDocumentIdentifier{URI: uri},
	})
	if err != nil {
		return nil, err
	}

	nodes, err = decodeSymbols(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to parse document symbols: %w", err)
	}
	return nodes, nil
}

// --- Internal Helpers ---

func (c *Client) sendRequest(method string, params interface{}) (json.RawMessage, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.idSeq++
	id := c.idSeq

	req := JSONRPCRequest{
		JSONRPC: "2.0",
		ID:      id,
		Method:  method,
		Params:  params,
	}
	if err := c.write(req); err != nil {
		return nil, err
	}

	return c.readResponse(id)
}

func (c *Client) sendNotification(method string, params interface{}) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	return c.write(JSONRPCRequest{
		JSONRPC: "2.0",
		Method:  method,
		Params:  params,
	})
}

func (c *Client) write(v interface{}) error {
	body, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(c.stdin, "Content-Length: %d\r\n\r\n%s", len(body), body)
	return err
}

// readResponse reads messages until the response with the given id arrives.
// Notifications are dropped; requests from the server get a null result so
// the server does not wait on us.
func (c *Client) readResponse(id int) (json.RawMessage, error) {
	want := []byte(strconv.Itoa(id))
	for {
		body, err := c.readMessage()
		if err != nil {
			return nil, err
		}

		var msg jsonrpcMessage
		if err := json.Unmarshal(body, &msg); err != nil {
			return nil, err
		}

		if msg.Method != "" {
			if len(msg.ID) > 0 {
				if err := c.write(jsonrpcReply{JSONRPC: "2.0", ID: msg.ID}); err != nil {
					return nil, err
				}
			}
			continue
		}
		if !bytes.Equal(bytes.TrimSpace(msg.ID), want) {
			continue
		}

		if msg.Error != nil {
			return nil, fmt.Errorf("lsp error: %w", msg.Error)
		}
		return msg.Result, nil
	}
}

func (c *Client) readMessage() ([]byte, error) {
	var length int
	for {
		line, err := c.stdout.ReadString('\n')
		if err != nil {
			return nil, err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			break
		}
		if strings.HasPrefix(line, "Content-Length: ") {
			length, _ = strconv.Atoi(strings.TrimPrefix(line, "Content-Length: "))
		}
	}

	body := make([]byte, length)
	if _, err := io.ReadFull(c.stdout, body); err != nil {
		return nil, err
	}
	return body, nil
}

func fileURI(absPath string) string {
	return "file://" + filepath.ToSlash(absPath)
}

func languageID(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".py":
		return "python"
	case ".go":
		return "go"
	case ".ts":
		return "typescript"
	case ".tsx":
		return "typescriptreact"
	case ".js":
		return "javascript"
	case ".rs":
		return "rust"
	case ".java":
		return "java"
	case ".rb":
		return "ruby"
	default:
		return "plaintext"
	}
}
