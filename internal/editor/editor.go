// Package editor provides the active document and cursor an action runs
// against.
package editor

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/0muji4/symbolnav/internal/outline"
	"github.com/0muji4/symbolnav/internal/workspace"
)

// Context is the active editor state captured when an action is invoked.
type Context interface {
	// FilePath is the absolute path of the document.
	FilePath() string
	Cursor() outline.Position
	// Text returns the document text spanned by r.
	Text(r outline.Range) string
}

var _ Context = (*Document)(nil)

// Document is a Context backed by a file snapshot.
type Document struct {
	path   string
	text   string
	cursor outline.Position
}

// Open reads path through reader and places the cursor at pos.
func Open(reader workspace.FileReader, path string, pos outline.Position) (*Document, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	text, err := reader.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	return NewDocument(abs, text, pos), nil
}

// NewDocument builds a Document from text already in memory.
func NewDocument(path, text string, pos outline.Position) *Document {
	return &Document{path: path, text: text, cursor: pos}
}

func (d *Document) FilePath() string         { return d.path }
func (d *Document) Cursor() outline.Position { return d.cursor }

func (d *Document) Text(r outline.Range) string {
	return outline.Extract(d.text, r)
}

// ParseLocation splits "file:line:col" into a path and a zero-based position.
// The column may be omitted, in which case it is 0.
func ParseLocation(s string) (string, outline.Position, error) {
	parts := strings.Split(s, ":")
	var nums []int
	// Peel numeric suffixes off the right so paths containing ':' survive.
	for len(parts) > 1 && len(nums) < 2 {
		n, err := strconv.Atoi(parts[len(parts)-1])
		if err != nil {
			break
		}
		nums = append([]int{n}, nums...)
		parts = parts[:len(parts)-1]
	}
	path := strings.Join(parts, ":")
	if path == "" || len(nums) == 0 {
		return "", outline.Position{}, fmt.Errorf("invalid location %q: want file:line[:col]", s)
	}

	pos := outline.Position{Line: nums[0]}
	if len(nums) == 2 {
		pos.Character = nums[1]
	}
	if pos.Line < 0 || pos.Character < 0 {
		return "", outline.Position{}, fmt.Errorf("invalid location %q: negative coordinate", s)
	}
	return path, pos, nil
}
