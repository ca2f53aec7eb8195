package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var _ FileReader = (*FSReader)(nil)

// FSReader reads files from the local filesystem below a root directory.
type FSReader struct {
	rootPath string
}

func NewFSReader(rootPath string) (*FSReader, error) {
	abs, err := filepath.Abs(rootPath)
	if err != nil {
		return nil, err
	}
	return &FSReader{rootPath: abs}, nil
}

// ReadFile accepts paths relative to the root, or absolute paths inside it.
func (r *FSReader) ReadFile(path string) (string, error) {
	absPath := path
	if !filepath.IsAbs(absPath) {
		absPath = filepath.Join(r.rootPath, path)
	}
	absPath = filepath.Clean(absPath)

	// パストラバーサル防止
	rel, err := filepath.Rel(r.rootPath, absPath)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("path %q is outside project root", path)
	}

	data, err := os.ReadFile(absPath)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
