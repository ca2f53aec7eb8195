package symbol

import (
	"bytes"
	"fmt"
	"go/ast"
	"go/parser"
	"go/printer"
	"go/token"
	"os"
	"path/filepath"
	"strings"

	"github.com/0muji4/symbolnav/internal/lsp"
	"github.com/0muji4/symbolnav/internal/outline"
)

var _ lsp.OutlineProvider = (*ASTProvider)(nil)

// ASTProvider builds outlines of Go files using go/ast.
type ASTProvider struct{}

func NewASTProvider() *ASTProvider {
	return &ASTProvider{}
}

func (p *ASTProvider) Close() error { return nil }

// DocumentSymbols returns the outline of a Go file. Files that are not Go
// source yield a nil tree. Files with syntax errors yield whatever the parser
// managed to recover.
func (p *ASTProvider) DocumentSymbols(filePath string) ([]outline.Node, error) {
	if !strings.HasSuffix(filePath, ".go") {
		return nil, nil
	}
	src, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filePath, err)
	}

	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, filepath.Base(filePath), src, 0)
	if f == nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filePath, err)
	}

	b := &builder{fset: fset, src: src}
	nodes := []outline.Node{}
	for _, decl := range f.Decls {
		nodes = append(nodes, b.decl(decl)...)
	}
	return nodes, nil
}

type builder struct {
	fset *token.FileSet
	src  []byte
}

func (b *builder) rangeOf(n ast.Node) outline.Range {
	return outline.Range{
		Start: positionAt(b.src, b.fset.Position(n.Pos()).Offset),
		End:   positionAt(b.src, b.fset.Position(n.End()).Offset),
	}
}

func (b *builder) decl(decl ast.Decl) []outline.Node {
	switch d := decl.(type) {
	case *ast.FuncDecl:
		kind := outline.KindFunction
		if d.Recv != nil {
			kind = outline.KindMethod
		}
		return []outline.Node{{
			Name:   d.Name.Name,
			Kind:   kind,
			Range:  b.rangeOf(d),
			Detail: b.signature(d.Type),
		}}

	case *ast.GenDecl:
		var nodes []outline.Node
		for _, spec := range d.Specs {
			// A lone spec without parentheses spans the whole declaration,
			// keyword included.
			var span ast.Node = spec
			if !d.Lparen.IsValid() && len(d.Specs) == 1 {
				span = d
			}

			switch s := spec.(type) {
			case *ast.TypeSpec:
				nodes = append(nodes, b.typeSpec(s, span))
			case *ast.ValueSpec:
				kind := outline.KindVariable
				if d.Tok == token.CONST {
					kind = outline.KindConstant
				}
				for _, ident := range s.Names {
					nodes = append(nodes, outline.Node{
						Name:  ident.Name,
						Kind:  kind,
						Range: b.rangeOf(span),
					})
				}
			}
		}
		return nodes
	}
	return nil
}

func (b *builder) typeSpec(s *ast.TypeSpec, span ast.Node) outline.Node {
	n := outline.Node{
		Name:  s.Name.Name,
		Kind:  outline.KindClass,
		Range: b.rangeOf(span),
	}

	switch t := s.Type.(type) {
	case *ast.StructType:
		n.Kind = outline.KindStruct
		n.Children = b.fields(t.Fields, outline.KindField)
	case *ast.InterfaceType:
		n.Kind = outline.KindInterface
		n.Children = b.fields(t.Methods, outline.KindMethod)
	}
	return n
}

func (b *builder) fields(list *ast.FieldList, kind outline.Kind) []outline.Node {
	if list == nil {
		return nil
	}
	var nodes []outline.Node
	for _, field := range list.List {
		for _, ident := range field.Names {
			node := outline.Node{
				Name:  ident.Name,
				Kind:  kind,
				Range: b.rangeOf(field),
			}
			if ft, ok := field.Type.(*ast.FuncType); ok {
				node.Detail = b.signature(ft)
			}
			nodes = append(nodes, node)
		}
	}
	return nodes
}

// signature prints a function type without its leading "func" keyword,
// e.g. "(x int) error".
func (b *builder) signature(ft *ast.FuncType) string {
	var buf bytes.Buffer
	if err := printer.Fprint(&buf, b.fset, ft); err != nil {
		return ""
	}
	return strings.TrimPrefix(buf.String(), "func")
}
