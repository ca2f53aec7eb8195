package lsp

import (
	"bytes"
	"encoding/json"

	"github.com/0muji4/symbolnav/internal/outline"
)

// decodeSymbols turns a documentSymbol result into an outline tree.
// A null result yields a nil tree. Flat SymbolInformation results become a
// single level of nodes in server order.
func decodeSymbols(raw json.RawMessage) ([]outline.Node, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, err
	}

	nodes := make([]outline.Node, 0, len(items))
	for _, item := range items {
		var probe struct {
			Location *Location `json:"location"`
		}
		if err := json.Unmarshal(item, &probe); err != nil {
			return nil, err
		}

		if probe.Location != nil {
			var si SymbolInformation
			if err := json.Unmarshal(item, &si); err != nil {
				return nil, err
			}
			nodes = append(nodes, outline.Node{
				Name:  si.Name,
				Kind:  outline.Kind(si.Kind),
				Range: toRange(si.Location.Range),
			})
			continue
		}

		var ds DocumentSymbol
		if err := json.Unmarshal(item, &ds); err != nil {
			return nil, err
		}
		nodes = append(nodes, toNode(ds))
	}
	return nodes, nil
}

func toNode(ds DocumentSymbol) outline.Node {
	n := outline.Node{
		Name:   ds.Name,
		Kind:   outline.Kind(ds.Kind),
		Range:  toRange(ds.Range),
		Detail: ds.Detail,
	}
	if len(ds.Children) > 0 {
		n.Children = make([]outline.Node, len(ds.Children))
		for i, child := range ds.Children {
			n.Children[i] = toNode(child)
		}
	}
	return n
}

func toRange(r Range) outline.Range {
	return outline.Range{
		Start: outline.Position{Line: r.Start.Line, Character: r.Start.Character},
		End:   outline.Position{Line: r.End.Line, Character: r.End.Character},
	}
}
