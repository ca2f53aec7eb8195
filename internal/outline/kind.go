package outline

import (
	"fmt"
	"strings"
)

// Kind is a symbol kind. Values follow the LSP SymbolKind numbering.
type Kind int

const (
	KindFile Kind = iota + 1
	KindModule
	KindNamespace
	KindPackage
	KindClass
	KindMethod
	KindProperty
	KindField
	KindConstructor
	KindEnum
	KindInterface
	KindFunction
	KindVariable
	KindConstant
	KindString
	KindNumber
	KindBoolean
	KindArray
	KindObject
	KindKey
	KindNull
	KindEnumMember
	KindStruct
	KindEvent
	KindOperator
	KindTypeParameter
)

var kindNames = [...]string{
	KindFile:          "File",
	KindModule:        "Module",
	KindNamespace:     "Namespace",
	KindPackage:       "Package",
	KindClass:         "Class",
	KindMethod:        "Method",
	KindProperty:      "Property",
	KindField:         "Field",
	KindConstructor:   "Constructor",
	KindEnum:          "Enum",
	KindInterface:     "Interface",
	KindFunction:      "Function",
	KindVariable:      "Variable",
	KindConstant:      "Constant",
	KindString:        "String",
	KindNumber:        "Number",
	KindBoolean:       "Boolean",
	KindArray:         "Array",
	KindObject:        "Object",
	KindKey:           "Key",
	KindNull:          "Null",
	KindEnumMember:    "EnumMember",
	KindStruct:        "Struct",
	KindEvent:         "Event",
	KindOperator:      "Operator",
	KindTypeParameter: "TypeParameter",
}

// String returns the kind name, e.g. "Function".
func (k Kind) String() string {
	if k > 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// KindSet is the set of kinds a query is willing to match.
type KindSet []Kind

// Kinds builds a KindSet.
func Kinds(kinds ...Kind) KindSet {
	return KindSet(kinds)
}

// Has reports whether k is in the set.
func (s KindSet) Has(k Kind) bool {
	for _, m := range s {
		if m == k {
			return true
		}
	}
	return false
}

// String joins the kind names with " or ", e.g. "Function or Method".
func (s KindSet) String() string {
	names := make([]string, len(s))
	for i, k := range s {
		names[i] = k.String()
	}
	return strings.Join(names, " or ")
}

// Common target sets.
var (
	Callables  = Kinds(KindFunction, KindMethod)
	Classes    = Kinds(KindClass)
	Signatures = Kinds(KindFunction, KindMethod, KindClass)
)
