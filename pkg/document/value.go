package document

import (
	"strconv"
	"strings"
)

// Kind identifies the type of a document value.
type Kind int

const (
	// KindNull represents a JSON null.
	KindNull Kind = iota
	// KindBool represents true or false.
	KindBool
	// KindNumber represents a numeric scalar. Raw holds the source text.
	KindNumber
	// KindString represents a textual scalar.
	KindString
	// KindObject represents an ordered collection of key/value fields.
	KindObject
	// KindArray represents an ordered sequence of items.
	KindArray
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	}
	return "unknown"
}

// Field is one key/value pair of an object, in source order.
type Field struct {
	Key   string
	Value *Value
}

// Value is a single node of a parsed document tree.
// Exactly one of Raw, Fields, or Items is meaningful depending on Kind:
// scalars carry Raw, objects carry Fields, arrays carry Items.
type Value struct {
	Kind   Kind
	Raw    string // scalar source text ("42", "true", "hello")
	Fields []Field
	Items  []*Value
}

// IsScalar reports whether the value is a leaf (null, bool, number, string).
func (v *Value) IsScalar() bool {
	return v.Kind != KindObject && v.Kind != KindArray
}

// IsEmptyContainer reports whether the value is an object with no fields
// or an array with no items. Empty containers contribute nothing to the
// diagram and are dropped during classification.
func (v *Value) IsEmptyContainer() bool {
	switch v.Kind {
	case KindObject:
		return len(v.Fields) == 0
	case KindArray:
		return len(v.Items) == 0
	}
	return false
}

// EncodeJSON reserializes the value as compact JSON. Field order is
// preserved. This backs the raw-fragment payload attached to diagram
// nodes for detail popups.
func (v *Value) EncodeJSON() string {
	var sb strings.Builder
	v.encode(&sb)
	return sb.String()
}

func (v *Value) encode(sb *strings.Builder) {
	switch v.Kind {
	case KindNull:
		sb.WriteString("null")
	case KindBool, KindNumber:
		sb.WriteString(v.Raw)
	case KindString:
		sb.WriteString(strconv.Quote(v.Raw))
	case KindObject:
		sb.WriteByte('{')
		for i, f := range v.Fields {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(strconv.Quote(f.Key))
			sb.WriteByte(':')
			f.Value.encode(sb)
		}
		sb.WriteByte('}')
	case KindArray:
		sb.WriteByte('[')
		for i, item := range v.Items {
			if i > 0 {
				sb.WriteByte(',')
			}
			item.encode(sb)
		}
		sb.WriteByte(']')
	}
}
