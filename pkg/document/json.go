package document

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// ParseJSON decodes a JSON document into an order-preserving Value tree.
// Unlike json.Unmarshal into map[string]any, object fields come back in
// the order they appear in the source text. Duplicate object keys follow
// last-value-wins with the key keeping its first-occurrence position.
//
// Returns an error if the input is not well-formed JSON or contains
// trailing data after the first value.
func ParseJSON(input string) (*Value, error) {
	dec := json.NewDecoder(strings.NewReader(input))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("empty input")
		}
		return nil, err
	}

	v, err := parseJSONValue(dec, tok)
	if err != nil {
		return nil, err
	}

	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("trailing data after document")
	}
	return v, nil
}

// parseJSONValue builds one Value from the token stream, starting with
// the already-consumed token tok.
func parseJSONValue(dec *json.Decoder, tok json.Token) (*Value, error) {
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return parseJSONObject(dec)
		case '[':
			return parseJSONArray(dec)
		}
		return nil, fmt.Errorf("unexpected delimiter %q", t.String())
	case string:
		return &Value{Kind: KindString, Raw: t}, nil
	case json.Number:
		return &Value{Kind: KindNumber, Raw: t.String()}, nil
	case bool:
		if t {
			return &Value{Kind: KindBool, Raw: "true"}, nil
		}
		return &Value{Kind: KindBool, Raw: "false"}, nil
	case nil:
		return &Value{Kind: KindNull, Raw: "null"}, nil
	}
	return nil, fmt.Errorf("unexpected token %v", tok)
}

func parseJSONObject(dec *json.Decoder) (*Value, error) {
	obj := &Value{Kind: KindObject}
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		if d, ok := tok.(json.Delim); ok && d == '}' {
			return obj, nil
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("object key is not a string: %v", tok)
		}
		tok, err = dec.Token()
		if err != nil {
			return nil, err
		}
		val, err := parseJSONValue(dec, tok)
		if err != nil {
			return nil, err
		}
		obj.setField(key, val)
	}
}

// setField appends a field, or replaces the value of an existing key.
// Duplicate keys are valid JSON; the last value wins while the key keeps
// its first-occurrence position, so sibling node IDs derived from keys
// stay unique.
func (v *Value) setField(key string, val *Value) {
	for i := range v.Fields {
		if v.Fields[i].Key == key {
			v.Fields[i].Value = val
			return
		}
	}
	v.Fields = append(v.Fields, Field{Key: key, Value: val})
}

func parseJSONArray(dec *json.Decoder) (*Value, error) {
	arr := &Value{Kind: KindArray}
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		if d, ok := tok.(json.Delim); ok && d == ']' {
			return arr, nil
		}
		item, err := parseJSONValue(dec, tok)
		if err != nil {
			return nil, err
		}
		arr.Items = append(arr.Items, item)
	}
}
