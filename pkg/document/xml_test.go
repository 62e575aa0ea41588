package document

import "testing"

func TestParseXMLSingleRoot(t *testing.T) {
	v, err := ParseXML(`<user><name>ada</name><age>36</age></user>`)
	if err != nil {
		t.Fatalf("ParseXML error: %v", err)
	}

	// Synthetic root wraps the document element.
	if v.Kind != KindObject || len(v.Fields) != 1 {
		t.Fatalf("root = %+v, want object with 1 field", v)
	}
	if v.Fields[0].Key != "user" {
		t.Errorf("root field = %q, want user", v.Fields[0].Key)
	}

	user := v.Fields[0].Value
	if user.Kind != KindObject || len(user.Fields) != 2 {
		t.Fatalf("user = %+v, want object with 2 fields", user)
	}
	if user.Fields[0].Key != "name" || user.Fields[0].Value.Raw != "ada" {
		t.Errorf("name field = %+v", user.Fields[0])
	}
	if user.Fields[1].Value.Kind != KindString || user.Fields[1].Value.Raw != "36" {
		t.Errorf("age field = %+v, want string scalar 36", user.Fields[1])
	}
}

func TestParseXMLAttributes(t *testing.T) {
	v, err := ParseXML(`<book isbn="123" lang="en"><title>Go</title></book>`)
	if err != nil {
		t.Fatalf("ParseXML error: %v", err)
	}

	book := v.Fields[0].Value
	want := []string{"@isbn", "@lang", "title"}
	if len(book.Fields) != len(want) {
		t.Fatalf("got %d fields, want %d", len(book.Fields), len(want))
	}
	for i, key := range want {
		if book.Fields[i].Key != key {
			t.Errorf("field %d = %q, want %q", i, book.Fields[i].Key, key)
		}
	}
	if book.Fields[0].Value.Raw != "123" {
		t.Errorf("@isbn = %q, want 123", book.Fields[0].Value.Raw)
	}
}

func TestParseXMLSiblingRoots(t *testing.T) {
	v, err := ParseXML(`<alpha><x>1</x></alpha><beta><y>2</y></beta>`)
	if err != nil {
		t.Fatalf("ParseXML error: %v", err)
	}
	if len(v.Fields) != 2 {
		t.Fatalf("got %d top-level elements, want 2", len(v.Fields))
	}
	if v.Fields[0].Key != "alpha" || v.Fields[1].Key != "beta" {
		t.Errorf("top-level elements = %q, %q", v.Fields[0].Key, v.Fields[1].Key)
	}
}

func TestParseXMLRepeatedElements(t *testing.T) {
	v, err := ParseXML(`<list><item>a</item><item>b</item><item>c</item></list>`)
	if err != nil {
		t.Fatalf("ParseXML error: %v", err)
	}
	list := v.Fields[0].Value
	if len(list.Fields) != 3 {
		t.Fatalf("got %d items, want 3", len(list.Fields))
	}
	for i, raw := range []string{"a", "b", "c"} {
		if list.Fields[i].Key != "item" || list.Fields[i].Value.Raw != raw {
			t.Errorf("item %d = %+v, want item=%q", i, list.Fields[i], raw)
		}
	}
}

func TestParseXMLEmptyElement(t *testing.T) {
	v, err := ParseXML(`<root><empty/><full>x</full></root>`)
	if err != nil {
		t.Fatalf("ParseXML error: %v", err)
	}
	root := v.Fields[0].Value
	empty := root.Fields[0].Value
	if !empty.IsEmptyContainer() {
		t.Errorf("<empty/> = %+v, want empty container", empty)
	}
}

func TestParseXMLMixedContent(t *testing.T) {
	v, err := ParseXML(`<p id="1">hello<b>world</b></p>`)
	if err != nil {
		t.Fatalf("ParseXML error: %v", err)
	}
	p := v.Fields[0].Value
	keys := make([]string, len(p.Fields))
	for i, f := range p.Fields {
		keys[i] = f.Key
	}
	// Attribute, child element, then collected text.
	want := []string{"@id", "b", "#text"}
	for i, k := range want {
		if keys[i] != k {
			t.Errorf("field %d = %q, want %q (all: %v)", i, keys[i], k, keys)
		}
	}
}

func TestParseXMLErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"empty input", ""},
		{"no elements", "<!-- just a comment -->"},
		{"unclosed element", "<a><b></a>"},
		{"not xml", "just text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseXML(tt.in); err == nil {
				t.Errorf("ParseXML(%q) should fail", tt.in)
			}
		})
	}
}
