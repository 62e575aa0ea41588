package diagram

import (
	"strings"
	"testing"
)

// mustBuild parses JSON and builds its diagram, failing the test on error.
func mustBuild(t *testing.T, in string) *DiagramData {
	t.Helper()
	d, err := BuildJSON(in, Options{})
	if err != nil {
		t.Fatalf("BuildJSON(%s) error: %v", in, err)
	}
	return d
}

// connectorSet returns "source->target" strings for easy assertions.
func connectorSet(d *DiagramData) map[string]bool {
	set := make(map[string]bool, len(d.Connectors))
	for _, c := range d.Connectors {
		set[c.SourceID+"->"+c.TargetID] = true
	}
	return set
}

// checkSingleParent asserts every node except the super-root has exactly
// one incoming connector.
func checkSingleParent(t *testing.T, d *DiagramData) {
	t.Helper()
	incoming := make(map[string]int)
	for _, c := range d.Connectors {
		incoming[c.TargetID]++
	}
	roots := 0
	for _, n := range d.Nodes {
		switch incoming[n.ID] {
		case 0:
			roots++
			if roots > 1 {
				t.Errorf("multiple roots: %s has no incoming connector", n.ID)
			}
		case 1:
			// single parent, as required
		default:
			t.Errorf("node %s has %d incoming connectors", n.ID, incoming[n.ID])
		}
	}
}

func TestBuildEmptyDocuments(t *testing.T) {
	for _, in := range []string{`{}`, `[]`, `{"only": {}}`, `{"a": {}, "b": []}`} {
		d := mustBuild(t, in)
		if len(d.Nodes) != 0 || len(d.Connectors) != 0 {
			t.Errorf("BuildJSON(%s) = %d nodes, %d connectors, want empty graph",
				in, len(d.Nodes), len(d.Connectors))
		}
		if d.Nodes == nil || d.Connectors == nil {
			t.Errorf("BuildJSON(%s) returned nil slices, want empty", in)
		}
	}
}

func TestBuildRootPrimitivesAndContainer(t *testing.T) {
	// {"a": 1, "b": {"c": 2}}: a merged root leaf for a, a container
	// b {1} connected from it, and a leaf for c under b.
	d := mustBuild(t, `{"a": 1, "b": {"c": 2}}`)

	if len(d.Nodes) != 3 {
		t.Fatalf("got %d nodes, want 3", len(d.Nodes))
	}

	root := d.Node("root")
	if root == nil || !root.IsLeaf {
		t.Fatalf("root node = %+v, want merged leaf", root)
	}
	if root.MergedContent != "a: 1" {
		t.Errorf("root content = %q, want %q", root.MergedContent, "a: 1")
	}

	b := d.Node("root.b")
	if b == nil || b.IsLeaf {
		t.Fatalf("container b = %+v, want container node", b)
	}
	if b.MergedContent != "b {1}" {
		t.Errorf("b content = %q, want %q", b.MergedContent, "b {1}")
	}

	leaf := d.Node("root.b/props")
	if leaf == nil || leaf.MergedContent != "c: 2" {
		t.Fatalf("leaf under b = %+v, want c: 2", leaf)
	}

	edges := connectorSet(d)
	if !edges["root->root.b"] || !edges["root.b->root.b/props"] {
		t.Errorf("connectors = %v", edges)
	}
	checkSingleParent(t, d)
}

func TestBuildArrayOfUniformObjectsCollapsesWrapper(t *testing.T) {
	// Each item has one primitive child and zero complex children, so it
	// becomes exactly one merged leaf wired straight to the container.
	d := mustBuild(t, `{"items": [{"x": 1}, {"x": 2}]}`)

	items := d.Node("root.items")
	if items == nil {
		t.Fatal("missing items container")
	}
	if items.MergedContent != "items {2}" {
		t.Errorf("items content = %q, want %q", items.MergedContent, "items {2}")
	}

	if len(d.Nodes) != 3 {
		t.Fatalf("got %d nodes, want 3 (container + 2 leaves)", len(d.Nodes))
	}

	edges := connectorSet(d)
	if !edges["root.items->root.items[0]"] || !edges["root.items->root.items[1]"] {
		t.Errorf("connectors = %v", edges)
	}

	for i, want := range []string{"x: 1", "x: 2"} {
		n := d.Node("root.items[" + string(rune('0'+i)) + "]")
		if n == nil || !n.IsLeaf || n.MergedContent != want {
			t.Errorf("item %d = %+v, want leaf %q", i, n, want)
		}
	}
	checkSingleParent(t, d)
}

func TestBuildArrayItemNeedsIntermediate(t *testing.T) {
	// The item has both a primitive and a complex child, so an
	// intermediate merged leaf is required; child hangs off it, not off
	// the items container.
	d := mustBuild(t, `{"items": [{"id": 1, "child": {"y": 2}}]}`)

	inter := d.Node("root.items[0]")
	if inter == nil || !inter.IsLeaf || inter.MergedContent != "id: 1" {
		t.Fatalf("intermediate = %+v, want merged leaf id: 1", inter)
	}

	child := d.Node("root.items[0].child")
	if child == nil || child.MergedContent != "child {1}" {
		t.Fatalf("child container = %+v, want child {1}", child)
	}

	edges := connectorSet(d)
	if !edges["root.items->root.items[0]"] {
		t.Error("items container should connect to the intermediate")
	}
	if !edges["root.items[0]->root.items[0].child"] {
		t.Error("child must hang off the intermediate node")
	}
	if edges["root.items->root.items[0].child"] {
		t.Error("child must not connect directly to the items container")
	}
	checkSingleParent(t, d)
}

func TestBuildSingleComplexChildCollapse(t *testing.T) {
	// Zero primitives, one complex child: the wrapper level disappears.
	d := mustBuild(t, `{"wrappers": [{"inner": {"z": 1}}]}`)

	if d.Node("root.wrappers[0]") != nil {
		t.Error("wrapper item should not produce a node")
	}

	inner := d.Node("root.wrappers[0].inner")
	if inner == nil || inner.IsLeaf {
		t.Fatalf("inner = %+v, want container", inner)
	}

	edges := connectorSet(d)
	if !edges["root.wrappers->root.wrappers[0].inner"] {
		t.Errorf("inner should wire directly to the array container, got %v", edges)
	}
	checkSingleParent(t, d)
}

func TestBuildArrayItemMultipleComplexChildren(t *testing.T) {
	// No primitives but two complex children: a bare Item container is
	// still required as the intermediate.
	d := mustBuild(t, `{"items": [{"a": {"x": 1}, "b": {"y": 2}}]}`)

	inter := d.Node("root.items[0]")
	if inter == nil || inter.IsLeaf {
		t.Fatalf("intermediate = %+v, want container", inter)
	}
	if inter.MergedContent != "Item 0 {2}" {
		t.Errorf("intermediate content = %q, want %q", inter.MergedContent, "Item 0 {2}")
	}

	edges := connectorSet(d)
	if !edges["root.items[0]->root.items[0].a"] || !edges["root.items[0]->root.items[0].b"] {
		t.Errorf("connectors = %v", edges)
	}
	checkSingleParent(t, d)
}

func TestBuildArraySkipsNullsKeepsIndices(t *testing.T) {
	d := mustBuild(t, `{"list": ["a", null, "b"]}`)

	if d.Node("root.list[1]") != nil {
		t.Error("null item should emit no node")
	}
	b := d.Node("root.list[2]")
	if b == nil {
		t.Fatal("index numbering must advance past nulls")
	}
	if b.MergedContent != `"b"` {
		t.Errorf("item content = %q, want %q", b.MergedContent, `"b"`)
	}

	list := d.Node("root.list")
	if list.MergedContent != "list {3}" {
		t.Errorf("badge must count nulls: %q, want %q", list.MergedContent, "list {3}")
	}
	checkSingleParent(t, d)
}

func TestBuildNestedArrayItem(t *testing.T) {
	d := mustBuild(t, `{"grid": [[1, 2], [3]]}`)

	item0 := d.Node("root.grid[0]")
	if item0 == nil || item0.IsLeaf {
		t.Fatalf("nested array item = %+v, want container", item0)
	}
	if item0.MergedContent != "Item 0 {2}" {
		t.Errorf("item 0 content = %q, want %q", item0.MergedContent, "Item 0 {2}")
	}

	edges := connectorSet(d)
	if !edges["root.grid[0]->root.grid[0][0]"] || !edges["root.grid[0]->root.grid[0][1]"] {
		t.Errorf("connectors = %v", edges)
	}
	checkSingleParent(t, d)
}

func TestBuildArrayRoot(t *testing.T) {
	d := mustBuild(t, `[1, 2, 3]`)

	root := d.Node("root")
	if root == nil || root.IsLeaf {
		t.Fatalf("array root = %+v, want container", root)
	}
	if root.MergedContent != "root {3}" {
		t.Errorf("root content = %q, want %q", root.MergedContent, "root {3}")
	}
	if len(d.Nodes) != 4 {
		t.Errorf("got %d nodes, want 4", len(d.Nodes))
	}
	checkSingleParent(t, d)
}

func TestBuildSingleNamedWrapperAdoptsKey(t *testing.T) {
	d := mustBuild(t, `{"user": {"name": "ada", "age": 36}}`)

	root := d.Node("user")
	if root == nil || !root.IsLeaf {
		t.Fatalf("root = %+v, want merged leaf named user", root)
	}
	if root.MergedContent != "name: \"ada\"\nage: 36" {
		t.Errorf("root content = %q", root.MergedContent)
	}
	if root.Title != "user" {
		t.Errorf("root title = %q, want user", root.Title)
	}
	checkSingleParent(t, d)
}

func TestBuildMultipleRootsGetSuperRoot(t *testing.T) {
	// No root primitives: each complex property starts its own root and
	// the fixup joins them under one synthetic super-root.
	d := mustBuild(t, `{"alpha": {"x": 1}, "beta": {"y": 2}}`)

	super := d.Node(SuperRootNodeID)
	if super == nil {
		t.Fatal("missing synthetic super-root")
	}
	if len(super.Annotations) != 0 || super.MergedContent != "" {
		t.Errorf("super-root must carry no annotations or content: %+v", super)
	}

	out := 0
	for _, c := range d.Connectors {
		if c.SourceID == SuperRootNodeID {
			out++
		}
	}
	if out != 2 {
		t.Errorf("super-root has %d outgoing connectors, want 2", out)
	}
	checkSingleParent(t, d)
}

func TestBuildEnvelopeSkipForcesAnchor(t *testing.T) {
	// Anonymous envelope skipped, inner object has no primitives: even a
	// single natural root gets the synthetic anchor.
	d, err := BuildJSON(`{"": {"only": {"x": 1}}}`, Options{})
	if err != nil {
		t.Fatalf("BuildJSON error: %v", err)
	}

	if d.Node(SuperRootNodeID) == nil {
		t.Fatal("envelope skip must force the synthetic anchor")
	}
	roots := d.Roots()
	if len(roots) != 1 || roots[0] != SuperRootNodeID {
		t.Errorf("Roots() = %v, want just the super-root", roots)
	}
	checkSingleParent(t, d)
}

func TestBuildEnvelopeSkipWithPrimitivesNeedsNoAnchor(t *testing.T) {
	// The envelope is skipped but the inner object merges primitives
	// into a root leaf, so no synthetic anchor is required.
	d, err := BuildJSON(`{" ": {"a": 1, "b": {"c": 2}}}`, Options{})
	if err != nil {
		t.Fatalf("BuildJSON error: %v", err)
	}
	if d.Node(SuperRootNodeID) != nil {
		t.Error("merged root leaf should suppress the synthetic anchor")
	}
	checkSingleParent(t, d)
}

func TestBuildDeterministic(t *testing.T) {
	in := `{"a": 1, "b": {"c": [1, {"d": 2}, null]}, "e": ["x"]}`
	first := mustBuild(t, in)
	second := mustBuild(t, in)

	if len(first.Nodes) != len(second.Nodes) {
		t.Fatalf("node counts differ: %d vs %d", len(first.Nodes), len(second.Nodes))
	}
	for i := range first.Nodes {
		a, b := first.Nodes[i], second.Nodes[i]
		if a.ID != b.ID || a.MergedContent != b.MergedContent || len(a.Annotations) != len(b.Annotations) {
			t.Errorf("node %d differs: %+v vs %+v", i, a, b)
		}
		for j := range a.Annotations {
			if a.Annotations[j] != b.Annotations[j] {
				t.Errorf("node %d annotation %d differs", i, j)
			}
		}
	}
	for i := range first.Connectors {
		if first.Connectors[i] != second.Connectors[i] {
			t.Errorf("connector %d differs", i)
		}
	}
}

func TestBuildDepthLimit(t *testing.T) {
	// 40 levels of nesting against a limit of 10.
	in := strings.Repeat(`{"n":`, 40) + `1` + strings.Repeat(`}`, 40)

	if _, err := BuildJSON(in, Options{MaxDepth: 10}); err == nil {
		t.Fatal("expected depth error")
	} else if !strings.Contains(err.Error(), "DEPTH_EXCEEDED") {
		t.Errorf("error = %v, want DEPTH_EXCEEDED", err)
	}

	// The same document fits under the default limit.
	if _, err := BuildJSON(in, Options{}); err != nil {
		t.Errorf("default depth should accept 40 levels: %v", err)
	}
}

func TestBuildNodeMetadata(t *testing.T) {
	d := mustBuild(t, `{"a": 1, "b": {"c": 2}}`)

	for _, n := range d.Nodes {
		if n.Meta == nil {
			t.Fatalf("node %s has no metadata", n.ID)
		}
		if isLeaf, ok := n.Meta[MetaIsLeaf].(bool); !ok || isLeaf != n.IsLeaf {
			t.Errorf("node %s meta isLeaf = %v, want %v", n.ID, n.Meta[MetaIsLeaf], n.IsLeaf)
		}
		if mc, ok := n.Meta[MetaMergedContent].(string); !ok || mc != n.MergedContent {
			t.Errorf("node %s meta mergedContent mismatch", n.ID)
		}
		if n.Width <= 0 || n.Height <= 0 {
			t.Errorf("node %s has no display size", n.ID)
		}
	}
}

func TestBuildAnnotationPairs(t *testing.T) {
	d := mustBuild(t, `{"name": "ada", "age": 36}`)

	root := d.Node("root")
	if root == nil {
		t.Fatal("missing root leaf")
	}
	want := []string{"name", `"ada"`, "age", "36"}
	if len(root.Annotations) != len(want) {
		t.Fatalf("got %d annotations, want %d", len(root.Annotations), len(want))
	}
	seen := make(map[string]bool)
	for i, a := range root.Annotations {
		if a.Content != want[i] {
			t.Errorf("annotation %d = %q, want %q", i, a.Content, want[i])
		}
		if a.ID == "" || seen[a.ID] {
			t.Errorf("annotation %d has missing or duplicate ID %q", i, a.ID)
		}
		seen[a.ID] = true
	}
}
