package diagram

import (
	"fmt"
	"strings"

	"github.com/docgraph/docgraph/pkg/document"
	"github.com/docgraph/docgraph/pkg/errors"
)

// DefaultMaxDepth bounds recursion so pathological nesting reports an
// error instead of exhausting the stack.
const DefaultMaxDepth = 256

// Options configures one build.
type Options struct {
	// MaxDepth limits document nesting depth. Zero means DefaultMaxDepth.
	MaxDepth int
	// RootLabel overrides the default root identifier ("root"). The root
	// normalization rules may replace it with a key from the document.
	RootLabel string
}

// Build transforms a parsed document into a layout-ready diagram graph.
//
// The traversal is single-threaded and purely functional over its input:
// all state (node list, connector list, annotation counter) is scoped to
// this call, so concurrent builds never share anything. Empty or trivial
// documents yield an empty graph; exceeding MaxDepth yields a
// DEPTH_EXCEEDED error and no partial graph.
func Build(doc *document.Value, opts Options) (*DiagramData, error) {
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultMaxDepth
	}
	rootLabel := opts.RootLabel
	if rootLabel == "" {
		rootLabel = DefaultRootLabel
	}

	b := &builder{
		edgeSeen: make(map[string]bool),
		maxDepth: opts.MaxDepth,
	}
	if err := b.buildRoot(doc, rootLabel); err != nil {
		return nil, err
	}
	b.fixupRoots()

	out := &DiagramData{Nodes: b.nodes, Connectors: b.connectors}
	if out.Nodes == nil {
		out.Nodes = []Node{}
	}
	if out.Connectors == nil {
		out.Connectors = []Connector{}
	}
	return out, nil
}

// builder accumulates nodes and connectors during one traversal.
// Counters live here, never in package state, so concurrent builds are
// independent.
type builder struct {
	nodes      []Node
	connectors []Connector
	edgeSeen   map[string]bool
	annSeq     int
	maxDepth   int

	// forceFixup is set when the root normalizer skipped an anonymous
	// envelope without producing a merged root leaf. The multi-root
	// fixup then runs even for a single natural root, so layout always
	// has a synthetic anchor.
	forceFixup bool
}

// buildRoot normalizes the top-level document and starts the traversal.
//
// Normalization rules:
//   - array document: the whole array is one implicit container
//   - single-property object with a blank key and object value: the
//     anonymous envelope is skipped and its value becomes the true root
//   - single-property object with a named key and object value: the key
//     becomes the root identifier
//   - anything else: the root identifier stays rootLabel
func (b *builder) buildRoot(doc *document.Value, rootLabel string) error {
	switch doc.Kind {
	case document.KindObject:
		if len(doc.Fields) == 0 {
			return nil
		}
		if len(doc.Fields) == 1 {
			f := doc.Fields[0]
			if f.Value.Kind == document.KindObject && !f.Value.IsEmptyContainer() {
				if strings.TrimSpace(f.Key) == "" {
					merged, err := b.processRootObject(f.Value, rootLabel)
					if err != nil {
						return err
					}
					if !merged {
						b.forceFixup = true
					}
					return nil
				}
				_, err := b.processRootObject(f.Value, f.Key)
				return err
			}
		}
		_, err := b.processRootObject(doc, rootLabel)
		return err

	case document.KindArray:
		if len(doc.Items) == 0 {
			return nil
		}
		rootID := b.containerNode(rootLabel, rootLabel, childCount(doc), doc)
		return b.processArray(doc, rootID, rootLabel, 1)

	default:
		// A bare scalar document becomes a single leaf node.
		b.valueLeaf(rootLabel, rootLabel, doc)
		return nil
	}
}

// processRootObject handles an object sitting at the top of the
// document. Its merged primitive leaf, when one exists, becomes the
// root anchor that complex children connect from; without primitives
// every complex child starts its own root and the fixup pass joins
// them. Reports whether a merged leaf was emitted.
func (b *builder) processRootObject(v *document.Value, label string) (bool, error) {
	p := classifyChildren(v.Fields)

	anchor := ""
	if len(p.primitives) > 0 {
		// The root leaf keeps the bare label as its ID since no
		// container competes for it.
		anchor = b.mergedLeaf(label, label, label, p.primitives)
	}
	for _, f := range p.complex {
		if err := b.processComplexField(f, anchor, label, 1); err != nil {
			return anchor != "", err
		}
	}
	return anchor != "", nil
}

// processComplexField emits a container node for a non-empty object or
// array property and descends into it.
func (b *builder) processComplexField(f document.Field, parentID, parentPath string, depth int) error {
	path := parentPath + "." + f.Key
	id := b.containerNode(f.Key, path, childCount(f.Value), f.Value)
	b.connect(parentID, id)
	return b.descend(f.Value, id, path, depth+1)
}

// descend dispatches on the value kind, guarding recursion depth.
func (b *builder) descend(v *document.Value, parentID, path string, depth int) error {
	if depth > b.maxDepth {
		return errors.New(errors.ErrCodeDepthExceeded,
			"document nesting exceeds %d levels at %s", b.maxDepth, path)
	}
	switch v.Kind {
	case document.KindObject:
		return b.processObject(v, parentID, path, depth)
	case document.KindArray:
		return b.processArray(v, parentID, path, depth)
	}
	return nil
}

// processObject emits one merged leaf for the object's primitive
// properties and one container per complex property, all connected from
// the object's own container node.
func (b *builder) processObject(v *document.Value, parentID, path string, depth int) error {
	p := classifyChildren(v.Fields)

	if len(p.primitives) > 0 {
		id := b.mergedLeaf(path+"/props", lastSegment(path), path, p.primitives)
		b.connect(parentID, id)
	}
	for _, f := range p.complex {
		if err := b.processComplexField(f, parentID, path, depth); err != nil {
			return err
		}
	}
	return nil
}

// processArray walks array items in order. Null items consume their
// index slot but emit nothing, keeping path indices aligned with source
// positions.
func (b *builder) processArray(v *document.Value, parentID, path string, depth int) error {
	for i, item := range v.Items {
		if item.Kind == document.KindNull {
			continue
		}
		itemPath := fmt.Sprintf("%s[%d]", path, i)

		switch item.Kind {
		case document.KindObject:
			if item.IsEmptyContainer() {
				continue
			}
			if err := b.processArrayObjectItem(item, i, parentID, itemPath, depth); err != nil {
				return err
			}

		case document.KindArray:
			if item.IsEmptyContainer() {
				continue
			}
			label := itemLabel(i)
			id := b.containerNode(label, itemPath, childCount(item), item)
			b.connect(parentID, id)
			if err := b.descend(item, id, itemPath, depth+1); err != nil {
				return err
			}

		default:
			id := b.valueLeaf(itemPath, itemPath, item)
			b.connect(parentID, id)
		}
	}
	return nil
}

// processArrayObjectItem decides whether an object item needs an
// intermediate node.
//
// An intermediate is required when the object has primitive children or
// more than one complex child. With zero primitives and exactly one
// complex child the intermediate is skipped and the child's container
// connects straight to the array's parent, flattening one level. This
// collapse keeps arrays of uniform single-field wrapper objects from
// producing chains of pointless wrapper nodes.
func (b *builder) processArrayObjectItem(item *document.Value, idx int, parentID, itemPath string, depth int) error {
	p := classifyChildren(item.Fields)

	if len(p.primitives) == 0 && len(p.complex) == 0 {
		return nil // only empty containers inside
	}

	if len(p.primitives) == 0 && len(p.complex) == 1 {
		return b.processComplexField(p.complex[0], parentID, itemPath, depth)
	}

	var interID string
	if len(p.primitives) > 0 {
		interID = b.mergedLeaf(itemPath, itemLabel(idx), itemPath, p.primitives)
	} else {
		interID = b.containerNode(itemLabel(idx), itemPath, childCount(item), item)
	}
	b.connect(parentID, interID)

	for _, f := range p.complex {
		if err := b.processComplexField(f, interID, itemPath, depth); err != nil {
			return err
		}
	}
	return nil
}

// connect appends a connector from src to dst. An empty src means dst
// is a root and gets no incoming edge. Duplicate ordered pairs are
// dropped.
func (b *builder) connect(src, dst string) {
	if src == "" {
		return
	}
	id := src + "-" + dst
	if b.edgeSeen[id] {
		return
	}
	b.edgeSeen[id] = true
	b.connectors = append(b.connectors, Connector{ID: id, SourceID: src, TargetID: dst})
}

// nextAnnotationID hands out build-scoped annotation identifiers.
func (b *builder) nextAnnotationID() string {
	b.annSeq++
	return fmt.Sprintf("a%d", b.annSeq)
}

// mergedLeaf emits one leaf node merging the given primitive fields as
// ordered (key, value) annotation pairs. Returns the node ID.
func (b *builder) mergedLeaf(id, title, path string, fields []document.Field) string {
	n := Node{
		ID:     id,
		IsLeaf: true,
		Path:   path,
		Title:  title,
	}

	var lines []string
	for _, f := range fields {
		formatted := FormatValue(f.Value.Raw)
		n.Annotations = append(n.Annotations,
			Annotation{ID: b.nextAnnotationID(), Content: f.Key},
			Annotation{ID: b.nextAnnotationID(), Content: formatted},
		)
		lines = append(lines, f.Key+": "+formatted)
	}
	n.MergedContent = strings.Join(lines, "\n")
	n.ActualData = n.MergedContent

	b.addNode(n)
	return id
}

// valueLeaf emits a leaf node for a single scalar (array items and bare
// scalar documents). Returns the node ID.
func (b *builder) valueLeaf(id, path string, v *document.Value) string {
	formatted := FormatValue(v.Raw)
	n := Node{
		ID:            id,
		IsLeaf:        true,
		Path:          path,
		Title:         formatted,
		MergedContent: formatted,
		ActualData:    formatted,
		Annotations: []Annotation{
			{ID: b.nextAnnotationID(), Content: formatted},
		},
	}
	b.addNode(n)
	return id
}

// containerNode emits a container node with a label annotation and a
// child-count badge. Returns the node ID (the node's path).
func (b *builder) containerNode(label, path string, count int, v *document.Value) string {
	badge := fmt.Sprintf("{%d}", count)
	n := Node{
		ID:            path,
		IsLeaf:        false,
		Path:          path,
		Title:         label,
		MergedContent: label + " " + badge,
		ActualData:    v.EncodeJSON(),
		Annotations: []Annotation{
			{ID: b.nextAnnotationID(), Content: label},
			{ID: b.nextAnnotationID(), Content: badge},
		},
	}
	b.addNode(n)
	return n.ID
}

// addNode finalizes presentation fields and appends the node.
func (b *builder) addNode(n Node) {
	n.Width, n.Height = estimateSize(n.MergedContent)
	n.Meta = map[string]any{
		MetaIsLeaf:        n.IsLeaf,
		MetaMergedContent: n.MergedContent,
	}
	b.nodes = append(b.nodes, n)
}

// Text metrics for the node size estimate. Presentation convenience
// only; renderers are free to measure properly.
const (
	charWidth  = 8.0
	lineHeight = 18.0
	padX       = 12.0
	padY       = 8.0
)

// estimateSize derives a fixed display size from the rendered text.
func estimateSize(content string) (w, h float64) {
	lines := strings.Split(content, "\n")
	maxLen := 1
	for _, line := range lines {
		if n := len([]rune(line)); n > maxLen {
			maxLen = n
		}
	}
	return float64(maxLen)*charWidth + 2*padX, float64(len(lines))*lineHeight + 2*padY
}

// itemLabel names array-item container nodes.
func itemLabel(i int) string {
	return fmt.Sprintf("Item %d", i)
}

// lastSegment returns the final key or index component of a path.
func lastSegment(path string) string {
	if i := strings.LastIndexAny(path, "."); i >= 0 {
		return path[i+1:]
	}
	return path
}
