package diagram

// SuperRootNodeID is the fixed identifier of the synthetic super-root
// injected when a document yields more than one disconnected root.
const SuperRootNodeID = "__document__"

// DefaultRootLabel is the root identifier used when the document does
// not supply one (see the root normalization rules in Build).
const DefaultRootLabel = "root"

// Metadata keys guaranteed to be present in Node.Meta for downstream
// renderers.
const (
	MetaIsLeaf        = "isLeaf"
	MetaMergedContent = "mergedContent"
)

// Annotation is one text fragment rendered inside a node: a key label,
// a formatted value, or a child-count badge. IDs are assigned from a
// build-scoped counter and are unique within one diagram.
type Annotation struct {
	ID      string `json:"id,omitempty" bson:"id,omitempty"`
	Content string `json:"content" bson:"content"`
}

// Node is one visual unit of the diagram: a merged bag of primitive
// key/value pairs (IsLeaf), an object/array container with a label and
// child-count badge, or the synthetic super-root.
//
// ID is derived deterministically from the node's logical path, so two
// builds of the same document produce identical graphs. Width and
// Height are estimated from the rendered text as a convenience for
// layout collaborators; they are not part of the structural contract.
type Node struct {
	ID            string         `json:"id" bson:"id"`
	Width         float64        `json:"width" bson:"width"`
	Height        float64        `json:"height" bson:"height"`
	Annotations   []Annotation   `json:"annotations,omitempty" bson:"annotations,omitempty"`
	IsLeaf        bool           `json:"isLeaf" bson:"isLeaf"`
	MergedContent string         `json:"mergedContent,omitempty" bson:"mergedContent,omitempty"`
	Path          string         `json:"path,omitempty" bson:"path,omitempty"`
	Title         string         `json:"title,omitempty" bson:"title,omitempty"`
	ActualData    string         `json:"actualdata,omitempty" bson:"actualdata,omitempty"`
	Meta          map[string]any `json:"meta,omitempty" bson:"meta,omitempty"`
}

// IsSuperRoot reports whether the node is the synthetic super-root.
func (n *Node) IsSuperRoot() bool { return n.ID == SuperRootNodeID }

// Connector is a directed edge from a parent node to a child node.
// Its ID is "SourceID-TargetID", which also enforces that at most one
// connector exists per ordered node pair.
type Connector struct {
	ID       string `json:"id" bson:"id"`
	SourceID string `json:"sourceID" bson:"sourceID"`
	TargetID string `json:"targetID" bson:"targetID"`
}

// DiagramData is the output aggregate of one build: the ordered node
// and connector lists handed to the rendering collaborator. It is
// created fresh per build and never mutated afterwards.
type DiagramData struct {
	Nodes      []Node      `json:"nodes" bson:"nodes"`
	Connectors []Connector `json:"connectors" bson:"connectors"`
}

// IsEmpty reports whether the diagram has no nodes.
func (d *DiagramData) IsEmpty() bool { return len(d.Nodes) == 0 }

// Node returns the node with the given ID, or nil.
func (d *DiagramData) Node(id string) *Node {
	for i := range d.Nodes {
		if d.Nodes[i].ID == id {
			return &d.Nodes[i]
		}
	}
	return nil
}

// Roots returns the IDs of nodes with no incoming connector, in node
// order. After Build has run its fixup pass this is always zero or one
// ID.
func (d *DiagramData) Roots() []string {
	hasParent := make(map[string]bool, len(d.Connectors))
	for _, c := range d.Connectors {
		hasParent[c.TargetID] = true
	}
	var roots []string
	for _, n := range d.Nodes {
		if !hasParent[n.ID] {
			roots = append(roots, n.ID)
		}
	}
	return roots
}
