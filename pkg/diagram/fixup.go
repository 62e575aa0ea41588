package diagram

// fixupRoots runs after the full traversal. When more than one node has
// no incoming connector, or the root normalizer skipped an anonymous
// envelope without leaving a merged root leaf, a synthetic super-root
// is appended and connected to every orphan root, guaranteeing a single
// connected tree.
//
// The super-root carries no annotations and no content; it exists only
// as a layout anchor.
func (b *builder) fixupRoots() {
	hasParent := make(map[string]bool, len(b.connectors))
	for _, c := range b.connectors {
		hasParent[c.TargetID] = true
	}

	var roots []string
	for _, n := range b.nodes {
		if !hasParent[n.ID] {
			roots = append(roots, n.ID)
		}
	}

	if len(roots) == 0 {
		return
	}
	if len(roots) == 1 && !b.forceFixup {
		return
	}

	super := Node{
		ID:     SuperRootNodeID,
		Width:  40,
		Height: 40,
		Meta: map[string]any{
			MetaIsLeaf:        false,
			MetaMergedContent: "",
		},
	}
	b.nodes = append(b.nodes, super)
	for _, r := range roots {
		b.connect(SuperRootNodeID, r)
	}
}
