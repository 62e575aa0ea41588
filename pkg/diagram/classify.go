package diagram

import "github.com/docgraph/docgraph/pkg/document"

// partitions holds an object's immediate children split into primitive
// and complex groups. Both slices preserve source-document order.
type partitions struct {
	primitives []document.Field // scalars and nulls
	complex    []document.Field // non-empty objects and arrays
}

// classifyChildren partitions an object's fields into primitive and
// complex children. Empty objects and empty arrays are dropped
// entirely: they contribute no node and no connector.
func classifyChildren(fields []document.Field) partitions {
	var p partitions
	for _, f := range fields {
		if f.Value.IsScalar() {
			p.primitives = append(p.primitives, f)
			continue
		}
		if f.Value.IsEmptyContainer() {
			continue
		}
		p.complex = append(p.complex, f)
	}
	return p
}

// childCount computes the integer shown in a container's {n} badge.
//
// Arrays report their literal element count, nulls included. Objects
// count groups rather than leaf scalars: one for the merged primitive
// group if any primitive property exists, plus one per array-valued or
// object-valued property. Empty containers were already dropped by the
// classifier and never count.
func childCount(v *document.Value) int {
	switch v.Kind {
	case document.KindArray:
		return len(v.Items)
	case document.KindObject:
		p := classifyChildren(v.Fields)
		n := len(p.complex)
		if len(p.primitives) > 0 {
			n++
		}
		return n
	}
	return 0
}
