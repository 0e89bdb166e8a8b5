package extractor

import (
	"github.com/thomas-roos/aws-iot-fleetwise-edge/internal/dictionary"
	"github.com/thomas-roos/aws-iot-fleetwise-edge/internal/manifest"
	"github.com/thomas-roos/aws-iot-fleetwise-edge/internal/wireformat"
)

// traverseComplexType walks the complex-type graph reachable from rootTypeID
// using an explicit stack (never recursion, so stack depth is bounded
// regardless of graph depth — spec §9 Design Notes), and populates entry's
// ComplexTypeMap. It is only ever invoked once per (interface, message)
// entry, the first time that entry is created (spec §4.5).
func traverseComplexType(entry *dictionary.ComplexDataMessageFormat, rootTypeID uint32, m manifest.Manifest, log Logger) {
	stack := []uint32{rootTypeID}
	budget := dictionary.MaxComplexTypes
	truncated := false

	for len(stack) > 0 && budget > 0 {
		c := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if _, seen := entry.ComplexTypeMap[c]; seen {
			continue
		}

		t, ok := m.ComplexType(c)
		if !ok || t.Kind == wireformat.ComplexTypeInvalid {
			log.Warnf("complex type %d is invalid, skipping branch", c)
			continue
		}

		entry.ComplexTypeMap[c] = t
		budget--

		switch t.Kind {
		case wireformat.ComplexTypeArray:
			stack = append(stack, t.ElementTypeID)
		case wireformat.ComplexTypeStruct:
			stack = append(stack, t.MemberTypeIDs...)
		}
	}

	if len(stack) > 0 && budget == 0 {
		truncated = true
	}
	if truncated {
		log.Warnf("complex type traversal for root %d truncated at %d types", rootTypeID, dictionary.MaxComplexTypes)
	}
}
