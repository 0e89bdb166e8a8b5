package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thomas-roos/aws-iot-fleetwise-edge/internal/dictionary"
	"github.com/thomas-roos/aws-iot-fleetwise-edge/internal/manifest"
	"github.com/thomas-roos/aws-iot-fleetwise-edge/internal/wireformat"
)

func TestTraverseComplexType_StructOfPrimitives(t *testing.T) {
	m := manifest.NewBuilder().
		WithComplexType(1, wireformat.ComplexDataType{Kind: wireformat.ComplexTypeStruct, MemberTypeIDs: []uint32{2, 3}}).
		WithComplexType(2, wireformat.ComplexDataType{Kind: wireformat.ComplexTypePrimitive}).
		WithComplexType(3, wireformat.ComplexDataType{Kind: wireformat.ComplexTypePrimitive}).
		Build()
	entry, _ := dictionary.NewComplexDataDecoderDictionary().Entry("i", "m")
	log := &recordingLogger{}

	traverseComplexType(entry, 1, m, log)

	assert.Len(t, entry.ComplexTypeMap, 3)
	assert.Empty(t, log.warns)
}

func TestTraverseComplexType_ArrayFollowsElementType(t *testing.T) {
	m := manifest.NewBuilder().
		WithComplexType(1, wireformat.ComplexDataType{Kind: wireformat.ComplexTypeArray, ElementTypeID: 2}).
		WithComplexType(2, wireformat.ComplexDataType{Kind: wireformat.ComplexTypePrimitive}).
		Build()
	entry, _ := dictionary.NewComplexDataDecoderDictionary().Entry("i", "m")
	log := &recordingLogger{}

	traverseComplexType(entry, 1, m, log)

	assert.Len(t, entry.ComplexTypeMap, 2)
}

func TestTraverseComplexType_CyclicGraphTerminates(t *testing.T) {
	m := manifest.NewBuilder().
		WithComplexType(1, wireformat.ComplexDataType{Kind: wireformat.ComplexTypeStruct, MemberTypeIDs: []uint32{2}}).
		WithComplexType(2, wireformat.ComplexDataType{Kind: wireformat.ComplexTypeStruct, MemberTypeIDs: []uint32{1}}).
		Build()
	entry, _ := dictionary.NewComplexDataDecoderDictionary().Entry("i", "m")
	log := &recordingLogger{}

	traverseComplexType(entry, 1, m, log)

	assert.Len(t, entry.ComplexTypeMap, 2)
}

func TestTraverseComplexType_InvalidTypeLogsAndSkipsBranch(t *testing.T) {
	m := manifest.NewBuilder().
		WithComplexType(1, wireformat.ComplexDataType{Kind: wireformat.ComplexTypeStruct, MemberTypeIDs: []uint32{2, 99}}).
		WithComplexType(2, wireformat.ComplexDataType{Kind: wireformat.ComplexTypePrimitive}).
		Build()
	entry, _ := dictionary.NewComplexDataDecoderDictionary().Entry("i", "m")
	log := &recordingLogger{}

	traverseComplexType(entry, 1, m, log)

	require.NotEmpty(t, log.warns)
	assert.Len(t, entry.ComplexTypeMap, 2) // root + type 2, not type 99
}

func TestTraverseComplexType_OverflowTruncatesAndWarns(t *testing.T) {
	b := manifest.NewBuilder()
	memberIDs := make([]uint32, 0, dictionary.MaxComplexTypes+10)
	for i := uint32(2); i < uint32(dictionary.MaxComplexTypes)+12; i++ {
		memberIDs = append(memberIDs, i)
		b = b.WithComplexType(i, wireformat.ComplexDataType{Kind: wireformat.ComplexTypePrimitive})
	}
	b = b.WithComplexType(1, wireformat.ComplexDataType{Kind: wireformat.ComplexTypeStruct, MemberTypeIDs: memberIDs})
	m := b.Build()

	entry, _ := dictionary.NewComplexDataDecoderDictionary().Entry("i", "m")
	log := &recordingLogger{}

	traverseComplexType(entry, 1, m, log)

	assert.LessOrEqual(t, len(entry.ComplexTypeMap), dictionary.MaxComplexTypes)
	assert.NotEmpty(t, log.warns)
}
