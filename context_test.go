package brotli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLiteralContextIDModes(t *testing.T) {
	assert.EqualValues(t, 0x3F, literalContextID(literalContextLSB6, 0xFF, 0x00))
	assert.EqualValues(t, 0xFF>>2, literalContextID(literalContextMSB6, 0xFF, 0x00))
}

func TestLiteralContextModeSupported(t *testing.T) {
	assert.True(t, literalContextModeSupported(literalContextLSB6))
	assert.True(t, literalContextModeSupported(literalContextMSB6))
	assert.False(t, literalContextModeSupported(literalContextUTF8))
	assert.False(t, literalContextModeSupported(literalContextSigned))
}

func TestDistanceContextID(t *testing.T) {
	assert.EqualValues(t, 0, distanceContextID(2))
	assert.EqualValues(t, 1, distanceContextID(3))
	assert.EqualValues(t, 3, distanceContextID(4))
	assert.EqualValues(t, 3, distanceContextID(100))
}

func TestMoveToFrontRoundTrip(t *testing.T) {
	original := []byte{0, 2, 2, 1, 0, 3, 3, 3}
	coded := append([]byte(nil), original...)
	moveToFront(coded, 4)
	decoded := append([]byte(nil), coded...)
	inverseMoveToFront(decoded, 4)
	assert.Equal(t, original, decoded)
}

func TestContextMapRoundTripTrivial(t *testing.T) {
	bw := newBitWriter()
	values := make([]byte, 64)
	writeContextMap(bw, values, 1)
	bw.Align()

	br := newBitReader(bw.Bytes())
	cm, err := readContextMap(br, 1, 64)
	assert.NoError(t, err)
	assert.Equal(t, 1, cm.numTrees)
	assert.EqualValues(t, 0, cm.treeIndex(0, 5))
}

func TestContextMapRoundTripMultipleTrees(t *testing.T) {
	values := make([]byte, 2*64)
	for i := range values {
		values[i] = byte(i % 3)
	}

	bw := newBitWriter()
	writeContextMap(bw, values, 3)
	bw.Align()

	br := newBitReader(bw.Bytes())
	cm, err := readContextMap(br, 2, 64)
	assert.NoError(t, err)
	assert.Equal(t, 3, cm.numTrees)
	for blockType := 0; blockType < 2; blockType++ {
		for ctx := 0; ctx < 64; ctx++ {
			want := values[blockType*64+ctx]
			assert.EqualValues(t, want, cm.treeIndex(blockType, uint8(ctx)))
		}
	}
}
