package brotli

// Static tables from RFC 7932, grounded on the equivalent constant tables
// in the teacher's brotli_bit_stream.go (kBlockLengthPrefixCode) and the
// insert/copy and range tables given explicitly in the format
// specification §§4.4-4.6.

// prefixRange describes a prefix-code bucket: the values it covers start
// at base and span 1<<extraBits further values, carried as extra bits.
type prefixRange struct {
	base      uint32
	extraBits uint32
}

// numBlockLenSymbols is the size of the block-length alphabet (RFC §9.2).
const numBlockLenSymbols = 26

// blockLengthPrefixCode maps a block-length code (0..25) to its base value
// and extra-bit count.
var blockLengthPrefixCode = [numBlockLenSymbols]prefixRange{
	{1, 2}, {5, 2}, {9, 2}, {13, 2},
	{17, 3}, {25, 3}, {33, 3}, {41, 3},
	{49, 4}, {65, 4}, {81, 4}, {97, 4},
	{113, 5}, {145, 5}, {177, 5}, {209, 5},
	{241, 6}, {305, 6},
	{369, 7},
	{497, 8},
	{753, 9},
	{1265, 10},
	{2289, 11},
	{4337, 12},
	{8433, 13},
	{16625, 24},
}

// blockLengthCodeFor returns the code whose range contains length.
func blockLengthCodeFor(length uint32) uint32 {
	code := uint32(0)
	for code < numBlockLenSymbols-1 && length >= blockLengthPrefixCode[code+1].base {
		code++
	}
	return code
}

// numInsertCopyCodes is the size of each of the insert-length and
// copy-length code tables (RFC §5, tables "Insert Lengths" / "Copy
// Lengths").
const numInsertCopyCodes = 24

var insertLengthPrefixCode = [numInsertCopyCodes]prefixRange{
	{0, 0}, {1, 0}, {2, 0}, {3, 0}, {4, 0}, {5, 0},
	{6, 1}, {8, 1},
	{10, 2}, {14, 2},
	{18, 3}, {26, 3},
	{34, 4}, {50, 4},
	{66, 5}, {98, 5},
	{130, 6}, {194, 7},
	{322, 8}, {578, 9},
	{1090, 10}, {2114, 12},
	{6210, 14},
	{22594, 24},
}

var copyLengthPrefixCode = [numInsertCopyCodes]prefixRange{
	{2, 0}, {3, 0}, {4, 0}, {5, 0}, {6, 0}, {7, 0}, {8, 0}, {9, 0},
	{10, 1}, {12, 1},
	{14, 2}, {18, 2},
	{22, 3}, {30, 3},
	{38, 4}, {54, 4},
	{70, 5}, {102, 5},
	{134, 6}, {198, 7},
	{326, 8}, {582, 9},
	{1094, 10},
	{2118, 24},
}

// codeForValue finds the highest code whose base is <= v within table,
// used by the encoder to choose an insert/copy length code.
func codeForValue(table []prefixRange, v uint32) uint32 {
	code := uint32(0)
	for i := range table {
		if table[i].base <= v {
			code = uint32(i)
		} else {
			break
		}
	}
	return code
}

// insertRangeLut and copyRangeLut decompose a combined insert-and-copy
// symbol (in the range 128..703) into the range index used to look up the
// base insert/copy codes (spec.md §4.6).
var insertRangeLut = [9]uint32{0, 0, 8, 8, 0, 16, 8, 16, 16}
var copyRangeLut = [9]uint32{0, 8, 0, 8, 16, 0, 16, 8, 16}

// numDistanceShortCodes is the number of implicit "short" distance codes,
// including code 0 (reuse newest ring-buffer distance).
const numDistanceShortCodes = 16

// distShortCodeIndexOffset and distShortCodeValueOffset give, for each of
// the 16 short distance codes, the ring-buffer slot (relative to the
// newest entry) and the additive offset applied to it. Code 0 is the
// special "reuse newest, no offset" case.
var distShortCodeIndexOffset = [numDistanceShortCodes]int{
	0, 1, 2, 3, 0, 0, 0, 0, 0, 0, 1, 1, 1, 1, 1, 1,
}

var distShortCodeValueOffset = [numDistanceShortCodes]int{
	0, 0, 0, 0, -1, 1, -2, 2, -3, 3, -1, 1, -2, 2, -3, 3,
}

// codeLengthCodeOrder is the order in which the 18 meta-Huffman code
// lengths are transmitted for a complex prefix code (spec.md §4.2).
var codeLengthCodeOrder = [18]int{1, 2, 3, 4, 0, 5, 17, 6, 16, 7, 8, 9, 10, 11, 12, 13, 14, 15}

// codeLengthRepeatPrevious and codeLengthRepeatZero are the two
// "copy-previous" escapes in the code-length alphabet.
const (
	codeLengthRepeatPrevious = 16
	codeLengthRepeatZero     = 17
)

// The 18 code lengths of a complex prefix code's meta-Huffman ("code
// length code lengths") are themselves drawn from the small alphabet
// {0,1,2,3,4,5} and are transmitted with a small fixed prefix code rather
// than a transmitted Huffman table. The code is this implementation's own
// prefix-free assignment, not the RFC 7932 one: 2-bit codes for 0 and 4,
// 4-bit codes for 3, 2, 1 and 5 (exact values in clclCodeOf below).
// clclLength/clclValue are a flat 16-entry
// decode table indexed by the next 4 peeked bits (LSB-first), following
// the same flat-table technique as the general Huffman decoder in
// huffman.go: a 2-bit code occupies every slot whose low 2 bits match it,
// a 4-bit code occupies exactly one slot. clclValid marks which of those
// assignments the implementation actually uses; unused slots can only
// appear in a malformed stream.
var clclLength = [16]uint{2, 4, 2, 4, 2, 4, 2, 4, 2, 0, 2, 0, 2, 0, 2, 0}
var clclValue = [16]uint32{0, 3, 4, 2, 0, 1, 4, 5, 0, 0, 4, 0, 0, 0, 4, 0}
var clclValid = [16]bool{true, true, true, true, true, true, true, true, true, false, true, false, true, false, true, false}

// clclCodeOf returns the (length, code) to transmit for a given
// code-length-code-length value 0..5, the encoder-side inverse of the
// table above.
func clclCodeOf(value uint32) (length uint, code uint32) {
	switch value {
	case 0:
		return 2, 0 // "00"
	case 4:
		return 2, 2 // "01" (bit0=0, bit1=1 -> low 2 bits = 0b10 = 2)
	case 3:
		return 4, 1 // slot 1
	case 2:
		return 4, 3 // slot 3
	case 1:
		return 4, 5 // slot 5
	case 5:
		return 4, 7 // slot 7
	default:
		panic("brotli: code-length-code-length out of range")
	}
}
