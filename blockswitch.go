package brotli

// Block-type switching (spec.md §4.3, §4.7): within a meta-block, each of
// the three categories (literals, commands, distances) is split into
// blocks, every block using a single Huffman tree (or context-mapped set
// of trees) chosen by its block type. A block-type code of 0 selects the
// previously used type (the older slot of a two-entry history), 1 selects
// the type after the current one (wrapping around), and any other code c
// names type c-2 directly.
//
// This encoder never splits a category into more than one block type or
// block: NBLTYPES is always 1, matching a single-pass implementation
// with no block-splitting heuristic (spec.md's explicit non-goal). The
// decoder still implements the general mechanism in full, since it must
// accept streams produced by encoders that do split.
type blockSwitchState struct {
	numTypes   int
	typeCode   *prefixCode
	lenCode    *prefixCode
	curType    int
	secondType int
	remaining  uint32
}

// readBlockSwitchState reads the block-type and block-length Huffman
// trees for a category (when it has more than one type) and the first
// block's length, per the meta-block header layout.
func readBlockSwitchState(br *bitReader, numTypes int) (*blockSwitchState, error) {
	s := &blockSwitchState{numTypes: numTypes, curType: 0, secondType: 1}
	if numTypes <= 1 {
		s.remaining = ^uint32(0)
		return s, nil
	}

	typeCode, err := ReadPrefixCode(br, numTypes+2)
	if err != nil {
		return nil, err
	}
	lenCode, err := ReadPrefixCode(br, numBlockLenSymbols)
	if err != nil {
		return nil, err
	}
	s.typeCode = typeCode
	s.lenCode = lenCode

	length, err := readBlockLength(br, lenCode)
	if err != nil {
		return nil, err
	}
	s.remaining = length
	return s, nil
}

func readBlockLength(br *bitReader, code *prefixCode) (uint32, error) {
	sym, err := code.ReadSymbol(br)
	if err != nil {
		return 0, err
	}
	if int(sym) >= numBlockLenSymbols {
		return 0, decodeErrorf(InvalidPrefixCode, "block length symbol %d out of range", sym)
	}
	pr := blockLengthPrefixCode[sym]
	extra, err := br.Read(uint(pr.extraBits))
	if err != nil {
		return 0, err
	}
	return pr.base + extra, nil
}

// CurrentType reports the block type the next symbol in this category
// should be decoded/encoded with.
func (s *blockSwitchState) CurrentType() int {
	return s.curType
}

// Advance must be called after each symbol attributed to the current
// block; when the block is exhausted it reads the next block's type and
// length.
func (s *blockSwitchState) Advance(br *bitReader) error {
	if s.numTypes <= 1 {
		return nil
	}
	s.remaining--
	if s.remaining != 0 {
		return nil
	}

	sym, err := s.typeCode.ReadSymbol(br)
	if err != nil {
		return err
	}
	var newType int
	switch {
	case sym == 0:
		newType = s.secondType
	case sym == 1:
		newType = (s.curType + 1) % s.numTypes
	default:
		newType = int(sym) - 2
	}
	if newType < 0 || newType >= s.numTypes {
		return decodeErrorf(InvalidPrefixCode, "block type %d out of range", newType)
	}
	s.secondType = s.curType
	s.curType = newType

	length, err := readBlockLength(br, s.lenCode)
	if err != nil {
		return err
	}
	s.remaining = length
	return nil
}
