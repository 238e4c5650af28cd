package brotli

// Literal context modes, block-type/context-map machinery (spec.md §4.3).
//
// A literal block's context mode selects how the two most recently
// emitted output bytes are folded into a 6-bit context id; the context
// id (together with the block's type) then selects which of the
// meta-block's literal Huffman trees decodes the next literal. This
// implementation always encodes with literalContextLSB6 (grounded on the
// teacher's own default quality-path behavior).
//
// UTF8 and Signed both require RFC 7932 §7.1's 256-entry Lut0/Lut1/Lut2
// tables verbatim (spec.md §4.3, §9): any quantization of the previous
// two bytes that isn't that exact table produces context ids a real
// encoder's literal-tree assignment never used, corrupting the decoded
// literal stream without ever raising an error. Since those tables could
// not be recovered from the retrieved reference sources (only call sites
// to a BROTLI_CONTEXT_LUT helper were present, never its table
// definition — see DESIGN.md), this implementation rejects streams that
// declare either mode with UnsupportedContextMode instead of guessing.
type literalContextMode uint8

const (
	literalContextLSB6 literalContextMode = iota
	literalContextMSB6
	literalContextUTF8
	literalContextSigned
)

func literalContextModeSupported(mode literalContextMode) bool {
	return mode == literalContextLSB6 || mode == literalContextMSB6
}

func literalContextID(mode literalContextMode, p1, p2 byte) uint8 {
	switch mode {
	case literalContextLSB6:
		return p1 & 0x3F
	default: // literalContextMSB6; callers must reject UTF8/Signed earlier
		return p1 >> 2
	}
}

// distanceContextID derives the 2-bit distance context from a copy
// length, per spec.md §4.3: short copies get their own contexts so the
// distance Huffman tree can specialize for the common "short match"
// case.
func distanceContextID(copyLen uint32) uint8 {
	switch {
	case copyLen >= 4:
		return 3
	default:
		return uint8(copyLen) - 2
	}
}

// contextMap is a decoded/encoded mapping from (blockType, contextID) to
// which of a category's Huffman trees should be used.
type contextMap struct {
	contextsPerType int
	numTrees        int
	values          []byte // len == numBlockTypes*contextsPerType
}

func (m *contextMap) treeIndex(blockType int, ctx uint8) int {
	return int(m.values[blockType*m.contextsPerType+int(ctx)])
}

const maxContextMapRLEPrefix = 16

// readContextMap decodes a context map for a category with the given
// number of block types and per-type context count (64 for literals, 4
// for distances; commands carry no context map and are not routed
// through this function).
func readContextMap(br *bitReader, numBlockTypes, contextsPerType int) (*contextMap, error) {
	numEntries := numBlockTypes * contextsPerType

	v, err := readVarint(br)
	if err != nil {
		return nil, err
	}
	numTrees := int(v) + 1

	useIMTF, err := br.Read(1)
	if err != nil {
		return nil, err
	}

	values := make([]byte, numEntries)
	if numTrees > 1 {
		code, err := ReadPrefixCode(br, numTrees+maxContextMapRLEPrefix)
		if err != nil {
			return nil, err
		}
		pos := 0
		for pos < numEntries {
			sym, err := code.ReadSymbol(br)
			if err != nil {
				return nil, err
			}
			switch {
			case sym == 0:
				values[pos] = 0
				pos++
			case int(sym) <= maxContextMapRLEPrefix:
				extraBits := uint(sym - 1)
				extra, err := br.Read(extraBits)
				if err != nil {
					return nil, err
				}
				count := (1 << extraBits) + int(extra)
				for k := 0; k < count && pos < numEntries; k++ {
					values[pos] = 0
					pos++
				}
			default:
				values[pos] = byte(int(sym) - maxContextMapRLEPrefix)
				pos++
			}
		}
	}

	if useIMTF == 1 {
		inverseMoveToFront(values, numTrees)
	}

	for _, v := range values {
		if int(v) >= numTrees {
			return nil, decodeErrorf(InvalidContextMap, "tree index %d >= numTrees %d", v, numTrees)
		}
	}

	return &contextMap{contextsPerType: contextsPerType, numTrees: numTrees, values: values}, nil
}

// inverseMoveToFront undoes a move-to-front transform in place: each
// values[i] is treated as a rank into a list initially [0..numTrees-1],
// replaced by the symbol at that rank, which is then moved to the front.
func inverseMoveToFront(values []byte, numTrees int) {
	mtf := make([]byte, numTrees)
	for i := range mtf {
		mtf[i] = byte(i)
	}
	for i, rank := range values {
		idx := int(rank)
		if idx >= len(mtf) {
			idx = len(mtf) - 1
		}
		sym := mtf[idx]
		copy(mtf[1:idx+1], mtf[0:idx])
		mtf[0] = sym
		values[i] = sym
	}
}

// moveToFront is the forward transform used by the encoder: every
// values[i] (a literal tree index) is replaced with its current rank in
// the front-coded list, and promoted to rank 0.
func moveToFront(values []byte, numTrees int) {
	mtf := make([]byte, numTrees)
	for i := range mtf {
		mtf[i] = byte(i)
	}
	for i, sym := range values {
		idx := 0
		for mtf[idx] != sym {
			idx++
		}
		copy(mtf[1:idx+1], mtf[0:idx])
		mtf[0] = sym
		values[i] = byte(idx)
	}
}

// writeContextMap writes a context map built from the given per-entry
// tree indices (length numBlockTypes*contextsPerType). With more than one
// tree it always applies move-to-front and then run-length-encodes runs
// of rank 0.
func writeContextMap(bw *bitWriter, values []byte, numTrees int) {
	writeVarint(bw, uint32(numTrees-1))

	if numTrees <= 1 {
		bw.WriteBit(false)
		return
	}

	coded := append([]byte(nil), values...)
	moveToFront(coded, numTrees)
	bw.WriteBit(true)

	freqs := make([]uint32, numTrees+maxContextMapRLEPrefix)
	type op struct {
		sym   uint32
		extra uint32
		bits  uint
	}
	var ops []op

	i := 0
	for i < len(coded) {
		if coded[i] == 0 {
			j := i
			for j < len(coded) && coded[j] == 0 {
				j++
			}
			runLen := j - i
			for runLen > 0 {
				bits := uint(1)
				for bits < maxContextMapRLEPrefix && (1<<bits) <= runLen {
					bits++
				}
				if bits > maxContextMapRLEPrefix {
					bits = maxContextMapRLEPrefix
				}
				chunk := runLen
				if max := 1 << bits; chunk > max {
					chunk = max
				}
				sym := uint32(bits)
				extra := uint32(chunk - (1 << (bits - 1)))
				if chunk < (1 << (bits - 1)) {
					// Too small for this prefix; fall back to raw zero.
					ops = append(ops, op{sym: 0})
					freqs[0]++
					i++
					runLen--
					continue
				}
				ops = append(ops, op{sym: sym, extra: extra, bits: bits - 1})
				freqs[sym]++
				i += chunk
				runLen -= chunk
			}
			continue
		}
		sym := uint32(coded[i]) + maxContextMapRLEPrefix
		ops = append(ops, op{sym: sym})
		freqs[sym]++
		i++
	}

	code := WritePrefixCode(bw, freqs)
	for _, o := range ops {
		code.WriteSymbol(bw, o.sym)
		if o.bits > 0 {
			bw.WriteBits(o.extra, o.bits)
		}
	}
}
