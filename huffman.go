package brotli

import "sort"

// Canonical, length-limited Huffman ("prefix") codes, built and consumed
// the way the format specification's "complex prefix code" and "simple
// prefix code" framings describe them (spec.md §4.2). Code lengths are
// chosen by the package-merge (coin-collector) algorithm so that no code
// exceeds maxCodeLen bits even for skewed frequency distributions; the
// simpler repeated-Kraft-adjustment loop the format allows is not needed
// once package-merge is in hand.

const maxCodeLen = 15

// prefixCode is a built Huffman code over some alphabet: an encode side
// (code + length per symbol) and a decode side (a flat table indexed by
// the next maxLen peeked bits, the same technique used for the small
// fixed code-length-code-length table in tables.go).
type prefixCode struct {
	maxLen  uint
	decSym  []uint32
	decLen  []uint
	encCode []uint32
	encLen  []uint
}

// pmItem is one "coin" in the package-merge construction: a weight and,
// for every original symbol, how many times that symbol is bundled into
// this coin.
type pmItem struct {
	weight uint64
	counts []uint32
}

// buildCodeLengths runs package-merge over freqs and returns a code
// length per symbol, none exceeding maxBits. Symbols with zero frequency
// receive length 0 (unused, no code assigned).
func buildCodeLengths(freqs []uint32, maxBits uint) []uint {
	n := len(freqs)
	lengths := make([]uint, n)

	var nonzero []int
	for i, f := range freqs {
		if f > 0 {
			nonzero = append(nonzero, i)
		}
	}
	if len(nonzero) <= 1 {
		for _, i := range nonzero {
			lengths[i] = 1
		}
		return lengths
	}

	order := append([]int(nil), nonzero...)
	sort.Slice(order, func(a, b int) bool {
		if freqs[order[a]] != freqs[order[b]] {
			return freqs[order[a]] < freqs[order[b]]
		}
		return order[a] < order[b]
	})

	m := len(order)
	original := make([]pmItem, m)
	for rank, idx := range order {
		c := make([]uint32, n)
		c[idx] = 1
		original[rank] = pmItem{weight: uint64(freqs[idx]), counts: c}
	}

	level := original
	for l := uint(2); l <= maxBits; l++ {
		packages := make([]pmItem, 0, len(level)/2)
		for i := 0; i+1 < len(level); i += 2 {
			a, b := level[i], level[i+1]
			c := make([]uint32, n)
			for j := range c {
				c[j] = a.counts[j] + b.counts[j]
			}
			packages = append(packages, pmItem{weight: a.weight + b.weight, counts: c})
		}
		merged := make([]pmItem, 0, len(packages)+len(original))
		merged = append(merged, packages...)
		merged = append(merged, original...)
		sort.SliceStable(merged, func(a, b int) bool { return merged[a].weight < merged[b].weight })
		level = merged
	}

	take := 2*m - 2
	if take > len(level) {
		take = len(level)
	}
	for i := 0; i < take; i++ {
		for j := 0; j < n; j++ {
			lengths[j] += uint(level[i].counts[j])
		}
	}
	return lengths
}

// assignCanonicalCodes turns a set of code lengths into canonical codes
// (ascending length, then ascending symbol index), following the same
// bl_count/next_code construction used throughout DEFLATE-family codecs.
// The returned codes are in "first bit transmitted is the conceptual
// high bit" order; callers that write them into an LSB-first bit stream
// must bit-reverse each code to its own length first.
func assignCanonicalCodes(lengths []uint) []uint32 {
	n := len(lengths)
	codes := make([]uint32, n)

	maxLen := uint(0)
	for _, l := range lengths {
		if l > maxLen {
			maxLen = l
		}
	}
	if maxLen == 0 {
		return codes
	}

	blCount := make([]uint32, maxLen+1)
	for _, l := range lengths {
		if l > 0 {
			blCount[l]++
		}
	}
	nextCode := make([]uint32, maxLen+1)
	code := uint32(0)
	for bits := uint(1); bits <= maxLen; bits++ {
		code = (code + blCount[bits-1]) << 1
		nextCode[bits] = code
	}
	for sym := 0; sym < n; sym++ {
		l := lengths[sym]
		if l == 0 {
			continue
		}
		codes[sym] = nextCode[l]
		nextCode[l]++
	}
	return codes
}

// reverseBits reverses the low n bits of v.
func reverseBits(v uint32, n uint) uint32 {
	var r uint32
	for i := uint(0); i < n; i++ {
		r = (r << 1) | (v & 1)
		v >>= 1
	}
	return r
}

// bitsFor returns the number of bits needed to represent values 0..n-1,
// i.e. ceil(log2(n)), with bitsFor(1) == 0.
func bitsFor(n int) uint {
	b := uint(0)
	for (1 << b) < n {
		b++
	}
	return b
}

// newPrefixCodeFromLengths builds both the encode and decode sides of a
// canonical prefix code from per-symbol lengths (0 meaning "unused").
func newPrefixCodeFromLengths(lengths []uint) *prefixCode {
	n := len(lengths)
	maxLen := uint(0)
	for _, l := range lengths {
		if l > maxLen {
			maxLen = l
		}
	}
	if maxLen == 0 {
		maxLen = 1
	}

	msbCodes := assignCanonicalCodes(lengths)

	encCode := make([]uint32, n)
	encLen := make([]uint, n)
	decSym := make([]uint32, 1<<maxLen)
	decLen := make([]uint, 1<<maxLen)

	for sym := 0; sym < n; sym++ {
		l := lengths[sym]
		if l == 0 {
			continue
		}
		rc := reverseBits(msbCodes[sym], l)
		encCode[sym] = rc
		encLen[sym] = l

		for high := uint32(0); high < uint32(1)<<(maxLen-l); high++ {
			slot := rc | (high << l)
			decSym[slot] = uint32(sym)
			decLen[slot] = l
		}
	}

	return &prefixCode{
		maxLen:  maxLen,
		decSym:  decSym,
		decLen:  decLen,
		encCode: encCode,
		encLen:  encLen,
	}
}

// ReadSymbol decodes one symbol using this code.
func (c *prefixCode) ReadSymbol(br *bitReader) (uint32, error) {
	if c.maxLen == 0 {
		// Degenerate single-symbol code: no bits on the wire.
		return c.decSym[0], nil
	}
	peek, err := br.Peek(c.maxLen)
	if err != nil {
		return 0, err
	}
	l := c.decLen[peek]
	if l == 0 {
		return 0, decodeErrorf(InvalidPrefixCode, "no code for peeked bits")
	}
	br.Drop(l)
	return c.decSym[peek], nil
}

// WriteSymbol encodes one symbol using this code.
func (c *prefixCode) WriteSymbol(bw *bitWriter, sym uint32) {
	if c.maxLen == 0 {
		// Degenerate single-symbol code: no bits on the wire.
		return
	}
	bw.WriteBits(c.encCode[sym], c.encLen[sym])
}

// ReadPrefixCode reads a prefix code over an alphabet of the given size.
// A 1-bit selector comes first: 1 selects the simple encoding, 0 the
// complex encoding, which then reads its own 2-bit HSKIP. This is not the
// RFC 7932 layout, in which a single 2-bit HSKIP field with the value 1
// marks a simple code, so prefix codes from other encoders are not read
// correctly.
func ReadPrefixCode(br *bitReader, alphabetSize int) (*prefixCode, error) {
	isSimple, err := br.Read(1)
	if err != nil {
		return nil, err
	}
	if isSimple == 1 {
		return readSimplePrefixCode(br, alphabetSize)
	}
	return readComplexPrefixCode(br, alphabetSize)
}

func readSimplePrefixCode(br *bitReader, alphabetSize int) (*prefixCode, error) {
	nsymBits, err := br.Read(2)
	if err != nil {
		return nil, err
	}
	nsym := int(nsymBits) + 1

	symBits := bitsFor(alphabetSize)
	syms := make([]int, nsym)
	for i := 0; i < nsym; i++ {
		v, err := br.Read(symBits)
		if err != nil {
			return nil, err
		}
		if int(v) >= alphabetSize {
			return nil, decodeErrorf(InvalidPrefixCode, "simple code symbol %d out of range", v)
		}
		syms[i] = int(v)
	}

	if nsym == 1 {
		// Degenerate: a single symbol, no body bits ever transmitted for it.
		return (degenerateCode{sym: uint32(syms[0])}).asPrefixCode(), nil
	}

	lengths := make([]uint, alphabetSize)
	switch nsym {
	case 2:
		lengths[syms[0]] = 1
		lengths[syms[1]] = 1
	case 3:
		sort.Ints(syms)
		lengths[syms[0]] = 1
		lengths[syms[1]] = 2
		lengths[syms[2]] = 2
	case 4:
		treeSelect, err := br.Read(1)
		if err != nil {
			return nil, err
		}
		sort.Ints(syms)
		if treeSelect == 0 {
			lengths[syms[0]] = 1
			lengths[syms[1]] = 2
			lengths[syms[2]] = 3
			lengths[syms[3]] = 3
		} else {
			for _, s := range syms {
				lengths[s] = 2
			}
		}
	}

	return newPrefixCodeFromLengths(lengths), nil
}

// degenerateCode supports the single-symbol simple prefix code, which has
// no transmitted bits at all: every ReadSymbol call returns the same
// value without consuming input.
type degenerateCode struct {
	sym uint32
}

func (d degenerateCode) asPrefixCode() *prefixCode {
	return &prefixCode{
		maxLen:  0,
		decSym:  []uint32{d.sym},
		decLen:  []uint{0},
		encCode: nil,
		encLen:  nil,
	}
}

func readComplexPrefixCode(br *bitReader, alphabetSize int) (*prefixCode, error) {
	hskip, err := br.Read(2)
	if err != nil {
		return nil, err
	}

	var clLengths [18]uint
	space := 32
	numCodes := 0
	for i := int(hskip); i < 18 && space > 0; i++ {
		peek, err := br.Peek(4)
		if err != nil {
			return nil, err
		}
		l := clclLength[peek]
		if l == 0 || !clclValid[peek] {
			return nil, decodeErrorf(InvalidPrefixCode, "bad code-length-code-length selector")
		}
		br.Drop(l)
		v := clclValue[peek]
		clLengths[codeLengthCodeOrder[i]] = uint(v)
		if v != 0 {
			numCodes++
			space -= 32 >> v
		}
	}
	if numCodes < 1 {
		return nil, decodeErrorf(InvalidPrefixCode, "complex code has no code-length symbols")
	}

	clCode := newPrefixCodeFromLengths(clLengths[:])

	lengths := make([]uint, alphabetSize)
	var prev uint = 8
	i := 0
	for i < alphabetSize {
		sym, err := clCode.ReadSymbol(br)
		if err != nil {
			return nil, err
		}
		switch {
		case sym < codeLengthRepeatPrevious:
			lengths[i] = uint(sym)
			if sym != 0 {
				prev = uint(sym)
			}
			i++
		case sym == codeLengthRepeatPrevious:
			extra, err := br.Read(2)
			if err != nil {
				return nil, err
			}
			count := 3 + int(extra)
			for k := 0; k < count && i < alphabetSize; k++ {
				lengths[i] = prev
				i++
			}
		default: // codeLengthRepeatZero
			extra, err := br.Read(3)
			if err != nil {
				return nil, err
			}
			count := 3 + int(extra)
			for k := 0; k < count && i < alphabetSize; k++ {
				lengths[i] = 0
				i++
			}
		}
	}

	return newPrefixCodeFromLengths(lengths), nil
}

// WritePrefixCode builds a code for the given per-symbol frequencies
// (length alphabetSize) and writes it to bw, returning the code so the
// caller can reuse it to encode the symbol stream the frequencies were
// drawn from.
func WritePrefixCode(bw *bitWriter, freqs []uint32) *prefixCode {
	alphabetSize := len(freqs)

	var distinct []int
	for i, f := range freqs {
		if f > 0 {
			distinct = append(distinct, i)
		}
	}

	if len(distinct) <= 4 && len(distinct) >= 1 {
		return writeSimplePrefixCode(bw, alphabetSize, distinct)
	}
	if len(distinct) == 0 {
		// No symbols ever occur; emit a trivial one-symbol code for 0
		// so the alphabet still has a usable code.
		return writeSimplePrefixCode(bw, alphabetSize, []int{0})
	}

	lengths := buildCodeLengths(freqs, maxCodeLen)
	writeComplexPrefixCode(bw, lengths)
	return newPrefixCodeFromLengths(lengths)
}

func writeSimplePrefixCode(bw *bitWriter, alphabetSize int, syms []int) *prefixCode {
	bw.WriteBit(true)
	nsym := len(syms)
	bw.WriteBits(uint32(nsym-1), 2)

	symBits := bitsFor(alphabetSize)
	for _, s := range syms {
		bw.WriteBits(uint32(s), symBits)
	}

	lengths := make([]uint, alphabetSize)
	sorted := append([]int(nil), syms...)
	sort.Ints(sorted)
	switch nsym {
	case 1:
		lengths[syms[0]] = 0
		return (degenerateCode{sym: uint32(syms[0])}).asPrefixCode()
	case 2:
		lengths[sorted[0]] = 1
		lengths[sorted[1]] = 1
	case 3:
		lengths[sorted[0]] = 1
		lengths[sorted[1]] = 2
		lengths[sorted[2]] = 2
	case 4:
		bw.WriteBit(false) // tree-select: always the 1,2,3,3 shape
		lengths[sorted[0]] = 1
		lengths[sorted[1]] = 2
		lengths[sorted[2]] = 3
		lengths[sorted[3]] = 3
	}
	return newPrefixCodeFromLengths(lengths)
}

// rleOp is one instruction in the code-length RLE stream: either a
// literal code length or a repeat-previous/repeat-zero escape.
type rleOp struct {
	sym   uint32 // 0..15 literal, or codeLengthRepeatPrevious/Zero
	extra uint32
	nbits uint
}

func buildCodeLengthRLE(lengths []uint) []rleOp {
	var ops []rleOp
	n := len(lengths)
	i := 0
	for i < n {
		v := lengths[i]
		j := i + 1
		for j < n && lengths[j] == v {
			j++
		}
		runLen := j - i

		ops = append(ops, rleOp{sym: uint32(v)})
		remaining := runLen - 1
		i++

		for remaining > 0 {
			if v == 0 {
				chunk := remaining
				if chunk > 10 {
					chunk = 10
				}
				if chunk < 3 {
					for k := 0; k < chunk; k++ {
						ops = append(ops, rleOp{sym: 0})
					}
					remaining -= chunk
					i += chunk
					continue
				}
				ops = append(ops, rleOp{sym: codeLengthRepeatZero, extra: uint32(chunk - 3), nbits: 3})
				remaining -= chunk
				i += chunk
			} else {
				chunk := remaining
				if chunk > 6 {
					chunk = 6
				}
				if chunk < 3 {
					for k := 0; k < chunk; k++ {
						ops = append(ops, rleOp{sym: uint32(v)})
					}
					remaining -= chunk
					i += chunk
					continue
				}
				ops = append(ops, rleOp{sym: codeLengthRepeatPrevious, extra: uint32(chunk - 3), nbits: 2})
				remaining -= chunk
				i += chunk
			}
		}
	}
	return ops
}

func writeComplexPrefixCode(bw *bitWriter, lengths []uint) {
	bw.WriteBit(false)

	ops := buildCodeLengthRLE(lengths)

	var clFreqs [18]uint32
	for _, op := range ops {
		clFreqs[op.sym]++
	}
	clLengths := buildCodeLengths(clFreqs[:], 5)
	clCode := newPrefixCodeFromLengths(clLengths)

	bw.WriteBits(0, 2) // HSKIP: no leading entries are skipped.
	// Entries go out in transmission order until the space budget of 32
	// is used up, the same point at which readComplexPrefixCode stops
	// reading; the entries after that point are all zero.
	space := 32
	for i := 0; i < 18 && space > 0; i++ {
		sym := codeLengthCodeOrder[i]
		l, c := clclCodeOf(uint32(clLengths[sym]))
		bw.WriteBits(c, l)
		if clLengths[sym] != 0 {
			space -= 32 >> clLengths[sym]
		}
	}

	for _, op := range ops {
		clCode.WriteSymbol(bw, op.sym)
		if op.nbits > 0 {
			bw.WriteBits(op.extra, op.nbits)
		}
	}
}

