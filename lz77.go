package brotli

import "encoding/binary"

// LZ77 match finder (spec.md §4.4). Grounded on the teacher's single-pass,
// single-candidate hash chain in compress_fragment_common.go/encoder_fast.go:
// a power-of-two hash table keyed by a 4-byte window, multiplied by the
// same odd constant (kHashMul32_a) and shifted down to the table's bit
// width, storing only the most recent position for each hash (no chaining,
// no lazy matching) — the "quality 0/1" fast path, which is the only
// encoder tier this implementation provides.
const (
	lzHashBits = 15
	lzHashSize = 1 << lzHashBits
	lzHashMul  = 0x1E35A7BD

	minMatchLength = 4
	maxMatchLength = 1 << 24
)

func lzHash4(b []byte) uint32 {
	v := binary.LittleEndian.Uint32(b)
	return (v * lzHashMul) >> (32 - lzHashBits)
}

// lzMatch is one LZ77 finding: a run of unmatched literal bytes followed
// by an optional copy (length 0 means "no copy", i.e. the final run of a
// block that ends without a match).
type lzMatch struct {
	unmatched int
	length    int
	distance  int
}

// findMatches greedily scans src for 4-byte-hash matches, returning the
// sequence of literal-run/copy pairs that reproduces src when replayed by
// the command/distance codecs. maxDistance bounds how far back a match may
// reference (the meta-block's window size).
func findMatches(src []byte, maxDistance int) []lzMatch {
	var table [lzHashSize]int32
	for i := range table {
		table[i] = -1
	}

	var matches []lzMatch
	n := len(src)
	i := 0
	lastEnd := 0

	for i+minMatchLength <= n {
		h := lzHash4(src[i : i+4])
		cand := table[h]
		table[h] = int32(i)

		if cand < 0 {
			i++
			continue
		}
		dist := i - int(cand)
		if dist <= 0 || dist > maxDistance {
			i++
			continue
		}

		length := matchLength(src, int(cand), i, n)
		if length < minMatchLength {
			i++
			continue
		}

		matches = append(matches, lzMatch{unmatched: i - lastEnd, length: length, distance: dist})
		i += length
		lastEnd = i
	}

	if lastEnd < n {
		matches = append(matches, lzMatch{unmatched: n - lastEnd})
	}
	return matches
}

// matchLength returns how many bytes starting at a and b agree, capped by
// the end of src and by the format's maximum copy length.
func matchLength(src []byte, a, b, n int) int {
	limit := n - b
	if limit > maxMatchLength {
		limit = maxMatchLength
	}
	l := 0
	for l < limit && src[a+l] == src[b+l] {
		l++
	}
	return l
}
