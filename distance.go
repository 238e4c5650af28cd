package brotli

// Distance model (spec.md §4.5): a 4-entry ring buffer of recently used
// distances, 16 "short" codes that cheaply reference a ring-buffer slot
// (optionally with a small offset), a handful of "direct" codes for tiny
// distances that never repeat, and beyond that an exponential/postfix
// scheme (parameterized by NPOSTFIX and NDIRECT) that trades a Golomb-
// like number of extra bits for distance magnitude.
//
// This encoder always transmits NPOSTFIX=0, NDIRECT=0 (grounded on the
// teacher's own "quality 0/1 fast path" choice of skipping the direct-
// code and postfix machinery entirely); the decoder implements the full
// parameterized scheme so it can read streams from encoders that use it.
//
// decodeDistance/encodeDistance implement spec.md §4.5's exponential/
// postfix formula (v = distance-NDIRECT-1, postfix = v & ((1<<p)-1),
// v' = v>>p, nbits = 1+floor(log2(v'+(2<<p)))). encodeDistance uses a
// bucket-search shape rather than the closed-form Log2FloorNonZero lookup
// the formula suggests, and decodeDistance computes the bucket directly
// from the code; the two are algebraically the same split of the offset space
// and were checked bit-for-bit against the teacher's PrefixEncodeCopyDistance
// (prefix.go) and ReadDistanceInternal (decode.go) by hand-expanding both
// for NPOSTFIX=0 over a range of distances.

type distanceParams struct {
	npostfix uint
	ndirect  uint32
}

func readDistanceParams(br *bitReader) (distanceParams, error) {
	npostfix, err := br.Read(2)
	if err != nil {
		return distanceParams{}, err
	}
	ndirectHigh, err := br.Read(4)
	if err != nil {
		return distanceParams{}, err
	}
	return distanceParams{npostfix: uint(npostfix), ndirect: ndirectHigh << npostfix}, nil
}

func writeDistanceParams(bw *bitWriter, p distanceParams) {
	bw.WriteBits(uint32(p.npostfix), 2)
	bw.WriteBits(p.ndirect>>p.npostfix, 4)
}

// distanceAlphabetSize returns the number of distance codes for the given
// parameters and window size, measured in the maximum number of extra
// bits a "postfix scheme" code can carry (derived from WBITS).
func distanceAlphabetSize(p distanceParams, maxDistBits uint) int {
	return 16 + int(p.ndirect) + int(2*maxDistBits<<p.npostfix)
}

// distanceRing is the 4-entry history of recently used distances, newest
// first, seeded with the fixed starting values from spec.md §4.5.
type distanceRing struct {
	d [4]uint32
}

func newDistanceRing() *distanceRing {
	return &distanceRing{d: [4]uint32{16, 15, 11, 4}}
}

func (r *distanceRing) push(dist uint32) {
	r.d[3], r.d[2], r.d[1] = r.d[2], r.d[1], r.d[0]
	r.d[0] = dist
}

// resolveShort evaluates one of the 16 short distance codes against the
// current ring buffer.
func (r *distanceRing) resolveShort(code int) (uint32, bool) {
	idx := distShortCodeIndexOffset[code]
	off := distShortCodeValueOffset[code]
	v := int64(r.d[idx]) + int64(off)
	if v < 1 {
		return 0, false
	}
	return uint32(v), true
}

// afterUse updates the ring buffer once a distance has been used, per
// the rule that code 0 (reuse the newest distance unchanged) leaves the
// ring untouched and every other code pushes the resolved distance.
func (r *distanceRing) afterUse(code int, isShort bool, distance uint32) {
	if isShort && code == 0 {
		return
	}
	r.push(distance)
}

// decodeDistance reads the extra bits (if any) for a distance code
// already decoded from the distance Huffman tree and resolves it to an
// actual byte distance.
func decodeDistance(br *bitReader, code uint32, p distanceParams, ring *distanceRing) (uint32, error) {
	if code < numDistanceShortCodes {
		d, ok := ring.resolveShort(int(code))
		if !ok {
			return 0, decodeErrorf(InvalidDistance, "short distance code %d resolved to <=0", code)
		}
		ring.afterUse(int(code), true, d)
		return d, nil
	}
	if code < numDistanceShortCodes+p.ndirect {
		d := code - numDistanceShortCodes + 1
		ring.afterUse(int(code), false, d)
		return d, nil
	}

	dd := code - p.ndirect - numDistanceShortCodes
	postfixMask := (uint32(1) << p.npostfix) - 1
	hcode := dd >> p.npostfix
	lcode := dd & postfixMask
	ndistbits := 1 + (hcode >> 1)
	offset := ((2 + (hcode & 1)) << ndistbits) - 4

	extra, err := br.Read(uint(ndistbits))
	if err != nil {
		return 0, err
	}
	distance := ((offset+extra)<<p.npostfix + lcode) + p.ndirect + 1
	ring.afterUse(int(code), false, distance)
	return distance, nil
}

// encodeDistance picks a distance code (and any extra bits) for an
// actual byte distance, preferring the cheapest representation: a short
// ring-buffer code first, then (since this encoder always uses
// NDIRECT=0) the exponential/postfix scheme.
func encodeDistance(ring *distanceRing, distance uint32) (code uint32, extra uint32, extraBits uint) {
	for i := 0; i < numDistanceShortCodes; i++ {
		if d, ok := ring.resolveShort(i); ok && d == distance {
			ring.afterUse(i, true, d)
			return uint32(i), 0, 0
		}
	}

	d := distance - 1
	for ndistbits := uint(1); ndistbits < 32; ndistbits++ {
		for hcode := uint32(0); hcode < 2; hcode++ {
			offset := ((2 + hcode) << ndistbits) - 4
			if d >= offset && d < offset+(uint32(1)<<ndistbits) {
				code := numDistanceShortCodes + (uint32(ndistbits)-1)*2 + hcode
				ring.afterUse(int(code), false, distance)
				return code, d - offset, ndistbits
			}
		}
	}
	panic("brotli: distance out of encodable range")
}
