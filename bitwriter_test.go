package brotli

import "testing"

func TestBitWriterRoundTrip(t *testing.T) {
	bw := newBitWriter()
	bw.WriteBits(0x05, 4)
	bw.WriteBits(0x1FF, 9)
	bw.WriteBit(true)
	bw.Align()

	br := newBitReader(bw.Bytes())
	v, err := br.Read(4)
	if err != nil || v != 0x05 {
		t.Fatalf("got %d, %v, want 5", v, err)
	}
	v, err = br.Read(9)
	if err != nil || v != 0x1FF {
		t.Fatalf("got %d, %v, want 0x1FF", v, err)
	}
	v, err = br.Read(1)
	if err != nil || v != 1 {
		t.Fatalf("got %d, %v, want 1", v, err)
	}
}

func TestBitWriterAlignPadsWithZero(t *testing.T) {
	bw := newBitWriter()
	bw.WriteBits(1, 1)
	bw.Align()
	if len(bw.Bytes()) != 1 {
		t.Fatalf("got %d bytes, want 1", len(bw.Bytes()))
	}
	if bw.Bytes()[0] != 1 {
		t.Fatalf("got %#x, want 0x01", bw.Bytes()[0])
	}
}

func TestBitWriterWriteBytesRequiresAlignment(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic writing bytes while not byte-aligned")
		}
	}()
	bw := newBitWriter()
	bw.WriteBits(1, 3)
	bw.WriteBytes([]byte{1, 2, 3})
}
