package gatt

import (
	"bytes"
	"testing"
)

func TestL2capWriterChunk(t *testing.T) {
	cases := []struct {
		mtu   uint16
		head  int
		chunk int
		ok    bool
	}{
		{mtu: 5, head: 0, chunk: 4, ok: true},
		{mtu: 5, head: 0, chunk: 5, ok: true},
		{mtu: 5, head: 0, chunk: 6, ok: false},
		{mtu: 5, head: 1, chunk: 3, ok: true},
		{mtu: 5, head: 1, chunk: 4, ok: true},
		{mtu: 5, head: 1, chunk: 5, ok: false},
	}

	for _, tt := range cases {
		w := newL2capWriter(tt.mtu)
		var want []byte
		for i := 0; i < tt.head; i++ {
			w.WriteByteFit(byte(i))
			want = append(want, byte(i))
		}
		w.Chunk()
		for i := 0; i < tt.chunk; i++ {
			w.WriteByteFit(byte(i))
			if tt.ok {
				want = append(want, byte(i))
			}
		}
		ok := w.Commit()
		if ok != tt.ok {
			t.Errorf("Chunk(%d %d %d) commit: got %t want %t", tt.mtu, tt.head, tt.chunk, ok, tt.ok)
			continue
		}
		if !bytes.Equal(want, w.Bytes()) {
			t.Errorf("Chunk(%d %d %d) write: got %x want %x", tt.mtu, tt.head, tt.chunk, w.Bytes(), want)
		}
	}
}

func TestL2capWriterNoPartialRecord(t *testing.T) {
	w := newL2capWriter(6)
	w.WriteByteFit(0xaa)
	w.Chunk()
	w.WriteUint16Fit(0x0102)
	w.WriteFit([]byte{3, 4, 5, 6}) // does not fit
	w.WriteByteFit(0x07)           // would fit on its own
	if w.Commit() {
		t.Errorf("commit of an oversized record: got true")
	}
	if want := []byte{0xaa}; !bytes.Equal(w.Bytes(), want) {
		t.Errorf("got %x want %x", w.Bytes(), want)
	}
}

func TestL2capWriterInPlace(t *testing.T) {
	buf := []byte{0x10, 0x01, 0x00, 0xff, 0xff, 0x00, 0x28, 0, 0, 0}
	w := newL2capWriterBuf(buf[:0], 64)
	w.WriteByteFit(0x11)
	w.Chunk()
	w.WriteUUIDFit(UUID16(0x1800))
	if !w.Commit() {
		t.Fatalf("commit: got false")
	}
	w.Chunk()
	copy(w.Free(4), "abcdef")
	w.Extend(4)
	w.Commit()
	if want := []byte{0x11, 0x00, 0x18, 'a', 'b', 'c', 'd'}; !bytes.Equal(w.Bytes(), want) {
		t.Errorf("got %x want %x", w.Bytes(), want)
	}
	if &w.Bytes()[0] != &buf[0] {
		t.Errorf("writer did not reuse its buffer")
	}

	// capacity bounds the pdu as well as the mtu
	w = newL2capWriterBuf(buf[:0], 64)
	w.Chunk()
	w.WriteFit(make([]byte, len(buf)+1))
	if w.Commit() {
		t.Errorf("write past capacity: commit got true")
	}
	if n := len(w.Free(100)); n != len(buf) {
		t.Errorf("Free: got %d bytes want %d", n, len(buf))
	}
}

func TestL2capWriterAbort(t *testing.T) {
	w := newL2capWriter(23)
	w.WriteByteFit(1)
	w.Chunk()
	w.WriteUint16Fit(0xffff)
	if n := w.ChunkLen(); n != 2 {
		t.Errorf("ChunkLen: got %d want 2", n)
	}
	w.Abort()
	if want := []byte{1}; !bytes.Equal(w.Bytes(), want) {
		t.Errorf("after abort: got %x want %x", w.Bytes(), want)
	}
}

func TestL2capWriterPanicDoubleChunk(t *testing.T) {
	defer func() { recover() }()
	w := newL2capWriter(5)
	w.Chunk()
	w.Chunk()
	t.Errorf("l2capWriter should panic on double-chunk")
}

func TestL2capWriterPanicCommitBeforeChunk(t *testing.T) {
	defer func() { recover() }()
	w := newL2capWriter(5)
	w.Commit()
	t.Errorf("l2capWriter should panic on commit-before-chunk")
}

func TestL2capWriterPanicDoubleCommit(t *testing.T) {
	defer func() { recover() }()
	w := newL2capWriter(5)
	w.Chunk()
	w.Commit()
	w.Commit()
	t.Errorf("l2capWriter should panic on double-commit")
}

func BenchmarkWriteUint16(b *testing.B) {
	for i := 0; i < b.N; i++ {
		w := newL2capWriter(17)
		w.WriteUint16Fit(0)
	}
}
