package gatt

import "encoding/binary"

// l2capWriter helps create well-formed ATT PDUs that never exceed
// the negotiated MTU. Records are written between Chunk and Commit;
// a record that does not fit is dropped whole.
type l2capWriter struct {
	mtu     int
	b       []byte
	chunked bool
	mark    int  // length of b at Chunk
	full    bool // a write in the current chunk did not fit
}

// newL2capWriter returns a writer with room for mtu bytes.
func newL2capWriter(mtu uint16) *l2capWriter {
	return &l2capWriter{mtu: int(mtu), b: make([]byte, 0, mtu)}
}

// newL2capWriterBuf returns a writer that builds its PDU in place at
// the start of buf. The PDU is limited to mtu bytes and to cap(buf).
func newL2capWriterBuf(buf []byte, mtu int) *l2capWriter {
	if mtu > cap(buf) {
		mtu = cap(buf)
	}
	return &l2capWriter{mtu: mtu, b: buf[:0]}
}

// Chunk starts a record. Chunks may not nest.
func (w *l2capWriter) Chunk() {
	if w.chunked {
		panic("l2capWriter: chunk called twice without committing")
	}
	w.chunked = true
	w.mark = len(w.b)
	w.full = false
}

// Commit ends the current record. It reports whether the whole record
// fit; if not, the record is discarded.
func (w *l2capWriter) Commit() bool {
	if !w.chunked {
		panic("l2capWriter: commit without starting a chunk")
	}
	w.chunked = false
	if w.full {
		w.b = w.b[:w.mark]
		return false
	}
	return true
}

// Abort discards the current record.
func (w *l2capWriter) Abort() {
	if !w.chunked {
		panic("l2capWriter: abort without starting a chunk")
	}
	w.chunked = false
	w.b = w.b[:w.mark]
}

// ChunkLen returns the number of bytes written since Chunk.
func (w *l2capWriter) ChunkLen() int {
	return len(w.b) - w.mark
}

func (w *l2capWriter) fit(n int) bool {
	if w.full || len(w.b)+n > w.mtu {
		if w.chunked {
			w.full = true
		}
		return false
	}
	return true
}

// WriteByteFit writes b if it fits.
func (w *l2capWriter) WriteByteFit(b byte) bool {
	if !w.fit(1) {
		return false
	}
	w.b = append(w.b, b)
	return true
}

// WriteUint16Fit writes v in little-endian order if it fits.
func (w *l2capWriter) WriteUint16Fit(v uint16) bool {
	if !w.fit(2) {
		return false
	}
	w.b = append(w.b, 0, 0)
	binary.LittleEndian.PutUint16(w.b[len(w.b)-2:], v)
	return true
}

// WriteUUIDFit writes the wire encoding of u if it fits.
func (w *l2capWriter) WriteUUIDFit(u UUID) bool {
	if !w.fit(u.Len()) {
		return false
	}
	n := len(w.b)
	w.b = w.b[:n+u.Len()]
	u.MarshalTo(w.b[n:])
	return true
}

// WriteFit writes b if it fits.
func (w *l2capWriter) WriteFit(b []byte) bool {
	if !w.fit(len(b)) {
		return false
	}
	w.b = append(w.b, b...)
	return true
}

// Free returns the unused space of the PDU, at most max bytes.
// Data placed there is kept by a subsequent Extend.
func (w *l2capWriter) Free(max int) []byte {
	n := w.mtu - len(w.b)
	if n > max {
		n = max
	}
	if n < 0 {
		n = 0
	}
	return w.b[len(w.b) : len(w.b)+n]
}

// Extend grows the PDU by n bytes previously filled through Free.
func (w *l2capWriter) Extend(n int) {
	if !w.fit(n) {
		return
	}
	w.b = w.b[:len(w.b)+n]
}

// Bytes returns the PDU written so far.
func (w *l2capWriter) Bytes() []byte {
	return w.b
}
