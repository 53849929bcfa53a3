package gatt

import (
	"testing"

	"github.com/sirupsen/logrus"
)

func TestMTUOption(t *testing.T) {
	cases := []struct {
		n    int
		want int
	}{
		{n: 0, want: 23},
		{n: 22, want: 23},
		{n: 23, want: 23},
		{n: 185, want: 185},
		{n: 517, want: 517},
		{n: 4096, want: 517},
	}
	for _, tt := range cases {
		if got := NewServer(MTU(tt.n)).mtu; got != tt.want {
			t.Errorf("MTU(%d): got %d want %d", tt.n, got, tt.want)
		}
	}
}

func TestOptionRestore(t *testing.T) {
	s := NewServer(MTU(100))
	prev := s.Option(MTU(200))
	if s.mtu != 200 {
		t.Fatalf("Option(MTU(200)): got %d", s.mtu)
	}
	s.Option(prev)
	if s.mtu != 100 {
		t.Errorf("restored mtu: got %d want 100", s.mtu)
	}

	l := testLogger()
	prev = s.Option(Logger(l))
	if s.log != logrus.FieldLogger(l) {
		t.Errorf("Logger option not applied")
	}
	s.Option(prev)
	if s.log != logrus.FieldLogger(logrus.StandardLogger()) {
		t.Errorf("restored logger: got %v", s.log)
	}
	s.Option(Logger(nil))
	if s.log == nil {
		t.Errorf("Logger(nil) left no logger")
	}
}

func TestATTErrorString(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{err: ErrAttrNotFound, want: "att: attribute not found"},
		{err: ErrInvalidPDU, want: "att: invalid PDU"},
		{err: ATTError(0x80), want: "att: error 0x80"},
		{err: attErr{opcode: attOpReadReq, handle: 0x0118, status: ErrReadNotPermitted}, want: "att: read not permitted (opcode 0x0a, handle 0x0118)"},
	}
	for _, tt := range cases {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("got %q want %q", got, tt.want)
		}
	}
}

func TestErrorResponseInPlace(t *testing.T) {
	buf := make([]byte, 23)
	b := attErr{opcode: attOpWriteReq, handle: 0x8119, status: ErrAttrNotFound}.MarshalTo(buf[:0])
	want := []byte{attOpError, attOpWriteReq, 0x19, 0x81, 0x0a}
	if string(b) != string(want) {
		t.Errorf("got %x want %x", b, want)
	}
	if &b[0] != &buf[0] {
		t.Errorf("error response did not reuse the request buffer")
	}
	if b := (attErr{opcode: attOpReadReq}).MarshalTo(nil); len(b) != attErrLen {
		t.Errorf("into nil: got %d bytes", len(b))
	}
}
