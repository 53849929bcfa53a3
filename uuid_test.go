package gatt

import (
	"bytes"
	"errors"
	"testing"
)

var testBase = MustParseUUIDBase("09fc95c0-c111-11e3-9904-0002a5d5c51b")

func TestUUID16(t *testing.T) {
	u := UUID16(0x1800)
	if !u.IsSIG() || u.Len() != 2 {
		t.Errorf("UUID16: got sig %t len %d, want sig true len 2", u.IsSIG(), u.Len())
	}
	if want, got := []byte{0x00, 0x18}, u.Bytes(); !bytes.Equal(got, want) {
		t.Errorf("UUID16: got %x, want %x", got, want)
	}
}

func TestVendorUUIDWire(t *testing.T) {
	u := NewVendorUUID(testBase, 0x0002)
	want := []byte{0x1b, 0xc5, 0x02, 0x00, 0x02, 0x00, 0x04, 0x99, 0xe3, 0x11, 0x11, 0xc1, 0xc0, 0x95, 0xfc, 0x09}
	if got := u.Bytes(); !bytes.Equal(got, want) {
		t.Errorf("NewVendorUUID: got %x, want %x", got, want)
	}
	if got := u.String(); got != "09fc95c0-c111-11e3-9904-00020002c51b" {
		t.Errorf("String: got %s", got)
	}
	back, err := UUIDFromWire(want)
	if err != nil {
		t.Fatalf("UUIDFromWire: %v", err)
	}
	if !back.Equal(u) || back.Uint16() != 0x0002 {
		t.Errorf("UUIDFromWire(%x): got %s, want %s", want, back, u)
	}
}

func TestUUIDFromWire(t *testing.T) {
	cases := []struct {
		b   []byte
		sig bool
		err bool
	}{
		{b: []byte{0x00, 0x28}, sig: true},
		{b: make([]byte, 16)},
		{b: nil, err: true},
		{b: []byte{0x01}, err: true},
		{b: make([]byte, 4), err: true},
		{b: make([]byte, 17), err: true},
	}
	for _, tt := range cases {
		u, err := UUIDFromWire(tt.b)
		if tt.err {
			if !errors.Is(err, ErrInvalidUUIDLength) {
				t.Errorf("UUIDFromWire(%x): got err %v, want ErrInvalidUUIDLength", tt.b, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("UUIDFromWire(%x): %v", tt.b, err)
			continue
		}
		if u.IsSIG() != tt.sig {
			t.Errorf("UUIDFromWire(%x): got sig %t want %t", tt.b, u.IsSIG(), tt.sig)
		}
	}
}

func TestUUIDEqual(t *testing.T) {
	other := testBase
	other[0] ^= 0xff
	cases := []struct {
		a, b UUID
		want bool
	}{
		{a: UUID16(0x2800), b: UUID16(0x2800), want: true},
		{a: UUID16(0x2800), b: UUID16(0x2803), want: false},
		{a: UUID16(0x0001), b: NewVendorUUID(testBase, 0x0001), want: false},
		{a: NewVendorUUID(testBase, 0x0001), b: NewVendorUUID(testBase, 0x0001), want: true},
		{a: NewVendorUUID(testBase, 0x0001), b: NewVendorUUID(testBase, 0x0002), want: false},
		{a: NewVendorUUID(testBase, 0x0001), b: NewVendorUUID(other, 0x0001), want: false},
	}
	for _, tt := range cases {
		if got := tt.a.Equal(tt.b); got != tt.want {
			t.Errorf("%s.Equal(%s): got %t want %t", tt.a, tt.b, got, tt.want)
		}
		if got := tt.b.Equal(tt.a); got != tt.want {
			t.Errorf("%s.Equal(%s): got %t want %t", tt.b, tt.a, got, tt.want)
		}
	}
}

func TestParseUUID(t *testing.T) {
	cases := []struct {
		s    string
		want UUID
		err  bool
	}{
		{s: "1800", want: UUID16(0x1800)},
		{s: "2A00", want: UUID16(0x2a00)},
		{s: "09fc95c0-c111-11e3-9904-00020001c51b", want: NewVendorUUID(testBase, 0x0001)},
		{s: "09FC95C0-C111-11E3-9904-00020001C51B", want: NewVendorUUID(testBase, 0x0001)},
		{s: "18", err: true},
		{s: "zzzz", err: true},
		{s: "09fc95c0-c111-11e3-9904", err: true},
	}
	for _, tt := range cases {
		got, err := ParseUUID(tt.s)
		if tt.err {
			if err == nil {
				t.Errorf("ParseUUID(%q): got %s, want error", tt.s, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseUUID(%q): %v", tt.s, err)
			continue
		}
		if !got.Equal(tt.want) {
			t.Errorf("ParseUUID(%q): got %s want %s", tt.s, got, tt.want)
		}
	}
}

func TestParseUUIDBaseClearsVariableField(t *testing.T) {
	a := MustParseUUIDBase("09fc95c0-c111-11e3-9904-0002a5d5c51b")
	b := MustParseUUIDBase("09fc95c0-c111-11e3-9904-00021234c51b")
	if a != b {
		t.Errorf("bases differing only in the variable field: got %x and %x", a, b)
	}
	if _, err := ParseUUIDBase("not a uuid"); err == nil {
		t.Errorf("ParseUUIDBase: want error for malformed input")
	}
}

func TestReverse(t *testing.T) {
	cases := []struct {
		fwd  []byte
		back []byte
	}{
		{fwd: []byte{0, 1}, back: []byte{1, 0}},
		{fwd: []byte{0, 1, 2}, back: []byte{2, 1, 0}},
		{fwd: []byte{0, 1, 2, 3}, back: []byte{3, 2, 1, 0}},
		{
			fwd:  []byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15},
			back: []byte{15, 14, 13, 12, 11, 10, 9, 8, 7, 6, 5, 4, 3, 2, 1, 0},
		},
	}

	for _, tt := range cases {
		got := reverse(tt.fwd)
		if !bytes.Equal(got, tt.back) {
			t.Errorf("reverse(%x): got %x want %x", tt.fwd, got, tt.back)
		}
	}
}

func BenchmarkUUIDEqual128(b *testing.B) {
	u, v := NewVendorUUID(testBase, 1), NewVendorUUID(testBase, 1)
	for i := 0; i < b.N; i++ {
		u.Equal(v)
	}
}
