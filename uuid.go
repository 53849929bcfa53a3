package gatt

import (
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrInvalidUUIDLength is returned when a wire UUID is neither 2 nor 16 bytes long.
var ErrInvalidUUIDLength = errors.New("gatt: UUIDs must have length 2 or 16")

// A UUIDBase is the 128-bit template of a vendor UUID, in wire
// (little-endian) byte order. Bytes 2 and 3 are the variable field;
// a UUID's 16-bit value is substituted there.
type UUIDBase [16]byte

// ParseUUIDBase parses a canonical 8-4-4-4-12 UUID string into a base.
// The variable field is cleared.
func ParseUUIDBase(s string) (UUIDBase, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return UUIDBase{}, fmt.Errorf("gatt: invalid UUID base %q: %w", s, err)
	}
	var b UUIDBase
	copy(b[:], reverse(u[:]))
	b[2], b[3] = 0, 0
	return b, nil
}

// MustParseUUIDBase parses a UUID base like ParseUUIDBase,
// but panics in case of error.
func MustParseUUIDBase(s string) UUIDBase {
	b, err := ParseUUIDBase(s)
	if err != nil {
		panic(err)
	}
	return b
}

// A UUID is a BLE UUID: either a bare 16-bit Bluetooth SIG number, or a
// 16-bit number substituted into a vendor UUIDBase.
type UUID struct {
	base   UUIDBase
	vendor bool
	n      uint16
}

// UUID16 converts a uint16 (such as 0x1800) to a SIG UUID.
func UUID16(n uint16) UUID {
	return UUID{n: n}
}

// NewVendorUUID returns the 128-bit UUID obtained by substituting n
// into base.
func NewVendorUUID(base UUIDBase, n uint16) UUID {
	base[2], base[3] = 0, 0
	return UUID{base: base, vendor: true, n: n}
}

// ParseUUID parses a UUID string. Four hex digits, such as "1800",
// yield a SIG UUID; a canonical 8-4-4-4-12 string yields a vendor UUID
// whose 16-bit value is taken from the variable field.
func ParseUUID(s string) (UUID, error) {
	if len(s) == 4 {
		b, err := hex.DecodeString(s)
		if err != nil {
			return UUID{}, fmt.Errorf("gatt: invalid UUID %q: %w", s, err)
		}
		return UUID16(binary.BigEndian.Uint16(b)), nil
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return UUID{}, fmt.Errorf("gatt: invalid UUID %q: %w", s, err)
	}
	return UUIDFromWire(reverse(u[:]))
}

// MustParseUUID parses a UUID string like ParseUUID,
// but panics in case of error.
func MustParseUUID(s string) UUID {
	u, err := ParseUUID(s)
	if err != nil {
		panic(err)
	}
	return u
}

// UUIDFromWire decodes a 2 or 16 byte little-endian wire UUID.
func UUIDFromWire(b []byte) (UUID, error) {
	switch len(b) {
	case 2:
		return UUID16(binary.LittleEndian.Uint16(b)), nil
	case 16:
		var base UUIDBase
		copy(base[:], b)
		return NewVendorUUID(base, binary.LittleEndian.Uint16(b[2:])), nil
	}
	return UUID{}, fmt.Errorf("%w, got %d", ErrInvalidUUIDLength, len(b))
}

// IsSIG reports whether u is a bare 16-bit SIG UUID.
func (u UUID) IsSIG() bool { return !u.vendor }

// Len returns the wire length of u: 2 or 16.
func (u UUID) Len() int {
	if u.vendor {
		return 16
	}
	return 2
}

// Uint16 returns the 16-bit value of u.
func (u UUID) Uint16() uint16 { return u.n }

// Is16 reports whether u is the SIG UUID n.
func (u UUID) Is16(n uint16) bool { return !u.vendor && u.n == n }

// Equal reports whether u and v denote the same UUID.
func (u UUID) Equal(v UUID) bool {
	return u == v
}

// MarshalTo writes the wire encoding of u into b and returns the number
// of bytes written. b must have room for u.Len() bytes.
func (u UUID) MarshalTo(b []byte) int {
	if !u.vendor {
		binary.LittleEndian.PutUint16(b, u.n)
		return 2
	}
	copy(b, u.base[:])
	binary.LittleEndian.PutUint16(b[2:], u.n)
	return 16
}

// Bytes returns the wire encoding of u.
func (u UUID) Bytes() []byte {
	b := make([]byte, u.Len())
	u.MarshalTo(b)
	return b
}

// String returns u as four hex digits for SIG UUIDs and in the
// canonical 8-4-4-4-12 form otherwise.
func (u UUID) String() string {
	if !u.vendor {
		return fmt.Sprintf("%04x", u.n)
	}
	var v uuid.UUID
	copy(v[:], reverse(u.Bytes()))
	return v.String()
}

// reverse returns a reversed copy of u.
func reverse(u []byte) []byte {
	// Special-case 16 bit UUIDS for speed.
	l := len(u)
	if l == 2 {
		return []byte{u[1], u[0]}
	}
	b := make([]byte, l)
	for i := 0; i < l/2+1; i++ {
		b[i], b[l-i-1] = u[l-i-1], u[i]
	}
	return b
}
