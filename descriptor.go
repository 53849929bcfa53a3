package gatt

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// ErrShortBuffer is returned by a descriptor encoder when the output
// buffer cannot hold the whole encoded value. Nothing is written.
var ErrShortBuffer = errors.New("gatt: short buffer")

// A Descriptor is a read-only characteristic descriptor.
// Descriptor types are always 16-bit SIG UUIDs.
type Descriptor interface {
	// UUID returns the descriptor type.
	UUID() UUID

	// MarshalTo encodes the descriptor value into b and returns the
	// number of bytes written.
	MarshalTo(b []byte) (int, error)
}

// PresentationFormat is the Characteristic Presentation Format
// descriptor (0x2904).
type PresentationFormat struct {
	Format   uint8  // see the Format* constants
	Exponent int8   // value = raw * 10^Exponent
	Unit     uint16 // see the Unit* constants
}

const presentationFormatLen = 7

func (PresentationFormat) UUID() UUID { return attrPresentationFormatUUID }

func (d PresentationFormat) MarshalTo(b []byte) (int, error) {
	if len(b) < presentationFormatLen {
		return 0, shortBuffer(d, len(b), presentationFormatLen)
	}
	b[0] = d.Format
	b[1] = byte(d.Exponent)
	binary.LittleEndian.PutUint16(b[2:], d.Unit)
	b[4] = namespaceSIG
	b[5], b[6] = 0, 0 // description
	return presentationFormatLen, nil
}

// ExtendedProperties is the Characteristic Extended Properties
// descriptor (0x2900).
type ExtendedProperties struct {
	ReliableWrite       bool
	WritableAuxiliaries bool
}

func (ExtendedProperties) UUID() UUID { return attrExtendedPropertiesUUID }

func (d ExtendedProperties) MarshalTo(b []byte) (int, error) {
	return putFlags(d, b, d.ReliableWrite, d.WritableAuxiliaries)
}

// ClientConfig is the Client Characteristic Configuration
// descriptor (0x2902). It reports a fixed configuration.
type ClientConfig struct {
	Notify   bool
	Indicate bool
}

func (ClientConfig) UUID() UUID { return attrClientConfigUUID }

func (d ClientConfig) MarshalTo(b []byte) (int, error) {
	return putFlags(d, b, d.Notify, d.Indicate)
}

// UserDescription is the Characteristic User Description
// descriptor (0x2901). Values longer than the buffer are truncated.
type UserDescription string

func (UserDescription) UUID() UUID { return attrUserDescriptionUUID }

func (d UserDescription) MarshalTo(b []byte) (int, error) {
	return copy(b, string(d)), nil
}

// putFlags writes a little-endian 16-bit field with bit i set
// when flags[i] is true.
func putFlags(d Descriptor, b []byte, flags ...bool) (int, error) {
	if len(b) < 2 {
		return 0, shortBuffer(d, len(b), 2)
	}
	var v uint16
	for i, f := range flags {
		if f {
			v |= 1 << uint(i)
		}
	}
	binary.LittleEndian.PutUint16(b, v)
	return 2, nil
}

func shortBuffer(d Descriptor, have, need int) error {
	return fmt.Errorf("%w: descriptor %s needs %d bytes, have %d", ErrShortBuffer, d.UUID(), need, have)
}
