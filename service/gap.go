package service

import (
	"encoding/binary"

	"github.com/XC-/gorm-gatt"
)

// ConnParams are the peripheral preferred connection parameters,
// in the units of the Link Layer.
type ConnParams struct {
	MinInterval uint16 // 1.25ms units
	MaxInterval uint16 // 1.25ms units
	Latency     uint16 // connection events
	Timeout     uint16 // 10ms units
}

// DefaultConnParams asks for a 7.5ms interval, no latency and a two
// second supervision timeout.
var DefaultConnParams = ConnParams{MinInterval: 0x0006, MaxInterval: 0x0006, Latency: 0, Timeout: 0x00c8}

// Bytes returns the 8 byte characteristic value.
func (p ConnParams) Bytes() []byte {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint16(b[0:], p.MinInterval)
	binary.LittleEndian.PutUint16(b[2:], p.MaxInterval)
	binary.LittleEndian.PutUint16(b[4:], p.Latency)
	binary.LittleEndian.PutUint16(b[6:], p.Timeout)
	return b
}

// NewGapService returns the Generic Access service (0x1800) with
// read-only device name, appearance and preferred connection
// parameters.
func NewGapService(name string, appearance uint16, params ConnParams) *gatt.Service {
	s := gatt.NewService(gatt.AttrGAPUUID)
	s.AddCharacteristic(gatt.AttrDeviceNameUUID).SetValue([]byte(name))
	a := make([]byte, 2)
	binary.LittleEndian.PutUint16(a, appearance)
	s.AddCharacteristic(gatt.AttrAppearanceUUID).SetValue(a)
	s.AddCharacteristic(gatt.AttrPreferredParamsUUID).SetValue(params.Bytes())
	return s
}
