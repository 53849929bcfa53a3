package service

import (
	"github.com/XC-/gorm-gatt"
	"github.com/sirupsen/logrus"
)

// NewInfoService returns a vendor service with a single writable
// text characteristic. Reads return the last text written, starting
// with text.
func NewInfoService(text string, log logrus.FieldLogger) *gatt.Service {
	s := gatt.NewService(gatt.NewVendorUUID(RIOTBase, RIOTInfoService))
	c := s.AddCharacteristic(gatt.NewVendorUUID(RIOTBase, RIOTInfoChar))

	value := []byte(text)
	c.HandleReadFunc(func(_ *gatt.Characteristic, b []byte) int {
		return copy(b, value)
	})
	c.HandleWriteFunc(func(_ *gatt.Characteristic, data []byte) int {
		value = append(value[:0], data...)
		log.WithField("text", string(value)).Info("info: text written")
		return len(data)
	})
	c.AddDescriptor(gatt.PresentationFormat{Format: gatt.FormatUTF8, Unit: gatt.UnitNone})
	c.AddDescriptor(gatt.ExtendedProperties{})
	c.AddDescriptor(gatt.UserDescription("info text"))
	return s
}
