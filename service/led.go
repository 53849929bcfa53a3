package service

import "github.com/XC-/gorm-gatt"

// An LED is one light exposed by the LED service.
type LED interface {
	On() bool
	Set(on bool)
}

// NewLEDService returns the RIOT LED service: one readable and
// writable boolean characteristic per LED, in order. A written
// non-zero byte turns the LED on.
func NewLEDService(leds ...LED) *gatt.Service {
	s := gatt.NewService(gatt.NewVendorUUID(RIOTBase, RIOTLEDService))
	for _, led := range leds {
		led := led
		c := s.AddCharacteristic(gatt.NewVendorUUID(RIOTBase, RIOTLEDChar))
		c.HandleReadFunc(func(_ *gatt.Characteristic, b []byte) int {
			if len(b) < 1 {
				return 0
			}
			b[0] = 0
			if led.On() {
				b[0] = 1
			}
			return 1
		})
		c.HandleWriteFunc(func(_ *gatt.Characteristic, data []byte) int {
			if len(data) < 1 {
				return 0
			}
			led.Set(data[0] != 0)
			return 1
		})
		c.AddDescriptor(gatt.PresentationFormat{Format: gatt.FormatBool, Unit: gatt.UnitNone})
	}
	return s
}
