package service

import "github.com/XC-/gorm-gatt"

// NewIPSService returns the Internet Protocol Support service (0x1820).
// Its presence tells a central that IPv6 over BLE is available.
func NewIPSService() *gatt.Service {
	return gatt.NewService(gatt.AttrIPSUUID)
}
