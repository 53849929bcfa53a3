package service

import "github.com/XC-/gorm-gatt"

// NewGattService returns the Generic Attribute service (0x1801).
// The table never changes while serving, so it has no Service
// Changed characteristic.
func NewGattService() *gatt.Service {
	return gatt.NewService(gatt.AttrGATTUUID)
}
