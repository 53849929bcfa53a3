package service

import "github.com/XC-/gorm-gatt"

// RIOTBase is the vendor UUID base of the RIOT services.
var RIOTBase = gatt.MustParseUUIDBase("544f4952-0000-0e0f-0f0a-000000000000")

// RIOT service and characteristic numbers.
const (
	RIOTLEDService  = 0x0001
	RIOTLEDChar     = 0x0002
	RIOTInfoService = 0x0815
	RIOTInfoChar    = 0x0816
)
