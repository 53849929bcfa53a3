// Package gatt provides a Bluetooth Low Energy GATT server.
//
// Gatt (Generic Attribute Profile) describes a peripheral as a
// directory of services, characteristics and descriptors, read and
// written by a central through the Attribute Protocol (ATT).
//
// # HANDLES
//
// Attribute handles are not allocated sequentially. Each encodes its
// position in the directory: SIG services live at 0x0100, 0x0200, ...
// and vendor services at 0x8100, 0x8200, ...; inside a service the
// high nibble of the low byte numbers the characteristic, bit 3 selects
// the value over the declaration, and the low three bits number the
// descriptors. A table therefore holds at most 127 services of 15
// characteristics of 7 descriptors each, and handles stay stable no
// matter what else is registered.
//
// # USAGE
//
// Servers are constructed by creating a new server, adding services
// and characteristics, and then serving a transport.
//
//	srv := gatt.NewServer(gatt.MTU(64))
//	base := gatt.MustParseUUIDBase("09fc95c0-c111-11e3-9904-0002a5d5c51b")
//	svc := gatt.NewService(gatt.NewVendorUUID(base, 0x0001))
//
//	// A read characteristic that reports how many times it has been read
//	n := 0
//	svc.AddCharacteristic(gatt.NewVendorUUID(base, 0x0002)).HandleReadFunc(
//		func(c *gatt.Characteristic, b []byte) int {
//			n++
//			return copy(b, fmt.Sprintf("count: %d", n))
//		})
//
//	// A write characteristic that logs what is written
//	svc.AddCharacteristic(gatt.NewVendorUUID(base, 0x0003)).HandleWriteFunc(
//		func(c *gatt.Characteristic, data []byte) int {
//			log.Println("Wrote:", string(data))
//			return len(data)
//		})
//
//	if err := srv.AddService(svc); err != nil {
//		log.Fatal(err)
//	}
//	log.Fatal(srv.ServeShim("l2cap-shim"))
//
// Transports other than the shim hand each inbound PDU to
// Server.ServePDU together with a Conn to reply on.
//
// The service subpackage provides the Generic Access and Generic
// Attribute services, which a complete peripheral should register.
//
// # STATUS
//
// Supported requests: MTU exchange, Find Information, Find By Type
// Value, Read By Type, Read, Read By Group Type, Write and Write
// Command. Long reads, prepared writes, notifications and security
// are not supported.
package gatt
