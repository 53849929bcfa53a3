package gatt

import (
	"fmt"
	"net"
	"sync/atomic"
)

// A BDAddr (Bluetooth Device Address) is a hardware-addressed-based net.Addr.
type BDAddr struct{ net.HardwareAddr }

func (a BDAddr) Network() string { return "BLE" }

// A Conn is the transport side of one connected peer. The server
// reads and updates its MTU and hands it complete response PDUs.
type Conn interface {
	// MTU returns the current ATT_MTU; 23 until an exchange completes.
	MTU() int

	// SetMTU records the MTU negotiated by an MTU exchange.
	SetMTU(mtu int)

	// Reply sends a response PDU to the peer. b is only valid for the
	// duration of the call.
	Reply(b []byte) error

	// RemoteAddr returns the address of the peer (central).
	RemoteAddr() BDAddr
}

// conn is a Conn multiplexed over the shim.
type conn struct {
	l    *l2cap
	addr BDAddr
	mtu  int32
}

func newConn(l *l2cap, addr BDAddr) *conn {
	return &conn{l: l, addr: addr, mtu: minMTU}
}

func (c *conn) MTU() int           { return int(atomic.LoadInt32(&c.mtu)) }
func (c *conn) SetMTU(mtu int)     { atomic.StoreInt32(&c.mtu, int32(mtu)) }
func (c *conn) RemoteAddr() BDAddr { return c.addr }

func (c *conn) Reply(b []byte) error {
	if len(b) > c.MTU() {
		return fmt.Errorf("gatt: cannot send %d bytes to %s: mtu %d", len(b), c.addr, c.MTU())
	}
	return c.l.send(c.addr, b)
}

func (c *conn) String() string { return c.addr.String() }
