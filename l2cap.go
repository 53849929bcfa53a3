package gatt

import (
	"bufio"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

// The shim speaks a line protocol. From the shim:
//
//	accept <addr>          a central connected
//	disconnect <addr>      it went away
//	data <addr> <hex>      one ATT PDU from it
//
// To the shim:
//
//	data <addr> <hex>      one ATT PDU for it
//
// Addresses are colon-separated MACs. Each PDU is served to completion
// before the next line is read.

// newL2cap uses rw to provide l2cap access.
func newL2cap(rw io.ReadWriter, server *Server) *l2cap {
	return &l2cap{
		rw:      rw,
		readbuf: bufio.NewReader(rw),
		server:  server,
		log:     server.log,
		conns:   make(map[string]*conn),
		quit:    make(chan struct{}),
	}
}

type l2cap struct {
	rw      io.ReadWriter
	readbuf *bufio.Reader
	sendmu  sync.Mutex // serializes writes to the shim
	server  *Server
	log     logrus.FieldLogger

	connmu sync.RWMutex
	conns  map[string]*conn

	quit     chan struct{}
	quitOnce sync.Once
}

func (c *l2cap) send(addr BDAddr, b []byte) error {
	c.sendmu.Lock()
	defer c.sendmu.Unlock()
	c.log.WithFields(logrus.Fields{"conn": addr, "pdu": hex.EncodeToString(b)}).Debug("l2cap: send")
	_, err := fmt.Fprintf(c.rw, "data %s %x\n", addr, b)
	return err
}

func (c *l2cap) close() error {
	c.quitOnce.Do(func() { close(c.quit) })
	if cl, ok := c.rw.(io.Closer); ok {
		return cl.Close()
	}
	return nil
}

// listenAndServe runs the event loop. On return quit is closed, so the
// reader stops at its next line.
func (c *l2cap) listenAndServe() error {
	defer c.quitOnce.Do(func() { close(c.quit) })
	lines := make(chan string)
	errc := make(chan error, 1)
	go func() {
		for {
			s, err := c.readbuf.ReadString('\n')
			if err != nil {
				errc <- err
				return
			}
			select {
			case lines <- s:
			case <-c.quit:
				return
			}
		}
	}()

	for {
		select {
		case <-c.quit:
			return nil
		case err := <-errc:
			select {
			case <-c.quit:
				return nil
			default:
			}
			if err == io.EOF {
				return nil
			}
			return err
		case s := <-lines:
			if err := c.handleLine(s); err != nil {
				return err
			}
		}
	}
}

// handleLine processes one line from the shim. Only errors that leave
// the shim unusable are returned.
func (c *l2cap) handleLine(s string) error {
	f := strings.Fields(s)
	if len(f) < 2 {
		return nil
	}
	hw, err := net.ParseMAC(f[1])
	if err != nil {
		return errors.New("failed to parse addr " + f[1] + ": " + err.Error())
	}
	addr := BDAddr{hw}

	switch f[0] {
	case "accept":
		c.connected(addr)
	case "disconnect":
		c.disconnected(addr)
	case "data":
		if len(f) < 3 {
			c.log.WithField("conn", addr).Warn("l2cap: data line without payload")
			return nil
		}
		c.received(addr, f[2])
	default:
		c.log.WithField("line", strings.TrimSpace(s)).Debug("l2cap: ignoring line")
	}
	return nil
}

func (c *l2cap) connected(addr BDAddr) {
	cn := newConn(c, addr)
	c.connmu.Lock()
	_, dup := c.conns[addr.String()]
	c.conns[addr.String()] = cn
	c.connmu.Unlock()
	c.log.WithFields(logrus.Fields{"conn": addr, "replaced": dup}).Info("l2cap: connected")
	if c.server.connect != nil {
		c.server.connect(cn)
	}
}

func (c *l2cap) disconnected(addr BDAddr) {
	c.connmu.Lock()
	cn, ok := c.conns[addr.String()]
	delete(c.conns, addr.String())
	c.connmu.Unlock()
	if !ok {
		c.log.WithField("conn", addr).Warn("l2cap: disconnect of unknown connection")
		return
	}
	c.log.WithField("conn", addr).Info("l2cap: disconnected")
	if c.server.disconnect != nil {
		c.server.disconnect(cn)
	}
}

func (c *l2cap) received(addr BDAddr, data string) {
	c.connmu.RLock()
	cn := c.conns[addr.String()]
	c.connmu.RUnlock()
	if cn == nil {
		c.log.WithField("conn", addr).Warn("l2cap: data for unknown connection")
		return
	}
	if len(data)/2 > maxMTU {
		c.log.WithFields(logrus.Fields{"conn": addr, "len": len(data) / 2}).Warn("l2cap: pdu exceeds max mtu")
		return
	}
	buf := make([]byte, maxMTU)
	n, err := hex.Decode(buf, []byte(data))
	if err != nil {
		c.log.WithError(err).WithField("conn", addr).Warn("l2cap: bad pdu encoding")
		return
	}
	c.server.ServePDU(cn, buf, n)
}
