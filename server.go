package gatt

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

var (
	// ErrTableFull is returned when a service table already holds
	// the 127 services its handle space allows.
	ErrTableFull = errors.New("gatt: service table full")

	// ErrTooManyCharacteristics and ErrTooManyDescriptors are returned
	// for services that do not fit the handle encoding.
	ErrTooManyCharacteristics = errors.New("gatt: more than 15 characteristics in a service")
	ErrTooManyDescriptors     = errors.New("gatt: more than 7 descriptors in a characteristic")

	// ErrDescriptorUUID is returned for a descriptor whose type is a
	// 128-bit UUID.
	ErrDescriptorUUID = errors.New("gatt: descriptor type must be a 16-bit UUID")

	// ErrServing is returned when services are added after the
	// server has started serving.
	ErrServing = errors.New("gatt: server is serving")
)

func errorf(err error, format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", err, fmt.Sprintf(format, args...))
}

// A Server is a GATT server. All services must be added before the
// server starts serving; from then on the attribute table is only read.
type Server struct {
	mtu        int
	log        logrus.FieldLogger
	connect    func(c Conn)
	disconnect func(c Conn)

	mu      sync.Mutex // guards tab during registration, l2cap
	tab     attrTable
	serving int32
	l2cap   *l2cap
}

// NewServer creates a Server with the specified options.
// See also Server.Option.
// See http://dave.cheney.net/2014/10/17/functional-options-for-friendly-apis for more discussion.
func NewServer(opts ...option) *Server {
	s := &Server{mtu: minMTU, log: logrus.StandardLogger()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AddService registers svc with the server and assigns its handles.
// SIG services and vendor services are numbered independently.
func (s *Server) AddService(svc *Service) error {
	if atomic.LoadInt32(&s.serving) != 0 {
		return ErrServing
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.tab.add(svc); err != nil {
		return err
	}
	s.log.WithFields(logrus.Fields{
		"service": svc.uuid,
		"handle":  hex16(svc.h),
		"chars":   len(svc.chars),
	}).Debug("gatt: service registered")
	return nil
}

// Dump writes a listing of the attribute table to w.
func (s *Server) Dump(w io.Writer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tab.dump(w)
}

// ServePDU serves the ATT request in buf[:n] received on c. The
// response is built in place over the request, so buf must have room
// for a full PDU (its capacity and c.MTU() both bound the response),
// and is handed to c.Reply. Commands and stray responses produce no
// reply.
func (s *Server) ServePDU(c Conn, buf []byte, n int) {
	atomic.StoreInt32(&s.serving, 1)
	if n <= 0 || n > len(buf) {
		s.log.WithField("len", n).Warn("att: dropping empty pdu")
		return
	}
	mtu := c.MTU()
	if mtu > cap(buf) {
		mtu = cap(buf)
	}
	r := &request{
		s:   s,
		c:   c,
		op:  buf[0],
		req: buf[:n],
		buf: buf[:0],
		mtu: mtu,
		log: s.log.WithFields(logrus.Fields{
			"conn":   c.RemoteAddr(),
			"opcode": fmt.Sprintf("0x%02x", buf[0]),
		}),
	}
	r.log.WithField("len", n).Debug("att: request")

	resp := s.handle(r)
	if resp == nil {
		return
	}
	if err := c.Reply(resp); err != nil {
		r.log.WithError(err).Warn("att: reply failed")
	}
}

func (s *Server) handle(r *request) []byte {
	switch r.op {
	case attOpMtuReq:
		return r.handleMTU()
	case attOpReadByGroupReq:
		return r.handleReadByGroup()
	case attOpReadByTypeReq:
		return r.handleReadByType()
	case attOpReadReq:
		return r.handleRead()
	case attOpWriteReq, attOpWriteCmd:
		return r.handleWrite()
	case attOpFindInfoReq:
		return r.handleFindInfo()
	case attOpFindByTypeReq:
		return r.handleFindByTypeValue()
	}
	switch {
	case attUnsupported[r.op]:
		return r.errorResp(0, ErrRequestNotSupp)
	case attResponses[r.op]:
		r.log.Debug("att: dropping response pdu")
		return nil
	case r.op&attCommandFlag != 0:
		r.log.Debug("att: dropping unknown command")
		return nil
	}
	return r.errorResp(0, ErrRequestNotSupp)
}

// Serve serves ATT over the line-oriented shim protocol on rw until
// rw fails or Close is called. See l2cap.go for the protocol. Only one
// Serve runs at a time; once it returns the server may serve again,
// with the same attribute table.
func (s *Server) Serve(rw io.ReadWriter) error {
	s.mu.Lock()
	if s.l2cap != nil {
		s.mu.Unlock()
		return errors.New("gatt: a server is already running")
	}
	l := newL2cap(rw, s)
	s.l2cap = l
	s.mu.Unlock()
	atomic.StoreInt32(&s.serving, 1)
	err := l.listenAndServe()

	s.mu.Lock()
	s.l2cap = nil
	s.mu.Unlock()
	return err
}

// ServeShim starts the external L2CAP helper named file with args and
// serves ATT over its standard input and output.
func (s *Server) ServeShim(file string, args ...string) error {
	sh, err := newCShim(file, args...)
	if err != nil {
		return fmt.Errorf("gatt: starting shim %s: %w", file, err)
	}
	err = s.Serve(sh)
	sh.Close()
	if werr := sh.Wait(); err == nil && werr != nil {
		s.log.WithError(werr).Debug("gatt: shim exited")
	}
	return err
}

// Close stops a Server started with Serve or ServeShim.
func (s *Server) Close() error {
	s.mu.Lock()
	l := s.l2cap
	s.mu.Unlock()
	if l == nil {
		return errors.New("gatt: not serving")
	}
	return l.close()
}

type option func(*Server) option

// Option sets the options specified.
// It returns an option to restore the last arg's previous value.
// See http://commandcenter.blogspot.com.au/2014/01/self-referential-functions-and-design.html for more discussion.
func (s *Server) Option(opts ...option) (prev option) {
	for _, opt := range opts {
		prev = opt(s)
	}
	return prev
}

// MTU sets the server's preferred ATT_MTU, clamped to [23, 517].
// It is announced in every MTU exchange and caps the negotiated MTU.
func MTU(n int) option {
	return func(s *Server) option {
		prev := s.mtu
		switch {
		case n < minMTU:
			n = minMTU
		case n > maxMTU:
			n = maxMTU
		}
		s.mtu = n
		return MTU(prev)
	}
}

// Logger sets the logger used for request tracing and transport events.
func Logger(l logrus.FieldLogger) option {
	return func(s *Server) option {
		prev := s.log
		if l == nil {
			l = logrus.StandardLogger()
		}
		s.log = l
		return Logger(prev)
	}
}

// Connect sets a function to be called when a device connects to the server.
// See also Server.NewServer and Server.Option.
func Connect(f func(c Conn)) option {
	return func(s *Server) option {
		prev := s.connect
		s.connect = f
		return Connect(prev)
	}
}

// Disconnect sets a function to be called when a device disconnects from the server.
// See also Server.NewServer and Server.Option.
func Disconnect(f func(c Conn)) option {
	return func(s *Server) option {
		prev := s.disconnect
		s.disconnect = f
		return Disconnect(prev)
	}
}
