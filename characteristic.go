package gatt

// Do not re-order the bit flags below;
// they are organized to match the BLE spec.

// Characteristic property flags.
const (
	CharRead     = 1 << (iota + 1) // the characteristic may be read
	CharWriteNR                    // the characteristic may be written to, with no reply
	CharWrite                      // the characteristic may be written to, with a reply
	CharNotify                     // the characteristic supports notifications
	CharIndicate                   // the characteristic supports indications
)

// Security requirements of a characteristic value. They are recorded in
// the table but not enforced; there is no security manager yet.
const (
	SecureEncryption = 1 << iota
	SecureAuthentication
	SecureAuthorization
)

// A ReadHandler serves reads of a characteristic value.
type ReadHandler interface {
	// ServeRead writes the value into b and returns the number of
	// bytes produced. len(b) is the room left in the response PDU.
	ServeRead(c *Characteristic, b []byte) int
}

// ReadHandlerFunc is an adapter to allow the use of
// ordinary functions as ReadHandlers. If f is a function
// with the appropriate signature, ReadHandlerFunc(f) is a
// ReadHandler that calls f.
type ReadHandlerFunc func(c *Characteristic, b []byte) int

// ServeRead returns f(c, b).
func (f ReadHandlerFunc) ServeRead(c *Characteristic, b []byte) int {
	return f(c, b)
}

// A WriteHandler serves writes of a characteristic value.
// Write Requests and Write Commands are presented identically.
type WriteHandler interface {
	// ServeWrite consumes data and returns the number of bytes used.
	// The result is for the application; the peer is acknowledged
	// regardless.
	ServeWrite(c *Characteristic, data []byte) int
}

// WriteHandlerFunc is an adapter to allow the use of
// ordinary functions as WriteHandlers. If f is a function
// with the appropriate signature, WriteHandlerFunc(f) is a
// WriteHandler that calls f.
type WriteHandlerFunc func(c *Characteristic, data []byte) int

// ServeWrite returns f(c, data).
func (f WriteHandlerFunc) ServeWrite(c *Characteristic, data []byte) int {
	return f(c, data)
}

// A Characteristic is a BLE characteristic.
type Characteristic struct {
	uuid     UUID
	props    uint8 // enabled properties
	secure   uint8 // security requirements
	descs    []Descriptor
	rhandler ReadHandler
	whandler WriteHandler

	h       uint16 // declaration handle; set by Server.AddService
	service *Service
}

// HandleRead makes the characteristic readable and routes read
// requests to h. HandleRead must be called before the service is
// added to a server.
func (c *Characteristic) HandleRead(h ReadHandler) {
	c.props |= CharRead
	c.rhandler = h
}

// HandleReadFunc calls HandleRead(ReadHandlerFunc(f)).
func (c *Characteristic) HandleReadFunc(f func(c *Characteristic, b []byte) int) {
	c.HandleRead(ReadHandlerFunc(f))
}

// HandleWrite makes the characteristic writable, with and without
// response, and routes writes to h. HandleWrite must be called before
// the service is added to a server.
func (c *Characteristic) HandleWrite(h WriteHandler) {
	c.props |= CharWrite | CharWriteNR
	c.whandler = h
}

// HandleWriteFunc calls HandleWrite(WriteHandlerFunc(f)).
func (c *Characteristic) HandleWriteFunc(f func(c *Characteristic, data []byte) int) {
	c.HandleWrite(WriteHandlerFunc(f))
}

// SetValue makes the characteristic readable with a static value.
func (c *Characteristic) SetValue(b []byte) {
	v := append([]byte(nil), b...)
	c.HandleReadFunc(func(_ *Characteristic, b []byte) int {
		return copy(b, v)
	})
}

// SetProperties overrides the property flags advertised in the
// characteristic declaration. Read and write access is still gated by
// CharRead and CharWrite.
func (c *Characteristic) SetProperties(props uint8) { c.props = props }

// SetSecurity records the security requirements of the value.
func (c *Characteristic) SetSecurity(flags uint8) { c.secure = flags }

// AddDescriptor appends a descriptor. At most seven descriptors
// fit in a characteristic's handle space.
func (c *Characteristic) AddDescriptor(d Descriptor) *Characteristic {
	c.descs = append(c.descs, d)
	return c
}

// UUID returns the characteristic's UUID.
func (c *Characteristic) UUID() UUID { return c.uuid }

// Properties returns the characteristic's property flags.
func (c *Characteristic) Properties() uint8 { return c.props }

// Security returns the recorded security requirements.
func (c *Characteristic) Security() uint8 { return c.secure }

// Service returns the service the characteristic belongs to.
func (c *Characteristic) Service() *Service { return c.service }

// Descriptors returns the characteristic's descriptors.
func (c *Characteristic) Descriptors() []Descriptor { return c.descs }

// Handle returns the declaration handle, or 0 before registration.
func (c *Characteristic) Handle() uint16 { return c.h }

// ValueHandle returns the value handle, or 0 before registration.
func (c *Characteristic) ValueHandle() uint16 {
	if c.h == 0 {
		return 0
	}
	return valueHandle(c.h)
}

func (c *Characteristic) readable() bool {
	return c.props&CharRead != 0 && c.rhandler != nil
}

func (c *Characteristic) writable() bool {
	return c.props&(CharWrite|CharWriteNR) != 0 && c.whandler != nil
}
