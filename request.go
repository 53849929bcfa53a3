package gatt

import (
	"encoding/binary"
	"fmt"

	"github.com/sirupsen/logrus"
)

// maxRecordValue bounds the value part of a Read By Type record;
// the record length is carried in one byte.
const maxRecordValue = 253

// request is one inbound PDU being served. The response is written
// over the request in buf once the request fields have been read.
type request struct {
	s   *Server
	c   Conn
	op  byte
	req []byte
	buf []byte
	mtu int
	log logrus.FieldLogger
}

func (r *request) writer() *l2capWriter {
	return newL2capWriterBuf(r.buf, r.mtu)
}

func (r *request) errorResp(h uint16, code ATTError) []byte {
	r.log.WithFields(logrus.Fields{
		"handle": hex16(h),
		"error":  code,
	}).Debug("att: error response")
	return attErr{opcode: r.op, handle: h, status: code}.MarshalTo(r.buf)
}

// handleRange parses the start and end handles at req[1:5] and checks
// the range is well formed.
func (r *request) handleRange() (start, end uint16, ok bool) {
	start = binary.LittleEndian.Uint16(r.req[1:])
	end = binary.LittleEndian.Uint16(r.req[3:])
	r.log = r.log.WithFields(logrus.Fields{"start": hex16(start), "end": hex16(end)})
	return start, end, start != 0 && start <= end
}

func (r *request) handleMTU() []byte {
	if len(r.req) != 3 {
		return r.errorResp(0, ErrInvalidPDU)
	}
	client := int(binary.LittleEndian.Uint16(r.req[1:]))
	mtu := r.s.mtu
	if client < mtu {
		mtu = client
	}
	if mtu < minMTU {
		mtu = minMTU
	}
	r.log.WithFields(logrus.Fields{"client": client, "mtu": mtu}).Debug("att: mtu exchange")
	r.c.SetMTU(mtu)

	b := r.buf[:3]
	b[0] = attOpMtuResp
	binary.LittleEndian.PutUint16(b[1:], uint16(r.s.mtu))
	return b
}

func (r *request) handleReadByGroup() []byte {
	if len(r.req) != 7 && len(r.req) != 21 {
		return r.errorResp(0, ErrInvalidPDU)
	}
	start, end, ok := r.handleRange()
	if !ok {
		return r.errorResp(start, ErrInvalidHandle)
	}
	typ, err := UUIDFromWire(r.req[5:])
	if err != nil || !typ.Equal(attrPrimaryServiceUUID) {
		return r.errorResp(start, ErrAttrNotFound)
	}

	w := r.writer()
	w.WriteByteFit(attOpReadByGroupResp)
	w.WriteByteFit(0) // record length, patched below
	uuidLen := 0
	for p := r.s.tab.serviceFrom(start); p.ok() && p.h <= end; p = r.s.tab.nextService(p) {
		if uuidLen == 0 {
			uuidLen = p.s.uuid.Len()
		} else if p.s.uuid.Len() != uuidLen {
			break
		}
		w.Chunk()
		w.WriteUint16Fit(p.h)
		w.WriteUint16Fit(serviceLastHandle(p.h))
		w.WriteUUIDFit(p.s.uuid)
		if !w.Commit() {
			break
		}
	}
	if uuidLen == 0 || len(w.Bytes()) == 2 {
		return r.errorResp(start, ErrAttrNotFound)
	}
	b := w.Bytes()
	b[1] = byte(4 + uuidLen)
	return b
}

func (r *request) handleReadByType() []byte {
	if len(r.req) != 7 && len(r.req) != 21 {
		return r.errorResp(0, ErrInvalidPDU)
	}
	start, end, ok := r.handleRange()
	if !ok {
		return r.errorResp(start, ErrInvalidHandle)
	}
	typ, err := UUIDFromWire(r.req[5:])
	if err != nil {
		return r.errorResp(start, ErrAttrNotFound)
	}
	r.log = r.log.WithField("type", typ)
	if typ.Equal(attrCharacteristicUUID) {
		return r.readCharDecls(start, end)
	}
	return r.readValuesByType(start, end, typ)
}

// readCharDecls packs (handle, properties, value handle, uuid) records
// for the characteristic declarations in [start, end].
func (r *request) readCharDecls(start, end uint16) []byte {
	w := r.writer()
	w.WriteByteFit(attOpReadByTypeResp)
	w.WriteByteFit(0)
	uuidLen := 0
	tab := &r.s.tab
	for p := tab.seek(start, end); p.ok(); p = tab.advance(p, end) {
		if p.typ() != typCharacteristic {
			continue
		}
		if uuidLen == 0 {
			uuidLen = p.c.uuid.Len()
		} else if p.c.uuid.Len() != uuidLen {
			break
		}
		w.Chunk()
		w.WriteUint16Fit(p.h)
		w.WriteByteFit(p.c.props)
		w.WriteUint16Fit(valueHandle(p.h))
		w.WriteUUIDFit(p.c.uuid)
		if !w.Commit() {
			break
		}
	}
	if len(w.Bytes()) == 2 {
		return r.errorResp(start, ErrAttrNotFound)
	}
	b := w.Bytes()
	b[1] = byte(5 + uuidLen)
	return b
}

// readValuesByType packs (handle, value) records for the readable
// characteristic values and descriptors of type typ in [start, end].
// All values in one response have the length of the first.
func (r *request) readValuesByType(start, end uint16, typ UUID) []byte {
	w := r.writer()
	w.WriteByteFit(attOpReadByTypeResp)
	w.WriteByteFit(0)
	valueLen := -1
	tab := &r.s.tab
	for p := tab.seek(start, end); p.ok(); p = tab.advance(p, end) {
		if t := p.typ(); t != typCharacteristicValue && t != typDescriptor {
			continue
		}
		if !p.uuid().Equal(typ) {
			continue
		}
		if p.typ() == typCharacteristicValue && !p.c.readable() {
			if valueLen < 0 {
				return r.errorResp(p.h, ErrReadNotPermitted)
			}
			break
		}

		w.Chunk()
		if !w.WriteUint16Fit(p.h) {
			w.Abort()
			break
		}
		free := w.Free(maxRecordValue)
		n, err := r.readAttr(p, free)
		if err != nil {
			w.Abort()
			if valueLen < 0 {
				return r.errorResp(p.h, ErrUnlikely)
			}
			break
		}
		if valueLen >= 0 && n != valueLen {
			w.Abort()
			break
		}
		w.Extend(n)
		if !w.Commit() {
			break
		}
		valueLen = n
	}
	if valueLen < 0 {
		return r.errorResp(start, ErrAttrNotFound)
	}
	b := w.Bytes()
	b[1] = byte(2 + valueLen)
	return b
}

// readAttr reads the value of a characteristic value or descriptor
// position into b.
func (r *request) readAttr(p attrPos, b []byte) (int, error) {
	if p.typ() == typDescriptor {
		return p.d.MarshalTo(b)
	}
	n := p.c.rhandler.ServeRead(p.c, b)
	if n > len(b) {
		n = len(b)
	}
	if n < 0 {
		n = 0
	}
	return n, nil
}

func (r *request) handleRead() []byte {
	if len(r.req) != 3 {
		return r.errorResp(0, ErrInvalidPDU)
	}
	h := binary.LittleEndian.Uint16(r.req[1:])
	r.log = r.log.WithField("handle", hex16(h))
	p := r.s.tab.lookup(h)
	switch p.typ() {
	case typCharacteristicValue:
		if !p.c.readable() {
			return r.errorResp(h, ErrReadNotPermitted)
		}
	case typDescriptor:
	default:
		return r.errorResp(h, ErrAttrNotFound)
	}

	w := r.writer()
	w.WriteByteFit(attOpReadResp)
	n, err := r.readAttr(p, w.Free(r.mtu))
	if err != nil {
		r.log.WithError(err).Warn("att: descriptor encoding failed")
		return r.errorResp(h, ErrUnlikely)
	}
	w.Extend(n)
	return w.Bytes()
}

// handleWrite serves Write Requests and, with no response, Write Commands.
func (r *request) handleWrite() []byte {
	if len(r.req) < 3 {
		if r.op == attOpWriteCmd {
			return nil
		}
		return r.errorResp(0, ErrInvalidPDU)
	}
	h := binary.LittleEndian.Uint16(r.req[1:])
	r.log = r.log.WithField("handle", hex16(h))
	p := r.s.tab.lookup(h)

	var code ATTError
	switch {
	case p.typ() != typCharacteristicValue:
		code = ErrAttrNotFound
	case !p.c.writable():
		code = ErrWriteNotPermitted
	default:
		n := p.c.whandler.ServeWrite(p.c, r.req[3:])
		r.log.WithField("used", n).Debug("att: write")
	}
	if r.op == attOpWriteCmd {
		if code != 0 {
			r.log.WithField("error", code).Debug("att: write command ignored")
		}
		return nil
	}
	if code != 0 {
		return r.errorResp(h, code)
	}
	b := r.buf[:1]
	b[0] = attOpWriteResp
	return b
}

func (r *request) handleFindInfo() []byte {
	if len(r.req) != 5 {
		return r.errorResp(0, ErrInvalidPDU)
	}
	start, end, ok := r.handleRange()
	if !ok {
		return r.errorResp(start, ErrInvalidHandle)
	}

	w := r.writer()
	w.WriteByteFit(attOpFindInfoResp)
	w.WriteByteFit(findInfoUUID16)
	tab := &r.s.tab
	for p := tab.seek(start, end); p.ok(); p = tab.advance(p, end) {
		if p.typ() != typDescriptor {
			continue
		}
		w.Chunk()
		w.WriteUint16Fit(p.h)
		w.WriteUUIDFit(p.d.UUID())
		if !w.Commit() {
			break
		}
	}
	if len(w.Bytes()) == 2 {
		return r.errorResp(start, ErrAttrNotFound)
	}
	return w.Bytes()
}

func (r *request) handleFindByTypeValue() []byte {
	if len(r.req) != 9 && len(r.req) != 23 {
		return r.errorResp(0, ErrInvalidPDU)
	}
	start, end, ok := r.handleRange()
	if !ok {
		return r.errorResp(start, ErrInvalidHandle)
	}
	typ := UUID16(binary.LittleEndian.Uint16(r.req[5:]))
	if !typ.Equal(attrPrimaryServiceUUID) {
		return r.errorResp(start, ErrAttrNotFound)
	}
	val, err := UUIDFromWire(r.req[7:])
	if err != nil {
		return r.errorResp(start, ErrAttrNotFound)
	}
	r.log = r.log.WithField("value", val)

	w := r.writer()
	w.WriteByteFit(attOpFindByTypeResp)
	tab := &r.s.tab
	for p := tab.serviceFrom(start); p.ok() && p.h <= end; p = tab.nextService(p) {
		if !p.s.uuid.Equal(val) {
			continue
		}
		w.Chunk()
		w.WriteUint16Fit(p.h)
		w.WriteUint16Fit(serviceLastHandle(p.h))
		if !w.Commit() {
			break
		}
	}
	if len(w.Bytes()) == 1 {
		return r.errorResp(start, ErrAttrNotFound)
	}
	return w.Bytes()
}

func hex16(h uint16) string { return fmt.Sprintf("0x%04x", h) }
