package gatt

import (
	"fmt"
	"io"
	"text/tabwriter"
)

// attrTable is the directory of registered services. The SIG and
// vendor tables are numbered independently; both are append-only and
// frozen once the server starts serving.
type attrTable struct {
	sig    []*Service
	vendor []*Service
}

// add appends s to the table selected by its UUID and assigns handles.
func (t *attrTable) add(s *Service) error {
	if err := s.validate(); err != nil {
		return err
	}
	vendor := !s.uuid.IsSIG()
	tab := &t.sig
	if vendor {
		tab = &t.vendor
	}
	if len(*tab) >= maxServices {
		return errorf(ErrTableFull, "service %s", s.uuid)
	}
	s.assign(serviceHandle(vendor, len(*tab)))
	*tab = append(*tab, s)
	return nil
}

func (t *attrTable) services(vendor bool) []*Service {
	if vendor {
		return t.vendor
	}
	return t.sig
}

// attrPos is a position in the table: an attribute that exists,
// identified by its canonical handle. The zero attrPos denotes nothing.
type attrPos struct {
	addr handleAddr
	h    uint16
	s    *Service
	c    *Characteristic
	d    Descriptor
}

func (p attrPos) ok() bool { return p.addr.typ != typNone }

func (p attrPos) typ() handleType { return p.addr.typ }

// uuid returns the attribute type of a value or descriptor position,
// which is the UUID a Read By Type request matches against.
func (p attrPos) uuid() UUID {
	switch p.addr.typ {
	case typCharacteristicValue:
		return p.c.uuid
	case typDescriptor:
		return p.d.UUID()
	case typService:
		return attrPrimaryServiceUUID
	}
	return attrCharacteristicUUID
}

// lookup resolves h to the attribute it denotes.
func (t *attrTable) lookup(h uint16) attrPos {
	return t.at(decodeHandle(h))
}

// at resolves a decoded handle. Indices past the end of the table, the
// service, or the characteristic denote nothing.
func (t *attrTable) at(a handleAddr) attrPos {
	if a.typ == typNone {
		return attrPos{}
	}
	tab := t.services(a.vendor)
	if a.svc < 0 || a.svc >= len(tab) {
		return attrPos{}
	}
	p := attrPos{addr: a, s: tab[a.svc]}
	if a.typ != typService {
		if a.char < 0 || a.char >= len(p.s.chars) {
			return attrPos{}
		}
		p.c = p.s.chars[a.char]
	}
	if a.typ == typDescriptor {
		if a.desc < 0 || a.desc >= len(p.c.descs) {
			return attrPos{}
		}
		p.d = p.c.descs[a.desc]
	}
	p.h = a.encode()
	return p
}

// serviceAt returns the i-th service of a table. Running off the end
// of the SIG table continues at the first vendor service.
func (t *attrTable) serviceAt(vendor bool, i int) attrPos {
	if i >= len(t.services(vendor)) {
		if vendor {
			return attrPos{}
		}
		vendor, i = true, 0
	}
	return t.at(handleAddr{typ: typService, vendor: vendor, svc: i})
}

// serviceFrom returns the first service whose handle is at least start.
func (t *attrTable) serviceFrom(start uint16) attrPos {
	a := decodeHandle(start)
	i := 0
	if start&serviceNumMask != 0 {
		i = a.svc
		if start&^serviceMask != 0 {
			i++
		}
	}
	return t.serviceAt(a.vendor, i)
}

// nextService returns the service following the one containing p.
func (t *attrTable) nextService(p attrPos) attrPos {
	if h, ok := serviceNextHandle(serviceLastHandle(p.h)); ok {
		if q := t.lookup(h); q.ok() {
			return q
		}
	}
	if p.addr.vendor {
		return attrPos{}
	}
	return t.serviceAt(true, 0)
}

// next returns the position following p in ascending handle order:
// service, then for each characteristic its declaration, value and
// descriptors, then the next service.
func (t *attrTable) next(p attrPos) attrPos {
	a := p.addr
	switch a.typ {
	case typService:
		if len(p.s.chars) > 0 {
			a.typ, a.char = typCharacteristic, 0
			return t.at(a)
		}
	case typCharacteristic:
		a.typ = typCharacteristicValue
		return t.at(a)
	case typCharacteristicValue:
		if len(p.c.descs) > 0 {
			a.typ, a.desc = typDescriptor, 0
			return t.at(a)
		}
		return t.nextChar(p)
	case typDescriptor:
		if a.desc+1 < len(p.c.descs) {
			a.desc++
			return t.at(a)
		}
		return t.nextChar(p)
	default:
		return attrPos{}
	}
	return t.nextService(p)
}

func (t *attrTable) nextChar(p attrPos) attrPos {
	a := p.addr
	if a.char+1 < len(p.s.chars) {
		a.typ, a.char, a.desc = typCharacteristic, a.char+1, 0
		return t.at(a)
	}
	return t.nextService(p)
}

// advance returns the position after p, or nothing once past end.
func (t *attrTable) advance(p attrPos, end uint16) attrPos {
	q := t.next(p)
	if !q.ok() || q.h > end {
		return attrPos{}
	}
	return q
}

// seek returns the first position with a handle in [start, end].
func (t *attrTable) seek(start, end uint16) attrPos {
	a := decodeHandle(start)
	p := t.serviceAt(a.vendor, a.svc)
	for p.ok() && p.h < start {
		p = t.next(p)
	}
	if !p.ok() || p.h > end {
		return attrPos{}
	}
	return p
}

// dump writes the table, one attribute per line.
func (t *attrTable) dump(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 8, 1, ' ', 0)
	for p := t.seek(0, 0xffff); p.ok(); p = t.next(p) {
		var extra string
		switch p.typ() {
		case typService:
			extra = fmt.Sprintf("%s\tend 0x%04x", p.s.uuid, serviceLastHandle(p.h))
		case typCharacteristic:
			extra = fmt.Sprintf("%s\tprops 0x%02x", p.c.uuid, p.c.props)
		case typCharacteristicValue:
			extra = fmt.Sprintf("%s\tsecure 0x%02x", p.c.uuid, p.c.secure)
		case typDescriptor:
			extra = fmt.Sprintf("%s\t", p.d.UUID())
		}
		fmt.Fprintf(tw, "0x%04x\t%v\t%s\n", p.h, p.typ(), extra)
	}
	return tw.Flush()
}
