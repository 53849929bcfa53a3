package gatt

// Handles are not indices; they encode a position in the attribute tree:
//
//	bit  15     table: 0 SIG services, 1 vendor services
//	bits 14..8  service slot, 1-based (0x01xx is the first service)
//	bits 7..4   characteristic ordinal, 1-based (0 is the service itself)
//	bit  3      0 characteristic declaration, 1 characteristic value
//	bits 2..0   descriptor ordinal, 1-based, next to the value handle
//
// All masking lives in this file. Everything else goes through
// decodeHandle and the constructors below.

const (
	firstSIGHandle    = 0x0100
	firstVendorHandle = 0x8100

	vendorFlag     = 0x8000
	serviceNumMask = 0x7f00
	serviceMask    = 0xff00
	serviceInc     = 0x0100
	charMask       = 0x00f8
	charNumMask    = 0x00f0
	charNumShift   = 4
	charValFlag    = 0x0008
	descMask       = 0x0007

	maxServices        = 127
	maxCharacteristics = 15
	maxDescriptors     = 7
)

type handleType int

const (
	typNone handleType = iota
	typService
	typCharacteristic
	typCharacteristicValue
	typDescriptor
)

func (t handleType) String() string {
	switch t {
	case typService:
		return "service"
	case typCharacteristic:
		return "characteristic"
	case typCharacteristicValue:
		return "value"
	case typDescriptor:
		return "descriptor"
	}
	return "none"
}

// handleAddr is the decomposition of a handle. Ordinals are converted to
// 0-based indices; an index is only meaningful for the handle type that
// uses it.
type handleAddr struct {
	typ    handleType
	vendor bool
	svc    int // index into the SIG or vendor table
	char   int // index into the service's characteristics
	desc   int // index into the characteristic's descriptors
}

// decodeHandle splits h into its tree position. It is total: every
// uint16 maps to exactly one handle type. Some positions have more than
// one handle: 0x0101-0x0107 also denote the service, and a descriptor
// ordinal is honoured in the declaration half too (0x0111 is the same
// descriptor as 0x0119). encode gives the canonical handle, the one the
// constructors below produce. Whether the position exists in a table
// is checked by the caller.
func decodeHandle(h uint16) handleAddr {
	a := handleAddr{vendor: h&vendorFlag != 0}
	slot := int(h&serviceNumMask) >> 8
	if slot == 0 {
		return a
	}
	a.svc = slot - 1

	if h&charMask == 0 {
		a.typ = typService
		return a
	}
	ord := int(h&charNumMask) >> charNumShift
	if ord == 0 {
		return a
	}
	a.char = ord - 1

	switch d := int(h & descMask); {
	case d != 0:
		a.typ = typDescriptor
		a.desc = d - 1
	case h&charValFlag == 0:
		a.typ = typCharacteristic
	default:
		a.typ = typCharacteristicValue
	}
	return a
}

// encode returns the canonical handle of a position other than typNone.
// decodeHandle(a.encode()) == a.
func (a handleAddr) encode() uint16 {
	h := serviceHandle(a.vendor, a.svc)
	switch a.typ {
	case typService:
		return h
	case typCharacteristic:
		return charHandle(h, a.char)
	case typCharacteristicValue:
		return valueHandle(charHandle(h, a.char))
	case typDescriptor:
		return descHandle(charHandle(h, a.char), a.desc)
	}
	return 0
}

// serviceHandle returns the base handle of the i-th service of a table.
func serviceHandle(vendor bool, i int) uint16 {
	h := uint16(firstSIGHandle)
	if vendor {
		h = firstVendorHandle
	}
	return h + uint16(i)*serviceInc
}

// charHandle returns the declaration handle of the i-th characteristic
// of the service at svc.
func charHandle(svc uint16, i int) uint16 {
	return svc&serviceMask | uint16(i+1)<<charNumShift
}

// valueHandle returns the value handle of the characteristic declared at decl.
func valueHandle(decl uint16) uint16 {
	return decl | charValFlag
}

// descHandle returns the handle of the i-th descriptor of the
// characteristic declared at decl.
func descHandle(decl uint16, i int) uint16 {
	return valueHandle(decl) | uint16(i+1)
}

// serviceLastHandle returns the group end handle of the service
// containing h. Services own their whole 256-handle block.
func serviceLastHandle(h uint16) uint16 {
	return h&serviceMask | ^uint16(serviceMask)
}

// serviceNextHandle returns the base handle of the service slot after
// the one containing last. ok is false when last is in the final slot
// of its table.
func serviceNextHandle(last uint16) (h uint16, ok bool) {
	if last&serviceNumMask == serviceNumMask {
		return 0, false
	}
	return last&serviceMask + serviceInc, true
}
