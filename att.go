package gatt

import "fmt"

const (
	attOpError           = 0x01
	attOpMtuReq          = 0x02
	attOpMtuResp         = 0x03
	attOpFindInfoReq     = 0x04
	attOpFindInfoResp    = 0x05
	attOpFindByTypeReq   = 0x06
	attOpFindByTypeResp  = 0x07
	attOpReadByTypeReq   = 0x08
	attOpReadByTypeResp  = 0x09
	attOpReadReq         = 0x0a
	attOpReadResp        = 0x0b
	attOpReadBlobReq     = 0x0c
	attOpReadBlobResp    = 0x0d
	attOpReadMultiReq    = 0x0e
	attOpReadMultiResp   = 0x0f
	attOpReadByGroupReq  = 0x10
	attOpReadByGroupResp = 0x11
	attOpWriteReq        = 0x12
	attOpWriteResp       = 0x13
	attOpWriteCmd        = 0x52
	attOpPrepWriteReq    = 0x16
	attOpPrepWriteResp   = 0x17
	attOpExecWriteReq    = 0x18
	attOpExecWriteResp   = 0x19
	attOpHandleNotify    = 0x1b
	attOpHandleInd       = 0x1d
	attOpHandleCnf       = 0x1e
	attOpSignedWriteCmd  = 0xd2

	attCommandFlag = 0x40
)

// An ATTError is an error code carried in an ATT Error Response.
type ATTError uint8

const (
	ErrInvalidHandle     ATTError = 0x01
	ErrReadNotPermitted  ATTError = 0x02
	ErrWriteNotPermitted ATTError = 0x03
	ErrInvalidPDU        ATTError = 0x04
	ErrAuthentication    ATTError = 0x05
	ErrRequestNotSupp    ATTError = 0x06
	ErrInvalidOffset     ATTError = 0x07
	ErrAuthorization     ATTError = 0x08
	ErrPrepQueueFull     ATTError = 0x09
	ErrAttrNotFound      ATTError = 0x0a
	ErrAttrNotLong       ATTError = 0x0b
	ErrInsuffEncrKeySize ATTError = 0x0c
	ErrInvalidValueLen   ATTError = 0x0d
	ErrUnlikely          ATTError = 0x0e
	ErrInsuffEncryption  ATTError = 0x0f
	ErrUnsuppGroupType   ATTError = 0x10
	ErrInsuffResources   ATTError = 0x11
)

var attErrorNames = map[ATTError]string{
	ErrInvalidHandle:     "invalid handle",
	ErrReadNotPermitted:  "read not permitted",
	ErrWriteNotPermitted: "write not permitted",
	ErrInvalidPDU:        "invalid PDU",
	ErrAuthentication:    "insufficient authentication",
	ErrRequestNotSupp:    "request not supported",
	ErrInvalidOffset:     "invalid offset",
	ErrAuthorization:     "insufficient authorization",
	ErrPrepQueueFull:     "prepare queue full",
	ErrAttrNotFound:      "attribute not found",
	ErrAttrNotLong:       "attribute not long",
	ErrInsuffEncrKeySize: "insufficient encryption key size",
	ErrInvalidValueLen:   "invalid attribute value length",
	ErrUnlikely:          "unlikely error",
	ErrInsuffEncryption:  "insufficient encryption",
	ErrUnsuppGroupType:   "unsupported group type",
	ErrInsuffResources:   "insufficient resources",
}

func (e ATTError) Error() string {
	if s, ok := attErrorNames[e]; ok {
		return "att: " + s
	}
	return fmt.Sprintf("att: error 0x%02x", uint8(e))
}

// attUnsupported lists the requests this server knows but does not
// implement. They are answered with ErrRequestNotSupp.
var attUnsupported = map[byte]bool{
	attOpReadBlobReq:    true,
	attOpReadMultiReq:   true,
	attOpPrepWriteReq:   true,
	attOpExecWriteReq:   true,
	attOpHandleNotify:   true,
	attOpHandleInd:      true,
	attOpHandleCnf:      true,
	attOpSignedWriteCmd: true,
}

// attResponses lists server-bound opcodes that are never answered.
var attResponses = map[byte]bool{
	attOpError:           true,
	attOpMtuResp:         true,
	attOpFindInfoResp:    true,
	attOpFindByTypeResp:  true,
	attOpReadByTypeResp:  true,
	attOpReadResp:        true,
	attOpReadBlobResp:    true,
	attOpReadMultiResp:   true,
	attOpReadByGroupResp: true,
	attOpWriteResp:       true,
	attOpPrepWriteResp:   true,
	attOpExecWriteResp:   true,
}

type attErr struct {
	opcode uint8
	handle uint16
	status ATTError
}

const attErrLen = 5

// MarshalTo writes the Error Response into the start of buf,
// reusing its storage when it is large enough.
func (e attErr) MarshalTo(buf []byte) []byte {
	if cap(buf) < attErrLen {
		buf = make([]byte, attErrLen)
	}
	b := buf[:attErrLen]
	// little-endian encoding for handle
	b[0], b[1], b[2], b[3], b[4] = attOpError, e.opcode, byte(e.handle), byte(e.handle>>8), byte(e.status)
	return b
}

func (e attErr) Error() string {
	return fmt.Sprintf("%v (opcode 0x%02x, handle 0x%04x)", e.status, e.opcode, e.handle)
}
