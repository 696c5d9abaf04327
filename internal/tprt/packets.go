package tprt

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
)

// HeaderSize is the fixed size of the packet header.
const HeaderSize = 32

// ErrTruncated indicates a buffer too short to hold a packet header.
var ErrTruncated = errors.New("packet header truncated")

// --------------------------------------------------------------------------
// Wire types — struct layout matches the on-wire format byte-for-byte.
// All multi-byte integers are big-endian.
// Serialize/deserialize with binary.Write/Read (BigEndian).
// --------------------------------------------------------------------------

// PacketHeader is the 32-byte header on every control channel packet.
type PacketHeader struct {
	Magic    [4]byte // [0:4]   "TPRT" host→device, "tprt" device→host
	Const00  uint32  // [4:8]   0x00000000
	Const01  uint32  // [8:12]  0x00000001
	Const20  uint32  // [12:16] 0x00000020
	Command  uint32  // [16:20]
	DataSize uint32  // [20:24]
	IPAddr   uint32  // [24:28] zero on requests; opaque on responses
	Token    uint32  // [28:32] zero on requests; opaque on responses
}

// --------------------------------------------------------------------------
// Serialization helpers
// --------------------------------------------------------------------------

func writeWire(v any) []byte {
	var buf bytes.Buffer
	binary.Write(&buf, binary.BigEndian, v)
	return buf.Bytes()
}

func readWire(data []byte, v any) error {
	return binary.Read(bytes.NewReader(data), binary.BigEndian, v)
}

// newRequestHeader builds a request header for the given command and body size.
func newRequestHeader(cmd, dataSize uint32) PacketHeader {
	return PacketHeader{
		Magic:    MagicRequest,
		Const00:  headerConst00,
		Const01:  headerConst01,
		Const20:  headerConst20,
		Command:  cmd,
		DataSize: dataSize,
	}
}

// MarshalRequest builds a request packet: the 32-byte header followed by the
// body. The result is exactly 32+len(body) bytes.
func MarshalRequest(cmd uint32, body []byte) []byte {
	hdr := writeWire(newRequestHeader(cmd, uint32(len(body))))
	return append(hdr, body...)
}

// ParseHeader decodes the leading 32 bytes of a packet. Header constants are
// not validated; responses are classified by their body.
func ParseHeader(data []byte) (PacketHeader, error) {
	var hdr PacketHeader
	if len(data) < HeaderSize {
		return hdr, fmt.Errorf("%w: got %d bytes", ErrTruncated, len(data))
	}
	if err := readWire(data[:HeaderSize], &hdr); err != nil {
		return hdr, fmt.Errorf("packet header: %w", err)
	}
	return hdr, nil
}
