package tprt

// Protocol magic bytes. Requests carry the upper-case form, responses the
// lower-case one.
var (
	MagicRequest  = [4]byte{'T', 'P', 'R', 'T'}
	MagicResponse = [4]byte{'t', 'p', 'r', 't'}
)

// DefaultPort is used for both the UDP control channel and the TCP data
// stream.
const DefaultPort = 9100

// Control channel commands (UDP:9100).
const (
	CmdStatus      uint32 = 0x0001 // Query printer status
	CmdStartPrint  uint32 = 0x0002 // Bracket a print job (start)
	CmdStopPrint   uint32 = 0x0003 // Bracket a print job (stop)
	CmdNotifyReady uint32 = 0x0100 // Arm the TCP data stream
	CmdNotifyOpen  uint32 = 0x0101 // Announce the TCP data stream
)

// Header constants written verbatim on every request. Responses are
// classified by body; these fields are not validated on receive.
const (
	headerConst00 uint32 = 0x00000000
	headerConst01 uint32 = 0x00000001
	headerConst20 uint32 = 0x00000020
)

// StatusBodySize is the exact length of a status response body.
const StatusBodySize = 20

// Status body offsets.
const (
	statusOffsetPhase     = 0x01 // 2 while printing
	statusOffsetMedia     = 0x02 // 0x00 tape loaded, 0x06 no tape, 0x21 cover open
	statusOffsetTapeIndex = 0x03 // tape width index, see tapeKindFromIndex
	statusOffsetDone      = 0x0d // 0 while printing
)
