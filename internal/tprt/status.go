package tprt

import (
	"errors"
	"fmt"
)

// TapeKind identifies a supported physical tape width.
type TapeKind int

const (
	TapeUnknown TapeKind = iota
	W4
	W6
	W9
	W12
	W18
	W24
	W36
)

// ErrUnsupportedTape indicates a tape kind the encoder cannot drive.
var ErrUnsupportedTape = errors.New("unsupported tape kind")

// tapeWidthHundredthMM maps each known kind to its width in 1/100 mm.
var tapeWidthHundredthMM = map[TapeKind]int{
	W4:  285,
	W6:  500,
	W9:  700,
	W12: 1000,
	W18: 1520,
	W24: 2000,
	W36: 2600,
}

// tapeKindFromIndex maps the device's tape index (status body offset 0x03)
// to a TapeKind. Unknown indices map to TapeUnknown; the raw index is kept
// in PrinterStatus.TapeIndex.
func tapeKindFromIndex(index byte) TapeKind {
	switch index {
	case 0x01:
		return W6
	case 0x02:
		return W9
	case 0x03:
		return W12
	case 0x04:
		return W18
	case 0x05:
		return W24
	case 0x06:
		return W36
	default:
		return TapeUnknown
	}
}

// WidthPx returns the printable tape width in pixels: floor(mm·360/25.4)
// rounded up to a multiple of 8. The rounding is required by the raster
// encoder, which packs rows into whole bytes. Computed in exact 1/100 mm
// integer arithmetic.
func (k TapeKind) WidthPx() (int, error) {
	hmm, ok := tapeWidthHundredthMM[k]
	if !ok {
		return 0, fmt.Errorf("%w: %v", ErrUnsupportedTape, k)
	}
	px := hmm * 360 / 2540
	return (px + 7) / 8 * 8, nil
}

// String implements the Stringer interface.
func (k TapeKind) String() string {
	switch k {
	case W4:
		return "W4"
	case W6:
		return "W6"
	case W9:
		return "W9"
	case W12:
		return "W12"
	case W18:
		return "W18"
	case W24:
		return "W24"
	case W36:
		return "W36"
	default:
		return "TapeUnknown"
	}
}

// StatusKind is the broad classification of a status response.
type StatusKind int

const (
	StatusUnknown StatusKind = iota
	StatusNoTape
	StatusSomeTape
	StatusCoverIsOpened
	StatusPrinting
)

// PrinterStatus is the classified result of a status exchange. Kind selects
// the variant; Tape and TapeIndex are meaningful for StatusSomeTape (TapeIndex
// preserves the raw device index even when it maps to no known kind). Header
// and Body retain the raw response for the StatusUnknown case.
type PrinterStatus struct {
	Kind      StatusKind
	Tape      TapeKind
	TapeIndex byte
	Header    PacketHeader
	Body      [StatusBodySize]byte
}

// ClassifyStatus classifies a 20-byte status body. Unknown shapes are not an
// error: they produce a StatusUnknown value retaining the raw header and body
// for the caller to inspect.
func ClassifyStatus(hdr PacketHeader, body [StatusBodySize]byte) PrinterStatus {
	s := PrinterStatus{Kind: StatusUnknown, Header: hdr, Body: body}
	phase, done := body[statusOffsetPhase], body[statusOffsetDone]
	switch {
	case phase == 2 && done == 0:
		s.Kind = StatusPrinting
	case phase == 0 && done <= 2:
		// done == 2 is a tolerant accept seen on newer firmware revisions.
		switch body[statusOffsetMedia] {
		case 0x06:
			s.Kind = StatusNoTape
		case 0x21:
			s.Kind = StatusCoverIsOpened
		case 0x00:
			s.Kind = StatusSomeTape
			s.TapeIndex = body[statusOffsetTapeIndex]
			s.Tape = tapeKindFromIndex(s.TapeIndex)
		}
	}
	return s
}

// String implements the Stringer interface.
func (s PrinterStatus) String() string {
	switch s.Kind {
	case StatusNoTape:
		return "no tape"
	case StatusSomeTape:
		if s.Tape == TapeUnknown {
			return fmt.Sprintf("tape with unknown index 0x%02x", s.TapeIndex)
		}
		return fmt.Sprintf("tape %v", s.Tape)
	case StatusCoverIsOpened:
		return "cover is opened"
	case StatusPrinting:
		return "printing"
	default:
		return fmt.Sprintf("unknown status %v", s.Body)
	}
}
