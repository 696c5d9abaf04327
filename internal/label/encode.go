// Package label serializes a 1-bit framebuffer into the printer's framed
// TCP byte stream, and parses such streams back for validation.
package label

import (
	"encoding/binary"

	"github.com/hikalium/sr5900p/internal/raster"
	"github.com/hikalium/sr5900p/internal/tprt"
)

// Stream opcodes and framing bytes.
const (
	opEscape      = 0x1b
	opBracketed   = 0x7b // 1B 7B len payload — bracketed command
	opRaster      = 0x2e // 1B 2E — one raster row
	opEndOfData   = 0x0c
	frameSentinel = 0x7d // last byte of every bracketed payload
	cmdTapeLength = 0x4c // 'L' — tape length declaration
)

// rasterPrefix is the fixed four bytes between 1B 2E and the row width.
var rasterPrefix = []byte{0x00, 0x00, 0x00, 0x01}

// Fixed bracketed command bodies (checksum and sentinel appended by
// bracketed()). The init command doubles as the stream epilogue.
var (
	cmdInit    = []byte{0x40}
	cmdIdentST = []byte{0x7b, 0x00, 0x00, 0x53, 0x54}
	cmdHalfCut = []byte{0x43, 0x02, 0x02, 0x01, 0x01}
	cmdOptionD = []byte{0x44, 0x05}
	cmdOptionG = []byte{0x47}
	cmdOptionT = []byte{0x54, 0x2a, 0x00}
	cmdOptionH = []byte{0x48, 0x05}
	cmdOptionS = []byte{0x73, 0x00}
)

// bracketed frames a command body as 1B 7B len payload, where payload is the
// body followed by its checksum (low 8 bits of the body byte sum) and the
// 0x7D sentinel.
func bracketed(body []byte) []byte {
	var csum byte
	for _, b := range body {
		csum += b
	}
	frame := make([]byte, 0, 3+len(body)+2)
	frame = append(frame, opEscape, opBracketed, byte(len(body)+2))
	frame = append(frame, body...)
	return append(frame, csum, frameSentinel)
}

// tapeLengthCommand declares the tape length in pixels as a little-endian
// u32 behind the 'L' command byte.
func tapeLengthCommand(lengthPx uint32) []byte {
	body := make([]byte, 5)
	body[0] = cmdTapeLength
	binary.LittleEndian.PutUint32(body[1:], lengthPx)
	return bracketed(body)
}

// Encode serializes the framebuffer into the complete TCP byte stream for
// the given tape kind: prologue, tape length declaration, mode block, one
// raster row per pixel of tape length, end-of-data marker, epilogue.
//
// The framebuffer's width is the tape length in pixels; its height spans the
// tape width. Rows are emitted from the far end of the tape toward the
// origin: output row y reads framebuffer column width-1-y. Bits are packed
// MSB-first, the leftmost pixel of each 8-pixel group in the high bit.
func Encode(fb *raster.Framebuffer, kind tprt.TapeKind) ([]byte, error) {
	widthPx, err := kind.WidthPx()
	if err != nil {
		return nil, err
	}
	lengthPx := fb.Width()

	var data []byte
	data = append(data, bracketed(cmdInit)...)
	data = append(data, bracketed(cmdIdentST)...)
	data = append(data, bracketed(cmdHalfCut)...)
	data = append(data, bracketed(cmdOptionD)...)
	data = append(data, bracketed(cmdOptionG)...)

	data = append(data, tapeLengthCommand(uint32(lengthPx))...)

	data = append(data, bracketed(cmdOptionT)...)
	data = append(data, bracketed(cmdOptionH)...)
	data = append(data, bracketed(cmdOptionS)...)

	rowBytes := (widthPx + 7) / 8
	for y := 0; y < lengthPx; y++ {
		data = append(data, opEscape, opRaster)
		data = append(data, rasterPrefix...)
		data = binary.LittleEndian.AppendUint16(data, uint16(widthPx))
		for xb := 0; xb < rowBytes; xb++ {
			var chunk byte
			for dx := 0; dx < 8; dx++ {
				if fb.Get(lengthPx-1-y, xb*8+(7-dx)) {
					chunk |= 1 << dx
				}
			}
			data = append(data, chunk)
		}
	}

	data = append(data, opEndOfData)
	data = append(data, bracketed(cmdInit)...)
	return data, nil
}
