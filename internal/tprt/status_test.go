package tprt

import (
	"errors"
	"testing"
)

// Observed 20-byte status bodies from a real device.
var (
	bodyIdle      = [StatusBodySize]byte{0x20, 0x00, 0x00, 0x04, 0x00, 0x00, 0x00, 0x00, 0x40, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}
	bodyPrinting  = [StatusBodySize]byte{0x20, 0x02, 0x00, 0x04, 0x00, 0x00, 0x00, 0x00, 0x40, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}
	bodyCompleted = [StatusBodySize]byte{0x20, 0x00, 0x00, 0x04, 0x00, 0x00, 0x00, 0x00, 0x40, 0x00, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}
	bodyExhausted = [StatusBodySize]byte{0x20, 0x00, 0x42, 0x04, 0x00, 0x00, 0x00, 0x00, 0x40, 0x00, 0x00, 0x40, 0x00, 0x00, 0x42, 0x00, 0x40, 0x00, 0x00, 0x00}
)

func TestClassifyStatus_ObservedBodies(t *testing.T) {
	tests := []struct {
		name string
		body [StatusBodySize]byte
		want StatusKind
	}{
		{"idle with W18 tape", bodyIdle, StatusSomeTape},
		{"printing", bodyPrinting, StatusPrinting},
		{"completed", bodyCompleted, StatusSomeTape},
		{"tape exhausted", bodyExhausted, StatusUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyStatus(PacketHeader{}, tt.body)
			if got.Kind != tt.want {
				t.Errorf("Kind = %v, want %v", got.Kind, tt.want)
			}
		})
	}
}

// A SomeTape status with body[0x03] = 4 maps to W18.
func TestClassifyStatus_TapeIndex(t *testing.T) {
	got := ClassifyStatus(PacketHeader{}, bodyIdle)
	if got.Kind != StatusSomeTape {
		t.Fatalf("Kind = %v, want StatusSomeTape", got.Kind)
	}
	if got.Tape != W18 {
		t.Errorf("Tape = %v, want W18", got.Tape)
	}
	if got.TapeIndex != 0x04 {
		t.Errorf("TapeIndex = %d, want 4", got.TapeIndex)
	}
}

func TestClassifyStatus_Printing(t *testing.T) {
	var body [StatusBodySize]byte
	body[0x01] = 2
	body[0x0d] = 0
	got := ClassifyStatus(PacketHeader{}, body)
	if got.Kind != StatusPrinting {
		t.Errorf("Kind = %v, want StatusPrinting", got.Kind)
	}
}

func TestClassifyStatus_MediaBytes(t *testing.T) {
	tests := []struct {
		name  string
		media byte
		want  StatusKind
	}{
		{"no tape", 0x06, StatusNoTape},
		{"cover open", 0x21, StatusCoverIsOpened},
		{"tape loaded", 0x00, StatusSomeTape},
		{"unrecognized", 0x42, StatusUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body [StatusBodySize]byte
			body[statusOffsetMedia] = tt.media
			body[statusOffsetTapeIndex] = 0x01
			got := ClassifyStatus(PacketHeader{}, body)
			if got.Kind != tt.want {
				t.Errorf("Kind = %v, want %v", got.Kind, tt.want)
			}
		})
	}
}

// done bytes 0, 1 and 2 all participate in tape classification; anything
// higher does not.
func TestClassifyStatus_DoneByteTolerance(t *testing.T) {
	for done := byte(0); done <= 3; done++ {
		var body [StatusBodySize]byte
		body[statusOffsetDone] = done
		body[statusOffsetTapeIndex] = 0x05
		got := ClassifyStatus(PacketHeader{}, body)
		want := StatusSomeTape
		if done > 2 {
			want = StatusUnknown
		}
		if got.Kind != want {
			t.Errorf("done=%d: Kind = %v, want %v", done, got.Kind, want)
		}
	}
}

func TestClassifyStatus_UnknownRetainsRaw(t *testing.T) {
	hdr := PacketHeader{Magic: MagicResponse, Token: 0xdeadbeef}
	got := ClassifyStatus(hdr, bodyExhausted)
	if got.Kind != StatusUnknown {
		t.Fatalf("Kind = %v, want StatusUnknown", got.Kind)
	}
	if got.Header != hdr {
		t.Errorf("Header = %+v, want %+v", got.Header, hdr)
	}
	if got.Body != bodyExhausted {
		t.Errorf("Body = %v, want %v", got.Body, bodyExhausted)
	}
}

func TestClassifyStatus_UnknownTapeIndex(t *testing.T) {
	var body [StatusBodySize]byte
	body[statusOffsetTapeIndex] = 0x7f
	got := ClassifyStatus(PacketHeader{}, body)
	if got.Kind != StatusSomeTape {
		t.Fatalf("Kind = %v, want StatusSomeTape", got.Kind)
	}
	if got.Tape != TapeUnknown {
		t.Errorf("Tape = %v, want TapeUnknown", got.Tape)
	}
	if got.TapeIndex != 0x7f {
		t.Errorf("TapeIndex = 0x%02x, want 0x7f", got.TapeIndex)
	}
}

func TestTapeKindFromIndex(t *testing.T) {
	tests := []struct {
		index byte
		want  TapeKind
	}{
		{0x01, W6},
		{0x02, W9},
		{0x03, W12},
		{0x04, W18},
		{0x05, W24},
		{0x06, W36},
		{0x00, TapeUnknown},
		{0x07, TapeUnknown},
	}
	for _, tt := range tests {
		if got := tapeKindFromIndex(tt.index); got != tt.want {
			t.Errorf("tapeKindFromIndex(0x%02x) = %v, want %v", tt.index, got, tt.want)
		}
	}
}

// Every known tape width in pixels is a positive multiple of 8; the raster
// encoder depends on byte-aligned rows.
func TestWidthPx_ByteAligned(t *testing.T) {
	for _, k := range []TapeKind{W4, W6, W9, W12, W18, W24, W36} {
		px, err := k.WidthPx()
		if err != nil {
			t.Fatalf("WidthPx(%v) failed: %v", k, err)
		}
		if px <= 0 || px%8 != 0 {
			t.Errorf("WidthPx(%v) = %d, want positive multiple of 8", k, px)
		}
	}
}

// floor(mm·360/25.4) rounded up to a multiple of 8.
func TestWidthPx_SpecificValues(t *testing.T) {
	tests := []struct {
		kind TapeKind
		want int
	}{
		{W4, 40},   // floor(2.85·360/25.4) = 40
		{W6, 72},   // floor(5.0·360/25.4) = 70
		{W9, 104},  // floor(7.0·360/25.4) = 99
		{W12, 144}, // floor(10.0·360/25.4) = 141
		{W18, 216}, // floor(15.2·360/25.4) = 215
		{W24, 288}, // floor(20.0·360/25.4) = 283
		{W36, 368}, // floor(26.0·360/25.4) = 368
	}
	for _, tt := range tests {
		got, err := tt.kind.WidthPx()
		if err != nil {
			t.Fatalf("WidthPx(%v) failed: %v", tt.kind, err)
		}
		if got != tt.want {
			t.Errorf("WidthPx(%v) = %d, want %d", tt.kind, got, tt.want)
		}
	}
}

func TestWidthPx_Unknown(t *testing.T) {
	_, err := TapeUnknown.WidthPx()
	if !errors.Is(err, ErrUnsupportedTape) {
		t.Fatalf("err = %v, want ErrUnsupportedTape", err)
	}
}
