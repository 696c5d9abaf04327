// Package raster provides the 1-bit framebuffer consumed by the label
// stream encoder. The framebuffer's width runs along the tape feed
// direction; its height spans the tape width.
package raster

// Framebuffer is a fixed-geometry 1-bit raster. Out-of-bounds reads yield
// zero and out-of-bounds writes are ignored, so renderers may draw without
// clipping themselves.
type Framebuffer struct {
	bits   []bool
	width  int
	height int
}

// New creates an all-zero framebuffer of the given geometry.
func New(width, height int) *Framebuffer {
	return &Framebuffer{
		bits:   make([]bool, width*height),
		width:  width,
		height: height,
	}
}

// Width returns the extent along the tape feed direction.
func (f *Framebuffer) Width() int { return f.width }

// Height returns the extent across the tape.
func (f *Framebuffer) Height() int { return f.height }

// Get returns the pixel at (x, y), or false outside the extent.
func (f *Framebuffer) Get(x, y int) bool {
	if x < 0 || x >= f.width || y < 0 || y >= f.height {
		return false
	}
	return f.bits[y*f.width+x]
}

// Set writes the pixel at (x, y). Writes outside the extent are ignored.
func (f *Framebuffer) Set(x, y int, v bool) {
	if x < 0 || x >= f.width || y < 0 || y >= f.height {
		return
	}
	f.bits[y*f.width+x] = v
}

// Scaled returns a new framebuffer upscaled by the integer ratio r using
// nearest-neighbour sampling: pixel (x, y) of the result is pixel
// (x/r, y/r) of the source.
func (f *Framebuffer) Scaled(r int) *Framebuffer {
	s := New(f.width*r, f.height*r)
	for y := 0; y < s.height; y++ {
		for x := 0; x < s.width; x++ {
			s.Set(x, y, f.Get(x/r, y/r))
		}
	}
	return s
}

// Rotated returns a new framebuffer rotated 90 degrees counter-clockwise,
// with the dimensions swapped: rotated(x, y) = original(w-1-y, x), where w
// is the original width (the rotated height).
func (f *Framebuffer) Rotated() *Framebuffer {
	s := New(f.height, f.width)
	for y := 0; y < s.height; y++ {
		for x := 0; x < s.width; x++ {
			s.Set(x, y, f.Get(s.height-1-y, x))
		}
	}
	return s
}

// OverlayOr ORs src onto f anchored at (px, py), clipped to f's extent.
func (f *Framebuffer) OverlayOr(src *Framebuffer, px, py int) {
	for y := 0; y < src.height; y++ {
		for x := 0; x < src.width; x++ {
			if src.Get(x, y) {
				f.Set(px+x, py+y, true)
			}
		}
	}
}

// Equal reports whether two framebuffers have identical geometry and pixels.
func (f *Framebuffer) Equal(other *Framebuffer) bool {
	if f.width != other.width || f.height != other.height {
		return false
	}
	for i := range f.bits {
		if f.bits[i] != other.bits[i] {
			return false
		}
	}
	return true
}
