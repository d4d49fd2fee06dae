package orrery

import (
	"math"
	"sync"
)

// Screen extent used by the command line tools. A Framebuffer's size is
// fixed when it is allocated.
const (
	ScreenWidth  = 800
	ScreenHeight = 600
)

// MaxDepth marks a cell nothing has been drawn to.
const MaxDepth = math.MaxFloat64

// Cell is the resolved color and depth of one pixel.
type Cell struct {
	Color Color
	Depth float64
}

// Framebuffer is a fixed-size grid of cells, row-major with row 0 at the
// bottom of the image, matching the y-up viewport. Each cell has its own
// lock so any number of goroutines may composite into it at once.
//
// Clear must not overlap with CompositeWrite; the caller orders frames.
type Framebuffer struct {
	width      int
	height     int
	background Color
	cells      []Cell
	locks      []sync.Mutex
}

// NewFramebuffer allocates a cleared width x height framebuffer with a
// black background.
func NewFramebuffer(width, height int) *Framebuffer {
	fb := &Framebuffer{
		width:      width,
		height:     height,
		background: Black,
		cells:      make([]Cell, width*height),
		locks:      make([]sync.Mutex, width*height),
	}
	fb.Clear()
	return fb
}

func (fb *Framebuffer) Width() int  { return fb.width }
func (fb *Framebuffer) Height() int { return fb.height }

func (fb *Framebuffer) Background() Color { return fb.background }

// Clear resets every cell to the background color at MaxDepth.
func (fb *Framebuffer) Clear() {
	blank := Cell{fb.background, MaxDepth}
	if len(fb.cells) == 0 {
		return
	}
	// Fill by doubling copies.
	fb.cells[0] = blank
	for n := 1; n < len(fb.cells); n *= 2 {
		copy(fb.cells[n:], fb.cells[:n])
	}
}

// ClearWith changes the background and clears.
func (fb *Framebuffer) ClearWith(background Color) {
	fb.background = background
	fb.Clear()
}

// CompositeWrite stores c at (x, y) if depth is strictly nearer than what
// the cell holds. Ties keep the earlier write. Coordinates are not checked.
func (fb *Framebuffer) CompositeWrite(x, y int, c Color, depth float64) {
	i := y*fb.width + x
	lock := &fb.locks[i]
	lock.Lock()
	if depth < fb.cells[i].Depth {
		fb.cells[i] = Cell{c, depth}
	}
	lock.Unlock()
}

// Point composites a shaded fragment.
func (fb *Framebuffer) Point(f Fragment) {
	fb.CompositeWrite(f.X, f.Y, f.Color, f.Z)
}

// Cell returns the cell at (x, y). Not synchronized with writers.
func (fb *Framebuffer) Cell(x, y int) Cell {
	return fb.cells[y*fb.width+x]
}

// Cells exposes the backing row-major slice for read-only use once a
// frame is complete.
func (fb *Framebuffer) Cells() []Cell {
	return fb.cells
}
