package chip8

import "sync"

const (
	// ScreenWidth is the framebuffer width in pixels.
	ScreenWidth = 64
	// ScreenHeight is the framebuffer height in pixels.
	ScreenHeight = 32
)

// Frame is a copy of the framebuffer content, indexed as [y][x].
type Frame [ScreenHeight][ScreenWidth]bool

// Lit returns the number of pixels that are on.
func (f Frame) Lit() int {
	var n int
	for y := range f {
		for x := range f[y] {
			if f[y][x] {
				n++
			}
		}
	}
	return n
}

// Display is the monochrome framebuffer. The machine is its only writer,
// readers from other goroutines have to use Snapshot.
type Display struct {
	mu    sync.RWMutex
	cells Frame
}

// Clear turns all pixels off.
func (d *Display) Clear() {
	d.mu.Lock()
	d.cells = Frame{}
	d.mu.Unlock()
}

// Draw composites a sprite onto the framebuffer using XOR. Every sprite byte
// is one row of 8 pixels, most significant bit first. The origin and every
// single pixel wrap around the screen edges. It returns whether any lit pixel
// was turned off.
func (d *Display) Draw(x, y uint8, sprite []byte) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	var collision bool
	for row, bits := range sprite {
		py := (int(y) + row) % ScreenHeight
		for col := range 8 {
			if bits&(0x80>>col) == 0 {
				continue // XOR with 0 keeps the pixel
			}
			px := (int(x) + col) % ScreenWidth
			if d.cells[py][px] {
				collision = true
			}
			d.cells[py][px] = !d.cells[py][px]
		}
	}
	return collision
}

// Pixel returns whether the pixel at the given position is on.
// Coordinates wrap around like sprite coordinates do.
func (d *Display) Pixel(x, y int) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.cells[wrap(y, ScreenHeight)][wrap(x, ScreenWidth)]
}

// Snapshot returns a consistent copy of the framebuffer.
func (d *Display) Snapshot() Frame {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.cells
}

func wrap(v, size int) int {
	v %= size
	if v < 0 {
		v += size
	}
	return v
}
