package display

const (
	Width  int = 64
	Height int = 32

	// Pitch is the length in bytes of one framebuffer row.
	Pitch int = 4 * Width

	PixelOff uint32 = 0x00000000
	PixelOn  uint32 = 0xFFFFFFFF
)

// Display is a monochrome 64x32 framebuffer. Each pixel holds either
// PixelOn or PixelOff so a host can upload it as a 32-bit texture.
type Display struct {
	pixels [Width * Height]uint32
}

func NewDisplay() *Display {
	return &Display{}
}

func (d *Display) Clear() {
	for i := range d.pixels {
		d.pixels[i] = PixelOff
	}
}

// DrawSprite XORs sprite onto the framebuffer with its top left corner at
// (x, y). Coordinates must already be inside the screen; pixels that fall
// past the right or bottom edge are clipped. It reports whether any set
// pixel was turned off.
func (d *Display) DrawSprite(x, y uint8, sprite []uint8) bool {
	startX := int(x)
	startY := int(y)

	collision := false

	for row := range sprite {
		if startY+row >= Height {
			break
		}

		for col := 0; col < 8; col++ {
			if startX+col >= Width {
				break
			}

			if (sprite[row]>>(7-col))&1 == 0 {
				continue
			}

			i := (startY+row)*Width + startX + col
			if d.pixels[i] == PixelOn {
				collision = true
			}

			d.pixels[i] ^= PixelOn
		}
	}

	return collision
}

// Pixel reports whether the pixel at (x, y) is set.
// Pixel reports whether the pixel at x, y is set. Coordinates outside the
// display read as unset.
func (d *Display) Pixel(x, y int) bool {
	if x < 0 || x >= Width || y < 0 || y >= Height {
		return false
	}
	return d.pixels[y*Width+x] == PixelOn
}

// Pixels returns a copy of the framebuffer in row-major order.
func (d *Display) Pixels() []uint32 {
	pixels := make([]uint32, len(d.pixels))
	copy(pixels, d.pixels[:])

	return pixels
}
