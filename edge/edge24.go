package edge

import "github.com/pkg/errors"

const (
	size24   = 24
	stride24 = size24 * 4
	len24    = size24 * size24 * 4
)

// Relative neighbor offsets per region, in bytes. Pixels in each region
// share the same in-bounds neighbor set, so no per-pixel bounds checks are
// needed.
var (
	deltasTopLeft     = [...]int{4, stride24 + 4, stride24}
	deltasTopRight    = [...]int{-4, stride24 - 4, stride24}
	deltasBottomLeft  = [...]int{-stride24, -stride24 + 4, 4}
	deltasBottomRight = [...]int{-stride24 - 4, -stride24, -4}

	deltasTop    = [...]int{-4, 4, stride24 - 4, stride24, stride24 + 4}
	deltasBottom = [...]int{-stride24 - 4, -stride24, -stride24 + 4, -4, 4}
	deltasLeft   = [...]int{-stride24, -stride24 + 4, 4, stride24, stride24 + 4}
	deltasRight  = [...]int{-stride24 - 4, -stride24, -4, stride24 - 4, stride24}

	deltasInterior = [...]int{
		-stride24 - 4, -stride24, -stride24 + 4,
		-4, 4,
		stride24 - 4, stride24, stride24 + 4,
	}
)

func fix(data []byte, offs int, deltas []int) {
	if data[offs+3] != 0 {
		return
	}

	var b, g, r, n int
	for _, d := range deltas {
		o := offs + d
		if data[o+3] == 0 {
			continue
		}
		b += int(data[o])
		g += int(data[o+1])
		r += int(data[o+2])
		n++
	}

	if n > 0 {
		data[offs] = byte(b / n)
		data[offs+1] = byte(g / n)
		data[offs+2] = byte(r / n)
	}
}

// Correct24 applies the same repair as Correct for the fixed 24 by 24 tile
// size.
func Correct24(data []byte) error {
	if len(data) != len24 {
		return errors.Wrapf(ErrLength, "expected %d bytes, got %d", len24, len(data))
	}

	fix(data, 0, deltasTopLeft[:])
	fix(data, (size24-1)*4, deltasTopRight[:])
	fix(data, (size24-1)*stride24, deltasBottomLeft[:])
	fix(data, len24-4, deltasBottomRight[:])

	for x := 1; x < size24-1; x++ {
		fix(data, x*4, deltasTop[:])
		fix(data, (size24-1)*stride24+x*4, deltasBottom[:])
	}
	for y := 1; y < size24-1; y++ {
		fix(data, y*stride24, deltasLeft[:])
		fix(data, y*stride24+(size24-1)*4, deltasRight[:])
	}

	for y := 1; y < size24-1; y++ {
		offs := y*stride24 + 4
		for x := 1; x < size24-1; x++ {
			fix(data, offs, deltasInterior[:])
			offs += 4
		}
	}

	return nil
}
