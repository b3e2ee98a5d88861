/*
Package edge repairs transparent-pixel color bleed at tile borders.

Fully transparent pixels keep whatever RGB the source art left behind, which
is usually black; once the hardware's bilinear filter blends them with their
visible neighbors the tiles grow dark outlines in-game. The fix sets every
fully transparent pixel's RGB to the channel-wise mean of its non-transparent
8-connected neighbors.

Correct handles any image size. Correct24 is a specialized variant for the
fixed 24 by 24 tile size, partitioned into corner, edge and interior regions
so the hot path carries no per-pixel bounds checks. The two are kept
behaviorally identical by a conformance test rather than by construction.
*/
package edge

import "github.com/pkg/errors"

// ErrLength is returned when an image buffer does not match its stated
// dimensions.
var ErrLength = errors.New("edge: wrong image buffer length")

// buffer is the access surface the generic pass runs through. Tests
// substitute a recording implementation to pin down the exact read/write
// order.
type buffer interface {
	at(i int) byte
	set(i int, v byte)
}

type byteSlice []byte

func (s byteSlice) at(i int) byte     { return s[i] }
func (s byteSlice) set(i int, v byte) { s[i] = v }

// Neighbor visiting order, clockwise from straight up.
var neighbors = [8][2]int{
	{0, -1}, {1, -1}, {1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1},
}

// Correct applies the repair in place to a BGRA8 image of w by h pixels.
// A transparent pixel with no non-transparent neighbor is left unchanged.
//
// Only transparent pixels are ever written and only non-transparent pixels
// are ever read as neighbors, so a single in-place pass observes original
// values throughout.
func Correct(data []byte, w, h int) error {
	if len(data) != w*h*4 {
		return errors.Wrapf(ErrLength, "expected %d bytes, got %d", w*h*4, len(data))
	}
	correct(byteSlice(data), w, h)
	return nil
}

func correct(data buffer, w, h int) {
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			offs := (y*w + x) * 4
			if data.at(offs+3) != 0 {
				continue
			}

			var b, g, r, n int
			for _, d := range neighbors {
				x2, y2 := x+d[0], y+d[1]
				if x2 < 0 || x2 >= w || y2 < 0 || y2 >= h {
					continue
				}
				offs2 := (y2*w + x2) * 4
				if data.at(offs2+3) == 0 {
					continue
				}
				b += int(data.at(offs2))
				g += int(data.at(offs2 + 1))
				r += int(data.at(offs2 + 2))
				n++
			}

			if n > 0 {
				data.set(offs, byte(b/n))
				data.set(offs+1, byte(g/n))
				data.set(offs+2, byte(r/n))
			}
		}
	}
}
