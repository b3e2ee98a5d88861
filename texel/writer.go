package texel

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

// ErrAtlasLength is returned when a BGRA atlas buffer is not exactly
// AtlasSize bytes.
var ErrAtlasLength = errors.New("texel: wrong atlas buffer length")

// quantize reduces one BGRA pixel to its packed 16-bit texel. Mostly-opaque
// pixels take the RGB555 branch, everything else RGB4A3.
//
// Fully transparent pixels keep their quantized RGB rather than collapsing
// to zero; zeroing them causes faint black borders in-game once texture
// filtering blends them with their neighbors.
func quantize(b, g, r, a uint32) uint16 {
	if a < opaqueThreshold {
		a = ((a + 18) << 1) / 73
		r = (r + 8) / 17
		g = (g + 8) / 17
		b = (b + 8) / 17

		// 0aaarrrrggggbbbb
		return uint16(a<<12 | r<<8 | g<<4 | b)
	}

	r = ((r + 4) << 2) / 33
	g = ((g + 4) << 2) / 33
	b = ((b + 4) << 2) / 33

	// 1rrrrrgggggbbbbb
	return uint16(0x8000 | r<<10 | g<<5 | b)
}

// Encode converts a BGRA8 atlas image into the packed big-endian texel
// stream, walking the same 4 by 4 block order that Decode consumes. Border
// blocks of each 32 by 32 cell emit their nearest interior pixel replicated
// across the whole block, matching the clamp-to-edge fill the atlas packer
// produces.
func Encode(bgra []byte) ([]byte, error) {
	if len(bgra) != AtlasSize {
		return nil, errors.Wrapf(ErrAtlasLength, "expected %d bytes, got %d", AtlasSize, len(bgra))
	}

	shorts := make([]uint16, 0, numTexels)

	// Identical source pixels quantize identically, so memoize on the raw
	// 4-byte pixel value. Purely a speed optimization.
	cache := make(map[uint32]uint16)

	for ytile := 0; ytile < AtlasHeight; ytile += blockSize {
		borderRow := ytile%32 == 0 || ytile%32 == 28
		for xtile := 0; xtile < AtlasWidth; xtile += blockSize {
			borderCol := xtile%32 == 0 || xtile%32 == 28

			for ypixel := ytile; ypixel < ytile+blockSize; ypixel++ {
				for xpixel := xtile; xpixel < xtile+blockSize; xpixel++ {
					offs := ypixel*AtlasWidth*4 + xpixel*4
					pixel := binary.LittleEndian.Uint32(bgra[offs : offs+4])

					t, ok := cache[pixel]
					if !ok {
						t = quantize(pixel&0xff, pixel>>8&0xff, pixel>>16&0xff, pixel>>24)
						cache[pixel] = t
					}

					shorts = append(shorts, t)

					if borderCol {
						// Left/right border block: clamp the whole
						// block row to its first pixel.
						shorts = append(shorts, t, t, t)
						break
					}
				}
				if borderRow {
					// Top/bottom border block: clamp the remaining
					// block rows to the one just written.
					shorts = append(shorts, shorts[len(shorts)-4:]...)
					shorts = append(shorts, shorts[len(shorts)-8:]...)
					break
				}
			}
		}
	}

	out := make([]byte, StreamSize)
	for i, t := range shorts {
		binary.BigEndian.PutUint16(out[i*2:i*2+2], t)
	}
	return out, nil
}
