package texel

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

// ErrStreamLength is returned when a texel stream is not exactly StreamSize
// bytes.
var ErrStreamLength = errors.New("texel: wrong texel stream length")

// Decode converts a packed texel stream into a BGRA8 atlas image of
// AtlasWidth by AtlasHeight pixels. With useAlpha false every decoded pixel
// is forced fully opaque, which is what the editor uses for its "no alpha"
// tile previews.
//
// Texels belonging to the replicated cell borders are consumed but not
// rendered; the corresponding atlas pixels are left zero. They carry no
// information that the border fill on encode does not reconstruct.
func Decode(tex []byte, useAlpha bool) ([]byte, error) {
	if len(tex) != StreamSize {
		return nil, errors.Wrapf(ErrStreamLength, "expected %d bytes, got %d", StreamSize, len(tex))
	}

	lut := lookupTable(useAlpha)
	dest := make([]byte, AtlasSize)

	tx, ty := 0, 0
	pos := 0
	for i := 0; i < numBlocks; i++ {
		skip := false

		// Block rows 0 and 7 of every cell are the top/bottom border.
		switch (i / blocksPerRow) % 8 {
		case 0, 7:
			skip = true
		}
		// Block columns 0 and 7 of every cell are the left/right border.
		switch i % 8 {
		case 0, 7:
			skip = true
		}

		if skip {
			pos += blockTexels * 2
		} else {
			for y := ty; y < ty+blockSize; y++ {
				row := y * AtlasWidth * 4
				for x := tx; x < tx+blockSize; x++ {
					t := binary.BigEndian.Uint16(tex[pos : pos+2])
					binary.LittleEndian.PutUint32(dest[row+x*4:row+x*4+4], lut[t])
					pos += 2
				}
			}
		}

		tx += blockSize
		if tx >= AtlasWidth {
			tx = 0
			ty += blockSize
		}
	}

	return dest, nil
}
