/*
Package texel implements the packed texel codec used by tileset textures.

The texture is a 1024 by 256 pixel atlas stored as 262144 big-endian 16-bit
texels, one per pixel, ordered by 4 by 4 pixel block rather than row-major.
Each texel's top bit selects one of two sub-formats. With the bit clear the
texel is RGB4A3: three bits of alpha and four bits per color channel, packed
as 0aaarrrrggggbbbb. With the bit set the texel is RGB555: five bits per
color channel, fully opaque, packed as 1rrrrrgggggbbbbb.

Blocks falling in the 4-pixel safety border of each 32 by 32 tile cell carry
replicated edge pixels for the hardware's bilinear filtering and are skipped
when decoding.
*/
package texel

import "sync"

const (
	// AtlasWidth and AtlasHeight are the fixed atlas dimensions in pixels.
	AtlasWidth  = 1024
	AtlasHeight = 256

	blockSize    = 4
	blockTexels  = blockSize * blockSize
	blocksPerRow = AtlasWidth / blockSize
	numBlocks    = (AtlasWidth * AtlasHeight) / blockTexels

	numTexels = AtlasWidth * AtlasHeight

	// StreamSize is the exact byte length of the packed texel stream.
	StreamSize = numTexels * 2

	// AtlasSize is the exact byte length of the decoded BGRA8 atlas.
	AtlasSize = numTexels * 4
)

// Pixels with source alpha at or above this threshold are quantized to the
// opaque RGB555 branch.
const opaqueThreshold = 238

var (
	lutOnce    sync.Once
	lutAlpha   []uint32
	lutNoAlpha []uint32
)

// buildLUTs fills the two 65536-entry texel to ARGB32 tables. They are built
// at most once and never written afterwards, so concurrent decodes may share
// them freely.
func buildLUTs() {
	lutAlpha = make([]uint32, 0x10000)
	lutNoAlpha = make([]uint32, 0x10000)

	for d := uint32(0); d < 0x8000; d++ {
		alpha := d >> 12
		alpha = alpha<<5 | alpha<<2 | alpha>>1
		red := ((d >> 8) & 0xf) * 17
		green := ((d >> 4) & 0xf) * 17
		blue := (d & 0xf) * 17

		rgb := blue | green<<8 | red<<16
		lutAlpha[d] = rgb | alpha<<24
		lutNoAlpha[d] = rgb | 0xff000000
	}

	for d := uint32(0); d < 0x8000; d++ {
		red := d >> 10
		red = red<<3 | red>>2
		green := (d >> 5) & 0x1f
		green = green<<3 | green>>2
		blue := d & 0x1f
		blue = blue<<3 | blue>>2

		argb := blue | green<<8 | red<<16 | 0xff000000
		lutAlpha[d+0x8000] = argb
		lutNoAlpha[d+0x8000] = argb
	}
}

func lookupTable(useAlpha bool) []uint32 {
	lutOnce.Do(buildLUTs)
	if useAlpha {
		return lutAlpha
	}
	return lutNoAlpha
}
