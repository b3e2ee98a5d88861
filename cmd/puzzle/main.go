package main

import (
	"fmt"
	"image"
	"image/png"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v2"

	puzzle "github.com/NSMBW-Community/puzzle-core"
)

// Buffer filenames inside a tileset directory, mirroring the archive entry
// names minus the container and compression, which are out of scope here.
func bufferNames(name string) (tex, chk, obj, meta string) {
	return name + "_tex.bin", "d_bgchk_" + name + ".bin", name + ".bin", name + "_hd.bin"
}

func findName(dir string) (string, error) {
	files, err := ioutil.ReadDir(dir)
	if err != nil {
		return "", err
	}
	for _, f := range files {
		if strings.HasSuffix(f.Name(), "_tex.bin") {
			return strings.TrimSuffix(f.Name(), "_tex.bin"), nil
		}
	}
	return "", fmt.Errorf("no *_tex.bin found in %s", dir)
}

func loadTileset(dir, name string) (*puzzle.Tileset, error) {
	texName, chkName, objName, metaName := bufferNames(name)

	var bufs [4][]byte
	for i, n := range []string{texName, chkName, objName, metaName} {
		b, err := ioutil.ReadFile(filepath.Join(dir, n))
		if err != nil {
			return nil, err
		}
		bufs[i] = b
	}

	return puzzle.Load(bufs[0], bufs[1], bufs[2], bufs[3])
}

func saveTileset(t *puzzle.Tileset, dir, name string) error {
	tex, chk, obj, meta, err := t.Save()
	if err != nil {
		return err
	}

	texName, chkName, objName, metaName := bufferNames(name)
	for _, f := range []struct {
		name string
		data []byte
	}{
		{texName, tex},
		{chkName, chk},
		{objName, obj},
		{metaName, meta},
	} {
		if err := ioutil.WriteFile(filepath.Join(dir, f.name), f.data, 0644); err != nil {
			return err
		}
	}
	return nil
}

func bgraToImage(data []byte, w, h int) *image.NRGBA {
	m := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < w*h; i++ {
		m.Pix[i*4+0] = data[i*4+2]
		m.Pix[i*4+1] = data[i*4+1]
		m.Pix[i*4+2] = data[i*4+0]
		m.Pix[i*4+3] = data[i*4+3]
	}
	return m
}

func imageToBGRA(m image.Image) []byte {
	b := m.Bounds()
	data := make([]byte, b.Dx()*b.Dy()*4)
	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, a := m.At(x, y).RGBA()
			if a > 0 {
				// Undo the premultiplication RGBA() applies.
				r = r * 0xffff / a
				g = g * 0xffff / a
				bl = bl * 0xffff / a
			}
			data[i+0] = byte(bl >> 8)
			data[i+1] = byte(g >> 8)
			data[i+2] = byte(r >> 8)
			data[i+3] = byte(a >> 8)
			i += 4
		}
	}
	return data
}

func main() {
	app := cli.NewApp()

	app.Name = "puzzle"
	app.Usage = "NSMBW tileset transcoding utility"
	app.Version = "1.0.0"

	app.Flags = []cli.Flag{
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	logger := log.New(ioutil.Discard, "", 0)

	app.Before = func(c *cli.Context) error {
		if c.Bool("verbose") {
			logger.SetOutput(os.Stderr)
		}
		return nil
	}

	app.Commands = []*cli.Command{
		{
			Name:      "export",
			Usage:     "Export a tileset directory as a 384x384 PNG",
			ArgsUsage: "DIRECTORY FILE",
			Action: func(c *cli.Context) error {
				if c.NArg() < 2 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}
				dir := c.Args().Get(0)

				name, err := findName(dir)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				logger.Printf("exporting tileset %q\n", name)

				t, err := loadTileset(dir, name)
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				f, err := os.Create(c.Args().Get(1))
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer f.Close()

				m := bgraToImage(t.ExportImage(), puzzle.FlatImageSize, puzzle.FlatImageSize)
				if err := png.Encode(f, m); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:      "import",
			Usage:     "Import a 384x384 PNG into a tileset directory",
			ArgsUsage: "FILE DIRECTORY",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "name",
					Usage: "tileset name, required when the directory has no existing buffers",
				},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 2 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}
				dir := c.Args().Get(1)

				f, err := os.Open(c.Args().Get(0))
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer f.Close()

				m, err := png.Decode(f)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				b := m.Bounds()
				if b.Dx() != puzzle.FlatImageSize || b.Dy() != puzzle.FlatImageSize {
					return cli.NewExitError(fmt.Errorf("image must be %dx%d pixels, got %dx%d",
						puzzle.FlatImageSize, puzzle.FlatImageSize, b.Dx(), b.Dy()), 1)
				}

				name := c.String("name")
				var t *puzzle.Tileset
				if existing, err := findName(dir); err == nil {
					if name == "" {
						name = existing
					}
					if t, err = loadTileset(dir, existing); err != nil {
						return cli.NewExitError(err, 1)
					}
					logger.Printf("updating tileset %q\n", existing)
				} else {
					if name == "" {
						return cli.NewExitError(fmt.Errorf("no existing tileset in %s; --name is required", dir), 1)
					}
					t = puzzle.New()
					logger.Printf("creating tileset %q\n", name)
				}

				if err := t.ImportImage(imageToBGRA(m)); err != nil {
					return cli.NewExitError(err, 1)
				}

				if err := saveTileset(t, dir, name); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:      "objects",
			Usage:     "List the objects in a tileset directory",
			ArgsUsage: "DIRECTORY",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}
				dir := c.Args().Get(0)

				name, err := findName(dir)
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				t, err := loadTileset(dir, name)
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				for i, o := range t.Objects {
					desc := "flat"
					if o.Sloped() {
						desc = fmt.Sprintf("slope %#02x/%#02x (%d+%d rows)",
							o.Upper.Opcode, o.Lower.Opcode, o.Upper.Rows, o.Lower.Rows)
					}
					fmt.Printf("%3d: %dx%d %s\n", i, o.Width, o.Height, desc)
				}

				return nil
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
