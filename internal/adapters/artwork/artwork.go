// Package artwork renders the placeholder image stored with every episode.
package artwork

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Defaults for the placeholder image.
const (
	DefaultWidth  = 600
	DefaultHeight = 400

	seasonScale  = 4
	episodeScale = 3
	lineGap      = 10
)

// DefaultBackground is light green.
var DefaultBackground = color.RGBA{R: 144, G: 238, B: 144, A: 255} //nolint:gochecknoglobals // constant color

// Renderer writes "Season N / Episode M" PNGs into a directory.
type Renderer struct {
	dir        string
	width      int
	height     int
	background color.Color
	face       font.Face
}

// New creates a Renderer writing into dir.
func New(dir string, opts ...Option) *Renderer {
	r := &Renderer{
		dir:        dir,
		width:      DefaultWidth,
		height:     DefaultHeight,
		background: DefaultBackground,
		face:       basicfont.Face7x13,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// FileName is the name an episode image is stored under.
func FileName(season, number int) string {
	return fmt.Sprintf("season_%d_episode_%d.png", season, number)
}

// Describe is the stored description of an episode image.
func Describe(season, number int) string {
	return fmt.Sprintf("This is an image for Episode %d Season %d", number, season)
}

// Render draws and saves the image for the slot and returns its file name.
func (r *Renderer) Render(ctx context.Context, season, number int) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	img := r.Draw(season, number)

	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return "", fmt.Errorf("%w: mkdir: %w", ErrRender, err)
	}
	name := FileName(season, number)
	f, err := os.OpenFile(filepath.Join(r.dir, name), os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return "", fmt.Errorf("%w: open: %w", ErrRender, err)
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("%w: encode: %w", ErrRender, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("%w: close: %w", ErrRender, err)
	}
	return name, nil
}

// Draw returns the image without saving it. The season line sits above the
// vertical center and the episode line below it, both horizontally centered.
func (r *Renderer) Draw(season, number int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, r.width, r.height))
	xdraw.Draw(dst, dst.Bounds(), image.NewUniform(r.background), image.Point{}, xdraw.Src)

	top := r.text(fmt.Sprintf("Season %d", season))
	bottom := r.text(fmt.Sprintf("Episode %d", number))

	tw, th := top.Bounds().Dx()*seasonScale, top.Bounds().Dy()*seasonScale
	x := (r.width - tw) / 2
	y := r.height/2 - th - lineGap
	xdraw.NearestNeighbor.Scale(dst, image.Rect(x, y, x+tw, y+th), top, top.Bounds(), xdraw.Over, nil)

	bw, bh := bottom.Bounds().Dx()*episodeScale, bottom.Bounds().Dy()*episodeScale
	x = (r.width - bw) / 2
	y = r.height/2 + lineGap
	xdraw.NearestNeighbor.Scale(dst, image.Rect(x, y, x+bw, y+bh), bottom, bottom.Bounds(), xdraw.Over, nil)

	return dst
}

// text rasterizes s in black on a transparent canvas sized to the string.
func (r *Renderer) text(s string) *image.RGBA {
	m := r.face.Metrics()
	w := font.MeasureString(r.face, s).Ceil()
	h := (m.Ascent + m.Descent).Ceil()
	canvas := image.NewRGBA(image.Rect(0, 0, w, h))
	d := &font.Drawer{
		Dst:  canvas,
		Src:  image.NewUniform(color.Black),
		Face: r.face,
		Dot:  fixed.Point26_6{X: 0, Y: m.Ascent},
	}
	d.DrawString(s)
	return canvas
}
