package artwork

import (
	"image/color"

	"golang.org/x/image/font"
)

// Option applies a configuration option to the Renderer.
type Option func(*Renderer)

// WithSize overrides the image dimensions.
func WithSize(width, height int) Option {
	return func(r *Renderer) {
		if width > 0 && height > 0 {
			r.width, r.height = width, height
		}
	}
}

// WithBackground overrides the background color.
func WithBackground(c color.Color) Option {
	return func(r *Renderer) {
		if c != nil {
			r.background = c
		}
	}
}

// WithFace overrides the font face used for both lines.
func WithFace(f font.Face) Option {
	return func(r *Renderer) {
		if f != nil {
			r.face = f
		}
	}
}
