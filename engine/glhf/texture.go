package glhf

import (
	"github.com/pkg/errors"
)

// Texture is an OpenGL texture.
type Texture struct {
	backend       Backend
	tex           binder
	width, height int
	smooth        bool
}

// NewSolidColorTexture creates a 4x4 texture filled with a single opaque color.
func NewSolidColorTexture(backend Backend, color [3]uint8) *Texture {
	pixels := make([]uint8, 4*4*4)
	for i := 0; i < 4*4; i++ {
		pixels[i*4] = color[2]
		pixels[i*4+1] = color[1]
		pixels[i*4+2] = color[0]
		pixels[i*4+3] = 255
	}

	texture, _ := NewTexture(backend, 4, 4, false, pixels)
	return texture
}

// NewTexture creates a new texture with the specified width and height with some initial
// pixel values. The pixels must be a sequence of BGRA values (one byte per component).
func NewTexture(backend Backend, width, height int, smooth bool, pixels []uint8) (*Texture, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.Errorf("new texture: invalid size %dx%d", width, height)
	}
	if len(pixels) != width*height*4 {
		return nil, errors.Errorf("new texture: got %d bytes for %dx%d BGRA pixels", len(pixels), width, height)
	}
	tex := &Texture{
		backend: backend,
		tex: binder{
			backend: backend,
			target:  BindTexture2D,
		},
		width:  width,
		height: height,
	}

	tex.tex.obj = backend.NewTexture()

	tex.Begin()
	defer tex.End()

	backend.TexImage2D(width, height, pixels)
	tex.SetSmooth(smooth)

	return tex, nil
}

// ID returns the OpenGL ID of this Texture.
func (t *Texture) ID() uint32 {
	return t.tex.obj
}

// Width returns the width of the Texture in pixels.
func (t *Texture) Width() int {
	return t.width
}

// Height returns the height of the Texture in pixels.
func (t *Texture) Height() int {
	return t.height
}

// SetSmooth sets whether the Texture should be drawn "smoothly" or "pixely".
//
// It affects how the Texture is drawn when zoomed. Smooth interpolates between the neighbour
// pixels, while pixely always chooses the nearest pixel. The Texture must be bound.
func (t *Texture) SetSmooth(smooth bool) {
	t.smooth = smooth
	t.backend.SetTextureFilter(smooth)
}

// Smooth returns whether the Texture is set to be drawn "smooth" or "pixely".
func (t *Texture) Smooth() bool {
	return t.smooth
}

// Begin binds the Texture. This is necessary before using the Texture.
func (t *Texture) Begin() {
	t.tex.bind()
}

// End unbinds the Texture and restores the previous one.
func (t *Texture) End() {
	t.tex.restore()
}

// BindToUnit makes the Texture the 2D texture of the given texture unit and leaves it bound,
// so samplers set to that unit read from it.
func (t *Texture) BindToUnit(unit uint32) {
	t.backend.ActiveTextureUnit(unit)
	t.backend.Bind(BindTexture2D, t.tex.obj)
}

// Delete releases the texture object.
func (t *Texture) Delete() {
	if t.tex.obj == 0 {
		return
	}
	t.backend.DeleteTexture(t.tex.obj)
	t.tex.obj = 0
}
