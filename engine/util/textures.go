package util

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	"github.com/memmaker/sparks/engine/glhf"
	"github.com/pkg/errors"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// BGRAImage is a decoded image as the texture upload expects it: rows top to bottom (unless
// flipped), four bytes per pixel in blue, green, red, alpha order, alpha not premultiplied.
type BGRAImage struct {
	Width, Height int
	Pix           []uint8
}

// DecodeBGRA decodes any registered image format. Images larger than maxSize in either
// dimension are scaled down to fit, keeping the aspect ratio; maxSize <= 0 disables scaling.
func DecodeBGRA(r io.Reader, flipY bool, maxSize int) (*BGRAImage, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, errors.Wrap(err, "failed to decode image")
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w == 0 || h == 0 {
		return nil, errors.Errorf("%s image is empty", format)
	}

	nrgba := image.NewNRGBA(image.Rect(0, 0, w, h))
	if maxSize > 0 && (w > maxSize || h > maxSize) {
		scale := float64(maxSize) / float64(max(w, h))
		sw := max(1, int(float64(w)*scale))
		sh := max(1, int(float64(h)*scale))
		nrgba = image.NewNRGBA(image.Rect(0, 0, sw, sh))
		draw.ApproxBiLinear.Scale(nrgba, nrgba.Bounds(), img, bounds, draw.Src, nil)
		LogTextureDebug(fmt.Sprintf("scaled %s image from %dx%d to %dx%d", format, w, h, sw, sh))
	} else {
		draw.Draw(nrgba, nrgba.Bounds(), img, bounds.Min, draw.Src)
	}

	out := &BGRAImage{
		Width:  nrgba.Bounds().Dx(),
		Height: nrgba.Bounds().Dy(),
		Pix:    make([]uint8, len(nrgba.Pix)),
	}
	rowLen := out.Width * 4
	for y := 0; y < out.Height; y++ {
		srcRow := nrgba.Pix[y*nrgba.Stride : y*nrgba.Stride+rowLen]
		dstY := y
		if flipY {
			dstY = out.Height - y - 1
		}
		dstRow := out.Pix[dstY*rowLen : (dstY+1)*rowLen]
		for x := 0; x < rowLen; x += 4 {
			dstRow[x] = srcRow[x+2]
			dstRow[x+1] = srcRow[x+1]
			dstRow[x+2] = srcRow[x]
			dstRow[x+3] = srcRow[x+3]
		}
	}
	return out, nil
}

// NewTextureFromReader decodes an image and uploads it as a linearly filtered texture.
func NewTextureFromReader(b glhf.Backend, r io.Reader, flipY bool, maxSize int) (*glhf.Texture, error) {
	img, err := DecodeBGRA(r, flipY, maxSize)
	if err != nil {
		return nil, err
	}
	return glhf.NewTexture(b, img.Width, img.Height, true, img.Pix)
}

// LoadTexture reads an image file and uploads it as a texture.
func LoadTexture(b glhf.Backend, filePath string, flipY bool, maxSize int) (*glhf.Texture, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open texture")
	}
	defer file.Close()
	texture, err := NewTextureFromReader(b, file, flipY, maxSize)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load texture %s", filePath)
	}
	return texture, nil
}
