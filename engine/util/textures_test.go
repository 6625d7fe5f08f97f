package util

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/memmaker/sparks/engine/glhf/glhftest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// twoRows is a 2x2 image: red and green on top, blue and white below.
func twoRows() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.NRGBA{R: 255, A: 255})
	img.Set(1, 0, color.NRGBA{G: 255, A: 255})
	img.Set(0, 1, color.NRGBA{B: 255, A: 255})
	img.Set(1, 1, color.NRGBA{R: 255, G: 255, B: 255, A: 128})
	return img
}

func TestDecodeBGRA_ChannelOrder(t *testing.T) {
	out, err := DecodeBGRA(bytes.NewReader(encodePNG(t, twoRows())), false, 0)
	require.NoError(t, err)

	assert.Equal(t, 2, out.Width)
	assert.Equal(t, 2, out.Height)
	assert.Equal(t, []uint8{
		0, 0, 255, 255, 0, 255, 0, 255,
		255, 0, 0, 255, 255, 255, 255, 128,
	}, out.Pix)
}

func TestDecodeBGRA_FlipY(t *testing.T) {
	out, err := DecodeBGRA(bytes.NewReader(encodePNG(t, twoRows())), true, 0)
	require.NoError(t, err)

	assert.Equal(t, []uint8{
		255, 0, 0, 255, 255, 255, 255, 128,
		0, 0, 255, 255, 0, 255, 0, 255,
	}, out.Pix)
}

func TestDecodeBGRA_ScalesDownLargeImages(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 8, 4))
	for i := range img.Pix {
		img.Pix[i] = 200
	}
	out, err := DecodeBGRA(bytes.NewReader(encodePNG(t, img)), false, 4)
	require.NoError(t, err)

	assert.Equal(t, 4, out.Width)
	assert.Equal(t, 2, out.Height)
	assert.Len(t, out.Pix, 4*2*4)
}

func TestDecodeBGRA_RejectsGarbage(t *testing.T) {
	_, err := DecodeBGRA(strings.NewReader("not an image"), false, 0)
	assert.Error(t, err)
}

func TestLoadTexture(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spark.png")
	require.NoError(t, os.WriteFile(path, encodePNG(t, twoRows()), 0o644))

	rec := glhftest.NewRecorder()
	tex, err := LoadTexture(rec, path, false, 0)
	require.NoError(t, err)

	assert.Equal(t, 2, tex.Width())
	assert.Equal(t, 2, tex.Height())
	assert.True(t, tex.Smooth())
	state := rec.Textures[tex.ID()]
	require.NotNil(t, state)
	assert.Equal(t, 2, state.Width)
	assert.Equal(t, 2, state.Height)

	_, err = LoadTexture(rec, filepath.Join(t.TempDir(), "missing.png"), false, 0)
	assert.Error(t, err)
}
