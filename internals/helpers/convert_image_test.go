package helper_test

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/chai2010/webp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	helper "quizcourse_backend/internals/helpers"
)

func pngOf(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 120, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestConvertToWebPDownsizes(t *testing.T) {
	out, err := helper.ConvertToWebP(bytes.NewReader(pngOf(t, 400, 200)), "a.png", helper.WebPOptions{MaxW: 100, MaxH: 100, Quality: 70})
	require.NoError(t, err)

	cfg, err := webp.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 100, cfg.Width)
	assert.Equal(t, 50, cfg.Height)
}

func TestConvertToWebPKeepsSmallImages(t *testing.T) {
	out, err := helper.ConvertToWebP(bytes.NewReader(pngOf(t, 40, 30)), "a.png", helper.WebPOptions{MaxW: 100, MaxH: 100})
	require.NoError(t, err)

	cfg, err := webp.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 40, cfg.Width)
	assert.Equal(t, 30, cfg.Height)
}

func TestConvertToWebPRejectsGarbage(t *testing.T) {
	_, err := helper.ConvertToWebP(bytes.NewReader([]byte("not an image")), "a.png", helper.DefaultWebPOptions())
	assert.Error(t, err)

	_, err = helper.ConvertToWebP(bytes.NewReader(nil), "a.png", helper.DefaultWebPOptions())
	assert.Error(t, err)
}
