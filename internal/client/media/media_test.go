package media

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/sitecms/internal/filex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePNG(t *testing.T, dir string, w, h int) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	// deliberately misleading extension
	path := filepath.Join(dir, "photo.dat")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))
	return path
}

func decodedSize(t *testing.T, data []byte) (int, int) {
	t.Helper()
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	require.NoError(t, err)
	return cfg.Width, cfg.Height
}

func TestLoad_DetectsTypeFromContent(t *testing.T) {
	path := writePNG(t, t.TempDir(), 40, 20)

	up, err := Load(path, 0)
	require.NoError(t, err)
	assert.Equal(t, "photo.dat", up.Filename)
	assert.Equal(t, "image/png", up.ContentType)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, raw, up.Data, "no resize requested")
}

func TestLoad_DownscalesWideImages(t *testing.T) {
	path := writePNG(t, t.TempDir(), 200, 100)

	up, err := Load(path, 50)
	require.NoError(t, err)
	assert.Equal(t, "image/png", up.ContentType)

	w, h := decodedSize(t, up.Data)
	assert.Equal(t, 50, w)
	assert.Equal(t, 25, h)
}

func TestLoad_KeepsNarrowImages(t *testing.T) {
	path := writePNG(t, t.TempDir(), 30, 30)
	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	up, err := Load(path, 100)
	require.NoError(t, err)
	assert.Equal(t, raw, up.Data)
}

func TestLoad_SVGPassesThrough(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "logo.svg")
	svg := []byte(`<svg xmlns="http://www.w3.org/2000/svg" width="10" height="10"><rect width="10" height="10"/></svg>`)
	require.NoError(t, os.WriteFile(path, svg, 0o600))

	up, err := Load(path, 5)
	require.NoError(t, err)
	assert.Equal(t, "image/svg+xml", up.ContentType)
	assert.Equal(t, svg, up.Data)
}

func TestLoad_RejectsNonImages(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("just some text\n"), 0o600))

	_, err := Load(path, 0)
	assert.ErrorIs(t, err, ErrNotImage)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.png"), 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_TooLarge(t *testing.T) {
	path := filepath.Join(t.TempDir(), "big.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, f.Truncate(MaxUploadSize+1))
	require.NoError(t, f.Close())

	_, err = Load(path, 0)
	assert.ErrorIs(t, err, filex.ErrTooLarge)
}
