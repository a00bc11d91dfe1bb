// Package media turns a local image file into a pending upload.
package media

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/dmitrijs2005/sitecms/internal/client/models"
	"github.com/dmitrijs2005/sitecms/internal/filex"
	"github.com/gabriel-vasile/mimetype"
)

// MaxUploadSize bounds the file read from disk.
const MaxUploadSize = 10 << 20

var ErrNotImage = errors.New("file is not an image")

// resizable lists the formats imaging can re-encode without loss of type.
var resizable = map[string]imaging.Format{
	"image/png":  imaging.PNG,
	"image/jpeg": imaging.JPEG,
	"image/gif":  imaging.GIF,
}

// Load reads the image at path. Its content type is detected from the bytes,
// not the extension. When maxWidth is positive and a PNG, JPEG or GIF is
// wider than that, it is scaled down keeping its aspect ratio; other images
// such as SVG or WebP are passed through untouched.
func Load(path string, maxWidth int) (models.Upload, error) {
	data, err := filex.ReadLimited(path, MaxUploadSize)
	if err != nil {
		return models.Upload{}, fmt.Errorf("read %s: %w", path, err)
	}

	mt := mimetype.Detect(data)
	ct := mt.String()
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = ct[:i]
	}
	if !strings.HasPrefix(ct, "image/") {
		return models.Upload{}, fmt.Errorf("%w: %s is %s", ErrNotImage, path, ct)
	}

	if format, ok := resizable[ct]; ok && maxWidth > 0 {
		data, err = downscale(data, format, maxWidth)
		if err != nil {
			return models.Upload{}, fmt.Errorf("resize %s: %w", path, err)
		}
	}

	return models.Upload{
		Filename:    filepath.Base(path),
		ContentType: ct,
		Data:        data,
	}, nil
}

func downscale(data []byte, format imaging.Format, maxWidth int) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	if img.Bounds().Dx() <= maxWidth {
		return data, nil
	}

	resized := imaging.Resize(img, maxWidth, 0, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, resized, format); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
