package imagepkg

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"os"

	"github.com/disintegration/imaging"

	"github.com/youruser/wrapart/internal/panel"
	"github.com/youruser/wrapart/internal/util"
)

// Load opens and decodes an image file as origin-anchored NRGBA.
func Load(path string) (*image.NRGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", panel.ErrInvalidImage, err)
	}
	defer f.Close()
	img, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return img, nil
}

// Decode reads any format imaging understands and converts it to NRGBA.
func Decode(r io.Reader) (*image.NRGBA, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", panel.ErrInvalidImage, err)
	}
	return panel.Normalize(img)
}

// Save writes img to path, picking the format from the extension and
// creating missing parent directories.
func Save(img image.Image, path string) error {
	if err := util.EnsureParentDir(path); err != nil {
		return err
	}
	return imaging.Save(img, path)
}

// EncodePNG returns img as PNG bytes.
func EncodePNG(img image.Image) ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := imaging.Encode(buf, img, imaging.PNG); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
