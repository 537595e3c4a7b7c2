package imagepkg

import (
	"bytes"
	"image"
	"image/png"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/youruser/wrapart/internal/panel"
)

// DefaultQRSize is the pixel size QR artwork is rendered at before fitting.
const DefaultQRSize = 512

// GenerateQRPNG returns PNG bytes of a QR code for the given text.
func GenerateQRPNG(text string, size int) ([]byte, error) {
	pngBytes, err := qrcode.Encode(text, qrcode.Medium, size)
	if err != nil {
		return nil, err
	}
	// validate png decode
	if _, err := png.Decode(bytes.NewReader(pngBytes)); err != nil {
		return nil, err
	}
	return pngBytes, nil
}

// QRArtwork renders text as a square QR code usable as sprite artwork. The
// quiet zone is kept so the code still scans once printed on a panel.
func QRArtwork(text string, size int) (*image.NRGBA, error) {
	if size <= 0 {
		size = DefaultQRSize
	}
	q, err := qrcode.New(text, qrcode.Medium)
	if err != nil {
		return nil, err
	}
	return panel.Normalize(q.Image(size))
}
