// Package decode turns binarized matrices back into symbol payloads using
// the gozxing readers.
package decode

import (
	"errors"
	"fmt"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/aztec"
	"github.com/makiuchi-d/gozxing/datamatrix"
	"github.com/makiuchi-d/gozxing/oned"
	"github.com/makiuchi-d/gozxing/qrcode"

	"github.com/ericlevine/binbench"
	"github.com/ericlevine/binbench/bitutil"
	"github.com/ericlevine/binbench/internal/zxingconv"
)

// QR decodes QR codes.
type QR struct {
	// TryHarder spends more time looking for a symbol.
	TryHarder bool
}

// NewQR creates a QR decoder.
func NewQR() *QR { return &QR{} }

// Decode returns the payload of the QR code in m, or binbench.ErrNotFound.
func (q *QR) Decode(m *bitutil.BitMatrix) (string, error) {
	return decodeWith(m, hints(q.TryHarder), qrcode.NewQRCodeReader())
}

func (q *QR) String() string { return "QR" }

// Multi tries the 2-D readers, then the 1-D readers, and returns the first
// payload found.
type Multi struct {
	TryHarder bool
}

// NewMulti creates a decoder for every supported symbology.
func NewMulti() *Multi { return &Multi{} }

// Decode returns the first payload any reader finds in m.
func (d *Multi) Decode(m *bitutil.BitMatrix) (string, error) {
	return decodeWith(m, hints(d.TryHarder),
		qrcode.NewQRCodeReader(),
		datamatrix.NewDataMatrixReader(),
		aztec.NewAztecReader(),
		oned.NewCode128Reader(),
		oned.NewCode39Reader(),
		oned.NewCode93Reader(),
		oned.NewEAN13Reader(),
		oned.NewEAN8Reader(),
		oned.NewUPCAReader(),
		oned.NewUPCEReader(),
		oned.NewITFReader(),
		oned.NewCodaBarReader(),
	)
}

func (d *Multi) String() string { return "Multi" }

// Decoder extracts a payload from a binarized matrix.
type Decoder interface {
	Decode(m *bitutil.BitMatrix) (string, error)
}

// New returns the decoder registered under name: "qr" or "multi".
func New(name string) (Decoder, error) {
	switch name {
	case "", "qr":
		return NewQR(), nil
	case "multi", "all":
		return NewMulti(), nil
	}
	return nil, fmt.Errorf("decode: unknown decoder %q", name)
}

func hints(tryHarder bool) map[gozxing.DecodeHintType]interface{} {
	if !tryHarder {
		return nil
	}
	return map[gozxing.DecodeHintType]interface{}{
		gozxing.DecodeHintType_TRY_HARDER: true,
	}
}

func decodeWith(m *bitutil.BitMatrix, h map[gozxing.DecodeHintType]interface{}, readers ...gozxing.Reader) (string, error) {
	bmp, err := zxingconv.Bitmap(m)
	if err != nil {
		return "", err
	}
	var lastErr error
	for _, r := range readers {
		result, err := r.Decode(bmp, h)
		if err == nil {
			return result.GetText(), nil
		}
		lastErr = err
	}
	if lastErr == nil || zxingconv.IsNotFound(lastErr) {
		return "", binbench.ErrNotFound
	}
	var fe gozxing.FormatException
	var ce gozxing.ChecksumException
	if errors.As(lastErr, &fe) || errors.As(lastErr, &ce) {
		return "", fmt.Errorf("%w: %v", binbench.ErrNotFound, lastErr)
	}
	return "", lastErr
}
