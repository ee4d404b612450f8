package decode

import (
	"errors"
	"testing"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/oned"
	"github.com/makiuchi-d/gozxing/qrcode"

	"github.com/ericlevine/binbench"
	"github.com/ericlevine/binbench/bitutil"
	"github.com/ericlevine/binbench/internal/zxingconv"
)

func encode(t *testing.T, w gozxing.Writer, text string, format gozxing.BarcodeFormat, width, height int) *bitutil.BitMatrix {
	t.Helper()
	zm, err := w.Encode(text, format, width, height, nil)
	if err != nil {
		t.Fatal(err)
	}
	return zxingconv.FromZXing(zm)
}

func TestQRDecode(t *testing.T) {
	const text = "binbench QR payload"
	m := encode(t, qrcode.NewQRCodeWriter(), text, gozxing.BarcodeFormat_QR_CODE, 200, 200)
	got, err := NewQR().Decode(m)
	if err != nil {
		t.Fatal(err)
	}
	if got != text {
		t.Errorf("Decode = %q, want %q", got, text)
	}
}

func TestQRNotFound(t *testing.T) {
	m := bitutil.NewBitMatrix(100, 100)
	m.SetRegion(10, 10, 30, 30)
	if _, err := NewQR().Decode(m); !errors.Is(err, binbench.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestMultiDecodesLinear(t *testing.T) {
	const text = "BINBENCH-128"
	m := encode(t, oned.NewCode128Writer(), text, gozxing.BarcodeFormat_CODE_128, 300, 60)
	got, err := NewMulti().Decode(m)
	if err != nil {
		t.Fatal(err)
	}
	if got != text {
		t.Errorf("Decode = %q, want %q", got, text)
	}
	if _, err := NewQR().Decode(m); err == nil {
		t.Error("QR decoder should not read a linear barcode")
	}
}

func TestNew(t *testing.T) {
	for _, name := range []string{"", "qr", "multi"} {
		if _, err := New(name); err != nil {
			t.Errorf("New(%q): %v", name, err)
		}
	}
	if _, err := New("ocr"); err == nil {
		t.Error("New(\"ocr\") should fail")
	}
}
