package binbench

import (
	"image"
	"image/color"

	"github.com/ericlevine/binbench/bitutil"
)

// GraySource is an in-memory LuminanceSource. Crops share the backing slice
// with the source they were taken from.
type GraySource struct {
	luminances []byte
	dataWidth  int
	left       int
	top        int
	width      int
	height     int
}

// NewGraySource wraps pix, a row-major width*height luminance buffer. The
// buffer is not copied and must not be modified while the source is in use.
func NewGraySource(pix []byte, width, height int) *GraySource {
	if width < 0 || height < 0 || len(pix) < width*height {
		panic("graysource: buffer smaller than width*height")
	}
	return &GraySource{
		luminances: pix,
		dataWidth:  width,
		width:      width,
		height:     height,
	}
}

// NewImageSource converts img to greyscale luminance. It uses the same formula
// as ZXing's BufferedImageLuminanceSource, (306*R + 601*G + 117*B + 0x200) >> 10,
// and maps fully transparent pixels to white.
func NewImageSource(img image.Image) *GraySource {
	if g, ok := img.(*image.Gray); ok {
		return NewGrayImageSource(g)
	}
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	luminances := make([]byte, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, a := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			if a == 0 {
				luminances[y*w+x] = 0xFF
				continue
			}
			r8, g8, b8 := r>>8, g>>8, b>>8
			luminances[y*w+x] = byte((306*r8 + 601*g8 + 117*b8 + 0x200) >> 10)
		}
	}
	return NewGraySource(luminances, w, h)
}

// NewGrayImageSource copies the pixels of img into a new source.
func NewGrayImageSource(img *image.Gray) *GraySource {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	luminances := make([]byte, w*h)
	for y := 0; y < h; y++ {
		off := img.PixOffset(bounds.Min.X, bounds.Min.Y+y)
		copy(luminances[y*w:], img.Pix[off:off+w])
	}
	return NewGraySource(luminances, w, h)
}

// Row returns a row of luminance data.
func (s *GraySource) Row(y int, row []byte) []byte {
	if y < 0 || y >= s.height {
		panic("graysource: requested row is outside the image")
	}
	if len(row) < s.width {
		row = make([]byte, s.width)
	}
	offset := (y+s.top)*s.dataWidth + s.left
	copy(row, s.luminances[offset:offset+s.width])
	return row
}

// Matrix returns the luminance of the visible area. Uncropped sources return
// their backing slice directly.
func (s *GraySource) Matrix() []byte {
	if s.left == 0 && s.top == 0 && s.width == s.dataWidth {
		return s.luminances[:s.width*s.height]
	}
	matrix := make([]byte, s.width*s.height)
	for y := 0; y < s.height; y++ {
		offset := (y+s.top)*s.dataWidth + s.left
		copy(matrix[y*s.width:], s.luminances[offset:offset+s.width])
	}
	return matrix
}

// Width returns the width of the image.
func (s *GraySource) Width() int { return s.width }

// Height returns the height of the image.
func (s *GraySource) Height() int { return s.height }

// Crop returns a view of the rectangle (left, top, width, height).
func (s *GraySource) Crop(left, top, width, height int) (LuminanceSource, error) {
	if left < 0 || top < 0 || width < 0 || height < 0 ||
		left+width > s.width || top+height > s.height {
		return nil, ErrInvalidCrop
	}
	return &GraySource{
		luminances: s.luminances,
		dataWidth:  s.dataWidth,
		left:       s.left + left,
		top:        s.top + top,
		width:      width,
		height:     height,
	}, nil
}

// MatrixToImage renders a BitMatrix as a greyscale image where set bits are
// black (0) and unset bits are white (255).
func MatrixToImage(matrix *bitutil.BitMatrix) *image.Gray {
	w, h := matrix.Width(), matrix.Height()
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if !matrix.Get(x, y) {
				img.Pix[y*img.Stride+x] = 0xFF
			}
		}
	}
	return img
}

// ImageToMatrix reads a black/white image back into a BitMatrix. Pixels with
// luminance below 128 are set.
func ImageToMatrix(img image.Image) (*bitutil.BitMatrix, error) {
	bounds := img.Bounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		return nil, ErrEmptySource
	}
	matrix := bitutil.NewBitMatrix(bounds.Dx(), bounds.Dy())
	for y := 0; y < bounds.Dy(); y++ {
		for x := 0; x < bounds.Dx(); x++ {
			g := color.GrayModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.Gray)
			if g.Y < 128 {
				matrix.Set(x, y)
			}
		}
	}
	return matrix, nil
}
