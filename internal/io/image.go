package ioutils

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg" // JPEG decoder registration
	_ "image/png"  // PNG decoder registration
	"io"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/kolesa-team/go-webp/encoder"
	"github.com/kolesa-team/go-webp/webp"
	_ "golang.org/x/image/bmp" // BMP decoder registration
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff" // TIFF decoder registration
)

// EncodeMethod is the libwebp compression method used for every output.
// 0 is fastest, 6 is slowest and produces the smallest files.
const EncodeMethod = 6

// ColorMode is the pixel representation of a decoded image.
type ColorMode int

const (
	// ModeOther is any representation not listed below.
	ModeOther ColorMode = iota
	// ModePalette is an indexed image; palette entries may be transparent.
	ModePalette
	// ModeGray is single-channel grayscale (8 or 16 bit).
	ModeGray
	// ModeYCbCr is opaque luma/chroma data, as produced by JPEG.
	ModeYCbCr
	// ModeCMYK is four-channel print color, as produced by some JPEG and TIFF files.
	ModeCMYK
	// ModeRGB is fully opaque true color.
	ModeRGB
	// ModeRGBA is true color with at least one non-opaque pixel.
	// Gray+alpha PNGs decode to this mode as well.
	ModeRGBA
)

// String returns a short, PIL-style mode name ("P", "L", "RGB", ...).
func (m ColorMode) String() string {
	switch m {
	case ModePalette:
		return "P"
	case ModeGray:
		return "L"
	case ModeYCbCr:
		return "YCbCr"
	case ModeCMYK:
		return "CMYK"
	case ModeRGB:
		return "RGB"
	case ModeRGBA:
		return "RGBA"
	default:
		return "other"
	}
}

// HasAlpha reports whether images in this mode must be flattened before
// encoding. Palette images are included because any palette entry may be
// transparent.
func (m ColorMode) HasAlpha() bool {
	return m == ModePalette || m == ModeRGBA
}

// ColorModeOf classifies img by its concrete type and, for true-color types,
// by whether every pixel is opaque.
func ColorModeOf(img image.Image) ColorMode {
	switch img.(type) {
	case *image.Paletted:
		return ModePalette
	case *image.Gray, *image.Gray16:
		return ModeGray
	case *image.YCbCr:
		return ModeYCbCr
	case *image.CMYK:
		return ModeCMYK
	}

	if o, ok := img.(interface{ Opaque() bool }); ok && o.Opaque() {
		return ModeRGB
	}
	return ModeRGBA
}

// ImageService converts raster images to WebP.
//
// ImageService is the adapter around the imaging libraries:
//   - decoding PNG, JPEG, BMP and TIFF files
//   - flattening transparent and indexed images onto a white background
//   - normalizing every image to an opaque 8-bit RGB buffer
//   - encoding lossy WebP at a given quality
//
// ImageService is stateless and safe for concurrent use.
//
// Example usage:
//
//	svc := NewImageService()
//	err := svc.ConvertFile("/photos/logo.png", "/photos/webp/logo.webp", 80)
type ImageService struct{}

// NewImageService creates a new ImageService.
func NewImageService() *ImageService {
	return &ImageService{}
}

// DecodeFile opens and decodes the image at path and reports its color mode.
//
// The format is detected from the file contents, not the extension.
func (s *ImageService) DecodeFile(path string) (image.Image, ColorMode, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, ModeOther, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, ModeOther, err
	}

	return img, ColorModeOf(img), nil
}

// Normalize returns an opaque *image.RGBA with the same pixels as img.
//
// Images whose mode has alpha or a palette are composited onto white first,
// so fully transparent regions come out as (255, 255, 255) rather than black.
// Everything that is not already a plain RGB buffer is then converted to one.
func (s *ImageService) Normalize(img image.Image, mode ColorMode) *image.RGBA {
	if mode.HasAlpha() {
		img = Flatten(img, color.White)
	}

	if rgba, ok := img.(*image.RGBA); ok && mode == ModeRGB && rgba.Bounds().Min == (image.Point{}) {
		return rgba
	}

	return toRGBA(img)
}

// Flatten composites img onto an opaque background of the given color.
//
// Palette entries are expanded to RGBA before blending, so a transparent
// palette index blends to the background color.
func Flatten(img image.Image, background color.Color) *image.NRGBA {
	b := img.Bounds()
	canvas := imaging.New(b.Dx(), b.Dy(), background)
	return imaging.Overlay(canvas, img, image.Pt(0, 0), 1.0)
}

func toRGBA(img image.Image) *image.RGBA {
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}

// EncodeWebP writes img to w as lossy WebP.
//
// Quality ranges from 0 (smallest) to 100 (best). The slowest compression
// method is always used; for identical input and quality the output bytes
// are identical.
func (s *ImageService) EncodeWebP(w io.Writer, img image.Image, quality int) error {
	options, err := encoder.NewLossyEncoderOptions(encoder.PresetDefault, float32(quality))
	if err != nil {
		return err
	}
	options.Method = EncodeMethod

	return webp.Encode(w, img, options)
}

// ConvertFile converts the image at input to a WebP file at output.
//
// Steps:
//  1. Decode the input file
//  2. Flatten alpha/palette images onto white and normalize to RGB
//  3. Create the output directory chain if missing
//  4. Encode at the given quality and replace output atomically
//
// The returned error names the step that failed.
func (s *ImageService) ConvertFile(input, output string, quality int) error {
	img, mode, err := s.DecodeFile(input)
	if err != nil {
		return fmt.Errorf("decode %s: %w", filepath.Base(input), err)
	}

	rgb := s.Normalize(img, mode)

	if err := EnsureDir(filepath.Dir(output)); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	var buf bytes.Buffer
	if err := s.EncodeWebP(&buf, rgb, quality); err != nil {
		return fmt.Errorf("encode webp: %w", err)
	}

	if err := WriteFileAtomic(output, buf.Bytes()); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(output), err)
	}

	return nil
}
