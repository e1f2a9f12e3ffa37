package ioutils

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	"golang.org/x/image/webp"
)

func TestColorModeOf(t *testing.T) {
	rect := image.Rect(0, 0, 2, 2)

	opaque := image.NewRGBA(rect)
	fill(opaque, color.RGBA{10, 20, 30, 255})

	translucent := image.NewNRGBA(rect)
	fill(translucent, color.NRGBA{10, 20, 30, 128})

	tests := []struct {
		name string
		img  image.Image
		want ColorMode
	}{
		{"paletted", image.NewPaletted(rect, color.Palette{color.Black}), ModePalette},
		{"gray", image.NewGray(rect), ModeGray},
		{"gray16", image.NewGray16(rect), ModeGray},
		{"ycbcr", image.NewYCbCr(rect, image.YCbCrSubsampleRatio420), ModeYCbCr},
		{"cmyk", image.NewCMYK(rect), ModeCMYK},
		{"opaque rgba", opaque, ModeRGB},
		{"translucent nrgba", translucent, ModeRGBA},
		{"zero rgba is transparent", image.NewRGBA(rect), ModeRGBA},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ColorModeOf(tt.img); got != tt.want {
				t.Errorf("ColorModeOf() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestColorMode_HasAlpha(t *testing.T) {
	tests := []struct {
		mode ColorMode
		want bool
	}{
		{ModePalette, true},
		{ModeRGBA, true},
		{ModeRGB, false},
		{ModeGray, false},
		{ModeYCbCr, false},
		{ModeCMYK, false},
		{ModeOther, false},
	}

	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			if got := tt.mode.HasAlpha(); got != tt.want {
				t.Errorf("HasAlpha() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNormalize_TransparentBecomesWhite(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	src.SetNRGBA(0, 0, color.NRGBA{255, 0, 0, 255})
	// Every other pixel is fully transparent black.

	svc := NewImageService()
	got := svc.Normalize(src, ColorModeOf(src))

	if c := got.RGBAAt(0, 0); c != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("opaque pixel = %v, want red", c)
	}
	if c := got.RGBAAt(3, 3); c != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("transparent pixel = %v, want white", c)
	}
	if !got.Opaque() {
		t.Error("normalized image should be opaque")
	}
}

func TestNormalize_PaletteTransparentEntryBecomesWhite(t *testing.T) {
	palette := color.Palette{
		color.NRGBA{0, 0, 0, 0},       // transparent
		color.NRGBA{0, 0, 255, 255},   // blue
		color.NRGBA{0, 255, 0, 128},   // half-transparent green
	}
	src := image.NewPaletted(image.Rect(0, 0, 3, 1), palette)
	src.SetColorIndex(0, 0, 0)
	src.SetColorIndex(1, 0, 1)
	src.SetColorIndex(2, 0, 2)

	svc := NewImageService()
	got := svc.Normalize(src, ColorModeOf(src))

	if c := got.RGBAAt(0, 0); c != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("transparent palette entry = %v, want white", c)
	}
	if c := got.RGBAAt(1, 0); c != (color.RGBA{0, 0, 255, 255}) {
		t.Errorf("opaque palette entry = %v, want blue", c)
	}
	// Half green over white: red and blue channels stay well above zero.
	if c := got.RGBAAt(2, 0); c.G != 255 || c.R < 100 || c.B < 100 || c.A != 255 {
		t.Errorf("half-transparent entry = %v, want light green", c)
	}
}

func TestNormalize_GrayAndYCbCrBecomeRGB(t *testing.T) {
	gray := image.NewGray(image.Rect(0, 0, 2, 2))
	gray.SetGray(1, 1, color.Gray{Y: 200})

	svc := NewImageService()
	got := svc.Normalize(gray, ColorModeOf(gray))
	if c := got.RGBAAt(1, 1); c != (color.RGBA{200, 200, 200, 255}) {
		t.Errorf("gray pixel = %v, want (200,200,200)", c)
	}

	ycc := image.NewYCbCr(image.Rect(0, 0, 2, 2), image.YCbCrSubsampleRatio444)
	for i := range ycc.Y {
		ycc.Y[i] = 235
		ycc.Cb[i] = 128
		ycc.Cr[i] = 128
	}
	got = svc.Normalize(ycc, ColorModeOf(ycc))
	if c := got.RGBAAt(0, 0); c.A != 255 || c.R < 230 {
		t.Errorf("ycbcr pixel = %v, want near white", c)
	}
}

func TestNormalize_RGBPassThrough(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 2, 2))
	fill(src, color.RGBA{1, 2, 3, 255})

	svc := NewImageService()
	if got := svc.Normalize(src, ModeRGB); got != src {
		t.Error("opaque RGBA at origin should be returned unchanged")
	}
}

func TestConvertFile_AllSupportedFormats(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out", "nested")

	src := image.NewRGBA(image.Rect(0, 0, 16, 8))
	fill(src, color.RGBA{40, 120, 200, 255})

	encoders := map[string]func(*bytes.Buffer) error{
		"sample.png":  func(b *bytes.Buffer) error { return png.Encode(b, src) },
		"sample.jpg":  func(b *bytes.Buffer) error { return jpeg.Encode(b, src, nil) },
		"sample.jpeg": func(b *bytes.Buffer) error { return jpeg.Encode(b, src, nil) },
		"sample.bmp":  func(b *bytes.Buffer) error { return bmp.Encode(b, src) },
		"sample.tiff": func(b *bytes.Buffer) error { return tiff.Encode(b, src, nil) },
	}

	svc := NewImageService()
	for name, enc := range encoders {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := enc(&buf); err != nil {
				t.Fatalf("encode fixture: %v", err)
			}
			input := filepath.Join(dir, name)
			if err := os.WriteFile(input, buf.Bytes(), 0o644); err != nil {
				t.Fatal(err)
			}

			output := filepath.Join(out, name+".webp")
			if err := svc.ConvertFile(input, output, 80); err != nil {
				t.Fatalf("ConvertFile() error: %v", err)
			}

			got := decodeWebP(t, output)
			if got.Bounds().Dx() != 16 || got.Bounds().Dy() != 8 {
				t.Errorf("size = %v, want 16x8", got.Bounds().Size())
			}
		})
	}
}

func TestConvertFile_TransparentPNGHasWhiteBackground(t *testing.T) {
	dir := t.TempDir()

	src := image.NewNRGBA(image.Rect(0, 0, 32, 32))
	// Left half opaque black, right half fully transparent.
	for y := 0; y < 32; y++ {
		for x := 0; x < 16; x++ {
			src.SetNRGBA(x, y, color.NRGBA{0, 0, 0, 255})
		}
	}
	input := filepath.Join(dir, "logo.png")
	writePNG(t, input, src)

	output := filepath.Join(dir, "logo.webp")
	svc := NewImageService()
	if err := svc.ConvertFile(input, output, 100); err != nil {
		t.Fatalf("ConvertFile() error: %v", err)
	}

	got := decodeWebP(t, output)
	if ColorModeOf(got) == ModeRGBA {
		t.Error("output should not carry transparency")
	}

	r, g, b, a := got.At(28, 16).RGBA()
	if a != 0xffff || r>>8 < 245 || g>>8 < 245 || b>>8 < 245 {
		t.Errorf("transparent region = (%d,%d,%d,%d), want white", r>>8, g>>8, b>>8, a>>8)
	}
	r, g, b, _ = got.At(4, 16).RGBA()
	if r>>8 > 10 || g>>8 > 10 || b>>8 > 10 {
		t.Errorf("opaque region = (%d,%d,%d), want black", r>>8, g>>8, b>>8)
	}
}

func TestConvertFile_QualityBounds(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "a.png")
	src := image.NewRGBA(image.Rect(0, 0, 8, 8))
	fill(src, color.RGBA{128, 64, 32, 255})
	writePNG(t, input, src)

	svc := NewImageService()
	for _, q := range []int{0, 100} {
		if err := svc.ConvertFile(input, filepath.Join(dir, "a.webp"), q); err != nil {
			t.Errorf("ConvertFile(quality=%d) error: %v", q, err)
		}
	}
}

func TestConvertFile_Deterministic(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "a.png")
	src := image.NewRGBA(image.Rect(0, 0, 24, 24))
	for y := 0; y < 24; y++ {
		for x := 0; x < 24; x++ {
			src.SetRGBA(x, y, color.RGBA{uint8(x * 10), uint8(y * 10), 90, 255})
		}
	}
	writePNG(t, input, src)

	output := filepath.Join(dir, "a.webp")
	svc := NewImageService()
	if err := svc.ConvertFile(input, output, 75); err != nil {
		t.Fatal(err)
	}
	first, _ := os.ReadFile(output)

	if err := svc.ConvertFile(input, output, 75); err != nil {
		t.Fatal(err)
	}
	second, _ := os.ReadFile(output)

	if !bytes.Equal(first, second) {
		t.Error("second run should produce identical bytes")
	}
}

func TestConvertFile_Errors(t *testing.T) {
	dir := t.TempDir()
	svc := NewImageService()

	notImage := filepath.Join(dir, "fake.png")
	if err := os.WriteFile(notImage, []byte("definitely not a png"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		input  string
		output string
	}{
		{"missing input", filepath.Join(dir, "missing.png"), filepath.Join(dir, "missing.webp")},
		{"undecodable input", notImage, filepath.Join(dir, "fake.webp")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := svc.ConvertFile(tt.input, tt.output, 80); err == nil {
				t.Error("ConvertFile() should fail")
			}
			if _, err := os.Stat(tt.output); !os.IsNotExist(err) {
				t.Errorf("no output should be written, stat err = %v", err)
			}
		})
	}
}

func TestConvertFile_OutputDirBlockedByFile(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "a.png")
	writePNG(t, input, image.NewGray(image.Rect(0, 0, 4, 4)))

	blocker := filepath.Join(dir, "blocker")
	if err := os.WriteFile(blocker, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	svc := NewImageService()
	if err := svc.ConvertFile(input, filepath.Join(blocker, "a.webp"), 80); err == nil {
		t.Error("ConvertFile() should fail when the output directory is a file")
	}
}

func fill(img interface {
	Set(x, y int, c color.Color)
	Bounds() image.Rectangle
}, c color.Color) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			img.Set(x, y, c)
		}
	}
}

func writePNG(t *testing.T, path string, img image.Image) {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func decodeWebP(t *testing.T, path string) image.Image {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()
	img, err := webp.Decode(f)
	if err != nil {
		t.Fatalf("decode %s: %v", path, err)
	}
	return img
}
