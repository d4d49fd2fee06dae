package orrery

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"
)

func TestPresentFlipsRows(t *testing.T) {
	fb := NewFramebuffer(3, 2)
	fb.CompositeWrite(0, 0, RGB(1, 0, 0), 0.1)
	fb.CompositeWrite(2, 1, RGB(0, 0, 1), 0.1)

	im := Present(fb)
	tests := []struct {
		x, y int
		want color.NRGBA
	}{
		{0, 1, color.NRGBA{255, 0, 0, 255}},
		{2, 0, color.NRGBA{0, 0, 255, 255}},
		{0, 0, color.NRGBA{0, 0, 0, 255}},
		{2, 1, color.NRGBA{0, 0, 0, 255}},
	}
	for _, tc := range tests {
		if got := im.NRGBAAt(tc.x, tc.y); got != tc.want {
			t.Errorf("pixel (%d, %d) = %v, want %v", tc.x, tc.y, got, tc.want)
		}
	}
}

func TestPresentToReusesImage(t *testing.T) {
	fb := NewFramebuffer(4, 4)
	im := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	fb.CompositeWrite(1, 3, White, 0)
	PresentTo(fb, im)
	if got := im.NRGBAAt(1, 0); got != (color.NRGBA{255, 255, 255, 255}) {
		t.Errorf("top row pixel %v", got)
	}
	fb.Clear()
	PresentTo(fb, im)
	if got := im.NRGBAAt(1, 0); got != (color.NRGBA{0, 0, 0, 255}) {
		t.Errorf("stale pixel %v after clear", got)
	}
}

func TestColorNRGBA(t *testing.T) {
	tests := []struct {
		c    Color
		want color.NRGBA
	}{
		{Color{0.5, 0.25, 1, 1}, color.NRGBA{128, 64, 255, 255}},
		{Color{-1, 2, 0, 0.5}, color.NRGBA{0, 255, 0, 128}},
		{Transparent, color.NRGBA{}},
		{HexColor("#336699"), color.NRGBA{0x33, 0x66, 0x99, 0xff}},
		{HexColor("fff"), color.NRGBA{255, 255, 255, 255}},
		{HexColor("11223344"), color.NRGBA{0x11, 0x22, 0x33, 0x44}},
	}
	for _, tc := range tests {
		if got := tc.c.NRGBA(); got != tc.want {
			t.Errorf("%v.NRGBA() = %v, want %v", tc.c, got, tc.want)
		}
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"out.png", PNG, false},
		{"frames/0001.PNG", PNG, false},
		{"a.jpg", JPEG, false},
		{"a.jpeg", JPEG, false},
		{"a.bmp", BMP, false},
		{"a.gif", 0, true},
		{"noext", 0, true},
	}
	for _, tc := range tests {
		got, err := FormatFromPath(tc.path)
		if (err != nil) != tc.wantErr || got != tc.want {
			t.Errorf("FormatFromPath(%q) = %v, %v", tc.path, got, err)
		}
	}
}

func TestEncode(t *testing.T) {
	fb := NewFramebuffer(5, 4)
	fb.CompositeWrite(4, 3, White, 0)
	im := Present(fb)

	for _, f := range []Format{PNG, JPEG, BMP} {
		t.Run(f.String(), func(t *testing.T) {
			var buf bytes.Buffer
			if err := Encode(&buf, im, f); err != nil {
				t.Fatal(err)
			}
			if buf.Len() == 0 {
				t.Fatal("nothing written")
			}
			if f == JPEG {
				return
			}
			decode := png.Decode
			if f == BMP {
				decode = bmp.Decode
			}
			out, err := decode(&buf)
			if err != nil {
				t.Fatal(err)
			}
			r, g, b, _ := out.At(4, 0).RGBA()
			if r != 0xffff || g != 0xffff || b != 0xffff {
				t.Errorf("top-right pixel %v %v %v", r, g, b)
			}
		})
	}
	if err := Encode(&bytes.Buffer{}, im, Format(0)); err == nil {
		t.Error("encoded with an invalid format")
	}
}

func TestSaveImage(t *testing.T) {
	dir := t.TempDir()
	im := Present(NewFramebuffer(2, 2))
	path := filepath.Join(dir, "frame.png")
	if err := SaveImage(path, im); err != nil {
		t.Fatal(err)
	}
	if st, err := os.Stat(path); err != nil || st.Size() == 0 {
		t.Fatalf("stat %v, %v", st, err)
	}
	if err := SaveImage(filepath.Join(dir, "frame.tiff"), im); err == nil {
		t.Error("saved an unsupported format")
	}
}

func TestSaveImageCreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frames", "solar_0000.png")
	if err := SaveImage(path, Present(NewFramebuffer(2, 2))); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatal(err)
	}
}

func TestScale(t *testing.T) {
	im := Present(NewFramebuffer(8, 6))
	tests := []struct {
		w, h         uint
		wantW, wantH int
	}{
		{16, 0, 16, 12},
		{0, 3, 4, 3},
		{10, 10, 10, 10},
	}
	for _, tc := range tests {
		b := Scale(im, tc.w, tc.h).Bounds()
		if b.Dx() != tc.wantW || b.Dy() != tc.wantH {
			t.Errorf("Scale(%d, %d) = %v", tc.w, tc.h, b)
		}
	}
}
