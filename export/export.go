// Package export encodes rendered buffers to image files.
// The format follows the destination extension: .png, .bmp, .tif/.tiff.
package export

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/lixenwraith/vi-mandel/render"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// Format identifies an output encoding
type Format uint8

const (
	FormatPNG Format = iota
	FormatBMP
	FormatTIFF
)

// String returns human-readable format name
func (f Format) String() string {
	switch f {
	case FormatPNG:
		return "PNG"
	case FormatBMP:
		return "BMP"
	case FormatTIFF:
		return "TIFF"
	default:
		return "Unknown"
	}
}

// FormatFor resolves the format from a path extension
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return FormatPNG, nil
	case ".bmp":
		return FormatBMP, nil
	case ".tif", ".tiff":
		return FormatTIFF, nil
	case "":
		return FormatPNG, fmt.Errorf("output %q has no extension (want .png, .bmp or .tiff)", path)
	}
	return FormatPNG, fmt.Errorf("unsupported output extension %q", filepath.Ext(path))
}

// Encode writes img to w in the given format
func Encode(w io.Writer, img image.Image, f Format) error {
	switch f {
	case FormatPNG:
		return png.Encode(w, img)
	case FormatBMP:
		return bmp.Encode(w, img)
	case FormatTIFF:
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	}
	return fmt.Errorf("unknown format %d", f)
}

// Save encodes buf to path, creating parent directories as needed
func Save(buf *render.Buffer, path string) (err error) {
	if buf.Width() == 0 || buf.Height() == 0 {
		return fmt.Errorf("save %s: empty image", path)
	}

	format, err := FormatFor(path)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("save %s: %w", path, err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("save %s: %w", path, cerr)
		}
	}()

	if err := Encode(f, buf.ToImage(), format); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return nil
}
