package utils

import (
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	uuid "github.com/twinj/uuid"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

var (
	ErrNotDataURI       = errors.New("drawing is not a base64 data URI")
	ErrInvalidExtension = errors.New("data URI has no usable file extension")
)

// DataURI is a decoded "data:<mime type>;base64,<payload>" string.
type DataURI struct {
	MimeType  string
	Extension string
	Data      []byte
}

// DecodeDataURI splits a data URI into its mime type and payload and decodes the payload.
// The extension is the part of the mime type after the last slash, "png" for "image/png".
func DecodeDataURI(s string) (DataURI, error) {
	header, payload, found := strings.Cut(strings.TrimSpace(s), ";base64,")
	if !found {
		return DataURI{}, ErrNotDataURI
	}
	mimeType := strings.TrimPrefix(header, "data:")
	extension := mimeType[strings.LastIndex(mimeType, "/")+1:]
	if extension == "" || strings.ContainsAny(extension, `/\.`) || strings.ContainsRune(extension, 0) {
		return DataURI{}, ErrInvalidExtension
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		// Some encoders drop the padding
		var rawErr error
		data, rawErr = base64.RawStdEncoding.DecodeString(strings.TrimRight(payload, "="))
		if rawErr != nil {
			return DataURI{}, fmt.Errorf("invalid base64 payload: %w", err)
		}
	}
	return DataURI{MimeType: mimeType, Extension: extension, Data: data}, nil
}

// NewFileName returns a random file name with the given extension. The extension may be given
// with or without the leading dot.
func NewFileName(extension string) string {
	extension = strings.TrimPrefix(extension, ".")
	if extension == "" {
		return uuid.NewV4().String()
	}
	return uuid.NewV4().String() + "." + extension
}

// WriteMediaFile writes data to a new randomly named file in dir and returns its path.
// The directory is created when missing.
func WriteMediaFile(dir string, extension string, data []byte) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create media directory: %w", err)
	}
	path := filepath.Join(dir, NewFileName(extension))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write media file: %w", err)
	}
	return path, nil
}

// ImageInfo is what the header of an encoded image tells about it.
type ImageInfo struct {
	Format string
	Width  int
	Height int
}

// ProbeImage reads the image header from r. Supports png, jpeg, gif, bmp, tiff and webp.
func ProbeImage(r io.Reader) (ImageInfo, error) {
	config, format, err := image.DecodeConfig(r)
	if err != nil {
		return ImageInfo{}, err
	}
	return ImageInfo{Format: format, Width: config.Width, Height: config.Height}, nil
}
