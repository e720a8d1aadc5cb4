package sketch

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/png"
	"strings"
)

// SnapshotPrefix starts every snapshot string the surface emits.
const SnapshotPrefix = "data:image/png;base64,"

// ErrNotSnapshot is returned when a string is not a base64 image data URL.
var ErrNotSnapshot = errors.New("not an image data URL")

// EncodeSnapshot serializes img as a PNG data URL.
func EncodeSnapshot(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("encode png: %w", err)
	}
	return SnapshotPrefix + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// SnapshotBytes returns the raw image bytes carried by a data URL.
func SnapshotBytes(s string) ([]byte, error) {
	if !strings.HasPrefix(s, "data:image/") {
		return nil, ErrNotSnapshot
	}
	meta, payload, ok := strings.Cut(s, ",")
	if !ok || !strings.HasSuffix(meta, ";base64") {
		return nil, ErrNotSnapshot
	}
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotSnapshot, err)
	}
	return raw, nil
}

// DecodeSnapshot parses a data URL produced by EncodeSnapshot.
func DecodeSnapshot(s string) (image.Image, error) {
	raw, err := SnapshotBytes(s)
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return img, nil
}
