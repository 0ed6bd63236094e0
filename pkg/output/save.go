package output

import (
	"bytes"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
)

const ppmExt = ".ppm"

// Save writes img to path, choosing the format from the file extension.
// .ppm is written as plain-text PPM; png, jpg, gif, tif and bmp go through imaging.
// Missing parent directories are created.
func Save(path string, img image.Image) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory for %s: %w", path, err)
		}
	}

	if !isPPM(path) {
		if err := imaging.Save(img, path); err != nil {
			return fmt.Errorf("save %s: %w", path, err)
		}
		return nil
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := EncodePPM(file, img); err != nil {
		file.Close()
		return fmt.Errorf("save %s: %w", path, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

// Encode renders img into memory in the format implied by name's extension
func Encode(name string, img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if isPPM(name) {
		if err := EncodePPM(&buf, img); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}

	format, err := imaging.FormatFromFilename(name)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", name, err)
	}
	if err := imaging.Encode(&buf, img, format); err != nil {
		return nil, fmt.Errorf("encode %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

func isPPM(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ppmExt)
}
