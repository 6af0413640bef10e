// Package dataset provides the raw mortality CSV bytes the engine parses.
//
// The build ships a gzip-compressed copy of the dataset inside the binary. An
// operator can point at a file on disk instead, which takes precedence.
package dataset

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// EmbeddedName is the file name of the compiled-in asset.
const EmbeddedName = "mortality_data.csv.gz"

//go:embed mortality_data.csv.gz
var embedded []byte

// Embedded returns the decompressed CSV bytes compiled into the binary.
func Embedded() ([]byte, error) {
	return decode(EmbeddedName, embedded)
}

// Open returns the CSV bytes at path, or the embedded dataset when path is empty.
// Files ending in .gz are decompressed.
func Open(path string) ([]byte, error) {
	if path == "" {
		return Embedded()
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading dataset %s: %w", path, err)
	}
	return decode(path, raw)
}

func decode(name string, raw []byte) ([]byte, error) {
	if !strings.HasSuffix(name, ".gz") {
		return raw, nil
	}
	zr, err := gzip.NewReader(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("opening gzip stream %s: %w", name, err)
	}
	defer zr.Close()

	out, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("decompressing %s: %w", name, err)
	}
	return out, nil
}
