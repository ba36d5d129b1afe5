package discovery

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/repograph/repograph/internal/pipeline"
)

// binarySniffBytes is how much of a file's head is inspected for null bytes,
// mirroring git's binary heuristic. Bounding the read keeps detection O(1)
// in file size.
const binarySniffBytes = 8192

// DefaultMaxFileSize is the size ceiling applied when WalkOptions.MaxFileSize
// is left zero.
const DefaultMaxFileSize int64 = 1_048_576

// binaryExtensions lists extensions (lowercased, no dot) that are skipped
// outright when binary filtering is enabled, without opening the file.
var binaryExtensions = map[string]struct{}{
	"png": {}, "jpg": {}, "jpeg": {}, "gif": {}, "bmp": {}, "ico": {}, "webp": {},
	"pdf": {}, "zip": {}, "tar": {}, "gz": {}, "bz2": {}, "xz": {}, "7z": {}, "rar": {},
	"exe": {}, "dll": {}, "so": {}, "dylib": {}, "a": {}, "lib": {},
	"o": {}, "obj": {}, "class": {}, "pyc": {}, "pyo": {},
	"wasm": {}, "bin": {}, "dat": {},
	"mp3": {}, "mp4": {}, "avi": {}, "mov": {}, "mkv": {}, "flac": {}, "ogg": {}, "wav": {},
	"ttf": {}, "otf": {}, "woff": {}, "woff2": {}, "eot": {},
	"db": {}, "sqlite": {}, "sqlite3": {},
}

// HasBinaryExtension reports whether path carries a known-binary extension.
func HasBinaryExtension(path string) bool {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	_, ok := binaryExtensions[ext]
	return ok
}

// ShouldFilterBinary reports whether a file should be dropped under the
// binary-filtering policy: known binary extensions are dropped, and so are
// files the type detector could only classify as Other (unclassifiable
// content is assumed not worth budget).
func ShouldFilterBinary(path string, ft pipeline.FileType) bool {
	return HasBinaryExtension(path) || ft == pipeline.FileTypeOther
}

// IsBinary sniffs the first binarySniffBytes of the file at path for a null
// byte. An empty file is not binary. Safe for concurrent use; each call owns
// its file handle.
func IsBinary(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, fmt.Errorf("opening %s for binary detection: %w", path, err)
	}
	defer f.Close()

	buf := make([]byte, binarySniffBytes)
	n, err := f.Read(buf)
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("reading %s for binary detection: %w", path, err)
	}
	if n == 0 {
		return false, nil
	}
	return bytes.IndexByte(buf[:n], 0) != -1, nil
}
