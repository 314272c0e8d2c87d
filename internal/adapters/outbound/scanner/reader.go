package scanner

import (
	"fmt"
	"os"
)

// DefaultMaxFileSize caps how much of a single file is analyzed.
const DefaultMaxFileSize = 2 << 20

// Reader implements domain.SourceReader on the local filesystem.
type Reader struct {
	maxSize int64
}

// NewReader returns a reader that refuses files larger than maxSize bytes.
// maxSize <= 0 means DefaultMaxFileSize.
func NewReader(maxSize int64) *Reader {
	if maxSize <= 0 {
		maxSize = DefaultMaxFileSize
	}
	return &Reader{maxSize: maxSize}
}

func (r *Reader) ReadFile(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}
	if info.Size() > r.maxSize {
		return nil, fmt.Errorf("%s is %d bytes, over the %d byte limit", path, info.Size(), r.maxSize)
	}
	return os.ReadFile(path)
}
