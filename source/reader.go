package source

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"unicode/utf8"
)

// DefaultMaxBytes is the largest file FileReader accepts by default.
const DefaultMaxBytes = 1 << 20

// sniffLen is how much of a file is checked for NUL bytes.
const sniffLen = 8000

// Sentinel errors for file reads.
var (
	// ErrNotText indicates the file looks binary.
	ErrNotText = errors.New("not a text file")

	// ErrTooLarge indicates the file exceeds the size limit.
	ErrTooLarge = errors.New("file too large")

	// ErrIsDirectory indicates the path names a directory.
	ErrIsDirectory = errors.New("is a directory")
)

// FileReader reads text files from the local filesystem.
// It implements assembler.Reader.
type FileReader struct {
	// MaxBytes limits the file size. 0 or less disables the limit.
	MaxBytes int64
}

// NewFileReader creates a reader with the default size limit.
func NewFileReader() *FileReader {
	return &FileReader{MaxBytes: DefaultMaxBytes}
}

// WithMaxBytes sets the size limit.
func (r *FileReader) WithMaxBytes(n int64) *FileReader {
	r.MaxBytes = n
	return r
}

// Read returns the full content of path.
func (r *FileReader) Read(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%w: %s", ErrIsDirectory, path)
	}
	if r.MaxBytes > 0 && info.Size() > r.MaxBytes {
		return "", fmt.Errorf("%w: %s is %d bytes, limit %d", ErrTooLarge, path, info.Size(), r.MaxBytes)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if !isText(data) {
		return "", fmt.Errorf("%w: %s", ErrNotText, path)
	}

	return string(data), nil
}

func isText(data []byte) bool {
	head := data
	if len(head) > sniffLen {
		head = head[:sniffLen]
	}
	if bytes.IndexByte(head, 0) >= 0 {
		return false
	}
	return utf8.Valid(data)
}
