// pkg/carfile/open.go

// Package carfile opens content archive files for decoding, transparently
// handling zstd- and xz-compressed archives (.car.zst, .car.xz). Outer
// compression is detected from magic bytes, never from the file name.
package carfile

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"

	"github.com/creativeyann17/go-car/internal/format"
	"github.com/creativeyann17/go-car/pkg/car"
)

// memReader is a seekable in-memory view of a decompressed archive
type memReader struct {
	*bytes.Reader
}

func (memReader) Close() error { return nil }

// Open opens the archive at path and returns a seekable view of its raw
// archive bytes. Compressed archives are decompressed fully into memory,
// since decoding needs random access and neither zstd nor xz streams are
// seekable.
func Open(path string) (io.ReadSeekCloser, error) {
	if path == "" {
		return nil, ErrInputRequired
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}

	magic := make([]byte, 6)
	n, err := io.ReadFull(f, magic)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		f.Close()
		return nil, fmt.Errorf("read magic: %w", err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		f.Close()
		return nil, fmt.Errorf("seek to start: %w", err)
	}

	switch format.DetectCompression(magic[:n]) {
	case format.CompressionZstd:
		defer f.Close()
		dec, err := zstd.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("open zstd stream: %w", err)
		}
		defer dec.Close()
		data, err := io.ReadAll(dec)
		if err != nil {
			return nil, fmt.Errorf("decompress zstd archive: %w", err)
		}
		return memReader{bytes.NewReader(data)}, nil

	case format.CompressionXZ:
		defer f.Close()
		xzr, err := xz.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("open xz stream: %w", err)
		}
		data, err := io.ReadAll(xzr)
		if err != nil {
			return nil, fmt.Errorf("decompress xz archive: %w", err)
		}
		return memReader{bytes.NewReader(data)}, nil

	default:
		return f, nil
	}
}

// Decode opens and decodes the archive at path. opts may be nil for
// defaults.
func Decode(path string, opts *car.Options) (*car.ContentArchive, error) {
	src, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	return car.Decode(src, opts)
}
