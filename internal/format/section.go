// internal/format/section.go
package format

import (
	"errors"
	"fmt"
	"io"

	"github.com/multiformats/go-varint"
)

// Section Structure:
//   Length (varint):     unsigned LEB128, at most 9 bytes
//   Body (length bytes): raw section payload
//
// Both the archive header envelope and every block record use this framing.

// ErrSectionTooLarge is returned when a section length prefix exceeds the
// limit passed to ReadSection
var ErrSectionTooLarge = errors.New("section length exceeds limit")

// byteReader adapts an io.Reader to io.ByteReader without buffering ahead,
// so the underlying reader's position stays exact for later seeks
type byteReader struct {
	r   io.Reader
	buf [1]byte
}

func (br *byteReader) ReadByte() (byte, error) {
	n, err := br.r.Read(br.buf[:])
	if n == 1 {
		return br.buf[0], nil
	}
	if err == nil {
		err = io.ErrNoProgress
	}
	return 0, err
}

// ReadUvarint reads one unsigned varint from r.
// A clean end of stream (zero bytes available) returns io.EOF unchanged;
// running out of bytes mid-varint returns varint.ErrUnderflow.
func ReadUvarint(r io.Reader) (uint64, error) {
	if br, ok := r.(io.ByteReader); ok {
		return varint.ReadUvarint(br)
	}
	return varint.ReadUvarint(&byteReader{r: r})
}

// ReadSection reads one length-prefixed section and returns its body.
// maxLen caps the allocation; a length prefix above it fails with
// ErrSectionTooLarge before any body bytes are read.
//
// Error contract:
//   - io.EOF: zero bytes available at the section boundary (clean end)
//   - varint.ErrUnderflow: stream ended mid-prefix
//   - varint.ErrOverflow / varint.ErrNotMinimal: invalid prefix encoding
//   - io.ErrUnexpectedEOF: fewer body bytes than the prefix promised
func ReadSection(r io.Reader, maxLen uint64) ([]byte, error) {
	length, err := ReadUvarint(r)
	if err != nil {
		return nil, err
	}

	if maxLen > 0 && length > maxLen {
		return nil, fmt.Errorf("%w: %d > %d", ErrSectionTooLarge, length, maxLen)
	}

	body := make([]byte, length)
	if _, err := io.ReadFull(r, body); err != nil {
		// A zero-byte read after a nonzero prefix is still a truncation,
		// not a clean end of stream.
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return nil, fmt.Errorf("read section body: %w", err)
	}

	return body, nil
}
