// pkg/car/v2.go
package car

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/creativeyann17/go-car/internal/format"
)

// CharacteristicsSize is the byte length of the version 2 characteristics
// bitfield
const CharacteristicsSize = format.CharacteristicsSize

// HeaderV2 holds the fixed-width version 2 header: the characteristics
// bitfield plus the absolute byte positions of the embedded version 1
// archive and the optional index.
type HeaderV2 struct {
	Characteristics [CharacteristicsSize]byte
	DataOffset      uint64
	DataSize        uint64
	IndexOffset     uint64
}

// IsFullyIndexed reports whether the "fully indexed" characteristic bit is
// set. The flag is advisory; the decoder itself never acts on it.
func (h *HeaderV2) IsFullyIndexed() bool {
	// Bit test, not an equality comparison: the masked value is 0x80 when
	// the flag is set, never 1.
	return h.Characteristics[0]&0x80 != 0
}

// ArchiveV2 is a fully decoded version 2 archive: the fixed header, the
// version 1 archive decoded from the data window, and the optional index.
type ArchiveV2 struct {
	Header  HeaderV2
	Archive ArchiveV1
	Index   *Index
}

// IsFullyIndexed reports whether the archive declares itself fully indexed
func (a *ArchiveV2) IsFullyIndexed() bool {
	return a.Header.IsFullyIndexed()
}

// decodeV2 decodes the remainder of a version 2 archive, positioned
// immediately after the outer header envelope. The data window is copied
// into an isolated buffer before the recursive decode so the embedded
// archive's reads cannot perturb the outer source's position.
func decodeV2(r io.ReadSeeker, opts *Options) (*ContentArchive, error) {
	fh, err := format.ReadV2Header(r)
	if err != nil {
		return nil, translateSectionErr(err)
	}

	size, err := r.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, fmt.Errorf("seek to end: %w", err)
	}
	if fh.DataOffset > uint64(size) || fh.DataSize > uint64(size)-fh.DataOffset {
		return nil, fmt.Errorf("%w: data window [%d, %d) exceeds stream size %d",
			ErrTruncated, fh.DataOffset, fh.DataOffset+fh.DataSize, size)
	}

	if _, err := r.Seek(int64(fh.DataOffset), io.SeekStart); err != nil {
		return nil, fmt.Errorf("%w: seek to data window: %v", ErrTruncated, err)
	}
	window := make([]byte, fh.DataSize)
	if _, err := io.ReadFull(r, window); err != nil {
		return nil, fmt.Errorf("%w: read data window: %v", ErrTruncated, err)
	}

	// The embedded decode reports only block events; header/complete events
	// belong to the outer archive.
	innerOpts := *opts
	if opts.Progress != nil {
		progress := opts.Progress
		innerOpts.Progress = func(ev ProgressEvent) {
			if ev.Type == EventBlock {
				progress(ev)
			}
		}
	}

	inner, err := Decode(bytes.NewReader(window), &innerOpts)
	if err != nil {
		var uv *UnsupportedVersionError
		if errors.As(err, &uv) {
			return nil, fmt.Errorf("%w: version %d archive nested inside a v2 wrapper", ErrInvalidFormat, uv.Version)
		}
		return nil, fmt.Errorf("embedded archive: %w", err)
	}
	v1 := inner.V1()
	if v1 == nil {
		return nil, fmt.Errorf("%w: version %d archive nested inside a v2 wrapper", ErrInvalidFormat, inner.Version())
	}

	index, err := readIndex(r, fh.IndexOffset)
	if err != nil {
		return nil, err
	}
	if index != nil && opts.Progress != nil {
		opts.Progress(ProgressEvent{Type: EventIndex})
	}

	return &ContentArchive{
		v2: &ArchiveV2{
			Header: HeaderV2{
				Characteristics: fh.Characteristics,
				DataOffset:      fh.DataOffset,
				DataSize:        fh.DataSize,
				IndexOffset:     fh.IndexOffset,
			},
			Archive: *v1,
			Index:   index,
		},
	}, nil
}
