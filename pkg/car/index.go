// pkg/car/index.go
package car

import (
	"fmt"
	"io"

	"github.com/creativeyann17/go-car/internal/format"
)

// Known index codec selectors. Their entry layouts are dispatched by
// selector only; no normative per-entry encoding is defined here, so the
// index body is left unparsed.
const (
	// IndexCodecSorted identifies the digest-sorted index
	IndexCodecSorted = 0x0400

	// IndexCodecMultihashSorted identifies the index sorted by multihash
	// code, then digest
	IndexCodecMultihashSorted = 0x0401
)

// Index records that an index section was found. Codec is the selector
// varint read at Offset; the section body is opaque.
type Index struct {
	Codec  uint64
	Offset uint64
}

// Recognized reports whether the codec selector is one of the known index
// codecs. Unrecognized selectors are not an error: the section is still
// present, just undecodable.
func (ix *Index) Recognized() bool {
	return ix.Codec == IndexCodecSorted || ix.Codec == IndexCodecMultihashSorted
}

// readIndex reads the index codec selector at offset. offset == 0 is the
// sentinel for "no index" and yields (nil, nil).
func readIndex(r io.ReadSeeker, offset uint64) (*Index, error) {
	if offset == 0 {
		return nil, nil
	}

	if _, err := r.Seek(int64(offset), io.SeekStart); err != nil {
		return nil, fmt.Errorf("%w: seek to index: %v", ErrTruncated, err)
	}

	codec, err := format.ReadUvarint(r)
	if err != nil {
		// The header promised an index, so EOF here is truncation
		return nil, translateSectionErr(err)
	}

	return &Index{Codec: codec, Offset: offset}, nil
}
