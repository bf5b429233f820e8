// pkg/car/errors.go
package car

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidFormat is returned when the archive is structurally present
	// but a field is semantically wrong (missing roots, non-list roots,
	// non-integer version, nested non-v1 payload inside a v2 wrapper)
	ErrInvalidFormat = errors.New("invalid content archive format")

	// ErrTruncated is returned when fewer bytes are available than a length
	// prefix or the fixed v2 header promises
	ErrTruncated = errors.New("truncated content archive")

	// ErrMalformedVarint is returned when a varint length prefix is not a
	// valid encoding (overflow or non-minimal)
	ErrMalformedVarint = errors.New("malformed varint length prefix")

	// ErrContentMismatch is returned when a block's payload hash does not
	// match the digest embedded in its content identifier
	ErrContentMismatch = errors.New("block payload does not match identifier digest")

	// ErrIdentifierParse is returned when a content identifier's
	// self-describing prefix is invalid
	ErrIdentifierParse = errors.New("invalid content identifier")

	// ErrSectionTooLarge is returned when a section length prefix exceeds
	// the configured MaxHeaderBytes/MaxBlockBytes limit
	ErrSectionTooLarge = errors.New("section length exceeds configured limit")
)

// UnsupportedVersionError is returned when the header envelope declares a
// version other than 1 or 2
type UnsupportedVersionError struct {
	Version uint64
}

func (e *UnsupportedVersionError) Error() string {
	return fmt.Sprintf("unsupported content archive version: %d", e.Version)
}
