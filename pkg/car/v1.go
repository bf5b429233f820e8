// pkg/car/v1.go
package car

import (
	"errors"
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"
	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-varint"

	"github.com/creativeyann17/go-car/internal/format"
)

// Header Envelope Structure:
//   Length (varint):     byte length of the DAG-CBOR map
//   Map (length bytes):  {"version": int, "roots": [CID, ...]}
//
// Every archive starts with an envelope, and so does the version 1 archive
// embedded in a version 2 data window. "roots" is required for version 1
// and absent from the version 2 outer envelope (its remaining metadata
// lives in the fixed 40-byte header).

// cidTagNumber is the CBOR tag DAG-CBOR uses for links
const cidTagNumber = 42

// HeaderV1 holds the ordered root content identifiers of a version 1
// archive. Order is caller-visible and preserved from the wire.
type HeaderV1 struct {
	Roots []cid.Cid
}

// ArchiveV1 is a fully decoded version 1 archive: the header plus every
// block in physical stream order.
type ArchiveV1 struct {
	Header HeaderV1
	Blocks []Block
}

// envelope is the decoded leading metadata record
type envelope struct {
	version  uint64
	roots    []cid.Cid
	hasRoots bool
}

// readEnvelope frames and decodes the leading header envelope
func readEnvelope(r io.Reader, opts *Options) (envelope, error) {
	buf, err := format.ReadSection(r, opts.MaxHeaderBytes)
	if err != nil {
		// The envelope is mandatory, so a clean EOF here is still truncation
		return envelope{}, translateSectionErr(err)
	}

	var headerMap map[string]any
	if err := cbor.Unmarshal(buf, &headerMap); err != nil {
		return envelope{}, fmt.Errorf("%w: decode header map: %v", ErrInvalidFormat, err)
	}

	env := envelope{}

	switch v := headerMap["version"].(type) {
	case uint64:
		env.version = v
	default:
		// Missing, negative, or non-integer version
		return envelope{}, fmt.Errorf("%w: header has no integer version field", ErrInvalidFormat)
	}

	if raw, ok := headerMap["roots"]; ok {
		roots, err := rootsFromHeader(raw)
		if err != nil {
			return envelope{}, err
		}
		env.roots = roots
		env.hasRoots = true
	}

	return env, nil
}

// rootsFromHeader converts the raw "roots" header value into CIDs. Every
// element must be a DAG-CBOR link (tag 42 over an identity-prefixed byte
// string); any other element type is a format violation.
func rootsFromHeader(raw any) ([]cid.Cid, error) {
	list, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: header roots is not a list", ErrInvalidFormat)
	}

	roots := make([]cid.Cid, 0, len(list))
	for i, el := range list {
		tag, ok := el.(cbor.Tag)
		if !ok || tag.Number != cidTagNumber {
			return nil, fmt.Errorf("%w: root %d is not a link", ErrInvalidFormat, i)
		}
		content, ok := tag.Content.([]byte)
		if !ok || len(content) == 0 || content[0] != 0x00 {
			return nil, fmt.Errorf("%w: root %d link is not an identity-prefixed byte string", ErrInvalidFormat, i)
		}
		c, err := cid.Cast(content[1:])
		if err != nil {
			return nil, fmt.Errorf("%w: root %d: %v", ErrIdentifierParse, i, err)
		}
		roots = append(roots, c)
	}
	return roots, nil
}

// decodeBlocks reads the version 1 block stream positioned immediately
// after the header envelope. The loop ends without error only when zero
// bytes are available at a record boundary; a failure anywhere inside a
// record propagates, so a truncated stream can never decode as a shorter
// valid one.
func decodeBlocks(r io.Reader, opts *Options) ([]Block, error) {
	var blocks []Block
	for {
		buf, err := format.ReadSection(r, opts.MaxBlockBytes)
		if errors.Is(err, io.EOF) {
			// Clean end of the block stream
			return blocks, nil
		}
		if err != nil {
			return nil, translateSectionErr(err)
		}

		n, c, err := cid.CidFromBytes(buf)
		if err != nil {
			return nil, fmt.Errorf("%w: block %d: %v", ErrIdentifierParse, len(blocks), err)
		}

		block, err := NewBlock(c, buf[n:])
		if err != nil {
			return nil, fmt.Errorf("block %d: %w", len(blocks), err)
		}
		blocks = append(blocks, block)

		if opts.Progress != nil {
			opts.Progress(ProgressEvent{
				Type:         EventBlock,
				CID:          c,
				BlockIndex:   len(blocks) - 1,
				PayloadBytes: len(block.Payload()),
			})
		}
	}
}

// translateSectionErr maps framing-level failures onto the package error
// taxonomy. io.EOF is included: callers that treat EOF as a clean end must
// check for it before translating.
func translateSectionErr(err error) error {
	switch {
	case errors.Is(err, varint.ErrOverflow), errors.Is(err, varint.ErrNotMinimal):
		return fmt.Errorf("%w: %v", ErrMalformedVarint, err)
	case errors.Is(err, format.ErrSectionTooLarge):
		return fmt.Errorf("%w: %v", ErrSectionTooLarge, err)
	case errors.Is(err, varint.ErrUnderflow),
		errors.Is(err, io.ErrUnexpectedEOF),
		errors.Is(err, io.EOF):
		return fmt.Errorf("%w: %v", ErrTruncated, err)
	default:
		return err
	}
}
