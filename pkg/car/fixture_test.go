// pkg/car/fixture_test.go
package car_test

import (
	"encoding/binary"
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multihash"
	"github.com/multiformats/go-varint"
	"github.com/stretchr/testify/require"
)

// cidOf returns a raw-codec CIDv1 over payload using the given multihash code
func cidOf(t *testing.T, payload []byte, mhCode uint64) cid.Cid {
	t.Helper()
	mh, err := multihash.Sum(payload, mhCode, -1)
	require.NoError(t, err)
	return cid.NewCidV1(cid.Raw, mh)
}

// blockSection frames one block record: varint length, CID bytes, payload
func blockSection(t *testing.T, payload []byte) (cid.Cid, []byte) {
	t.Helper()
	c := cidOf(t, payload, multihash.SHA2_256)
	record := append(c.Bytes(), payload...)
	return c, append(varint.ToUvarint(uint64(len(record))), record...)
}

// cborLink encodes a CID as a DAG-CBOR link: tag 42 over the
// identity-multibase-prefixed CID bytes
func cborLink(c cid.Cid) cbor.Tag {
	return cbor.Tag{Number: 42, Content: append([]byte{0x00}, c.Bytes()...)}
}

// envelope frames a header envelope from an arbitrary header map
func envelope(t *testing.T, header map[string]any) []byte {
	t.Helper()
	data, err := cbor.Marshal(header)
	require.NoError(t, err)
	return append(varint.ToUvarint(uint64(len(data))), data...)
}

// v1Envelope frames a version 1 header envelope with the given roots
func v1Envelope(t *testing.T, roots []cid.Cid) []byte {
	t.Helper()
	links := make([]any, len(roots))
	for i, c := range roots {
		links[i] = cborLink(c)
	}
	return envelope(t, map[string]any{"version": uint64(1), "roots": links})
}

// buildV1 assembles a complete version 1 archive from payloads. The first
// block's CID is the sole root.
func buildV1(t *testing.T, payloads [][]byte) ([]byte, []cid.Cid) {
	t.Helper()
	require.NotEmpty(t, payloads)

	cids := make([]cid.Cid, len(payloads))
	var body []byte
	for i, payload := range payloads {
		c, section := blockSection(t, payload)
		cids[i] = c
		body = append(body, section...)
	}

	archive := append(v1Envelope(t, cids[:1]), body...)
	return archive, cids
}

// buildV2 wraps a complete version 1 archive in a version 2 envelope. The
// data window starts immediately after the pragma and fixed header; when
// indexCodec is nonzero an index section with that codec selector is
// appended right after the window and its offset recorded in the header.
func buildV2(t *testing.T, inner []byte, characteristics [16]byte, indexCodec uint64) []byte {
	t.Helper()

	pragma := envelope(t, map[string]any{"version": uint64(2)})
	dataOffset := uint64(len(pragma) + 40)
	dataSize := uint64(len(inner))
	var indexOffset uint64
	if indexCodec != 0 {
		indexOffset = dataOffset + dataSize
	}

	hdr := make([]byte, 40)
	copy(hdr, characteristics[:])
	binary.LittleEndian.PutUint64(hdr[16:24], dataOffset)
	binary.LittleEndian.PutUint64(hdr[24:32], dataSize)
	binary.LittleEndian.PutUint64(hdr[32:40], indexOffset)

	archive := append(append(pragma, hdr...), inner...)
	if indexCodec != 0 {
		archive = append(archive, varint.ToUvarint(indexCodec)...)
		// Opaque index body; the decoder never parses past the selector
		archive = append(archive, 0xDE, 0xAD, 0xBE, 0xEF)
	}
	return archive
}
