// internal/format/v2header.go
package format

import (
	"encoding/binary"
	"fmt"
	"io"
)

const (
	// V2HeaderSize is the fixed byte length of the version 2 header that
	// immediately follows the header envelope
	V2HeaderSize = 40

	// CharacteristicsSize is the byte length of the characteristics bitfield
	CharacteristicsSize = 16
)

// Version 2 Fixed Header Structure (40 bytes):
//   Characteristics (16): opaque bitfield, advisory flags
//   Data Offset (8):      uint64 LE, absolute offset of the embedded v1 archive
//   Data Size (8):        uint64 LE, byte length of the embedded v1 archive
//   Index Offset (8):     uint64 LE, absolute offset of the index, 0 = none

// V2Header holds the decoded fixed-width version 2 header fields
type V2Header struct {
	Characteristics [CharacteristicsSize]byte
	DataOffset      uint64
	DataSize        uint64
	IndexOffset     uint64
}

// ReadV2Header reads and decodes the 40-byte fixed header
func ReadV2Header(r io.Reader) (V2Header, error) {
	buf := make([]byte, V2HeaderSize)
	if _, err := io.ReadFull(r, buf); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return V2Header{}, fmt.Errorf("read v2 header: %w", err)
	}
	return ParseV2Header(buf)
}

// ParseV2Header decodes the 40-byte fixed header from buf
func ParseV2Header(buf []byte) (V2Header, error) {
	if len(buf) < V2HeaderSize {
		return V2Header{}, fmt.Errorf("parse v2 header: need %d bytes, got %d: %w",
			V2HeaderSize, len(buf), io.ErrUnexpectedEOF)
	}

	var hdr V2Header
	copy(hdr.Characteristics[:], buf[:CharacteristicsSize])
	hdr.DataOffset = binary.LittleEndian.Uint64(buf[CharacteristicsSize : CharacteristicsSize+8])
	hdr.DataSize = binary.LittleEndian.Uint64(buf[CharacteristicsSize+8 : CharacteristicsSize+16])
	hdr.IndexOffset = binary.LittleEndian.Uint64(buf[CharacteristicsSize+16 : V2HeaderSize])
	return hdr, nil
}
