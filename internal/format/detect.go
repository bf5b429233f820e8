// internal/format/detect.go
package format

// Compression represents the detected outer compression of an archive file
type Compression int

const (
	CompressionNone Compression = iota
	CompressionZstd
	CompressionXZ
)

// String returns the string representation of the compression
func (c Compression) String() string {
	switch c {
	case CompressionZstd:
		return "ZSTD"
	case CompressionXZ:
		return "XZ"
	default:
		return "NONE"
	}
}

// DetectCompression detects outer compression from magic bytes.
// Requires at least 6 bytes to detect all formats; shorter input is
// treated as uncompressed.
func DetectCompression(magic []byte) Compression {
	if IsZstd(magic) {
		return CompressionZstd
	}
	if IsXZ(magic) {
		return CompressionXZ
	}
	return CompressionNone
}

// IsZstd returns true if the magic bytes indicate a zstd frame
// (magic: 0x28B52FFD, little-endian on disk)
func IsZstd(magic []byte) bool {
	return len(magic) >= 4 &&
		magic[0] == 0x28 && magic[1] == 0xB5 && magic[2] == 0x2F && magic[3] == 0xFD
}

// IsXZ returns true if the magic bytes indicate an XZ stream
// (magic: 0xFD377A585A00)
func IsXZ(magic []byte) bool {
	return len(magic) >= 6 &&
		magic[0] == 0xFD && magic[1] == '7' && magic[2] == 'z' &&
		magic[3] == 'X' && magic[4] == 'Z' && magic[5] == 0x00
}
