// pkg/carfile/open_test.go
package carfile_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/ipfs/go-cid"
	"github.com/klauspost/compress/zstd"
	"github.com/multiformats/go-multihash"
	"github.com/multiformats/go-varint"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ulikunitz/xz"

	"github.com/creativeyann17/go-car/pkg/carfile"
)

// v1Fixture builds a single-block version 1 archive
func v1Fixture(t *testing.T) ([]byte, cid.Cid) {
	t.Helper()

	payload := []byte("compressed transport test payload")
	mh, err := multihash.Sum(payload, multihash.SHA2_256, -1)
	require.NoError(t, err)
	c := cid.NewCidV1(cid.Raw, mh)

	header, err := cbor.Marshal(map[string]any{
		"version": uint64(1),
		"roots":   []any{cbor.Tag{Number: 42, Content: append([]byte{0x00}, c.Bytes()...)}},
	})
	require.NoError(t, err)

	archive := append(varint.ToUvarint(uint64(len(header))), header...)
	record := append(c.Bytes(), payload...)
	archive = append(archive, varint.ToUvarint(uint64(len(record)))...)
	archive = append(archive, record...)
	return archive, c
}

func writeFixture(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func TestDecode(t *testing.T) {
	archive, root := v1Fixture(t)

	t.Run("PlainArchive", func(t *testing.T) {
		path := writeFixture(t, "test.car", archive)

		decoded, err := carfile.Decode(path, nil)
		require.NoError(t, err)
		require.Len(t, decoded.Roots(), 1)
		assert.Equal(t, root, decoded.Roots()[0])
		assert.Len(t, decoded.Blocks(), 1)
	})

	t.Run("ZstdArchive", func(t *testing.T) {
		enc, err := zstd.NewWriter(nil)
		require.NoError(t, err)
		compressed := enc.EncodeAll(archive, nil)
		require.NoError(t, enc.Close())

		path := writeFixture(t, "test.car.zst", compressed)

		decoded, err := carfile.Decode(path, nil)
		require.NoError(t, err)
		assert.Len(t, decoded.Blocks(), 1)
		assert.Equal(t, root, decoded.Roots()[0])
	})

	t.Run("XZArchive", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "test.car.xz")
		f, err := os.Create(path)
		require.NoError(t, err)
		w, err := xz.NewWriter(f)
		require.NoError(t, err)
		_, err = w.Write(archive)
		require.NoError(t, err)
		require.NoError(t, w.Close())
		require.NoError(t, f.Close())

		decoded, err := carfile.Decode(path, nil)
		require.NoError(t, err)
		assert.Len(t, decoded.Blocks(), 1)
	})

	t.Run("MissingFile", func(t *testing.T) {
		_, err := carfile.Decode(filepath.Join(t.TempDir(), "nope.car"), nil)
		assert.Error(t, err)
	})

	t.Run("EmptyPath", func(t *testing.T) {
		_, err := carfile.Decode("", nil)
		assert.ErrorIs(t, err, carfile.ErrInputRequired)
	})
}

func TestOpenDetectionByMagicNotName(t *testing.T) {
	archive, _ := v1Fixture(t)

	// A plain archive with a misleading .zst name must still open as plain
	path := writeFixture(t, "mislabeled.car.zst", archive)

	src, err := carfile.Open(path)
	require.NoError(t, err)
	defer src.Close()

	head := make([]byte, 1)
	_, err = src.Read(head)
	require.NoError(t, err)
	assert.Equal(t, archive[0], head[0])
}
