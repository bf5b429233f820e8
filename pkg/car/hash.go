// pkg/car/hash.go
package car

import (
	"hash"

	"github.com/multiformats/go-multihash"
	mhreg "github.com/multiformats/go-multihash/core"
	"github.com/zeebo/blake3"
)

func init() {
	// Verify blake3-addressed blocks with the SIMD-accelerated hasher
	mhreg.Register(multihash.BLAKE3, func() hash.Hash {
		return blake3.New()
	})
}
