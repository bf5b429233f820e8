// pkg/car/block.go
package car

import (
	"bytes"
	"fmt"

	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multihash"
)

// Block is one payload unit plus its content identifier. A Block can only
// be constructed through NewBlock, which verifies the identifier against
// the payload, so every Block in a decoded archive satisfies the
// content-addressing invariant.
type Block struct {
	cid     cid.Cid
	payload []byte
}

// NewBlock constructs a Block after verifying that hashing payload with the
// algorithm named in c's multihash header yields the digest embedded in c.
// Returns ErrContentMismatch if the digest differs and ErrIdentifierParse
// if the identifier names an unknown hash algorithm.
func NewBlock(c cid.Cid, payload []byte) (Block, error) {
	prefix := c.Prefix()

	sum, err := multihash.Sum(payload, prefix.MhType, prefix.MhLength)
	if err != nil {
		return Block{}, fmt.Errorf("%w: hash payload for %s: %v", ErrIdentifierParse, c, err)
	}

	if !bytes.Equal(sum, c.Hash()) {
		return Block{}, fmt.Errorf("%w: %s", ErrContentMismatch, c)
	}

	return Block{cid: c, payload: payload}, nil
}

// CID returns the block's content identifier
func (b Block) CID() cid.Cid {
	return b.cid
}

// Payload returns the block's raw payload bytes. The returned slice is
// owned by the block and must not be modified.
func (b Block) Payload() []byte {
	return b.payload
}
