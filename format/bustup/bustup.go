// Package bustup decodes character bust-up portraits: a skeleton of named
// expression descriptors referencing shared sub-picture blocks (base face,
// mouth frames, eye frames), materialized on demand through a two-phase
// skeleton/builder handshake rather than decoding every combination eagerly.
package bustup

import (
	"fmt"

	"github.com/DCNick3/shin-go/format/picture"
)

// BlockPromise names one sub-picture a consumer may choose to materialize.
// It is a promise rather than already-decoded pixels because a bustup file
// typically contains far more face/mouth/eye combinations than any single
// frame needs rendered.
type BlockPromise struct {
	Name       string
	blockIndex int
}

// Expression groups the block promises that together make up one named
// facial expression (e.g. "normal", "smile_openmouth").
type Expression struct {
	Name     string
	Promises []BlockPromise
}

// Skeleton is the parsed-but-not-materialized form of a bustup file: the
// shared base picture plus every expression's block promises.
type Skeleton struct {
	pic         *picture.Picture
	Expressions []Expression
}

// Decode parses a bustup container. Layout mirrors picture.Picture's block
// list, with an expression table layered on top naming which blocks belong
// to which expression.
func Decode(data []byte, expressionTable map[string][]string) (*Skeleton, error) {
	pic, err := picture.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("bustup: %w", err)
	}

	nameToIndex := make(map[string]int, len(pic.Blocks))
	for i, b := range pic.Blocks {
		nameToIndex[blockName(b)] = i
	}

	exprs := make([]Expression, 0, len(expressionTable))
	for name, blockNames := range expressionTable {
		promises := make([]BlockPromise, 0, len(blockNames))
		for _, bn := range blockNames {
			idx, ok := nameToIndex[bn]
			if !ok {
				return nil, fmt.Errorf("bustup: expression %q references unknown block %q", name, bn)
			}
			promises = append(promises, BlockPromise{Name: bn, blockIndex: idx})
		}
		exprs = append(exprs, Expression{Name: name, Promises: promises})
	}

	return &Skeleton{pic: pic, Expressions: exprs}, nil
}

// blockName derives a stable lookup key for a picture block from its
// origin, since the container format itself carries no per-block name.
func blockName(b picture.Block) string {
	return fmt.Sprintf("%d,%d", b.OriginX, b.OriginY)
}

// CanvasSize returns the shared canvas dimensions every materialized
// expression composites onto.
func (s *Skeleton) CanvasSize() (width, height uint32) {
	return s.pic.CanvasWidth, s.pic.CanvasHeight
}

// Builder materializes a chosen subset of block promises into final block
// pixel data, the second phase of the skeleton/builder handshake.
type Builder struct {
	skeleton *Skeleton
}

// NewBuilder returns a Builder bound to skeleton.
func NewBuilder(skeleton *Skeleton) *Builder {
	return &Builder{skeleton: skeleton}
}

// Build materializes the given promises' picture blocks in order.
func (b *Builder) Build(promises []BlockPromise) ([]picture.Block, error) {
	out := make([]picture.Block, len(promises))
	for i, p := range promises {
		if p.blockIndex < 0 || p.blockIndex >= len(b.skeleton.pic.Blocks) {
			return nil, fmt.Errorf("bustup: promise %q has invalid block index %d", p.Name, p.blockIndex)
		}
		out[i] = b.skeleton.pic.Blocks[p.blockIndex]
	}
	return out, nil
}
