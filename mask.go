package inpaintblocks

import (
	"math/rand"
	"strings"

	"github.com/pkg/errors"
)

// Masks use 1 for occluded pixels and 0 for visible ones.

// RandomMask creates a mask where every pixel is occluded
// independently with probability p.
func RandomMask(rng *rand.Rand, rows, cols int, p float64) (*Image, error) {
	if p < 0 || p > 1 {
		return nil, errors.Wrapf(ErrInvalidProbability, "random mask: p=%f", p)
	}
	mask := NewImage(rows, cols)
	for i := range mask.Data {
		if rng.Float64() < p {
			mask.Data[i] = 1
		}
	}
	return mask, nil
}

// RandomMaskBatch creates n independent random masks.
func RandomMaskBatch(rng *rand.Rand, n, rows, cols int, p float64) (Batch, error) {
	res := make(Batch, n)
	for i := range res {
		mask, err := RandomMask(rng, rows, cols, p)
		if err != nil {
			return nil, err
		}
		res[i] = mask
	}
	return res, nil
}

// HalfBlockMask creates a mask which hides half of a
// label's block along with a half-block strip next to
// it, so that the visible evidence is ambiguous between
// two neighboring labels.
//
// Blocks in the first two grid columns reveal their right
// half and hide a strip on their right, while the other
// blocks do the mirror image.
// This keeps the hidden region away from the image edges,
// where there would be no ambiguity.
//
// If label is nil, a random one is chosen.
// The label grid must be square.
func HalfBlockMask(rng *rand.Rand, g Geometry, label *int) (*Image, error) {
	if g.GridRows() != g.GridCols() {
		return nil, errors.Wrapf(ErrNonSquareGrid, "half-block mask: %dx%d grid",
			g.GridRows(), g.GridCols())
	}
	var l int
	if label == nil {
		l = rng.Intn(2*g.NumLabels()) % g.NumLabels()
	} else {
		l = *label
		if err := g.checkLabel(l); err != nil {
			return nil, errors.Wrap(err, "half-block mask")
		}
	}

	block := NewImage(g.Rows, g.Cols)
	rowStart, rowEnd, colStart, colEnd := g.LabelPatch(l)
	for row := rowStart; row < rowEnd; row++ {
		for col := colStart; col < colEnd; col++ {
			block.Set(row, col, 1)
		}
	}

	offset := g.BlockWidth / 2
	if l%g.GridCols() < 2 {
		offset = -offset
	}
	inside := rollCols(block, offset)
	outside := rollCols(block, -offset)

	mask := NewImage(g.Rows, g.Cols)
	for i, b := range block.Data {
		mask.Data[i] = b*inside.Data[i] + (1-b)*outside.Data[i]
	}
	return mask, nil
}

// HalfBlockMaskBatch creates one half-block mask per
// label.
// If labels is nil, n masks with random labels are
// created instead.
func HalfBlockMaskBatch(rng *rand.Rand, g Geometry, n int, labels []int) (Batch, error) {
	if labels != nil && len(labels) != n {
		return nil, errors.Wrapf(ErrShapeMismatch, "half-block mask batch: %d labels for %d masks",
			len(labels), n)
	}
	res := make(Batch, n)
	for i := range res {
		var label *int
		if labels != nil {
			label = &labels[i]
		}
		mask, err := HalfBlockMask(rng, g, label)
		if err != nil {
			return nil, err
		}
		res[i] = mask
	}
	return res, nil
}

// rollCols shifts every row of an image to the right by
// shift columns, wrapping around the edge.
func rollCols(img *Image, shift int) *Image {
	res := NewImage(img.Rows, img.Cols)
	for row := 0; row < img.Rows; row++ {
		for col := 0; col < img.Cols; col++ {
			dst := ((col+shift)%img.Cols + img.Cols) % img.Cols
			res.Set(row, dst, img.At(row, col))
		}
	}
	return res
}

// A MaskKind selects one of the mask generators.
type MaskKind int

const (
	// HalfBlockMasks selects HalfBlockMaskBatch.
	HalfBlockMasks MaskKind = iota

	// RandomMasks selects RandomMaskBatch.
	RandomMasks
)

// ParseMaskKind parses "halfblock" or "random".
func ParseMaskKind(name string) (MaskKind, error) {
	switch strings.ToLower(name) {
	case "halfblock", "half-block":
		return HalfBlockMasks, nil
	case "random":
		return RandomMasks, nil
	default:
		return 0, errors.Wrapf(ErrInvalidSelector, "parse mask kind %q", name)
	}
}

// MaskBatch generates one mask per label.
// The labels are ignored by random masks, which occlude
// pixels with probability p.
func (m MaskKind) MaskBatch(rng *rand.Rand, g Geometry, labels []int, p float64) (Batch, error) {
	switch m {
	case HalfBlockMasks:
		return HalfBlockMaskBatch(rng, g, len(labels), labels)
	case RandomMasks:
		return RandomMaskBatch(rng, len(labels), g.Rows, g.Cols, p)
	default:
		return nil, errors.Wrapf(ErrInvalidSelector, "mask kind %d", int(m))
	}
}
