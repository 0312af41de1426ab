package inpaintblocks

import (
	"math"
	"math/rand"

	"github.com/pkg/errors"
)

// DefaultTopK is the number of candidate labels the
// oracle chooses between.
const DefaultTopK = 2

// OracleInpainter fills in occluded pixels of mixture of
// blocks images by guessing the block's label from the
// visible pixels and rendering a fresh block.
type OracleInpainter struct {
	Blocks *Blocks
	Filter Filter

	// NoiseLevel is the standard deviation of the noise
	// substituted for occluded pixels before filtering.
	NoiseLevel float64

	// TopK is the number of most likely labels that are
	// kept when sampling.
	TopK int
}

// NewOracleInpainter creates an oracle for the dataset
// geometry, using a "median" or "average" filter.
func NewOracleInpainter(mode string, g Geometry) (*OracleInpainter, error) {
	filterMode, err := ParseFilterMode(mode)
	if err != nil {
		return nil, errors.Wrap(err, "new oracle inpainter")
	}
	blocks, err := NewBlocks(g)
	if err != nil {
		return nil, errors.Wrap(err, "new oracle inpainter")
	}
	filter, err := NewGeometryFilter(filterMode, g)
	if err != nil {
		return nil, errors.Wrap(err, "new oracle inpainter")
	}
	return &OracleInpainter{
		Blocks:     blocks,
		Filter:     filter,
		NoiseLevel: blocks.NoiseLevel,
		TopK:       DefaultTopK,
	}, nil
}

// InferLabelProbs computes a distribution over labels for
// every image, looking only at the visible pixels.
//
// Each distribution has at most o.TopK nonzero entries.
func (o *OracleInpainter) InferLabelProbs(rng *rand.Rand, images, masks Batch) ([][]float64, error) {
	responses, err := o.responses(rng, images, masks)
	if err != nil {
		return nil, err
	}
	res := make([][]float64, len(responses))
	for i, resp := range responses {
		res[i] = TopK(Softmax(resp.Data, len(resp.Data)), o.TopK)
	}
	return res, nil
}

// LabelProbMaps is like InferLabelProbs, but it lays out
// each distribution on the label grid.
// This is mostly useful for visualization.
func (o *OracleInpainter) LabelProbMaps(rng *rand.Rand, images, masks Batch) (Batch, error) {
	probs, err := o.InferLabelProbs(rng, images, masks)
	if err != nil {
		return nil, err
	}
	g := o.Blocks.Geometry
	res := make(Batch, len(probs))
	for i, p := range probs {
		res[i] = &Image{Rows: g.GridRows(), Cols: g.GridCols(), Data: p}
	}
	return res, nil
}

// GenerateBackground samples a label for every image and
// renders a complete block image for it.
//
// The block intensity is estimated from the brightest
// visible pixel.
func (o *OracleInpainter) GenerateBackground(rng *rand.Rand, images, masks Batch) (Batch, error) {
	probs, err := o.InferLabelProbs(rng, images, masks)
	if err != nil {
		return nil, err
	}
	res := make(Batch, len(images))
	for i, p := range probs {
		label := SampleIndex(rng, p)
		beta := estimateBeta(images[i], masks[i])
		res[i], err = o.Blocks.GenerateImage(beta, label)
		if err != nil {
			return nil, errors.Wrap(err, "generate background")
		}
	}
	return res, nil
}

// ImputeMissing replaces the occluded pixels of every
// image with pixels from GenerateBackground.
func (o *OracleInpainter) ImputeMissing(rng *rand.Rand, images, masks Batch) (Batch, error) {
	background, err := o.GenerateBackground(rng, images, masks)
	if err != nil {
		return nil, err
	}
	return Composite(images, masks, background)
}

// Impute is equivalent to ImputeMissing.
func (o *OracleInpainter) Impute(rng *rand.Rand, images, masks Batch) (Batch, error) {
	return o.ImputeMissing(rng, images, masks)
}

// responses computes the cropped filter response for
// every image after replacing occluded pixels with noise.
func (o *OracleInpainter) responses(rng *rand.Rand, images, masks Batch) (Batch, error) {
	if err := checkShapes(images, masks); err != nil {
		return nil, errors.Wrap(err, "infer label probs")
	}
	g := o.Blocks.Geometry
	res := make(Batch, len(images))
	for i, img := range images {
		if img.Rows != g.Rows || img.Cols != g.Cols {
			return nil, errors.Wrapf(ErrShapeMismatch, "infer label probs: image %d is %dx%d, expected %dx%d",
				i, img.Rows, img.Cols, g.Rows, g.Cols)
		}
		visible := img.Copy()
		for j, m := range masks[i].Data {
			if m != 0 {
				visible.Data[j] = (1-m)*visible.Data[j] + m*o.NoiseLevel*rng.NormFloat64()
			}
		}
		res[i] = CropBorder(o.Filter.Apply(visible), 1)
	}
	return res, nil
}

// Composite takes pixels from images where the mask is 0
// and from fill where the mask is 1.
func Composite(images, masks, fill Batch) (Batch, error) {
	if err := checkShapes(images, masks); err != nil {
		return nil, errors.Wrap(err, "composite")
	}
	if err := checkShapes(images, fill); err != nil {
		return nil, errors.Wrap(err, "composite")
	}
	res := make(Batch, len(images))
	for i, img := range images {
		out := NewImage(img.Rows, img.Cols)
		for j, x := range img.Data {
			m := masks[i].Data[j]
			switch m {
			case 0:
				out.Data[j] = x
			case 1:
				out.Data[j] = fill[i].Data[j]
			default:
				out.Data[j] = x*(1-m) + fill[i].Data[j]*m
			}
		}
		res[i] = out
	}
	return res, nil
}

// estimateBeta finds the brightest visible pixel, clamped
// to [0, 1].
func estimateBeta(img, mask *Image) float64 {
	beta := 0.0
	for i, x := range img.Data {
		if mask.Data[i] == 0 {
			beta = math.Max(beta, x)
		}
	}
	return math.Min(beta, 1)
}
