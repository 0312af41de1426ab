package inpaintblocks

import (
	"math/rand"

	"github.com/pkg/errors"
)

const (
	DefaultNoiseLevel = 0.1
	DefaultBetaMin    = 0.5
)

// Blocks is a synthetic "mixture of blocks" dataset.
//
// Every image is black except for a single square block,
// whose position is determined by the label and whose
// brightness is a parameter beta.
// Gaussian noise is added on top of every image.
type Blocks struct {
	Geometry Geometry

	// NoiseLevel is the standard deviation of the pixel
	// noise.
	NoiseLevel float64

	// BetaMin is the smallest block intensity.
	// Intensities are uniform in [BetaMin, 1].
	BetaMin float64
}

// NewBlocks creates a dataset with the default noise and
// intensity settings.
func NewBlocks(g Geometry) (*Blocks, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return &Blocks{
		Geometry:   g,
		NoiseLevel: DefaultNoiseLevel,
		BetaMin:    DefaultBetaMin,
	}, nil
}

// NumLabels is the number of distinct labels.
func (b *Blocks) NumLabels() int {
	return b.Geometry.NumLabels()
}

// GenerateImage deterministically renders the noiseless
// image for a label.
func (b *Blocks) GenerateImage(beta float64, label int) (*Image, error) {
	if err := b.Geometry.checkLabel(label); err != nil {
		return nil, err
	}
	img := NewImage(b.Geometry.Rows, b.Geometry.Cols)
	rowStart, rowEnd, colStart, colEnd := b.Geometry.LabelPatch(label)
	for row := rowStart; row < rowEnd; row++ {
		for col := colStart; col < colEnd; col++ {
			img.Set(row, col, beta)
		}
	}
	return img, nil
}

// Sample draws a random noisy image and its label.
func (b *Blocks) Sample(rng *rand.Rand) (*Image, int) {
	label := rng.Intn(b.NumLabels())
	beta := b.BetaMin + rng.Float64()*(1-b.BetaMin)
	img, err := b.GenerateImage(beta, label)
	if err != nil {
		// The label is always in range.
		panic(err)
	}
	for i := range img.Data {
		img.Data[i] += rng.NormFloat64() * b.NoiseLevel
	}
	return img, label
}

// A LabeledBatch is a batch of images with their true
// labels.
type LabeledBatch struct {
	Images Batch
	Labels []int
}

// A Loader serves a fixed set of samples in batches.
type Loader struct {
	BatchSize int

	images Batch
	labels []int
}

// NewLoader generates numExamples samples up front,
// drawing from rng.
func NewLoader(rng *rand.Rand, b *Blocks, numExamples, batchSize int) (*Loader, error) {
	if numExamples <= 0 {
		return nil, errors.Errorf("new loader: need at least one example (got %d)", numExamples)
	}
	if batchSize <= 0 {
		return nil, errors.Errorf("new loader: batch size must be positive (got %d)", batchSize)
	}
	res := &Loader{BatchSize: batchSize}
	for i := 0; i < numExamples; i++ {
		img, label := b.Sample(rng)
		res.images = append(res.images, img)
		res.labels = append(res.labels, label)
	}
	return res, nil
}

// Len gets the total number of samples.
func (l *Loader) Len() int {
	return len(l.images)
}

// Batches splits the samples into batches, in order.
// The last batch may be smaller than BatchSize.
func (l *Loader) Batches() []*LabeledBatch {
	var res []*LabeledBatch
	for i := 0; i < len(l.images); i += l.BatchSize {
		end := i + l.BatchSize
		if end > len(l.images) {
			end = len(l.images)
		}
		res = append(res, &LabeledBatch{
			Images: l.images[i:end],
			Labels: l.labels[i:end],
		})
	}
	return res
}
