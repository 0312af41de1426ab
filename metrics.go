package inpaintblocks

import (
	"math/rand"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/stat"
)

// FilterAccuracy measures how often the block label can
// be read straight off the filter response of the visible
// pixels.
//
// Occluded pixels are zeroed, every pixel gets noise with
// standard deviation noiseLevel, and the predicted label
// is the argmax of the cropped response.
func FilterAccuracy(rng *rand.Rand, filter Filter, noiseLevel float64, images, masks Batch,
	labels []int) (float64, error) {
	if err := checkShapes(images, masks); err != nil {
		return 0, errors.Wrap(err, "filter accuracy")
	}
	if len(labels) != len(images) {
		return 0, errors.Wrapf(ErrShapeMismatch, "filter accuracy: %d labels for %d images",
			len(labels), len(images))
	}
	if len(images) == 0 {
		return 0, nil
	}
	var correct int
	for i, img := range images {
		noisy := NewImage(img.Rows, img.Cols)
		for j, x := range img.Data {
			noisy.Data[j] = x*(1-masks[i].Data[j]) + noiseLevel*rng.NormFloat64()
		}
		response := CropBorder(filter.Apply(noisy), 1)
		probs := Softmax(response.Data, len(response.Data))
		if ArgMax(probs) == labels[i] {
			correct++
		}
	}
	return float64(correct) / float64(len(images)), nil
}

// Running accumulates per-batch measurements.
type Running struct {
	values []float64
}

// Add records a measurement.
func (r *Running) Add(x float64) {
	r.values = append(r.values, x)
}

// Len gets the number of measurements.
func (r *Running) Len() int {
	return len(r.values)
}

// Summary computes the mean and standard deviation of the
// measurements so far.
// With fewer than two values, the deviation is 0.
func (r *Running) Summary() (mean, std float64) {
	switch len(r.values) {
	case 0:
		return 0, 0
	case 1:
		return r.values[0], 0
	}
	return stat.MeanStdDev(r.values, nil)
}

// Reset discards all measurements.
func (r *Running) Reset() {
	r.values = r.values[:0]
}
