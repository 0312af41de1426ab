package inpaintblocks

import (
	"math/rand"
	"strings"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/stat"
)

// DefaultLocalRadius is the neighborhood radius used by
// LocalMeanInpainter when none is given.
const DefaultLocalRadius = 1

// An Inpainter fills in the occluded pixels (mask value
// 1) of a batch of images.
type Inpainter interface {
	Impute(rng *rand.Rand, images, masks Batch) (Batch, error)
}

// NewInpainter creates an Inpainter by name.
//
// Supported names are "oracle", "mean", and "local-mean"
// (or OracleInpainter, MeanInpainter, and
// LocalMeanInpainter).
// The mode is only used by the oracle.
func NewInpainter(name, mode string, g Geometry) (Inpainter, error) {
	switch strings.ToLower(name) {
	case "oracle", "oracleinpainter":
		oracle, err := NewOracleInpainter(mode, g)
		if err != nil {
			return nil, err
		}
		return oracle, nil
	case "mean", "meaninpainter":
		return MeanInpainter{}, nil
	case "local-mean", "localmean", "localmeaninpainter":
		return &LocalMeanInpainter{Radius: DefaultLocalRadius}, nil
	default:
		return nil, errors.Wrapf(ErrInvalidSelector, "new inpainter %q", name)
	}
}

// MeanInpainter fills occluded pixels with the mean of
// the visible pixels in the same image.
type MeanInpainter struct{}

// Impute fills in the occluded pixels.
func (m MeanInpainter) Impute(rng *rand.Rand, images, masks Batch) (Batch, error) {
	if err := checkShapes(images, masks); err != nil {
		return nil, errors.Wrap(err, "mean inpainter")
	}
	fill := make(Batch, len(images))
	for i, img := range images {
		mean := visibleMean(img, masks[i])
		fill[i] = NewImage(img.Rows, img.Cols)
		for j := range fill[i].Data {
			fill[i].Data[j] = mean
		}
	}
	return Composite(images, masks, fill)
}

// LocalMeanInpainter fills every occluded pixel with the
// mean of the visible pixels within Radius pixels of it
// (in both directions).
//
// Pixels with no visible neighbors get the mean of the
// entire image's visible pixels.
type LocalMeanInpainter struct {
	Radius int
}

// Impute fills in the occluded pixels.
func (l *LocalMeanInpainter) Impute(rng *rand.Rand, images, masks Batch) (Batch, error) {
	if err := checkShapes(images, masks); err != nil {
		return nil, errors.Wrap(err, "local mean inpainter")
	}
	fill := make(Batch, len(images))
	for i, img := range images {
		mask := masks[i]
		globalMean := visibleMean(img, mask)
		out := NewImage(img.Rows, img.Cols)
		for row := 0; row < img.Rows; row++ {
			for col := 0; col < img.Cols; col++ {
				if mask.At(row, col) == 0 {
					continue
				}
				var sum float64
				var count int
				for y := row - l.Radius; y <= row+l.Radius; y++ {
					for x := col - l.Radius; x <= col+l.Radius; x++ {
						if y < 0 || x < 0 || y >= img.Rows || x >= img.Cols {
							continue
						}
						if mask.At(y, x) == 0 {
							sum += img.At(y, x)
							count++
						}
					}
				}
				if count == 0 {
					out.Set(row, col, globalMean)
				} else {
					out.Set(row, col, sum/float64(count))
				}
			}
		}
		fill[i] = out
	}
	return Composite(images, masks, fill)
}

// visibleMean averages the pixels where the mask is 0,
// or returns 0 if none are visible.
func visibleMean(img, mask *Image) float64 {
	var visible []float64
	for i, x := range img.Data {
		if mask.Data[i] == 0 {
			visible = append(visible, x)
		}
	}
	if len(visible) == 0 {
		return 0
	}
	return stat.Mean(visible, nil)
}
