package inpaintblocks

import (
	"sort"
	"strings"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/stat"
)

// A FilterMode selects the statistic computed by a
// windowed Filter.
type FilterMode int

const (
	// Median takes the lower median of each window.
	Median FilterMode = iota

	// Average takes the mean of each window.
	Average
)

// ParseFilterMode parses "median", "avg" or "average",
// ignoring case.
func ParseFilterMode(name string) (FilterMode, error) {
	switch strings.ToLower(name) {
	case "median":
		return Median, nil
	case "avg", "average":
		return Average, nil
	default:
		return 0, errors.Wrapf(ErrInvalidMode, "parse filter mode %q", name)
	}
}

// String returns the canonical name of the mode.
func (f FilterMode) String() string {
	switch f {
	case Median:
		return "median"
	case Average:
		return "average"
	default:
		return "unknown"
	}
}

// A Filter computes a local statistic over windows of an
// image, like a pooling layer without padding.
type Filter interface {
	Apply(img *Image) *Image
}

// NewFilter creates a Filter for the mode with square
// windows of size kernel, spaced stride pixels apart.
func NewFilter(mode FilterMode, kernel, stride int) (Filter, error) {
	if kernel <= 0 || stride <= 0 {
		return nil, errors.Errorf("new filter: bad kernel %d or stride %d", kernel, stride)
	}
	var statistic func(window []float64) float64
	switch mode {
	case Median:
		statistic = lowerMedian
	case Average:
		statistic = func(window []float64) float64 {
			return stat.Mean(window, nil)
		}
	default:
		return nil, errors.Wrapf(ErrInvalidMode, "new filter: mode %d", int(mode))
	}
	return &windowFilter{kernel: kernel, stride: stride, statistic: statistic}, nil
}

// NewGeometryFilter creates a filter whose windows match
// the blocks of g.
func NewGeometryFilter(mode FilterMode, g Geometry) (Filter, error) {
	return NewFilter(mode, g.BlockWidth, g.Stride())
}

type windowFilter struct {
	kernel    int
	stride    int
	statistic func(window []float64) float64
}

func (w *windowFilter) Apply(img *Image) *Image {
	rows := gridSize(img.Rows, 0, w.kernel, w.stride)
	cols := gridSize(img.Cols, 0, w.kernel, w.stride)
	res := NewImage(rows, cols)
	window := make([]float64, 0, w.kernel*w.kernel)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			window = window[:0]
			for y := 0; y < w.kernel; y++ {
				rowStart := (i*w.stride+y)*img.Cols + j*w.stride
				window = append(window, img.Data[rowStart:rowStart+w.kernel]...)
			}
			res.Set(i, j, w.statistic(window))
		}
	}
	return res
}

// lowerMedian finds the median of the window, taking the
// lower of the two middle values for even sizes.
// The window is sorted in place.
func lowerMedian(window []float64) float64 {
	sort.Float64s(window)
	return stat.Quantile(0.5, stat.Empirical, window, nil)
}

// CropBorder removes n pixels from every edge of an
// image.
func CropBorder(img *Image, n int) *Image {
	rows := img.Rows - 2*n
	cols := img.Cols - 2*n
	if rows < 0 {
		rows = 0
	}
	if cols < 0 {
		cols = 0
	}
	res := NewImage(rows, cols)
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			res.Set(row, col, img.At(row+n, col+n))
		}
	}
	return res
}
