package inpaintblocks

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
)

// An Image is a row-major grid of intensities.
type Image struct {
	Rows int
	Cols int
	Data []float64
}

// NewImage creates an all-zero image.
func NewImage(rows, cols int) *Image {
	return &Image{Rows: rows, Cols: cols, Data: make([]float64, rows*cols)}
}

// At gets the intensity at a pixel.
func (i *Image) At(row, col int) float64 {
	return i.Data[row*i.Cols+col]
}

// Set sets the intensity at a pixel.
func (i *Image) Set(row, col int, v float64) {
	i.Data[row*i.Cols+col] = v
}

// Copy creates a deep copy of the image.
func (i *Image) Copy() *Image {
	return &Image{
		Rows: i.Rows,
		Cols: i.Cols,
		Data: append([]float64{}, i.Data...),
	}
}

// SameShape checks if two images have the same size.
func (i *Image) SameShape(other *Image) bool {
	return i.Rows == other.Rows && i.Cols == other.Cols
}

// Max computes the largest intensity in the image.
func (i *Image) Max() float64 {
	return floats.Max(i.Data)
}

// A Batch is an ordered list of images.
//
// Operations in this package never modify a batch they
// receive; results are always freshly allocated.
type Batch []*Image

// Copy creates a deep copy of the batch.
func (b Batch) Copy() Batch {
	res := make(Batch, len(b))
	for i, img := range b {
		res[i] = img.Copy()
	}
	return res
}

// checkShapes makes sure that a batch of masks lines up
// with a batch of images.
func checkShapes(images, masks Batch) error {
	if len(images) != len(masks) {
		return errors.Wrapf(ErrShapeMismatch, "%d images but %d masks",
			len(images), len(masks))
	}
	for i, img := range images {
		if !img.SameShape(masks[i]) || len(img.Data) != len(masks[i].Data) {
			return errors.Wrapf(ErrShapeMismatch, "image %d is %dx%d but mask is %dx%d",
				i, img.Rows, img.Cols, masks[i].Rows, masks[i].Cols)
		}
	}
	return nil
}
