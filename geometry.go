package inpaintblocks

import "github.com/pkg/errors"

// DefaultGeometry is the layout of the standard 28x28
// mixture of blocks dataset.
// It has a 4x4 grid of labels.
var DefaultGeometry = Geometry{Rows: 28, Cols: 28, BlockWidth: 8, Offset: 4}

// Geometry describes where the blocks of a mixture of
// blocks dataset live inside an image.
//
// Blocks are BlockWidth pixels on a side and are laid
// out on a grid with a stride of half a block, starting
// Offset pixels from the top-left corner.
// A label identifies one cell of this grid, in row-major
// order.
type Geometry struct {
	Rows       int
	Cols       int
	BlockWidth int
	Offset     int
}

// Validate checks that the geometry is usable.
//
// Besides basic sanity checks, this makes sure that a
// stride-Stride filter over the image, with one window
// cropped from each border, lines up exactly with the
// label grid.
func (g Geometry) Validate() error {
	if g.Rows <= 0 || g.Cols <= 0 {
		return errors.Wrapf(ErrInvalidGeometry, "image size %dx%d", g.Rows, g.Cols)
	}
	if g.BlockWidth < 2 || g.BlockWidth%2 != 0 {
		return errors.Wrapf(ErrInvalidGeometry, "block width %d must be even", g.BlockWidth)
	}
	if g.Offset < 0 {
		return errors.Wrapf(ErrInvalidGeometry, "negative offset %d", g.Offset)
	}
	if g.Offset != g.Stride() {
		return errors.Wrapf(ErrInvalidGeometry, "offset %d must equal stride %d",
			g.Offset, g.Stride())
	}
	if g.GridRows() <= 0 || g.GridCols() <= 0 {
		return errors.Wrap(ErrInvalidGeometry, "no room for any blocks")
	}
	if g.ResponseRows()-2 != g.GridRows() || g.ResponseCols()-2 != g.GridCols() {
		return errors.Wrapf(ErrInvalidGeometry,
			"cropped filter response %dx%d does not match label grid %dx%d",
			g.ResponseRows()-2, g.ResponseCols()-2, g.GridRows(), g.GridCols())
	}
	return nil
}

// Stride is the distance between neighboring blocks.
func (g Geometry) Stride() int {
	return g.BlockWidth / 2
}

// GridRows is the number of rows in the label grid.
func (g Geometry) GridRows() int {
	return gridSize(g.Rows, g.Offset, g.BlockWidth, g.Stride())
}

// GridCols is the number of columns in the label grid.
func (g Geometry) GridCols() int {
	return gridSize(g.Cols, g.Offset, g.BlockWidth, g.Stride())
}

// NumLabels is the number of distinct block labels.
func (g Geometry) NumLabels() int {
	return g.GridRows() * g.GridCols()
}

// ResponseRows is the number of rows produced by a
// windowed filter before cropping.
func (g Geometry) ResponseRows() int {
	return gridSize(g.Rows, 0, g.BlockWidth, g.Stride())
}

// ResponseCols is like ResponseRows, but for columns.
func (g Geometry) ResponseCols() int {
	return gridSize(g.Cols, 0, g.BlockWidth, g.Stride())
}

// LabelPatch computes the pixel rectangle covered by a
// label's block.
// Ends are exclusive.
func (g Geometry) LabelPatch(label int) (rowStart, rowEnd, colStart, colEnd int) {
	row := label / g.GridCols()
	col := label % g.GridCols()
	rowStart = g.Offset + row*g.Stride()
	colStart = g.Offset + col*g.Stride()
	return rowStart, rowStart + g.BlockWidth, colStart, colStart + g.BlockWidth
}

func (g Geometry) checkLabel(label int) error {
	if label < 0 || label >= g.NumLabels() {
		return errors.Wrapf(ErrInvalidLabel, "label %d (have %d labels)", label, g.NumLabels())
	}
	return nil
}

func gridSize(size, offset, width, stride int) int {
	inner := size - 2*offset - width
	if inner < 0 || stride <= 0 {
		return 0
	}
	return inner/stride + 1
}
