package inpaintblocks

import (
	"image"
	"image/color"
	"math"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
	"golang.org/x/image/draw"
)

// GridPadding is the number of pixels between the tiles
// of a grid image.
const GridPadding = 2

// GridImage arranges a batch of images into a grid with
// nrow images per row.
//
// Intensities in [lo, hi] are mapped to the full gray
// scale, and padding is drawn with intensity pad.
// Images smaller than the largest image in the batch are
// scaled up with nearest-neighbor interpolation.
func GridImage(batch Batch, nrow int, pad, lo, hi float64) (image.Image, error) {
	if len(batch) == 0 {
		return nil, errors.New("grid image: empty batch")
	}
	if hi <= lo {
		return nil, errors.Errorf("grid image: bad range [%f, %f]", lo, hi)
	}
	if nrow <= 0 {
		nrow = 1
	}
	if nrow > len(batch) {
		nrow = len(batch)
	}
	var tileRows, tileCols int
	for _, img := range batch {
		if img.Rows > tileRows {
			tileRows = img.Rows
		}
		if img.Cols > tileCols {
			tileCols = img.Cols
		}
	}
	gridCols := nrow
	gridRows := (len(batch) + nrow - 1) / nrow

	width := gridCols*(tileCols+GridPadding) + GridPadding
	height := gridRows*(tileRows+GridPadding) + GridPadding
	res := imaging.New(width, height, grayColor(pad, lo, hi))
	for i, img := range batch {
		tile := grayImage(img, lo, hi)
		if img.Rows != tileRows || img.Cols != tileCols {
			scaled := image.NewGray(image.Rect(0, 0, tileCols, tileRows))
			draw.NearestNeighbor.Scale(scaled, scaled.Bounds(), tile, tile.Bounds(), draw.Src, nil)
			tile = scaled
		}
		pos := image.Pt(
			GridPadding+(i%gridCols)*(tileCols+GridPadding),
			GridPadding+(i/gridCols)*(tileRows+GridPadding),
		)
		res = imaging.Paste(res, tile, pos)
	}
	return res, nil
}

// SaveGrid saves GridImage(batch, ...) to a file, creating
// the parent directory if necessary.
// The format is inferred from the extension.
func SaveGrid(path string, batch Batch, nrow int, pad, lo, hi float64) error {
	img, err := GridImage(batch, nrow, pad, lo, hi)
	if err != nil {
		return errors.Wrap(err, "save grid")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrap(err, "save grid")
	}
	if err := imaging.Save(img, path); err != nil {
		return errors.Wrap(err, "save grid")
	}
	return nil
}

// GridRowSize picks the number of images per grid row for
// a batch, namely floor(sqrt(n)).
func GridRowSize(n int) int {
	res := int(math.Sqrt(float64(n)))
	if res < 1 {
		return 1
	}
	return res
}

func grayImage(img *Image, lo, hi float64) *image.Gray {
	res := image.NewGray(image.Rect(0, 0, img.Cols, img.Rows))
	for row := 0; row < img.Rows; row++ {
		for col := 0; col < img.Cols; col++ {
			res.SetGray(col, row, grayColor(img.At(row, col), lo, hi))
		}
	}
	return res
}

func grayColor(x, lo, hi float64) color.Gray {
	scaled := (x - lo) / (hi - lo)
	scaled = math.Max(0, math.Min(1, scaled))
	return color.Gray{Y: uint8(scaled*0xff + 0.5)}
}
