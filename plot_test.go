package inpaintblocks

import (
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestGridImage(t *testing.T) {
	batch := Batch{NewImage(28, 28), NewImage(28, 28), NewImage(28, 28)}
	batch[0].Set(0, 0, 1)
	img, err := GridImage(batch, 2, 1, 0, 1)
	if err != nil {
		t.Fatal(err)
	}
	bounds := img.Bounds()
	if bounds.Dx() != 2*30+2 || bounds.Dy() != 2*30+2 {
		t.Fatalf("unexpected size %dx%d", bounds.Dx(), bounds.Dy())
	}
	if gray := color.GrayModel.Convert(img.At(0, 0)).(color.Gray); gray.Y != 0xff {
		t.Errorf("padding should be white, got %d", gray.Y)
	}
	if gray := color.GrayModel.Convert(img.At(2, 2)).(color.Gray); gray.Y != 0xff {
		t.Errorf("first pixel should be white, got %d", gray.Y)
	}
	if gray := color.GrayModel.Convert(img.At(3, 2)).(color.Gray); gray.Y != 0 {
		t.Errorf("second pixel should be black, got %d", gray.Y)
	}
}

func TestGridImageScalesSmallTiles(t *testing.T) {
	probs := &Image{Rows: 2, Cols: 2, Data: []float64{1, 0, 0, 0}}
	batch := Batch{NewImage(8, 8), probs}
	img, err := GridImage(batch, 2, 0, 0, 1)
	if err != nil {
		t.Fatal(err)
	}
	// The second tile starts at x=2+8+2 and its top-left
	// quarter should be white.
	for y := 2; y < 6; y++ {
		for x := 12; x < 16; x++ {
			if gray := color.GrayModel.Convert(img.At(x, y)).(color.Gray); gray.Y != 0xff {
				t.Fatalf("pixel (%d, %d) should be white, got %d", x, y, gray.Y)
			}
		}
	}
	if gray := color.GrayModel.Convert(img.At(17, 7)).(color.Gray); gray.Y != 0 {
		t.Errorf("bottom-right quarter should be black, got %d", gray.Y)
	}
}

func TestSaveGrid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plots", "grid.png")
	batch := Batch{NewImage(4, 4), NewImage(4, 4)}
	if err := SaveGrid(path, batch, GridRowSize(len(batch)), 1, 0, 1); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Dx() != 6+2 || img.Bounds().Dy() != 2*6+2 {
		t.Errorf("unexpected size %dx%d", img.Bounds().Dx(), img.Bounds().Dy())
	}
	if _, err := GridImage(nil, 1, 1, 0, 1); err == nil {
		t.Error("expected error for empty batch")
	}
}

func TestGridRowSize(t *testing.T) {
	for n, expected := range map[int]int{0: 1, 1: 1, 3: 1, 4: 2, 8: 2, 9: 3, 64: 8} {
		if actual := GridRowSize(n); actual != expected {
			t.Errorf("n=%d: expected %d but got %d", n, expected, actual)
		}
	}
}
