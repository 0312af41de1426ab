package inpaintblocks

import (
	"math"
	"testing"

	"github.com/pkg/errors"
)

func TestParseFilterMode(t *testing.T) {
	valid := map[string]FilterMode{
		"median":  Median,
		"Median":  Median,
		"avg":     Average,
		"AVERAGE": Average,
	}
	for name, expected := range valid {
		actual, err := ParseFilterMode(name)
		if err != nil {
			t.Errorf("%s: %v", name, err)
		} else if actual != expected {
			t.Errorf("%s: expected %s but got %s", name, expected, actual)
		}
	}
	if _, err := ParseFilterMode("unsupported"); errors.Cause(err) != ErrInvalidMode {
		t.Errorf("expected ErrInvalidMode but got %v", err)
	}
}

func TestFilterStatistics(t *testing.T) {
	img := NewImage(8, 8)
	for i := range img.Data {
		// Scramble the order so the median has to sort.
		img.Data[i] = float64((i * 37) % 64)
	}
	for mode, expected := range map[FilterMode]float64{Median: 31, Average: 31.5} {
		filter, err := NewFilter(mode, 8, 4)
		if err != nil {
			t.Fatal(err)
		}
		out := filter.Apply(img)
		if out.Rows != 1 || out.Cols != 1 {
			t.Fatalf("%s: unexpected output shape %dx%d", mode, out.Rows, out.Cols)
		}
		if math.Abs(out.Data[0]-expected) > 1e-8 {
			t.Errorf("%s: expected %f but got %f", mode, expected, out.Data[0])
		}
	}
}

func TestFilterWindows(t *testing.T) {
	// A block image should only light up the window that
	// lines up with the block.
	blocks, err := NewBlocks(DefaultGeometry)
	if err != nil {
		t.Fatal(err)
	}
	img, err := blocks.GenerateImage(1, 5)
	if err != nil {
		t.Fatal(err)
	}
	filter, err := NewGeometryFilter(Median, DefaultGeometry)
	if err != nil {
		t.Fatal(err)
	}
	out := filter.Apply(img)
	if out.Rows != 6 || out.Cols != 6 {
		t.Fatalf("unexpected response shape %dx%d", out.Rows, out.Cols)
	}
	cropped := CropBorder(out, 1)
	for i, x := range cropped.Data {
		expected := 0.0
		if i == 5 {
			expected = 1
		}
		if x != expected {
			t.Errorf("cropped response %d: expected %f but got %f", i, expected, x)
		}
	}
}

func TestCropBorder(t *testing.T) {
	img := NewImage(4, 5)
	for i := range img.Data {
		img.Data[i] = float64(i)
	}
	cropped := CropBorder(img, 1)
	expected := []float64{6, 7, 8, 11, 12, 13}
	if cropped.Rows != 2 || cropped.Cols != 3 {
		t.Fatalf("unexpected shape %dx%d", cropped.Rows, cropped.Cols)
	}
	for i, x := range expected {
		if cropped.Data[i] != x {
			t.Errorf("index %d: expected %f but got %f", i, x, cropped.Data[i])
		}
	}
}

func BenchmarkFilter(b *testing.B) {
	img := NewImage(28, 28)
	for i := range img.Data {
		img.Data[i] = float64(i % 7)
	}
	for _, mode := range []FilterMode{Median, Average} {
		filter, _ := NewGeometryFilter(mode, DefaultGeometry)
		b.Run(mode.String(), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				filter.Apply(img)
			}
		})
	}
}
