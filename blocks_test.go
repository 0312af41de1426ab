package inpaintblocks

import (
	"math"
	"math/rand"
	"reflect"
	"testing"

	"github.com/pkg/errors"
)

func TestGenerateImage(t *testing.T) {
	blocks, err := NewBlocks(DefaultGeometry)
	if err != nil {
		t.Fatal(err)
	}
	for label := 0; label < blocks.NumLabels(); label++ {
		img, err := blocks.GenerateImage(0.75, label)
		if err != nil {
			t.Fatal(err)
		}
		var sum float64
		for _, x := range img.Data {
			if x != 0 && x != 0.75 {
				t.Fatalf("unexpected pixel value %f", x)
			}
			sum += x
		}
		if math.Abs(sum-0.75*64) > 1e-8 {
			t.Errorf("label %d: expected sum %f but got %f", label, 0.75*64, sum)
		}
		rowStart, _, colStart, _ := DefaultGeometry.LabelPatch(label)
		if img.At(rowStart, colStart) != 0.75 {
			t.Errorf("label %d: patch corner is not set", label)
		}
	}
	if _, err := blocks.GenerateImage(1, blocks.NumLabels()); errors.Cause(err) != ErrInvalidLabel {
		t.Errorf("expected ErrInvalidLabel but got %v", err)
	}
}

func TestBlocksSample(t *testing.T) {
	blocks, err := NewBlocks(DefaultGeometry)
	if err != nil {
		t.Fatal(err)
	}
	blocks.NoiseLevel = 0
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 100; i++ {
		img, label := blocks.Sample(rng)
		if label < 0 || label >= blocks.NumLabels() {
			t.Fatalf("label out of range: %d", label)
		}
		beta := img.Max()
		if beta < blocks.BetaMin || beta > 1 {
			t.Errorf("beta out of range: %f", beta)
		}
		expected, _ := blocks.GenerateImage(beta, label)
		if !reflect.DeepEqual(img.Data, expected.Data) {
			t.Errorf("noiseless sample does not match its block")
		}
	}
}

func TestLoaderBatches(t *testing.T) {
	blocks, err := NewBlocks(DefaultGeometry)
	if err != nil {
		t.Fatal(err)
	}
	loader1, err := NewLoader(rand.New(rand.NewSource(1)), blocks, 10, 4)
	if err != nil {
		t.Fatal(err)
	}
	loader2, err := NewLoader(rand.New(rand.NewSource(1)), blocks, 10, 4)
	if err != nil {
		t.Fatal(err)
	}
	batches := loader1.Batches()
	if len(batches) != 3 {
		t.Fatalf("expected 3 batches but got %d", len(batches))
	}
	for i, size := range []int{4, 4, 2} {
		if len(batches[i].Images) != size || len(batches[i].Labels) != size {
			t.Errorf("batch %d: expected size %d", i, size)
		}
	}
	if !reflect.DeepEqual(batches, loader2.Batches()) {
		t.Error("loaders with the same seed differ")
	}
	if _, err := NewLoader(rand.New(rand.NewSource(1)), blocks, 0, 4); err == nil {
		t.Error("expected error for empty loader")
	}
}

func TestLoaderSharedGenerator(t *testing.T) {
	blocks, err := NewBlocks(DefaultGeometry)
	if err != nil {
		t.Fatal(err)
	}
	rng := rand.New(rand.NewSource(1))
	loader, err := NewLoader(rng, blocks, 10, 10)
	if err != nil {
		t.Fatal(err)
	}
	next := rng.Int63()

	fresh := rand.New(rand.NewSource(1))
	if fresh.Int63() == next {
		t.Error("generator was not advanced by the loader")
	}
	replay, err := NewLoader(rand.New(rand.NewSource(1)), blocks, 10, 10)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(loader.Batches(), replay.Batches()) {
		t.Error("loaders with the same seed differ")
	}
}
