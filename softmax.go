package inpaintblocks

import (
	"math/rand"

	"github.com/unixpickle/anyvec"
	"github.com/unixpickle/anyvec/anyvec64"
	"github.com/unixpickle/essentials"
	"gonum.org/v1/gonum/floats"
)

// Softmax computes a softmax distribution for every
// chunkSize-long chunk of logits.
//
// The result is a new slice.
func Softmax(logits []float64, chunkSize int) []float64 {
	probs := anyvec64.MakeVectorData(append([]float64{}, logits...))
	anyvec.LogSoftmax(probs, chunkSize)
	anyvec.Exp(probs)
	return probs.Data().([]float64)
}

// TopK keeps the k largest probabilities, zeroes the
// rest, and renormalizes the result to sum to 1.
//
// Ties are broken in favor of lower indices, so exactly
// min(k, len(probs)) entries survive.
// If the surviving entries sum to zero, they are made
// uniform.
func TopK(probs []float64, k int) []float64 {
	res := make([]float64, len(probs))
	if k <= 0 || len(probs) == 0 {
		return res
	}
	k = essentials.MinInt(k, len(probs))

	values := append([]float64{}, probs...)
	indices := make([]int, len(probs))
	for i := range indices {
		indices[i] = i
	}
	essentials.VoodooSort(values, func(i, j int) bool {
		if values[i] == values[j] {
			return indices[i] < indices[j]
		}
		return values[i] > values[j]
	}, indices)

	for _, idx := range indices[:k] {
		res[idx] = probs[idx]
	}
	sum := floats.Sum(res)
	if sum == 0 {
		for _, idx := range indices[:k] {
			res[idx] = 1 / float64(k)
		}
		return res
	}
	floats.Scale(1/sum, res)
	return res
}

// SampleIndex samples an index from a discrete
// distribution.
// The probabilities needn't be normalized.
func SampleIndex(rng *rand.Rand, probs []float64) int {
	p := rng.Float64() * floats.Sum(probs)
	lastNonZero := len(probs) - 1
	for i, x := range probs {
		if x <= 0 {
			continue
		}
		lastNonZero = i
		p -= x
		if p < 0 {
			return i
		}
	}
	return lastNonZero
}

// ArgMax finds the index of the largest value, preferring
// the first one in case of ties.
func ArgMax(values []float64) int {
	return floats.MaxIdx(values)
}
