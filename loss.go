package inpaintblocks

import (
	"github.com/unixpickle/anydiff"
	"github.com/unixpickle/anyvec"
	"github.com/unixpickle/anyvec/anyvec64"
)

// SoftmaxLoss computes the cross-entropy loss given
// output logits and a target label.
func SoftmaxLoss(outputs []float64, label int) float64 {
	logProbs := anyvec64.MakeVectorData(append([]float64{}, outputs...))
	anyvec.LogSoftmax(logProbs, len(outputs))
	return -logProbs.Data().([]float64)[label]
}

// crossEntropy computes the mean cross-entropy loss of a
// batch of logits, where every chunk of numLabels logits
// corresponds to one label.
func crossEntropy(logits anydiff.Res, labels []int, numLabels int) anydiff.Res {
	targets := make([]float64, len(labels)*numLabels)
	for i, label := range labels {
		targets[i*numLabels+label] = 1
	}
	logProbs := anydiff.LogSoftmax(logits, numLabels)
	loss := anydiff.Dot(logProbs, anydiff.NewConst(anyvec64.MakeVectorData(targets)))
	return anydiff.Scale(loss, -1/float64(len(labels)))
}
