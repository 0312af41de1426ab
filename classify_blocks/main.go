package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"

	"github.com/unixpickle/essentials"
	"github.com/unixpickle/inpaintblocks"
	"github.com/unixpickle/mnist"
)

const (
	MNISTSize   = 28
	MNISTLabels = 10
)

var MLPHiddenSizes = []int{400, 200, 50}

func main() {
	var numSamples int
	var batchSize int
	var seed int64
	var numEpochs int
	var stepSize float64
	var useMLP bool
	var dataName string
	var savePath string
	flag.IntVar(&numSamples, "samples", 6000, "number of training samples")
	flag.IntVar(&batchSize, "batch", 64, "batch size")
	flag.Int64Var(&seed, "seed", 0, "random seed")
	flag.IntVar(&numEpochs, "epochs", 10, "number of epochs")
	flag.Float64Var(&stepSize, "step", inpaintblocks.DefaultStepSize, "Adam step size")
	flag.BoolVar(&useMLP, "mlp", false, "use a feed-forward network instead of logistic regression")
	flag.StringVar(&dataName, "data", "blocks", "training data (blocks or mnist)")
	flag.StringVar(&savePath, "save", "", "optional path to save the classifier (.json or .json.zst)")
	flag.Parse()

	rng := rand.New(rand.NewSource(seed))

	var batches []*inpaintblocks.LabeledBatch
	var numInputs, numLabels int
	switch dataName {
	case "blocks":
		blocks, err := inpaintblocks.NewBlocks(inpaintblocks.DefaultGeometry)
		essentials.Must(err)
		loader, err := inpaintblocks.NewLoader(rng, blocks, numSamples, batchSize)
		essentials.Must(err)
		batches = loader.Batches()
		numInputs = blocks.Geometry.Rows * blocks.Geometry.Cols
		numLabels = blocks.NumLabels()
	case "mnist":
		batches = mnistBatches(rng, numSamples, batchSize)
		numInputs = MNISTSize * MNISTSize
		numLabels = MNISTLabels
	default:
		essentials.Die("unsupported data:", dataName)
	}

	var classifier *inpaintblocks.Classifier
	if useMLP {
		classifier = inpaintblocks.NewMLPClassifier(rng, numInputs, numLabels, MLPHiddenSizes...)
	} else {
		classifier = inpaintblocks.NewLinearClassifier(rng, numInputs, numLabels)
	}
	classifier.StepSize = stepSize

	var losses, accuracies inpaintblocks.Running
	for e := 0; e < numEpochs; e++ {
		losses.Reset()
		accuracies.Reset()
		for i, batch := range batches {
			loss, acc, err := classifier.TrainBatch(batch.Images, batch.Labels)
			essentials.Must(err)
			losses.Add(loss)
			accuracies.Add(acc)
			fmt.Println(e, i, loss, acc)
		}
		meanLoss, stdLoss := losses.Summary()
		meanAcc, stdAcc := accuracies.Summary()
		log.Printf("epoch %d: loss=%f (std %f) acc=%f (std %f)", e, meanLoss, stdLoss,
			meanAcc, stdAcc)
	}

	if savePath != "" {
		essentials.Must(classifier.Save(savePath))
		log.Printf("saved classifier to %s", savePath)
	}
}

func mnistBatches(rng *rand.Rand, numSamples, batchSize int) []*inpaintblocks.LabeledBatch {
	dataset := mnist.LoadTrainingDataSet()
	numSamples = essentials.MinInt(numSamples, len(dataset.Samples))
	var res []*inpaintblocks.LabeledBatch
	var current *inpaintblocks.LabeledBatch
	for _, idx := range rng.Perm(len(dataset.Samples))[:numSamples] {
		if current == nil || len(current.Images) == batchSize {
			current = &inpaintblocks.LabeledBatch{}
			res = append(res, current)
		}
		sample := dataset.Samples[idx]
		current.Images = append(current.Images, &inpaintblocks.Image{
			Rows: MNISTSize,
			Cols: MNISTSize,
			Data: append([]float64{}, sample.Intensities...),
		})
		current.Labels = append(current.Labels, sample.Label)
	}
	return res
}
