package inpaintblocks

import (
	"bytes"
	"encoding/json"
	"io/ioutil"
	"math"
	"math/rand"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"
	"github.com/unixpickle/anydiff"
	"github.com/unixpickle/anynet"
	"github.com/unixpickle/anynet/anysgd"
	"github.com/unixpickle/anyvec/anyvec64"
)

// DefaultStepSize is the Adam step size used by new
// classifiers.
const DefaultStepSize = 0.01

// A Classifier predicts block labels from flattened
// images.
// It is trained with Adam on the cross-entropy loss.
type Classifier struct {
	Net       anynet.Net
	NumInputs int
	NumLabels int
	StepSize  float64

	adam *anysgd.Adam
}

// NewLinearClassifier creates a logistic regression
// model.
func NewLinearClassifier(rng *rand.Rand, numInputs, numLabels int) *Classifier {
	return NewMLPClassifier(rng, numInputs, numLabels)
}

// NewMLPClassifier creates a feed-forward network with
// ReLU hidden layers of the given sizes.
// With no hidden layers, this is a linear model.
func NewMLPClassifier(rng *rand.Rand, numInputs, numLabels int, hidden ...int) *Classifier {
	creator := anyvec64.DefaultCreator{}
	var net anynet.Net
	inCount := numInputs
	for _, outCount := range append(append([]int{}, hidden...), numLabels) {
		layer := anynet.NewFC(creator, inCount, outCount)
		initFC(rng, layer)
		if len(net) > 0 {
			net = append(net, anynet.ReLU)
		}
		net = append(net, layer)
		inCount = outCount
	}
	return &Classifier{
		Net:       net,
		NumInputs: numInputs,
		NumLabels: numLabels,
		StepSize:  DefaultStepSize,
	}
}

// TrainBatch takes one Adam step on a batch of images.
//
// The returned loss and accuracy are measured before the
// step is taken.
func (c *Classifier) TrainBatch(images Batch, labels []int) (loss, accuracy float64, err error) {
	if len(images) != len(labels) {
		return 0, 0, errors.Wrapf(ErrShapeMismatch, "train batch: %d images but %d labels",
			len(images), len(labels))
	}
	for _, label := range labels {
		if label < 0 || label >= c.NumLabels {
			return 0, 0, errors.Wrapf(ErrInvalidLabel, "train batch: label %d", label)
		}
	}
	logits, err := c.apply(images)
	if err != nil {
		return 0, 0, errors.Wrap(err, "train batch")
	}
	accuracy = labelAccuracy(logits.Output().Data().([]float64), labels, c.NumLabels)

	lossRes := crossEntropy(logits, labels, c.NumLabels)
	loss = lossRes.Output().Data().([]float64)[0]

	grad := anydiff.NewGrad(c.Net.Parameters()...)
	lossRes.Propagate(anyvec64.MakeVectorData([]float64{1}), grad)
	if c.adam == nil {
		c.adam = &anysgd.Adam{DecayRate1: 0.9, DecayRate2: 0.999, Damping: 1e-8}
	}
	for variable, step := range c.adam.Transform(grad) {
		step.Scale(-c.StepSize)
		variable.Vector.Add(step)
	}
	return loss, accuracy, nil
}

// Predict computes the most likely label for each image.
func (c *Classifier) Predict(images Batch) ([]int, error) {
	logits, err := c.apply(images)
	if err != nil {
		return nil, errors.Wrap(err, "predict")
	}
	data := logits.Output().Data().([]float64)
	res := make([]int, len(images))
	for i := range res {
		res[i] = ArgMax(data[i*c.NumLabels : (i+1)*c.NumLabels])
	}
	return res, nil
}

func (c *Classifier) apply(images Batch) (anydiff.Res, error) {
	if len(images) == 0 {
		return nil, errors.Wrap(ErrShapeMismatch, "empty batch")
	}
	inputs := make([]float64, 0, len(images)*c.NumInputs)
	for i, img := range images {
		if len(img.Data) != c.NumInputs {
			return nil, errors.Wrapf(ErrShapeMismatch, "image %d has %d pixels, expected %d",
				i, len(img.Data), c.NumInputs)
		}
		inputs = append(inputs, img.Data...)
	}
	return c.Net.Apply(anydiff.NewConst(anyvec64.MakeVectorData(inputs)), len(images)), nil
}

type classifierState struct {
	NumInputs  int
	NumLabels  int
	Parameters [][]float64
}

// Save saves the parameters to a JSON file.
// If the path ends in ".zst", the file is compressed with
// zstd.
//
// The optimizer state is not saved.
func (c *Classifier) Save(path string) error {
	state := &classifierState{NumInputs: c.NumInputs, NumLabels: c.NumLabels}
	for _, p := range c.Net.Parameters() {
		state.Parameters = append(state.Parameters, p.Vector.Data().([]float64))
	}
	data, err := json.Marshal(state)
	if err != nil {
		return errors.Wrap(err, "save classifier")
	}
	if strings.HasSuffix(path, ".zst") {
		data, err = compress(data)
		if err != nil {
			return errors.Wrap(err, "save classifier")
		}
	}
	if err := ioutil.WriteFile(path, data, 0644); err != nil {
		return errors.Wrap(err, "save classifier")
	}
	return nil
}

// Load loads parameters saved by Save into an identically
// shaped classifier.
// Does not fail with an error if the file does not exist.
func (c *Classifier) Load(path string) error {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrap(err, "load classifier")
	}
	if strings.HasSuffix(path, ".zst") {
		data, err = decompress(data)
		if err != nil {
			return errors.Wrap(err, "load classifier")
		}
	}
	var state classifierState
	if err := json.Unmarshal(data, &state); err != nil {
		return errors.Wrap(err, "load classifier")
	}
	params := c.Net.Parameters()
	if state.NumInputs != c.NumInputs || state.NumLabels != c.NumLabels ||
		len(state.Parameters) != len(params) {
		return errors.Wrap(ErrShapeMismatch, "load classifier")
	}
	for i, p := range params {
		if len(state.Parameters[i]) != p.Vector.Len() {
			return errors.Wrapf(ErrShapeMismatch, "load classifier: parameter %d", i)
		}
		p.Vector.Set(anyvec64.MakeVectorData(state.Parameters[i]))
	}
	c.adam = nil
	return nil
}

// initFC initializes a fully-connected layer with scaled
// Gaussian weights and zero biases.
func initFC(rng *rand.Rand, layer *anynet.FC) {
	weights := make([]float64, layer.Weights.Vector.Len())
	scale := 1 / math.Sqrt(float64(layer.InCount))
	for i := range weights {
		weights[i] = rng.NormFloat64() * scale
	}
	layer.Weights.Vector.Set(anyvec64.MakeVectorData(weights))
	layer.Biases.Vector.Set(anyvec64.MakeVectorData(make([]float64, layer.Biases.Vector.Len())))
}

func labelAccuracy(logits []float64, labels []int, numLabels int) float64 {
	var correct int
	for i, label := range labels {
		if ArgMax(logits[i*numLabels:(i+1)*numLabels]) == label {
			correct++
		}
	}
	return float64(correct) / float64(len(labels))
}

func compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	enc, err := zstd.NewWriter(&buf,
		zstd.WithEncoderConcurrency(1),
		zstd.WithEncoderLevel(zstd.SpeedBetterCompression),
	)
	if err != nil {
		return nil, err
	}
	if _, err := enc.Write(data); err != nil {
		enc.Close()
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decompress(data []byte) ([]byte, error) {
	dec, err := zstd.NewReader(bytes.NewReader(data), zstd.WithDecoderConcurrency(1))
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	return ioutil.ReadAll(dec)
}
