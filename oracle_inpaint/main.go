package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"path/filepath"

	"github.com/unixpickle/essentials"
	"github.com/unixpickle/inpaintblocks"
)

func main() {
	var p float64
	var mode string
	var numExamples int
	var batchSize int
	var seed int64
	var plot bool
	var genModel string
	var maskName string
	var outDir string
	flag.Float64Var(&p, "p", 0.1, "Bernoulli probability for random masks")
	flag.StringVar(&mode, "mode", "median", "oracle filter mode (median or avg)")
	flag.IntVar(&numExamples, "num-examples", 16, "number of examples to generate")
	flag.IntVar(&batchSize, "batch-size", 4, "batch size")
	flag.Int64Var(&seed, "seed", 1, "random seed")
	flag.BoolVar(&plot, "plot", false, "save images of the first batch and stop")
	flag.StringVar(&genModel, "gen-model", "oracle", "inpainter (oracle, mean, or local-mean)")
	flag.StringVar(&maskName, "mask", "halfblock", "mask type (halfblock or random)")
	flag.StringVar(&outDir, "out", "./plots/OracleInpainter", "directory for plots")
	flag.Parse()

	maskKind, err := inpaintblocks.ParseMaskKind(maskName)
	essentials.Must(err)

	geometry := inpaintblocks.DefaultGeometry
	filterMode, err := inpaintblocks.ParseFilterMode(mode)
	essentials.Must(err)
	filter, err := inpaintblocks.NewGeometryFilter(filterMode, geometry)
	essentials.Must(err)
	inpainter, err := inpaintblocks.NewInpainter(genModel, mode, geometry)
	essentials.Must(err)
	oracle, isOracle := inpainter.(*inpaintblocks.OracleInpainter)

	blocks, err := inpaintblocks.NewBlocks(geometry)
	essentials.Must(err)
	rng := rand.New(rand.NewSource(seed))
	loader, err := inpaintblocks.NewLoader(rng, blocks, numExamples, batchSize)
	essentials.Must(err)
	var accuracy inpaintblocks.Running

	for i, batch := range loader.Batches() {
		n := len(batch.Images)
		masks, err := maskKind.MaskBatch(rng, geometry, batch.Labels, p)
		essentials.Must(err)

		var probMaps inpaintblocks.Batch
		if isOracle {
			probMaps, err = oracle.LabelProbMaps(rng, batch.Images, masks)
			essentials.Must(err)
		}
		imputed, err := inpainter.Impute(rng, batch.Images, masks)
		essentials.Must(err)

		acc, err := inpaintblocks.FilterAccuracy(rng, filter, blocks.NoiseLevel, batch.Images,
			masks, batch.Labels)
		essentials.Must(err)
		accuracy.Add(acc)
		fmt.Println(i, "acc", acc)

		if plot {
			masked, err := inpaintblocks.Composite(batch.Images, masks, zeros(batch.Images))
			essentials.Must(err)
			nrow := inpaintblocks.GridRowSize(n)
			save := func(suffix string, b inpaintblocks.Batch) {
				path := filepath.Join(outDir, fmt.Sprintf("masked-blocks-%d%s.png", i, suffix))
				essentials.Must(inpaintblocks.SaveGrid(path, b, nrow, 1, 0, 1))
			}
			save("-masks", masks)
			save("", masked)
			save("-x", batch.Images)
			if isOracle {
				save("-probs", probMaps)
			}
			save("-impute", imputed)
			log.Printf("saved plots for batch %d to %s", i, outDir)
			break
		}
	}

	mean, std := accuracy.Summary()
	log.Printf("batches=%d mean_acc=%f std_acc=%f", accuracy.Len(), mean, std)
	fmt.Println("done")
}

func zeros(images inpaintblocks.Batch) inpaintblocks.Batch {
	res := make(inpaintblocks.Batch, len(images))
	for i, img := range images {
		res[i] = inpaintblocks.NewImage(img.Rows, img.Cols)
	}
	return res
}
