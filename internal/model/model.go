// Package model assembles the digit classifier pipeline and runs predictions on raw pixels.
package model

import (
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/born-ml/pixelnet/internal/config"
	"github.com/born-ml/pixelnet/internal/nn"
	"github.com/born-ml/pixelnet/internal/tensor"
)

// Build assembles [Rescale, Flatten, Dense(hidden), Dense(classes)] for
// images of cfg.Rows x cfg.Cols.
//
// Weights are drawn from rng. The returned pipeline has already passed
// shape validation.
func Build[B tensor.Backend](cfg config.Model, backend B, rng *rand.Rand) (*nn.Sequential[B], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	rescale, err := nn.NewRescale[B](float32(cfg.Scale))
	if err != nil {
		return nil, err
	}

	features := cfg.Rows * cfg.Cols
	hidden, err := nn.NewDense(features, cfg.HiddenUnits, cfg.HiddenActivation, backend, rng)
	if err != nil {
		return nil, fmt.Errorf("hidden layer: %w", err)
	}
	output, err := nn.NewDense(cfg.HiddenUnits, cfg.Classes, cfg.OutputActivation, backend, rng)
	if err != nil {
		return nil, fmt.Errorf("output layer: %w", err)
	}

	pipeline, err := nn.NewSequential[B](tensor.Shape{cfg.Rows, cfg.Cols},
		rescale,
		nn.NewFlatten[B](),
		hidden,
		output,
	)
	if err != nil {
		return nil, err
	}

	slog.Debug("model assembled",
		"input", pipeline.InputShape().String(),
		"output", pipeline.FinalShape().String(),
		"params", nn.CountParameters(pipeline.Parameters()),
		"backend", backend.Name())

	return pipeline, nil
}

// Prediction holds per-example scores and the index of the best score.
type Prediction struct {
	Scores  [][]float32
	Classes []int
}

// Predict converts a batch of 8-bit images to float32 and runs it through
// pipeline. pixels may be [batch, rows, cols] or a single [rows, cols] image.
func Predict[B tensor.Backend](pipeline *nn.Sequential[B], pixels *tensor.Tensor[uint8, B]) (*Prediction, error) {
	scores, err := pipeline.Apply(tensor.Cast[uint8, float32](pixels))
	if err != nil {
		return nil, err
	}

	shape := scores.Shape()
	if len(shape) != 2 {
		return nil, fmt.Errorf("predict: expected [batch, classes] scores, got %v", shape)
	}
	batch, classes := shape[0], shape[1]

	data := scores.Data()
	best := scores.Argmax(1).Data()

	pred := &Prediction{
		Scores:  make([][]float32, batch),
		Classes: make([]int, batch),
	}
	for i := 0; i < batch; i++ {
		row := make([]float32, classes)
		copy(row, data[i*classes:(i+1)*classes])
		pred.Scores[i] = row
		pred.Classes[i] = int(best[i])
	}
	return pred, nil
}
