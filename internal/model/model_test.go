package model

import (
	"math/rand"
	"testing"

	"github.com/born-ml/pixelnet/internal/backend/cpu"
	"github.com/born-ml/pixelnet/internal/config"
	"github.com/born-ml/pixelnet/internal/nn"
	"github.com/born-ml/pixelnet/internal/tensor"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_Default(t *testing.T) {
	backend := cpu.New()

	pipeline, err := Build(config.Default().Model, backend, rand.New(rand.NewSource(1)))
	require.NoError(t, err)

	var names []string
	for _, row := range pipeline.Summary() {
		names = append(names, row.Name)
	}
	if diff := cmp.Diff([]string{"Rescale", "Flatten", "Dense", "Dense"}, names); diff != "" {
		t.Errorf("stage order mismatch (-want +got):\n%s", diff)
	}
	assert.True(t, pipeline.FinalShape().Equal(tensor.Shape{10}))

	hidden, ok := pipeline.Stage(2).(*nn.Dense[*cpu.CPUBackend])
	require.True(t, ok)
	assert.Equal(t, "relu", hidden.Activation())
	assert.Equal(t, 784, hidden.Linear().InFeatures())
}

func TestBuild_InvalidConfig(t *testing.T) {
	backend := cpu.New()

	cfg := config.Default().Model
	cfg.Scale = 0
	_, err := Build(cfg, backend, nil)
	assert.ErrorIs(t, err, config.ErrInvalidConfig)

	cfg = config.Default().Model
	cfg.HiddenActivation = "swish"
	_, err = Build(cfg, backend, nil)
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestPredict(t *testing.T) {
	backend := cpu.New()

	pipeline, err := Build(config.Default().Model, backend, rand.New(rand.NewSource(2)))
	require.NoError(t, err)

	pixels := tensor.Zeros[uint8](tensor.Shape{3, 28, 28}, backend)
	pred, err := Predict(pipeline, pixels)
	require.NoError(t, err)

	require.Len(t, pred.Scores, 3)
	require.Len(t, pred.Classes, 3)
	for _, row := range pred.Scores {
		require.Len(t, row, 10)
		for _, v := range row {
			assert.InDelta(t, 0.5, v, 1e-7)
		}
	}
	// All scores tie, so argmax picks the first class.
	assert.Equal(t, []int{0, 0, 0}, pred.Classes)
}

func TestPredict_SingleImage(t *testing.T) {
	backend := cpu.New()

	cfg := config.Default().Model
	cfg.OutputActivation = nn.ActivationSoftmax
	pipeline, err := Build(cfg, backend, rand.New(rand.NewSource(3)))
	require.NoError(t, err)

	pred, err := Predict(pipeline, tensor.Full[uint8](tensor.Shape{28, 28}, 255, backend))
	require.NoError(t, err)
	require.Len(t, pred.Scores, 1)

	var sum float32
	for _, v := range pred.Scores[0] {
		sum += v
	}
	assert.InDelta(t, 1.0, sum, 1e-5)
	assert.GreaterOrEqual(t, pred.Classes[0], 0)
	assert.Less(t, pred.Classes[0], 10)
}

func TestPredict_WrongImageSize(t *testing.T) {
	backend := cpu.New()

	pipeline, err := Build(config.Default().Model, backend, nil)
	require.NoError(t, err)

	_, err = Predict(pipeline, tensor.Zeros[uint8](tensor.Shape{1, 32, 32}, backend))
	assert.ErrorIs(t, err, nn.ErrShapeMismatch)
}
