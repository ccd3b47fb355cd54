package nn_test

import (
	"math/rand"
	"testing"

	"github.com/born-ml/pixelnet/internal/backend/cpu"
	"github.com/born-ml/pixelnet/internal/nn"
	"github.com/born-ml/pixelnet/internal/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingStage records Forward calls so tests can observe execution order.
type countingStage struct {
	name  string
	calls *[]string
}

func (c *countingStage) Forward(input *tensor.Tensor[float32, Backend]) *tensor.Tensor[float32, Backend] {
	*c.calls = append(*c.calls, c.name)
	return input
}

func (c *countingStage) OutputShape(input tensor.Shape) (tensor.Shape, error) {
	return input.Clone(), nil
}

func (c *countingStage) Parameters() []*nn.Parameter[Backend] { return nil }

func (c *countingStage) Name() string { return c.name }

func buildDigitPipeline(t *testing.T, backend Backend, seed int64) *nn.Sequential[Backend] {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))

	model, err := nn.NewSequential[Backend](tensor.Shape{28, 28},
		nn.NewPixelRescale[Backend](),
		nn.NewFlatten[Backend](),
		nn.MustDense(784, 128, nn.ActivationReLU, backend, rng),
		nn.MustDense(128, 10, nn.ActivationSigmoid, backend, rng),
	)
	require.NoError(t, err)
	return model
}

func TestSequential_DigitPipeline(t *testing.T) {
	backend := cpu.New()
	model := buildDigitPipeline(t, backend, 1)

	assert.Equal(t, 4, model.Len())
	assert.True(t, model.InputShape().Equal(tensor.Shape{28, 28}))
	assert.True(t, model.FinalShape().Equal(tensor.Shape{10}))

	out, err := model.Apply(tensor.Zeros[float32](tensor.Shape{1, 28, 28}, backend))
	require.NoError(t, err)
	assert.True(t, out.Shape().Equal(tensor.Shape{1, 10}))

	// Zero input, zero biases: every pre-activation is 0, sigmoid(0) = 0.5.
	for _, v := range out.Data() {
		assert.InDelta(t, 0.5, v, 1e-7)
	}
}

func TestSequential_UnbatchedInput(t *testing.T) {
	backend := cpu.New()
	model := buildDigitPipeline(t, backend, 1)

	out, err := model.Apply(tensor.Zeros[float32](tensor.Shape{28, 28}, backend))
	require.NoError(t, err)
	assert.True(t, out.Shape().Equal(tensor.Shape{1, 10}))
}

func TestSequential_BatchedInput(t *testing.T) {
	backend := cpu.New()
	model := buildDigitPipeline(t, backend, 3)

	out, err := model.Apply(tensor.Full[float32](tensor.Shape{5, 28, 28}, 128, backend))
	require.NoError(t, err)
	assert.True(t, out.Shape().Equal(tensor.Shape{5, 10}))

	// Identical examples produce identical rows.
	data := out.Data()
	for row := 1; row < 5; row++ {
		assert.Equal(t, data[:10], data[row*10:(row+1)*10])
	}
	for _, v := range data {
		assert.True(t, v > 0 && v < 1, "sigmoid output %v out of (0,1)", v)
	}
}

func TestSequential_Deterministic(t *testing.T) {
	backend := cpu.New()
	model := buildDigitPipeline(t, backend, 11)

	rng := rand.New(rand.NewSource(5))
	pixels := make([]float32, 2*28*28)
	for i := range pixels {
		pixels[i] = float32(rng.Intn(256))
	}
	x, err := tensor.FromSlice(pixels, tensor.Shape{2, 28, 28}, backend)
	require.NoError(t, err)

	first, err := model.Apply(x)
	require.NoError(t, err)
	second, err := model.Apply(x)
	require.NoError(t, err)

	assert.Equal(t, first.Data(), second.Data())
	assert.Equal(t, pixels, x.Data(), "Apply must not modify its input")

	// Same seed, same weights, same output.
	twin := buildDigitPipeline(t, backend, 11)
	third, err := twin.Apply(x)
	require.NoError(t, err)
	assert.Equal(t, first.Data(), third.Data())
}

func TestSequential_ShapeMismatchAtAssembly(t *testing.T) {
	backend := cpu.New()

	tests := []struct {
		name   string
		input  tensor.Shape
		stages func() []nn.Module[Backend]
	}{
		{
			name:  "dense without flatten",
			input: tensor.Shape{28, 28},
			stages: func() []nn.Module[Backend] {
				return []nn.Module[Backend]{
					nn.NewPixelRescale[Backend](),
					nn.MustDense(784, 128, "relu", backend, nil),
				}
			},
		},
		{
			name:  "wrong hidden width",
			input: tensor.Shape{28, 28},
			stages: func() []nn.Module[Backend] {
				return []nn.Module[Backend]{
					nn.NewFlatten[Backend](),
					nn.MustDense(784, 128, "relu", backend, nil),
					nn.MustDense(64, 10, "sigmoid", backend, nil),
				}
			},
		},
		{
			name:  "wrong image size",
			input: tensor.Shape{32, 32},
			stages: func() []nn.Module[Backend] {
				return []nn.Module[Backend]{
					nn.NewFlatten[Backend](),
					nn.MustDense(784, 10, "sigmoid", backend, nil),
				}
			},
		},
		{
			name:  "invalid input shape",
			input: tensor.Shape{28, 0},
			stages: func() []nn.Module[Backend] {
				return []nn.Module[Backend]{nn.NewFlatten[Backend]()}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			model, err := nn.NewSequential[Backend](tt.input, tt.stages()...)
			assert.ErrorIs(t, err, nn.ErrShapeMismatch)
			assert.Nil(t, model)
		})
	}
}

func TestSequential_Empty(t *testing.T) {
	_, err := nn.NewSequential[Backend](tensor.Shape{28, 28})
	assert.ErrorIs(t, err, nn.ErrEmptyPipeline)
}

func TestSequential_RejectsWrongInputBeforeRunning(t *testing.T) {
	backend := cpu.New()
	var calls []string

	model, err := nn.NewSequential[Backend](tensor.Shape{4},
		nn.Module[Backend](&countingStage{name: "a", calls: &calls}),
		&countingStage{name: "b", calls: &calls},
	)
	require.NoError(t, err)

	_, err = model.Apply(tensor.Zeros[float32](tensor.Shape{2, 5}, backend))
	assert.ErrorIs(t, err, nn.ErrShapeMismatch)
	assert.Empty(t, calls)

	assert.Panics(t, func() { model.Forward(tensor.Zeros[float32](tensor.Shape{3}, backend)) })
}

func TestSequential_PreservesOrder(t *testing.T) {
	backend := cpu.New()
	var calls []string

	stages := []nn.Module[Backend]{
		&countingStage{name: "first", calls: &calls},
		&countingStage{name: "second", calls: &calls},
		&countingStage{name: "third", calls: &calls},
	}
	model, err := nn.NewSequential[Backend](tensor.Shape{2}, stages...)
	require.NoError(t, err)

	// The caller's slice is copied; changing it later has no effect.
	stages[0] = &countingStage{name: "swapped", calls: &calls}

	_, err = model.Apply(tensor.Zeros[float32](tensor.Shape{1, 2}, backend))
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second", "third"}, calls)
	assert.Equal(t, "first", model.Stage(0).Name())
	assert.Panics(t, func() { model.Stage(3) })
}

func TestSequential_Nested(t *testing.T) {
	backend := cpu.New()

	head, err := nn.NewSequential[Backend](tensor.Shape{28, 28},
		nn.NewPixelRescale[Backend](),
		nn.NewFlatten[Backend](),
	)
	require.NoError(t, err)

	model, err := nn.NewSequential[Backend](tensor.Shape{28, 28},
		nn.Module[Backend](head),
		nn.MustDense(784, 10, "softmax", backend, nil),
	)
	require.NoError(t, err)

	out, err := model.Apply(tensor.Full[float32](tensor.Shape{2, 28, 28}, 255, backend))
	require.NoError(t, err)
	assert.True(t, out.Shape().Equal(tensor.Shape{2, 10}))

	_, err = nn.NewSequential[Backend](tensor.Shape{14, 14}, nn.Module[Backend](head))
	assert.ErrorIs(t, err, nn.ErrShapeMismatch)
}

func TestSequential_Summary(t *testing.T) {
	backend := cpu.New()
	model := buildDigitPipeline(t, backend, 1)

	rows := model.Summary()
	require.Len(t, rows, 4)

	want := []struct {
		name   string
		shape  tensor.Shape
		params int
	}{
		{"Rescale", tensor.Shape{28, 28}, 0},
		{"Flatten", tensor.Shape{784}, 0},
		{"Dense", tensor.Shape{128}, 784*128 + 128},
		{"Dense", tensor.Shape{10}, 128*10 + 10},
	}
	for i, w := range want {
		assert.Equal(t, i, rows[i].Index)
		assert.Equal(t, w.name, rows[i].Name)
		assert.True(t, rows[i].OutputShape.Equal(w.shape), "row %d shape %v", i, rows[i].OutputShape)
		assert.Equal(t, w.params, rows[i].Params)
	}
	assert.Equal(t, 101770, nn.CountParameters(model.Parameters()))
}
