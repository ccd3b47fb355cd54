package nn_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/born-ml/pixelnet/internal/backend/cpu"
	"github.com/born-ml/pixelnet/internal/nn"
	"github.com/born-ml/pixelnet/internal/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type Backend = *cpu.CPUBackend

func TestRescale_ExactDivision(t *testing.T) {
	backend := cpu.New()
	norm := nn.NewPixelRescale[Backend]()

	shapes := []tensor.Shape{{1}, {7}, {3, 5}, {2, 4, 3}, {1, 28, 28}, {2, 1, 3, 2}}
	rng := rand.New(rand.NewSource(1))

	for _, shape := range shapes {
		data := make([]float32, shape.NumElements())
		for i := range data {
			data[i] = float32(rng.Intn(256))
		}
		x, err := tensor.FromSlice(data, shape, backend)
		require.NoError(t, err)

		out := norm.Forward(x)
		require.True(t, out.Shape().Equal(shape), "shape %v changed to %v", shape, out.Shape())
		for i, v := range out.Data() {
			assert.Equal(t, data[i]/255.0, v, "shape %v index %d", shape, i)
		}
		// Input untouched.
		assert.Equal(t, data, x.Data())
	}
}

func TestRescale_InverseRoundTrip(t *testing.T) {
	backend := cpu.New()
	norm := nn.NewPixelRescale[Backend]()

	data := make([]float32, 256)
	for i := range data {
		data[i] = float32(i)
	}
	x, err := tensor.FromSlice(data, tensor.Shape{16, 16}, backend)
	require.NoError(t, err)

	back := norm.Forward(x).MulScalar(255)
	assert.InDeltaSlice(t, data, back.Data(), 1e-4)
}

func TestRescale_FullAndEmptyImages(t *testing.T) {
	backend := cpu.New()
	norm := nn.NewPixelRescale[Backend]()

	white := norm.Forward(tensor.Full[float32](tensor.Shape{1, 28, 28}, 255, backend))
	assert.True(t, white.Shape().Equal(tensor.Shape{1, 28, 28}))
	for _, v := range white.Data() {
		require.Equal(t, float32(1), v)
	}

	black := norm.Forward(tensor.Zeros[float32](tensor.Shape{1, 28, 28}, backend))
	for _, v := range black.Data() {
		require.Equal(t, float32(0), v)
	}
}

func TestRescale_Construction(t *testing.T) {
	r, err := nn.NewRescale[Backend](127.5)
	require.NoError(t, err)
	assert.Equal(t, float32(127.5), r.Scale())
	assert.Nil(t, r.Parameters())
	assert.Equal(t, "Rescale", r.Name())

	for _, bad := range []float32{0, float32(math.NaN()), float32(math.Inf(1)), float32(math.Inf(-1))} {
		_, err := nn.NewRescale[Backend](bad)
		assert.ErrorIs(t, err, nn.ErrInvalidScale, "scale %v", bad)
	}
}

func TestRescale_OutputShape(t *testing.T) {
	r := nn.NewPixelRescale[Backend]()

	out, err := r.OutputShape(tensor.Shape{28, 28})
	require.NoError(t, err)
	assert.True(t, out.Equal(tensor.Shape{28, 28}))

	_, err = r.OutputShape(tensor.Shape{28, 0})
	assert.ErrorIs(t, err, nn.ErrShapeMismatch)
}
