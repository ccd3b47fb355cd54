package tensor_test

import (
	"testing"

	"github.com/born-ml/pixelnet/internal/backend/cpu"
	"github.com/born-ml/pixelnet/internal/tensor"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromSlice(t *testing.T) {
	backend := cpu.New()

	x, err := tensor.FromSlice([]float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3}, backend)
	require.NoError(t, err)
	assert.Equal(t, tensor.Float32, x.DType())
	assert.Equal(t, float32(6), x.At(1, 2))

	x.Set(7, 0, 1)
	assert.Equal(t, float32(7), x.Data()[1])

	_, err = tensor.FromSlice([]float32{1, 2, 3}, tensor.Shape{2, 2}, backend)
	assert.Error(t, err)

	assert.Panics(t, func() { x.At(2, 0) })
	assert.Panics(t, func() { x.At(0) })
}

func TestCreation(t *testing.T) {
	backend := cpu.New()

	zeros := tensor.Zeros[float32](tensor.Shape{1, 28, 28}, backend)
	ones := tensor.Ones[int64](tensor.Shape{3}, backend)
	full := tensor.Full[uint8](tensor.Shape{2, 2}, 255, backend)

	if diff := cmp.Diff(tensor.Shape{1, 28, 28}, zeros.Shape()); diff != "" {
		t.Errorf("Zeros shape mismatch (-want +got):\n%s", diff)
	}
	for _, v := range zeros.Data() {
		require.Equal(t, float32(0), v)
	}
	assert.Equal(t, []int64{1, 1, 1}, ones.Data())
	assert.Equal(t, []uint8{255, 255, 255, 255}, full.Data())
	assert.Equal(t, "Tensor[uint8](2, 2) on CPU", full.String())
}

func TestTensorOps(t *testing.T) {
	backend := cpu.New()

	x, err := tensor.FromSlice([]float32{0, 51, 255, 510}, tensor.Shape{2, 2}, backend)
	require.NoError(t, err)

	scaled := x.DivScalar(255)
	assert.Equal(t, []float32{0, 0.2, 1, 2}, scaled.Data())
	assert.Equal(t, []float32{0, 51, 255, 510}, x.Data(), "DivScalar must not modify its input")

	back := scaled.MulScalar(255)
	assert.InDeltaSlice(t, x.Data(), back.Data(), 1e-4)

	flat := x.Reshape(4)
	if diff := cmp.Diff(tensor.Shape{4}, flat.Shape()); diff != "" {
		t.Errorf("Reshape shape mismatch (-want +got):\n%s", diff)
	}

	prod := x.MatMul(x.Transpose())
	// [[0,51],[255,510]] @ its transpose
	assert.Equal(t, []float32{51 * 51, 51 * 510, 51 * 510, 255*255 + 510*510}, prod.Data())

	am := x.Argmax(1)
	assert.Equal(t, []int32{1, 1}, am.Data())

	sm := x.Softmax(-1)
	assert.InDelta(t, 1.0, float64(sm.At(0, 0)+sm.At(0, 1)), 1e-6)
}

func TestCast(t *testing.T) {
	backend := cpu.New()

	pixels := tensor.Full[uint8](tensor.Shape{1, 28, 28}, 200, backend)
	f := tensor.Cast[uint8, float32](pixels)

	assert.Equal(t, tensor.Float32, f.DType())
	assert.True(t, f.Shape().Equal(pixels.Shape()))
	assert.Equal(t, float32(200), f.At(0, 27, 27))

	clone := f.Clone()
	clone.Set(1, 0, 0, 0)
	assert.Equal(t, float32(200), f.At(0, 0, 0))
}
