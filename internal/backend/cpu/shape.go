package cpu

import (
	"fmt"

	"github.com/born-ml/pixelnet/internal/tensor"
)

// Reshape returns a view of t with a different shape.
// The buffer is shared; callers that mutate the result mutate t.
func (cpu *CPUBackend) Reshape(t *tensor.RawTensor, newShape tensor.Shape) *tensor.RawTensor {
	view, err := t.View(newShape)
	if err != nil {
		panic(fmt.Sprintf("reshape: %v", err))
	}
	return view
}

// Transpose transposes the tensor by permuting its dimensions.
func (cpu *CPUBackend) Transpose(t *tensor.RawTensor, axes ...int) *tensor.RawTensor {
	shape := t.Shape()
	ndim := len(shape)

	// Default: reverse all dimensions
	if len(axes) == 0 {
		axes = make([]int, ndim)
		for i := range axes {
			axes[i] = ndim - 1 - i
		}
	}

	if len(axes) != ndim {
		panic(fmt.Sprintf("transpose: axes length %d != ndim %d", len(axes), ndim))
	}

	seen := make([]bool, ndim)
	for _, ax := range axes {
		if ax < 0 || ax >= ndim {
			panic(fmt.Sprintf("transpose: invalid axis %d for %dD tensor", ax, ndim))
		}
		if seen[ax] {
			panic(fmt.Sprintf("transpose: duplicate axis %d", ax))
		}
		seen[ax] = true
	}

	newShape := make(tensor.Shape, ndim)
	for i, ax := range axes {
		newShape[i] = shape[ax]
	}

	result, err := tensor.NewRaw(newShape, t.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("transpose: %v", err))
	}

	switch t.DType() {
	case tensor.Float32:
		permute(result.AsFloat32(), t.AsFloat32(), shape, newShape, axes)
	case tensor.Float64:
		permute(result.AsFloat64(), t.AsFloat64(), shape, newShape, axes)
	case tensor.Int32:
		permute(result.AsInt32(), t.AsInt32(), shape, newShape, axes)
	case tensor.Int64:
		permute(result.AsInt64(), t.AsInt64(), shape, newShape, axes)
	case tensor.Uint8:
		permute(result.AsUint8(), t.AsUint8(), shape, newShape, axes)
	default:
		panic(fmt.Sprintf("transpose: unsupported dtype %s", t.DType()))
	}

	return result
}

func permute[T numeric](dst, src []T, shape, newShape tensor.Shape, axes []int) {
	srcStrides := shape.ComputeStrides()
	coords := make([]int, len(newShape))

	for i := range dst {
		rem := i
		for d := len(newShape) - 1; d >= 0; d-- {
			coords[d] = rem % newShape[d]
			rem /= newShape[d]
		}

		srcIdx := 0
		for d, ax := range axes {
			srcIdx += coords[d] * srcStrides[ax]
		}
		dst[i] = src[srcIdx]
	}
}
