package cpu

import (
	"fmt"

	"github.com/born-ml/pixelnet/internal/tensor"
)

// Argmax returns the index of the maximum value along the specified dimension.
// The reduced dimension is removed; the result dtype is int32. Ties resolve
// to the lowest index.
func (cpu *CPUBackend) Argmax(x *tensor.RawTensor, dim int) *tensor.RawTensor {
	shape := x.Shape()
	ndim := len(shape)

	if dim < 0 {
		dim = ndim + dim
	}
	if dim < 0 || dim >= ndim {
		panic(fmt.Sprintf("argmax: dimension %d out of range for %dD tensor", dim, ndim))
	}

	outShape := make(tensor.Shape, 0, ndim-1)
	for i := 0; i < ndim; i++ {
		if i != dim {
			outShape = append(outShape, shape[i])
		}
	}

	result, err := tensor.NewRaw(outShape, tensor.Int32, cpu.device)
	if err != nil {
		panic(fmt.Sprintf("argmax: %v", err))
	}

	switch x.DType() {
	case tensor.Float32:
		argmax(cpu, x.AsFloat32(), result.AsInt32(), shape, dim)
	case tensor.Float64:
		argmax(cpu, x.AsFloat64(), result.AsInt32(), shape, dim)
	case tensor.Int32:
		argmax(cpu, x.AsInt32(), result.AsInt32(), shape, dim)
	case tensor.Int64:
		argmax(cpu, x.AsInt64(), result.AsInt32(), shape, dim)
	case tensor.Uint8:
		argmax(cpu, x.AsUint8(), result.AsInt32(), shape, dim)
	default:
		panic(fmt.Sprintf("argmax: unsupported dtype %s", x.DType()))
	}

	return result
}

func argmax[T numeric](cpu *CPUBackend, data []T, result []int32, shape tensor.Shape, dim int) {
	cpu.forEachLane(shape, dim, func(lane, base, stride, size int) {
		best := 0
		for j := 1; j < size; j++ {
			if data[base+j*stride] > data[base+best*stride] {
				best = j
			}
		}
		result[lane] = int32(best) //nolint:gosec // lane size is bounded by tensor dims
	})
}
