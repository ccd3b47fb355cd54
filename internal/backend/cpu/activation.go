package cpu

import (
	"fmt"
	"math"

	"github.com/born-ml/pixelnet/internal/parallel"
	"github.com/born-ml/pixelnet/internal/tensor"
)

// ReLU applies max(0, x) element-wise.
func (cpu *CPUBackend) ReLU(x *tensor.RawTensor) *tensor.RawTensor {
	result, err := tensor.NewRaw(x.Shape(), x.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("relu: %v", err))
	}

	switch x.DType() {
	case tensor.Float32:
		relu(result.AsFloat32(), x.AsFloat32(), cpu.par)
	case tensor.Float64:
		relu(result.AsFloat64(), x.AsFloat64(), cpu.par)
	case tensor.Int32:
		relu(result.AsInt32(), x.AsInt32(), cpu.par)
	case tensor.Int64:
		relu(result.AsInt64(), x.AsInt64(), cpu.par)
	default:
		panic(fmt.Sprintf("relu: unsupported dtype %s", x.DType()))
	}

	return result
}

func relu[T numeric](dst, src []T, par parallel.Config) {
	parallel.Range(len(src), par, func(start, end int) {
		for i := start; i < end; i++ {
			if src[i] > 0 {
				dst[i] = src[i]
			}
		}
	})
}

// Sigmoid applies 1 / (1 + exp(-x)) element-wise.
func (cpu *CPUBackend) Sigmoid(x *tensor.RawTensor) *tensor.RawTensor {
	result, err := tensor.NewRaw(x.Shape(), x.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("sigmoid: %v", err))
	}

	switch x.DType() {
	case tensor.Float32:
		src, dst := x.AsFloat32(), result.AsFloat32()
		parallel.Range(len(src), cpu.par, func(start, end int) {
			for i := start; i < end; i++ {
				dst[i] = float32(1.0 / (1.0 + math.Exp(-float64(src[i]))))
			}
		})
	case tensor.Float64:
		src, dst := x.AsFloat64(), result.AsFloat64()
		parallel.Range(len(src), cpu.par, func(start, end int) {
			for i := start; i < end; i++ {
				dst[i] = 1.0 / (1.0 + math.Exp(-src[i]))
			}
		})
	default:
		panic(fmt.Sprintf("sigmoid: unsupported dtype %s (only float32/float64 supported)", x.DType()))
	}

	return result
}

// Softmax computes softmax along the specified dimension.
// Softmax(x_i) = exp(x_i) / sum(exp(x_j)) for all j in dimension.
func (cpu *CPUBackend) Softmax(x *tensor.RawTensor, dim int) *tensor.RawTensor {
	shape := x.Shape()
	ndim := len(shape)

	if dim < 0 {
		dim = ndim + dim
	}
	if dim < 0 || dim >= ndim {
		panic(fmt.Sprintf("softmax: dimension %d out of range for tensor of rank %d", dim, ndim))
	}

	result, err := tensor.NewRaw(shape, x.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("softmax: %v", err))
	}

	switch x.DType() {
	case tensor.Float32:
		src := x.AsFloat32()
		dst := result.AsFloat32()
		cpu.forEachLane(shape, dim, func(_, base, stride, size int) {
			maxVal := float64(src[base])
			for j := 1; j < size; j++ {
				maxVal = math.Max(maxVal, float64(src[base+j*stride]))
			}
			sum := 0.0
			for j := 0; j < size; j++ {
				e := math.Exp(float64(src[base+j*stride]) - maxVal)
				dst[base+j*stride] = float32(e)
				sum += e
			}
			for j := 0; j < size; j++ {
				dst[base+j*stride] = float32(float64(dst[base+j*stride]) / sum)
			}
		})
	case tensor.Float64:
		src := x.AsFloat64()
		dst := result.AsFloat64()
		cpu.forEachLane(shape, dim, func(_, base, stride, size int) {
			maxVal := src[base]
			for j := 1; j < size; j++ {
				maxVal = math.Max(maxVal, src[base+j*stride])
			}
			sum := 0.0
			for j := 0; j < size; j++ {
				e := math.Exp(src[base+j*stride] - maxVal)
				dst[base+j*stride] = e
				sum += e
			}
			for j := 0; j < size; j++ {
				dst[base+j*stride] /= sum
			}
		})
	default:
		panic(fmt.Sprintf("softmax: unsupported dtype %s (only float32/float64 supported)", x.DType()))
	}

	return result
}

// forEachLane calls fn once for every 1-D lane of shape along dim, passing
// the lane's row-major index with dim removed, the flat offset of its first
// element, the lane stride and length. Lanes are disjoint and may run
// concurrently.
func (cpu *CPUBackend) forEachLane(shape tensor.Shape, dim int, fn func(lane, base, stride, size int)) {
	strides := shape.ComputeStrides()
	size := shape[dim]
	stride := strides[dim]
	outer := 1
	for i := 0; i < dim; i++ {
		outer *= shape[i]
	}
	parallel.For(outer*stride, cpu.par, func(lane int) {
		o, inner := lane/stride, lane%stride
		fn(lane, o*size*stride+inner, stride, size)
	})
}
