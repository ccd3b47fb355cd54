// Package cpu implements the pure-Go CPU backend, with gonum BLAS for matrix products.
package cpu

import (
	"fmt"

	"github.com/born-ml/pixelnet/internal/parallel"
	"github.com/born-ml/pixelnet/internal/tensor"
)

// CPUBackend implements tensor operations on CPU.
//
// It holds no mutable state, so a single instance may be shared by any
// number of tensors and pipelines.
type CPUBackend struct {
	device tensor.Device
	par    parallel.Config
}

// New creates a new CPU backend using one worker per CPU.
func New() *CPUBackend {
	return NewWithWorkers(0)
}

// NewWithWorkers creates a CPU backend whose row and lane kernels use up
// to workers goroutines. workers <= 0 means one per CPU; 1 disables
// parallelism.
func NewWithWorkers(workers int) *CPUBackend {
	return &CPUBackend{
		device: tensor.CPU,
		par:    parallel.WithWorkers(workers),
	}
}

// Workers returns the number of goroutines kernels may use.
func (cpu *CPUBackend) Workers() int {
	return cpu.par.Workers
}

// Name returns the backend name.
func (cpu *CPUBackend) Name() string {
	return "CPU"
}

// Device returns the compute device.
func (cpu *CPUBackend) Device() tensor.Device {
	return cpu.device
}

// Add performs element-wise addition with NumPy-style broadcasting.
func (cpu *CPUBackend) Add(a, b *tensor.RawTensor) *tensor.RawTensor {
	if a.DType() != b.DType() {
		panic(fmt.Sprintf("add: dtype mismatch %s vs %s", a.DType(), b.DType()))
	}

	outShape, needsBroadcast, err := tensor.BroadcastShapes(a.Shape(), b.Shape())
	if err != nil {
		panic(fmt.Sprintf("add: %v", err))
	}

	result, err := tensor.NewRaw(outShape, a.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("add: failed to create result tensor: %v", err))
	}

	switch a.DType() {
	case tensor.Float32:
		addInto(result.AsFloat32(), a.AsFloat32(), b.AsFloat32(), a.Shape(), b.Shape(), outShape, needsBroadcast)
	case tensor.Float64:
		addInto(result.AsFloat64(), a.AsFloat64(), b.AsFloat64(), a.Shape(), b.Shape(), outShape, needsBroadcast)
	case tensor.Int32:
		addInto(result.AsInt32(), a.AsInt32(), b.AsInt32(), a.Shape(), b.Shape(), outShape, needsBroadcast)
	case tensor.Int64:
		addInto(result.AsInt64(), a.AsInt64(), b.AsInt64(), a.Shape(), b.Shape(), outShape, needsBroadcast)
	case tensor.Uint8:
		addInto(result.AsUint8(), a.AsUint8(), b.AsUint8(), a.Shape(), b.Shape(), outShape, needsBroadcast)
	default:
		panic(fmt.Sprintf("add: unsupported dtype %s", a.DType()))
	}

	return result
}

func addInto[T numeric](dst, a, b []T, aShape, bShape, outShape tensor.Shape, broadcast bool) {
	if !broadcast {
		for i := range dst {
			dst[i] = a[i] + b[i]
		}
		return
	}

	aStrides := broadcastStrides(aShape, outShape)
	bStrides := broadcastStrides(bShape, outShape)
	coords := make([]int, len(outShape))

	for i := range dst {
		// Unravel flat output index into coordinates.
		rem := i
		for d := len(outShape) - 1; d >= 0; d-- {
			coords[d] = rem % outShape[d]
			rem /= outShape[d]
		}

		aIdx, bIdx := 0, 0
		for d, c := range coords {
			aIdx += c * aStrides[d]
			bIdx += c * bStrides[d]
		}
		dst[i] = a[aIdx] + b[bIdx]
	}
}

// broadcastStrides returns strides of shape aligned to outShape, with zero
// stride on broadcast (size-1 or missing) dimensions.
func broadcastStrides(shape, outShape tensor.Shape) []int {
	strides := make([]int, len(outShape))
	src := shape.ComputeStrides()
	offset := len(outShape) - len(shape)
	for i := range shape {
		if shape[i] != 1 {
			strides[offset+i] = src[i]
		}
	}
	return strides
}

// numeric lists the element types backend kernels are instantiated for.
type numeric interface {
	~float32 | ~float64 | ~int32 | ~int64 | ~uint8
}
