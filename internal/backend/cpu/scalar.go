package cpu

import (
	"fmt"

	"github.com/born-ml/pixelnet/internal/tensor"
)

// Scalar operations - element-wise operations with a scalar value.
// The scalar's Go type must match the tensor dtype.

// MulScalar multiplies each element of the tensor by a scalar value.
func (cpu *CPUBackend) MulScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	result, err := tensor.NewRaw(x.Shape(), x.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("mulScalar: failed to create result tensor: %v", err))
	}

	switch x.DType() {
	case tensor.Float32:
		mulScalar(result.AsFloat32(), x.AsFloat32(), scalarAs[float32]("mulScalar", scalar))
	case tensor.Float64:
		mulScalar(result.AsFloat64(), x.AsFloat64(), scalarAs[float64]("mulScalar", scalar))
	case tensor.Int32:
		mulScalar(result.AsInt32(), x.AsInt32(), scalarAs[int32]("mulScalar", scalar))
	case tensor.Int64:
		mulScalar(result.AsInt64(), x.AsInt64(), scalarAs[int64]("mulScalar", scalar))
	case tensor.Uint8:
		mulScalar(result.AsUint8(), x.AsUint8(), scalarAs[uint8]("mulScalar", scalar))
	default:
		panic(fmt.Sprintf("mulScalar: unsupported dtype %v", x.DType()))
	}

	return result
}

// DivScalar divides each element of the tensor by a scalar value.
//
// Float division follows IEEE 754; integer division by zero panics.
func (cpu *CPUBackend) DivScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	result, err := tensor.NewRaw(x.Shape(), x.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("divScalar: failed to create result tensor: %v", err))
	}

	switch x.DType() {
	case tensor.Float32:
		divScalar(result.AsFloat32(), x.AsFloat32(), scalarAs[float32]("divScalar", scalar))
	case tensor.Float64:
		divScalar(result.AsFloat64(), x.AsFloat64(), scalarAs[float64]("divScalar", scalar))
	case tensor.Int32:
		divScalar(result.AsInt32(), x.AsInt32(), scalarAs[int32]("divScalar", scalar))
	case tensor.Int64:
		divScalar(result.AsInt64(), x.AsInt64(), scalarAs[int64]("divScalar", scalar))
	case tensor.Uint8:
		divScalar(result.AsUint8(), x.AsUint8(), scalarAs[uint8]("divScalar", scalar))
	default:
		panic(fmt.Sprintf("divScalar: unsupported dtype %v", x.DType()))
	}

	return result
}

func scalarAs[T numeric](op string, scalar any) T {
	v, ok := scalar.(T)
	if !ok {
		var want T
		panic(fmt.Sprintf("%s: scalar of type %T does not match tensor dtype %T", op, scalar, want))
	}
	return v
}

func mulScalar[T numeric](dst, src []T, s T) {
	for i, v := range src {
		dst[i] = v * s
	}
}

func divScalar[T numeric](dst, src []T, s T) {
	for i, v := range src {
		dst[i] = v / s
	}
}
