package cpu

import (
	"fmt"

	"github.com/born-ml/pixelnet/internal/tensor"
)

// Cast converts the tensor to a different data type.
// Float to integer conversion truncates toward zero, as Go conversions do.
func (cpu *CPUBackend) Cast(x *tensor.RawTensor, dtype tensor.DataType) *tensor.RawTensor {
	// Same dtype still copies so the result never aliases x.
	if x.DType() == dtype {
		return x.Clone()
	}

	result, err := tensor.NewRaw(x.Shape(), dtype, cpu.device)
	if err != nil {
		panic(fmt.Sprintf("cast: %v", err))
	}

	switch x.DType() {
	case tensor.Float32:
		castFrom(result, x.AsFloat32())
	case tensor.Float64:
		castFrom(result, x.AsFloat64())
	case tensor.Int32:
		castFrom(result, x.AsInt32())
	case tensor.Int64:
		castFrom(result, x.AsInt64())
	case tensor.Uint8:
		castFrom(result, x.AsUint8())
	default:
		panic(fmt.Sprintf("cast: unsupported source dtype %v", x.DType()))
	}

	return result
}

func castFrom[S numeric](result *tensor.RawTensor, src []S) {
	switch result.DType() {
	case tensor.Float32:
		castSlice(result.AsFloat32(), src)
	case tensor.Float64:
		castSlice(result.AsFloat64(), src)
	case tensor.Int32:
		castSlice(result.AsInt32(), src)
	case tensor.Int64:
		castSlice(result.AsInt64(), src)
	case tensor.Uint8:
		castSlice(result.AsUint8(), src)
	default:
		panic(fmt.Sprintf("cast: unsupported target dtype %v", result.DType()))
	}
}

func castSlice[D, S numeric](dst []D, src []S) {
	for i, v := range src {
		dst[i] = D(v)
	}
}
