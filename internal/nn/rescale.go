package nn

import (
	"fmt"
	"math"

	"github.com/born-ml/pixelnet/internal/tensor"
)

// DefaultPixelScale maps 8-bit pixel intensities [0, 255] onto [0, 1].
const DefaultPixelScale = 255.0

// Rescale divides every element of its input by a fixed constant.
//
// It is the normalization step embedded at the head of a pipeline, so raw
// pixel tensors can be fed to the model unchanged. Rescale holds no
// parameters, accepts any input rank and preserves the input shape.
//
// Example:
//
//	norm := nn.NewPixelRescale[Backend]()
//	out := norm.Forward(pixels) // pixels / 255
type Rescale[B tensor.Backend] struct {
	scale float32
}

// NewRescale creates a Rescale stage dividing by scale.
//
// Returns an error wrapping ErrInvalidScale if scale is zero, NaN or infinite.
func NewRescale[B tensor.Backend](scale float32) (*Rescale[B], error) {
	s := float64(scale)
	if scale == 0 || math.IsNaN(s) || math.IsInf(s, 0) {
		return nil, fmt.Errorf("rescale: %w: %v", ErrInvalidScale, scale)
	}
	return &Rescale[B]{scale: scale}, nil
}

// NewPixelRescale creates a Rescale stage dividing by DefaultPixelScale.
func NewPixelRescale[B tensor.Backend]() *Rescale[B] {
	return &Rescale[B]{scale: DefaultPixelScale}
}

// Scale returns the divisor.
func (r *Rescale[B]) Scale() float32 {
	return r.scale
}

// Forward returns input / scale. The input tensor is not modified.
func (r *Rescale[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	return input.DivScalar(r.scale)
}

// OutputShape returns the input shape unchanged.
func (r *Rescale[B]) OutputShape(input tensor.Shape) (tensor.Shape, error) {
	if err := input.Validate(); err != nil {
		return nil, fmt.Errorf("rescale: %w: %w", ErrShapeMismatch, err)
	}
	return input.Clone(), nil
}

// Parameters returns nil (Rescale has no trainable parameters).
func (r *Rescale[B]) Parameters() []*Parameter[B] {
	return nil
}

// Name returns "Rescale".
func (r *Rescale[B]) Name() string {
	return "Rescale"
}
