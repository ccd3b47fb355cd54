package nn

import (
	"fmt"

	"github.com/born-ml/pixelnet/internal/tensor"
)

// Flatten collapses all per-example dimensions into a single feature axis.
//
// Input shape: [batch, d1, ..., dn]
// Output shape: [batch, d1*...*dn]
type Flatten[B tensor.Backend] struct{}

// NewFlatten creates a new Flatten stage.
func NewFlatten[B tensor.Backend]() *Flatten[B] {
	return &Flatten[B]{}
}

// Forward reshapes the input to [batch, features].
// The result is a view sharing the input's buffer.
func (f *Flatten[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	shape := input.Shape()
	if len(shape) < 2 {
		panic(fmt.Sprintf("Flatten.Forward: expected batched input [batch, ...], got shape %v", shape))
	}
	batch := shape[0]
	return input.Reshape(batch, input.NumElements()/batch)
}

// OutputShape accepts any rank of at least 1 and returns a rank-1 shape.
func (f *Flatten[B]) OutputShape(input tensor.Shape) (tensor.Shape, error) {
	if len(input) == 0 {
		return nil, fmt.Errorf("flatten: %w: scalar input has nothing to flatten", ErrShapeMismatch)
	}
	if err := input.Validate(); err != nil {
		return nil, fmt.Errorf("flatten: %w: %w", ErrShapeMismatch, err)
	}
	return tensor.Shape{input.NumElements()}, nil
}

// Parameters returns nil (Flatten has no trainable parameters).
func (f *Flatten[B]) Parameters() []*Parameter[B] {
	return nil
}

// Name returns "Flatten".
func (f *Flatten[B]) Name() string {
	return "Flatten"
}
