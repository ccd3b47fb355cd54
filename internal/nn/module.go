// Package nn implements the pipeline stages and the sequential composer.
//
// This package provides building blocks for image classifier pipelines:
//   - Module interface: the single capability set every stage implements
//   - Rescale: stateless elementwise division (pixel normalization)
//   - Flatten: collapses per-example dimensions into one feature axis
//   - Linear / Dense: fully connected layers with optional activation
//   - Activations: ReLU, Sigmoid, Softmax
//   - Sequential: ordered, shape-checked composition of stages
//
// Shapes passed to OutputShape never include the batch dimension; tensors
// passed to Forward always do.
package nn

import (
	"github.com/born-ml/pixelnet/internal/tensor"
)

// Module is the base interface for all pipeline stages.
//
// Modules can be composed to build complex architectures:
//
//	model, err := nn.NewSequential[Backend](tensor.Shape{28, 28},
//	    nn.NewPixelRescale[Backend](),
//	    nn.NewFlatten[Backend](),
//	    nn.MustDense(784, 128, "relu", backend, rng),
//	    nn.MustDense(128, 10, "sigmoid", backend, rng),
//	)
//
// Type parameter B must satisfy the tensor.Backend interface.
type Module[B tensor.Backend] interface {
	// Forward computes the output of the module given a batched input tensor.
	//
	// Forward panics on an input that violates the module's declared shape;
	// Sequential validates shapes before any module runs.
	Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B]

	// OutputShape returns the per-example output shape for a per-example
	// input shape, or an error wrapping ErrShapeMismatch if the module
	// cannot consume that shape.
	OutputShape(input tensor.Shape) (tensor.Shape, error)

	// Parameters returns all trainable parameters of this module.
	// Returns nil for modules without trainable parameters.
	Parameters() []*Parameter[B]

	// Name returns the module kind, e.g. "Dense".
	Name() string
}
