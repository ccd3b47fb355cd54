// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"math/rand"

	"github.com/born-ml/pixelnet/internal/nn"
	"github.com/born-ml/pixelnet/internal/tensor"
)

// Module is the capability set shared by every pipeline stage.
type Module[B tensor.Backend] = nn.Module[B]

// Parameter represents a trainable parameter of a stage.
type Parameter[B tensor.Backend] = nn.Parameter[B]

// ReLUBackend is implemented by backends that provide ReLU.
type ReLUBackend = nn.ReLUBackend

// SigmoidBackend is implemented by backends that provide Sigmoid.
type SigmoidBackend = nn.SigmoidBackend

// SummaryRow describes one stage of a Sequential.
type SummaryRow = nn.SummaryRow

// Errors reported by stage and pipeline construction.
var (
	ErrShapeMismatch     = nn.ErrShapeMismatch
	ErrInvalidScale      = nn.ErrInvalidScale
	ErrEmptyPipeline     = nn.ErrEmptyPipeline
	ErrUnknownActivation = nn.ErrUnknownActivation
	ErrInvalidFeatures   = nn.ErrInvalidFeatures
)

// Activation names accepted by Dense and NewActivation.
const (
	ActivationLinear  = nn.ActivationLinear
	ActivationReLU    = nn.ActivationReLU
	ActivationSigmoid = nn.ActivationSigmoid
	ActivationSoftmax = nn.ActivationSoftmax
)

// DefaultPixelScale maps 8-bit intensities to [0, 1].
const DefaultPixelScale = nn.DefaultPixelScale

// Stages

// Rescale divides every element by a constant.
type Rescale[B tensor.Backend] = nn.Rescale[B]

// NewRescale creates a rescale stage dividing by scale.
// A scale of zero, NaN or ±Inf is rejected with ErrInvalidScale.
func NewRescale[B tensor.Backend](scale float32) (*Rescale[B], error) {
	return nn.NewRescale[B](scale)
}

// NewPixelRescale creates a rescale stage dividing by 255.
func NewPixelRescale[B tensor.Backend]() *Rescale[B] {
	return nn.NewPixelRescale[B]()
}

// Flatten collapses every non-batch dimension into one.
type Flatten[B tensor.Backend] = nn.Flatten[B]

// NewFlatten creates a flatten stage.
func NewFlatten[B tensor.Backend]() *Flatten[B] {
	return nn.NewFlatten[B]()
}

// Linear represents an affine layer y = x @ W.T + b.
type Linear[B tensor.Backend] = nn.Linear[B]

// NewLinear creates a new linear layer with Xavier initialization.
// A nil rng draws from the global source.
func NewLinear[B tensor.Backend](inFeatures, outFeatures int, backend B, rng *rand.Rand) (*Linear[B], error) {
	return nn.NewLinear(inFeatures, outFeatures, backend, rng)
}

// Dense is a linear layer followed by an optional activation.
type Dense[B tensor.Backend] = nn.Dense[B]

// NewDense creates a fully-connected stage.
//
// Example:
//
//	backend := cpu.New()
//	hidden, err := nn.NewDense(784, 128, nn.ActivationReLU, backend, nil)
func NewDense[B tensor.Backend](inFeatures, outFeatures int, activation string, backend B, rng *rand.Rand) (*Dense[B], error) {
	return nn.NewDense(inFeatures, outFeatures, activation, backend, rng)
}

// ReLU activation stage.
type ReLU[B tensor.Backend] = nn.ReLU[B]

// NewReLU creates a ReLU stage.
func NewReLU[B tensor.Backend]() *ReLU[B] {
	return nn.NewReLU[B]()
}

// Sigmoid activation stage.
type Sigmoid[B tensor.Backend] = nn.Sigmoid[B]

// NewSigmoid creates a Sigmoid stage.
func NewSigmoid[B tensor.Backend]() *Sigmoid[B] {
	return nn.NewSigmoid[B]()
}

// Softmax activation stage over the last dimension.
type Softmax[B tensor.Backend] = nn.Softmax[B]

// NewSoftmax creates a Softmax stage.
func NewSoftmax[B tensor.Backend]() *Softmax[B] {
	return nn.NewSoftmax[B]()
}

// NewActivation returns the activation stage registered under name.
func NewActivation[B tensor.Backend](name string) (Module[B], error) {
	return nn.NewActivation[B](name)
}

// Pipeline

// Sequential runs stages in order after checking their shapes once at
// assembly time.
type Sequential[B tensor.Backend] = nn.Sequential[B]

// NewSequential assembles stages into a pipeline over per-example inputs
// of inputShape.
//
// Example:
//
//	model, err := nn.NewSequential[*cpu.Backend](
//	    tensor.Shape{28, 28},
//	    nn.NewPixelRescale[*cpu.Backend](),
//	    nn.NewFlatten[*cpu.Backend](),
//	    hidden,
//	    output,
//	)
func NewSequential[B tensor.Backend](inputShape tensor.Shape, stages ...Module[B]) (*Sequential[B], error) {
	return nn.NewSequential[B](inputShape, stages...)
}

// Initializers

// Xavier returns a float32 tensor with Glorot uniform initialization.
func Xavier[B tensor.Backend](fanIn, fanOut int, shape tensor.Shape, backend B, rng *rand.Rand) *tensor.Tensor[float32, B] {
	return nn.Xavier(fanIn, fanOut, shape, backend, rng)
}
