package nn

import (
	"fmt"
	"strings"

	"github.com/born-ml/pixelnet/internal/tensor"
)

// ReLUBackend is an interface for backends that support ReLU activation.
type ReLUBackend interface {
	ReLU(*tensor.RawTensor) *tensor.RawTensor
}

// SigmoidBackend is an interface for backends that support Sigmoid activation.
type SigmoidBackend interface {
	Sigmoid(*tensor.RawTensor) *tensor.RawTensor
}

// Activation names accepted by NewActivation and NewDense.
const (
	ActivationLinear  = "linear"
	ActivationReLU    = "relu"
	ActivationSigmoid = "sigmoid"
	ActivationSoftmax = "softmax"
)

// NewActivation returns the activation module registered under name.
//
// "linear" and "" return nil (no activation). Names are case-insensitive.
func NewActivation[B tensor.Backend](name string) (Module[B], error) {
	switch strings.ToLower(name) {
	case "", ActivationLinear:
		return nil, nil //nolint:nilnil // no activation is a valid result
	case ActivationReLU:
		return NewReLU[B](), nil
	case ActivationSigmoid:
		return NewSigmoid[B](), nil
	case ActivationSoftmax:
		return NewSoftmax[B](), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownActivation, name)
	}
}

// ValidateActivation reports whether name is accepted by NewActivation.
func ValidateActivation(name string) error {
	switch strings.ToLower(name) {
	case "", ActivationLinear, ActivationReLU, ActivationSigmoid, ActivationSoftmax:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownActivation, name)
	}
}

// ReLU is a Rectified Linear Unit activation module.
//
// Applies the element-wise function: f(x) = max(0, x)
type ReLU[B tensor.Backend] struct{}

// NewReLU creates a new ReLU activation module.
func NewReLU[B tensor.Backend]() *ReLU[B] {
	return &ReLU[B]{}
}

// Forward applies ReLU activation: f(x) = max(0, x).
func (r *ReLU[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	backend := input.Backend()

	if reluBackend, ok := any(backend).(ReLUBackend); ok {
		return tensor.New[float32, B](reluBackend.ReLU(input.Raw()), backend)
	}

	panic(fmt.Sprintf("ReLU: backend %s does not implement ReLU", backend.Name()))
}

// OutputShape returns the input shape unchanged.
func (r *ReLU[B]) OutputShape(input tensor.Shape) (tensor.Shape, error) {
	return input.Clone(), nil
}

// Parameters returns nil (ReLU has no trainable parameters).
func (r *ReLU[B]) Parameters() []*Parameter[B] {
	return nil
}

// Name returns "ReLU".
func (r *ReLU[B]) Name() string {
	return "ReLU"
}

// Sigmoid is a sigmoid activation module.
//
// Applies the element-wise function: σ(x) = 1 / (1 + exp(-x))
type Sigmoid[B tensor.Backend] struct{}

// NewSigmoid creates a new Sigmoid activation module.
func NewSigmoid[B tensor.Backend]() *Sigmoid[B] {
	return &Sigmoid[B]{}
}

// Forward applies Sigmoid activation: σ(x) = 1 / (1 + exp(-x)).
func (s *Sigmoid[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	backend := input.Backend()

	if sigmoidBackend, ok := any(backend).(SigmoidBackend); ok {
		return tensor.New[float32, B](sigmoidBackend.Sigmoid(input.Raw()), backend)
	}

	panic(fmt.Sprintf("Sigmoid: backend %s does not implement Sigmoid", backend.Name()))
}

// OutputShape returns the input shape unchanged.
func (s *Sigmoid[B]) OutputShape(input tensor.Shape) (tensor.Shape, error) {
	return input.Clone(), nil
}

// Parameters returns nil (Sigmoid has no trainable parameters).
func (s *Sigmoid[B]) Parameters() []*Parameter[B] {
	return nil
}

// Name returns "Sigmoid".
func (s *Sigmoid[B]) Name() string {
	return "Sigmoid"
}

// Softmax normalizes the last dimension into a probability distribution.
type Softmax[B tensor.Backend] struct{}

// NewSoftmax creates a new Softmax activation module.
func NewSoftmax[B tensor.Backend]() *Softmax[B] {
	return &Softmax[B]{}
}

// Forward applies softmax over the last dimension.
func (s *Softmax[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	return input.Softmax(-1)
}

// OutputShape returns the input shape unchanged.
func (s *Softmax[B]) OutputShape(input tensor.Shape) (tensor.Shape, error) {
	if len(input) == 0 {
		return nil, fmt.Errorf("softmax: %w: scalar input", ErrShapeMismatch)
	}
	return input.Clone(), nil
}

// Parameters returns nil (Softmax has no trainable parameters).
func (s *Softmax[B]) Parameters() []*Parameter[B] {
	return nil
}

// Name returns "Softmax".
func (s *Softmax[B]) Name() string {
	return "Softmax"
}
