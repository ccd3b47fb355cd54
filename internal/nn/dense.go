package nn

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/born-ml/pixelnet/internal/tensor"
)

// Dense is a fully connected layer followed by an optional activation,
// i.e. activation(x @ W.T + b).
//
// Example:
//
//	hidden, err := nn.NewDense(784, 128, nn.ActivationReLU, backend, rng)
type Dense[B tensor.Backend] struct {
	linear         *Linear[B]
	activation     Module[B] // nil for a linear output
	activationName string
}

// NewDense creates a Dense stage. activation is one of the Activation*
// names; "" or "linear" means no activation.
func NewDense[B tensor.Backend](inFeatures, outFeatures int, activation string, backend B, rng *rand.Rand) (*Dense[B], error) {
	act, err := NewActivation[B](activation)
	if err != nil {
		return nil, fmt.Errorf("dense: %w", err)
	}

	linear, err := NewLinear(inFeatures, outFeatures, backend, rng)
	if err != nil {
		return nil, fmt.Errorf("dense: %w", err)
	}

	name := ActivationLinear
	if act != nil {
		name = strings.ToLower(activation)
	}

	return &Dense[B]{
		linear:         linear,
		activation:     act,
		activationName: name,
	}, nil
}

// MustDense is like NewDense but panics on error.
func MustDense[B tensor.Backend](inFeatures, outFeatures int, activation string, backend B, rng *rand.Rand) *Dense[B] {
	d, err := NewDense(inFeatures, outFeatures, activation, backend, rng)
	if err != nil {
		panic(err)
	}
	return d
}

// Forward computes activation(linear(input)).
func (d *Dense[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	out := d.linear.Forward(input)
	if d.activation != nil {
		out = d.activation.Forward(out)
	}
	return out
}

// OutputShape delegates to the underlying Linear layer.
func (d *Dense[B]) OutputShape(input tensor.Shape) (tensor.Shape, error) {
	out, err := d.linear.OutputShape(input)
	if err != nil {
		return nil, fmt.Errorf("dense: %w", err)
	}
	return out, nil
}

// Parameters returns the Linear layer's [weight, bias].
func (d *Dense[B]) Parameters() []*Parameter[B] {
	return d.linear.Parameters()
}

// Name returns "Dense".
func (d *Dense[B]) Name() string {
	return "Dense"
}

// Linear returns the underlying affine layer.
func (d *Dense[B]) Linear() *Linear[B] {
	return d.linear
}

// Activation returns the activation name, "linear" when there is none.
func (d *Dense[B]) Activation() string {
	return d.activationName
}
