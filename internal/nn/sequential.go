package nn

import (
	"fmt"
	"log/slog"

	"github.com/born-ml/pixelnet/internal/tensor"
)

// Sequential is an ordered, immutable chain of stages.
//
// Each stage's output becomes the next stage's input. Shapes are checked
// once, when the Sequential is built: NewSequential threads the declared
// input shape through every stage's OutputShape and refuses to build a
// pipeline whose adjacent stages disagree. After construction the stage
// list cannot change; parameter values inside stages may.
//
// Example:
//
//	model, err := nn.NewSequential[Backend](tensor.Shape{28, 28},
//	    nn.NewPixelRescale[Backend](),
//	    nn.NewFlatten[Backend](),
//	    hidden,
//	    output,
//	)
//	scores, err := model.Apply(pixels) // [batch, 10]
type Sequential[B tensor.Backend] struct {
	inputShape tensor.Shape
	stages     []Module[B]
	shapes     []tensor.Shape // shapes[i] is the output shape of stages[i]
}

// SummaryRow describes one stage of a Sequential.
type SummaryRow struct {
	Index       int
	Name        string
	OutputShape tensor.Shape
	Params      int
}

// NewSequential assembles stages into a pipeline consuming per-example
// tensors of inputShape.
//
// Returns an error wrapping ErrEmptyPipeline if no stages are given, or
// ErrShapeMismatch naming the first stage that cannot consume its
// predecessor's output. No data is processed.
func NewSequential[B tensor.Backend](inputShape tensor.Shape, stages ...Module[B]) (*Sequential[B], error) {
	if len(stages) == 0 {
		return nil, ErrEmptyPipeline
	}
	if err := inputShape.Validate(); err != nil {
		return nil, fmt.Errorf("sequential: input %w: %w", ErrShapeMismatch, err)
	}

	shapes := make([]tensor.Shape, len(stages))
	current := inputShape.Clone()
	for i, stage := range stages {
		if stage == nil {
			return nil, fmt.Errorf("sequential: stage %d is nil", i)
		}
		out, err := stage.OutputShape(current)
		if err != nil {
			return nil, fmt.Errorf("sequential: stage %d (%s) cannot consume %v: %w", i, stage.Name(), current, err)
		}
		slog.Debug("pipeline stage", "index", i, "stage", stage.Name(), "input", current.String(), "output", out.String())
		shapes[i] = out
		current = out
	}

	return &Sequential[B]{
		inputShape: inputShape.Clone(),
		stages:     append([]Module[B](nil), stages...),
		shapes:     shapes,
	}, nil
}

// Apply runs input through every stage in order and returns the result.
//
// input must have shape [batch, inputShape...]; a tensor of exactly
// inputShape is treated as a batch of one. Any other shape returns an
// error wrapping ErrShapeMismatch before any stage runs.
func (s *Sequential[B]) Apply(input *tensor.Tensor[float32, B]) (*tensor.Tensor[float32, B], error) {
	batched, err := s.batch(input)
	if err != nil {
		return nil, err
	}

	output := batched
	for _, stage := range s.stages {
		output = stage.Forward(output)
	}
	return output, nil
}

// batch checks input against the declared input shape and prepends a
// batch dimension of 1 when it is missing.
func (s *Sequential[B]) batch(input *tensor.Tensor[float32, B]) (*tensor.Tensor[float32, B], error) {
	shape := input.Shape()
	switch {
	case len(shape) == len(s.inputShape)+1 && shape[1:].Equal(s.inputShape):
		return input, nil
	case shape.Equal(s.inputShape):
		return input.Reshape(s.inputShape.WithBatch(1)...), nil
	default:
		return nil, fmt.Errorf("sequential: %w: expected input %v with a leading batch dimension, got %v",
			ErrShapeMismatch, s.inputShape, shape)
	}
}

// Forward implements Module. It panics where Apply would return an error,
// which lets a Sequential be nested inside another Sequential.
func (s *Sequential[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	output, err := s.Apply(input)
	if err != nil {
		panic(err)
	}
	return output
}

// OutputShape implements Module: it accepts only the declared input shape.
func (s *Sequential[B]) OutputShape(input tensor.Shape) (tensor.Shape, error) {
	if !input.Equal(s.inputShape) {
		return nil, fmt.Errorf("sequential: %w: expected %v, got %v", ErrShapeMismatch, s.inputShape, input)
	}
	return s.FinalShape(), nil
}

// FinalShape returns the per-example output shape of the last stage.
func (s *Sequential[B]) FinalShape() tensor.Shape {
	return s.shapes[len(s.shapes)-1].Clone()
}

// InputShape returns the declared per-example input shape.
func (s *Sequential[B]) InputShape() tensor.Shape {
	return s.inputShape.Clone()
}

// Parameters returns all trainable parameters from all stages, in stage order.
func (s *Sequential[B]) Parameters() []*Parameter[B] {
	var params []*Parameter[B]
	for _, stage := range s.stages {
		params = append(params, stage.Parameters()...)
	}
	return params
}

// Name returns "Sequential".
func (s *Sequential[B]) Name() string {
	return "Sequential"
}

// Len returns the number of stages in the sequence.
func (s *Sequential[B]) Len() int {
	return len(s.stages)
}

// Stage returns the stage at the given index.
//
// Panics if index is out of bounds.
func (s *Sequential[B]) Stage(index int) Module[B] {
	if index < 0 || index >= len(s.stages) {
		panic("Sequential.Stage: index out of bounds")
	}
	return s.stages[index]
}

// Summary returns one row per stage with its output shape and parameter count.
func (s *Sequential[B]) Summary() []SummaryRow {
	rows := make([]SummaryRow, len(s.stages))
	for i, stage := range s.stages {
		rows[i] = SummaryRow{
			Index:       i,
			Name:        stage.Name(),
			OutputShape: s.shapes[i].Clone(),
			Params:      CountParameters(stage.Parameters()),
		}
	}
	return rows
}
