package nn

import "errors"

var (
	// ErrShapeMismatch is returned when a stage cannot consume the shape
	// produced by its predecessor, or when an input does not match the
	// pipeline's declared input shape.
	ErrShapeMismatch = errors.New("shape mismatch")

	// ErrInvalidScale is returned for a rescale constant that is zero or not finite.
	ErrInvalidScale = errors.New("invalid scale")

	// ErrEmptyPipeline is returned when a Sequential is built with no stages.
	ErrEmptyPipeline = errors.New("pipeline has no stages")

	// ErrUnknownActivation is returned for an unrecognized activation name.
	ErrUnknownActivation = errors.New("unknown activation")

	// ErrInvalidFeatures is returned for a non-positive layer width.
	ErrInvalidFeatures = errors.New("invalid feature count")
)
