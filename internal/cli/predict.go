package cli

import (
	"fmt"
	"os"

	"github.com/born-ml/pixelnet/internal/backend/cpu"
	"github.com/born-ml/pixelnet/internal/model"
	"github.com/born-ml/pixelnet/internal/tensor"
	"github.com/spf13/cobra"
)

// NewPredictCommand creates the predict command.
//
// The image is either a constant fill value or a raw file of rows*cols
// unsigned bytes in row-major order.
func NewPredictCommand() *cobra.Command {
	var (
		fill  int
		input string
	)

	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Run one image through the model and print per-class scores",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := configFrom(cmd)
			backend := cpu.NewWithWorkers(cfg.Workers)
			pipeline, err := buildPipeline(cfg, backend)
			if err != nil {
				return err
			}

			shape := tensor.Shape{cfg.Model.Rows, cfg.Model.Cols}
			pixels, err := loadPixels(backend, shape, input, fill)
			if err != nil {
				return err
			}

			pred, err := model.Predict(pipeline, pixels)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			for class, score := range pred.Scores[0] {
				_, _ = fmt.Fprintf(w, "class %d: %.6f\n", class, score)
			}
			_, _ = fmt.Fprintf(w, "predicted: %d\n", pred.Classes[0])
			return nil
		},
	}

	cmd.Flags().IntVar(&fill, "fill", 0, "Fill every pixel with this value (0-255)")
	cmd.Flags().StringVarP(&input, "input", "i", "", "Raw image file (rows*cols bytes)")
	cmd.MarkFlagsMutuallyExclusive("fill", "input")

	return cmd
}

func loadPixels(backend *cpu.CPUBackend, shape tensor.Shape, input string, fill int) (*tensor.Tensor[uint8, *cpu.CPUBackend], error) {
	if input == "" {
		if fill < 0 || fill > 255 {
			return nil, fmt.Errorf("fill value %d out of range [0, 255]", fill)
		}
		return tensor.Full[uint8](shape, uint8(fill), backend), nil //nolint:gosec // range checked above
	}

	data, err := os.ReadFile(input)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	if len(data) != shape.NumElements() {
		return nil, fmt.Errorf("image %s has %d bytes, want %d for %v",
			input, len(data), shape.NumElements(), shape)
	}
	return tensor.FromSlice(data, shape, backend)
}
