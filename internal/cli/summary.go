package cli

import (
	"fmt"
	"strconv"

	"github.com/born-ml/pixelnet/internal/backend/cpu"
	"github.com/born-ml/pixelnet/internal/nn"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// NewSummaryCommand creates the summary command.
func NewSummaryCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Print the model's stages, output shapes and parameter counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := configFrom(cmd)
			pipeline, err := buildPipeline(cfg, cpu.NewWithWorkers(cfg.Workers))
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(w, "Input: %v\n\n", pipeline.InputShape())

			var data [][]string
			for _, row := range pipeline.Summary() {
				data = append(data, []string{
					strconv.Itoa(row.Index),
					row.Name,
					row.OutputShape.String(),
					strconv.Itoa(row.Params),
				})
			}

			table := tablewriter.NewWriter(w)
			table.SetHeader([]string{"#", "STAGE", "OUTPUT SHAPE", "PARAMS"})
			table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
			table.SetAlignment(tablewriter.ALIGN_LEFT)
			table.SetAutoFormatHeaders(false)
			table.SetHeaderLine(false)
			table.SetBorder(false)
			table.SetNoWhiteSpace(true)
			table.SetTablePadding("    ")
			table.AppendBulk(data)
			table.Render()

			_, _ = fmt.Fprintf(w, "\nTotal params: %d\n", nn.CountParameters(pipeline.Parameters()))
			return nil
		},
	}
}
