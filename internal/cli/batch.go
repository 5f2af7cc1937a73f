package cli

import (
	"github.com/spf13/cobra"

	"safeCast/internal/modules/coercion/domain"
	"safeCast/internal/shared/normalization"
)

type batchOutput struct {
	Results []domain.Result `json:"results"`
	Failed  int             `json:"failed"`
}

func batchCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "batch <file>",
		Short: "Run a JSON batch of coercions",
		Long:  "The file holds {\"items\": [{\"target\": ..., \"value\": ...}]}; \"-\" reads stdin.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			var batch domain.BatchCommand
			if err := normalization.DecodeJSONInto(data, &batch); err != nil {
				return err
			}

			results, err := opts.useCase().ExecuteBatch(cmd.Context(), batch.Items)
			if err != nil {
				return err
			}
			out := batchOutput{Results: results}
			for _, r := range results {
				if !r.Succeeded() {
					out.Failed++
				}
			}
			return writeJSON(cmd.OutOrStdout(), out)
		},
	}
}
