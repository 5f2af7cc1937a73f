package cli

import (
	"github.com/spf13/cobra"

	"safeCast/internal/modules/coercion/domain"
	"safeCast/internal/shared/normalization"
)

func coerceCmd(opts *options) *cobra.Command {
	var asJSON bool

	c := &cobra.Command{
		Use:   "coerce <target> <value>",
		Short: "Coerce a single value to a target type",
		Long: "Coerce a single value. The value is taken as a string unless --json is set,\n" +
			"in which case it is decoded as a JSON document (5 is an integer, 5.0 a float).",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			value := domain.StringValue(args[1])
			if asJSON {
				decoded, err := normalization.DecodeJSON([]byte(args[1]))
				if err != nil {
					return err
				}
				value = decoded
			}

			result, err := opts.useCase().Execute(cmd.Context(), usecaseInput(args[0], value))
			if werr := writeJSON(cmd.OutOrStdout(), result); werr != nil {
				return werr
			}
			return err
		},
	}

	c.Flags().BoolVar(&asJSON, "json", false, "decode <value> as JSON")
	return c
}
