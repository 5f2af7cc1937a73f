package cli

import (
	"encoding/json"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"safeCast/internal/modules/coercion/application/usecase"
	"safeCast/internal/shared/logging"
)

func Execute() {
	cmd := NewRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

type options struct {
	logLevel    string
	maxItems    int
	concurrency int
}

func (o *options) useCase() *usecase.CoerceUseCase {
	return usecase.NewCoerceUseCase(o.maxItems, o.concurrency)
}

func NewRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:          "castctl",
		Short:        "castctl: strict value coercion from the command line",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			slog.SetDefault(logging.New(cmd.ErrOrStderr(), logging.Config{Level: opts.logLevel}))
		},
	}

	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	cmd.PersistentFlags().IntVar(&opts.maxItems, "max-items", 1000, "largest accepted batch")
	cmd.PersistentFlags().IntVar(&opts.concurrency, "concurrency", 8, "batch worker limit")

	cmd.AddCommand(coerceCmd(opts))
	cmd.AddCommand(classifyCmd(opts))
	cmd.AddCommand(batchCmd(opts))
	return cmd
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
