package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"safeCast/internal/modules/coercion/application/usecase"
	"safeCast/internal/modules/coercion/domain"
	"safeCast/internal/shared/normalization"
)

const (
	formatJSON = "json"
	formatYAML = "yaml"
)

func classifyCmd(opts *options) *cobra.Command {
	var format string

	c := &cobra.Command{
		Use:   "classify [file]",
		Short: "Classify a JSON or YAML document into a typed collection",
		Long:  "Classify reads the document from file, or from stdin when file is omitted or \"-\".",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			data, err := readInput(cmd, path)
			if err != nil {
				return err
			}

			value, err := decodeDocument(data, resolveFormat(format, path))
			if err != nil {
				return err
			}

			result, err := opts.useCase().Execute(cmd.Context(), usecaseInput(domain.TargetCollection.String(), value))
			if werr := writeJSON(cmd.OutOrStdout(), result); werr != nil {
				return werr
			}
			return err
		},
	}

	c.Flags().StringVarP(&format, "format", "f", "", "input format: json or yaml (default from extension, else json)")
	return c
}

func usecaseInput(target string, value domain.Value) usecase.CoerceInput {
	return usecase.CoerceInput{Target: target, Value: value}
}

func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

func resolveFormat(flag, path string) string {
	if f := strings.ToLower(strings.TrimSpace(flag)); f != "" {
		return f
	}
	if hasYAMLExt(path) {
		return formatYAML
	}
	return formatJSON
}

func hasYAMLExt(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

func decodeDocument(data []byte, format string) (domain.Value, error) {
	switch format {
	case formatJSON:
		return normalization.DecodeJSON(data)
	case formatYAML, "yml":
		return normalization.DecodeYAML(data)
	default:
		return domain.Value{}, fmt.Errorf("unsupported format %q", format)
	}
}
