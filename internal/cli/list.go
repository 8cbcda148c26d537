package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/example/reaper-luadoc/internal/generator"
)

func newListCommand(verbose *bool) *cobra.Command {
	var config ListConfig

	cmd := &cobra.Command{
		Use:   "list <file-or-url>",
		Short: "List the functions found in the REAPER API documentation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			config.Input = args[0]
			logger := newLogger(cmd.ErrOrStderr(), *verbose)
			return ListFunctions(cmd.Context(), &config, logger, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&config.Format, "format", "f", defaultFormat, "Output format: table, json or yaml")
	cmd.Flags().DurationVar(&config.Timeout, "timeout", defaultTimeout, "Timeout for fetching a URL, 0 disables it")

	return cmd
}

// ListConfig holds configuration for listing functions.
type ListConfig struct {
	Input   string        `validate:"required"`
	Format  string        `validate:"oneof=table json yaml"`
	Timeout time.Duration `validate:"min=0"`
}

// ListFunctions prints every extracted function in the requested format.
func ListFunctions(ctx context.Context, config *ListConfig, logger *slog.Logger, stdout io.Writer) error {
	return listWith(ctx, config, logger, stdout, defaultHTTPClient)
}

func listWith(ctx context.Context, config *ListConfig, logger *slog.Logger, stdout io.Writer, client HTTPClient) error {
	if logger == nil {
		logger = slog.Default()
	}
	if err := validateStruct(config); err != nil {
		return err
	}

	extraction, err := extractSource(ctx, config.Input, config.Timeout, logger, client)
	if err != nil {
		return err
	}
	return writeFunctions(stdout, config.Format, extraction.Functions.Functions())
}

func writeFunctions(w io.Writer, format string, functions []generator.FunctionDescriptor) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(functions)
	case "yaml":
		data, err := yaml.Marshal(functions)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	case "table":
		_, err := fmt.Fprintln(w, renderTable(functions, terminalWidth(w)))
		return err
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

func renderTable(functions []generator.FunctionDescriptor, width int) string {
	tbl := table.NewWriter()
	tbl.AppendHeader(table.Row{"Name", "Parameters", "Returns", "Description"})

	for _, fn := range functions {
		tbl.AppendRow(table.Row{
			fn.Name,
			formatArguments(fn.Parameters, true),
			formatArguments(fn.Returns, false),
			fn.Description,
		})
	}

	// long descriptions wrap at a third of the terminal
	descWidth := width / 3
	if descWidth < 20 {
		descWidth = 20
	}
	tbl.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Description", WidthMax: descWidth, WidthMaxEnforcer: text.WrapSoft},
	})
	return tbl.Render()
}

func formatArguments(args []generator.FunctionArgument, named bool) string {
	parts := make([]string, len(args))
	for i, arg := range args {
		typ := arg.Type
		if !arg.Required {
			typ += "?"
		}
		if named {
			parts[i] = typ + " " + arg.Name
		} else {
			parts[i] = typ
		}
	}
	return strings.Join(parts, ", ")
}
