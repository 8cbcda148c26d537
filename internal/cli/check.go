package cli

import (
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/reaper-luadoc/internal/validator"
)

func newCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check <file.lua>",
		Short: "Check that a generated LuaDoc file is consistent",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return CheckLuaDoc(args[0], cmd.OutOrStdout())
		},
	}
}

// CheckLuaDoc validates a LuaDoc file and prints what it contains.
func CheckLuaDoc(path string, stdout io.Writer) error {
	summary, err := validator.ValidateFile(path)
	if err != nil {
		return err
	}

	ok := painter(stdout, color.FgGreen)
	ok.Fprintf(stdout, "✓ %d classes declared\n", summary.Classes)
	ok.Fprintf(stdout, "✓ %d functions and %d ReaperArray methods annotated\n", summary.Functions, summary.Methods)
	ok.Fprintf(stdout, "✓ %s is valid\n", path)
	return nil
}
