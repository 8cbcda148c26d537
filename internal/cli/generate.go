package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/example/reaper-luadoc/internal/generator"
	"github.com/example/reaper-luadoc/internal/validator"
)

// lookupEnv is replaced in tests
var lookupEnv = os.LookupEnv

func newGenerateCommand(verbose *bool) *cobra.Command {
	var config GenerateConfig

	cmd := &cobra.Command{
		Use:   "generate [file-or-url]",
		Short: "Generate a LuaDoc definition file from the REAPER API documentation",
		Example: `  reaper-luadoc generate reascripthelp.html
  reaper-luadoc generate https://www.reaper.fm/sdk/reascript/reascripthelp.html -o types/reaper.lua`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				config.Input = args[0]
			}
			config.flagChanged = cmd.Flags().Changed
			logger := newLogger(cmd.ErrOrStderr(), *verbose)
			return GenerateLuaDoc(cmd.Context(), &config, logger, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	bindGenerateFlags(cmd.Flags(), &config)
	return cmd
}

func bindGenerateFlags(flags *pflag.FlagSet, config *GenerateConfig) {
	flags.StringVarP(&config.OutputPath, "output", "o", defaultOutputPath, "Path to output file or '-' for stdout")
	flags.StringVar(&config.Version, "version", "", "REAPER version for the header (default: detected from the document)")
	flags.BoolVar(&config.NoTimestamp, "no-timestamp", false, "Omit the generation time from the header")
	flags.DurationVar(&config.Timeout, "timeout", defaultTimeout, "Timeout for fetching a URL, 0 disables it")
	flags.StringVar(&config.ConfigPath, "config", "", "Path to .reaper-luadoc.yml config file")
}

// GenerateConfig holds configuration for LuaDoc generation.
type GenerateConfig struct {
	Input       string        `validate:"required"`
	OutputPath  string        `validate:"required"`
	Version     string        `validate:"omitempty,printascii"`
	NoTimestamp bool
	Timeout     time.Duration `validate:"min=0"`
	ConfigPath  string

	// flagChanged reports flags given on the command line
	flagChanged func(name string) bool
}

// explicit reports whether a setting came from the command line. Without one,
// a value that differs from the flag default counts as explicit.
func (c *GenerateConfig) explicit(flag string, differsFromDefault bool) bool {
	if c.flagChanged != nil {
		return c.flagChanged(flag)
	}
	return differsFromDefault
}

// Validate checks the merged configuration
func (c *GenerateConfig) Validate() error {
	return validateStruct(c)
}

// GenerateLuaDoc reads the documentation, renders it and writes the result.
// Progress goes to stderr so that "-o -" keeps stdout clean.
func GenerateLuaDoc(ctx context.Context, config *GenerateConfig, logger *slog.Logger, stdout, stderr io.Writer) error {
	return generateWith(ctx, config, logger, stdout, stderr, defaultHTTPClient, defaultFileSystem)
}

func generateWith(ctx context.Context, config *GenerateConfig, logger *slog.Logger, stdout, stderr io.Writer, client HTTPClient, fs FileSystem) error {
	if logger == nil {
		logger = slog.Default()
	}
	if err := loadConfigFile(config); err != nil {
		return err
	}
	applyEnvironment(config)
	if err := config.Validate(); err != nil {
		return err
	}

	extraction, err := extractSource(ctx, config.Input, config.Timeout, logger, client)
	if err != nil {
		return err
	}

	opts := generator.DefaultRenderOptions()
	opts.Version = config.Version
	if opts.Version == "" {
		opts.Version = extraction.Version
	}
	opts.IncludeTimestamp = !config.NoTimestamp

	conv := generator.DefaultConventions()
	luadoc := generator.NewRenderer(conv).Render(extraction.Functions.Functions(), opts)
	if _, err := validator.Validate(strings.NewReader(luadoc), conv); err != nil {
		return fmt.Errorf("generated output failed validation: %w", err)
	}
	if err := writeOutputWithFS(config.OutputPath, luadoc, stdout, fs); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	reportGeneration(stderr, config.OutputPath, extraction)
	return nil
}

func reportGeneration(w io.Writer, outputPath string, extraction *generator.Extraction) {
	target := outputPath
	if target == "-" {
		target = "stdout"
	}
	painter(w, color.FgGreen).Fprintf(w, "LuaDoc generated successfully and saved to %s (%s)\n", target, extraction)
	if len(extraction.Skipped) > 0 {
		painter(w, color.FgYellow).Fprintf(w, "%d function blocks could not be parsed, rerun with --verbose for details\n", len(extraction.Skipped))
	}
}

func loadConfigFile(config *GenerateConfig) error {
	if config.ConfigPath == "" {
		return nil
	}

	cfg, err := readConfigFile(config.ConfigPath)
	if err != nil {
		return err
	}
	file := cfg.LuaDoc

	// Apply config values if flags weren't set
	if config.Input == "" {
		config.Input = file.Input
	}
	if !config.explicit("output", config.OutputPath != defaultOutputPath) && file.Output != "" {
		config.OutputPath = file.Output
	}
	if !config.explicit("version", config.Version != "") && file.Version != "" {
		config.Version = file.Version
	}
	if !config.explicit("no-timestamp", config.NoTimestamp) && file.Timestamp != nil {
		config.NoTimestamp = !*file.Timestamp
	}
	if !config.explicit("timeout", config.Timeout != defaultTimeout) && file.Timeout != 0 {
		config.Timeout = file.Timeout
	}

	return nil
}

// applyEnvironment drops the timestamp on CI so that regenerated files diff cleanly
func applyEnvironment(config *GenerateConfig) {
	value, ok := lookupEnv("CI")
	if !ok || value == "" {
		return
	}
	if enabled, err := strconv.ParseBool(value); err == nil && !enabled {
		return
	}
	config.NoTimestamp = true
}
