package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/anfive/servizio-cli/internal/batch"
	"github.com/anfive/servizio-cli/internal/preset"
	"github.com/spf13/cobra"
)

type processFlags struct {
	presetName  string
	configPath  string
	delimiter   string
	headers     bool
	column      int
	placeholder string
	out         string
	suffix      string
}

func newProcessCmd() *cobra.Command {
	f := &processFlags{}

	cmd := &cobra.Command{
		Use:   "process <input>...",
		Short: "Append decoded Style Code fields to every row of delimited files",
		Long: `Reads each input file, decodes the Style Code column of every row and
writes the row with ten extra columns: Score, BAS, MOV, DIN, COM, SAPD,
GCC, DIF, SOG and PEN. Rows whose code does not decode get placeholders.

Inputs may be glob patterns such as "results/**/*.csv".`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := resolveBatchOptions(cmd, f)
			if err != nil {
				return err
			}
			return runProcess(cmd, args, f, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.presetName, "preset", "default", "Built-in preset name (see 'servizio presets')")
	flags.StringVar(&f.configPath, "config", "", "Preset YAML file (overrides --preset)")
	flags.StringVar(&f.delimiter, "delimiter", ",", `Field delimiter (single character, or \t)`)
	flags.BoolVar(&f.headers, "headers", false, "First row holds column names")
	flags.IntVar(&f.column, "column", 0, "One-based column holding the code (0 = last column)")
	flags.StringVar(&f.placeholder, "placeholder", batch.DefaultPlaceholder, "Value written for each field of an invalid code")
	flags.StringVar(&f.out, "out", "", "Output file path (single input only)")
	flags.StringVar(&f.suffix, "suffix", ".scored", "Suffix inserted before the extension of derived output paths")

	return cmd
}

// resolveBatchOptions layers explicitly set flags over the selected preset.
func resolveBatchOptions(cmd *cobra.Command, f *processFlags) (batch.Options, error) {
	var (
		p   *preset.Preset
		err error
	)
	if f.configPath != "" {
		p, err = preset.LoadFile(f.configPath)
	} else {
		p, err = preset.LoadBuiltin(f.presetName)
	}
	if err != nil {
		return batch.Options{}, exitError(exitIO, "failed to load preset: %v", err)
	}

	flags := cmd.Flags()
	if flags.Changed("delimiter") {
		p.Delimiter = f.delimiter
	}
	if flags.Changed("headers") {
		p.HasHeaders = f.headers
	}
	if flags.Changed("column") {
		p.Column = f.column
	}
	if flags.Changed("placeholder") {
		p.Placeholder = f.placeholder
	}

	opts, err := p.Options()
	if err != nil {
		return batch.Options{}, exitError(exitUsage, "invalid options: %v", err)
	}
	slog.Debug("batch options resolved", "preset", p.Name, "delimiter", string(opts.Delimiter),
		"headers", opts.HasHeaders, "column", p.Column)
	return opts, nil
}

func runProcess(cmd *cobra.Command, args []string, f *processFlags, opts batch.Options) error {
	inputs, err := batch.ExpandInputs(args)
	if err != nil {
		return exitError(exitIO, "%v", err)
	}
	if f.out != "" && len(inputs) != 1 {
		return exitError(exitUsage, "--out requires exactly one input, got %d", len(inputs))
	}

	logger := slog.Default()
	opts.Logger = logger

	var total batch.Stats
	for _, in := range inputs {
		out := f.out
		if out == "" {
			out = batch.OutputPath(in, f.suffix)
		}
		logger.Info("processing file", "input", in, "output", out)

		stats, err := batch.ProcessFile(cmd.Context(), in, out, opts)
		if err != nil {
			if errors.Is(err, batch.ErrSameFile) {
				return exitError(exitUsage, "%v", err)
			}
			return exitError(exitIO, "failed to process %s: %v", in, err)
		}
		logger.Info("processed file", "input", in, "rows", stats.Rows,
			"decoded", stats.Decoded, "invalid", stats.Invalid)

		total.Rows += stats.Rows
		total.Decoded += stats.Decoded
		total.Invalid += stats.Invalid
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%d file(s), %d row(s): %d decoded, %d invalid\n",
		len(inputs), total.Rows, total.Decoded, total.Invalid)
	return nil
}

func newPresetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List built-in batch presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			names, err := preset.List()
			if err != nil {
				return err
			}
			for _, name := range names {
				p, err := preset.LoadBuiltin(name)
				if err != nil {
					return exitError(exitIO, "failed to load preset: %v", err)
				}
				fmt.Fprint(cmd.OutOrStdout(), preset.Format(p))
			}
			return nil
		},
	}
}
