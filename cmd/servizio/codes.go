package main

import (
	"fmt"
	"strings"

	"github.com/anfive/servizio-cli/internal/render"
	"github.com/anfive/servizio-cli/internal/stylecode"
	"github.com/spf13/cobra"
)

const invalidCodeMsg = "Invalid style code."

type decodeFlags struct {
	format string
	value  string
}

func newDecodeCmd() *cobra.Command {
	f := &decodeFlags{}

	cmd := &cobra.Command{
		Use:   "decode <code>",
		Short: "Decode a Style Code and print its fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDecode(cmd, args[0], f)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.format, "format", "text", "Output format: text, raw, json or md")
	flags.StringVar(&f.value, "value", "", "Print a single field (score, bas, mov, din, com, sapd, gcc, dif, sog, pen)")

	return cmd
}

func runDecode(cmd *cobra.Command, code string, f *decodeFlags) error {
	out := cmd.OutOrStdout()

	var field stylecode.Field
	if f.value != "" {
		var err error
		if field, err = stylecode.ParseField(f.value); err != nil {
			return exitError(exitUsage, "unknown field: %s", f.value)
		}
	}

	v, err := stylecode.Decode(code)
	if err != nil {
		return exitError(exitInvalid, invalidCodeMsg)
	}

	if field != "" {
		fmt.Fprintln(out, v.Value(field))
		return nil
	}

	switch strings.ToLower(f.format) {
	case "text":
		fmt.Fprintf(out, "Input code: %s\n\n", code)
		fmt.Fprint(out, stylecode.PrettyPrint(v))
	case "raw":
		fmt.Fprint(out, stylecode.RawPrint(v))
	case "json":
		data, err := render.JSON(code, v)
		if err != nil {
			return err
		}
		_, _ = out.Write(data)
	case "md":
		fmt.Fprint(out, render.Markdown(code, v))
	default:
		return exitError(exitUsage, "unknown format: %s", f.format)
	}
	return nil
}

func newEncodeCmd() *cobra.Command {
	var (
		v      stylecode.Vector
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Encode score dimensions as a Style Code",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if errs := v.Validate(); len(errs) > 0 {
				msgs := make([]string, len(errs))
				for i, e := range errs {
					msgs[i] = "  " + e.Error()
				}
				return exitError(exitInvalid, "invalid score vector:\n%s", strings.Join(msgs, "\n"))
			}
			code := v.Encode()
			if asJSON {
				data, err := render.JSON(code, v)
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), code)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&v.Bas, "bas", 0, "BAS dimension (0-3)")
	flags.IntVar(&v.Mov, "mov", 0, "MOV dimension (0-3)")
	flags.IntVar(&v.Din, "din", 0, "DIN dimension (0-3)")
	flags.IntVar(&v.Com, "com", 0, "COM dimension (0-3)")
	flags.IntVar(&v.Sapd, "sapd", 0, "SAPD dimension (0-3)")
	flags.IntVar(&v.Gcc, "gcc", 0, "GCC dimension (0-3)")
	flags.IntVar(&v.Dif, "dif", 0, "DIF dimension (0-3)")
	flags.IntVar(&v.Sog, "sog", 0, "SOG dimension (0-3)")
	flags.IntVar(&v.Pen, "pen", 0, fmt.Sprintf("Penalty count (0-%d)", stylecode.MaxPenalties))
	flags.BoolVar(&asJSON, "json", false, "Print the code with its decoded fields as JSON")

	return cmd
}

func newScoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "score <code>",
		Short: "Print the score of a Style Code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := stylecode.Decode(args[0])
			if err != nil {
				return exitError(exitInvalid, invalidCodeMsg)
			}
			fmt.Fprintln(cmd.OutOrStdout(), stylecode.FormatScore(v.Score()))
			return nil
		},
	}
}

func newValidCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "valid <code>",
		Short: "Report whether a Style Code is valid",
		Long:  "Prints true or false. Exits with status 1 when the code is not valid.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := stylecode.Decode(args[0])
			valid := err == nil
			fmt.Fprintln(cmd.OutOrStdout(), valid)
			if !valid {
				return exitError(exitInvalid, "")
			}
			return nil
		},
	}
}

