package main

import (
	"github.com/spf13/cobra"

	"github.com/goliatone/go-formvalue/pkg/renderers/tui"
)

func newPromptCmd(a *app) *cobra.Command {
	var (
		format  string
		outFile string
	)
	cmd := &cobra.Command{
		Use:   "prompt <definition.yaml>",
		Short: "Fill a record interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			of, err := tui.ParseOutputFormat(format)
			if err != nil {
				return a.fail(err)
			}
			def, rec, err := a.loadRecord(args[0])
			if err != nil {
				return a.fail(err)
			}
			r, err := tui.New(tui.WithOutputFormat(of), tui.WithLogger(a.logger), tui.WithTheme(tui.Theme{ErrorPrefix: "✗ "}))
			if err != nil {
				return a.fail(err)
			}
			out, err := r.Render(cmd.Context(), def, rec)
			if err != nil {
				return a.fail(err)
			}
			return a.writeOutput(outFile, withNewline(out))
		},
	}
	cmd.Flags().StringVar(&format, "format", string(tui.OutputFormatJSON), "output format: json, yaml, form, pretty")
	cmd.Flags().StringVarP(&outFile, "output", "o", "", "output file path (default: stdout)")
	return cmd
}
