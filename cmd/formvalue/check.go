package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formvalue/pkg/renderers/tui"
)

var errIncomplete = errors.New("record is incomplete")

func newCheckCmd(a *app) *cobra.Command {
	var (
		format string
		sets   map[string]string
	)
	cmd := &cobra.Command{
		Use:   "check <definition.yaml> [values.yaml|-]",
		Short: "Validate values against a definition",
		Long: `Build the record described by the definition, apply values from a YAML
mapping (or stdin with "-") and --set flags through each field's strict
parser, and print the canonical record. The command fails when any value is
rejected or a required field is left empty.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			of, err := tui.ParseOutputFormat(format)
			if err != nil {
				return a.fail(err)
			}
			def, rec, err := a.loadRecord(args[0])
			if err != nil {
				return a.fail(err)
			}

			values := map[string]string{}
			if len(args) == 2 {
				if values, err = a.readValues(args[1]); err != nil {
					return a.fail(err)
				}
			}
			for name, text := range sets {
				values[name] = text
			}

			setErr := rec.SetValues(def.CleanValues(values))
			if setErr != nil {
				a.logger.Warn("values rejected", slog.String("error", setErr.Error()))
			}

			r, err := tui.New(tui.WithOutputFormat(of))
			if err != nil {
				return a.fail(err)
			}
			out, err := r.Serialize(rec)
			if err != nil {
				return a.fail(err)
			}
			if err := a.writeOutput("", withNewline(out)); err != nil {
				return a.fail(err)
			}

			if setErr != nil {
				return a.fail(setErr)
			}
			if !rec.DataComplete() {
				return a.fail(fmt.Errorf("%w: %s", errIncomplete, strings.Join(rec.Invalid(), ", ")))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", string(tui.OutputFormatJSON), "output format: json, yaml, form, pretty")
	cmd.Flags().StringToStringVar(&sets, "set", nil, "field value, repeatable (name=value)")
	return cmd
}

func (a *app) readValues(path string) (map[string]string, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(a.in)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read values: %w", err)
	}
	values := map[string]string{}
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("decode values: %w", err)
	}
	return values, nil
}

func withNewline(data []byte) []byte {
	if len(data) == 0 || data[len(data)-1] != '\n' {
		return append(data, '\n')
	}
	return data
}
