package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formvalue/pkg/config"
	"github.com/goliatone/go-formvalue/pkg/record"
	"github.com/goliatone/go-formvalue/pkg/schema"
	"github.com/goliatone/go-formvalue/pkg/value"
)

// app carries the state shared by every command.
type app struct {
	in      io.Reader
	out     io.Writer
	errOut  io.Writer
	cfgFile string
	verbose bool

	logger  *slog.Logger
	factory *value.Factory
}

func newRootCmd(in io.Reader, out, errOut io.Writer) *cobra.Command {
	a := &app{in: in, out: out, errOut: errOut}

	root := &cobra.Command{
		Use:   "formvalue",
		Short: "Typed, validating form records",
		Long: `formvalue builds records of typed values (integers, decimals, booleans,
text, dates and times) from YAML definitions or OpenAPI documents, then fills
them interactively, checks supplied values, or replays keystrokes against a
single value to show how edits are accepted or refused.`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "locale config file (YAML); FORMVALUE_* variables override it")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		newPromptCmd(a),
		newCheckCmd(a),
		newTypeCmd(a),
		newOpenAPICmd(a),
	)
	return root
}

func (a *app) setup() error {
	level := slog.LevelInfo
	if a.verbose {
		level = slog.LevelDebug
	}
	a.logger = slog.New(slog.NewTextHandler(a.errOut, &slog.HandlerOptions{Level: level}))

	locale, err := config.Load(a.cfgFile)
	if err != nil {
		return a.fail(err)
	}
	if a.factory, err = value.NewFactory(locale); err != nil {
		return a.fail(err)
	}
	a.logger.Debug("locale loaded",
		slog.String("config", a.cfgFile),
		slog.String("decimal", string(locale.DecimalSeparator)),
		slog.String("dateOrder", string(locale.DateOrder)),
	)
	return nil
}

// fail logs err and returns it so cobra exits non-zero.
func (a *app) fail(err error) error {
	if a.logger != nil {
		a.logger.Error("command failed", slog.String("error", err.Error()))
	} else {
		fmt.Fprintln(a.errOut, "error:", err)
	}
	return err
}

func (a *app) loadRecord(path string) (schema.Definition, *record.Record, error) {
	def, err := schema.Load(schema.SourceFromFile(path))
	if err != nil {
		return schema.Definition{}, nil, err
	}
	rec, err := schema.Build(def, a.factory, record.WithLogger(a.logger))
	if err != nil {
		return schema.Definition{}, nil, err
	}
	return def, rec, nil
}

// writeOutput writes data to path, or to the command output when path is
// empty.
func (a *app) writeOutput(path string, data []byte) error {
	if path == "" {
		_, err := a.out.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}
	a.logger.Info("output written", slog.String("file", path))
	return nil
}
