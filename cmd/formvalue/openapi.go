package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formvalue/pkg/schema"
	"github.com/goliatone/go-formvalue/pkg/schema/openapi"
	"github.com/goliatone/go-formvalue/pkg/widgets"
)

func newOpenAPICmd(a *app) *cobra.Command {
	var (
		operation string
		validate  bool
		decorate  bool
		outFile   string
	)
	cmd := &cobra.Command{
		Use:   "openapi <document> [component]",
		Short: "Derive a definition from an OpenAPI 3 document",
		Long: `Convert an object schema of an OpenAPI 3 document into a record definition.
Name a component schema, or pass --operation to use an operation's request
body. Without either, the component schema names are listed.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return a.fail(err)
			}
			conv, err := openapi.Load(cmd.Context(), raw, openapi.Options{Validate: validate, Logger: a.logger})
			if err != nil {
				return a.fail(err)
			}

			var def schema.Definition
			switch {
			case operation != "":
				def, err = conv.Operation(operation)
			case len(args) == 2:
				def, err = conv.Component(args[1])
			default:
				for _, name := range conv.Components() {
					fmt.Fprintln(a.out, name)
				}
				return nil
			}
			if err != nil {
				return a.fail(err)
			}

			if decorate {
				widgets.NewRegistry().Decorate(&def)
			}
			out, err := schema.Marshal(def)
			if err != nil {
				return a.fail(err)
			}
			return a.writeOutput(outFile, out)
		},
	}
	cmd.Flags().StringVar(&operation, "operation", "", "operationId whose request body is converted")
	cmd.Flags().BoolVar(&validate, "validate", false, "validate the document before converting")
	cmd.Flags().BoolVar(&decorate, "widgets", false, "record the resolved prompt widget on every field")
	cmd.Flags().StringVarP(&outFile, "output", "o", "", "output file path (default: stdout)")
	return cmd
}
