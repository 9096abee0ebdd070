package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formvalue/pkg/binding"
	"github.com/goliatone/go-formvalue/pkg/schema"
	"github.com/goliatone/go-formvalue/pkg/value"
)

// keystroke is one step replayed against an editor. Text is inserted; the
// named keys move the cursor or delete.
type keystroke struct {
	name string
	text string
}

var namedKeys = map[string]bool{
	"bs": true, "del": true, "left": true, "right": true, "home": true, "end": true, "all": true,
}

// parseKeys splits s into keystrokes. Each rune is a keystroke; "{bs}",
// "{del}", "{left}", "{right}", "{home}", "{end}" and "{all}" name editing
// keys, "{paste:text}" inserts text in one edit and "{{" is a literal brace.
func parseKeys(s string) ([]keystroke, error) {
	var keys []keystroke
	for s != "" {
		switch {
		case strings.HasPrefix(s, "{{"):
			keys = append(keys, keystroke{text: "{"})
			s = s[2:]
		case strings.HasPrefix(s, "{"):
			end := strings.IndexByte(s, '}')
			if end < 0 {
				return nil, fmt.Errorf("unterminated key in %q", s)
			}
			token := s[1:end]
			s = s[end+1:]
			if paste, ok := strings.CutPrefix(token, "paste:"); ok {
				keys = append(keys, keystroke{name: "paste", text: paste})
				continue
			}
			if !namedKeys[token] {
				return nil, fmt.Errorf("unknown key {%s}", token)
			}
			keys = append(keys, keystroke{name: token})
		default:
			r := []rune(s)[0]
			keys = append(keys, keystroke{text: string(r)})
			s = s[len(string(r)):]
		}
	}
	return keys, nil
}

func (k keystroke) String() string {
	switch k.name {
	case "":
		return fmt.Sprintf("%q", k.text)
	case "paste":
		return fmt.Sprintf("paste %q", k.text)
	default:
		return "{" + k.name + "}"
	}
}

// press applies k and reports whether the value accepted it. Cursor moves
// always succeed.
func press(e *binding.Editor, k keystroke) bool {
	switch k.name {
	case "":
		return e.Insert(k.text)
	case "paste":
		return e.Paste(k.text)
	case "bs":
		return e.Backspace()
	case "del":
		return e.Delete()
	case "left":
		e.Left()
	case "right":
		e.Right()
	case "home":
		e.Home()
	case "end":
		e.End()
	case "all":
		e.SelectAll()
	}
	return true
}

func newTypeCmd(a *app) *cobra.Command {
	var (
		kind       string
		definition string
		field      string
		required   bool
	)
	cmd := &cobra.Command{
		Use:   "type <keys>",
		Short: "Replay keystrokes against a value",
		Long: `Type keys into an empty value one keystroke at a time and print, for each
step, whether the value accepted it, the resulting text, the cursor position
and whether the value is valid. Take the value from --kind, or from a field of
a definition with --definition and --field.

Keys: plain characters are typed; {bs} {del} {left} {right} {home} {end}
{all} are editing keys; {paste:text} pastes text as one edit; {{ types "{".`,
		Example: `  formvalue type --kind decimal "1234{home}{del}"
  formvalue type --kind date "29/2/2023"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			keys, err := parseKeys(args[0])
			if err != nil {
				return a.fail(err)
			}
			v, err := a.typedValue(kind, definition, field, required)
			if err != nil {
				return a.fail(err)
			}

			e := binding.New(v)
			defer e.Close()

			tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "KEY\tRESULT\tTEXT\tCURSOR\tVALID")
			for _, k := range keys {
				result := "accepted"
				if !press(e, k) {
					result = "rejected"
				}
				buf := e.Buffer()
				fmt.Fprintf(tw, "%s\t%s\t%q\t%d\t%t\n", k, result, buf.Content, buf.Dot, v.Valid())
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&kind, "kind", string(value.KindText), "value kind: integer, long, decimal, boolean, text, date, time, datetime")
	cmd.Flags().StringVar(&definition, "definition", "", "definition file to take the field from")
	cmd.Flags().StringVar(&field, "field", "", "field name within --definition")
	cmd.Flags().BoolVar(&required, "required", false, "mark the value required")
	cmd.MarkFlagsRequiredTogether("definition", "field")
	return cmd
}

func (a *app) typedValue(kind, definition, field string, required bool) (value.Value, error) {
	if definition == "" {
		k, ok := value.ParseKind(kind)
		if !ok {
			return nil, fmt.Errorf("%w: %q", schema.ErrUnknownKind, kind)
		}
		return a.factory.New(k, value.WithRequired(required))
	}

	def, err := schema.Load(schema.SourceFromFile(definition))
	if err != nil {
		return nil, err
	}
	fd, ok := def.Field(field)
	if !ok {
		return nil, fmt.Errorf("definition %s has no field %q", def.Name, field)
	}
	fd.Default = ""
	if required {
		fd.Required = true
	}
	rec, err := schema.Build(schema.Definition{Name: def.Name, Fields: []schema.FieldDef{fd}}, a.factory)
	if err != nil {
		return nil, err
	}
	v, _ := rec.Field(field)
	return v, nil
}
