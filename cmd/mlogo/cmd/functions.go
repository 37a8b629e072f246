package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/msto63/mlogo/foundation/turtle/registry"
	mdwstringx "github.com/msto63/mlogo/foundation/utils/stringx"
	"github.com/msto63/mlogo/internal/export"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var functionsFormat string

var functionsCmd = &cobra.Command{
	Use:     "functions [name...]",
	Aliases: []string{"funcs"},
	Short:   "List the available functions, or describe the named ones",
	RunE:    runFunctions,
}

func init() {
	functionsCmd.Flags().StringVarP(&functionsFormat, "format", "f", "text", "output format (text, json, yaml)")
	rootCmd.AddCommand(functionsCmd)
}

func runFunctions(cmd *cobra.Command, args []string) error {
	format, err := export.ParseFormat(functionsFormat)
	if err != nil {
		return err
	}

	reg, err := registry.New(registry.Options{Logger: logger})
	if err != nil {
		return err
	}
	descriptions, err := describeFunctions(reg, args)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	switch format {
	case export.FormatJSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(descriptions)
	case export.FormatYAML:
		return yaml.NewEncoder(out).Encode(descriptions)
	case export.FormatText:
		for _, d := range descriptions {
			signature := d.Name
			for _, p := range d.Parameters {
				signature += " <" + p + ">"
			}
			aliases := ""
			if len(d.Aliases) > 0 {
				aliases = "(" + strings.Join(d.Aliases, ", ") + ")"
			}
			fmt.Fprintf(out, "  %s %s %s\n",
				mdwstringx.PadRight(signature, 30, ' '), mdwstringx.PadRight(aliases, 8, ' '), d.Description)
		}
		return nil
	default:
		return fmt.Errorf("format %s is not supported for functions", format)
	}
}

// describeFunctions describes every function, or only those named in args
func describeFunctions(reg *registry.Registry, names []string) ([]registry.Description, error) {
	if len(names) == 0 {
		return reg.Describe(), nil
	}

	descriptions := make([]registry.Description, 0, len(names))
	for _, name := range names {
		d, err := reg.DescribeName(name)
		if err != nil {
			if suggestion, ok := reg.Suggest(name); ok {
				return nil, fmt.Errorf("%w (did you mean %q?)", err, suggestion)
			}
			return nil, err
		}
		descriptions = append(descriptions, d)
	}
	return descriptions, nil
}
