package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/msto63/mlogo/foundation/turtle/parser"
	"github.com/msto63/mlogo/foundation/turtle/registry"
	"github.com/msto63/mlogo/foundation/turtle/token"
	"github.com/msto63/mlogo/internal/export"
	"github.com/msto63/mlogo/internal/tui"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var tokensFormat string

var tokensCmd = &cobra.Command{
	Use:   "tokens [file|-]",
	Short: "Show the tokens of a script",
	Long: `Tokenizes a script and parses it without printing draw output.
Each token is listed with its line number and, once parsed, the id of
the instruction that consumed it.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTokens,
}

func init() {
	tokensCmd.Flags().StringVarP(&tokensFormat, "format", "f", "text", "output format (text, json, yaml)")
	rootCmd.AddCommand(tokensCmd)
}

func runTokens(cmd *cobra.Command, args []string) error {
	format, err := export.ParseFormat(tokensFormat)
	if err != nil {
		return err
	}

	script, _, err := readScript(cmd, args)
	if err != nil {
		return err
	}

	reg, err := registry.New(registry.Options{Logger: logger})
	if err != nil {
		return err
	}

	// ParseTokens keeps the stamps of an unfinished trailing statement
	raw := token.Tokenize(script, 1)
	state := parser.ParseTokens(raw, reg.NewState())
	tokens := state.ParsedTokens
	if state.Error != nil {
		// show the rest unstamped after the failing token
		tokens = append(tokens, raw[len(tokens):]...)
	}

	if err := writeTokens(cmd.OutOrStdout(), tokens, format); err != nil {
		return err
	}
	if state.Error != nil {
		errOut := cmd.ErrOrStderr()
		fmt.Fprintln(errOut, tui.RenderError(state.Error, "", tui.IsTerminal(errOut)))
		return errReported
	}
	return nil
}

func writeTokens(out io.Writer, tokens []token.Token, format export.Format) error {
	switch format {
	case export.FormatJSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(tokens)
	case export.FormatYAML:
		return yaml.NewEncoder(out).Encode(tokens)
	case export.FormatText:
		for _, t := range tokens {
			id := "-"
			if t.InstructionID != nil {
				id = fmt.Sprint(*t.InstructionID)
			}
			if _, err := fmt.Fprintf(out, "%4d  %-10s %4s  %q\n", t.LineNumber, t.Type, id, t.Text); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("format %s is not supported for tokens", format)
	}
}
