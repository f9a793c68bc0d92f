package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tidwall/sjson"

	"github.com/wikimedia/mediawiki-extensions-AbuseFilter/internal/lexer"
	"github.com/wikimedia/mediawiki-extensions-AbuseFilter/internal/token"
)

var lexExpr string

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize a filter expression",
	Long: `Tokenize (lex) a filter expression and print the resulting tokens.

Examples:
  # Tokenize an inline expression
  abusefilter lex -e '1 + 2 * 3'

  # Tokenize a file's contents
  abusefilter lex filter.txt

  # Emit tokens as JSON
  abusefilter lex -e '1 + 2' --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLex,
}

func init() {
	rootCmd.AddCommand(lexCmd)
	lexCmd.Flags().StringVarP(&lexExpr, "eval", "e", "", "tokenize inline code instead of reading from file")
}

func runLex(cmd *cobra.Command, args []string) error {
	input, err := readSource(lexExpr, args)
	if err != nil {
		return err
	}

	asJSON, _ := cmd.Flags().GetBool("json")

	l := lexer.New(input)
	jsonOut := "[]"

	for {
		tok, err := l.Next()
		if err != nil {
			return err
		}

		if asJSON {
			obj, _ := sjson.Set("", "type", tok.Type.String())
			obj, _ = sjson.Set(obj, "literal", tok.Literal)
			obj, _ = sjson.Set(obj, "line", tok.Pos.Line)
			obj, _ = sjson.Set(obj, "column", tok.Pos.Column)
			jsonOut, _ = sjson.SetRaw(jsonOut, "-1", obj)
		} else {
			fmt.Printf("[%-12s] %q @%d:%d\n", tok.Type.String(), tok.Literal, tok.Pos.Line, tok.Pos.Column)
		}

		if tok.Type == token.END {
			break
		}
	}

	if asJSON {
		fmt.Println(jsonOut)
	}
	return nil
}

func readSource(inline string, args []string) (string, error) {
	if inline != "" {
		return inline, nil
	}
	if len(args) == 1 {
		content, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("failed to read file %s: %w", args[0], err)
		}
		return string(content), nil
	}
	return "", fmt.Errorf("either provide a file path or use -e flag for inline code")
}
