package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tidwall/sjson"

	"github.com/wikimedia/mediawiki-extensions-AbuseFilter/internal/ast"
	"github.com/wikimedia/mediawiki-extensions-AbuseFilter/internal/parser"
)

var parseExpr string

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse a filter expression and print its syntax tree",
	Long: `Parse a filter expression and print the resulting AST.

Examples:
  abusefilter parse -e '1 + 2 * 3'
  abusefilter parse -e 'user_name like "*bot*"' --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().StringVarP(&parseExpr, "eval", "e", "", "parse inline code instead of reading from file")
}

func runParse(cmd *cobra.Command, args []string) error {
	input, err := readSource(parseExpr, args)
	if err != nil {
		return err
	}

	node, err := parser.Parse(input)
	if err != nil {
		return err
	}

	asJSON, _ := cmd.Flags().GetBool("json")
	if asJSON {
		out, err := nodeJSON(node)
		if err != nil {
			return err
		}
		fmt.Println(out)
		return nil
	}

	fmt.Println(formatNode(node, 0))
	return nil
}

func formatNode(n ast.Node, depth int) string {
	indent := strings.Repeat("  ", depth)
	switch v := n.(type) {
	case *ast.Literal:
		return fmt.Sprintf("%sLiteral(%s)", indent, v.Value.ToString())
	case *ast.Variable:
		return fmt.Sprintf("%sVariable(%s)", indent, v.Name)
	case *ast.Call:
		lines := []string{fmt.Sprintf("%sCall(%s)", indent, v.Name)}
		for _, a := range v.Args {
			lines = append(lines, formatNode(a, depth+1))
		}
		return strings.Join(lines, "\n")
	case *ast.Unary:
		return fmt.Sprintf("%sUnary(%d)\n%s", indent, v.Op, formatNode(v.Child, depth+1))
	case *ast.Binary:
		return fmt.Sprintf("%sBinary(%d)\n%s\n%s", indent, v.Op, formatNode(v.Left, depth+1), formatNode(v.Right, depth+1))
	case *ast.Ternary:
		return fmt.Sprintf("%sTernary\n%s\n%s\n%s", indent, formatNode(v.Cond, depth+1), formatNode(v.Then, depth+1), formatNode(v.Else, depth+1))
	case *ast.Keyword:
		return fmt.Sprintf("%sKeyword(%d)\n%s\n%s", indent, v.Op, formatNode(v.Left, depth+1), formatNode(v.Right, depth+1))
	case *ast.TimeUnitExpr:
		return fmt.Sprintf("%sTimeUnit(%d)\n%s", indent, v.Unit, formatNode(v.Child, depth+1))
	default:
		return fmt.Sprintf("%s<unknown>", indent)
	}
}

// nodeJSON renders n as a JSON object tree built incrementally with
// tidwall/sjson, matching the way lex.go assembles its token array.
func nodeJSON(n ast.Node) (string, error) {
	switch v := n.(type) {
	case *ast.Literal:
		return setFields("", map[string]any{"kind": "literal", "value": v.Value.ToString()})
	case *ast.Variable:
		return setFields("", map[string]any{"kind": "variable", "name": v.Name})
	case *ast.Call:
		obj, err := setFields("", map[string]any{"kind": "call", "name": v.Name})
		if err != nil {
			return "", err
		}
		argsJSON := "[]"
		for _, a := range v.Args {
			aj, err := nodeJSON(a)
			if err != nil {
				return "", err
			}
			argsJSON, _ = sjson.SetRaw(argsJSON, "-1", aj)
		}
		return sjson.SetRaw(obj, "args", argsJSON)
	case *ast.Unary:
		child, err := nodeJSON(v.Child)
		if err != nil {
			return "", err
		}
		obj, err := setFields("", map[string]any{"kind": "unary", "op": int(v.Op)})
		if err != nil {
			return "", err
		}
		return sjson.SetRaw(obj, "child", child)
	case *ast.Binary:
		left, err := nodeJSON(v.Left)
		if err != nil {
			return "", err
		}
		right, err := nodeJSON(v.Right)
		if err != nil {
			return "", err
		}
		obj, err := setFields("", map[string]any{"kind": "binary", "op": int(v.Op)})
		if err != nil {
			return "", err
		}
		obj, _ = sjson.SetRaw(obj, "left", left)
		return sjson.SetRaw(obj, "right", right)
	case *ast.Ternary:
		cond, err := nodeJSON(v.Cond)
		if err != nil {
			return "", err
		}
		thenN, err := nodeJSON(v.Then)
		if err != nil {
			return "", err
		}
		elseN, err := nodeJSON(v.Else)
		if err != nil {
			return "", err
		}
		obj, err := setFields("", map[string]any{"kind": "ternary"})
		if err != nil {
			return "", err
		}
		obj, _ = sjson.SetRaw(obj, "cond", cond)
		obj, _ = sjson.SetRaw(obj, "then", thenN)
		return sjson.SetRaw(obj, "else", elseN)
	case *ast.Keyword:
		left, err := nodeJSON(v.Left)
		if err != nil {
			return "", err
		}
		right, err := nodeJSON(v.Right)
		if err != nil {
			return "", err
		}
		obj, err := setFields("", map[string]any{"kind": "keyword", "op": int(v.Op)})
		if err != nil {
			return "", err
		}
		obj, _ = sjson.SetRaw(obj, "left", left)
		return sjson.SetRaw(obj, "right", right)
	case *ast.TimeUnitExpr:
		child, err := nodeJSON(v.Child)
		if err != nil {
			return "", err
		}
		obj, err := setFields("", map[string]any{"kind": "timeunit", "unit": int(v.Unit)})
		if err != nil {
			return "", err
		}
		return sjson.SetRaw(obj, "child", child)
	default:
		return setFields("", map[string]any{"kind": "unknown"})
	}
}

func setFields(json string, fields map[string]any) (string, error) {
	var err error
	for k, v := range fields {
		json, err = sjson.Set(json, k, v)
		if err != nil {
			return "", err
		}
	}
	return json, nil
}
