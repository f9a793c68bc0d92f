package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"

	"github.com/wikimedia/mediawiki-extensions-AbuseFilter/internal/builtins"
	"github.com/wikimedia/mediawiki-extensions-AbuseFilter/internal/config"
	"github.com/wikimedia/mediawiki-extensions-AbuseFilter/internal/environment"
	"github.com/wikimedia/mediawiki-extensions-AbuseFilter/internal/evaluator"
	"github.com/wikimedia/mediawiki-extensions-AbuseFilter/internal/framing"
	"github.com/wikimedia/mediawiki-extensions-AbuseFilter/internal/value"
)

var (
	runExpr    string
	runVars    []string
	runVarJSON string
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Evaluate a filter expression",
	Long: `Parse and evaluate a filter expression, printing its result.

With no -e flag and no file argument, reads a stream of NUL-delimited
framed requests from stdin instead, writing a MATCH/NOMATCH/EXCEPTION
response line per request until stdin is exhausted.

Examples:
  abusefilter run -e '1 + 2 * 3'
  abusefilter run -e 'user_name like "*bot*"' --var user_name=Examplebot99
  abusefilter run -e 'added_lines contains "viagra"' --var added_lines="buy viagra now"
  abusefilter run -e 'user_name like "*bot*"' --vars-json '{"user_name":"Examplebot99"}'
  abusefilter run < requests.bin`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVarP(&runExpr, "eval", "e", "", "evaluate inline code instead of reading from file")
	runCmd.Flags().StringArrayVar(&runVars, "var", nil, "variable binding in name=value form (repeatable)")
	runCmd.Flags().StringVar(&runVarJSON, "vars-json", "", "variable bindings as a single JSON object")
}

// parseVarsJSON decodes a flat JSON object of variable bindings using
// gjson, the same streaming-parse library the retrieval pack uses wherever
// a config blob needs field-at-a-time access without a full struct
// decode.
func parseVarsJSON(doc string) (map[string]string, error) {
	if !gjson.Valid(doc) {
		return nil, fmt.Errorf("invalid JSON in --vars-json")
	}
	result := gjson.Parse(doc)
	if !result.IsObject() {
		return nil, fmt.Errorf("--vars-json must be a JSON object")
	}
	vars := make(map[string]string)
	result.ForEach(func(key, val gjson.Result) bool {
		vars[key.String()] = val.String()
		return true
	})
	return vars, nil
}

func runRun(cmd *cobra.Command, args []string) error {
	// With no inline expression and no file argument, §6.4 has this command
	// read a stream of NUL-delimited framed requests from stdin instead of
	// evaluating a single expression.
	if runExpr == "" && len(args) == 0 {
		env := environment.New()
		builtins.Register(env)
		ev := evaluator.New(env)
		return framing.Serve(os.Stdin, os.Stdout, ev, env, config.DefaultLimits())
	}

	input, err := readSource(runExpr, args)
	if err != nil {
		return err
	}

	env := environment.New()
	builtins.Register(env)

	for _, binding := range runVars {
		name, val, ok := strings.Cut(binding, "=")
		if !ok {
			return fmt.Errorf("invalid --var %q: expected name=value", binding)
		}
		env.AddVariable(name, value.FromLexeme(val))
	}

	if runVarJSON != "" {
		vars, err := parseVarsJSON(runVarJSON)
		if err != nil {
			return err
		}
		for name, val := range vars {
			env.AddVariable(name, value.FromLexeme(val))
		}
	}

	ev := evaluator.New(env)
	result, err := ev.Evaluate(input)
	if err != nil {
		return err
	}

	asJSON, _ := cmd.Flags().GetBool("json")
	if asJSON {
		fmt.Printf("{\"kind\":%q,\"value\":%q,\"bool\":%v}\n", result.Kind().String(), result.ToString(), result.ToBool())
		return nil
	}

	fmt.Printf("%s (%s)\n", result.ToString(), result.Kind())
	return nil
}
