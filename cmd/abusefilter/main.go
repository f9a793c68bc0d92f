// Command abusefilter is a standalone CLI around the internal
// lexer/parser/evaluator pipeline (spec.md §6.4): lex, parse, and run
// subcommands for debugging filter expressions outside of an embedding
// host.
package main

import (
	"fmt"
	"os"

	"github.com/wikimedia/mediawiki-extensions-AbuseFilter/cmd/abusefilter/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
