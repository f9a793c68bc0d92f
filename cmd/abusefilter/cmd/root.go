package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "abusefilter",
	Short: "Embeddable expression evaluator for abuse filter rules",
	Long: `abusefilter lexes, parses, and evaluates the filter expression
language: a small side-effect-free expression grammar over string/integer/
float values, string pattern operators (in, contains, like, matches, rlike,
regex), and a handful of domain string builtins (ccnorm, rmspecials,
specialratio, count, length, lcase).`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "emit machine-readable JSON output")
}
