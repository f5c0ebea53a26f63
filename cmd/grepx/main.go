// Command grepx is a line-oriented search tool built around an
// extended-regex compiler and backtracking matcher.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/grepx/grepx/internal/logx"
	"github.com/grepx/grepx/internal/search"
)

var opts search.Options

var debug bool

var rootCmd = &cobra.Command{
	Use:   "grepx -E PATTERN [FILE...]",
	Short: "grepx searches lines matching an extended-regex pattern.",
	Long: "grepx compiles a pattern built from character classes, groups, quantifiers,\n" +
		"alternation, and backreferences, and searches stdin, files, or a recursively\n" +
		"walked directory for lines that match it.",
	Args:         cobra.ArbitraryArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if opts.Pattern == "" {
			return fmt.Errorf("-E PATTERN is required")
		}
		opts.Paths = args

		log := logx.New(debug)
		defer log.Sync()

		res, err := search.Run(opts, os.Stdout, log)
		if err != nil {
			fmt.Fprintf(os.Stderr, "grepx: %v\n", err)
			os.Exit(1)
		}
		for _, ioErr := range res.IOErrs {
			log.Warn("input error", "error", ioErr.Error())
		}
		if !res.Matched {
			os.Exit(1)
		}
		return nil
	},
}

func init() {
	flags := rootCmd.Flags()
	flags.StringVarP(&opts.Pattern, "pattern", "E", "", "extended-regex pattern (required)")
	flags.BoolVarP(&opts.Recursive, "recursive", "r", false, "recurse into directory arguments")
	flags.BoolVarP(&opts.FilesWithMatches, "files-with-matches", "l", false, "print only names of files containing a match")
	flags.BoolVarP(&opts.Count, "count", "c", false, "print only a count of matching lines per file")
	flags.BoolVarP(&opts.LineNumber, "line-number", "n", false, "prefix each matching line with its line number")
	flags.BoolVarP(&opts.IgnoreCase, "ignore-case", "i", false, "fold ASCII letters before matching")
	flags.BoolVarP(&opts.InvertMatch, "invert-match", "v", false, "print lines that do not match")
	flags.BoolVar(&opts.Color, "color", false, "colorize matching lines when stdout is a terminal")
	flags.BoolVar(&debug, "debug", false, "enable per-line debug tracing")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "grepx: %v\n", err)
		os.Exit(1)
	}
}
