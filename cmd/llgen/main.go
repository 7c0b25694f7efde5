package main

import (
	"fmt"
	"os"

	"github.com/npillmayer/predict/ll"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// defaultInput is the input parsed if neither flags nor configuration provide one.
const defaultInput = "( id ) + id"

func main() {
	initDisplay()
	if err := newRootCmd().Execute(); err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(1)
	}
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	var stopGrammar, stopFirst, stopFollow, stopTable bool
	cmd := &cobra.Command{
		Use:           "llgen -f grammar",
		Short:         "LL(1) parser generator and predictive parser",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupConfig(cmd, opts.verbose)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			switch {
			case stopGrammar:
				opts.stopAfter = stageGrammar
			case stopFirst:
				opts.stopAfter = stageFirst
			case stopFollow:
				opts.stopAfter = stageFollow
			case stopTable:
				opts.stopAfter = stageTable
			}
			if opts.input = viper.GetString("input"); opts.input == "" {
				opts.input = defaultInput
			}
			return run(opts, cmd.OutOrStdout())
		},
	}
	pf := cmd.PersistentFlags()
	pf.StringVarP(&opts.file, "file", "f", "", "grammar file (required)")
	pf.BoolVar(&opts.ebnf, "ebnf", false, "grammar file is in Go EBNF notation")
	pf.StringVar(&opts.start, "start", "", "start production for EBNF grammars")
	pf.BoolVarP(&opts.verbose, "verbose", "v", false, "print every stage and trace at level Debug")
	pf.BoolVar(&opts.lastwins, "lastwins", false, "let later productions overwrite conflicting table cells")
	f := cmd.Flags()
	f.BoolVar(&stopGrammar, "grammar", false, "stop after reading the grammar")
	f.BoolVar(&stopFirst, "first", false, "stop after computing FIRST sets")
	f.BoolVar(&stopFollow, "follow", false, "stop after computing FOLLOW sets")
	f.BoolVar(&stopTable, "ll", false, "stop after building the LL(1) table")
	f.String("input", defaultInput, "input to parse")
	f.StringVar(&opts.html, "html", "", "write the LL(1) table as HTML to this file")
	cmd.AddCommand(newReplCmd(opts))
	return cmd
}

// options collects the flags of the pipeline.
type options struct {
	file      string
	ebnf      bool
	start     string
	verbose   bool
	lastwins  bool
	input     string
	html      string
	stopAfter stage
}

func (opts *options) tableOptions() []ll.TableOption {
	if opts.lastwins {
		return []ll.TableOption{ll.WithConflictPolicy(ll.LastWins)}
	}
	return nil
}

func (opts *options) String() string {
	return fmt.Sprintf("file=%s ebnf=%v stop-after=%s", opts.file, opts.ebnf, opts.stopAfter)
}
