package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/predict/ll"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func newReplCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:           "repl",
		Short:         "Parse input lines interactively",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := loadGrammar(opts)
			if err != nil {
				return err
			}
			ga := ll.Analysis(g)
			table, err := buildTable(ga, opts, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			rl, err := readline.New("llgen> ")
			if err != nil {
				return err
			}
			defer rl.Close()
			intp := &Intp{ga: ga, table: table, out: rl.Stdout()}
			pterm.Info.Printfln("grammar %s loaded, quit with <ctrl>D or :quit", g.Name)
			intp.REPL(rl)
			return nil
		},
	}
}

// Intp is our interpreter object. Every input line is either a command,
// starting with a colon, or an input to parse.
type Intp struct {
	ga    *ll.GrammarAnalysis
	table *ll.ParseTable
	out   io.Writer
}

// REPL starts interactive mode.
func (intp *Intp) REPL(rl *readline.Instance) {
	for {
		line, err := rl.Readline()
		if err != nil { // io.EOF or interrupt
			break
		}
		if quit := intp.Eval(line); quit {
			break
		}
	}
	fmt.Fprintln(intp.out, "Good bye!")
}

// Eval executes a single line and returns true if the user wants to quit.
func (intp *Intp) Eval(line string) bool {
	line = strings.TrimSpace(line)
	switch line {
	case "":
	case ":quit", ":q":
		return true
	case ":grammar":
		fmt.Fprintln(intp.out, renderGrammar(intp.ga.Grammar()))
	case ":first":
		fmt.Fprintln(intp.out, renderSets("FIRST", intp.ga.FirstSets().Each))
	case ":follow":
		fmt.Fprintln(intp.out, renderSets("FOLLOW", intp.ga.FollowSets().Each))
	case ":ll", ":table":
		fmt.Fprintln(intp.out, renderTable(intp.table))
	case ":help":
		fmt.Fprintln(intp.out, "commands: :grammar :first :follow :ll :quit, anything else is parsed")
	default:
		if strings.HasPrefix(line, ":") {
			fmt.Fprint(intp.out, pterm.Error.Sprintfln("unknown command %s, try :help", line))
			break
		}
		tree, err := parseInput(intp.table, line)
		if err != nil {
			fmt.Fprint(intp.out, pterm.Error.Sprintln(err.Error()))
			break
		}
		fmt.Fprint(intp.out, pterm.Success.Sprintln(tree.String()))
		fmt.Fprintln(intp.out, renderTree(tree))
	}
	return false
}
