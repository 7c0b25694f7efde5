package main

import (
	"fmt"
	"strconv"

	"github.com/npillmayer/predict/ll"
	"github.com/npillmayer/predict/ll/predictive"
	"github.com/pterm/pterm"
)

func renderGrammar(g *ll.Grammar) string {
	data := pterm.TableData{{"#", "LHS", "", "RHS", "nullable"}}
	for serial := 0; serial < g.ProductionCount(); serial++ {
		p := g.Production(serial)
		nullable := ""
		if g.IsProductionNullable(p) {
			nullable = "✓"
		}
		data = append(data, []string{strconv.Itoa(serial), p.LHS.String(), "➞", p.RHSString(), nullable})
	}
	return srenderTable(fmt.Sprintf("Grammar %s, start symbol %s", g.Name, g.Start()), data)
}

// renderSets renders FIRST or FOLLOW sets, given the sets' Each method.
func renderSets(family string, each func(func(ll.Symbol, *ll.SymbolSet))) string {
	data := pterm.TableData{{"", family}}
	each(func(A ll.Symbol, S *ll.SymbolSet) {
		data = append(data, []string{A.String(), S.String()})
	})
	return srenderTable(family+" sets", data)
}

// renderTable renders an LL(1) table with a column per lookahead.
func renderTable(table *ll.ParseTable) string {
	terms := table.Terminals()
	header := make([]string, 0, len(terms)+1)
	header = append(header, "")
	for _, t := range terms {
		header = append(header, t.String())
	}
	data := pterm.TableData{header}
	for _, A := range table.NonTerminals() {
		row := make([]string, 0, len(terms)+1)
		row = append(row, A.String())
		for _, t := range terms {
			cell := ""
			if p, ok := table.Lookup(A, t); ok {
				cell = fmt.Sprintf("%d: %s", p.Serial, p.RHSString())
			}
			row = append(row, cell)
		}
		data = append(data, row)
	}
	return srenderTable(fmt.Sprintf("LL(1) table, %d entries", table.Size()), data)
}

func renderConflicts(conflicts []ll.Conflict) string {
	data := pterm.TableData{{"kind", "cell", "first", "second"}}
	for _, c := range conflicts {
		data = append(data, []string{
			c.Kind.String(),
			fmt.Sprintf("[%s, %s]", c.NonTerminal, c.Lookahead),
			c.First.String(),
			c.Second.String(),
		})
	}
	return srenderTable(fmt.Sprintf("%d conflicts", len(conflicts)), data)
}

func srenderTable(title string, data pterm.TableData) string {
	s, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		tracer().Errorf("cannot render table: %v", err)
		return title
	}
	return pterm.DefaultSection.Sprint(title) + s
}

// renderTree renders a parse tree. Non-terminals expanded by an epsilon
// production show an ε leaf.
func renderTree(root *predictive.Node) string {
	var items pterm.LeveledList
	root.Walk(func(node *predictive.Node, depth int) {
		items = append(items, pterm.LeveledListItem{Level: depth, Text: nodeLabel(node)})
		if node.Symbol.IsNonTerminal() && node.IsLeaf() {
			items = append(items, pterm.LeveledListItem{Level: depth + 1, Text: "ε"})
		}
	})
	s, err := pterm.DefaultTree.WithRoot(pterm.NewTreeFromLeveledList(items)).Srender()
	if err != nil {
		tracer().Errorf("cannot render parse tree: %v", err)
		return root.String()
	}
	return s
}

func nodeLabel(node *predictive.Node) string {
	if node.Token != nil && node.Token.Lexeme() != node.Symbol.Name {
		return fmt.Sprintf("%s %q", node.Symbol, node.Token.Lexeme())
	}
	return node.Symbol.String()
}
