package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"numspell/cmd/numspell/grammar"
	"numspell/cmd/numspell/speller"

	"github.com/charmbracelet/lipgloss"
	"github.com/ktr0731/go-fuzzyfinder"
	"github.com/spf13/cobra"
)

var (
	styleRole    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	styleHandle  = lipgloss.NewStyle().Foreground(lipgloss.Color("99"))
	styleKind    = lipgloss.NewStyle().Bold(true)
	styleLiteral = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
)

var treeCmd = &cobra.Command{
	Use:   "tree [language]",
	Short: "Print the node graph of a grammar",
	Long: "Print the node graph of a grammar, one node per line.\n" +
		"A node shared by several parents is printed in full once; later\n" +
		"occurrences refer to it by its #handle.\n\n" +
		"Without an argument the language is picked with a fuzzy finder on a\n" +
		"terminal, or the first configured language otherwise.",
	Args: cobra.MaximumNArgs(1),
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) > 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		return grammar.Default().Tags(), cobra.ShellCompDirectiveNoFileComp
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSettings(cmd)
		if err != nil {
			return err
		}

		var tag string
		switch {
		case len(args) == 1:
			tag = args[0]
		case stdinIsTerminal():
			tag, err = pickLanguage(s.registry)
			if err != nil {
				return err
			}
		default:
			tag = s.languages[0]
		}

		root, err := s.registry.Build(tag)
		if err != nil {
			return err
		}
		printTree(cmd.OutOrStdout(), root)
		return nil
	},
}

// pickLanguage lets the user choose a registered language interactively.
func pickLanguage(reg *grammar.Registry) (string, error) {
	tags := reg.Tags()
	idx, err := fuzzyfinder.Find(
		tags,
		func(i int) string {
			return tags[i] + "  " + reg.Name(tags[i])
		},
		fuzzyfinder.WithPromptString("Select language: "),
	)
	if errors.Is(err, fuzzyfinder.ErrAbort) {
		return "", errors.New("no language selected")
	}
	if err != nil {
		return "", err
	}
	return tags[idx], nil
}

// printTree writes the graph under root as an indented, styled listing.
func printTree(w io.Writer, root speller.Node) {
	speller.Walk(root, func(v speller.Visit) bool {
		var b strings.Builder
		b.WriteString(strings.Repeat("  ", v.Depth))
		if v.Role != "" {
			b.WriteString(styleRole.Render(v.Role + ":"))
			b.WriteByte(' ')
		}
		handle := styleHandle.Render(fmt.Sprintf("#%d", v.Node.Handle()))
		if v.Seen {
			fmt.Fprintf(w, "%s-> %s\n", b.String(), handle)
			return false
		}
		fmt.Fprintf(w, "%s%s %s\n", b.String(), handle, styleNode(v.Node))
		return true
	})
	fmt.Fprintf(w, "\n%d nodes\n", speller.Count(root))
}

func styleNode(n speller.Node) string {
	if l, ok := n.(*speller.Literal); ok {
		return styleKind.Render("literal") + " " + styleLiteral.Render(fmt.Sprintf("%q", l.Text))
	}
	label := speller.Label(n)
	kind := speller.Kind(n)
	return styleKind.Render(kind) + strings.TrimPrefix(label, kind)
}
