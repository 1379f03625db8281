package main

import (
	"numspell/cmd/numspell/grammar"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	styleBase = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240"))

	styleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")).
			Padding(0, 1)

	styleHelp = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Padding(0, 1)

	styleErr = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Padding(0, 1)
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Spell numbers interactively while typing",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSettings(cmd)
		if err != nil {
			return err
		}
		tags := s.registry.Tags()
		if len(flagLangs) > 0 {
			tags = flagLangs
		}
		langs, err := resolveLanguages(s.registry, tags)
		if err != nil {
			return err
		}
		_, err = tea.NewProgram(newTUIModel(s.registry, langs)).Run()
		return err
	},
}

type tuiModel struct {
	input    textinput.Model
	table    table.Model
	registry *grammar.Registry
	langs    []language
	errMsg   string
}

func newTUIModel(reg *grammar.Registry, langs []language) tuiModel {
	in := textinput.New()
	in.Placeholder = "1234"
	in.Prompt = "number> "
	in.CharLimit = 21
	in.Focus()

	columns := []table.Column{
		{Title: "LANG", Width: 6},
		{Title: "NAME", Width: 12},
		{Title: "SPELLING", Width: 90},
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithHeight(len(langs)+1),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true).
		Foreground(lipgloss.Color("99"))
	s.Selected = lipgloss.NewStyle()
	t.SetStyles(s)

	m := tuiModel{input: in, table: t, registry: reg, langs: langs}
	m.refresh()
	return m
}

// refresh re-spells the current input into the table.
func (m *tuiModel) refresh() {
	m.errMsg = ""
	rows := make([]table.Row, len(m.langs))
	for i, l := range m.langs {
		rows[i] = table.Row{l.tag, m.registry.Name(l.tag), ""}
	}
	if v := m.input.Value(); v != "" {
		n, err := parseNumber(v)
		if err != nil {
			m.errMsg = err.Error()
		} else {
			for i, l := range m.langs {
				rows[i][2] = n.spell(l.root, false)
			}
		}
	}
	m.table.SetRows(rows)
}

func (m tuiModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "ctrl+u":
			m.input.SetValue("")
			m.refresh()
			return m, nil
		}
	case tea.WindowSizeMsg:
		cols := m.table.Columns()
		if w := msg.Width - cols[0].Width - cols[1].Width - 10; w > 20 {
			cols[2].Width = w
			m.table.SetColumns(cols)
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.refresh()
	return m, cmd
}

func (m tuiModel) View() string {
	title := styleTitle.Render(appName + ": type a number")
	view := title + "\n\n" + m.input.View() + "\n\n" + styleBase.Render(m.table.View()) + "\n"
	if m.errMsg != "" {
		view += styleErr.Render(m.errMsg) + "\n"
	}
	return view + styleHelp.Render("ctrl+u clear • esc quit") + "\n"
}
