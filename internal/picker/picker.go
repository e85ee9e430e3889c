package picker

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nikbrunner/tabzero/internal/search"
)

var (
	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")).
			Bold(true)

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	urlStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244")).
			Italic(true)

	kindStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("99"))

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("99")).
			Bold(true).
			MarginBottom(1)

	footerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244"))
)

// copyFunc writes to the system clipboard. Replaced in tests.
var copyFunc = clipboard.WriteAll

// copiedMsg reports the outcome of a clipboard write.
type copiedMsg struct {
	url string
	err error
}

// Picker is a simple TUI for selecting from search results.
type Picker struct {
	results   []search.SearchResult
	query     string
	cursor    int
	selected  bool
	cancelled bool
	status    string
	width     int
	height    int
}

// New creates a new Picker with the given search results.
func New(results []search.SearchResult, query string) Picker {
	return Picker{
		results: results,
		query:   query,
		cursor:  0,
		width:   80,
		height:  24,
	}
}

// Init implements tea.Model.
func (p Picker) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (p Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.width = msg.Width
		p.height = msg.Height
		return p, nil

	case copiedMsg:
		if msg.err != nil {
			p.status = "copy failed: " + msg.err.Error()
		} else {
			p.status = "copied " + msg.url
		}
		return p, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEsc, tea.KeyCtrlC:
			p.cancelled = true
			return p, tea.Quit

		case tea.KeyEnter:
			if len(p.results) == 0 {
				return p, nil
			}
			p.selected = true
			return p, tea.Quit

		case tea.KeyDown:
			p.moveDown()
			return p, nil

		case tea.KeyUp:
			p.moveUp()
			return p, nil
		}

		if msg.Type == tea.KeyRunes {
			switch string(msg.Runes) {
			case "j":
				p.moveDown()
				return p, nil
			case "k":
				p.moveUp()
				return p, nil
			case "y":
				return p, p.copyURL()
			case "q":
				p.cancelled = true
				return p, tea.Quit
			}
		}
	}

	return p, nil
}

func (p *Picker) moveDown() {
	if p.cursor < len(p.results)-1 {
		p.cursor++
	}
}

func (p *Picker) moveUp() {
	if p.cursor > 0 {
		p.cursor--
	}
}

func (p Picker) copyURL() tea.Cmd {
	if p.cursor >= len(p.results) {
		return nil
	}
	url := p.results[p.cursor].Item.URL
	return func() tea.Msg {
		return copiedMsg{url: url, err: copyFunc(url)}
	}
}

// View implements tea.Model.
func (p Picker) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(fmt.Sprintf("Search: %s (%d results)", p.query, len(p.results))))
	b.WriteString("\n\n")

	if len(p.results) == 0 {
		b.WriteString(normalStyle.Render("  No matches"))
		b.WriteString("\n")
	}

	for i, result := range p.results {
		cursor := "  "
		style := normalStyle
		if i == p.cursor {
			cursor = "> "
			style = selectedStyle
		}

		title := style.Render(highlight(result.Item.Title, result.MatchedIndexes))
		kind := kindStyle.Render(string(result.Item.Kind))

		b.WriteString(fmt.Sprintf("%s%s  %s\n", cursor, title, kind))
		b.WriteString(fmt.Sprintf("   %s\n", urlStyle.Render(result.Item.URL)))
	}

	b.WriteString("\n")
	if p.status != "" {
		b.WriteString(footerStyle.Render(p.status))
		b.WriteString("\n")
	}
	b.WriteString(footerStyle.Render("j/k: move  Enter: open  y: copy url  q/Esc: cancel"))

	return b.String()
}

// highlight underlines the matched bytes of title.
func highlight(title string, indexes []int) string {
	if len(indexes) == 0 {
		return title
	}
	matchSet := make(map[int]bool, len(indexes))
	for _, idx := range indexes {
		matchSet[idx] = true
	}

	var line strings.Builder
	for i, r := range title {
		if matchSet[i] {
			line.WriteString("\033[1;4m")
			line.WriteRune(r)
			line.WriteString("\033[22;24m")
		} else {
			line.WriteRune(r)
		}
	}
	return line.String()
}

// Selected returns the chosen item. ok is false if the picker was
// cancelled or closed without a choice.
func (p Picker) Selected() (item search.Item, ok bool) {
	if p.cancelled || !p.selected || p.cursor >= len(p.results) {
		return search.Item{}, false
	}
	return p.results[p.cursor].Item, true
}

// Cancelled returns true if the user cancelled the selection.
func (p Picker) Cancelled() bool {
	return p.cancelled
}
