package help

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Entry is one row of a help section: the invocation on the left, its
// description on the right.
type Entry struct {
	Left string
	Help string
}

// Section groups related entries under an optional title.
type Section struct {
	Title   string
	Entries []Entry
}

// Page is a complete help screen.
type Page struct {
	// Usage is the one-line synopsis, rendered after "Usage: ".
	Usage string

	// Description introduces the program between the usage line and the
	// sections.
	Description string

	// Header and Footer bracket the sections verbatim.
	Header string
	Footer string

	Sections []Section
}

var (
	styleTitle = lipgloss.NewStyle().Bold(true)
	styleLeft  = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	styleUsage = lipgloss.NewStyle().Bold(true)
)

// columnGap separates the invocation column from its description.
const columnGap = 2

// Render lays out the page as a string ending in a newline.
func (p Page) Render() string {
	var b strings.Builder

	if p.Usage != "" {
		b.WriteString(styleUsage.Render("Usage:"))
		b.WriteString(" ")
		b.WriteString(p.Usage)
		b.WriteString("\n")
	}

	if p.Description != "" {
		b.WriteString("\n")
		b.WriteString(p.Description)
		b.WriteString("\n")
	}

	if p.Header != "" {
		b.WriteString("\n")
		b.WriteString(p.Header)
		b.WriteString("\n")
	}

	width := 0

	for _, s := range p.Sections {
		for _, e := range s.Entries {
			if n := lipgloss.Width(e.Left); n > width {
				width = n
			}
		}
	}

	for _, s := range p.Sections {
		if len(s.Entries) == 0 {
			continue
		}

		b.WriteString("\n")

		if s.Title != "" {
			b.WriteString(styleTitle.Render(s.Title))
			b.WriteString("\n")
		}

		for _, e := range s.Entries {
			b.WriteString("  ")
			b.WriteString(styleLeft.Render(e.Left))

			if e.Help != "" {
				pad := width - lipgloss.Width(e.Left) + columnGap
				b.WriteString(strings.Repeat(" ", pad))
				b.WriteString(e.Help)
			}

			b.WriteString("\n")
		}
	}

	if p.Footer != "" {
		b.WriteString("\n")
		b.WriteString(p.Footer)
		b.WriteString("\n")
	}

	return b.String()
}

// Merge appends entries to the section titled title, creating it when
// absent. Entries with duplicate Left columns are dropped so an item
// reachable through several alternatives lists once.
func (p *Page) Merge(title string, entries ...Entry) {
	var sec *Section

	for ix := range p.Sections {
		if p.Sections[ix].Title == title {
			sec = &p.Sections[ix]
			break
		}
	}

	if sec == nil {
		p.Sections = append(p.Sections, Section{Title: title})
		sec = &p.Sections[len(p.Sections)-1]
	}

next:
	for _, e := range entries {
		for _, have := range sec.Entries {
			if have.Left == e.Left {
				continue next
			}
		}

		sec.Entries = append(sec.Entries, e)
	}
}
