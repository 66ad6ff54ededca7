package argot

import (
	"strings"

	"github.com/ardnew/mung"

	"github.com/ardnew/argot/help"
)

// usageFragment renders the synopsis fragment for one Meta node.
func usageFragment(m Meta) string {
	switch m.Kind {
	case MetaItem:
		if m.Item == nil {
			return ""
		}

		if m.Item.Kind == ItemCommand {
			return m.Item.Long
		}

		return m.Item.Describe()

	case MetaOptional:
		inner := usageChildren(m, " ")
		if inner == "" {
			return ""
		}

		return "[" + inner + "]"

	case MetaRequired:
		return usageChildren(m, " ")

	case MetaMany:
		inner := usageChildren(m, " ")
		if inner == "" {
			return ""
		}

		return inner + "..."

	case MetaOr:
		parts := make([]string, 0, len(m.Children))
		for _, c := range m.Children {
			if s := usageFragment(c); s != "" {
				parts = append(parts, s)
			}
		}

		if len(parts) == 0 {
			return ""
		}

		if len(parts) == 1 {
			return parts[0]
		}

		return "(" + strings.Join(parts, " | ") + ")"

	case MetaAnd, MetaDecorated, MetaAnywhere:
		return usageChildren(m, " ")

	default: // MetaSkip
		return ""
	}
}

func usageChildren(m Meta, delim string) string {
	parts := make([]string, 0, len(m.Children))
	for _, c := range m.Children {
		if s := usageFragment(c); s != "" {
			parts = append(parts, s)
		}
	}

	return mung.Make(
		mung.WithSubjectItems(parts...),
		mung.WithDelim(delim),
	).String()
}

// helpPage assembles the help screen for a parser rooted at meta.
func helpPage(cfg Config, meta Meta) help.Page {
	page := help.Page{
		Usage:       strings.TrimSpace(cfg.ProgName + " " + usageFragment(meta)),
		Description: cfg.Description,
		Header:      cfg.Header,
		Footer:      cfg.Footer,
	}

	collectHelp(&page, meta, "")

	builtin := []help.Entry{
		{Left: "-h, --help", Help: "print this help and exit"},
	}
	if cfg.Version != "" {
		builtin = append(builtin, help.Entry{Left: "--version", Help: "print the version and exit"})
	}

	page.Merge("Available options:", builtin...)

	return page
}

// collectHelp walks meta and files each documented item into its page
// section. A MetaDecorated note overrides the section title for the
// subtree beneath it.
func collectHelp(page *help.Page, m Meta, section string) {
	if m.Kind == MetaDecorated && m.Note != "" {
		section = m.Note
	}

	if m.Kind == MetaItem && m.Item != nil {
		it := *m.Item

		switch it.Kind {
		case ItemCommand:
			page.Merge(orTitle(section, "Available commands:"), help.Entry{
				Left: it.Long,
				Help: it.Help,
			})

		case ItemPositional:
			if it.Help != "" {
				page.Merge(orTitle(section, "Available positional items:"), help.Entry{
					Left: it.Describe(),
					Help: it.Help,
				})
			}

		default:
			page.Merge(orTitle(section, "Available options:"), help.Entry{
				Left: optionLeft(it),
				Help: it.Help,
			})
		}

		return
	}

	for _, c := range m.Children {
		collectHelp(page, c, section)
	}
}

func orTitle(section, fallback string) string {
	if section != "" {
		return section
	}

	return fallback
}

// optionLeft renders the left column for a flag or argument, listing the
// short form before the long one the way option tables usually read.
func optionLeft(it Item) string {
	var b strings.Builder

	switch {
	case it.Short != 0 && it.Long != "":
		b.WriteString("-")
		b.WriteRune(it.Short)
		b.WriteString(", --")
		b.WriteString(it.Long)
	case it.Short != 0:
		b.WriteString("-")
		b.WriteRune(it.Short)
	default:
		b.WriteString("    --")
		b.WriteString(it.Long)
	}

	if it.Kind == ItemArgument {
		b.WriteString("=")
		b.WriteString(it.Metavar)
	}

	return b.String()
}
