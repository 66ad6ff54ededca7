package help

import (
	"strings"
	"testing"
)

func page() Page {
	return Page{
		Usage:       "demo [-v] <FILE>",
		Description: "A demonstration program.",
		Sections: []Section{
			{
				Title: "Available options:",
				Entries: []Entry{
					{Left: "-v, --verbose", Help: "increase verbosity"},
					{Left: "-h, --help", Help: "print this help"},
				},
			},
		},
		Footer: "Report bugs upstream.",
	}
}

func TestRenderContents(t *testing.T) {
	out := page().Render()

	for _, want := range []string{
		"Usage:",
		"demo [-v] <FILE>",
		"A demonstration program.",
		"Available options:",
		"--verbose",
		"increase verbosity",
		"Report bugs upstream.",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered page missing %q:\n%s", want, out)
		}
	}
}

func TestRenderAlignment(t *testing.T) {
	out := page().Render()

	var helpCol []int

	for _, line := range strings.Split(out, "\n") {
		if ix := strings.Index(line, "increase verbosity"); ix >= 0 {
			helpCol = append(helpCol, ix)
		}

		if ix := strings.Index(line, "print this help"); ix >= 0 {
			helpCol = append(helpCol, ix)
		}
	}

	if len(helpCol) != 2 {
		t.Fatalf("expected 2 option rows, found %d:\n%s", len(helpCol), out)
	}

	if helpCol[0] != helpCol[1] {
		t.Errorf("descriptions not aligned: columns %v\n%s", helpCol, out)
	}
}

func TestRenderEmptySectionsOmitted(t *testing.T) {
	p := Page{
		Usage:    "demo",
		Sections: []Section{{Title: "Commands:"}},
	}

	if out := p.Render(); strings.Contains(out, "Commands:") {
		t.Errorf("empty section rendered:\n%s", out)
	}
}

func TestMergeDeduplicates(t *testing.T) {
	var p Page

	p.Merge("Available options:", Entry{Left: "-v", Help: "verbose"})
	p.Merge("Available options:", Entry{Left: "-v", Help: "verbose"}, Entry{Left: "-q", Help: "quiet"})

	if n := len(p.Sections); n != 1 {
		t.Fatalf("sections = %d, want 1", n)
	}

	if n := len(p.Sections[0].Entries); n != 2 {
		t.Errorf("entries = %d, want 2 (duplicate kept?)", n)
	}
}
