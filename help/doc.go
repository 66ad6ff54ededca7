// Package help renders usage and help screens for command line programs.
//
// The package is deliberately ignorant of how parsers are structured: a
// caller assembles a [Page] out of plain strings and entry rows, and
// Render lays it out with aligned columns and terminal styling. Styling
// degrades to plain text automatically when the output is not a
// terminal, which [lipgloss] handles on its own.
package help
