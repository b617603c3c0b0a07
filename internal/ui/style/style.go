// Package style holds the colors and icons shared by log and tree output.
package style

import "github.com/charmbracelet/lipgloss"

// Palette.
var (
	Iris   = lipgloss.Color("#8B5CF6")
	Slate  = lipgloss.Color("#667085")
	Green  = lipgloss.Color("#22A06B")
	Red    = lipgloss.Color("#D93025")
	Yellow = lipgloss.Color("#F59E0B")
	Cyan   = lipgloss.Color("#0EA5E9")
)

// Icons.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Dot     = "●"
	Pin     = "⚲"
)

// Tag colors for tree lines.
var (
	RootTag    = Iris
	IncludeTag = Green
	LoopTag    = Yellow
	MissingTag = Red
	LimitTag   = Cyan
)
