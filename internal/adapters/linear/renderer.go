// Package linear writes snapshots, trees and rebuild notices as plain,
// line-oriented text with colored tags.
package linear

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"go.trai.ch/ahkdeps/internal/core/domain"
	"go.trai.ch/ahkdeps/internal/ui/output"
	"go.trai.ch/ahkdeps/internal/ui/style"
)

// Renderer formats engine results for a terminal or a log.
type Renderer struct {
	mu      sync.Mutex
	out     *termenv.Output
	heading lipgloss.Style
	faint   lipgloss.Style
	tags    map[string]lipgloss.Style
}

// NewRenderer creates a Renderer writing to w, or stdout when w is nil.
func NewRenderer(w io.Writer, mode output.Mode) *Renderer {
	if w == nil {
		w = os.Stdout
	}
	lip := lipgloss.NewRenderer(w)
	lip.SetColorProfile(mode.Profile())

	tag := func(c lipgloss.Color) lipgloss.Style {
		return lip.NewStyle().Foreground(c)
	}
	return &Renderer{
		out:     output.NewWithMode(w, mode),
		heading: lip.NewStyle().Bold(true).Foreground(style.Iris),
		faint:   lip.NewStyle().Foreground(style.Slate),
		tags: map[string]lipgloss.Style{
			domain.TagRoot:    tag(style.RootTag).Bold(true),
			domain.TagInclude: tag(style.IncludeTag),
			domain.TagLoop:    tag(style.LoopTag),
			domain.TagMissing: tag(style.MissingTag),
			domain.TagLimit:   tag(style.LimitTag),
		},
	}
}

// Snapshot writes the tree and summary of s.
func (r *Renderer) Snapshot(s domain.Snapshot, rootDisplay string) error {
	var b strings.Builder

	title := "Snapshot of " + rootDisplay
	if s.Summary.IsPinnedRoot {
		title += " " + style.Pin + " pinned"
	}
	b.WriteString(r.heading.Render(title) + "\n")
	b.WriteString(r.faint.Render("Generated "+s.GeneratedAt.UTC().Format(time.RFC3339)) + "\n\n")

	for _, line := range strings.Split(s.ASCIITree, "\n") {
		b.WriteString(r.colorLine(line) + "\n")
	}

	sum := s.Summary
	b.WriteString("\n" + r.heading.Render("Summary") + "\n")
	fmt.Fprintf(&b, "  %-24s %d\n", "unique resolved files", sum.UniqueResolvedFiles)
	fmt.Fprintf(&b, "  %-24s %d\n", "total resolved includes", sum.TotalResolvedIncludes)
	fmt.Fprintf(&b, "  %-24s %d\n", "unresolved includes", sum.UnresolvedCount)
	for _, raw := range sum.UnresolvedIncludes {
		b.WriteString("    " + r.tags[domain.TagMissing].Render(style.Cross) + " " + raw + "\n")
	}
	fmt.Fprintf(&b, "  %-24s %d\n", "max depth", sum.MaxDepth)
	if sum.Truncated {
		fmt.Fprintf(&b, "  %-24s %s\n", "truncated", "yes")
	}

	return r.write(b.String())
}

// Tree writes each root followed by its already expanded children.
func (r *Renderer) Tree(roots []domain.DependencyNode) error {
	var b strings.Builder
	for i, root := range roots {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(r.colorLine(domain.TagRoot+" "+root.DisplayName) + "\n")
		r.writeChildren(&b, root.Children, "")
	}
	return r.write(b.String())
}

func (r *Renderer) writeChildren(b *strings.Builder, children []domain.DependencyNode, prefix string) {
	for i, child := range children {
		connector, indent := domain.Connector(i == len(children)-1)
		line := prefix + connector + child.Kind.Tag() + " " + child.DisplayName
		b.WriteString(r.colorLine(line) + "\n")
		r.writeChildren(b, child.Children, prefix+indent)
	}
}

// EntryPoints writes one entry point per line.
func (r *Renderer) EntryPoints(displays []string) error {
	var b strings.Builder
	for _, d := range displays {
		b.WriteString(r.tags[domain.TagRoot].Render(style.Dot) + " " + d + "\n")
	}
	if len(displays) == 0 {
		b.WriteString(r.faint.Render("no scripts found") + "\n")
	}
	return r.write(b.String())
}

// Change writes a one-line notice for a completed rebuild.
func (r *Renderer) Change(c domain.GraphChange) error {
	msg := fmt.Sprintf("rebuild #%d: %d event(s), %d invalidated, %d root(s)",
		c.Revision, len(c.Events), len(c.Invalidated), len(c.Roots))
	if c.Purged {
		msg += ", cache purged"
	}
	return r.write(r.faint.Render(msg) + "\n")
}

// Clear wipes the terminal before a redraw.
func (r *Renderer) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.out.ClearScreen()
}

// colorLine colors the first known tag on the line.
func (r *Renderer) colorLine(line string) string {
	start := strings.IndexByte(line, '[')
	if start < 0 {
		return line
	}
	end := strings.IndexByte(line[start:], ']')
	if end < 0 {
		return line
	}
	tag := line[start : start+end+1]
	st, ok := r.tags[tag]
	if !ok {
		return line
	}
	return line[:start] + st.Render(tag) + line[start+end+1:]
}

func (r *Renderer) write(s string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, err := r.out.WriteString(s)
	return err
}
