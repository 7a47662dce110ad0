// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/pdiddy/trait-explorer/pkg/types"
)

var (
	colorPrimary = lipgloss.Color("#8BC34A")
	colorMuted   = lipgloss.Color("#6b7280")
	colorAccent  = lipgloss.Color("#2196F3")
)

// Styles holds the lipgloss styles used by the text renderer.
type Styles struct {
	Badge       lipgloss.Style
	Heading     lipgloss.Style
	ActiveTab   lipgloss.Style
	InactiveTab lipgloss.Style
	CardTitle   lipgloss.Style
	Subtitle    lipgloss.Style
	Label       lipgloss.Style
	Empty       lipgloss.Style
}

// NewStyles builds styles for r. Passing lipgloss.NewRenderer(w) makes
// colour output follow the capabilities of w, so writing to a file or a
// buffer yields plain text.
func NewStyles(r *lipgloss.Renderer) Styles {
	return Styles{
		Badge:       r.NewStyle().Foreground(colorPrimary).Bold(true),
		Heading:     r.NewStyle().Bold(true),
		ActiveTab:   r.NewStyle().Foreground(colorPrimary).Bold(true).Underline(true),
		InactiveTab: r.NewStyle().Foreground(colorMuted),
		CardTitle:   r.NewStyle().Foreground(colorAccent).Bold(true),
		Subtitle:    r.NewStyle().Foreground(colorMuted),
		Label:       r.NewStyle().Bold(true),
		Empty:       r.NewStyle().Foreground(colorMuted).Italic(true),
	}
}

// Header renders the badge line and the heading line.
func (s Styles) Header(r types.ResearchResult) string {
	return s.Badge.Render(Badge(r)) + "\n" + s.Heading.Render(Heading(r.Query))
}

// TabBar renders all three selectors with active highlighted. Selected
// labels are wrapped in brackets so the choice survives colourless output.
func (s Styles) TabBar(r types.ResearchResult, active Tab) string {
	labels := make([]string, 0, 3)
	for _, t := range Tabs() {
		if t == active {
			labels = append(labels, s.ActiveTab.Render("["+TabLabel(r, t)+"]"))
			continue
		}
		labels = append(labels, s.InactiveTab.Render(" "+TabLabel(r, t)+" "))
	}
	return strings.Join(labels, "  ")
}

// Category renders the cards of category t, or its empty-state message.
func (s Styles) Category(r types.ResearchResult, t Tab) string {
	cards := Cards(r, t)
	if len(cards) == 0 {
		return s.Empty.Render(EmptyMessage(t))
	}
	blocks := make([]string, len(cards))
	for i, c := range cards {
		blocks[i] = s.Card(c)
	}
	return strings.Join(blocks, "\n\n")
}

// Card renders one record.
func (s Styles) Card(c Card) string {
	var b strings.Builder
	b.WriteString(s.CardTitle.Render(c.Title))
	if c.Subtitle != "" {
		b.WriteString("  " + s.Subtitle.Render(c.Subtitle))
	}
	if c.Description != "" {
		b.WriteString("\n  " + c.Description)
	}
	for _, l := range c.Lines {
		fmt.Fprintf(&b, "\n  %s %s", s.Label.Render(l.Label+":"), l.Value)
	}
	return b.String()
}

// FormatText writes r to w with one category selected.
func FormatText(r types.ResearchResult, active Tab, w io.Writer) error {
	s := NewStyles(lipgloss.NewRenderer(w))
	_, err := fmt.Fprintf(w, "%s\n\n%s\n\n%s\n",
		s.Header(r), s.TabBar(r, active), s.Category(r, active))
	return err
}

// FormatTextAll writes r to w with every category expanded in turn.
func FormatTextAll(r types.ResearchResult, w io.Writer) error {
	s := NewStyles(lipgloss.NewRenderer(w))
	if _, err := fmt.Fprintf(w, "%s\n", s.Header(r)); err != nil {
		return err
	}
	for _, t := range Tabs() {
		if _, err := fmt.Fprintf(w, "\n%s\n%s\n", s.Heading.Render(TabLabel(r, t)), s.Category(r, t)); err != nil {
			return err
		}
	}
	return nil
}
