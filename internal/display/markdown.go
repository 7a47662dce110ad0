// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/pdiddy/trait-explorer/pkg/types"
)

// Markdown renders r as a markdown document with a section per category.
func Markdown(r types.ResearchResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n**%s**\n", Heading(r.Query), Badge(r))
	if r.Timestamp != "" {
		fmt.Fprintf(&b, "\n_Retrieved %s_\n", r.Timestamp)
	}

	for _, t := range Tabs() {
		fmt.Fprintf(&b, "\n## %s\n\n", TabLabel(r, t))
		cards := Cards(r, t)
		if len(cards) == 0 {
			fmt.Fprintf(&b, "_%s_\n", EmptyMessage(t))
			continue
		}
		for i, c := range cards {
			if i > 0 {
				b.WriteString("\n")
			}
			writeMarkdownCard(&b, c)
		}
	}
	return b.String()
}

func writeMarkdownCard(b *strings.Builder, c Card) {
	fmt.Fprintf(b, "### %s\n\n", c.Title)
	if c.Subtitle != "" {
		fmt.Fprintf(b, "`%s`\n\n", c.Subtitle)
	}
	if c.Description != "" {
		fmt.Fprintf(b, "%s\n\n", c.Description)
	}
	for _, l := range c.Lines {
		fmt.Fprintf(b, "- **%s:** %s\n", l.Label, l.Value)
	}
}

// RenderMarkdown renders markdown for a terminal of the given width using
// glamour's automatic style detection. A non-positive width means 80.
func RenderMarkdown(md string, width int) (string, error) {
	if width <= 0 {
		width = 80
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("creating markdown renderer: %w", err)
	}
	out, err := renderer.Render(md)
	if err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return out, nil
}

// FormatMarkdown writes r to w as terminal-rendered markdown.
func FormatMarkdown(r types.ResearchResult, w io.Writer, width int) error {
	out, err := RenderMarkdown(Markdown(r), width)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}
