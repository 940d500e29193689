// Package terminal prints the résumé for a terminal.
package terminal

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/KKangHHee/portfolio/internal/content"
)

// Markdown lays the résumé out as a Markdown document, in the same order
// as the résumé page.
func Markdown(r content.Resume) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", r.Name)
	if r.Role != "" {
		fmt.Fprintf(&b, "**%s**\n\n", r.Role)
	}
	for _, line := range r.Intro {
		fmt.Fprintf(&b, "%s\n\n", line)
	}
	if len(r.Contacts) > 0 {
		for _, c := range r.Contacts {
			fmt.Fprintf(&b, "- %s: %s\n", c.Label, contactText(c))
		}
		b.WriteString("\n")
	}

	if len(r.Summary) > 0 {
		b.WriteString("## Summary\n\n")
		for _, s := range r.Summary {
			fmt.Fprintf(&b, "- %s\n", s)
		}
		b.WriteString("\n")
	}

	if len(r.StackGroups) > 0 {
		b.WriteString("## Stack & Tools\n\n")
		for _, g := range r.StackGroups {
			labels := make([]string, len(g.Tags))
			for i, t := range g.Tags {
				labels[i] = "`" + t.Label + "`"
			}
			fmt.Fprintf(&b, "- **%s**: %s\n", g.Label, strings.Join(labels, " "))
		}
		b.WriteString("\n")
	}

	if len(r.Projects) > 0 {
		b.WriteString("## Projects\n\n")
		for _, p := range r.Projects {
			writeProject(&b, p)
		}
	}

	if len(r.Education) > 0 {
		b.WriteString("## Education\n\n")
		for _, e := range r.Education {
			fmt.Fprintf(&b, "- %s\n", e)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func contactText(c content.Contact) string {
	if c.Text != "" {
		return c.Text
	}
	return c.Href
}

func writeProject(b *strings.Builder, p content.Project) {
	fmt.Fprintf(b, "### [%s] %s\n\n", p.Organization, p.Title)
	fmt.Fprintf(b, "- 서비스: %s\n", p.Service)
	fmt.Fprintf(b, "- 기간 / 인원: %s | %s\n", p.Period, p.Members)
	fmt.Fprintf(b, "- 담당 역할: %s\n", p.Role)
	fmt.Fprintf(b, "- 기술 스택: %s\n\n", strings.Join(p.StackItems(), ", "))

	for i, f := range p.Flows {
		line := f.Problem + " 발생"
		if f.Domain != "" {
			line = f.Domain + " 시, " + line
		}
		fmt.Fprintf(b, "%d. %s\n   ⇒ %s %s\n", i+1, line, f.Solution, f.Result)
	}
	if len(p.Flows) > 0 {
		b.WriteString("\n")
	}
	for _, e := range p.Extras {
		fmt.Fprintf(b, "- %s\n", e)
	}
	if len(p.Extras) > 0 {
		b.WriteString("\n")
	}
}

// Render styles the résumé with glamour. style is a glamour standard style
// name ("dark", "light", "notty") or "auto" to detect the terminal.
func Render(r content.Resume, style string, width int) (string, error) {
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
	if style == "" || style == "auto" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(style))
	}

	tr, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", fmt.Errorf("create terminal renderer: %w", err)
	}
	out, err := tr.Render(Markdown(r))
	if err != nil {
		return "", fmt.Errorf("render resume: %w", err)
	}
	return out, nil
}
