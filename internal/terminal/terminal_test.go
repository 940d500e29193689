package terminal

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KKangHHee/portfolio/internal/content"
)

func sampleResume() content.Resume {
	return content.Resume{
		Name:     "Kim",
		Role:     "Backend Developer",
		Contacts: []content.Contact{{Label: "Email", Href: "mailto:kim@example.com"}},
		Summary:  []string{"Builds APIs"},
		StackGroups: []content.StackGroup{
			{Label: "Backend", Tags: []content.TechTag{{Label: "Java"}, {Label: "Spring Boot"}}},
		},
		Projects: []content.Project{
			{
				Organization: "Team",
				Title:        "Ticketing",
				Role:         "Lead",
				Period:       "2025.01 ~ 2025.03",
				Stack:        "Spring Boot, Redis,  ",
				Members:      "BE 2",
				Service:      "Ticket sales",
				Flows: []content.Flow{
					{Domain: "Reservation", Problem: "race condition", Solution: "Redis lock", Result: "no oversell"},
					{Problem: "slow mail", Solution: "async events", Result: "2s faster"},
				},
			},
			{Organization: "Solo", Title: "Quiet", Role: "All", Period: "2024", Stack: "Go", Members: "1", Service: "Tool"},
		},
	}
}

func TestMarkdown(t *testing.T) {
	md := Markdown(sampleResume())

	assert.True(t, strings.HasPrefix(md, "# Kim\n"))
	assert.Contains(t, md, "- Email: mailto:kim@example.com")
	assert.Contains(t, md, "- **Backend**: `Java` `Spring Boot`")
	assert.Contains(t, md, "### [Team] Ticketing")
	assert.Contains(t, md, "- 기술 스택: Spring Boot, Redis\n")
	assert.Contains(t, md, "1. Reservation 시, race condition 발생\n   ⇒ Redis lock no oversell")
	assert.Contains(t, md, "2. slow mail 발생")
	assert.Contains(t, md, "### [Solo] Quiet")
	assert.NotContains(t, md, "## Education")

	assert.Less(t, strings.Index(md, "## Summary"), strings.Index(md, "## Projects"))
}

func TestMarkdownEmbeddedResume(t *testing.T) {
	c, err := content.Load(content.Embedded())
	require.NoError(t, err)

	md := Markdown(c.Resume)
	for _, p := range c.Resume.Projects {
		assert.Contains(t, md, p.Title)
	}
}

func TestRender(t *testing.T) {
	out, err := Render(sampleResume(), "notty", 80)
	require.NoError(t, err)
	assert.Contains(t, out, "Kim")
	assert.Contains(t, out, "Ticketing")
}

func TestRenderUnknownStyle(t *testing.T) {
	_, err := Render(sampleResume(), "no-such-style", 80)
	assert.Error(t, err)
}
