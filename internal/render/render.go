// Package render draws a listing session for the terminal.
package render

import (
	"fmt"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/PuerkitoBio/goquery"
	"github.com/charmbracelet/lipgloss"
	"github.com/justsurfingit/jobboard/internal/listing"
	"github.com/justsurfingit/jobboard/internal/models"
)

const snippetLength = 140

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12"))

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8"))

	chipStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("14")).
			Padding(0, 1)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1).
			MarginBottom(1)

	noticeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")).
			Bold(true)

	footerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))
)

// Snippet flattens an HTML description to at most n runes of plain text.
func Snippet(html string, n int) string {
	text := html
	if doc, err := goquery.NewDocumentFromReader(strings.NewReader(html)); err == nil {
		text = doc.Text()
	}
	text = strings.Join(strings.Fields(text), " ")

	runes := []rune(text)
	if n <= 0 || len(runes) <= n {
		return text
	}
	return strings.TrimSpace(string(runes[:n])) + "…"
}

// Description converts an HTML description to markdown for the detail view.
func Description(html string) (string, error) {
	converter := md.NewConverter("", true, nil)
	out, err := converter.ConvertString(html)
	if err != nil {
		return "", fmt.Errorf("convert description: %w", err)
	}
	return out, nil
}

// Chips renders the active filter selections, or nothing when there are none.
func Chips(chips []listing.Chip) string {
	if len(chips) == 0 {
		return ""
	}
	parts := make([]string, 0, len(chips))
	for _, c := range chips {
		parts = append(parts, chipStyle.Render(chipLabel(c)+" ×"))
	}
	return strings.Join(parts, " ")
}

func chipLabel(c listing.Chip) string {
	switch c.Kind {
	case listing.ChipTitle:
		return "title: " + c.Label
	case listing.ChipLocationQuery:
		return "near: " + c.Label
	default:
		return c.Label
	}
}

// Card renders one posting as it appears in the list.
func Card(j models.Job) string {
	company := ""
	if j.Company != nil {
		company = j.Company.Name
	}
	meta := strings.Join(nonEmpty(company, j.Location, j.Level, j.Category), " • ")

	var b strings.Builder
	b.WriteString(titleStyle.Render(j.Title))
	b.WriteString("\n")
	b.WriteString(metaStyle.Render(meta))
	if j.Salary > 0 {
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("CTC: %d", j.Salary))
	}
	if s := Snippet(j.Description, snippetLength); s != "" {
		b.WriteString("\n")
		b.WriteString(s)
	}
	b.WriteString("\n")
	b.WriteString(metaStyle.Render("id " + j.ID))
	return cardStyle.Render(b.String())
}

// View renders a whole session snapshot: notice, chips, cards and footer.
func View(v listing.View) string {
	var b strings.Builder

	if v.FetchErr != nil {
		b.WriteString(noticeStyle.Render("Could not load jobs: " + v.FetchErr.Error()))
		b.WriteString("\n\n")
	}
	if v.Loading {
		b.WriteString(metaStyle.Render("Loading jobs…"))
		b.WriteString("\n\n")
	}
	if chips := Chips(v.Filters.Chips()); chips != "" {
		b.WriteString(chips)
		b.WriteString("\n\n")
	}

	if len(v.Page.Items) == 0 && !v.Loading {
		b.WriteString("No jobs match the current filters.\n\n")
	}
	for _, j := range v.Page.Items {
		b.WriteString(Card(j))
		b.WriteString("\n")
	}

	b.WriteString(footerStyle.Render(footer(v.Page)))
	b.WriteString("\n")
	return b.String()
}

func footer(p listing.Page) string {
	s := fmt.Sprintf("Page %d of %d (%d results)", p.Number, p.TotalPages, p.TotalResults)
	if p.HasPrev() {
		s = "‹ prev  " + s
	}
	if p.HasNext() {
		s += "  next ›"
	}
	return s
}

func nonEmpty(xs ...string) []string {
	out := xs[:0]
	for _, x := range xs {
		if x != "" {
			out = append(out, x)
		}
	}
	return out
}
