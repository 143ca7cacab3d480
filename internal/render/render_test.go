package render

import (
	"errors"
	"testing"

	"github.com/justsurfingit/jobboard/internal/listing"
	"github.com/justsurfingit/jobboard/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnippet(t *testing.T) {
	assert.Equal(t, "Build services in Go.", Snippet("<p>Build <b>services</b>\n in Go.</p>", 0))
	assert.Equal(t, "abc…", Snippet("<p>abcdef</p>", 3))
	assert.Equal(t, "", Snippet("", 10))
}

func TestDescription(t *testing.T) {
	out, err := Description("<p>Use <strong>Go</strong></p><ul><li>gin</li></ul>")
	require.NoError(t, err)
	assert.Contains(t, out, "**Go**")
	assert.Contains(t, out, "gin")
}

func TestView(t *testing.T) {
	jobs := []models.Job{
		{ID: "j1", Title: "Go Engineer", Location: "Remote", Category: "Programming",
			Company: &models.Company{Name: "Acme"}, Description: "<p>Ship it</p>"},
		{ID: "j2", Title: "Designer", Location: "Mumbai", Category: "Design"},
	}
	s := listing.NewSession()
	s.SetJobs(jobs)
	s.ToggleCategory("Programming")

	out := View(s.View())
	assert.Contains(t, out, "Go Engineer")
	assert.Contains(t, out, "Acme")
	assert.Contains(t, out, "Ship it")
	assert.Contains(t, out, "Programming ×")
	assert.NotContains(t, out, "Designer")
	assert.Contains(t, out, "Page 1 of 1 (1 results)")

	v := s.View()
	v.FetchErr = errors.New("connection refused")
	v.Page.Items = nil
	out = View(v)
	assert.Contains(t, out, "connection refused")
	assert.Contains(t, out, "No jobs match")
}

func TestChipsEmpty(t *testing.T) {
	assert.Equal(t, "", Chips(nil))
}
