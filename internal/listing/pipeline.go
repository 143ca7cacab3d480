package listing

import (
	"sort"

	"github.com/justsurfingit/jobboard/internal/models"
)

// Order decides how surviving postings are arranged.
type Order int

const (
	// OrderReverse reverses the source order. The job list endpoint returns
	// postings oldest first, so this shows the newest first.
	OrderReverse Order = iota
	// OrderPostedAtDesc sorts by PostedAt, newest first, and does not depend
	// on the source order. Ties keep their reversed source order.
	OrderPostedAtDesc
)

func (o Order) String() string {
	if o == OrderPostedAtDesc {
		return "posted-desc"
	}
	return "reverse"
}

// Compute filters jobs by f and orders the survivors. The returned slice is
// freshly allocated.
func Compute(jobs []models.Job, f FilterState, order Order) []models.Job {
	out := make([]models.Job, 0, len(jobs))
	for i := len(jobs) - 1; i >= 0; i-- {
		if Matches(jobs[i], f) {
			out = append(out, jobs[i])
		}
	}
	if order == OrderPostedAtDesc {
		sort.SliceStable(out, func(a, b int) bool {
			return out[a].PostedAt.After(out[b].PostedAt)
		})
	}
	return out
}
