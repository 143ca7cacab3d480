// Package listing implements the job board's browse engine: filtering,
// ordering and pagination of an in-memory job list, plus the session object
// that owns the mutable selections.
//
// Everything here is synchronous and total. Inputs are never mutated.
package listing

import (
	"strings"

	"github.com/justsurfingit/jobboard/internal/models"
)

// FilterState is an immutable set of filter selections. The zero value
// places no constraint on any dimension.
//
// Selected categories and locations have set semantics; the slices keep
// insertion order only so chips render in the order they were picked.
type FilterState struct {
	TitleQuery    string
	LocationQuery string

	categories []string
	locations  []string
}

// Matches reports whether job passes every filter dimension in f.
func Matches(job models.Job, f FilterState) bool {
	return containsFold(job.Title, f.TitleQuery) &&
		containsFold(job.Location, f.LocationQuery) &&
		inSet(f.categories, job.Category) &&
		inSet(f.locations, job.Location)
}

// containsFold is a case-insensitive substring test. An empty query matches
// anything.
func containsFold(s, query string) bool {
	if query == "" {
		return true
	}
	return strings.Contains(strings.ToLower(s), strings.ToLower(query))
}

// inSet is true when set is empty or v is a member.
func inSet(set []string, v string) bool {
	if len(set) == 0 {
		return true
	}
	return indexOf(set, v) >= 0
}

func indexOf(xs []string, v string) int {
	for i, x := range xs {
		if x == v {
			return i
		}
	}
	return -1
}
