package models

import "strings"

var (
	DefaultCategories = []string{
		"Programming",
		"Data Science",
		"Designing",
		"Design",
		"Networking",
		"Management",
		"Marketing",
		"Cybersecurity",
	}

	DefaultLocations = []string{
		"Bangalore",
		"Washington",
		"Hyderabad",
		"Mumbai",
		"California",
		"Chennai",
		"New York",
		"Remote",
	}

	Levels = []string{"Beginner", "Intermediate", "Senior"}
)

// Catalog holds the enumerations a posting is validated against.
type Catalog struct {
	Categories []string
	Locations  []string
	Levels     []string
}

// NewCatalog returns the default catalog with extra locations appended.
// Blank and duplicate entries are ignored.
func NewCatalog(extraLocations ...string) Catalog {
	locations := append([]string(nil), DefaultLocations...)
	for _, loc := range extraLocations {
		loc = strings.TrimSpace(loc)
		if loc == "" || contains(locations, loc) {
			continue
		}
		locations = append(locations, loc)
	}
	return Catalog{
		Categories: append([]string(nil), DefaultCategories...),
		Locations:  locations,
		Levels:     append([]string(nil), Levels...),
	}
}

func (c Catalog) ValidCategory(s string) bool { return contains(c.Categories, s) }
func (c Catalog) ValidLocation(s string) bool { return contains(c.Locations, s) }
func (c Catalog) ValidLevel(s string) bool    { return contains(c.Levels, s) }

func contains(xs []string, s string) bool {
	for _, x := range xs {
		if x == s {
			return true
		}
	}
	return false
}
