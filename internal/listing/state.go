package listing

// Every method below returns a new FilterState; the receiver is left as is.

func (f FilterState) SetTitleQuery(q string) FilterState {
	f.TitleQuery = q
	return f
}

func (f FilterState) SetLocationQuery(q string) FilterState {
	f.LocationQuery = q
	return f
}

func (f FilterState) ClearTitleQuery() FilterState    { return f.SetTitleQuery("") }
func (f FilterState) ClearLocationQuery() FilterState { return f.SetLocationQuery("") }

// ToggleCategory adds category when absent and removes it when present.
func (f FilterState) ToggleCategory(category string) FilterState {
	f.categories = toggle(f.categories, category)
	return f
}

// ToggleLocation is ToggleCategory for the location checkboxes. The two sets
// are independent of each other and of LocationQuery.
func (f FilterState) ToggleLocation(location string) FilterState {
	f.locations = toggle(f.locations, location)
	return f
}

// ClearAll drops every selection at once.
func (f FilterState) ClearAll() FilterState { return FilterState{} }

func (f FilterState) Categories() []string { return append([]string(nil), f.categories...) }
func (f FilterState) Locations() []string  { return append([]string(nil), f.locations...) }

func (f FilterState) HasCategory(c string) bool { return indexOf(f.categories, c) >= 0 }
func (f FilterState) HasLocation(l string) bool { return indexOf(f.locations, l) >= 0 }

func (f FilterState) IsEmpty() bool {
	return f.TitleQuery == "" && f.LocationQuery == "" &&
		len(f.categories) == 0 && len(f.locations) == 0
}

type ChipKind int

const (
	ChipTitle ChipKind = iota
	ChipLocationQuery
	ChipCategory
	ChipLocation
)

// Chip is one removable tag in the "current filters" bar.
type Chip struct {
	Kind  ChipKind
	Label string
}

// Chips lists active selections in display order: title, location text,
// categories, then locations.
func (f FilterState) Chips() []Chip {
	var chips []Chip
	if f.TitleQuery != "" {
		chips = append(chips, Chip{Kind: ChipTitle, Label: f.TitleQuery})
	}
	if f.LocationQuery != "" {
		chips = append(chips, Chip{Kind: ChipLocationQuery, Label: f.LocationQuery})
	}
	for _, c := range f.categories {
		chips = append(chips, Chip{Kind: ChipCategory, Label: c})
	}
	for _, l := range f.locations {
		chips = append(chips, Chip{Kind: ChipLocation, Label: l})
	}
	return chips
}

// Remove returns f without the selection chip represents.
func (f FilterState) Remove(chip Chip) FilterState {
	switch chip.Kind {
	case ChipTitle:
		return f.ClearTitleQuery()
	case ChipLocationQuery:
		return f.ClearLocationQuery()
	case ChipCategory:
		if f.HasCategory(chip.Label) {
			return f.ToggleCategory(chip.Label)
		}
	case ChipLocation:
		if f.HasLocation(chip.Label) {
			return f.ToggleLocation(chip.Label)
		}
	}
	return f
}

// toggle never writes into the backing array of xs, so states that share it
// stay independent.
func toggle(xs []string, v string) []string {
	i := indexOf(xs, v)
	if i < 0 {
		out := make([]string, len(xs), len(xs)+1)
		copy(out, xs)
		return append(out, v)
	}
	if len(xs) == 1 {
		return nil
	}
	out := make([]string, 0, len(xs)-1)
	out = append(out, xs[:i]...)
	return append(out, xs[i+1:]...)
}
