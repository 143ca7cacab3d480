package listing

import "github.com/justsurfingit/jobboard/internal/models"

const DefaultPageCapacity = 6

// Page is one window of a result set.
type Page struct {
	Number       int
	Capacity     int
	TotalPages   int
	TotalResults int
	Items        []models.Job
}

func (p Page) HasPrev() bool { return p.Number > 1 }
func (p Page) HasNext() bool { return p.Number < p.TotalPages }

// TotalPages is max(1, ceil(n/capacity)).
func TotalPages(n, capacity int) int {
	capacity = normalizeCapacity(capacity)
	if n <= 0 {
		return 1
	}
	return (n-1)/capacity + 1
}

// Clamp bounds page into [1, totalPages].
func Clamp(page, totalPages int) int {
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		return 1
	}
	if page > totalPages {
		return totalPages
	}
	return page
}

// Paginate returns the requested page of results, clamping the page number
// instead of failing.
func Paginate(results []models.Job, capacity, requested int) Page {
	capacity = normalizeCapacity(capacity)
	total := TotalPages(len(results), capacity)
	n := Clamp(requested, total)

	start := (n - 1) * capacity
	end := start + capacity
	if end > len(results) {
		end = len(results)
	}

	items := []models.Job{}
	if start < end {
		items = append(items, results[start:end]...)
	}
	return Page{
		Number:       n,
		Capacity:     capacity,
		TotalPages:   total,
		TotalResults: len(results),
		Items:        items,
	}
}

func normalizeCapacity(c int) int {
	if c < 1 {
		return DefaultPageCapacity
	}
	return c
}

// Pager tracks the current page number. The zero value is on page 1.
type Pager struct {
	page int
}

func (p *Pager) Current() int {
	if p.page < 1 {
		return 1
	}
	return p.page
}

// Next moves forward one page, stopping at totalPages.
func (p *Pager) Next(totalPages int) int {
	p.page = Clamp(p.Current()+1, totalPages)
	return p.page
}

// Prev moves back one page, stopping at 1.
func (p *Pager) Prev() int {
	p.page = Clamp(p.Current()-1, p.Current())
	return p.page
}

func (p *Pager) GoTo(n, totalPages int) int {
	p.page = Clamp(n, totalPages)
	return p.page
}

func (p *Pager) Reset() { p.page = 1 }

// Reclamp keeps the current page valid after the result set changed size.
func (p *Pager) Reclamp(totalPages int) int {
	p.page = Clamp(p.Current(), totalPages)
	return p.page
}
