package listing

import (
	"slices"
	"sync"

	"github.com/justsurfingit/jobboard/internal/models"
)

// View is a consistent snapshot of a Session.
type View struct {
	Filters FilterState
	Order   Order
	Page    Page
	Loading bool
	// FetchErr is the last failed load of the job list, cleared by the next
	// successful one.
	FetchErr error
}

// FetchToken identifies one load of the source job list.
type FetchToken uint64

// Session owns the source job list, the filter selections and the current
// page for one browsing user. Every mutation recomputes the result set before
// the lock is released, so readers never see a half-applied change.
//
// Observers run after the lock is released, on the mutating goroutine.
type Session struct {
	mu        sync.Mutex
	jobs      []models.Job
	filters   FilterState
	order     Order
	capacity  int
	pager     Pager
	results   []models.Job
	fetchSeq  uint64
	loading   bool
	fetchErr  error
	observers []func(View)
}

type Option func(*Session)

func WithOrder(o Order) Option { return func(s *Session) { s.order = o } }

func WithPageCapacity(n int) Option {
	return func(s *Session) { s.capacity = normalizeCapacity(n) }
}

func NewSession(opts ...Option) *Session {
	s := &Session{capacity: DefaultPageCapacity}
	for _, o := range opts {
		o(s)
	}
	s.recompute()
	return s
}

// Subscribe registers fn to receive the view after every mutation.
func (s *Session) Subscribe(fn func(View)) {
	s.mu.Lock()
	s.observers = append(s.observers, fn)
	s.mu.Unlock()
}

func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewLocked()
}

func (s *Session) Filters() FilterState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filters
}

// Results returns the full filtered and ordered set, not just the page.
func (s *Session) Results() []models.Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Job(nil), s.results...)
}

func (s *Session) Jobs() []models.Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Job(nil), s.jobs...)
}

// Filter mutations. Each one returns the user to page 1.

func (s *Session) SetTitleQuery(q string) View {
	return s.updateFilters(func(f FilterState) FilterState { return f.SetTitleQuery(q) })
}

func (s *Session) SetLocationQuery(q string) View {
	return s.updateFilters(func(f FilterState) FilterState { return f.SetLocationQuery(q) })
}

func (s *Session) ClearTitleQuery() View    { return s.updateFilters(FilterState.ClearTitleQuery) }
func (s *Session) ClearLocationQuery() View { return s.updateFilters(FilterState.ClearLocationQuery) }
func (s *Session) ClearAll() View           { return s.updateFilters(FilterState.ClearAll) }

func (s *Session) ToggleCategory(c string) View {
	return s.updateFilters(func(f FilterState) FilterState { return f.ToggleCategory(c) })
}

func (s *Session) ToggleLocation(l string) View {
	return s.updateFilters(func(f FilterState) FilterState { return f.ToggleLocation(l) })
}

func (s *Session) RemoveChip(c Chip) View {
	return s.updateFilters(func(f FilterState) FilterState { return f.Remove(c) })
}

// ApplyFilters replaces every selection in one step.
func (s *Session) ApplyFilters(f FilterState) View {
	return s.updateFilters(func(FilterState) FilterState { return f })
}

func (s *Session) SetOrder(o Order) View {
	return s.mutate(func() bool {
		s.order = o
		s.recompute()
		s.pager.Reset()
		return true
	})
}

// Navigation. Out-of-range moves are clamped, not rejected.

func (s *Session) NextPage() View {
	return s.mutate(func() bool {
		before := s.pager.Current()
		return s.pager.Next(s.totalPagesLocked()) != before
	})
}

func (s *Session) PrevPage() View {
	return s.mutate(func() bool {
		before := s.pager.Current()
		return s.pager.Prev() != before
	})
}

func (s *Session) GoToPage(n int) View {
	return s.mutate(func() bool {
		before := s.pager.Current()
		return s.pager.GoTo(n, s.totalPagesLocked()) != before
	})
}

// BeginFetch marks a load of the job list as in flight. Only the most
// recently issued token can resolve; older loads are discarded.
func (s *Session) BeginFetch() FetchToken {
	var tok FetchToken
	s.mutate(func() bool {
		s.fetchSeq++
		tok = FetchToken(s.fetchSeq)
		s.loading = true
		return true
	})
	return tok
}

// ResolveFetch installs jobs as the new source list if t is still current.
// The page is re-clamped rather than reset.
func (s *Session) ResolveFetch(t FetchToken, jobs []models.Job) bool {
	applied := false
	s.mutate(func() bool {
		if uint64(t) != s.fetchSeq {
			return false
		}
		applied = true
		s.installLocked(jobs)
		return true
	})
	return applied
}

// FailFetch records err for a current load and leaves the job list, filters
// and page untouched.
func (s *Session) FailFetch(t FetchToken, err error) bool {
	applied := false
	s.mutate(func() bool {
		if uint64(t) != s.fetchSeq {
			return false
		}
		applied = true
		s.loading = false
		s.fetchErr = err
		return true
	})
	return applied
}

// SetJobs replaces the source list outright. Loads still in flight are
// discarded when they resolve.
func (s *Session) SetJobs(jobs []models.Job) View {
	return s.mutate(func() bool {
		s.fetchSeq++
		s.installLocked(jobs)
		return true
	})
}

func (s *Session) installLocked(jobs []models.Job) {
	s.jobs = slices.Clone(jobs)
	s.loading = false
	s.fetchErr = nil
	s.recompute()
	s.pager.Reclamp(s.totalPagesLocked())
}

// DismissError clears the last fetch failure.
func (s *Session) DismissError() View {
	return s.mutate(func() bool {
		changed := s.fetchErr != nil
		s.fetchErr = nil
		return changed
	})
}

func (s *Session) updateFilters(fn func(FilterState) FilterState) View {
	return s.mutate(func() bool {
		s.filters = fn(s.filters)
		s.recompute()
		s.pager.Reset()
		return true
	})
}

// mutate runs fn under the lock and notifies observers when fn reports a
// change.
func (s *Session) mutate(fn func() bool) View {
	s.mu.Lock()
	changed := fn()
	v := s.viewLocked()
	observers := slices.Clone(s.observers)
	s.mu.Unlock()

	if !changed {
		return v
	}
	for _, o := range observers {
		o(v)
	}
	return v
}

func (s *Session) recompute() {
	s.results = Compute(s.jobs, s.filters, s.order)
}

func (s *Session) totalPagesLocked() int {
	return TotalPages(len(s.results), s.capacity)
}

func (s *Session) viewLocked() View {
	return View{
		Filters:  s.filters,
		Order:    s.order,
		Page:     Paginate(s.results, s.capacity, s.pager.Current()),
		Loading:  s.loading,
		FetchErr: s.fetchErr,
	}
}
