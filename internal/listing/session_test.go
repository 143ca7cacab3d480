package listing_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/justsurfingit/jobboard/internal/listing"
	"github.com/justsurfingit/jobboard/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_FilterMutationsResetPage(t *testing.T) {
	mutations := map[string]func(*listing.Session) listing.View{
		"SetTitleQuery":      func(s *listing.Session) listing.View { return s.SetTitleQuery("role") },
		"SetLocationQuery":   func(s *listing.Session) listing.View { return s.SetLocationQuery("rem") },
		"ClearTitleQuery":    func(s *listing.Session) listing.View { return s.ClearTitleQuery() },
		"ClearLocationQuery": func(s *listing.Session) listing.View { return s.ClearLocationQuery() },
		"ToggleCategory":     func(s *listing.Session) listing.View { return s.ToggleCategory("Programming") },
		"ToggleLocation":     func(s *listing.Session) listing.View { return s.ToggleLocation("Remote") },
		"ClearAll":           func(s *listing.Session) listing.View { return s.ClearAll() },
	}

	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			s := listing.NewSession()
			s.SetJobs(makeJobs(20))
			require.Equal(t, 3, s.GoToPage(3).Page.Number)

			v := mutate(s)
			assert.Equal(t, 1, v.Page.Number)
			assert.Equal(t, 1, s.View().Page.Number)
		})
	}
}

func TestSession_RecomputesOnEveryMutation(t *testing.T) {
	s := listing.NewSession()
	s.SetJobs([]models.Job{
		job("a", "Go Engineer", "Programming", "Remote"),
		job("b", "Designer", "Design", "Mumbai"),
		job("c", "Rust Engineer", "Programming", "Mumbai"),
	})

	assert.Equal(t, []string{"c", "b", "a"}, ids(s.View().Page.Items))

	v := s.SetTitleQuery("engineer")
	assert.Equal(t, []string{"c", "a"}, ids(v.Page.Items))

	v = s.ToggleLocation("Mumbai")
	assert.Equal(t, []string{"c"}, ids(v.Page.Items))

	v = s.ClearAll()
	assert.Equal(t, 3, v.Page.TotalResults)
	assert.True(t, v.Filters.IsEmpty())
}

func TestSession_Navigation(t *testing.T) {
	s := listing.NewSession(listing.WithPageCapacity(6))
	s.SetJobs(makeJobs(14))

	assert.Equal(t, 1, s.PrevPage().Page.Number)
	assert.Equal(t, 2, s.NextPage().Page.Number)
	assert.Equal(t, 3, s.NextPage().Page.Number)

	last := s.NextPage()
	assert.Equal(t, 3, last.Page.Number)
	assert.Len(t, last.Page.Items, 2)

	assert.Equal(t, 1, s.GoToPage(0).Page.Number)
	assert.Equal(t, 3, s.GoToPage(1000).Page.Number)
}

func TestSession_SourceShrinkReclampsPage(t *testing.T) {
	s := listing.NewSession()
	s.SetJobs(makeJobs(20))
	s.GoToPage(4)

	v := s.SetJobs(makeJobs(8))
	assert.Equal(t, 2, v.Page.Number)
	assert.Equal(t, 2, v.Page.TotalPages)

	v = s.SetJobs(nil)
	assert.Equal(t, 1, v.Page.Number)
	assert.Empty(t, v.Page.Items)
}

func TestSession_SourceGrowthKeepsPage(t *testing.T) {
	s := listing.NewSession()
	s.SetJobs(makeJobs(13))
	s.GoToPage(2)

	assert.Equal(t, 2, s.SetJobs(makeJobs(30)).Page.Number)
}

func TestSession_StaleFetchDiscarded(t *testing.T) {
	s := listing.NewSession()

	first := s.BeginFetch()
	second := s.BeginFetch()
	assert.True(t, s.View().Loading)

	assert.True(t, s.ResolveFetch(second, makeJobs(2)))
	assert.False(t, s.ResolveFetch(first, makeJobs(10)), "older fetch must not overwrite newer data")
	assert.False(t, s.FailFetch(first, errors.New("late failure")))

	v := s.View()
	assert.Equal(t, 2, v.Page.TotalResults)
	assert.False(t, v.Loading)
	assert.NoError(t, v.FetchErr)
}

func TestSession_FailedFetchKeepsState(t *testing.T) {
	s := listing.NewSession()
	s.SetJobs(makeJobs(14))
	s.ToggleCategory("Programming")
	s.GoToPage(2)

	tok := s.BeginFetch()
	boom := errors.New("network down")
	require.True(t, s.FailFetch(tok, boom))

	v := s.View()
	assert.ErrorIs(t, v.FetchErr, boom)
	assert.Equal(t, 2, v.Page.Number)
	assert.Equal(t, 14, v.Page.TotalResults)
	assert.True(t, v.Filters.HasCategory("Programming"))

	assert.NoError(t, s.DismissError().FetchErr)
}

func TestSession_ObserversSeeEachMutation(t *testing.T) {
	s := listing.NewSession()
	var seen []int
	s.Subscribe(func(v listing.View) { seen = append(seen, v.Page.TotalResults) })

	s.SetJobs(makeJobs(3))
	s.SetTitleQuery("Role 1")
	s.PrevPage() // no-op, no notification
	s.ClearAll()

	assert.Equal(t, []int{3, 1, 3}, seen)
}

func TestSession_ObserversSeeFetchLifecycle(t *testing.T) {
	s := listing.NewSession()
	var loading []bool
	s.Subscribe(func(v listing.View) { loading = append(loading, v.Loading) })

	tok := s.BeginFetch()
	require.Equal(t, []bool{true}, loading, "observers learn a load started")
	require.True(t, s.ResolveFetch(tok, makeJobs(2)))
	assert.Equal(t, []bool{true, false}, loading)

	stale := s.BeginFetch()
	s.SetJobs(makeJobs(1))
	assert.False(t, s.ResolveFetch(stale, makeJobs(5)), "SetJobs supersedes an in-flight load")
	assert.Equal(t, []bool{true, false, true, false}, loading)
	assert.Equal(t, 1, s.View().Page.TotalResults)
}

func TestSession_OrderPostedAtDesc(t *testing.T) {
	jobs := makeJobs(4)
	jobs[0], jobs[3] = jobs[3], jobs[0]

	s := listing.NewSession(listing.WithOrder(listing.OrderPostedAtDesc))
	v := s.SetJobs(jobs)

	assert.Equal(t, []string{"job-03", "job-02", "job-01", "job-00"}, ids(v.Page.Items))
	assert.Equal(t, []string{"job-00", "job-02", "job-01", "job-03"}, ids(s.SetOrder(listing.OrderReverse).Page.Items))
}

func TestSession_ConcurrentReadsSeeWholeStates(t *testing.T) {
	s := listing.NewSession()
	s.SetJobs([]models.Job{
		job("a", "Go Engineer", "Programming", "Remote"),
		job("b", "Designer", "Design", "Mumbai"),
	})

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			s.ApplyFilters(listing.FilterState{}.SetTitleQuery("engineer").ToggleCategory("Programming"))
			s.ClearAll()
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			v := s.View()
			// the two selections are applied together, so a reader sees both or neither
			assert.Equal(t, v.Filters.TitleQuery != "", v.Filters.HasCategory("Programming"))
		}
	}()
	wg.Wait()
}
