package main

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jobListServer(t *testing.T, n int) *httptest.Server {
	t.Helper()
	var items []string
	for i := 1; i <= n; i++ {
		loc := "Remote"
		if i%2 == 0 {
			loc = "Mumbai"
		}
		items = append(items, fmt.Sprintf(
			`{"id":"j%d","companyId":"c1","title":"Engineer %d","location":%q,"category":"Programming","level":"Senior"}`, i, i, loc))
	}
	body := `{"success":true,"jobList":[` + strings.Join(items, ",") + `]}`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/job/job-list":
			w.Write([]byte(body))
		case "/api/user/user-application":
			w.Write([]byte(`{"success":true,"jobApplications":[{"jobId":"j2"}]}`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestBrowse_FiltersAndPages(t *testing.T) {
	srv := jobListServer(t, 9)

	var out bytes.Buffer
	err := browse(context.Background(), browseOptions{
		api: srv.URL + "/api", locations: []string{"Remote"}, page: 1, pageSize: 2,
	}, &out)
	require.NoError(t, err)

	// Remote jobs are 1,3,5,7,9; newest first means 9 and 7 on page one.
	s := out.String()
	assert.Contains(t, s, "Engineer 9")
	assert.Contains(t, s, "Engineer 7")
	assert.NotContains(t, s, "Engineer 5")
	assert.Contains(t, s, "Page 1 of 3 (5 results)")
}

func TestBrowse_PageIsClamped(t *testing.T) {
	srv := jobListServer(t, 3)

	var out bytes.Buffer
	require.NoError(t, browse(context.Background(), browseOptions{api: srv.URL + "/api", page: 40, pageSize: 6}, &out))
	assert.Contains(t, out.String(), "Page 1 of 1 (3 results)")
}

func TestBrowse_FetchFailureShowsNotice(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, browse(context.Background(), browseOptions{api: "http://127.0.0.1:1/api", page: 1, pageSize: 6}, &out))
	assert.Contains(t, out.String(), "Could not load jobs")
}

func TestBrowse_Show(t *testing.T) {
	srv := jobListServer(t, 4)

	var out bytes.Buffer
	err := browse(context.Background(), browseOptions{api: srv.URL + "/api", show: "j1", userToken: "sess", pageSize: 6}, &out)
	require.NoError(t, err)

	s := out.String()
	assert.Contains(t, s, "Engineer 1")
	assert.Contains(t, s, "More jobs from this company")
	assert.Contains(t, s, "Engineer 3")
	assert.NotContains(t, s, "Engineer 2", "already applied")

	err = browse(context.Background(), browseOptions{api: srv.URL + "/api", show: "nope", pageSize: 6}, &out)
	assert.Error(t, err)
}

func TestParseOrder(t *testing.T) {
	_, err := parseOrder("sideways")
	assert.Error(t, err)
}
