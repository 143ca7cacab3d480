package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJobList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/job/job-list", r.URL.Path)
		w.Write([]byte(`{"success":true,"message":"ok","jobList":[{"id":"j1","title":"Go"},{"id":"j2","title":"Rust"}]}`))
	}))
	defer srv.Close()

	jobs, err := New(srv.URL + "/api/").JobList(context.Background())
	require.NoError(t, err)
	require.Len(t, jobs, 2)
	assert.Equal(t, "j1", jobs[0].ID)
	assert.Equal(t, "Rust", jobs[1].Title)
}

func TestApply(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer sess", r.Header.Get("Authorization"))
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		if body["jobId"] == "dup" {
			w.WriteHeader(http.StatusConflict)
			w.Write([]byte(`{"success":false,"message":"You have already applied for this job"}`))
			return
		}
		w.Write([]byte(`{"success":true,"message":"Job applied successfully"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, WithUserToken("sess"))
	require.NoError(t, c.Apply(context.Background(), "j1"))

	err := c.Apply(context.Background(), "dup")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.Status)
	assert.Equal(t, "You have already applied for this job", apiErr.Message)
}

func TestNonJSONResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>bad gateway</html>"))
	}))
	defer srv.Close()

	_, err := New(srv.URL).Applications(context.Background())
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
}
