package culler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"

	"github.com/nikbrunner/tabzero/internal/search"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/ok", func(w http.ResponseWriter, r *http.Request) {})
	mux.HandleFunc("/gone", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusGone)
	})
	mux.HandleFunc("/get-only", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})
	mux.HandleFunc("/broken", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	mux.HandleFunc("/slow", func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(2 * time.Second):
		case <-r.Context().Done():
		}
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func item(id, url string) search.Item {
	return search.Item{Kind: search.KindBookmark, ID: id, Title: id, URL: url}
}

func TestCheck_ClassifiesResponses(t *testing.T) {
	srv := newServer(t)
	items := []search.Item{
		item("ok", srv.URL+"/ok"),
		item("missing", srv.URL+"/nowhere"),
		item("gone", srv.URL+"/gone"),
		item("get-only", srv.URL+"/get-only"),
		item("broken", srv.URL+"/broken"),
		item("refused", "http://127.0.0.1:1/"),
	}

	var calls atomic.Int32
	c := New(Params{Concurrency: 3, OnProgress: func(done, total int) {
		calls.Add(1)
		assert.Check(t, done <= total)
	}})
	results := c.Check(context.Background(), items)

	assert.Assert(t, is.Len(results, len(items)))
	want := []Status{Healthy, Dead, Dead, Healthy, Unreachable, Unreachable}
	for i, r := range results {
		assert.Check(t, is.Equal(r.Item.ID, items[i].ID))
		assert.Check(t, is.Equal(r.Status, want[i]), r.Item.ID)
	}
	assert.Check(t, is.Equal(results[4].Reason, "Internal Server Error"))
	assert.Check(t, is.Equal(results[5].Reason, "connection refused"))
	assert.Check(t, is.Equal(int(calls.Load()), len(items)))

	dead := DeadItems(results)
	assert.Check(t, is.Len(dead, 2))
}

func TestCheck_Timeout(t *testing.T) {
	srv := newServer(t)
	c := New(Params{Timeout: 50 * time.Millisecond})

	results := c.Check(context.Background(), []search.Item{item("slow", srv.URL+"/slow")})
	assert.Check(t, is.Equal(results[0].Status, Unreachable))
	assert.Check(t, is.Equal(results[0].Reason, "timeout"))
}

func TestCheck_ExcludedDomainIsNotDead(t *testing.T) {
	srv := newServer(t)
	c := New(Params{ExcludeDomains: []string{"127.0.0.1"}})

	results := c.Check(context.Background(), []search.Item{item("private", srv.URL+"/nowhere")})
	assert.Check(t, is.Equal(results[0].Status, Unreachable))
	assert.Check(t, is.Equal(results[0].Reason, "possibly private"))
}

func TestCheck_Empty(t *testing.T) {
	assert.Check(t, is.Nil(New(Params{}).Check(context.Background(), nil)))
}

func TestExcluded_MatchesSubdomains(t *testing.T) {
	c := New(Params{ExcludeDomains: []string{"GitHub.com"}})
	assert.Check(t, c.excluded("https://api.github.com/x"))
	assert.Check(t, c.excluded("https://github.com/private"))
	assert.Check(t, !c.excluded("https://notgithub.com/"))
}
