package es

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeES(t *testing.T, indexExists bool) (*httptest.Server, *[]string) {
	t.Helper()
	var (
		mu    sync.Mutex
		calls []string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		calls = append(calls, r.Method+" "+r.URL.Path)
		mu.Unlock()

		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/":
			_, _ = io.WriteString(w, `{"version":{"number":"9.0.0"},"tagline":"You Know, for Search"}`)
		case r.Method == http.MethodHead:
			if indexExists {
				w.WriteHeader(http.StatusOK)
				return
			}
			w.WriteHeader(http.StatusNotFound)
		case r.Method == http.MethodPut:
			body, _ := io.ReadAll(r.Body)
			assert.True(t, strings.Contains(string(body), "mappings"))
			_, _ = io.WriteString(w, `{"acknowledged":true}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func TestNewClient_Info(t *testing.T) {
	srv, calls := fakeES(t, true)

	client, err := NewClient(context.Background(), Options{URL: srv.URL})
	require.NoError(t, err)
	require.NotNil(t, client)
	assert.Contains(t, *calls, "GET /")
}

func TestEnsureIndex(t *testing.T) {
	srv, calls := fakeES(t, false)
	client, err := NewClient(context.Background(), Options{URL: srv.URL})
	require.NoError(t, err)

	require.NoError(t, EnsureIndex(context.Background(), client, "products", `{"mappings":{}}`))
	assert.Contains(t, *calls, "PUT /products")
}

func TestEnsureIndex_Exists(t *testing.T) {
	srv, calls := fakeES(t, true)
	client, err := NewClient(context.Background(), Options{URL: srv.URL})
	require.NoError(t, err)

	require.NoError(t, EnsureIndex(context.Background(), client, "products", `{"mappings":{}}`))
	assert.NotContains(t, *calls, "PUT /products")
}

func TestNewClient_Unreachable(t *testing.T) {
	_, err := NewClient(context.Background(), Options{URL: "http://127.0.0.1:1"})
	require.Error(t, err)
}
