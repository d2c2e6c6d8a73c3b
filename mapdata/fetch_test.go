package mapdata_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/planb/mapdata"
)

// esi serves a three-system universe; paths in flaky fail once with 503.
type esi struct {
	mu    sync.Mutex
	flaky map[string]bool
	hits  map[string]int
}

func (e *esi) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/latest")
	e.mu.Lock()
	e.hits[path]++
	fail := e.flaky[path] && e.hits[path] == 1
	e.mu.Unlock()
	if fail {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	var body any
	switch path {
	case "/universe/systems/":
		body = []int64{1, 2, 3}
	case "/universe/systems/1/":
		body = map[string]any{"system_id": 1, "name": "A", "stargates": []int64{10}}
	case "/universe/systems/2/":
		body = map[string]any{"system_id": 2, "name": "B", "stargates": []int64{20}}
	case "/universe/systems/3/":
		body = map[string]any{"system_id": 3, "name": "C"}
	case "/universe/stargates/10/":
		body = map[string]any{"stargate_id": 10, "destination": map[string]any{"system_id": 2, "stargate_id": 20}}
	case "/universe/stargates/20/":
		body = map[string]any{"stargate_id": 20, "destination": map[string]any{"system_id": 1, "stargate_id": 10}}
	default:
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(body)
}

func newESI(flaky ...string) (*esi, *httptest.Server) {
	e := &esi{flaky: map[string]bool{}, hits: map[string]int{}}
	for _, p := range flaky {
		e.flaky[p] = true
	}
	return e, httptest.NewServer(e)
}

func fetcher(srv *httptest.Server, opts ...mapdata.FetchOption) *mapdata.Fetcher {
	base := []mapdata.FetchOption{
		mapdata.WithEndpoint(srv.URL + "/latest/"),
		mapdata.WithHTTPClient(srv.Client()),
		mapdata.WithRate(0),
		mapdata.WithWorkers(2),
		mapdata.WithBackoff(time.Millisecond),
	}
	return mapdata.NewFetcher(append(base, opts...)...)
}

func TestFetch(t *testing.T) {
	e, srv := newESI("/universe/systems/2/")
	defer srv.Close()

	d, err := fetcher(srv).Fetch(context.Background())
	require.NoError(t, err)
	assert.Len(t, d.Systems, 3)
	assert.Len(t, d.Stargates, 2)
	assert.Nil(t, d.Systems["3"].Stargates)
	assert.Equal(t, 2, e.hits["/universe/systems/2/"], "one retry after 503")

	specs, err := d.Specs()
	require.NoError(t, err)
	require.Len(t, specs, 3)
	assert.Equal(t, "A", specs[0].Name)
	assert.Len(t, specs[0].Stargates, 1)
	assert.EqualValues(t, 2, specs[0].Stargates[0])
}

func TestFetch_GivesUp(t *testing.T) {
	_, srv := newESI()
	defer srv.Close()

	f := mapdata.NewFetcher(
		mapdata.WithEndpoint(srv.URL+"/nowhere"),
		mapdata.WithHTTPClient(srv.Client()),
		mapdata.WithRate(0),
		mapdata.WithBackoff(time.Millisecond),
	)
	_, err := f.Fetch(context.Background())
	assert.ErrorIs(t, err, mapdata.ErrFetch)
}

func TestFetch_RetriesExhausted(t *testing.T) {
	e, srv := newESI("/universe/systems/")
	defer srv.Close()

	_, err := fetcher(srv, mapdata.WithRetries(0)).Fetch(context.Background())
	assert.ErrorIs(t, err, mapdata.ErrFetch)
	assert.Equal(t, 1, e.hits["/universe/systems/"])
}

func TestFetch_Cancelled(t *testing.T) {
	_, srv := newESI()
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := fetcher(srv).Fetch(ctx)
	assert.Error(t, err)
}
