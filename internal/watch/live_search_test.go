package watch

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/innovadata/inventario-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingSearch запоминает тексты выполненных запросов.
type recordingSearch struct {
	mu      sync.Mutex
	queries []string
	byName  []domain.Product
}

func (r *recordingSearch) search(ctx context.Context, query string) ([]domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.queries = append(r.queries, query)

	var result []domain.Product
	for _, p := range r.byName {
		if query == "" || p.Name == query {
			result = append(result, p)
		}
	}

	return result, nil
}

func (r *recordingSearch) executed() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]string, len(r.queries))
	copy(out, r.queries)

	return out
}

func receiveResult(t *testing.T, s *LiveSearch) SearchResult {
	t.Helper()

	select {
	case res, ok := <-s.Results():
		require.True(t, ok, "results channel closed unexpectedly")
		return res
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for search result")
		panic("unreachable")
	}
}

func TestLiveSearch_InitialSnapshotIsBlankQuery(t *testing.T) {
	hub := NewHub(nopLogger{})
	defer hub.Close()

	rec := &recordingSearch{byName: []domain.Product{{ID: 1, Name: "Arroz"}}}
	s := NewLiveSearch(rec.search, hub, 20*time.Millisecond, nopLogger{}, "products")
	defer s.Close()

	res := receiveResult(t, s)
	assert.Equal(t, "", res.Query)
	require.Len(t, res.Products, 1)
	assert.Equal(t, "Arroz", res.Products[0].Name)
}

func TestLiveSearch_DebounceCollapsesRapidTyping(t *testing.T) {
	hub := NewHub(nopLogger{})
	defer hub.Close()

	rec := &recordingSearch{}
	s := NewLiveSearch(rec.search, hub, 40*time.Millisecond, nopLogger{}, "products")
	defer s.Close()

	receiveResult(t, s)

	// Набор быстрее окна: выполниться должен только последний текст
	s.UpdateQuery("A")
	time.Sleep(10 * time.Millisecond)
	s.UpdateQuery("Ar")
	time.Sleep(10 * time.Millisecond)
	s.UpdateQuery("Arr")

	res := receiveResult(t, s)
	assert.Equal(t, "Arr", res.Query)
	assert.Equal(t, []string{"", "Arr"}, rec.executed())
}

func TestLiveSearch_PublishRefreshesCurrentQueryImmediately(t *testing.T) {
	hub := NewHub(nopLogger{})
	defer hub.Close()

	rec := &recordingSearch{}
	s := NewLiveSearch(rec.search, hub, time.Hour, nopLogger{}, "products")
	defer s.Close()

	receiveResult(t, s)

	// Окно огромное, но публикация изменения не ждет его
	hub.Publish("products")

	res := receiveResult(t, s)
	assert.Equal(t, "", res.Query)
	assert.Equal(t, []string{"", ""}, rec.executed())
}

func TestLiveSearch_PublishUsesLatestCommittedQuery(t *testing.T) {
	hub := NewHub(nopLogger{})
	defer hub.Close()

	rec := &recordingSearch{byName: []domain.Product{{ID: 1, Name: "Sal"}}}
	s := NewLiveSearch(rec.search, hub, 10*time.Millisecond, nopLogger{}, "products")
	defer s.Close()

	receiveResult(t, s)

	s.UpdateQuery("Sal")
	res := receiveResult(t, s)
	require.Equal(t, "Sal", res.Query)

	hub.Publish("products")
	res = receiveResult(t, s)
	assert.Equal(t, "Sal", res.Query)
	require.Len(t, res.Products, 1)
}

func TestLiveSearch_RapidInputNeverDeliversStaleResult(t *testing.T) {
	hub := NewHub(nopLogger{})
	defer hub.Close()

	echo := func(ctx context.Context, query string) ([]domain.Product, error) {
		return nil, nil
	}
	s := NewLiveSearch(echo, hub, time.Microsecond, nopLogger{}, "products")

	// Запросы лексикографически возрастают: доставка более старого текста
	// после более нового — нарушение latest-wins
	var violations int
	done := make(chan struct{})
	go func() {
		defer close(done)
		last := ""
		for res := range s.Results() {
			if res.Query < last {
				violations++
			}
			last = res.Query
		}
	}()

	for i := 0; i < 5000; i++ {
		s.UpdateQuery(fmt.Sprintf("%09d", i))
	}
	time.Sleep(20 * time.Millisecond)
	s.Close()
	<-done

	assert.Zero(t, violations)
}

func TestLiveSearch_CloseIsIdempotent(t *testing.T) {
	hub := NewHub(nopLogger{})
	defer hub.Close()

	rec := &recordingSearch{}
	s := NewLiveSearch(rec.search, hub, 10*time.Millisecond, nopLogger{}, "products")

	receiveResult(t, s)

	s.Close()
	assert.NotPanics(t, s.Close)
}

func TestLiveSearch_CloseClosesResults(t *testing.T) {
	hub := NewHub(nopLogger{})
	defer hub.Close()

	rec := &recordingSearch{}
	s := NewLiveSearch(rec.search, hub, 10*time.Millisecond, nopLogger{}, "products")

	receiveResult(t, s)
	s.Close()

	_, ok := <-s.Results()
	assert.False(t, ok)

	// Запросы после Close игнорируются
	assert.NotPanics(t, func() { s.UpdateQuery("tarde") })
}
