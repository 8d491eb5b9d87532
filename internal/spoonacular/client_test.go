package spoonacular

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/tbourn/go-recipe-bot/internal/cache"
)

// failingTranslator always errors, forcing the verbatim-term fallback.
type failingTranslator struct{}

func (failingTranslator) Translate(ctx context.Context, term string) (string, error) {
	return "", errors.New("translator down")
}

// fixedTranslator maps every term to a fixed translation.
type fixedTranslator struct{ out string }

func (t fixedTranslator) Translate(ctx context.Context, term string) (string, error) {
	return t.out, nil
}

func newTestClient(t *testing.T, baseURL string, translator Translator) *Client {
	t.Helper()
	c, err := cache.New(t.TempDir(), time.Hour)
	if err != nil {
		t.Fatalf("new cache: %v", err)
	}
	cl := NewClient("test-key", c, translator)
	cl.BaseURL = baseURL
	return cl
}

func TestGetRandomRecipe_FetchesAndDecodes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/recipes/random" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("number"); got != "1" {
			t.Errorf("expected number=1, got %q", got)
		}
		if got := r.URL.Query().Get("apiKey"); got != "test-key" {
			t.Errorf("expected api key on request, got %q", got)
		}
		if r.URL.Query().Has("diet") {
			t.Errorf("no diet filter expected, got %q", r.URL.Query().Get("diet"))
		}
		w.Write([]byte(`{"recipes":[{"id":7,"title":"Stew","sourceUrl":"https://s/7"}]}`))
	}))
	defer srv.Close()

	cl := newTestClient(t, srv.URL, nil)
	r := cl.GetRandomRecipe(context.Background(), "")
	if r == nil {
		t.Fatalf("expected a recipe")
	}
	if r.ID != 7 || r.Title != "Stew" || r.SourceURL != "https://s/7" {
		t.Fatalf("unexpected recipe: %+v", r)
	}
}

func TestGetRandomRecipe_DietFilter(t *testing.T) {
	var gotDiet atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotDiet.Store(r.URL.Query().Get("diet"))
		w.Write([]byte(`{"recipes":[{"id":1,"title":"T"}]}`))
	}))
	defer srv.Close()

	cl := newTestClient(t, srv.URL, nil)
	if cl.GetRandomRecipe(context.Background(), "vegan") == nil {
		t.Fatalf("expected a recipe")
	}
	if gotDiet.Load() != "vegan" {
		t.Fatalf("expected diet=vegan on request, got %v", gotDiet.Load())
	}
}

func TestGetRandomRecipe_NoneDietAppliesNoFilter(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Has("diet") {
			t.Errorf("diet 'none' must not reach the API, got %q", r.URL.Query().Get("diet"))
		}
		w.Write([]byte(`{"recipes":[{"id":1,"title":"T"}]}`))
	}))
	defer srv.Close()

	cl := newTestClient(t, srv.URL, nil)
	if cl.GetRandomRecipe(context.Background(), "none") == nil {
		t.Fatalf("expected a recipe")
	}
}

func TestGetRandomRecipe_SecondCallServedFromCache(t *testing.T) {
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte(`{"recipes":[{"id":7,"title":"Stew"}]}`))
	}))
	defer srv.Close()

	cl := newTestClient(t, srv.URL, nil)
	ctx := context.Background()

	first := cl.GetRandomRecipe(ctx, "vegan")
	second := cl.GetRandomRecipe(ctx, "vegan")
	if first == nil || second == nil {
		t.Fatalf("expected recipes from both calls")
	}
	if first.ID != second.ID {
		t.Fatalf("cached call returned different recipe: %d vs %d", first.ID, second.ID)
	}
	if n := calls.Load(); n != 1 {
		t.Fatalf("expected exactly 1 upstream request, got %d", n)
	}
}

func TestGetRandomRecipe_UpstreamErrorIsAbsent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired) // quota exhausted
	}))
	defer srv.Close()

	cl := newTestClient(t, srv.URL, nil)
	if r := cl.GetRandomRecipe(context.Background(), ""); r != nil {
		t.Fatalf("expected nil on upstream error, got %+v", r)
	}
}

func TestGetRandomRecipe_UndecodableBodyIsAbsent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	}))
	defer srv.Close()

	cl := newTestClient(t, srv.URL, nil)
	if r := cl.GetRandomRecipe(context.Background(), ""); r != nil {
		t.Fatalf("expected nil on undecodable body, got %+v", r)
	}
}

func TestSearchByIngredients_SortedByUsedCountDesc(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("number") != "5" || q.Get("ignorePantry") != "true" || q.Get("ranking") != "2" {
			t.Errorf("unexpected search params: %v", q)
		}
		w.Write([]byte(`[
			{"id":1,"title":"A","usedIngredientCount":1},
			{"id":2,"title":"B","usedIngredientCount":3},
			{"id":3,"title":"C","usedIngredientCount":2}
		]`))
	}))
	defer srv.Close()

	cl := newTestClient(t, srv.URL, nil)
	got := cl.SearchByIngredients(context.Background(), "chicken")
	if len(got) != 3 {
		t.Fatalf("expected 3 recipes, got %d", len(got))
	}
	if got[0].ID != 2 || got[1].ID != 3 || got[2].ID != 1 {
		t.Fatalf("expected descending used count order, got %+v", got)
	}
}

func TestSearchByIngredients_TranslatedTermUsed(t *testing.T) {
	var gotIngredients atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotIngredients.Store(r.URL.Query().Get("ingredients"))
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	cl := newTestClient(t, srv.URL, fixedTranslator{out: "chicken"})
	cl.SearchByIngredients(context.Background(), "курица")
	if gotIngredients.Load() != "chicken" {
		t.Fatalf("expected translated term, got %v", gotIngredients.Load())
	}
}

func TestSearchByIngredients_TranslationFailureFallsBackToVerbatim(t *testing.T) {
	var gotIngredients atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotIngredients.Store(r.URL.Query().Get("ingredients"))
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	cl := newTestClient(t, srv.URL, failingTranslator{})
	cl.SearchByIngredients(context.Background(), "rice")
	if gotIngredients.Load() != "rice" {
		t.Fatalf("expected verbatim term on translation failure, got %v", gotIngredients.Load())
	}
}

func TestSearchByIngredients_CachedResultStillSorted(t *testing.T) {
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte(`[
			{"id":1,"title":"A","usedIngredientCount":1},
			{"id":2,"title":"B","usedIngredientCount":3}
		]`))
	}))
	defer srv.Close()

	cl := newTestClient(t, srv.URL, nil)
	ctx := context.Background()

	cl.SearchByIngredients(ctx, "rice")
	got := cl.SearchByIngredients(ctx, "rice")
	if n := calls.Load(); n != 1 {
		t.Fatalf("expected exactly 1 upstream request, got %d", n)
	}
	if len(got) != 2 || got[0].ID != 2 {
		t.Fatalf("cached result must keep sort invariant, got %+v", got)
	}
}

func TestSortByUsedIngredients_StableOnTies(t *testing.T) {
	in := []Recipe{
		{ID: 1, UsedIngredientCount: 2},
		{ID: 2, UsedIngredientCount: 2},
		{ID: 3, UsedIngredientCount: 5},
	}
	out := sortByUsedIngredients(in)
	if out[0].ID != 3 || out[1].ID != 1 || out[2].ID != 2 {
		t.Fatalf("expected stable descending order, got %+v", out)
	}
}
