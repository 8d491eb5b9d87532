// Package spoonacular wraps the two Spoonacular catalog endpoints used by
// the bot. This file implements the HTTP client.
//
// Failure policy (applies to both operations): a single outbound attempt
// per cache miss, bounded by an operation-specific timeout. Any transport
// error, timeout, non-200 status, or undecodable body is logged and
// converted into an absent/empty result — callers cannot distinguish it
// from a legitimately empty result set, and no error ever propagates.
package spoonacular

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

const (
	// DefaultBaseURL is the production Spoonacular API origin.
	DefaultBaseURL = "https://api.spoonacular.com"

	randomPath = "/recipes/random"
	searchPath = "/recipes/findByIngredients"
)

// apiRequests counts real upstream requests (cache hits excluded) by
// endpoint and outcome ("ok", "status", "transport", "decode").
var apiRequests = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "spoonacular_requests_total",
		Help: "Total number of outbound Spoonacular API requests.",
	},
	[]string{"endpoint", "outcome"},
)

func init() {
	prometheus.MustRegister(apiRequests)
}

// ResponseCache is the cache contract the client consults before every
// fetch and populates after every successful one.
type ResponseCache interface {
	Lookup(endpoint string, params map[string]string) (json.RawMessage, bool)
	Store(endpoint string, params map[string]string, payload json.RawMessage)
}

// Translator converts an ingredient term into the API's expected language.
// A failing translator degrades to the verbatim term, never to a failed
// search.
type Translator interface {
	Translate(ctx context.Context, term string) (string, error)
}

// Client calls the Spoonacular API with a cache-first policy and a
// client-side rate limiter (the free tier is tightly quota'd). Construct it
// once and share it; it is safe for concurrent use.
type Client struct {
	// BaseURL may be overridden in tests; defaults to DefaultBaseURL.
	BaseURL string
	// RandomTimeout bounds a /recipes/random fetch.
	RandomTimeout time.Duration
	// SearchTimeout bounds a /recipes/findByIngredients fetch.
	SearchTimeout time.Duration

	apiKey     string
	httpClient *http.Client
	cache      ResponseCache
	translator Translator
	limiter    *rate.Limiter
}

// NewClient constructs a Client with production defaults. The API key is
// appended to real requests only and never participates in cache keys.
// translator may be nil, in which case terms are used verbatim.
func NewClient(apiKey string, cache ResponseCache, translator Translator) *Client {
	return &Client{
		BaseURL:       DefaultBaseURL,
		RandomTimeout: 10 * time.Second,
		SearchTimeout: 15 * time.Second,
		apiKey:        apiKey,
		httpClient:    &http.Client{Timeout: 30 * time.Second},
		cache:         cache,
		translator:    translator,
		// One request per second with a small burst keeps a chatty group
		// well inside the free-tier quota.
		limiter: rate.NewLimiter(rate.Limit(1), 5),
	}
}

// GetRandomRecipe returns one random recipe, optionally filtered by diet.
// An empty or "none" diet applies no filter. It returns nil when nothing
// could be fetched; per the failure policy that is indistinguishable from
// "not found".
func (c *Client) GetRandomRecipe(ctx context.Context, diet string) *Recipe {
	endpoint := c.BaseURL + randomPath
	params := map[string]string{"number": "1"}
	if diet != "" && diet != "none" {
		params["diet"] = diet
	}

	if payload, ok := c.cache.Lookup(endpoint, params); ok {
		var rr randomResponse
		if err := json.Unmarshal(payload, &rr); err == nil && len(rr.Recipes) > 0 {
			return &rr.Recipes[0]
		}
		// Unusable cached payload: fall through to a real fetch.
	}

	body, ok := c.fetch(ctx, "random", endpoint, params, c.RandomTimeout)
	if !ok {
		return nil
	}

	var rr randomResponse
	if err := json.Unmarshal(body, &rr); err != nil {
		apiRequests.WithLabelValues("random", "decode").Inc()
		log.Error().Err(err).Msg("spoonacular: undecodable random recipe response")
		return nil
	}

	c.cache.Store(endpoint, params, body)
	if len(rr.Recipes) == 0 {
		return nil
	}
	return &rr.Recipes[0]
}

// SearchByIngredients returns up to five recipes using the given
// ingredient. The term is translated to English when a translator is
// configured; translation failure falls back to the verbatim term. Results
// are always sorted descending by used-ingredient count, regardless of
// upstream or cache order. An empty slice means "nothing found" in every
// failure mode.
func (c *Client) SearchByIngredients(ctx context.Context, ingredient string) []Recipe {
	term := strings.TrimSpace(ingredient)
	if c.translator != nil {
		if en, err := c.translator.Translate(ctx, term); err != nil {
			log.Warn().Err(err).Str("ingredient", term).Msg("spoonacular: translation failed, using verbatim term")
		} else if en != "" {
			term = en
		}
	}

	endpoint := c.BaseURL + searchPath
	params := map[string]string{
		"ingredients":  term,
		"number":       "5",
		"ignorePantry": "true",
		"ranking":      "2",
	}

	if payload, ok := c.cache.Lookup(endpoint, params); ok {
		var recipes []Recipe
		if err := json.Unmarshal(payload, &recipes); err == nil {
			return sortByUsedIngredients(recipes)
		}
	}

	body, ok := c.fetch(ctx, "findByIngredients", endpoint, params, c.SearchTimeout)
	if !ok {
		return nil
	}

	var recipes []Recipe
	if err := json.Unmarshal(body, &recipes); err != nil {
		apiRequests.WithLabelValues("findByIngredients", "decode").Inc()
		log.Error().Err(err).Msg("spoonacular: undecodable ingredient search response")
		return nil
	}

	c.cache.Store(endpoint, params, body)
	return sortByUsedIngredients(recipes)
}

// fetch performs the single outbound attempt for a cache miss and returns
// the raw body. The API key is attached here, after cache keying.
func (c *Client) fetch(ctx context.Context, name, endpoint string, params map[string]string, timeout time.Duration) ([]byte, bool) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := c.limiter.Wait(ctx); err != nil {
		apiRequests.WithLabelValues(name, "transport").Inc()
		log.Error().Err(err).Str("endpoint", name).Msg("spoonacular: rate limiter wait aborted")
		return nil, false
	}

	q := url.Values{}
	for k, v := range params {
		q.Set(k, v)
	}
	q.Set("apiKey", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+q.Encode(), nil)
	if err != nil {
		apiRequests.WithLabelValues(name, "transport").Inc()
		log.Error().Err(err).Str("endpoint", name).Msg("spoonacular: building request failed")
		return nil, false
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		apiRequests.WithLabelValues(name, "transport").Inc()
		log.Error().Err(err).Str("endpoint", name).Msg("spoonacular: request failed")
		return nil, false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		apiRequests.WithLabelValues(name, "status").Inc()
		log.Error().Int("status", resp.StatusCode).Str("endpoint", name).Msg("spoonacular: non-success status")
		return nil, false
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		apiRequests.WithLabelValues(name, "transport").Inc()
		log.Error().Err(err).Str("endpoint", name).Msg("spoonacular: reading response failed")
		return nil, false
	}

	apiRequests.WithLabelValues(name, "ok").Inc()
	return body, true
}

// sortByUsedIngredients orders recipes so used-ingredient counts are
// non-increasing. The sort is stable to keep upstream order among ties.
func sortByUsedIngredients(recipes []Recipe) []Recipe {
	sort.SliceStable(recipes, func(i, j int) bool {
		return recipes[i].UsedIngredientCount > recipes[j].UsedIngredientCount
	})
	return recipes
}
