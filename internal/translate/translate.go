// Package translate converts ingredient terms into the catalog API's
// expected language. Translation is strictly best-effort: callers fall back
// to the verbatim term on any failure, so this package only ever degrades
// search quality, never availability.
package translate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/text/language"
)

// DefaultBaseURL is the free Google Translate web endpoint. It returns an
// untyped nested-array payload; only the translated segments are consumed.
const DefaultBaseURL = "https://translate.googleapis.com/translate_a/single"

// ErrEmptyResult is returned when the endpoint answered but produced no
// translated text.
var ErrEmptyResult = errors.New("translate: empty result")

// GoogleTranslator translates between a fixed source/target language pair
// over the public web endpoint. It is safe for concurrent use.
type GoogleTranslator struct {
	// BaseURL may be overridden in tests; defaults to DefaultBaseURL.
	BaseURL string
	// Source and Target are the translation language pair.
	Source language.Tag
	Target language.Tag

	httpClient *http.Client
}

// NewGoogleTranslator returns a translator for the Russian→English pair the
// bot's audience needs, with a short timeout so a slow translation service
// cannot stall a search.
func NewGoogleTranslator() *GoogleTranslator {
	return &GoogleTranslator{
		BaseURL:    DefaultBaseURL,
		Source:     language.Russian,
		Target:     language.English,
		httpClient: &http.Client{Timeout: 5 * time.Second},
	}
}

// Translate returns term translated into the target language, lowercased.
// Any transport, status, or decoding failure is returned as an error for
// the caller to degrade on.
func (t *GoogleTranslator) Translate(ctx context.Context, term string) (string, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return "", ErrEmptyResult
	}

	q := url.Values{}
	q.Set("client", "gtx")
	q.Set("sl", t.Source.String())
	q.Set("tl", t.Target.String())
	q.Set("dt", "t")
	q.Set("q", term)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.BaseURL+"?"+q.Encode(), nil)
	if err != nil {
		return "", err
	}

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("translate: status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return decodeSegments(body)
}

// decodeSegments extracts the translated text from the endpoint's nested
// array payload: the first element is a list of [translated, original, …]
// segments which are concatenated in order.
func decodeSegments(body []byte) (string, error) {
	var chunks []json.RawMessage
	if err := json.Unmarshal(body, &chunks); err != nil {
		return "", err
	}
	if len(chunks) == 0 {
		return "", ErrEmptyResult
	}

	var segments [][]any
	if err := json.Unmarshal(chunks[0], &segments); err != nil {
		return "", err
	}

	var b strings.Builder
	for _, seg := range segments {
		if len(seg) == 0 {
			continue
		}
		if s, ok := seg[0].(string); ok {
			b.WriteString(s)
		}
	}

	out := strings.ToLower(strings.TrimSpace(b.String()))
	if out == "" {
		return "", ErrEmptyResult
	}
	return out, nil
}
