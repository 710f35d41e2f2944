// Package fetch is the client for the uselessfacts random-fact API.
//
// The source is stateless and purely random: one record per call, no
// batching, no filtering, and no category awareness. Categories are a
// client-side label attached after the fact.
package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/abelbrown/trivium/internal/fact"
)

// DefaultBaseURL is the public uselessfacts endpoint.
const DefaultBaseURL = "https://uselessfacts.jsph.pl/api/v2"

// Client fetches random facts. Requests are paced by a shared rate
// limiter so burst prefetches stay polite to the public API.
type Client struct {
	baseURL string
	client  *http.Client
	limiter *rate.Limiter
}

// New creates a Client against the public API.
func New(timeout time.Duration) *Client {
	return NewWithBaseURL(DefaultBaseURL, timeout)
}

// NewWithBaseURL creates a Client against a custom endpoint. Tests point
// this at an httptest server.
func NewWithBaseURL(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(rate.Every(200*time.Millisecond), 5),
	}
}

// RandomFact fetches one random fact in the given language. A failed
// fetch is a terminal error for that request; the caller decides whether
// to retry.
func (c *Client) RandomFact(ctx context.Context, language string) (*fact.Fact, error) {
	if language == "" {
		language = "en"
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	url := fmt.Sprintf("%s/facts/random?language=%s", c.baseURL, language)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch fact: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fact API error: %d", resp.StatusCode)
	}

	var f fact.Fact
	if err := json.NewDecoder(resp.Body).Decode(&f); err != nil {
		return nil, fmt.Errorf("decode fact: %w", err)
	}
	return &f, nil
}

// FactByCategory fetches a random fact and tags it with the requested
// category. The upstream source ignores categories entirely, so this is
// the best available approximation.
func (c *Client) FactByCategory(ctx context.Context, category, language string) (*fact.Fact, error) {
	f, err := c.RandomFact(ctx, language)
	if err != nil {
		return nil, err
	}
	if category == "" {
		category = fact.CategoryRandom
	}
	f.Category = category
	return f, nil
}

// RandomFacts fetches count facts via independent concurrent calls. If
// any call fails the whole batch fails; there is no partial result and no
// retry.
func (c *Client) RandomFacts(ctx context.Context, count int, language string) ([]fact.Fact, error) {
	if count <= 0 {
		return nil, nil
	}

	type result struct {
		idx int
		f   *fact.Fact
		err error
	}

	results := make(chan result, count)
	for i := 0; i < count; i++ {
		go func(idx int) {
			f, err := c.RandomFact(ctx, language)
			results <- result{idx: idx, f: f, err: err}
		}(i)
	}

	facts := make([]fact.Fact, count)
	for i := 0; i < count; i++ {
		r := <-results
		if r.err != nil {
			return nil, r.err
		}
		facts[r.idx] = *r.f
	}
	return facts, nil
}
