package ratings

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/pfrederiksen/cinema-times/internal/ratings/cache"
	"github.com/pfrederiksen/cinema-times/internal/retry"
)

const (
	DefaultBaseURL  = "http://www.omdbapi.com/"
	DefaultCacheTTL = 7 * 24 * time.Hour
	DefaultTimeout  = 10 * time.Second
)

// Client is a client for the OMDb API
type Client struct {
	apiKey       string
	baseURL      string
	httpClient   *http.Client
	cache        cache.Cache
	cacheTTL     time.Duration
	rateDelay    time.Duration
	maxAttempts  int
	forceRefresh bool
	lastRequest  time.Time
}

// Config holds configuration for the OMDb client
type Config struct {
	APIKey       string
	BaseURL      string
	Cache        cache.Cache
	CacheTTL     time.Duration
	RateDelay    time.Duration
	MaxAttempts  int
	ForceRefresh bool
}

// NewClient creates a new OMDb API client
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = DefaultCacheTTL
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 3
	}
	return &Client{
		apiKey:       cfg.APIKey,
		baseURL:      cfg.BaseURL,
		httpClient:   &http.Client{Timeout: DefaultTimeout},
		cache:        cfg.Cache,
		cacheTTL:     cfg.CacheTTL,
		rateDelay:    cfg.RateDelay,
		maxAttempts:  cfg.MaxAttempts,
		forceRefresh: cfg.ForceRefresh,
	}
}

// omdbResponse is the wire format of an OMDb title lookup
type omdbResponse struct {
	Response   string       `json:"Response"`
	Error      string       `json:"Error"`
	Title      string       `json:"Title"`
	Year       string       `json:"Year"`
	IMDBRating string       `json:"imdbRating"`
	Ratings    []omdbRating `json:"Ratings"`
}

type omdbRating struct {
	Source string `json:"Source"`
	Value  string `json:"Value"`
}

// Lookup fetches scores for a cleaned title, consulting the cache first.
// A nil error with HasScore false means the movie was not found or carried
// no usable scores; that outcome is cached too.
func (c *Client) Lookup(title string) (*ScoreRecord, error) {
	key := cacheKey(title)

	if c.cache != nil && !c.forceRefresh {
		if data, ok := c.cache.Get(key); ok {
			var rec ScoreRecord
			if err := json.Unmarshal(data, &rec); err == nil {
				return &rec, nil
			}
			// Corrupt entry: fall through to a fresh lookup
		}
	}

	resp, err := c.fetchTitle(title)
	if err != nil {
		return nil, err
	}

	var rec *ScoreRecord
	if resp == nil {
		rec = negativeRecord(title)
	} else {
		rt, metacritic := parseRatings(resp.Ratings)
		imdb := parseIMDBRating(resp.IMDBRating)
		rec = newRecord(title, rt, metacritic, imdb, resp.Title, resp.Year)
	}

	if c.cache != nil {
		if data, err := json.Marshal(rec); err == nil {
			c.cache.Set(key, data, c.cacheTTL)
		}
	}

	return rec, nil
}

// fetchTitle queries the API with bounded retries. Returns nil without error
// when the movie is not found.
func (c *Client) fetchTitle(title string) (*omdbResponse, error) {
	params := url.Values{}
	params.Set("apikey", c.apiKey)
	params.Set("t", title)
	params.Set("type", "movie")

	reqURL := fmt.Sprintf("%s?%s", c.baseURL, params.Encode())

	c.throttle()

	var result omdbResponse
	operation := func() error {
		resp, err := c.httpClient.Get(reqURL)
		if err != nil {
			if retry.IsRetryable(err) {
				return err
			}
			return backoff.Permanent(err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			statusErr := fmt.Errorf("API returned status %d", resp.StatusCode)
			if retry.IsRetryable(statusErr) || retry.IsRateLimited(statusErr) {
				return statusErr
			}
			return backoff.Permanent(statusErr)
		}

		if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
			return backoff.Permanent(fmt.Errorf("parsing response: %w", err))
		}
		return nil
	}

	policy := backoff.WithMaxRetries(backoff.NewExponentialBackOff(), uint64(c.maxAttempts-1))
	if err := backoff.Retry(operation, policy); err != nil {
		return nil, fmt.Errorf("looking up %q: %w", title, err)
	}

	if result.Response == "False" {
		return nil, nil
	}
	return &result, nil
}

// throttle enforces the courtesy delay between consecutive API requests.
// Cache hits never reach here, so they are not delayed.
func (c *Client) throttle() {
	if c.rateDelay <= 0 {
		return
	}
	if !c.lastRequest.IsZero() {
		if wait := c.rateDelay - time.Since(c.lastRequest); wait > 0 {
			time.Sleep(wait)
		}
	}
	c.lastRequest = time.Now()
}

// parseRatings extracts the Rotten Tomatoes and Metacritic scores from the
// OMDb Ratings array. Values arrive as "93%" and "67/100" respectively.
func parseRatings(ratings []omdbRating) (rt int, metacritic int) {
	for _, r := range ratings {
		switch {
		case strings.Contains(r.Source, "Rotten Tomatoes") && strings.Contains(r.Value, "%"):
			if v, err := strconv.Atoi(strings.TrimSuffix(r.Value, "%")); err == nil {
				rt = v
			}
		case strings.Contains(r.Source, "Metacritic") && strings.Contains(r.Value, "/100"):
			if v, err := strconv.Atoi(strings.Split(r.Value, "/")[0]); err == nil {
				metacritic = v
			}
		}
	}
	return rt, metacritic
}

// parseIMDBRating parses the 0-10 imdbRating field; "N/A" and garbage
// become 0 (absent)
func parseIMDBRating(s string) float64 {
	if s == "" || s == "N/A" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// cacheKey normalizes a title into a cache key
func cacheKey(title string) string {
	return strings.ToLower(strings.TrimSpace(title))
}
