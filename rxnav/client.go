// Package rxnav implements the NameResolver and InteractionProvider
// contracts against the RxNav/RxNorm REST API
// (https://rxnav.nlm.nih.gov/). All calls go through a circuit breaker so a
// flapping upstream degrades to rule-only results instead of stalling every
// request; resolved identifiers are cached in a small LRU since drug names
// repeat heavily across requests.
package rxnav

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/sony/gobreaker"

	"github.com/pillsync/pillsync-api/interfaces"
	"github.com/pillsync/pillsync-api/logging"
	"github.com/pillsync/pillsync-api/metrics"
)

const providerName = "RxNav"

// Client talks to the RxNav REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
	cache      *lru.Cache[string, string]
}

// NewClient creates a client for the given base URL, e.g.
// "https://rxnav.nlm.nih.gov/REST".
func NewClient(baseURL string, timeout time.Duration, cacheSize int) (*Client, error) {
	cache, err := lru.New[string, string](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create rxcui cache: %w", err)
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        providerName,
		MaxRequests: 3,
		Interval:    30 * time.Second,
		Timeout:     60 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 3 && failureRatio >= 0.6
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Warn("Circuit breaker state changed", "breaker", name, "from", from.String(), "to", to.String())
		},
	})

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		breaker:    breaker,
		cache:      cache,
	}, nil
}

// Name implements interfaces.InteractionProvider.
func (c *Client) Name() string { return providerName }

// BreakerState exposes the circuit state for health reporting.
func (c *Client) BreakerState() string { return c.breaker.State().String() }

type rxcuiResponse struct {
	IDGroup struct {
		RxNormID []string `json:"rxnormId"`
	} `json:"idGroup"`
}

// Resolve returns the RxCUI for a drug name, or the empty string when RxNav
// does not know the name. Transport failures and non-200 responses return an
// error; callers treat that the same as unresolved.
func (c *Client) Resolve(ctx context.Context, name string) (string, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return "", nil
	}
	if id, ok := c.cache.Get(key); ok {
		return id, nil
	}

	endpoint := fmt.Sprintf("%s/rxcui.json?name=%s&search=2", c.baseURL, url.QueryEscape(name))

	var parsed rxcuiResponse
	if err := c.getJSON(ctx, endpoint, &parsed); err != nil {
		return "", fmt.Errorf("rxcui lookup for %q: %w", name, err)
	}

	if len(parsed.IDGroup.RxNormID) == 0 {
		c.cache.Add(key, "")
		return "", nil
	}

	id := parsed.IDGroup.RxNormID[0]
	c.cache.Add(key, id)
	return id, nil
}

// Response shape of /interaction/list.json, reduced to the fields we read.
type interactionListResponse struct {
	FullInteractionTypeGroup []struct {
		SourceName          string `json:"sourceName"`
		FullInteractionType []struct {
			MinConcept []struct {
				Name string `json:"name"`
			} `json:"minConcept"`
			InteractionPair []struct {
				Severity    string `json:"severity"`
				Description string `json:"description"`
			} `json:"interactionPair"`
		} `json:"fullInteractionType"`
	} `json:"fullInteractionTypeGroup"`
}

// Interactions returns the raw pairwise records for a list of RxCUIs. An
// empty list yields an empty slice without any network call.
func (c *Client) Interactions(ctx context.Context, ids []string) ([]interfaces.RawInteraction, error) {
	if len(ids) == 0 {
		return []interfaces.RawInteraction{}, nil
	}

	// RxNav separates rxcuis with literal '+' characters.
	endpoint := fmt.Sprintf("%s/interaction/list.json?rxcuis=%s", c.baseURL, strings.Join(ids, "+"))

	var parsed interactionListResponse
	if err := c.getJSON(ctx, endpoint, &parsed); err != nil {
		return nil, fmt.Errorf("interaction list: %w", err)
	}

	var records []interfaces.RawInteraction
	for _, group := range parsed.FullInteractionTypeGroup {
		for _, interaction := range group.FullInteractionType {
			drugA, drugB := "Unknown", "Unknown"
			if len(interaction.MinConcept) > 0 && interaction.MinConcept[0].Name != "" {
				drugA = interaction.MinConcept[0].Name
			}
			if len(interaction.MinConcept) > 1 && interaction.MinConcept[1].Name != "" {
				drugB = interaction.MinConcept[1].Name
			}
			for _, pair := range interaction.InteractionPair {
				severity := pair.Severity
				if severity == "" {
					severity = "N/A"
				}
				description := pair.Description
				if description == "" {
					description = "No description available"
				}
				records = append(records, interfaces.RawInteraction{
					DrugA:       drugA,
					DrugB:       drugB,
					Severity:    severity,
					Description: description,
					Source:      providerName,
				})
			}
		}
	}
	return records, nil
}

// getJSON performs a GET through the circuit breaker and decodes the body.
func (c *Client) getJSON(ctx context.Context, endpoint string, out any) error {
	start := time.Now()
	_, err := c.breaker.Execute(func() (any, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, err
		}
		defer func() {
			if err := resp.Body.Close(); err != nil {
				logging.Warn("Failed to close response body", "error", err)
			}
		}()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
		}

		body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
		if err != nil {
			return nil, fmt.Errorf("failed to read response body: %w", err)
		}
		return nil, json.Unmarshal(body, out)
	})

	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	metrics.ObserveUpstream(providerName, outcome, time.Since(start).Seconds())
	return err
}
