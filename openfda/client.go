// Package openfda fetches drug label snippets from the OpenFDA drug label
// API (https://open.fda.gov/apis/drug/label/). Lookups are best effort: rate
// limits and missing labels return nothing rather than an error, and the
// circuit breaker keeps a slow upstream from dragging triage requests down.
package openfda

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"github.com/pillsync/pillsync-api/interfaces"
	"github.com/pillsync/pillsync-api/logging"
	"github.com/pillsync/pillsync-api/metrics"
)

const providerName = "OpenFDA"

var sentencePattern = regexp.MustCompile(`[^.!?]+[.!?]+`)

// Client talks to the OpenFDA drug label endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
}

// NewClient creates a client for the given base URL, e.g.
// "https://api.fda.gov/drug/label.json".
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
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
		}),
	}
}

// BreakerState exposes the circuit state for health reporting.
func (c *Client) BreakerState() string { return c.breaker.State().String() }

type labelResponse struct {
	Results []struct {
		WarningsAndCautions    []string `json:"warnings_and_cautions"`
		DrugInteractions       []string `json:"drug_interactions"`
		InformationForPatients []string `json:"information_for_patients"`
	} `json:"results"`
}

// Snippets returns short label extracts for a drug name, or (nil, nil) when
// no oral-route label matches.
func (c *Client) Snippets(ctx context.Context, drug string) (*interfaces.LabelSnippets, error) {
	search := fmt.Sprintf(`openfda.brand_name:%q AND openfda.route:ORAL`, strings.ToUpper(drug))
	endpoint := fmt.Sprintf("%s?search=%s&limit=1", c.baseURL, url.QueryEscape(search))

	start := time.Now()
	result, err := c.breaker.Execute(func() (any, error) {
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

		// Not-found and rate-limit responses are silent misses, not faults.
		if resp.StatusCode == http.StatusNotFound {
			return (*interfaces.LabelSnippets)(nil), nil
		}
		if resp.StatusCode == http.StatusTooManyRequests {
			logging.Warn("OpenFDA rate limited", "drug", drug)
			return (*interfaces.LabelSnippets)(nil), nil
		}
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
		}

		body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
		if err != nil {
			return nil, fmt.Errorf("failed to read response body: %w", err)
		}

		var parsed labelResponse
		if err := json.Unmarshal(body, &parsed); err != nil {
			return nil, fmt.Errorf("failed to decode label response: %w", err)
		}
		return extractSnippets(parsed), nil
	})

	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	metrics.ObserveUpstream(providerName, outcome, time.Since(start).Seconds())

	if err != nil {
		return nil, fmt.Errorf("label lookup for %q: %w", drug, err)
	}
	snippets, _ := result.(*interfaces.LabelSnippets)
	return snippets, nil
}

func extractSnippets(parsed labelResponse) *interfaces.LabelSnippets {
	if len(parsed.Results) == 0 {
		return nil
	}
	label := parsed.Results[0]
	snippets := &interfaces.LabelSnippets{}

	if len(label.WarningsAndCautions) > 0 {
		snippets.Warnings = firstSentences(label.WarningsAndCautions[0], 2)
	}
	if len(label.DrugInteractions) > 0 {
		snippets.Interactions = firstSentences(label.DrugInteractions[0], 2)
	}
	if len(label.InformationForPatients) > 0 {
		snippets.PatientInfo = firstSentences(label.InformationForPatients[0], 2)
	}

	if snippets.Warnings == "" && snippets.Interactions == "" && snippets.PatientInfo == "" {
		return nil
	}
	return snippets
}

// firstSentences returns the first count sentences of text.
func firstSentences(text string, count int) string {
	if text == "" {
		return ""
	}
	sentences := sentencePattern.FindAllString(text, -1)
	if sentences == nil {
		return strings.TrimSpace(text)
	}
	if len(sentences) > count {
		sentences = sentences[:count]
	}
	return strings.TrimSpace(strings.Join(sentences, " "))
}
