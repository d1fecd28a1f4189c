// Package ratesync fetches current exchange-rate quotes from the two
// remote sources. It is the only networked collaborator of the rate
// store: any failure (transport, status, malformed payload, missing
// field) is reported as a single error so the caller can fall back to
// persisted rates and flag the session as offline.
package ratesync

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/shopspring/decimal"
)

const (
	officialQuoteName = "Oficial"
	parallelQuoteName = "Paralelo"
)

// Quotes carries the raw values extracted from the remote sources.
// A nil field means the source responded but did not include that
// quote; the rate store keeps its previous value for it.
type Quotes struct {
	Official  *decimal.Decimal
	Parallel  *decimal.Decimal
	EurPerUSD *decimal.Decimal
}

// Client fetches rate quotes over HTTP.
type Client struct {
	http      *http.Client
	quotesURL string
	globalURL string
}

// New creates a rate sync client for the given source URLs.
func New(quotesURL, globalURL string, timeout time.Duration) *Client {
	return &Client{
		http:      &http.Client{Timeout: timeout},
		quotesURL: quotesURL,
		globalURL: globalURL,
	}
}

// Fetch retrieves quotes from both sources. Both calls must succeed;
// a failure in either collapses the whole fetch so there is no
// partial-success state.
func (c *Client) Fetch(ctx context.Context) (Quotes, error) {
	var quotes Quotes

	official, parallel, err := c.fetchLocalQuotes(ctx)
	if err != nil {
		return Quotes{}, fmt.Errorf("local quotes: %w", err)
	}
	quotes.Official = official
	quotes.Parallel = parallel

	eur, err := c.fetchEurPerUSD(ctx)
	if err != nil {
		return Quotes{}, fmt.Errorf("global rates: %w", err)
	}
	quotes.EurPerUSD = eur

	return quotes, nil
}

// localQuote is one named quote from the local market source.
type localQuote struct {
	Nombre   string  `json:"nombre"`
	Promedio float64 `json:"promedio"`
}

func (c *Client) fetchLocalQuotes(ctx context.Context) (official, parallel *decimal.Decimal, err error) {
	body, err := c.get(ctx, c.quotesURL)
	if err != nil {
		return nil, nil, err
	}

	var all []localQuote
	if err := json.Unmarshal(body, &all); err != nil {
		return nil, nil, fmt.Errorf("decoding quotes: %w", err)
	}

	for _, q := range all {
		if q.Promedio <= 0 {
			continue
		}
		v := decimal.NewFromFloat(q.Promedio)
		switch q.Nombre {
		case officialQuoteName:
			official = &v
		case parallelQuoteName:
			parallel = &v
		}
	}
	return official, parallel, nil
}

func (c *Client) fetchEurPerUSD(ctx context.Context) (*decimal.Decimal, error) {
	body, err := c.get(ctx, c.globalURL)
	if err != nil {
		return nil, err
	}

	// The global source returns a large currency map relative to USD=1;
	// only the EUR leaf is needed.
	var doc interface{}
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("decoding global rates: %w", err)
	}

	raw, err := jsonpath.Get("$.rates.EUR", doc)
	if err != nil {
		return nil, fmt.Errorf("extracting EUR rate: %w", err)
	}

	f, ok := raw.(float64)
	if !ok || f <= 0 {
		return nil, fmt.Errorf("unexpected EUR rate value %v", raw)
	}
	v := decimal.NewFromFloat(f)
	return &v, nil
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET %s: %s", strings.TrimPrefix(url, "https://"), resp.Status)
	}
	return io.ReadAll(resp.Body)
}
