package market

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// Resolver enriches stock rows with market identifiers. Implementations are
// best-effort: they return sentinel values instead of errors so a provider
// outage can never fail an upload.
type Resolver interface {
	ResolveTicker(ctx context.Context, name string) string
	ResolveSector(ctx context.Context, ticker string) string
}

// Client talks to the market-data provider's search and profile endpoints.
type Client struct {
	baseURL string
	http    *http.Client
	log     *logrus.Logger
}

func NewClient(baseURL string, timeout time.Duration, log *logrus.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

// getJSON performs a GET against the provider and unmarshals the JSON body.
// The request is bound to ctx so an aborted upload stops in-flight lookups.
func (c *Client) getJSON(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("cannot GET %s: %s", path, resp.Status)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
