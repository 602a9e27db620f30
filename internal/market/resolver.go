package market

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

const (
	// TickerNotFound is stored when no ticker could be resolved for a name.
	TickerNotFound = "Not Found"
	// SectorFallback is stored when no sector could be resolved.
	SectorFallback = "Others"

	// Exchange codes the provider uses for NSE and BSE listings. NSE is
	// preferred because Groww reports name securities by their NSE listing.
	exchangeNSE = "NSI"
	exchangeBSE = "BSE"
)

type quote struct {
	Symbol    string `json:"symbol"`
	Exchange  string `json:"exchange"`
	ShortName string `json:"shortname"`
}

type searchResponse struct {
	Quotes []quote `json:"quotes"`
}

type profileResponse struct {
	QuoteSummary struct {
		Result []struct {
			AssetProfile struct {
				Sector string `json:"sector"`
			} `json:"assetProfile"`
		} `json:"result"`
	} `json:"quoteSummary"`
}

// tickerStages is the ordered tie-break policy for picking one candidate
// out of a symbol search: exact name match on NSE, exact on BSE, substring
// match on NSE, then whatever the provider ranked first.
var tickerStages = []func(name string, q quote) bool{
	func(name string, q quote) bool {
		return q.Exchange == exchangeNSE && strings.EqualFold(q.ShortName, name)
	},
	func(name string, q quote) bool {
		return q.Exchange == exchangeBSE && strings.EqualFold(q.ShortName, name)
	},
	func(name string, q quote) bool {
		return q.Exchange == exchangeNSE && strings.Contains(strings.ToLower(q.ShortName), strings.ToLower(name))
	},
	func(name string, q quote) bool { return true },
}

// ResolveTicker maps a company display name to its best-match ticker.
// Lookup failures of any kind degrade to TickerNotFound; they never surface
// to the upload.
func (c *Client) ResolveTicker(ctx context.Context, name string) string {
	var res searchResponse
	path := "/v1/finance/search?q=" + url.QueryEscape(name)
	if err := c.getJSON(ctx, path, &res); err != nil {
		c.log.Warnf("ticker search failed for %q: %v", name, err)
		return TickerNotFound
	}
	for _, stage := range tickerStages {
		for _, q := range res.Quotes {
			if q.Symbol != "" && stage(name, q) {
				return q.Symbol
			}
		}
	}
	return TickerNotFound
}

// ResolveSector maps a resolved ticker to its industry sector. The sentinel
// ticker short-circuits without a lookup, and every failure path degrades
// to SectorFallback.
func (c *Client) ResolveSector(ctx context.Context, ticker string) string {
	if ticker == TickerNotFound {
		return SectorFallback
	}
	var res profileResponse
	path := fmt.Sprintf("/v10/finance/quoteSummary/%s?modules=assetProfile", url.PathEscape(ticker))
	if err := c.getJSON(ctx, path, &res); err != nil {
		c.log.Warnf("sector lookup failed for %q: %v", ticker, err)
		return SectorFallback
	}
	if len(res.QuoteSummary.Result) == 0 || res.QuoteSummary.Result[0].AssetProfile.Sector == "" {
		return SectorFallback
	}
	return res.QuoteSummary.Result[0].AssetProfile.Sector
}
