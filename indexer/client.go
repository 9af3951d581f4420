// Package indexer is a REST client for the exchange's indexing service. The
// core consumes it only for market metadata; metadata is re-fetched on every
// call because market status can change between calls.
package indexer

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	errorsmod "cosmossdk.io/errors"
	"github.com/goccy/go-json"

	"github.com/openalpha/perpdex-client/config"
)

// Client errors
var (
	ErrRequestFailed    = errorsmod.Register("indexer", 1, "indexer request failed")
	ErrMalformedReply   = errorsmod.Register("indexer", 2, "malformed indexer response")
	ErrMarketNotFound   = errorsmod.Register("indexer", 3, "market not found")
	ErrIncompleteMarket = errorsmod.Register("indexer", 4, "market metadata incomplete")
)

// Client talks to the indexer REST API.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates an indexer client from the network configuration.
func NewClient(cfg config.IndexerConfig) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.RESTAddr, "/"),
		http:    &http.Client{Timeout: cfg.Timeout},
	}
}

// get performs a GET request and decodes the JSON body into out.
func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return errorsmod.Wrap(ErrRequestFailed, err.Error())
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return errorsmod.Wrap(ErrRequestFailed, err.Error())
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errorsmod.Wrap(ErrRequestFailed, err.Error())
	}
	if resp.StatusCode != http.StatusOK {
		return errorsmod.Wrapf(ErrRequestFailed, "GET %s: status %d: %s", path, resp.StatusCode, body)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return errorsmod.Wrapf(ErrMalformedReply, "GET %s: %v", path, err)
	}
	return nil
}

// GetPerpetualMarkets fetches market listings. With a ticker the response is
// narrowed to that market; otherwise all markets are returned.
func (c *Client) GetPerpetualMarkets(ctx context.Context, ticker string) (*PerpetualMarketsResponse, error) {
	query := url.Values{}
	if ticker != "" {
		query.Set("ticker", ticker)
	}
	var resp PerpetualMarketsResponse
	if err := c.get(ctx, "/v1/perpetualMarkets", query, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetPerpetualMarket fetches a single market and fails if it is not listed.
func (c *Client) GetPerpetualMarket(ctx context.Context, ticker string) (*PerpetualMarket, error) {
	resp, err := c.GetPerpetualMarkets(ctx, ticker)
	if err != nil {
		return nil, err
	}
	market, ok := resp.Markets[ticker]
	if !ok {
		return nil, errorsmod.Wrap(ErrMarketNotFound, ticker)
	}
	return &market, nil
}

var _ fmt.Stringer = MarketMetadata{}

// String renders the metadata for debug logging.
func (m MarketMetadata) String() string {
	return fmt.Sprintf("clobPair=%d atomicRes=%d step=%d qce=%d subticksPerTick=%d",
		m.ClobPairId, m.AtomicResolution, m.StepBaseQuantums, m.QuantumConversionExponent, m.SubticksPerTick)
}
