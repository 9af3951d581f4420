package indexer

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openalpha/perpdex-client/config"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(config.IndexerConfig{RESTAddr: srv.URL, Timeout: time.Second})
}

// TestGetPerpetualMarket tests response decoding and metadata extraction
func TestGetPerpetualMarket(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/perpetualMarkets" {
			http.NotFound(w, r)
			return
		}
		if got := r.URL.Query().Get("ticker"); got != "ETH-USD" {
			t.Errorf("ticker query = %q, expected ETH-USD", got)
		}
		w.Write([]byte(`{
			"markets": {
				"ETH-USD": {
					"ticker": "ETH-USD",
					"status": "ACTIVE",
					"clobPairId": "1",
					"atomicResolution": -9,
					"stepBaseQuantums": 1000000,
					"quantumConversionExponent": -9,
					"subticksPerTick": 100000,
					"oraclePrice": "3000.5"
				}
			}
		}`))
	})

	market, err := client.GetPerpetualMarket(context.Background(), "ETH-USD")
	require.NoError(t, err)
	meta, err := market.Metadata()
	require.NoError(t, err)
	assert.Equal(t, uint32(1), meta.ClobPairId)
	assert.Equal(t, int32(-9), meta.AtomicResolution)
	assert.Equal(t, uint64(1000000), meta.StepBaseQuantums)
}

// TestGetPerpetualMarketNotFound tests the missing ticker case
func TestGetPerpetualMarketNotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"markets": {}}`))
	})

	_, err := client.GetPerpetualMarket(context.Background(), "DOGE-USD")
	if !errors.Is(err, ErrMarketNotFound) {
		t.Errorf("error = %v, expected %v", err, ErrMarketNotFound)
	}
}

// TestMetadataRejectsIncompleteMarket tests per-field presence checks. A zero
// value must still count as present; only omitted fields fail.
func TestMetadataRejectsIncompleteMarket(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"markets": {
				"BTC-USD": {
					"ticker": "BTC-USD",
					"clobPairId": "0",
					"atomicResolution": -10,
					"stepBaseQuantums": 1000000
				}
			}
		}`))
	})

	market, err := client.GetPerpetualMarket(context.Background(), "BTC-USD")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := market.Metadata(); !errors.Is(err, ErrIncompleteMarket) {
		t.Errorf("error = %v, expected %v", err, ErrIncompleteMarket)
	}

	// clobPairId 0 is present, not missing
	if market.ClobPairId == nil || *market.ClobPairId != 0 {
		t.Error("zero clobPairId decoded as missing")
	}
}

// TestErrorStatusCode tests non-200 handling
func TestErrorStatusCode(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	})

	_, err := client.GetPerpetualMarkets(context.Background(), "")
	if !errors.Is(err, ErrRequestFailed) {
		t.Errorf("error = %v, expected %v", err, ErrRequestFailed)
	}
}

// TestMalformedBody tests JSON decode failure
func TestMalformedBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"markets": `))
	})

	_, err := client.GetPerpetualMarkets(context.Background(), "")
	if !errors.Is(err, ErrMalformedReply) {
		t.Errorf("error = %v, expected %v", err, ErrMalformedReply)
	}
}
