package indexer

import (
	errorsmod "cosmossdk.io/errors"
)

// PerpetualMarket is the indexer's view of a tradable market. The numeric
// encoding parameters are pointers so a field the indexer omitted can be told
// apart from a zero value.
type PerpetualMarket struct {
	Ticker                    string  `json:"ticker"`
	Status                    string  `json:"status"`
	ClobPairId                *uint32 `json:"clobPairId,string"`
	AtomicResolution          *int32  `json:"atomicResolution"`
	StepBaseQuantums          *uint64 `json:"stepBaseQuantums"`
	QuantumConversionExponent *int32  `json:"quantumConversionExponent"`
	SubticksPerTick           *uint32 `json:"subticksPerTick"`
	OraclePrice               string  `json:"oraclePrice"`
	PriceChange24H            string  `json:"priceChange24H"`
	Volume24H                 string  `json:"volume24H"`
	Trades24H                 int64   `json:"trades24H"`
	OpenInterest              string  `json:"openInterest"`
}

// PerpetualMarketsResponse is the response envelope of the perpetual markets
// endpoint, keyed by ticker.
type PerpetualMarketsResponse struct {
	Markets map[string]PerpetualMarket `json:"markets"`
}

// MarketMetadata carries the fully-resolved numeric encoding parameters of a
// market. All fields are required before an order can be composed.
type MarketMetadata struct {
	ClobPairId                uint32
	AtomicResolution          int32
	StepBaseQuantums          uint64
	QuantumConversionExponent int32
	SubticksPerTick           uint32
}

// Metadata extracts the encoding parameters, failing on any missing field.
func (m PerpetualMarket) Metadata() (MarketMetadata, error) {
	if m.ClobPairId == nil {
		return MarketMetadata{}, errorsmod.Wrapf(ErrIncompleteMarket, "%s: clobPairId", m.Ticker)
	}
	if m.AtomicResolution == nil {
		return MarketMetadata{}, errorsmod.Wrapf(ErrIncompleteMarket, "%s: atomicResolution", m.Ticker)
	}
	if m.StepBaseQuantums == nil {
		return MarketMetadata{}, errorsmod.Wrapf(ErrIncompleteMarket, "%s: stepBaseQuantums", m.Ticker)
	}
	if m.QuantumConversionExponent == nil {
		return MarketMetadata{}, errorsmod.Wrapf(ErrIncompleteMarket, "%s: quantumConversionExponent", m.Ticker)
	}
	if m.SubticksPerTick == nil {
		return MarketMetadata{}, errorsmod.Wrapf(ErrIncompleteMarket, "%s: subticksPerTick", m.Ticker)
	}
	return MarketMetadata{
		ClobPairId:                *m.ClobPairId,
		AtomicResolution:          *m.AtomicResolution,
		StepBaseQuantums:          *m.StepBaseQuantums,
		QuantumConversionExponent: *m.QuantumConversionExponent,
		SubticksPerTick:           *m.SubticksPerTick,
	}, nil
}
