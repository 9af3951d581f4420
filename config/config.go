// Package config holds the network endpoints and denom parameters a client
// needs to talk to a perpdex deployment.
package config

import (
	"time"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"cosmossdk.io/math"
)

// Module addresses used as authorities on governance-gated messages.
const (
	GovModuleAddress      = "perp10d07y265gmmuvt4z0w9aw880jnsr700jkwsc2r"
	DelayMsgModuleAddress = "perp1mkkvp26dngu6n8rmalaxyp3gwkjuzztq8ja2kt"
)

// ValidatorConfig describes the validator node connection.
type ValidatorConfig struct {
	GRPCAddr string
	ChainID  string
	// Timeout bounds a single query or broadcast round trip.
	Timeout time.Duration
	// BroadcastPollInterval and BroadcastTimeout bound the wait for block
	// inclusion when broadcasting in commit mode.
	BroadcastPollInterval time.Duration
	BroadcastTimeout      time.Duration
}

// IndexerConfig describes the indexing service connection.
type IndexerConfig struct {
	RESTAddr string
	Timeout  time.Duration
}

// DenomConfig names the fee and transfer denoms of a deployment. The gas
// denoms exist because the simulation layer cannot price IBC denom strings
// directly; fees computed in a gas denom are rewritten to the real denom.
type DenomConfig struct {
	ChainTokenDenom    string
	ChainTokenGasDenom string
	USDCDenom          string
	USDCGasDenom       string
}

// Network bundles everything needed to construct a client.
type Network struct {
	Validator ValidatorConfig
	Indexer   IndexerConfig
	Denoms    DenomConfig
}

// DefaultGasPrice returns the USDC-denominated gas price used for fee
// estimation.
func (n Network) DefaultGasPrice() sdk.DecCoin {
	denom := n.Denoms.USDCGasDenom
	if denom == "" {
		denom = n.Denoms.USDCDenom
	}
	return sdk.NewDecCoinFromDec(denom, math.LegacyMustNewDecFromStr("0.025"))
}

// ChainTokenGasPrice returns the native-token gas price used when fees are
// paid in the chain token.
func (n Network) ChainTokenGasPrice() sdk.DecCoin {
	denom := n.Denoms.ChainTokenGasDenom
	if denom == "" {
		denom = n.Denoms.ChainTokenDenom
	}
	return sdk.NewDecCoinFromDec(denom, math.LegacyMustNewDecFromStr("25000000000"))
}

// MainnetNetwork returns the production deployment configuration.
func MainnetNetwork() Network {
	return Network{
		Validator: ValidatorConfig{
			GRPCAddr:              "validator.perpdex.exchange:9090",
			ChainID:               "perpdex-1",
			Timeout:               10 * time.Second,
			BroadcastPollInterval: 500 * time.Millisecond,
			BroadcastTimeout:      30 * time.Second,
		},
		Indexer: IndexerConfig{
			RESTAddr: "https://indexer.perpdex.exchange",
			Timeout:  10 * time.Second,
		},
		Denoms: DenomConfig{
			ChainTokenDenom:    "uperp",
			ChainTokenGasDenom: "uperp",
			USDCDenom:          "ibc/8E27BA2D5493AF5636760E354E46004562C46AB7EC0CC4C1CA14E9E20E2545B5",
			USDCGasDenom:       "uusdc",
		},
	}
}

// TestnetNetwork returns the public testnet configuration.
func TestnetNetwork() Network {
	n := MainnetNetwork()
	n.Validator.GRPCAddr = "validator.testnet.perpdex.exchange:9090"
	n.Validator.ChainID = "perpdex-testnet-1"
	n.Indexer.RESTAddr = "https://indexer.testnet.perpdex.exchange"
	return n
}

// LocalNetwork returns a configuration pointing at a local devnet.
func LocalNetwork() Network {
	n := MainnetNetwork()
	n.Validator.GRPCAddr = "localhost:9090"
	n.Validator.ChainID = "perpdex-local"
	n.Indexer.RESTAddr = "http://localhost:3000"
	return n
}
