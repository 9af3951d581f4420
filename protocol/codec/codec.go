// Package codec assembles the interface registry and transaction codec shared
// by the wallet and the client. Every message the composer can produce must be
// registered here or Any packing fails at signing time.
//
// The exchange messages are hand-written structs marshaled through gogoproto
// tag reflection and carry no generated descriptors. The transaction codec
// therefore encodes and signs them but cannot decode a transaction containing
// them back into typed messages; no client path decodes wire transactions.
package codec

import (
	sdkclient "github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/codec"
	cdctypes "github.com/cosmos/cosmos-sdk/codec/types"
	"github.com/cosmos/cosmos-sdk/std"
	authtx "github.com/cosmos/cosmos-sdk/x/auth/tx"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"
	banktypes "github.com/cosmos/cosmos-sdk/x/bank/types"
	govv1 "github.com/cosmos/cosmos-sdk/x/gov/types/v1"
	stakingtypes "github.com/cosmos/cosmos-sdk/x/staking/types"

	"github.com/openalpha/perpdex-client/protocol/clob"
	"github.com/openalpha/perpdex-client/protocol/delaymsg"
	"github.com/openalpha/perpdex-client/protocol/perpetuals"
	"github.com/openalpha/perpdex-client/protocol/prices"
	"github.com/openalpha/perpdex-client/protocol/sending"
)

// NewInterfaceRegistry registers the standard cosmos modules plus the
// exchange's own message types.
func NewInterfaceRegistry() cdctypes.InterfaceRegistry {
	registry := cdctypes.NewInterfaceRegistry()
	std.RegisterInterfaces(registry)
	authtypes.RegisterInterfaces(registry)
	banktypes.RegisterInterfaces(registry)
	stakingtypes.RegisterInterfaces(registry)
	govv1.RegisterInterfaces(registry)

	clob.RegisterInterfaces(registry)
	sending.RegisterInterfaces(registry)
	perpetuals.RegisterInterfaces(registry)
	prices.RegisterInterfaces(registry)
	delaymsg.RegisterInterfaces(registry)
	return registry
}

// NewProtoCodec returns a proto codec over the full registry.
func NewProtoCodec() *codec.ProtoCodec {
	return codec.NewProtoCodec(NewInterfaceRegistry())
}

// NewTxConfig returns the transaction codec used for signing and encoding.
func NewTxConfig() sdkclient.TxConfig {
	return authtx.NewTxConfig(NewProtoCodec(), authtx.DefaultSignModes)
}
