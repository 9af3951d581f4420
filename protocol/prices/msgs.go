package prices

import (
	cdctypes "github.com/cosmos/cosmos-sdk/codec/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// RegisterInterfaces registers the module's message types
func RegisterInterfaces(registry cdctypes.InterfaceRegistry) {
	registry.RegisterImplementations((*sdk.Msg)(nil),
		&MsgCreateOracleMarket{},
	)
}

// TypeURLMsgCreateOracleMarket is the type URL for MsgCreateOracleMarket
const TypeURLMsgCreateOracleMarket = "/perpdex.prices.v1.MsgCreateOracleMarket"

// MarketParam holds the oracle parameters of a price market
type MarketParam struct {
	Id                 uint32 `protobuf:"varint,1,opt,name=id,proto3" json:"id,omitempty"`
	Pair               string `protobuf:"bytes,2,opt,name=pair,proto3" json:"pair,omitempty"`
	Exponent           int32  `protobuf:"zigzag32,3,opt,name=exponent,proto3" json:"exponent,omitempty"`
	MinExchanges       uint32 `protobuf:"varint,4,opt,name=min_exchanges,json=minExchanges,proto3" json:"min_exchanges,omitempty"`
	MinPriceChangePpm  uint32 `protobuf:"varint,5,opt,name=min_price_change_ppm,json=minPriceChangePpm,proto3" json:"min_price_change_ppm,omitempty"`
	ExchangeConfigJson string `protobuf:"bytes,6,opt,name=exchange_config_json,json=exchangeConfigJson,proto3" json:"exchange_config_json,omitempty"`
}

func (m *MarketParam) Reset()         { *m = MarketParam{} }
func (m *MarketParam) String() string { return m.Pair }
func (m *MarketParam) ProtoMessage()  {}

func (m *MarketParam) XXX_MessageName() string {
	return "perpdex.prices.v1.MarketParam"
}

// MsgCreateOracleMarket creates an oracle market through governance
type MsgCreateOracleMarket struct {
	Authority string      `protobuf:"bytes,1,opt,name=authority,proto3" json:"authority,omitempty"`
	Params    MarketParam `protobuf:"bytes,2,opt,name=params,proto3" json:"params"`
}

func (m *MsgCreateOracleMarket) Reset()         { *m = MsgCreateOracleMarket{} }
func (m *MsgCreateOracleMarket) String() string { return m.Params.Pair }
func (m *MsgCreateOracleMarket) ProtoMessage()  {}

func (m *MsgCreateOracleMarket) XXX_MessageName() string {
	return "perpdex.prices.v1.MsgCreateOracleMarket"
}

// GetSigners returns the governance authority
func (m *MsgCreateOracleMarket) GetSigners() []sdk.AccAddress {
	authority, _ := sdk.AccAddressFromBech32(m.Authority)
	return []sdk.AccAddress{authority}
}
