package perpetuals

import (
	cdctypes "github.com/cosmos/cosmos-sdk/codec/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// RegisterInterfaces registers the module's message types
func RegisterInterfaces(registry cdctypes.InterfaceRegistry) {
	registry.RegisterImplementations((*sdk.Msg)(nil),
		&MsgCreatePerpetual{},
	)
}

// TypeURLMsgCreatePerpetual is the type URL for MsgCreatePerpetual
const TypeURLMsgCreatePerpetual = "/perpdex.perpetuals.v1.MsgCreatePerpetual"

// PerpetualParams holds the market parameters of a perpetual
type PerpetualParams struct {
	Id                uint32 `protobuf:"varint,1,opt,name=id,proto3" json:"id,omitempty"`
	MarketId          uint32 `protobuf:"varint,2,opt,name=market_id,json=marketId,proto3" json:"market_id,omitempty"`
	Ticker            string `protobuf:"bytes,3,opt,name=ticker,proto3" json:"ticker,omitempty"`
	AtomicResolution  int32  `protobuf:"zigzag32,4,opt,name=atomic_resolution,json=atomicResolution,proto3" json:"atomic_resolution,omitempty"`
	DefaultFundingPpm int32  `protobuf:"zigzag32,5,opt,name=default_funding_ppm,json=defaultFundingPpm,proto3" json:"default_funding_ppm,omitempty"`
	LiquidityTier     uint32 `protobuf:"varint,6,opt,name=liquidity_tier,json=liquidityTier,proto3" json:"liquidity_tier,omitempty"`
}

func (m *PerpetualParams) Reset()         { *m = PerpetualParams{} }
func (m *PerpetualParams) String() string { return m.Ticker }
func (m *PerpetualParams) ProtoMessage()  {}

func (m *PerpetualParams) XXX_MessageName() string {
	return "perpdex.perpetuals.v1.PerpetualParams"
}

// MsgCreatePerpetual creates a perpetual through governance
type MsgCreatePerpetual struct {
	Authority string          `protobuf:"bytes,1,opt,name=authority,proto3" json:"authority,omitempty"`
	Params    PerpetualParams `protobuf:"bytes,2,opt,name=params,proto3" json:"params"`
}

func (m *MsgCreatePerpetual) Reset()         { *m = MsgCreatePerpetual{} }
func (m *MsgCreatePerpetual) String() string { return m.Params.Ticker }
func (m *MsgCreatePerpetual) ProtoMessage()  {}

func (m *MsgCreatePerpetual) XXX_MessageName() string {
	return "perpdex.perpetuals.v1.MsgCreatePerpetual"
}

// GetSigners returns the governance authority
func (m *MsgCreatePerpetual) GetSigners() []sdk.AccAddress {
	authority, _ := sdk.AccAddressFromBech32(m.Authority)
	return []sdk.AccAddress{authority}
}
