package clob

import (
	cdctypes "github.com/cosmos/cosmos-sdk/codec/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// RegisterInterfaces registers the module's message types
func RegisterInterfaces(registry cdctypes.InterfaceRegistry) {
	registry.RegisterImplementations((*sdk.Msg)(nil),
		&MsgPlaceOrder{},
		&MsgCancelOrder{},
		&MsgCreateClobPair{},
		&MsgUpdateClobPair{},
	)
}

// Type URLs for the module's messages
const (
	TypeURLMsgPlaceOrder     = "/perpdex.clob.v1.MsgPlaceOrder"
	TypeURLMsgCancelOrder    = "/perpdex.clob.v1.MsgCancelOrder"
	TypeURLMsgCreateClobPair = "/perpdex.clob.v1.MsgCreateClobPair"
	TypeURLMsgUpdateClobPair = "/perpdex.clob.v1.MsgUpdateClobPair"
)

// MsgPlaceOrder places an order on a clob pair
type MsgPlaceOrder struct {
	Order Order `protobuf:"bytes,1,opt,name=order,proto3" json:"order"`
}

func (m *MsgPlaceOrder) Reset()         { *m = MsgPlaceOrder{} }
func (m *MsgPlaceOrder) String() string { return m.Order.String() }
func (m *MsgPlaceOrder) ProtoMessage()  {}

func (m *MsgPlaceOrder) XXX_MessageName() string {
	return "perpdex.clob.v1.MsgPlaceOrder"
}

// ValidateBasic checks the expiry-field invariant against the order flags
func (m *MsgPlaceOrder) ValidateBasic() error {
	return ValidateGoodTilBlockAndTime(
		m.Order.OrderId.OrderFlags,
		m.Order.GoodTilBlock,
		m.Order.GoodTilBlockTime,
	)
}

// GetSigners returns the subaccount owner
func (m *MsgPlaceOrder) GetSigners() []sdk.AccAddress {
	owner, _ := sdk.AccAddressFromBech32(m.Order.OrderId.SubaccountId.Owner)
	return []sdk.AccAddress{owner}
}

// MsgCancelOrder cancels a previously placed order. The expiry fields must
// match the original order's flags class.
type MsgCancelOrder struct {
	OrderId          OrderId `protobuf:"bytes,1,opt,name=order_id,json=orderId,proto3" json:"order_id"`
	GoodTilBlock     uint32  `protobuf:"varint,2,opt,name=good_til_block,json=goodTilBlock,proto3" json:"good_til_block,omitempty"`
	GoodTilBlockTime uint32  `protobuf:"fixed32,3,opt,name=good_til_block_time,json=goodTilBlockTime,proto3" json:"good_til_block_time,omitempty"`
}

func (m *MsgCancelOrder) Reset()         { *m = MsgCancelOrder{} }
func (m *MsgCancelOrder) String() string { return m.OrderId.String() }
func (m *MsgCancelOrder) ProtoMessage()  {}

func (m *MsgCancelOrder) XXX_MessageName() string {
	return "perpdex.clob.v1.MsgCancelOrder"
}

// ValidateBasic checks the expiry-field invariant against the order flags
func (m *MsgCancelOrder) ValidateBasic() error {
	return ValidateGoodTilBlockAndTime(m.OrderId.OrderFlags, m.GoodTilBlock, m.GoodTilBlockTime)
}

// GetSigners returns the subaccount owner
func (m *MsgCancelOrder) GetSigners() []sdk.AccAddress {
	owner, _ := sdk.AccAddressFromBech32(m.OrderId.SubaccountId.Owner)
	return []sdk.AccAddress{owner}
}

// ClobPairStatus is the lifecycle status of a clob pair
type ClobPairStatus int32

const (
	ClobPairStatusUnspecified  ClobPairStatus = 0
	ClobPairStatusActive       ClobPairStatus = 1
	ClobPairStatusInitializing ClobPairStatus = 5
)

// PerpetualClobMetadata links a clob pair to its perpetual
type PerpetualClobMetadata struct {
	PerpetualId uint32 `protobuf:"varint,1,opt,name=perpetual_id,json=perpetualId,proto3" json:"perpetual_id,omitempty"`
}

func (m *PerpetualClobMetadata) Reset()         { *m = PerpetualClobMetadata{} }
func (m *PerpetualClobMetadata) String() string { return "" }
func (m *PerpetualClobMetadata) ProtoMessage()  {}

func (m *PerpetualClobMetadata) XXX_MessageName() string {
	return "perpdex.clob.v1.PerpetualClobMetadata"
}

// ClobPair carries the per-market numeric encoding parameters
type ClobPair struct {
	Id                        uint32                `protobuf:"varint,1,opt,name=id,proto3" json:"id,omitempty"`
	PerpetualClobMetadata     PerpetualClobMetadata `protobuf:"bytes,2,opt,name=perpetual_clob_metadata,json=perpetualClobMetadata,proto3" json:"perpetual_clob_metadata"`
	StepBaseQuantums          uint64                `protobuf:"varint,3,opt,name=step_base_quantums,json=stepBaseQuantums,proto3" json:"step_base_quantums,omitempty"`
	SubticksPerTick           uint32                `protobuf:"varint,4,opt,name=subticks_per_tick,json=subticksPerTick,proto3" json:"subticks_per_tick,omitempty"`
	QuantumConversionExponent int32                 `protobuf:"zigzag32,5,opt,name=quantum_conversion_exponent,json=quantumConversionExponent,proto3" json:"quantum_conversion_exponent,omitempty"`
	Status                    ClobPairStatus        `protobuf:"varint,6,opt,name=status,proto3,enum=perpdex.clob.v1.ClobPair_Status" json:"status,omitempty"`
}

func (m *ClobPair) Reset()         { *m = ClobPair{} }
func (m *ClobPair) String() string { return "" }
func (m *ClobPair) ProtoMessage()  {}

func (m *ClobPair) XXX_MessageName() string {
	return "perpdex.clob.v1.ClobPair"
}

// MsgCreateClobPair creates a clob pair through governance
type MsgCreateClobPair struct {
	Authority string   `protobuf:"bytes,1,opt,name=authority,proto3" json:"authority,omitempty"`
	ClobPair  ClobPair `protobuf:"bytes,2,opt,name=clob_pair,json=clobPair,proto3" json:"clob_pair"`
}

func (m *MsgCreateClobPair) Reset()         { *m = MsgCreateClobPair{} }
func (m *MsgCreateClobPair) String() string { return m.Authority }
func (m *MsgCreateClobPair) ProtoMessage()  {}

func (m *MsgCreateClobPair) XXX_MessageName() string {
	return "perpdex.clob.v1.MsgCreateClobPair"
}

// GetSigners returns the governance authority
func (m *MsgCreateClobPair) GetSigners() []sdk.AccAddress {
	authority, _ := sdk.AccAddressFromBech32(m.Authority)
	return []sdk.AccAddress{authority}
}

// MsgUpdateClobPair updates a clob pair through a delayed message
type MsgUpdateClobPair struct {
	Authority string   `protobuf:"bytes,1,opt,name=authority,proto3" json:"authority,omitempty"`
	ClobPair  ClobPair `protobuf:"bytes,2,opt,name=clob_pair,json=clobPair,proto3" json:"clob_pair"`
}

func (m *MsgUpdateClobPair) Reset()         { *m = MsgUpdateClobPair{} }
func (m *MsgUpdateClobPair) String() string { return m.Authority }
func (m *MsgUpdateClobPair) ProtoMessage()  {}

func (m *MsgUpdateClobPair) XXX_MessageName() string {
	return "perpdex.clob.v1.MsgUpdateClobPair"
}

// GetSigners returns the delayed-message authority
func (m *MsgUpdateClobPair) GetSigners() []sdk.AccAddress {
	authority, _ := sdk.AccAddressFromBech32(m.Authority)
	return []sdk.AccAddress{authority}
}
