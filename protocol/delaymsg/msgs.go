package delaymsg

import (
	cdctypes "github.com/cosmos/cosmos-sdk/codec/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// RegisterInterfaces registers the module's message types
func RegisterInterfaces(registry cdctypes.InterfaceRegistry) {
	registry.RegisterImplementations((*sdk.Msg)(nil),
		&MsgDelayMessage{},
	)
}

// TypeURLMsgDelayMessage is the type URL for MsgDelayMessage
const TypeURLMsgDelayMessage = "/perpdex.delaymsg.v1.MsgDelayMessage"

// MsgDelayMessage schedules an embedded message for execution after a number
// of blocks. The embedded message is carried as a packed Any.
type MsgDelayMessage struct {
	Authority   string        `protobuf:"bytes,1,opt,name=authority,proto3" json:"authority,omitempty"`
	Msg         *cdctypes.Any `protobuf:"bytes,2,opt,name=msg,proto3" json:"msg,omitempty"`
	DelayBlocks uint32        `protobuf:"varint,3,opt,name=delay_blocks,json=delayBlocks,proto3" json:"delay_blocks,omitempty"`
}

func (m *MsgDelayMessage) Reset()         { *m = MsgDelayMessage{} }
func (m *MsgDelayMessage) String() string { return m.Authority }
func (m *MsgDelayMessage) ProtoMessage()  {}

func (m *MsgDelayMessage) XXX_MessageName() string {
	return "perpdex.delaymsg.v1.MsgDelayMessage"
}

// GetSigners returns the delayed-message authority
func (m *MsgDelayMessage) GetSigners() []sdk.AccAddress {
	authority, _ := sdk.AccAddressFromBech32(m.Authority)
	return []sdk.AccAddress{authority}
}
