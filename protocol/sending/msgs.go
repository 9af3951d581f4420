package sending

import (
	"fmt"

	cdctypes "github.com/cosmos/cosmos-sdk/codec/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/openalpha/perpdex-client/protocol/clob"
)

// RegisterInterfaces registers the module's message types
func RegisterInterfaces(registry cdctypes.InterfaceRegistry) {
	registry.RegisterImplementations((*sdk.Msg)(nil),
		&MsgCreateTransfer{},
		&MsgDepositToSubaccount{},
		&MsgWithdrawFromSubaccount{},
	)
}

// Type URLs for the module's messages
const (
	TypeURLMsgCreateTransfer         = "/perpdex.sending.v1.MsgCreateTransfer"
	TypeURLMsgDepositToSubaccount    = "/perpdex.sending.v1.MsgDepositToSubaccount"
	TypeURLMsgWithdrawFromSubaccount = "/perpdex.sending.v1.MsgWithdrawFromSubaccount"
)

// Transfer moves quote asset between two subaccounts
type Transfer struct {
	Sender    clob.SubaccountId `protobuf:"bytes,1,opt,name=sender,proto3" json:"sender"`
	Recipient clob.SubaccountId `protobuf:"bytes,2,opt,name=recipient,proto3" json:"recipient"`
	AssetId   uint32            `protobuf:"varint,3,opt,name=asset_id,json=assetId,proto3" json:"asset_id,omitempty"`
	Amount    uint64            `protobuf:"varint,4,opt,name=amount,proto3" json:"amount,omitempty"`
}

func (m *Transfer) Reset() { *m = Transfer{} }
func (m *Transfer) String() string {
	return fmt.Sprintf("%s -> %s", m.Sender.String(), m.Recipient.String())
}
func (m *Transfer) ProtoMessage() {}

func (m *Transfer) XXX_MessageName() string {
	return "perpdex.sending.v1.Transfer"
}

// MsgCreateTransfer wraps a subaccount-to-subaccount transfer
type MsgCreateTransfer struct {
	Transfer Transfer `protobuf:"bytes,1,opt,name=transfer,proto3" json:"transfer"`
}

func (m *MsgCreateTransfer) Reset()         { *m = MsgCreateTransfer{} }
func (m *MsgCreateTransfer) String() string { return m.Transfer.String() }
func (m *MsgCreateTransfer) ProtoMessage()  {}

func (m *MsgCreateTransfer) XXX_MessageName() string {
	return "perpdex.sending.v1.MsgCreateTransfer"
}

// GetSigners returns the sending subaccount owner
func (m *MsgCreateTransfer) GetSigners() []sdk.AccAddress {
	sender, _ := sdk.AccAddressFromBech32(m.Transfer.Sender.Owner)
	return []sdk.AccAddress{sender}
}

// MsgDepositToSubaccount moves funds from a wallet into a subaccount
type MsgDepositToSubaccount struct {
	Sender    string            `protobuf:"bytes,1,opt,name=sender,proto3" json:"sender,omitempty"`
	Recipient clob.SubaccountId `protobuf:"bytes,2,opt,name=recipient,proto3" json:"recipient"`
	AssetId   uint32            `protobuf:"varint,3,opt,name=asset_id,json=assetId,proto3" json:"asset_id,omitempty"`
	Quantums  uint64            `protobuf:"varint,4,opt,name=quantums,proto3" json:"quantums,omitempty"`
}

func (m *MsgDepositToSubaccount) Reset()         { *m = MsgDepositToSubaccount{} }
func (m *MsgDepositToSubaccount) String() string { return m.Sender }
func (m *MsgDepositToSubaccount) ProtoMessage()  {}

func (m *MsgDepositToSubaccount) XXX_MessageName() string {
	return "perpdex.sending.v1.MsgDepositToSubaccount"
}

// GetSigners returns the depositing wallet
func (m *MsgDepositToSubaccount) GetSigners() []sdk.AccAddress {
	sender, _ := sdk.AccAddressFromBech32(m.Sender)
	return []sdk.AccAddress{sender}
}

// MsgWithdrawFromSubaccount moves funds from a subaccount back to a wallet
type MsgWithdrawFromSubaccount struct {
	Sender    clob.SubaccountId `protobuf:"bytes,1,opt,name=sender,proto3" json:"sender"`
	Recipient string            `protobuf:"bytes,2,opt,name=recipient,proto3" json:"recipient,omitempty"`
	AssetId   uint32            `protobuf:"varint,3,opt,name=asset_id,json=assetId,proto3" json:"asset_id,omitempty"`
	Quantums  uint64            `protobuf:"varint,4,opt,name=quantums,proto3" json:"quantums,omitempty"`
}

func (m *MsgWithdrawFromSubaccount) Reset()         { *m = MsgWithdrawFromSubaccount{} }
func (m *MsgWithdrawFromSubaccount) String() string { return m.Recipient }
func (m *MsgWithdrawFromSubaccount) ProtoMessage()  {}

func (m *MsgWithdrawFromSubaccount) XXX_MessageName() string {
	return "perpdex.sending.v1.MsgWithdrawFromSubaccount"
}

// GetSigners returns the subaccount owner
func (m *MsgWithdrawFromSubaccount) GetSigners() []sdk.AccAddress {
	owner, _ := sdk.AccAddressFromBech32(m.Sender.Owner)
	return []sdk.AccAddress{owner}
}
