package clob

import (
	"fmt"
)

// Side represents the taker side of an order on the wire.
type Side int32

const (
	SideUnspecified Side = 0
	SideBuy         Side = 1
	SideSell        Side = 2
)

func (s Side) String() string {
	switch s {
	case SideBuy:
		return "buy"
	case SideSell:
		return "sell"
	default:
		return "unspecified"
	}
}

// TimeInForce represents the wire-level time in force of an order.
type TimeInForce int32

const (
	TimeInForceUnspecified TimeInForce = 0
	TimeInForceIOC         TimeInForce = 1
	TimeInForcePostOnly    TimeInForce = 2
	TimeInForceFillOrKill  TimeInForce = 3
)

func (t TimeInForce) String() string {
	switch t {
	case TimeInForceIOC:
		return "ioc"
	case TimeInForcePostOnly:
		return "post_only"
	case TimeInForceFillOrKill:
		return "fill_or_kill"
	default:
		return "unspecified"
	}
}

// ConditionType represents the trigger condition of a conditional order.
type ConditionType int32

const (
	ConditionTypeUnspecified ConditionType = 0
	ConditionTypeStopLoss    ConditionType = 1
	ConditionTypeTakeProfit  ConditionType = 2
)

func (c ConditionType) String() string {
	switch c {
	case ConditionTypeStopLoss:
		return "stop_loss"
	case ConditionTypeTakeProfit:
		return "take_profit"
	default:
		return "unspecified"
	}
}

// OrderFlags classifies an order as short-term, long-term, or conditional.
// The numeric values are part of the wire contract and must not change.
type OrderFlags uint32

const (
	OrderFlagsShortTerm   OrderFlags = 0
	OrderFlagsConditional OrderFlags = 32
	OrderFlagsLongTerm    OrderFlags = 64
)

func (f OrderFlags) String() string {
	switch f {
	case OrderFlagsShortTerm:
		return "short_term"
	case OrderFlagsConditional:
		return "conditional"
	case OrderFlagsLongTerm:
		return "long_term"
	default:
		return fmt.Sprintf("unknown(%d)", uint32(f))
	}
}

// IsStateful reports whether orders with these flags live past the short-term
// block window and therefore expire by block time instead of block height.
func (f OrderFlags) IsStateful() bool {
	return f == OrderFlagsLongTerm || f == OrderFlagsConditional
}

// Valid reports whether the flag value is one of the three recognized classes.
func (f OrderFlags) Valid() bool {
	switch f {
	case OrderFlagsShortTerm, OrderFlagsConditional, OrderFlagsLongTerm:
		return true
	default:
		return false
	}
}

// SubaccountId identifies a numbered sub-ledger under a wallet address.
type SubaccountId struct {
	Owner  string `protobuf:"bytes,1,opt,name=owner,proto3" json:"owner,omitempty"`
	Number uint32 `protobuf:"varint,2,opt,name=number,proto3" json:"number,omitempty"`
}

func (m *SubaccountId) Reset()         { *m = SubaccountId{} }
func (m *SubaccountId) String() string { return fmt.Sprintf("%s/%d", m.Owner, m.Number) }
func (m *SubaccountId) ProtoMessage()  {}

func (m *SubaccountId) XXX_MessageName() string {
	return "perpdex.subaccounts.v1.SubaccountId"
}

// OrderId uniquely identifies an order per subaccount, client id, flags, and
// clob pair. Uniqueness of the client id is the caller's responsibility.
type OrderId struct {
	SubaccountId SubaccountId `protobuf:"bytes,1,opt,name=subaccount_id,json=subaccountId,proto3" json:"subaccount_id"`
	ClientId     uint32       `protobuf:"fixed32,2,opt,name=client_id,json=clientId,proto3" json:"client_id,omitempty"`
	OrderFlags   OrderFlags   `protobuf:"varint,3,opt,name=order_flags,json=orderFlags,proto3,casttype=OrderFlags" json:"order_flags,omitempty"`
	ClobPairId   uint32       `protobuf:"varint,4,opt,name=clob_pair_id,json=clobPairId,proto3" json:"clob_pair_id,omitempty"`
}

func (m *OrderId) Reset() { *m = OrderId{} }
func (m *OrderId) String() string {
	return fmt.Sprintf("%s/%d/%s/%d", m.SubaccountId.String(), m.ClientId, m.OrderFlags, m.ClobPairId)
}
func (m *OrderId) ProtoMessage() {}

func (m *OrderId) XXX_MessageName() string {
	return "perpdex.clob.v1.OrderId"
}

// Order is the wire representation of an order. Exactly one of GoodTilBlock
// and GoodTilBlockTime is set, matching the order flags.
type Order struct {
	OrderId                         OrderId       `protobuf:"bytes,1,opt,name=order_id,json=orderId,proto3" json:"order_id"`
	Side                            Side          `protobuf:"varint,2,opt,name=side,proto3,enum=perpdex.clob.v1.Order_Side" json:"side,omitempty"`
	Quantums                        uint64        `protobuf:"varint,3,opt,name=quantums,proto3" json:"quantums,omitempty"`
	Subticks                        uint64        `protobuf:"varint,4,opt,name=subticks,proto3" json:"subticks,omitempty"`
	GoodTilBlock                    uint32        `protobuf:"varint,5,opt,name=good_til_block,json=goodTilBlock,proto3" json:"good_til_block,omitempty"`
	GoodTilBlockTime                uint32        `protobuf:"fixed32,6,opt,name=good_til_block_time,json=goodTilBlockTime,proto3" json:"good_til_block_time,omitempty"`
	TimeInForce                     TimeInForce   `protobuf:"varint,7,opt,name=time_in_force,json=timeInForce,proto3,enum=perpdex.clob.v1.Order_TimeInForce" json:"time_in_force,omitempty"`
	ReduceOnly                      bool          `protobuf:"varint,8,opt,name=reduce_only,json=reduceOnly,proto3" json:"reduce_only,omitempty"`
	ClientMetadata                  uint32        `protobuf:"varint,9,opt,name=client_metadata,json=clientMetadata,proto3" json:"client_metadata,omitempty"`
	ConditionType                   ConditionType `protobuf:"varint,10,opt,name=condition_type,json=conditionType,proto3,enum=perpdex.clob.v1.Order_ConditionType" json:"condition_type,omitempty"`
	ConditionalOrderTriggerSubticks uint64        `protobuf:"varint,11,opt,name=conditional_order_trigger_subticks,json=conditionalOrderTriggerSubticks,proto3" json:"conditional_order_trigger_subticks,omitempty"`
}

func (m *Order) Reset()         { *m = Order{} }
func (m *Order) String() string { return m.OrderId.String() }
func (m *Order) ProtoMessage()  {}

func (m *Order) XXX_MessageName() string {
	return "perpdex.clob.v1.Order"
}

// IsShortTerm reports whether the order expires by block height.
func (m *Order) IsShortTerm() bool {
	return m.OrderId.OrderFlags == OrderFlagsShortTerm
}
