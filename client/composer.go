package client

import (
	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"
	cdctypes "github.com/cosmos/cosmos-sdk/codec/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	banktypes "github.com/cosmos/cosmos-sdk/x/bank/types"
	govv1 "github.com/cosmos/cosmos-sdk/x/gov/types/v1"
	stakingtypes "github.com/cosmos/cosmos-sdk/x/staking/types"

	"github.com/openalpha/perpdex-client/protocol/clob"
	"github.com/openalpha/perpdex-client/protocol/delaymsg"
	"github.com/openalpha/perpdex-client/protocol/perpetuals"
	"github.com/openalpha/perpdex-client/protocol/prices"
	"github.com/openalpha/perpdex-client/protocol/sending"
)

// Composer builds protocol messages from fully resolved integer fields. It
// performs no conversion from human units and makes no network calls; every
// method is safe to call concurrently.
type Composer struct{}

// NewComposer returns a stateless message composer.
func NewComposer() *Composer {
	return &Composer{}
}

// ComposePlaceOrder builds a place-order message. Exactly one of goodTilBlock
// and goodTilBlockTime must be set, matching the order flags.
func (c *Composer) ComposePlaceOrder(
	subaccount clob.SubaccountId,
	clientId uint32,
	clobPairId uint32,
	orderFlags clob.OrderFlags,
	side clob.Side,
	quantums uint64,
	subticks uint64,
	timeInForce clob.TimeInForce,
	reduceOnly bool,
	goodTilBlock uint32,
	goodTilBlockTime uint32,
	clientMetadata uint32,
	conditionType clob.ConditionType,
	conditionalOrderTriggerSubticks uint64,
) (*clob.MsgPlaceOrder, error) {
	if err := clob.ValidateGoodTilBlockAndTime(orderFlags, goodTilBlock, goodTilBlockTime); err != nil {
		return nil, err
	}
	return &clob.MsgPlaceOrder{
		Order: clob.Order{
			OrderId: clob.OrderId{
				SubaccountId: subaccount,
				ClientId:     clientId,
				OrderFlags:   orderFlags,
				ClobPairId:   clobPairId,
			},
			Side:                            side,
			Quantums:                        quantums,
			Subticks:                        subticks,
			GoodTilBlock:                    goodTilBlock,
			GoodTilBlockTime:                goodTilBlockTime,
			TimeInForce:                     timeInForce,
			ReduceOnly:                      reduceOnly,
			ClientMetadata:                  clientMetadata,
			ConditionType:                   conditionType,
			ConditionalOrderTriggerSubticks: conditionalOrderTriggerSubticks,
		},
	}, nil
}

// ComposeCancelOrder builds a cancel-order message. The expiry field must
// match the order flags exactly as it did on placement.
func (c *Composer) ComposeCancelOrder(
	subaccount clob.SubaccountId,
	clientId uint32,
	clobPairId uint32,
	orderFlags clob.OrderFlags,
	goodTilBlock uint32,
	goodTilBlockTime uint32,
) (*clob.MsgCancelOrder, error) {
	if err := clob.ValidateGoodTilBlockAndTime(orderFlags, goodTilBlock, goodTilBlockTime); err != nil {
		return nil, err
	}
	return &clob.MsgCancelOrder{
		OrderId: clob.OrderId{
			SubaccountId: subaccount,
			ClientId:     clientId,
			OrderFlags:   orderFlags,
			ClobPairId:   clobPairId,
		},
		GoodTilBlock:     goodTilBlock,
		GoodTilBlockTime: goodTilBlockTime,
	}, nil
}

// ComposeTransfer builds a subaccount-to-subaccount transfer of the quote
// asset, amount in quantums.
func (c *Composer) ComposeTransfer(
	sender clob.SubaccountId,
	recipient clob.SubaccountId,
	assetId uint32,
	amount uint64,
) *sending.MsgCreateTransfer {
	return &sending.MsgCreateTransfer{
		Transfer: sending.Transfer{
			Sender:    sender,
			Recipient: recipient,
			AssetId:   assetId,
			Amount:    amount,
		},
	}
}

// ComposeDepositToSubaccount builds a wallet-to-subaccount deposit.
func (c *Composer) ComposeDepositToSubaccount(
	sender string,
	recipient clob.SubaccountId,
	assetId uint32,
	quantums uint64,
) *sending.MsgDepositToSubaccount {
	return &sending.MsgDepositToSubaccount{
		Sender:    sender,
		Recipient: recipient,
		AssetId:   assetId,
		Quantums:  quantums,
	}
}

// ComposeWithdrawFromSubaccount builds a subaccount-to-wallet withdrawal.
func (c *Composer) ComposeWithdrawFromSubaccount(
	sender clob.SubaccountId,
	recipient string,
	assetId uint32,
	quantums uint64,
) *sending.MsgWithdrawFromSubaccount {
	return &sending.MsgWithdrawFromSubaccount{
		Sender:    sender,
		Recipient: recipient,
		AssetId:   assetId,
		Quantums:  quantums,
	}
}

// ComposeSendToken builds a bank send of a single coin.
func (c *Composer) ComposeSendToken(
	sender string,
	recipient string,
	denom string,
	amount uint64,
) *banktypes.MsgSend {
	return &banktypes.MsgSend{
		FromAddress: sender,
		ToAddress:   recipient,
		Amount:      sdk.NewCoins(sdk.NewCoin(denom, math.NewIntFromUint64(amount))),
	}
}

// ComposeDelegate builds a staking delegation.
func (c *Composer) ComposeDelegate(
	delegator string,
	validator string,
	denom string,
	amount uint64,
) *stakingtypes.MsgDelegate {
	return &stakingtypes.MsgDelegate{
		DelegatorAddress: delegator,
		ValidatorAddress: validator,
		Amount:           sdk.NewCoin(denom, math.NewIntFromUint64(amount)),
	}
}

// ComposeUndelegate builds a staking undelegation.
func (c *Composer) ComposeUndelegate(
	delegator string,
	validator string,
	denom string,
	amount uint64,
) *stakingtypes.MsgUndelegate {
	return &stakingtypes.MsgUndelegate{
		DelegatorAddress: delegator,
		ValidatorAddress: validator,
		Amount:           sdk.NewCoin(denom, math.NewIntFromUint64(amount)),
	}
}

// ComposeSubmitProposal builds a governance proposal carrying the given
// messages, each packed as an Any.
func (c *Composer) ComposeSubmitProposal(
	proposer string,
	msgs []sdk.Msg,
	deposit sdk.Coins,
	title string,
	summary string,
) (*govv1.MsgSubmitProposal, error) {
	anys := make([]*cdctypes.Any, 0, len(msgs))
	for _, msg := range msgs {
		packed, err := cdctypes.NewAnyWithValue(msg)
		if err != nil {
			return nil, errorsmod.Wrapf(ErrUnexpectedResponse, "pack proposal msg: %v", err)
		}
		anys = append(anys, packed)
	}
	return &govv1.MsgSubmitProposal{
		Messages:       anys,
		InitialDeposit: deposit,
		Proposer:       proposer,
		Title:          title,
		Summary:        summary,
	}, nil
}

// ComposeDelayMessage wraps a message for delayed execution.
func (c *Composer) ComposeDelayMessage(
	authority string,
	msg sdk.Msg,
	delayBlocks uint32,
) (*delaymsg.MsgDelayMessage, error) {
	packed, err := cdctypes.NewAnyWithValue(msg)
	if err != nil {
		return nil, errorsmod.Wrapf(ErrUnexpectedResponse, "pack delayed msg: %v", err)
	}
	return &delaymsg.MsgDelayMessage{
		Authority:   authority,
		Msg:         packed,
		DelayBlocks: delayBlocks,
	}, nil
}

// ComposeCreateClobPair builds a governance create-clob-pair message.
func (c *Composer) ComposeCreateClobPair(authority string, pair clob.ClobPair) *clob.MsgCreateClobPair {
	return &clob.MsgCreateClobPair{
		Authority: authority,
		ClobPair:  pair,
	}
}

// ComposeUpdateClobPair builds an update-clob-pair message for the
// delayed-message authority.
func (c *Composer) ComposeUpdateClobPair(authority string, pair clob.ClobPair) *clob.MsgUpdateClobPair {
	return &clob.MsgUpdateClobPair{
		Authority: authority,
		ClobPair:  pair,
	}
}

// ComposeCreatePerpetual builds a governance create-perpetual message.
func (c *Composer) ComposeCreatePerpetual(authority string, params perpetuals.PerpetualParams) *perpetuals.MsgCreatePerpetual {
	return &perpetuals.MsgCreatePerpetual{
		Authority: authority,
		Params:    params,
	}
}

// ComposeCreateOracleMarket builds a governance create-oracle-market message.
func (c *Composer) ComposeCreateOracleMarket(authority string, params prices.MarketParam) *prices.MsgCreateOracleMarket {
	return &prices.MsgCreateOracleMarket{
		Authority: authority,
		Params:    params,
	}
}
