package client

import (
	"context"
	"time"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/log"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/openalpha/perpdex-client/config"
	"github.com/openalpha/perpdex-client/indexer"
	"github.com/openalpha/perpdex-client/protocol/clob"
)

// AssetIdUSDC is the asset id of the quote asset in every subaccount ledger.
const AssetIdUSDC uint32 = 0

// quoteQuantumsPerUnit converts one human USDC into quote quantums.
var quoteQuantumsPerUnit = math.LegacyNewDec(1_000_000)

// PlaceOrderParams are the human-readable inputs of an order placement.
type PlaceOrderParams struct {
	// Market is the indexer ticker, for example "BTC-USD".
	Market string
	Type   clob.OrderType
	Side   clob.OrderSide
	// Price is the human-readable limit price. Market-style orders pass zero.
	Price math.LegacyDec
	// Size is the human-readable order size in base units.
	Size math.LegacyDec
	// ClientId deduplicates the order on chain; uniqueness per subaccount and
	// clob pair is the caller's responsibility.
	ClientId    uint32
	TimeInForce clob.OrderTimeInForce
	// GoodTilTimeInSeconds is the forward expiry window of a stateful order.
	// Required when the computed flags are long-term or conditional.
	GoodTilTimeInSeconds uint32
	Execution            clob.OrderExecution
	PostOnly             bool
	ReduceOnly           bool
	// TriggerPrice is required for conditional order types.
	TriggerPrice *math.LegacyDec
}

// ShortTermOrderParams are the inputs of a latency-sensitive short-term
// placement where the caller manages the expiry height directly.
type ShortTermOrderParams struct {
	Market   string
	Side     clob.OrderSide
	Price    math.LegacyDec
	Size     math.LegacyDec
	ClientId uint32
	// GoodTilBlock must land in (current height, current height + short block
	// window]. Validated locally before any message is composed.
	GoodTilBlock uint32
	TimeInForce  clob.TimeInForce
	ReduceOnly   bool
}

// CancelOrderParams identify a resting order. The expiry field must match the
// flags the order was placed with.
type CancelOrderParams struct {
	Market           string
	ClientId         uint32
	OrderFlags       clob.OrderFlags
	GoodTilBlock     uint32
	GoodTilBlockTime uint32
}

// CompositeClient is the public facade. It resolves market metadata from the
// indexer per call, converts human units into wire units, and submits through
// the pipeline.
type CompositeClient struct {
	network  config.Network
	indexer  *indexer.Client
	chain    ChainClient
	conn     *Get
	post     *Post
	composer *Composer
	logger   log.Logger
	metrics  *Metrics
}

// NewCompositeClient dials the validator and wires the full client stack.
func NewCompositeClient(network config.Network, logger log.Logger) (*CompositeClient, error) {
	conn, err := NewGet(network.Validator)
	if err != nil {
		return nil, err
	}
	c := NewCompositeClientWith(conn, indexer.NewClient(network.Indexer), network, logger)
	c.conn = conn
	return c, nil
}

// NewCompositeClientWith wires a client over caller-supplied collaborators.
func NewCompositeClientWith(chain ChainClient, idx *indexer.Client, network config.Network, logger log.Logger) *CompositeClient {
	return &CompositeClient{
		network:  network,
		indexer:  idx,
		chain:    chain,
		post:     NewPost(chain, network, logger),
		composer: NewComposer(),
		logger:   logger,
	}
}

// WithMetrics attaches a metrics collector to the client and its pipeline.
func (c *CompositeClient) WithMetrics(m *Metrics) *CompositeClient {
	c.metrics = m
	c.post.WithMetrics(m)
	return c
}

// Post exposes the submission pipeline for callers composing their own
// message batches.
func (c *CompositeClient) Post() *Post {
	return c.post
}

// Indexer exposes the market metadata client.
func (c *CompositeClient) Indexer() *indexer.Client {
	return c.indexer
}

// Close releases the validator connection, when this client owns one.
func (c *CompositeClient) Close() error {
	if c.conn == nil {
		return nil
	}
	return c.conn.Close()
}

func (c *CompositeClient) marketMetadata(ctx context.Context, ticker string) (indexer.MarketMetadata, error) {
	// metadata is re-fetched per call; market status and encoding parameters
	// can change between submissions
	market, err := c.indexer.GetPerpetualMarket(ctx, ticker)
	if err != nil {
		return indexer.MarketMetadata{}, err
	}
	return market.Metadata()
}

// PlaceOrder converts the human-readable params into a wire order and submits
// it. Stateful orders expire by wall-clock time; short-term orders are given a
// small forward block window automatically.
func (c *CompositeClient) PlaceOrder(ctx context.Context, sub Subaccount, params PlaceOrderParams) (*BroadcastResult, error) {
	msg, flags, err := c.composeOrderMsg(ctx, sub, params)
	if err != nil {
		return nil, err
	}

	c.metrics.orderSubmitted(params.Side.String(), params.Type.String(), flags.String())
	return c.post.Send(ctx, sub.Signer, StaticMsgs(msg), SendOptions{
		ZeroFee:    true,
		OrderFlags: &flags,
	})
}

// PlaceShortTermOrder submits a short-term order with a caller-chosen expiry
// height. The height is validated against the current chain height before any
// message is composed, so a stale expiry fails locally instead of after a
// broadcast round trip.
func (c *CompositeClient) PlaceShortTermOrder(ctx context.Context, sub Subaccount, params ShortTermOrderParams) (*BroadcastResult, error) {
	meta, err := c.marketMetadata(ctx, params.Market)
	if err != nil {
		return nil, err
	}
	height, err := c.chain.LatestBlockHeight(ctx)
	if err != nil {
		return nil, err
	}
	if err := clob.ValidateGoodTilBlock(params.GoodTilBlock, height, clob.ShortBlockWindow); err != nil {
		return nil, err
	}

	quantums, err := clob.CalculateQuantums(params.Size, meta.AtomicResolution, meta.StepBaseQuantums)
	if err != nil {
		return nil, err
	}
	subticks, err := clob.CalculateSubticks(
		params.Price, meta.AtomicResolution, meta.QuantumConversionExponent, uint64(meta.SubticksPerTick))
	if err != nil {
		return nil, err
	}

	flags := clob.OrderFlagsShortTerm
	msg, err := c.composer.ComposePlaceOrder(
		clob.SubaccountId{Owner: sub.Signer.Address(), Number: sub.Number},
		params.ClientId,
		meta.ClobPairId,
		flags,
		clob.CalculateSide(params.Side),
		quantums,
		subticks,
		params.TimeInForce,
		params.ReduceOnly,
		params.GoodTilBlock,
		0,
		0,
		clob.ConditionTypeUnspecified,
		0,
	)
	if err != nil {
		return nil, err
	}

	c.metrics.orderSubmitted(params.Side.String(), "short_term", flags.String())
	return c.post.Send(ctx, sub.Signer, StaticMsgs(msg), SendOptions{
		ZeroFee:    true,
		OrderFlags: &flags,
	})
}

// CancelOrder cancels a resting order identified by the same subaccount,
// client id, flags, and clob pair it was placed with.
func (c *CompositeClient) CancelOrder(ctx context.Context, sub Subaccount, params CancelOrderParams) (*BroadcastResult, error) {
	meta, err := c.marketMetadata(ctx, params.Market)
	if err != nil {
		return nil, err
	}
	msg, err := c.composer.ComposeCancelOrder(
		clob.SubaccountId{Owner: sub.Signer.Address(), Number: sub.Number},
		params.ClientId,
		meta.ClobPairId,
		params.OrderFlags,
		params.GoodTilBlock,
		params.GoodTilBlockTime,
	)
	if err != nil {
		return nil, err
	}
	flags := params.OrderFlags
	return c.post.Send(ctx, sub.Signer, StaticMsgs(msg), SendOptions{
		ZeroFee:    true,
		OrderFlags: &flags,
	})
}

// TransferToSubaccount moves human-readable USDC between two subaccounts.
func (c *CompositeClient) TransferToSubaccount(ctx context.Context, sub Subaccount, recipient clob.SubaccountId, amount math.LegacyDec) (*BroadcastResult, error) {
	msg := c.composer.ComposeTransfer(
		clob.SubaccountId{Owner: sub.Signer.Address(), Number: sub.Number},
		recipient,
		AssetIdUSDC,
		quoteQuantums(amount),
	)
	return c.post.Send(ctx, sub.Signer, StaticMsgs(msg), SendOptions{})
}

// DepositToSubaccount moves human-readable USDC from the wallet into a
// subaccount.
func (c *CompositeClient) DepositToSubaccount(ctx context.Context, sub Subaccount, amount math.LegacyDec) (*BroadcastResult, error) {
	msg := c.composer.ComposeDepositToSubaccount(
		sub.Signer.Address(),
		clob.SubaccountId{Owner: sub.Signer.Address(), Number: sub.Number},
		AssetIdUSDC,
		quoteQuantums(amount),
	)
	return c.post.Send(ctx, sub.Signer, StaticMsgs(msg), SendOptions{})
}

// WithdrawFromSubaccount moves human-readable USDC from a subaccount back to
// its owning wallet.
func (c *CompositeClient) WithdrawFromSubaccount(ctx context.Context, sub Subaccount, amount math.LegacyDec) (*BroadcastResult, error) {
	msg := c.composer.ComposeWithdrawFromSubaccount(
		clob.SubaccountId{Owner: sub.Signer.Address(), Number: sub.Number},
		sub.Signer.Address(),
		AssetIdUSDC,
		quoteQuantums(amount),
	)
	return c.post.Send(ctx, sub.Signer, StaticMsgs(msg), SendOptions{})
}

// SendToken sends raw denom units between wallet addresses. Only the denoms
// the network configuration names are accepted.
func (c *CompositeClient) SendToken(ctx context.Context, signer TxSigner, recipient, denom string, amount uint64) (*BroadcastResult, error) {
	if !c.supportedDenom(denom) {
		return nil, errorsmod.Wrap(ErrUnsupportedDenom, denom)
	}
	msg := c.composer.ComposeSendToken(signer.Address(), recipient, denom, amount)
	opts := SendOptions{}
	if denom == c.network.Denoms.ChainTokenDenom {
		opts.GasPrice = c.network.ChainTokenGasPrice()
	}
	return c.post.Send(ctx, signer, StaticMsgs(msg), opts)
}

// SendMessages submits an arbitrary pre-composed batch through the pipeline.
func (c *CompositeClient) SendMessages(ctx context.Context, signer TxSigner, msgs []sdk.Msg, opts SendOptions) (*BroadcastResult, error) {
	return c.post.SendMessages(ctx, signer, msgs, opts)
}

// SignPlaceOrder builds and signs an order placement without broadcasting,
// for callers that manage broadcast themselves.
func (c *CompositeClient) SignPlaceOrder(ctx context.Context, sub Subaccount, params PlaceOrderParams) ([]byte, error) {
	msg, flags, err := c.composeOrderMsg(ctx, sub, params)
	if err != nil {
		return nil, err
	}
	return c.post.Sign(ctx, sub.Signer, []sdk.Msg{msg}, SendOptions{
		ZeroFee:    true,
		OrderFlags: &flags,
	})
}

// SignCancelOrder builds and signs an order cancellation without
// broadcasting.
func (c *CompositeClient) SignCancelOrder(ctx context.Context, sub Subaccount, params CancelOrderParams) ([]byte, error) {
	meta, err := c.marketMetadata(ctx, params.Market)
	if err != nil {
		return nil, err
	}
	msg, err := c.composer.ComposeCancelOrder(
		clob.SubaccountId{Owner: sub.Signer.Address(), Number: sub.Number},
		params.ClientId,
		meta.ClobPairId,
		params.OrderFlags,
		params.GoodTilBlock,
		params.GoodTilBlockTime,
	)
	if err != nil {
		return nil, err
	}
	flags := params.OrderFlags
	return c.post.Sign(ctx, sub.Signer, []sdk.Msg{msg}, SendOptions{
		ZeroFee:    true,
		OrderFlags: &flags,
	})
}

// composeOrderMsg shares the metadata and conversion path of PlaceOrder for
// the sign-only variant.
func (c *CompositeClient) composeOrderMsg(ctx context.Context, sub Subaccount, params PlaceOrderParams) (*clob.MsgPlaceOrder, clob.OrderFlags, error) {
	meta, err := c.marketMetadata(ctx, params.Market)
	if err != nil {
		return nil, 0, err
	}
	quantums, err := clob.CalculateQuantums(params.Size, meta.AtomicResolution, meta.StepBaseQuantums)
	if err != nil {
		return nil, 0, err
	}
	subticks, err := clob.CalculateSubticks(
		params.Price, meta.AtomicResolution, meta.QuantumConversionExponent, uint64(meta.SubticksPerTick))
	if err != nil {
		return nil, 0, err
	}
	timeInForce, err := clob.CalculateTimeInForce(params.Type, params.TimeInForce, params.Execution, params.PostOnly)
	if err != nil {
		return nil, 0, err
	}
	conditionType, err := clob.CalculateConditionType(params.Type)
	if err != nil {
		return nil, 0, err
	}
	triggerSubticks, err := clob.CalculateConditionalOrderTriggerSubticks(
		params.Type, meta.AtomicResolution, meta.QuantumConversionExponent,
		uint64(meta.SubticksPerTick), params.TriggerPrice)
	if err != nil {
		return nil, 0, err
	}
	flags := clob.CalculateOrderFlags(params.Type, params.TimeInForce)

	var goodTilBlock, goodTilBlockTime uint32
	if flags.IsStateful() {
		if params.GoodTilTimeInSeconds == 0 {
			return nil, 0, errorsmod.Wrapf(clob.ErrMissingGoodTilTime, "order type: %s", params.Type)
		}
		goodTilBlockTime = uint32(time.Now().Add(time.Duration(params.GoodTilTimeInSeconds) * time.Second).Unix())
	} else {
		height, err := c.chain.LatestBlockHeight(ctx)
		if err != nil {
			return nil, 0, err
		}
		goodTilBlock = height + clob.GoodTilBlockForward
	}

	msg, err := c.composer.ComposePlaceOrder(
		clob.SubaccountId{Owner: sub.Signer.Address(), Number: sub.Number},
		params.ClientId,
		meta.ClobPairId,
		flags,
		clob.CalculateSide(params.Side),
		quantums,
		subticks,
		timeInForce,
		params.ReduceOnly,
		goodTilBlock,
		goodTilBlockTime,
		clob.CalculateClientMetadata(params.Type),
		conditionType,
		triggerSubticks,
	)
	if err != nil {
		return nil, 0, err
	}
	return msg, flags, nil
}

func (c *CompositeClient) supportedDenom(denom string) bool {
	d := c.network.Denoms
	switch denom {
	case d.ChainTokenDenom, d.USDCDenom:
		return denom != ""
	default:
		return false
	}
}

func quoteQuantums(amount math.LegacyDec) uint64 {
	return amount.Mul(quoteQuantumsPerUnit).TruncateInt().Uint64()
}
