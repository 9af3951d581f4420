package client

import (
	"context"
	"encoding/hex"
	"strings"
	"sync"
	"time"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/log"
	"cosmossdk.io/math"
	"github.com/cometbft/cometbft/crypto/tmhash"
	sdkclient "github.com/cosmos/cosmos-sdk/client"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/tx/signing"

	"github.com/openalpha/perpdex-client/config"
	"github.com/openalpha/perpdex-client/protocol/clob"
	"github.com/openalpha/perpdex-client/protocol/codec"
	"github.com/openalpha/perpdex-client/wallet"
)

// GasMultiplier pads the simulated gas estimate so small estimation drift
// does not cause out-of-gas rejections.
const GasMultiplier = "1.4"

// ZeroFeeGasLimit is the flat gas budget attached when fee resolution is
// bypassed. Order messages are not fee-charged at this layer, so no amount
// accompanies it.
const ZeroFeeGasLimit uint64 = 1_000_000

// SendOptions tune a single submission.
type SendOptions struct {
	// ZeroFee skips simulation and attaches a flat no-amount fee. Used for
	// order placement and cancellation.
	ZeroFee bool
	// GasPrice overrides the network default when resolving a real fee.
	GasPrice sdk.DecCoin
	// Memo is attached to the transaction verbatim.
	Memo string
	// Mode overrides the broadcast mode derived from the message classes.
	Mode BroadcastMode
	// OrderFlags selects the account cache policy. Short-term flags allow a
	// cached sequence; anything else, including nil, forces a fresh fetch.
	OrderFlags *clob.OrderFlags
	// Account, when set, is used as the signing snapshot and the cache is
	// neither read nor written.
	Account *AccountState
}

// Post is the transaction submission pipeline. It owns the account sequence
// cache; construct one per credential or session.
type Post struct {
	chain    ChainClient
	network  config.Network
	txConfig sdkclient.TxConfig
	logger   log.Logger
	metrics  *Metrics

	gasMultiplier math.LegacyDec

	mu       sync.Mutex
	accounts map[string]AccountState
}

// NewPost builds a submission pipeline over the given chain client.
func NewPost(chain ChainClient, network config.Network, logger log.Logger) *Post {
	return &Post{
		chain:         chain,
		network:       network,
		txConfig:      codec.NewTxConfig(),
		logger:        logger,
		gasMultiplier: math.LegacyMustNewDecFromStr(GasMultiplier),
		accounts:      make(map[string]AccountState),
	}
}

// WithMetrics attaches a metrics collector. Call before any submission.
func (p *Post) WithMetrics(m *Metrics) *Post {
	p.metrics = m
	return p
}

// Account resolves the signing account state. Short-term order flags allow a
// cached entry because the chain tolerates loosely ordered sequences inside
// the short-term window. Every fresh fetch overwrites the cache.
func (p *Post) Account(ctx context.Context, address string, flags *clob.OrderFlags) (AccountState, error) {
	if flags != nil && *flags == clob.OrderFlagsShortTerm {
		p.mu.Lock()
		cached, ok := p.accounts[address]
		p.mu.Unlock()
		if ok {
			p.metrics.accountCacheHit()
			return cached, nil
		}
	}
	p.metrics.accountCacheMiss()

	state, err := p.chain.Account(ctx, address)
	if err != nil {
		return AccountState{}, err
	}
	p.mu.Lock()
	p.accounts[address] = state
	p.mu.Unlock()
	return state, nil
}

// Send runs the full pipeline: compose and resolve account concurrently,
// resolve the fee, sign, broadcast. The broadcast result is returned
// unmodified; no retry is attempted on failure.
func (p *Post) Send(ctx context.Context, signer TxSigner, produce MsgProducer, opts SendOptions) (*BroadcastResult, error) {
	var (
		wg      sync.WaitGroup
		msgs    []sdk.Msg
		msgErr  error
		account AccountState
		accErr  error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		msgs, msgErr = produce()
	}()
	go func() {
		defer wg.Done()
		if opts.Account != nil {
			account = *opts.Account
			return
		}
		account, accErr = p.Account(ctx, signer.Address(), opts.OrderFlags)
	}()
	wg.Wait()
	if msgErr != nil {
		return nil, msgErr
	}
	if accErr != nil {
		return nil, accErr
	}
	if len(msgs) == 0 {
		return nil, ErrNoMessages
	}

	fee, err := p.resolveFee(ctx, signer, msgs, account, opts)
	if err != nil {
		return nil, err
	}

	txBytes, err := signer.SignTransaction(msgs, wallet.TxOptions{
		AccountNumber: account.AccountNumber,
		Sequence:      account.Sequence,
		ChainID:       p.network.Validator.ChainID,
	}, fee, opts.Memo)
	if err != nil {
		return nil, err
	}

	mode := opts.Mode
	if mode == BroadcastModeUnspecified {
		mode = defaultBroadcastMode(msgs)
	}
	p.logger.Debug("broadcasting transaction",
		"msgs", len(msgs),
		"sequence", account.Sequence,
		"mode", mode.String(),
	)
	return p.SendSignedTransaction(ctx, txBytes, mode)
}

// SendMessages submits already-built messages through the pipeline. Batches
// made up entirely of order messages are fee exempt and submitted zero fee.
func (p *Post) SendMessages(ctx context.Context, signer TxSigner, msgs []sdk.Msg, opts SendOptions) (*BroadcastResult, error) {
	if !opts.ZeroFee && allOrderMsgs(msgs) {
		opts.ZeroFee = true
	}
	return p.Send(ctx, signer, StaticMsgs(msgs...), opts)
}

func allOrderMsgs(msgs []sdk.Msg) bool {
	if len(msgs) == 0 {
		return false
	}
	for _, msg := range msgs {
		switch msg.(type) {
		case *clob.MsgPlaceOrder, *clob.MsgCancelOrder:
		default:
			return false
		}
	}
	return true
}

// Sign runs the pipeline up to signing and returns the signed bytes without
// broadcasting them.
func (p *Post) Sign(ctx context.Context, signer TxSigner, msgs []sdk.Msg, opts SendOptions) ([]byte, error) {
	if len(msgs) == 0 {
		return nil, ErrNoMessages
	}
	account := AccountState{}
	if opts.Account != nil {
		account = *opts.Account
	} else {
		var err error
		account, err = p.Account(ctx, signer.Address(), opts.OrderFlags)
		if err != nil {
			return nil, err
		}
	}
	fee, err := p.resolveFee(ctx, signer, msgs, account, opts)
	if err != nil {
		return nil, err
	}
	return signer.SignTransaction(msgs, wallet.TxOptions{
		AccountNumber: account.AccountNumber,
		Sequence:      account.Sequence,
		ChainID:       p.network.Validator.ChainID,
	}, fee, opts.Memo)
}

// Simulate estimates the gas a message batch would consume for the given
// account snapshot.
func (p *Post) Simulate(ctx context.Context, signer TxSigner, msgs []sdk.Msg, account AccountState, memo string) (uint64, error) {
	txBytes, err := p.simulationTxBytes(signer, msgs, account.Sequence, memo)
	if err != nil {
		return 0, err
	}
	return p.chain.SimulateGas(ctx, txBytes)
}

// SendSignedTransaction broadcasts signed bytes with the given mode. Async
// returns a locally computed hash, sync waits for CheckTx, commit polls the
// transaction index until inclusion or the configured timeout.
func (p *Post) SendSignedTransaction(ctx context.Context, txBytes []byte, mode BroadcastMode) (*BroadcastResult, error) {
	switch mode {
	case BroadcastModeAsync:
		res, err := p.chain.BroadcastTx(ctx, txBytes, BroadcastModeAsync)
		if err != nil {
			p.metrics.broadcastDone(mode, false)
			return nil, err
		}
		hash := res.TxHash
		if hash == "" {
			hash = localTxHash(txBytes)
		}
		p.metrics.broadcastDone(mode, true)
		return &BroadcastResult{Kind: BroadcastAccepted, TxHash: hash, Response: res}, nil

	case BroadcastModeSync:
		res, err := p.chain.BroadcastTx(ctx, txBytes, BroadcastModeSync)
		if err != nil {
			p.metrics.broadcastDone(mode, false)
			return nil, err
		}
		if res.Code != 0 {
			p.metrics.broadcastDone(mode, false)
			return nil, errorsmod.Wrapf(ErrBroadcastFailed, "code %d: %s", res.Code, res.RawLog)
		}
		p.metrics.broadcastDone(mode, true)
		return &BroadcastResult{Kind: BroadcastAccepted, TxHash: res.TxHash, Response: res}, nil

	case BroadcastModeCommit:
		res, err := p.chain.BroadcastTx(ctx, txBytes, BroadcastModeSync)
		if err != nil {
			p.metrics.broadcastDone(mode, false)
			return nil, err
		}
		if res.Code != 0 {
			p.metrics.broadcastDone(mode, false)
			return nil, errorsmod.Wrapf(ErrBroadcastFailed, "code %d: %s", res.Code, res.RawLog)
		}
		indexed, err := p.waitForInclusion(ctx, res.TxHash)
		if err != nil {
			p.metrics.broadcastDone(mode, false)
			return nil, err
		}
		p.metrics.broadcastDone(mode, true)
		return &BroadcastResult{Kind: BroadcastIndexed, TxHash: res.TxHash, Response: indexed}, nil

	default:
		return nil, errorsmod.Wrapf(ErrBroadcastFailed, "unsupported broadcast mode %d", mode)
	}
}

func (p *Post) resolveFee(ctx context.Context, signer TxSigner, msgs []sdk.Msg, account AccountState, opts SendOptions) (wallet.Fee, error) {
	if opts.ZeroFee {
		return wallet.Fee{GasLimit: ZeroFeeGasLimit}, nil
	}
	gasPrice := opts.GasPrice
	if gasPrice.Denom == "" {
		gasPrice = p.network.DefaultGasPrice()
	}
	return p.EstimateFee(ctx, signer, msgs, account, gasPrice, opts.Memo)
}

// EstimateFee simulates the batch and returns the fee Send would attach for
// the given gas price.
func (p *Post) EstimateFee(ctx context.Context, signer TxSigner, msgs []sdk.Msg, account AccountState, gasPrice sdk.DecCoin, memo string) (wallet.Fee, error) {
	gasUsed, err := p.Simulate(ctx, signer, msgs, account, memo)
	if err != nil {
		return wallet.Fee{}, err
	}

	gasLimit := math.LegacyNewDecFromInt(math.NewIntFromUint64(gasUsed)).
		Mul(p.gasMultiplier).
		Ceil().
		TruncateInt().
		Uint64()
	amount := gasPrice.Amount.
		MulInt(math.NewIntFromUint64(gasLimit)).
		Ceil().
		TruncateInt()

	// The simulation layer prices gas in the short denom; the bank ledger
	// only knows the IBC denom string on chains where USDC arrives over IBC.
	denom := gasPrice.Denom
	if denom == p.network.Denoms.USDCGasDenom && p.network.Denoms.USDCDenom != "" {
		denom = p.network.Denoms.USDCDenom
	}

	return wallet.Fee{
		Amount:   sdk.NewCoins(sdk.NewCoin(denom, amount)),
		GasLimit: gasLimit,
	}, nil
}

// simulationTxBytes encodes the messages with a placeholder signature so the
// node can simulate them against the signer's sequence and public key.
func (p *Post) simulationTxBytes(signer TxSigner, msgs []sdk.Msg, sequence uint64, memo string) ([]byte, error) {
	builder := p.txConfig.NewTxBuilder()
	if err := builder.SetMsgs(msgs...); err != nil {
		return nil, errorsmod.Wrapf(ErrUnexpectedResponse, "set msgs: %v", err)
	}
	builder.SetMemo(memo)
	err := builder.SetSignatures(signing.SignatureV2{
		PubKey: signer.PubKey(),
		Data: &signing.SingleSignatureData{
			SignMode: signing.SignMode_SIGN_MODE_DIRECT,
		},
		Sequence: sequence,
	})
	if err != nil {
		return nil, errorsmod.Wrapf(ErrUnexpectedResponse, "set placeholder signature: %v", err)
	}
	return p.txConfig.TxEncoder()(builder.GetTx())
}

func (p *Post) waitForInclusion(ctx context.Context, hash string) (*sdk.TxResponse, error) {
	poll := p.network.Validator.BroadcastPollInterval
	if poll <= 0 {
		poll = 500 * time.Millisecond
	}
	timeout := p.network.Validator.BroadcastTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	deadline := time.Now().Add(timeout)
	ticker := time.NewTicker(poll)
	defer ticker.Stop()

	for {
		res, err := p.chain.Tx(ctx, hash)
		if err != nil {
			return nil, err
		}
		if res != nil {
			return res, nil
		}
		if time.Now().After(deadline) {
			return nil, errorsmod.Wrap(ErrBroadcastTimeout, hash)
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

// defaultBroadcastMode picks sync when every message is a short-term order
// place or cancel, commit otherwise. Stateful orders and fund movements need
// inclusion-level certainty before the caller proceeds.
func defaultBroadcastMode(msgs []sdk.Msg) BroadcastMode {
	for _, msg := range msgs {
		switch m := msg.(type) {
		case *clob.MsgPlaceOrder:
			if m.Order.OrderId.OrderFlags != clob.OrderFlagsShortTerm {
				return BroadcastModeCommit
			}
		case *clob.MsgCancelOrder:
			if m.OrderId.OrderFlags != clob.OrderFlagsShortTerm {
				return BroadcastModeCommit
			}
		default:
			return BroadcastModeCommit
		}
	}
	return BroadcastModeSync
}

// localTxHash computes the CometBFT transaction hash of raw signed bytes.
func localTxHash(txBytes []byte) string {
	return strings.ToUpper(hex.EncodeToString(tmhash.Sum(txBytes)))
}
