package client

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"cosmossdk.io/log"
	"github.com/cosmos/cosmos-sdk/crypto/keys/secp256k1"
	cryptotypes "github.com/cosmos/cosmos-sdk/crypto/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/openalpha/perpdex-client/config"
	"github.com/openalpha/perpdex-client/protocol/clob"
	"github.com/openalpha/perpdex-client/wallet"
)

// fakeChain implements ChainClient in memory
type fakeChain struct {
	accountCalls  atomic.Int64
	sequence      uint64
	gasUsed       uint64
	simulateErr   error
	broadcastRes  *sdk.TxResponse
	broadcastErr  error
	txPollsNeeded int
	txPolls       int
	height        uint32
}

func (f *fakeChain) Account(ctx context.Context, address string) (AccountState, error) {
	f.accountCalls.Add(1)
	return AccountState{Address: address, AccountNumber: 7, Sequence: f.sequence}, nil
}

func (f *fakeChain) LatestBlockHeight(ctx context.Context) (uint32, error) {
	return f.height, nil
}

func (f *fakeChain) SimulateGas(ctx context.Context, txBytes []byte) (uint64, error) {
	if f.simulateErr != nil {
		return 0, f.simulateErr
	}
	return f.gasUsed, nil
}

func (f *fakeChain) BroadcastTx(ctx context.Context, txBytes []byte, mode BroadcastMode) (*sdk.TxResponse, error) {
	if f.broadcastErr != nil {
		return nil, f.broadcastErr
	}
	if f.broadcastRes != nil {
		return f.broadcastRes, nil
	}
	return &sdk.TxResponse{TxHash: "ABC123"}, nil
}

func (f *fakeChain) Tx(ctx context.Context, hash string) (*sdk.TxResponse, error) {
	f.txPolls++
	if f.txPolls <= f.txPollsNeeded {
		return nil, nil
	}
	return &sdk.TxResponse{TxHash: hash, Height: 100}, nil
}

// fakeSigner records the fee and message batches it was handed
type fakeSigner struct {
	pub     cryptotypes.PubKey
	lastFee wallet.Fee
	batches [][]sdk.Msg
}

func newFakeSigner() *fakeSigner {
	return &fakeSigner{pub: secp256k1.GenPrivKey().PubKey()}
}

func (s *fakeSigner) Address() string {
	return "perp1qypqxpq9qcrsszg2pvxq6rs0zqg3yyc5lzv7xu"
}

func (s *fakeSigner) PubKey() cryptotypes.PubKey {
	return s.pub
}

func (s *fakeSigner) SignTransaction(msgs []sdk.Msg, opts wallet.TxOptions, fee wallet.Fee, memo string) ([]byte, error) {
	s.lastFee = fee
	s.batches = append(s.batches, msgs)
	return []byte("signed"), nil
}

func testNetwork() config.Network {
	n := config.MainnetNetwork()
	n.Validator.BroadcastPollInterval = time.Millisecond
	n.Validator.BroadcastTimeout = 100 * time.Millisecond
	return n
}

func shortTermPlaceMsg(clientId uint32) *clob.MsgPlaceOrder {
	return &clob.MsgPlaceOrder{
		Order: clob.Order{
			OrderId: clob.OrderId{
				SubaccountId: testSubaccount,
				ClientId:     clientId,
				OrderFlags:   clob.OrderFlagsShortTerm,
			},
			Side:         clob.SideBuy,
			Quantums:     1_000_000,
			GoodTilBlock: 50,
		},
	}
}

// TestAccountCacheShortTermReuse tests that two sequential short term
// submissions observe a single account query while each signed batch keeps
// its own client id
func TestAccountCacheShortTermReuse(t *testing.T) {
	chain := &fakeChain{sequence: 5}
	post := NewPost(chain, testNetwork(), log.NewNopLogger())
	signer := newFakeSigner()
	flags := clob.OrderFlagsShortTerm

	for _, clientId := range []uint32{1, 2} {
		_, err := post.Send(context.Background(), signer, StaticMsgs(shortTermPlaceMsg(clientId)), SendOptions{
			ZeroFee:    true,
			OrderFlags: &flags,
		})
		if err != nil {
			t.Fatalf("send %d: %v", clientId, err)
		}
	}
	if got := chain.accountCalls.Load(); got != 1 {
		t.Errorf("account queries = %d, expected 1", got)
	}

	if len(signer.batches) != 2 {
		t.Fatalf("signed %d batches, expected 2", len(signer.batches))
	}
	first, ok := signer.batches[0][0].(*clob.MsgPlaceOrder)
	if !ok {
		t.Fatalf("unexpected message type %T", signer.batches[0][0])
	}
	second, ok := signer.batches[1][0].(*clob.MsgPlaceOrder)
	if !ok {
		t.Fatalf("unexpected message type %T", signer.batches[1][0])
	}
	if first.Order.OrderId.ClientId == second.Order.OrderId.ClientId {
		t.Errorf("both signed orders carry client id %d, expected distinct ids", first.Order.OrderId.ClientId)
	}
}

// TestAccountCacheStatefulBypass tests that non short term flags always
// fetch fresh account state
func TestAccountCacheStatefulBypass(t *testing.T) {
	chain := &fakeChain{}
	post := NewPost(chain, testNetwork(), log.NewNopLogger())

	shortTerm := clob.OrderFlagsShortTerm
	conditional := clob.OrderFlagsConditional

	// prime the cache
	if _, err := post.Account(context.Background(), "addr", &shortTerm); err != nil {
		t.Fatalf("prime: %v", err)
	}
	if _, err := post.Account(context.Background(), "addr", &conditional); err != nil {
		t.Fatalf("conditional: %v", err)
	}
	if got := chain.accountCalls.Load(); got != 2 {
		t.Errorf("account queries = %d, expected 2 (conditional must bypass the cache)", got)
	}

	// nil flags also bypass
	if _, err := post.Account(context.Background(), "addr", nil); err != nil {
		t.Fatalf("nil flags: %v", err)
	}
	if got := chain.accountCalls.Load(); got != 3 {
		t.Errorf("account queries = %d, expected 3", got)
	}
}

// TestZeroFeeSkipsSimulation tests the flat fee path
func TestZeroFeeSkipsSimulation(t *testing.T) {
	chain := &fakeChain{simulateErr: errors.New("simulation must not run")}
	post := NewPost(chain, testNetwork(), log.NewNopLogger())
	signer := newFakeSigner()
	flags := clob.OrderFlagsShortTerm

	_, err := post.Send(context.Background(), signer, StaticMsgs(shortTermPlaceMsg(1)), SendOptions{
		ZeroFee:    true,
		OrderFlags: &flags,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if signer.lastFee.GasLimit != ZeroFeeGasLimit {
		t.Errorf("gas limit = %d, expected %d", signer.lastFee.GasLimit, ZeroFeeGasLimit)
	}
	if !signer.lastFee.Amount.IsZero() {
		t.Errorf("fee amount = %s, expected none", signer.lastFee.Amount)
	}
}

// TestFeeResolution tests gas padding, fee arithmetic, and the IBC denom
// rewrite
func TestFeeResolution(t *testing.T) {
	network := testNetwork()
	chain := &fakeChain{gasUsed: 100_000}
	post := NewPost(chain, network, log.NewNopLogger())
	signer := newFakeSigner()

	msg := &clob.MsgCancelOrder{OrderId: clob.OrderId{SubaccountId: testSubaccount, OrderFlags: clob.OrderFlagsLongTerm}, GoodTilBlockTime: 1700000000}
	_, err := post.Send(context.Background(), signer, StaticMsgs(msg), SendOptions{Mode: BroadcastModeSync})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 100000 * 1.4 = 140000
	if signer.lastFee.GasLimit != 140_000 {
		t.Errorf("gas limit = %d, expected 140000", signer.lastFee.GasLimit)
	}
	// 140000 * 0.025 = 3500, paid in the IBC denom, not the gas denom
	expected := network.Denoms.USDCDenom
	if len(signer.lastFee.Amount) != 1 || signer.lastFee.Amount[0].Denom != expected {
		t.Fatalf("fee = %s, expected single coin in %s", signer.lastFee.Amount, expected)
	}
	if signer.lastFee.Amount[0].Amount.Int64() != 3500 {
		t.Errorf("fee amount = %s, expected 3500", signer.lastFee.Amount[0].Amount)
	}
}

// TestSimulationFailureAbortsBeforeSigning tests fail-fast fee resolution
func TestSimulationFailureAbortsBeforeSigning(t *testing.T) {
	chain := &fakeChain{simulateErr: errors.New("boom")}
	post := NewPost(chain, testNetwork(), log.NewNopLogger())
	signer := newFakeSigner()

	msg := &clob.MsgCancelOrder{OrderId: clob.OrderId{OrderFlags: clob.OrderFlagsLongTerm}, GoodTilBlockTime: 1700000000}
	_, err := post.Send(context.Background(), signer, StaticMsgs(msg), SendOptions{})
	if err == nil {
		t.Fatal("expected error, got none")
	}
	if signer.lastFee.GasLimit != 0 {
		t.Error("signer was invoked despite simulation failure")
	}
}

// TestBroadcastCheckTxRejection tests that a nonzero CheckTx code surfaces as
// a broadcast failure
func TestBroadcastCheckTxRejection(t *testing.T) {
	chain := &fakeChain{broadcastRes: &sdk.TxResponse{Code: 5, RawLog: "insufficient funds"}}
	post := NewPost(chain, testNetwork(), log.NewNopLogger())
	flags := clob.OrderFlagsShortTerm

	_, err := post.Send(context.Background(), newFakeSigner(), StaticMsgs(shortTermPlaceMsg(1)), SendOptions{
		ZeroFee:    true,
		OrderFlags: &flags,
	})
	if !errors.Is(err, ErrBroadcastFailed) {
		t.Errorf("error = %v, expected %v", err, ErrBroadcastFailed)
	}
}

// TestBroadcastCommitPollsUntilIndexed tests the commit mode wait loop
func TestBroadcastCommitPollsUntilIndexed(t *testing.T) {
	chain := &fakeChain{txPollsNeeded: 2}
	post := NewPost(chain, testNetwork(), log.NewNopLogger())

	res, err := post.SendSignedTransaction(context.Background(), []byte("signed"), BroadcastModeCommit)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Kind != BroadcastIndexed {
		t.Errorf("result kind = %v, expected indexed", res.Kind)
	}
	if res.Response == nil || res.Response.Height != 100 {
		t.Errorf("unexpected indexed response: %+v", res.Response)
	}
	if chain.txPolls != 3 {
		t.Errorf("tx polls = %d, expected 3", chain.txPolls)
	}
}

// TestBroadcastCommitTimesOut tests the bounded inclusion wait
func TestBroadcastCommitTimesOut(t *testing.T) {
	chain := &fakeChain{txPollsNeeded: 1 << 30}
	post := NewPost(chain, testNetwork(), log.NewNopLogger())

	_, err := post.SendSignedTransaction(context.Background(), []byte("signed"), BroadcastModeCommit)
	if !errors.Is(err, ErrBroadcastTimeout) {
		t.Errorf("error = %v, expected %v", err, ErrBroadcastTimeout)
	}
}

// TestDefaultBroadcastMode tests mode derivation from message classes
func TestDefaultBroadcastMode(t *testing.T) {
	shortPlace := shortTermPlaceMsg(1)
	shortCancel := &clob.MsgCancelOrder{OrderId: clob.OrderId{OrderFlags: clob.OrderFlagsShortTerm}, GoodTilBlock: 50}
	statefulPlace := &clob.MsgPlaceOrder{Order: clob.Order{OrderId: clob.OrderId{OrderFlags: clob.OrderFlagsLongTerm}, GoodTilBlockTime: 1700000000}}
	transfer := NewComposer().ComposeTransfer(testSubaccount, testSubaccount, 0, 1)

	tests := []struct {
		name     string
		msgs     []sdk.Msg
		expected BroadcastMode
	}{
		{name: "all short term orders", msgs: []sdk.Msg{shortPlace, shortCancel}, expected: BroadcastModeSync},
		{name: "stateful order", msgs: []sdk.Msg{statefulPlace}, expected: BroadcastModeCommit},
		{name: "mixed batch", msgs: []sdk.Msg{shortPlace, transfer}, expected: BroadcastModeCommit},
		{name: "fund movement", msgs: []sdk.Msg{transfer}, expected: BroadcastModeCommit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := defaultBroadcastMode(tt.msgs); got != tt.expected {
				t.Errorf("mode = %v, expected %v", got, tt.expected)
			}
		})
	}
}

// TestSendRejectsEmptyBatch tests the empty producer result
func TestSendRejectsEmptyBatch(t *testing.T) {
	post := NewPost(&fakeChain{}, testNetwork(), log.NewNopLogger())
	_, err := post.Send(context.Background(), newFakeSigner(), StaticMsgs(), SendOptions{})
	if !errors.Is(err, ErrNoMessages) {
		t.Errorf("error = %v, expected %v", err, ErrNoMessages)
	}
}

// TestExplicitAccountSnapshotSkipsCache tests the caller-supplied snapshot
func TestExplicitAccountSnapshotSkipsCache(t *testing.T) {
	chain := &fakeChain{}
	post := NewPost(chain, testNetwork(), log.NewNopLogger())
	signer := newFakeSigner()
	flags := clob.OrderFlagsShortTerm

	_, err := post.Send(context.Background(), signer, StaticMsgs(shortTermPlaceMsg(1)), SendOptions{
		ZeroFee:    true,
		OrderFlags: &flags,
		Account:    &AccountState{Address: signer.Address(), AccountNumber: 9, Sequence: 33},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := chain.accountCalls.Load(); got != 0 {
		t.Errorf("account queries = %d, expected 0", got)
	}
}
