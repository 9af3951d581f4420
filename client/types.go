package client

import (
	"context"
	"fmt"

	cryptotypes "github.com/cosmos/cosmos-sdk/crypto/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/openalpha/perpdex-client/wallet"
)

// BroadcastMode selects how long a broadcast waits for the network.
type BroadcastMode int

const (
	// BroadcastModeUnspecified lets the pipeline pick a mode from the
	// message classes.
	BroadcastModeUnspecified BroadcastMode = iota
	// BroadcastModeAsync returns as soon as the node accepts the bytes.
	BroadcastModeAsync
	// BroadcastModeSync waits for CheckTx.
	BroadcastModeSync
	// BroadcastModeCommit waits for block inclusion.
	BroadcastModeCommit
)

func (m BroadcastMode) String() string {
	switch m {
	case BroadcastModeAsync:
		return "async"
	case BroadcastModeSync:
		return "sync"
	case BroadcastModeCommit:
		return "commit"
	default:
		return "unspecified"
	}
}

// BroadcastResultKind discriminates the two broadcast outcome shapes.
type BroadcastResultKind int

const (
	// BroadcastAccepted means the node accepted the transaction (async or
	// CheckTx level); inclusion is not yet known.
	BroadcastAccepted BroadcastResultKind = iota + 1
	// BroadcastIndexed means the transaction was included in a block and
	// Response carries the delivered result.
	BroadcastIndexed
)

// BroadcastResult is the tagged outcome of a broadcast.
type BroadcastResult struct {
	Kind     BroadcastResultKind
	TxHash   string
	Response *sdk.TxResponse
}

func (r *BroadcastResult) String() string {
	switch r.Kind {
	case BroadcastIndexed:
		return fmt.Sprintf("indexed %s", r.TxHash)
	default:
		return fmt.Sprintf("accepted %s", r.TxHash)
	}
}

// AccountState is the signing-relevant slice of an on-chain account.
type AccountState struct {
	Address       string
	AccountNumber uint64
	Sequence      uint64
}

// TxSigner is the wallet surface the pipeline needs. *wallet.LocalWallet
// implements it.
type TxSigner interface {
	Address() string
	PubKey() cryptotypes.PubKey
	SignTransaction(msgs []sdk.Msg, opts wallet.TxOptions, fee wallet.Fee, memo string) ([]byte, error)
}

// MsgProducer supplies the messages of a submission. It runs concurrently
// with account resolution.
type MsgProducer func() ([]sdk.Msg, error)

// StaticMsgs wraps already-built messages into a MsgProducer.
func StaticMsgs(msgs ...sdk.Msg) MsgProducer {
	return func() ([]sdk.Msg, error) {
		return msgs, nil
	}
}

// ChainClient is the validator-node surface the pipeline needs. *Get
// implements it over gRPC; tests substitute fakes.
type ChainClient interface {
	// Account fetches the current account number and sequence.
	Account(ctx context.Context, address string) (AccountState, error)
	// LatestBlockHeight fetches the current chain height.
	LatestBlockHeight(ctx context.Context) (uint32, error)
	// SimulateGas runs the encoded transaction through simulation and
	// returns the gas it consumed.
	SimulateGas(ctx context.Context, txBytes []byte) (uint64, error)
	// BroadcastTx submits signed bytes. Only async and sync map to wire
	// modes; commit-level waiting is the pipeline's job.
	BroadcastTx(ctx context.Context, txBytes []byte, mode BroadcastMode) (*sdk.TxResponse, error)
	// Tx looks up an indexed transaction by hash, returning nil when the
	// transaction is not (yet) indexed.
	Tx(ctx context.Context, hash string) (*sdk.TxResponse, error)
}

// Subaccount pairs a signer with a subaccount number.
type Subaccount struct {
	Signer TxSigner
	Number uint32
}

// NewSubaccount builds a subaccount reference.
func NewSubaccount(signer TxSigner, number uint32) Subaccount {
	return Subaccount{Signer: signer, Number: number}
}

// Address returns the owning wallet address.
func (s Subaccount) Address() string {
	return s.Signer.Address()
}
