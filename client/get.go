package client

import (
	"context"

	errorsmod "cosmossdk.io/errors"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"

	"github.com/cosmos/cosmos-sdk/client/grpc/cmtservice"
	sdkcodec "github.com/cosmos/cosmos-sdk/codec"
	sdk "github.com/cosmos/cosmos-sdk/types"
	txtypes "github.com/cosmos/cosmos-sdk/types/tx"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"

	"github.com/openalpha/perpdex-client/config"
	"github.com/openalpha/perpdex-client/protocol/codec"
)

const maxMsgSize = 10 * 1024 * 1024

// Get bundles the validator query clients the pipeline depends on.
type Get struct {
	cfg  config.ValidatorConfig
	conn *grpc.ClientConn
	cdc  *sdkcodec.ProtoCodec

	auth authtypes.QueryClient
	tx   txtypes.ServiceClient
	cmt  cmtservice.ServiceClient
}

var _ ChainClient = (*Get)(nil)

// NewGet dials the validator gRPC endpoint.
func NewGet(cfg config.ValidatorConfig) (*Get, error) {
	conn, err := grpc.Dial(
		cfg.GRPCAddr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(
			grpc.MaxCallRecvMsgSize(maxMsgSize),
			grpc.MaxCallSendMsgSize(maxMsgSize),
		),
	)
	if err != nil {
		return nil, errorsmod.Wrapf(ErrQueryFailed, "dial %s: %v", cfg.GRPCAddr, err)
	}
	return &Get{
		cfg:  cfg,
		conn: conn,
		cdc:  codec.NewProtoCodec(),
		auth: authtypes.NewQueryClient(conn),
		tx:   txtypes.NewServiceClient(conn),
		cmt:  cmtservice.NewServiceClient(conn),
	}, nil
}

// ChainID returns the configured chain id.
func (g *Get) ChainID() string {
	return g.cfg.ChainID
}

// Close tears down the gRPC connection.
func (g *Get) Close() error {
	return g.conn.Close()
}

func (g *Get) callCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if g.cfg.Timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, g.cfg.Timeout)
}

// Account fetches the account number and sequence for an address.
func (g *Get) Account(ctx context.Context, address string) (AccountState, error) {
	ctx, cancel := g.callCtx(ctx)
	defer cancel()

	res, err := g.auth.Account(ctx, &authtypes.QueryAccountRequest{Address: address})
	if err != nil {
		return AccountState{}, errorsmod.Wrapf(ErrQueryFailed, "account %s: %v", address, err)
	}
	var acc sdk.AccountI
	if err := g.cdc.UnpackAny(res.Account, &acc); err != nil {
		return AccountState{}, errorsmod.Wrapf(ErrUnexpectedResponse, "unpack account: %v", err)
	}
	return AccountState{
		Address:       address,
		AccountNumber: acc.GetAccountNumber(),
		Sequence:      acc.GetSequence(),
	}, nil
}

// LatestBlockHeight fetches the current chain height.
func (g *Get) LatestBlockHeight(ctx context.Context) (uint32, error) {
	ctx, cancel := g.callCtx(ctx)
	defer cancel()

	res, err := g.cmt.GetLatestBlock(ctx, &cmtservice.GetLatestBlockRequest{})
	if err != nil {
		return 0, errorsmod.Wrapf(ErrQueryFailed, "latest block: %v", err)
	}
	if res.SdkBlock == nil {
		return 0, errorsmod.Wrap(ErrUnexpectedResponse, "latest block response missing block")
	}
	return uint32(res.SdkBlock.Header.Height), nil
}

// SimulateGas simulates the encoded transaction and returns the gas used.
func (g *Get) SimulateGas(ctx context.Context, txBytes []byte) (uint64, error) {
	ctx, cancel := g.callCtx(ctx)
	defer cancel()

	res, err := g.tx.Simulate(ctx, &txtypes.SimulateRequest{TxBytes: txBytes})
	if err != nil {
		return 0, errorsmod.Wrapf(ErrQueryFailed, "simulate: %v", err)
	}
	if res.GasInfo == nil {
		return 0, errorsmod.Wrap(ErrUnexpectedResponse, "simulation response missing gas info")
	}
	return res.GasInfo.GasUsed, nil
}

// BroadcastTx submits signed transaction bytes. Commit-mode callers are
// broadcast sync here; waiting for inclusion happens in the pipeline.
func (g *Get) BroadcastTx(ctx context.Context, txBytes []byte, mode BroadcastMode) (*sdk.TxResponse, error) {
	ctx, cancel := g.callCtx(ctx)
	defer cancel()

	wireMode := txtypes.BroadcastMode_BROADCAST_MODE_SYNC
	if mode == BroadcastModeAsync {
		wireMode = txtypes.BroadcastMode_BROADCAST_MODE_ASYNC
	}
	res, err := g.tx.BroadcastTx(ctx, &txtypes.BroadcastTxRequest{
		TxBytes: txBytes,
		Mode:    wireMode,
	})
	if err != nil {
		return nil, errorsmod.Wrapf(ErrQueryFailed, "broadcast: %v", err)
	}
	if res.TxResponse == nil {
		return nil, errorsmod.Wrap(ErrUnexpectedResponse, "broadcast response missing tx response")
	}
	return res.TxResponse, nil
}

// Tx looks up an indexed transaction, returning nil while it is pending.
func (g *Get) Tx(ctx context.Context, hash string) (*sdk.TxResponse, error) {
	ctx, cancel := g.callCtx(ctx)
	defer cancel()

	res, err := g.tx.GetTx(ctx, &txtypes.GetTxRequest{Hash: hash})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, errorsmod.Wrapf(ErrQueryFailed, "tx %s: %v", hash, err)
	}
	return res.TxResponse, nil
}
