// Package wallet provides a local secp256k1 signing wallet. Key handling and
// signature primitives come from the cosmos-sdk; this package only wires them
// into the transaction codec.
package wallet

import (
	"context"
	"encoding/hex"

	errorsmod "cosmossdk.io/errors"
	sdkclient "github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/crypto/hd"
	"github.com/cosmos/cosmos-sdk/crypto/keys/secp256k1"
	cryptotypes "github.com/cosmos/cosmos-sdk/crypto/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/tx/signing"
	authsigning "github.com/cosmos/cosmos-sdk/x/auth/signing"
	bip39 "github.com/cosmos/go-bip39"

	"github.com/openalpha/perpdex-client/protocol/codec"
)

// Bech32PrefixAccAddr is the account address prefix of the chain.
const Bech32PrefixAccAddr = "perp"

// Wallet errors
var (
	ErrInvalidKey      = errorsmod.Register("wallet", 1, "invalid private key")
	ErrInvalidMnemonic = errorsmod.Register("wallet", 2, "invalid mnemonic")
	ErrSigningFailed   = errorsmod.Register("wallet", 3, "transaction signing failed")
)

// TxOptions carries the account parameters a signature commits to.
type TxOptions struct {
	AccountNumber uint64
	Sequence      uint64
	ChainID       string
}

// Fee is the fee a signed transaction offers.
type Fee struct {
	Amount   sdk.Coins
	GasLimit uint64
}

// LocalWallet holds a secp256k1 key in memory and signs transactions with
// SIGN_MODE_DIRECT.
type LocalWallet struct {
	priv     cryptotypes.PrivKey
	pub      cryptotypes.PubKey
	address  string
	txConfig sdkclient.TxConfig
}

// NewFromPrivateKeyHex builds a wallet from a hex-encoded secp256k1 key.
func NewFromPrivateKeyHex(privKeyHex string) (*LocalWallet, error) {
	raw, err := hex.DecodeString(privKeyHex)
	if err != nil {
		return nil, errorsmod.Wrap(ErrInvalidKey, err.Error())
	}
	return newWallet(&secp256k1.PrivKey{Key: raw})
}

// NewFromMnemonic derives a wallet from a BIP-39 mnemonic at the standard
// cosmos HD path for the given account index.
func NewFromMnemonic(mnemonic string, index uint32) (*LocalWallet, error) {
	if !bip39.IsMnemonicValid(mnemonic) {
		return nil, errorsmod.Wrap(ErrInvalidMnemonic, "checksum or word list mismatch")
	}
	path := hd.CreateHDPath(sdk.CoinType, 0, index).String()
	derived, err := hd.Secp256k1.Derive()(mnemonic, "", path)
	if err != nil {
		return nil, errorsmod.Wrap(ErrInvalidMnemonic, err.Error())
	}
	return newWallet(hd.Secp256k1.Generate()(derived))
}

func newWallet(priv cryptotypes.PrivKey) (*LocalWallet, error) {
	pub := priv.PubKey()
	address, err := sdk.Bech32ifyAddressBytes(Bech32PrefixAccAddr, pub.Address())
	if err != nil {
		return nil, errorsmod.Wrap(ErrInvalidKey, err.Error())
	}
	return &LocalWallet{
		priv:     priv,
		pub:      pub,
		address:  address,
		txConfig: codec.NewTxConfig(),
	}, nil
}

// Address returns the bech32 account address.
func (w *LocalWallet) Address() string {
	return w.address
}

// PubKey returns the wallet's public key.
func (w *LocalWallet) PubKey() cryptotypes.PubKey {
	return w.pub
}

// SignTransaction assembles, signs, and encodes a transaction over the given
// messages. The signature commits to the sequence, account number, and chain
// id in opts.
func (w *LocalWallet) SignTransaction(msgs []sdk.Msg, opts TxOptions, fee Fee, memo string) ([]byte, error) {
	builder := w.txConfig.NewTxBuilder()
	if err := builder.SetMsgs(msgs...); err != nil {
		return nil, errorsmod.Wrap(ErrSigningFailed, err.Error())
	}
	builder.SetMemo(memo)
	builder.SetFeeAmount(fee.Amount)
	builder.SetGasLimit(fee.GasLimit)

	// First pass: a placeholder signature so the sign bytes cover the
	// correct signer infos.
	sig := signing.SignatureV2{
		PubKey: w.pub,
		Data: &signing.SingleSignatureData{
			SignMode:  signing.SignMode_SIGN_MODE_DIRECT,
			Signature: nil,
		},
		Sequence: opts.Sequence,
	}
	if err := builder.SetSignatures(sig); err != nil {
		return nil, errorsmod.Wrap(ErrSigningFailed, err.Error())
	}

	signerData := authsigning.SignerData{
		Address:       w.address,
		ChainID:       opts.ChainID,
		AccountNumber: opts.AccountNumber,
		Sequence:      opts.Sequence,
		PubKey:        w.pub,
	}
	signBytes, err := authsigning.GetSignBytesAdapter(
		context.Background(),
		w.txConfig.SignModeHandler(),
		signing.SignMode_SIGN_MODE_DIRECT,
		signerData,
		builder.GetTx(),
	)
	if err != nil {
		return nil, errorsmod.Wrap(ErrSigningFailed, err.Error())
	}

	rawSig, err := w.priv.Sign(signBytes)
	if err != nil {
		return nil, errorsmod.Wrap(ErrSigningFailed, err.Error())
	}
	sig.Data = &signing.SingleSignatureData{
		SignMode:  signing.SignMode_SIGN_MODE_DIRECT,
		Signature: rawSig,
	}
	if err := builder.SetSignatures(sig); err != nil {
		return nil, errorsmod.Wrap(ErrSigningFailed, err.Error())
	}

	return w.txConfig.TxEncoder()(builder.GetTx())
}
