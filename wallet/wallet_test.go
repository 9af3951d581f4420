package wallet

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	txtypes "github.com/cosmos/cosmos-sdk/types/tx"
	banktypes "github.com/cosmos/cosmos-sdk/x/bank/types"
	"github.com/cosmos/gogoproto/proto"

	"github.com/openalpha/perpdex-client/protocol/clob"
)

const testMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

// TestNewFromMnemonic tests deterministic key derivation
func TestNewFromMnemonic(t *testing.T) {
	w1, err := NewFromMnemonic(testMnemonic, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	w2, err := NewFromMnemonic(testMnemonic, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w1.Address() != w2.Address() {
		t.Errorf("derivation not deterministic: %s vs %s", w1.Address(), w2.Address())
	}
	if !strings.HasPrefix(w1.Address(), Bech32PrefixAccAddr+"1") {
		t.Errorf("address %s does not carry the %s prefix", w1.Address(), Bech32PrefixAccAddr)
	}

	// a different account index yields a different key
	w3, err := NewFromMnemonic(testMnemonic, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w3.Address() == w1.Address() {
		t.Error("distinct account indexes derived the same address")
	}
}

// TestNewFromMnemonicRejectsInvalid tests mnemonic validation
func TestNewFromMnemonicRejectsInvalid(t *testing.T) {
	_, err := NewFromMnemonic("not a valid mnemonic phrase", 0)
	if !errors.Is(err, ErrInvalidMnemonic) {
		t.Errorf("error = %v, expected %v", err, ErrInvalidMnemonic)
	}
}

// TestNewFromPrivateKeyHex tests hex key loading
func TestNewFromPrivateKeyHex(t *testing.T) {
	w, err := NewFromPrivateKeyHex("8da4ef21b864d2cc526dbdb2a120bd2874c36c9d0a1fb7f8c63d7f7a8b41de8f")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w.PubKey() == nil {
		t.Fatal("missing public key")
	}
	if !strings.HasPrefix(w.Address(), Bech32PrefixAccAddr+"1") {
		t.Errorf("address %s does not carry the %s prefix", w.Address(), Bech32PrefixAccAddr)
	}

	if _, err := NewFromPrivateKeyHex("zz"); !errors.Is(err, ErrInvalidKey) {
		t.Errorf("error = %v, expected %v", err, ErrInvalidKey)
	}
}

// TestSignTransaction tests that signing yields decodable transaction bytes
// committing to the supplied messages
func TestSignTransaction(t *testing.T) {
	w, err := NewFromMnemonic(testMnemonic, 0)
	if err != nil {
		t.Fatalf("wallet: %v", err)
	}

	msg := &banktypes.MsgSend{
		FromAddress: w.Address(),
		ToAddress:   w.Address(),
		Amount:      sdk.NewCoins(sdk.NewCoin("uusdc", math.NewInt(1000))),
	}
	fee := Fee{
		Amount:   sdk.NewCoins(sdk.NewCoin("uusdc", math.NewInt(5000))),
		GasLimit: 200_000,
	}
	txBytes, err := w.SignTransaction([]sdk.Msg{msg}, TxOptions{
		AccountNumber: 7,
		Sequence:      3,
		ChainID:       "perpdex-test-1",
	}, fee, "memo")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(txBytes) == 0 {
		t.Fatal("empty transaction bytes")
	}

	tx, err := w.txConfig.TxDecoder()(txBytes)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got := len(tx.GetMsgs()); got != 1 {
		t.Errorf("decoded %d msgs, expected 1", got)
	}

	// a different sequence must change the signature
	txBytes2, err := w.SignTransaction([]sdk.Msg{msg}, TxOptions{
		AccountNumber: 7,
		Sequence:      4,
		ChainID:       "perpdex-test-1",
	}, fee, "memo")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(txBytes) == string(txBytes2) {
		t.Error("distinct sequences produced identical signed bytes")
	}
}

// TestSignTransactionOrderPayload tests that a signed transaction carries the
// exchange message with its protocol type url and byte-identical payload. The
// exchange messages marshal through gogoproto tag reflection and carry no
// generated descriptors, so the tx body is inspected directly instead of
// through the tx decoder.
func TestSignTransactionOrderPayload(t *testing.T) {
	w, err := NewFromMnemonic(testMnemonic, 0)
	if err != nil {
		t.Fatalf("wallet: %v", err)
	}

	msg := &clob.MsgPlaceOrder{
		Order: clob.Order{
			OrderId: clob.OrderId{
				SubaccountId: clob.SubaccountId{Owner: w.Address(), Number: 0},
				ClientId:     42,
				OrderFlags:   clob.OrderFlagsShortTerm,
			},
			Side:         clob.SideBuy,
			Quantums:     100_000_000,
			Subticks:     5_000_000_000,
			GoodTilBlock: 1010,
		},
	}
	txBytes, err := w.SignTransaction([]sdk.Msg{msg}, TxOptions{
		AccountNumber: 7,
		Sequence:      3,
		ChainID:       "perpdex-test-1",
	}, Fee{GasLimit: 1_000_000}, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var raw txtypes.TxRaw
	if err := proto.Unmarshal(txBytes, &raw); err != nil {
		t.Fatalf("unmarshal tx raw: %v", err)
	}
	var body txtypes.TxBody
	if err := proto.Unmarshal(raw.BodyBytes, &body); err != nil {
		t.Fatalf("unmarshal tx body: %v", err)
	}
	if len(body.Messages) != 1 {
		t.Fatalf("body carries %d messages, expected 1", len(body.Messages))
	}
	if body.Messages[0].TypeUrl != clob.TypeURLMsgPlaceOrder {
		t.Errorf("type url = %s, expected %s", body.Messages[0].TypeUrl, clob.TypeURLMsgPlaceOrder)
	}
	wire, err := proto.Marshal(msg)
	if err != nil {
		t.Fatalf("marshal order: %v", err)
	}
	if !bytes.Equal(body.Messages[0].Value, wire) {
		t.Error("packed order bytes differ from the message's own encoding")
	}
	if len(raw.Signatures) != 1 || len(raw.Signatures[0]) == 0 {
		t.Fatalf("expected one non-empty signature, got %d", len(raw.Signatures))
	}
}
