package clob

import (
	"errors"
	"testing"
)

// TestValidateGoodTilBlockAndTime tests the flag and expiry field pairing
func TestValidateGoodTilBlockAndTime(t *testing.T) {
	tests := []struct {
		name             string
		flags            OrderFlags
		goodTilBlock     uint32
		goodTilBlockTime uint32
		wantErr          error
	}{
		{name: "short term with block", flags: OrderFlagsShortTerm, goodTilBlock: 100},
		{name: "short term without block", flags: OrderFlagsShortTerm, wantErr: ErrMissingGoodTilBlock},
		{name: "short term with block time", flags: OrderFlagsShortTerm, goodTilBlock: 100, goodTilBlockTime: 1700000000, wantErr: ErrUnexpectedGoodTil},
		{name: "long term with block time", flags: OrderFlagsLongTerm, goodTilBlockTime: 1700000000},
		{name: "long term without block time", flags: OrderFlagsLongTerm, wantErr: ErrMissingGoodTilTime},
		{name: "long term with block", flags: OrderFlagsLongTerm, goodTilBlock: 100, goodTilBlockTime: 1700000000, wantErr: ErrUnexpectedGoodTil},
		{name: "conditional with block time", flags: OrderFlagsConditional, goodTilBlockTime: 1700000000},
		{name: "conditional without block time", flags: OrderFlagsConditional, wantErr: ErrMissingGoodTilTime},
		{name: "unrecognized flags", flags: OrderFlags(7), goodTilBlock: 100, wantErr: ErrInvalidOrderFlags},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateGoodTilBlockAndTime(tt.flags, tt.goodTilBlock, tt.goodTilBlockTime)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, expected %v", err, tt.wantErr)
			}
		})
	}
}

// TestValidateGoodTilBlock tests the short term expiry window bounds
func TestValidateGoodTilBlock(t *testing.T) {
	const height, window = 1000, uint32(20)

	tests := []struct {
		name         string
		goodTilBlock uint32
		wantErr      bool
	}{
		{name: "next block is valid", goodTilBlock: height + 1},
		{name: "end of window is valid", goodTilBlock: height + 1 + window},
		{name: "current height is invalid", goodTilBlock: height, wantErr: true},
		{name: "past the window is invalid", goodTilBlock: height + window + 2, wantErr: true},
		{name: "zero is invalid", goodTilBlock: 0, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateGoodTilBlock(tt.goodTilBlock, height, window)
			if tt.wantErr && err == nil {
				t.Error("expected error, got none")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

// TestOrderFlagsClassification tests the stateful and validity predicates
func TestOrderFlagsClassification(t *testing.T) {
	if OrderFlagsShortTerm.IsStateful() {
		t.Error("short term flags reported stateful")
	}
	if !OrderFlagsLongTerm.IsStateful() || !OrderFlagsConditional.IsStateful() {
		t.Error("stateful flags not reported stateful")
	}
	if !OrderFlagsShortTerm.Valid() || !OrderFlagsLongTerm.Valid() || !OrderFlagsConditional.Valid() {
		t.Error("recognized flags reported invalid")
	}
	if OrderFlags(1).Valid() {
		t.Error("unrecognized flags reported valid")
	}
}
