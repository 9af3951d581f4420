package clob

import (
	errorsmod "cosmossdk.io/errors"
)

// ShortBlockWindow bounds how far ahead of the current height a short term
// order may expire.
const ShortBlockWindow uint32 = 20

// GoodTilBlockForward is the default forward offset applied when deriving a
// good til block from the latest height.
const GoodTilBlockForward uint32 = 3

// ValidateGoodTilBlockAndTime checks that exactly the expiry field matching
// the order flags is set. Short term orders expire by block height, stateful
// orders by block time, and no order may set both.
func ValidateGoodTilBlockAndTime(flags OrderFlags, goodTilBlock, goodTilBlockTime uint32) error {
	if !flags.Valid() {
		return errorsmod.Wrapf(ErrInvalidOrderFlags, "flags: %d", uint32(flags))
	}
	if flags.IsStateful() {
		if goodTilBlockTime == 0 {
			return errorsmod.Wrapf(ErrMissingGoodTilTime, "flags: %s", flags)
		}
		if goodTilBlock != 0 {
			return errorsmod.Wrapf(ErrUnexpectedGoodTil,
				"stateful order sets good til block %d", goodTilBlock)
		}
		return nil
	}
	if goodTilBlock == 0 {
		return errorsmod.Wrapf(ErrMissingGoodTilBlock, "flags: %s", flags)
	}
	if goodTilBlockTime != 0 {
		return errorsmod.Wrapf(ErrUnexpectedGoodTil,
			"short term order sets good til block time %d", goodTilBlockTime)
	}
	return nil
}

// ValidateGoodTilBlock checks that a short term expiry height lies strictly
// after the current height and within the short block window.
func ValidateGoodTilBlock(goodTilBlock, currentHeight uint32, window uint32) error {
	lower := currentHeight + 1
	upper := lower + window
	if goodTilBlock < lower || goodTilBlock > upper {
		return errorsmod.Wrapf(ErrGoodTilBlockOutOfRange,
			"good til block %d not in [%d, %d]", goodTilBlock, lower, upper)
	}
	return nil
}
