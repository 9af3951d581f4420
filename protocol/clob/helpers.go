package clob

import (
	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"
)

// QuoteQuantumsAtomicResolution is the atomic resolution of the quote asset.
const QuoteQuantumsAtomicResolution = -6

// OrderType is the human-facing order type.
type OrderType int

const (
	OrderTypeUnspecified OrderType = iota
	OrderTypeMarket
	OrderTypeLimit
	OrderTypeStopMarket
	OrderTypeTakeProfitMarket
	OrderTypeStopLimit
	OrderTypeTakeProfitLimit
)

func (t OrderType) String() string {
	switch t {
	case OrderTypeMarket:
		return "market"
	case OrderTypeLimit:
		return "limit"
	case OrderTypeStopMarket:
		return "stop_market"
	case OrderTypeTakeProfitMarket:
		return "take_profit_market"
	case OrderTypeStopLimit:
		return "stop_limit"
	case OrderTypeTakeProfitLimit:
		return "take_profit_limit"
	default:
		return "unspecified"
	}
}

// IsConditional reports whether the type carries a trigger condition.
func (t OrderType) IsConditional() bool {
	switch t {
	case OrderTypeStopMarket, OrderTypeTakeProfitMarket, OrderTypeStopLimit, OrderTypeTakeProfitLimit:
		return true
	default:
		return false
	}
}

// OrderSide is the human-facing order side.
type OrderSide int

const (
	OrderSideBuy OrderSide = iota + 1
	OrderSideSell
)

func (s OrderSide) String() string {
	if s == OrderSideSell {
		return "sell"
	}
	return "buy"
}

// OrderTimeInForce is the human-facing time in force.
type OrderTimeInForce int

const (
	OrderTimeInForceGTT OrderTimeInForce = iota + 1 // good til time
	OrderTimeInForceIOC                             // immediate or cancel
	OrderTimeInForceFOK                             // fill or kill
)

// OrderExecution is the human-facing execution mode for conditional orders.
type OrderExecution int

const (
	OrderExecutionDefault OrderExecution = iota
	OrderExecutionIOC
	OrderExecutionPostOnly
	OrderExecutionFOK
)

// roundToMultiple rounds raw to the nearest positive multiple of base.
func roundToMultiple(raw math.LegacyDec, base uint64) math.Int {
	b := math.NewIntFromUint64(base)
	steps := raw.QuoInt(b).RoundInt()
	return steps.Mul(b)
}

// pow10 returns 10^exp as a LegacyDec for any integer exponent.
func pow10(exp int32) math.LegacyDec {
	if exp >= 0 {
		return math.LegacyNewDec(10).Power(uint64(exp))
	}
	return math.LegacyOneDec().Quo(math.LegacyNewDec(10).Power(uint64(-exp)))
}

// CalculateQuantums converts a human-readable size into integer base quantums,
// rounded to the nearest multiple of stepBaseQuantums and never below one step.
func CalculateQuantums(size math.LegacyDec, atomicResolution int32, stepBaseQuantums uint64) (uint64, error) {
	if !size.IsPositive() {
		return 0, errorsmod.Wrapf(ErrInvalidSize, "size: %s", size)
	}
	raw := size.Mul(pow10(-atomicResolution))
	quantums := roundToMultiple(raw, stepBaseQuantums)
	// stepBaseQuantums doubles as the minimum order size
	step := math.NewIntFromUint64(stepBaseQuantums)
	if quantums.LT(step) {
		quantums = step
	}
	return quantums.Uint64(), nil
}

// CalculateSubticks converts a human-readable price into integer subticks,
// rounded to the nearest multiple of subticksPerTick. A zero price yields zero
// subticks, which the chain interprets as "match at best available price".
func CalculateSubticks(price math.LegacyDec, atomicResolution, quantumConversionExponent int32, subticksPerTick uint64) (uint64, error) {
	if price.IsNegative() {
		return 0, errorsmod.Wrapf(ErrInvalidPrice, "price: %s", price)
	}
	if price.IsZero() {
		return 0, nil
	}
	exponent := atomicResolution - quantumConversionExponent - QuoteQuantumsAtomicResolution
	raw := price.Mul(pow10(exponent))
	subticks := roundToMultiple(raw, subticksPerTick)
	// subticksPerTick doubles as the minimum price increment
	tick := math.NewIntFromUint64(subticksPerTick)
	if subticks.LT(tick) {
		subticks = tick
	}
	return subticks.Uint64(), nil
}

// CalculateSide maps the human-facing side onto the wire enum.
func CalculateSide(side OrderSide) Side {
	if side == OrderSideSell {
		return SideSell
	}
	return SideBuy
}

// CalculateTimeInForce maps the human-facing order parameters onto the wire
// time in force. Market orders always take; limit orders follow the requested
// time in force; conditional orders follow the execution mode.
func CalculateTimeInForce(
	orderType OrderType,
	timeInForce OrderTimeInForce,
	execution OrderExecution,
	postOnly bool,
) (TimeInForce, error) {
	switch orderType {
	case OrderTypeMarket:
		return TimeInForceIOC, nil
	case OrderTypeLimit:
		switch timeInForce {
		case OrderTimeInForceGTT:
			if postOnly {
				return TimeInForcePostOnly, nil
			}
			return TimeInForceUnspecified, nil
		case OrderTimeInForceIOC:
			return TimeInForceIOC, nil
		case OrderTimeInForceFOK:
			return TimeInForceFillOrKill, nil
		default:
			return 0, errorsmod.Wrapf(ErrInvalidTimeInForce, "limit order time in force: %d", timeInForce)
		}
	case OrderTypeStopLimit, OrderTypeTakeProfitLimit:
		switch execution {
		case OrderExecutionDefault:
			return TimeInForceUnspecified, nil
		case OrderExecutionPostOnly:
			return TimeInForcePostOnly, nil
		case OrderExecutionIOC:
			return TimeInForceIOC, nil
		case OrderExecutionFOK:
			return TimeInForceFillOrKill, nil
		default:
			return 0, errorsmod.Wrapf(ErrInvalidExecution, "execution: %d", execution)
		}
	case OrderTypeStopMarket, OrderTypeTakeProfitMarket:
		switch execution {
		case OrderExecutionIOC:
			return TimeInForceIOC, nil
		case OrderExecutionFOK:
			return TimeInForceFillOrKill, nil
		default:
			return 0, errorsmod.Wrapf(ErrInvalidExecution,
				"execution %d not supported for %s orders", execution, orderType)
		}
	default:
		return 0, errorsmod.Wrapf(ErrInvalidOrderType, "order type: %d", orderType)
	}
}

// CalculateOrderFlags classifies the order. Market orders are short term,
// GTT limit orders are long term, every conditional type is conditional.
func CalculateOrderFlags(orderType OrderType, timeInForce OrderTimeInForce) OrderFlags {
	switch {
	case orderType == OrderTypeMarket:
		return OrderFlagsShortTerm
	case orderType == OrderTypeLimit:
		if timeInForce == OrderTimeInForceGTT {
			return OrderFlagsLongTerm
		}
		return OrderFlagsShortTerm
	default:
		return OrderFlagsConditional
	}
}

// CalculateClientMetadata tags market-style orders so the indexer can
// distinguish them from resting limit orders.
func CalculateClientMetadata(orderType OrderType) uint32 {
	switch orderType {
	case OrderTypeMarket, OrderTypeStopMarket, OrderTypeTakeProfitMarket:
		return 1
	default:
		return 0
	}
}

// CalculateConditionType maps the order type onto the wire trigger condition.
func CalculateConditionType(orderType OrderType) (ConditionType, error) {
	switch orderType {
	case OrderTypeMarket, OrderTypeLimit:
		return ConditionTypeUnspecified, nil
	case OrderTypeStopMarket, OrderTypeStopLimit:
		return ConditionTypeStopLoss, nil
	case OrderTypeTakeProfitMarket, OrderTypeTakeProfitLimit:
		return ConditionTypeTakeProfit, nil
	default:
		return 0, errorsmod.Wrapf(ErrInvalidOrderType, "order type: %d", orderType)
	}
}

// CalculateConditionalOrderTriggerSubticks converts the trigger price of a
// conditional order into subticks using the same rounding rule as
// CalculateSubticks. Non-conditional types yield zero; conditional types
// without a trigger price are an error.
func CalculateConditionalOrderTriggerSubticks(
	orderType OrderType,
	atomicResolution, quantumConversionExponent int32,
	subticksPerTick uint64,
	triggerPrice *math.LegacyDec,
) (uint64, error) {
	if !orderType.IsConditional() {
		return 0, nil
	}
	if triggerPrice == nil {
		return 0, errorsmod.Wrapf(ErrMissingTriggerPrice, "order type: %s", orderType)
	}
	return CalculateSubticks(*triggerPrice, atomicResolution, quantumConversionExponent, subticksPerTick)
}
