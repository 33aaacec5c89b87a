package bitvavo

import (
	"time"

	"bitvavo-api/pkg/exchanges/common"
)

// AssetStatus is the deposit or withdrawal status of an asset.
type AssetStatus string

const (
	AssetStatusOK          AssetStatus = "OK"
	AssetStatusMaintenance AssetStatus = "MAINTENANCE"
	AssetStatusDelisted    AssetStatus = "DELISTED"
)

var assetStatuses = common.NewEnum(AssetStatusOK, AssetStatusMaintenance, AssetStatusDelisted)

func (s AssetStatus) MarshalJSON() ([]byte, error)  { return assetStatuses.Marshal(s) }
func (s *AssetStatus) UnmarshalJSON(b []byte) error { return assetStatuses.Unmarshal(b, s) }

// MarketStatus is the trading status of a market.
type MarketStatus string

const (
	MarketStatusTrading MarketStatus = "trading"
	MarketStatusHalted  MarketStatus = "halted"
	MarketStatusAuction MarketStatus = "auction"
)

var marketStatuses = common.NewEnum(MarketStatusTrading, MarketStatusHalted, MarketStatusAuction)

func (s MarketStatus) MarshalJSON() ([]byte, error)  { return marketStatuses.Marshal(s) }
func (s *MarketStatus) UnmarshalJSON(b []byte) error { return marketStatuses.Unmarshal(b, s) }

// TradeSide is the side of a trade or order.
type TradeSide string

const (
	SideBuy  TradeSide = "buy"
	SideSell TradeSide = "sell"
)

var tradeSides = common.NewEnum(SideBuy, SideSell)

func (s TradeSide) MarshalJSON() ([]byte, error)  { return tradeSides.Marshal(s) }
func (s *TradeSide) UnmarshalJSON(b []byte) error { return tradeSides.Unmarshal(b, s) }

// DepositStatus is the state of a deposit.
type DepositStatus string

const (
	DepositCompleted DepositStatus = "completed"
	DepositCanceled  DepositStatus = "canceled"
)

var depositStatuses = common.NewEnum(DepositCompleted, DepositCanceled)

func (s DepositStatus) MarshalJSON() ([]byte, error)  { return depositStatuses.Marshal(s) }
func (s *DepositStatus) UnmarshalJSON(b []byte) error { return depositStatuses.Unmarshal(b, s) }

// WithdrawalStatus follows a withdrawal from request to completion.
type WithdrawalStatus string

const (
	WithdrawalAwaitingProcessing        WithdrawalStatus = "awaiting_processing"
	WithdrawalAwaitingEmailConfirmation WithdrawalStatus = "awaiting_email_confirmation"
	WithdrawalAwaitingBitvavoInspection WithdrawalStatus = "awaiting_bitvavo_inspection"
	WithdrawalApproved                  WithdrawalStatus = "approved"
	WithdrawalSending                   WithdrawalStatus = "sending"
	WithdrawalInMempool                 WithdrawalStatus = "in_mempool"
	WithdrawalProcessed                 WithdrawalStatus = "processed"
	WithdrawalCompleted                 WithdrawalStatus = "completed"
	WithdrawalCanceled                  WithdrawalStatus = "canceled"
)

var withdrawalStatuses = common.NewEnum(
	WithdrawalAwaitingProcessing,
	WithdrawalAwaitingEmailConfirmation,
	WithdrawalAwaitingBitvavoInspection,
	WithdrawalApproved,
	WithdrawalSending,
	WithdrawalInMempool,
	WithdrawalProcessed,
	WithdrawalCompleted,
	WithdrawalCanceled,
)

func (s WithdrawalStatus) MarshalJSON() ([]byte, error)  { return withdrawalStatuses.Marshal(s) }
func (s *WithdrawalStatus) UnmarshalJSON(b []byte) error { return withdrawalStatuses.Unmarshal(b, s) }

// OrderType denotes the order types accepted by the exchange.
type OrderType string

const (
	OrderTypeMarket          OrderType = "market"
	OrderTypeLimit           OrderType = "limit"
	OrderTypeStopLoss        OrderType = "stopLoss"
	OrderTypeStopLossLimit   OrderType = "stopLossLimit"
	OrderTypeTakeProfit      OrderType = "takeProfit"
	OrderTypeTakeProfitLimit OrderType = "takeProfitLimit"
)

var orderTypes = common.NewEnum(
	OrderTypeMarket,
	OrderTypeLimit,
	OrderTypeStopLoss,
	OrderTypeStopLossLimit,
	OrderTypeTakeProfit,
	OrderTypeTakeProfitLimit,
)

func (t OrderType) MarshalJSON() ([]byte, error)  { return orderTypes.Marshal(t) }
func (t *OrderType) UnmarshalJSON(b []byte) error { return orderTypes.Unmarshal(b, t) }

// limit reports whether the type carries a limit price.
func (t OrderType) limit() bool {
	return t == OrderTypeLimit || t == OrderTypeStopLossLimit || t == OrderTypeTakeProfitLimit
}

// triggered reports whether the type waits for a trigger.
func (t OrderType) triggered() bool {
	return t == OrderTypeStopLoss || t == OrderTypeStopLossLimit ||
		t == OrderTypeTakeProfit || t == OrderTypeTakeProfitLimit
}

// TriggerType is what kind of value a trigger amount is.
type TriggerType string

const TriggerTypePrice TriggerType = "price"

var triggerTypes = common.NewEnum(TriggerTypePrice)

func (t TriggerType) MarshalJSON() ([]byte, error)  { return triggerTypes.Marshal(t) }
func (t *TriggerType) UnmarshalJSON(b []byte) error { return triggerTypes.Unmarshal(b, t) }

// TriggerReference is the price basis a trigger is compared against.
type TriggerReference string

const (
	TriggerLastTrade TriggerReference = "lastTrade"
	TriggerBestBid   TriggerReference = "bestBid"
	TriggerBestAsk   TriggerReference = "bestAsk"
	TriggerMidPrice  TriggerReference = "midPrice"
)

var triggerReferences = common.NewEnum(TriggerLastTrade, TriggerBestBid, TriggerBestAsk, TriggerMidPrice)

func (r TriggerReference) MarshalJSON() ([]byte, error)  { return triggerReferences.Marshal(r) }
func (r *TriggerReference) UnmarshalJSON(b []byte) error { return triggerReferences.Unmarshal(b, r) }

// TimeInForce captures TIF semantics.
type TimeInForce string

const (
	TIFGTC TimeInForce = "GTC" // Good Till Cancelled
	TIFFOK TimeInForce = "FOK" // Fill Or Kill
	TIFIOC TimeInForce = "IOC" // Immediate Or Cancel
)

var timesInForce = common.NewEnum(TIFGTC, TIFFOK, TIFIOC)

func (t TimeInForce) MarshalJSON() ([]byte, error)  { return timesInForce.Marshal(t) }
func (t *TimeInForce) UnmarshalJSON(b []byte) error { return timesInForce.Unmarshal(b, t) }

// SelfTradePrevention decides which side of a self-trade is cancelled.
type SelfTradePrevention string

const (
	STPDecrementAndCancel SelfTradePrevention = "decrementAndCancel"
	STPCancelBoth         SelfTradePrevention = "cancelBoth"
	STPCancelNewest       SelfTradePrevention = "cancelNewest"
	STPCancelOldest       SelfTradePrevention = "cancelOldest"
)

var selfTradePreventions = common.NewEnum(STPDecrementAndCancel, STPCancelBoth, STPCancelNewest, STPCancelOldest)

func (p SelfTradePrevention) MarshalJSON() ([]byte, error)  { return selfTradePreventions.Marshal(p) }
func (p *SelfTradePrevention) UnmarshalJSON(b []byte) error { return selfTradePreventions.Unmarshal(b, p) }

// CandleInterval is the time span covered by one candle.
type CandleInterval string

const (
	Interval1m  CandleInterval = "1m"
	Interval5m  CandleInterval = "5m"
	Interval15m CandleInterval = "15m"
	Interval30m CandleInterval = "30m"
	Interval1h  CandleInterval = "1h"
	Interval2h  CandleInterval = "2h"
	Interval4h  CandleInterval = "4h"
	Interval6h  CandleInterval = "6h"
	Interval8h  CandleInterval = "8h"
	Interval12h CandleInterval = "12h"
	Interval1d  CandleInterval = "1d"
)

var candleIntervals = common.NewEnum(
	Interval1m, Interval5m, Interval15m, Interval30m,
	Interval1h, Interval2h, Interval4h, Interval6h, Interval8h, Interval12h,
	Interval1d,
)

var intervalDurations = map[CandleInterval]time.Duration{
	Interval1m:  time.Minute,
	Interval5m:  5 * time.Minute,
	Interval15m: 15 * time.Minute,
	Interval30m: 30 * time.Minute,
	Interval1h:  time.Hour,
	Interval2h:  2 * time.Hour,
	Interval4h:  4 * time.Hour,
	Interval6h:  6 * time.Hour,
	Interval8h:  8 * time.Hour,
	Interval12h: 12 * time.Hour,
	Interval1d:  24 * time.Hour,
}

// ParseCandleInterval maps a wire token such as "15m" to its interval.
func ParseCandleInterval(s string) (CandleInterval, error) {
	return candleIntervals.Parse(s)
}

func (i CandleInterval) String() string { return string(i) }

// Duration returns the span of one candle; zero for unknown intervals.
func (i CandleInterval) Duration() time.Duration { return intervalDurations[i] }

func (i CandleInterval) MarshalJSON() ([]byte, error)  { return candleIntervals.Marshal(i) }
func (i *CandleInterval) UnmarshalJSON(b []byte) error { return candleIntervals.Unmarshal(b, i) }

// wireEnum is implemented by every enumeration above; the request validator
// uses it to reject values outside the fixed token sets.
type wireEnum interface {
	valid() bool
}

func (s AssetStatus) valid() bool         { return assetStatuses.Contains(s) }
func (s MarketStatus) valid() bool        { return marketStatuses.Contains(s) }
func (s TradeSide) valid() bool           { return tradeSides.Contains(s) }
func (s DepositStatus) valid() bool       { return depositStatuses.Contains(s) }
func (s WithdrawalStatus) valid() bool    { return withdrawalStatuses.Contains(s) }
func (t OrderType) valid() bool           { return orderTypes.Contains(t) }
func (t TriggerType) valid() bool         { return triggerTypes.Contains(t) }
func (r TriggerReference) valid() bool    { return triggerReferences.Contains(r) }
func (t TimeInForce) valid() bool         { return timesInForce.Contains(t) }
func (p SelfTradePrevention) valid() bool { return selfTradePreventions.Contains(p) }
func (i CandleInterval) valid() bool      { return candleIntervals.Contains(i) }
