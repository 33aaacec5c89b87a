package bitvavo

import (
	"github.com/google/uuid"

	"bitvavo-api/pkg/exchanges/common"
)

// Pointer fields are optional on the wire; every other field must be present
// in a response or decoding fails.

// Asset is a currency supported by the exchange.
type Asset struct {
	Symbol               string      `json:"symbol"`
	Name                 string      `json:"name"`
	Decimals             int64       `json:"decimals"`
	DepositFee           string      `json:"depositFee"`
	DepositConfirmations int64       `json:"depositConfirmations"`
	DepositStatus        AssetStatus `json:"depositStatus"`
	WithdrawalFee        string      `json:"withdrawalFee"`
	WithdrawalMinAmount  string      `json:"withdrawalMinAmount"`
	WithdrawalStatus     AssetStatus `json:"withdrawalStatus"`
	Networks             []string    `json:"networks"`
	Message              *string     `json:"message"`
}

// Market describes a trading pair.
type Market struct {
	Market               string       `json:"market"`
	Status               MarketStatus `json:"status"`
	Base                 string       `json:"base"`
	Quote                string       `json:"quote"`
	PricePrecision       int64        `json:"pricePrecision"`
	MinOrderInBaseAsset  string       `json:"minOrderInBaseAsset"`
	MinOrderInQuoteAsset string       `json:"minOrderInQuoteAsset"`
	MaxOrderInBaseAsset  string       `json:"maxOrderInBaseAsset"`
	MaxOrderInQuoteAsset string       `json:"maxOrderInQuoteAsset"`
	OrderTypes           []string     `json:"orderTypes"`
}

// OrderBook is a snapshot of one market's book, best levels first.
type OrderBook struct {
	Market string  `json:"market"`
	Nonce  int64   `json:"nonce"`
	Bids   []Quote `json:"bids"`
	Asks   []Quote `json:"asks"`
}

// Quote is one price level. On the wire: ["price","amount"].
type Quote struct {
	Price  string
	Amount string
}

func (q *Quote) fields() []common.Field {
	return []common.Field{
		common.Pos("price", &q.Price),
		common.Pos("amount", &q.Amount),
	}
}

func (q *Quote) UnmarshalJSON(data []byte) error { return common.UnmarshalPositional(data, "quote", q.fields()...) }
func (q Quote) MarshalJSON() ([]byte, error)     { return common.MarshalPositional(q.fields()...) }

// Trade is a public trade on a market.
type Trade struct {
	ID        string    `json:"id"`
	Timestamp int64     `json:"timestamp"`
	Amount    string    `json:"amount"`
	Price     string    `json:"price"`
	Side      TradeSide `json:"side"`
}

// OHLCV is one candle. On the wire: [time,"open","high","low","close","volume"].
type OHLCV struct {
	Time   int64
	Open   string
	High   string
	Low    string
	Close  string
	Volume string
}

func (c *OHLCV) fields() []common.Field {
	return []common.Field{
		common.Pos("time", &c.Time),
		common.Pos("open", &c.Open),
		common.Pos("high", &c.High),
		common.Pos("low", &c.Low),
		common.Pos("close", &c.Close),
		common.Pos("volume", &c.Volume),
	}
}

func (c *OHLCV) UnmarshalJSON(data []byte) error { return common.UnmarshalPositional(data, "candle", c.fields()...) }
func (c OHLCV) MarshalJSON() ([]byte, error)     { return common.MarshalPositional(c.fields()...) }

// TickerPrice is the last traded price of a market.
type TickerPrice struct {
	Market string  `json:"market"`
	Price  *string `json:"price"`
}

// TickerBook is the best bid and ask of a market.
type TickerBook struct {
	Market  *string `json:"market"`
	Bid     *string `json:"bid"`
	BidSize *string `json:"bidSize"`
	Ask     *string `json:"ask"`
	AskSize *string `json:"askSize"`
}

// Ticker24h summarises the last 24 hours of a market. Markets without
// recent activity omit most fields.
type Ticker24h struct {
	Market         string  `json:"market"`
	StartTimestamp *int64  `json:"startTimestamp"`
	Timestamp      *int64  `json:"timestamp"`
	Open           *string `json:"open"`
	OpenTimestamp  *int64  `json:"openTimestamp"`
	High           *string `json:"high"`
	Low            *string `json:"low"`
	Last           *string `json:"last"`
	CloseTimestamp *int64  `json:"closeTimestamp"`
	Bid            *string `json:"bid"`
	BidSize        *string `json:"bidSize"`
	Ask            *string `json:"ask"`
	AskSize        *string `json:"askSize"`
	Volume         *string `json:"volume"`
	VolumeQuote    *string `json:"volumeQuote"`
}

// Account holds the fee schedule of the authenticated account.
type Account struct {
	Fees AccountFees `json:"fees"`
}

// AccountFees are the fees in use for an account.
type AccountFees struct {
	Taker  string `json:"taker"`
	Maker  string `json:"maker"`
	Volume string `json:"volume"`
}

// Fees are the fees charged on one market (or the default tier).
type Fees struct {
	Tier   int64  `json:"tier"`
	Volume string `json:"volume"`
	Taker  string `json:"taker"`
	Maker  string `json:"maker"`
}

// Balance is the holding of one asset.
type Balance struct {
	Symbol    string `json:"symbol"`
	Available string `json:"available"`
	InOrder   string `json:"inOrder"`
}

// DepositInfo is where to send funds for a deposit.
type DepositInfo struct {
	Address   string  `json:"address"`
	PaymentID *string `json:"paymentId"`
}

// Deposit is a past deposit.
type Deposit struct {
	Timestamp int64         `json:"timestamp"`
	Symbol    string        `json:"symbol"`
	Amount    string        `json:"amount"`
	Fee       string        `json:"fee"`
	Status    DepositStatus `json:"status"`
	TxID      *string       `json:"txId"`
	Address   *string       `json:"address"`
	PaymentID *string       `json:"paymentId"`
}

// Withdrawal is a past or pending withdrawal.
type Withdrawal struct {
	Timestamp int64            `json:"timestamp"`
	Symbol    string           `json:"symbol"`
	Amount    string           `json:"amount"`
	Address   *string          `json:"address"`
	PaymentID *string          `json:"paymentId"`
	TxID      *string          `json:"txId"`
	Fee       string           `json:"fee"`
	Status    WithdrawalStatus `json:"status"`
}

// WithdrawalRequest asks the exchange to send funds to an address.
type WithdrawalRequest struct {
	Symbol           string `json:"symbol" validate:"required"`
	Amount           string `json:"amount" validate:"required,numeric"`
	Address          string `json:"address" validate:"required"`
	PaymentID        string `json:"paymentId,omitempty"`
	Internal         bool   `json:"internal"`
	AddWithdrawalFee bool   `json:"addWithdrawalFee"`
}

// WithdrawalResponse acknowledges a withdrawal request.
type WithdrawalResponse struct {
	Success bool   `json:"success"`
	Symbol  string `json:"symbol"`
	Amount  string `json:"amount"`
}

// Order is an outbound order. Empty optional fields are left off the wire.
type Order struct {
	Market                  string              `json:"market" validate:"required"`
	Side                    TradeSide           `json:"side" validate:"required,wire"`
	OrderType               OrderType           `json:"orderType" validate:"required,wire"`
	ClientOrderID           *uuid.UUID          `json:"clientOrderId,omitempty"`
	Amount                  string              `json:"amount,omitempty" validate:"omitempty,numeric"`
	AmountQuote             string              `json:"amountQuote,omitempty" validate:"omitempty,numeric"`
	Price                   string              `json:"price,omitempty" validate:"omitempty,numeric"`
	TriggerAmount           string              `json:"triggerAmount,omitempty" validate:"omitempty,numeric"`
	TriggerType             TriggerType         `json:"triggerType,omitempty" validate:"omitempty,wire"`
	TriggerReference        TriggerReference    `json:"triggerReference,omitempty" validate:"omitempty,wire"`
	TimeInForce             TimeInForce         `json:"timeInForce,omitempty" validate:"omitempty,wire"`
	PostOnly                *bool               `json:"postOnly,omitempty"`
	SelfTradePrevention     SelfTradePrevention `json:"selfTradePrevention,omitempty" validate:"omitempty,wire"`
	DisableMarketProtection bool                `json:"disableMarketProtection"`
	ResponseRequired        bool                `json:"responseRequired"`
}

// OrderResponse is the exchange acknowledgement of a placed order.
type OrderResponse struct {
	Market        string     `json:"market"`
	OrderID       uuid.UUID  `json:"orderId"`
	ClientOrderID *uuid.UUID `json:"clientOrderId"`
	Created       int64      `json:"created"`
	Updated       int64      `json:"updated"`
}
