package bitvavo

import (
	"context"
	"net/url"
)

// TradesParams filters Trades. Zero values are left out of the request.
type TradesParams struct {
	Limit       int64
	Start       int64 // epoch ms
	End         int64 // epoch ms
	TradeIDFrom string
	TradeIDTo   string
}

// CandlesParams filters Candles. Zero values are left out of the request.
type CandlesParams struct {
	Limit int64
	Start int64 // epoch ms
	End   int64 // epoch ms
}

// Time returns the exchange clock in epoch milliseconds.
func (c *Client) Time(ctx context.Context) (int64, error) {
	resp, err := get[struct {
		Time int64 `json:"time"`
	}](ctx, c, "time", nil)
	if err != nil {
		return 0, err
	}
	return resp.Time, nil
}

// Assets lists every asset.
func (c *Client) Assets(ctx context.Context) ([]Asset, error) {
	return get[[]Asset](ctx, c, "assets", nil)
}

// Asset returns one asset by symbol, e.g. "BTC".
func (c *Client) Asset(ctx context.Context, symbol string) (Asset, error) {
	return get[Asset](ctx, c, "assets", newQuery().set("symbol", symbol))
}

// Markets lists every market.
func (c *Client) Markets(ctx context.Context) ([]Market, error) {
	return get[[]Market](ctx, c, "markets", nil)
}

// Market returns one market, e.g. "BTC-EUR".
func (c *Client) Market(ctx context.Context, market string) (Market, error) {
	return get[Market](ctx, c, "markets", newQuery().set("market", market))
}

// OrderBook returns the book of a market; depth 0 means the exchange default.
func (c *Client) OrderBook(ctx context.Context, market string, depth int64) (OrderBook, error) {
	return get[OrderBook](ctx, c, url.PathEscape(market)+"/book", newQuery().optInt("depth", depth))
}

// Trades returns public trades of a market.
func (c *Client) Trades(ctx context.Context, market string, p TradesParams) ([]Trade, error) {
	q := newQuery().
		optInt("limit", p.Limit).
		optInt("start", p.Start).
		optInt("end", p.End).
		optString("tradeIdFrom", p.TradeIDFrom).
		optString("tradeIdTo", p.TradeIDTo)
	return get[[]Trade](ctx, c, url.PathEscape(market)+"/trades", q)
}

// Candles returns candles of a market for the interval.
func (c *Client) Candles(ctx context.Context, market string, interval CandleInterval, p CandlesParams) ([]OHLCV, error) {
	if !interval.valid() {
		return nil, &ValidationError{Err: candleIntervalError(interval)}
	}
	q := newQuery().
		set("interval", interval.String()).
		optInt("limit", p.Limit).
		optInt("start", p.Start).
		optInt("end", p.End)
	return get[[]OHLCV](ctx, c, url.PathEscape(market)+"/candles", q)
}

func candleIntervalError(i CandleInterval) error {
	_, err := candleIntervals.Parse(string(i))
	return err
}

// TickerPrices returns the last price of every market.
func (c *Client) TickerPrices(ctx context.Context) ([]TickerPrice, error) {
	return get[[]TickerPrice](ctx, c, "ticker/price", nil)
}

// TickerPrice returns the last price of one market.
func (c *Client) TickerPrice(ctx context.Context, market string) (TickerPrice, error) {
	return get[TickerPrice](ctx, c, "ticker/price", newQuery().set("market", market))
}

// TickerBooks returns the best bid and ask of every market.
func (c *Client) TickerBooks(ctx context.Context) ([]TickerBook, error) {
	return get[[]TickerBook](ctx, c, "ticker/book", nil)
}

// TickerBook returns the best bid and ask of one market.
func (c *Client) TickerBook(ctx context.Context, market string) (TickerBook, error) {
	return get[TickerBook](ctx, c, "ticker/book", newQuery().set("market", market))
}

// Tickers24h returns 24h statistics of every market.
func (c *Client) Tickers24h(ctx context.Context) ([]Ticker24h, error) {
	return get[[]Ticker24h](ctx, c, "ticker/24h", nil)
}

// Ticker24h returns 24h statistics of one market.
func (c *Client) Ticker24h(ctx context.Context, market string) (Ticker24h, error) {
	return get[Ticker24h](ctx, c, "ticker/24h", newQuery().set("market", market))
}
