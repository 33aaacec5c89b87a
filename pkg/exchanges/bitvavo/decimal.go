package bitvavo

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Amounts and prices travel as decimal strings so no precision is lost in
// transit. These helpers parse them for arithmetic.

func parseDecimal(field, s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s %q: %w", field, s, err)
	}
	return d, nil
}

// Amount formats d for an outbound amount, price or trigger field.
func Amount(d decimal.Decimal) string {
	return d.String()
}

// Decimals parses price and amount.
func (q Quote) Decimals() (price, amount decimal.Decimal, err error) {
	if price, err = parseDecimal("price", q.Price); err != nil {
		return
	}
	amount, err = parseDecimal("amount", q.Amount)
	return
}

// Notional is price * amount.
func (q Quote) Notional() (decimal.Decimal, error) {
	price, amount, err := q.Decimals()
	if err != nil {
		return decimal.Zero, err
	}
	return price.Mul(amount), nil
}

// Spread is best ask minus best bid. It fails with ErrNoResult when either
// side of the book is empty.
func (b OrderBook) Spread() (decimal.Decimal, error) {
	if len(b.Bids) == 0 || len(b.Asks) == 0 {
		return decimal.Zero, fmt.Errorf("spread of %s: %w", b.Market, ErrNoResult)
	}
	bid, err := parseDecimal("bid", b.Bids[0].Price)
	if err != nil {
		return decimal.Zero, err
	}
	ask, err := parseDecimal("ask", b.Asks[0].Price)
	if err != nil {
		return decimal.Zero, err
	}
	return ask.Sub(bid), nil
}

// CandleValues is an OHLCV with parsed numbers.
type CandleValues struct {
	Open, High, Low, Close, Volume decimal.Decimal
}

// Decimals parses the five numeric columns of a candle.
func (c OHLCV) Decimals() (CandleValues, error) {
	var v CandleValues
	cols := []struct {
		name string
		src  string
		dst  *decimal.Decimal
	}{
		{"open", c.Open, &v.Open},
		{"high", c.High, &v.High},
		{"low", c.Low, &v.Low},
		{"close", c.Close, &v.Close},
		{"volume", c.Volume, &v.Volume},
	}
	for _, col := range cols {
		d, err := parseDecimal(col.name, col.src)
		if err != nil {
			return CandleValues{}, err
		}
		*col.dst = d
	}
	return v, nil
}

// Decimals parses the available and in-order amounts.
func (b Balance) Decimals() (available, inOrder decimal.Decimal, err error) {
	if available, err = parseDecimal("available", b.Available); err != nil {
		return
	}
	inOrder, err = parseDecimal("inOrder", b.InOrder)
	return
}

// Total is available plus in-order.
func (b Balance) Total() (decimal.Decimal, error) {
	available, inOrder, err := b.Decimals()
	if err != nil {
		return decimal.Zero, err
	}
	return available.Add(inOrder), nil
}

// PriceDecimal parses the trade price.
func (t Trade) PriceDecimal() (decimal.Decimal, error) {
	return parseDecimal("price", t.Price)
}

// AmountDecimal parses the trade amount.
func (t Trade) AmountDecimal() (decimal.Decimal, error) {
	return parseDecimal("amount", t.Amount)
}

// PriceDecimal parses the ticker price; ok is false when the market has none.
func (t TickerPrice) PriceDecimal() (d decimal.Decimal, ok bool, err error) {
	if t.Price == nil {
		return decimal.Zero, false, nil
	}
	d, err = parseDecimal("price", *t.Price)
	return d, err == nil, err
}
