package bitvavo

import (
	"context"
	"fmt"
)

// HistoryParams filters DepositHistory and WithdrawalHistory. Zero values
// are left out of the request.
type HistoryParams struct {
	Symbol string
	Limit  int64
	Start  int64 // epoch ms
	End    int64 // epoch ms
}

func (p HistoryParams) query() *query {
	return newQuery().
		optString("symbol", p.Symbol).
		optInt("limit", p.Limit).
		optInt("start", p.Start).
		optInt("end", p.End)
}

// Account returns the fee schedule of the authenticated account.
func (c *Client) Account(ctx context.Context) (Account, error) {
	return get[Account](ctx, c, "account", nil)
}

// Fees returns the fees for one market, or the account tier when market is empty.
func (c *Client) Fees(ctx context.Context, market string) (Fees, error) {
	return get[Fees](ctx, c, "account/fees", newQuery().optString("market", market))
}

// Balances returns the balance of every asset held.
func (c *Client) Balances(ctx context.Context) ([]Balance, error) {
	return get[[]Balance](ctx, c, "balance", nil)
}

// Balance returns the balance of one asset. The exchange only offers a list
// filtered by symbol; an empty list yields ErrNoResult.
func (c *Client) Balance(ctx context.Context, symbol string) (Balance, error) {
	list, err := get[[]Balance](ctx, c, "balance", newQuery().set("symbol", symbol))
	if err != nil {
		return Balance{}, err
	}
	if len(list) == 0 {
		return Balance{}, fmt.Errorf("balance %q: %w", symbol, ErrNoResult)
	}
	return list[0], nil
}

// DepositAddress returns where to deposit an asset.
func (c *Client) DepositAddress(ctx context.Context, symbol string) (DepositInfo, error) {
	return get[DepositInfo](ctx, c, "deposit", newQuery().set("symbol", symbol))
}

// DepositHistory lists past deposits.
func (c *Client) DepositHistory(ctx context.Context, p HistoryParams) ([]Deposit, error) {
	return get[[]Deposit](ctx, c, "depositHistory", p.query())
}

// WithdrawalHistory lists past withdrawals.
func (c *Client) WithdrawalHistory(ctx context.Context, p HistoryParams) ([]Withdrawal, error) {
	return get[[]Withdrawal](ctx, c, "withdrawalHistory", p.query())
}
