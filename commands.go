package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"bitvavo-api/pkg/crypto"
	"bitvavo-api/pkg/exchanges/bitvavo"
)

type command struct {
	usage       string
	needsClient bool
	private     bool
	run         func(ctx context.Context, c *cli, args []string) (any, error)
}

var commands = map[string]command{
	"time":        {usage: "exchange clock (epoch ms)", needsClient: true, run: cmdTime},
	"assets":      {usage: "[symbol]  list assets or show one", needsClient: true, run: cmdAssets},
	"markets":     {usage: "[market]  list markets or show one", needsClient: true, run: cmdMarkets},
	"book":        {usage: "[-depth n] [market]  order book", needsClient: true, run: cmdBook},
	"spread":      {usage: "[market]  best ask minus best bid", needsClient: true, run: cmdSpread},
	"trades":      {usage: "[-limit n] [-start ms] [-end ms] [market]  public trades", needsClient: true, run: cmdTrades},
	"candles":     {usage: "[-interval 1h] [-limit n] [-start ms] [-end ms] [market]  OHLCV", needsClient: true, run: cmdCandles},
	"price":       {usage: "[market]  last price", needsClient: true, run: cmdPrice},
	"tickerbook":  {usage: "[market]  best bid and ask", needsClient: true, run: cmdTickerBook},
	"ticker24h":   {usage: "[market]  24h statistics", needsClient: true, run: cmdTicker24h},
	"account":     {usage: "account fee schedule", needsClient: true, private: true, run: cmdAccount},
	"fees":        {usage: "[market]  fees for a market", needsClient: true, private: true, run: cmdFees},
	"balance":     {usage: "[symbol]  balances, or one asset", needsClient: true, private: true, run: cmdBalance},
	"deposit":     {usage: "<symbol>  deposit address", needsClient: true, private: true, run: cmdDeposit},
	"deposits":    {usage: "[-symbol s] [-limit n] [-start ms] [-end ms]  deposit history", needsClient: true, private: true, run: cmdDeposits},
	"withdrawals": {usage: "[-symbol s] [-limit n] [-start ms] [-end ms]  withdrawal history", needsClient: true, private: true, run: cmdWithdrawals},
	"order":       {usage: "-side buy|sell -type market|limit|... [-amount a] [-price p] ... [market]  place an order", needsClient: true, private: true, run: cmdOrder},
	"withdraw":    {usage: "-symbol s -amount a -address addr  withdraw funds", needsClient: true, private: true, run: cmdWithdraw},
	"seal":        {usage: "[value]  seal a credential with MASTER_ENCRYPTION_KEY (reads stdin without value)", run: cmdSeal},
	"genkey":      {usage: "generate a MASTER_ENCRYPTION_KEY", run: cmdGenKey},
}

func newFlags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func cmdTime(ctx context.Context, c *cli, _ []string) (any, error) {
	ms, err := c.client.Time(ctx)
	if err != nil {
		return nil, err
	}
	return map[string]int64{"time": ms}, nil
}

func cmdAssets(ctx context.Context, c *cli, args []string) (any, error) {
	if len(args) > 0 {
		return c.client.Asset(ctx, args[0])
	}
	return c.client.Assets(ctx)
}

func cmdMarkets(ctx context.Context, c *cli, args []string) (any, error) {
	if len(args) > 0 {
		return c.client.Market(ctx, args[0])
	}
	return c.client.Markets(ctx)
}

func cmdBook(ctx context.Context, c *cli, args []string) (any, error) {
	fs := newFlags("book")
	depth := fs.Int64("depth", 0, "number of levels per side")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return c.client.OrderBook(ctx, c.market(fs.Args()), *depth)
}

func cmdSpread(ctx context.Context, c *cli, args []string) (any, error) {
	book, err := c.client.OrderBook(ctx, c.market(args), 1)
	if err != nil {
		return nil, err
	}
	spread, err := book.Spread()
	if err != nil {
		return nil, err
	}
	return map[string]string{
		"market": book.Market,
		"bid":    book.Bids[0].Price,
		"ask":    book.Asks[0].Price,
		"spread": bitvavo.Amount(spread),
	}, nil
}

type rangeFlags struct {
	limit, start, end *int64
}

func addRange(fs *flag.FlagSet) rangeFlags {
	return rangeFlags{
		limit: fs.Int64("limit", 0, "maximum number of results"),
		start: fs.Int64("start", 0, "start time (epoch ms)"),
		end:   fs.Int64("end", 0, "end time (epoch ms)"),
	}
}

func cmdTrades(ctx context.Context, c *cli, args []string) (any, error) {
	fs := newFlags("trades")
	r := addRange(fs)
	from := fs.String("from", "", "first trade id")
	to := fs.String("to", "", "last trade id")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return c.client.Trades(ctx, c.market(fs.Args()), bitvavo.TradesParams{
		Limit: *r.limit, Start: *r.start, End: *r.end, TradeIDFrom: *from, TradeIDTo: *to,
	})
}

func cmdCandles(ctx context.Context, c *cli, args []string) (any, error) {
	fs := newFlags("candles")
	interval := fs.String("interval", "1h", "candle interval")
	r := addRange(fs)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	iv, err := bitvavo.ParseCandleInterval(*interval)
	if err != nil {
		return nil, err
	}
	return c.client.Candles(ctx, c.market(fs.Args()), iv, bitvavo.CandlesParams{
		Limit: *r.limit, Start: *r.start, End: *r.end,
	})
}

func cmdPrice(ctx context.Context, c *cli, args []string) (any, error) {
	if len(args) > 0 {
		return c.client.TickerPrice(ctx, args[0])
	}
	return c.client.TickerPrices(ctx)
}

func cmdTickerBook(ctx context.Context, c *cli, args []string) (any, error) {
	if len(args) > 0 {
		return c.client.TickerBook(ctx, args[0])
	}
	return c.client.TickerBooks(ctx)
}

func cmdTicker24h(ctx context.Context, c *cli, args []string) (any, error) {
	if len(args) > 0 {
		return c.client.Ticker24h(ctx, args[0])
	}
	return c.client.Tickers24h(ctx)
}

func cmdAccount(ctx context.Context, c *cli, _ []string) (any, error) {
	return c.client.Account(ctx)
}

func cmdFees(ctx context.Context, c *cli, args []string) (any, error) {
	market := ""
	if len(args) > 0 {
		market = args[0]
	}
	return c.client.Fees(ctx, market)
}

func cmdBalance(ctx context.Context, c *cli, args []string) (any, error) {
	if len(args) > 0 {
		return c.client.Balance(ctx, args[0])
	}
	return c.client.Balances(ctx)
}

func cmdDeposit(ctx context.Context, c *cli, args []string) (any, error) {
	if len(args) == 0 {
		return nil, errors.New("deposit: symbol required")
	}
	return c.client.DepositAddress(ctx, args[0])
}

func parseHistory(name string, args []string) (bitvavo.HistoryParams, error) {
	fs := newFlags(name)
	symbol := fs.String("symbol", "", "asset symbol")
	r := addRange(fs)
	if err := fs.Parse(args); err != nil {
		return bitvavo.HistoryParams{}, err
	}
	return bitvavo.HistoryParams{Symbol: *symbol, Limit: *r.limit, Start: *r.start, End: *r.end}, nil
}

func cmdDeposits(ctx context.Context, c *cli, args []string) (any, error) {
	p, err := parseHistory("deposits", args)
	if err != nil {
		return nil, err
	}
	return c.client.DepositHistory(ctx, p)
}

func cmdWithdrawals(ctx context.Context, c *cli, args []string) (any, error) {
	p, err := parseHistory("withdrawals", args)
	if err != nil {
		return nil, err
	}
	return c.client.WithdrawalHistory(ctx, p)
}

// decimalFlag normalises a decimal command-line value; empty stays empty.
func decimalFlag(name, v string) (string, error) {
	if v == "" {
		return "", nil
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return "", fmt.Errorf("-%s: %w", name, err)
	}
	return bitvavo.Amount(d), nil
}

func cmdOrder(ctx context.Context, c *cli, args []string) (any, error) {
	fs := newFlags("order")
	side := fs.String("side", "", "buy or sell")
	orderType := fs.String("type", "", "market, limit, stopLoss, stopLossLimit, takeProfit or takeProfitLimit")
	amount := fs.String("amount", "", "amount in base currency")
	amountQuote := fs.String("amount-quote", "", "amount in quote currency (market orders)")
	price := fs.String("price", "", "limit price")
	trigger := fs.String("trigger", "", "trigger amount")
	triggerRef := fs.String("trigger-ref", string(bitvavo.TriggerLastTrade), "trigger reference")
	tif := fs.String("tif", "", "time in force: GTC, IOC or FOK")
	postOnly := fs.Bool("post-only", false, "reject if the order would take liquidity")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	o := bitvavo.Order{
		Market:      c.market(fs.Args()),
		Side:        bitvavo.TradeSide(*side),
		OrderType:   bitvavo.OrderType(*orderType),
		TimeInForce: bitvavo.TimeInForce(*tif),
	}
	var err error
	if o.Amount, err = decimalFlag("amount", *amount); err != nil {
		return nil, err
	}
	if o.AmountQuote, err = decimalFlag("amount-quote", *amountQuote); err != nil {
		return nil, err
	}
	if o.Price, err = decimalFlag("price", *price); err != nil {
		return nil, err
	}
	if o.TriggerAmount, err = decimalFlag("trigger", *trigger); err != nil {
		return nil, err
	}
	if o.TriggerAmount != "" {
		o.TriggerType = bitvavo.TriggerTypePrice
		o.TriggerReference = bitvavo.TriggerReference(*triggerRef)
	}
	if *postOnly {
		o.PostOnly = postOnly
	}
	id := uuid.New()
	o.ClientOrderID = &id

	return c.client.PlaceOrder(ctx, o)
}

func cmdWithdraw(ctx context.Context, c *cli, args []string) (any, error) {
	fs := newFlags("withdraw")
	symbol := fs.String("symbol", "", "asset symbol")
	amount := fs.String("amount", "", "amount to withdraw")
	address := fs.String("address", "", "destination address")
	paymentID := fs.String("payment-id", "", "payment id or memo")
	addFee := fs.Bool("add-fee", false, "add the withdrawal fee on top of amount")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	amt, err := decimalFlag("amount", *amount)
	if err != nil {
		return nil, err
	}
	return c.client.Withdraw(ctx, bitvavo.WithdrawalRequest{
		Symbol:           *symbol,
		Amount:           amt,
		Address:          *address,
		PaymentID:        *paymentID,
		AddWithdrawalFee: *addFee,
	})
}

func cmdSeal(_ context.Context, _ *cli, args []string) (any, error) {
	var plain []byte
	if len(args) > 0 {
		plain = []byte(args[0])
	} else {
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
		plain = []byte(strings.TrimRight(line, "\r\n"))
	}
	defer crypto.Wipe(plain)
	if len(plain) == 0 {
		return nil, errors.New("seal: nothing to seal")
	}

	kr, err := crypto.KeyringFromEnv()
	if err != nil {
		return nil, err
	}
	defer kr.Wipe()
	return kr.Seal(plain)
}

func cmdGenKey(_ context.Context, _ *cli, _ []string) (any, error) {
	return crypto.GenerateKey()
}
