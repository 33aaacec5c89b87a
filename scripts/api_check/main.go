package main

import (
	"context"
	"errors"
	"log"
	"os"
	"time"

	"github.com/google/uuid"

	"bitvavo-api/pkg/config"
	"bitvavo-api/pkg/exchanges/bitvavo"
)

// api_check/main.go
//
// Quick smoke test of the client against the live exchange.
//
// Usage:
//
//   go run ./scripts/api_check
//
// Environment (same as the bitvavo CLI):
//   BITVAVO_API_KEY / BITVAVO_API_SECRET   private checks are skipped when empty
//   BITVAVO_MARKET                         market to check (default BTC-EUR)
//
// Behaviour:
//   API_CHECK_PLACE_ORDERS  (default "false")
//        - false: read-only endpoints only
//        - true : also sends a market buy for API_CHECK_QUOTE_AMOUNT of the
//                 quote currency (default "5"). This may fill.

func main() {
	log.Println("=== API check starting ===")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}
	placeOrders := getenv("API_CHECK_PLACE_ORDERS", "false") == "true"
	quoteAmount := getenv("API_CHECK_QUOTE_AMOUNT", "5")
	log.Printf("Config: baseURL=%s market=%s placeOrders=%v", cfg.BaseURL, cfg.Market, placeOrders)

	key, secret, err := cfg.Credentials()
	if err != nil {
		log.Fatalf("credentials: %v", err)
	}
	client, err := bitvavo.New(bitvavo.Config{
		APIKey:    key,
		APISecret: secret,
		BaseURL:   cfg.BaseURL,
		Logger:    log.Default(),
	})
	if err != nil {
		log.Fatalf("client: %v", err)
	}
	defer client.Close()

	checkPublic(client, cfg.Market)

	if !client.Signed() {
		log.Println("[PRIVATE] BITVAVO_API_KEY/SECRET empty, skipping private checks")
	} else {
		checkPrivate(client, cfg.Market, placeOrders, quoteAmount)
	}

	log.Println("=== API check finished ===")
}

func checkPublic(c *bitvavo.Client, market string) {
	log.Println("---- [PUBLIC] Checking market data ----")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := c.SyncTime(ctx); err != nil {
		log.Printf("[PUBLIC] SyncTime error: %v", err)
	}

	ctx2, cancel2 := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel2()
	m, err := c.Market(ctx2, market)
	if err != nil {
		log.Printf("[PUBLIC] Market error: %v", err)
	} else {
		log.Printf("[PUBLIC] %s status=%s minQuote=%s", m.Market, m.Status, m.MinOrderInQuoteAsset)
	}

	ctx3, cancel3 := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel3()
	book, err := c.OrderBook(ctx3, market, 5)
	if err != nil {
		log.Printf("[PUBLIC] OrderBook error: %v", err)
	} else if spread, err := book.Spread(); err != nil {
		log.Printf("[PUBLIC] Spread error: %v", err)
	} else {
		log.Printf("[PUBLIC] book nonce=%d spread=%s", book.Nonce, bitvavo.Amount(spread))
	}

	ctx4, cancel4 := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel4()
	candles, err := c.Candles(ctx4, market, bitvavo.Interval1h, bitvavo.CandlesParams{Limit: 3})
	if err != nil {
		log.Printf("[PUBLIC] Candles error: %v", err)
	} else {
		log.Printf("[PUBLIC] candles=%d", len(candles))
	}

	ctx5, cancel5 := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel5()
	tickers, err := c.Tickers24h(ctx5)
	if err != nil {
		log.Printf("[PUBLIC] Tickers24h error: %v", err)
	} else {
		log.Printf("[PUBLIC] 24h tickers=%d", len(tickers))
	}
}

func checkPrivate(c *bitvavo.Client, market string, placeOrders bool, quoteAmount string) {
	log.Println("---- [PRIVATE] Checking account API ----")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	acct, err := c.Account(ctx)
	if err != nil {
		log.Printf("[PRIVATE] Account error: %v", err)
	} else {
		log.Printf("[PRIVATE] fees taker=%s maker=%s", acct.Fees.Taker, acct.Fees.Maker)
	}

	ctx2, cancel2 := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel2()
	balances, err := c.Balances(ctx2)
	if err != nil {
		log.Printf("[PRIVATE] Balances error: %v", err)
	} else {
		log.Printf("[PRIVATE] balances=%d", len(balances))
	}

	ctx3, cancel3 := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel3()
	if _, err := c.Balance(ctx3, "EUR"); errors.Is(err, bitvavo.ErrNoResult) {
		log.Println("[PRIVATE] no EUR balance")
	} else if err != nil {
		log.Printf("[PRIVATE] Balance error: %v", err)
	}

	ctx4, cancel4 := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel4()
	deposits, err := c.DepositHistory(ctx4, bitvavo.HistoryParams{Limit: 5})
	if err != nil {
		log.Printf("[PRIVATE] DepositHistory error: %v", err)
	} else {
		log.Printf("[PRIVATE] recent deposits=%d", len(deposits))
	}

	if !placeOrders {
		log.Println("[PRIVATE] Skip placing orders (API_CHECK_PLACE_ORDERS=false)")
		return
	}

	ctx5, cancel5 := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel5()
	id := uuid.New()
	o := bitvavo.Order{
		Market:        market,
		Side:          bitvavo.SideBuy,
		OrderType:     bitvavo.OrderTypeMarket,
		AmountQuote:   quoteAmount,
		ClientOrderID: &id,
	}
	log.Printf("[PRIVATE] Submitting test MARKET BUY %s amountQuote=%s", market, quoteAmount)
	res, err := c.PlaceOrder(ctx5, o)
	if err != nil {
		log.Printf("[PRIVATE] PlaceOrder returned error (acceptable for test, e.g. insufficient balance): %v", err)
		return
	}
	log.Printf("[PRIVATE] PlaceOrder OK orderId=%s", res.OrderID)
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
