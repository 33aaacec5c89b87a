package bitvavo

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"

	"bitvavo-api/pkg/exchanges/common"
)

func checkTokens[T ~string](t *testing.T, set common.Enum[T]) {
	t.Helper()
	for _, tok := range set.Strings() {
		in, _ := json.Marshal(tok)
		var v T
		if err := json.Unmarshal(in, &v); err != nil {
			t.Fatalf("decode %s: %v", in, err)
		}
		out, err := json.Marshal(v)
		if err != nil {
			t.Fatalf("encode %v: %v", v, err)
		}
		if string(out) != string(in) {
			t.Fatalf("round trip %s -> %s", in, out)
		}
	}
	var v T
	if err := json.Unmarshal([]byte(`"bogus"`), &v); err == nil {
		t.Fatalf("expected error for unknown token")
	}
}

func TestEnumTokensRoundTrip(t *testing.T) {
	t.Run("AssetStatus", func(t *testing.T) { checkTokens(t, assetStatuses) })
	t.Run("MarketStatus", func(t *testing.T) { checkTokens(t, marketStatuses) })
	t.Run("TradeSide", func(t *testing.T) { checkTokens(t, tradeSides) })
	t.Run("DepositStatus", func(t *testing.T) { checkTokens(t, depositStatuses) })
	t.Run("WithdrawalStatus", func(t *testing.T) { checkTokens(t, withdrawalStatuses) })
	t.Run("OrderType", func(t *testing.T) { checkTokens(t, orderTypes) })
	t.Run("TriggerType", func(t *testing.T) { checkTokens(t, triggerTypes) })
	t.Run("TriggerReference", func(t *testing.T) { checkTokens(t, triggerReferences) })
	t.Run("TimeInForce", func(t *testing.T) { checkTokens(t, timesInForce) })
	t.Run("SelfTradePrevention", func(t *testing.T) { checkTokens(t, selfTradePreventions) })
	t.Run("CandleInterval", func(t *testing.T) { checkTokens(t, candleIntervals) })
}

func TestMarketStatusUnknownToken(t *testing.T) {
	var s MarketStatus
	err := json.Unmarshal([]byte(`"bogus"`), &s)

	var inv *common.InvalidValueError
	if !errors.As(err, &inv) {
		t.Fatalf("expected InvalidValueError, got %v", err)
	}
	if inv.Value != "bogus" {
		t.Fatalf("value = %q", inv.Value)
	}
	want := []string{"trading", "halted", "auction"}
	if !reflect.DeepEqual(inv.Expected, want) {
		t.Fatalf("expected = %v, want %v", inv.Expected, want)
	}
	for _, tok := range want {
		if !strings.Contains(err.Error(), tok) {
			t.Fatalf("error %q does not list %q", err, tok)
		}
	}
}

func TestEnumTokensAreCaseSensitive(t *testing.T) {
	var side TradeSide
	if err := json.Unmarshal([]byte(`"BUY"`), &side); err == nil {
		t.Fatal("expected BUY to be rejected")
	}
}

func TestEnumMarshalRefusesUnknownValue(t *testing.T) {
	if _, err := json.Marshal(OrderType("iceberg")); err == nil {
		t.Fatal("expected marshal of unknown order type to fail")
	}
}

func TestParseCandleInterval(t *testing.T) {
	i, err := ParseCandleInterval("1h")
	if err != nil {
		t.Fatalf("ParseCandleInterval: %v", err)
	}
	if i != Interval1h || i.Duration().Hours() != 1 {
		t.Fatalf("got %v (%v)", i, i.Duration())
	}
	if _, err := ParseCandleInterval("2m"); err == nil {
		t.Fatal("expected 2m to be rejected")
	}
}

func TestQuoteDecode(t *testing.T) {
	var q Quote
	if err := json.Unmarshal([]byte(`["21000.5","0.01"]`), &q); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if q.Price != "21000.5" || q.Amount != "0.01" {
		t.Fatalf("got %+v", q)
	}

	out, err := json.Marshal(q)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != `["21000.5","0.01"]` {
		t.Fatalf("marshal = %s", out)
	}
}

func TestQuoteMissingAmount(t *testing.T) {
	var q Quote
	err := json.Unmarshal([]byte(`["21000.5"]`), &q)

	var missing *common.MissingFieldError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingFieldError, got %v", err)
	}
	if missing.Field != "amount" {
		t.Fatalf("field = %q, want amount", missing.Field)
	}
}

func TestQuoteRejectsWrongElementType(t *testing.T) {
	var q Quote
	if err := json.Unmarshal([]byte(`[21000.5,"0.01"]`), &q); err == nil {
		t.Fatal("expected a numeric price to be rejected")
	}
	if err := json.Unmarshal([]byte(`{"price":"1","amount":"2"}`), &q); err == nil {
		t.Fatal("expected an object to be rejected")
	}
}

func TestOHLCVRoundTrip(t *testing.T) {
	const wire = `[1700000000000,"30000","30500","29900","30100","12.5"]`

	var c OHLCV
	if err := json.Unmarshal([]byte(wire), &c); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	want := OHLCV{Time: 1700000000000, Open: "30000", High: "30500", Low: "29900", Close: "30100", Volume: "12.5"}
	if c != want {
		t.Fatalf("got %+v", c)
	}

	out, err := json.Marshal(c)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != wire {
		t.Fatalf("marshal = %s", out)
	}
}

func TestOHLCVMissingVolume(t *testing.T) {
	var c OHLCV
	err := json.Unmarshal([]byte(`[1700000000000,"30000","30500","29900","30100"]`), &c)

	var missing *common.MissingFieldError
	if !errors.As(err, &missing) || missing.Field != "volume" {
		t.Fatalf("expected missing volume, got %v", err)
	}
}

func TestOrderBookDecode(t *testing.T) {
	const body = `{"market":"BTC-EUR","nonce":42,"bids":[["21000","1.5"]],"asks":[["21001","0.2"],["21002","3"]]}`

	var b OrderBook
	if err := json.Unmarshal([]byte(body), &b); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if b.Nonce != 42 || len(b.Bids) != 1 || len(b.Asks) != 2 {
		t.Fatalf("got %+v", b)
	}
	if b.Asks[1] != (Quote{Price: "21002", Amount: "3"}) {
		t.Fatalf("asks[1] = %+v", b.Asks[1])
	}
}

func TestOrderOmitsEmptyOptionalFields(t *testing.T) {
	o := Order{Market: "BTC-EUR", Side: SideBuy, OrderType: OrderTypeMarket, Amount: "0.1"}
	b, err := json.Marshal(o)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	got := string(b)
	for _, key := range []string{"price", "triggerType", "timeInForce", "clientOrderId", "postOnly", "selfTradePrevention"} {
		if strings.Contains(got, `"`+key+`"`) {
			t.Fatalf("%s present in %s", key, got)
		}
	}
	if !strings.Contains(got, `"side":"buy"`) || !strings.Contains(got, `"orderType":"market"`) {
		t.Fatalf("unexpected body %s", got)
	}
}
