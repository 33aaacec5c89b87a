package bitvavo

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"bitvavo-api/internal/exchangetest"
)

const orderAck = `{"market":"BTC-EUR","orderId":"1be6d0df-d5dc-4b53-a250-3376f3b393e6",
	"clientOrderId":"2be7d0df-d5dc-4b53-a250-3376f3b393e6","created":1700000000000,"updated":1700000000000}`

func TestPlaceOrderSignsBody(t *testing.T) {
	srv := exchangetest.New(t)
	srv.Handle(http.MethodPost, "/v2/order", http.StatusOK, orderAck)
	c := newSigned(t, srv)

	clientID := uuid.MustParse("2be7d0df-d5dc-4b53-a250-3376f3b393e6")
	resp, err := c.PlaceOrder(context.Background(), Order{
		Market:        "BTC-EUR",
		Side:          SideBuy,
		OrderType:     OrderTypeLimit,
		ClientOrderID: &clientID,
		Amount:        "0.1",
		Price:         "21000",
		TimeInForce:   TIFGTC,
	})
	if err != nil {
		t.Fatalf("PlaceOrder: %v", err)
	}
	if resp.OrderID.String() != "1be6d0df-d5dc-4b53-a250-3376f3b393e6" {
		t.Fatalf("orderId = %s", resp.OrderID)
	}
	if resp.ClientOrderID == nil || *resp.ClientOrderID != clientID {
		t.Fatalf("clientOrderId = %v", resp.ClientOrderID)
	}

	req := lastRequest(t, srv)
	if req.Method != http.MethodPost || req.Target != "/v2/order" {
		t.Fatalf("request = %s %s", req.Method, req.Target)
	}
	if ct := req.Header.Get("Content-Type"); ct != "application/json" {
		t.Fatalf("content type = %q", ct)
	}
	want := Sign([]byte(testSecret), req.Header.Get(HeaderAccessTimestamp), http.MethodPost, "/v2/order", req.Body)
	if got := req.Header.Get(HeaderAccessSignature); got != want {
		t.Fatalf("signature = %q, want %q", got, want)
	}

	var sent map[string]any
	if err := json.Unmarshal(req.Body, &sent); err != nil {
		t.Fatalf("body: %v", err)
	}
	if sent["orderType"] != "limit" || sent["price"] != "21000" || sent["timeInForce"] != "GTC" {
		t.Fatalf("body = %s", req.Body)
	}
	if _, ok := sent["triggerAmount"]; ok {
		t.Fatalf("empty triggerAmount sent: %s", req.Body)
	}
}

func TestPlaceOrderValidation(t *testing.T) {
	tests := []struct {
		name  string
		order Order
		field string
	}{
		{
			name:  "missing market",
			order: Order{Side: SideBuy, OrderType: OrderTypeMarket, Amount: "1"},
			field: "market",
		},
		{
			name:  "unknown side",
			order: Order{Market: "BTC-EUR", Side: "hold", OrderType: OrderTypeMarket, Amount: "1"},
			field: "side",
		},
		{
			name:  "no amount",
			order: Order{Market: "BTC-EUR", Side: SideSell, OrderType: OrderTypeMarket},
			field: "amount",
		},
		{
			name:  "non numeric amount",
			order: Order{Market: "BTC-EUR", Side: SideSell, OrderType: OrderTypeMarket, Amount: "lots"},
			field: "amount",
		},
		{
			name:  "limit without price",
			order: Order{Market: "BTC-EUR", Side: SideBuy, OrderType: OrderTypeLimit, Amount: "1"},
			field: "price",
		},
		{
			name: "stop loss without trigger",
			order: Order{Market: "BTC-EUR", Side: SideSell, OrderType: OrderTypeStopLoss, Amount: "1",
				TriggerType: TriggerTypePrice, TriggerReference: TriggerLastTrade},
			field: "triggerAmount",
		},
		{
			name: "unknown time in force",
			order: Order{Market: "BTC-EUR", Side: SideBuy, OrderType: OrderTypeLimit, Amount: "1", Price: "2",
				TimeInForce: "GTD"},
			field: "timeInForce",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := exchangetest.New(t)
			srv.Handle(http.MethodPost, "/v2/order", http.StatusOK, orderAck)
			c := newSigned(t, srv)

			_, err := c.PlaceOrder(context.Background(), tt.order)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			var fields validator.ValidationErrors
			if !errors.As(err, &fields) {
				t.Fatalf("expected field errors, got %v", err)
			}
			found := false
			for _, fe := range fields {
				if fe.Field() == tt.field {
					found = true
				}
			}
			if !found {
				t.Fatalf("no error for %s in %v", tt.field, fields)
			}
			if len(srv.Requests()) != 0 {
				t.Fatal("invalid order reached the exchange")
			}
		})
	}
}

func TestPlaceOrderTriggered(t *testing.T) {
	srv := exchangetest.New(t)
	srv.Handle(http.MethodPost, "/v2/order", http.StatusOK, orderAck)
	c := newSigned(t, srv)

	_, err := c.PlaceOrder(context.Background(), Order{
		Market:           "BTC-EUR",
		Side:             SideSell,
		OrderType:        OrderTypeStopLossLimit,
		Amount:           "0.5",
		Price:            "19000",
		TriggerAmount:    "19500",
		TriggerType:      TriggerTypePrice,
		TriggerReference: TriggerBestBid,
	})
	if err != nil {
		t.Fatalf("PlaceOrder: %v", err)
	}
	body := string(lastRequest(t, srv).Body)
	if !strings.Contains(body, `"triggerReference":"bestBid"`) {
		t.Fatalf("body = %s", body)
	}
}

func TestPlaceOrderRejected(t *testing.T) {
	srv := exchangetest.New(t)
	srv.Handle(http.MethodPost, "/v2/order", http.StatusBadRequest, `{"errorCode":216,"error":"You do not have sufficient balance to complete this operation."}`)
	c := newSigned(t, srv)

	_, err := c.PlaceOrder(context.Background(), Order{Market: "BTC-EUR", Side: SideBuy, OrderType: OrderTypeMarket, AmountQuote: "10"})
	if !IsExchangeError(err, 216) {
		t.Fatalf("expected errorCode 216, got %v", err)
	}
}

func TestWithdraw(t *testing.T) {
	srv := exchangetest.New(t)
	srv.Handle(http.MethodPost, "/v2/withdrawal", http.StatusOK, `{"success":true,"symbol":"BTC","amount":"1.5"}`)
	c := newSigned(t, srv)

	resp, err := c.Withdraw(context.Background(), WithdrawalRequest{Symbol: "BTC", Amount: "1.5", Address: "bc1qexample"})
	if err != nil {
		t.Fatalf("Withdraw: %v", err)
	}
	if !resp.Success || resp.Amount != "1.5" {
		t.Fatalf("resp = %+v", resp)
	}
	body := string(lastRequest(t, srv).Body)
	if strings.Contains(body, "paymentId") {
		t.Fatalf("empty paymentId sent: %s", body)
	}

	_, err = c.Withdraw(context.Background(), WithdrawalRequest{Symbol: "BTC", Amount: "1.5"})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("missing address: %v, want ValidationError", err)
	}
}

func TestValidatorEnforcesWireTokens(t *testing.T) {
	v := newValidator()
	err := v.Struct(Order{Market: "BTC-EUR", Side: "hold", OrderType: OrderTypeMarket, Amount: "1"})

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("expected validation errors, got %v", err)
	}
	for _, fe := range verrs {
		if fe.Field() == "side" && fe.Tag() == "wire" {
			return
		}
	}
	t.Fatalf("side not rejected by wire rule: %v", verrs)
}
