package bitvavo

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// PlaceOrder submits an order. The order is validated locally first; a
// malformed order fails with *ValidationError and is never sent.
func (c *Client) PlaceOrder(ctx context.Context, o Order) (OrderResponse, error) {
	return post[OrderResponse](ctx, c, "order", o)
}

// Withdraw requests a withdrawal to an external address.
func (c *Client) Withdraw(ctx context.Context, w WithdrawalRequest) (WithdrawalResponse, error) {
	return post[WithdrawalResponse](ctx, c, "withdrawal", w)
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonName)
	if err := v.RegisterValidation("wire", validWire); err != nil {
		panic(fmt.Sprintf("bitvavo: register wire validation: %v", err))
	}
	v.RegisterStructValidation(validateOrder, Order{})
	return v
}

// validWire accepts wire enum values that are members of their set.
func validWire(fl validator.FieldLevel) bool {
	e, ok := fl.Field().Interface().(wireEnum)
	return !ok || e.valid()
}

// jsonName reports fields by their wire name in validation errors.
func jsonName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	return name
}

// validateOrder checks the rules that span several fields.
func validateOrder(sl validator.StructLevel) {
	o := sl.Current().Interface().(Order)

	if o.Amount == "" && o.AmountQuote == "" {
		sl.ReportError(o.Amount, "amount", "Amount", "required_without", "amountQuote")
	}
	if o.OrderType.limit() && o.Price == "" {
		sl.ReportError(o.Price, "price", "Price", "required_for_limit", string(o.OrderType))
	}
	if o.OrderType.triggered() {
		if o.TriggerAmount == "" {
			sl.ReportError(o.TriggerAmount, "triggerAmount", "TriggerAmount", "required_for_trigger", string(o.OrderType))
		}
		if o.TriggerType == "" {
			sl.ReportError(o.TriggerType, "triggerType", "TriggerType", "required_for_trigger", string(o.OrderType))
		}
		if o.TriggerReference == "" {
			sl.ReportError(o.TriggerReference, "triggerReference", "TriggerReference", "required_for_trigger", string(o.OrderType))
		}
	}
}
