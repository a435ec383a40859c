package order

import (
	"errors"
	"fmt"

	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Detail is one line of an order. The lifecycle never changes it.
type Detail struct {
	ProductName string
	Count       int
	Price       decimal.Decimal
}

func NewDetail(productName string, count int, price decimal.Decimal) (Detail, error) {
	var errName, errCount, errPrice error
	if productName == "" {
		errName = errs.NewValueIsRequiredError("product name")
	}
	if count <= 0 {
		errCount = errs.NewValueIsInvalidErrorWithCause("count", fmt.Errorf("%d is not greater than 0", count))
	}
	if price.IsNegative() {
		errPrice = errs.NewValueIsInvalidErrorWithCause("price", fmt.Errorf("%s is negative", price))
	}
	if err := errors.Join(errName, errCount, errPrice); err != nil {
		return Detail{}, err
	}
	return Detail{ProductName: productName, Count: count, Price: price}, nil
}

func (d Detail) Subtotal() decimal.Decimal {
	return d.Price.Mul(decimal.NewFromInt(int64(d.Count)))
}

// Total sums the subtotals of details.
func Total(details []Detail) decimal.Decimal {
	total := decimal.Zero
	for _, d := range details {
		total = total.Add(d.Subtotal())
	}
	return total
}
