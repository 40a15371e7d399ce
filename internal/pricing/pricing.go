// Package pricing turns a cylinder selection and the fee configuration into an
// order breakdown. All amounts are kobo.
package pricing

import (
	"errors"
	"fmt"

	"github.com/and161185/gas2door/internal/model"
	"github.com/shopspring/decimal"
)

// ErrNoCylinder means the catalog is still loading or empty; the quote is provisional.
var ErrNoCylinder = errors.New("no cylinder selected")
var ErrInvalidQuantity = errors.New("quantity must be at least 1")

var hundred = decimal.NewFromInt(100)

type Breakdown struct {
	CylinderID     string          `json:"cylinderId"`
	UnitPrice      int64           `json:"unitPrice"`
	Quantity       int             `json:"quantity"`
	Express        bool            `json:"express"`
	ItemsTotal     int64           `json:"itemsTotal"`
	DeliveryFee    int64           `json:"deliveryFee"`
	ServiceCharge  decimal.Decimal `json:"serviceCharge"`
	VAT            decimal.Decimal `json:"vat"`
	GrandTotal     int64           `json:"grandTotal"`
	VATRate        decimal.Decimal `json:"vatRate"`
	ServiceFeeRate decimal.Decimal `json:"serviceFeeRate"`
}

type Line struct {
	Label    string          `json:"label"`
	Amount   decimal.Decimal `json:"amount"`
	Optional bool            `json:"optional"`
}

// Quote prices qty units of c. Service charge and VAT stay exact; only the
// grand total is rounded, half-up, to whole kobo.
func Quote(c *model.Cylinder, qty int, express bool, fees model.FeeConfig) (Breakdown, error) {
	if c == nil {
		return Breakdown{}, ErrNoCylinder
	}
	if qty < 1 {
		return Breakdown{}, ErrInvalidQuantity
	}

	itemsTotal := c.UnitPrice * int64(qty)

	deliveryFee := fees.BaseDeliveryFee
	if express {
		deliveryFee += fees.ExpressSurcharge
	}

	items := decimal.NewFromInt(itemsTotal)
	serviceCharge := items.Mul(fees.ServiceFeeRate)
	vat := items.Mul(fees.VATRate)

	total := items.
		Add(decimal.NewFromInt(deliveryFee)).
		Add(serviceCharge).
		Add(vat)

	return Breakdown{
		CylinderID:     c.ID,
		UnitPrice:      c.UnitPrice,
		Quantity:       qty,
		Express:        express,
		ItemsTotal:     itemsTotal,
		DeliveryFee:    deliveryFee,
		ServiceCharge:  serviceCharge,
		VAT:            vat,
		GrandTotal:     roundHalfUp(total),
		VATRate:        fees.VATRate,
		ServiceFeeRate: fees.ServiceFeeRate,
	}, nil
}

// Round on a non-negative decimal rounds .5 away from zero, which is half-up here.
func roundHalfUp(d decimal.Decimal) int64 {
	return d.Round(0).IntPart()
}

// Lines lists the display rows of b. Zero-rate rows are marked optional.
func (b Breakdown) Lines() []Line {
	return []Line{
		{Label: "Items", Amount: decimal.NewFromInt(b.ItemsTotal)},
		{Label: "Delivery", Amount: decimal.NewFromInt(b.DeliveryFee)},
		{Label: "Service Charge", Amount: b.ServiceCharge, Optional: b.ServiceFeeRate.IsZero()},
		{
			Label:    fmt.Sprintf("VAT (%s%%)", b.VATRate.Mul(hundred).StringFixed(1)),
			Amount:   b.VAT,
			Optional: b.VATRate.IsZero(),
		},
		{Label: "Total", Amount: decimal.NewFromInt(b.GrandTotal)},
	}
}

// PricePerKg is the display price of one kilogram; zero when kg is not positive.
func PricePerKg(unitPrice int64, kg decimal.Decimal) decimal.Decimal {
	if !kg.IsPositive() {
		return decimal.Zero
	}
	return decimal.NewFromInt(unitPrice).Div(kg)
}
