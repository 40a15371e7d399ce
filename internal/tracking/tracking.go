// Package tracking derives what the tracking and payment pages show from an order.
package tracking

import (
	"strings"

	"github.com/and161185/gas2door/internal/model"
	"github.com/and161185/gas2door/internal/utils"
)

var Steps = []string{
	"Order Placed",
	"Processing",
	"Driver Assigned",
	"Refilling/In Transit",
	"Out for Delivery",
	"Delivered",
}

type Step struct {
	Label string `json:"label"`
	Done  bool   `json:"done"`
}

type Progress struct {
	Status  string `json:"status"`
	Current int    `json:"current"`
	Steps   []Step `json:"steps"`
}

// Timeline marks every step up to the order's status as done. An unknown
// status counts as the first step.
func Timeline(status string) Progress {
	current := 0
	for i, s := range Steps {
		if strings.EqualFold(s, strings.TrimSpace(status)) {
			current = i
			break
		}
	}

	steps := make([]Step, len(Steps))
	for i, s := range Steps {
		steps[i] = Step{Label: s, Done: i <= current}
	}
	return Progress{Status: status, Current: current, Steps: steps}
}

func Delivered(status string) bool {
	return strings.EqualFold(strings.TrimSpace(status), Steps[len(Steps)-1])
}

type Line struct {
	Label   string `json:"label"`
	Amount  int64  `json:"amount"`
	Display string `json:"display"`
}

type Summary struct {
	ItemsTotal    int64  `json:"itemsTotal"`
	DeliveryFee   int64  `json:"deliveryFee"`
	ServiceCharge int64  `json:"serviceCharge"`
	VAT           int64  `json:"vat"`
	Total         int64  `json:"total"`
	Lines         []Line `json:"lines"`
}

// Summarize prefers the amounts the order service stored and falls back to
// the line items and the sum of the parts when they are missing.
func Summarize(o model.Order) Summary {
	s := Summary{
		ItemsTotal:    o.ItemsTotal,
		DeliveryFee:   o.DeliveryFee,
		ServiceCharge: o.ServiceCharge,
		VAT:           o.VAT,
		Total:         o.GrandTotal,
	}

	if s.ItemsTotal == 0 {
		for _, it := range o.Items {
			s.ItemsTotal += it.UnitPrice * int64(it.Quantity)
		}
	}
	if s.Total == 0 {
		s.Total = s.ItemsTotal + s.DeliveryFee + s.ServiceCharge + s.VAT
	}

	s.Lines = append(s.Lines, line("Items Total", s.ItemsTotal), line("Delivery Fee", s.DeliveryFee))
	if s.ServiceCharge > 0 {
		s.Lines = append(s.Lines, line("Service Charge", s.ServiceCharge))
	}
	if s.VAT > 0 {
		s.Lines = append(s.Lines, line("VAT (7.5%)", s.VAT))
	}
	s.Lines = append(s.Lines, line("Total", s.Total))
	return s
}

func line(label string, amount int64) Line {
	return Line{Label: label, Amount: amount, Display: utils.FormatNaira(amount)}
}
