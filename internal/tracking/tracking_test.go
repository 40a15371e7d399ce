package tracking

import (
	"testing"

	"github.com/and161185/gas2door/internal/model"
	"github.com/stretchr/testify/require"
)

func TestTimeline(t *testing.T) {
	tests := []struct {
		status  string
		current int
	}{
		{"Order Placed", 0},
		{"processing", 1},
		{"DRIVER ASSIGNED", 2},
		{"Refilling/In Transit", 3},
		{" Out for Delivery ", 4},
		{"Delivered", 5},
		{"pending", 0},
		{"", 0},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			p := Timeline(tt.status)
			require.Equal(t, tt.current, p.Current)
			require.Len(t, p.Steps, 6)
			for i, s := range p.Steps {
				require.Equal(t, i <= tt.current, s.Done, s.Label)
			}
		})
	}
}

func TestDelivered(t *testing.T) {
	require.True(t, Delivered("delivered"))
	require.False(t, Delivered("Out for Delivery"))
}

func TestSummarizeStoredAmounts(t *testing.T) {
	s := Summarize(model.Order{
		ItemsTotal:  2750000,
		DeliveryFee: 100000,
		VAT:         206250,
		GrandTotal:  3056250,
	})

	require.Equal(t, int64(3056250), s.Total)
	labels := make([]string, 0, len(s.Lines))
	for _, l := range s.Lines {
		labels = append(labels, l.Label)
	}
	require.Equal(t, []string{"Items Total", "Delivery Fee", "VAT (7.5%)", "Total"}, labels)
	require.Equal(t, "₦30,563", s.Lines[3].Display)
}

func TestSummarizeFallbacks(t *testing.T) {
	s := Summarize(model.Order{
		Items: []model.OrderItem{
			{UnitPrice: 1375000, Quantity: 2},
			{UnitPrice: 660000, Quantity: 1},
		},
		DeliveryFee:   150000,
		ServiceCharge: 10000,
	})

	require.Equal(t, int64(3410000), s.ItemsTotal)
	require.Equal(t, int64(3570000), s.Total)
	require.Len(t, s.Lines, 4)
	require.Equal(t, "Service Charge", s.Lines[2].Label)
}
