package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPaymentMethodBackendTag(t *testing.T) {
	tests := []struct {
		method PaymentMethod
		tag    string
		online bool
	}{
		{PayByCard, "paystack", true},
		{PayOnPickup, "payOnPickup", false},
		{"", "payOnPickup", false},
	}

	for _, tt := range tests {
		require.Equal(t, tt.tag, tt.method.BackendTag(), string(tt.method))
		require.Equal(t, tt.online, tt.method.Online(), string(tt.method))
	}
}

func TestSessionIsGuest(t *testing.T) {
	var s *Session
	require.False(t, s.IsGuest())
	require.False(t, (&Session{AccessToken: "t"}).IsGuest())
	require.True(t, (&Session{AccessToken: "t", User: &User{IsGuest: true}}).IsGuest())
}
