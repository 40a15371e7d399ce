package model

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

type User struct {
	ID      string `json:"id,omitempty"`
	Name    string `json:"name,omitempty"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	IsGuest bool   `json:"isGuest"`
}

// Session is the persisted identity of a visitor. Absence of a session is the
// anonymous state.
type Session struct {
	AccessToken string    `json:"accessToken"`
	User        *User     `json:"user,omitempty"`
	LastSeen    time.Time `json:"lastSeen"`
}

func (s *Session) IsGuest() bool {
	return s != nil && s.User != nil && s.User.IsGuest
}

// FeeConfig amounts are kobo, rates are fractions (0.075 for 7.5%).
type FeeConfig struct {
	BaseDeliveryFee  int64           `json:"baseDeliveryFee"`
	ExpressSurcharge int64           `json:"expressSurcharge"`
	GasPricePerKg    int64           `json:"gasPricePerKg"`
	VATRate          decimal.Decimal `json:"vatRate"`
	ServiceFeeRate   decimal.Decimal `json:"serviceFeeRate"`
}

type Cylinder struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	WeightKg  decimal.Decimal `json:"weightKg"`
	UnitPrice int64           `json:"unitPrice"`
}

type PaymentMethod string

const (
	PayByCard   PaymentMethod = "card"
	PayOnPickup PaymentMethod = "payOnPickup"
)

// BackendTag translates the storefront choice into the value the order service expects.
func (m PaymentMethod) BackendTag() string {
	if m == PayByCard {
		return "paystack"
	}
	return "payOnPickup"
}

func (m PaymentMethod) Online() bool {
	return m == PayByCard
}

type ResolvedPlace struct {
	FullAddress string  `json:"fullAddress"`
	Street      string  `json:"street"`
	City        string  `json:"city"`
	State       string  `json:"state"`
	Country     string  `json:"country"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
}

type PlacePrediction struct {
	PlaceID     string `json:"place_id"`
	Description string `json:"description"`
}

// OrderDraft lives only for the duration of one submission.
type OrderDraft struct {
	CylinderID     string         `json:"cylinderId"`
	Quantity       int            `json:"quantity"`
	Express        bool           `json:"express"`
	PaymentMethod  PaymentMethod  `json:"paymentMethod"`
	RecipientName  string         `json:"recipientName"`
	RecipientPhone string         `json:"recipientPhone"`
	AddressText    string         `json:"address"`
	Landmark       string         `json:"landmark,omitempty"`
	Place          *ResolvedPlace `json:"place,omitempty"`
}

type OrderItem struct {
	CylinderID  string `json:"cylinderId"`
	ProductName string `json:"productName"`
	Quantity    int    `json:"quantity"`
	UnitPrice   int64  `json:"unitPrice"`
}

type Address struct {
	ID          string  `json:"id,omitempty"`
	FullAddress string  `json:"fullAddress"`
	Street      string  `json:"street,omitempty"`
	City        string  `json:"city,omitempty"`
	State       string  `json:"state,omitempty"`
	Landmark    string  `json:"landmark,omitempty"`
	Latitude    float64 `json:"latitude,omitempty"`
	Longitude   float64 `json:"longitude,omitempty"`
}

// Order is the canonical shape produced by the backend client, whatever
// envelope the order service answered with.
type Order struct {
	ID              string      `json:"id"`
	Status          string      `json:"status"`
	PaymentStatus   string      `json:"paymentStatus,omitempty"`
	PaymentMethod   string      `json:"paymentMethod,omitempty"`
	Items           []OrderItem `json:"items"`
	ItemsTotal      int64       `json:"itemsTotal"`
	DeliveryFee     int64       `json:"deliveryFee"`
	ServiceCharge   int64       `json:"serviceCharge"`
	VAT             int64       `json:"vat"`
	GrandTotal      int64       `json:"grandTotal"`
	DeliveryAddress *Address    `json:"deliveryAddress,omitempty"`
	RecipientName   string      `json:"recipientName,omitempty"`
	RecipientPhone  string      `json:"recipientPhone,omitempty"`
	IsExpress       bool        `json:"isExpress"`
	CreatedAt       time.Time   `json:"createdAt,omitempty"`
}

type PaymentInit struct {
	MonnifyConfig json.RawMessage `json:"monnifyConfig,omitempty"`
	CheckoutURL   string          `json:"checkoutUrl,omitempty"`
}

// OrphanedAddress is an address created for an order that was never placed.
type OrphanedAddress struct {
	AddressID  string     `json:"addressId"`
	VisitorID  string     `json:"visitorId"`
	Reason     string     `json:"reason"`
	CreatedAt  time.Time  `json:"createdAt"`
	ReportedAt *time.Time `json:"reportedAt,omitempty"`
}

// Region fills address fields the geocoder or the customer left empty.
type Region struct {
	City    string `json:"city"`
	State   string `json:"state"`
	Country string `json:"country"`
}
