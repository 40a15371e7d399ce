package model

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type GuestRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

type RegisterRequest struct {
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	ReferralCode string `json:"referralCode,omitempty"`
}

type UpgradeRequest struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type OTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

type CreateAddressPayload struct {
	Label       string  `json:"label"`
	FullAddress string  `json:"fullAddress"`
	Street      string  `json:"street"`
	City        string  `json:"city"`
	State       string  `json:"state"`
	Country     string  `json:"country"`
	PostalCode  string  `json:"postalCode,omitempty"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Landmark    string  `json:"landmark,omitempty"`
}

type CreateOrderPayload struct {
	DeliveryAddressID string      `json:"deliveryAddressId"`
	Items             []OrderItem `json:"items"`
	RecipientName     string      `json:"recipientName"`
	RecipientPhone    string      `json:"recipientPhone"`
	IsExpress         bool        `json:"isExpress"`
	PaymentMethod     string      `json:"paymentMethod"`
}

type PaymentRequest struct {
	OrderID  string `json:"orderId"`
	Platform string `json:"platform,omitempty"`
}

type Report struct {
	Type      string `json:"type"`
	AddressID string `json:"addressId"`
	Reason    string `json:"reason"`
}

type QuoteRequest struct {
	CylinderID string `json:"cylinderId"`
	Quantity   int    `json:"quantity"`
	Express    bool   `json:"express"`
}
