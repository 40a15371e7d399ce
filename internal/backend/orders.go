package backend

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/and161185/gas2door/internal/errs"
	"github.com/and161185/gas2door/internal/model"
)

const (
	configPath       = "/config"
	addressesPath    = "/addresses"
	autocompletePath = "/addresses/places/autocomplete"
	placeDetailsPath = "/addresses/places/details/"
	ordersPath       = "/orders"
	myOrdersPath     = "/orders/my-orders"
	paymentInitPath  = "/payments/initialize"
	reportsPath      = "/reports"
)

// GetConfig returns the raw /config document; interpreting it is up to the catalog.
func (c *Client) GetConfig(ctx context.Context) ([]byte, error) {
	res, err := c.do(ctx, http.MethodGet, configPath, "", nil)
	if err != nil {
		return nil, err
	}
	return []byte(res.Raw), nil
}

func (c *Client) Autocomplete(ctx context.Context, token, input string) ([]model.PlacePrediction, error) {
	q := strings.TrimSpace(input)
	if q == "" {
		return nil, nil
	}

	res, err := c.do(ctx, http.MethodGet, autocompletePath+"?input="+url.QueryEscape(q), token, nil)
	if err != nil {
		return nil, err
	}

	var predictions []model.PlacePrediction
	for _, p := range res.Get("predictions").Array() {
		predictions = append(predictions, model.PlacePrediction{
			PlaceID:     firstString(p, "place_id", "placeId"),
			Description: p.Get("description").String(),
		})
	}
	return predictions, nil
}

func (c *Client) PlaceDetails(ctx context.Context, token, placeID string) (model.ResolvedPlace, error) {
	res, err := c.do(ctx, http.MethodGet, placeDetailsPath+url.PathEscape(placeID), token, nil)
	if err != nil {
		return model.ResolvedPlace{}, err
	}
	return parsePlace(res, c.region), nil
}

func (c *Client) CreateAddress(ctx context.Context, token string, payload model.CreateAddressPayload) (string, error) {
	res, err := c.do(ctx, http.MethodPost, addressesPath, token, payload)
	if err != nil {
		return "", err
	}

	id := extractID(res)
	if id == "" {
		return "", &errs.ContractError{Op: "POST " + addressesPath, Field: "id", Message: "Could not save delivery address."}
	}
	return id, nil
}

func (c *Client) CreateOrder(ctx context.Context, token string, payload model.CreateOrderPayload) (model.Order, error) {
	res, err := c.do(ctx, http.MethodPost, ordersPath, token, payload)
	if err != nil {
		return model.Order{}, err
	}

	order := parseOrder(res)
	if order.ID == "" {
		order.ID = extractID(res)
	}
	if order.ID == "" {
		return model.Order{}, &errs.ContractError{Op: "POST " + ordersPath, Field: "id", Message: "Order creation failed."}
	}
	return order, nil
}

func (c *Client) GetOrder(ctx context.Context, token, orderID string) (model.Order, error) {
	path := ordersPath + "/" + url.PathEscape(orderID)
	res, err := c.do(ctx, http.MethodGet, path, token, nil)
	if err != nil {
		return model.Order{}, err
	}

	order := parseOrder(res)
	if order.ID == "" {
		return model.Order{}, &errs.ContractError{Op: "GET " + path, Field: "id", Message: "Order not found"}
	}
	return order, nil
}

func (c *Client) ListOrders(ctx context.Context, token string) ([]model.Order, error) {
	res, err := c.do(ctx, http.MethodGet, myOrdersPath, token, nil)
	if err != nil {
		return nil, err
	}

	var orders []model.Order
	for _, o := range extractArray(res) {
		orders = append(orders, parseOrder(o))
	}
	return orders, nil
}

func (c *Client) InitializePayment(ctx context.Context, token string, req model.PaymentRequest) (model.PaymentInit, error) {
	res, err := c.do(ctx, http.MethodPost, paymentInitPath, token, req)
	if err != nil {
		return model.PaymentInit{}, err
	}

	var init model.PaymentInit
	if cfg := res.Get("monnifyConfig"); cfg.IsObject() {
		init.MonnifyConfig = []byte(cfg.Raw)
	} else if cfg := res.Get("data.monnifyConfig"); cfg.IsObject() {
		init.MonnifyConfig = []byte(cfg.Raw)
	}
	init.CheckoutURL = firstString(res, "checkoutUrl", "data.checkoutUrl", "authorization_url", "data.authorization_url")

	if init.MonnifyConfig == nil && init.CheckoutURL == "" {
		return model.PaymentInit{}, &errs.ContractError{
			Op:      "POST " + paymentInitPath,
			Field:   "monnifyConfig",
			Message: "Invalid payment configuration received from server.",
		}
	}
	return init, nil
}

func (c *Client) CreateReport(ctx context.Context, token string, report model.Report) error {
	_, err := c.do(ctx, http.MethodPost, reportsPath, token, report)
	return err
}
