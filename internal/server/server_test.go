package server

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/and161185/gas2door/internal/auth"
	"github.com/and161185/gas2door/internal/config"
	"github.com/and161185/gas2door/internal/deps"
	"github.com/and161185/gas2door/internal/errs"
	"github.com/and161185/gas2door/internal/middleware"
	"github.com/and161185/gas2door/internal/mocks"
	"github.com/and161185/gas2door/internal/model"
	"github.com/and161185/gas2door/internal/storage"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
)

const testConfig = `{
	"feeSettings": {"baseDeliveryFee": 100000, "expressDeliverySurcharge": 50000, "gasPricePerKg": 110000, "vatPercentage": 7.5, "serviceFeePercentage": 0},
	"cylinderSettings": [
		{"id": "cyl-6", "name": "6kg", "weightKg": 6, "price": 660000, "isActive": true},
		{"id": "cyl-12", "name": "12.5kg", "weightKg": 12.5, "price": 1375000, "isActive": true},
		{"id": "cyl-50", "name": "50kg", "weightKg": 50, "price": 5500000, "isActive": false}
	]
}`

type testEnv struct {
	srv     *Server
	router  http.Handler
	backend *mocks.MockBackend
	store   *storage.MemoryStorage
}

func setup(t *testing.T) *testEnv {
	t.Helper()
	return setupWithLogger(t, zaptest.NewLogger(t))
}

func setupWithLogger(t *testing.T, logger *zap.Logger) *testEnv {
	t.Helper()

	ctrl := gomock.NewController(t)
	backend := mocks.NewMockBackend(ctrl)
	store := storage.NewMemoryStorage()

	cfg := config.Default()
	cfg.AutocompleteDebounce = 0
	cfg.RateLimit = 1000
	cfg.RateBurst = 1000
	cfg.Logger = logger.Sugar()
	srv := NewServer(backend, store, cfg, deps.NewDependencies("testsecret", logger.Sugar()))
	return &testEnv{srv: srv, router: srv.buildRouter(), backend: backend, store: store}
}

// request sends a request as visitorID, who is logged in as s when s is not nil.
func (e *testEnv) request(t *testing.T, visitorID string, s *model.Session, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	if s != nil {
		require.NoError(t, e.store.Save(context.Background(), visitorID, s))
	}

	token, err := e.srv.deps.TokenManager.GenerateToken(visitorID)
	require.NoError(t, err)

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(&http.Cookie{Name: middleware.VisitorCookie, Value: token})

	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)
	return rr
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	return out
}

var customer = &model.Session{AccessToken: "cust-token", User: &model.User{ID: "u1", Name: "Ada"}}
var guestSession = &model.Session{AccessToken: "guest-token", User: &model.User{ID: "g1", IsGuest: true}}

func TestGetSessionIssuesVisitor(t *testing.T) {
	e := setup(t)

	req := httptest.NewRequest(http.MethodGet, "/api/session", nil)
	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	require.NotEmpty(t, rr.Header().Get(middleware.VisitorHeader))
	require.NotEmpty(t, rr.Header().Get(middleware.RequestIDHeader))

	body := decodeBody(t, rr)
	require.Equal(t, true, body["hydrated"])
	require.Equal(t, false, body["authenticated"])
}

func TestGetSessionHidesToken(t *testing.T) {
	e := setup(t)

	rr := e.request(t, uuid.NewString(), customer, http.MethodGet, "/api/session/", "")

	require.Equal(t, http.StatusOK, rr.Code)
	require.NotContains(t, rr.Body.String(), "cust-token")
	body := decodeBody(t, rr)
	require.Equal(t, true, body["authenticated"])
	require.Equal(t, false, body["isGuest"])
}

func TestLoginHandler(t *testing.T) {
	e := setup(t)
	visitor := uuid.NewString()

	e.backend.EXPECT().
		Login(gomock.Any(), model.Credentials{Email: "ada@example.com", Password: "pass"}).
		Return(customer, nil)

	rr := e.request(t, visitor, nil, http.MethodPost, "/api/session/login", `{"email":" ada@example.com ","password":"pass"}`)

	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, true, decodeBody(t, rr)["authenticated"])

	stored, err := e.store.Load(context.Background(), visitor)
	require.NoError(t, err)
	require.Equal(t, "cust-token", stored.AccessToken)
}

func TestLoginHandlerErrors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		backendErr error
		wantStatus int
		wantError  string
	}{
		{name: "bad json", body: `{`, wantStatus: http.StatusBadRequest, wantError: "bad request"},
		{name: "no password", body: `{"email":"a@b.c"}`, wantStatus: http.StatusBadRequest, wantError: "Password is required."},
		{
			name:       "rejected",
			body:       `{"email":"a@b.c","password":"x"}`,
			backendErr: &errs.RejectedError{Op: "login", Status: 401, Message: "Invalid credentials"},
			wantStatus: http.StatusUnauthorized,
			wantError:  "Invalid credentials",
		},
		{
			name:       "backend down",
			body:       `{"email":"a@b.c","password":"x"}`,
			backendErr: &errs.TransportError{Op: "login", Err: context.DeadlineExceeded},
			wantStatus: http.StatusBadGateway,
			wantError:  "Could not reach the order service. Please try again.",
		},
		{
			name:       "no token",
			body:       `{"email":"a@b.c","password":"x"}`,
			backendErr: &errs.ContractError{Op: "login", Field: "token", Message: "Login failed. Please try again."},
			wantStatus: http.StatusBadGateway,
			wantError:  "Login failed. Please try again.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := setup(t)
			if tt.backendErr != nil {
				e.backend.EXPECT().Login(gomock.Any(), gomock.Any()).Return(nil, tt.backendErr)
			}

			rr := e.request(t, uuid.NewString(), nil, http.MethodPost, "/api/session/login", tt.body)

			require.Equal(t, tt.wantStatus, rr.Code)
			require.Equal(t, tt.wantError, decodeBody(t, rr)["error"])
		})
	}
}

func TestRegisterHandler(t *testing.T) {
	e := setup(t)
	req := model.RegisterRequest{Name: "Ada", Phone: "0803", Email: "a@b.c", Password: "pw", ReferralCode: "REF"}
	e.backend.EXPECT().Register(gomock.Any(), req).Return(nil)

	body, _ := json.Marshal(req)
	rr := e.request(t, uuid.NewString(), nil, http.MethodPost, "/api/session/register", string(body))
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = e.request(t, uuid.NewString(), nil, http.MethodPost, "/api/session/register", `{"name":"Ada"}`)
	require.Equal(t, http.StatusBadRequest, rr.Code)
	require.Equal(t, "phone", decodeBody(t, rr)["field"])
}

func TestLogoutHandler(t *testing.T) {
	e := setup(t)
	visitor := uuid.NewString()

	rr := e.request(t, visitor, customer, http.MethodPost, "/api/session/logout", "")
	require.Equal(t, http.StatusNoContent, rr.Code)

	stored, err := e.store.Load(context.Background(), visitor)
	require.NoError(t, err)
	require.Nil(t, stored)
}

func TestUpgradeHandler(t *testing.T) {
	e := setup(t)

	rr := e.request(t, uuid.NewString(), nil, http.MethodPost, "/api/session/upgrade", `{}`)
	require.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = e.request(t, uuid.NewString(), customer, http.MethodPost, "/api/session/upgrade", `{"email":"a@b.c","password":"x"}`)
	require.Equal(t, http.StatusForbidden, rr.Code)

	e.backend.EXPECT().
		GuestUpgrade(gomock.Any(), "guest-token", model.UpgradeRequest{Email: "a@b.c", Password: "x"}).
		Return("Verification code sent.", nil)

	rr = e.request(t, uuid.NewString(), guestSession, http.MethodPost, "/api/session/upgrade", `{"email":"a@b.c","password":"x"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "Verification code sent.", decodeBody(t, rr)["message"])
}

func TestVerifyOTPHandler(t *testing.T) {
	e := setup(t)
	visitor := uuid.NewString()

	e.backend.EXPECT().
		VerifyOTP(gomock.Any(), model.OTPRequest{Email: "a@b.c", OTP: "123456"}).
		Return(customer, nil)

	rr := e.request(t, visitor, guestSession, http.MethodPost, "/api/session/verify-otp", `{"email":"a@b.c","otp":"123456"}`)

	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, false, decodeBody(t, rr)["isGuest"])

	stored, err := e.store.Load(context.Background(), visitor)
	require.NoError(t, err)
	require.Equal(t, "cust-token", stored.AccessToken)
}

func TestPasswordResetHandler(t *testing.T) {
	e := setup(t)
	e.backend.EXPECT().RequestPasswordReset(gomock.Any(), "a@b.c").Return(nil)

	rr := e.request(t, uuid.NewString(), nil, http.MethodPost, "/api/session/password-reset", `{"email":"a@b.c"}`)
	require.Equal(t, http.StatusOK, rr.Code)
}

func TestGateHandler(t *testing.T) {
	tests := []struct {
		name     string
		session  *model.Session
		query    string
		status   int
		decision string
		location string
	}{
		{"anonymous on protected page", nil, "session", http.StatusOK, "redirect_login", "/login"},
		{"customer on login page", customer, "anonymous", http.StatusOK, "redirect_dashboard", "/dashboard"},
		{"guest on upgrade page", guestSession, "guest", http.StatusOK, "allow", ""},
		{"public page", nil, "", http.StatusOK, "allow", ""},
		{"unknown requirement", nil, "admin", http.StatusBadRequest, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := setup(t)
			rr := e.request(t, uuid.NewString(), tt.session, http.MethodGet, "/api/gate?require="+tt.query, "")

			require.Equal(t, tt.status, rr.Code)
			if tt.status != http.StatusOK {
				return
			}
			body := decodeBody(t, rr)
			require.Equal(t, tt.decision, body["decision"])
			require.Equal(t, tt.location, body["location"])
		})
	}
}

func TestCatalogHandler(t *testing.T) {
	e := setup(t)
	e.backend.EXPECT().GetConfig(gomock.Any()).Return([]byte(testConfig), nil)

	rr := e.request(t, uuid.NewString(), nil, http.MethodGet, "/api/catalog", "")
	require.Equal(t, http.StatusOK, rr.Code)

	var view catalogView
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &view))
	require.Len(t, view.Cylinders, 2)
	require.Equal(t, "cyl-12", view.DefaultCylinderID)
	require.Equal(t, "₦1,100/kg", view.Cylinders[1].PricePerKg)
	require.False(t, view.Synthesized)
}

func TestCatalogHandlerFallback(t *testing.T) {
	e := setup(t)
	e.backend.EXPECT().GetConfig(gomock.Any()).Return(nil, &errs.TransportError{Op: "config", Err: context.DeadlineExceeded})

	rr := e.request(t, uuid.NewString(), nil, http.MethodGet, "/api/catalog", "")
	require.Equal(t, http.StatusOK, rr.Code)

	var view catalogView
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &view))
	require.True(t, view.Synthesized)
	require.Len(t, view.Cylinders, 4)
	require.Equal(t, "c-12.5", view.DefaultCylinderID)
	require.Equal(t, int64(1375000), view.Cylinders[1].UnitPrice)
	require.True(t, view.Degraded)
}

func TestQuoteHandler(t *testing.T) {
	e := setup(t)
	e.backend.EXPECT().GetConfig(gomock.Any()).Return([]byte(testConfig), nil).AnyTimes()

	rr := e.request(t, uuid.NewString(), nil, http.MethodPost, "/api/quote", `{"cylinderId":"cyl-12","quantity":2}`)
	require.Equal(t, http.StatusOK, rr.Code)

	body := decodeBody(t, rr)
	require.Equal(t, float64(2750000), body["itemsTotal"])
	require.Equal(t, float64(100000), body["deliveryFee"])
	require.Equal(t, float64(3056250), body["grandTotal"])

	lines := body["lines"].([]any)
	last := lines[len(lines)-1].(map[string]any)
	require.Equal(t, "Total", last["label"])
	require.Equal(t, "₦30,563", last["display"])

	rr = e.request(t, uuid.NewString(), nil, http.MethodPost, "/api/quote", `{"cylinderId":"cyl-12","quantity":2,"express":true}`)
	require.Equal(t, float64(150000), decodeBody(t, rr)["deliveryFee"])

	rr = e.request(t, uuid.NewString(), nil, http.MethodPost, "/api/quote", `{"cylinderId":"cyl-50","quantity":1}`)
	require.Equal(t, http.StatusBadRequest, rr.Code)
	require.Equal(t, "cylinderId", decodeBody(t, rr)["field"])

	rr = e.request(t, uuid.NewString(), nil, http.MethodPost, "/api/quote", `{"quantity":0}`)
	require.Equal(t, http.StatusBadRequest, rr.Code)
	require.Equal(t, "quantity", decodeBody(t, rr)["field"])
}

const draftBody = `{
	"cylinderId": "cyl-12",
	"quantity": 2,
	"paymentMethod": "card",
	"recipientName": "Ada Obi",
	"recipientPhone": "08031234567",
	"address": "12 Allen Avenue, Ikeja"
}`

func TestSubmitOrderHandlerAsNewGuest(t *testing.T) {
	e := setup(t)
	visitor := uuid.NewString()

	e.backend.EXPECT().GetConfig(gomock.Any()).Return([]byte(testConfig), nil)
	gomock.InOrder(
		e.backend.EXPECT().GuestCreate(gomock.Any(), model.GuestRequest{Name: "Ada Obi", Phone: "08031234567"}).
			Return(&model.Session{AccessToken: "new-guest"}, nil),
		e.backend.EXPECT().CreateAddress(gomock.Any(), "new-guest", gomock.Any()).Return("addr-1", nil),
		e.backend.EXPECT().CreateOrder(gomock.Any(), "new-guest", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, p model.CreateOrderPayload) (model.Order, error) {
				require.Equal(t, "addr-1", p.DeliveryAddressID)
				require.Equal(t, int64(1375000), p.Items[0].UnitPrice)
				require.Equal(t, "paystack", p.PaymentMethod)
				return model.Order{ID: "ord-1"}, nil
			}),
	)

	rr := e.request(t, visitor, nil, http.MethodPost, "/api/orders", draftBody)

	require.Equal(t, http.StatusCreated, rr.Code)
	body := decodeBody(t, rr)
	require.Equal(t, "ord-1", body["orderId"])
	require.Equal(t, "/payment/ord-1", body["next"])

	stored, err := e.store.Load(context.Background(), visitor)
	require.NoError(t, err)
	require.True(t, stored.IsGuest())
}

func TestSubmitOrderHandlerAddressFailure(t *testing.T) {
	e := setup(t)

	e.backend.EXPECT().GetConfig(gomock.Any()).Return([]byte(testConfig), nil)
	e.backend.EXPECT().CreateAddress(gomock.Any(), "cust-token", gomock.Any()).
		Return("", &errs.RejectedError{Op: "create address", Status: 500, Message: "Database unavailable"})
	e.backend.EXPECT().CreateOrder(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	rr := e.request(t, uuid.NewString(), customer, http.MethodPost, "/api/orders", draftBody)

	require.Equal(t, http.StatusBadGateway, rr.Code)
	require.Equal(t, "Database unavailable", decodeBody(t, rr)["error"])
}

func TestSubmitOrderHandlerRecordsOrphan(t *testing.T) {
	e := setup(t)
	visitor := uuid.NewString()

	e.backend.EXPECT().GetConfig(gomock.Any()).Return([]byte(testConfig), nil)
	e.backend.EXPECT().CreateAddress(gomock.Any(), gomock.Any(), gomock.Any()).Return("addr-9", nil)
	e.backend.EXPECT().CreateOrder(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(model.Order{}, &errs.ContractError{Op: "create order", Field: "id", Message: "Order creation failed."})

	rr := e.request(t, visitor, customer, http.MethodPost, "/api/orders", draftBody)
	require.Equal(t, http.StatusBadGateway, rr.Code)

	orphans, err := e.store.GetUnreportedOrphans(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, orphans, 1)
	require.Equal(t, "addr-9", orphans[0].AddressID)
	require.Equal(t, visitor, orphans[0].VisitorID)
}

func TestSubmitOrderHandlerValidation(t *testing.T) {
	e := setup(t)
	e.backend.EXPECT().GetConfig(gomock.Any()).Return([]byte(testConfig), nil)

	rr := e.request(t, uuid.NewString(), nil, http.MethodPost, "/api/orders", `{"cylinderId":"cyl-12","quantity":1,"recipientPhone":"0803","address":"x"}`)

	require.Equal(t, http.StatusBadRequest, rr.Code)
	body := decodeBody(t, rr)
	require.Equal(t, "recipientName", body["field"])
	require.Equal(t, "Full name is required.", body["error"])
}

var repricedConfig = strings.Replace(testConfig, "1375000", "2000000", 1)

const defaultCylinderDraft = `{
	"quantity": 1,
	"paymentMethod": "payOnPickup",
	"recipientName": "Ada Obi",
	"recipientPhone": "08031234567",
	"address": "12 Allen Avenue, Ikeja"
}`

func TestSubmitOrderKeepsQuotedPrice(t *testing.T) {
	e := setup(t)
	visitor := uuid.NewString()

	shown := e.backend.EXPECT().GetConfig(gomock.Any()).Return([]byte(testConfig), nil).Times(1)
	e.backend.EXPECT().GetConfig(gomock.Any()).Return([]byte(repricedConfig), nil).AnyTimes().After(shown)

	rr := e.request(t, visitor, customer, http.MethodGet, "/api/catalog", "")
	require.Equal(t, http.StatusOK, rr.Code)

	rr = e.request(t, visitor, nil, http.MethodPost, "/api/quote", `{"cylinderId":"cyl-12","quantity":2}`)
	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, float64(2750000), decodeBody(t, rr)["itemsTotal"])

	e.backend.EXPECT().CreateAddress(gomock.Any(), "cust-token", gomock.Any()).Return("addr-1", nil)
	e.backend.EXPECT().CreateOrder(gomock.Any(), "cust-token", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, p model.CreateOrderPayload) (model.Order, error) {
			require.Equal(t, int64(1375000), p.Items[0].UnitPrice)
			return model.Order{ID: "ord-2"}, nil
		})

	rr = e.request(t, visitor, nil, http.MethodPost, "/api/orders", draftBody)
	require.Equal(t, http.StatusCreated, rr.Code)
}

func TestSubmitOrderUsesShownDefaultWhenBackendDrops(t *testing.T) {
	e := setup(t)
	visitor := uuid.NewString()

	shown := e.backend.EXPECT().GetConfig(gomock.Any()).Return([]byte(testConfig), nil).Times(1)
	e.backend.EXPECT().GetConfig(gomock.Any()).
		Return(nil, &errs.TransportError{Op: "config", Err: context.DeadlineExceeded}).AnyTimes().After(shown)

	rr := e.request(t, visitor, customer, http.MethodGet, "/api/catalog", "")
	require.Equal(t, http.StatusOK, rr.Code)

	e.backend.EXPECT().CreateAddress(gomock.Any(), "cust-token", gomock.Any()).Return("addr-1", nil)
	e.backend.EXPECT().CreateOrder(gomock.Any(), "cust-token", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, p model.CreateOrderPayload) (model.Order, error) {
			require.Equal(t, "cyl-12", p.Items[0].CylinderID)
			require.Equal(t, int64(1375000), p.Items[0].UnitPrice)
			return model.Order{ID: "ord-3"}, nil
		})

	rr = e.request(t, visitor, nil, http.MethodPost, "/api/orders", defaultCylinderDraft)
	require.Equal(t, http.StatusCreated, rr.Code)
}

func TestSubmitOrderNeverUsesFallbackCatalog(t *testing.T) {
	down := &errs.TransportError{Op: "config", Err: context.DeadlineExceeded}

	tests := []struct {
		name       string
		recovered  bool
		wantStatus int
		wantError  string
	}{
		{"backend still down", false, http.StatusBadGateway, "Could not load prices. Please try again."},
		{"backend back with real prices", true, http.StatusConflict, "Prices have been updated. Please review your order."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := setup(t)
			visitor := uuid.NewString()

			fallback := e.backend.EXPECT().GetConfig(gomock.Any()).Return(nil, down).Times(1)
			if tt.recovered {
				e.backend.EXPECT().GetConfig(gomock.Any()).Return([]byte(testConfig), nil).After(fallback)
			} else {
				e.backend.EXPECT().GetConfig(gomock.Any()).Return(nil, down).After(fallback)
			}
			e.backend.EXPECT().CreateAddress(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			e.backend.EXPECT().CreateOrder(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

			rr := e.request(t, visitor, customer, http.MethodGet, "/api/catalog", "")
			require.Equal(t, http.StatusOK, rr.Code)

			rr = e.request(t, visitor, nil, http.MethodPost, "/api/orders", defaultCylinderDraft)
			require.Equal(t, tt.wantStatus, rr.Code)
			require.Equal(t, tt.wantError, decodeBody(t, rr)["error"])
		})
	}
}

func TestCompressedLoginPasswordIsNotLogged(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	e := setupWithLogger(t, zap.New(core))
	visitor := uuid.NewString()

	e.backend.EXPECT().
		Login(gomock.Any(), model.Credentials{Email: "ada@example.com", Password: "hunter2"}).
		Return(customer, nil)

	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	_, _ = gz.Write([]byte(`{"email":"ada@example.com","password":"hunter2"}`))
	require.NoError(t, gz.Close())

	token, err := e.srv.deps.TokenManager.GenerateToken(visitor)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/session/login", &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Content-Encoding", "gzip")
	req.AddCookie(&http.Cookie{Name: middleware.VisitorCookie, Value: token})

	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	for _, entry := range logs.All() {
		require.NotContains(t, entry.Message, "hunter2")
	}
	require.Equal(t, 1, logs.FilterMessageSnippet("body=[redacted]").Len())
}

func TestOrdersRequireSession(t *testing.T) {
	e := setup(t)

	for _, path := range []string{"/api/orders", "/api/orders/ord-1", "/api/orders/ord-1/tracking"} {
		rr := e.request(t, uuid.NewString(), nil, http.MethodGet, path, "")
		require.Equal(t, http.StatusUnauthorized, rr.Code, path)
	}
}

func TestListOrdersHandler(t *testing.T) {
	e := setup(t)

	e.backend.EXPECT().ListOrders(gomock.Any(), "cust-token").Return(nil, nil)
	rr := e.request(t, uuid.NewString(), customer, http.MethodGet, "/api/orders", "")
	require.Equal(t, http.StatusNoContent, rr.Code)

	e.backend.EXPECT().ListOrders(gomock.Any(), "cust-token").Return([]model.Order{{ID: "a"}, {ID: "b"}}, nil)
	rr = e.request(t, uuid.NewString(), customer, http.MethodGet, "/api/orders", "")
	require.Equal(t, http.StatusOK, rr.Code)

	var orders []model.Order
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &orders))
	require.Len(t, orders, 2)
}

func TestGetOrderHandler(t *testing.T) {
	e := setup(t)
	e.backend.EXPECT().GetOrder(gomock.Any(), "cust-token", "ord-1").Return(model.Order{
		ID:          "ord-1",
		Items:       []model.OrderItem{{UnitPrice: 1375000, Quantity: 2}},
		DeliveryFee: 100000,
		VAT:         206250,
	}, nil)

	rr := e.request(t, uuid.NewString(), customer, http.MethodGet, "/api/orders/ord-1", "")

	require.Equal(t, http.StatusOK, rr.Code)
	summary := decodeBody(t, rr)["summary"].(map[string]any)
	require.Equal(t, float64(2750000), summary["itemsTotal"])
	require.Equal(t, float64(3056250), summary["total"])
}

func TestGetOrderHandlerNotFound(t *testing.T) {
	e := setup(t)
	e.backend.EXPECT().GetOrder(gomock.Any(), "cust-token", "nope").
		Return(model.Order{}, &errs.RejectedError{Op: "get order", Status: 404, Message: "Order not found"})

	rr := e.request(t, uuid.NewString(), customer, http.MethodGet, "/api/orders/nope", "")

	require.Equal(t, http.StatusNotFound, rr.Code)
	require.Equal(t, "Order not found", decodeBody(t, rr)["error"])
}

func TestTrackOrderHandler(t *testing.T) {
	e := setup(t)
	e.backend.EXPECT().GetOrder(gomock.Any(), "guest-token", "ord-2").Return(model.Order{ID: "ord-2", Status: "Driver Assigned"}, nil)

	rr := e.request(t, uuid.NewString(), guestSession, http.MethodGet, "/api/orders/ord-2/tracking", "")

	require.Equal(t, http.StatusOK, rr.Code)
	body := decodeBody(t, rr)
	progress := body["progress"].(map[string]any)
	require.Equal(t, float64(2), progress["current"])
	require.Equal(t, false, body["delivered"])
}

func TestInitializePaymentHandler(t *testing.T) {
	e := setup(t)
	e.backend.EXPECT().
		InitializePayment(gomock.Any(), "cust-token", model.PaymentRequest{OrderID: "ord-1", Platform: "web"}).
		Return(model.PaymentInit{CheckoutURL: "https://pay.example/ord-1"}, nil)

	rr := e.request(t, uuid.NewString(), customer, http.MethodPost, "/api/payments/initialize", `{"orderId":"ord-1"}`)

	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "https://pay.example/ord-1", decodeBody(t, rr)["checkoutUrl"])

	rr = e.request(t, uuid.NewString(), customer, http.MethodPost, "/api/payments/initialize", `{}`)
	require.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestAutocompleteHandler(t *testing.T) {
	e := setup(t)
	e.backend.EXPECT().
		Autocomplete(gomock.Any(), "", "Allen Avenue").
		Return([]model.PlacePrediction{{PlaceID: "p1", Description: "Allen Avenue, Ikeja"}}, nil)

	visitor := uuid.NewString()
	rr := e.request(t, visitor, nil, http.MethodGet, "/api/places/autocomplete?input=Allen+Avenue", "")

	require.Equal(t, http.StatusOK, rr.Code)
	predictions := decodeBody(t, rr)["predictions"].([]any)
	require.Len(t, predictions, 1)
	require.Equal(t, "p1", predictions[0].(map[string]any)["place_id"])

	rr = e.request(t, visitor, nil, http.MethodGet, "/api/places/autocomplete?input=Al", "")
	require.Equal(t, http.StatusOK, rr.Code)
	require.Empty(t, decodeBody(t, rr)["predictions"])
}

func TestPlaceDetailsHandler(t *testing.T) {
	e := setup(t)
	e.backend.EXPECT().
		PlaceDetails(gomock.Any(), "cust-token", "p1").
		Return(model.ResolvedPlace{FullAddress: "Allen Avenue, Ikeja", City: "Ikeja", State: "Lagos", Country: "Nigeria"}, nil)

	rr := e.request(t, uuid.NewString(), customer, http.MethodGet, "/api/places/p1", "")

	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "Ikeja", decodeBody(t, rr)["city"])
}

type pruningStorage struct {
	*storage.MemoryStorage
	maxAge time.Duration
}

func (p *pruningStorage) DeleteStaleSessions(_ context.Context, maxAge time.Duration) (int64, error) {
	p.maxAge = maxAge
	return 2, nil
}

func TestPruneSessions(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := &pruningStorage{MemoryStorage: storage.NewMemoryStorage()}
	logger := zaptest.NewLogger(t).Sugar()

	srv := NewServer(mocks.NewMockBackend(ctrl), store, config.Default(), deps.NewDependencies("testsecret", logger))
	srv.pruneSessions(context.Background())

	require.Equal(t, auth.VisitorTTL, store.maxAge)
}
