package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/and161185/gas2door/internal/auth"
	"github.com/and161185/gas2door/internal/catalog"
	"github.com/and161185/gas2door/internal/checkout"
	"github.com/and161185/gas2door/internal/config"
	"github.com/and161185/gas2door/internal/deps"
	"github.com/and161185/gas2door/internal/errs"
	"github.com/and161185/gas2door/internal/guest"
	"github.com/and161185/gas2door/internal/middleware"
	"github.com/and161185/gas2door/internal/model"
	"github.com/and161185/gas2door/internal/places"
	"github.com/and161185/gas2door/internal/session"
	chiMiddleware "github.com/go-chi/chi/middleware"
	"github.com/go-chi/chi/v5"
)

//go:generate mockgen -destination=../mocks/mock_backend.go -package=mocks . Backend
//go:generate mockgen -destination=../mocks/mock_storage.go -package=mocks . Storage

// Backend is the order service as the storefront sees it.
type Backend interface {
	Login(ctx context.Context, creds model.Credentials) (*model.Session, error)
	GuestCreate(ctx context.Context, req model.GuestRequest) (*model.Session, error)
	Register(ctx context.Context, req model.RegisterRequest) error
	GuestUpgrade(ctx context.Context, token string, req model.UpgradeRequest) (string, error)
	VerifyOTP(ctx context.Context, req model.OTPRequest) (*model.Session, error)
	RequestPasswordReset(ctx context.Context, email string) error

	GetConfig(ctx context.Context) ([]byte, error)
	Autocomplete(ctx context.Context, token, input string) ([]model.PlacePrediction, error)
	PlaceDetails(ctx context.Context, token, placeID string) (model.ResolvedPlace, error)

	CreateAddress(ctx context.Context, token string, payload model.CreateAddressPayload) (string, error)
	CreateOrder(ctx context.Context, token string, payload model.CreateOrderPayload) (model.Order, error)
	GetOrder(ctx context.Context, token, orderID string) (model.Order, error)
	ListOrders(ctx context.Context, token string) ([]model.Order, error)
	InitializePayment(ctx context.Context, token string, req model.PaymentRequest) (model.PaymentInit, error)
	CreateReport(ctx context.Context, token string, report model.Report) error
}

type Storage interface {
	Load(ctx context.Context, visitorID string) (*model.Session, error)
	Save(ctx context.Context, visitorID string, s *model.Session) error
	Clear(ctx context.Context, visitorID string) error

	RecordOrphan(ctx context.Context, orphan model.OrphanedAddress) error
	GetUnreportedOrphans(ctx context.Context, limit int) ([]model.OrphanedAddress, error)
	MarkOrphanReported(ctx context.Context, addressID string) error
}

type Server struct {
	backend Backend
	storage Storage
	config  *config.Config
	deps    *deps.Deps

	sessions *session.Registry
	catalogs *catalog.Snapshots
	checkout *checkout.Flow
	places   *places.Registry
	limiter  *middleware.RateLimiter

	reporting sync.Map
}

func NewServer(backend Backend, storage Storage, config *config.Config, deps *deps.Deps) *Server {
	logger := deps.Logger

	srv := &Server{
		backend:  backend,
		storage:  storage,
		config:   config,
		deps:     deps,
		sessions: session.NewRegistry(storage, logger),
		catalogs: catalog.NewSnapshots(catalog.NewLoader(backend, catalog.DefaultFees(), logger)),
		checkout: checkout.NewFlow(backend, guest.NewResolver(backend, logger), storage, config.Region, logger),
		places:   places.NewRegistry(backend, config.AutocompleteDebounce, logger),
		limiter:  middleware.NewRateLimiter(config.RateLimit, config.RateBurst, logger),
	}
	srv.sessions.OnEvict(func(visitorID string) {
		srv.places.Forget(visitorID)
		srv.catalogs.Forget(visitorID)
	})

	return srv
}

func (srv *Server) buildRouter() http.Handler {
	logger := srv.deps.Logger

	router := chi.NewRouter()
	router.Use(chiMiddleware.StripSlashes)
	router.Use(middleware.RequestIDMiddleware)
	router.Use(middleware.DecompressMiddleware)
	router.Use(middleware.LogMiddleware(logger))
	router.Use(middleware.CompressMiddleware(logger))
	router.Use(middleware.VisitorMiddleware(srv.deps.TokenManager, logger))
	router.Use(srv.limiter.Handler)

	router.Route("/api/session", func(r chi.Router) {
		r.Get("/", srv.GetSessionHandler)
		r.Post("/login", srv.LoginHandler)
		r.Post("/register", srv.RegisterHandler)
		r.Post("/logout", srv.LogoutHandler)
		r.Post("/upgrade", srv.UpgradeHandler)
		r.Post("/verify-otp", srv.VerifyOTPHandler)
		r.Post("/password-reset", srv.PasswordResetHandler)
	})
	router.Get("/api/gate", srv.GateHandler)

	router.Get("/api/catalog", srv.CatalogHandler)
	router.Post("/api/quote", srv.QuoteHandler)

	router.Post("/api/orders", srv.SubmitOrderHandler)
	router.Get("/api/orders", srv.ListOrdersHandler)
	router.Get("/api/orders/{id}", srv.GetOrderHandler)
	router.Get("/api/orders/{id}/tracking", srv.TrackOrderHandler)
	router.Post("/api/payments/initialize", srv.InitializePaymentHandler)

	router.Get("/api/places/autocomplete", srv.AutocompleteHandler)
	router.Get("/api/places/{placeId}", srv.PlaceDetailsHandler)

	return router
}

func (srv *Server) Run(ctx context.Context) error {
	router := srv.buildRouter()

	server := &http.Server{
		Addr:    srv.config.RunAddress,
		Handler: router,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			srv.deps.Logger.Fatalf("server error: %v", err)
		}
	}()

	go srv.OrphanReportControl(ctx)
	go srv.SweepControl(ctx)

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

type staleSessionPruner interface {
	DeleteStaleSessions(ctx context.Context, maxAge time.Duration) (int64, error)
}

// SweepControl drops idle visitors from memory. Their sessions stay in storage
// until the visitor token that names them has expired.
func (srv *Server) SweepControl(ctx context.Context) {
	idle := srv.config.SessionIdle
	ticker := time.NewTicker(idle / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed := srv.sessions.Sweep(idle)
			limiters := srv.limiter.Cleanup(idle)
			if removed > 0 || limiters > 0 {
				srv.deps.Logger.Debugf("swept %d idle visitors, %d rate limiters", removed, limiters)
			}
			srv.pruneSessions(ctx)
		}
	}
}

func (srv *Server) pruneSessions(ctx context.Context) {
	pruner, ok := srv.storage.(staleSessionPruner)
	if !ok {
		return
	}
	n, err := pruner.DeleteStaleSessions(ctx, auth.VisitorTTL)
	if err != nil {
		srv.deps.Logger.Errorf("prune sessions: %v", err)
		return
	}
	if n > 0 {
		srv.deps.Logger.Infof("pruned %d expired sessions", n)
	}
}

func (srv *Server) visitorID(r *http.Request) string {
	id, _ := middleware.VisitorFromContext(r.Context())
	return id
}

func (srv *Server) visitor(r *http.Request) *session.Context {
	return srv.sessions.Get(r.Context(), srv.visitorID(r))
}

// requireSession writes 401 and returns false when the visitor has no session.
func (srv *Server) requireSession(w http.ResponseWriter, r *http.Request) (*session.Context, *model.Session, bool) {
	sc := srv.visitor(r)
	s := sc.Get()
	if s == nil || s.AccessToken == "" {
		srv.writeError(w, errs.ErrNoSession)
		return nil, nil, false
	}
	return sc, s, true
}

func token(s *model.Session) string {
	if s == nil {
		return ""
	}
	return s.AccessToken
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "bad request"})
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps the error taxonomy onto HTTP statuses. Backend messages are
// passed through so the page can show them as they are.
func (srv *Server) writeError(w http.ResponseWriter, err error) {
	var (
		field     *errs.FieldError
		rejected  *errs.RejectedError
		transport *errs.TransportError
		contract  *errs.ContractError
	)

	switch {
	case errors.As(err, &field):
		writeJSON(w, http.StatusBadRequest, map[string]string{"field": field.Field, "error": field.Message})
	case errors.Is(err, errs.ErrSubmissionInProgress):
		writeJSON(w, http.StatusConflict, map[string]string{"error": "Your order is already being placed."})
	case errors.Is(err, errs.ErrNoSession):
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Please log in to continue."})
	case errors.Is(err, errs.ErrNotGuest):
		writeJSON(w, http.StatusForbidden, map[string]string{"error": "Only guest accounts can be upgraded."})
	case errors.Is(err, catalog.ErrChanged):
		writeJSON(w, http.StatusConflict, map[string]string{"error": "Prices have been updated. Please review your order."})
	case errors.Is(err, catalog.ErrUnavailable):
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": "Could not load prices. Please try again."})
	case errors.As(err, &rejected):
		status := rejected.Status
		if status < 400 || status >= 500 {
			status = http.StatusBadGateway
		}
		writeJSON(w, status, map[string]string{"error": rejected.Message})
	case errors.As(err, &transport):
		srv.deps.Logger.Warnf("backend unreachable: %v", transport)
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": "Could not reach the order service. Please try again."})
	case errors.As(err, &contract):
		srv.deps.Logger.Warnf("backend contract: %v", contract)
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": contract.Error()})
	default:
		srv.deps.Logger.Errorf("request failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Something went wrong."})
	}
}

type sessionView struct {
	Hydrated      bool        `json:"hydrated"`
	Authenticated bool        `json:"authenticated"`
	IsGuest       bool        `json:"isGuest"`
	User          *model.User `json:"user,omitempty"`
}

func viewOf(sc *session.Context) sessionView {
	s := sc.Get()
	v := sessionView{Hydrated: sc.Hydrated()}
	if s != nil {
		v.Authenticated = true
		v.IsGuest = s.IsGuest()
		v.User = s.User
	}
	return v
}

func (srv *Server) GetSessionHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, viewOf(srv.visitor(r)))
}

func (srv *Server) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var creds model.Credentials
	if !decodeJSON(w, r, &creds) {
		return
	}
	creds.Email = strings.TrimSpace(creds.Email)
	if creds.Email == "" {
		srv.writeError(w, errs.Validation("email", "Email is required."))
		return
	}
	if creds.Password == "" {
		srv.writeError(w, errs.Validation("password", "Password is required."))
		return
	}

	s, err := srv.backend.Login(r.Context(), creds)
	if err != nil {
		srv.writeError(w, err)
		return
	}

	sc := srv.visitor(r)
	if err := sc.Set(r.Context(), s); err != nil {
		srv.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, viewOf(sc))
}

func (srv *Server) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var req model.RegisterRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	required := []struct{ field, value, message string }{
		{"name", req.Name, "Full name is required."},
		{"phone", req.Phone, "Phone number is required."},
		{"email", req.Email, "Email is required."},
		{"password", req.Password, "Password is required."},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			srv.writeError(w, errs.Validation(f.field, f.message))
			return
		}
	}

	if err := srv.backend.Register(r.Context(), req); err != nil {
		srv.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"message": "Account created. Check your email for the verification code."})
}

func (srv *Server) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	sc := srv.visitor(r)
	if err := sc.Logout(r.Context()); err != nil {
		srv.writeError(w, err)
		return
	}
	srv.places.Forget(sc.Key())

	w.WriteHeader(http.StatusNoContent)
}

func (srv *Server) UpgradeHandler(w http.ResponseWriter, r *http.Request) {
	_, s, ok := srv.requireSession(w, r)
	if !ok {
		return
	}
	if !s.IsGuest() {
		srv.writeError(w, errs.ErrNotGuest)
		return
	}

	var req model.UpgradeRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Email) == "" {
		srv.writeError(w, errs.Validation("email", "Email is required."))
		return
	}
	if req.Password == "" {
		srv.writeError(w, errs.Validation("password", "Password is required."))
		return
	}

	msg, err := srv.backend.GuestUpgrade(r.Context(), s.AccessToken, req)
	if err != nil {
		srv.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": msg})
}

func (srv *Server) VerifyOTPHandler(w http.ResponseWriter, r *http.Request) {
	var req model.OTPRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Email) == "" {
		srv.writeError(w, errs.Validation("email", "Email is required."))
		return
	}
	if strings.TrimSpace(req.OTP) == "" {
		srv.writeError(w, errs.Validation("otp", "Enter the code we sent you."))
		return
	}

	s, err := srv.backend.VerifyOTP(r.Context(), req)
	if err != nil {
		srv.writeError(w, err)
		return
	}

	sc := srv.visitor(r)
	if s != nil {
		if err := sc.Set(r.Context(), s); err != nil {
			srv.writeError(w, err)
			return
		}
	}

	writeJSON(w, http.StatusOK, viewOf(sc))
}

func (srv *Server) PasswordResetHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Email) == "" {
		srv.writeError(w, errs.Validation("email", "Email is required."))
		return
	}

	if err := srv.backend.RequestPasswordReset(r.Context(), strings.TrimSpace(req.Email)); err != nil {
		srv.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "If an account exists for that email, a reset link is on its way."})
}

func (srv *Server) GateHandler(w http.ResponseWriter, r *http.Request) {
	var need session.Requirement
	switch q := r.URL.Query().Get("require"); q {
	case "":
		need = session.RequireNone
	case string(session.RequireSession), string(session.RequireAnonymous), string(session.RequireGuest):
		need = session.Requirement(q)
	default:
		srv.writeError(w, errs.Validation("require", "Unknown page requirement."))
		return
	}

	decision := session.Gate(srv.visitor(r), need)
	writeJSON(w, http.StatusOK, map[string]string{
		"decision": string(decision),
		"location": decision.Location(),
	})
}
