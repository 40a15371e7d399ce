package server

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/and161185/gas2door/internal/catalog"
	"github.com/and161185/gas2door/internal/errs"
	"github.com/and161185/gas2door/internal/model"
	"github.com/and161185/gas2door/internal/places"
	"github.com/and161185/gas2door/internal/pricing"
	"github.com/and161185/gas2door/internal/tracking"
	"github.com/and161185/gas2door/internal/utils"
	"github.com/go-chi/chi/v5"
)

type cylinderView struct {
	model.Cylinder
	PricePerKg string `json:"pricePerKg"`
	Display    string `json:"display"`
}

type catalogView struct {
	Fees              model.FeeConfig `json:"fees"`
	Cylinders         []cylinderView  `json:"cylinders"`
	DefaultCylinderID string          `json:"defaultCylinderId,omitempty"`
	Synthesized       bool            `json:"synthesized"`
	Degraded          bool            `json:"degraded"`
}

type lineView struct {
	pricing.Line
	Display string `json:"display"`
}

type quoteView struct {
	pricing.Breakdown
	Lines []lineView `json:"lines"`
}

// CatalogHandler shows the catalog and makes it the visitor's price list
// until it is shown again.
func (srv *Server) CatalogHandler(w http.ResponseWriter, r *http.Request) {
	cfg := srv.catalogs.Refresh(r.Context(), srv.visitorID(r))

	view := catalogView{Fees: cfg.Fees, Synthesized: cfg.Synthesized, Degraded: cfg.Degraded}
	for _, c := range cfg.Cylinders {
		view.Cylinders = append(view.Cylinders, cylinderView{
			Cylinder:   c,
			PricePerKg: utils.FormatNairaPerKg(pricing.PricePerKg(c.UnitPrice, c.WeightKg)),
			Display:    utils.FormatNaira(c.UnitPrice),
		})
	}
	if def := cfg.Default(); def != nil {
		view.DefaultCylinderID = def.ID
	}

	writeJSON(w, http.StatusOK, view)
}

// pickCylinder resolves the selection against the visitor's catalog. An empty
// id means the default cylinder; an unknown id is a validation error.
func pickCylinder(cfg catalog.Config, id string) (*model.Cylinder, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return cfg.Default(), nil
	}
	c, ok := cfg.Find(id)
	if !ok {
		return nil, errs.Validation("cylinderId", "That cylinder is no longer available.")
	}
	return c, nil
}

func (srv *Server) QuoteHandler(w http.ResponseWriter, r *http.Request) {
	var req model.QuoteRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	cfg := srv.catalogs.Current(r.Context(), srv.visitorID(r))
	cylinder, err := pickCylinder(cfg, req.CylinderID)
	if err != nil {
		srv.writeError(w, err)
		return
	}

	b, err := pricing.Quote(cylinder, req.Quantity, req.Express, cfg.Fees)
	switch {
	case errors.Is(err, pricing.ErrNoCylinder):
		srv.writeError(w, errs.Validation("cylinderId", "Please select a cylinder."))
		return
	case errors.Is(err, pricing.ErrInvalidQuantity):
		srv.writeError(w, errs.Validation("quantity", "Quantity must be at least 1."))
		return
	case err != nil:
		srv.writeError(w, err)
		return
	}

	view := quoteView{Breakdown: b}
	for _, l := range b.Lines() {
		view.Lines = append(view.Lines, lineView{Line: l, Display: utils.FormatNairaDecimal(l.Amount)})
	}

	writeJSON(w, http.StatusOK, view)
}

func (srv *Server) SubmitOrderHandler(w http.ResponseWriter, r *http.Request) {
	var draft model.OrderDraft
	if !decodeJSON(w, r, &draft) {
		return
	}

	cfg, err := srv.catalogs.ForOrder(r.Context(), srv.visitorID(r))
	if err != nil {
		srv.writeError(w, err)
		return
	}
	cylinder, err := pickCylinder(cfg, draft.CylinderID)
	if err != nil {
		srv.writeError(w, err)
		return
	}

	res, err := srv.checkout.Submit(r.Context(), srv.visitor(r), draft, cylinder)
	if err != nil {
		srv.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, res)
}

func (srv *Server) ListOrdersHandler(w http.ResponseWriter, r *http.Request) {
	_, s, ok := srv.requireSession(w, r)
	if !ok {
		return
	}

	orders, err := srv.backend.ListOrders(r.Context(), s.AccessToken)
	if err != nil {
		srv.writeError(w, err)
		return
	}

	if len(orders) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	writeJSON(w, http.StatusOK, orders)
}

func (srv *Server) GetOrderHandler(w http.ResponseWriter, r *http.Request) {
	_, s, ok := srv.requireSession(w, r)
	if !ok {
		return
	}

	order, err := srv.backend.GetOrder(r.Context(), s.AccessToken, chi.URLParam(r, "id"))
	if err != nil {
		srv.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Order   model.Order      `json:"order"`
		Summary tracking.Summary `json:"summary"`
	}{order, tracking.Summarize(order)})
}

func (srv *Server) TrackOrderHandler(w http.ResponseWriter, r *http.Request) {
	_, s, ok := srv.requireSession(w, r)
	if !ok {
		return
	}

	order, err := srv.backend.GetOrder(r.Context(), s.AccessToken, chi.URLParam(r, "id"))
	if err != nil {
		srv.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Order     model.Order       `json:"order"`
		Progress  tracking.Progress `json:"progress"`
		Delivered bool              `json:"delivered"`
	}{order, tracking.Timeline(order.Status), tracking.Delivered(order.Status)})
}

func (srv *Server) InitializePaymentHandler(w http.ResponseWriter, r *http.Request) {
	_, s, ok := srv.requireSession(w, r)
	if !ok {
		return
	}

	var req model.PaymentRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.OrderID) == "" {
		srv.writeError(w, errs.Validation("orderId", "Order id is required."))
		return
	}
	if req.Platform == "" {
		req.Platform = "web"
	}

	payment, err := srv.backend.InitializePayment(r.Context(), s.AccessToken, req)
	if err != nil {
		srv.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, payment)
}

func (srv *Server) AutocompleteHandler(w http.ResponseWriter, r *http.Request) {
	sc := srv.visitor(r)

	predictions, err := srv.places.For(sc.Key()).Search(r.Context(), token(sc.Get()), r.URL.Query().Get("input"))
	switch {
	case errors.Is(err, places.ErrStale), errors.Is(err, context.Canceled):
		w.WriteHeader(http.StatusNoContent)
		return
	case err != nil:
		srv.writeError(w, err)
		return
	}

	if predictions == nil {
		predictions = []model.PlacePrediction{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"predictions": predictions})
}

func (srv *Server) PlaceDetailsHandler(w http.ResponseWriter, r *http.Request) {
	sc := srv.visitor(r)

	place, err := srv.places.For(sc.Key()).Details(r.Context(), token(sc.Get()), chi.URLParam(r, "placeId"))
	if err != nil {
		srv.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, place)
}
