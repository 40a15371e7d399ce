package checkout

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/and161185/gas2door/internal/errs"
	"github.com/and161185/gas2door/internal/model"
	"github.com/and161185/gas2door/internal/session"
	"go.uber.org/zap"
)

type State string

const (
	Idle              State = "idle"
	Validating        State = "validating"
	ResolvingIdentity State = "resolving_identity"
	CreatingAddress   State = "creating_address"
	CreatingOrder     State = "creating_order"
	Done              State = "done"
	Failed            State = "failed"
)

const addressLabel = "Checkout Address"

type Backend interface {
	CreateAddress(ctx context.Context, token string, payload model.CreateAddressPayload) (string, error)
	CreateOrder(ctx context.Context, token string, payload model.CreateOrderPayload) (model.Order, error)
}

type IdentityResolver interface {
	EnsureSessionForOrder(ctx context.Context, sc *session.Context, name, phone string) (*model.Session, error)
}

type OrphanRecorder interface {
	RecordOrphan(ctx context.Context, orphan model.OrphanedAddress) error
}

// Observer is told about every state a submission enters.
type Observer func(visitorID string, state State)

type Result struct {
	OrderID       string              `json:"orderId"`
	PaymentMethod model.PaymentMethod `json:"paymentMethod"`
	Next          string              `json:"next"`
}

// Flow places orders. Each step runs only after the previous one returned an
// identifier, and nothing is retried or rolled back.
type Flow struct {
	backend  Backend
	identity IdentityResolver
	orphans  OrphanRecorder
	region   model.Region
	logger   *zap.SugaredLogger
	observer Observer
	now      func() time.Time

	mu       sync.Mutex
	inFlight map[string]struct{}
}

// NewFlow builds a Flow. orphans may be nil, in which case orphaned addresses
// are only logged.
func NewFlow(backend Backend, identity IdentityResolver, orphans OrphanRecorder, region model.Region, logger *zap.SugaredLogger) *Flow {
	return &Flow{
		backend:  backend,
		identity: identity,
		orphans:  orphans,
		region:   region,
		logger:   logger,
		now:      time.Now,
		inFlight: make(map[string]struct{}),
	}
}

func (f *Flow) SetObserver(o Observer) {
	f.observer = o
}

// Submit runs one submission for the visitor owning sc. The cylinder's price
// at the moment of the call is the one written on the order. A second Submit
// for the same visitor while one is pending fails with ErrSubmissionInProgress.
func (f *Flow) Submit(ctx context.Context, sc *session.Context, draft model.OrderDraft, cylinder *model.Cylinder) (Result, error) {
	visitor := sc.Key()
	if !f.acquire(visitor) {
		return Result{}, errs.ErrSubmissionInProgress
	}
	defer f.release(visitor)

	f.enter(visitor, Idle)

	f.enter(visitor, Validating)
	if err := validate(draft, cylinder); err != nil {
		return f.fail(visitor, Validating, err)
	}
	method := draft.PaymentMethod
	if method == "" {
		method = model.PayOnPickup
	}

	f.enter(visitor, ResolvingIdentity)
	s, err := f.identity.EnsureSessionForOrder(ctx, sc, draft.RecipientName, draft.RecipientPhone)
	if err != nil {
		return f.fail(visitor, ResolvingIdentity, err)
	}

	f.enter(visitor, CreatingAddress)
	addressID, err := f.backend.CreateAddress(ctx, s.AccessToken, f.addressPayload(draft))
	if err != nil {
		return f.fail(visitor, CreatingAddress, err)
	}

	f.enter(visitor, CreatingOrder)
	order, err := f.backend.CreateOrder(ctx, s.AccessToken, model.CreateOrderPayload{
		DeliveryAddressID: addressID,
		Items: []model.OrderItem{{
			CylinderID:  cylinder.ID,
			ProductName: cylinder.Name,
			Quantity:    draft.Quantity,
			UnitPrice:   cylinder.UnitPrice,
		}},
		RecipientName:  strings.TrimSpace(draft.RecipientName),
		RecipientPhone: strings.TrimSpace(draft.RecipientPhone),
		IsExpress:      draft.Express,
		PaymentMethod:  method.BackendTag(),
	})
	if err != nil {
		f.recordOrphan(ctx, visitor, addressID, err)
		return f.fail(visitor, CreatingOrder, err)
	}

	f.enter(visitor, Done)
	f.logger.Infof("visitor %s placed order %s (%s)", visitor, order.ID, method)

	return Result{
		OrderID:       order.ID,
		PaymentMethod: method,
		Next:          NextRoute(method, order.ID),
	}, nil
}

// NextRoute is where the customer goes after a successful submission.
func NextRoute(method model.PaymentMethod, orderID string) string {
	if method.Online() {
		return "/payment/" + orderID
	}
	return "/track/" + orderID
}

func validate(draft model.OrderDraft, cylinder *model.Cylinder) error {
	if strings.TrimSpace(draft.RecipientName) == "" {
		return errs.Validation("recipientName", "Full name is required.")
	}
	if strings.TrimSpace(draft.RecipientPhone) == "" {
		return errs.Validation("recipientPhone", "Phone number is required.")
	}
	if strings.TrimSpace(draft.AddressText) == "" && (draft.Place == nil || draft.Place.FullAddress == "") {
		return errs.Validation("address", "Please enter a delivery address.")
	}
	if cylinder == nil {
		return errs.Validation("cylinderId", "Please select a cylinder.")
	}
	if draft.Quantity < 1 {
		return errs.Validation("quantity", "Quantity must be at least 1.")
	}
	switch draft.PaymentMethod {
	case "", model.PayByCard, model.PayOnPickup:
	default:
		return errs.Validation("paymentMethod", "Choose card or pay on delivery.")
	}
	return nil
}

func (f *Flow) addressPayload(draft model.OrderDraft) model.CreateAddressPayload {
	typed := strings.TrimSpace(draft.AddressText)
	p := model.CreateAddressPayload{
		Label:       addressLabel,
		FullAddress: typed,
		Street:      typed,
		City:        f.region.City,
		State:       f.region.State,
		Country:     f.region.Country,
		Landmark:    strings.TrimSpace(draft.Landmark),
	}

	if place := draft.Place; place != nil {
		if place.FullAddress != "" {
			p.FullAddress = place.FullAddress
		}
		if place.Street != "" {
			p.Street = place.Street
		}
		if place.City != "" {
			p.City = place.City
		}
		p.Latitude = place.Latitude
		p.Longitude = place.Longitude
	}
	return p
}

func (f *Flow) recordOrphan(ctx context.Context, visitor, addressID string, cause error) {
	f.logger.Warnf("order for visitor %s failed after address %s was created: %v", visitor, addressID, cause)
	if f.orphans == nil {
		return
	}

	err := f.orphans.RecordOrphan(context.WithoutCancel(ctx), model.OrphanedAddress{
		AddressID: addressID,
		VisitorID: visitor,
		Reason:    cause.Error(),
		CreatedAt: f.now(),
	})
	if err != nil {
		f.logger.Errorf("record orphaned address %s: %v", addressID, err)
	}
}

func (f *Flow) fail(visitor string, at State, err error) (Result, error) {
	f.enter(visitor, Failed)
	f.logger.Infof("submission for visitor %s failed while %s: %v", visitor, at, err)
	return Result{}, fmt.Errorf("%s: %w", at, err)
}

func (f *Flow) enter(visitor string, s State) {
	f.logger.Debugf("visitor %s submission -> %s", visitor, s)
	if f.observer != nil {
		f.observer(visitor, s)
	}
}

func (f *Flow) acquire(visitor string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, busy := f.inFlight[visitor]; busy {
		return false
	}
	f.inFlight[visitor] = struct{}{}
	return true
}

func (f *Flow) release(visitor string) {
	f.mu.Lock()
	delete(f.inFlight, visitor)
	f.mu.Unlock()
}
