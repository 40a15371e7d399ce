package guest

import (
	"context"
	"fmt"
	"strings"

	"github.com/and161185/gas2door/internal/errs"
	"github.com/and161185/gas2door/internal/model"
	"github.com/and161185/gas2door/internal/session"
	"go.uber.org/zap"
)

const defaultName = "Guest"

type Backend interface {
	GuestCreate(ctx context.Context, req model.GuestRequest) (*model.Session, error)
}

// Resolver makes sure an order is always placed under some identity.
type Resolver struct {
	backend Backend
	logger  *zap.SugaredLogger
}

func NewResolver(backend Backend, logger *zap.SugaredLogger) *Resolver {
	return &Resolver{backend: backend, logger: logger}
}

// EnsureSessionForOrder returns the visitor's current session untouched when
// there is one, guest or not. Otherwise it creates a guest identity, stores it
// in sc and returns it. Nothing is stored when the backend refuses.
func (r *Resolver) EnsureSessionForOrder(ctx context.Context, sc *session.Context, name, phone string) (*model.Session, error) {
	if existing := sc.Get(); existing != nil && existing.AccessToken != "" {
		return existing, nil
	}

	name = strings.TrimSpace(name)
	if name == "" {
		name = defaultName
	}
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return nil, errs.Validation("phone", "Phone number is required to continue as a guest.")
	}

	created, err := r.backend.GuestCreate(ctx, model.GuestRequest{Name: name, Phone: phone})
	if err != nil {
		return nil, fmt.Errorf("create guest: %w", err)
	}

	user := model.User{Name: name, Phone: phone}
	if created.User != nil {
		user = *created.User
	}
	user.IsGuest = true

	s := &model.Session{AccessToken: created.AccessToken, User: &user}
	if err := sc.Set(ctx, s); err != nil {
		return nil, fmt.Errorf("store guest session: %w", err)
	}

	r.logger.Infof("guest session created for visitor %s", sc.Key())
	return sc.Get(), nil
}
